package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	defaultGoogleAuthURL     = "https://accounts.google.com/o/oauth2/v2/auth"
	defaultGoogleTokenURL    = "https://oauth2.googleapis.com/token"
	defaultGoogleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

type Google struct {
	creds Credentials
}

func NewGoogle(creds Credentials) *Google {
	if creds.AuthURL == "" {
		creds.AuthURL = defaultGoogleAuthURL
	}
	if creds.TokenURL == "" {
		creds.TokenURL = defaultGoogleTokenURL
	}
	if creds.UserInfoURL == "" {
		creds.UserInfoURL = defaultGoogleUserInfoURL
	}
	return &Google{creds: creds}
}

func (p *Google) Name() string { return "google" }

func (p *Google) AuthorizationURL() string {
	params := url.Values{
		"client_id":     {p.creds.ClientID},
		"redirect_uri":  {p.creds.RedirectURI},
		"response_type": {"code"},
		"scope":         {"email profile"},
		"access_type":   {"offline"},
		"prompt":        {"consent"},
	}
	return p.creds.AuthURL + "?" + params.Encode()
}

type googleTokenResponse struct {
	AccessToken string `json:"access_token"`
}

func (p *Google) ExchangeCode(ctx context.Context, code string) (string, error) {
	data := url.Values{
		"code":          {code},
		"client_id":     {p.creds.ClientID},
		"client_secret": {p.creds.ClientSecret},
		"redirect_uri":  {p.creds.RedirectURI},
		"grant_type":    {"authorization_code"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.creds.TokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read token response: %w", err)
	}

	var tokenResp googleTokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", fmt.Errorf("failed to parse token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return "", ErrNoAccessToken
	}
	return tokenResp.AccessToken, nil
}

type googleUserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (p *Google) FetchProfile(ctx context.Context, accessToken string) (*Profile, error) {
	var info googleUserInfo
	if err := getJSON(ctx, p.creds.UserInfoURL, accessToken, nil, &info); err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	if info.Email == "" {
		return nil, ErrNoEmail
	}
	return &Profile{Email: info.Email, Name: info.Name, ProviderID: info.ID}, nil
}

var _ Provider = (*Google)(nil)
