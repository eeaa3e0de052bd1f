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
	defaultDiscordAuthURL     = "https://discord.com/api/oauth2/authorize"
	defaultDiscordTokenURL    = "https://discord.com/api/oauth2/token"
	defaultDiscordUserInfoURL = "https://discord.com/api/users/@me"
)

type Discord struct {
	creds Credentials
}

func NewDiscord(creds Credentials) *Discord {
	if creds.AuthURL == "" {
		creds.AuthURL = defaultDiscordAuthURL
	}
	if creds.TokenURL == "" {
		creds.TokenURL = defaultDiscordTokenURL
	}
	if creds.UserInfoURL == "" {
		creds.UserInfoURL = defaultDiscordUserInfoURL
	}
	return &Discord{creds: creds}
}

func (p *Discord) Name() string { return "discord" }

func (p *Discord) AuthorizationURL() string {
	params := url.Values{
		"client_id":     {p.creds.ClientID},
		"redirect_uri":  {p.creds.RedirectURI},
		"response_type": {"code"},
		"scope":         {"identify email"},
	}
	return p.creds.AuthURL + "?" + params.Encode()
}

type discordTokenResponse struct {
	AccessToken string `json:"access_token"`
}

func (p *Discord) ExchangeCode(ctx context.Context, code string) (string, error) {
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

	var tokenResp discordTokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", fmt.Errorf("failed to parse token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return "", ErrNoAccessToken
	}
	return tokenResp.AccessToken, nil
}

type discordUser struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	GlobalName string `json:"global_name"`
	Email      string `json:"email"`
}

func (p *Discord) FetchProfile(ctx context.Context, accessToken string) (*Profile, error) {
	var user discordUser
	if err := getJSON(ctx, p.creds.UserInfoURL, accessToken, nil, &user); err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	if user.Email == "" {
		return nil, ErrNoEmail
	}
	name := user.GlobalName
	if name == "" {
		name = user.Username
	}
	return &Profile{Email: user.Email, Name: name, ProviderID: user.ID}, nil
}

var _ Provider = (*Discord)(nil)
