package oauth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

const (
	defaultGithubAuthURL     = "https://github.com/login/oauth/authorize"
	defaultGithubTokenURL    = "https://github.com/login/oauth/access_token"
	defaultGithubUserInfoURL = "https://api.github.com/user"

	githubUserAgent = "AI-Ops-Council"
)

type Github struct {
	creds Credentials

	// EmailsURL serves the account's email list when no public email is set.
	EmailsURL string
}

func NewGithub(creds Credentials) *Github {
	if creds.AuthURL == "" {
		creds.AuthURL = defaultGithubAuthURL
	}
	if creds.TokenURL == "" {
		creds.TokenURL = defaultGithubTokenURL
	}
	if creds.UserInfoURL == "" {
		creds.UserInfoURL = defaultGithubUserInfoURL
	}
	return &Github{creds: creds, EmailsURL: creds.UserInfoURL + "/emails"}
}

func (p *Github) Name() string { return "github" }

func (p *Github) AuthorizationURL() string {
	params := url.Values{
		"client_id":    {p.creds.ClientID},
		"redirect_uri": {p.creds.RedirectURI},
		"scope":        {"user:email"},
	}
	return p.creds.AuthURL + "?" + params.Encode()
}

type githubTokenResponse struct {
	AccessToken string `json:"access_token"`
}

// ExchangeCode posts JSON and asks for a JSON response; GitHub defaults to
// form-encoded otherwise.
func (p *Github) ExchangeCode(ctx context.Context, code string) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"code":          code,
		"client_id":     p.creds.ClientID,
		"client_secret": p.creds.ClientSecret,
		"redirect_uri":  p.creds.RedirectURI,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.creds.TokenURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read token response: %w", err)
	}

	var tokenResp githubTokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", fmt.Errorf("failed to parse token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return "", ErrNoAccessToken
	}
	return tokenResp.AccessToken, nil
}

type githubUser struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type githubEmail struct {
	Email   string `json:"email"`
	Primary bool   `json:"primary"`
}

func (p *Github) FetchProfile(ctx context.Context, accessToken string) (*Profile, error) {
	headers := map[string]string{"User-Agent": githubUserAgent}

	var user githubUser
	if err := getJSON(ctx, p.creds.UserInfoURL, accessToken, headers, &user); err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}

	email := user.Email
	if email == "" {
		// No public email; fall back to the account's email list and prefer
		// the entry marked primary.
		var emails []githubEmail
		if err := getJSON(ctx, p.EmailsURL, accessToken, headers, &emails); err != nil {
			return nil, fmt.Errorf("failed to fetch emails: %w", err)
		}
		for _, e := range emails {
			if e.Primary {
				email = e.Email
				break
			}
		}
		if email == "" && len(emails) > 0 {
			email = emails[0].Email
		}
	}
	if email == "" {
		return nil, ErrNoEmail
	}

	name := user.Name
	if name == "" {
		name = user.Login
	}
	return &Profile{Email: email, Name: name, ProviderID: strconv.FormatInt(user.ID, 10)}, nil
}

var _ Provider = (*Github)(nil)
