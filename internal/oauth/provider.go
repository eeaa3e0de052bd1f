// Package oauth implements the three external identity providers behind a
// single capability, so the callback flow is written once.
package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var (
	// ErrNoAccessToken means the token endpoint answered without a token.
	ErrNoAccessToken = errors.New("oauth: provider returned no access token")
	// ErrNoEmail means no usable email could be resolved from the profile.
	ErrNoEmail = errors.New("oauth: no usable email on provider profile")
)

// Profile is the provider-agnostic view of an external account.
type Profile struct {
	Email      string
	Name       string
	ProviderID string
}

// Provider is one external identity provider.
type Provider interface {
	Name() string
	// AuthorizationURL is the endpoint the browser is redirected to.
	AuthorizationURL() string
	// ExchangeCode trades an authorization code for an access token.
	ExchangeCode(ctx context.Context, code string) (string, error)
	// FetchProfile resolves the account's email, display name and id.
	FetchProfile(ctx context.Context, accessToken string) (*Profile, error)
}

// Credentials configures one provider registration. Endpoint overrides exist
// for tests.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string

	AuthURL     string
	TokenURL    string
	UserInfoURL string
}

func getJSON(ctx context.Context, url, accessToken string, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch failed with status %d: %s", resp.StatusCode, string(body))
	}
	return json.Unmarshal(body, out)
}
