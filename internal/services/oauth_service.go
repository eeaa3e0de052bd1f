package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aiopscouncil/council-backend/internal/auth"
	"github.com/aiopscouncil/council-backend/internal/config"
	"github.com/aiopscouncil/council-backend/internal/models"
	"github.com/aiopscouncil/council-backend/internal/oauth"
	"github.com/aiopscouncil/council-backend/internal/store"
	"github.com/google/uuid"
)

// OAuthService runs the callback flow once for all providers: exchange the
// code, fetch the profile, find-or-create the local user, issue a session
// token.
type OAuthService struct {
	store     store.Store
	tokens    *auth.TokenManager
	providers map[string]oauth.Provider
}

func NewOAuthService(st store.Store, tokens *auth.TokenManager, providers ...oauth.Provider) *OAuthService {
	byName := make(map[string]oauth.Provider, len(providers))
	for _, p := range providers {
		byName[p.Name()] = p
	}
	return &OAuthService{store: st, tokens: tokens, providers: byName}
}

// Provider looks up a registered provider by name.
func (s *OAuthService) Provider(name string) (oauth.Provider, bool) {
	p, ok := s.providers[name]
	return p, ok
}

// HandleCallback returns the session token to hand to the browser.
func (s *OAuthService) HandleCallback(ctx context.Context, providerName, code string) (string, error) {
	provider, ok := s.providers[providerName]
	if !ok {
		return "", fmt.Errorf("unknown oauth provider %q", providerName)
	}

	accessToken, err := provider.ExchangeCode(ctx, code)
	if err != nil {
		return "", err
	}

	profile, err := provider.FetchProfile(ctx, accessToken)
	if err != nil {
		return "", err
	}

	user, err := s.FindOrCreateUser(ctx, providerName, profile)
	if err != nil {
		return "", err
	}
	return s.tokens.Issue(user.UserID, user.Email)
}

// FindOrCreateUser links the provider id onto an existing user (refreshing
// lastLogin) or creates a fresh one with no membership.
func (s *OAuthService) FindOrCreateUser(ctx context.Context, provider string, profile *oauth.Profile) (*models.User, error) {
	now := time.Now().UTC()

	var existing models.User
	err := s.store.Get(ctx, config.UsersCollection, profile.Email, &existing)
	switch {
	case err == nil:
		fields := store.Fields{
			providerIDField(provider): profile.ProviderID,
			"lastLogin":               now,
		}
		if err := s.store.Update(ctx, config.UsersCollection, existing.Email, fields); err != nil {
			return nil, fmt.Errorf("failed to link %s account: %w", provider, err)
		}
		setProviderID(&existing, provider, profile.ProviderID)
		existing.LastLogin = &now
		return &existing, nil

	case errors.Is(err, store.ErrNotFound):
		user := models.User{
			Email:            profile.Email,
			UserID:           uuid.NewString(),
			Name:             profile.Name,
			AuthProvider:     provider,
			CreatedAt:        now,
			LastLogin:        &now,
			MembershipStatus: models.MembershipNone,
		}
		setProviderID(&user, provider, profile.ProviderID)
		if err := s.store.Put(ctx, config.UsersCollection, user.Email, user); err != nil {
			return nil, fmt.Errorf("failed to create %s user: %w", provider, err)
		}
		return &user, nil

	default:
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
}

// providerIDField matches the JSON field names on models.User.
func providerIDField(provider string) string {
	return provider + "Id"
}

func setProviderID(user *models.User, provider, id string) {
	switch provider {
	case "google":
		user.GoogleID = id
	case "discord":
		user.DiscordID = id
	case "github":
		user.GithubID = id
	}
}
