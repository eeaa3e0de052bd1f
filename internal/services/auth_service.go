package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aiopscouncil/council-backend/internal/auth"
	"github.com/aiopscouncil/council-backend/internal/config"
	"github.com/aiopscouncil/council-backend/internal/dto"
	"github.com/aiopscouncil/council-backend/internal/models"
	"github.com/aiopscouncil/council-backend/internal/store"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingFields = errors.New("missing required fields")
	ErrEmailTaken    = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong password, so
	// the response does not reveal which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthService registers users, verifies credentials and resolves profiles.
type AuthService struct {
	store  store.Store
	tokens *auth.TokenManager
}

func NewAuthService(st store.Store, tokens *auth.TokenManager) *AuthService {
	return &AuthService{store: st, tokens: tokens}
}

func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return nil, fmt.Errorf("%w: email, password, and name are required", ErrMissingFields)
	}

	var existing models.User
	err := s.store.Get(ctx, config.UsersCollection, req.Email, &existing)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Email:            req.Email,
		UserID:           uuid.NewString(),
		PasswordHash:     string(hash),
		Name:             req.Name,
		Role:             req.Role,
		Company:          req.Company,
		CreatedAt:        time.Now().UTC(),
		MembershipStatus: models.MembershipNone,
	}
	if err := s.store.Put(ctx, config.UsersCollection, user.Email, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.Issue(user.UserID, user.Email)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Token: token, User: user.Sanitized()}, nil
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password required", ErrMissingFields)
	}

	var user models.User
	if err := s.store.Get(ctx, config.UsersCollection, req.Email, &user); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.store.Update(ctx, config.UsersCollection, user.Email, store.Fields{"lastLogin": now}); err != nil {
		slog.Warn("failed to record last login", "email", user.Email, "error", err)
	}
	user.LastLogin = &now

	token, err := s.tokens.Issue(user.UserID, user.Email)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Token: token, User: user.Sanitized()}, nil
}

// Profile resolves an authenticated email back to the stored user, minus the
// password hash.
func (s *AuthService) Profile(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.store.Get(ctx, config.UsersCollection, email, &user); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	sanitized := user.Sanitized()
	return &sanitized, nil
}
