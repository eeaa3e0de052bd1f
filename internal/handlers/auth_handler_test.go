package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aiopscouncil/council-backend/internal/auth"
	"github.com/aiopscouncil/council-backend/internal/config"
	"github.com/aiopscouncil/council-backend/internal/dto"
	"github.com/aiopscouncil/council-backend/internal/middleware"
	"github.com/aiopscouncil/council-backend/internal/services"
	"github.com/aiopscouncil/council-backend/internal/store"
	"github.com/gofiber/fiber/v2"
)

func newAuthApp() *fiber.App {
	cfg := &config.Config{JWTSecret: "test-secret"}
	st := store.NewMemory()
	tokens := auth.NewTokenManager(cfg.JWTSecret, time.Hour)
	handler := NewAuthHandler(services.NewAuthService(st, tokens))

	app := fiber.New()
	app.Post("/auth/register", handler.Register)
	app.Post("/auth/login", handler.Login)
	app.Get("/auth/profile", middleware.JWTProtected(cfg), handler.Profile)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) (int, []byte) {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, raw
}

func TestRegisterLoginProfileFlow(t *testing.T) {
	app := newAuthApp()

	status, raw := postJSON(t, app, "/auth/register", dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "hunter22",
		Name:     "Alice",
	})
	if status != fiber.StatusOK {
		t.Fatalf("register status = %d, body %s", status, raw)
	}

	status, raw = postJSON(t, app, "/auth/login", dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	if status != fiber.StatusOK {
		t.Fatalf("login status = %d, body %s", status, raw)
	}
	var authResp dto.AuthResponse
	if err := json.Unmarshal(raw, &authResp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if authResp.Token == "" {
		t.Fatal("login returned no token")
	}

	req := httptest.NewRequest("GET", "/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer "+authResp.Token)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("profile request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("profile status = %d", resp.StatusCode)
	}
	var profile dto.ProfileResponse
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if profile.User.Email != "alice@example.com" {
		t.Errorf("profile email = %q", profile.User.Email)
	}
	if profile.User.PasswordHash != "" {
		t.Error("profile leaked the password hash")
	}
}

func TestRegisterDuplicateReturnsConflict(t *testing.T) {
	app := newAuthApp()

	req := dto.RegisterRequest{Email: "alice@example.com", Password: "hunter22", Name: "Alice"}
	if status, raw := postJSON(t, app, "/auth/register", req); status != fiber.StatusOK {
		t.Fatalf("first register status = %d, body %s", status, raw)
	}
	status, raw := postJSON(t, app, "/auth/register", req)
	if status != fiber.StatusConflict {
		t.Fatalf("duplicate register status = %d, body %s", status, raw)
	}
	var errResp dto.ErrorResponse
	if err := json.Unmarshal(raw, &errResp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if errResp.Error == "" {
		t.Error("expected an error message")
	}
}

func TestRegisterMissingFieldsReturnsBadRequest(t *testing.T) {
	app := newAuthApp()
	if status, _ := postJSON(t, app, "/auth/register", dto.RegisterRequest{Email: "alice@example.com"}); status != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
}

func TestLoginWrongPasswordReturnsUnauthorized(t *testing.T) {
	app := newAuthApp()
	postJSON(t, app, "/auth/register", dto.RegisterRequest{Email: "alice@example.com", Password: "hunter22", Name: "Alice"})

	if status, _ := postJSON(t, app, "/auth/login", dto.LoginRequest{Email: "alice@example.com", Password: "wrong"}); status != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", status)
	}
	if status, _ := postJSON(t, app, "/auth/login", dto.LoginRequest{Email: "nobody@example.com", Password: "hunter22"}); status != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", status)
	}
}

func TestProfileWithoutTokenReturnsUnauthorized(t *testing.T) {
	app := newAuthApp()

	req := httptest.NewRequest("GET", "/auth/profile", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}
