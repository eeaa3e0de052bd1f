package handlers

import (
	"errors"
	"log/slog"

	"github.com/aiopscouncil/council-backend/internal/config"
	"github.com/aiopscouncil/council-backend/internal/oauth"
	"github.com/aiopscouncil/council-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// OAuthHandler owns the browser-facing halves of the OAuth flow. Failures
// redirect back to the console login page with a coarse error code; the
// session token travels in a URL fragment so it never reaches server logs.
type OAuthHandler struct {
	oauthService *services.OAuthService
	consoleURL   string
}

func NewOAuthHandler(oauthService *services.OAuthService, cfg *config.Config) *OAuthHandler {
	return &OAuthHandler{oauthService: oauthService, consoleURL: cfg.ConsoleURL}
}

func (h *OAuthHandler) Login(c *fiber.Ctx) error {
	provider, ok := h.oauthService.Provider(c.Params("provider"))
	if !ok {
		return fiber.ErrNotFound
	}
	return c.Redirect(provider.AuthorizationURL(), fiber.StatusFound)
}

func (h *OAuthHandler) Callback(c *fiber.Ctx) error {
	providerName := c.Params("provider")
	if _, ok := h.oauthService.Provider(providerName); !ok {
		return fiber.ErrNotFound
	}

	code := c.Query("code")
	if code == "" {
		return h.loginError(c, "no_code")
	}

	token, err := h.oauthService.HandleCallback(c.Context(), providerName, code)
	if err != nil {
		slog.Error("oauth callback failed", "provider", providerName, "error", err)
		switch {
		case errors.Is(err, oauth.ErrNoAccessToken):
			return h.loginError(c, "token_failed")
		case errors.Is(err, oauth.ErrNoEmail):
			return h.loginError(c, "no_email")
		default:
			return h.loginError(c, "oauth_failed")
		}
	}

	return c.Redirect(h.consoleURL+"/membership#token="+token, fiber.StatusFound)
}

func (h *OAuthHandler) loginError(c *fiber.Ctx, code string) error {
	return c.Redirect(h.consoleURL+"/login?error="+code, fiber.StatusFound)
}
