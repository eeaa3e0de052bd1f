package routes

import (
	"time"

	"github.com/aiopscouncil/council-backend/internal/config"
	"github.com/aiopscouncil/council-backend/internal/handlers"
	"github.com/aiopscouncil/council-backend/internal/middleware"
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	registry *prometheus.Registry,
	authHandler *handlers.AuthHandler,
	oauthHandler *handlers.OAuthHandler,
	applicationHandler *handlers.ApplicationHandler,
	membershipHandler *handlers.MembershipHandler,
	webhookHandler *handlers.WebhookHandler,
) {
	// Health and metrics sit outside the rate limiter.
	app.Get("/health", handlers.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// General rate limit: 60 req/min per IP. Webhooks are exempt so a
	// Stripe redelivery burst is never throttled into a retry loop.
	app.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/webhook" || c.Path() == "/health"
		},
	}))

	// Auth — stricter limit: 10 req/min per IP
	auth := app.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	// Must be registered before the :provider wildcard.
	auth.Get("/profile", middleware.JWTProtected(cfg), authHandler.Profile)
	auth.Get("/:provider", oauthHandler.Login)
	auth.Get("/:provider/callback", oauthHandler.Callback)

	app.Post("/applications", applicationHandler.Submit)
	app.Get("/applications/status", applicationHandler.Status)

	membership := app.Group("/membership")
	membership.Get("/info", membershipHandler.Info)
	membership.Get("/status", middleware.JWTProtected(cfg), membershipHandler.Status)
	membership.Post("/checkout", middleware.JWTProtected(cfg), membershipHandler.Checkout)
	membership.Post("/portal", middleware.JWTProtected(cfg), membershipHandler.Portal)

	// Stripe webhooks — signature-verified, no JWT
	app.Post("/webhook", webhookHandler.HandleStripe)
}
