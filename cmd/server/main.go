package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aiopscouncil/council-backend/internal/auth"
	"github.com/aiopscouncil/council-backend/internal/billing"
	"github.com/aiopscouncil/council-backend/internal/config"
	"github.com/aiopscouncil/council-backend/internal/dto"
	"github.com/aiopscouncil/council-backend/internal/events"
	"github.com/aiopscouncil/council-backend/internal/handlers"
	"github.com/aiopscouncil/council-backend/internal/logging"
	"github.com/aiopscouncil/council-backend/internal/mail"
	"github.com/aiopscouncil/council-backend/internal/metrics"
	"github.com/aiopscouncil/council-backend/internal/middleware"
	"github.com/aiopscouncil/council-backend/internal/notify"
	"github.com/aiopscouncil/council-backend/internal/oauth"
	"github.com/aiopscouncil/council-backend/internal/routes"
	"github.com/aiopscouncil/council-backend/internal/services"
	"github.com/aiopscouncil/council-backend/internal/store"
	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	// Document store
	var (
		st           store.Store
		pgLogHandler *logging.PGHandler
		cleanupDone  chan struct{}
	)
	switch cfg.StoreDriver {
	case "postgres":
		pg, err := store.NewPostgres(cfg)
		if err != nil {
			slog.Error("postgres connection failed", "error", err)
			os.Exit(1)
		}
		st = pg

		// PostgreSQL log handler (ERROR+ async batch) and 30-day retention
		pgLogHandler = logging.NewPGHandler(pg.DB())
		slog.SetDefault(slog.New(logging.NewMultiHandler(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
			pgLogHandler,
		)))
		cleanupDone = make(chan struct{})
		logging.StartCleanup(pg.DB(), cleanupDone)
	case "redis":
		st = store.NewRedis(cfg)
	case "memory":
		st = store.NewMemory()
	default:
		slog.Error("unknown store driver", "driver", cfg.StoreDriver)
		os.Exit(1)
	}

	// Notifications: event dispatcher feeding best-effort email
	var mailer mail.Mailer
	if cfg.ResendAPIKey != "" {
		mailer = mail.NewResendMailer(cfg.ResendAPIKey, cfg.EmailFrom)
	} else {
		mailer = mail.LogMailer{}
	}
	dispatcher := events.NewInMemoryDispatcher(30 * time.Second)
	notify.NewNotifier(mailer, cfg.AdminEmails).RegisterHandlers(dispatcher)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.SessionExpiry)
	stripeProvider := billing.NewStripeProvider(cfg)

	// Services
	authService := services.NewAuthService(st, tokens)
	oauthService := services.NewOAuthService(st, tokens,
		oauth.NewGoogle(oauth.Credentials{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURI:  cfg.ConsoleURL + "/api/auth/google/callback",
		}),
		oauth.NewDiscord(oauth.Credentials{
			ClientID:     cfg.DiscordClientID,
			ClientSecret: cfg.DiscordClientSecret,
			RedirectURI:  cfg.ConsoleURL + "/api/auth/discord/callback",
		}),
		oauth.NewGithub(oauth.Credentials{
			ClientID:     cfg.GithubClientID,
			ClientSecret: cfg.GithubClientSecret,
			RedirectURI:  cfg.ConsoleURL + "/api/auth/github/callback",
		}),
	)
	applicationService := services.NewApplicationService(st, dispatcher)
	membershipService := services.NewMembershipService(st, stripeProvider)
	subscriptionService := services.NewSubscriptionService(st, stripeProvider, dispatcher)

	// Metrics
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	oauthHandler := handlers.NewOAuthHandler(oauthService, cfg)
	applicationHandler := handlers.NewApplicationHandler(applicationService)
	membershipHandler := handlers.NewMembershipHandler(membershipService)
	webhookHandler := handlers.NewWebhookHandler(subscriptionService, collector, cfg.StripeWebhookSecret)

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})
	app.Use(collector.Middleware())

	// Routes
	routes.Setup(app, cfg, registry, authHandler, oauthHandler, applicationHandler, membershipHandler, webhookHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "store", cfg.StoreDriver)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if cleanupDone != nil {
		close(cleanupDone)
	}
	if pgLogHandler != nil {
		pgLogHandler.Stop()
	}
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if err := st.Close(); err != nil {
		slog.Error("store close error", "error", err)
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{Error: message})
}
