package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Document-store collection names. The memberships collection is part of the
// deployed layout but no handler writes to it.
const (
	UsersCollection        = "aiops-users"
	MembershipsCollection  = "aiops-memberships"
	ApplicationsCollection = "aiops-applications"
)

// SourceTag marks billing objects created by this service so webhook events
// from unrelated integrations in the same Stripe account can be skipped.
const SourceTag = "aiopscouncil"

// MembershipBenefits is the fixed benefits list served by /membership/info.
var MembershipBenefits = []string{
	"Access to private Discord channels with top AI operators",
	"Exclusive war stories & architecture reviews",
	"Early access to council-built tools (ClawAPI, etc.)",
	"Network of production AI practitioners",
	"Monthly office hours with Council Fellows",
	"Priority support for your AI projects",
}

type Config struct {
	// Server
	Port        string
	ConsoleURL  string
	CORSOrigins string

	// Session tokens
	JWTSecret     string
	SessionExpiry time.Duration

	// Document store
	StoreDriver string // postgres, redis or memory

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Stripe
	StripeSecretKey     string
	StripeWebhookSecret string
	StripePriceID       string

	// OAuth providers
	GoogleClientID      string
	GoogleClientSecret  string
	DiscordClientID     string
	DiscordClientSecret string
	GithubClientID      string
	GithubClientSecret  string

	// Email
	ResendAPIKey string
	EmailFrom    string
	AdminEmails  []string
}

// Load assembles the configuration once from the environment. Defaults are for
// local development only; production deployments must override every
// secret-bearing value.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "3001"),
		ConsoleURL:  getEnv("CONSOLE_URL", "http://localhost:5173"),
		CORSOrigins: getEnv("CORS_ORIGINS", ""),

		JWTSecret:     getEnv("JWT_SECRET", "aiops-council-secret-2026"),
		SessionExpiry: parseDuration(getEnv("SESSION_EXPIRY", "168h")),

		StoreDriver: getEnv("STORE_DRIVER", "postgres"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "council"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RedisAddr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		StripePriceID:       getEnv("STRIPE_PRICE_ID", "price_1T1mzeFJXvDXV14qWBdptyLc"),

		GoogleClientID:      os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret:  os.Getenv("GOOGLE_CLIENT_SECRET"),
		DiscordClientID:     os.Getenv("DISCORD_CLIENT_ID"),
		DiscordClientSecret: os.Getenv("DISCORD_CLIENT_SECRET"),
		GithubClientID:      os.Getenv("GITHUB_CLIENT_ID"),
		GithubClientSecret:  os.Getenv("GITHUB_CLIENT_SECRET"),

		ResendAPIKey: os.Getenv("RESEND_API_KEY"),
		EmailFrom:    getEnv("EMAIL_FROM", "noreply@aiopscouncil.io"),
		AdminEmails:  parseCSV(getEnv("ADMIN_EMAILS", "edward+0001@etumos.com,animeshk604@gmail.com")),
	}
}

// DSN builds the Postgres connection string for the document store.
func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

// CORSOrigin returns the allowed browser origin, defaulting to the console app.
func (c *Config) CORSOrigin() string {
	if c.CORSOrigins != "" {
		return c.CORSOrigins
	}
	return c.ConsoleURL
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 168 * time.Hour
	}
	return d
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
