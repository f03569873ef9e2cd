package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port             string
	Env              string
	BackendBaseURL   string
	BackendTimeout   time.Duration
	DatabaseURL      string
	SessionFile      string
	SessionSecret    string
	SessionIssuer    string
	SessionTTL       time.Duration
	CORSOrigins      []string
	DashboardTimeout time.Duration
	FlashTTL         time.Duration
	CurrencySymbol   string
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	cfg := Config{
		Port:           fallback(os.Getenv("PORT"), "8080"),
		Env:            fallback(os.Getenv("APP_ENV"), "production"),
		BackendBaseURL: strings.TrimRight(strings.TrimSpace(os.Getenv("BACKEND_BASE_URL")), "/"),
		DatabaseURL:    strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SessionFile:    fallback(os.Getenv("SESSION_FILE"), "data/sessions.json"),
		SessionSecret:  strings.TrimSpace(os.Getenv("SESSION_SECRET")),
		SessionIssuer:  fallback(os.Getenv("SESSION_ISSUER"), "bank-console"),
		CORSOrigins:    parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
		CurrencySymbol: fallback(os.Getenv("CURRENCY_SYMBOL"), "₹"),
	}

	minutes := fallback(os.Getenv("SESSION_TTL_MINUTES"), "60")
	if ttlMinutes, err := strconv.Atoi(minutes); err == nil && ttlMinutes > 0 {
		cfg.SessionTTL = time.Duration(ttlMinutes) * time.Minute
	} else {
		cfg.SessionTTL = 60 * time.Minute
	}

	cfg.BackendTimeout = duration("BACKEND_TIMEOUT", 30*time.Second)
	cfg.DashboardTimeout = duration("DASHBOARD_TIMEOUT", 15*time.Second)
	cfg.FlashTTL = duration("FLASH_TTL", 5*time.Second)

	if cfg.BackendBaseURL == "" {
		return Config{}, errors.New("BACKEND_BASE_URL is required")
	}
	if cfg.SessionSecret == "" {
		return Config{}, errors.New("SESSION_SECRET is required")
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// Development reports whether verbose local logging is wanted.
func (c Config) Development() bool {
	return strings.EqualFold(c.Env, "development")
}

// UsesDatabase reports whether sessions go to Postgres rather than the
// local snapshot file.
func (c Config) UsesDatabase() bool {
	return c.DatabaseURL != ""
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

// duration accepts Go durations ("15s") or bare seconds ("15").
func duration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return def
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
