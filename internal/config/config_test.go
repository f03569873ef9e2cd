package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "http://localhost:8081/")
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PORT", "")
	t.Setenv("SESSION_TTL_MINUTES", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("DASHBOARD_TIMEOUT", "")
	t.Setenv("FLASH_TTL", "")
	t.Setenv("CURRENCY_SYMBOL", "")
	t.Setenv("APP_ENV", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8081", cfg.BackendBaseURL)
	assert.Equal(t, ":8080", cfg.HTTPAddress())
	assert.Equal(t, 60*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 15*time.Second, cfg.DashboardTimeout)
	assert.Equal(t, 5*time.Second, cfg.FlashTTL)
	assert.Equal(t, "₹", cfg.CurrencySymbol)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.False(t, cfg.UsesDatabase())
	assert.False(t, cfg.Development())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "http://bank")
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("DATABASE_URL", "postgres://x")
	t.Setenv("SESSION_TTL_MINUTES", "15")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("DASHBOARD_TIMEOUT", "3")
	t.Setenv("FLASH_TTL", "750ms")
	t.Setenv("APP_ENV", "Development")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, cfg.SessionTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, 3*time.Second, cfg.DashboardTimeout)
	assert.Equal(t, 750*time.Millisecond, cfg.FlashTTL)
	assert.True(t, cfg.UsesDatabase())
	assert.True(t, cfg.Development())
}

func TestLoadRequiresBackendAndSecret(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "")
	t.Setenv("SESSION_SECRET", "secret")
	_, err := Load()
	require.EqualError(t, err, "BACKEND_BASE_URL is required")

	t.Setenv("BACKEND_BASE_URL", "http://bank")
	t.Setenv("SESSION_SECRET", " ")
	_, err = Load()
	require.EqualError(t, err, "SESSION_SECRET is required")
}
