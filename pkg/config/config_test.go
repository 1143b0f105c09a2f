package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonelcastillo/Tx/pkg/ratelimit"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "./transactions.db", cfg.DatabasePath)
	assert.Equal(t, "./static/uploads", cfg.UploadDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.AdminAPIKey)
	assert.Equal(t, ratelimit.DefaultMax, cfg.RateLimitMax)
	assert.Equal(t, ratelimit.DefaultWindow, cfg.RateLimitWindow)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("ADMIN_API_KEY", "secret")
	t.Setenv("RATE_LIMIT_MAX", "10")
	t.Setenv("RATE_LIMIT_WINDOW", "30")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "secret", cfg.AdminAPIKey)
	assert.Equal(t, 10, cfg.RateLimitMax)
	assert.Equal(t, 30*time.Second, cfg.RateLimitWindow)
}

func TestLoadRejectsBadRateLimit(t *testing.T) {
	t.Setenv("RATE_LIMIT_MAX", "not a number")

	_, err := Load()
	assert.ErrorContains(t, err, "RATE_LIMIT_MAX")

	t.Setenv("RATE_LIMIT_MAX", "0")
	_, err = Load()
	assert.Error(t, err, "non-positive limits are rejected")
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, (&Config{LogLevel: "debug"}).SlogLevel())
	assert.Equal(t, slog.LevelWarn, (&Config{LogLevel: "warn"}).SlogLevel())
	assert.Equal(t, slog.LevelError, (&Config{LogLevel: "error"}).SlogLevel())
	assert.Equal(t, slog.LevelInfo, (&Config{LogLevel: "nonsense"}).SlogLevel())
}
