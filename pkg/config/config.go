// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/leonelcastillo/Tx/pkg/pinata"
	"github.com/leonelcastillo/Tx/pkg/ratelimit"
)

// Config holds all application configuration. Fields with sane defaults never
// fail validation; the rate-limit knobs must parse as positive integers.
type Config struct {
	HTTPPort     string
	DatabasePath string
	UploadDir    string
	LogLevel     string

	// AdminAPIKey gates the admin routes; empty leaves them open.
	AdminAPIKey string

	RateLimitMax    int
	RateLimitWindow time.Duration

	// PinataJWT enables IPFS pinning of uploaded photos when set.
	PinataJWT      string
	PinataEndpoint string
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:       getEnvOrDefault("HTTP_PORT", "8080"),
		DatabasePath:   getEnvOrDefault("DATABASE_PATH", "./transactions.db"),
		UploadDir:      getEnvOrDefault("UPLOAD_DIR", "./static/uploads"),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		AdminAPIKey:    os.Getenv("ADMIN_API_KEY"),
		PinataJWT:      os.Getenv("PINATA_JWT"),
		PinataEndpoint: getEnvOrDefault("PINATA_ENDPOINT", pinata.DefaultEndpoint),
	}

	max, err := getEnvInt("RATE_LIMIT_MAX", ratelimit.DefaultMax)
	if err != nil {
		return nil, err
	}
	cfg.RateLimitMax = max

	windowSecs, err := getEnvInt("RATE_LIMIT_WINDOW", int(ratelimit.DefaultWindow.Seconds()))
	if err != nil {
		return nil, err
	}
	cfg.RateLimitWindow = time.Duration(windowSecs) * time.Second

	return cfg, nil
}

// SlogLevel maps the configured log level string to a slog level, defaulting
// to Info for anything unrecognized.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, raw)
	}
	return v, nil
}
