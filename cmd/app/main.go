package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/leonelcastillo/Tx/pkg/config"
	"github.com/leonelcastillo/Tx/pkg/handlers"
	"github.com/leonelcastillo/Tx/pkg/handlers/transactions"
	"github.com/leonelcastillo/Tx/pkg/metrics"
	"github.com/leonelcastillo/Tx/pkg/pinata"
	"github.com/leonelcastillo/Tx/pkg/ranking"
	"github.com/leonelcastillo/Tx/pkg/ratelimit"
	"github.com/leonelcastillo/Tx/pkg/storage/sqlite"
	"github.com/leonelcastillo/Tx/pkg/uploads"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	store, err := sqlite.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer store.Close()

	// Schema evolution runs exactly once, before any traffic is served. It is
	// best-effort: a failed upgrade starts the service degraded instead of
	// crash-looping, and storage errors then surface per-request.
	if res, err := store.Migrate(context.Background()); err != nil {
		logger.Error("schema migration failed, continuing with existing schema", "error", err)
	} else if len(res.AddedColumns) > 0 || res.Rebuilt {
		logger.Info("schema migrated", "added_columns", res.AddedColumns, "rebuilt", res.Rebuilt)
	}

	photos, err := uploads.NewSaver(cfg.UploadDir)
	if err != nil {
		log.Fatalf("failed to prepare upload directory: %v", err)
	}

	limiter := ratelimit.New(cfg.RateLimitMax, cfg.RateLimitWindow)
	go func() {
		// Idle-key hygiene; the limiter is correct without it.
		for range time.Tick(5 * time.Minute) {
			limiter.PurgeIdle()
		}
	}()

	var pinner transactions.Pinner
	if cfg.PinataJWT != "" {
		pinner = pinata.New(cfg.PinataJWT, cfg.PinataEndpoint)
		logger.Info("IPFS pinning enabled")
	}

	router := handlers.NewRouter(handlers.Deps{
		Store:    store,
		Engine:   ranking.NewEngine(store),
		Limiter:  limiter,
		Photos:   photos,
		Pinner:   pinner,
		Metrics:  metrics.New(nil),
		AdminKey: cfg.AdminAPIKey,
		Logger:   logger,
	})

	logger.Info("starting server", "port", cfg.HTTPPort)
	if err := http.ListenAndServe(":"+cfg.HTTPPort, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
