// Package handlers assembles the HTTP API: per-resource handler packages
// mounted on a chi router with logging, metrics, admin gating and admission
// control wired in.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	custommw "github.com/leonelcastillo/Tx/pkg/middleware"

	"github.com/leonelcastillo/Tx/pkg/handlers/rankings"
	"github.com/leonelcastillo/Tx/pkg/handlers/transactions"
	"github.com/leonelcastillo/Tx/pkg/metrics"
	"github.com/leonelcastillo/Tx/pkg/ranking"
	"github.com/leonelcastillo/Tx/pkg/ratelimit"
	"github.com/leonelcastillo/Tx/pkg/storage"
	"github.com/leonelcastillo/Tx/pkg/uploads"
)

// Deps carries everything the router mounts. Metrics, Photos and Pinner may be
// nil to disable the corresponding features.
type Deps struct {
	Store    storage.Storage
	Engine   *ranking.Engine
	Limiter  *ratelimit.Limiter
	Photos   *uploads.Saver
	Pinner   transactions.Pinner
	Metrics  *metrics.Metrics
	AdminKey string
	Logger   *slog.Logger
}

// NewRouter builds the chi router with all routes and middleware wired.
func NewRouter(d Deps) *chi.Mux {
	r := chi.NewRouter()
	r.Use(custommw.NewStructuredLogger(d.Logger))
	if d.Metrics != nil {
		r.Use(metrics.HTTPMiddleware(d.Metrics))
	}

	txh := transactions.NewTransactionsHandler(d.Store, d.Photos, d.Pinner, d.Logger)
	rkh := rankings.NewRankingsHandler(d.Engine, d.Store, d.AdminKey, d.Logger)

	admin := custommw.AdminOnly(d.AdminKey)
	limited := custommw.RateLimit(d.Limiter, d.Metrics)

	// Write path, gated by the admission controller.
	r.With(limited).Post("/transactions", txh.CreateTransaction)
	r.With(limited).Post("/submit", txh.SubmitTransaction)

	// Public reads.
	r.Get("/transactions", txh.ListTransactions)
	r.Get("/transactions/{id}", txh.GetTransactionById)
	r.Get("/ranking", rkh.GetRanking)
	r.Get("/ranking/{identifier}/contributors", rkh.GetContributors)
	r.Get("/stats", rkh.GetStats)

	// Admin operations.
	r.With(admin).Patch("/transactions/{id}", txh.UpdateTransaction)
	r.With(admin).Patch("/transactions/{id}/status", txh.UpdateStatus)
	r.With(admin).Patch("/transactions/{id}/collect", txh.CollectTransaction)
	r.With(admin).Delete("/transactions/{id}", txh.DeleteTransaction)
	r.Get("/export.csv", rkh.ExportCSV) // keyed by query param instead of header

	r.Get("/healthz", handleHealth(d.Store))
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	return r
}

func handleHealth(pinger storage.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := pinger.Ping(r.Context()); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}
}
