package rankings

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/leonelcastillo/Tx/pkg/api"
	"github.com/leonelcastillo/Tx/pkg/mapping"
	"github.com/leonelcastillo/Tx/pkg/ranking"
	"github.com/leonelcastillo/Tx/pkg/storage"
)

// RankingsHandler holds the dependencies for the leaderboard, stats and export
// handlers.
type RankingsHandler struct {
	Engine *ranking.Engine
	Store  storage.ApiStore
	// AdminKey gates the CSV export; empty means open.
	AdminKey string
	Logger   *slog.Logger
}

// NewRankingsHandler creates a new RankingsHandler.
func NewRankingsHandler(engine *ranking.Engine, store storage.ApiStore, adminKey string, logger *slog.Logger) *RankingsHandler {
	return &RankingsHandler{Engine: engine, Store: store, AdminKey: adminKey, Logger: logger}
}

// GetRanking returns the top identities ranked by total collected kilograms.
func (h *RankingsHandler) GetRanking(w http.ResponseWriter, r *http.Request) {
	limit := ranking.DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = v
	}

	entries, err := h.Engine.Rank(r.Context(), limit)
	if err != nil {
		h.Logger.Error("failed to build ranking", "error", err)
		http.Error(w, "Failed to build ranking", http.StatusInternalServerError)
		return
	}

	apiEntries := make([]*api.LeaderboardEntry, len(entries))
	for i, e := range entries {
		apiEntries[i] = mapping.ToApiLeaderboardEntry(&e)
	}
	respondJSON(w, http.StatusOK, apiEntries)
}

// GetContributors returns the raw contribution breakdown rolling up into the
// given identity. The identifier is the full wallet or phone string used as
// identity.
func (h *RankingsHandler) GetContributors(w http.ResponseWriter, r *http.Request) {
	identifier := chi.URLParam(r, "identifier")

	contributions, err := h.Engine.ContributorsOf(r.Context(), identifier)
	if err != nil {
		h.Logger.Error("failed to load contributors", "identifier", identifier, "error", err)
		http.Error(w, "Failed to load contributors", http.StatusInternalServerError)
		return
	}

	resp := api.ContributorsResponse{
		Identifier:   identifier,
		Contributors: make([]api.Contributor, len(contributions)),
	}
	for i, c := range contributions {
		resp.Contributors[i] = mapping.ToApiContributor(&c)
	}
	respondJSON(w, http.StatusOK, resp)
}

// GetStats reports the total collected kilograms and transaction count.
func (h *RankingsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Store.Stats(r.Context())
	if err != nil {
		h.Logger.Error("failed to load stats", "error", err)
		http.Error(w, "Failed to load stats", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, mapping.ToApiStats(stats))
}

// ExportCSV streams every transaction as CSV. Unlike the other admin routes it
// is gated by an api_key query parameter so the link works from a browser.
func (h *RankingsHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	if h.AdminKey != "" && r.URL.Query().Get("api_key") != h.AdminKey {
		http.Error(w, "admin api key required", http.StatusForbidden)
		return
	}

	txs, err := h.Store.ListTransactions(r.Context(), 0, 0)
	if err != nil {
		h.Logger.Error("failed to export transactions", "error", err)
		http.Error(w, "Failed to export transactions", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	cw := csv.NewWriter(w)
	defer cw.Flush()

	cw.Write([]string{"id", "name", "phone", "wallet", "weight_kg", "address", "photo", "date", "status"})
	for _, tx := range txs {
		cw.Write([]string{
			strconv.FormatInt(tx.Id, 10),
			tx.Name,
			stringOrEmpty(tx.Phone),
			stringOrEmpty(tx.Wallet),
			floatOrEmpty(tx.WeightKg),
			stringOrEmpty(tx.Address),
			stringOrEmpty(tx.Photo),
			tx.Date.Format(time.RFC3339),
			string(tx.Status),
		})
	}
}

func stringOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func floatOrEmpty(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
