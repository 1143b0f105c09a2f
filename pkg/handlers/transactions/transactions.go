package transactions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/leonelcastillo/Tx/pkg/api"
	"github.com/leonelcastillo/Tx/pkg/mapping"
	"github.com/leonelcastillo/Tx/pkg/models"
	"github.com/leonelcastillo/Tx/pkg/storage"
	"github.com/leonelcastillo/Tx/pkg/uploads"
)

// maxUploadBytes caps multipart submissions, photo included.
const maxUploadBytes = 16 << 20

// Pinner mirrors the IPFS pinning client. It is optional; a nil Pinner
// disables pinning entirely.
type Pinner interface {
	PinFile(ctx context.Context, path string) (string, error)
}

// TransactionsHandler holds the dependencies for transaction-related handlers.
type TransactionsHandler struct {
	Store  storage.TransactionStore
	Photos *uploads.Saver
	Pinner Pinner
	Logger *slog.Logger
}

// NewTransactionsHandler creates a new TransactionsHandler. Photos and Pinner
// may be nil when the corresponding features are disabled.
func NewTransactionsHandler(store storage.TransactionStore, photos *uploads.Saver, pinner Pinner, logger *slog.Logger) *TransactionsHandler {
	return &TransactionsHandler{Store: store, Photos: photos, Pinner: pinner, Logger: logger}
}

// CreateTransaction handles the JSON write path. The admission middleware has
// already run by the time this is reached.
func (h *TransactionsHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var newTx api.NewTransaction
	if err := json.NewDecoder(r.Body).Decode(&newTx); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(newTx.Name) == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	if newTx.WeightKg != nil && *newTx.WeightKg <= 0 {
		http.Error(w, "weight_kg must be a positive number if provided", http.StatusBadRequest)
		return
	}

	createdTx, err := h.Store.CreateTransaction(r.Context(), mapping.ToDomainNewTransaction(&newTx))
	if err != nil {
		h.Logger.Error("failed to create transaction", "error", err)
		http.Error(w, "Failed to create transaction", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusCreated, mapping.ToApiTransaction(createdTx))
}

// SubmitTransaction handles the multipart form write path used by the public
// submission form: optional photo upload, a honeypot field, and weight
// arriving as a string that may legitimately be empty.
func (h *TransactionsHandler) SubmitTransaction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, fmt.Sprintf("Invalid form data: %v", err), http.StatusBadRequest)
		return
	}

	// Bots tend to fill every field, including hidden ones.
	if strings.TrimSpace(r.FormValue("hp")) != "" {
		http.Error(w, "Invalid submission", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	weightKg, err := parseOptionalWeight(r.FormValue("weight_kg"))
	if err != nil {
		http.Error(w, "weight_kg must be a positive number if provided", http.StatusBadRequest)
		return
	}

	var photo *string
	if file, header, err := r.FormFile("photo"); err == nil {
		defer file.Close()
		stored, err := h.savePhoto(file, header)
		if err != nil {
			h.Logger.Error("failed to save uploaded photo", "error", err)
			http.Error(w, "Error saving uploaded file", http.StatusInternalServerError)
			return
		}
		photo = &stored
	} else if !errors.Is(err, http.ErrMissingFile) {
		http.Error(w, fmt.Sprintf("Invalid photo upload: %v", err), http.StatusBadRequest)
		return
	}

	newTx := &models.NewTransaction{
		Name:     name,
		Phone:    optionalFormValue(r, "phone"),
		Wallet:   optionalFormValue(r, "wallet"),
		WeightKg: weightKg,
		Address:  optionalFormValue(r, "address"),
		Photo:    photo,
	}

	createdTx, err := h.Store.CreateTransaction(r.Context(), newTx)
	if err != nil {
		h.Logger.Error("failed to create submitted transaction", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusCreated, mapping.ToApiTransaction(createdTx))
}

// GetTransactionById handles the logic for retrieving a transaction by its ID.
func (h *TransactionsHandler) GetTransactionById(w http.ResponseWriter, r *http.Request) {
	id, ok := transactionID(w, r)
	if !ok {
		return
	}

	domainTx, err := h.Store.GetTransaction(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrTransactionNotFound) {
			http.Error(w, "Transaction not found", http.StatusNotFound)
			return
		}
		h.Logger.Error("failed to get transaction", "id", id, "error", err)
		http.Error(w, "Failed to retrieve transaction", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, mapping.ToApiTransaction(domainTx))
}

// ListTransactions handles the logic for retrieving a page of transactions.
func (h *TransactionsHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	skip := intQuery(r, "skip", 0)
	limit := intQuery(r, "limit", 100)

	domainTxs, err := h.Store.ListTransactions(r.Context(), skip, limit)
	if err != nil {
		h.Logger.Error("failed to list transactions", "error", err)
		http.Error(w, "Failed to retrieve transactions", http.StatusInternalServerError)
		return
	}

	apiTxs := make([]*api.Transaction, len(domainTxs))
	for i, tx := range domainTxs {
		apiTxs[i] = mapping.ToApiTransaction(&tx)
	}
	respondJSON(w, http.StatusOK, apiTxs)
}

// UpdateTransaction handles a partial update of the mutable submission fields.
func (h *TransactionsHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := transactionID(w, r)
	if !ok {
		return
	}

	var updates api.UpdateTransaction
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if updates.WeightKg != nil && *updates.WeightKg <= 0 {
		http.Error(w, "weight_kg must be a positive number if provided", http.StatusBadRequest)
		return
	}

	update := mapping.ToDomainTransactionUpdate(&updates)
	if !update.HasFields() {
		http.Error(w, "No updatable fields provided", http.StatusBadRequest)
		return
	}

	updated, err := h.Store.UpdateTransaction(r.Context(), id, update)
	if err != nil {
		if errors.Is(err, storage.ErrTransactionNotFound) {
			http.Error(w, "Transaction not found", http.StatusNotFound)
			return
		}
		h.Logger.Error("failed to update transaction", "id", id, "error", err)
		http.Error(w, "Failed to update transaction", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, mapping.ToApiTransaction(updated))
}

// UpdateStatus handles a status change. Setting COLLECTED directly is
// rejected: collection must go through the collect endpoint, which records the
// collected weight and photo alongside the status.
func (h *TransactionsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := transactionID(w, r)
	if !ok {
		return
	}

	var body api.UpdateStatus
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	status := models.TransactionStatus(body.Status)
	if !status.IsValid() {
		http.Error(w, fmt.Sprintf("Invalid status %q", body.Status), http.StatusBadRequest)
		return
	}
	if status == models.COLLECTED {
		http.Error(w, "Use the collect endpoint to mark as collected and provide collected weight/photo", http.StatusBadRequest)
		return
	}

	updated, err := h.Store.UpdateStatus(r.Context(), id, status)
	if err != nil {
		if errors.Is(err, storage.ErrTransactionNotFound) {
			http.Error(w, "Transaction not found", http.StatusNotFound)
			return
		}
		h.Logger.Error("failed to update transaction status", "id", id, "error", err)
		http.Error(w, "Failed to update transaction", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, mapping.ToApiTransaction(updated))
}

// CollectTransaction records the actual collected weight and optional
// collected photo. Re-collecting overwrites the previous outcome.
func (h *TransactionsHandler) CollectTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := transactionID(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, fmt.Sprintf("Invalid form data: %v", err), http.StatusBadRequest)
		return
	}

	raw := strings.TrimSpace(r.FormValue("collected_weight"))
	if raw == "" {
		http.Error(w, "collected_weight is required when marking collected", http.StatusBadRequest)
		return
	}
	weight, err := strconv.ParseFloat(raw, 64)
	if err != nil || weight <= 0 {
		http.Error(w, "collected_weight must be a positive number", http.StatusBadRequest)
		return
	}

	var photo *string
	if file, header, err := r.FormFile("collected_photo"); err == nil {
		defer file.Close()
		stored, err := h.savePhoto(file, header)
		if err != nil {
			h.Logger.Error("failed to save collected photo", "error", err)
			http.Error(w, "Error saving uploaded file", http.StatusInternalServerError)
			return
		}
		photo = &stored
	} else if !errors.Is(err, http.ErrMissingFile) {
		http.Error(w, fmt.Sprintf("Invalid photo upload: %v", err), http.StatusBadRequest)
		return
	}

	collected, err := h.Store.CollectTransaction(r.Context(), id, weight, photo)
	if err != nil {
		if errors.Is(err, storage.ErrTransactionNotFound) {
			http.Error(w, "Transaction not found", http.StatusNotFound)
			return
		}
		h.Logger.Error("failed to collect transaction", "id", id, "error", err)
		http.Error(w, "Failed to collect transaction", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, mapping.ToApiTransaction(collected))
}

// DeleteTransaction removes a transaction.
func (h *TransactionsHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := transactionID(w, r)
	if !ok {
		return
	}

	if err := h.Store.DeleteTransaction(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrTransactionNotFound) {
			http.Error(w, "Transaction not found", http.StatusNotFound)
			return
		}
		h.Logger.Error("failed to delete transaction", "id", id, "error", err)
		http.Error(w, "Failed to delete transaction", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, api.Deleted{Ok: true, Id: id})
}

// savePhoto stores the upload on disk and, when a pinner is configured, pins
// it to IPFS in the background. A failed pin is logged and otherwise ignored.
func (h *TransactionsHandler) savePhoto(file multipart.File, header *multipart.FileHeader) (string, error) {
	if h.Photos == nil {
		return "", errors.New("photo uploads are not configured")
	}
	stored, err := h.Photos.Save(header.Filename, file)
	if err != nil {
		return "", err
	}

	if h.Pinner != nil {
		path := h.Photos.Path(stored)
		go func() {
			hash, err := h.Pinner.PinFile(context.Background(), path)
			if err != nil {
				h.Logger.Warn("failed to pin photo", "file", stored, "error", err)
				return
			}
			h.Logger.Info("photo pinned", "file", stored, "ipfs_hash", hash)
		}()
	}
	return stored, nil
}

func parseOptionalWeight(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	w, err := strconv.ParseFloat(raw, 64)
	if err != nil || w <= 0 {
		return nil, fmt.Errorf("invalid weight %q", raw)
	}
	return &w, nil
}

func optionalFormValue(r *http.Request, field string) *string {
	v := strings.TrimSpace(r.FormValue(field))
	if v == "" {
		return nil
	}
	return &v
}

func transactionID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid transaction id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func intQuery(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
