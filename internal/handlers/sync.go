package handlers

import (
	"log/slog"
	"net/http"

	"climb-performance-lab/internal/config"
	"climb-performance-lab/internal/database"
	"climb-performance-lab/internal/store"
)

// SyncHandler serves the explicit save endpoint and the health check.
type SyncHandler struct {
	store  *store.Store
	db     *database.DB
	config *config.Config
	logger *slog.Logger
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(st *store.Store, db *database.DB, cfg *config.Config) *SyncHandler {
	return &SyncHandler{
		store:  st,
		db:     db,
		config: cfg,
		logger: slog.Default(),
	}
}

// HandleSave handles POST /sync/save: push current state to persistence now
// instead of waiting for a background cycle.
func (h *SyncHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !authorized(r, h.config.InternalAPIKey) {
		h.logger.Warn("Unauthorized save request")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.store.Save(r.Context()); err != nil {
		h.logger.Error("Save failed", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"status": "error",
			"error":  err.Error(),
		})
		return
	}

	h.logger.Info("State saved", "activities", h.store.ActivityCount())
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// HandleHealth handles GET /health, checking database reachability.
func (h *SyncHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Health(); err != nil {
		h.logger.Error("Health check failed", "error", err)
		http.Error(w, "Database unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
