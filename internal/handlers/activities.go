package handlers

import (
	"log/slog"
	"net/http"

	"climb-performance-lab/internal/config"
	"climb-performance-lab/internal/metrics"
	"climb-performance-lab/internal/store"
)

// ActivitiesHandler serves the training log.
type ActivitiesHandler struct {
	store  *store.Store
	config *config.Config
	logger *slog.Logger
}

// NewActivitiesHandler creates a new activities handler
func NewActivitiesHandler(st *store.Store, cfg *config.Config) *ActivitiesHandler {
	return &ActivitiesHandler{
		store:  st,
		config: cfg,
		logger: slog.Default(),
	}
}

// HandleActivities handles GET /activities, returning the log sorted newest
// first by parsed date.
func (h *ActivitiesHandler) HandleActivities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	acts := h.store.Activities()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"activities": acts,
		"count":      len(acts),
	})
}

// HandleActivityByID handles DELETE /activities/{id}
func (h *ActivitiesHandler) HandleActivityByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !authorized(r, h.config.InternalAPIKey) {
		h.logger.Warn("Unauthorized activity deletion")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id := r.PathValue("id")
	if !h.store.DeleteActivity(id) {
		http.Error(w, "Activity not found", http.StatusNotFound)
		return
	}

	metrics.ActivityCount.Set(float64(h.store.ActivityCount()))
	h.logger.Info("Activity deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}
