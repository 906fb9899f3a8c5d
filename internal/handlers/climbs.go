package handlers

import (
	"log/slog"
	"net/http"

	"climb-performance-lab/internal/catalog"
	"climb-performance-lab/internal/coach"
	"climb-performance-lab/internal/config"
	"climb-performance-lab/internal/metrics"
	"climb-performance-lab/internal/store"
)

// ClimbsHandler serves the climb catalog: listing, creating and deleting
// custom climbs, selection, elevation profiles, and race plans.
type ClimbsHandler struct {
	store  *store.Store
	config *config.Config
	logger *slog.Logger
}

// NewClimbsHandler creates a new climbs handler
func NewClimbsHandler(st *store.Store, cfg *config.Config) *ClimbsHandler {
	return &ClimbsHandler{
		store:  st,
		config: cfg,
		logger: slog.Default(),
	}
}

// createClimbRequest is the custom-climb creation payload.
type createClimbRequest struct {
	Name       string  `json:"name"`
	Country    string  `json:"country"`
	Flag       string  `json:"flag"`
	DistanceKm float64 `json:"distance"`
	ElevationM float64 `json:"elevation"`
}

// HandleClimbs handles GET /climbs (with filter query parameters) and
// POST /climbs (create a custom climb)
func (h *ClimbsHandler) HandleClimbs(w http.ResponseWriter, r *http.Request) {
	cat := h.store.Catalog()

	switch r.Method {
	case http.MethodGet:
		query := r.URL.Query()
		filter := catalog.Filter{
			Type:    query.Get("type"),
			Country: query.Get("country"),
			Region:  query.Get("region"),
			Search:  query.Get("search"),
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"climbs": cat.Filtered(filter),
			"active": cat.Active().ID,
		})

	case http.MethodPost:
		if !authorized(r, h.config.InternalAPIKey) {
			h.logger.Warn("Unauthorized climb creation")
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var req createClimbRequest
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}

		climb, ok := cat.Create(req.Name, req.Country, req.Flag, req.DistanceKm, req.ElevationM)
		if !ok {
			http.Error(w, "Climb needs a name and a positive distance", http.StatusBadRequest)
			return
		}

		h.store.MarkDirty()
		metrics.ProfilesGeneratedTotal.Inc()
		metrics.UserClimbCount.Set(float64(len(cat.UserClimbs())))
		h.logger.Info("Custom climb created", "id", climb.ID, "name", climb.Name)
		writeJSON(w, http.StatusCreated, climb)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleClimbByID handles DELETE /climbs/{id}
func (h *ClimbsHandler) HandleClimbByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !authorized(r, h.config.InternalAPIKey) {
		h.logger.Warn("Unauthorized climb deletion")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id := r.PathValue("id")
	cat := h.store.Catalog()
	if _, found := cat.Get(id); !found {
		http.Error(w, "Climb not found", http.StatusNotFound)
		return
	}
	if !cat.Delete(id) {
		http.Error(w, "Built-in climbs cannot be deleted", http.StatusForbidden)
		return
	}

	h.store.MarkDirty()
	metrics.UserClimbCount.Set(float64(len(cat.UserClimbs())))
	h.logger.Info("Custom climb deleted", "id", id)
	writeJSON(w, http.StatusOK, map[string]string{"active": cat.Active().ID})
}

// HandleSelect handles POST /climbs/{id}/select
func (h *ClimbsHandler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.PathValue("id")
	cat := h.store.Catalog()
	if !cat.Select(id) {
		http.Error(w, "Climb not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, cat.Active())
}

// HandleProfile handles GET /climbs/{id}/profile
func (h *ClimbsHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.PathValue("id")
	segments, ok := h.store.Catalog().ProfileFor(id)
	if !ok {
		http.Error(w, "Climb not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"profile": segments})
}

// HandlePlan handles GET /climbs/{id}/plan, the per-segment pacing table
// built from the rider's FTP.
func (h *ClimbsHandler) HandlePlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.PathValue("id")
	cat := h.store.Catalog()
	climb, found := cat.Get(id)
	if !found {
		http.Error(w, "Climb not found", http.StatusNotFound)
		return
	}
	segments, _ := cat.ProfileFor(id)

	ftp := h.store.Profile().FTPWatts
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"climb": climb,
		"plan":  coach.RacePlan(segments, ftp),
	})
}
