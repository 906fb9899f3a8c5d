package handlers

import (
	"log/slog"
	"net/http"

	"climb-performance-lab/internal/config"
	"climb-performance-lab/internal/models"
	"climb-performance-lab/internal/physics"
	"climb-performance-lab/internal/store"
)

// ProfileHandler serves the rider profile and the power calculator.
type ProfileHandler struct {
	store  *store.Store
	config *config.Config
	logger *slog.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(st *store.Store, cfg *config.Config) *ProfileHandler {
	return &ProfileHandler{
		store:  st,
		config: cfg,
		logger: slog.Default(),
	}
}

// HandleProfile handles GET and PUT /profile
func (h *ProfileHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.store.Profile())

	case http.MethodPut:
		if !authorized(r, h.config.InternalAPIKey) {
			h.logger.Warn("Unauthorized profile update")
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var p models.RiderProfile
		if err := decodeJSON(r, &p); err != nil {
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}
		if p.WeightKg <= 0 || p.HeightM <= 0 || p.FTPWatts < 0 {
			http.Error(w, "Profile values must be positive", http.StatusBadRequest)
			return
		}

		h.store.SetProfile(p)
		h.logger.Info("Profile updated", "weight", p.WeightKg, "ftp", p.FTPWatts)
		writeJSON(w, http.StatusOK, p)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// powerEstimateRequest is the calculator input. Weight defaults to the stored
// profile when omitted.
type powerEstimateRequest struct {
	GradientPercent float64  `json:"gradient"`
	SpeedKmh        float64  `json:"speed"`
	WeightKg        *float64 `json:"weight,omitempty"`

	// Goal-tracker fields, used when a target time is given.
	DistanceKm    float64 `json:"distance,omitempty"`
	TargetMinutes float64 `json:"targetMinutes,omitempty"`
}

type powerEstimateResponse struct {
	RequiredWatts int                   `json:"requiredWatts"`
	Goal          *physics.GoalEstimate `json:"goal,omitempty"`
}

// HandlePowerEstimate handles POST /power/estimate
func (h *ProfileHandler) HandlePowerEstimate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req powerEstimateRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	profile := h.store.Profile()
	weight := profile.WeightKg
	if req.WeightKg != nil {
		weight = *req.WeightKg
	}

	resp := powerEstimateResponse{
		RequiredWatts: physics.RequiredPower(req.GradientPercent, weight, req.SpeedKmh),
	}
	if req.TargetMinutes > 0 && req.DistanceKm > 0 {
		goal := physics.EstimateGoal(req.DistanceKm, req.GradientPercent, weight, profile.FTPWatts, req.TargetMinutes)
		resp.Goal = &goal
	}

	writeJSON(w, http.StatusOK, resp)
}
