package handlers

import (
	"log/slog"
	"net/http"

	"climb-performance-lab/internal/coach"
	"climb-performance-lab/internal/config"
	"climb-performance-lab/internal/store"
)

// CoachHandler serves the templated coaching endpoints: climb workouts, the
// power-curve SWOT, and fueling targets.
type CoachHandler struct {
	store  *store.Store
	config *config.Config
	logger *slog.Logger
}

// NewCoachHandler creates a new coach handler
func NewCoachHandler(st *store.Store, cfg *config.Config) *CoachHandler {
	return &CoachHandler{
		store:  st,
		config: cfg,
		logger: slog.Default(),
	}
}

type workoutRequest struct {
	ClimbID string `json:"climbId"`
}

// HandleWorkout handles POST /coach/workout: a workout built for the given
// climb, defaulting to the active selection.
func (h *CoachHandler) HandleWorkout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req workoutRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	cat := h.store.Catalog()
	climb := cat.Active()
	if req.ClimbID != "" {
		found, ok := cat.Get(req.ClimbID)
		if !ok {
			http.Error(w, "Climb not found", http.StatusNotFound)
			return
		}
		climb = found
	}
	segments, _ := cat.ProfileFor(climb.ID)

	writeJSON(w, http.StatusOK, coach.WorkoutPlan(climb, segments))
}

// HandleSWOT handles POST /coach/swot: strengths and weaknesses derived from
// the rider's best recorded power numbers.
func (h *CoachHandler) HandleSWOT(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, coach.SWOTAnalysis(h.store.RawActivities()))
}

type fuelingRequest struct {
	DurationMinutes float64 `json:"durationMinutes"`
}

// HandleFueling handles POST /coach/fueling: carb and fluid targets for an
// effort of the given duration at the rider's stored weight.
func (h *CoachHandler) HandleFueling(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req fuelingRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	if req.DurationMinutes <= 0 {
		http.Error(w, "Duration must be positive", http.StatusBadRequest)
		return
	}

	weight := h.store.Profile().WeightKg
	writeJSON(w, http.StatusOK, coach.Fueling(weight, req.DurationMinutes))
}
