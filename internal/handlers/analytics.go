package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"climb-performance-lab/internal/analytics"
	"climb-performance-lab/internal/config"
	"climb-performance-lab/internal/store"
)

// AnalyticsHandler serves the FTP trend and best-power views.
type AnalyticsHandler struct {
	store  *store.Store
	config *config.Config
	logger *slog.Logger

	// now is overridable in tests so range cutoffs stay deterministic.
	now func() time.Time
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(st *store.Store, cfg *config.Config) *AnalyticsHandler {
	return &AnalyticsHandler{
		store:  st,
		config: cfg,
		logger: slog.Default(),
		now:    time.Now,
	}
}

// HandleFTPHistory handles GET /analytics/ftp-history
// Query parameters:
//   - range: 6m, 1y, or all (default: all)
func (h *AnalyticsHandler) HandleFTPHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rng := analytics.Range(r.URL.Query().Get("range"))
	switch rng {
	case analytics.RangeSixMonths, analytics.RangeOneYear, analytics.RangeAll:
	case "":
		rng = analytics.RangeAll
	default:
		http.Error(w, "Range must be one of: 6m, 1y, all", http.StatusBadRequest)
		return
	}

	cutoff := analytics.CutoffFor(rng, h.now())
	points := analytics.FTPHistory(h.store.RawActivities(), cutoff)

	current := 0
	if len(points) > 0 {
		current = points[len(points)-1].FTP
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"range":   rng,
		"points":  points,
		"current": current,
	})
}

// HandleTop handles GET /analytics/top
// Query parameters:
//   - metric: p5, p20, or p60 (default: p20)
//   - n: number of results (default: 5, max: 50)
func (h *AnalyticsHandler) HandleTop(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()

	metric := analytics.PowerMetric(query.Get("metric"))
	switch metric {
	case analytics.Peak5Min, analytics.Peak20Min, analytics.Peak60Min:
	case "":
		metric = analytics.Peak20Min
	default:
		http.Error(w, "Metric must be one of: p5, p20, p60", http.StatusBadRequest)
		return
	}

	n := 5
	if nStr := query.Get("n"); nStr != "" {
		var err error
		n, err = strconv.Atoi(nStr)
		if err != nil || n < 1 || n > 50 {
			http.Error(w, "n must be between 1 and 50", http.StatusBadRequest)
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"metric":       metric,
		"performances": analytics.TopPerformances(h.store.RawActivities(), metric, n),
	})
}
