package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"climb-performance-lab/internal/config"
	"climb-performance-lab/internal/dates"
	"climb-performance-lab/internal/importer"
	"climb-performance-lab/internal/intervals"
	"climb-performance-lab/internal/metrics"
	"climb-performance-lab/internal/store"
)

// RemoteLister fetches activities from the remote training platform.
type RemoteLister interface {
	ListActivities(ctx context.Context, oldest, newest time.Time) ([]intervals.Activity, error)
}

// ImportHandler drives the two ingestion paths: pasted CSV text and the
// remote activities API.
type ImportHandler struct {
	store  *store.Store
	remote RemoteLister
	config *config.Config
	logger *slog.Logger
}

// NewImportHandler creates a new import handler
func NewImportHandler(st *store.Store, remote RemoteLister, cfg *config.Config) *ImportHandler {
	return &ImportHandler{
		store:  st,
		remote: remote,
		config: cfg,
		logger: slog.Default(),
	}
}

type previewRequest struct {
	Text string `json:"text"`
}

type previewResponse struct {
	Candidates []importer.Candidate `json:"candidates"`
	Parsed     int                  `json:"parsed"`
	Duplicates int                  `json:"duplicates"`
}

// HandlePreview handles POST /import/preview: parse pasted export text into
// candidates without touching the log.
func (h *ImportHandler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !authorized(r, h.config.InternalAPIKey) {
		h.logger.Warn("Unauthorized import preview")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req previewRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	if req.Text == "" {
		http.Error(w, "No import text supplied", http.StatusBadRequest)
		return
	}

	candidates := importer.ParseDelimited(req.Text, h.store.RawActivities())
	resp := previewResponse{Candidates: candidates, Parsed: len(candidates)}
	for _, c := range candidates {
		if c.Duplicate {
			resp.Duplicates++
		}
	}

	metrics.ImportRowsTotal.WithLabelValues(metrics.SourceCSV, metrics.RowParsed).Add(float64(resp.Parsed))
	metrics.ImportRowsTotal.WithLabelValues(metrics.SourceCSV, metrics.RowDuplicate).Add(float64(resp.Duplicates))
	h.logger.Info("Import preview", "parsed", resp.Parsed, "duplicates", resp.Duplicates)
	writeJSON(w, http.StatusOK, resp)
}

type commitRequest struct {
	Candidates []importer.Candidate `json:"candidates"`
	Source     string               `json:"source,omitempty"`
}

type commitResponse struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Total    int `json:"total"`
}

// HandleCommit handles POST /import/commit: append the selected candidates
// to the log, re-checking for duplicates against the live state.
func (h *ImportHandler) HandleCommit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !authorized(r, h.config.InternalAPIKey) {
		h.logger.Warn("Unauthorized import commit")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req commitRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	source := metrics.SourceCSV
	if req.Source == "remote" {
		source = metrics.SourceRemote
	}

	selected := 0
	for _, c := range req.Candidates {
		if c.Selected {
			selected++
		}
	}

	added := importer.CommitSelected(req.Candidates, h.store.RawActivities())
	h.store.AppendActivities(added)

	metrics.ImportRowsTotal.WithLabelValues(source, metrics.RowCommitted).Add(float64(len(added)))
	metrics.ActivityCount.Set(float64(h.store.ActivityCount()))
	h.logger.Info("Import committed", "imported", len(added), "skipped", selected-len(added), "source", source)

	writeJSON(w, http.StatusOK, commitResponse{
		Imported: len(added),
		Skipped:  selected - len(added),
		Total:    h.store.ActivityCount(),
	})
}

type remoteRequest struct {
	Oldest    string   `json:"oldest"`
	Newest    string   `json:"newest"`
	Types     []string `json:"types,omitempty"`
	SkipDedup bool     `json:"skipDedup,omitempty"`
}

// HandleRemote handles POST /import/remote: fetch a date range from the
// remote API and return candidates for confirmation. A fetch superseded by a
// newer request returns 409 so stale results never reach the preview.
func (h *ImportHandler) HandleRemote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !authorized(r, h.config.InternalAPIKey) {
		h.logger.Warn("Unauthorized remote import")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req remoteRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	oldest := dates.ParseFlexible(req.Oldest)
	newest := dates.ParseFlexible(req.Newest)
	if oldest.Equal(dates.Epoch) || newest.Equal(dates.Epoch) || newest.Before(oldest) {
		http.Error(w, "Invalid date range", http.StatusBadRequest)
		return
	}

	remote, err := h.remote.ListActivities(r.Context(), oldest, newest)
	if err != nil {
		if errors.Is(err, intervals.ErrSuperseded) {
			h.logger.Info("Remote fetch superseded by a newer request")
			http.Error(w, "Superseded by a newer fetch", http.StatusConflict)
			return
		}
		metrics.RemoteFetchesTotal.WithLabelValues(metrics.ResultFailure).Inc()
		h.logger.Error("Remote fetch failed", "error", err)
		http.Error(w, "Remote fetch failed", http.StatusBadGateway)
		return
	}
	metrics.RemoteFetchesTotal.WithLabelValues(metrics.ResultSuccess).Inc()

	opts := importer.RemoteOptions{AllowedTypes: req.Types, SkipDedup: req.SkipDedup}
	candidates := importer.MapRemote(remote, h.store.RawActivities(), opts)

	duplicates := 0
	for _, c := range candidates {
		if c.Duplicate {
			duplicates++
		}
	}
	metrics.ImportRowsTotal.WithLabelValues(metrics.SourceRemote, metrics.RowParsed).Add(float64(len(candidates)))
	metrics.ImportRowsTotal.WithLabelValues(metrics.SourceRemote, metrics.RowDuplicate).Add(float64(duplicates))

	h.logger.Info("Remote fetch complete", "fetched", len(remote), "candidates", len(candidates), "duplicates", duplicates)
	writeJSON(w, http.StatusOK, previewResponse{
		Candidates: candidates,
		Parsed:     len(candidates),
		Duplicates: duplicates,
	})
}
