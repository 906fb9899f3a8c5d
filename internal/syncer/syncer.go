// Package syncer runs the background autosave loop: whenever state has
// changed since the last save it pushes a snapshot to persistence, so an
// unexpected shutdown loses at most one interval of work.
package syncer

import (
	"context"
	"log/slog"
	"time"

	"climb-performance-lab/internal/metrics"
	"climb-performance-lab/internal/store"
)

// Syncer periodically flushes dirty state
type Syncer struct {
	store    *store.Store
	logger   *slog.Logger
	interval time.Duration
}

// New creates a syncer flushing at the given interval.
func New(st *store.Store, interval time.Duration) *Syncer {
	return &Syncer{
		store:    st,
		logger:   slog.Default(),
		interval: interval,
	}
}

// Start runs the autosave loop until the context is cancelled, then makes a
// final flush so shutdown never drops unsaved changes.
func (s *Syncer) Start(ctx context.Context) error {
	s.logger.Info("Starting autosave loop", "interval", s.interval)
	metrics.SyncerActive.Set(1)
	defer metrics.SyncerActive.Set(0)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Stopping autosave loop")
			s.flush(context.Background())
			return ctx.Err()
		case <-ticker.C:
			s.flush(ctx)
		}
	}
}

// flush saves when there is something to save. Failures are logged and the
// dirty flag stays set, so the next cycle retries.
func (s *Syncer) flush(ctx context.Context) {
	if !s.store.Dirty() {
		return
	}
	if err := s.store.Save(ctx); err != nil {
		s.logger.Error("Autosave failed", "error", err)
		return
	}
	s.logger.Info("Autosaved", "activities", s.store.ActivityCount())
}
