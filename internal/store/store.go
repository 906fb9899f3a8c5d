// Package store holds the in-memory application state (rider profile,
// activity log, user climbs) and orchestrates persistence: cloud document
// store first, local SQLite fallback when the cloud is unreachable.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"climb-performance-lab/internal/analytics"
	"climb-performance-lab/internal/catalog"
	"climb-performance-lab/internal/cloud"
	"climb-performance-lab/internal/database"
	"climb-performance-lab/internal/metrics"
	"climb-performance-lab/internal/models"
)

// CloudClient is the remote persistence collaborator. Nil-able: when the
// cloud is disabled the store runs local-only.
type CloudClient interface {
	Load(ctx context.Context, userID string) (*models.Document, error)
	Save(ctx context.Context, userID string, doc *models.Document) error
}

// Source describes where a load was satisfied from.
type Source string

const (
	SourceCloud Source = "cloud"
	SourceLocal Source = "local"
	SourceFresh Source = "fresh"
)

// Store is the mutable application state. All methods are safe for
// concurrent use by HTTP handlers.
type Store struct {
	mu         sync.RWMutex
	userID     string
	profile    models.RiderProfile
	activities []models.Activity
	catalog    *catalog.Catalog
	dirty      bool
	gen        uint64 // bumped on every mutation, guards Save's dirty reset

	cloud  CloudClient
	local  *database.DB
	logger *slog.Logger
}

// seedActivities is the initial logbook for a fresh install.
var seedActivities = []models.Activity{
	{
		ID: "a1", Date: "01/09/2023", Name: "Start Logboek", DurationSeconds: 3600,
		DistanceKm: 30, ElevationM: 200, SpeedKmh: 30, HeartRate: 140, Cadence: 85,
		Power: 180, NormalizedPower: 190, TSS: 60,
		Peak5MinPower: 220, Peak20MinPower: 200, Peak60MinPower: 190,
	},
}

// New creates a store with default state.
func New(userID string, cat *catalog.Catalog, cloudClient CloudClient, local *database.DB, logger *slog.Logger) *Store {
	acts := make([]models.Activity, len(seedActivities))
	copy(acts, seedActivities)
	return &Store{
		userID:     userID,
		profile:    models.DefaultRiderProfile(),
		activities: acts,
		catalog:    cat,
		cloud:      cloudClient,
		local:      local,
		logger:     logger,
	}
}

// Load pulls persisted state, preferring the cloud document and falling back
// to the local database when the cloud fails or is disabled. A fresh user
// (no document anywhere) keeps the defaults. Load failure of both layers is
// reported but leaves the defaults usable.
func (s *Store) Load(ctx context.Context) (Source, error) {
	if s.cloud != nil {
		doc, err := s.cloud.Load(ctx, s.userID)
		switch {
		case err == nil:
			metrics.PersistenceOpsTotal.WithLabelValues(metrics.LayerCloud, metrics.OpLoad, metrics.ResultSuccess).Inc()
			s.apply(doc)
			return SourceCloud, nil
		case errors.Is(err, cloud.ErrNotFound):
			return SourceFresh, nil
		default:
			metrics.PersistenceOpsTotal.WithLabelValues(metrics.LayerCloud, metrics.OpLoad, metrics.ResultFailure).Inc()
			s.logger.Warn("cloud load failed, falling back to local store", "error", err)
		}
	}

	doc, err := s.local.LoadDocument(s.userID)
	if err != nil {
		return SourceFresh, fmt.Errorf("local load failed: %w", err)
	}
	if doc == nil {
		return SourceFresh, nil
	}
	s.apply(doc)
	return SourceLocal, nil
}

func (s *Store) apply(doc *models.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc.Profile != nil {
		s.profile = *doc.Profile
	}
	if doc.Activities != nil {
		s.activities = doc.Activities
	}
	s.catalog.SetUserClimbs(doc.UserClimbs)
	s.dirty = false
}

// Save pushes the current state to the cloud and mirrors it locally. A cloud
// failure is returned to the caller (for the user-visible notification) with
// in-memory state unchanged; the local mirror is written regardless so the
// fallback stays current.
//
// The dirty flag is cleared only when no mutation landed while the save was
// in flight; a change made during the (slow, unlocked) cloud write stays
// dirty and is picked up by the next autosave cycle.
func (s *Store) Save(ctx context.Context) error {
	s.mu.RLock()
	savedGen := s.gen
	s.mu.RUnlock()

	doc := s.Snapshot()

	if err := s.local.SaveDocument(s.userID, doc); err != nil {
		metrics.PersistenceOpsTotal.WithLabelValues(metrics.LayerLocal, metrics.OpSave, metrics.ResultFailure).Inc()
		s.logger.Error("local mirror save failed", "error", err)
	} else {
		metrics.PersistenceOpsTotal.WithLabelValues(metrics.LayerLocal, metrics.OpSave, metrics.ResultSuccess).Inc()
	}

	if s.cloud != nil {
		if err := s.cloud.Save(ctx, s.userID, doc); err != nil {
			metrics.PersistenceOpsTotal.WithLabelValues(metrics.LayerCloud, metrics.OpSave, metrics.ResultFailure).Inc()
			return fmt.Errorf("cloud save failed: %w", err)
		}
		metrics.PersistenceOpsTotal.WithLabelValues(metrics.LayerCloud, metrics.OpSave, metrics.ResultSuccess).Inc()
	}

	s.mu.Lock()
	if s.gen == savedGen {
		s.dirty = false
	}
	s.mu.Unlock()
	return nil
}

// Snapshot builds the persistence document from current state.
func (s *Store) Snapshot() *models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile := s.profile
	acts := make([]models.Activity, len(s.activities))
	copy(acts, s.activities)
	return &models.Document{
		Profile:    &profile,
		Activities: acts,
		UserClimbs: s.catalog.UserClimbs(),
	}
}

// Profile returns the rider profile.
func (s *Store) Profile() models.RiderProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// SetProfile replaces the rider profile.
func (s *Store) SetProfile(p models.RiderProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = p
	s.markDirtyLocked()
}

// Activities returns the log sorted newest first by parsed date.
func (s *Store) Activities() []models.Activity {
	s.mu.RLock()
	acts := make([]models.Activity, len(s.activities))
	copy(acts, s.activities)
	s.mu.RUnlock()
	return analytics.SortByDateDesc(acts)
}

// RawActivities returns the log in insertion order, for dedup checks.
func (s *Store) RawActivities() []models.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acts := make([]models.Activity, len(s.activities))
	copy(acts, s.activities)
	return acts
}

// AppendActivities adds rides to the log.
func (s *Store) AppendActivities(acts []models.Activity) {
	if len(acts) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities = append(s.activities, acts...)
	s.markDirtyLocked()
}

// DeleteActivity removes a ride by id. Returns false if the id is unknown.
func (s *Store) DeleteActivity(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.activities {
		if a.ID == id {
			s.activities = append(s.activities[:i], s.activities[i+1:]...)
			s.markDirtyLocked()
			return true
		}
	}
	return false
}

// MarkDirty flags the state as needing a save, used when the catalog is
// mutated directly.
func (s *Store) MarkDirty() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markDirtyLocked()
}

// markDirtyLocked records a mutation. Callers must hold mu.
func (s *Store) markDirtyLocked() {
	s.dirty = true
	s.gen++
}

// Dirty reports whether state has changed since the last successful save.
func (s *Store) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// ActivityCount reports the size of the training log.
func (s *Store) ActivityCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.activities)
}

// UserClimbCount reports how many custom climbs the user has created.
func (s *Store) UserClimbCount() int {
	return len(s.catalog.UserClimbs())
}

// Catalog exposes the climb collections.
func (s *Store) Catalog() *catalog.Catalog {
	return s.catalog
}
