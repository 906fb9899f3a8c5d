package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label value constants to prevent typos
const (
	// Import sources
	SourceCSV    = "csv"
	SourceRemote = "remote"

	// Import row outcomes
	RowParsed    = "parsed"
	RowDuplicate = "duplicate"
	RowCommitted = "committed"

	// Persistence layers
	LayerCloud = "cloud"
	LayerLocal = "local"

	// Persistence operations and results
	OpSave        = "save"
	OpLoad        = "load"
	ResultSuccess = "success"
	ResultFailure = "failure"

	// HTTP endpoints
	EndpointProfile    = "profile"
	EndpointClimbs     = "climbs"
	EndpointActivities = "activities"
	EndpointImport     = "import"
	EndpointAnalytics  = "analytics"
	EndpointCoach      = "coach"
	EndpointPower      = "power"
	EndpointSync       = "sync"
	EndpointHealth     = "health"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"endpoint", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"endpoint", "status_code"},
	)
)

// Import Metrics
var (
	ImportRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "import_rows_total",
			Help: "Import rows by source and outcome",
		},
		[]string{"source", "outcome"},
	)

	RemoteFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "remote_fetches_total",
			Help: "Remote activity-list fetches by result",
		},
		[]string{"result"},
	)
)

// Profile generator metrics
var (
	ProfilesGeneratedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "climb_profiles_generated_total",
			Help: "Synthetic climb profiles generated",
		},
	)
)

// Persistence and state metrics
var (
	PersistenceOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "persistence_operations_total",
			Help: "Save/load operations by layer and result",
		},
		[]string{"layer", "operation", "result"},
	)

	StateDirty = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "state_dirty",
			Help: "1 when in-memory state has unsaved changes",
		},
	)

	ActivityCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "activity_log_size",
			Help: "Number of activities in the log",
		},
	)

	UserClimbCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "user_climbs",
			Help: "Number of user-defined climbs",
		},
	)

	SyncerActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "syncer_active",
			Help: "1 when the background cloud syncer is running",
		},
	)
)
