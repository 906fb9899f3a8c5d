package metrics

import (
	"context"
	"log/slog"
	"time"
)

// State is the slice of application state the collector samples.
type State interface {
	Dirty() bool
	ActivityCount() int
	UserClimbCount() int
}

// StartStateCollector starts a background goroutine that periodically
// samples store gauges (dirty flag, log size, user climb count).
func StartStateCollector(ctx context.Context, state State, interval time.Duration) {
	logger := slog.Default()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Collect once immediately
	collectState(state)

	for {
		select {
		case <-ctx.Done():
			logger.Info("State collector stopping")
			return
		case <-ticker.C:
			collectState(state)
		}
	}
}

func collectState(state State) {
	if state.Dirty() {
		StateDirty.Set(1)
	} else {
		StateDirty.Set(0)
	}
	ActivityCount.Set(float64(state.ActivityCount()))
	UserClimbCount.Set(float64(state.UserClimbCount()))
}
