// Package intervals is a minimal client for the Intervals.icu activities
// API, the remote source for ride imports.
package intervals

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"
)

const (
	defaultBaseURL = "https://intervals.icu"
	// The API authenticates with HTTP Basic auth: this literal username and
	// the athlete's API key as the password.
	basicAuthUser = "API_KEY"
)

// Client is an Intervals.icu API client. A single fetch is issued per call;
// there is no retry. Overlapping fetches are resolved last-request-wins: a
// response belonging to a superseded request is discarded.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	athleteID  string
	logger     *slog.Logger

	mu         sync.Mutex
	generation uint64
}

// HTTPError is returned for non-200 responses.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("intervals API returned status %d: %s", e.StatusCode, e.Body)
}

// NewClient creates a client for the given athlete.
func NewClient(apiKey, athleteID string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		athleteID:  athleteID,
		logger:     logger,
	}
}

// SetBaseURL overrides the API endpoint, for tests.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

// Activity is the summary shape returned by the activities list endpoint.
type Activity struct {
	ID               string  `json:"id"`
	StartDateLocal   string  `json:"start_date_local"`
	Name             string  `json:"name"`
	Type             string  `json:"type"`
	MovingTime       int     `json:"moving_time"`
	DistanceM        float64 `json:"distance"`
	ElevationGainM   float64 `json:"total_elevation_gain"`
	AverageSpeedMS   float64 `json:"average_speed"`
	AverageHeartRate float64 `json:"average_heartrate"`
	AverageCadence   float64 `json:"average_cadence"`
	AverageWatts     float64 `json:"average_watts"`
}

// ErrSuperseded is returned when a newer fetch started while this one was in
// flight; its results must not be used.
var ErrSuperseded = fmt.Errorf("fetch superseded by a newer request")

// ListActivities fetches the athlete's activities between oldest and newest
// (inclusive calendar dates). A non-200 response fails the whole fetch.
func (c *Client) ListActivities(ctx context.Context, oldest, newest time.Time) ([]Activity, error) {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	params := url.Values{
		"oldest": {oldest.Format("2006-01-02")},
		"newest": {newest.Format("2006-01-02")},
	}
	endpoint := fmt.Sprintf("%s/api/v1/athlete/%s/activities?%s", c.baseURL, c.athleteID, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(basicAuthUser, c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.Error("activities fetch failed", "error", err, "duration_ms", duration.Milliseconds())
		return nil, fmt.Errorf("activities fetch failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Info("intervals_api_request",
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration_ms", duration.Milliseconds())

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(bodyBytes)}
	}

	var activities []Activity
	if err := json.NewDecoder(resp.Body).Decode(&activities); err != nil {
		return nil, fmt.Errorf("failed to decode activities: %w", err)
	}

	// Last request wins: if another fetch started after ours, drop this one.
	c.mu.Lock()
	superseded := gen != c.generation
	c.mu.Unlock()
	if superseded {
		c.logger.Warn("discarding stale activities fetch", "generation", gen)
		return nil, ErrSuperseded
	}

	return activities, nil
}
