// Package cloud talks to the remote document store that holds one JSON
// document per user. The store is opaque to the rest of the service: load
// gives back the last saved document (or nothing), save replaces it.
package cloud

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"climb-performance-lab/internal/models"
)

// ErrNotFound is returned by Load when no document exists for the user yet.
var ErrNotFound = errors.New("no document for user")

// Client is a document-store client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *slog.Logger
}

// NewClient creates a document-store client for the given endpoint.
func NewClient(baseURL, apiKey string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     logger,
	}
}

// Load fetches the user's document. A 404 yields ErrNotFound; any other
// non-200 response or transport error fails the load.
func (c *Client) Load(ctx context.Context, userID string) (*models.Document, error) {
	endpoint := fmt.Sprintf("%s/v1/documents/%s", c.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.Error("cloud load failed", "error", err, "duration_ms", duration.Milliseconds())
		return nil, fmt.Errorf("cloud load failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Info("cloud_load", "user_id", userID, "status", resp.StatusCode, "duration_ms", duration.Milliseconds())

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrNotFound
	default:
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("cloud load returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var doc models.Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return &doc, nil
}

// Save replaces the user's document. Any non-2xx response fails the save;
// the caller decides what to do with unchanged in-memory state.
func (c *Client) Save(ctx context.Context, userID string, doc *models.Document) error {
	doc.LastUpdated = time.Now().UTC().Format(time.RFC3339)

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/documents/%s", c.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.Error("cloud save failed", "error", err, "duration_ms", duration.Milliseconds())
		return fmt.Errorf("cloud save failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Info("cloud_save", "user_id", userID, "status", resp.StatusCode, "duration_ms", duration.Milliseconds(), "bytes", len(body))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("cloud save returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}
	return nil
}
