package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"climb-performance-lab/internal/catalog"
	"climb-performance-lab/internal/config"
	"climb-performance-lab/internal/database"
	"climb-performance-lab/internal/profile"
	"climb-performance-lab/internal/store"
)

const testAPIKey = "test_api_key"

func testConfig() *config.Config {
	return &config.Config{InternalAPIKey: testAPIKey}
}

func setupStore(t *testing.T) (*store.Store, *database.DB) {
	t.Helper()
	db, err := database.Open(t.TempDir() + "/test.db")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cat := catalog.New(profile.NewSeededGenerator(42))
	st := store.New("user1", cat, nil, db, logger)
	return st, db
}

// jsonRequest builds a request with an optional JSON body and bearer auth.
func jsonRequest(t *testing.T, method, target string, body interface{}, auth bool) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	if auth {
		req.Header.Set("Authorization", "Bearer "+testAPIKey)
	}
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode response body: %v", err)
	}
}
