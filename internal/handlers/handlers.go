// Package handlers implements the HTTP API: rider profile, climb catalog,
// activity log, import pipeline, analytics, and coaching endpoints.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// authorized checks the Authorization header against the internal API key.
// Read-only endpoints skip this; anything that mutates state requires it.
func authorized(r *http.Request, apiKey string) bool {
	return r.Header.Get("Authorization") == "Bearer "+apiKey
}

// writeJSON encodes v as the response body with the right content type.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("Failed to encode response", "error", err)
	}
}

// decodeJSON reads the request body into v.
func decodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
