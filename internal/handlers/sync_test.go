package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSyncSave(t *testing.T) {
	st, db := setupStore(t)
	h := NewSyncHandler(st, db, testConfig())

	st.MarkDirty()
	rec := httptest.NewRecorder()
	h.HandleSave(rec, jsonRequest(t, http.MethodPost, "/sync/save", nil, true))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if st.Dirty() {
		t.Error("Expected store clean after save")
	}

	// The local mirror must hold the state
	doc, err := db.LoadDocument("user1")
	if err != nil {
		t.Fatalf("Failed to load mirrored document: %v", err)
	}
	if doc == nil || len(doc.Activities) != 1 {
		t.Errorf("Expected mirrored document with the seed activity, got %+v", doc)
	}
}

func TestSyncSaveRequiresAuth(t *testing.T) {
	st, db := setupStore(t)
	h := NewSyncHandler(st, db, testConfig())

	rec := httptest.NewRecorder()
	h.HandleSave(rec, jsonRequest(t, http.MethodPost, "/sync/save", nil, false))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401, got %d", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	st, db := setupStore(t)
	h := NewSyncHandler(st, db, testConfig())

	rec := httptest.NewRecorder()
	h.HandleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "OK" {
		t.Errorf("Expected OK body, got %q", rec.Body.String())
	}
}
