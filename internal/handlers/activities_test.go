package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"climb-performance-lab/internal/models"
)

func TestListActivitiesSeeded(t *testing.T) {
	st, _ := setupStore(t)
	h := NewActivitiesHandler(st, testConfig())

	rec := httptest.NewRecorder()
	h.HandleActivities(rec, jsonRequest(t, http.MethodGet, "/activities", nil, false))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var resp struct {
		Activities []models.Activity `json:"activities"`
		Count      int               `json:"count"`
	}
	decodeBody(t, rec, &resp)
	if resp.Count != 1 {
		t.Fatalf("Expected the seed activity, got %d", resp.Count)
	}
	if resp.Activities[0].Name != "Start Logboek" {
		t.Errorf("Unexpected seed activity: %s", resp.Activities[0].Name)
	}
}

func TestListActivitiesSortedNewestFirst(t *testing.T) {
	st, _ := setupStore(t)
	h := NewActivitiesHandler(st, testConfig())

	st.AppendActivities([]models.Activity{
		{ID: "a2", Date: "15/01/2024", Name: "Winter Base", DurationSeconds: 5400},
		{ID: "a3", Date: "2023-10-03T09:00:00", Name: "Autumn Intervals", DurationSeconds: 3600},
	})

	rec := httptest.NewRecorder()
	h.HandleActivities(rec, jsonRequest(t, http.MethodGet, "/activities", nil, false))

	var resp struct {
		Activities []models.Activity `json:"activities"`
	}
	decodeBody(t, rec, &resp)
	if len(resp.Activities) != 3 {
		t.Fatalf("Expected 3 activities, got %d", len(resp.Activities))
	}
	want := []string{"a2", "a3", "a1"}
	for i, id := range want {
		if resp.Activities[i].ID != id {
			t.Errorf("Position %d: expected %s, got %s", i, id, resp.Activities[i].ID)
		}
	}
}

func TestDeleteActivity(t *testing.T) {
	st, _ := setupStore(t)
	h := NewActivitiesHandler(st, testConfig())

	req := jsonRequest(t, http.MethodDelete, "/activities/a1", nil, true)
	req.SetPathValue("id", "a1")
	rec := httptest.NewRecorder()
	h.HandleActivityByID(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("Expected 204, got %d", rec.Code)
	}
	if st.ActivityCount() != 0 {
		t.Errorf("Expected empty log, got %d activities", st.ActivityCount())
	}
}

func TestDeleteActivityNotFound(t *testing.T) {
	st, _ := setupStore(t)
	h := NewActivitiesHandler(st, testConfig())

	req := jsonRequest(t, http.MethodDelete, "/activities/missing", nil, true)
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()
	h.HandleActivityByID(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", rec.Code)
	}
}

func TestDeleteActivityRequiresAuth(t *testing.T) {
	st, _ := setupStore(t)
	h := NewActivitiesHandler(st, testConfig())

	req := jsonRequest(t, http.MethodDelete, "/activities/a1", nil, false)
	req.SetPathValue("id", "a1")
	rec := httptest.NewRecorder()
	h.HandleActivityByID(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401, got %d", rec.Code)
	}
	if st.ActivityCount() != 1 {
		t.Error("Activity must not be deleted on unauthorized request")
	}
}
