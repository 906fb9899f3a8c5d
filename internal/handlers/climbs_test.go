package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"climb-performance-lab/internal/models"
)

type climbsListResponse struct {
	Climbs []models.Climb `json:"climbs"`
	Active string         `json:"active"`
}

func TestListClimbs(t *testing.T) {
	st, _ := setupStore(t)
	h := NewClimbsHandler(st, testConfig())

	rec := httptest.NewRecorder()
	h.HandleClimbs(rec, jsonRequest(t, http.MethodGet, "/climbs", nil, false))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var resp climbsListResponse
	decodeBody(t, rec, &resp)
	if len(resp.Climbs) != 6 {
		t.Errorf("Expected 6 built-in climbs, got %d", len(resp.Climbs))
	}
	if resp.Active != "alpe_huez" {
		t.Errorf("Expected alpe_huez active by default, got %s", resp.Active)
	}
}

func TestListClimbsFilterByType(t *testing.T) {
	st, _ := setupStore(t)
	h := NewClimbsHandler(st, testConfig())

	rec := httptest.NewRecorder()
	h.HandleClimbs(rec, jsonRequest(t, http.MethodGet, "/climbs?type=Virtual", nil, false))

	var resp climbsListResponse
	decodeBody(t, rec, &resp)
	if len(resp.Climbs) != 3 {
		t.Fatalf("Expected 3 virtual climbs, got %d", len(resp.Climbs))
	}
	for _, c := range resp.Climbs {
		if c.Type != models.ClimbVirtual {
			t.Errorf("Expected only virtual climbs, got %s (%s)", c.ID, c.Type)
		}
	}
}

func TestCreateCustomClimb(t *testing.T) {
	st, _ := setupStore(t)
	h := NewClimbsHandler(st, testConfig())

	body := map[string]interface{}{
		"name": "Col du Test", "country": "FR", "flag": "🇫🇷",
		"distance": 10.0, "elevation": 800.0,
	}
	rec := httptest.NewRecorder()
	h.HandleClimbs(rec, jsonRequest(t, http.MethodPost, "/climbs", body, true))

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var climb models.Climb
	decodeBody(t, rec, &climb)
	if climb.Type != models.ClimbCustom {
		t.Errorf("Expected custom type, got %s", climb.Type)
	}
	if len(climb.Profile) != 30 {
		t.Errorf("Expected a 30-segment generated profile, got %d", len(climb.Profile))
	}
	if st.Catalog().Active().ID != climb.ID {
		t.Error("New custom climb should become the active selection")
	}
	if !st.Dirty() {
		t.Error("Expected store to be dirty after climb creation")
	}
}

func TestCreateClimbValidation(t *testing.T) {
	st, _ := setupStore(t)
	h := NewClimbsHandler(st, testConfig())

	body := map[string]interface{}{"name": "", "distance": 10.0}
	rec := httptest.NewRecorder()
	h.HandleClimbs(rec, jsonRequest(t, http.MethodPost, "/climbs", body, true))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for nameless climb, got %d", rec.Code)
	}
}

func TestCreateClimbRequiresAuth(t *testing.T) {
	st, _ := setupStore(t)
	h := NewClimbsHandler(st, testConfig())

	body := map[string]interface{}{"name": "Col du Test", "distance": 10.0, "elevation": 800.0}
	rec := httptest.NewRecorder()
	h.HandleClimbs(rec, jsonRequest(t, http.MethodPost, "/climbs", body, false))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401, got %d", rec.Code)
	}
}

func TestDeleteBuiltinClimbForbidden(t *testing.T) {
	st, _ := setupStore(t)
	h := NewClimbsHandler(st, testConfig())

	req := jsonRequest(t, http.MethodDelete, "/climbs/ventoux", nil, true)
	req.SetPathValue("id", "ventoux")
	rec := httptest.NewRecorder()
	h.HandleClimbByID(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("Expected 403 for built-in delete, got %d", rec.Code)
	}
}

func TestDeleteActiveCustomClimbFallsBack(t *testing.T) {
	st, _ := setupStore(t)
	h := NewClimbsHandler(st, testConfig())

	climb, ok := st.Catalog().Create("Col du Test", "FR", "🇫🇷", 10, 800)
	if !ok {
		t.Fatal("Failed to create custom climb")
	}

	req := jsonRequest(t, http.MethodDelete, "/climbs/"+climb.ID, nil, true)
	req.SetPathValue("id", climb.ID)
	rec := httptest.NewRecorder()
	h.HandleClimbByID(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var resp map[string]string
	decodeBody(t, rec, &resp)
	if resp["active"] != "alpe_huez" {
		t.Errorf("Expected fallback to alpe_huez, got %s", resp["active"])
	}
}

func TestDeleteUnknownClimb(t *testing.T) {
	st, _ := setupStore(t)
	h := NewClimbsHandler(st, testConfig())

	req := jsonRequest(t, http.MethodDelete, "/climbs/nope", nil, true)
	req.SetPathValue("id", "nope")
	rec := httptest.NewRecorder()
	h.HandleClimbByID(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", rec.Code)
	}
}

func TestSelectClimb(t *testing.T) {
	st, _ := setupStore(t)
	h := NewClimbsHandler(st, testConfig())

	req := jsonRequest(t, http.MethodPost, "/climbs/stelvio/select", nil, false)
	req.SetPathValue("id", "stelvio")
	rec := httptest.NewRecorder()
	h.HandleSelect(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if st.Catalog().Active().ID != "stelvio" {
		t.Errorf("Expected stelvio active, got %s", st.Catalog().Active().ID)
	}
}

func TestClimbProfileGenerated(t *testing.T) {
	st, _ := setupStore(t)
	h := NewClimbsHandler(st, testConfig())

	req := jsonRequest(t, http.MethodGet, "/climbs/ventoux/profile", nil, false)
	req.SetPathValue("id", "ventoux")
	rec := httptest.NewRecorder()
	h.HandleProfile(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var resp struct {
		Profile []models.Segment `json:"profile"`
	}
	decodeBody(t, rec, &resp)
	if len(resp.Profile) != 30 {
		t.Fatalf("Expected 30 segments, got %d", len(resp.Profile))
	}
	last := resp.Profile[len(resp.Profile)-1]
	if last.ElevationM != 1610 {
		t.Errorf("Expected final elevation 1610, got %d", last.ElevationM)
	}
}

func TestClimbPlan(t *testing.T) {
	st, _ := setupStore(t)
	h := NewClimbsHandler(st, testConfig())

	req := jsonRequest(t, http.MethodGet, "/climbs/alpe_huez/plan", nil, false)
	req.SetPathValue("id", "alpe_huez")
	rec := httptest.NewRecorder()
	h.HandlePlan(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var resp struct {
		Climb models.Climb `json:"climb"`
		Plan  []struct {
			TargetWatts int `json:"targetWatts"`
		} `json:"plan"`
	}
	decodeBody(t, rec, &resp)
	if resp.Climb.ID != "alpe_huez" {
		t.Errorf("Expected alpe_huez, got %s", resp.Climb.ID)
	}
	if len(resp.Plan) != 30 {
		t.Fatalf("Expected 30 plan rows, got %d", len(resp.Plan))
	}
	for _, row := range resp.Plan {
		if row.TargetWatts <= 0 {
			t.Error("Plan rows must carry a positive power target")
		}
	}
}
