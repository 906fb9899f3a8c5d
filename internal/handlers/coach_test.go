package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"climb-performance-lab/internal/models"
)

func TestWorkoutForActiveClimb(t *testing.T) {
	st, _ := setupStore(t)
	h := NewCoachHandler(st, testConfig())

	rec := httptest.NewRecorder()
	h.HandleWorkout(rec, jsonRequest(t, http.MethodPost, "/coach/workout", map[string]string{}, false))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var resp struct {
		Title  string `json:"title"`
		Core   string `json:"core"`
		Blocks []struct {
			Title string `json:"title"`
		} `json:"blocks"`
	}
	decodeBody(t, rec, &resp)
	if !strings.Contains(resp.Title, "Alpe d'Huez") {
		t.Errorf("Expected workout titled for the active climb, got %q", resp.Title)
	}
	if len(resp.Blocks) == 0 {
		t.Error("Expected workout blocks")
	}
}

func TestWorkoutForNamedClimb(t *testing.T) {
	st, _ := setupStore(t)
	h := NewCoachHandler(st, testConfig())

	body := map[string]string{"climbId": "z_epic_kom"}
	rec := httptest.NewRecorder()
	h.HandleWorkout(rec, jsonRequest(t, http.MethodPost, "/coach/workout", body, false))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var resp struct {
		Title string `json:"title"`
	}
	decodeBody(t, rec, &resp)
	if !strings.Contains(resp.Title, "Epic KOM") {
		t.Errorf("Expected workout for Epic KOM, got %q", resp.Title)
	}
}

func TestWorkoutUnknownClimb(t *testing.T) {
	st, _ := setupStore(t)
	h := NewCoachHandler(st, testConfig())

	body := map[string]string{"climbId": "nope"}
	rec := httptest.NewRecorder()
	h.HandleWorkout(rec, jsonRequest(t, http.MethodPost, "/coach/workout", body, false))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", rec.Code)
	}
}

func TestSWOT(t *testing.T) {
	st, _ := setupStore(t)
	h := NewCoachHandler(st, testConfig())

	st.AppendActivities([]models.Activity{
		{ID: "a2", Date: "15/01/2024", Name: "Sprint Day", Peak5MinPower: 400, Peak60MinPower: 200},
	})

	rec := httptest.NewRecorder()
	h.HandleSWOT(rec, jsonRequest(t, http.MethodPost, "/coach/swot", nil, false))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var resp struct {
		Title  string `json:"title"`
		Blocks []struct {
			Title string `json:"title"`
		} `json:"blocks"`
	}
	decodeBody(t, rec, &resp)
	if len(resp.Blocks) == 0 {
		t.Error("Expected SWOT blocks")
	}
}

func TestFueling(t *testing.T) {
	st, _ := setupStore(t)
	h := NewCoachHandler(st, testConfig())

	body := map[string]float64{"durationMinutes": 60}
	rec := httptest.NewRecorder()
	h.HandleFueling(rec, jsonRequest(t, http.MethodPost, "/coach/fueling", body, false))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var resp struct {
		CarbsGrams int `json:"carbsGrams"`
		FluidML    int `json:"fluidMl"`
	}
	decodeBody(t, rec, &resp)
	// Default 70 kg rider: 60 g/h carbs, 500+5*70=850 ml/h fluid
	if resp.CarbsGrams != 60 {
		t.Errorf("Expected 60 g carbs, got %d", resp.CarbsGrams)
	}
	if resp.FluidML != 850 {
		t.Errorf("Expected 850 ml fluid, got %d", resp.FluidML)
	}
}

func TestFuelingRejectsNonPositiveDuration(t *testing.T) {
	st, _ := setupStore(t)
	h := NewCoachHandler(st, testConfig())

	body := map[string]float64{"durationMinutes": 0}
	rec := httptest.NewRecorder()
	h.HandleFueling(rec, jsonRequest(t, http.MethodPost, "/coach/fueling", body, false))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
}
