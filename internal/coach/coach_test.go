package coach

import (
	"testing"

	"climb-performance-lab/internal/models"
)

func steepSegments() []models.Segment {
	segs := make([]models.Segment, 30)
	for i := range segs {
		segs[i] = models.Segment{Index: i, Km: float64(i+1) * 0.5, Gradient: 10.5}
	}
	return segs
}

func shallowSegments() []models.Segment {
	segs := make([]models.Segment, 30)
	for i := range segs {
		segs[i] = models.Segment{Index: i, Km: float64(i+1) * 0.5, Gradient: 3.0}
	}
	return segs
}

func TestWorkoutPlanKeyedOffSteepness(t *testing.T) {
	climb := models.Climb{Name: "Test Col", AvgGrade: 10.5}

	steep := WorkoutPlan(climb, steepSegments())
	if len(steep.Blocks) != 3 {
		t.Fatalf("Expected 3 workout blocks, got %d", len(steep.Blocks))
	}
	if steep.Blocks[1].Title != "3 x 10 min" {
		t.Errorf("Expected low-cadence block for steep climb, got %q", steep.Blocks[1].Title)
	}

	shallow := WorkoutPlan(models.Climb{Name: "Drag", AvgGrade: 3}, shallowSegments())
	if shallow.Blocks[1].Title != "2 x 20 min" {
		t.Errorf("Expected sweet-spot block for shallow climb, got %q", shallow.Blocks[1].Title)
	}
}

func TestSWOTAnalysis(t *testing.T) {
	puncheur := []models.Activity{
		{Peak5MinPower: 400, Peak60MinPower: 250},
	}
	advice := SWOTAnalysis(puncheur)
	if advice.Blocks[0].Title != "Strength" {
		t.Fatalf("Unexpected block layout: %+v", advice.Blocks)
	}
	if advice.Core == "" || advice.Core[0:4] != "Your" {
		t.Errorf("Unexpected core message: %q", advice.Core)
	}

	diesel := []models.Activity{
		{Peak5MinPower: 280, Peak60MinPower: 250},
	}
	dAdvice := SWOTAnalysis(diesel)
	if dAdvice.Core == advice.Core {
		t.Error("Puncheur and diesel profiles should yield different analyses")
	}
}

func TestRacePlan(t *testing.T) {
	segs := []models.Segment{
		{Km: 0.5, Gradient: 11},  // steep
		{Km: 1.0, Gradient: 2},   // flat
		{Km: 1.5, Gradient: 6.5}, // mid
	}
	rows := RacePlan(segs, 280)
	if len(rows) != 3 {
		t.Fatalf("Expected 3 plan rows, got %d", len(rows))
	}

	if rows[0].TargetWatts != 294 || rows[0].Focus != "Power & Torque" {
		t.Errorf("Steep row wrong: %+v", rows[0])
	}
	if rows[1].TargetWatts != 238 || rows[1].Cadence != "90-100" {
		t.Errorf("Flat row wrong: %+v", rows[1])
	}
	if rows[2].TargetWatts != 266 || rows[2].Focus != "Rhythm" {
		t.Errorf("Mid row wrong: %+v", rows[2])
	}
}

func TestFueling(t *testing.T) {
	// 70 kg rider, 60 min: 60 g carbs, 850 ml fluid.
	plan := Fueling(70, 60)
	if plan.CarbsGrams != 60 {
		t.Errorf("Expected 60 g carbs, got %d", plan.CarbsGrams)
	}
	if plan.FluidML != 850 {
		t.Errorf("Expected 850 ml fluid, got %d", plan.FluidML)
	}

	// Heavier riders get the 90 g/h absorption rate, scaled to 90 min.
	heavy := Fueling(80, 90)
	if heavy.CarbsGrams != 135 {
		t.Errorf("Expected 135 g carbs, got %d", heavy.CarbsGrams)
	}
}
