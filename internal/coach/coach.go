// Package coach produces templated training advice: climb-specific workouts,
// a power-curve SWOT, per-segment race plans, and fueling targets. All output
// is deterministic template text keyed off the rider's data.
package coach

import (
	"fmt"
	"math"

	"climb-performance-lab/internal/models"
)

// Gradient bands used by the race plan and workout templates.
const (
	steepThreshold = 9.0
	flatThreshold  = 4.0
)

// Block is one titled section of an advice response.
type Block struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Advice is a coaching response: a headline, a core message, and blocks.
type Advice struct {
	Title  string  `json:"title"`
	Core   string  `json:"core"`
	Blocks []Block `json:"blocks"`
}

// WorkoutPlan builds a climb-specific workout. Climbs with long steep
// sections get low-cadence muscular-endurance work, shallow ones get tempo
// rhythm blocks.
func WorkoutPlan(climb models.Climb, segments []models.Segment) Advice {
	steep := 0
	for _, s := range segments {
		if s.Gradient > steepThreshold-1 {
			steep++
		}
	}

	if steep >= len(segments)/4 {
		return Advice{
			Title: fmt.Sprintf("Climb specific: %s", climb.Name),
			Core:  "This climb holds long sections above 8%. Train muscular endurance at low cadence.",
			Blocks: []Block{
				{Title: "15 min", Text: "Warm up Z1-Z2 with 3x1 min at 110 rpm."},
				{Title: "3 x 10 min", Text: "Z3 tempo at 55-60 rpm. Drive torque from the hip. 5 min recovery between blocks."},
				{Title: "15 min", Text: "Cool down Z1."},
			},
		}
	}
	return Advice{
		Title: fmt.Sprintf("Climb specific: %s", climb.Name),
		Core:  fmt.Sprintf("%s averages %.1f%%: a rhythm climb. Hold a steady sub-threshold effort and avoid surges.", climb.Name, climb.AvgGrade),
		Blocks: []Block{
			{Title: "15 min", Text: "Warm up Z1-Z2, finishing with 2x30s at threshold."},
			{Title: "2 x 20 min", Text: "Sweet spot (88-94% FTP) at 85-95 rpm. 8 min recovery between blocks."},
			{Title: "10 min", Text: "Cool down Z1."},
		},
	}
}

// SWOTAnalysis classifies the rider's power curve: a high 5-minute peak
// relative to the 60-minute one reads as a puncheur, the reverse as a
// diesel.
func SWOTAnalysis(activities []models.Activity) Advice {
	best5, best60 := 0.0, 0.0
	for _, a := range activities {
		best5 = math.Max(best5, a.Peak5MinPower)
		best60 = math.Max(best60, a.Peak60MinPower)
	}

	if best60 > 0 && best5/best60 > 1.25 {
		return Advice{
			Title: "SWOT analysis",
			Core:  "Your power curve shows a classic puncheur profile: strong on short efforts, endurance is the limiter.",
			Blocks: []Block{
				{Title: "Strength", Text: fmt.Sprintf("Anaerobic capacity (5-minute peak of %.0fW is high).", best5)},
				{Title: "Weakness", Text: "Aerobic threshold: the drop-off after 40 minutes is large."},
				{Title: "Opportunity", Text: "Flatter pacing on long climbs will convert raw power into time."},
			},
		}
	}
	return Advice{
		Title: "SWOT analysis",
		Core:  "Your power curve is diesel-shaped: steady long efforts suit you better than repeated surges.",
		Blocks: []Block{
			{Title: "Strength", Text: fmt.Sprintf("Sustained aerobic power (60-minute peak of %.0fW).", best60)},
			{Title: "Weakness", Text: "Top-end sprint and short-surge response."},
			{Title: "Opportunity", Text: "Add 30/30 intervals to sharpen attacks without losing the aerobic base."},
		},
	}
}

// PlanRow is one segment of a race plan: target power, cadence band, and a
// one-word focus.
type PlanRow struct {
	Km          float64 `json:"km"`
	Gradient    float64 `json:"gradient"`
	TargetWatts int     `json:"targetWatts"`
	Cadence     string  `json:"cadence"`
	Focus       string  `json:"focus"`
}

// RacePlan builds a per-segment pacing plan: steep segments slightly above
// FTP, flat ones well under, the rest just below.
func RacePlan(segments []models.Segment, ftpWatts float64) []PlanRow {
	rows := make([]PlanRow, 0, len(segments))
	for _, s := range segments {
		factor := 0.95
		cadence := "80-90"
		focus := "Rhythm"
		switch {
		case s.Gradient > steepThreshold:
			factor, cadence, focus = 1.05, "70-75", "Power & Torque"
		case s.Gradient < flatThreshold:
			factor, cadence, focus = 0.85, "90-100", "Aero & Speed"
		}
		rows = append(rows, PlanRow{
			Km:          s.Km,
			Gradient:    s.Gradient,
			TargetWatts: int(math.Round(ftpWatts * factor)),
			Cadence:     cadence,
			Focus:       focus,
		})
	}
	return rows
}

// FuelingPlan is the carbohydrate and fluid target for a ride.
type FuelingPlan struct {
	CarbsGrams int `json:"carbsGrams"`
	FluidML    int `json:"fluidMl"`
}

// Fueling computes hourly-scaled carb and fluid needs. Heavier riders absorb
// more carbohydrate per hour; fluid scales with body mass.
func Fueling(weightKg, durationMinutes float64) FuelingPlan {
	carbsPerHour := 60.0
	if weightKg > 75 {
		carbsPerHour = 90
	}
	hours := durationMinutes / 60
	return FuelingPlan{
		CarbsGrams: int(math.Round(carbsPerHour * hours)),
		FluidML:    int(math.Round((500 + weightKg*5) * hours)),
	}
}
