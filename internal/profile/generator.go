// Package profile generates synthetic elevation profiles for climbs where
// only the total distance and elevation gain are known. The output is a
// heuristic random-walk terrain, not a survey of the real road.
package profile

import (
	"math"
	"math/rand"
	"time"

	"climb-performance-lab/internal/models"
)

const (
	segmentCount = 30
	minGrade     = 0.5
	maxGrade     = 20.0
	maxGradeStep = 2.0 // per-segment perturbation, +/- percentage points
)

// Generator produces climb profiles. The zero value is not usable; construct
// with NewGenerator or NewSeededGenerator.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a time-seeded generator. Successive calls produce
// different profiles for the same climb, which is the intended interactive
// behavior.
func NewGenerator() *Generator {
	return &Generator{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeededGenerator returns a deterministic generator for tests.
func NewSeededGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Generate builds a profile of exactly 30 segments whose cumulative distance
// ends at distanceKm and whose cumulative elevation ends at elevationGainM
// after rescaling. A non-positive distance yields an empty profile.
//
// The walk starts at the climb's average gradient and each segment drifts by
// a uniform perturbation in [-2, +2] points, clamped to [0.5, 20]. Because
// clamping skews the accumulated elevation away from the declared total, a
// final rescale pass multiplies both elevation and gradient by
// declared/accumulated.
func (g *Generator) Generate(distanceKm, elevationGainM float64) []models.Segment {
	if distanceKm <= 0 {
		return nil
	}

	avgGrade := (elevationGainM / (distanceKm * 1000)) * 100
	distPerSeg := distanceKm / segmentCount

	segments := make([]models.Segment, 0, segmentCount)
	currentGrade := avgGrade
	currentElev := 0.0

	for i := 0; i < segmentCount; i++ {
		change := g.rng.Float64()*2*maxGradeStep - maxGradeStep
		grade := clamp(currentGrade+change, minGrade, maxGrade)
		currentGrade = grade

		currentElev += distPerSeg * 1000 * (grade / 100)
		// Cumulative distance stays unrounded: on short climbs the
		// per-segment step is under 0.05 km and rounding would collapse
		// neighboring segments onto the same Km value.
		segments = append(segments, models.Segment{
			Index:      i,
			Km:         float64(i+1) * distPerSeg,
			Gradient:   round1(grade),
			ElevationM: int(math.Round(currentElev)),
		})
	}

	scale := 1.0
	if final := segments[segmentCount-1].ElevationM; final != 0 {
		scale = elevationGainM / float64(final)
	}
	for i := range segments {
		segments[i].ElevationM = int(math.Round(float64(segments[i].ElevationM) * scale))
		segments[i].Gradient = round1(segments[i].Gradient * scale)
	}

	return segments
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
