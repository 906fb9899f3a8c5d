package profile

import (
	"math"
	"testing"
)

func TestGenerateInvariants(t *testing.T) {
	gen := NewGenerator()

	climbs := []struct {
		name       string
		distanceKm float64
		elevationM float64
	}{
		{"AlpeDHuez", 13.8, 1135},
		{"Ventoux", 21.0, 1610},
		{"ShortSteep", 3.0, 400},
		{"LongShallow", 30.0, 600},
		{"FlatDrag", 10.0, 50},
		{"VillageWall", 1.0, 120},
		{"Kicker", 0.4, 45},
	}

	for _, c := range climbs {
		t.Run(c.name, func(t *testing.T) {
			segs := gen.Generate(c.distanceKm, c.elevationM)

			if len(segs) != 30 {
				t.Fatalf("Expected 30 segments, got %d", len(segs))
			}

			prevKm := 0.0
			prevElev := 0
			for i, s := range segs {
				if s.Index != i {
					t.Errorf("Segment %d has index %d", i, s.Index)
				}
				if s.Km <= prevKm {
					t.Errorf("Distance not strictly increasing at segment %d: %.2f <= %.2f", i, s.Km, prevKm)
				}
				if s.ElevationM < prevElev {
					t.Errorf("Elevation decreased at segment %d: %d < %d", i, s.ElevationM, prevElev)
				}
				prevKm = s.Km
				prevElev = s.ElevationM
			}

			last := segs[len(segs)-1]
			if math.Abs(last.Km-c.distanceKm) > 0.1 {
				t.Errorf("Final distance %.2f, want %.2f (±0.1)", last.Km, c.distanceKm)
			}
			if math.Abs(float64(last.ElevationM)-c.elevationM) > 1 {
				t.Errorf("Final elevation %d, want %.0f (±1)", last.ElevationM, c.elevationM)
			}
		})
	}
}

func TestGenerateDegenerateInputs(t *testing.T) {
	gen := NewGenerator()

	if segs := gen.Generate(0, 1000); segs != nil {
		t.Errorf("Expected empty profile for zero distance, got %d segments", len(segs))
	}
	if segs := gen.Generate(-5, 1000); segs != nil {
		t.Errorf("Expected empty profile for negative distance, got %d segments", len(segs))
	}

	// Zero elevation gain: the rescale guard must not divide by zero.
	segs := gen.Generate(10, 0)
	if len(segs) != 30 {
		t.Fatalf("Expected 30 segments for zero elevation, got %d", len(segs))
	}
	for _, s := range segs {
		if math.IsNaN(s.Gradient) || math.IsInf(s.Gradient, 0) {
			t.Fatalf("Gradient is not finite: %v", s.Gradient)
		}
	}
}

func TestSeededGeneratorIsDeterministic(t *testing.T) {
	a := NewSeededGenerator(42).Generate(13.8, 1135)
	b := NewSeededGenerator(42).Generate(13.8, 1135)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Seeded runs diverged at segment %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestUnseededGeneratorVaries(t *testing.T) {
	gen := NewGenerator()
	a := gen.Generate(13.8, 1135)
	b := gen.Generate(13.8, 1135)

	same := true
	for i := range a {
		if a[i].Gradient != b[i].Gradient {
			same = false
			break
		}
	}
	if same {
		t.Error("Two unseeded profiles were identical; random walk appears inert")
	}
}
