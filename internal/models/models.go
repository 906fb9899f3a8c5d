package models

// ClimbType distinguishes built-in catalog entries from user-created climbs.
type ClimbType string

const (
	ClimbReal    ClimbType = "Real"
	ClimbVirtual ClimbType = "Virtual"
	ClimbCustom  ClimbType = "Custom"
)

// Segment is one slice of a climb's elevation profile.
type Segment struct {
	Index      int     `json:"id"`
	Km         float64 `json:"km"`        // cumulative distance, strictly increasing
	Gradient   float64 `json:"gradient"`  // percent
	ElevationM int     `json:"elevation"` // cumulative, non-decreasing
}

// Climb is a named climbing route. Catalog climbs carry no persisted profile;
// one is generated on demand. Custom climbs keep the profile they were created
// with.
type Climb struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Region     string    `json:"region"`
	Country    string    `json:"country"`
	Flag       string    `json:"flag"`
	DistanceKm float64   `json:"distance"`
	ElevationM float64   `json:"elevation"`
	AvgGrade   float64   `json:"avgGrade"`
	Type       ClimbType `json:"type"`
	Profile    []Segment `json:"profile,omitempty"`
}

// Activity is one logged or imported ride. Dates stay in their raw imported
// form; chronological comparisons go through the dates package, never string
// comparison.
type Activity struct {
	ID              string  `json:"id"`
	Date            string  `json:"date"`
	Name            string  `json:"name"`
	DurationSeconds int     `json:"duration"`
	DistanceKm      float64 `json:"distance"`
	ElevationM      float64 `json:"elevation"`
	SpeedKmh        float64 `json:"speed"`
	HeartRate       float64 `json:"hr"`
	Cadence         float64 `json:"cadence"`
	Power           float64 `json:"power"`
	NormalizedPower float64 `json:"np"`
	TSS             float64 `json:"tss"`
	Peak5MinPower   float64 `json:"p5"`
	Peak20MinPower  float64 `json:"p20"`
	Peak60MinPower  float64 `json:"p60"`
}

// RiderProfile holds the user-editable rider parameters.
type RiderProfile struct {
	HeightM  float64 `json:"height"`
	WeightKg float64 `json:"weight"`
	FTPWatts float64 `json:"ftp"`
}

// DefaultRiderProfile returns the starting profile for a fresh install.
func DefaultRiderProfile() RiderProfile {
	return RiderProfile{HeightM: 1.83, WeightKg: 70, FTPWatts: 280}
}

// Document is the per-user persistence unit exchanged with the cloud store
// and mirrored into the local fallback database.
type Document struct {
	Profile     *RiderProfile `json:"profile,omitempty"`
	Activities  []Activity    `json:"activities,omitempty"`
	UserClimbs  []Climb       `json:"custom_climbs,omitempty"`
	LastUpdated string        `json:"last_updated,omitempty"`
}
