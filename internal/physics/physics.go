// Package physics implements the steady-state climbing power model and the
// duration formatting shared across the service.
package physics

import (
	"fmt"
	"math"
)

const (
	gravity        = 9.81
	bikeMassKg     = 8.0
	rollingCoeff   = 0.004
	airDensity     = 1.225
	dragArea       = 0.32 // CdA for a climbing position
	noDataDuration = "--:--"
)

// RequiredPower returns the watts needed to hold speedKmh on a slope of
// gradientPercent with a rider of riderWeightKg. The bike adds a fixed 8 kg.
// Never returns a negative value.
func RequiredPower(gradientPercent, riderWeightKg, speedKmh float64) int {
	v := speedKmh / 3.6
	m := riderWeightKg + bikeMassKg
	theta := math.Atan(gradientPercent / 100)

	pGravity := gravity * math.Sin(theta) * m * v
	pRolling := rollingCoeff * gravity * math.Cos(theta) * m * v
	pAero := 0.5 * airDensity * dragArea * math.Pow(v, 3)

	watts := math.Round(pGravity + pRolling + pAero)
	if watts < 0 {
		return 0
	}
	return int(watts)
}

// SpeedForTargetTime converts a climb distance and a target time in minutes
// into the average speed required, in km/h. Returns 0 for a non-positive
// target.
func SpeedForTargetTime(distanceKm, targetMinutes float64) float64 {
	if targetMinutes <= 0 {
		return 0
	}
	return distanceKm / (targetMinutes / 60)
}

// GoalEstimate is the dashboard goal-tracker result: the watts required to
// climb in the target time and the gap to the rider's FTP (positive means a
// shortfall).
type GoalEstimate struct {
	RequiredWatts int     `json:"requiredWatts"`
	SpeedKmh      float64 `json:"speedKmh"`
	GapWatts      int     `json:"gapWatts"`
}

// EstimateGoal computes the power needed to complete a climb of the given
// distance and average gradient within targetMinutes.
func EstimateGoal(distanceKm, avgGradePercent, riderWeightKg, ftpWatts, targetMinutes float64) GoalEstimate {
	speed := SpeedForTargetTime(distanceKm, targetMinutes)
	watts := RequiredPower(avgGradePercent, riderWeightKg, speed)
	return GoalEstimate{
		RequiredWatts: watts,
		SpeedKmh:      speed,
		GapWatts:      watts - int(math.Round(ftpWatts)),
	}
}

// FormatDuration renders a duration in seconds as H:MM:SS, or MM:SS when
// under an hour. Zero is a valid duration and formats as 0:00.
func FormatDuration(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	h := totalSeconds / 3600
	m := (totalSeconds % 3600) / 60
	s := totalSeconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatOptionalDuration is FormatDuration for values that may be absent.
// A nil input yields the "--:--" sentinel.
func FormatOptionalDuration(totalSeconds *int) string {
	if totalSeconds == nil {
		return noDataDuration
	}
	return FormatDuration(*totalSeconds)
}
