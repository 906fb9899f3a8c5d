// Package importer normalizes ride data from the two ingestion paths (pasted
// or uploaded CSV text, and the Intervals.icu activities API) into the shared
// Activity shape, with duplicate detection against the existing log.
//
// The two paths intentionally carry different duplicate rules inherited from
// the product: the CSV path matches on equal date string plus a duration
// within 60 seconds, the remote path on calendar date plus name. CommitSelected
// applies a third (date, name) pass against the live log as a safety net, so
// re-committing a stale preview cannot double-insert.
package importer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"climb-performance-lab/internal/dates"
	"climb-performance-lab/internal/intervals"
	"climb-performance-lab/internal/models"
)

// duplicateDurationWindow is the CSV-path tolerance: same date and a duration
// within this window means the row is almost certainly the same ride.
const duplicateDurationWindow = 60 // seconds

// Candidate is a parsed row awaiting user confirmation. Duplicates stay
// visible but start unselected so a deliberate re-import remains possible.
type Candidate struct {
	models.Activity
	Selected  bool `json:"selected"`
	Duplicate bool `json:"duplicate"`
}

// ParseDelimited parses semicolon-delimited export text into candidates.
// Header lines, rows with fewer than five columns, and rows whose duration
// parses to zero are skipped silently; callers report only the aggregate
// count.
func ParseDelimited(text string, existing []models.Activity) []Candidate {
	sch := schemaV1
	lines := strings.Split(strings.TrimSpace(text), "\n")

	var out []Candidate
	for i, line := range lines {
		cols := strings.Split(line, sch.delimiter)
		if len(cols) < sch.minColumns {
			continue
		}
		date := strings.TrimSpace(cols[sch.date])
		if strings.Contains(strings.ToLower(date), "date") {
			continue // header row
		}

		duration := parseClock(col(cols, sch.duration))
		if duration == 0 {
			continue // not a real ride
		}

		act := models.Activity{
			ID:              fmt.Sprintf("imp_%s_%d", uuid.NewString()[:8], i),
			Date:            date,
			Name:            strings.TrimSpace(col(cols, sch.name)),
			DurationSeconds: duration,
			DistanceKm:      parseNum(col(cols, sch.distance)),
			ElevationM:      parseNum(col(cols, sch.elevation)),
			SpeedKmh:        parseNum(col(cols, sch.speed)),
			HeartRate:       parseNum(col(cols, sch.heartRate)),
			Cadence:         parseNum(col(cols, sch.cadence)),
			Power:           parseNum(col(cols, sch.power)),
			NormalizedPower: parseNum(col(cols, sch.normalizedPower)),
			TSS:             parseNum(col(cols, sch.tss)),
			Peak5MinPower:   parseNum(col(cols, sch.peak5Min)),
			Peak20MinPower:  parseNum(col(cols, sch.peak20Min)),
			Peak60MinPower:  parseNum(col(cols, sch.peak60Min)),
		}

		dup := isDurationDuplicate(act, existing)
		out = append(out, Candidate{Activity: act, Selected: !dup, Duplicate: dup})
	}
	return out
}

// RemoteOptions controls the remote-import mapping.
type RemoteOptions struct {
	// AllowedTypes is the activity-type allow-list, e.g. Ride/VirtualRide.
	// Empty means accept everything.
	AllowedTypes []string
	// SkipDedup disables the (date, name) duplicate flagging. The commit-time
	// safety net still applies.
	SkipDedup bool
}

// MapRemote converts remote activity summaries into candidates. Distances
// arrive in meters and speeds in m/s; peak-power fields are absent from the
// remote summary and default to zero.
func MapRemote(remote []intervals.Activity, existing []models.Activity, opts RemoteOptions) []Candidate {
	var out []Candidate
	for _, r := range remote {
		if !typeAllowed(r.Type, opts.AllowedTypes) {
			continue
		}

		act := models.Activity{
			ID:              "icu_" + r.ID,
			Date:            r.StartDateLocal,
			Name:            r.Name,
			DurationSeconds: r.MovingTime,
			DistanceKm:      r.DistanceM / 1000,
			ElevationM:      r.ElevationGainM,
			SpeedKmh:        r.AverageSpeedMS * 3.6,
			HeartRate:       r.AverageHeartRate,
			Cadence:         r.AverageCadence,
			Power:           r.AverageWatts,
		}

		dup := false
		if !opts.SkipDedup {
			dup = isNameDateDuplicate(act, existing)
		}
		out = append(out, Candidate{Activity: act, Selected: true, Duplicate: dup})
	}
	return out
}

// CommitSelected filters candidates down to the rows that should join the
// log: selected, and not matching an existing activity on (calendar date,
// name). Returns the surviving activities; the count is the user-facing
// "N rides imported" number.
func CommitSelected(candidates []Candidate, existing []models.Activity) []models.Activity {
	var out []models.Activity
	for _, c := range candidates {
		if !c.Selected {
			continue
		}
		if isNameDateDuplicate(c.Activity, existing) {
			continue
		}
		out = append(out, c.Activity)
		existing = append(existing, c.Activity)
	}
	return out
}

func isDurationDuplicate(act models.Activity, existing []models.Activity) bool {
	for _, e := range existing {
		if e.Date == act.Date && math.Abs(float64(e.DurationSeconds-act.DurationSeconds)) < duplicateDurationWindow {
			return true
		}
	}
	return false
}

func isNameDateDuplicate(act models.Activity, existing []models.Activity) bool {
	for _, e := range existing {
		if e.Name == act.Name && dates.SameDay(e.Date, act.Date) {
			return true
		}
	}
	return false
}

func typeAllowed(actType string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if strings.EqualFold(a, actType) {
			return true
		}
	}
	return false
}

func col(cols []string, i int) string {
	if i >= len(cols) {
		return ""
	}
	return cols[i]
}

// parseClock converts H:MM:SS or MM:SS into total seconds; anything else is 0.
func parseClock(val string) int {
	val = strings.TrimSpace(val)
	if val == "" {
		return 0
	}
	parts := strings.Split(val, ":")
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return 0
		}
		nums[i] = n
	}
	switch len(nums) {
	case 3:
		return nums[0]*3600 + nums[1]*60 + nums[2]
	case 2:
		return nums[0]*60 + nums[1]
	}
	return 0
}

// parseNum strips locale noise (decimal commas, unit suffixes) and parses a
// float; empty or unparseable values become 0.
func parseNum(val string) float64 {
	val = strings.TrimSpace(val)
	if val == "" {
		return 0
	}
	val = strings.ReplaceAll(val, ",", ".")
	var b strings.Builder
	for _, r := range val {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return f
}
