// Package analytics derives FTP trends and best-power records from the
// activity log.
package analytics

import (
	"math"
	"sort"
	"time"

	"climb-performance-lab/internal/dates"
	"climb-performance-lab/internal/models"
)

// ftpFactor estimates FTP as 95% of the best 20-minute power, the standard
// field-test heuristic.
const ftpFactor = 0.95

// FTPPoint is one estimated FTP reading derived from an activity.
type FTPPoint struct {
	Date string `json:"date"`
	FTP  int    `json:"ftp"`
}

// Range selects how far back the FTP history reaches.
type Range string

const (
	RangeSixMonths Range = "6m"
	RangeOneYear   Range = "1y"
	RangeAll       Range = "all"
)

// CutoffFor translates a range into the earliest instant to include.
func CutoffFor(r Range, now time.Time) time.Time {
	switch r {
	case RangeSixMonths:
		return now.AddDate(0, -6, 0)
	case RangeOneYear:
		return now.AddDate(-1, 0, 0)
	default:
		return dates.Epoch
	}
}

// FTPHistory builds the FTP-over-time series: one point per activity with a
// recorded 20-minute peak, cut off at the given instant, sorted
// chronologically via the date parser.
func FTPHistory(activities []models.Activity, cutoff time.Time) []FTPPoint {
	type dated struct {
		point FTPPoint
		at    time.Time
	}

	var series []dated
	for _, a := range activities {
		ftp := int(math.Round(a.Peak20MinPower * ftpFactor))
		if ftp <= 0 {
			continue
		}
		at := dates.ParseFlexible(a.Date)
		if at.Before(cutoff) {
			continue
		}
		series = append(series, dated{point: FTPPoint{Date: a.Date, FTP: ftp}, at: at})
	}

	sort.Slice(series, func(i, j int) bool { return series[i].at.Before(series[j].at) })

	out := make([]FTPPoint, len(series))
	for i, d := range series {
		out[i] = d.point
	}
	return out
}

// PowerMetric selects which peak-power duration to rank by.
type PowerMetric string

const (
	Peak5Min  PowerMetric = "p5"
	Peak20Min PowerMetric = "p20"
	Peak60Min PowerMetric = "p60"
)

// TopPerformances returns the n best activities by the chosen peak-power
// metric, best first. Activities without a positive value are excluded.
func TopPerformances(activities []models.Activity, metric PowerMetric, n int) []models.Activity {
	var ranked []models.Activity
	for _, a := range activities {
		if metricValue(a, metric) > 0 {
			ranked = append(ranked, a)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return metricValue(ranked[i], metric) > metricValue(ranked[j], metric)
	})

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func metricValue(a models.Activity, metric PowerMetric) float64 {
	switch metric {
	case Peak5Min:
		return a.Peak5MinPower
	case Peak60Min:
		return a.Peak60MinPower
	default:
		return a.Peak20MinPower
	}
}

// SortByDateDesc orders activities newest first using parsed dates.
func SortByDateDesc(activities []models.Activity) []models.Activity {
	out := make([]models.Activity, len(activities))
	copy(out, activities)
	sort.SliceStable(out, func(i, j int) bool {
		return dates.Before(out[j].Date, out[i].Date)
	})
	return out
}
