// Package dates normalizes the date strings that show up in ride logs.
// Imported CSV rows use DD/MM/YYYY (sometimes with a trailing time of day),
// remote APIs use ISO-8601, and seed data uses either. Everything that sorts
// or compares activity dates must go through ParseFlexible; lexical
// comparison of raw strings is wrong for mixed formats.
package dates

import (
	"fmt"
	"strings"
	"time"
)

// Epoch is the sentinel instant returned for empty or unparseable input.
var Epoch = time.Unix(0, 0).UTC()

// ParseFlexible interprets raw as a point in time. Empty input yields the
// epoch sentinel rather than an error so that callers can sort without
// branching.
func ParseFlexible(raw string) time.Time {
	if raw == "" {
		return Epoch
	}

	// ISO-8601 datetime, e.g. 2023-12-25T10:00:00 or with offset.
	if strings.Contains(raw, "T") {
		if t, err := parseISO(raw); err == nil {
			return t
		}
		return Epoch
	}

	// Strip a trailing time of day ("25/12/2023 14:30" -> "25/12/2023").
	clean := raw
	if i := strings.IndexByte(clean, ' '); i >= 0 {
		clean = clean[:i]
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '/' || r == '-'
	})
	if len(parts) == 3 && len(parts[2]) == 4 {
		// DD/MM/YYYY or DD-MM-YYYY
		reassembled := fmt.Sprintf("%s-%s-%s", parts[2], parts[1], parts[0])
		if t, err := time.Parse("2006-1-2", reassembled); err == nil {
			return t
		}
	}

	// Generic fallback for anything else, e.g. plain YYYY-MM-DD.
	for _, layout := range []string{"2006-01-02", "2006-1-2", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return Epoch
}

func parseISO(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized ISO datetime: %q", raw)
}

// SameDay reports whether two raw date strings fall on the same calendar
// day. Used by the remote-import and commit-time dedup rules, which compare
// dates ignoring time of day. Unparseable input is never the same day as
// anything: two garbage dates both land on the epoch sentinel, and treating
// that as a match would make dedup drop unrelated rides.
func SameDay(a, b string) bool {
	ta, tb := ParseFlexible(a), ParseFlexible(b)
	if ta.Equal(Epoch) || tb.Equal(Epoch) {
		return false
	}
	ya, ma, da := ta.Date()
	yb, mb, db := tb.Date()
	return ya == yb && ma == mb && da == db
}

// Before reports whether raw date a is chronologically before b.
func Before(a, b string) bool {
	return ParseFlexible(a).Before(ParseFlexible(b))
}
