// Package timeline implements the calendar/coordinate engine: the
// bidirectional mapping between calendar dates and horizontal pixel offsets
// at a given zoom level, generation of the visible column grid, and week
// snapping.
//
// Dates cross package boundaries as "YYYY-MM-DD" strings. Lexicographic
// comparison of two such strings is equivalent to date-order comparison,
// which the overlap validator relies on directly. Inside the engine dates
// are time.Time values pinned to midnight UTC.
package timeline

import (
	"fmt"
	"math"
	"time"
)

// Zoom selects the timeline's temporal resolution.
type Zoom int

const (
	// ZoomWeek renders one column per week, Monday-aligned.
	ZoomWeek Zoom = iota
	// ZoomMonth renders one column per calendar month with quarter grouping.
	ZoomMonth
)

// String returns the config/display name of the zoom level.
func (z Zoom) String() string {
	if z == ZoomMonth {
		return "month"
	}
	return "week"
}

// ParseZoom converts a config string to a Zoom. Unknown values default to
// week zoom.
func ParseZoom(s string) Zoom {
	if s == "month" {
		return ZoomMonth
	}
	return ZoomWeek
}

// Fixed column pixel widths per zoom level. These are part of the coordinate
// contract: every x offset produced by the engine is a multiple-of-fraction
// of these widths.
const (
	ColumnWidthWeek  = 120.0
	ColumnWidthMonth = 180.0
)

// BufferWeeks pads the configured settings range on both sides so panning
// near the nominal edges still shows grid structure.
const BufferWeeks = 8

const dateLayout = "2006-01-02"

// ParseDate parses a "YYYY-MM-DD" calendar date into a UTC-midnight time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("timeline: parse date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders a time as a "YYYY-MM-DD" calendar date.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// AddDays returns t shifted by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// DiffDays returns the number of calendar days from b to a, rounded to the
// nearest whole day.
func DiffDays(a, b time.Time) int {
	return int(jsRound(a.Sub(b).Hours() / 24))
}

// StartOfWeek returns the Monday on or before t.
func StartOfWeek(t time.Time) time.Time {
	day := int(t.Weekday()) // 0=Sunday
	diff := 1 - day
	if day == 0 {
		diff = -6
	}
	return t.AddDate(0, 0, diff)
}

// StartOfMonth returns the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// DaysInMonth returns the number of days in t's month.
func DaysInMonth(t time.Time) int {
	first := StartOfMonth(t)
	return first.AddDate(0, 1, -1).Day()
}

// DurationWeeks returns the rounded length of [start, end] in weeks.
func DurationWeeks(start, end time.Time) int {
	return int(jsRound(float64(DiffDays(end, start)) / 7))
}

// jsRound rounds half toward positive infinity, matching the rounding the
// stored documents were produced with. math.Round differs for negative
// half values.
func jsRound(v float64) float64 {
	return math.Floor(v + 0.5)
}
