package timeline

import (
	"fmt"
	"time"
)

// Column is one vertical band of the timeline grid.
type Column struct {
	// Label is the primary header text: "2 Jan" at week zoom, "Jan" at
	// month zoom.
	Label string

	// Sublabel carries the quarter grouping at month zoom ("Q1 2026");
	// empty at week zoom.
	Sublabel string

	// X and Width are the column's horizontal extent in pixels.
	X     float64
	Width float64

	// Date is the column's starting date (a Monday at week zoom, the first
	// of the month at month zoom).
	Date time.Time

	// Month is the column's calendar month, used for month-based shading.
	Month time.Month
}

// Columns generates the grid columns covering [start, end] at the given zoom
// level. The result is deterministic for a given input: week columns begin
// at the Monday on or before start and step 7 days; month columns begin at
// the first of the month on or before start and step one calendar month.
func Columns(start, end, origin time.Time, zoom Zoom) []Column {
	if zoom == ZoomMonth {
		return monthColumns(start, end, origin)
	}
	return weekColumns(start, end, origin)
}

func weekColumns(start, end, origin time.Time) []Column {
	var cols []Column
	for cur := StartOfWeek(start); !cur.After(end); cur = AddDays(cur, 7) {
		cols = append(cols, Column{
			Label: fmt.Sprintf("%d %s", cur.Day(), cur.Month().String()[:3]),
			X:     DateToX(cur, origin, ZoomWeek),
			Width: ColumnWidthWeek,
			Date:  cur,
			Month: cur.Month(),
		})
	}
	return cols
}

func monthColumns(start, end, origin time.Time) []Column {
	var cols []Column
	for cur := StartOfMonth(start); !cur.After(end); cur = cur.AddDate(0, 1, 0) {
		q := (int(cur.Month())-1)/3 + 1
		cols = append(cols, Column{
			Label:    cur.Month().String()[:3],
			Sublabel: fmt.Sprintf("Q%d %d", q, cur.Year()),
			X:        DateToX(cur, origin, ZoomMonth),
			Width:    ColumnWidthMonth,
			Date:     cur,
			Month:    cur.Month(),
		})
	}
	return cols
}

// VisibleRange resolves the settings span into the actually rendered span:
// the nominal range padded by BufferWeeks on both sides. The returned origin
// is the unpadded start date, which anchors all x offsets.
func VisibleRange(startDate, endDate string) (start, end, origin time.Time, err error) {
	origin, err = ParseDate(startDate)
	if err != nil {
		return time.Time{}, time.Time{}, time.Time{}, err
	}
	nominalEnd, err := ParseDate(endDate)
	if err != nil {
		return time.Time{}, time.Time{}, time.Time{}, err
	}
	start = AddDays(origin, -BufferWeeks*7)
	end = AddDays(nominalEnd, BufferWeeks*7)
	return start, end, origin, nil
}
