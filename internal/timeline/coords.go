package timeline

import "time"

// DateToX converts a calendar date to a horizontal pixel offset relative to
// origin at the given zoom level.
//
// Week zoom is linear: (days since origin / 7) * ColumnWidthWeek.
//
// Month zoom positions the date proportionally within its month column:
// (whole months since origin + (day-1)/daysInMonth) * ColumnWidthMonth.
// Because 28-31 day months all map to the same column width, horizontal
// pixel density varies by month length. That is a deliberate property of
// the coordinate system, kept for visual consistency with existing
// documents, not an approximation to fix.
func DateToX(date, origin time.Time, zoom Zoom) float64 {
	if zoom == ZoomWeek {
		days := DiffDays(date, origin)
		return float64(days) / 7 * ColumnWidthWeek
	}
	monthsDiff := (date.Year()-origin.Year())*12 + int(date.Month()) - int(origin.Month())
	dayFrac := float64(date.Day()-1) / float64(DaysInMonth(date))
	return (float64(monthsDiff) + dayFrac) * ColumnWidthMonth
}

// XToDate is the inverse of DateToX, rounding to the nearest whole day at
// week zoom and to the nearest day within the resolved month at month zoom.
// The round trip XToDate(DateToX(d)) is exact at week zoom and within one
// day at month zoom.
func XToDate(x float64, origin time.Time, zoom Zoom) time.Time {
	if zoom == ZoomWeek {
		days := x / ColumnWidthWeek * 7
		return AddDays(origin, int(jsRound(days)))
	}
	months := x / ColumnWidthMonth
	whole := int(months)
	if months < 0 && months != float64(whole) {
		whole--
	}
	frac := months - float64(whole)
	target := time.Date(origin.Year(), origin.Month()+time.Month(whole), 1, 0, 0, 0, 0, time.UTC)
	day := int(jsRound(frac * float64(DaysInMonth(target))))
	return time.Date(target.Year(), target.Month(), 1+day, 0, 0, 0, 0, time.UTC)
}
