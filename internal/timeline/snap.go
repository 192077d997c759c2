package timeline

import "time"

// SnapToWeek snaps a date to the nearest Monday. Distance is measured to the
// Monday on or before the date and to the following Monday; ties break toward
// the earlier Monday. Snapping is applied once, after a drag or resize
// gesture completes, never continuously during the drag.
func SnapToWeek(d time.Time) time.Time {
	monday := StartOfWeek(d)
	next := AddDays(monday, 7)
	toCurrent := DiffDays(d, monday)
	toNext := DiffDays(next, d)
	if toCurrent <= toNext {
		return monday
	}
	return next
}
