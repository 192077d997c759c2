package timeline

import (
	"math"
	"testing"
)

func TestDateToX_WeekZoom(t *testing.T) {
	t.Parallel()
	origin := mustDate(t, "2025-01-06")
	tests := []struct {
		date string
		want float64
	}{
		{"2025-01-06", 0},
		{"2025-01-13", ColumnWidthWeek},
		{"2025-01-20", 2 * ColumnWidthWeek},
		{"2024-12-30", -ColumnWidthWeek},
		{"2025-01-09", 3.0 / 7 * ColumnWidthWeek}, // mid-week is fractional
	}
	for _, tt := range tests {
		got := DateToX(mustDate(t, tt.date), origin, ZoomWeek)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("DateToX(%s) = %v, want %v", tt.date, got, tt.want)
		}
	}
}

func TestDateToX_MonthZoom(t *testing.T) {
	t.Parallel()
	origin := mustDate(t, "2025-01-01")
	tests := []struct {
		date string
		want float64
	}{
		{"2025-01-01", 0},
		{"2025-02-01", ColumnWidthMonth},
		{"2025-04-01", 3 * ColumnWidthMonth},
		{"2024-12-01", -ColumnWidthMonth},
		// 16 Jan: day fraction 15/31 of the January column.
		{"2025-01-16", 15.0 / 31 * ColumnWidthMonth},
		// 15 Feb: one whole month plus 14/28 of February.
		{"2025-02-15", (1 + 14.0/28) * ColumnWidthMonth},
	}
	for _, tt := range tests {
		got := DateToX(mustDate(t, tt.date), origin, ZoomMonth)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("DateToX(%s) = %v, want %v", tt.date, got, tt.want)
		}
	}
}

// Identical day spans render at different pixel widths depending on which
// month they fall in. This is part of the coordinate contract.
func TestDateToX_MonthZoom_DensityVariesByMonthLength(t *testing.T) {
	t.Parallel()
	origin := mustDate(t, "2025-01-01")
	feb := DateToX(mustDate(t, "2025-02-15"), origin, ZoomMonth) -
		DateToX(mustDate(t, "2025-02-01"), origin, ZoomMonth)
	jan := DateToX(mustDate(t, "2025-01-15"), origin, ZoomMonth) -
		DateToX(mustDate(t, "2025-01-01"), origin, ZoomMonth)
	if feb <= jan {
		t.Errorf("14 days in Feb (%v px) should be wider than in Jan (%v px)", feb, jan)
	}
}

// Week-zoom round trip is exact for every day across several weeks,
// including dates before the origin.
func TestXToDate_WeekZoom_RoundTrip(t *testing.T) {
	t.Parallel()
	origin := mustDate(t, "2025-01-06")
	d := mustDate(t, "2024-11-04")
	for i := 0; i < 180; i++ {
		x := DateToX(d, origin, ZoomWeek)
		back := XToDate(x, origin, ZoomWeek)
		if !back.Equal(d) {
			t.Fatalf("round trip %s -> %v -> %s", FormatDate(d), x, FormatDate(back))
		}
		d = AddDays(d, 1)
	}
}

// Month-zoom round trip holds within one day.
func TestXToDate_MonthZoom_RoundTrip(t *testing.T) {
	t.Parallel()
	origin := mustDate(t, "2025-01-01")
	d := mustDate(t, "2024-10-15")
	for i := 0; i < 365; i++ {
		x := DateToX(d, origin, ZoomMonth)
		back := XToDate(x, origin, ZoomMonth)
		if diff := DiffDays(back, d); diff < -1 || diff > 1 {
			t.Fatalf("round trip %s -> %v -> %s drifted %d days", FormatDate(d), x, FormatDate(back), diff)
		}
		d = AddDays(d, 1)
	}
}

func TestXToDate_MonthZoom_DayOverflowNormalizes(t *testing.T) {
	t.Parallel()
	origin := mustDate(t, "2025-01-01")
	// An x just shy of the February column resolves to the very end of
	// January or the first of February, never an out-of-range day.
	got := XToDate(ColumnWidthMonth-0.01, origin, ZoomMonth)
	if FormatDate(got) != "2025-02-01" && FormatDate(got) != "2025-01-31" {
		t.Errorf("XToDate near column edge = %s", FormatDate(got))
	}
}

func TestXToDate_NegativeOffsets(t *testing.T) {
	t.Parallel()
	origin := mustDate(t, "2025-06-01")
	if got := XToDate(-ColumnWidthWeek, origin, ZoomWeek); FormatDate(got) != "2025-05-25" {
		t.Errorf("week zoom x=-%v => %s, want 2025-05-25", ColumnWidthWeek, FormatDate(got))
	}
	if got := XToDate(-ColumnWidthMonth, origin, ZoomMonth); FormatDate(got) != "2025-05-01" {
		t.Errorf("month zoom x=-%v => %s, want 2025-05-01", ColumnWidthMonth, FormatDate(got))
	}
}
