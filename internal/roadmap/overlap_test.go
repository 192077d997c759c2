package roadmap

import "testing"

func TestHasOverlap(t *testing.T) {
	t.Parallel()
	items := []Item{
		{ID: "A", StartDate: "2025-01-01", EndDate: "2025-01-08"},
	}

	tests := []struct {
		name    string
		exclude string
		start   string
		end     string
		want    bool
	}{
		{"intersecting range", "B", "2025-01-05", "2025-01-10", true},
		{"touching endpoints do not overlap", "B", "2025-01-08", "2025-01-15", false},
		{"range ending at sibling start", "B", "2024-12-20", "2025-01-01", false},
		{"containing range", "B", "2024-12-01", "2025-02-01", true},
		{"contained range", "B", "2025-01-02", "2025-01-03", true},
		{"moving item ignores itself", "A", "2025-01-05", "2025-01-10", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := HasOverlap(items, tt.exclude, tt.start, tt.end); got != tt.want {
				t.Errorf("HasOverlap(%s..%s) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestHasPhaseOverlap(t *testing.T) {
	t.Parallel()
	bars := []PhaseBar{
		{ID: "p1", StartDate: "2025-03-03", EndDate: "2025-03-17"},
		{ID: "p2", StartDate: "2025-03-24", EndDate: "2025-04-07"},
	}

	if !HasPhaseOverlap(bars, "p3", "2025-03-10", "2025-03-20") {
		t.Error("range crossing p1 should overlap")
	}
	if HasPhaseOverlap(bars, "p3", "2025-03-17", "2025-03-24") {
		t.Error("range filling the gap exactly should not overlap")
	}
	if HasPhaseOverlap(bars, "p1", "2025-03-01", "2025-03-20") {
		t.Error("p1 resizing over itself only should not overlap")
	}
	if !HasPhaseOverlap(bars, "p1", "2025-03-01", "2025-03-25") {
		t.Error("p1 extended across p2 should overlap")
	}
}
