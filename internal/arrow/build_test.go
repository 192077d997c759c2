package arrow

import (
	"testing"

	"github.com/roadline-app/roadline/internal/layout"
	"github.com/roadline-app/roadline/internal/roadmap"
	"github.com/roadline-app/roadline/internal/timeline"
)

func buildFixture() *roadmap.Data {
	return &roadmap.Data{
		Streams: []roadmap.Stream{
			{
				ID: "s1",
				Items: []roadmap.Item{
					{ID: "i1", StartDate: "2025-01-06", EndDate: "2025-02-03"},
				},
			},
			{
				ID: "s2",
				Items: []roadmap.Item{
					{
						ID: "i2", StartDate: "2025-02-10", EndDate: "2025-03-10",
						Expanded: true,
						SubItems: []roadmap.Item{
							{ID: "sub1", StartDate: "2025-02-10", EndDate: "2025-02-24"},
						},
					},
				},
			},
		},
		Dependencies: []roadmap.Dependency{
			{ID: "d1", FromItemID: "i1", ToItemID: "i2"},
		},
		Settings: roadmap.Settings{TimelineStartDate: "2025-01-06", TimelineEndDate: "2025-12-31"},
	}
}

func TestBuild_ResolvesEndpoints(t *testing.T) {
	t.Parallel()
	data := buildFixture()
	origin, err := timeline.ParseDate("2025-01-06")
	if err != nil {
		t.Fatal(err)
	}

	arrows := Build(data, origin, timeline.ZoomWeek)
	if len(arrows) != 1 {
		t.Fatalf("got %d arrows, want 1", len(arrows))
	}
	a := arrows[0]
	if a.ID != "d1" {
		t.Errorf("arrow id = %s", a.ID)
	}
	// Source: right edge of i1 (4 weeks wide from origin).
	if want := 4 * timeline.ColumnWidthWeek; a.FromX != want {
		t.Errorf("from x = %v, want %v", a.FromX, want)
	}
	// Target: left edge of i2 (5 weeks from origin).
	if want := 5 * timeline.ColumnWidthWeek; a.ToX != want {
		t.Errorf("to x = %v, want %v", a.ToX, want)
	}
	if a.Path == "" {
		t.Error("arrow has no path")
	}
}

func TestBuild_SubItemEndpoint(t *testing.T) {
	t.Parallel()
	data := buildFixture()
	data.Dependencies = []roadmap.Dependency{{ID: "d2", FromItemID: "sub1", ToItemID: "i1"}}
	origin, _ := timeline.ParseDate("2025-01-06")

	arrows := Build(data, origin, timeline.ZoomWeek)
	if len(arrows) != 1 {
		t.Fatalf("got %d arrows, want 1", len(arrows))
	}
	// Sub-item bars are shorter; the mid-height differs from an item row's.
	idx := layout.NewIndex(layout.ComputeStreamLayouts(data.Streams))
	subY, ok := idx.SubItemY("sub1")
	if !ok {
		t.Fatal("sub1 not in layout index")
	}
	want := subY + layout.SubBarVerticalPadding + layout.SubBarHeight/2
	if arrows[0].FromY != want {
		t.Errorf("from y = %v, want %v", arrows[0].FromY, want)
	}
}

func TestBuild_OmitsUnresolvableArrows(t *testing.T) {
	t.Parallel()
	origin, _ := timeline.ParseDate("2025-01-06")

	// Deleted target: the dependency references a ghost id.
	data := buildFixture()
	data.Dependencies = append(data.Dependencies, roadmap.Dependency{ID: "d3", FromItemID: "i1", ToItemID: "ghost"})
	if got := len(Build(data, origin, timeline.ZoomWeek)); got != 1 {
		t.Errorf("ghost target: got %d arrows, want 1", got)
	}

	// Collapsed stream hides the target's row entirely.
	data = buildFixture()
	data.Streams[1].Collapsed = true
	if got := len(Build(data, origin, timeline.ZoomWeek)); got != 0 {
		t.Errorf("collapsed stream: got %d arrows, want 0", got)
	}

	// Collapsed parent hides a sub-item endpoint.
	data = buildFixture()
	data.Streams[1].Items[0].Expanded = false
	data.Dependencies = []roadmap.Dependency{{ID: "d2", FromItemID: "sub1", ToItemID: "i1"}}
	if got := len(Build(data, origin, timeline.ZoomWeek)); got != 0 {
		t.Errorf("collapsed parent: got %d arrows, want 0", got)
	}
}
