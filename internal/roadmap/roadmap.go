// Package roadmap defines the roadmap document model and the store that
// owns it.
//
// A document is a tree of streams, each holding ordered date-ranged items;
// items optionally decompose one level deep into sub-items, and sub-items
// optionally carry phase bars segmenting their own span. Dependencies link
// items or sub-items; milestones are point-in-time markers tied to a stream.
//
// All dates are "YYYY-MM-DD" strings. String comparison of two such values
// is equivalent to date-order comparison, which the overlap validator uses
// directly.
package roadmap

// Phase classifies an item into one of five fixed categories. The set is
// closed; it is not user-extensible.
type Phase string

const (
	PhaseDiscoveryDesign     Phase = "discovery-design"
	PhaseImplementationBuild Phase = "implementation-build"
	PhaseTestingRelease      Phase = "testing-release"
	PhaseOngoingContinuous   Phase = "ongoing-continuous"
	PhaseFBNLedWork          Phase = "fbn-led-work"
)

// Phases lists every phase in display order.
var Phases = []Phase{
	PhaseDiscoveryDesign,
	PhaseImplementationBuild,
	PhaseTestingRelease,
	PhaseOngoingContinuous,
	PhaseFBNLedWork,
}

var phaseLabels = map[Phase]string{
	PhaseDiscoveryDesign:     "Discovery / Design",
	PhaseImplementationBuild: "Implementation / Build",
	PhaseTestingRelease:      "Testing / Release",
	PhaseOngoingContinuous:   "Ongoing / Continuous",
	PhaseFBNLedWork:          "FBN-Led Work",
}

var phaseShortLabels = map[Phase]string{
	PhaseDiscoveryDesign:     "Discovery",
	PhaseImplementationBuild: "Build",
	PhaseTestingRelease:      "Testing",
	PhaseOngoingContinuous:   "Ongoing",
	PhaseFBNLedWork:          "FBN-Led",
}

// Label returns the full display label for the phase.
func (p Phase) Label() string { return phaseLabels[p] }

// ShortLabel returns the abbreviated display label for the phase.
func (p Phase) ShortLabel() string { return phaseShortLabels[p] }

// PhaseBar is a sub-segment of a sub-item's timeline. Phase bars of the same
// sub-item share one row and must not overlap.
type PhaseBar struct {
	ID        string `json:"id" toml:"id"`
	Name      string `json:"name" toml:"name"`
	StartDate string `json:"startDate" toml:"start_date"`
	EndDate   string `json:"endDate" toml:"end_date"`
	Color     string `json:"color" toml:"color"`
}

// Item is a date-ranged unit of work. The same shape serves top-level items
// and sub-items; nesting stops at one level (sub-items never have their own
// SubItems, and only sub-items carry PhaseBars).
type Item struct {
	ID        string `json:"id" toml:"id"`
	Name      string `json:"name" toml:"name"`
	Lead      string `json:"lead" toml:"lead,omitempty"`
	Support   string `json:"support" toml:"support,omitempty"`
	StartDate string `json:"startDate" toml:"start_date"`
	EndDate   string `json:"endDate" toml:"end_date"`
	Phase     Phase  `json:"phase" toml:"phase"`
	Notes     string `json:"notes" toml:"notes,omitempty"`
	Order     int    `json:"order" toml:"order"`

	// Color overrides the stream color for this bar when set.
	Color string `json:"color,omitempty" toml:"color,omitempty"`

	SubItems       []Item     `json:"subItems,omitempty" toml:"sub_items,omitempty"`
	Expanded       bool       `json:"expanded,omitempty" toml:"expanded,omitempty"`
	PhaseBars      []PhaseBar `json:"phaseBars,omitempty" toml:"phase_bars,omitempty"`
	PhasesExpanded bool       `json:"phasesExpanded,omitempty" toml:"phases_expanded,omitempty"`
}

// Stream is an ordered top-level lane of work. Order values of sibling
// streams always form a dense 0..n-1 permutation.
type Stream struct {
	ID        string `json:"id" toml:"id"`
	Name      string `json:"name" toml:"name"`
	Color     string `json:"color" toml:"color"`
	Collapsed bool   `json:"collapsed" toml:"collapsed,omitempty"`
	Order     int    `json:"order" toml:"order"`
	Items     []Item `json:"items" toml:"items,omitempty"`
}

// Dependency is a directed edge between two items or sub-items (never phase
// bars or milestones). At most one edge exists per (from, to) pair.
type Dependency struct {
	ID         string `json:"id" toml:"id"`
	FromItemID string `json:"fromItemId" toml:"from_item_id"`
	ToItemID   string `json:"toItemId" toml:"to_item_id"`
}

// Milestone is a point-in-time marker owned by a stream. It is deleted with
// its stream.
type Milestone struct {
	ID       string `json:"id" toml:"id"`
	Name     string `json:"name" toml:"name"`
	Date     string `json:"date" toml:"date"`
	StreamID string `json:"streamId" toml:"stream_id"`
}

// Settings holds the nominal visible span of the timeline. The rendered span
// is this range padded by a fixed buffer on both ends.
type Settings struct {
	TimelineStartDate string `json:"timelineStartDate" toml:"timeline_start_date"`
	TimelineEndDate   string `json:"timelineEndDate" toml:"timeline_end_date"`
}

// Data is a whole roadmap document, the unit persisted and loaded atomically.
type Data struct {
	Streams      []Stream     `json:"streams" toml:"streams"`
	Dependencies []Dependency `json:"dependencies" toml:"dependencies,omitempty"`
	Milestones   []Milestone  `json:"milestones" toml:"milestones,omitempty"`
	Settings     Settings     `json:"settings" toml:"settings"`
}

// Clone returns a deep copy of the document. The copy shares no slices with
// the original, so mutating one never shows through the other.
func (d *Data) Clone() *Data {
	if d == nil {
		return nil
	}
	c := *d
	c.Streams = make([]Stream, len(d.Streams))
	for i := range d.Streams {
		c.Streams[i] = d.Streams[i]
		c.Streams[i].Items = cloneItems(d.Streams[i].Items)
	}
	c.Dependencies = append([]Dependency(nil), d.Dependencies...)
	c.Milestones = append([]Milestone(nil), d.Milestones...)
	return &c
}

func cloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	for i, it := range items {
		it.SubItems = cloneItems(it.SubItems)
		it.PhaseBars = append([]PhaseBar(nil), it.PhaseBars...)
		out[i] = it
	}
	return out
}

// Stream returns the stream with the given id, or nil.
func (d *Data) Stream(id string) *Stream {
	for i := range d.Streams {
		if d.Streams[i].ID == id {
			return &d.Streams[i]
		}
	}
	return nil
}

// Item returns the top-level item with the given id, or nil.
func (s *Stream) Item(id string) *Item {
	for i := range s.Items {
		if s.Items[i].ID == id {
			return &s.Items[i]
		}
	}
	return nil
}

// SubItem returns the sub-item with the given id, or nil.
func (it *Item) SubItem(id string) *Item {
	for i := range it.SubItems {
		if it.SubItems[i].ID == id {
			return &it.SubItems[i]
		}
	}
	return nil
}

// FindItem locates an item or sub-item anywhere in the document. For a
// sub-item, parent is its owning top-level item; for a top-level item,
// parent is nil.
func (d *Data) FindItem(id string) (item *Item, parent *Item, stream *Stream) {
	for si := range d.Streams {
		st := &d.Streams[si]
		for ii := range st.Items {
			it := &st.Items[ii]
			if it.ID == id {
				return it, nil, st
			}
			for sj := range it.SubItems {
				if it.SubItems[sj].ID == id {
					return &it.SubItems[sj], it, st
				}
			}
		}
	}
	return nil, nil, nil
}
