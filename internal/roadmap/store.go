package roadmap

import (
	"time"

	"github.com/google/uuid"

	"github.com/roadline-app/roadline/internal/timeline"
)

// Store is the mediator owning one open roadmap document. All structural
// mutation funnels through its methods; no other component mutates the tree
// directly. Every operation is synchronous and atomic: it validates its
// target, applies the change fully or not at all, re-normalizes any order
// indices it touched, cascades deletion of dependent entities, and marks the
// document dirty.
//
// Operations targeting a missing stream/item/sub-item/bar id are silent
// no-ops; callers only ever reference ids from live rendered state. Moves and
// resizes that would overlap a sibling, or shrink a range below the one-week
// minimum, are rejected without error: the committed state is simply never
// written and the bar reverts on the next render.
//
// The store is not safe for concurrent use. The application is event-driven
// and single-threaded; every operation runs to completion before the next
// event is processed.
type Store struct {
	data  *Data
	dirty bool
	now   func() time.Time
}

// NewStore wraps an existing document. A nil data starts an empty document
// with default settings.
func NewStore(data *Data) *Store {
	if data == nil {
		data = NewData()
	}
	return &Store{data: data, now: time.Now}
}

// Data exposes the document for rendering and serialization. Callers must
// treat it as read-only; mutation goes through store operations.
func (s *Store) Data() *Data { return s.data }

// Replace swaps in a freshly loaded document and clears the dirty flag.
func (s *Store) Replace(data *Data) {
	if data == nil {
		data = NewData()
	}
	s.data = data
	s.dirty = false
}

// Dirty reports whether the document differs from the last persisted copy.
func (s *Store) Dirty() bool { return s.dirty }

// ClearDirty records that the current document state has been persisted.
func (s *Store) ClearDirty() { s.dirty = false }

func (s *Store) markDirty() { s.dirty = true }

func newID() string { return uuid.NewString() }

// ── Streams ──

// AddStream appends a stream and returns its id. An empty color picks the
// next palette color by stream count.
func (s *Store) AddStream(name, color string) string {
	if color == "" {
		color = DefaultStreamColors[len(s.data.Streams)%len(DefaultStreamColors)]
	}
	st := Stream{
		ID:    newID(),
		Name:  name,
		Color: color,
		Order: len(s.data.Streams),
		Items: []Item{},
	}
	s.data.Streams = append(s.data.Streams, st)
	s.markDirty()
	return st.ID
}

// RenameStream sets the stream's display name.
func (s *Store) RenameStream(streamID, name string) {
	st := s.data.Stream(streamID)
	if st == nil {
		return
	}
	st.Name = name
	s.markDirty()
}

// SetStreamColor sets the stream's color, which all bars in the stream
// inherit unless individually overridden.
func (s *Store) SetStreamColor(streamID, color string) {
	st := s.data.Stream(streamID)
	if st == nil {
		return
	}
	st.Color = color
	s.markDirty()
}

// RemoveStream deletes a stream and cascades: dependencies referencing any
// of its items or sub-items are pruned, its milestones are deleted, and the
// surviving streams are re-indexed to a dense 0..n-1 order.
func (s *Store) RemoveStream(streamID string) {
	st := s.data.Stream(streamID)
	if st == nil {
		return
	}

	removed := make(map[string]bool)
	for i := range st.Items {
		removed[st.Items[i].ID] = true
		for j := range st.Items[i].SubItems {
			removed[st.Items[i].SubItems[j].ID] = true
		}
	}
	s.pruneDependencies(removed)

	kept := s.data.Milestones[:0]
	for _, m := range s.data.Milestones {
		if m.StreamID != streamID {
			kept = append(kept, m)
		}
	}
	s.data.Milestones = kept

	streams := s.data.Streams[:0]
	for i := range s.data.Streams {
		if s.data.Streams[i].ID != streamID {
			streams = append(streams, s.data.Streams[i])
		}
	}
	s.data.Streams = streams
	reindexStreams(s.data.Streams)
	s.markDirty()
}

// ReorderStreams moves the active stream to the position currently held by
// the over stream, shifting the ones in between, then re-indexes.
func (s *Store) ReorderStreams(activeID, overID string) {
	oldIdx, newIdx := -1, -1
	for i := range s.data.Streams {
		switch s.data.Streams[i].ID {
		case activeID:
			oldIdx = i
		case overID:
			newIdx = i
		}
	}
	if oldIdx < 0 || newIdx < 0 || oldIdx == newIdx {
		return
	}
	moved := s.data.Streams[oldIdx]
	s.data.Streams = append(s.data.Streams[:oldIdx], s.data.Streams[oldIdx+1:]...)
	s.data.Streams = append(s.data.Streams[:newIdx], append([]Stream{moved}, s.data.Streams[newIdx:]...)...)
	reindexStreams(s.data.Streams)
	s.markDirty()
}

// ToggleStreamCollapse flips the stream's collapsed flag.
func (s *Store) ToggleStreamCollapse(streamID string) {
	st := s.data.Stream(streamID)
	if st == nil {
		return
	}
	st.Collapsed = !st.Collapsed
	s.markDirty()
}

// ── Items ──

// ItemPatch updates a subset of an item's editable fields. Nil fields are
// left unchanged. Date fields are applied verbatim: the one-week minimum is
// enforced only at resize-commit time, not on direct edits.
type ItemPatch struct {
	Name      *string
	Lead      *string
	Support   *string
	StartDate *string
	EndDate   *string
	Phase     *Phase
	Notes     *string
	Color     *string
}

func (p ItemPatch) apply(it *Item) {
	if p.Name != nil {
		it.Name = *p.Name
	}
	if p.Lead != nil {
		it.Lead = *p.Lead
	}
	if p.Support != nil {
		it.Support = *p.Support
	}
	if p.StartDate != nil {
		it.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		it.EndDate = *p.EndDate
	}
	if p.Phase != nil {
		it.Phase = *p.Phase
	}
	if p.Notes != nil {
		it.Notes = *p.Notes
	}
	if p.Color != nil {
		it.Color = *p.Color
	}
}

// AddItem appends a new item to the stream, spanning four weeks from the
// next Monday, and returns its id.
func (s *Store) AddItem(streamID string) string {
	st := s.data.Stream(streamID)
	if st == nil {
		return ""
	}
	start := nextMonday(s.now().UTC())
	it := Item{
		ID:        newID(),
		Name:      "New Item",
		StartDate: timeline.FormatDate(start),
		EndDate:   timeline.FormatDate(timeline.AddDays(start, DefaultItemDurationDays)),
		Phase:     PhaseImplementationBuild,
		Order:     len(st.Items),
	}
	st.Items = append(st.Items, it)
	s.markDirty()
	return it.ID
}

// UpdateItem applies a field patch to a top-level item.
func (s *Store) UpdateItem(streamID, itemID string, patch ItemPatch) {
	it := s.item(streamID, itemID)
	if it == nil {
		return
	}
	patch.apply(it)
	s.markDirty()
}

// RemoveItem deletes an item, prunes dependencies referencing it or any of
// its sub-items, and re-indexes the stream's surviving items.
func (s *Store) RemoveItem(streamID, itemID string) {
	st := s.data.Stream(streamID)
	if st == nil {
		return
	}
	it := st.Item(itemID)
	if it == nil {
		return
	}

	removed := map[string]bool{itemID: true}
	for i := range it.SubItems {
		removed[it.SubItems[i].ID] = true
	}
	s.pruneDependencies(removed)

	items := st.Items[:0]
	for i := range st.Items {
		if st.Items[i].ID != itemID {
			items = append(items, st.Items[i])
		}
	}
	st.Items = items
	reindexItems(st.Items)
	s.markDirty()
}

// MoveItem shifts an item to a new range of equal meaning (the caller keeps
// duration and snapping). The move is rejected wholesale if the new range
// overlaps a sibling item.
func (s *Store) MoveItem(streamID, itemID, newStart, newEnd string) {
	st := s.data.Stream(streamID)
	if st == nil {
		return
	}
	if HasOverlap(st.Items, itemID, newStart, newEnd) {
		return
	}
	it := st.Item(itemID)
	if it == nil {
		return
	}
	it.StartDate = newStart
	it.EndDate = newEnd
	s.markDirty()
}

// ResizeItem commits a resized range. Ranges shorter than one week or
// overlapping a sibling are rejected and the item keeps its dates.
func (s *Store) ResizeItem(streamID, itemID, newStart, newEnd string) {
	st := s.data.Stream(streamID)
	if st == nil {
		return
	}
	if !meetsMinDuration(newStart, newEnd) {
		return
	}
	if HasOverlap(st.Items, itemID, newStart, newEnd) {
		return
	}
	it := st.Item(itemID)
	if it == nil {
		return
	}
	it.StartDate = newStart
	it.EndDate = newEnd
	s.markDirty()
}

// ToggleItemExpanded flips an item's expanded flag, materializing its
// sub-item list so the expanded view can offer the add affordance.
func (s *Store) ToggleItemExpanded(streamID, itemID string) {
	it := s.item(streamID, itemID)
	if it == nil {
		return
	}
	it.Expanded = !it.Expanded
	if it.SubItems == nil {
		it.SubItems = []Item{}
	}
	s.markDirty()
}

// ── Sub-items ──

// AddSubItem appends a sub-item starting at the parent's start date with a
// two-week span, expands the parent, and returns the new id.
func (s *Store) AddSubItem(streamID, parentItemID string) string {
	parent := s.item(streamID, parentItemID)
	if parent == nil {
		return ""
	}
	start, err := timeline.ParseDate(parent.StartDate)
	if err != nil {
		return ""
	}
	sub := Item{
		ID:        newID(),
		Name:      "New Sub-task",
		StartDate: parent.StartDate,
		EndDate:   timeline.FormatDate(timeline.AddDays(start, DefaultSubItemDurationDays)),
		Phase:     parent.Phase,
		Order:     len(parent.SubItems),
	}
	parent.SubItems = append(parent.SubItems, sub)
	parent.Expanded = true
	s.markDirty()
	return sub.ID
}

// UpdateSubItem applies a field patch to a sub-item.
func (s *Store) UpdateSubItem(streamID, parentItemID, subItemID string, patch ItemPatch) {
	sub := s.subItem(streamID, parentItemID, subItemID)
	if sub == nil {
		return
	}
	patch.apply(sub)
	s.markDirty()
}

// RemoveSubItem deletes a sub-item, prunes its dependencies, and re-indexes
// its siblings.
func (s *Store) RemoveSubItem(streamID, parentItemID, subItemID string) {
	parent := s.item(streamID, parentItemID)
	if parent == nil || parent.SubItem(subItemID) == nil {
		return
	}
	s.pruneDependencies(map[string]bool{subItemID: true})
	subs := parent.SubItems[:0]
	for i := range parent.SubItems {
		if parent.SubItems[i].ID != subItemID {
			subs = append(subs, parent.SubItems[i])
		}
	}
	parent.SubItems = subs
	reindexItems(parent.SubItems)
	s.markDirty()
}

// MoveSubItem shifts a sub-item's range. Sub-items render on their own rows,
// so sibling overlap is permitted.
func (s *Store) MoveSubItem(streamID, parentItemID, subItemID, newStart, newEnd string) {
	sub := s.subItem(streamID, parentItemID, subItemID)
	if sub == nil {
		return
	}
	sub.StartDate = newStart
	sub.EndDate = newEnd
	s.markDirty()
}

// ResizeSubItem commits a resized sub-item range, subject to the one-week
// minimum.
func (s *Store) ResizeSubItem(streamID, parentItemID, subItemID, newStart, newEnd string) {
	sub := s.subItem(streamID, parentItemID, subItemID)
	if sub == nil {
		return
	}
	if !meetsMinDuration(newStart, newEnd) {
		return
	}
	sub.StartDate = newStart
	sub.EndDate = newEnd
	s.markDirty()
}

// ── Phase bars ──

// PhaseBarPatch updates a phase bar's name and/or color.
type PhaseBarPatch struct {
	Name  *string
	Color *string
}

// AddPhaseBar appends a phase bar to a sub-item with the default two-week
// span and color, expands the sub-item's phase row, and returns the new id.
// A bar that would overlap an existing sibling is not created.
func (s *Store) AddPhaseBar(streamID, parentItemID, subItemID, name, startDate string) string {
	sub := s.subItem(streamID, parentItemID, subItemID)
	if sub == nil {
		return ""
	}
	start, err := timeline.ParseDate(startDate)
	if err != nil {
		return ""
	}
	end := timeline.FormatDate(timeline.AddDays(start, DefaultPhaseBarDurationDays))
	if HasPhaseOverlap(sub.PhaseBars, "", startDate, end) {
		return ""
	}
	bar := PhaseBar{
		ID:        newID(),
		Name:      name,
		StartDate: startDate,
		EndDate:   end,
		Color:     DefaultPhaseBarColor,
	}
	sub.PhaseBars = append(sub.PhaseBars, bar)
	sub.PhasesExpanded = true
	s.markDirty()
	return bar.ID
}

// UpdatePhaseBar applies a patch to a phase bar.
func (s *Store) UpdatePhaseBar(streamID, parentItemID, subItemID, barID string, patch PhaseBarPatch) {
	bar := s.phaseBar(streamID, parentItemID, subItemID, barID)
	if bar == nil {
		return
	}
	if patch.Name != nil {
		bar.Name = *patch.Name
	}
	if patch.Color != nil {
		bar.Color = *patch.Color
	}
	s.markDirty()
}

// RemovePhaseBar deletes a phase bar.
func (s *Store) RemovePhaseBar(streamID, parentItemID, subItemID, barID string) {
	sub := s.subItem(streamID, parentItemID, subItemID)
	if sub == nil {
		return
	}
	bars := sub.PhaseBars[:0]
	found := false
	for i := range sub.PhaseBars {
		if sub.PhaseBars[i].ID == barID {
			found = true
			continue
		}
		bars = append(bars, sub.PhaseBars[i])
	}
	if !found {
		return
	}
	sub.PhaseBars = bars
	s.markDirty()
}

// MovePhaseBar shifts a phase bar's range, rejected wholesale on sibling
// overlap.
func (s *Store) MovePhaseBar(streamID, parentItemID, subItemID, barID, newStart, newEnd string) {
	sub := s.subItem(streamID, parentItemID, subItemID)
	if sub == nil {
		return
	}
	if HasPhaseOverlap(sub.PhaseBars, barID, newStart, newEnd) {
		return
	}
	bar := sub.phaseBarByID(barID)
	if bar == nil {
		return
	}
	bar.StartDate = newStart
	bar.EndDate = newEnd
	s.markDirty()
}

// ResizePhaseBar commits a resized phase bar range, subject to the one-week
// minimum and sibling overlap.
func (s *Store) ResizePhaseBar(streamID, parentItemID, subItemID, barID, newStart, newEnd string) {
	sub := s.subItem(streamID, parentItemID, subItemID)
	if sub == nil {
		return
	}
	if !meetsMinDuration(newStart, newEnd) {
		return
	}
	if HasPhaseOverlap(sub.PhaseBars, barID, newStart, newEnd) {
		return
	}
	bar := sub.phaseBarByID(barID)
	if bar == nil {
		return
	}
	bar.StartDate = newStart
	bar.EndDate = newEnd
	s.markDirty()
}

// TogglePhasesExpanded flips a sub-item's phase row between the editing row
// and the collapsed highlight strip.
func (s *Store) TogglePhasesExpanded(streamID, parentItemID, subItemID string) {
	sub := s.subItem(streamID, parentItemID, subItemID)
	if sub == nil {
		return
	}
	sub.PhasesExpanded = !sub.PhasesExpanded
	s.markDirty()
}

// ── Dependencies ──

// AddDependency records a directed edge between two items or sub-items.
// Duplicate (from, to) pairs and self-loops are silently ignored.
func (s *Store) AddDependency(fromItemID, toItemID string) {
	if fromItemID == toItemID {
		return
	}
	for _, d := range s.data.Dependencies {
		if d.FromItemID == fromItemID && d.ToItemID == toItemID {
			return
		}
	}
	s.data.Dependencies = append(s.data.Dependencies, Dependency{
		ID:         newID(),
		FromItemID: fromItemID,
		ToItemID:   toItemID,
	})
	s.markDirty()
}

// RemoveDependency deletes the edge with the given id.
func (s *Store) RemoveDependency(depID string) {
	deps := s.data.Dependencies[:0]
	found := false
	for _, d := range s.data.Dependencies {
		if d.ID == depID {
			found = true
			continue
		}
		deps = append(deps, d)
	}
	if !found {
		return
	}
	s.data.Dependencies = deps
	s.markDirty()
}

// ── Milestones ──

// AddMilestone records a point-in-time marker on a stream and returns its id.
func (s *Store) AddMilestone(name, date, streamID string) string {
	if s.data.Stream(streamID) == nil {
		return ""
	}
	m := Milestone{ID: newID(), Name: name, Date: date, StreamID: streamID}
	s.data.Milestones = append(s.data.Milestones, m)
	s.markDirty()
	return m.ID
}

// RemoveMilestone deletes the milestone with the given id.
func (s *Store) RemoveMilestone(milestoneID string) {
	ms := s.data.Milestones[:0]
	found := false
	for _, m := range s.data.Milestones {
		if m.ID == milestoneID {
			found = true
			continue
		}
		ms = append(ms, m)
	}
	if !found {
		return
	}
	s.data.Milestones = ms
	s.markDirty()
}

// MoveMilestone sets the milestone's date.
func (s *Store) MoveMilestone(milestoneID, newDate string) {
	for i := range s.data.Milestones {
		if s.data.Milestones[i].ID == milestoneID {
			s.data.Milestones[i].Date = newDate
			s.markDirty()
			return
		}
	}
}

// ── Settings ──

// SetTimelineRange updates the nominal visible span.
func (s *Store) SetTimelineRange(startDate, endDate string) {
	s.data.Settings.TimelineStartDate = startDate
	s.data.Settings.TimelineEndDate = endDate
	s.markDirty()
}

// ── Internal helpers ──

func (s *Store) item(streamID, itemID string) *Item {
	st := s.data.Stream(streamID)
	if st == nil {
		return nil
	}
	return st.Item(itemID)
}

func (s *Store) subItem(streamID, parentItemID, subItemID string) *Item {
	parent := s.item(streamID, parentItemID)
	if parent == nil {
		return nil
	}
	return parent.SubItem(subItemID)
}

func (s *Store) phaseBar(streamID, parentItemID, subItemID, barID string) *PhaseBar {
	sub := s.subItem(streamID, parentItemID, subItemID)
	if sub == nil {
		return nil
	}
	return sub.phaseBarByID(barID)
}

func (it *Item) phaseBarByID(barID string) *PhaseBar {
	for i := range it.PhaseBars {
		if it.PhaseBars[i].ID == barID {
			return &it.PhaseBars[i]
		}
	}
	return nil
}

// pruneDependencies drops every edge touching a removed entity id.
func (s *Store) pruneDependencies(removed map[string]bool) {
	deps := s.data.Dependencies[:0]
	for _, d := range s.data.Dependencies {
		if removed[d.FromItemID] || removed[d.ToItemID] {
			continue
		}
		deps = append(deps, d)
	}
	s.data.Dependencies = deps
}

func reindexStreams(streams []Stream) {
	for i := range streams {
		streams[i].Order = i
	}
}

func reindexItems(items []Item) {
	for i := range items {
		items[i].Order = i
	}
}

// meetsMinDuration reports whether [start, end] spans at least the one-week
// minimum. Unparsable dates fail the check, rejecting the commit.
func meetsMinDuration(start, end string) bool {
	s, err := timeline.ParseDate(start)
	if err != nil {
		return false
	}
	e, err := timeline.ParseDate(end)
	if err != nil {
		return false
	}
	return timeline.DiffDays(e, s) >= MinItemDurationDays
}

// nextMonday returns the Monday strictly after t (a week out when t is
// already a Monday), the default anchor for new items.
func nextMonday(t time.Time) time.Time {
	day := int(t.Weekday())
	if day == 0 {
		return timeline.AddDays(t, 1)
	}
	return timeline.AddDays(t, 8-day)
}
