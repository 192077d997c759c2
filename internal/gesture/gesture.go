// Package gesture turns raw pointer movement into committed date-range
// mutations. Each drag or resize is an explicit state machine carrying a
// snapshot of everything it needs — entity reference, dates, origin, zoom,
// pointer and scroll positions — captured at gesture start, so nothing is
// read from ambient mutable state at commit time.
//
// The machine: Idle → (pointer down) → Undecided → (movement beyond the
// 3px threshold) → Dragging or Resizing → (pointer up) → Idle. Releasing
// while still Undecided is a click, reported as a selection. Snapping to
// week boundaries happens once at release, never during the drag, so the
// bar tracks the pointer freely and only jumps on commit.
package gesture

import (
	"time"

	"github.com/roadline-app/roadline/internal/timeline"
)

// DragThreshold is the pointer travel, in pixels, that separates a click
// from a drag.
const DragThreshold = 3.0

// Kind identifies which sort of bar a gesture manipulates.
type Kind int

const (
	KindItem Kind = iota
	KindSubItem
	KindPhaseBar
	KindMilestone
)

// Side selects which edge a resize gesture grabs.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

// State is the gesture machine's current state.
type State int

const (
	StateIdle State = iota
	StateUndecided
	StateDragging
	StateResizing
)

// Target references the entity under the pointer. StreamID is always set;
// ParentItemID and SubItemID narrow the reference for sub-items and phase
// bars. ID is the entity's own id.
type Target struct {
	Kind         Kind
	ID           string
	StreamID     string
	ParentItemID string
	SubItemID    string
}

// Context is the snapshot captured when a gesture begins.
type Context struct {
	Target Target

	// StartDate and EndDate are the entity's committed range at gesture
	// start. Milestones carry only StartDate.
	StartDate string
	EndDate   string

	Origin time.Time
	Zoom   timeline.Zoom

	// PointerX is the pointer position at gesture start; ScrollX is the
	// scroll offset of the timeline viewport at the same instant. Both are
	// re-read at release: the committed delta is pointer travel plus any
	// scroll the viewport did mid-gesture (edge autoscroll, wheel panning),
	// not raw pointer travel alone.
	PointerX float64
	ScrollX  float64
}

// Action says what a finished gesture amounts to.
type Action int

const (
	// ActionNone: nothing to do (aborted, or a resize that never moved is
	// still committed as ActionCommit with unchanged dates).
	ActionNone Action = iota
	// ActionSelect: the pointer never crossed the drag threshold; the
	// release is a click selecting the entity.
	ActionSelect
	// ActionCommit: a completed drag or resize with proposed new dates.
	// The proposal is snapped but not validated; the document store is the
	// gate that rejects overlaps and sub-minimum durations.
	ActionCommit
)

// Result is the outcome of a finished gesture.
type Result struct {
	Action   Action
	Target   Target
	NewStart string
	NewEnd   string

	// Resize distinguishes edge resizes from body moves so commits route to
	// the store operation with the matching validation (resizes also gate
	// the one-week minimum).
	Resize bool
}

// Gesture is one in-flight drag or resize.
type Gesture struct {
	ctx    Context
	state  State
	side   Side
	deltaX float64
}

// BeginMove starts a body-drag gesture in the Undecided state. It becomes a
// drag only once the pointer crosses the threshold; otherwise the release
// is a click.
func BeginMove(ctx Context) *Gesture {
	return &Gesture{ctx: ctx, state: StateUndecided}
}

// BeginResize starts an edge-resize gesture. Grabbing a handle is already
// an unambiguous intent, so there is no Undecided phase.
func BeginResize(ctx Context, side Side) *Gesture {
	return &Gesture{ctx: ctx, state: StateResizing, side: side}
}

// State returns the machine's current state.
func (g *Gesture) State() State { return g.state }

// Context returns the snapshot captured at gesture start.
func (g *Gesture) Context() Context { return g.ctx }

// Side returns which edge a resize gesture grabbed.
func (g *Gesture) Side() Side { return g.side }

// Pointer feeds a pointer-move event. It updates the live visual delta and
// promotes Undecided to Dragging once travel exceeds the threshold.
func (g *Gesture) Pointer(pointerX float64) {
	delta := pointerX - g.ctx.PointerX
	switch g.state {
	case StateUndecided:
		if abs(delta) > DragThreshold {
			g.state = StateDragging
			g.deltaX = delta
		}
	case StateDragging, StateResizing:
		g.deltaX = delta
	}
}

// VisualDelta is the uncommitted offset to render the bar at while the
// gesture is live. Zero until the drag threshold is crossed.
func (g *Gesture) VisualDelta() float64 {
	if g.state == StateDragging || g.state == StateResizing {
		return g.deltaX
	}
	return 0
}

// Release finishes the gesture. The committed horizontal delta is pointer
// travel plus the viewport scroll delta observed between start and release.
// For a drag the whole range shifts and duration is preserved; for a resize
// only the grabbed edge moves. The proposed dates are snapped to the
// nearest Monday. The gesture returns to Idle regardless of outcome.
func (g *Gesture) Release(pointerX, scrollX float64) Result {
	defer func() { g.state = StateIdle }()

	switch g.state {
	case StateUndecided:
		return Result{Action: ActionSelect, Target: g.ctx.Target}
	case StateDragging:
		return g.commitMove(pointerX, scrollX)
	case StateResizing:
		return g.commitResize(pointerX, scrollX)
	default:
		return Result{Action: ActionNone, Target: g.ctx.Target}
	}
}

// Abort cancels the gesture with no commit, for interrupted input streams.
func (g *Gesture) Abort() {
	g.state = StateIdle
	g.deltaX = 0
}

func (g *Gesture) totalDelta(pointerX, scrollX float64) float64 {
	return (pointerX - g.ctx.PointerX) + (scrollX - g.ctx.ScrollX)
}

func (g *Gesture) commitMove(pointerX, scrollX float64) Result {
	delta := g.totalDelta(pointerX, scrollX)

	start, err := timeline.ParseDate(g.ctx.StartDate)
	if err != nil {
		return Result{Action: ActionNone, Target: g.ctx.Target}
	}

	rawStart := timeline.XToDate(timeline.DateToX(start, g.ctx.Origin, g.ctx.Zoom)+delta, g.ctx.Origin, g.ctx.Zoom)
	snappedStart := timeline.SnapToWeek(rawStart)

	if g.ctx.Target.Kind == KindMilestone {
		return Result{
			Action:   ActionCommit,
			Target:   g.ctx.Target,
			NewStart: timeline.FormatDate(snappedStart),
		}
	}

	end, err := timeline.ParseDate(g.ctx.EndDate)
	if err != nil {
		return Result{Action: ActionNone, Target: g.ctx.Target}
	}
	duration := timeline.DiffDays(end, start)
	snappedEnd := timeline.AddDays(snappedStart, duration)

	return Result{
		Action:   ActionCommit,
		Target:   g.ctx.Target,
		NewStart: timeline.FormatDate(snappedStart),
		NewEnd:   timeline.FormatDate(snappedEnd),
	}
}

func (g *Gesture) commitResize(pointerX, scrollX float64) Result {
	delta := g.totalDelta(pointerX, scrollX)

	start, err := timeline.ParseDate(g.ctx.StartDate)
	if err != nil {
		return Result{Action: ActionNone, Target: g.ctx.Target}
	}
	end, err := timeline.ParseDate(g.ctx.EndDate)
	if err != nil {
		return Result{Action: ActionNone, Target: g.ctx.Target}
	}

	newStart, newEnd := start, end
	if g.side == SideLeft {
		raw := timeline.XToDate(timeline.DateToX(start, g.ctx.Origin, g.ctx.Zoom)+delta, g.ctx.Origin, g.ctx.Zoom)
		newStart = timeline.SnapToWeek(raw)
	} else {
		raw := timeline.XToDate(timeline.DateToX(end, g.ctx.Origin, g.ctx.Zoom)+delta, g.ctx.Origin, g.ctx.Zoom)
		newEnd = timeline.SnapToWeek(raw)
	}

	return Result{
		Action:   ActionCommit,
		Target:   g.ctx.Target,
		NewStart: timeline.FormatDate(newStart),
		NewEnd:   timeline.FormatDate(newEnd),
		Resize:   true,
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
