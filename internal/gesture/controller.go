package gesture

import "github.com/roadline-app/roadline/internal/roadmap"

// Controller binds gestures to the document store. It enforces the
// single-gesture rule: at most one drag or resize is in flight at a time,
// and a bar cannot start a move while a resize is active. Commits are
// dispatched to the store, which gates overlaps and minimum durations; a
// rejected commit leaves the document untouched and the bar reverts.
type Controller struct {
	store  *roadmap.Store
	active *Gesture
	linker *Linker
}

// NewController creates a controller for the given store.
func NewController(store *roadmap.Store) *Controller {
	return &Controller{store: store}
}

// Active returns the in-flight gesture, or nil.
func (c *Controller) Active() *Gesture { return c.active }

// StartMove begins a body-drag gesture. It refuses (returns false) while
// another gesture is active.
func (c *Controller) StartMove(ctx Context) bool {
	if c.active != nil {
		return false
	}
	c.active = BeginMove(ctx)
	return true
}

// StartResize begins an edge-resize gesture, refusing while another gesture
// is active.
func (c *Controller) StartResize(ctx Context, side Side) bool {
	if c.active != nil {
		return false
	}
	c.active = BeginResize(ctx, side)
	return true
}

// Pointer feeds pointer movement to the active gesture, if any.
func (c *Controller) Pointer(pointerX float64) {
	if c.active != nil {
		c.active.Pointer(pointerX)
	}
}

// Release finishes the active gesture, applies any resulting commit to the
// store, and returns the result for the caller's selection handling. The
// gesture slot is freed on every path.
func (c *Controller) Release(pointerX, scrollX float64) Result {
	if c.active == nil {
		return Result{Action: ActionNone}
	}
	res := c.active.Release(pointerX, scrollX)
	c.active = nil
	if res.Action == ActionCommit {
		c.apply(res)
	}
	return res
}

// Abort cancels the active gesture without committing.
func (c *Controller) Abort() {
	if c.active != nil {
		c.active.Abort()
		c.active = nil
	}
}

// apply routes a committed gesture to the matching store operation. The
// store silently rejects invalid proposals, which is exactly the revert
// semantics the gesture pipeline wants.
func (c *Controller) apply(res Result) {
	t := res.Target
	switch t.Kind {
	case KindItem:
		if res.Resize {
			c.store.ResizeItem(t.StreamID, t.ID, res.NewStart, res.NewEnd)
		} else {
			c.store.MoveItem(t.StreamID, t.ID, res.NewStart, res.NewEnd)
		}
	case KindSubItem:
		if res.Resize {
			c.store.ResizeSubItem(t.StreamID, t.ParentItemID, t.ID, res.NewStart, res.NewEnd)
		} else {
			c.store.MoveSubItem(t.StreamID, t.ParentItemID, t.ID, res.NewStart, res.NewEnd)
		}
	case KindPhaseBar:
		if res.Resize {
			c.store.ResizePhaseBar(t.StreamID, t.ParentItemID, t.SubItemID, t.ID, res.NewStart, res.NewEnd)
		} else {
			c.store.MovePhaseBar(t.StreamID, t.ParentItemID, t.SubItemID, t.ID, res.NewStart, res.NewEnd)
		}
	case KindMilestone:
		c.store.MoveMilestone(t.ID, res.NewStart)
	}
}
