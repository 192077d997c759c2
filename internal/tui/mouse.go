package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/roadline-app/roadline/internal/gesture"
	"github.com/roadline-app/roadline/internal/layout"
	"github.com/roadline-app/roadline/internal/roadmap"
)

// edgeZonePx is how close to a bar edge a press must land to start a resize
// instead of a move.
const edgeZonePx = PxPerCell

// wheelStepPx is the horizontal scroll applied per wheel tick.
const wheelStepPx = 3 * PxPerCell

// handleMouse routes pointer events to the gesture controller and the
// dependency linker. Wheel events scroll the canvas, including mid-drag:
// the controller folds the scroll delta into the commit at release.
func (m AppModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelLeft:
		m.ScrollPx -= wheelStepPx
		return m, nil
	case tea.MouseButtonWheelDown, tea.MouseButtonWheelRight:
		m.ScrollPx += wheelStepPx
		return m, nil
	}

	if msg.Button != tea.MouseButtonLeft && msg.Action != tea.MouseActionMotion && msg.Action != tea.MouseActionRelease {
		return m, nil
	}

	px := m.pointerPx(msg.X)

	switch msg.Action {
	case tea.MouseActionPress:
		m.press(msg.X, msg.Y, px)
	case tea.MouseActionMotion:
		m.Controller.Pointer(px)
	case tea.MouseActionRelease:
		res := m.Controller.Release(px, m.ScrollPx)
		switch res.Action {
		case gesture.ActionSelect:
			// Selection already happened on press.
		case gesture.ActionCommit:
			m.touch()
		}
	}

	return m, nil
}

// pointerPx maps a screen column to a viewport-relative pixel x. Column 0 is
// the selection indicator gutter, so the canvas starts one cell in. Scroll is
// deliberately excluded: the gesture engine tracks pointer and scroll deltas
// separately and sums them at release.
func (m AppModel) pointerPx(x int) float64 {
	return float64(x-1) * PxPerCell
}

// press resolves the pressed row and, when the press lands on a bar or
// milestone, starts the appropriate gesture. In link mode a press on a bar
// commits the dependency edge; a press on empty background exits link mode
// without creating one.
func (m *AppModel) press(x, y int, px float64) {
	ri := m.vscroll + y - m.bodyTop()
	if ri < 0 || ri >= len(m.rows) {
		m.cancelLinkOnMiss()
		return
	}
	m.selected = ri
	r := m.rows[ri]

	data := m.Store.Data()
	stream := data.Stream(r.streamID)
	if stream == nil {
		m.cancelLinkOnMiss()
		return
	}

	hit := false
	switch r.kind {
	case rowStream:
		hit = m.pressStream(data, stream, x)
	case rowItem:
		if item := stream.Item(r.itemID); item != nil {
			target := gesture.Target{Kind: gesture.KindItem, ID: item.ID, StreamID: stream.ID}
			hit = m.pressBar(target, item.StartDate, item.EndDate, px)
		}
	case rowSubItem:
		if item := stream.Item(r.itemID); item != nil {
			if sub := item.SubItem(r.subItemID); sub != nil {
				target := gesture.Target{Kind: gesture.KindSubItem, ID: sub.ID, StreamID: stream.ID, ParentItemID: item.ID}
				hit = m.pressBar(target, sub.StartDate, sub.EndDate, px)
			}
		}
	case rowPhases:
		if item := stream.Item(r.itemID); item != nil {
			if sub := item.SubItem(r.subItemID); sub != nil {
				for i := range sub.PhaseBars {
					pb := &sub.PhaseBars[i]
					target := gesture.Target{
						Kind:         gesture.KindPhaseBar,
						ID:           pb.ID,
						StreamID:     stream.ID,
						ParentItemID: item.ID,
						SubItemID:    sub.ID,
					}
					if m.pressBar(target, pb.StartDate, pb.EndDate, px) {
						hit = true
						break
					}
				}
			}
		}
	}
	if !hit {
		m.cancelLinkOnMiss()
	}
}

// cancelLinkOnMiss exits link mode when a press lands on nothing linkable.
func (m *AppModel) cancelLinkOnMiss() {
	if m.Linker.Active() {
		m.Linker.Cancel()
		m.statusMsg = ""
	}
}

// pressStream hit-tests a stream header press against the stream's
// milestone spans and starts a milestone move when one is hit, reporting
// whether it hit.
func (m *AppModel) pressStream(data *roadmap.Data, stream *roadmap.Stream, x int) bool {
	cell := x - 1
	for _, span := range m.milestoneSpans(data, stream.ID) {
		if cell < span.fromCell || cell >= span.toCell {
			continue
		}
		ctx := gesture.Context{
			Target:    gesture.Target{Kind: gesture.KindMilestone, ID: span.id, StreamID: stream.ID},
			StartDate: span.date,
			EndDate:   span.date,
			Origin:    m.origin,
			Zoom:      m.Zoom,
			PointerX:  m.pointerPx(x),
			ScrollX:   m.ScrollPx,
		}
		m.Controller.StartMove(ctx)
		return true
	}
	return false
}

// pressBar starts a move or resize gesture when the press lands on the bar,
// reporting whether it hit. Presses within a cell of either edge resize;
// anywhere else on the bar moves. A press on a bar while link mode is armed
// creates the dependency instead.
func (m *AppModel) pressBar(target gesture.Target, startDate, endDate string, px float64) bool {
	rect, ok := layout.BarRectFor(startDate, endDate, m.origin, m.Zoom)
	if !ok {
		return false
	}

	// Hit testing happens in document coordinates.
	doc := px + m.ScrollPx
	if doc < rect.X-edgeZonePx || doc > rect.X+rect.Width+edgeZonePx {
		return false
	}

	if m.Linker.Active() {
		if from, to, ok := m.Linker.Click(target.ID); ok {
			m.Store.AddDependency(from, to)
			m.statusMsg = "dependency added"
			m.touch()
		}
		return true
	}

	ctx := gesture.Context{
		Target:    target,
		StartDate: startDate,
		EndDate:   endDate,
		Origin:    m.origin,
		Zoom:      m.Zoom,
		PointerX:  px,
		ScrollX:   m.ScrollPx,
	}

	switch {
	case doc <= rect.X+edgeZonePx:
		m.Controller.StartResize(ctx, gesture.SideLeft)
	case doc >= rect.X+rect.Width-edgeZonePx:
		m.Controller.StartResize(ctx, gesture.SideRight)
	default:
		m.Controller.StartMove(ctx)
	}
	return true
}
