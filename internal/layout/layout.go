// Package layout computes the vertical geometry of a roadmap document: one
// flat top-to-bottom coordinate space covering stream headers, item rows,
// sub-item rows, phase rows, and trailing spacer rows. Every row's Y offset
// is the running sum of all preceding row heights, so the whole document
// renders in a single absolute coordinate space with no nested scrolling.
//
// The computation is pure. It must be re-run whenever the stream/item tree
// or any collapse/expand flag changes.
package layout

import (
	"time"

	"github.com/roadline-app/roadline/internal/roadmap"
	"github.com/roadline-app/roadline/internal/timeline"
)

// Row heights in pixels. Bars sit vertically centered in their rows.
const (
	StreamHeaderHeight        = 40.0
	ItemRowHeight             = 40.0
	BarHeight                 = 30.0
	BarVerticalPadding        = (ItemRowHeight - BarHeight) / 2
	SubItemRowHeight          = 28.0
	SubBarHeight              = 20.0
	SubBarVerticalPadding     = (SubItemRowHeight - SubBarHeight) / 2
	PhaseRowHeight            = 24.0
	PhaseBarHeight            = 16.0
	PhaseBarVerticalPadding   = (PhaseRowHeight - PhaseBarHeight) / 2
	PhaseHighlightStripHeight = 4.0
)

// MinBarWidth is the floor applied to bar widths so very short ranges stay
// clickable.
const MinBarWidth = 10.0

// SubItemRow gives a sub-item's row position. PhaseRowY is set only while
// the sub-item's phase row is expanded for editing.
type SubItemRow struct {
	SubItemID string
	Y         float64
	PhaseRowY float64
	HasPhases bool
}

// ItemRow gives an item's row position and the rows of its visible
// sub-items.
type ItemRow struct {
	ItemID   string
	Y        float64
	SubItems []SubItemRow
}

// StreamLayout gives a stream's vertical extent: the header row plus every
// row the stream contributes, including trailing spacer rows.
type StreamLayout struct {
	StreamID string
	HeaderY  float64
	Height   float64
	Items    []ItemRow
}

// ComputeStreamLayouts walks the stream tree in document order and assigns
// cumulative Y offsets. Collapsed streams contribute only their header row.
// Expanded items contribute one row per sub-item, plus a highlight strip
// when a sub-item's phases are collapsed but present, plus a phase-editing
// row when expanded, plus a trailing add-sub-item spacer. Every visible
// stream ends with an add-item spacer row.
func ComputeStreamLayouts(streams []roadmap.Stream) []StreamLayout {
	layouts := make([]StreamLayout, 0, len(streams))
	y := 0.0

	for si := range streams {
		stream := &streams[si]
		headerY := y
		y += StreamHeaderHeight

		var items []ItemRow
		if !stream.Collapsed {
			for ii := range stream.Items {
				item := &stream.Items[ii]
				row := ItemRow{ItemID: item.ID, Y: y}
				y += ItemRowHeight

				if item.Expanded && len(item.SubItems) > 0 {
					for sj := range item.SubItems {
						sub := &item.SubItems[sj]
						subRow := SubItemRow{
							SubItemID: sub.ID,
							Y:         y,
							HasPhases: len(sub.PhaseBars) > 0,
						}
						y += SubItemRowHeight

						if !sub.PhasesExpanded && subRow.HasPhases {
							y += PhaseHighlightStripHeight
						}
						if sub.PhasesExpanded {
							subRow.PhaseRowY = y
							y += PhaseRowHeight
						}
						row.SubItems = append(row.SubItems, subRow)
					}
					// Add-sub-item affordance row.
					y += SubItemRowHeight
				}
				items = append(items, row)
			}
			// Add-item affordance row.
			y += ItemRowHeight
		}

		layouts = append(layouts, StreamLayout{
			StreamID: stream.ID,
			HeaderY:  headerY,
			Height:   y - headerY,
			Items:    items,
		})
	}
	return layouts
}

// TotalHeight returns the canvas height: the last stream's bottom edge plus
// one extra row unit of padding. Empty documents get a fixed minimum.
func TotalHeight(streams []roadmap.Stream) float64 {
	layouts := ComputeStreamLayouts(streams)
	if len(layouts) == 0 {
		return 200
	}
	last := layouts[len(layouts)-1]
	return last.HeaderY + last.Height + ItemRowHeight
}

// Width returns the canvas width covered by the generated columns.
func Width(cols []timeline.Column) float64 {
	if len(cols) == 0 {
		return 0
	}
	last := cols[len(cols)-1]
	return last.X + last.Width
}

// BarRect is a bar's horizontal extent.
type BarRect struct {
	X     float64
	Width float64
}

// BarRectFor projects a date range onto the x axis at the given zoom level.
// Unparsable dates yield a zero rect and ok=false so callers can omit the
// bar rather than render stale coordinates.
func BarRectFor(startDate, endDate string, origin time.Time, zoom timeline.Zoom) (BarRect, bool) {
	start, err := timeline.ParseDate(startDate)
	if err != nil {
		return BarRect{}, false
	}
	end, err := timeline.ParseDate(endDate)
	if err != nil {
		return BarRect{}, false
	}
	x := timeline.DateToX(start, origin, zoom)
	x2 := timeline.DateToX(end, origin, zoom)
	w := x2 - x
	if w < MinBarWidth {
		w = MinBarWidth
	}
	return BarRect{X: x, Width: w}, true
}

// Index provides row lookups by entity id over a computed layout.
type Index struct {
	itemY    map[string]float64
	subItemY map[string]float64
}

// NewIndex builds row lookups from a computed layout.
func NewIndex(layouts []StreamLayout) *Index {
	idx := &Index{
		itemY:    make(map[string]float64),
		subItemY: make(map[string]float64),
	}
	for _, sl := range layouts {
		for _, ir := range sl.Items {
			idx.itemY[ir.ItemID] = ir.Y
			for _, sr := range ir.SubItems {
				idx.subItemY[sr.SubItemID] = sr.Y
			}
		}
	}
	return idx
}

// ItemY returns the row Y of a visible top-level item.
func (idx *Index) ItemY(itemID string) (float64, bool) {
	y, ok := idx.itemY[itemID]
	return y, ok
}

// SubItemY returns the row Y of a visible sub-item.
func (idx *Index) SubItemY(subItemID string) (float64, bool) {
	y, ok := idx.subItemY[subItemID]
	return y, ok
}

// RowY returns the row Y of a visible item or sub-item.
func (idx *Index) RowY(id string) (float64, bool) {
	if y, ok := idx.itemY[id]; ok {
		return y, true
	}
	y, ok := idx.subItemY[id]
	return y, ok
}
