package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/roadline-app/roadline/internal/layout"
	"github.com/roadline-app/roadline/internal/roadmap"
	"github.com/roadline-app/roadline/internal/timeline"
)

// PxPerCell is the horizontal mapping between the document's pixel space and
// terminal cells: one cell covers ten pixels, so a week column (120px) spans
// 12 cells and a month column (180px) spans 18.
const PxPerCell = 10.0

// rowKind says what a canvas row represents.
type rowKind int

const (
	rowStream rowKind = iota
	rowItem
	rowSubItem
	rowPhases
)

// row is one renderable line of the timeline body, carrying enough entity
// context to start gestures and route mutations.
type row struct {
	kind      rowKind
	streamID  string
	itemID    string
	subItemID string
}

// buildRows flattens the document tree into display order, honoring
// collapse/expand state: collapsed streams contribute only their header,
// collapsed items hide their sub-items, and a sub-item's phase row appears
// only while its phases are expanded.
func buildRows(data *roadmap.Data) []row {
	var rows []row
	for si := range data.Streams {
		stream := &data.Streams[si]
		rows = append(rows, row{kind: rowStream, streamID: stream.ID})
		if stream.Collapsed {
			continue
		}
		for ii := range stream.Items {
			item := &stream.Items[ii]
			rows = append(rows, row{kind: rowItem, streamID: stream.ID, itemID: item.ID})
			if !item.Expanded {
				continue
			}
			for sj := range item.SubItems {
				sub := &item.SubItems[sj]
				rows = append(rows, row{kind: rowSubItem, streamID: stream.ID, itemID: item.ID, subItemID: sub.ID})
				if sub.PhasesExpanded {
					rows = append(rows, row{kind: rowPhases, streamID: stream.ID, itemID: item.ID, subItemID: sub.ID})
				}
			}
		}
	}
	return rows
}

// cellOf maps a document pixel x to a canvas cell given the scroll offset.
func cellOf(px, scrollPx float64) int {
	return int((px - scrollPx) / PxPerCell)
}

// pxOf maps a canvas cell back to a document pixel, at the cell's left edge.
func pxOf(cell int, scrollPx float64) float64 {
	return scrollPx + float64(cell)*PxPerCell
}

// headerLines renders the column header: at month zoom a quarter line above
// the month line, at week zoom a single line of week-start labels. Labels are
// clipped to their column's span.
func headerLines(cols []timeline.Column, scrollPx float64, width int, zoom timeline.Zoom, monthColors bool) []string {
	label := make([]rune, width)
	sub := make([]rune, width)
	bg := make([]int, width) // month number, 0 = none
	for i := range label {
		label[i] = ' '
		sub[i] = ' '
	}

	for _, col := range cols {
		startCell := cellOf(col.X, scrollPx)
		endCell := cellOf(col.X+col.Width, scrollPx)
		writeClipped(label, col.Label, startCell+1, endCell)
		if col.Sublabel != "" {
			writeClipped(sub, col.Sublabel, startCell+1, endCell)
		}
		if monthColors {
			for c := max(startCell, 0); c < min(endCell, width); c++ {
				bg[c] = int(col.Month)
			}
		}
	}

	labelLine := styleCells(label, bg)
	if zoom == timeline.ZoomMonth {
		return []string{styleCells(sub, bg), labelLine}
	}
	return []string{labelLine}
}

// writeClipped writes s into cells [from, to), dropping anything outside the
// canvas or the column span.
func writeClipped(cells []rune, s string, from, to int) {
	for i, r := range []rune(s) {
		c := from + i
		if c < 0 || c >= len(cells) || c >= to {
			continue
		}
		cells[c] = r
	}
}

// styleCells renders a rune row applying per-cell month backgrounds, merging
// adjacent cells of the same month into one styled segment.
func styleCells(cells []rune, bg []int) string {
	var b strings.Builder
	i := 0
	for i < len(cells) {
		j := i
		for j < len(cells) && bg[j] == bg[i] {
			j++
		}
		seg := string(cells[i:j])
		if bg[i] == 0 {
			b.WriteString(styleHeaderText.Render(seg))
		} else {
			b.WriteString(styleHeaderText.Background(monthBackgrounds[bg[i]-1]).Render(seg))
		}
		i = j
	}
	return b.String()
}

// barSegment is one bar overlaid on a body row.
type barSegment struct {
	fromCell int
	toCell   int // exclusive
	label    string
	style    lipgloss.Style
	fill     rune
}

// cellFace is the resolved appearance of one canvas cell in a body row.
type cellFace struct {
	r     rune
	seg   int // index into the segment slice; -1 = grid background
	onBar bool
}

// renderBarRow renders one body row: the grid background with any number of
// bar segments overlaid, clipped to the canvas width.
func renderBarRow(cols []timeline.Column, scrollPx float64, width int, segs []barSegment) string {
	faces := make([]cellFace, width)
	for i := range faces {
		faces[i] = cellFace{r: ' ', seg: -1}
	}
	tick := []rune(gridTick)[0]
	for _, col := range cols {
		c := cellOf(col.X, scrollPx)
		if c >= 0 && c < width {
			faces[c].r = tick
		}
	}

	for si, seg := range segs {
		labelRunes := []rune(seg.label)
		wide := seg.toCell-seg.fromCell > 3
		for c := seg.fromCell; c < seg.toCell; c++ {
			if c < 0 || c >= width {
				continue
			}
			r := seg.fill
			li := c - seg.fromCell - 1 // label starts one cell into the bar
			if wide && li >= 0 && li < len(labelRunes) {
				r = labelRunes[li]
			}
			faces[c] = cellFace{r: r, seg: si, onBar: true}
		}
	}

	var b strings.Builder
	i := 0
	for i < width {
		j := i
		for j < width && faces[j].seg == faces[i].seg {
			j++
		}
		runs := make([]rune, j-i)
		for k := i; k < j; k++ {
			runs[k-i] = faces[k].r
		}
		seg := string(runs)
		if faces[i].onBar {
			b.WriteString(segs[faces[i].seg].style.Render(seg))
		} else {
			b.WriteString(styleGridTick.Render(seg))
		}
		i = j
	}
	return b.String()
}

// barLabel composes the text drawn inside an item bar.
func barLabel(item *roadmap.Item) string {
	if item.Name == "" {
		return ""
	}
	if item.Phase != "" {
		return fmt.Sprintf("%s · %s", item.Name, item.Phase.ShortLabel())
	}
	return item.Name
}

// barCells converts a layout rect to a cell span, applying a drag offset in
// pixels and guaranteeing at least one visible cell.
func barCells(rect layout.BarRect, dragPx, scrollPx float64) (int, int) {
	from := cellOf(rect.X+dragPx, scrollPx)
	to := cellOf(rect.X+rect.Width+dragPx, scrollPx)
	if to <= from {
		to = from + 1
	}
	return from, to
}
