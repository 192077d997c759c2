// Package svg renders a roadmap document to a standalone SVG image: the
// column grid with month shading, date headers, stream lanes, item and
// sub-item bars, phase bars, milestone diamonds, dependency arrows, and a
// today marker. Output is self-contained and needs no external stylesheet.
package svg

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/roadline-app/roadline/internal/arrow"
	"github.com/roadline-app/roadline/internal/layout"
	"github.com/roadline-app/roadline/internal/roadmap"
	"github.com/roadline-app/roadline/internal/timeline"
)

// HeaderHeight is the vertical space reserved for column labels above the
// first stream.
const HeaderHeight = 50.0

// monthShadingColors maps calendar months (January first) to pale background
// fills. The palette repeats every six months so adjacent months always
// alternate.
var monthShadingColors = [12]string{
	"#EFF6FF", // Jan
	"#F0FDF4", // Feb
	"#FFFBEB", // Mar
	"#FFF1F2", // Apr
	"#F5F3FF", // May
	"#ECFDF5", // Jun
	"#EFF6FF", // Jul
	"#F0FDF4", // Aug
	"#FFFBEB", // Sep
	"#FFF1F2", // Oct
	"#F5F3FF", // Nov
	"#ECFDF5", // Dec
}

const (
	fontFamily       = "Helvetica, Arial, sans-serif"
	gridLineColor    = "#E5E7EB"
	headerTextColor  = "#6B7280"
	streamTextColor  = "#111827"
	arrowColor       = "#6B7280"
	todayMarkerColor = "#DC2626"
	milestoneColor   = "#7C3AED"
	barLabelColor    = "#FFFFFF"
)

// Options control rendering.
type Options struct {
	// Zoom selects the column granularity. Zero value is week zoom.
	Zoom timeline.Zoom

	// ShowMonthColors enables the pale month background bands.
	ShowMonthColors bool

	// Today, when non-zero, draws a vertical marker at that date.
	Today time.Time
}

// Render produces a complete SVG document for the roadmap.
func Render(data *roadmap.Data, opts Options) ([]byte, error) {
	start, end, origin, err := timeline.VisibleRange(data.Settings.TimelineStartDate, data.Settings.TimelineEndDate)
	if err != nil {
		return nil, fmt.Errorf("svg: resolve timeline range: %w", err)
	}

	cols := timeline.Columns(start, end, origin, opts.Zoom)
	layouts := layout.ComputeStreamLayouts(data.Streams)
	width := layout.Width(cols)
	height := HeaderHeight + layout.TotalHeight(data.Streams)

	// All column x offsets are relative to the origin date; the leftmost
	// column sits at a negative x because of the buffer weeks. Shift the
	// whole drawing right so it starts at zero.
	shift := 0.0
	if len(cols) > 0 {
		shift = -cols[0].X
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, `<svg width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f" xmlns="http://www.w3.org/2000/svg">`+"\n",
		width, height, width, height)
	writeDefs(&b)
	fmt.Fprintf(&b, `  <rect width="%.0f" height="%.0f" fill="#FFFFFF"/>`+"\n", width, height)

	drawColumns(&b, cols, shift, height, opts)
	drawHeader(&b, cols, shift, opts.Zoom)

	fmt.Fprintf(&b, `  <g transform="translate(%.2f, %.2f)">`+"\n", shift, HeaderHeight)
	drawStreams(&b, data, layouts, width, origin, opts.Zoom)
	drawMilestones(&b, data, layouts, origin, opts.Zoom)
	drawArrows(&b, data, origin, opts.Zoom)
	b.WriteString("  </g>\n")

	if !opts.Today.IsZero() {
		drawTodayMarker(&b, opts.Today, origin, shift, height, opts.Zoom)
	}

	b.WriteString("</svg>\n")
	return b.Bytes(), nil
}

func writeDefs(b *bytes.Buffer) {
	b.WriteString("  <defs>\n")
	fmt.Fprintf(b, `    <marker id="arrowhead" markerWidth="8" markerHeight="6" refX="7" refY="3" orient="auto"><path d="M0,0 L8,3 L0,6 Z" fill="%s"/></marker>`+"\n", arrowColor)
	b.WriteString("  </defs>\n")
}

func drawColumns(b *bytes.Buffer, cols []timeline.Column, shift, height float64, opts Options) {
	for _, col := range cols {
		x := col.X + shift
		if opts.ShowMonthColors {
			fill := monthShadingColors[int(col.Month)-1]
			fmt.Fprintf(b, `  <rect x="%.2f" y="0" width="%.2f" height="%.0f" fill="%s"/>`+"\n",
				x, col.Width, height, fill)
		}
		fmt.Fprintf(b, `  <line x1="%.2f" y1="0" x2="%.2f" y2="%.0f" stroke="%s" stroke-width="1"/>`+"\n",
			x, x, height, gridLineColor)
	}
}

func drawHeader(b *bytes.Buffer, cols []timeline.Column, shift float64, zoom timeline.Zoom) {
	for _, col := range cols {
		cx := col.X + shift + col.Width/2
		if zoom == timeline.ZoomMonth && col.Sublabel != "" {
			fmt.Fprintf(b, `  <text x="%.2f" y="18" font-family="%s" font-size="11" fill="%s" text-anchor="middle">%s</text>`+"\n",
				cx, fontFamily, headerTextColor, escape(col.Sublabel))
		}
		fmt.Fprintf(b, `  <text x="%.2f" y="36" font-family="%s" font-size="12" fill="%s" text-anchor="middle">%s</text>`+"\n",
			cx, fontFamily, headerTextColor, escape(col.Label))
	}
}

func drawStreams(b *bytes.Buffer, data *roadmap.Data, layouts []layout.StreamLayout, width float64, origin time.Time, zoom timeline.Zoom) {
	for _, sl := range layouts {
		stream := data.Stream(sl.StreamID)
		if stream == nil {
			continue
		}

		// Header row: color chip and name, pinned to the left edge of the
		// visible canvas (x is in shifted coordinates already).
		chipY := sl.HeaderY + (layout.StreamHeaderHeight-16)/2
		fmt.Fprintf(b, `    <rect x="4" y="%.2f" width="6" height="16" rx="2" fill="%s"/>`+"\n",
			chipY, escape(stream.Color))
		fmt.Fprintf(b, `    <text x="16" y="%.2f" font-family="%s" font-size="14" font-weight="bold" fill="%s">%s</text>`+"\n",
			sl.HeaderY+26, fontFamily, streamTextColor, escape(stream.Name))
		fmt.Fprintf(b, `    <line x1="0" y1="%.2f" x2="%.0f" y2="%.2f" stroke="%s" stroke-width="1"/>`+"\n",
			sl.HeaderY, width, sl.HeaderY, gridLineColor)

		for _, ir := range sl.Items {
			item := stream.Item(ir.ItemID)
			if item == nil {
				continue
			}
			drawItemBar(b, item, stream.Color, ir.Y, origin, zoom)

			for _, sr := range ir.SubItems {
				sub := item.SubItem(sr.SubItemID)
				if sub == nil {
					continue
				}
				drawSubItemBar(b, sub, stream.Color, sr, origin, zoom)
			}
		}
	}
}

func drawItemBar(b *bytes.Buffer, item *roadmap.Item, streamColor string, rowY float64, origin time.Time, zoom timeline.Zoom) {
	rect, ok := layout.BarRectFor(item.StartDate, item.EndDate, origin, zoom)
	if !ok {
		return
	}
	color := item.Color
	if color == "" {
		color = streamColor
	}
	y := rowY + layout.BarVerticalPadding
	fmt.Fprintf(b, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.0f" rx="4" fill="%s"/>`+"\n",
		rect.X, y, rect.Width, layout.BarHeight, escape(color))
	if item.Name != "" && rect.Width > 40 {
		fmt.Fprintf(b, `    <text x="%.2f" y="%.2f" font-family="%s" font-size="12" fill="%s">%s</text>`+"\n",
			rect.X+8, y+layout.BarHeight/2+4, fontFamily, barLabelColor, escape(truncate(item.Name, rect.Width)))
	}
}

func drawSubItemBar(b *bytes.Buffer, sub *roadmap.Item, streamColor string, row layout.SubItemRow, origin time.Time, zoom timeline.Zoom) {
	rect, ok := layout.BarRectFor(sub.StartDate, sub.EndDate, origin, zoom)
	if !ok {
		return
	}
	color := sub.Color
	if color == "" {
		color = streamColor
	}
	y := row.Y + layout.SubBarVerticalPadding
	fmt.Fprintf(b, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.0f" rx="3" fill="%s" fill-opacity="0.75"/>`+"\n",
		rect.X, y, rect.Width, layout.SubBarHeight, escape(color))
	if sub.Name != "" && rect.Width > 40 {
		fmt.Fprintf(b, `    <text x="%.2f" y="%.2f" font-family="%s" font-size="10" fill="%s">%s</text>`+"\n",
			rect.X+6, y+layout.SubBarHeight/2+3, fontFamily, barLabelColor, escape(truncate(sub.Name, rect.Width)))
	}

	// Phase bars render in their own row when expanded, and as a thin
	// highlight strip under the bar when collapsed.
	if sub.PhasesExpanded && row.PhaseRowY > 0 {
		for i := range sub.PhaseBars {
			drawPhaseBar(b, &sub.PhaseBars[i], row.PhaseRowY, origin, zoom)
		}
	} else if row.HasPhases {
		stripY := row.Y + layout.SubItemRowHeight
		for i := range sub.PhaseBars {
			pb := &sub.PhaseBars[i]
			prect, ok := layout.BarRectFor(pb.StartDate, pb.EndDate, origin, zoom)
			if !ok {
				continue
			}
			fmt.Fprintf(b, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.0f" fill="%s"/>`+"\n",
				prect.X, stripY, prect.Width, layout.PhaseHighlightStripHeight, escape(phaseColor(pb)))
		}
	}
}

func drawPhaseBar(b *bytes.Buffer, pb *roadmap.PhaseBar, rowY float64, origin time.Time, zoom timeline.Zoom) {
	rect, ok := layout.BarRectFor(pb.StartDate, pb.EndDate, origin, zoom)
	if !ok {
		return
	}
	y := rowY + layout.PhaseBarVerticalPadding
	fmt.Fprintf(b, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.0f" rx="2" fill="%s"/>`+"\n",
		rect.X, y, rect.Width, layout.PhaseBarHeight, escape(phaseColor(pb)))
}

func phaseColor(pb *roadmap.PhaseBar) string {
	if pb.Color != "" {
		return pb.Color
	}
	return roadmap.DefaultPhaseBarColor
}

func drawMilestones(b *bytes.Buffer, data *roadmap.Data, layouts []layout.StreamLayout, origin time.Time, zoom timeline.Zoom) {
	headerY := make(map[string]float64, len(layouts))
	for _, sl := range layouts {
		headerY[sl.StreamID] = sl.HeaderY
	}

	for _, m := range data.Milestones {
		y, ok := headerY[m.StreamID]
		if !ok {
			continue
		}
		date, err := timeline.ParseDate(m.Date)
		if err != nil {
			continue
		}
		cx := timeline.DateToX(date, origin, zoom)
		cy := y + layout.StreamHeaderHeight/2
		const r = 7.0
		fmt.Fprintf(b, `    <path d="M%.2f,%.2f L%.2f,%.2f L%.2f,%.2f L%.2f,%.2f Z" fill="%s"/>`+"\n",
			cx, cy-r, cx+r, cy, cx, cy+r, cx-r, cy, milestoneColor)
		if m.Name != "" {
			fmt.Fprintf(b, `    <text x="%.2f" y="%.2f" font-family="%s" font-size="10" fill="%s" text-anchor="middle">%s</text>`+"\n",
				cx, cy-r-3, fontFamily, streamTextColor, escape(m.Name))
		}
	}
}

func drawArrows(b *bytes.Buffer, data *roadmap.Data, origin time.Time, zoom timeline.Zoom) {
	for _, a := range arrow.Build(data, origin, zoom) {
		fmt.Fprintf(b, `    <path d="%s" fill="none" stroke="%s" stroke-width="1.5" marker-end="url(#arrowhead)"/>`+"\n",
			a.Path, arrowColor)
	}
}

func drawTodayMarker(b *bytes.Buffer, today time.Time, origin time.Time, shift, height float64, zoom timeline.Zoom) {
	x := timeline.DateToX(today.UTC().Truncate(24*time.Hour), origin, zoom) + shift
	if x < 0 {
		return
	}
	fmt.Fprintf(b, `  <line x1="%.2f" y1="%.0f" x2="%.2f" y2="%.0f" stroke="%s" stroke-width="1.5" stroke-dasharray="4 3"/>`+"\n",
		x, HeaderHeight, x, height, todayMarkerColor)
}

// truncate shortens a label to roughly fit the bar width, assuming ~7px per
// character at the bar font size.
func truncate(s string, width float64) string {
	maxChars := int((width - 12) / 7)
	if maxChars < 1 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	if maxChars <= 1 {
		return string(runes[:1])
	}
	return string(runes[:maxChars-1]) + "…"
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escape(s string) string { return escaper.Replace(s) }
