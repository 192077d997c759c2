package arrow

import (
	"time"

	"github.com/roadline-app/roadline/internal/layout"
	"github.com/roadline-app/roadline/internal/roadmap"
	"github.com/roadline-app/roadline/internal/timeline"
)

// Arrow is a fully resolved dependency arrow ready to render.
type Arrow struct {
	ID    string
	FromX float64
	FromY float64
	ToX   float64
	ToY   float64
	Path  string
}

// Build resolves every dependency edge to concrete endpoint coordinates:
// the source bar's right-mid edge and the target bar's left-mid edge. Edges
// whose endpoints cannot be resolved — the entity was deleted, or its row is
// hidden by a collapsed stream or item — are omitted rather than drawn with
// stale coordinates.
func Build(data *roadmap.Data, origin time.Time, zoom timeline.Zoom) []Arrow {
	if len(data.Dependencies) == 0 {
		return nil
	}
	idx := layout.NewIndex(layout.ComputeStreamLayouts(data.Streams))

	var arrows []Arrow
	for _, dep := range data.Dependencies {
		from, okFrom := endpoint(data, idx, dep.FromItemID, origin, zoom)
		to, okTo := endpoint(data, idx, dep.ToItemID, origin, zoom)
		if !okFrom || !okTo {
			continue
		}
		fromX := from.rect.X + from.rect.Width
		toX := to.rect.X
		arrows = append(arrows, Arrow{
			ID:    dep.ID,
			FromX: fromX,
			FromY: from.midY,
			ToX:   toX,
			ToY:   to.midY,
			Path:  Path(fromX, from.midY, toX, to.midY),
		})
	}
	return arrows
}

type resolved struct {
	rect layout.BarRect
	midY float64
}

func endpoint(data *roadmap.Data, idx *layout.Index, id string, origin time.Time, zoom timeline.Zoom) (resolved, bool) {
	item, parent, _ := data.FindItem(id)
	if item == nil {
		return resolved{}, false
	}
	rect, ok := layout.BarRectFor(item.StartDate, item.EndDate, origin, zoom)
	if !ok {
		return resolved{}, false
	}
	if parent == nil {
		y, ok := idx.ItemY(id)
		if !ok {
			return resolved{}, false
		}
		return resolved{rect: rect, midY: y + layout.BarVerticalPadding + layout.BarHeight/2}, true
	}
	y, ok := idx.SubItemY(id)
	if !ok {
		return resolved{}, false
	}
	return resolved{rect: rect, midY: y + layout.SubBarVerticalPadding + layout.SubBarHeight/2}, true
}
