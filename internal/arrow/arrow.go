// Package arrow routes dependency arrows between bars as orthogonal SVG
// paths with rounded corners. The routing invariant: the final segment
// always approaches the target moving in the +X direction, so the arrowhead
// points right into the target's left edge, even when the target sits at or
// before the source.
package arrow

import (
	"fmt"
	"strings"
)

const (
	// cornerRadius is the nominal rounding applied at each turn; it is
	// clamped down on short segments to avoid corner overshoot.
	cornerRadius = 8.0

	// minHorizontalGap is the smallest source-to-target x distance routed
	// through the simple midpoint column. Anything closer (or negative)
	// takes the loop route.
	minHorizontalGap = 40.0

	// loopOffset is how far the loop route swings past the bars.
	loopOffset = 30.0
)

// Path computes the SVG path from the source bar's right-mid edge to the
// target bar's left-mid edge.
//
// Normal case: horizontal to a vertical column exactly halfway between the
// two x positions, vertical to the target's height, horizontal into the
// target. Corner radius is the minimum of the nominal radius, half the
// vertical travel, and the distance to either endpoint.
//
// Degenerate case (target at/left of source or closer than the minimum
// gap): route right past both bars, step vertically to the midpoint height,
// cross left past the target's left edge, step vertically to the target's
// height, then enter from the left.
func Path(fromX, fromY, toX, toY float64) string {
	dx := toX - fromX
	dy := toY - fromY

	// Same height and target to the right: a single straight segment.
	if abs(dy) < 2 && dx > 0 {
		return fmt.Sprintf("M %s %s L %s %s", num(fromX), num(fromY), num(toX), num(toY))
	}

	signY := 1.0
	if dy < 0 {
		signY = -1
	}

	if dx < minHorizontalGap {
		return loopPath(fromX, fromY, toX, toY, dy, signY)
	}

	midX := fromX + dx/2
	r := min(cornerRadius, abs(dy)/2, abs(midX-fromX), abs(toX-midX))

	return joinPath(
		move(fromX, fromY),
		line(midX-r, fromY),
		corner(midX, fromY, midX, fromY+signY*r),
		line(midX, toY-signY*r),
		corner(midX, toY, midX+r, toY),
		line(toX, toY),
	)
}

// loopPath handles the degenerate route. The corner radius is capped at a
// quarter of the vertical travel so the two stacked turns on each column
// cannot overlap when source and target are vertically close.
func loopPath(fromX, fromY, toX, toY, dy, signY float64) string {
	rightX := max(fromX, toX) + loopOffset
	leftX := toX - loopOffset
	midY := fromY + dy/2
	r := min(cornerRadius, abs(dy)/2/2)

	return joinPath(
		move(fromX, fromY),
		line(rightX-r, fromY),
		corner(rightX, fromY, rightX, fromY+signY*r),
		line(rightX, midY-signY*r),
		corner(rightX, midY, rightX-r, midY),
		line(leftX+r, midY),
		corner(leftX, midY, leftX, midY+signY*r),
		line(leftX, toY-signY*r),
		corner(leftX, toY, leftX+r, toY),
		line(toX, toY),
	)
}

func move(x, y float64) string { return fmt.Sprintf("M %s %s", num(x), num(y)) }
func line(x, y float64) string { return fmt.Sprintf("L %s %s", num(x), num(y)) }

// corner emits a quadratic curve through the control point (cx, cy) ending
// at (x, y).
func corner(cx, cy, x, y float64) string {
	return fmt.Sprintf("Q %s %s, %s %s", num(cx), num(cy), num(x), num(y))
}

func joinPath(segments ...string) string { return strings.Join(segments, " ") }

// num renders a coordinate without a trailing ".0" for whole values.
func num(v float64) string { return fmt.Sprintf("%g", v) }

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
