// Package move implements the interactive window-move plugin: a pointer
// button binding that drives the drag core, edge snapping with a live
// preview, snap-off for tiled windows, and desktop switching when the
// pointer lingers at a screen edge.
package move

import (
	"github.com/wrensk/windrag/internal/drag"
	"github.com/wrensk/windrag/internal/geometry"
)

// Slot identifies a snap target on an output, numbered like the numeric
// keypad: 1 is bottom-left, 5 is the whole work area, 9 is top-right.
type Slot int

const (
	SlotNone   Slot = 0
	SlotBL     Slot = 1
	SlotBottom Slot = 2
	SlotBR     Slot = 3
	SlotLeft   Slot = 4
	SlotFull   Slot = 5
	SlotRight  Slot = 6
	SlotTL     Slot = 7
	SlotTop    Slot = 8
	SlotTR     Slot = 9
)

// CalcSlot returns the slot the pointer position p selects on an output.
// Corners need the pointer close to both edges, with the looser quarter
// threshold accepted on one of them; dragging to the top edge maximizes.
// A pointer outside the output selects nothing.
func CalcSlot(outputGeom, workArea geometry.Rect, p geometry.Point, snapThreshold, quarterThreshold int) Slot {
	if !outputGeom.Contains(p) {
		return SlotNone
	}

	g := workArea
	isLeft := p.X-g.X <= snapThreshold
	isRight := g.X+g.Width-p.X <= snapThreshold
	isTop := p.Y-g.Y < snapThreshold
	isBottom := g.Y+g.Height-p.Y < snapThreshold

	farLeft := p.X-g.X <= quarterThreshold
	farRight := g.X+g.Width-p.X <= quarterThreshold
	farTop := p.Y-g.Y < quarterThreshold
	farBottom := g.Y+g.Height-p.Y < quarterThreshold

	switch {
	case (isLeft && farTop) || (farLeft && isTop):
		return SlotTL
	case (isRight && farTop) || (farRight && isTop):
		return SlotTR
	case (isRight && farBottom) || (farRight && isBottom):
		return SlotBR
	case (isLeft && farBottom) || (farLeft && isBottom):
		return SlotBL
	case isRight:
		return SlotRight
	case isLeft:
		return SlotLeft
	case isTop:
		// Maximize when dragging to the top
		return SlotFull
	case isBottom:
		return SlotBottom
	}
	return SlotNone
}

// SlotGeometry returns the rectangle a slot covers within the work area.
// Right and bottom pieces absorb the odd pixel of uneven splits.
func SlotGeometry(wa geometry.Rect, slot Slot) geometry.Rect {
	leftW := wa.Width / 2
	rightX := wa.X + leftW
	rightW := wa.Width - leftW
	topH := wa.Height / 2
	bottomY := wa.Y + topH
	bottomH := wa.Height - topH

	switch slot {
	case SlotFull:
		return wa
	case SlotLeft:
		return geometry.Rect{X: wa.X, Y: wa.Y, Width: leftW, Height: wa.Height}
	case SlotRight:
		return geometry.Rect{X: rightX, Y: wa.Y, Width: rightW, Height: wa.Height}
	case SlotTop:
		return geometry.Rect{X: wa.X, Y: wa.Y, Width: wa.Width, Height: topH}
	case SlotBottom:
		return geometry.Rect{X: wa.X, Y: bottomY, Width: wa.Width, Height: bottomH}
	case SlotTL:
		return geometry.Rect{X: wa.X, Y: wa.Y, Width: leftW, Height: topH}
	case SlotTR:
		return geometry.Rect{X: rightX, Y: wa.Y, Width: rightW, Height: topH}
	case SlotBL:
		return geometry.Rect{X: wa.X, Y: bottomY, Width: leftW, Height: bottomH}
	case SlotBR:
		return geometry.Rect{X: rightX, Y: bottomY, Width: rightW, Height: bottomH}
	}
	return geometry.Rect{}
}

// SlotEdges returns the screen edges a slot tiles against.
func SlotEdges(slot Slot) drag.Edges {
	switch slot {
	case SlotFull:
		return drag.EdgesAll
	case SlotLeft:
		return drag.EdgeLeft
	case SlotRight:
		return drag.EdgeRight
	case SlotTop:
		return drag.EdgeTop
	case SlotBottom:
		return drag.EdgeBottom
	case SlotTL:
		return drag.EdgeTop | drag.EdgeLeft
	case SlotTR:
		return drag.EdgeTop | drag.EdgeRight
	case SlotBL:
		return drag.EdgeBottom | drag.EdgeLeft
	case SlotBR:
		return drag.EdgeBottom | drag.EdgeRight
	}
	return drag.EdgeNone
}

// workspaceDelta returns the desktop step a slot's column implies: the
// left column steps back, the right column steps forward. Virtual
// desktops are linear, so the slot's row contributes nothing.
func workspaceDelta(slot Slot) int {
	if slot == SlotNone {
		return 0
	}
	switch slot % 3 {
	case 1:
		return -1
	case 0:
		return 1
	}
	return 0
}
