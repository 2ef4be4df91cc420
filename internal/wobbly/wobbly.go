// Package wobbly is the boundary to a wobbly-windows physics simulation.
// The drag core drives it at fixed lifecycle points and never inspects its
// state; windrag ships only the no-op implementation.
package wobbly

import "github.com/wrensk/windrag/internal/geometry"

// Service animates a spring deformation for a view while it is dragged.
// Views are identified by their numeric id; positions and geometry are in
// layout coordinates.
type Service interface {
	// Start anchors the simulation at grab.
	Start(view uint32, grab geometry.Point)
	// Move updates the anchor as the pointer moves.
	Move(view uint32, pos geometry.Point)
	// Reshape rebuilds the mesh after the view's geometry changed.
	Reshape(view uint32, geom geometry.Rect)
	// Translate shifts the whole mesh, for coordinate-space jumps.
	Translate(view uint32, dx, dy int)
	// End releases the simulation for the view.
	End(view uint32)
}

// Null is a Service that does nothing.
type Null struct{}

var _ Service = Null{}

func (Null) Start(uint32, geometry.Point)  {}
func (Null) Move(uint32, geometry.Point)   {}
func (Null) Reshape(uint32, geometry.Rect) {}
func (Null) Translate(uint32, int, int)    {}
func (Null) End(uint32)                    {}

// StartRelative starts the simulation anchored at the fractional offset
// rel within box, for callers that know the fraction but not the pointer
// position.
func StartRelative(s Service, view uint32, box geometry.Rect, rel geometry.PointF) {
	s.Start(view, geometry.Point{
		X: box.X + int(rel.X*float64(box.Width)),
		Y: box.Y + int(rel.Y*float64(box.Height)),
	})
}
