package geometry

import "math"

// Point is a position in layout coordinates (pixels).
type Point struct {
	X int
	Y int
}

// PointF is a fractional position, each component typically in [0, 1].
type PointF struct {
	X float64
	Y float64
}

// Size is a width/height pair in pixels.
type Size struct {
	Width  int
	Height int
}

// Rect is an axis-aligned rectangle in layout coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Origin returns the top-left corner of r.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Dimensions returns the size of r.
func (r Rect) Dimensions() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// IsEmpty reports whether r has no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether p lies inside r. Right and bottom edges are
// exclusive, matching X11 window geometry.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Translate returns r shifted by dx, dy.
func (r Rect) Translate(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Union returns the smallest rectangle covering both r and other. An empty
// rectangle acts as the identity.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	x1 := min(r.X, other.X)
	y1 := min(r.Y, other.Y)
	x2 := max(r.X+r.Width, other.X+other.Width)
	y2 := max(r.Y+r.Height, other.Y+other.Height)
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Intersect returns the overlap of r and other, or a zero Rect when they
// are disjoint.
func (r Rect) Intersect(other Rect) Rect {
	x1 := max(r.X, other.X)
	y1 := max(r.Y, other.Y)
	x2 := min(r.X+r.Width, other.X+other.Width)
	y2 := min(r.Y+r.Height, other.Y+other.Height)
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Around returns the rectangle of the given size positioned so that grab
// lands at the fractional offset rel within it.
func Around(size Size, grab Point, rel PointF) Rect {
	return Rect{
		X:      grab.X - int(math.Floor(rel.X*float64(size.Width))),
		Y:      grab.Y - int(math.Floor(rel.Y*float64(size.Height))),
		Width:  size.Width,
		Height: size.Height,
	}
}

// RelativeGrab returns the fractional offset of grab within geom. The
// geometry must be non-degenerate; a zero-size dimension is a caller error.
func RelativeGrab(geom Rect, grab Point) PointF {
	return PointF{
		X: float64(grab.X-geom.X) / float64(geom.Width),
		Y: float64(grab.Y-geom.Y) / float64(geom.Height),
	}
}

// Distance2 returns the squared Euclidean distance between a and b.
func Distance2(a, b Point) int {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}
