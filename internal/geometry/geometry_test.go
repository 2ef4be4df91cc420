package geometry

import (
	"math"
	"testing"
)

func TestAround(t *testing.T) {
	tests := []struct {
		name string
		size Size
		grab Point
		rel  PointF
		want Rect
	}{
		{
			name: "top-left anchor",
			size: Size{Width: 200, Height: 100},
			grab: Point{X: 50, Y: 60},
			rel:  PointF{X: 0, Y: 0},
			want: Rect{X: 50, Y: 60, Width: 200, Height: 100},
		},
		{
			name: "center anchor",
			size: Size{Width: 200, Height: 100},
			grab: Point{X: 50, Y: 60},
			rel:  PointF{X: 0.5, Y: 0.5},
			want: Rect{X: -50, Y: 10, Width: 200, Height: 100},
		},
		{
			name: "bottom-right anchor",
			size: Size{Width: 200, Height: 100},
			grab: Point{X: 50, Y: 60},
			rel:  PointF{X: 1, Y: 1},
			want: Rect{X: -150, Y: -40, Width: 200, Height: 100},
		},
		{
			name: "fraction floors toward origin",
			size: Size{Width: 3, Height: 3},
			grab: Point{X: 10, Y: 10},
			rel:  PointF{X: 0.5, Y: 0.5},
			want: Rect{X: 9, Y: 9, Width: 3, Height: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Around(tt.size, tt.grab, tt.rel)
			if got != tt.want {
				t.Errorf("Around(%v, %v, %v) = %v, want %v", tt.size, tt.grab, tt.rel, got, tt.want)
			}
		})
	}
}

func TestRelativeGrab(t *testing.T) {
	tests := []struct {
		name string
		geom Rect
		grab Point
		want PointF
	}{
		{
			name: "origin",
			geom: Rect{X: 100, Y: 200, Width: 400, Height: 300},
			grab: Point{X: 100, Y: 200},
			want: PointF{X: 0, Y: 0},
		},
		{
			name: "center",
			geom: Rect{X: 100, Y: 200, Width: 400, Height: 300},
			grab: Point{X: 300, Y: 350},
			want: PointF{X: 0.5, Y: 0.5},
		},
		{
			name: "quarter",
			geom: Rect{X: 0, Y: 0, Width: 400, Height: 400},
			grab: Point{X: 100, Y: 300},
			want: PointF{X: 0.25, Y: 0.75},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RelativeGrab(tt.geom, tt.grab)
			if got != tt.want {
				t.Errorf("RelativeGrab(%v, %v) = %v, want %v", tt.geom, tt.grab, got, tt.want)
			}
		})
	}
}

// Positioning a rectangle around a grab point and re-deriving the fraction
// must reproduce the fraction whenever it corresponds to a whole-pixel
// offset, which is how fractions are produced in practice.
func TestAroundRelativeGrabRoundTrip(t *testing.T) {
	sizes := []Size{
		{Width: 200, Height: 100},
		{Width: 640, Height: 480},
		{Width: 31, Height: 17},
	}
	grabs := []Point{
		{X: 0, Y: 0},
		{X: 512, Y: 384},
		{X: -130, Y: 77},
	}

	for _, size := range sizes {
		for _, grab := range grabs {
			// Whole-pixel anchors inside the rectangle.
			for _, off := range []Point{
				{X: 0, Y: 0},
				{X: size.Width / 4, Y: size.Height / 2},
				{X: size.Width - 1, Y: size.Height - 1},
			} {
				rel := PointF{
					X: float64(off.X) / float64(size.Width),
					Y: float64(off.Y) / float64(size.Height),
				}
				geom := Around(size, grab, rel)
				got := RelativeGrab(geom, grab)
				if math.Abs(got.X-rel.X) > 1e-9 || math.Abs(got.Y-rel.Y) > 1e-9 {
					t.Errorf("RelativeGrab(Around(%v, %v, %v), %v) = %v, want %v",
						size, grab, rel, grab, got, rel)
				}
				if !geom.Contains(grab) {
					t.Errorf("Around(%v, %v, %v) = %v does not contain grab %v",
						size, grab, rel, geom, grab)
				}
			}
		}
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}

	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"inside", Point{X: 50, Y: 40}, true},
		{"top-left corner", Point{X: 10, Y: 20}, true},
		{"right edge exclusive", Point{X: 110, Y: 40}, false},
		{"bottom edge exclusive", Point{X: 50, Y: 70}, false},
		{"outside left", Point{X: 9, Y: 40}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestRectUnion(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want Rect
	}{
		{
			name: "disjoint",
			a:    Rect{X: 0, Y: 0, Width: 10, Height: 10},
			b:    Rect{X: 20, Y: 20, Width: 10, Height: 10},
			want: Rect{X: 0, Y: 0, Width: 30, Height: 30},
		},
		{
			name: "empty identity left",
			a:    Rect{},
			b:    Rect{X: 5, Y: 5, Width: 10, Height: 10},
			want: Rect{X: 5, Y: 5, Width: 10, Height: 10},
		},
		{
			name: "empty identity right",
			a:    Rect{X: 5, Y: 5, Width: 10, Height: 10},
			b:    Rect{},
			want: Rect{X: 5, Y: 5, Width: 10, Height: 10},
		},
		{
			name: "contained",
			a:    Rect{X: 0, Y: 0, Width: 100, Height: 100},
			b:    Rect{X: 10, Y: 10, Width: 20, Height: 20},
			want: Rect{X: 0, Y: 0, Width: 100, Height: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Union(tt.b); got != tt.want {
				t.Errorf("%v.Union(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestRectIntersect(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want Rect
	}{
		{
			name: "overlapping",
			a:    Rect{X: 0, Y: 0, Width: 100, Height: 100},
			b:    Rect{X: 50, Y: 50, Width: 100, Height: 100},
			want: Rect{X: 50, Y: 50, Width: 50, Height: 50},
		},
		{
			name: "disjoint",
			a:    Rect{X: 0, Y: 0, Width: 10, Height: 10},
			b:    Rect{X: 20, Y: 0, Width: 10, Height: 10},
			want: Rect{},
		},
		{
			name: "touching edges",
			a:    Rect{X: 0, Y: 0, Width: 10, Height: 10},
			b:    Rect{X: 10, Y: 0, Width: 10, Height: 10},
			want: Rect{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersect(tt.b); got != tt.want {
				t.Errorf("%v.Intersect(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDistance2(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want int
	}{
		{"same point", Point{X: 5, Y: 5}, Point{X: 5, Y: 5}, 0},
		{"horizontal", Point{X: 0, Y: 0}, Point{X: 10, Y: 0}, 100},
		{"diagonal 3-4-5", Point{X: 0, Y: 0}, Point{X: 3, Y: 4}, 25},
		{"negative coords", Point{X: -3, Y: -4}, Point{X: 0, Y: 0}, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Distance2(tt.a, tt.b); got != tt.want {
				t.Errorf("Distance2(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
