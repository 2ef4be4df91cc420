package drag

import (
	"testing"

	"github.com/wrensk/windrag/internal/geometry"
)

// offsetTransform shifts the box by dx and records render order.
type offsetTransform struct {
	dx     int
	z      int
	record *[]int
}

func (o *offsetTransform) BoundingBox(view geometry.Rect) geometry.Rect {
	return view.Translate(o.dx, 0)
}

func (o *offsetTransform) TransformPoint(_ geometry.Rect, p geometry.PointF) geometry.PointF {
	return p
}

func (o *offsetTransform) UntransformPoint(_ geometry.Rect, p geometry.PointF) geometry.PointF {
	return p
}

func (o *offsetTransform) ZOrder() int { return o.z }

func (o *offsetTransform) Render(_ Texture, _ geometry.Rect, _ []geometry.Rect, _ Framebuffer) {
	if o.record != nil {
		*o.record = append(*o.record, o.z)
	}
}

func TestTransformStackAddRemoveGet(t *testing.T) {
	var s TransformStack
	a := &offsetTransform{dx: 1, z: 0}
	b := &offsetTransform{dx: 2, z: 5}

	s.Add("a", a)
	s.Add("b", b)

	if got := s.Get("a"); got != Transform(a) {
		t.Errorf("Get(a) = %v, want the installed transform", got)
	}
	if s.Get("missing") != nil {
		t.Error("Get(missing) != nil")
	}

	s.Remove("a")
	if s.Get("a") != nil {
		t.Error("Get(a) after Remove != nil")
	}
	if s.Empty() {
		t.Error("Empty() with one transform left = true")
	}

	s.Remove("b")
	if !s.Empty() {
		t.Error("Empty() after removing everything = false")
	}

	// Removing an absent name is a no-op.
	s.Remove("b")
}

func TestTransformStackOrdersByZ(t *testing.T) {
	var s TransformStack
	var order []int

	// Insert out of order; rendering and folding must go low to high.
	s.Add("high", &offsetTransform{dx: 100, z: 10, record: &order})
	s.Add("low", &offsetTransform{dx: 1, z: 1, record: &order})

	base := geometry.Rect{X: 0, Y: 0, Width: 10, Height: 10}
	if got := s.BoundingBox(base); got.X != 101 {
		t.Errorf("BoundingBox folded to X=%d, want 101", got.X)
	}

	s.Render(fakeTexture{}, base, nil, &fakeFramebuffer{})
	if len(order) != 2 || order[0] != 1 || order[1] != 10 {
		t.Errorf("render order = %v, want [1 10]", order)
	}
}
