package drag

import (
	"testing"

	"github.com/wrensk/windrag/internal/geometry"
)

func TestOverlayAttachDetach(t *testing.T) {
	out := newFakeOutput("DP-1", geometry.Rect{X: 0, Y: 0, Width: 1000, Height: 1000})
	view := newFakeView(1, geometry.Rect{X: 100, Y: 100, Width: 200, Height: 100})
	view.AddTransform(TransformName,
		NewScaleTransform(geometry.PointF{X: 0, Y: 0}, geometry.Point{X: 100, Y: 100}, 0, quietLogger()))

	ov := attachOverlay(out, view)
	if got := out.hookCount(); got != 2 {
		t.Fatalf("hook count after attach = %d, want 2", got)
	}

	damageBefore := len(out.damage)
	ov.detach()

	if len(out.damage) <= damageBefore {
		t.Error("detach did not apply a final damage pass")
	}
	if got := out.hookCount(); got != 0 {
		t.Errorf("hook count after detach = %d, want 0", got)
	}
}

func TestOverlayDamageIsOutputLocal(t *testing.T) {
	out := newFakeOutput("DP-2", geometry.Rect{X: 1920, Y: 0, Width: 1920, Height: 1080})
	view := newFakeView(1, geometry.Rect{X: 2000, Y: 100, Width: 200, Height: 100})
	view.AddTransform(TransformName,
		NewScaleTransform(geometry.PointF{X: 0, Y: 0}, geometry.Point{X: 2000, Y: 100}, 0, quietLogger()))

	ov := attachOverlay(out, view)
	ov.applyDamage()

	want := geometry.Rect{X: 80, Y: 100, Width: 200, Height: 100}
	if len(out.damage) != 1 || out.damage[0] != want {
		t.Errorf("damage = %v, want [%v]", out.damage, want)
	}
	if ov.lastBox != want {
		t.Errorf("lastBox = %v, want %v", ov.lastBox, want)
	}
}

func TestOverlayRenderSkipsBeforeFirstDamage(t *testing.T) {
	out := newFakeOutput("DP-1", geometry.Rect{X: 0, Y: 0, Width: 1000, Height: 1000})
	view := newFakeView(1, geometry.Rect{X: 100, Y: 100, Width: 200, Height: 100})

	ov := attachOverlay(out, view)
	ov.render()

	if len(out.fb.ops) != 0 {
		t.Errorf("draw ops before any damage pass = %d, want 0", len(out.fb.ops))
	}
}
