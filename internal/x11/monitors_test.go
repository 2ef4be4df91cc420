package x11

import (
	"testing"

	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/wrensk/windrag/internal/geometry"
)

func TestEdgeInsets_OnlyOverlappingStrutsCount(t *testing.T) {
	// Two 1920x1080 monitors side by side; the root spans both.
	left := geometry.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}
	right := geometry.Rect{X: 1920, Y: 0, Width: 1920, Height: 1080}
	rootW, rootH := 3840, 1080

	// A 32px panel along the top of the left monitor only.
	panel := &ewmh.WmStrutPartial{Top: 32, TopStartX: 0, TopEndX: 1919}

	var leftInsets edgeInsets
	leftInsets.accumulate(left, rootW, rootH, panel)
	if leftInsets.top != 32 {
		t.Errorf("left monitor top inset = %d, want 32", leftInsets.top)
	}

	var rightInsets edgeInsets
	rightInsets.accumulate(right, rootW, rootH, panel)
	if rightInsets != (edgeInsets{}) {
		t.Errorf("right monitor insets = %+v, want none", rightInsets)
	}
}

func TestEdgeInsets_KeepsDeepestStrutPerEdge(t *testing.T) {
	mon := geometry.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}

	var insets edgeInsets
	insets.accumulate(mon, 1920, 1080, &ewmh.WmStrutPartial{Bottom: 24, BottomStartX: 0, BottomEndX: 1919})
	insets.accumulate(mon, 1920, 1080, &ewmh.WmStrutPartial{Bottom: 48, BottomStartX: 500, BottomEndX: 900})

	if insets.bottom != 48 {
		t.Errorf("bottom inset = %d, want 48", insets.bottom)
	}

	got := insets.apply(mon)
	want := geometry.Rect{X: 0, Y: 0, Width: 1920, Height: 1032}
	if got != want {
		t.Errorf("apply() = %+v, want %+v", got, want)
	}
}

func TestEdgeInsets_ApplyNeverCollapsesBelowOnePixel(t *testing.T) {
	mon := geometry.Rect{X: 0, Y: 0, Width: 100, Height: 100}
	insets := edgeInsets{left: 80, right: 80, top: 10, bottom: 10}

	got := insets.apply(mon)
	if got.Width < 1 || got.Height < 1 {
		t.Errorf("apply() = %+v, want at least 1x1", got)
	}
}
