package drag

import (
	"strings"
	"testing"

	"github.com/wrensk/windrag/internal/geometry"
)

func TestAdjustViewOnOutput(t *testing.T) {
	left := newFakeOutput("DP-1", geometry.Rect{X: 0, Y: 0, Width: 1000, Height: 1000})
	right := newFakeOutput("DP-2", geometry.Rect{X: 1000, Y: 0, Width: 1000, Height: 1000})

	view := newFakeView(1, geometry.Rect{X: 100, Y: 100, Width: 200, Height: 100})
	view.output = left

	AdjustViewOnOutput(Done{
		View:          view,
		FocusedOutput: right,
		GrabPosition:  geometry.Point{X: 1500, Y: 500},
		RelativeGrab:  geometry.PointF{X: 0.25, Y: 0.5},
	})

	if view.output != Output(right) {
		t.Error("view not migrated to the focused output")
	}
	want := geometry.Point{X: 1450, Y: 450}
	if len(view.moves) != 1 || view.moves[0] != want {
		t.Errorf("view moved to %v, want [%v]", view.moves, want)
	}
}

func TestAdjustViewOnOutputLeavesUnmappedViewAlone(t *testing.T) {
	view := newFakeView(1, geometry.Rect{X: 100, Y: 100, Width: 200, Height: 100})
	view.mapped = false

	AdjustViewOnOutput(Done{
		View:         view,
		GrabPosition: geometry.Point{X: 500, Y: 500},
		RelativeGrab: geometry.PointF{X: 0.5, Y: 0.5},
	})

	if len(view.moves) != 0 {
		t.Errorf("unmapped view was moved: %v", view.moves)
	}
}

func TestAdjustViewOnOutputReappliesEdgeState(t *testing.T) {
	out := newFakeOutput("DP-1", geometry.Rect{X: 0, Y: 0, Width: 1000, Height: 1000})

	tests := []struct {
		name      string
		tiled     Edges
		full      bool
		wantTiled int
		wantFull  int
	}{
		{"floating view", EdgeNone, false, 0, 0},
		{"tiled view", EdgeLeft | EdgeTop | EdgeBottom, false, 1, 0},
		{"fullscreen view", EdgeNone, true, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := newFakeView(1, geometry.Rect{X: 0, Y: 0, Width: 500, Height: 1000})
			view.output = out
			view.tiled = tt.tiled
			view.full = tt.full

			AdjustViewOnOutput(Done{
				View:          view,
				FocusedOutput: out,
				GrabPosition:  geometry.Point{X: 250, Y: 500},
				RelativeGrab:  geometry.PointF{X: 0.5, Y: 0.5},
			})

			if len(view.tileCalls) != tt.wantTiled {
				t.Errorf("tile re-applications = %d, want %d", len(view.tileCalls), tt.wantTiled)
			}
			if len(view.fullCalls) != tt.wantFull {
				t.Errorf("fullscreen re-applications = %d, want %d", len(view.fullCalls), tt.wantFull)
			}
		})
	}
}

func TestAdjustViewOnSnapOff(t *testing.T) {
	out := newFakeOutput("DP-1", geometry.Rect{X: 0, Y: 0, Width: 2000, Height: 2000})
	comp := &fakeCompositor{outputs: []*fakeOutput{out}}
	wob := &recordingWobbly{}
	core := New(comp, wob, quietLogger())
	core.SetScaleDuration(0)

	// A half-screen tiled view grabbed dead center.
	view := newFakeView(1, geometry.Rect{X: 0, Y: 0, Width: 1000, Height: 500})
	view.tiled = EdgeLeft | EdgeTop | EdgeRight

	core.StartDrag(view, geometry.Point{X: 500, Y: 250}, Options{EnableSnapOff: true, SnapOffThreshold: 16})

	core.SnapOff.Subscribe(func(SnapOff) {
		// The untile shrinks the view; rebuild around the frozen anchor.
		view.SetTiled(EdgeNone)
		view.geom.Width, view.geom.Height = 800, 600
		AdjustViewOnSnapOff(core)
	})

	core.HandleMotion(geometry.Point{X: 520, Y: 250})

	want := geometry.Point{X: 100, Y: -50}
	if len(view.moves) != 1 || view.moves[0] != want {
		t.Fatalf("view moved to %v, want [%v]", view.moves, want)
	}
	found := false
	for _, call := range wob.calls {
		if strings.HasPrefix(call, "reshape 1") {
			found = true
		}
	}
	if !found {
		t.Errorf("no wobbly reshape in %v", wob.calls)
	}
}
