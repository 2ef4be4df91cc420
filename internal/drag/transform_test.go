package drag

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/wrensk/windrag/internal/geometry"
)

func TestScaleTransformBoundingBox(t *testing.T) {
	view := geometry.Rect{X: 0, Y: 0, Width: 200, Height: 100}

	tests := []struct {
		name  string
		scale float64
		rel   geometry.PointF
		grab  geometry.Point
		want  geometry.Rect
	}{
		{
			name:  "identity scale",
			scale: 1,
			rel:   geometry.PointF{X: 0.25, Y: 0.5},
			grab:  geometry.Point{X: 300, Y: 300},
			want:  geometry.Rect{X: 250, Y: 250, Width: 200, Height: 100},
		},
		{
			name:  "scale two halves the box",
			scale: 2,
			rel:   geometry.PointF{X: 0.5, Y: 0.5},
			grab:  geometry.Point{X: 300, Y: 300},
			want:  geometry.Rect{X: 250, Y: 275, Width: 100, Height: 50},
		},
		{
			name:  "scale half doubles the box",
			scale: 0.5,
			rel:   geometry.PointF{X: 0, Y: 0},
			grab:  geometry.Point{X: 10, Y: 20},
			want:  geometry.Rect{X: 10, Y: 20, Width: 400, Height: 200},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewScaleTransform(tt.rel, tt.grab, 0, quietLogger())
			tr.Scale.Animate(tt.scale)
			if got := tr.BoundingBox(view); got != tt.want {
				t.Errorf("BoundingBox(%v) at scale %v = %v, want %v", view, tt.scale, got, tt.want)
			}
		})
	}
}

func TestScaleTransformBoundingBoxMidAnimation(t *testing.T) {
	now := time.Unix(1000, 0)
	tr := NewScaleTransform(geometry.PointF{}, geometry.Point{}, 100*time.Millisecond, quietLogger())
	tr.Scale.SetClock(func() time.Time { return now })
	tr.Scale.Animate(2)

	view := geometry.Rect{X: 0, Y: 0, Width: 300, Height: 300}

	if got := tr.BoundingBox(view).Width; got != 300 {
		t.Errorf("width at animation start = %d, want 300", got)
	}

	// Halfway through, the eased scale is 1.5.
	now = now.Add(50 * time.Millisecond)
	if got := tr.BoundingBox(view).Width; got != 200 {
		t.Errorf("width mid-animation = %d, want 200", got)
	}

	now = now.Add(50 * time.Millisecond)
	if got := tr.BoundingBox(view).Width; got != 150 {
		t.Errorf("width at animation end = %d, want 150", got)
	}
}

func TestScaleTransformPointMappingIsDiagnosed(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	tr := NewScaleTransform(geometry.PointF{}, geometry.Point{}, 0, logger)

	view := geometry.Rect{X: 0, Y: 0, Width: 100, Height: 100}
	p := geometry.PointF{X: 10, Y: 20}

	if got := tr.TransformPoint(view, p); got != p {
		t.Errorf("TransformPoint(%v) = %v, want input unchanged", p, got)
	}
	if got := tr.UntransformPoint(view, p); got != p {
		t.Errorf("UntransformPoint(%v) = %v, want input unchanged", p, got)
	}
	if !strings.Contains(buf.String(), "unexpected point") {
		t.Errorf("point mapping not diagnosed in log: %q", buf.String())
	}
}

func TestScaleTransformRenderPerDamageRect(t *testing.T) {
	tr := NewScaleTransform(geometry.PointF{X: 0, Y: 0}, geometry.Point{X: 50, Y: 50}, 0, quietLogger())
	view := geometry.Rect{X: 0, Y: 0, Width: 100, Height: 100}
	bbox := tr.BoundingBox(view)

	fb := &fakeFramebuffer{geom: geometry.Rect{X: 0, Y: 0, Width: 1000, Height: 1000}}
	damage := []geometry.Rect{
		{X: 50, Y: 50, Width: 10, Height: 10},
		{X: 100, Y: 100, Width: 20, Height: 20},
		{}, // empty rects are skipped
	}

	tr.Render(fakeTexture{}, view, damage, fb)

	if len(fb.ops) != 2 {
		t.Fatalf("draw ops = %d, want 2", len(fb.ops))
	}
	for i, op := range fb.ops {
		if op.dst != bbox {
			t.Errorf("op %d blit destination = %v, want whole box %v", i, op.dst, bbox)
		}
		if op.scissor != damage[i] {
			t.Errorf("op %d scissor = %v, want %v", i, op.scissor, damage[i])
		}
	}
}
