package drag

import (
	"log/slog"
	"math"
	"time"

	"github.com/wrensk/windrag/internal/anim"
	"github.com/wrensk/windrag/internal/geometry"
)

// TransformName is the key the core installs its transform under on a
// view's transform stack.
const TransformName = "drag-scale"

// ScaleTransform scales a view's rendered image around a fixed grab anchor.
// The scale approaches its target smoothly, so the bounding box must be
// recomputed on every query rather than cached.
type ScaleTransform struct {
	// Scale is the animated scale factor. A factor of 2 shows the view at
	// half size.
	Scale *anim.Value
	// RelativeGrab is the fractional grab offset, fixed for the
	// transform's lifetime.
	RelativeGrab geometry.PointF
	// GrabPosition is the current anchor in layout coordinates, updated
	// on every motion event while the view is not held in place.
	GrabPosition geometry.Point

	logger *slog.Logger
}

// NewScaleTransform returns a transform anchored so that the fractional
// point rel of the view stays under grab. The scale starts at 1 and
// animates retargets over duration.
func NewScaleTransform(rel geometry.PointF, grab geometry.Point, duration time.Duration, logger *slog.Logger) *ScaleTransform {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScaleTransform{
		Scale:        anim.NewValue(1.0, duration),
		RelativeGrab: rel,
		GrabPosition: grab,
		logger:       logger,
	}
}

// BoundingBox returns the rectangle the scaled view occupies: the view size
// divided by the current scale factor, positioned so the grab anchor lands
// at the relative grab fraction.
func (t *ScaleTransform) BoundingBox(view geometry.Rect) geometry.Rect {
	scale := t.Scale.Current()
	size := geometry.Size{
		Width:  int(math.Floor(float64(view.Width) / scale)),
		Height: int(math.Floor(float64(view.Height) / scale)),
	}
	return geometry.Around(size, t.GrabPosition, t.RelativeGrab)
}

// TransformPoint exists only to satisfy the Transform contract. The
// overlay path never maps points, so reaching this is a logic error.
func (t *ScaleTransform) TransformPoint(_ geometry.Rect, p geometry.PointF) geometry.PointF {
	t.logger.Error("unexpected point transform on overlay-rendered view", "point", p)
	return p
}

// UntransformPoint exists only to satisfy the Transform contract, like
// TransformPoint.
func (t *ScaleTransform) UntransformPoint(_ geometry.Rect, p geometry.PointF) geometry.PointF {
	t.logger.Error("unexpected point untransform on overlay-rendered view", "point", p)
	return p
}

// ZOrder places the transform just below the highest post-processing
// level.
func (t *ScaleTransform) ZOrder() int {
	return ZOrderDragScale
}

// Render draws the whole current bounding box once per damage rectangle,
// scissored to it. Redrawing the full box per rectangle is deliberate.
func (t *ScaleTransform) Render(src Texture, view geometry.Rect, damage []geometry.Rect, fb Framebuffer) {
	bbox := t.BoundingBox(view)
	for _, d := range damage {
		if d.IsEmpty() {
			continue
		}
		fb.Scissor(d)
		fb.Blit(src, bbox)
	}
}
