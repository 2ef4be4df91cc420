package drag

import "github.com/wrensk/windrag/internal/geometry"

// outputOverlay is the per-output bookkeeping for one drag: a pre-frame
// damage hook, an overlay render hook, and the box last rendered on that
// output in output-local coordinates.
type outputOverlay struct {
	output  Output
	view    View
	lastBox geometry.Rect
	pre     EffectHandle
	overlay EffectHandle
}

// attachOverlay registers both hooks on the output's render pipeline.
func attachOverlay(output Output, view View) *outputOverlay {
	ov := &outputOverlay{output: output, view: view}
	ov.pre = output.AddEffect(EffectPre, ov.applyDamage)
	ov.overlay = output.AddEffect(EffectOverlay, ov.render)
	return ov
}

// applyDamage damages the view's new bounding box and the box rendered
// last frame, so the old overlay image is erased and the new one drawn.
func (ov *outputOverlay) applyDamage() {
	origin := ov.output.Geometry().Origin()
	bbox := ov.view.BoundingBox().Translate(-origin.X, -origin.Y)
	ov.output.Damage(bbox)
	ov.output.Damage(ov.lastBox)
	ov.lastBox = bbox
}

// render draws the transformed view into the output's framebuffer, using
// the box stored by this frame's damage pass translated back into the
// framebuffer's coordinate space.
func (ov *outputOverlay) render() {
	if ov.lastBox.IsEmpty() {
		return
	}
	origin := ov.output.Geometry().Origin()
	box := ov.lastBox.Translate(origin.X, origin.Y)
	ov.view.RenderTransformed(ov.output.Framebuffer(), []geometry.Rect{box})
}

// detach applies one final damage pass and unregisters both hooks. The
// damage must land while the transform is still installed on the view and
// before the hooks are removed; reversing this erases the wrong geometry.
func (ov *outputOverlay) detach() {
	ov.applyDamage()
	ov.pre.Remove()
	ov.overlay.Remove()
}
