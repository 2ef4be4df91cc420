package drag

import "github.com/wrensk/windrag/internal/geometry"

// AdjustViewOnOutput finalizes a drop from a completion record: it
// re-derives the view's top-left from the grabbed size and relative
// fraction, migrates the view to the focused output when that changed, and
// re-applies fullscreen or tiled state. A view that unmapped during the
// drag is left untouched.
func AdjustViewOnOutput(ev Done) {
	v := ev.View
	if v == nil || !v.Mapped() {
		return
	}

	if ev.FocusedOutput != nil && v.Output() != ev.FocusedOutput {
		v.SetOutput(ev.FocusedOutput)
	}

	size := v.Geometry().Dimensions()
	target := geometry.Around(size, ev.GrabPosition, ev.RelativeGrab)
	v.Move(target.X, target.Y)

	if v.Fullscreen() {
		v.SetFullscreen(true)
	} else if edges := v.TiledEdges(); edges != EdgeNone {
		v.SetTiled(edges)
	}
}

// AdjustViewOnSnapOff rebuilds the view's geometry around the frozen grab
// anchor after a snap-off handler untiled it and its size changed, and
// reshapes the physics mesh to match. Call it from a SnapOff handler,
// while the session is still active.
func AdjustViewOnSnapOff(c *Core) {
	v := c.View()
	if v == nil || !v.Mapped() {
		return
	}

	size := v.Geometry().Dimensions()
	target := geometry.Around(size, c.transform.GrabPosition, c.transform.RelativeGrab)
	v.Move(target.X, target.Y)
	v.Damage()
	c.wobbly.Reshape(v.ID(), target)
}
