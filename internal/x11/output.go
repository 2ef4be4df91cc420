package x11

import (
	"github.com/wrensk/windrag/internal/drag"
	"github.com/wrensk/windrag/internal/geometry"
)

// ghostSurface is the drawable an output framebuffer realizes blits onto.
type ghostSurface interface {
	Show(r geometry.Rect)
	Hide()
}

// Output is one monitor in the layout with a minimal frame pipeline the
// drag core hooks into. Frames only run while a drag is active; each frame
// executes the damage hooks, then the overlay hooks when anything was
// damaged.
type Output struct {
	name     string
	geom     geometry.Rect
	workArea geometry.Rect

	hooks  map[drag.EffectStage][]*effectHook
	damage []geometry.Rect
	fb     *outputFramebuffer
}

func newOutput(info Monitor, ghost ghostSurface) *Output {
	return &Output{
		name:     info.Name,
		geom:     info.Geometry,
		workArea: info.WorkArea,
		hooks:    make(map[drag.EffectStage][]*effectHook),
		fb:       &outputFramebuffer{geom: info.Geometry, ghost: ghost},
	}
}

func (o *Output) Name() string { return o.name }

func (o *Output) Geometry() geometry.Rect { return o.geom }

func (o *Output) WorkArea() geometry.Rect { return o.workArea }

// setMonitor updates the output after a RandR layout change.
func (o *Output) setMonitor(info Monitor) {
	o.geom = info.Geometry
	o.workArea = info.WorkArea
	o.fb.geom = info.Geometry
}

// AddEffect registers a per-frame hook at the given stage.
func (o *Output) AddEffect(stage drag.EffectStage, fn func()) drag.EffectHandle {
	h := &effectHook{out: o, stage: stage, fn: fn}
	o.hooks[stage] = append(o.hooks[stage], h)
	return h
}

// Damage marks r, in output-local coordinates, as needing redraw.
func (o *Output) Damage(r geometry.Rect) {
	if r.IsEmpty() {
		return
	}
	// Collapse runaway lists; the overlay only needs a covering region.
	if len(o.damage) >= 16 {
		union := o.damage[0]
		for _, d := range o.damage[1:] {
			union = union.Union(d)
		}
		o.damage = append(o.damage[:0], union)
	}
	o.damage = append(o.damage, r)
}

// Framebuffer returns the output's render target for the current frame.
func (o *Output) Framebuffer() drag.Framebuffer {
	return o.fb
}

// frame runs one overlay frame. A frame that draws nothing hides the
// ghost, so a finished drag erases itself on the next tick.
func (o *Output) frame() {
	for _, h := range o.snapshot(drag.EffectPre) {
		if !h.removed {
			h.fn()
		}
	}

	blitted := false
	if len(o.damage) > 0 {
		o.fb.begin()
		for _, h := range o.snapshot(drag.EffectOverlay) {
			if !h.removed {
				h.fn()
			}
		}
		blitted = o.fb.blitted
		o.damage = o.damage[:0]
	}
	if !blitted {
		o.fb.ghost.Hide()
	}
}

// snapshot copies a hook list so handlers may remove themselves mid-frame.
func (o *Output) snapshot(stage drag.EffectStage) []*effectHook {
	hooks := o.hooks[stage]
	if len(hooks) == 0 {
		return nil
	}
	return append([]*effectHook(nil), hooks...)
}

func (o *Output) hookCount() int {
	n := 0
	for _, hooks := range o.hooks {
		n += len(hooks)
	}
	return n
}

// destroy releases the output's ghost window.
func (o *Output) destroy() {
	if g, ok := o.fb.ghost.(*Ghost); ok {
		g.Destroy()
	}
}

// effectHook is one registered per-frame callback.
type effectHook struct {
	out     *Output
	stage   drag.EffectStage
	fn      func()
	removed bool
}

// Remove unregisters the hook. Safe to call during a frame.
func (h *effectHook) Remove() {
	h.removed = true
	hooks := h.out.hooks[h.stage]
	kept := hooks[:0:0]
	for _, other := range hooks {
		if other != h {
			kept = append(kept, other)
		}
	}
	h.out.hooks[h.stage] = kept
}

// outputFramebuffer maps the drag core's draw calls onto the output's
// ghost window. There is no pixel plane behind it; a blit positions the
// ghost over the clipped target rectangle.
type outputFramebuffer struct {
	geom    geometry.Rect
	ghost   ghostSurface
	scissor geometry.Rect
	blitted bool
}

func (fb *outputFramebuffer) begin() {
	fb.scissor = fb.geom
	fb.blitted = false
}

func (fb *outputFramebuffer) Geometry() geometry.Rect { return fb.geom }

func (fb *outputFramebuffer) Scissor(r geometry.Rect) { fb.scissor = r }

// Blit shows the ghost over dst clipped to the scissor and the output.
func (fb *outputFramebuffer) Blit(tex drag.Texture, dst geometry.Rect) {
	target := dst.Intersect(fb.scissor).Intersect(fb.geom)
	if target.IsEmpty() {
		return
	}
	fb.ghost.Show(target)
	fb.blitted = true
}
