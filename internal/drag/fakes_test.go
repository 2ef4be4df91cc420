package drag

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/wrensk/windrag/internal/events"
	"github.com/wrensk/windrag/internal/geometry"
)

type fakeTexture struct {
	size geometry.Size
}

func (t fakeTexture) Size() geometry.Size { return t.size }

type drawOp struct {
	scissor geometry.Rect
	dst     geometry.Rect
}

type fakeFramebuffer struct {
	geom    geometry.Rect
	pending geometry.Rect
	ops     []drawOp
}

func (f *fakeFramebuffer) Geometry() geometry.Rect { return f.geom }

func (f *fakeFramebuffer) Scissor(r geometry.Rect) { f.pending = r }

func (f *fakeFramebuffer) Blit(_ Texture, dst geometry.Rect) {
	f.ops = append(f.ops, drawOp{scissor: f.pending, dst: dst})
}

type fakeEffect struct {
	out     *fakeOutput
	stage   EffectStage
	hook    func()
	removed bool
}

func (e *fakeEffect) Remove() {
	e.removed = true
	kept := e.out.effects[e.stage][:0:0]
	for _, other := range e.out.effects[e.stage] {
		if other != e {
			kept = append(kept, other)
		}
	}
	e.out.effects[e.stage] = kept
}

type fakeOutput struct {
	name    string
	geom    geometry.Rect
	effects map[EffectStage][]*fakeEffect
	damage  []geometry.Rect
	fb      *fakeFramebuffer
}

func newFakeOutput(name string, geom geometry.Rect) *fakeOutput {
	return &fakeOutput{
		name:    name,
		geom:    geom,
		effects: make(map[EffectStage][]*fakeEffect),
		fb:      &fakeFramebuffer{geom: geom},
	}
}

func (o *fakeOutput) Name() string            { return o.name }
func (o *fakeOutput) Geometry() geometry.Rect { return o.geom }
func (o *fakeOutput) WorkArea() geometry.Rect { return o.geom }

func (o *fakeOutput) AddEffect(stage EffectStage, hook func()) EffectHandle {
	e := &fakeEffect{out: o, stage: stage, hook: hook}
	o.effects[stage] = append(o.effects[stage], e)
	return e
}

func (o *fakeOutput) Damage(r geometry.Rect) {
	if !r.IsEmpty() {
		o.damage = append(o.damage, r)
	}
}

func (o *fakeOutput) Framebuffer() Framebuffer { return o.fb }

// frame runs one render frame: damage hooks, then overlay hooks.
func (o *fakeOutput) frame() {
	for _, e := range append([]*fakeEffect(nil), o.effects[EffectPre]...) {
		e.hook()
	}
	for _, e := range append([]*fakeEffect(nil), o.effects[EffectOverlay]...) {
		e.hook()
	}
}

func (o *fakeOutput) hookCount() int {
	return len(o.effects[EffectPre]) + len(o.effects[EffectOverlay])
}

type fakeView struct {
	id        uint32
	geom      geometry.Rect
	visible   bool
	mapped    bool
	output    Output
	stack     TransformStack
	damages   int
	moves     []geometry.Point
	tiled     Edges
	full      bool
	tileCalls []Edges
	fullCalls []bool
	unmap     events.Signal[struct{}]
	tex       fakeTexture
}

func newFakeView(id uint32, geom geometry.Rect) *fakeView {
	return &fakeView{
		id:      id,
		geom:    geom,
		visible: true,
		mapped:  true,
		tex:     fakeTexture{size: geom.Dimensions()},
	}
}

func (v *fakeView) ID() uint32              { return v.id }
func (v *fakeView) Geometry() geometry.Rect { return v.geom }

func (v *fakeView) BoundingBox() geometry.Rect {
	return v.stack.BoundingBox(v.geom)
}

func (v *fakeView) Move(x, y int) {
	v.geom.X, v.geom.Y = x, y
	v.moves = append(v.moves, geometry.Point{X: x, Y: y})
}

func (v *fakeView) SetVisible(visible bool) { v.visible = visible }
func (v *fakeView) Damage()                 { v.damages++ }
func (v *fakeView) Mapped() bool            { return v.mapped }
func (v *fakeView) Output() Output          { return v.output }
func (v *fakeView) SetOutput(o Output)      { v.output = o }

func (v *fakeView) AddTransform(name string, t Transform) { v.stack.Add(name, t) }
func (v *fakeView) RemoveTransform(name string)           { v.stack.Remove(name) }
func (v *fakeView) Transform(name string) Transform       { return v.stack.Get(name) }

func (v *fakeView) RenderTransformed(fb Framebuffer, damage []geometry.Rect) {
	v.stack.Render(v.tex, v.geom, damage, fb)
}

func (v *fakeView) TiledEdges() Edges { return v.tiled }

func (v *fakeView) SetTiled(edges Edges) {
	v.tiled = edges
	v.tileCalls = append(v.tileCalls, edges)
}

func (v *fakeView) Fullscreen() bool { return v.full }

func (v *fakeView) SetFullscreen(full bool) {
	v.full = full
	v.fullCalls = append(v.fullCalls, full)
}

func (v *fakeView) OnUnmap(fn func()) func() {
	return v.unmap.Subscribe(func(struct{}) { fn() })
}

// triggerUnmap simulates the view disappearing mid-drag.
func (v *fakeView) triggerUnmap() {
	v.mapped = false
	v.unmap.Emit(struct{}{})
}

type fakeCompositor struct {
	outputs []*fakeOutput
	focused Output
	cursor  string
	cursors []string
}

func (c *fakeCompositor) Outputs() []Output {
	outs := make([]Output, len(c.outputs))
	for i, o := range c.outputs {
		outs[i] = o
	}
	return outs
}

func (c *fakeCompositor) OutputAt(p geometry.Point) (Output, bool) {
	for _, o := range c.outputs {
		if o.geom.Contains(p) {
			return o, true
		}
	}
	return nil, false
}

func (c *fakeCompositor) FocusOutput(o Output) { c.focused = o }

func (c *fakeCompositor) SetCursor(name string) {
	c.cursor = name
	c.cursors = append(c.cursors, name)
}

// recordingWobbly logs every physics call in order.
type recordingWobbly struct {
	calls []string
}

func (w *recordingWobbly) Start(view uint32, grab geometry.Point) {
	w.calls = append(w.calls, fmt.Sprintf("start %d %d,%d", view, grab.X, grab.Y))
}

func (w *recordingWobbly) Move(view uint32, pos geometry.Point) {
	w.calls = append(w.calls, fmt.Sprintf("move %d %d,%d", view, pos.X, pos.Y))
}

func (w *recordingWobbly) Reshape(view uint32, geom geometry.Rect) {
	w.calls = append(w.calls, fmt.Sprintf("reshape %d %v", view, geom))
}

func (w *recordingWobbly) Translate(view uint32, dx, dy int) {
	w.calls = append(w.calls, fmt.Sprintf("translate %d %d,%d", view, dx, dy))
}

func (w *recordingWobbly) End(view uint32) {
	w.calls = append(w.calls, fmt.Sprintf("end %d", view))
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestCore builds a core with instant scale animations.
func newTestCore(comp *fakeCompositor) *Core {
	c := New(comp, nil, quietLogger())
	c.SetScaleDuration(0)
	return c
}
