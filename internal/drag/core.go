package drag

import (
	"log/slog"
	"time"

	"github.com/wrensk/windrag/internal/events"
	"github.com/wrensk/windrag/internal/geometry"
	"github.com/wrensk/windrag/internal/wobbly"
)

// DefaultScaleDuration is how long scale retargets take unless overridden.
const DefaultScaleDuration = 300 * time.Millisecond

// Options configures one drag session.
type Options struct {
	// EnableSnapOff holds the view in place until motion exceeds
	// SnapOffThreshold pixels from the grab origin, then emits a single
	// SnapOff event.
	EnableSnapOff    bool
	SnapOffThreshold int
	// InitialScale is the scale factor the view animates toward as the
	// drag starts. Zero means 1.
	InitialScale float64
}

// FocusChanged reports that the drag moved onto a different output.
// Previous is nil before the first focus of a session.
type FocusChanged struct {
	Previous Output
	Current  Output
}

// SnapOff reports that motion exceeded the snap-off threshold and the view
// detached from its held position.
type SnapOff struct {
	// Output is the focused output at the moment of snap-off.
	Output Output
}

// Done carries everything a consumer needs to finalize a drop.
type Done struct {
	View          View
	FocusedOutput Output
	// GrabPosition is the final anchor position in layout coordinates.
	GrabPosition geometry.Point
	// RelativeGrab is the fractional grab offset the drag ran with.
	RelativeGrab geometry.PointF
}

// Core coordinates one drag at a time across all outputs. A single Core is
// constructed per compositor connection and shared by every consumer; it
// runs entirely on the event-loop thread and holds no locks.
type Core struct {
	comp          Compositor
	wobbly        wobbly.Service
	logger        *slog.Logger
	scaleDuration time.Duration

	// Session state, zero while idle.
	view        View
	focused     Output
	transform   *ScaleTransform
	params      Options
	grabOrigin  geometry.Point
	heldInPlace bool
	overlays    []*outputOverlay
	cancelUnmap func()

	// FocusChanged, SnapOff and Done are the core's outbound events.
	// Emission is synchronous: subscribers run before the triggering
	// operation returns.
	FocusChanged events.Signal[FocusChanged]
	SnapOff      events.Signal[SnapOff]
	Done         events.Signal[Done]
}

// New creates the shared drag core. A nil wobbly service disables the
// physics boundary; a nil logger falls back to slog.Default.
func New(comp Compositor, wob wobbly.Service, logger *slog.Logger) *Core {
	if wob == nil {
		wob = wobbly.Null{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Core{
		comp:          comp,
		wobbly:        wob,
		logger:        logger,
		scaleDuration: DefaultScaleDuration,
	}
}

// SetScaleDuration overrides how long scale animations take. It affects
// the next StartDrag, not a session in flight.
func (c *Core) SetScaleDuration(d time.Duration) {
	c.scaleDuration = d
}

// Active reports whether a drag session is in progress.
func (c *Core) Active() bool {
	return c.view != nil
}

// View returns the view being dragged, or nil while idle.
func (c *Core) View() View {
	return c.view
}

// FocusedOutput returns the output the drag currently focuses, or nil.
func (c *Core) FocusedOutput() Output {
	return c.focused
}

// HeldInPlace reports whether the session is still waiting for snap-off.
func (c *Core) HeldInPlace() bool {
	return c.heldInPlace
}

// CurrentScale returns the transform's instantaneous scale factor, or 1
// while idle.
func (c *Core) CurrentScale() float64 {
	if c.transform == nil {
		return 1
	}
	return c.transform.Scale.Current()
}

// StartDrag begins a session with the grab fraction derived from the
// view's current bounding box and the grab point.
func (c *Core) StartDrag(v View, grab geometry.Point, opts Options) {
	if !c.precheck(v) {
		return
	}
	rel := geometry.RelativeGrab(v.BoundingBox(), grab)
	c.begin(v, grab, rel, opts)
	c.wobbly.Start(v.ID(), grab)
	c.updateCurrentOutput(grab)
}

// StartDragRelative begins a session with an explicit grab fraction, for
// callers whose coordinate space does not match the view's bounding box
// (a zoomed-out overview, for example).
func (c *Core) StartDragRelative(v View, grab geometry.Point, rel geometry.PointF, opts Options) {
	if !c.precheck(v) {
		return
	}
	bbox := v.BoundingBox()
	c.begin(v, grab, rel, opts)
	wobbly.StartRelative(c.wobbly, v.ID(), bbox, rel)
	c.updateCurrentOutput(grab)
}

func (c *Core) precheck(v View) bool {
	if c.Active() {
		c.logger.Error("drag start requested while a session is active",
			"active_view", c.view.ID(), "requested_view", v.ID())
		return false
	}
	if !v.Mapped() {
		c.logger.Error("drag start requested for unmapped view", "view", v.ID())
		return false
	}
	return true
}

func (c *Core) begin(v View, grab geometry.Point, rel geometry.PointF, opts Options) {
	if opts.InitialScale <= 0 {
		opts.InitialScale = 1
	}
	c.view = v
	c.params = opts

	tr := NewScaleTransform(rel, grab, c.scaleDuration, c.logger)
	v.AddTransform(TransformName, tr)
	c.transform = tr
	if opts.InitialScale != 1 {
		tr.Scale.Animate(opts.InitialScale)
	}

	// The view now exists only as the dragged overlay.
	v.SetVisible(false)
	v.Damage()
	for _, o := range c.comp.Outputs() {
		c.overlays = append(c.overlays, attachOverlay(o, v))
	}
	c.comp.SetCursor("grabbing")
	c.cancelUnmap = v.OnUnmap(c.handleViewUnmapped)

	if opts.EnableSnapOff {
		c.grabOrigin = grab
		c.heldInPlace = true
	}

	c.logger.Debug("drag started", "view", v.ID(), "grab_x", grab.X, "grab_y", grab.Y,
		"snap_off", opts.EnableSnapOff, "scale", opts.InitialScale)
}

// HandleMotion processes one pointer or touch position in layout
// coordinates. While held in place the anchor stays fixed; the held state
// clears exactly once, when displacement from the grab origin reaches the
// snap-off threshold.
func (c *Core) HandleMotion(p geometry.Point) {
	if !c.Active() {
		c.logger.Error("motion event with no active drag")
		return
	}

	if c.heldInPlace {
		threshold := c.params.SnapOffThreshold
		if geometry.Distance2(c.grabOrigin, p) >= threshold*threshold {
			c.heldInPlace = false
			c.SnapOff.Emit(SnapOff{Output: c.focused})
		}
	}
	if !c.heldInPlace {
		c.transform.GrabPosition = p
	}
	c.wobbly.Move(c.view.ID(), p)
	c.updateCurrentOutput(p)
}

// updateCurrentOutput projects p onto the output layout. A point outside
// every output leaves focus unchanged.
func (c *Core) updateCurrentOutput(p geometry.Point) {
	o, ok := c.comp.OutputAt(p)
	if !ok || o == c.focused {
		return
	}
	prev := c.focused
	c.focused = o
	c.comp.FocusOutput(o)
	c.FocusChanged.Emit(FocusChanged{Previous: prev, Current: o})
}

// HandleInputReleased ends the session: a final damage pass erases the
// overlay on every output while the transform is still installed, the
// hooks come off, the view's normal rendering is restored, and consumers
// get the completion record.
func (c *Core) HandleInputReleased() {
	if !c.Active() {
		c.logger.Error("input released with no active drag")
		return
	}

	ev := Done{
		View:          c.view,
		FocusedOutput: c.focused,
		GrabPosition:  c.transform.GrabPosition,
		RelativeGrab:  c.transform.RelativeGrab,
	}
	viewID := c.view.ID()

	for _, ov := range c.overlays {
		ov.detach()
	}
	c.overlays = nil

	c.view.SetVisible(true)
	c.view.RemoveTransform(TransformName)
	if c.cancelUnmap != nil {
		c.cancelUnmap()
		c.cancelUnmap = nil
	}
	c.comp.SetCursor("default")

	c.view = nil
	c.focused = nil
	c.transform = nil
	c.heldInPlace = false

	c.logger.Debug("drag done", "view", viewID,
		"grab_x", ev.GrabPosition.X, "grab_y", ev.GrabPosition.Y)
	c.Done.Emit(ev)
	// Physics end after the Done handlers, which may still translate the
	// mesh while reconciling geometry.
	c.wobbly.End(viewID)
}

// SetScale retargets the transform's animated scale factor mid-drag, for
// consumers tracking zoom level across differently scaled outputs.
func (c *Core) SetScale(scale float64) {
	if !c.Active() {
		c.logger.Error("scale change with no active drag")
		return
	}
	if scale <= 0 {
		c.logger.Error("ignoring non-positive drag scale", "scale", scale)
		return
	}
	c.transform.Scale.Animate(scale)
}

// handleViewUnmapped forces a release when the dragged view disappears, so
// overlay hooks and the transform never outlive it. The completion path is
// identical to a normal release.
func (c *Core) handleViewUnmapped() {
	if !c.Active() {
		return
	}
	c.logger.Info("view unmapped during drag, forcing release", "view", c.view.ID())
	c.HandleInputReleased()
}
