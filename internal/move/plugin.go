package move

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/mousebind"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/wrensk/windrag/internal/config"
	"github.com/wrensk/windrag/internal/drag"
	"github.com/wrensk/windrag/internal/geometry"
	"github.com/wrensk/windrag/internal/x11"
)

// Snap preview styling, grayed out so the target slot reads as secondary
// to the dragged window's ghost.
const (
	previewFillColor   = 0x44505c
	previewBorderColor = 0x7f8c8d
)

// Status is a snapshot of the plugin's drag state for status reporting.
type Status struct {
	Dragging    bool    `json:"dragging"`
	Window      uint32  `json:"window,omitempty"`
	Output      string  `json:"output,omitempty"`
	Slot        int     `json:"slot,omitempty"`
	HeldInPlace bool    `json:"held_in_place,omitempty"`
	Scale       float64 `json:"scale,omitempty"`
}

// Plugin owns the pointer binding that starts drags and everything that
// happens around one: edge snapping with a preview, snap-off for tiled
// windows, desktop switching on edge hold, and the overlay frame clock.
//
// All X event callbacks and the core's signal handlers run under mu. The
// signal handlers are invoked synchronously from core calls made while mu
// is already held, so they must not lock it again.
type Plugin struct {
	mu     sync.Mutex
	conn   *x11.Connection
	screen *x11.Screen
	core   *drag.Core
	logger *slog.Logger

	moveCfg config.MoveConfig
	dragCfg config.DragConfig

	dragging  bool
	slot      Slot
	preview   *x11.Ghost
	wsTimer   *time.Timer
	frameStop chan struct{}
	bound     bool
}

// New wires the plugin to the drag core's signals and takes over the
// screen's event serialization lock.
func New(conn *x11.Connection, screen *x11.Screen, core *drag.Core, cfg *config.Config, logger *slog.Logger) *Plugin {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Plugin{
		conn:    conn,
		screen:  screen,
		core:    core,
		logger:  logger,
		moveCfg: cfg.Move,
		dragCfg: cfg.Drag,
		preview: x11.NewGhostStyle(conn, previewFillColor, previewBorderColor),
	}
	screen.SetLocker(&p.mu)
	core.SnapOff.Subscribe(p.onSnapOff)
	core.Done.Subscribe(p.onDone)
	core.FocusChanged.Subscribe(p.onFocusChanged)
	return p
}

// Bind installs the activation grabs and the motion and release handlers
// on the root window.
func (p *Plugin) Bind() error {
	xu := p.conn.XUtil
	ignoreModsOnce.Do(func() { configureIgnoreMods(xu) })

	err := mousebind.ButtonPressFun(p.onButtonPress).Connect(xu, p.conn.Root, p.moveCfg.ActivateButton, false, true)
	if err != nil {
		return fmt.Errorf("failed to bind %q: %w", p.moveCfg.ActivateButton, err)
	}
	if err := p.bindActivateKey(); err != nil {
		return err
	}
	xevent.MotionNotifyFun(p.onMotion).Connect(xu, p.conn.Root)
	xevent.ButtonReleaseFun(p.onButtonRelease).Connect(xu, p.conn.Root)
	p.bound = true

	p.logger.Info("move bindings active",
		"button", p.moveCfg.ActivateButton, "key", p.moveCfg.ActivateKey)
	return nil
}

// Reload applies a new configuration, rebinding the activation grabs if
// they changed.
func (p *Plugin) Reload(cfg *config.Config) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	rebindButton := p.bound && cfg.Move.ActivateButton != p.moveCfg.ActivateButton
	rebindKey := p.bound && cfg.Move.ActivateKey != p.moveCfg.ActivateKey
	p.moveCfg = cfg.Move
	p.dragCfg = cfg.Drag

	if rebindButton {
		mousebind.Detach(p.conn.XUtil, p.conn.Root)
		err := mousebind.ButtonPressFun(p.onButtonPress).Connect(
			p.conn.XUtil, p.conn.Root, p.moveCfg.ActivateButton, false, true)
		if err != nil {
			return fmt.Errorf("failed to rebind %q: %w", p.moveCfg.ActivateButton, err)
		}
		p.logger.Info("move binding changed", "button", p.moveCfg.ActivateButton)
	}
	if rebindKey {
		keybind.Detach(p.conn.XUtil, p.conn.Root)
		if err := p.bindActivateKey(); err != nil {
			return err
		}
		p.logger.Info("move key binding changed", "key", p.moveCfg.ActivateKey)
	}
	return nil
}

// Shutdown ends any in-flight drag and releases plugin resources.
func (p *Plugin) Shutdown() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.dragging {
		p.core.HandleInputReleased()
	}
	p.preview.Destroy()
}

// Locker exposes the mutex that serializes all window-system access, so
// the daemon's reconciler can take it around screen maintenance.
func (p *Plugin) Locker() sync.Locker {
	return &p.mu
}

// Status returns a snapshot of the current drag.
func (p *Plugin) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()

	st := Status{Dragging: p.dragging, Slot: int(p.slot)}
	if view := p.core.View(); view != nil {
		st.Window = view.ID()
		st.HeldInPlace = p.core.HeldInPlace()
		st.Scale = p.core.CurrentScale()
	}
	if out := p.core.FocusedOutput(); out != nil {
		st.Output = out.Name()
	}
	return st
}

func (p *Plugin) onButtonPress(xu *xgbutil.XUtil, ev xevent.ButtonPressEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.core.Active() {
		return
	}

	target, err := p.conn.WindowAtPointer()
	if err != nil {
		p.logger.Warn("pointer window query failed", "error", err)
		return
	}
	if target == 0 {
		p.logger.Debug("no window under pointer")
		return
	}
	view := p.screen.View(target)

	grab := geometry.Point{X: int(ev.RootX), Y: int(ev.RootY)}
	p.startSession(func() {
		p.core.StartDrag(view, grab, p.dragOptions(view))
	})
}

// dragOptions builds the session options for a view from the current
// config. Snap-off only applies to views with a held position.
func (p *Plugin) dragOptions(view *x11.Window) drag.Options {
	return drag.Options{
		EnableSnapOff:    p.moveCfg.GetEnableSnapOff() && (view.Fullscreen() || view.TiledEdges() != drag.EdgeNone),
		SnapOffThreshold: p.moveCfg.SnapOffThreshold,
		InitialScale:     p.dragCfg.InitialScale,
	}
}

// startSession grabs the pointer, runs start, and rolls the grab back if
// the core declined the drag.
func (p *Plugin) startSession(start func()) {
	if err := p.conn.GrabPointer(p.screen.GrabCursor("grabbing")); err != nil {
		p.logger.Warn("pointer grab failed", "error", err)
		return
	}

	start()
	if !p.core.Active() {
		p.conn.UngrabPointer()
		return
	}

	p.dragging = true
	p.slot = SlotNone
	p.startFrames()
}

func (p *Plugin) onMotion(xu *xgbutil.XUtil, ev xevent.MotionNotifyEvent) {
	ev = xevent.CompressMotionNotify(xu, ev)

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.dragging {
		return
	}
	pos := geometry.Point{X: int(ev.RootX), Y: int(ev.RootY)}
	p.core.HandleMotion(pos)
	if !p.dragging {
		return
	}
	p.updateSlot(p.currentSlot(pos))
}

func (p *Plugin) onButtonRelease(xu *xgbutil.XUtil, ev xevent.ButtonReleaseEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.dragging {
		return
	}
	p.core.HandleInputReleased()
}

// currentSlot computes the snap target for the pointer position, or none
// while snapping is off, the view is still held, or it is fullscreen.
func (p *Plugin) currentSlot(pos geometry.Point) Slot {
	if !p.moveCfg.GetEnableSnap() || p.core.HeldInPlace() {
		return SlotNone
	}
	view := p.core.View()
	if view == nil || view.Fullscreen() {
		return SlotNone
	}
	out := p.core.FocusedOutput()
	if out == nil {
		return SlotNone
	}
	return CalcSlot(out.Geometry(), out.WorkArea(), pos, p.moveCfg.SnapThreshold, p.moveCfg.QuarterSnapThreshold)
}

// updateSlot moves the preview and the desktop-switch timer to a new snap
// target.
func (p *Plugin) updateSlot(slot Slot) {
	if p.slot == slot {
		return
	}
	p.slot = slot

	if slot == SlotNone {
		p.preview.Hide()
	} else if out := p.core.FocusedOutput(); out != nil {
		p.preview.Show(SlotGeometry(out.WorkArea(), slot))
	}

	p.updateWorkspaceSwitchTimer(slot)
}

// updateWorkspaceSwitchTimer arms the desktop switch when the slot's
// column points at a neighboring desktop, and disarms it otherwise.
func (p *Plugin) updateWorkspaceSwitchTimer(slot Slot) {
	p.stopWorkspaceTimer()

	if p.moveCfg.WorkspaceSwitchAfter < 0 || slot == SlotNone {
		return
	}
	delta := workspaceDelta(slot)
	if delta == 0 {
		return
	}

	current, err := p.conn.GetCurrentDesktop()
	if err != nil {
		p.logger.Warn("current desktop query failed", "error", err)
		return
	}
	count, err := p.conn.GetDesktopCount()
	if err != nil {
		p.logger.Warn("desktop count query failed", "error", err)
		return
	}
	target := current + delta
	if target < 0 || target >= count {
		return
	}

	after := time.Duration(p.moveCfg.WorkspaceSwitchAfter) * time.Millisecond
	p.wsTimer = time.AfterFunc(after, func() { p.switchDesktop(target) })
}

func (p *Plugin) stopWorkspaceTimer() {
	if p.wsTimer != nil {
		p.wsTimer.Stop()
		p.wsTimer = nil
	}
}

// switchDesktop fires from the edge-hold timer: the desktop changes and
// the dragged window comes along.
func (p *Plugin) switchDesktop(target int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.dragging {
		return
	}
	view := p.core.View()
	if view == nil {
		return
	}

	p.logger.Info("edge hold, switching desktop", "desktop", target, "window", view.ID())
	if err := p.conn.SwitchDesktop(target); err != nil {
		p.logger.Warn("desktop switch failed", "error", err)
		return
	}
	if err := p.conn.SetWindowDesktop(view.ID(), target); err != nil {
		p.logger.Warn("moving window to desktop failed", "error", err)
	}
}

// onSnapOff un-tiles the view so it can move freely, then rebuilds its
// geometry around the grab point at its restored floating size. Runs
// inside the core's motion handling with mu held.
func (p *Plugin) onSnapOff(ev drag.SnapOff) {
	view := p.core.View()
	if view == nil {
		return
	}
	p.logger.Debug("snap-off", "window", view.ID())

	if view.Fullscreen() {
		view.SetFullscreen(false)
	}
	if view.TiledEdges() != drag.EdgeNone {
		view.SetTiled(drag.EdgeNone)
	}
	drag.AdjustViewOnSnapOff(p.core)
}

// onDone finalizes a drop: reconcile the view with the focused output,
// apply the snap slot if one is selected, then tear the drag session
// down. Runs inside the core's release handling with mu held.
func (p *Plugin) onDone(ev drag.Done) {
	drag.AdjustViewOnOutput(ev)

	if p.moveCfg.GetEnableSnap() && p.slot != SlotNone && !ev.View.Fullscreen() {
		if out := ev.FocusedOutput; out != nil {
			target := SlotGeometry(out.WorkArea(), p.slot)
			p.logger.Info("snapping window", "window", ev.View.ID(), "slot", int(p.slot),
				"x", target.X, "y", target.Y, "width", target.Width, "height", target.Height)
			if err := p.conn.MoveResizeWindow(xproto.Window(ev.View.ID()), target); err != nil {
				p.logger.Warn("snap resize failed", "window", ev.View.ID(), "error", err)
			}
			ev.View.SetTiled(SlotEdges(p.slot))
		}
	}

	p.finishDrag()
}

// onFocusChanged drops the preview when the drag crosses outputs; the
// next motion event recomputes the slot against the new work area.
func (p *Plugin) onFocusChanged(ev drag.FocusChanged) {
	p.logger.Debug("drag focus", "output", ev.Current.Name())
	p.updateSlot(SlotNone)
}

// finishDrag releases everything a session holds. One more frame runs
// before the clock stops so the final damage pass erases the ghosts.
func (p *Plugin) finishDrag() {
	p.dragging = false
	p.updateSlot(SlotNone)
	p.stopWorkspaceTimer()
	p.conn.UngrabPointer()
	p.screen.RenderFrame()
	p.stopFrames()
}

// startFrames runs the overlay frame clock for the duration of a drag.
func (p *Plugin) startFrames() {
	if p.frameStop != nil {
		return
	}
	fps := p.dragCfg.OverlayFPS
	if fps <= 0 {
		fps = 60
	}
	stop := make(chan struct{})
	p.frameStop = stop

	go func() {
		ticker := time.NewTicker(time.Second / time.Duration(fps))
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.mu.Lock()
				if p.frameStop == stop {
					p.screen.RenderFrame()
				}
				p.mu.Unlock()
			case <-stop:
				return
			}
		}
	}()
}

func (p *Plugin) stopFrames() {
	if p.frameStop != nil {
		close(p.frameStop)
		p.frameStop = nil
	}
}
