package x11

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xcursor"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/wrensk/windrag/internal/drag"
	"github.com/wrensk/windrag/internal/geometry"
)

// Screen ties the X session together for the drag core: the monitor
// layout, the window registry, and the pointer cursor. Methods are not
// safe for concurrent use; the daemon serializes X event callbacks and
// frame ticks through one lock, which window lifecycle callbacks take via
// SetLocker.
type Screen struct {
	conn   *Connection
	logger *slog.Logger
	locker sync.Locker

	outputs    []*Output
	views      map[xproto.Window]*Window
	cursors    map[string]xproto.Cursor
	dimWindows bool
}

// NewScreen enumerates the monitor layout and prepares per-output ghosts.
func NewScreen(conn *Connection, logger *slog.Logger, dimWindows bool) (*Screen, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Screen{
		conn:       conn,
		logger:     logger,
		locker:     noopLocker{},
		views:      make(map[xproto.Window]*Window),
		cursors:    make(map[string]xproto.Cursor),
		dimWindows: dimWindows,
	}
	if err := s.RefreshOutputs(); err != nil {
		return nil, err
	}
	if len(s.outputs) == 0 {
		return nil, fmt.Errorf("no active monitors found")
	}
	return s, nil
}

// RefreshOutputs re-reads the RandR layout, updating changed outputs in
// place and dropping ones that disappeared. Existing drag hooks survive on
// outputs matched by name.
func (s *Screen) RefreshOutputs() error {
	monitors, err := s.conn.Monitors()
	if err != nil {
		return err
	}

	byName := make(map[string]*Output, len(s.outputs))
	for _, o := range s.outputs {
		byName[o.name] = o
	}

	next := make([]*Output, 0, len(monitors))
	for _, mon := range monitors {
		if existing, ok := byName[mon.Name]; ok {
			if existing.geom != mon.Geometry || existing.workArea != mon.WorkArea {
				s.logger.Info("output geometry changed", "output", mon.Name, "geometry", mon.Geometry)
				existing.setMonitor(mon)
			}
			delete(byName, mon.Name)
			next = append(next, existing)
			continue
		}
		s.logger.Info("output added", "output", mon.Name, "geometry", mon.Geometry)
		next = append(next, newOutput(mon, NewGhost(s.conn)))
	}

	for name, gone := range byName {
		s.logger.Info("output removed", "output", name)
		gone.destroy()
	}

	s.outputs = next
	return nil
}

// Outputs returns the current layout as drag outputs.
func (s *Screen) Outputs() []drag.Output {
	outs := make([]drag.Output, len(s.outputs))
	for i, o := range s.outputs {
		outs[i] = o
	}
	return outs
}

// OutputAt returns the output whose geometry contains p.
func (s *Screen) OutputAt(p geometry.Point) (drag.Output, bool) {
	for _, o := range s.outputs {
		if o.geom.Contains(p) {
			return o, true
		}
	}
	return nil, false
}

// FocusOutput acknowledges a cross-output hand-off. X11 has no per-monitor
// focus to move; the dragged window's output membership carries the real
// state, so the hand-off is only logged here.
func (s *Screen) FocusOutput(o drag.Output) {
	out, ok := o.(*Output)
	if !ok {
		return
	}
	s.logger.Debug("output focused", "output", out.name)
}

// SetCursor swaps the pointer image of the active grab. Unknown names fall
// back to the default arrow.
func (s *Screen) SetCursor(name string) {
	cursor, err := s.cursorFor(name)
	if err != nil {
		s.logger.Warn("cursor lookup failed", "cursor", name, "error", err)
		return
	}
	xproto.ChangeActivePointerGrab(s.conn.XUtil.Conn(), cursor, xproto.TimeCurrentTime, grabEventMask)
}

// GrabCursor returns the X cursor used when taking the drag grab.
func (s *Screen) GrabCursor(name string) xproto.Cursor {
	cursor, err := s.cursorFor(name)
	if err != nil {
		return xproto.CursorNone
	}
	return cursor
}

func (s *Screen) cursorFor(name string) (xproto.Cursor, error) {
	if cursor, ok := s.cursors[name]; ok {
		return cursor, nil
	}

	var id uint16
	switch name {
	case "grabbing":
		id = xcursor.Fleur
	default:
		id = xcursor.LeftPtr
	}
	cursor, err := xcursor.CreateCursor(s.conn.XUtil, id)
	if err != nil {
		return 0, err
	}
	s.cursors[name] = cursor
	return cursor, nil
}

// RenderFrame runs one overlay frame on every output.
func (s *Screen) RenderFrame() {
	for _, o := range s.outputs {
		o.frame()
	}
}

// View returns the tracked window for id, wiring unmap and destroy
// notifications on first sight.
func (s *Screen) View(id xproto.Window) *Window {
	if w, ok := s.views[id]; ok {
		return w
	}

	w := &Window{
		screen: s,
		id:     id,
		logger: s.logger,
		mapped: true,
	}
	if p, ok := s.OutputAt(w.Geometry().Center()); ok {
		w.output = p
	}

	if err := xwindow.New(s.conn.XUtil, id).Listen(xproto.EventMaskStructureNotify); err != nil {
		s.logger.Warn("structure notify listen failed", "window", id, "error", err)
	}
	xevent.UnmapNotifyFun(func(xu *xgbutil.XUtil, ev xevent.UnmapNotifyEvent) {
		s.locker.Lock()
		defer s.locker.Unlock()
		w.handleUnmapped()
	}).Connect(s.conn.XUtil, id)
	xevent.DestroyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.DestroyNotifyEvent) {
		s.locker.Lock()
		defer s.locker.Unlock()
		w.handleUnmapped()
		xevent.Detach(xu, id)
		delete(s.views, id)
	}).Connect(s.conn.XUtil, id)

	s.views[id] = w
	return w
}

// PruneViews drops tracked windows that no longer exist. Destroy events
// cover the normal path; this catches windows that vanished while their
// events were lost. Returns how many views were dropped.
func (s *Screen) PruneViews() int {
	pruned := 0
	for id, w := range s.views {
		if _, err := xproto.GetGeometry(s.conn.XUtil.Conn(), xproto.Drawable(id)).Reply(); err == nil {
			continue
		}
		s.logger.Info("pruning vanished window", "window", id)
		w.handleUnmapped()
		xevent.Detach(s.conn.XUtil, id)
		delete(s.views, id)
		pruned++
	}
	return pruned
}

// SetLocker installs the lock that window lifecycle callbacks take before
// touching shared state. The move plugin passes its own mutex so unmap
// notifications serialize with motion handling and frame ticks.
func (s *Screen) SetLocker(l sync.Locker) {
	if l == nil {
		l = noopLocker{}
	}
	s.locker = l
}

type noopLocker struct{}

func (noopLocker) Lock()   {}
func (noopLocker) Unlock() {}
