package x11

import (
	"log/slog"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xprop"

	"github.com/wrensk/windrag/internal/drag"
	"github.com/wrensk/windrag/internal/events"
	"github.com/wrensk/windrag/internal/geometry"
)

// Dim level for a window whose ghost is being shown.
const dimOpacity = 0.4

// tiledEdgesProp remembers which edges a window was snapped to across
// moves, since EWMH has no state for half and quarter tiling.
const tiledEdgesProp = "_WINDRAG_TILED_EDGES"

// Window adapts one X client window to the drag core's view capability.
// Instances are created and tracked by the Screen; all methods must run on
// the daemon's event goroutine.
type Window struct {
	screen *Screen
	id     xproto.Window
	logger *slog.Logger

	transforms drag.TransformStack
	output     drag.Output
	mapped     bool
	unmapped   events.Signal[struct{}]

	lastGeom   geometry.Rect
	tiledEdges drag.Edges
	tiledKnown bool
}

func (w *Window) ID() uint32 { return uint32(w.id) }

// Geometry returns the window's rectangle in root coordinates. When the
// server round trip fails the last known geometry is returned, so a drag
// never sees the window jump to the origin.
func (w *Window) Geometry() geometry.Rect {
	geom, err := w.screen.conn.WindowGeometry(w.id)
	if err != nil {
		w.logger.Warn("window geometry query failed", "window", w.id, "error", err)
		return w.lastGeom
	}
	w.lastGeom = geom
	return geom
}

// BoundingBox returns the on-screen rectangle with installed transforms
// applied.
func (w *Window) BoundingBox() geometry.Rect {
	return w.transforms.BoundingBox(w.Geometry())
}

// Move places the window's top-left corner.
func (w *Window) Move(x, y int) {
	if err := w.screen.conn.MoveWindow(w.id, x, y); err != nil {
		w.logger.Warn("window move failed", "window", w.id, "error", err)
	}
}

// SetVisible dims the window while hidden instead of unmapping it: the
// real client stays where the drag started and the ghost shows the scaled
// image, so unmapping would read as the window disappearing.
func (w *Window) SetVisible(visible bool) {
	if !w.screen.dimWindows {
		return
	}
	xu := w.screen.conn.XUtil
	if visible {
		atom, err := xprop.Atm(xu, "_NET_WM_WINDOW_OPACITY")
		if err != nil {
			return
		}
		xproto.DeleteProperty(xu.Conn(), w.id, atom)
		return
	}
	xprop.ChangeProp32(xu, w.id, "_NET_WM_WINDOW_OPACITY", "CARDINAL", opacityProp(dimOpacity))
}

// Damage marks the window's bounding box dirty on every output it touches.
func (w *Window) Damage() {
	bbox := w.BoundingBox()
	for _, o := range w.screen.outputs {
		origin := o.Geometry().Origin()
		o.Damage(bbox.Translate(-origin.X, -origin.Y))
	}
}

func (w *Window) Mapped() bool { return w.mapped }

func (w *Window) Output() drag.Output { return w.output }

func (w *Window) SetOutput(o drag.Output) {
	w.output = o
	if o != nil {
		w.logger.Debug("window output changed", "window", w.id, "output", o.Name())
	}
}

func (w *Window) AddTransform(name string, t drag.Transform) {
	w.transforms.Add(name, t)
}

func (w *Window) RemoveTransform(name string) {
	w.transforms.Remove(name)
}

func (w *Window) Transform(name string) drag.Transform {
	return w.transforms.Get(name)
}

// RenderTransformed draws the window through its transform stack into fb.
func (w *Window) RenderTransformed(fb drag.Framebuffer, damage []geometry.Rect) {
	geom := w.Geometry()
	w.transforms.Render(windowTexture{size: geom.Dimensions()}, geom, damage, fb)
}

// TiledEdges reports which screen edges the window is snapped to. The
// state lives in a window property so it survives daemon restarts; windows
// maximized by other means read as tiled on all edges.
func (w *Window) TiledEdges() drag.Edges {
	if w.tiledKnown {
		return w.tiledEdges
	}
	w.tiledKnown = true
	w.tiledEdges = drag.EdgeNone

	xu := w.screen.conn.XUtil
	if prop, err := xprop.GetProperty(xu, w.id, tiledEdgesProp); err == nil && prop != nil {
		if num, err := xprop.PropValNum(prop, nil); err == nil {
			w.tiledEdges = drag.Edges(num)
			return w.tiledEdges
		}
	}

	if states, err := ewmh.WmStateGet(xu, w.id); err == nil {
		horz, vert := false, false
		for _, s := range states {
			switch s {
			case "_NET_WM_STATE_MAXIMIZED_HORZ":
				horz = true
			case "_NET_WM_STATE_MAXIMIZED_VERT":
				vert = true
			}
		}
		if horz && vert {
			w.tiledEdges = drag.EdgesAll
		}
	}
	return w.tiledEdges
}

// SetTiled records new edge state and applies the EWMH states that have a
// direct mapping: all edges maximizes, none restores.
func (w *Window) SetTiled(edges drag.Edges) {
	w.tiledEdges = edges
	w.tiledKnown = true
	xprop.ChangeProp32(w.screen.conn.XUtil, w.id, tiledEdgesProp, "CARDINAL", uint(edges))

	switch edges {
	case drag.EdgesAll:
		if err := w.screen.conn.MaximizeWindow(w.id); err != nil {
			w.logger.Warn("maximize failed", "window", w.id, "error", err)
		}
	case drag.EdgeNone:
		if err := w.screen.conn.unmaximizeWindow(w.id); err != nil {
			w.logger.Warn("unmaximize failed", "window", w.id, "error", err)
		}
	}
}

func (w *Window) Fullscreen() bool {
	states, err := ewmh.WmStateGet(w.screen.conn.XUtil, w.id)
	if err != nil {
		return false
	}
	for _, s := range states {
		if s == "_NET_WM_STATE_FULLSCREEN" {
			return true
		}
	}
	return false
}

func (w *Window) SetFullscreen(full bool) {
	action := 0
	if full {
		action = 1
	}
	if err := ewmh.WmStateReq(w.screen.conn.XUtil, w.id, action, "_NET_WM_STATE_FULLSCREEN"); err != nil {
		w.logger.Warn("fullscreen request failed", "window", w.id, "full", full, "error", err)
	}
}

// OnUnmap registers fn to run when the window unmaps or is destroyed.
func (w *Window) OnUnmap(fn func()) func() {
	return w.unmapped.Subscribe(func(struct{}) { fn() })
}

// handleUnmapped is called by the Screen's event wiring.
func (w *Window) handleUnmapped() {
	if !w.mapped {
		return
	}
	w.mapped = false
	w.unmapped.Emit(struct{}{})
}

// windowTexture stands in for the window's rendered content; only its size
// participates in overlay geometry.
type windowTexture struct {
	size geometry.Size
}

func (t windowTexture) Size() geometry.Size { return t.size }
