package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xprop"

	"github.com/wrensk/windrag/internal/geometry"
)

// Ghost styling
const (
	ghostFillColor   = 0x2c5d8f // muted blue fill
	ghostBorderColor = 0x3498db // bright blue outline
	ghostBorderWidth = 2
	ghostOpacity     = 0.35 // honored by compositing WMs only
)

// Ghost is a single override-redirect window standing in for the dragged
// window's scaled image on one output. Without a real compositor we cannot
// redraw the client's pixels, so the overlay shows a translucent stand-in
// rectangle instead.
type Ghost struct {
	conn    *Connection
	fill    uint32
	border  uint32
	window  xproto.Window
	created bool
	mapped  bool
}

// NewGhost creates the bookkeeping for one output's ghost. The X window is
// created lazily on first Show.
func NewGhost(conn *Connection) *Ghost {
	return NewGhostStyle(conn, ghostFillColor, ghostBorderColor)
}

// NewGhostStyle creates a ghost with custom colors, used for the snap
// preview rectangle.
func NewGhostStyle(conn *Connection, fill, border uint32) *Ghost {
	return &Ghost{conn: conn, fill: fill, border: border}
}

// Show moves the ghost to cover r (root coordinates) and maps it.
func (g *Ghost) Show(r geometry.Rect) {
	if !g.created {
		if err := g.create(); err != nil {
			return
		}
	}

	conn := g.conn.XUtil.Conn()

	// x/y place the outer edge, width/height exclude the border.
	w := r.Width - 2*ghostBorderWidth
	h := r.Height - 2*ghostBorderWidth
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	xproto.ConfigureWindow(
		conn,
		g.window,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight|xproto.ConfigWindowStackMode,
		[]uint32{
			uint32(r.X),
			uint32(r.Y),
			uint32(w),
			uint32(h),
			xproto.StackModeAbove, // Keep on top
		},
	)

	if !g.mapped {
		xproto.MapWindow(conn, g.window)
		g.mapped = true
	}
}

// Hide unmaps the ghost without destroying it.
func (g *Ghost) Hide() {
	if !g.mapped {
		return
	}
	xproto.UnmapWindow(g.conn.XUtil.Conn(), g.window)
	g.mapped = false
}

// Destroy releases the X window.
func (g *Ghost) Destroy() {
	if g.window != 0 {
		xproto.DestroyWindow(g.conn.XUtil.Conn(), g.window)
	}
	g.window = 0
	g.created = false
	g.mapped = false
}

// opacityProp scales a 0..1 fraction to the cardinal range of
// _NET_WM_WINDOW_OPACITY.
func opacityProp(frac float64) uint {
	return uint(frac * 0xffffffff)
}

// create builds the override-redirect window so the window manager never
// decorates or focuses it.
func (g *Ghost) create() error {
	conn := g.conn.XUtil.Conn()
	screen := g.conn.XUtil.Screen()

	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return err
	}

	err = xproto.CreateWindowChecked(
		conn,
		screen.RootDepth,
		wid,
		g.conn.Root,
		0, 0, // x, y (set on Show)
		1, 1, // width, height (set on Show)
		ghostBorderWidth,
		xproto.WindowClassInputOutput,
		screen.RootVisual,
		xproto.CwBackPixel|xproto.CwBorderPixel|xproto.CwOverrideRedirect,
		// Value list order follows the bit positions of the mask (low to high):
		// back_pixel, border_pixel, override_redirect.
		[]uint32{g.fill, g.border, 1},
	).Check()
	if err != nil {
		return err
	}

	// Compositing window managers honor this; bare ones ignore it and show
	// the ghost fully opaque.
	xprop.ChangeProp32(g.conn.XUtil, wid, "_NET_WM_WINDOW_OPACITY", "CARDINAL", opacityProp(ghostOpacity))

	g.window = wid
	g.created = true
	return nil
}
