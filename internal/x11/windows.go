package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/wrensk/windrag/internal/geometry"
)

// WindowInfo describes one managed client window.
type WindowInfo struct {
	ID       uint32
	Title    string
	Class    string
	Desktop  int
	Geometry geometry.Rect
}

// MoveResizeWindow moves and resizes a window to the specified geometry
func (c *Connection) MoveResizeWindow(windowID xproto.Window, r geometry.Rect) error {
	// First, check if window is maximized and unmaximize it
	if err := c.unmaximizeWindow(windowID); err != nil {
		// Log but don't fail - some windows might not support this
	}

	win := xwindow.New(c.XUtil, windowID)

	// Use EWMH MoveResize for better WM compatibility
	err := ewmh.MoveresizeWindow(c.XUtil, windowID, r.X, r.Y, r.Width, r.Height)
	if err != nil {
		// Fallback to direct window manipulation
		win.MoveResize(r.X, r.Y, r.Width, r.Height)
		return nil
	}

	return nil
}

// MoveWindow moves a window without changing its size.
func (c *Connection) MoveWindow(windowID xproto.Window, x, y int) error {
	geom, err := c.WindowGeometry(windowID)
	if err != nil {
		return err
	}
	return c.MoveResizeWindow(windowID, geometry.Rect{X: x, Y: y, Width: geom.Width, Height: geom.Height})
}

// WindowGeometry returns a window's rectangle in root coordinates.
func (c *Connection) WindowGeometry(windowID xproto.Window) (geometry.Rect, error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return geometry.Rect{}, err
	}
	translate, err := xproto.TranslateCoordinates(c.XUtil.Conn(), windowID, c.Root, 0, 0).Reply()
	if err != nil {
		return geometry.Rect{}, err
	}
	return geometry.Rect{
		X:      int(translate.DstX),
		Y:      int(translate.DstY),
		Width:  int(geom.Width),
		Height: int(geom.Height),
	}, nil
}

// unmaximizeWindow removes maximized state from a window
func (c *Connection) unmaximizeWindow(windowID xproto.Window) error {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return err
	}

	hasMaxH := false
	hasMaxV := false
	for _, state := range states {
		if state == "_NET_WM_STATE_MAXIMIZED_HORZ" {
			hasMaxH = true
		}
		if state == "_NET_WM_STATE_MAXIMIZED_VERT" {
			hasMaxV = true
		}
	}

	if hasMaxH {
		ewmh.WmStateReq(c.XUtil, windowID, 0, "_NET_WM_STATE_MAXIMIZED_HORZ")
	}
	if hasMaxV {
		ewmh.WmStateReq(c.XUtil, windowID, 0, "_NET_WM_STATE_MAXIMIZED_VERT")
	}
	return nil
}

// MaximizeWindow adds both maximized states to a window.
func (c *Connection) MaximizeWindow(windowID xproto.Window) error {
	if err := ewmh.WmStateReq(c.XUtil, windowID, 1, "_NET_WM_STATE_MAXIMIZED_HORZ"); err != nil {
		return err
	}
	return ewmh.WmStateReq(c.XUtil, windowID, 1, "_NET_WM_STATE_MAXIMIZED_VERT")
}

// IsNormalWindow checks if a window is a normal application window
func (c *Connection) IsNormalWindow(windowID xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		// If we can't determine type, assume it's normal
		return true
	}

	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_NORMAL" {
			return true
		}
		// Reject desktop, dock, splash, etc.
		if t == "_NET_WM_WINDOW_TYPE_DESKTOP" ||
			t == "_NET_WM_WINDOW_TYPE_DOCK" ||
			t == "_NET_WM_WINDOW_TYPE_SPLASH" ||
			t == "_NET_WM_WINDOW_TYPE_NOTIFICATION" {
			return false
		}
	}

	// If no specific type is set, assume it's normal
	return len(types) == 0
}

// GetActiveWindow returns the currently focused client window.
func (c *Connection) GetActiveWindow() (xproto.Window, error) {
	return ewmh.ActiveWindowGet(c.XUtil)
}

// ListWindows returns every normal client window with its title, class,
// desktop, and geometry. Windows whose geometry cannot be read are skipped.
func (c *Connection) ListWindows() ([]WindowInfo, error) {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return nil, err
	}

	infos := make([]WindowInfo, 0, len(clients))
	for _, win := range clients {
		if !c.IsNormalWindow(win) {
			continue
		}
		geom, err := c.WindowGeometry(win)
		if err != nil {
			continue
		}

		info := WindowInfo{ID: uint32(win), Geometry: geom}
		if name, err := ewmh.WmNameGet(c.XUtil, win); err == nil {
			info.Title = name
		}
		if class, err := icccm.WmClassGet(c.XUtil, win); err == nil && class != nil {
			info.Class = class.Class
		}
		if desktop, err := c.GetWindowDesktop(uint32(win)); err == nil {
			info.Desktop = desktop
		}
		infos = append(infos, info)
	}
	return infos, nil
}
