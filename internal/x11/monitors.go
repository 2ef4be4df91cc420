package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/wrensk/windrag/internal/geometry"
)

// Monitor represents a physical display with its usable work area.
type Monitor struct {
	Name     string
	Geometry geometry.Rect
	WorkArea geometry.Rect
}

// Monitors retrieves all active monitors using XRandR. The work area of
// each monitor has panels and docks carved out.
func (c *Connection) Monitors() ([]Monitor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		// Skip disabled CRTCs
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		name := fmt.Sprintf("Monitor%d", i)
		if outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			name = string(outputInfo.Name)
		}

		geom := geometry.Rect{
			X:      int(crtcInfo.X),
			Y:      int(crtcInfo.Y),
			Width:  int(crtcInfo.Width),
			Height: int(crtcInfo.Height),
		}
		monitors = append(monitors, Monitor{
			Name:     name,
			Geometry: geom,
			WorkArea: c.workAreaFor(geom),
		})
	}

	return monitors, nil
}

// workAreaFor carves panels and docks out of a monitor rectangle. Dock
// struts are preferred; _NET_WORKAREA is the fallback for window managers
// that publish no struts.
func (c *Connection) workAreaFor(geom geometry.Rect) geometry.Rect {
	if wa, ok := c.strutWorkArea(geom); ok {
		return wa
	}

	workArea, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil || len(workArea) == 0 {
		return geom
	}
	desktopIndex := 0
	if currentDesktop, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil {
		if int(currentDesktop) >= 0 && int(currentDesktop) < len(workArea) {
			desktopIndex = int(currentDesktop)
		}
	}
	wa := workArea[desktopIndex]
	isect := geom.Intersect(geometry.Rect{
		X:      int(wa.X),
		Y:      int(wa.Y),
		Width:  int(wa.Width),
		Height: int(wa.Height),
	})
	if isect.IsEmpty() {
		return geom
	}
	return isect
}

// strutWorkArea shrinks geom by the struts of every dock window that
// overlaps it. Returns false when no dock claims any edge of this monitor.
func (c *Connection) strutWorkArea(geom geometry.Rect) (geometry.Rect, bool) {
	rootGeom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return geom, false
	}
	rootWidth := int(rootGeom.Width)
	rootHeight := int(rootGeom.Height)

	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return geom, false
	}

	var insets edgeInsets
	for _, windowID := range clients {
		types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
		if err != nil {
			continue
		}
		isDock := false
		for _, t := range types {
			if t == "_NET_WM_WINDOW_TYPE_DOCK" {
				isDock = true
				break
			}
		}
		if !isDock {
			continue
		}

		if sp, err := ewmh.WmStrutPartialGet(c.XUtil, windowID); err == nil {
			insets.accumulate(geom, rootWidth, rootHeight, sp)
			continue
		}

		// Some docks only set _NET_WM_STRUT (no partial ranges).
		if s, err := ewmh.WmStrutGet(c.XUtil, windowID); err == nil {
			insets.accumulate(geom, rootWidth, rootHeight, &ewmh.WmStrutPartial{
				Left:         s.Left,
				Right:        s.Right,
				Top:          s.Top,
				Bottom:       s.Bottom,
				LeftStartY:   0,
				LeftEndY:     uint(rootHeight - 1),
				RightStartY:  0,
				RightEndY:    uint(rootHeight - 1),
				TopStartX:    0,
				TopEndX:      uint(rootWidth - 1),
				BottomStartX: 0,
				BottomEndX:   uint(rootWidth - 1),
			})
		}
	}

	if insets == (edgeInsets{}) {
		return geom, false
	}
	return insets.apply(geom), true
}

// edgeInsets accumulates the worst-case strut on each monitor edge.
type edgeInsets struct {
	left   int
	right  int
	top    int
	bottom int
}

// accumulate intersects each strut band of sp with the monitor and keeps
// the deepest inset seen per edge.
func (in *edgeInsets) accumulate(geom geometry.Rect, rootWidth, rootHeight int, sp *ewmh.WmStrutPartial) {
	if sp.Top > 0 {
		band := geometry.Rect{
			X:      int(sp.TopStartX),
			Y:      0,
			Width:  int(sp.TopEndX) - int(sp.TopStartX) + 1,
			Height: int(sp.Top),
		}
		if isect := geom.Intersect(band); !isect.IsEmpty() {
			in.top = max(in.top, isect.Height)
		}
	}
	if sp.Bottom > 0 {
		band := geometry.Rect{
			X:      int(sp.BottomStartX),
			Y:      rootHeight - int(sp.Bottom),
			Width:  int(sp.BottomEndX) - int(sp.BottomStartX) + 1,
			Height: int(sp.Bottom),
		}
		if isect := geom.Intersect(band); !isect.IsEmpty() {
			in.bottom = max(in.bottom, isect.Height)
		}
	}
	if sp.Left > 0 {
		band := geometry.Rect{
			X:      0,
			Y:      int(sp.LeftStartY),
			Width:  int(sp.Left),
			Height: int(sp.LeftEndY) - int(sp.LeftStartY) + 1,
		}
		if isect := geom.Intersect(band); !isect.IsEmpty() {
			in.left = max(in.left, isect.Width)
		}
	}
	if sp.Right > 0 {
		band := geometry.Rect{
			X:      rootWidth - int(sp.Right),
			Y:      int(sp.RightStartY),
			Width:  int(sp.Right),
			Height: int(sp.RightEndY) - int(sp.RightStartY) + 1,
		}
		if isect := geom.Intersect(band); !isect.IsEmpty() {
			in.right = max(in.right, isect.Width)
		}
	}
}

// apply shrinks geom by the accumulated insets, never below 1x1.
func (in edgeInsets) apply(geom geometry.Rect) geometry.Rect {
	geom.X += in.left
	geom.Y += in.top
	geom.Width -= in.left + in.right
	geom.Height -= in.top + in.bottom
	if geom.Width < 1 {
		geom.Width = 1
	}
	if geom.Height < 1 {
		geom.Height = 1
	}
	return geom
}
