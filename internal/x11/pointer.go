package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/wrensk/windrag/internal/geometry"
)

// Event mask shared by the drag grab and later cursor changes; the two
// must agree or ChangeActivePointerGrab drops events.
const grabEventMask = xproto.EventMaskPointerMotion |
	xproto.EventMaskButtonRelease |
	xproto.EventMaskButtonPress

// GrabPointer takes an active pointer grab on the root window so motion
// and release events keep flowing for the whole drag, wherever the
// pointer goes.
func (c *Connection) GrabPointer(cursor xproto.Cursor) error {
	grab := func() (*xproto.GrabPointerReply, error) {
		cookie := xproto.GrabPointer(
			c.XUtil.Conn(),
			false,  // owner_events (report events to grab_window)
			c.Root, // grab_window
			grabEventMask,
			xproto.GrabModeAsync, // pointer_mode
			xproto.GrabModeAsync, // keyboard_mode
			xproto.WindowNone,    // confine_to (pointer roams all outputs)
			cursor,
			xproto.TimeCurrentTime,
		)
		return cookie.Reply()
	}

	reply, err := grab()
	if err != nil {
		return err
	}

	// When the drag starts from a passive button grab, the pointer is
	// already grabbed by this client. Ungrab and retry.
	if reply.Status == xproto.GrabStatusAlreadyGrabbed {
		xproto.UngrabPointer(c.XUtil.Conn(), xproto.TimeCurrentTime)
		reply, err = grab()
		if err != nil {
			return err
		}
	}

	if reply.Status != xproto.GrabStatusSuccess {
		return fmt.Errorf("pointer grab failed with status %d", reply.Status)
	}
	return nil
}

// UngrabPointer releases the active pointer grab.
func (c *Connection) UngrabPointer() {
	xproto.UngrabPointer(c.XUtil.Conn(), xproto.TimeCurrentTime)
}

// QueryPointer returns the pointer position in root coordinates.
func (c *Connection) QueryPointer() (geometry.Point, error) {
	reply, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return geometry.Point{}, err
	}
	return geometry.Point{X: int(reply.RootX), Y: int(reply.RootY)}, nil
}

// WindowAtPointer returns the managed client window under the pointer, or
// 0 when the pointer is over the desktop. The query walks the EWMH client
// list because QueryPointer's child may be a WM frame window.
func (c *Connection) WindowAtPointer() (xproto.Window, error) {
	p, err := c.QueryPointer()
	if err != nil {
		return 0, err
	}

	windows, err := c.ListWindows()
	if err != nil {
		return 0, err
	}

	// Client list is bottom-to-top; the last hit is the topmost window.
	var found xproto.Window
	for _, info := range windows {
		if info.Geometry.Contains(p) {
			found = xproto.Window(info.ID)
		}
	}
	return found, nil
}
