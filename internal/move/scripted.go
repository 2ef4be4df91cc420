package move

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/wrensk/windrag/internal/drag"
	"github.com/wrensk/windrag/internal/geometry"
)

// ScriptedMove drags a window to target through a complete core session,
// so programmatic moves take the same start, motion and drop path as
// interactive ones. The session runs synchronously; snapping and snap-off
// do not apply.
func (p *Plugin) ScriptedMove(windowID uint32, target geometry.Point) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.core.Active() {
		return fmt.Errorf("a drag is already in progress")
	}

	view := p.screen.View(xproto.Window(windowID))
	if !view.Mapped() {
		return fmt.Errorf("window 0x%08x is not mapped", windowID)
	}

	grab := view.Geometry().Center()
	p.core.StartDrag(view, grab, drag.Options{InitialScale: 1})
	if !p.core.Active() {
		return fmt.Errorf("window 0x%08x cannot be dragged", windowID)
	}

	p.dragging = true
	p.slot = SlotNone
	p.core.HandleMotion(target)
	p.core.HandleInputReleased()
	return nil
}
