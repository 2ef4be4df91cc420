package move

import (
	"fmt"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/wrensk/windrag/internal/geometry"
)

var ignoreModsOnce sync.Once

// bindActivateKey installs the keyboard activation grab, if configured.
func (p *Plugin) bindActivateKey() error {
	if p.moveCfg.ActivateKey == "" {
		return nil
	}
	err := keybind.KeyPressFun(p.onActivateKey).Connect(
		p.conn.XUtil, p.conn.Root, p.moveCfg.ActivateKey, true)
	if err != nil {
		return fmt.Errorf("failed to bind %q: %w", p.moveCfg.ActivateKey, err)
	}
	return nil
}

// onActivateKey starts a drag of the focused window from the keyboard.
// The window centers under the pointer and follows it; a click drops it.
func (p *Plugin) onActivateKey(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.core.Active() {
		return
	}

	target, err := p.conn.GetActiveWindow()
	if err != nil {
		p.logger.Warn("active window query failed", "error", err)
		return
	}
	if target == 0 {
		p.logger.Debug("no focused window to drag")
		return
	}
	view := p.screen.View(target)

	pos, err := p.conn.QueryPointer()
	if err != nil {
		p.logger.Warn("pointer query failed", "error", err)
		return
	}

	p.startSession(func() {
		p.core.StartDragRelative(view, pos, geometry.PointF{X: 0.5, Y: 0.5}, p.dragOptions(view))
	})
}

// configureIgnoreMods widens xgbutil's grab modifier handling so bindings
// fire regardless of the CapsLock, NumLock and ScrollLock state. xgbutil
// grabs each listed combination alongside the requested modifiers.
func configureIgnoreMods(xu *xgbutil.XUtil) {
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	unique := make(map[uint16]struct{})
	add := func(mask uint16) {
		unique[mask] = struct{}{}
	}

	add(0)
	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	// Every subset of the lock masks needs its own grab.
	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		add(mask)
	}

	ignore := make([]uint16, 0, len(unique))
	for mask := range unique {
		ignore = append(ignore, mask)
	}

	xevent.IgnoreMods = ignore
}

// modMaskForKeysym returns the modifier mask a keysym is mapped to, or 0
// when it is not a modifier on this keyboard.
func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
