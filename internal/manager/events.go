package manager

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/1broseidon/ceramic/internal/wm"
	"github.com/1broseidon/ceramic/internal/xconn"
)

// Attach wires every root-window event spec.md §4.3's default-mode
// dispatch table names onto the real xgbutil connection. It is a no-op
// against a fake Conn used in tests, which exercise dispatch logic
// directly instead.
func (m *WindowManager) Attach() {
	real, ok := m.conn.(*xconn.Connection)
	if !ok {
		return
	}
	xu := real.XUtil
	root := real.Root()

	xevent.MapRequestFun(func(xu *xgbutil.XUtil, ev xevent.MapRequestEvent) {
		xproto.MapWindow(xu.Conn(), ev.Window)
	}).Connect(xu, root)

	xevent.MapNotifyFun(func(xu *xgbutil.XUtil, ev xevent.MapNotifyEvent) {
		window := wm.WindowID(ev.Window)
		if _, isDecoration := m.decorations[ev.Window]; isDecoration {
			return
		}
		m.Absorb(window)
		m.RelayoutCurrent()
	}).Connect(xu, root)

	xevent.UnmapNotifyFun(func(xu *xgbutil.XUtil, ev xevent.UnmapNotifyEvent) {
		window := wm.WindowID(ev.Window)
		if name, ok := m.owner[window]; ok {
			ws := m.workspaces[name]
			ws.RemoveWindow(window, false)
			// A hidden workspace keeps its records across the unmaps its
			// own Hide issued; ownership only ends when the record is gone.
			if !ws.Contains(window) {
				m.unregisterGrabs(window)
				delete(m.owner, window)
			}
		}
		delete(m.unmanaged, window)
		m.RelayoutCurrent()
	}).Connect(xu, root)

	xevent.DestroyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.DestroyNotifyEvent) {
		window := wm.WindowID(ev.Window)
		for _, ws := range m.workspaces {
			ws.RemoveWindow(window, true)
		}
		delete(m.owner, window)
		delete(m.unmanaged, window)
		delete(m.titleCache, window)
		m.RelayoutCurrent()
	}).Connect(xu, root)

	xevent.ConfigureRequestFun(func(xu *xgbutil.XUtil, ev xevent.ConfigureRequestEvent) {
		window := wm.WindowID(ev.Window)
		var x, y, width, height *int
		if ev.ValueMask&xproto.ConfigWindowX != 0 {
			v := int(ev.X)
			x = &v
		}
		if ev.ValueMask&xproto.ConfigWindowY != 0 {
			v := int(ev.Y)
			y = &v
		}
		if ev.ValueMask&xproto.ConfigWindowWidth != 0 {
			v := int(ev.Width)
			width = &v
		}
		if ev.ValueMask&xproto.ConfigWindowHeight != 0 {
			v := int(ev.Height)
			height = &v
		}
		for _, ws := range m.workspaces {
			ws.RequestConfigure(window, x, y, width, height)
		}
	}).Connect(xu, root)

	xevent.PropertyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.PropertyNotifyEvent) {
		commandAtom, err := m.conn.Atom("CERAMIC_COMMAND")
		if err != nil || ev.Atom != commandAtom {
			return
		}
		// One request reads the command and deletes the property, so a
		// command written between a read and a separate delete cannot be
		// dropped.
		reply, err := m.conn.TakeProperty(ev.Window, "CERAMIC_COMMAND")
		if err != nil {
			return
		}
		m.DispatchCommandLine(string(reply.Value))
	}).Connect(xu, root)

	xevent.KeyPressFun(m.handleSelectorKeyPress).Connect(xu, root)
	xevent.KeyReleaseFun(m.handleSelectorKeyRelease).Connect(xu, root)

	xevent.ExposeFun(func(xu *xgbutil.XUtil, ev xevent.ExposeEvent) {
		if ev.Count != 0 {
			return
		}
		artist, ok := m.decorations[ev.Window]
		if !ok {
			return
		}
		m.paintDecoration(ev.Window, artist)
	}).Connect(xu, root)
}
