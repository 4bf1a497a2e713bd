package manager

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/ceramic/internal/wm"
	"github.com/1broseidon/ceramic/internal/xconn"
)

// display adapts an xconn.Conn to workspace.Display, translating between
// wm.WindowID and xproto.Window and masking protocol-reply failures with
// safe defaults (spec.md §7 kind 2).
type display struct {
	conn xconn.Conn
}

func newDisplay(conn xconn.Conn) *display { return &display{conn: conn} }

func (d *display) Geometry(w wm.WindowID) wm.Bounds {
	b, err := d.conn.Geometry(xproto.Window(w))
	if err != nil {
		return wm.Bounds{}
	}
	return b
}

// Configure applies a record's target bounds to the server. The record's
// bounds include the border frame, but an X window's configured size is
// its client area with the border drawn outside, so the border width is
// subtracted from each dimension (spec.md §4.2's "size with border
// subtraction").
func (d *display) Configure(w wm.WindowID, bounds wm.Bounds, borderWidth uint8, borderColor wm.Color) {
	d.conn.SetBackground(xproto.Window(w), borderColor)
	b := bounds
	inset := 2 * int(borderWidth)
	b.Width -= inset
	b.Height -= inset
	if b.Width < 1 {
		b.Width = 1
	}
	if b.Height < 1 {
		b.Height = 1
	}
	d.conn.ConfigureWindow(xproto.Window(w), b, borderWidth)
}

func (d *display) Restack(order []wm.WindowID) {
	for i := 1; i < len(order); i++ {
		d.conn.RestackAbove(xproto.Window(order[i]), xproto.Window(order[i-1]))
	}
}

func (d *display) Map(w wm.WindowID)   { d.conn.MapWindow(xproto.Window(w)) }
func (d *display) Unmap(w wm.WindowID) { d.conn.UnmapWindow(xproto.Window(w)) }

func (d *display) SetInputFocus(w wm.WindowID) { d.conn.SetInputFocus(xproto.Window(w)) }

func (d *display) SetActiveWindow(w wm.WindowID) {
	_ = d.conn.ChangeProperty32(d.conn.Root(), "_NET_ACTIVE_WINDOW", "WINDOW", uint32(w))
}

func (d *display) InputFocus() *wm.WindowID {
	return d.conn.InputFocus()
}
