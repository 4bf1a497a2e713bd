// Package xconn is the process-wide display-server connection described
// in spec.md §9: opened once by main through Connect, wrapping the X11 core
// protocol plus the EWMH/ICCCM atom set, exposing only the narrow surface
// the rest of ceramic actually calls (intern_atom, get_property,
// change_property, get_geometry, configure_window, map/unmap,
// grab/ungrab_keyboard, wait_for_event, flush, generate_id).
//
// Grounded on the teacher's internal/x11/connection.go (xgbutil.NewConn +
// keybind.Initialize) and internal/x11/windows.go /
// internal/movemode/overlay.go (raw xproto.ConfigureWindow /
// CreateWindowChecked / ChangeWindowAttributes calls used where the
// higher-level ewmh helpers don't fit).
package xconn

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/1broseidon/ceramic/internal/wm"
)

// Conn is the narrow display-server surface the manager and workspace
// layers depend on, so tests can substitute a recording fake instead of
// a live X11 connection (spec.md §9).
type Conn interface {
	Atom(name string) (xproto.Atom, error)
	GetProperty(win xproto.Window, atom string) (*xproto.GetPropertyReply, error)
	// TakeProperty reads and deletes a property in a single request (the
	// GetProperty delete flag), so a value written right after the read
	// cannot be lost to a separate delete.
	TakeProperty(win xproto.Window, atom string) (*xproto.GetPropertyReply, error)
	ChangeProperty32(win xproto.Window, prop, typ string, data ...uint32) error
	ChangeProperty8(win xproto.Window, prop, typ string, data []byte) error
	Geometry(win xproto.Window) (wm.Bounds, error)
	ConfigureWindow(win xproto.Window, bounds wm.Bounds, borderWidth uint8)
	// RestackAbove places win directly above sibling in the stacking
	// order, the per-pair step of spec.md §4.2's restack pass.
	RestackAbove(win, sibling xproto.Window)
	SetBackground(win xproto.Window, color wm.Color)
	MapWindow(win xproto.Window)
	UnmapWindow(win xproto.Window)
	DestroyWindow(win xproto.Window)
	CreateOverrideRedirectWindow(bounds wm.Bounds) (xproto.Window, error)
	SetInputFocus(win xproto.Window)
	// InputFocus reports the server's current input-focus window, or nil
	// on a protocol-reply failure (spec.md §7 kind 2).
	InputFocus() *wm.WindowID
	GrabKeyboard(grabWindow xproto.Window) error
	UngrabKeyboard()
	GenerateID() (xproto.Window, error)
	Flush()
	Root() xproto.Window
}

// Connection is the real Conn implementation, a thin wrapper over an
// xgbutil.XUtil. main constructs it once per process and closes it only
// when the event loop has ended, in line with spec.md §5's "process-wide
// single instance" resource model.
type Connection struct {
	XUtil *xgbutil.XUtil
	root  xproto.Window
}

// Connect opens the display connection and initializes the keybind
// module, following the teacher's internal/x11/connection.go NewConnection.
func Connect() (*Connection, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X11 display: %w", err)
	}
	keybind.Initialize(xu)
	return &Connection{XUtil: xu, root: xu.RootWin()}, nil
}

func (c *Connection) Root() xproto.Window { return c.root }

func (c *Connection) Atom(name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(c.XUtil.Conn(), false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("intern atom %s: %w", name, err)
	}
	return reply.Atom, nil
}

func (c *Connection) GetProperty(win xproto.Window, atom string) (*xproto.GetPropertyReply, error) {
	return c.getProperty(win, atom, false)
}

func (c *Connection) TakeProperty(win xproto.Window, atom string) (*xproto.GetPropertyReply, error) {
	return c.getProperty(win, atom, true)
}

func (c *Connection) getProperty(win xproto.Window, atom string, del bool) (*xproto.GetPropertyReply, error) {
	atomID, err := c.Atom(atom)
	if err != nil {
		return nil, err
	}
	reply, err := xproto.GetProperty(c.XUtil.Conn(), del, win, atomID,
		xproto.GetPropertyTypeAny, 0, (1<<32)-1).Reply()
	if err != nil {
		return nil, fmt.Errorf("get property %s on %d: %w", atom, win, err)
	}
	return reply, nil
}

func (c *Connection) ChangeProperty32(win xproto.Window, prop, typ string, data ...uint32) error {
	propAtom, err := c.Atom(prop)
	if err != nil {
		return err
	}
	typAtom, err := c.Atom(typ)
	if err != nil {
		return err
	}
	buf := make([]byte, len(data)*4)
	for i, d := range data {
		xgb.Put32(buf[i*4:], d)
	}
	return xproto.ChangePropertyChecked(c.XUtil.Conn(), xproto.PropModeReplace,
		win, propAtom, typAtom, 32, uint32(len(data)), buf).Check()
}

func (c *Connection) ChangeProperty8(win xproto.Window, prop, typ string, data []byte) error {
	propAtom, err := c.Atom(prop)
	if err != nil {
		return err
	}
	typAtom, err := c.Atom(typ)
	if err != nil {
		return err
	}
	return xproto.ChangePropertyChecked(c.XUtil.Conn(), xproto.PropModeReplace,
		win, propAtom, typAtom, 8, uint32(len(data)), data).Check()
}

// Geometry reads a window's server-side geometry. On a reply failure (§7
// kind 2) it returns a zero Bounds together with the error; callers such
// as the manager's display adapter mask it.
func (c *Connection) Geometry(win xproto.Window) (wm.Bounds, error) {
	reply, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(win)).Reply()
	if err != nil {
		return wm.Bounds{}, fmt.Errorf("get geometry of %d: %w", win, err)
	}
	return wm.Bounds{
		X: int(reply.X), Y: int(reply.Y),
		Width: int(reply.Width), Height: int(reply.Height),
	}, nil
}

func (c *Connection) ConfigureWindow(win xproto.Window, bounds wm.Bounds, borderWidth uint8) {
	mask := xproto.ConfigWindowX | xproto.ConfigWindowY |
		xproto.ConfigWindowWidth | xproto.ConfigWindowHeight |
		xproto.ConfigWindowBorderWidth
	values := []uint32{
		uint32(bounds.X), uint32(bounds.Y),
		uint32(bounds.Width), uint32(bounds.Height),
		uint32(borderWidth),
	}
	xproto.ConfigureWindow(c.XUtil.Conn(), win, uint16(mask), values)
}

func (c *Connection) RestackAbove(win, sibling xproto.Window) {
	xproto.ConfigureWindow(c.XUtil.Conn(), win,
		xproto.ConfigWindowSibling|xproto.ConfigWindowStackMode,
		[]uint32{uint32(sibling), xproto.StackModeAbove})
}

func (c *Connection) SetBackground(win xproto.Window, color wm.Color) {
	pixel := uint32(color.R)<<16 | uint32(color.G)<<8 | uint32(color.B)
	xproto.ChangeWindowAttributes(c.XUtil.Conn(), win, xproto.CwBackPixel, []uint32{pixel})
	xproto.ClearArea(c.XUtil.Conn(), false, win, 0, 0, 0, 0)
}

func (c *Connection) MapWindow(win xproto.Window)     { xproto.MapWindow(c.XUtil.Conn(), win) }
func (c *Connection) UnmapWindow(win xproto.Window)   { xproto.UnmapWindow(c.XUtil.Conn(), win) }
func (c *Connection) DestroyWindow(win xproto.Window) { xproto.DestroyWindow(c.XUtil.Conn(), win) }

// CreateOverrideRedirectWindow creates an input-output window that
// bypasses window-manager placement, used for decoration windows. The
// override-redirect flag keeps the manager's own substructure redirect
// from intercepting it.
func (c *Connection) CreateOverrideRedirectWindow(bounds wm.Bounds) (xproto.Window, error) {
	w, h := bounds.Width, bounds.Height
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	win, err := xwindow.Generate(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("allocate window id: %w", err)
	}
	if err := win.CreateChecked(c.root, bounds.X, bounds.Y, w, h,
		xproto.CwOverrideRedirect|xproto.CwEventMask,
		1, uint32(xproto.EventMaskExposure),
	); err != nil {
		return 0, fmt.Errorf("create decoration window: %w", err)
	}
	return win.Id, nil
}

func (c *Connection) SetInputFocus(win xproto.Window) {
	xproto.SetInputFocus(c.XUtil.Conn(), xproto.InputFocusPointerRoot, win, xproto.TimeCurrentTime)
}

func (c *Connection) InputFocus() *wm.WindowID {
	reply, err := xproto.GetInputFocus(c.XUtil.Conn()).Reply()
	if err != nil || reply == nil {
		return nil
	}
	w := wm.WindowID(reply.Focus)
	return &w
}

// GrabKeyboard grabs the keyboard for grabWindow, retrying once if the
// grab was already held by this client, mirroring
// internal/movemode/movemode.go's grabKeyboard.
func (c *Connection) GrabKeyboard(grabWindow xproto.Window) error {
	grab := func() (*xproto.GrabKeyboardReply, error) {
		return xproto.GrabKeyboard(c.XUtil.Conn(), false, grabWindow,
			xproto.TimeCurrentTime, xproto.GrabModeAsync, xproto.GrabModeAsync).Reply()
	}

	reply, err := grab()
	if err != nil {
		return fmt.Errorf("grab keyboard: %w", err)
	}
	if reply.Status == xproto.GrabStatusAlreadyGrabbed {
		xproto.UngrabKeyboard(c.XUtil.Conn(), xproto.TimeCurrentTime)
		reply, err = grab()
		if err != nil {
			return fmt.Errorf("grab keyboard (retry): %w", err)
		}
	}
	if reply.Status != xproto.GrabStatusSuccess {
		return fmt.Errorf("keyboard grab failed with status %d", reply.Status)
	}
	xevent.RedirectKeyEvents(c.XUtil, grabWindow)
	return nil
}

func (c *Connection) UngrabKeyboard() {
	xproto.UngrabKeyboard(c.XUtil.Conn(), xproto.TimeCurrentTime)
	xevent.RedirectKeyEvents(c.XUtil, 0)
}

func (c *Connection) GenerateID() (xproto.Window, error) {
	wid, err := xproto.NewWindowId(c.XUtil.Conn())
	if err != nil {
		return 0, fmt.Errorf("generate window id: %w", err)
	}
	return wid, nil
}

func (c *Connection) Flush() { c.XUtil.Sync() }

// EventLoop runs the single cooperative event dispatcher (spec.md §5).
// It never returns until a handler calls xevent.Quit, which the manager
// does in response to the "quit" command.
func (c *Connection) EventLoop() { xevent.Main(c.XUtil) }

// Quit breaks the outer event loop.
func (c *Connection) Quit() { xevent.Quit(c.XUtil) }

// Close releases the underlying socket. main defers it, so it runs only
// as run returns, after the event loop has ended or startup has failed.
func (c *Connection) Close() { c.XUtil.Conn().Close() }
