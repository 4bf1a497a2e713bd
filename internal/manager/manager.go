// Package manager implements the WindowManager component of spec.md
// §4.3: it owns every Workspace, the decoration-window pool, drives the
// single-threaded event loop and its three nested modes (default,
// move/resize drag, keyboard-grab label selection), and parses commands
// written into the CERAMIC_COMMAND root-window property.
//
// Grounded on the teacher's internal/hotkeys/handler.go (global-grab
// registration against an xgbutil.XUtil + root window pair) and
// internal/movemode/movemode.go (the grabbed-keyboard nested-loop
// pattern, ensureGrabWindow, IgnoreMods setup) generalized from a
// terminal-grid tiler's move-mode state machine to a general window
// manager's move/resize/select loops.
package manager

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"

	"github.com/1broseidon/ceramic/internal/config"
	"github.com/1broseidon/ceramic/internal/wm"
	"github.com/1broseidon/ceramic/internal/workspace"
	"github.com/1broseidon/ceramic/internal/xconn"
)

// WindowManager is the top-level owner described in spec.md §2's
// component table: workspaces, the decoration-window pool, and the
// command dispatcher.
type WindowManager struct {
	conn     xconn.Conn
	display  *display
	provider config.Provider
	logger   *slog.Logger

	workspaceOrder []string
	workspaces     map[string]*workspace.Workspace
	current        *workspace.Workspace

	// owner tracks which workspace a managed window belongs to, so
	// unmap/destroy notifications and move_focused_window_to_workspace_named
	// can find it without scanning every workspace.
	owner map[wm.WindowID]string

	unmanaged map[wm.WindowID]wm.Record

	decorations map[xproto.Window]wm.Artist

	drag     *dragState
	selector *selectorState

	titleCache map[wm.WindowID]string
}

// New constructs a WindowManager from a live connection and
// configuration provider, but does not yet acquire the root window or
// build workspaces; Init builds them, xconn.Startup acquires the root.
func New(conn xconn.Conn, provider config.Provider, logger *slog.Logger) *WindowManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &WindowManager{
		conn:        conn,
		display:     newDisplay(conn),
		provider:    provider,
		logger:      logger,
		workspaces:  map[string]*workspace.Workspace{},
		owner:       map[wm.WindowID]string{},
		unmanaged:   map[wm.WindowID]wm.Record{},
		decorations: map[xproto.Window]wm.Artist{},
		titleCache:  map[wm.WindowID]string{},
	}
}

// Init builds every workspace from the configuration provider and shows
// the first one. It does not touch the display server's root-window
// grab; callers on a real connection call Init first and only then
// xconn.Startup (spec.md §4.3's "install substructure redirect...
// publish check window" step), so configuration errors surface before
// the WM commits to owning the display.
func (m *WindowManager) Init() error {
	specs, err := m.provider.Workspaces()
	if err != nil {
		return fmt.Errorf("load workspace configuration: %w", err)
	}
	workspaceSpecs, err := buildWorkspaceSpecs(specs, m.display.Geometry, m.windowTitle)
	if err != nil {
		return err
	}
	for _, spec := range workspaceSpecs {
		ws, err := workspace.New(spec, m.display, m.logger)
		if err != nil {
			return err
		}
		m.workspaces[spec.Name] = ws
		m.workspaceOrder = append(m.workspaceOrder, spec.Name)
	}
	m.current = m.workspaces[m.workspaceOrder[0]]
	m.current.Show()
	return nil
}

// WorkspaceNames returns the configured workspace names in startup
// order, used to seed _NET_DESKTOP_NAMES before the event loop starts.
func (m *WindowManager) WorkspaceNames() []string {
	return append([]string{}, m.workspaceOrder...)
}

// AbsorbExisting enumerates the root window's current children and
// absorbs each, per spec.md §4.3's startup contract. Only meaningful
// against a real connection.
func (m *WindowManager) AbsorbExisting() error {
	real, ok := m.conn.(*xconn.Connection)
	if !ok {
		return nil
	}
	tree, err := xproto.QueryTree(real.XUtil.Conn(), real.Root()).Reply()
	if err != nil {
		return fmt.Errorf("query existing windows: %w", err)
	}
	for _, child := range tree.Children {
		m.Absorb(wm.WindowID(child))
	}
	m.RelayoutCurrent()
	return nil
}

// Absorb classifies window and assigns it to the current workspace, or
// to the unmanaged set. No-op if window is already tracked anywhere.
func (m *WindowManager) Absorb(window wm.WindowID) {
	if _, ok := m.owner[window]; ok {
		return
	}
	if _, ok := m.unmanaged[window]; ok {
		return
	}

	attrs := m.readAttributes(window)
	classification := m.provider.ClassifyWindow(attrs)
	if classification == nil {
		m.unmanaged[window] = wm.Record{Window: window, IsManaged: false, Strut: m.readStrut(window)}
		m.logger.Info("window unmanaged", "window", window)
		return
	}

	m.current.AddWindow(window, *classification)
	m.owner[window] = m.current.Name()
	m.registerGrabs(window)
	m.logger.Info("window absorbed", "window", window, "workspace", m.current.Name(), "floating", *classification)
}

// registerGrabs installs the three button grabs spec.md §4.3 names:
// Button1+Mod1 (move), Button1+Shift+Mod1 (resize), bare Button1
// (click-to-focus, replayed).
func (m *WindowManager) registerGrabs(window wm.WindowID) {
	real, ok := m.conn.(*xconn.Connection)
	if !ok {
		return
	}
	win := xproto.Window(window)
	conn := real.XUtil.Conn()
	const mod1 = xproto.ModMask1
	grab := func(mods uint16, pointerMode byte) {
		xproto.GrabButton(conn, false, win,
			uint16(xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease|xproto.EventMaskButtonMotion),
			pointerMode, xproto.GrabModeAsync, 0, 0,
			xproto.ButtonIndex1, mods)
	}
	grab(mod1, xproto.GrabModeAsync)
	grab(mod1|xproto.ModMaskShift, xproto.GrabModeAsync)
	// Synchronous, so the AllowEvents(ReplayPointer) in handleButtonPress
	// can hand the click on to the client.
	grab(0, xproto.GrabModeSync)

	m.attachWindowHandlers(real.XUtil, win)
}

// workspaceOf returns the workspace that owns window, if managed.
func (m *WindowManager) workspaceOf(window wm.WindowID) (*workspace.Workspace, bool) {
	name, ok := m.owner[window]
	if !ok {
		return nil, false
	}
	ws, ok := m.workspaces[name]
	return ws, ok
}

// recordIn returns window's current record within ws, or a zero record
// if it is not (yet) present.
func recordIn(ws *workspace.Workspace, window wm.WindowID) wm.Record {
	for _, r := range ws.Windows() {
		if r.Window == window {
			return r
		}
	}
	return wm.Record{Window: window}
}

func (m *WindowManager) unregisterGrabs(window wm.WindowID) {
	real, ok := m.conn.(*xconn.Connection)
	if !ok {
		return
	}
	xproto.UngrabButton(real.XUtil.Conn(), xproto.ButtonIndexAny, xproto.Window(window), xproto.ModMaskAny)
}

// readAttributes queries the EWMH/ICCCM properties ClassifyWindow needs.
// Reply failures are masked with zero values (spec.md §7 kind 2).
func (m *WindowManager) readAttributes(window wm.WindowID) config.WindowAttributes {
	real, ok := m.conn.(*xconn.Connection)
	if !ok {
		return config.WindowAttributes{Window: window}
	}
	win := xproto.Window(window)

	attrs := config.WindowAttributes{Window: window}

	if wa, err := xproto.GetWindowAttributes(real.XUtil.Conn(), win).Reply(); err == nil {
		attrs.OverrideRedirect = wa.OverrideRedirect
	}
	if class, err := xproto.GetProperty(real.XUtil.Conn(), false, win,
		xproto.AtomWmClass, xproto.GetPropertyTypeAny, 0, (1<<32)-1).Reply(); err == nil {
		parts := strings.Split(string(class.Value), "\x00")
		if len(parts) > 0 {
			attrs.InstanceName = parts[0]
		}
		if len(parts) > 1 {
			attrs.ClassName = parts[1]
		}
	}
	if types, err := ewmh.WmWindowTypeGet(real.XUtil, win); err == nil {
		attrs.NetWMType = types
	}
	if states, err := ewmh.WmStateGet(real.XUtil, win); err == nil {
		attrs.NetWMState = states
	}
	if transient, err := icccm.WmTransientForGet(real.XUtil, win); err == nil && transient != 0 {
		leader := wm.WindowID(transient)
		attrs.TransientFor = &leader
	}
	return attrs
}

func (m *WindowManager) readStrut(window wm.WindowID) *wm.Strut {
	reply, err := m.conn.GetProperty(xproto.Window(window), "_NET_WM_STRUT")
	if err != nil || len(reply.Value) < 16 {
		return nil
	}
	vals := make([]uint32, 4)
	for i := range vals {
		vals[i] = uint32(reply.Value[i*4]) | uint32(reply.Value[i*4+1])<<8 |
			uint32(reply.Value[i*4+2])<<16 | uint32(reply.Value[i*4+3])<<24
	}
	return &wm.Strut{Left: int(vals[0]), Right: int(vals[1]), Top: int(vals[2]), Bottom: int(vals[3])}
}

func (m *WindowManager) windowTitle(window wm.WindowID) string {
	if title, ok := m.titleCache[window]; ok {
		return title
	}
	real, ok := m.conn.(*xconn.Connection)
	if !ok {
		return ""
	}
	name, err := ewmh.WmNameGet(real.XUtil, xproto.Window(window))
	if err != nil {
		return ""
	}
	m.titleCache[window] = name
	return name
}

// screenBounds returns the current root window geometry, reduced by
// every unmanaged window's strut reservation (spec.md §9's adopted
// resolution: strut subtraction happens in the manager's pre-layout
// bounds scan, not in AvoidStruts).
func (m *WindowManager) screenBounds() wm.Bounds {
	b, err := m.conn.Geometry(m.conn.Root())
	if err != nil {
		return wm.Bounds{}
	}
	for _, u := range m.unmanaged {
		if u.Strut == nil {
			continue
		}
		b = b.ShrinkSides(u.Strut.Left, u.Strut.Right, u.Strut.Top, u.Strut.Bottom)
	}
	return b
}

// RelayoutCurrent relays out the visible workspace and reconciles
// decoration windows, per the data-flow described in spec.md §2.
func (m *WindowManager) RelayoutCurrent() {
	artists := m.current.Relayout(m.screenBounds())
	m.reconcileDecorations(artists)
	m.publishAvailableCommands()
	m.conn.Flush()
}

// reconcileDecorations destroys the previous decoration-window set, then
// creates one override-redirect window per artist sized to
// CalculateBounds, per spec.md §4.3.
func (m *WindowManager) reconcileDecorations(artists []wm.Artist) {
	for win := range m.decorations {
		m.conn.DestroyWindow(win)
	}
	m.decorations = map[xproto.Window]wm.Artist{}

	for _, artist := range artists {
		bounds := artist.CalculateBounds()
		if bounds == nil {
			continue
		}
		win, err := m.conn.CreateOverrideRedirectWindow(*bounds)
		if err != nil {
			m.logger.Warn("create decoration window failed", "error", err)
			continue
		}
		m.conn.MapWindow(win)
		m.decorations[win] = artist
	}
}

// publishAvailableCommands rewrites CERAMIC_AVAILABLE_COMMANDS on the
// root with the union of the manager's own top-level commands and the
// current workspace's command namespace.
func (m *WindowManager) publishAvailableCommands() {
	commands := append([]string{
		"quit",
		"focus_on_window: {selected_window}",
	}, m.current.GetCommands()...)
	for _, name := range m.workspaceOrder {
		commands = append(commands, "switch_to_workspace_named:"+name)
		commands = append(commands, "move_focused_window_to_workspace_named:"+name)
	}

	if err := writeUTF8List(m.conn, m.conn.Root(), "CERAMIC_AVAILABLE_COMMANDS", commands); err != nil {
		m.logger.Warn("publish available commands failed", "error", err)
	}
}

func writeUTF8List(conn xconn.Conn, win xproto.Window, prop string, values []string) error {
	var buf []byte
	for _, v := range values {
		buf = append(buf, v...)
		buf = append(buf, 0)
	}
	return conn.ChangeProperty8(win, prop, "UTF8_STRING", buf)
}

// SwitchToWorkspaceNamed hides the current workspace and shows the named
// one, updating _NET_CURRENT_DESKTOP (spec.md §4.3's top-level command).
func (m *WindowManager) SwitchToWorkspaceNamed(name string) bool {
	target, ok := m.workspaces[name]
	if !ok || target == m.current {
		return false
	}
	m.current.Hide()
	m.current = target
	m.current.Show()
	for i, n := range m.workspaceOrder {
		if n == name {
			_ = m.conn.ChangeProperty32(m.conn.Root(), "_NET_CURRENT_DESKTOP", "CARDINAL", uint32(i))
			break
		}
	}
	m.RelayoutCurrent()
	return true
}

// MoveFocusedWindowToWorkspaceNamed unmaps the focused window, moves its
// record to the named workspace keeping its layer, and relayouts both
// the source and (if visible) destination workspace.
func (m *WindowManager) MoveFocusedWindowToWorkspaceNamed(name string) bool {
	target, ok := m.workspaces[name]
	if !ok || target == m.current {
		return false
	}
	window := m.current.FocusedWindow()
	if window == nil {
		return false
	}
	records := m.current.Windows()
	var isFloating bool
	for _, r := range records {
		if r.Window == *window {
			isFloating = r.IsFloating
		}
	}
	m.display.Unmap(*window)
	m.current.RemoveWindow(*window, true)
	target.AddWindow(*window, isFloating)
	m.owner[*window] = name

	m.RelayoutCurrent()
	if target.IsVisible() {
		target.Relayout(m.screenBounds())
	}
	return true
}
