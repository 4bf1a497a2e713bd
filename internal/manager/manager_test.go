package manager

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/ceramic/internal/config"
	"github.com/1broseidon/ceramic/internal/wm"
)

// fakeConn is a hand-written recording stand-in for xconn.Conn, following
// the teacher's preference for plain fakes over a mocking framework. It
// never type-asserts to *xconn.Connection, so every manager code path
// gated on a real connection (registerGrabs, AbsorbExisting, the keyboard
// grab itself) is a no-op here; tests exercise the pure dispatch logic
// instead.
type fakeConn struct {
	root       xproto.Window
	geometry   map[xproto.Window]wm.Bounds
	properties map[xproto.Window]map[string][]byte
	focus      *wm.WindowID
	destroyed  []xproto.Window
	restacks   [][2]xproto.Window
	nextID     xproto.Window
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		root:       1,
		geometry:   map[xproto.Window]wm.Bounds{1: {X: 0, Y: 0, Width: 1280, Height: 720}},
		properties: map[xproto.Window]map[string][]byte{},
		nextID:     1000,
	}
}

func (c *fakeConn) Atom(name string) (xproto.Atom, error) { return 1, nil }

func (c *fakeConn) GetProperty(win xproto.Window, atom string) (*xproto.GetPropertyReply, error) {
	return &xproto.GetPropertyReply{Value: c.properties[win][atom]}, nil
}

func (c *fakeConn) ChangeProperty32(win xproto.Window, prop, typ string, data ...uint32) error {
	return nil
}

func (c *fakeConn) ChangeProperty8(win xproto.Window, prop, typ string, data []byte) error {
	if c.properties[win] == nil {
		c.properties[win] = map[string][]byte{}
	}
	c.properties[win][prop] = data
	return nil
}

func (c *fakeConn) TakeProperty(win xproto.Window, atom string) (*xproto.GetPropertyReply, error) {
	value := c.properties[win][atom]
	delete(c.properties[win], atom)
	return &xproto.GetPropertyReply{Value: value}, nil
}

func (c *fakeConn) Geometry(win xproto.Window) (wm.Bounds, error) {
	return c.geometry[win], nil
}

func (c *fakeConn) ConfigureWindow(win xproto.Window, bounds wm.Bounds, borderWidth uint8) {
	c.geometry[win] = bounds
}

func (c *fakeConn) RestackAbove(win, sibling xproto.Window) {
	c.restacks = append(c.restacks, [2]xproto.Window{win, sibling})
}

func (c *fakeConn) SetBackground(win xproto.Window, color wm.Color) {}
func (c *fakeConn) MapWindow(win xproto.Window)                     {}
func (c *fakeConn) UnmapWindow(win xproto.Window)                   {}
func (c *fakeConn) DestroyWindow(win xproto.Window)                 { c.destroyed = append(c.destroyed, win) }

func (c *fakeConn) CreateOverrideRedirectWindow(bounds wm.Bounds) (xproto.Window, error) {
	c.nextID++
	c.geometry[c.nextID] = bounds
	return c.nextID, nil
}

func (c *fakeConn) SetInputFocus(win xproto.Window) { w := wm.WindowID(win); c.focus = &w }
func (c *fakeConn) InputFocus() *wm.WindowID        { return c.focus }
func (c *fakeConn) GrabKeyboard(xproto.Window) error { return nil }
func (c *fakeConn) UngrabKeyboard()                  {}

func (c *fakeConn) GenerateID() (xproto.Window, error) {
	c.nextID++
	return c.nextID, nil
}

func (c *fakeConn) Flush()              {}
func (c *fakeConn) Root() xproto.Window { return c.root }

// selectorWorkspaceSpecs builds a "1"/"tiled" workspace whose layout is
// floating -> gaps -> selector -> stack, matching DefaultProvider's shape
// closely enough to exercise selector-label assignment, floating
// behavior, and the command namespace.
func selectorWorkspaceSpecs() []config.WorkspaceSpec {
	return []config.WorkspaceSpec{
		{
			Name: "1",
			Layouts: []config.LayoutSpec{
				{
					Name: "tiled",
					Node: config.NodeSpec{
						Kind: "floating",
						Child: &config.NodeSpec{
							Kind: "gaps", ScreenGap: 0, WindowGap: 0,
							Child: &config.NodeSpec{
								Kind: "selector",
								Child: &config.NodeSpec{
									Kind: "stack",
								},
							},
						},
					},
				},
			},
		},
		{
			Name: "2",
			Layouts: []config.LayoutSpec{
				{Name: "tiled", Node: config.NodeSpec{Kind: "stack"}},
			},
		},
	}
}

func newTestManager(t *testing.T) (*WindowManager, *fakeConn) {
	t.Helper()
	conn := newFakeConn()
	provider := config.NewDefaultProvider()
	m := New(conn, provider, nil)
	if err := m.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return m, conn
}

func newSelectorTestManager(t *testing.T) (*WindowManager, *fakeConn) {
	t.Helper()
	conn := newFakeConn()
	m := New(conn, fixedProvider{selectorWorkspaceSpecs()}, nil)
	if err := m.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return m, conn
}

type fixedProvider struct{ specs []config.WorkspaceSpec }

func (p fixedProvider) Workspaces() ([]config.WorkspaceSpec, error) { return p.specs, nil }
func (p fixedProvider) ClassifyWindow(attrs config.WindowAttributes) *bool {
	return config.DefaultClassify(attrs)
}

func TestExecuteCommandQuitIsNoOpWithoutRealConnection(t *testing.T) {
	m, _ := newTestManager(t)
	if m.ExecuteCommand("quit", nil) {
		t.Fatalf("quit must report layout_changed=false")
	}
}

func TestExecuteCommandSwitchToWorkspaceNamed(t *testing.T) {
	m, _ := newSelectorTestManager(t)
	if !m.ExecuteCommand("switch_to_workspace_named:2", nil) {
		t.Fatalf("switching to an existing distinct workspace must report changed")
	}
	if m.current.Name() != "2" {
		t.Fatalf("current workspace should be %q, got %q", "2", m.current.Name())
	}
	if m.ExecuteCommand("switch_to_workspace_named:2", nil) {
		t.Fatalf("switching to the already-current workspace must report unchanged")
	}
	if m.ExecuteCommand("switch_to_workspace_named:missing", nil) {
		t.Fatalf("switching to an unknown workspace must report unchanged")
	}
}

func TestExecuteCommandMoveFocusedWindowToWorkspaceNamed(t *testing.T) {
	m, _ := newSelectorTestManager(t)
	m.current.AddWindow(42, false)

	if !m.ExecuteCommand("move_focused_window_to_workspace_named:2", nil) {
		t.Fatalf("moving the focused window must report changed")
	}
	if m.current.Contains(42) {
		t.Fatalf("window should have left the source workspace")
	}
	if !m.workspaces["2"].Contains(42) {
		t.Fatalf("window should have arrived in the target workspace")
	}
}

func TestExecuteCommandDelegatesToWorkspace(t *testing.T) {
	m, _ := newSelectorTestManager(t)
	m.current.AddWindow(1, false)
	m.current.AddWindow(2, false)

	if !m.ExecuteCommand("focus_on_window:2", nil) {
		t.Fatalf("focus_on_window must report changed")
	}
	if m.current.FocusedWindow() == nil || *m.current.FocusedWindow() != 2 {
		t.Fatalf("focus should have moved to window 2")
	}
}

func TestExecuteCommandFocusOnWindowAcceptsTrailingArg(t *testing.T) {
	m, _ := newSelectorTestManager(t)
	m.current.AddWindow(1, false)
	m.current.AddWindow(7, false)

	if !m.ExecuteCommand("focus_on_window:", []string{"7"}) {
		t.Fatalf("focus_on_window: with a trailing id argument must report changed")
	}
	if m.current.FocusedWindow() == nil || *m.current.FocusedWindow() != 7 {
		t.Fatalf("focus should have moved to window 7")
	}
}

func TestContinueCommandAbortsWhenNoFocusedWindow(t *testing.T) {
	m, _ := newSelectorTestManager(t)
	// No windows at all: FocusedWindow is nil, so the command must be
	// silently dropped (spec.md §7 kind 3).
	m.DispatchCommandLine("focus_on_window: {focused_window}")
	if m.current.FocusedWindow() != nil {
		t.Fatalf("workspace should remain empty")
	}
}

func TestContinueCommandSubstitutesFocusedWindow(t *testing.T) {
	m, _ := newSelectorTestManager(t)
	m.current.AddWindow(1, false)
	m.current.AddWindow(5, false)
	m.current.FocusOnWindow(1)

	m.DispatchCommandLine("focus_on_window: {focused_window}")
	if got := m.current.FocusedWindow(); got == nil || *got != 1 {
		t.Fatalf("expected focus to remain on window 1, got %v", got)
	}
}

func TestWindowForLabelFindsRecordAfterRelayout(t *testing.T) {
	m, _ := newSelectorTestManager(t)
	m.current.AddWindow(11, false)
	m.current.AddWindow(22, false)

	m.current.SetSelectorLabelsEnabled(true)
	m.RelayoutCurrent()

	var anyLabel string
	for _, r := range m.current.Windows() {
		if r.SelectorLabel != "" {
			anyLabel = r.SelectorLabel
			break
		}
	}
	if anyLabel == "" {
		t.Fatalf("expected at least one record to carry a selector label")
	}
	if _, ok := m.windowForLabel(anyLabel); !ok {
		t.Fatalf("windowForLabel must find the record carrying label %q", anyLabel)
	}
	if _, ok := m.windowForLabel("not-a-real-label"); ok {
		t.Fatalf("windowForLabel must report false for an unknown label")
	}
}

func TestDispatchCommandLineUnknownCommandIsNoop(t *testing.T) {
	m, _ := newSelectorTestManager(t)
	m.current.AddWindow(1, false)
	// Must not panic and must leave state untouched.
	m.DispatchCommandLine("not_a_real_command")
	if len(m.current.Windows()) != 1 {
		t.Fatalf("unknown command must not alter workspace state")
	}
}

func TestDispatchCommandLineEmptyIsNoop(t *testing.T) {
	m, _ := newTestManager(t)
	m.DispatchCommandLine("")
	m.DispatchCommandLine("   ")
}
