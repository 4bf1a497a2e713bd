package manager

import (
	"strconv"
	"strings"

	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/1broseidon/ceramic/internal/wm"
	"github.com/1broseidon/ceramic/internal/xconn"
)

// pendingCommand is a command dispatch suspended partway through argument
// substitution, waiting on the keyboard-grab selector loop (spec.md §4.3)
// to produce a window id for a "{selected_window}" token.
type pendingCommand struct {
	name      string
	resolved  []string
	remaining []string
}

// selectorState is the keyboard-grab loop's state. It is checked from the
// ordinary root-window key-press/release handlers rather than run as a
// literal nested loop, per spec.md §9's "state enum + one loop" note.
type selectorState struct {
	pressCount int
	recorded   string
	invalid    bool
	pending    pendingCommand
}

// DispatchCommandLine parses and runs a command string written to
// CERAMIC_COMMAND, per spec.md §4.3's command parser: split on single
// spaces, first token is the command name, the rest are arguments after
// token substitution.
func (m *WindowManager) DispatchCommandLine(raw string) {
	tokens := strings.Split(raw, " ")
	if tokens[0] == "" {
		return
	}
	m.continueCommand(tokens[0], nil, tokens[1:])
}

// continueCommand resolves remaining left to right, suspending into the
// keyboard-grab loop the first time it meets "{selected_window}".
func (m *WindowManager) continueCommand(name string, resolved, remaining []string) {
	for i, tok := range remaining {
		switch tok {
		case "{focused_window}":
			window := m.current.FocusedWindow()
			if window == nil {
				return
			}
			resolved = append(resolved, strconv.FormatUint(uint64(*window), 10))
		case "{selected_window}":
			m.beginSelector(pendingCommand{name: name, resolved: resolved, remaining: remaining[i+1:]})
			return
		default:
			resolved = append(resolved, tok)
		}
	}
	if m.ExecuteCommand(name, resolved) {
		m.RelayoutCurrent()
	}
}

// ExecuteCommand dispatches name/args after substitution: the manager's
// own top-level commands (spec.md §4.3), or delegates to the current
// workspace.
func (m *WindowManager) ExecuteCommand(name string, args []string) bool {
	switch {
	case name == "quit":
		if real, ok := m.conn.(*xconn.Connection); ok {
			real.Quit()
		}
		return false
	case strings.HasPrefix(name, "switch_to_workspace_named:"):
		return m.SwitchToWorkspaceNamed(strings.TrimPrefix(name, "switch_to_workspace_named:"))
	case strings.HasPrefix(name, "move_focused_window_to_workspace_named:"):
		return m.MoveFocusedWindowToWorkspaceNamed(strings.TrimPrefix(name, "move_focused_window_to_workspace_named:"))
	default:
		return m.current.ExecuteCommand(name, args)
	}
}

// beginSelector enables selector labels on the current layout, relayouts
// so they paint, and issues the keyboard grab. No-op against a fake Conn
// (tests exercise continueCommand/ExecuteCommand directly instead).
func (m *WindowManager) beginSelector(pending pendingCommand) {
	real, ok := m.conn.(*xconn.Connection)
	if !ok {
		return
	}
	m.current.SetSelectorLabelsEnabled(true)
	m.RelayoutCurrent()

	if err := real.GrabKeyboard(real.Root()); err != nil {
		m.logger.Warn("selector keyboard grab failed", "error", err)
		m.current.SetSelectorLabelsEnabled(false)
		m.RelayoutCurrent()
		return
	}
	m.selector = &selectorState{pending: pending}
}

// handleSelectorKeyPress records the first key pressed during an active
// selection and invalidates it if a second, different key is pressed
// before the first is released (spec.md §4.3 step 3).
func (m *WindowManager) handleSelectorKeyPress(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
	if m.selector == nil {
		return
	}
	s := m.selector
	s.pressCount++
	symbol := strings.ToUpper(keybind.LookupString(xu, ev.State, ev.Detail))
	if s.pressCount == 1 {
		s.recorded = symbol
	} else if symbol != s.recorded {
		s.invalid = true
	}
}

// handleSelectorKeyRelease ends the selection once every pressed key has
// been released (spec.md §4.3 step 3: "on the last release, exit").
func (m *WindowManager) handleSelectorKeyRelease(xu *xgbutil.XUtil, ev xevent.KeyReleaseEvent) {
	if m.selector == nil {
		return
	}
	m.selector.pressCount--
	if m.selector.pressCount > 0 {
		return
	}
	m.endSelector()
}

// endSelector closes the keyboard-grab loop, disables selector labels, and
// resumes the suspended command with the chosen window, or drops it if the
// selection was invalidated or matched no label.
func (m *WindowManager) endSelector() {
	s := m.selector
	m.selector = nil

	if real, ok := m.conn.(*xconn.Connection); ok {
		real.UngrabKeyboard()
	}

	// Resolve the label before disabling: the relayout below scrubs
	// every record's selector label on the way out of selection mode.
	window, found := m.windowForLabel(s.recorded)

	m.current.SetSelectorLabelsEnabled(false)
	m.RelayoutCurrent()

	if s.invalid || s.recorded == "" || !found {
		return
	}
	resolved := append(append([]string{}, s.pending.resolved...), strconv.FormatUint(uint64(window), 10))
	m.continueCommand(s.pending.name, resolved, s.pending.remaining)
}

func (m *WindowManager) windowForLabel(label string) (wm.WindowID, bool) {
	for _, r := range m.current.Windows() {
		if r.SelectorLabel == label {
			return r.Window, true
		}
	}
	return 0, false
}
