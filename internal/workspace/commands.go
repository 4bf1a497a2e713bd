package workspace

import (
	"strconv"
	"strings"

	"github.com/1broseidon/ceramic/internal/wm"
)

// GetCommands returns the full command namespace this workspace exposes:
// the current layout's commands prefixed with "layout/", plus the fixed
// workspace-level commands from spec.md §4.2.
func (w *Workspace) GetCommands() []string {
	w.mu.Lock()
	layoutNode := w.layouts[w.currentLayout]
	w.mu.Unlock()

	commands := []string{
		"switch_to_next_layout",
		"switch_to_previous_layout",
		"move_focused_window_to_head",
		"move_focused_window_forward",
		"move_focused_window_backward",
		"focus_on_next_window",
		"focus_on_previous_window",
		"float_focused_window",
		"tile_focused_window",
	}
	for _, name := range w.layoutNames {
		commands = append(commands, "switch_to_layout_named:"+name)
	}
	for _, c := range layoutNode.GetCommands() {
		commands = append(commands, "layout/"+c)
	}
	return commands
}

// ExecuteCommand dispatches a workspace-level or layout command. It
// returns whether the workspace's visual state changed and therefore
// needs a relayout, matching the LayoutNode.ExecuteCommand contract.
func (w *Workspace) ExecuteCommand(name string, args []string) bool {
	switch {
	case name == "switch_to_next_layout":
		return w.switchLayout(1)
	case name == "switch_to_previous_layout":
		return w.switchLayout(-1)
	case strings.HasPrefix(name, "switch_to_layout_named:"):
		return w.switchToLayoutNamed(strings.TrimPrefix(name, "switch_to_layout_named:"))
	case strings.HasPrefix(name, "focus_on_window:"):
		raw := strings.TrimPrefix(name, "focus_on_window:")
		if raw == "" {
			// "{selected_window}"/"{focused_window}" substitution lands as a
			// trailing argument, not a name suffix, since the command
			// parser only substitutes inside args.
			if len(args) == 0 {
				return false
			}
			raw = args[0]
		}
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return false
		}
		return w.FocusOnWindow(wm.WindowID(id))
	case name == "move_focused_window_to_head":
		w.MoveFocusedToHead()
		return true
	case name == "move_focused_window_forward":
		w.MoveFocusedForward()
		return true
	case name == "move_focused_window_backward":
		w.MoveFocusedBackward()
		return true
	case name == "focus_on_next_window":
		w.FocusOnNext()
		return true
	case name == "focus_on_previous_window":
		w.FocusOnPrevious()
		return true
	case name == "float_focused_window":
		w.FloatFocused()
		return true
	case name == "tile_focused_window":
		w.TileFocused()
		return true
	case strings.HasPrefix(name, "layout/"):
		w.mu.Lock()
		layoutNode := w.layouts[w.currentLayout]
		w.mu.Unlock()
		return layoutNode.ExecuteCommand(strings.TrimPrefix(name, "layout/"), args)
	}
	return false
}

// SetSelectorLabelsEnabled toggles the current layout's selector-label
// node on or off, for the manager's keyboard-grab loop (spec.md §4.3).
func (w *Workspace) SetSelectorLabelsEnabled(enabled bool) {
	w.mu.Lock()
	name := w.layoutNames[w.currentLayout]
	layoutNode := w.layouts[w.currentLayout]
	w.mu.Unlock()

	cmd := "disable_selector_labels"
	if enabled {
		cmd = "enable_selector_labels"
	}
	layoutNode.ExecuteCommand(name+"/"+cmd, nil)
}

func (w *Workspace) switchLayout(delta int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.layouts) < 2 {
		return false
	}
	n := len(w.layouts)
	w.currentLayout = ((w.currentLayout+delta)%n + n) % n
	return true
}

func (w *Workspace) switchToLayoutNamed(name string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, n := range w.layoutNames {
		if n == name {
			if w.currentLayout == i {
				return false
			}
			w.currentLayout = i
			return true
		}
	}
	return false
}
