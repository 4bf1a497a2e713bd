package workspace

import (
	"testing"

	"github.com/1broseidon/ceramic/internal/wm"
	"github.com/1broseidon/ceramic/internal/wm/layout"
)

// fakeDisplay is a recording stand-in for the real X11-backed Display,
// following the teacher's internal/movemode/overlay_test.go pattern of a
// hand-written fake rather than a mock framework.
type fakeDisplay struct {
	geometry map[wm.WindowID]wm.Bounds
	mapped   map[wm.WindowID]bool
	focus    *wm.WindowID
}

func newFakeDisplay() *fakeDisplay {
	return &fakeDisplay{geometry: map[wm.WindowID]wm.Bounds{}, mapped: map[wm.WindowID]bool{}}
}

func (f *fakeDisplay) Geometry(w wm.WindowID) wm.Bounds { return f.geometry[w] }
func (f *fakeDisplay) Configure(wm.WindowID, wm.Bounds, uint8, wm.Color) {}
func (f *fakeDisplay) Restack([]wm.WindowID)              {}
func (f *fakeDisplay) Map(w wm.WindowID)                  { f.mapped[w] = true }
func (f *fakeDisplay) Unmap(w wm.WindowID)                { f.mapped[w] = false }
func (f *fakeDisplay) SetInputFocus(w wm.WindowID)        { f.focus = &w }
func (f *fakeDisplay) SetActiveWindow(wm.WindowID)        {}
func (f *fakeDisplay) InputFocus() *wm.WindowID           { return f.focus }

func newTestWorkspace(t *testing.T) (*Workspace, *fakeDisplay) {
	t.Helper()
	display := newFakeDisplay()
	root := layout.NewRoot("m", layout.NewGridLayout())
	ws, err := New(Spec{Name: "1", LayoutNames: []string{"m"}, Layouts: []wm.LayoutNode{root}}, display, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return ws, display
}

// spec.md §3 invariant 1: focusedIndex is nil iff windows is empty.
func TestInvariantFocusedIndexNilIffEmpty(t *testing.T) {
	ws, _ := newTestWorkspace(t)
	if ws.FocusedIndex() != nil {
		t.Fatalf("empty workspace must have nil focusedIndex")
	}
	ws.AddWindow(1, false)
	if ws.FocusedIndex() == nil {
		t.Fatalf("non-empty workspace must have a focusedIndex")
	}
	ws.RemoveWindow(1, true)
	if ws.FocusedIndex() != nil {
		t.Fatalf("workspace drained back to empty must have nil focusedIndex again")
	}
}

// spec.md §3 invariant 2: floating records form a contiguous prefix.
func TestInvariantFloatingPrefix(t *testing.T) {
	ws, _ := newTestWorkspace(t)
	ws.AddWindow(1, false)
	ws.AddWindow(2, false)
	ws.AddWindow(3, true)
	ws.AddWindow(4, true)

	windows := ws.Windows()
	floatingCount := ws.NumberOfFloating()
	for i, r := range windows {
		if i < floatingCount && !r.IsFloating {
			t.Fatalf("record at index %d should be floating (prefix), got %+v", i, r)
		}
		if i >= floatingCount && r.IsFloating {
			t.Fatalf("record at index %d should be tiled (suffix), got %+v", i, r)
		}
	}
}

// spec.md §3 invariant 3: unique window ids.
func TestAddWindowNoopIfAlreadyPresent(t *testing.T) {
	ws, _ := newTestWorkspace(t)
	ws.AddWindow(1, false)
	ws.AddWindow(1, false)
	if len(ws.Windows()) != 1 {
		t.Fatalf("adding the same window twice must be a no-op")
	}
}

func TestRemoveWindowNoopWhenHiddenAndNotForced(t *testing.T) {
	ws, _ := newTestWorkspace(t)
	ws.AddWindow(1, false)
	ws.RemoveWindow(1, false)
	if len(ws.Windows()) != 1 {
		t.Fatalf("remove on a hidden workspace without force must be a no-op")
	}
}

func TestRemoveWindowForcedAlwaysRemoves(t *testing.T) {
	ws, _ := newTestWorkspace(t)
	ws.AddWindow(1, false)
	ws.RemoveWindow(1, true)
	if len(ws.Windows()) != 0 {
		t.Fatalf("forced remove must always remove")
	}
}

// scenario S3 from spec.md §8: float_focused_window re-tiles the
// remaining windows with a two-window split; here we only assert the
// workspace-level layering contract (the split math is covered in
// internal/wm/layout).
func TestFloatFocusedMovesToHeadOfFloatingLayer(t *testing.T) {
	ws, _ := newTestWorkspace(t)
	ws.AddWindow(1, false)
	ws.AddWindow(2, false)
	ws.AddWindow(3, false)
	ws.FocusOnWindow(2)
	ws.FloatFocused()

	windows := ws.Windows()
	if ws.NumberOfFloating() != 1 {
		t.Fatalf("expected 1 floating window, got %d", ws.NumberOfFloating())
	}
	if windows[0].Window != 2 {
		t.Fatalf("floated window should be at index 0, got %+v", windows[0])
	}
	if *ws.FocusedIndex() != 0 {
		t.Fatalf("focus should follow the floated window to index 0")
	}
}

func TestFloatTileRoundTripRestoresFlag(t *testing.T) {
	ws, _ := newTestWorkspace(t)
	ws.AddWindow(1, false)
	ws.FloatFocused()
	ws.TileFocused()
	windows := ws.Windows()
	if windows[0].IsFloating {
		t.Fatalf("float_focused then tile_focused must restore IsFloating=false")
	}
}

func TestMoveFocusedBackwardWrapsWithinLayer(t *testing.T) {
	ws, _ := newTestWorkspace(t)
	ws.AddWindow(1, false)
	ws.AddWindow(2, false)
	ws.AddWindow(3, false)
	// Each AddWindow inserts at the current focused index within the
	// same layer, so after three tiled adds the list is [3,2,1] with
	// focus on index 0 (window 3).
	if ws.Windows()[0].Window != 3 || *ws.FocusedIndex() != 0 {
		t.Fatalf("unexpected state before move: %+v focus=%v", ws.Windows(), ws.FocusedIndex())
	}

	ws.MoveFocusedBackward()

	windows := ws.Windows()
	if windows[len(windows)-1].Window != 3 {
		t.Fatalf("moving the first element backward must wrap to the tail, got %+v", windows)
	}
	if *ws.FocusedIndex() != len(windows)-1 {
		t.Fatalf("focus must follow the moved window to the tail")
	}
}

func TestShowMapsEveryWindowAndAssertsFocus(t *testing.T) {
	ws, display := newTestWorkspace(t)
	ws.AddWindow(1, false)
	ws.AddWindow(2, false)
	ws.FocusOnWindow(2)
	ws.Show()

	if !display.mapped[1] || !display.mapped[2] {
		t.Fatalf("Show must map every window")
	}
	if display.focus == nil || *display.focus != 2 {
		t.Fatalf("Show must assert input focus on the focused window")
	}
}

func TestHideUnmapsEveryWindow(t *testing.T) {
	ws, display := newTestWorkspace(t)
	ws.AddWindow(1, false)
	ws.Show()
	ws.Hide()
	if display.mapped[1] {
		t.Fatalf("Hide must unmap every window")
	}
}

// spec.md §8 property 3: relayout is a permutation, never an
// insertion/drop of the window set.
func TestRelayoutPreservesWindowSet(t *testing.T) {
	ws, _ := newTestWorkspace(t)
	ws.AddWindow(1, false)
	ws.AddWindow(2, false)
	ws.AddWindow(3, false)
	ws.Relayout(wm.Bounds{X: 0, Y: 0, Width: 300, Height: 300})

	seen := map[wm.WindowID]bool{}
	for _, r := range ws.Windows() {
		seen[r.Window] = true
	}
	for _, w := range []wm.WindowID{1, 2, 3} {
		if !seen[w] {
			t.Fatalf("relayout dropped window %d", w)
		}
	}
}

// spec.md §8 round-trip: relayout of unchanged state is idempotent on
// the output bounds.
func TestRelayoutTwiceIsIdempotent(t *testing.T) {
	ws, _ := newTestWorkspace(t)
	ws.AddWindow(1, false)
	ws.AddWindow(2, false)
	bounds := wm.Bounds{X: 0, Y: 0, Width: 640, Height: 480}

	ws.Relayout(bounds)
	first := ws.Windows()
	ws.Relayout(bounds)
	second := ws.Windows()

	for i := range first {
		if first[i].Bounds != second[i].Bounds {
			t.Fatalf("relayout of unchanged state must reproduce bounds: %+v vs %+v",
				first[i].Bounds, second[i].Bounds)
		}
	}
}

func TestCommandNamespaceIncludesFloatFocusedWindow(t *testing.T) {
	ws, _ := newTestWorkspace(t)
	commands := ws.GetCommands()
	found := false
	for _, c := range commands {
		if c == "float_focused_window" {
			found = true
		}
	}
	if !found {
		t.Fatalf("GetCommands must include float_focused_window, got %v", commands)
	}
}

func TestExecuteCommandUnknownReturnsFalse(t *testing.T) {
	ws, _ := newTestWorkspace(t)
	if ws.ExecuteCommand("not_a_real_command", nil) {
		t.Fatalf("unknown command must report no change")
	}
}
