// Package workspace implements the ordered, two-layered window list state
// machine described in spec.md §4.2: a Workspace owns one window list, a
// rotation of named layout roots, and a focus index, and mediates every
// mutation the manager's command dispatcher can trigger.
//
// Grounded on the teacher's internal/workspace/state.go (registry-style
// owner of per-desktop state with an explicit mutex) generalized from "a
// JSON-backed slot registry for tmux sessions" to "an in-memory window
// list with floating/tiled layering" — the state-machine shape (named
// entities, index bookkeeping, focus tracking) carries over; the registry
// persistence does not (spec.md §1 lists "no session save/restore" as a
// non-goal).
package workspace

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/1broseidon/ceramic/internal/wm"
)

// Display is the narrow X11 surface a Workspace needs to apply its
// decisions to the display server. The concrete implementation lives in
// internal/manager; tests substitute a recording fake, following the
// pattern of the teacher's internal/movemode/overlay_test.go.
type Display interface {
	// Geometry returns a window's current server-side geometry. A
	// protocol-reply failure (spec.md §7 kind 2) is the implementation's
	// responsibility to mask with a zero Bounds.
	Geometry(window wm.WindowID) wm.Bounds
	// Configure applies position/size/border to a window.
	Configure(window wm.WindowID, bounds wm.Bounds, borderWidth uint8, borderColor wm.Color)
	// Restack places windows in order, each directly above its
	// predecessor, implementing spec.md §4.2's
	// "CONFIGURE_WINDOW with STACK_MODE=ABOVE, SIBLING=w_prev" step.
	Restack(order []wm.WindowID)
	Map(window wm.WindowID)
	Unmap(window wm.WindowID)
	SetInputFocus(window wm.WindowID)
	SetActiveWindow(window wm.WindowID)
	// InputFocus reports the server's current input-focus window, if
	// any; layout nodes compare against it to decide focus coloring.
	InputFocus() *wm.WindowID
}

// Workspace is the per-named-desktop state machine of spec.md §4.2.
type Workspace struct {
	mu sync.Mutex

	name    string
	layouts []wm.LayoutNode
	// layoutNames lets switch_to_layout_named: resolve without reaching
	// into each layout.Root (LayoutNode doesn't expose its own name).
	layoutNames    []string
	currentLayout  int
	windows        []wm.Record
	numFloating    int
	focusedIndex   *int
	isVisible      bool

	display Display
	logger  *slog.Logger
}

// Spec names one (name, ordered layouts) pair, as returned by
// ConfigurationProvider.Workspaces().
type Spec struct {
	Name        string
	LayoutNames []string
	Layouts     []wm.LayoutNode
}

// New constructs a Workspace from a Spec. layouts must be non-empty
// (spec.md §3 invariant: "layouts : ordered sequence of LayoutRoot
// (non-empty)").
func New(spec Spec, display Display, logger *slog.Logger) (*Workspace, error) {
	if len(spec.Layouts) == 0 {
		return nil, fmt.Errorf("workspace %q: layouts must be non-empty", spec.Name)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Workspace{
		name:        spec.Name,
		layouts:     spec.Layouts,
		layoutNames: spec.LayoutNames,
		display:     display,
		logger:      logger,
	}, nil
}

func (w *Workspace) Name() string { return w.name }

// Windows returns a copy of the current window list. Callers must not
// rely on mutating it to affect Workspace state.
func (w *Workspace) Windows() []wm.Record {
	w.mu.Lock()
	defer w.mu.Unlock()
	return wm.CloneRecords(w.windows)
}

func (w *Workspace) NumberOfFloating() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.numFloating
}

// FocusedIndex returns the focused index, or nil when the workspace has
// no windows (spec.md §3 invariant 1).
func (w *Workspace) FocusedIndex() *int {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.focusedIndex == nil {
		return nil
	}
	i := *w.focusedIndex
	return &i
}

func (w *Workspace) IsVisible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.isVisible
}

// FocusedWindow returns the focused record's window, if any.
func (w *Workspace) FocusedWindow() *wm.WindowID {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.focusedIndex == nil {
		return nil
	}
	win := w.windows[*w.focusedIndex].Window
	return &win
}

// Contains reports whether window is already tracked by this workspace.
func (w *Workspace) Contains(window wm.WindowID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.indexOf(window) >= 0
}

func (w *Workspace) indexOf(window wm.WindowID) int {
	for i, r := range w.windows {
		if r.Window == window {
			return i
		}
	}
	return -1
}

// AddWindow inserts window into the workspace, or no-ops if it is already
// present. Per spec.md §4.2: insert at focusedIndex when the focused
// record shares the same layer, else at the layer's boundary (floating at
// index 0, tiled at numFloating); focus moves to the new index.
func (w *Workspace) AddWindow(window wm.WindowID, isFloating bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.indexOf(window) >= 0 {
		return
	}

	bounds := wm.Bounds{}
	if w.display != nil {
		bounds = w.display.Geometry(window)
	}
	record := wm.Record{Window: window, IsFloating: isFloating, Bounds: bounds, IsManaged: true}

	insertAt := w.layerBoundary(isFloating)
	if w.focusedIndex != nil {
		focused := w.windows[*w.focusedIndex]
		if focused.IsFloating == isFloating {
			insertAt = *w.focusedIndex
		}
	}

	w.windows = insertRecord(w.windows, insertAt, record)
	if isFloating {
		w.numFloating++
	}
	w.focusedIndex = intPtr(insertAt)

	w.logger.Info("window added", "workspace", w.name, "window", window, "floating", isFloating)
}

// layerBoundary returns the index a new record of the given layer is
// inserted at absent a same-layer focused neighbor: 0 for floating
// (floating records are always the prefix), numFloating for tiled.
func (w *Workspace) layerBoundary(isFloating bool) int {
	if isFloating {
		return 0
	}
	return w.numFloating
}

func insertRecord(records []wm.Record, at int, r wm.Record) []wm.Record {
	out := make([]wm.Record, 0, len(records)+1)
	out = append(out, records[:at]...)
	out = append(out, r)
	out = append(out, records[at:]...)
	return out
}

// RemoveWindow drops window from the workspace. When the workspace is
// hidden and force is false, this is a no-op (spec.md §4.2): the manager
// forces removal on destroy-notify and when moving a window to another
// workspace, never on an ordinary unmap of a hidden workspace's window.
func (w *Workspace) RemoveWindow(window wm.WindowID, force bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.isVisible && !force {
		return
	}

	idx := w.indexOf(window)
	if idx < 0 {
		return
	}

	removed := w.windows[idx]
	w.windows = append(w.windows[:idx], w.windows[idx+1:]...)
	if removed.IsFloating {
		w.numFloating--
	}

	w.focusedIndex = w.refocusAfterRemoval(idx, removed.IsFloating)

	w.logger.Info("window removed", "workspace", w.name, "window", window, "force", force)
}

// refocusAfterRemoval picks the same-layer neighbor at removedIdx
// (wrap-preserving). If that layer is now empty it focuses the other
// layer's entry next to the boundary, and returns nil only when the
// workspace has no windows left.
func (w *Workspace) refocusAfterRemoval(removedIdx int, wasFloating bool) *int {
	lo, hi := w.layerBounds(wasFloating)
	if lo >= hi {
		if len(w.windows) == 0 {
			return nil
		}
		// other layer still has windows; focus its boundary-adjacent entry.
		if wasFloating {
			return intPtr(0)
		}
		return intPtr(len(w.windows) - 1)
	}
	next := removedIdx
	if next >= hi {
		next = lo
	}
	return intPtr(next)
}

// layerBounds returns the half-open [lo, hi) index range of a layer,
// after a removal has already adjusted numFloating.
func (w *Workspace) layerBounds(floating bool) (int, int) {
	if floating {
		return 0, w.numFloating
	}
	return w.numFloating, len(w.windows)
}

// RequestConfigure applies a partial geometry request, honored only for
// floating records (spec.md §4.2).
func (w *Workspace) RequestConfigure(window wm.WindowID, x, y, width, height *int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	idx := w.indexOf(window)
	if idx < 0 || !w.windows[idx].IsFloating {
		return
	}

	b := w.windows[idx].Bounds
	if x != nil {
		b.X = *x
	}
	if y != nil {
		b.Y = *y
	}
	if width != nil {
		b.Width = *width
	}
	if height != nil {
		b.Height = *height
	}
	w.windows[idx].Bounds = b

	if w.display != nil {
		w.display.Configure(window, b, w.windows[idx].BorderWidth, w.windows[idx].BorderColor)
	}
}

// FloatFocused flips the focused record to floating, moving it to the
// head of the floating layer.
func (w *Workspace) FloatFocused() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.moveFocusedAcrossLayer(true)
}

// TileFocused flips the focused record to tiled. Per spec.md §9's open
// question, when numFloating == len(windows) (no tiled windows exist),
// the record moves to len(windows)-1, i.e. the end of the (now
// single-element) tiled layer — consistent with "tiled at numFloating"
// once numFloating has been decremented.
func (w *Workspace) TileFocused() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.moveFocusedAcrossLayer(false)
}

func (w *Workspace) moveFocusedAcrossLayer(toFloating bool) {
	if w.focusedIndex == nil {
		return
	}
	idx := *w.focusedIndex
	record := w.windows[idx]
	if record.IsFloating == toFloating {
		return
	}

	w.windows = append(w.windows[:idx], w.windows[idx+1:]...)
	record.IsFloating = toFloating

	var insertAt int
	if toFloating {
		w.numFloating++
		insertAt = 0
	} else {
		w.numFloating--
		insertAt = len(w.windows)
		if w.numFloating < len(w.windows) {
			insertAt = w.numFloating
		}
	}

	w.windows = insertRecord(w.windows, insertAt, record)
	w.focusedIndex = intPtr(insertAt)
}

// MoveFocusedForward swaps the focused record with its next same-layer
// neighbor, wrapping at the layer boundary.
func (w *Workspace) MoveFocusedForward() { w.swapFocused(1) }

// MoveFocusedBackward swaps the focused record with its previous
// same-layer neighbor, wrapping at the layer boundary.
func (w *Workspace) MoveFocusedBackward() { w.swapFocused(-1) }

func (w *Workspace) swapFocused(delta int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.focusedIndex == nil {
		return
	}
	idx := *w.focusedIndex
	lo, hi := w.layerBounds(w.windows[idx].IsFloating)
	if hi-lo < 2 {
		return
	}
	target := wrapIndex(idx, delta, lo, hi)
	w.windows[idx], w.windows[target] = w.windows[target], w.windows[idx]
	w.focusedIndex = intPtr(target)
}

// MoveFocusedToHead moves the focused record to the first position of
// its layer.
func (w *Workspace) MoveFocusedToHead() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.focusedIndex == nil {
		return
	}
	idx := *w.focusedIndex
	lo, _ := w.layerBounds(w.windows[idx].IsFloating)
	if idx == lo {
		return
	}
	record := w.windows[idx]
	w.windows = append(w.windows[:idx], w.windows[idx+1:]...)
	w.windows = insertRecord(w.windows, lo, record)
	w.focusedIndex = intPtr(lo)
}

// FocusOnNext moves focus to the next same-layer window, wrapping.
func (w *Workspace) FocusOnNext() { w.shiftFocus(1) }

// FocusOnPrevious moves focus to the previous same-layer window, wrapping.
func (w *Workspace) FocusOnPrevious() { w.shiftFocus(-1) }

func (w *Workspace) shiftFocus(delta int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.focusedIndex == nil {
		return
	}
	idx := *w.focusedIndex
	lo, hi := w.layerBounds(w.windows[idx].IsFloating)
	if hi-lo < 2 {
		return
	}
	w.focusedIndex = intPtr(wrapIndex(idx, delta, lo, hi))
}

// FocusOnWindow focuses the record matching window, if present in this
// workspace.
func (w *Workspace) FocusOnWindow(window wm.WindowID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	idx := w.indexOf(window)
	if idx < 0 {
		return false
	}
	w.focusedIndex = intPtr(idx)
	return true
}

func wrapIndex(idx, delta, lo, hi int) int {
	width := hi - lo
	rel := idx - lo + delta
	rel = ((rel % width) + width) % width
	return lo + rel
}

// Show maps every window and reasserts input focus / _NET_ACTIVE_WINDOW
// from focusedIndex.
func (w *Workspace) Show() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.isVisible = true
	if w.display == nil {
		return
	}
	for _, r := range w.windows {
		w.display.Map(r.Window)
	}
	if w.focusedIndex != nil {
		focused := w.windows[*w.focusedIndex].Window
		w.display.SetInputFocus(focused)
		w.display.SetActiveWindow(focused)
	}
}

// Hide unmaps every window. Per spec.md §3 invariant 4, once hidden no
// server-side input focus or active-window property may name a record in
// this workspace; Hide does not explicitly clear focus because the
// manager is expected to set it elsewhere (to the newly shown workspace)
// before or immediately after calling Hide — see internal/manager.
func (w *Workspace) Hide() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.isVisible = false
	if w.display == nil {
		return
	}
	for _, r := range w.windows {
		w.display.Unmap(r.Window)
	}
}

// Relayout runs the current layout root over the window list, applies the
// resulting bounds/border to the display, restacks, and returns the
// artists the caller must render.
func (w *Workspace) Relayout(bounds wm.Bounds) []wm.Artist {
	w.mu.Lock()
	layoutNode := w.layouts[w.currentLayout]
	records := wm.CloneRecords(w.windows)
	w.mu.Unlock()

	var focus *wm.WindowID
	if w.display != nil {
		focus = w.display.InputFocus()
	}

	decisions := layoutNode.Layout(bounds, records, focus)

	w.mu.Lock()
	w.windows = decisions.Records
	w.mu.Unlock()

	if w.display != nil {
		for _, r := range decisions.Records {
			w.display.Configure(r.Window, r.Bounds, r.BorderWidth, r.BorderColor)
		}
		w.display.Restack(orderedByRank(decisions.Records))
	}

	return decisions.Artists
}

type rankedWindow struct {
	window wm.WindowID
	order  int
	has    bool
}

// orderedByRank sorts window ids by their normalized Order field so the
// caller can issue a single restack pass; records without an Order keep
// their existing relative position, sorted after ordered ones.
func orderedByRank(records []wm.Record) []wm.WindowID {
	rs := make([]rankedWindow, len(records))
	for i, r := range records {
		rs[i].window = r.Window
		if r.Order != nil {
			rs[i].order = *r.Order
			rs[i].has = true
		}
	}
	// stable insertion sort by (has, order) keeps unordered records at
	// the tail in their original relative position.
	for i := 1; i < len(rs); i++ {
		j := i
		for j > 0 && rankLess(rs[j], rs[j-1]) {
			rs[j], rs[j-1] = rs[j-1], rs[j]
			j--
		}
	}
	out := make([]wm.WindowID, len(rs))
	for i, r := range rs {
		out[i] = r.window
	}
	return out
}

func rankLess(a, b rankedWindow) bool {
	if a.has != b.has {
		return a.has
	}
	return a.order < b.order
}

func intPtr(v int) *int { return &v }
