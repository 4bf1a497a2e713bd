package layout

import "github.com/1broseidon/ceramic/internal/wm"

// SelectorKeyset is the fixed keyset labels are assigned from, in
// iteration order, per spec.md §4.1 and glossary.
const SelectorKeyset = "ASDFGHJKLQWERTYUIOPZXCVBNM1234567890"

// WindowSelectorArtist paints one colored pill row per window in a
// leader-window group, each carrying its one-character label and the
// window's title. Its paddings and font metrics are the SELECTOR_LAYOUT
// constants below; internal/manager owns the concrete Surface it paints
// into.
type WindowSelectorArtist struct {
	// Anchor is the window the decoration is positioned relative to: the
	// first record's window in the group.
	Anchor wm.WindowID
	Rows   []SelectorRow
	// FocusedWindow marks which row, if any, uses the focused pill color.
	FocusedWindow *wm.WindowID
	// TitleOf resolves a window to its display title for painting.
	TitleOf func(wm.WindowID) string
	// AnchorBounds is the anchor record's current bounds, used to place
	// the decoration.
	AnchorBounds wm.Bounds
}

// SelectorRow is one (label, window) pairing within a selector group.
type SelectorRow struct {
	Label  string
	Window wm.WindowID
}

// SELECTOR_LAYOUT constants (glossary): outer margin, label padding, the
// label-to-name gap, and inter-row spacing. Font metrics are approximated
// from golang.org/x/image/font/basicfont.Face7x13's fixed advance/height
// rather than the glossary's "Noto Sans Mono" (unavailable without a
// freetype-style binding; see SPEC_FULL.md's DOMAIN STACK note).
const (
	selectorOuterX      = 6
	selectorOuterY      = 4
	selectorLabelPadX   = 4
	selectorLabelPadY   = 1
	selectorLabelToName = 6
	selectorLineSpacing = 3
	selectorCharWidth   = 7
	selectorCharHeight  = 13
)

var (
	selectorPillColor        = wm.Color{R: 0x3a, G: 0x3f, B: 0x4b}
	selectorFocusedPillColor = wm.Color{R: 0x50, G: 0xa0, B: 0xff}
	selectorTextColor        = wm.Color{R: 0xff, G: 0xff, B: 0xff}
)

func (a *WindowSelectorArtist) rowHeight() int { return selectorLabelPadY*2 + selectorCharHeight }

func (a *WindowSelectorArtist) nameWidth(row SelectorRow) int {
	title := ""
	if a.TitleOf != nil {
		title = a.TitleOf(row.Window)
	}
	return len(title) * selectorCharWidth
}

func (a *WindowSelectorArtist) labelWidth(row SelectorRow) int {
	return selectorLabelPadX*2 + len(row.Label)*selectorCharWidth
}

// CalculateBounds sizes the decoration to the widest row's label+gap+name,
// stacking rows with selectorLineSpacing between them, anchored at
// AnchorBounds' origin (the group's first record) (spec.md §4.4).
func (a *WindowSelectorArtist) CalculateBounds() *wm.Bounds {
	if len(a.Rows) == 0 {
		return nil
	}
	width := 0
	for _, row := range a.Rows {
		w := a.labelWidth(row) + selectorLabelToName + a.nameWidth(row)
		if w > width {
			width = w
		}
	}
	height := len(a.Rows)*a.rowHeight() + (len(a.Rows)-1)*selectorLineSpacing

	b := wm.Bounds{
		X:      a.AnchorBounds.X,
		Y:      a.AnchorBounds.Y,
		Width:  width + selectorOuterX*2,
		Height: height + selectorOuterY*2,
	}
	return &b
}

// Draw paints one colored pill per row with its label, and the window
// title to the right, per spec.md §4.4's WindowSelectorArtist contract.
func (a *WindowSelectorArtist) Draw(surface wm.Surface) {
	y := selectorOuterY
	rh := a.rowHeight()
	for _, row := range a.Rows {
		color := selectorPillColor
		if a.FocusedWindow != nil && *a.FocusedWindow == row.Window {
			color = selectorFocusedPillColor
		}
		lw := a.labelWidth(row)
		surface.FillRect(selectorOuterX, y, lw, rh, color)

		baseline := y + rh - selectorLabelPadY - 2
		surface.DrawText(selectorOuterX+selectorLabelPadX, baseline, selectorTextColor, row.Label)

		title := ""
		if a.TitleOf != nil {
			title = a.TitleOf(row.Window)
		}
		surface.DrawText(selectorOuterX+lw+selectorLabelToName, baseline, selectorTextColor, title)

		y += rh + selectorLineSpacing
	}
}

// Selector assigns one-character labels from SelectorKeyset, in
// iteration order over the input record list, grouped by GroupKey
// (leader window, or the record's own window when absent). It produces
// one WindowSelectorArtist per group. When disabled it is a pass-through:
// no labels, no artists (spec.md S6: the 37th window of 37 gets no
// label because the keyset is exhausted at 36).
type Selector struct {
	Enabled bool
	TitleOf func(wm.WindowID) string
	Child   wm.LayoutNode
}

func NewAddWindowSelectorLabels(titleOf func(wm.WindowID) string, child wm.LayoutNode) *Selector {
	return &Selector{TitleOf: titleOf, Child: child}
}

// SetEnabled toggles label assignment; the manager's keyboard-grab loop
// (spec.md §4.3) calls this before/after relayout.
func (s *Selector) SetEnabled(enabled bool) { s.Enabled = enabled }

func (s *Selector) Layout(bounds wm.Bounds, records []wm.Record, focus *wm.WindowID) wm.Decisions {
	decisions := s.Child.Layout(bounds, records, focus)
	if !s.Enabled {
		// Labels only exist during selection mode; stale ones from a
		// previous selection are scrubbed on the way out.
		for i := range decisions.Records {
			decisions.Records[i].SelectorLabel = ""
		}
		return decisions
	}

	type group struct {
		key      wm.WindowID
		anchor   int // index into decisions.Records of the first member
		windows  []wm.WindowID
	}
	var order []wm.WindowID
	groups := map[wm.WindowID]*group{}

	keyset := []rune(SelectorKeyset)
	labelIdx := 0
	for i := range decisions.Records {
		if labelIdx >= len(keyset) {
			break
		}
		key := decisions.Records[i].GroupKey()
		g, ok := groups[key]
		if !ok {
			g = &group{key: key, anchor: i}
			groups[key] = g
			order = append(order, key)
		}
		decisions.Records[i].SelectorLabel = string(keyset[labelIdx])
		g.windows = append(g.windows, decisions.Records[i].Window)
		labelIdx++
	}

	for _, key := range order {
		g := groups[key]
		artist := &WindowSelectorArtist{
			Anchor:        decisions.Records[g.anchor].Window,
			FocusedWindow: focus,
			TitleOf:       s.TitleOf,
			AnchorBounds:  decisions.Records[g.anchor].Bounds,
		}
		for _, w := range g.windows {
			label := ""
			for i := range decisions.Records {
				if decisions.Records[i].Window == w {
					label = decisions.Records[i].SelectorLabel
					break
				}
			}
			artist.Rows = append(artist.Rows, SelectorRow{Label: label, Window: w})
		}
		decisions.Artists = append(decisions.Artists, artist)
	}

	return decisions
}

// GetCommands exposes enable/disable_selector_labels alongside the
// child's own commands, so the manager's keyboard-grab loop (spec.md
// §4.3) can reach this node through the same ExecuteCommand namespace
// as everything else rather than needing a type assertion down the
// layout tree.
func (s *Selector) GetCommands() []string {
	return append([]string{"enable_selector_labels", "disable_selector_labels"}, s.Child.GetCommands()...)
}

func (s *Selector) ExecuteCommand(n string, a []string) bool {
	switch n {
	case "enable_selector_labels":
		s.Enabled = true
		return true
	case "disable_selector_labels":
		s.Enabled = false
		return true
	}
	return s.Child.ExecuteCommand(n, a)
}
