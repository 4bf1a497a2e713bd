package layout

import "github.com/1broseidon/ceramic/internal/wm"

// Gaps shrinks bounds by screenGap on every side before delegating to
// child, then shrinks every positioned record's bounds by windowGap on
// every side. Grounded on the teacher's per-slot gap arithmetic in
// internal/tiling/layout.go (gapSize applied both between the monitor edge
// and the grid, and between cells).
type Gaps struct {
	ScreenGap, WindowGap int
	Child                wm.LayoutNode
}

func NewGaps(screenGap, windowGap int, child wm.LayoutNode) *Gaps {
	return &Gaps{ScreenGap: screenGap, WindowGap: windowGap, Child: child}
}

func (g *Gaps) Layout(bounds wm.Bounds, records []wm.Record, focus *wm.WindowID) wm.Decisions {
	inner := bounds.Shrink(g.ScreenGap)
	decisions := g.Child.Layout(inner, records, focus)
	for i := range decisions.Records {
		decisions.Records[i].Bounds = decisions.Records[i].Bounds.Shrink(g.WindowGap)
	}
	return decisions
}

func (g *Gaps) GetCommands() []string              { return g.Child.GetCommands() }
func (g *Gaps) ExecuteCommand(n string, a []string) bool { return g.Child.ExecuteCommand(n, a) }
