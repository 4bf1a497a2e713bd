package layout

import (
	"math"

	"github.com/1broseidon/ceramic/internal/wm"
)

// gridScreenGap and gridCellPad are GridLayout's fixed internal constants per
// spec.md §4.1 ("a fixed internal 5-unit screen gap and 5-unit cell
// padding"). Unlike Gaps, these are baked into the node, not configurable.
const (
	gridScreenGap = 5
	gridCellPad   = 5
)

// Grid lays records out in a row-major grid with columns = ceil(sqrt(n))
// and rows = ceil(n/columns), grounded directly on the teacher's
// CalculateGrid (internal/tiling/layout.go), generalized to a LayoutNode.
// It clears stacking order on every record (the caller renormalizes).
type Grid struct{}

func NewGridLayout() *Grid { return &Grid{} }

// CalculateGrid mirrors the teacher's helper of the same contract.
func CalculateGrid(n int) (rows, cols int) {
	if n == 0 {
		return 0, 0
	}
	cols = int(math.Ceil(math.Sqrt(float64(n))))
	rows = int(math.Ceil(float64(n) / float64(cols)))
	return rows, cols
}

func (g *Grid) Layout(bounds wm.Bounds, records []wm.Record, focus *wm.WindowID) wm.Decisions {
	n := len(records)
	if n == 0 {
		return wm.Decisions{}
	}

	rows, cols := CalculateGrid(n)
	inner := bounds.Shrink(gridScreenGap)

	totalHGaps := (cols + 1) * gridCellPad
	totalVGaps := (rows + 1) * gridCellPad
	cellW := (inner.Width - totalHGaps) / cols
	cellH := (inner.Height - totalVGaps) / rows
	if cellW < 0 {
		cellW = 0
	}
	if cellH < 0 {
		cellH = 0
	}

	out := wm.CloneRecords(records)
	for i := range out {
		row := i / cols
		col := i % cols
		out[i].Bounds = wm.Bounds{
			X:      inner.X + gridCellPad + col*(cellW+gridCellPad),
			Y:      inner.Y + gridCellPad + row*(cellH+gridCellPad),
			Width:  cellW,
			Height: cellH,
		}
		out[i].Order = nil
	}

	return wm.Decisions{Records: out}
}

func (g *Grid) GetCommands() []string                    { return nil }
func (g *Grid) ExecuteCommand(_ string, _ []string) bool { return false }
