package layout

import "github.com/1broseidon/ceramic/internal/wm"

// Linear divides bounds into len(records) equal slices along axis and
// assigns each record one slice, in direction order. It does not set
// stacking order; a parent node (or the caller) is responsible for that.
// This is the leaf node grounded on the teacher's CalculatePositions
// single-axis case (internal/tiling/layout.go's vertical/horizontal grid
// modes collapse to exactly this).
type Linear struct {
	Axis      wm.Axis
	Direction wm.Direction
}

func NewLinearLayout(axis wm.Axis, direction wm.Direction) *Linear {
	return &Linear{Axis: axis, Direction: direction}
}

func (l *Linear) Layout(bounds wm.Bounds, records []wm.Record, focus *wm.WindowID) wm.Decisions {
	n := len(records)
	if n == 0 {
		return wm.Decisions{}
	}

	out := wm.CloneRecords(records)
	total := bounds.Width
	if l.Axis == wm.AxisY {
		total = bounds.Height
	}

	for i := range out {
		slice := i
		if l.Direction == wm.Decreasing {
			slice = n - 1 - i
		}
		start := slice * total / n
		end := (slice + 1) * total / n
		if l.Axis == wm.AxisX {
			out[i].Bounds = wm.Bounds{
				X: bounds.X + start, Y: bounds.Y,
				Width: end - start, Height: bounds.Height,
			}
		} else {
			out[i].Bounds = wm.Bounds{
				X: bounds.X, Y: bounds.Y + start,
				Width: bounds.Width, Height: end - start,
			}
		}
	}

	return wm.Decisions{Records: out}
}

func (l *Linear) GetCommands() []string                    { return nil }
func (l *Linear) ExecuteCommand(_ string, _ []string) bool { return false }
