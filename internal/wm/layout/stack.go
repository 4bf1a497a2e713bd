package layout

import "github.com/1broseidon/ceramic/internal/wm"

// stackIndicatorBand is the reserved width/height of the indicator strip,
// per spec.md §4.1 ("reserves an 8-unit indicator band").
const stackIndicatorBand = 8

// StackIndicatorArtist draws a solid band adjacent to the anchor window
// along the stack axis, so the user can tell which edge cycles the stack.
type StackIndicatorArtist struct {
	Axis         wm.Axis
	AnchorWindow wm.WindowID
	Bounds       wm.Bounds
	Color        wm.Color
}

func (a *StackIndicatorArtist) CalculateBounds() *wm.Bounds {
	if a.Bounds.IsZero() {
		return nil
	}
	b := a.Bounds
	return &b
}

func (a *StackIndicatorArtist) Draw(surface wm.Surface) {
	w, h := surface.Size()
	surface.FillRect(0, 0, w, h, a.Color)
}

// Stack picks the larger of width/height as the stack axis, reserves an
// indicator band on the decreasing side of that axis, and assigns every
// remaining record the full bounds (windows deliberately overlap — only
// the stacking order, not geometry, distinguishes them). Order is always
// recomputed via wm.NormalizeOrder so the focused window ends up on top.
type Stack struct{}

func NewStackLayout() *Stack { return &Stack{} }

func (s *Stack) Layout(bounds wm.Bounds, records []wm.Record, focus *wm.WindowID) wm.Decisions {
	n := len(records)
	if n == 0 {
		return wm.Decisions{}
	}

	axis := wm.AxisX
	if bounds.Height > bounds.Width {
		axis = wm.AxisY
	}

	var content, indicator wm.Bounds
	switch axis {
	case wm.AxisX:
		indicator = wm.Bounds{X: bounds.MaxX() - stackIndicatorBand, Y: bounds.Y, Width: stackIndicatorBand, Height: bounds.Height}
		content = wm.Bounds{X: bounds.X, Y: bounds.Y, Width: bounds.Width - stackIndicatorBand, Height: bounds.Height}
	case wm.AxisY:
		indicator = wm.Bounds{X: bounds.X, Y: bounds.MaxY() - stackIndicatorBand, Width: bounds.Width, Height: stackIndicatorBand}
		content = wm.Bounds{X: bounds.X, Y: bounds.Y, Width: bounds.Width, Height: bounds.Height - stackIndicatorBand}
	}

	out := wm.CloneRecords(records)
	for i := range out {
		out[i].Bounds = content
	}
	out = wm.NormalizeOrder(out, focus)

	artist := &StackIndicatorArtist{Axis: axis, AnchorWindow: out[0].Window, Bounds: indicator, Color: wm.Color{R: 0x7f, G: 0x8c, B: 0x8d}}

	return wm.Decisions{Records: out, Artists: []wm.Artist{artist}}
}

func (s *Stack) GetCommands() []string                    { return nil }
func (s *Stack) ExecuteCommand(_ string, _ []string) bool { return false }
