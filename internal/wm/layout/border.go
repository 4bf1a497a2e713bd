package layout

import "github.com/1broseidon/ceramic/internal/wm"

// Border sets every record's border width to a fixed value and colors it
// focusColor when the record's window matches the server-reported input
// focus, else normalColor.
type Border struct {
	Width                   uint8
	NormalColor, FocusColor wm.Color
	Child                   wm.LayoutNode
}

func NewBorder(width uint8, normal, focus wm.Color, child wm.LayoutNode) *Border {
	return &Border{Width: width, NormalColor: normal, FocusColor: focus, Child: child}
}

func (b *Border) Layout(bounds wm.Bounds, records []wm.Record, focus *wm.WindowID) wm.Decisions {
	decisions := b.Child.Layout(bounds, records, focus)
	for i := range decisions.Records {
		decisions.Records[i].BorderWidth = b.Width
		if focus != nil && decisions.Records[i].Window == *focus {
			decisions.Records[i].BorderColor = b.FocusColor
		} else {
			decisions.Records[i].BorderColor = b.NormalColor
		}
	}
	return decisions
}

func (b *Border) GetCommands() []string                   { return b.Child.GetCommands() }
func (b *Border) ExecuteCommand(n string, a []string) bool { return b.Child.ExecuteCommand(n, a) }

// FocusBorder is Border's sibling: unfocused records get BorderWidth 0,
// so only the focused window ever shows a border.
type FocusBorder struct {
	Width uint8
	Color wm.Color
	Child wm.LayoutNode
}

func NewFocusBorder(width uint8, color wm.Color, child wm.LayoutNode) *FocusBorder {
	return &FocusBorder{Width: width, Color: color, Child: child}
}

func (b *FocusBorder) Layout(bounds wm.Bounds, records []wm.Record, focus *wm.WindowID) wm.Decisions {
	decisions := b.Child.Layout(bounds, records, focus)
	for i := range decisions.Records {
		if focus != nil && decisions.Records[i].Window == *focus {
			decisions.Records[i].BorderWidth = b.Width
			decisions.Records[i].BorderColor = b.Color
		} else {
			decisions.Records[i].BorderWidth = 0
		}
	}
	return decisions
}

func (b *FocusBorder) GetCommands() []string                   { return b.Child.GetCommands() }
func (b *FocusBorder) ExecuteCommand(n string, a []string) bool { return b.Child.ExecuteCommand(n, a) }
