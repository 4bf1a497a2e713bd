package layout

import "github.com/1broseidon/ceramic/internal/wm"

// Unmanaged partitions records by IsManaged, delegates only the managed
// subset to Child, and appends the unmanaged subset to the output
// unchanged (spec.md §4.1).
type Unmanaged struct {
	Child wm.LayoutNode
}

func NewIgnoreUnmanaged(child wm.LayoutNode) *Unmanaged {
	return &Unmanaged{Child: child}
}

func (u *Unmanaged) Layout(bounds wm.Bounds, records []wm.Record, focus *wm.WindowID) wm.Decisions {
	var managed, unmanaged []wm.Record
	for _, r := range records {
		if r.IsManaged {
			managed = append(managed, r)
		} else {
			unmanaged = append(unmanaged, r)
		}
	}
	decisions := u.Child.Layout(bounds, managed, focus)
	decisions.Records = append(decisions.Records, unmanaged...)
	return decisions
}

func (u *Unmanaged) GetCommands() []string                   { return u.Child.GetCommands() }
func (u *Unmanaged) ExecuteCommand(n string, a []string) bool { return u.Child.ExecuteCommand(n, a) }
