package layout

import "github.com/1broseidon/ceramic/internal/wm"

// AvoidStruts shrinks bounds by the margins of any record carrying a
// _NET_WM_STRUT before delegating. spec.md §9 notes that the adopted
// design performs strut subtraction only in the manager's pre-layout scan
// of *unmanaged* windows, making this node unnecessary in the default
// configuration tree. The node itself shrinks by whatever Strut the
// records it receives carry; records that come from a Workspace never
// carry one, so under the manager it passes bounds through unchanged.
type Struts struct {
	Child wm.LayoutNode
}

func NewAvoidStruts(child wm.LayoutNode) *Struts {
	return &Struts{Child: child}
}

func (s *Struts) Layout(bounds wm.Bounds, records []wm.Record, focus *wm.WindowID) wm.Decisions {
	inner := bounds
	for _, r := range records {
		if r.Strut == nil {
			continue
		}
		inner = inner.ShrinkSides(r.Strut.Left, r.Strut.Right, r.Strut.Top, r.Strut.Bottom)
	}
	return s.Child.Layout(inner, records, focus)
}

func (s *Struts) GetCommands() []string                   { return s.Child.GetCommands() }
func (s *Struts) ExecuteCommand(n string, a []string) bool { return s.Child.ExecuteCommand(n, a) }
