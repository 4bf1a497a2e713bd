package layout

import "github.com/1broseidon/ceramic/internal/wm"

// GeometryFunc queries the display server's current geometry for a
// window. FloatingLayout uses it to seed a floating record's bounds the
// first time it is laid out (before any explicit move/resize has set
// them). Protocol-reply failures (spec.md §7 kind 2) are the caller's
// responsibility to mask with a safe default; FloatingLayout treats a
// zero Bounds return the same as "no geometry available."
type GeometryFunc func(wm.WindowID) wm.Bounds

// Floating partitions records by IsFloating: the tiled subset is
// delegated to Child; floating records with a zero-sized Bounds have
// their geometry queried via Geometry. Floating stacking order is
// renormalized independently of the tiled subset, then every floating
// record's Order is shifted up by len(tiled) so floating always outranks
// tiled in the final stack. Output is floating ++ tiled, matching the
// Workspace invariant that floating records form the prefix.
type Floating struct {
	Geometry GeometryFunc
	Child    wm.LayoutNode
}

func NewFloatingLayout(geometry GeometryFunc, child wm.LayoutNode) *Floating {
	return &Floating{Geometry: geometry, Child: child}
}

func (f *Floating) Layout(bounds wm.Bounds, records []wm.Record, focus *wm.WindowID) wm.Decisions {
	var floating, tiled []wm.Record
	for _, r := range records {
		if r.IsFloating {
			floating = append(floating, r)
		} else {
			tiled = append(tiled, r)
		}
	}

	for i := range floating {
		if floating[i].Bounds.IsZero() && f.Geometry != nil {
			floating[i].Bounds = f.Geometry(floating[i].Window)
		}
	}
	floating = wm.NormalizeOrder(floating, focus)

	tiledDecisions := f.Child.Layout(bounds, tiled, focus)

	// The tiled child assigns dense orders starting at 0; lifting the
	// floating layer's orders past them keeps every floating window above
	// every tiled one.
	shift := len(tiledDecisions.Records)
	for i := range floating {
		if floating[i].Order != nil {
			shifted := *floating[i].Order + shift
			floating[i].Order = &shifted
		}
	}

	out := make([]wm.Record, 0, len(floating)+len(tiledDecisions.Records))
	out = append(out, floating...)
	out = append(out, tiledDecisions.Records...)

	return wm.Decisions{Records: out, Artists: tiledDecisions.Artists}
}

func (f *Floating) GetCommands() []string                   { return f.Child.GetCommands() }
func (f *Floating) ExecuteCommand(n string, a []string) bool { return f.Child.ExecuteCommand(n, a) }
