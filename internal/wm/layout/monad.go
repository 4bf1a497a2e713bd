package layout

import "github.com/1broseidon/ceramic/internal/wm"

// NewMonadLayout builds the "master + stack" assembly from
// original_source/src/layout/monad_layout.rs: a Split pre-wired with
// count=1 so the first (usually focused) window gets the master pane at
// ratio and every other window stacks in the remainder, arranged along
// the axis orthogonal to the split (vertically for an X split). It is a convenience constructor, not a new LayoutNode kind
// — the teacher's config.LayoutModeMasterStack
// (internal/tiling/layout.go) is this same idea expressed as a grid-math
// special case; here it is expressed as an ordinary Split composition so
// it gets increase_count/increase_ratio for free.
func NewMonadLayout(axis wm.Axis, ratio float64) *Split {
	return NewSplitLayout(
		axis, wm.Increasing, ratio, 1,
		NewLinearLayout(axis.Orthogonal(), wm.Increasing),
		NewLinearLayout(axis.Orthogonal(), wm.Increasing),
	)
}
