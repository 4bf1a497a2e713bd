package wm

import "sort"

// Decisions is the output of a LayoutNode.Layout call: the (possibly
// reordered, possibly bounds/border/order-mutated) record list, plus any
// decoration artists the caller must render.
type Decisions struct {
	Records []Record
	Artists []Artist
}

// LayoutNode is the combinator protocol every layout tree node implements.
// Layout is a pure transformation: given the current rectangle and the
// ordered record list, it returns a new record list (same window set,
// spec.md §8 property 3) and the artists to render. Zero-window input
// returns an empty Decisions except where a node documents otherwise.
//
// GetCommands/ExecuteCommand form the command-routing half of the
// protocol: ExecuteCommand returns whether the layout actually changed, so
// the caller (a Workspace) knows whether to relayout. This replaces the
// "command returns a closure capturing the manager" pattern the original
// Rust implementation used.
type LayoutNode interface {
	Layout(bounds Bounds, records []Record, focus *WindowID) Decisions
	GetCommands() []string
	ExecuteCommand(name string, args []string) bool
}

// InputFocusFunc supplies the server-reported focused window, if any. The
// layout engine never talks to the display server directly; nodes do not
// take an InputFocusFunc but receive the focused window as Layout's focus
// argument, which Workspace.Relayout queries once per relayout.
type InputFocusFunc func() *WindowID

// NormalizeOrder assigns dense stacking orders 0..n-1 to records,
// following the four-step rule in spec.md §4.1:
//  1. the contiguous trailing run of nil-Order records gets descending
//     orders starting at 1000 (so they rank above every previously ordered
//     record; within the run, earlier entries rank higher);
//  2. remaining nil-Order records get ascending orders starting at -1000;
//  3. the record matching focus is forced to 2000;
//  4. a stable sort by Order reassigns dense ranks 0..n-1.
//
// The returned slice is a new slice; the input is not mutated.
func NormalizeOrder(records []Record, focus *WindowID) []Record {
	out := CloneRecords(records)
	n := len(out)
	if n == 0 {
		return out
	}

	tailStart := n
	for i := n - 1; i >= 0; i-- {
		if out[i].Order != nil {
			break
		}
		tailStart = i
	}

	next := 1000
	for i := tailStart; i < n; i++ {
		out[i].Order = intPtr(next)
		next--
	}

	next = -1000
	for i := 0; i < tailStart; i++ {
		if out[i].Order == nil {
			out[i].Order = intPtr(next)
			next++
		}
	}

	if focus != nil {
		for i := range out {
			if out[i].Window == *focus {
				out[i].Order = intPtr(2000)
			}
		}
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return *out[idx[a]].Order < *out[idx[b]].Order
	})

	// Dense-rank by sorted position, but keep the caller's original slice
	// order: only the Order field changes, never the slice position.
	byWindow := make(map[WindowID]int, n)
	for rank, origIdx := range idx {
		byWindow[out[origIdx].Window] = rank
	}
	result := make([]Record, n)
	for i, rec := range out {
		rec.Order = intPtr(byWindow[rec.Window])
		result[i] = rec
	}
	return result
}
