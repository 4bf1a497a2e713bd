// Package layout implements the concrete LayoutNode variants described in
// spec.md §4.1, grounded on the teacher's internal/tiling grid/slot math
// (internal/tiling/layout.go) generalized from "compute rects for N
// terminals" to "transform a record list, recursively, through a
// combinator tree."
package layout

import (
	"strings"

	"github.com/1broseidon/ceramic/internal/wm"
)

// Root is the named top-level wrapper around a LayoutNode. It prefixes
// every command name the child produces with "name/" and strips that
// prefix before delegating a dispatch, rejecting anything else. This is
// how a Workspace's layout rotation keeps each LayoutRoot's commands from
// colliding (spec.md §4.1).
type Root struct {
	Name  string
	Child wm.LayoutNode
}

// NewRoot wraps child under name. The separator is "/"; per spec.md §9's
// design note, child command names must never contain "/" literally.
func NewRoot(name string, child wm.LayoutNode) *Root {
	return &Root{Name: name, Child: child}
}

func (r *Root) prefix() string { return r.Name + "/" }

func (r *Root) Layout(bounds wm.Bounds, records []wm.Record, focus *wm.WindowID) wm.Decisions {
	return r.Child.Layout(bounds, records, focus)
}

func (r *Root) GetCommands() []string {
	childCommands := r.Child.GetCommands()
	out := make([]string, len(childCommands))
	for i, c := range childCommands {
		out[i] = r.prefix() + c
	}
	return out
}

func (r *Root) ExecuteCommand(name string, args []string) bool {
	rest, ok := strings.CutPrefix(name, r.prefix())
	if !ok {
		return false
	}
	return r.Child.ExecuteCommand(rest, args)
}
