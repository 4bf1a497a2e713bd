package manager

import (
	"fmt"

	"github.com/1broseidon/ceramic/internal/config"
	"github.com/1broseidon/ceramic/internal/wm"
	"github.com/1broseidon/ceramic/internal/wm/layout"
	"github.com/1broseidon/ceramic/internal/workspace"
)

// buildWorkspaceSpecs converts the ConfigurationProvider's workspace specs
// into live workspace.Spec values, constructing one wm.LayoutNode tree per
// named layout.
func buildWorkspaceSpecs(specs []config.WorkspaceSpec, geometry layout.GeometryFunc, titleOf func(wm.WindowID) string) ([]workspace.Spec, error) {
	out := make([]workspace.Spec, 0, len(specs))
	for _, ws := range specs {
		var names []string
		var nodes []wm.LayoutNode
		for _, l := range ws.Layouts {
			node, err := buildNode(l.Node, geometry, titleOf)
			if err != nil {
				return nil, fmt.Errorf("workspace %q layout %q: %w", ws.Name, l.Name, err)
			}
			names = append(names, l.Name)
			nodes = append(nodes, layout.NewRoot(l.Name, node))
		}
		out = append(out, workspace.Spec{Name: ws.Name, LayoutNames: names, Layouts: nodes})
	}
	return out, nil
}

func buildNode(spec config.NodeSpec, geometry layout.GeometryFunc, titleOf func(wm.WindowID) string) (wm.LayoutNode, error) {
	child := func() (wm.LayoutNode, error) {
		if spec.Child == nil {
			return nil, fmt.Errorf("node %q: missing child", spec.Kind)
		}
		return buildNode(*spec.Child, geometry, titleOf)
	}

	switch spec.Kind {
	case "gaps":
		c, err := child()
		if err != nil {
			return nil, err
		}
		return layout.NewGaps(spec.ScreenGap, spec.WindowGap, c), nil
	case "border":
		c, err := child()
		if err != nil {
			return nil, err
		}
		return layout.NewBorder(spec.BorderWidth, spec.NormalColor.AsColor(), spec.FocusColor.AsColor(), c), nil
	case "focus_border":
		c, err := child()
		if err != nil {
			return nil, err
		}
		return layout.NewFocusBorder(spec.BorderWidth, spec.FocusColor.AsColor(), c), nil
	case "avoid_struts":
		c, err := child()
		if err != nil {
			return nil, err
		}
		return layout.NewAvoidStruts(c), nil
	case "ignore_unmanaged":
		c, err := child()
		if err != nil {
			return nil, err
		}
		return layout.NewIgnoreUnmanaged(c), nil
	case "floating":
		c, err := child()
		if err != nil {
			return nil, err
		}
		return layout.NewFloatingLayout(geometry, c), nil
	case "selector":
		c, err := child()
		if err != nil {
			return nil, err
		}
		return layout.NewAddWindowSelectorLabels(titleOf, c), nil
	case "linear":
		axis, err := parseAxis(spec.Axis)
		if err != nil {
			return nil, err
		}
		direction, err := parseDirection(spec.Direction)
		if err != nil {
			return nil, err
		}
		return layout.NewLinearLayout(axis, direction), nil
	case "grid":
		return layout.NewGridLayout(), nil
	case "stack":
		return layout.NewStackLayout(), nil
	case "monad":
		axis, err := parseAxis(spec.Axis)
		if err != nil {
			return nil, err
		}
		return layout.NewMonadLayout(axis, spec.Ratio), nil
	case "split":
		axis, err := parseAxis(spec.Axis)
		if err != nil {
			return nil, err
		}
		direction, err := parseDirection(spec.Direction)
		if err != nil {
			return nil, err
		}
		if spec.Left == nil || spec.Right == nil {
			return nil, fmt.Errorf("split node: requires both left and right children")
		}
		left, err := buildNode(*spec.Left, geometry, titleOf)
		if err != nil {
			return nil, err
		}
		right, err := buildNode(*spec.Right, geometry, titleOf)
		if err != nil {
			return nil, err
		}
		count := spec.Count
		if count < 1 {
			count = 1
		}
		return layout.NewSplitLayout(axis, direction, spec.Ratio, count, left, right), nil
	default:
		return nil, fmt.Errorf("unknown layout node kind %q", spec.Kind)
	}
}

func parseAxis(s string) (wm.Axis, error) {
	switch s {
	case "x", "":
		return wm.AxisX, nil
	case "y":
		return wm.AxisY, nil
	default:
		return 0, fmt.Errorf("unknown axis %q", s)
	}
}

func parseDirection(s string) (wm.Direction, error) {
	switch s {
	case "increasing", "":
		return wm.Increasing, nil
	case "decreasing":
		return wm.Decreasing, nil
	default:
		return 0, fmt.Errorf("unknown direction %q", s)
	}
}
