// Package config implements the ConfigurationProvider external
// collaborator from spec.md §4.3/§6: the source of truth for which
// workspaces exist, what layout tree each one runs, and how a newly
// observed window is classified.
//
// Grounded on the teacher's internal/config/loader.go (YAML file loaded
// from a fixed $HOME-relative path via gopkg.in/yaml.v3,
// DefaultConfigPath-style resolution) generalized from "terminal grid
// layout knobs" to "named workspaces of layout-node trees."
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/1broseidon/ceramic/internal/wm"
)

// Provider is the ConfigurationProvider interface from spec.md §6.
type Provider interface {
	// Workspaces returns the ordered workspace specs the manager should
	// start with.
	Workspaces() ([]WorkspaceSpec, error)
	// ClassifyWindow decides how a newly observed window should be
	// handled: true means "managed, float by default", false means
	// "managed, tile", nil means "unmanaged."
	ClassifyWindow(WindowAttributes) *bool
}

// WorkspaceSpec names one workspace and its ordered layout roots, by
// name, deferring actual LayoutNode construction to the caller (the
// manager owns the layout-node registry, since nodes may need live
// collaborators like a GeometryFunc).
type WorkspaceSpec struct {
	Name    string
	Layouts []LayoutSpec
}

// LayoutSpec names one LayoutRoot and the node tree beneath it, in the
// tagged-union shape the teacher uses for its own Layout/LayoutMode
// config (internal/config/config.go's Layout struct, generalized from a
// single grid-parameters struct to an arbitrary recursive node tree).
type LayoutSpec struct {
	Name string `yaml:"name"`
	Node NodeSpec `yaml:"node"`
}

// NodeSpec is a recursive, YAML-tagged description of a LayoutNode tree.
// Only the fields relevant to Kind are populated; internal/manager's
// builder walks this into a live wm.LayoutNode tree.
type NodeSpec struct {
	Kind string `yaml:"kind"` // gaps|border|focus_border|avoid_struts|ignore_unmanaged|floating|selector|linear|grid|split|monad|stack

	// gaps
	ScreenGap int `yaml:"screen_gap,omitempty"`
	WindowGap int `yaml:"window_gap,omitempty"`

	// border / focus_border
	BorderWidth uint8   `yaml:"border_width,omitempty"`
	NormalColor NodeColor `yaml:"normal_color,omitempty"`
	FocusColor  NodeColor `yaml:"focus_color,omitempty"`

	// linear / split / monad (stack takes no parameters)
	Axis      string  `yaml:"axis,omitempty"`      // "x"|"y"
	Direction string  `yaml:"direction,omitempty"` // "increasing"|"decreasing"
	Ratio     float64 `yaml:"ratio,omitempty"`
	Count     int     `yaml:"count,omitempty"`

	Child *NodeSpec `yaml:"child,omitempty"`
	Left  *NodeSpec `yaml:"left,omitempty"`
	Right *NodeSpec `yaml:"right,omitempty"`
}

// NodeColor is an RGB triple in YAML-friendly form.
type NodeColor struct {
	R, G, B uint8
}

// AsColor converts to wm.Color.
func (c NodeColor) AsColor() wm.Color { return wm.Color{R: c.R, G: c.G, B: c.B} }

// WindowAttributes is the subset of per-window properties
// ClassifyWindow needs, read by the manager via EWMH/ICCCM before a
// window is absorbed (spec.md §6).
type WindowAttributes struct {
	Window           wm.WindowID
	InstanceName     string
	ClassName        string
	OverrideRedirect bool
	NetWMType        []string
	NetWMState       []string
	TransientFor     *wm.WindowID
}

// DefaultConfigPath mirrors the teacher's $HOME/.config/<app>/config.yaml
// convention (internal/config/loader.go's DefaultConfigPath).
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "ceramic", "config.yaml"), nil
}
