//go:build !ebiten

package ui

import (
	"arbor/internal/core"
	"arbor/internal/tree"
)

// PanelInfo mirrors the GUI build's panel state.
type PanelInfo struct {
	Species  string
	Seed     int64
	Stats    tree.Stats
	Snapshot core.ParameterSnapshot
	Verts    int
	Polys    int
}

// Panel is a no-op placeholder for headless builds.
type Panel struct{}

// NewPanel returns nil in the headless build.
func NewPanel() *Panel { return nil }

// Update is a no-op in the headless build.
func (p *Panel) Update() {}

// Draw is a no-op in the headless build.
func (p *Panel) Draw(any, PanelInfo) {}
