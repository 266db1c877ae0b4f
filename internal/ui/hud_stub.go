//go:build !ebiten

package ui

import "snowfall/internal/core"

// StatusProvider contributes read-only text lines to the HUD.
type StatusProvider interface {
	StatusLines() []string
}

// HUD is a no-op placeholder for headless builds.
type HUD struct{}

// NewHUD returns nil in the headless build.
func NewHUD(core.Scene, StatusProvider) *HUD { return nil }

// Update is a no-op in the headless build.
func (h *HUD) Update() bool { return false }

// Draw is a no-op in the headless build.
func (h *HUD) Draw(any) {}
