//go:build !ebiten

package ui

import (
	"texgen/internal/core"
	"texgen/internal/pipeline"
)

// HUD is a no-op placeholder for headless builds.
type HUD struct{}

// NewHUD returns nil in the headless build.
func NewHUD(*pipeline.Session, int) *HUD { return nil }

// Reload is a no-op in the headless build.
func (h *HUD) Reload() {}

// Pending returns an empty set in the headless build.
func (h *HUD) Pending() core.Parameters { return core.Parameters{} }

// SetPending is a no-op in the headless build.
func (h *HUD) SetPending(core.Parameters) {}

// SetStatus is a no-op in the headless build.
func (h *HUD) SetStatus(string) {}

// Update is a no-op in the headless build.
func (h *HUD) Update(int) {}

// Draw is a no-op in the headless build.
func (h *HUD) Draw(any, int, int) {}
