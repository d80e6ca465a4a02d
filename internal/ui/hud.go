//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"texgen/internal/core"
	"texgen/internal/pipeline"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the layer stack and the parameters of the current layer to the
// right of the image pair. Edits are kept as pending parameters until the
// caller previews or commits them.
type HUD struct {
	session    *pipeline.Session
	width      int
	panel      *ebiten.Image
	lastHeight int

	controls     []hudControlState
	pending      core.Parameters
	panelOffsetX int
	status       string

	pixel *ebiten.Image
}

// NewHUD constructs a HUD for the provided session and panel width.
func NewHUD(session *pipeline.Session, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{session: session, width: width}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	h.Reload()
	return h
}

// Reload discards pending edits and reads the current layer's parameters.
func (h *HUD) Reload() {
	if h == nil {
		return
	}
	h.controls = nil
	h.pending = core.Parameters{}
	cur, err := h.session.Stack().Current()
	if err != nil {
		return
	}
	h.pending = cur.Params()
	schema := cur.Operation().Schema()
	h.controls = make([]hudControlState, len(schema))
	for i, spec := range schema {
		h.controls[i] = hudControlState{spec: spec}
	}
	h.layoutControls()
}

// Pending returns a copy of the edited parameters.
func (h *HUD) Pending() core.Parameters {
	if h == nil {
		return core.Parameters{}
	}
	return h.pending.Clone()
}

// SetPending replaces the edited parameters.
func (h *HUD) SetPending(p core.Parameters) {
	if h == nil {
		return
	}
	h.pending = p.Clone()
}

// SetStatus shows msg at the bottom of the panel.
func (h *HUD) SetStatus(msg string) {
	if h == nil {
		return
	}
	h.status = msg
}

// Update handles HUD interactions.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	h.handleInput()
}

// Draw paints the HUD panel anchored to the right edge of the image view.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dx() != h.width || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawControls()
	h.drawStack()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) title() string {
	cur, err := h.session.Stack().Current()
	if err != nil {
		return "Empty pipeline"
	}
	return cur.Title()
}

func (h *HUD) handleInput() {
	if len(h.controls) == 0 {
		return
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	px := mx - h.panelOffsetX
	for i := range h.controls {
		state := &h.controls[i]
		if pointInRect(px, my, state.minusRect) {
			h.applyAdjustment(state, -1)
			return
		}
		if pointInRect(px, my, state.plusRect) {
			h.applyAdjustment(state, 1)
			return
		}
	}
}

func (h *HUD) applyAdjustment(state *hudControlState, direction int) {
	if state == nil || direction == 0 {
		return
	}
	key := state.spec.Key
	h.pending[key] = adjust(state.spec, h.pending.Get(key, state.spec.Default), direction)
}

func (h *HUD) drawControls() {
	if h.panel == nil {
		return
	}
	face := basicfont.Face7x13
	headerY := panelPadding + headerBaseline
	text.Draw(h.panel, h.title(), face, panelPadding, headerY, color.RGBA{R: 200, G: 200, B: 210, A: 255})
	if len(h.controls) == 0 {
		infoY := headerY + infoSpacing
		text.Draw(h.panel, "No adjustable parameters", face, panelPadding, infoY, color.RGBA{R: 160, G: 160, B: 170, A: 255})
		return
	}
	for i := range h.controls {
		state := &h.controls[i]
		top := state.top
		labelY := top + labelBaseline
		text.Draw(h.panel, state.spec.Label, face, panelPadding, labelY, color.RGBA{R: 220, G: 220, B: 230, A: 255})
		current := h.pending.Get(state.spec.Key, state.spec.Default)
		value := formatValue(state.spec.Kind, current)
		bounds := text.BoundString(face, value)
		valueX := state.minusRect.Min.X - buttonGap - bounds.Dx()
		text.Draw(h.panel, value, face, valueX, labelY, color.RGBA{R: 220, G: 220, B: 230, A: 255})

		h.drawButton(state.minusRect, "-", adjust(state.spec, current, -1) != current)
		h.drawButton(state.plusRect, "+", adjust(state.spec, current, 1) != current)
	}
}

func (h *HUD) drawStack() {
	face := basicfont.Face7x13
	y := controlsTop + len(h.controls)*lineHeight + infoSpacing
	dim := color.RGBA{R: 160, G: 160, B: 170, A: 255}
	bright := color.RGBA{R: 220, G: 220, B: 230, A: 255}

	text.Draw(h.panel, "Layers", face, panelPadding, y, color.RGBA{R: 200, G: 200, B: 210, A: 255})
	for _, line := range layerLines(h.session) {
		y += stackLine
		c := dim
		if line[0] == '>' {
			c = bright
		}
		text.Draw(h.panel, line, face, panelPadding, y, c)
	}

	y += infoSpacing
	text.Draw(h.panel, "Add", face, panelPadding, y, color.RGBA{R: 200, G: 200, B: 210, A: 255})
	for _, line := range operationMenu(core.OperationNames()) {
		y += stackLine
		text.Draw(h.panel, line, face, panelPadding, y, dim)
	}

	y += infoSpacing
	text.Draw(h.panel, "G preview  S save  Up/Down select", face, panelPadding, y, dim)
	if h.status != "" {
		text.Draw(h.panel, h.status, face, panelPadding, h.lastHeight-panelPadding, bright)
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) layoutControls() {
	if len(h.controls) == 0 || h.width <= 0 {
		return
	}
	for i := range h.controls {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plusRect := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minusRect := image.Rect(plusRect.Min.X-buttonGap-buttonSize, buttonY, plusRect.Min.X-buttonGap, buttonY+buttonSize)
		h.controls[i].top = top
		h.controls[i].minusRect = minusRect
		h.controls[i].plusRect = plusRect
	}
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

type hudControlState struct {
	spec core.ParamSpec

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

const (
	panelPadding   = 12
	lineHeight     = 36
	stackLine      = 16
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	infoSpacing    = 36
	controlsTop    = panelPadding + headerBaseline + 14
)
