//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"rdcore/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the parameter panel to the right of the simulation view. Each
// parameter gets a row with - and + buttons.
type HUD struct {
	engine     core.Engine
	width      int
	panel      *ebiten.Image
	lastHeight int

	rows         []controlRow
	panelOffsetX int

	pixel *ebiten.Image
}

// NewHUD constructs a HUD for the provided engine and panel width.
func NewHUD(engine core.Engine, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{engine: engine, width: width}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	return h
}

// Update re-lays out the rows if the parameter list changed and handles
// button clicks.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	if n := h.engine.Parameters().Count(); n != len(h.rows) {
		h.rows = layoutRows(h.width, n)
	}
	h.handleInput()
}

// Draw paints the HUD panel anchored to the right edge of the simulation view.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	height := h.engine.Size().H * scale
	if height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dx() != h.width || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawControls()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) handleInput() {
	if len(h.rows) == 0 {
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
	params := h.engine.Parameters()
	for i, row := range h.rows {
		switch {
		case pointInRect(px, my, row.minusRect):
			params.SetValueAt(i, adjustParam(params.ValueAt(i), -1))
			return
		case pointInRect(px, my, row.plusRect):
			params.SetValueAt(i, adjustParam(params.ValueAt(i), 1))
			return
		}
	}
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	headerY := panelPadding + headerBaseline
	text.Draw(h.panel, h.engine.RuleName(), face, panelPadding, headerY, color.RGBA{R: 200, G: 200, B: 210, A: 255})
	params := h.engine.Parameters()
	if len(h.rows) == 0 || params.Count() != len(h.rows) {
		infoY := headerY + infoSpacing
		text.Draw(h.panel, "No parameters", face, panelPadding, infoY, color.RGBA{R: 160, G: 160, B: 170, A: 255})
		return
	}
	for i, row := range h.rows {
		labelY := row.top + labelBaseline
		text.Draw(h.panel, params.NameAt(i), face, panelPadding, labelY, color.RGBA{R: 220, G: 220, B: 230, A: 255})

		value := formatParam(params.ValueAt(i))
		bounds := text.BoundString(face, value)
		valueX := row.minusRect.Min.X - buttonGap - bounds.Dx()
		text.Draw(h.panel, value, face, valueX, labelY, color.RGBA{R: 220, G: 220, B: 230, A: 255})

		h.drawButton(row.minusRect, "-")
		h.drawButton(row.plusRect, "+")
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string) {
	if h.pixel == nil {
		return
	}
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorM.Scale(float64(bg.R)/255.0, float64(bg.G)/255.0, float64(bg.B)/255.0, float64(bg.A)/255.0)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	textWidth := bounds.Dx()
	textHeight := bounds.Dy()
	x := rect.Min.X + (rect.Dx()-textWidth)/2
	y := rect.Min.Y + (rect.Dy()-textHeight)/2 + textHeight
	text.Draw(h.panel, label, face, x, y, fg)
}
