//go:build ebiten

package ui

import (
	"image/color"

	"rdcore/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Overlay draws the engine status in the top-left corner. Tab toggles it.
type Overlay struct {
	engine  core.Engine
	visible bool
	pixel   *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(engine core.Engine) *Overlay {
	o := &Overlay{engine: engine, visible: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update allows the overlay to update internal state.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		o.visible = !o.visible
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image, chemical int, paused bool) {
	if !o.visible {
		return
	}
	lines := StatusLines(o.engine, chemical, paused)
	face := basicfont.Face7x13
	width := 0
	for _, l := range lines {
		if w := text.BoundString(face, l).Dx(); w > width {
			width = w
		}
	}
	const pad, leading = 6, 16
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(width+2*pad), float64(len(lines)*leading+pad))
	op.ColorM.Scale(0, 0, 0, 0.6)
	screen.DrawImage(o.pixel, op)
	for i, l := range lines {
		text.Draw(screen, l, face, pad, pad+headerBaseline/2+i*leading+4, color.RGBA{R: 230, G: 230, B: 240, A: 255})
	}
}
