package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFillScalarRGBA(t *testing.T) {
	buf := make([]byte, 4*4)
	fillScalarRGBA(buf, []float64{0, 0.5, 2, math.NaN()}, 0, 1, color.White, color.Black)

	assert.Equal(t, []byte{0, 0, 0, 255}, buf[0:4])
	assert.Equal(t, []byte{128, 128, 128, 255}, buf[4:8])
	assert.Equal(t, []byte{255, 255, 255, 255}, buf[8:12], "clamped above high")
	assert.Equal(t, []byte{0, 0, 0, 255}, buf[12:16], "NaN drawn as off")
}

func TestGrayscale(t *testing.T) {
	img := Grayscale([]float64{0, 1, 1, 0}, 2, 2, 0, 1)
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, img.RGBAAt(1, 0))
	assert.Equal(t, color.RGBA{A: 255}, img.RGBAAt(1, 1))

	empty := Grayscale([]float64{1}, 2, 2, 0, 1)
	assert.Equal(t, color.RGBA{}, empty.RGBAAt(0, 0), "mismatched sizes leave the image blank")
}

func TestRange(t *testing.T) {
	lo, hi := Range([]float64{0.3, math.Inf(1), -0.2, math.NaN(), 0.9})
	assert.Equal(t, -0.2, lo)
	assert.Equal(t, 0.9, hi)

	lo, hi = Range(nil)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1.0, hi)
}
