// Package render converts scalar cell fields into pixels.
package render

import (
	"image"
	"image/color"
	"math"
)

// fillScalarRGBA maps values in [low, high] onto a ramp between off and on,
// writing RGBA pixels into buf. Values outside the range are clamped; NaN
// cells are drawn in the off color.
func fillScalarRGBA(buf []byte, values []float64, low, high float64, on, off color.Color) {
	rOn, gOn, bOn, aOn := on.RGBA()
	rOff, gOff, bOff, aOff := off.RGBA()
	span := high - low
	for i, v := range values {
		t := 0.0
		if span > 0 && !math.IsNaN(v) {
			t = (v - low) / span
		}
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
		base := i * 4
		buf[base+0] = lerp8(rOff, rOn, t)
		buf[base+1] = lerp8(gOff, gOn, t)
		buf[base+2] = lerp8(bOff, bOn, t)
		buf[base+3] = lerp8(aOff, aOn, t)
	}
}

func lerp8(a, b uint32, t float64) uint8 {
	fa := float64(a >> 8)
	fb := float64(b >> 8)
	return uint8(math.Round(fa + (fb-fa)*t))
}

// Grayscale renders a w*h field as an image, black at low and white at high.
func Grayscale(values []float64, w, h int, low, high float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if len(values) != w*h {
		return img
	}
	fillScalarRGBA(img.Pix, values, low, high, color.White, color.Black)
	return img
}

// Range returns the smallest and largest finite values, or (0, 1) when there
// are none.
func Range(values []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo > hi {
		return 0, 1
	}
	return lo, hi
}
