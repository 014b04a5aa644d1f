// Package compose holds the drawable primitives strokes are built from:
// colors, paint styles, pen paths and shapes.
package compose

import (
	"fmt"
	"math"
)

// Color is an RGBA color with float64 channels in [0, 1], alpha not
// premultiplied.
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

var (
	ColorBlack       = Color{0, 0, 0, 1}
	ColorWhite       = Color{1, 1, 1, 1}
	ColorTransparent = Color{0, 0, 0, 0}
)

func clamp01(v float64) float64 { return math.Min(1, math.Max(0, v)) }

// RGBA implements image/color.Color: 16-bit channels, alpha premultiplied.
func (c Color) RGBA() (r, g, b, a uint32) {
	af := clamp01(c.A)
	r = uint32(clamp01(c.R)*af*0xffff + 0.5)
	g = uint32(clamp01(c.G)*af*0xffff + 0.5)
	b = uint32(clamp01(c.B)*af*0xffff + 0.5)
	a = uint32(af*0xffff + 0.5)
	return
}

// Luma returns the relative luminance with Rec. 709 coefficients, ignoring
// alpha.
func (c Color) Luma() float64 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

// Darkest returns whichever of c and other has the lower luminance, c when
// they are equal.
func (c Color) Darkest(other Color) Color {
	if other.Luma() < c.Luma() {
		return other
	}
	return c
}

// RGBHex returns the color as a #rrggbb attribute value. Alpha is dropped;
// emit it separately as an opacity.
func (c Color) RGBHex() string {
	to255 := func(v float64) int { return int(clamp01(v)*255 + 0.5) }
	return fmt.Sprintf("#%02x%02x%02x", to255(c.R), to255(c.G), to255(c.B))
}
