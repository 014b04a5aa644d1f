package engine

import (
	"math"

	"github.com/tunjan/rnote/compose"
	"github.com/tunjan/rnote/geometry"
	"github.com/tunjan/rnote/xoppformat"
)

// ColorFromXopp converts an 8 bit xopp color to the unit range.
func ColorFromXopp(c xoppformat.XoppColor) compose.Color {
	return compose.Color{
		R: float64(c.Red) / 255,
		G: float64(c.Green) / 255,
		B: float64(c.Blue) / 255,
		A: float64(c.Alpha) / 255,
	}
}

// XoppColorFromColor converts a unit range color to 8 bit. Components
// are truncated, so converting back loses up to 1/255 per channel.
func XoppColorFromColor(c compose.Color) xoppformat.XoppColor {
	return xoppformat.XoppColor{
		Red:   channelTo8(c.R),
		Green: channelTo8(c.G),
		Blue:  channelTo8(c.B),
		Alpha: channelTo8(c.A),
	}
}

func channelTo8(v float64) uint8 {
	f := math.Floor(v * 255)
	if f <= 0 {
		return 0
	}
	if f >= 255 {
		return 255
	}
	return uint8(f)
}

// ConvertValueDpi rescales a value from currentDpi to targetDpi.
func ConvertValueDpi(value, currentDpi, targetDpi float64) float64 {
	return value / currentDpi * targetDpi
}

// ConvertCoordDpi rescales a coordinate from currentDpi to targetDpi,
// evaluating each component exactly like ConvertValueDpi.
func ConvertCoordDpi(coord geometry.Vec2, currentDpi, targetDpi float64) geometry.Vec2 {
	return geometry.V(
		ConvertValueDpi(coord.X, currentDpi, targetDpi),
		ConvertValueDpi(coord.Y, currentDpi, targetDpi),
	)
}
