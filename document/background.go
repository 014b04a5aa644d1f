// Package document carries the page-level state of a note document.
package document

import (
	"fmt"
	"math"

	"github.com/tunjan/rnote/compose"
	"github.com/tunjan/rnote/geometry"
	"github.com/tunjan/rnote/render"
)

// PatternStyle selects the background pattern.
type PatternStyle string

const (
	PatternNone  PatternStyle = "none"
	PatternLines PatternStyle = "lines"
	PatternGrid  PatternStyle = "grid"
	PatternDots  PatternStyle = "dots"
)

const (
	patternLineWidth = 1.0
	patternDotRadius = 2.0
)

// Background is the page background: a base color and an optional
// pattern aligned to the document origin.
type Background struct {
	Color        compose.Color `json:"color"`
	Pattern      PatternStyle  `json:"pattern"`
	PatternSize  geometry.Vec2 `json:"pattern_size"`
	PatternColor compose.Color `json:"pattern_color"`
}

// DefaultBackground returns a white page with a dot grid.
func DefaultBackground() Background {
	return Background{
		Color:        compose.ColorWhite,
		Pattern:      PatternDots,
		PatternSize:  geometry.V(32, 32),
		PatternColor: compose.Color{R: 0.5, G: 0.6, B: 0.8, A: 1},
	}
}

// Draw paints the background over bounds. With drawPattern the pattern
// is laid over the base color. optimizePrinting forces a white page
// with a black pattern.
func (bg Background) Draw(ctx render.Context, bounds geometry.Aabb, drawPattern, optimizePrinting bool) error {
	pageColor, patternColor := bg.Color, bg.PatternColor
	if optimizePrinting {
		pageColor, patternColor = compose.ColorWhite, compose.ColorBlack
	}

	compose.Rectangle{Rect: bounds}.AppendTo(ctx)
	if err := ctx.Paint(compose.Style{FillColor: &pageColor}); err != nil {
		return fmt.Errorf("document: painting background color: %w", err)
	}

	if !drawPattern || bg.Pattern == PatternNone || bg.Pattern == "" {
		return nil
	}
	if bg.PatternSize.X <= 0 || bg.PatternSize.Y <= 0 {
		return fmt.Errorf("document: pattern size %v must be positive", bg.PatternSize)
	}

	style := compose.Style{StrokeWidth: patternLineWidth, StrokeColor: &patternColor}
	switch bg.Pattern {
	case PatternLines:
		bg.appendHorizontalLines(ctx, bounds)
	case PatternGrid:
		bg.appendHorizontalLines(ctx, bounds)
		bg.appendVerticalLines(ctx, bounds)
	case PatternDots:
		bg.appendDots(ctx, bounds)
		style = compose.Style{FillColor: &patternColor}
	default:
		return fmt.Errorf("document: unknown pattern style %q", bg.Pattern)
	}
	if err := ctx.Paint(style); err != nil {
		return fmt.Errorf("document: painting background pattern: %w", err)
	}
	return nil
}

// steps returns the pattern indices i with min <= i*size <= max as a
// half-open range.
func steps(min, max, size float64) geometry.Range[int] {
	return geometry.PositiveRange(
		int(math.Ceil(min/size)),
		int(math.Floor(max/size))+1,
	)
}

func (bg Background) appendHorizontalLines(ctx render.Context, bounds geometry.Aabb) {
	r := steps(bounds.Mins.Y, bounds.Maxs.Y, bg.PatternSize.Y)
	for i := r.Start; i < r.End; i++ {
		y := float64(i) * bg.PatternSize.Y
		ctx.Start(geometry.V(bounds.Mins.X, y))
		ctx.Line(geometry.V(bounds.Maxs.X, y))
		ctx.Stop(false)
	}
}

func (bg Background) appendVerticalLines(ctx render.Context, bounds geometry.Aabb) {
	r := steps(bounds.Mins.X, bounds.Maxs.X, bg.PatternSize.X)
	for i := r.Start; i < r.End; i++ {
		x := float64(i) * bg.PatternSize.X
		ctx.Start(geometry.V(x, bounds.Mins.Y))
		ctx.Line(geometry.V(x, bounds.Maxs.Y))
		ctx.Stop(false)
	}
}

func (bg Background) appendDots(ctx render.Context, bounds geometry.Aabb) {
	xs := steps(bounds.Mins.X, bounds.Maxs.X, bg.PatternSize.X)
	ys := steps(bounds.Mins.Y, bounds.Maxs.Y, bg.PatternSize.Y)
	for ix := xs.Start; ix < xs.End; ix++ {
		for iy := ys.Start; iy < ys.End; iy++ {
			compose.Ellipse{
				Center: geometry.V(float64(ix)*bg.PatternSize.X, float64(iy)*bg.PatternSize.Y),
				Radii:  geometry.V(patternDotRadius, patternDotRadius),
			}.AppendTo(ctx)
		}
	}
}
