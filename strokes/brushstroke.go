package strokes

import (
	"fmt"

	"github.com/tunjan/rnote/compose"
	"github.com/tunjan/rnote/geometry"
	"github.com/tunjan/rnote/render"
)

// BrushStroke is a freehand pen path with a style.
type BrushStroke struct {
	Path  compose.PenPath `json:"path"`
	Style compose.Style   `json:"style"`
}

var _ Stroke = (*BrushStroke)(nil)

func (b *BrushStroke) Bounds() geometry.Aabb {
	return b.Path.Bounds().Loosened(b.Style.StrokeWidth / 2)
}

func (b *BrushStroke) Draw(ctx render.Context, _ float64) error {
	b.Path.AppendTo(ctx)
	ctx.Stop(false)
	if err := ctx.Paint(b.Style); err != nil {
		return fmt.Errorf("strokes: painting brush stroke: %w", err)
	}
	return nil
}

func (b *BrushStroke) SetToDarkestColor() {
	if darkest, ok := b.Style.DarkestColor(); ok {
		b.Style.OverrideColors(darkest)
	}
}

func (b *BrushStroke) Clone() Stroke {
	return &BrushStroke{
		Path: compose.PenPath{
			Start:    b.Path.Start,
			Segments: append(compose.Segments(nil), b.Path.Segments...),
		},
		Style: b.Style.Clone(),
	}
}

func (b *BrushStroke) ImageBacked() bool { return false }
