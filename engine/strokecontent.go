// Package engine assembles strokes, bounds and background into stroke
// content, the unit of exporting and clipboard transfer.
package engine

import (
	"fmt"

	"github.com/tunjan/rnote"
	"github.com/tunjan/rnote/document"
	"github.com/tunjan/rnote/geometry"
	"github.com/tunjan/rnote/render"
	"github.com/tunjan/rnote/strokes"
)

// MIMEType identifies serialized stroke content on the clipboard.
const MIMEType = "application/rnote-stroke-content"

// ClipboardExportMargin is the margin around content exported to the
// clipboard.
const ClipboardExportMargin = 6.0

// StrokeContent is a collection of strokes with optional fixed bounds
// and background.
type StrokeContent struct {
	Strokes strokes.List `json:"strokes"`
	// Bounds fixes the content bounds. When nil the bounds are derived
	// from the strokes.
	Bounds     *geometry.Aabb       `json:"bounds,omitempty"`
	Background *document.Background `json:"background,omitempty"`
}

// WithBounds returns the content with fixed bounds.
func (c StrokeContent) WithBounds(bounds geometry.Aabb) StrokeContent {
	c.Bounds = &bounds
	return c
}

// WithStrokes returns the content with the given strokes.
func (c StrokeContent) WithStrokes(list ...strokes.Stroke) StrokeContent {
	c.Strokes = list
	return c
}

// WithBackground returns the content with a background.
func (c StrokeContent) WithBackground(bg document.Background) StrokeContent {
	c.Background = &bg
	return c
}

// EffectiveBounds returns the fixed bounds if set, otherwise the merged
// bounds of all strokes. The second return is false when neither
// exists. The merge is recomputed on every call so stroke changes are
// always reflected.
func (c StrokeContent) EffectiveBounds() (geometry.Aabb, bool) {
	if c.Bounds != nil {
		return *c.Bounds, true
	}
	if len(c.Strokes) == 0 {
		return geometry.Aabb{}, false
	}
	box := geometry.NewInvalidAabb()
	for _, s := range c.Strokes {
		box = box.Merged(s.Bounds())
	}
	return box, true
}

// Size returns the extents of the effective bounds.
func (c StrokeContent) Size() (geometry.Vec2, bool) {
	bounds, ok := c.EffectiveBounds()
	if !ok {
		return geometry.Vec2{}, false
	}
	return bounds.Extents(), true
}

// DrawOptions controls how stroke content is rendered.
type DrawOptions struct {
	// DrawBackground paints the background before the strokes.
	DrawBackground bool
	// DrawPattern paints the background pattern, if the background is
	// drawn at all.
	DrawPattern bool
	// OptimizePrinting renders print friendly: white page, patterns
	// and strokes forced to their darkest color. Strokes lying fully
	// inside an image keep their colors.
	OptimizePrinting bool
	// Margin loosens the drawn area around the content bounds.
	Margin float64
	// ImageScale is the pixel density hint for embedded images.
	ImageScale float64
}

// Draw renders the content onto ctx. The background covers the bounds
// loosened by the margin, strokes are clipped to the tight bounds.
// Nothing is drawn when the content has no bounds.
func (c StrokeContent) Draw(ctx render.Context, opts DrawOptions) error {
	bounds, ok := c.EffectiveBounds()
	if !ok {
		return nil
	}
	loosened := bounds.Loosened(opts.Margin)
	if !loosened.IsValid() {
		return fmt.Errorf("engine: margin %v inverts the content bounds", opts.Margin)
	}

	if opts.DrawBackground && c.Background != nil {
		bg := *c.Background
		err := render.WithClip(ctx, loosened, func() error {
			return bg.Draw(ctx, loosened, opts.DrawPattern, opts.OptimizePrinting)
		})
		if err != nil {
			return fmt.Errorf("engine: drawing background: %w", err)
		}
	}

	var imageBounds []geometry.Aabb
	for _, s := range c.Strokes {
		if s.ImageBacked() {
			imageBounds = append(imageBounds, s.Bounds())
		}
	}

	err := render.WithClip(ctx, bounds, func() error {
		for _, s := range c.Strokes {
			draw := s
			if opts.OptimizePrinting && !coveredByImage(imageBounds, s.Bounds()) {
				// Never recolor a shared stroke, draw a clone.
				draw = s.Clone()
				draw.SetToDarkestColor()
			}
			if err := draw.Draw(ctx, opts.ImageScale); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("engine: drawing strokes: %w", err)
	}
	return nil
}

// coveredByImage reports whether bounds lies fully inside one of the
// image bounds. Inclusion on plain bounds is exact; an intersection
// test would have to check hitboxes instead.
func coveredByImage(imageBounds []geometry.Aabb, bounds geometry.Aabb) bool {
	for _, ib := range imageBounds {
		if ib.Contains(bounds) {
			return true
		}
	}
	return false
}

// GenerateSvg renders the content into a vector snapshot with its
// origin moved to (0, 0). Embedded images keep their stored resolution.
// Returns nil without error when the content has no bounds.
func (c StrokeContent) GenerateSvg(opts DrawOptions) (*render.Svg, error) {
	bounds, ok := c.EffectiveBounds()
	if !ok {
		return nil, nil
	}
	loosened := bounds.Loosened(opts.Margin)
	if !loosened.IsValid() {
		return nil, fmt.Errorf("engine: margin %v inverts the content bounds", opts.Margin)
	}
	opts.ImageScale = 1
	svg, err := render.GenWithContext(func(ctx render.Context) error {
		return c.Draw(ctx, opts)
	}, loosened)
	if err != nil {
		return nil, err
	}
	if err := svg.Simplify(); err != nil {
		rnote.Logger().Warn("simplifying stroke content svg failed", "err", err)
	}
	return svg, nil
}
