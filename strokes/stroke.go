// Package strokes holds the entities placed on a document: freehand pen
// paths, geometric shapes and embedded images.
package strokes

import (
	"github.com/tunjan/rnote/geometry"
	"github.com/tunjan/rnote/render"
)

// Stroke is a drawable document entity. Strokes are shared freely
// between contents, so treat them as immutable: mutate a Clone, never a
// stroke received from elsewhere.
type Stroke interface {
	// Bounds returns the area the stroke covers, including its width.
	Bounds() geometry.Aabb
	// Draw renders the stroke onto ctx. imageScale hints the pixel
	// density embedded images should target.
	Draw(ctx render.Context, imageScale float64) error
	// SetToDarkestColor replaces every color of the stroke with its
	// darkest one. Image strokes are left untouched.
	SetToDarkestColor()
	// Clone returns a deep copy.
	Clone() Stroke
	// ImageBacked reports whether the stroke renders an embedded image.
	ImageBacked() bool
}
