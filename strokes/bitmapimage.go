package strokes

import (
	"fmt"

	"github.com/tunjan/rnote/geometry"
	"github.com/tunjan/rnote/render"
)

// BitmapImage is an imported raster image placed on the document.
type BitmapImage struct {
	Image render.Image  `json:"image"`
	Rect  geometry.Aabb `json:"rect"`
}

var _ Stroke = (*BitmapImage)(nil)

func (b *BitmapImage) Bounds() geometry.Aabb { return b.Rect }

func (b *BitmapImage) Draw(ctx render.Context, imageScale float64) error {
	if err := ctx.DrawImage(b.Image, b.Rect, imageScale); err != nil {
		return fmt.Errorf("strokes: drawing bitmap image: %w", err)
	}
	return nil
}

// SetToDarkestColor leaves the image untouched.
func (b *BitmapImage) SetToDarkestColor() {}

func (b *BitmapImage) Clone() Stroke {
	return &BitmapImage{
		Image: render.Image{
			Data:    append([]byte(nil), b.Image.Data...),
			Format:  b.Image.Format,
			Preview: append([]byte(nil), b.Image.Preview...),
		},
		Rect: b.Rect,
	}
}

func (b *BitmapImage) ImageBacked() bool { return true }
