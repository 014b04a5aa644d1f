package strokes

import (
	"fmt"

	"github.com/tunjan/rnote/geometry"
	"github.com/tunjan/rnote/render"
)

// VectorImage is an imported SVG placed on the document. Preview holds
// an optional PNG fallback for backends without vector image support.
type VectorImage struct {
	SvgData string        `json:"svg_data"`
	Preview []byte        `json:"preview,omitempty"`
	Rect    geometry.Aabb `json:"rect"`
}

var _ Stroke = (*VectorImage)(nil)

func (v *VectorImage) Bounds() geometry.Aabb { return v.Rect }

func (v *VectorImage) Draw(ctx render.Context, imageScale float64) error {
	img := render.Image{
		Data:    []byte(v.SvgData),
		Format:  render.ImageSVG,
		Preview: v.Preview,
	}
	if err := ctx.DrawImage(img, v.Rect, imageScale); err != nil {
		return fmt.Errorf("strokes: drawing vector image: %w", err)
	}
	return nil
}

// SetToDarkestColor leaves the image untouched.
func (v *VectorImage) SetToDarkestColor() {}

func (v *VectorImage) Clone() Stroke {
	return &VectorImage{
		SvgData: v.SvgData,
		Preview: append([]byte(nil), v.Preview...),
		Rect:    v.Rect,
	}
}

func (v *VectorImage) ImageBacked() bool { return true }
