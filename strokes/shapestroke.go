package strokes

import (
	"encoding/json"
	"fmt"

	"github.com/tunjan/rnote/compose"
	"github.com/tunjan/rnote/geometry"
	"github.com/tunjan/rnote/render"
)

// ShapeStroke is a geometric shape with a style.
type ShapeStroke struct {
	Shape compose.Shape
	Style compose.Style
}

var _ Stroke = (*ShapeStroke)(nil)

func (s *ShapeStroke) Bounds() geometry.Aabb {
	return s.Shape.Bounds().Loosened(s.Style.StrokeWidth / 2)
}

func (s *ShapeStroke) Draw(ctx render.Context, _ float64) error {
	s.Shape.AppendTo(ctx)
	if err := ctx.Paint(s.Style); err != nil {
		return fmt.Errorf("strokes: painting shape stroke: %w", err)
	}
	return nil
}

func (s *ShapeStroke) SetToDarkestColor() {
	if darkest, ok := s.Style.DarkestColor(); ok {
		s.Style.OverrideColors(darkest)
	}
}

// Clone returns a deep copy. Shapes have value semantics, copying the
// interface value copies the shape.
func (s *ShapeStroke) Clone() Stroke {
	return &ShapeStroke{Shape: s.Shape, Style: s.Style.Clone()}
}

func (s *ShapeStroke) ImageBacked() bool { return false }

type shapeStrokeJSON struct {
	Shape json.RawMessage `json:"shape"`
	Style compose.Style   `json:"style"`
}

func (s ShapeStroke) MarshalJSON() ([]byte, error) {
	shape, err := compose.MarshalShape(s.Shape)
	if err != nil {
		return nil, fmt.Errorf("strokes: marshalling shape stroke: %w", err)
	}
	return json.Marshal(shapeStrokeJSON{Shape: shape, Style: s.Style})
}

func (s *ShapeStroke) UnmarshalJSON(data []byte) error {
	var raw shapeStrokeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	shape, err := compose.UnmarshalShape(raw.Shape)
	if err != nil {
		return err
	}
	s.Shape = shape
	s.Style = raw.Style
	return nil
}
