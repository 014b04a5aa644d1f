package strokes

import (
	"encoding/json"
	"errors"
	"fmt"
)

// List is an ordered collection of strokes, drawn bottom to top.
//
// The JSON form is a tagged union per element: an object with exactly
// one of the keys "brushstroke", "shapestroke", "bitmapimage" or
// "vectorimage".
type List []Stroke

type strokeJSON struct {
	BrushStroke *BrushStroke `json:"brushstroke,omitempty"`
	ShapeStroke *ShapeStroke `json:"shapestroke,omitempty"`
	BitmapImage *BitmapImage `json:"bitmapimage,omitempty"`
	VectorImage *VectorImage `json:"vectorimage,omitempty"`
}

var errUnknownStroke = errors.New("strokes: stroke with no known variant")

func (l List) MarshalJSON() ([]byte, error) {
	out := make([]strokeJSON, len(l))
	for i, s := range l {
		switch s := s.(type) {
		case *BrushStroke:
			out[i].BrushStroke = s
		case *ShapeStroke:
			out[i].ShapeStroke = s
		case *BitmapImage:
			out[i].BitmapImage = s
		case *VectorImage:
			out[i].VectorImage = s
		default:
			return nil, fmt.Errorf("strokes: unknown stroke type %T", s)
		}
	}
	return json.Marshal(out)
}

func (l *List) UnmarshalJSON(data []byte) error {
	var raw []strokeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(List, 0, len(raw))
	for _, r := range raw {
		switch {
		case r.BrushStroke != nil:
			out = append(out, r.BrushStroke)
		case r.ShapeStroke != nil:
			out = append(out, r.ShapeStroke)
		case r.BitmapImage != nil:
			out = append(out, r.BitmapImage)
		case r.VectorImage != nil:
			out = append(out, r.VectorImage)
		default:
			return errUnknownStroke
		}
	}
	*l = out
	return nil
}
