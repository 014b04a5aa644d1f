package compose

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tunjan/rnote/geometry"
)

// Shape is a closed or open geometric figure that can replay itself onto a
// PathBuilder.
type Shape interface {
	// Bounds returns the tight bounding box of the shape geometry.
	Bounds() geometry.Aabb
	// AppendTo replays the shape onto b, including the terminating Stop.
	AppendTo(b PathBuilder)
}

// Line is a straight segment between two points.
type Line struct {
	Start geometry.Vec2 `json:"start"`
	End   geometry.Vec2 `json:"end"`
}

func (l Line) Bounds() geometry.Aabb {
	return geometry.NewInvalidAabb().ExtendedByPoint(l.Start).ExtendedByPoint(l.End)
}

func (l Line) AppendTo(b PathBuilder) {
	b.Start(l.Start)
	b.Line(l.End)
	b.Stop(false)
}

// Rectangle is an axis-aligned rectangle.
type Rectangle struct {
	Rect geometry.Aabb `json:"rect"`
}

func (r Rectangle) Bounds() geometry.Aabb { return r.Rect }

func (r Rectangle) AppendTo(b PathBuilder) {
	b.Start(r.Rect.Mins)
	b.Line(geometry.V(r.Rect.Maxs.X, r.Rect.Mins.Y))
	b.Line(r.Rect.Maxs)
	b.Line(geometry.V(r.Rect.Mins.X, r.Rect.Maxs.Y))
	b.Stop(true)
}

// Ellipse is an axis-aligned ellipse.
type Ellipse struct {
	Center geometry.Vec2 `json:"center"`
	Radii  geometry.Vec2 `json:"radii"`
}

func (e Ellipse) Bounds() geometry.Aabb {
	return geometry.NewAabb(e.Center.Sub(e.Radii), e.Center.Add(e.Radii))
}

// ellipseKappa is the cubic bezier control distance approximating a
// quarter arc: 4*(sqrt(2)-1)/3.
const ellipseKappa = 0.5522847498307936

func (e Ellipse) AppendTo(b PathBuilder) {
	cx, cy := e.Center.X, e.Center.Y
	rx, ry := e.Radii.X, e.Radii.Y
	kx, ky := rx*ellipseKappa, ry*ellipseKappa
	b.Start(geometry.V(cx+rx, cy))
	b.CubeBezier(geometry.V(cx+rx, cy+ky), geometry.V(cx+kx, cy+ry), geometry.V(cx, cy+ry))
	b.CubeBezier(geometry.V(cx-kx, cy+ry), geometry.V(cx-rx, cy+ky), geometry.V(cx-rx, cy))
	b.CubeBezier(geometry.V(cx-rx, cy-ky), geometry.V(cx-kx, cy-ry), geometry.V(cx, cy-ry))
	b.CubeBezier(geometry.V(cx+kx, cy-ry), geometry.V(cx+rx, cy-ky), geometry.V(cx+rx, cy))
	b.Stop(true)
}

type shapeJSON struct {
	Line      *Line      `json:"line,omitempty"`
	Rectangle *Rectangle `json:"rectangle,omitempty"`
	Ellipse   *Ellipse   `json:"ellipse,omitempty"`
}

var errUnknownShape = errors.New("compose: shape with no known variant")

// MarshalShape encodes s in the tagged-union JSON form: an object with
// exactly one of the keys "line", "rectangle" or "ellipse".
func MarshalShape(s Shape) ([]byte, error) {
	var out shapeJSON
	switch sh := s.(type) {
	case Line:
		out.Line = &sh
	case Rectangle:
		out.Rectangle = &sh
	case Ellipse:
		out.Ellipse = &sh
	default:
		return nil, fmt.Errorf("compose: unknown shape type %T", s)
	}
	return json.Marshal(out)
}

// UnmarshalShape decodes the tagged-union JSON form written by
// MarshalShape.
func UnmarshalShape(data []byte) (Shape, error) {
	var raw shapeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	switch {
	case raw.Line != nil:
		return *raw.Line, nil
	case raw.Rectangle != nil:
		return *raw.Rectangle, nil
	case raw.Ellipse != nil:
		return *raw.Ellipse, nil
	}
	return nil, errUnknownShape
}
