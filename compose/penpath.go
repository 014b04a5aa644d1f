package compose

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/tunjan/rnote/geometry"
)

// PathBuilder is the sink for path construction commands. Drawing backends
// implement it; Start opens a new subpath and Stop ends the current one,
// optionally closing the loop.
type PathBuilder interface {
	Start(p geometry.Vec2)
	Line(to geometry.Vec2)
	QuadBezier(ctrl, to geometry.Vec2)
	CubeBezier(ctrl1, ctrl2, to geometry.Vec2)
	Stop(closeLoop bool)
}

// Segment is one step of a pen path. The coordinates are absolute.
type Segment interface {
	// EndPoint returns the point the segment ends at.
	EndPoint() geometry.Vec2

	appendTo(b PathBuilder)
	extendBounds(box geometry.Aabb, start geometry.Vec2) geometry.Aabb
	flatten(pts []geometry.Vec2, start geometry.Vec2, steps int) []geometry.Vec2
}

// LineTo is a straight segment.
type LineTo struct {
	End geometry.Vec2 `json:"end"`
}

// QuadBezTo is a quadratic bezier segment.
type QuadBezTo struct {
	Ctrl geometry.Vec2 `json:"cp"`
	End  geometry.Vec2 `json:"end"`
}

// CubBezTo is a cubic bezier segment.
type CubBezTo struct {
	Ctrl1 geometry.Vec2 `json:"cp1"`
	Ctrl2 geometry.Vec2 `json:"cp2"`
	End   geometry.Vec2 `json:"end"`
}

func (s LineTo) EndPoint() geometry.Vec2    { return s.End }
func (s QuadBezTo) EndPoint() geometry.Vec2 { return s.End }
func (s CubBezTo) EndPoint() geometry.Vec2  { return s.End }

func (s LineTo) appendTo(b PathBuilder)    { b.Line(s.End) }
func (s QuadBezTo) appendTo(b PathBuilder) { b.QuadBezier(s.Ctrl, s.End) }
func (s CubBezTo) appendTo(b PathBuilder)  { b.CubeBezier(s.Ctrl1, s.Ctrl2, s.End) }

func (s LineTo) extendBounds(box geometry.Aabb, _ geometry.Vec2) geometry.Aabb {
	return box.ExtendedByPoint(s.End)
}

func (s QuadBezTo) extendBounds(box geometry.Aabb, start geometry.Vec2) geometry.Aabb {
	box = box.ExtendedByPoint(s.End)
	for _, t := range quadExtrema(start.X, s.Ctrl.X, s.End.X) {
		box = box.ExtendedByPoint(QuadBezierAt(start, s.Ctrl, s.End, t))
	}
	for _, t := range quadExtrema(start.Y, s.Ctrl.Y, s.End.Y) {
		box = box.ExtendedByPoint(QuadBezierAt(start, s.Ctrl, s.End, t))
	}
	return box
}

func (s CubBezTo) extendBounds(box geometry.Aabb, start geometry.Vec2) geometry.Aabb {
	box = box.ExtendedByPoint(s.End)
	for _, t := range cubicExtrema(start.X, s.Ctrl1.X, s.Ctrl2.X, s.End.X) {
		box = box.ExtendedByPoint(CubicBezierAt(start, s.Ctrl1, s.Ctrl2, s.End, t))
	}
	for _, t := range cubicExtrema(start.Y, s.Ctrl1.Y, s.Ctrl2.Y, s.End.Y) {
		box = box.ExtendedByPoint(CubicBezierAt(start, s.Ctrl1, s.Ctrl2, s.End, t))
	}
	return box
}

func (s LineTo) flatten(pts []geometry.Vec2, _ geometry.Vec2, _ int) []geometry.Vec2 {
	return append(pts, s.End)
}

func (s QuadBezTo) flatten(pts []geometry.Vec2, start geometry.Vec2, steps int) []geometry.Vec2 {
	for k := 1; k <= steps; k++ {
		pts = append(pts, QuadBezierAt(start, s.Ctrl, s.End, float64(k)/float64(steps)))
	}
	return pts
}

func (s CubBezTo) flatten(pts []geometry.Vec2, start geometry.Vec2, steps int) []geometry.Vec2 {
	for k := 1; k <= steps; k++ {
		pts = append(pts, CubicBezierAt(start, s.Ctrl1, s.Ctrl2, s.End, float64(k)/float64(steps)))
	}
	return pts
}

// QuadBezierAt evaluates the quadratic bezier p0, ctrl, p1 at t.
func QuadBezierAt(p0, ctrl, p1 geometry.Vec2, t float64) geometry.Vec2 {
	u := 1 - t
	return p0.Scale(u * u).Add(ctrl.Scale(2 * u * t)).Add(p1.Scale(t * t))
}

// CubicBezierAt evaluates the cubic bezier p0, ctrl1, ctrl2, p1 at t.
func CubicBezierAt(p0, ctrl1, ctrl2, p1 geometry.Vec2, t float64) geometry.Vec2 {
	u := 1 - t
	return p0.Scale(u * u * u).
		Add(ctrl1.Scale(3 * u * u * t)).
		Add(ctrl2.Scale(3 * u * t * t)).
		Add(p1.Scale(t * t * t))
}

// quadExtrema returns the parameters in (0, 1) where the quadratic bezier
// coordinate p0, p1, p2 has zero derivative.
func quadExtrema(p0, p1, p2 float64) []float64 {
	denom := p0 - 2*p1 + p2
	if denom == 0 {
		return nil
	}
	if t := (p0 - p1) / denom; t > 0 && t < 1 {
		return []float64{t}
	}
	return nil
}

// cubicExtrema returns the parameters in (0, 1) where the cubic bezier
// coordinate p0..p3 has zero derivative, by solving the derivative
// quadratic.
func cubicExtrema(p0, p1, p2, p3 float64) []float64 {
	a := 3 * (p3 - 3*p2 + 3*p1 - p0)
	b := 6 * (p2 - 2*p1 + p0)
	c := 3 * (p1 - p0)
	var out []float64
	add := func(t float64) {
		if t > 0 && t < 1 {
			out = append(out, t)
		}
	}
	if a == 0 {
		if b != 0 {
			add(-c / b)
		}
		return out
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return out
	}
	sq := math.Sqrt(disc)
	add((-b + sq) / (2 * a))
	add((-b - sq) / (2 * a))
	return out
}

// Segments is a pen path segment list with a tagged-union JSON form:
// each element is an object with exactly one of the keys "lineto",
// "quadbezto" or "cubbezto".
type Segments []Segment

type segmentJSON struct {
	Line  *LineTo    `json:"lineto,omitempty"`
	Quad  *QuadBezTo `json:"quadbezto,omitempty"`
	Cubic *CubBezTo  `json:"cubbezto,omitempty"`
}

var errUnknownSegment = errors.New("compose: segment with no known variant")

func (ss Segments) MarshalJSON() ([]byte, error) {
	out := make([]segmentJSON, len(ss))
	for i, s := range ss {
		switch seg := s.(type) {
		case LineTo:
			out[i].Line = &seg
		case QuadBezTo:
			out[i].Quad = &seg
		case CubBezTo:
			out[i].Cubic = &seg
		default:
			return nil, fmt.Errorf("compose: unknown segment type %T", s)
		}
	}
	return json.Marshal(out)
}

func (ss *Segments) UnmarshalJSON(data []byte) error {
	var raw []segmentJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Segments, 0, len(raw))
	for _, r := range raw {
		switch {
		case r.Line != nil:
			out = append(out, *r.Line)
		case r.Quad != nil:
			out = append(out, *r.Quad)
		case r.Cubic != nil:
			out = append(out, *r.Cubic)
		default:
			return errUnknownSegment
		}
	}
	*ss = out
	return nil
}

// PenPath is a freehand path: a start point followed by segments.
type PenPath struct {
	Start    geometry.Vec2 `json:"start"`
	Segments Segments      `json:"segments"`
}

// AppendTo replays the path onto b as a single open subpath. The caller
// ends it with b.Stop.
func (p PenPath) AppendTo(b PathBuilder) {
	b.Start(p.Start)
	for _, s := range p.Segments {
		s.appendTo(b)
	}
}

// Bounds returns the tight bounding box of the path geometry, ignoring
// stroke width.
func (p PenPath) Bounds() geometry.Aabb {
	box := geometry.NewInvalidAabb().ExtendedByPoint(p.Start)
	cur := p.Start
	for _, s := range p.Segments {
		box = s.extendBounds(box, cur)
		cur = s.EndPoint()
	}
	return box
}

// Flatten approximates the path as a polyline, sampling each curved
// segment stepsPerCurve times. stepsPerCurve < 1 is treated as 1.
func (p PenPath) Flatten(stepsPerCurve int) []geometry.Vec2 {
	if stepsPerCurve < 1 {
		stepsPerCurve = 1
	}
	pts := []geometry.Vec2{p.Start}
	cur := p.Start
	for _, s := range p.Segments {
		pts = s.flatten(pts, cur, stepsPerCurve)
		cur = s.EndPoint()
	}
	return pts
}
