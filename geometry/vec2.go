// Package geometry provides the 2D primitives of the stroke content
// engine: vectors, axis-aligned bounding boxes and scalar ranges, all in
// document coordinates (x growing right, y growing down).
package geometry

import (
	"encoding/json"
	"fmt"
	"math"
)

// Vec2 is a 2D vector with float64 components.
//
// It serializes as a two-element JSON array.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{x, y}.
func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Min returns the componentwise minimum of v and o.
func (v Vec2) Min(o Vec2) Vec2 {
	return Vec2{math.Min(v.X, o.X), math.Min(v.Y, o.Y)}
}

// Max returns the componentwise maximum of v and o.
func (v Vec2) Max(o Vec2) Vec2 {
	return Vec2{math.Max(v.X, o.X), math.Max(v.Y, o.Y)}
}

// MarshalJSON encodes the vector as [x, y].
func (v Vec2) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{v.X, v.Y})
}

// UnmarshalJSON decodes a [x, y] array.
func (v *Vec2) UnmarshalJSON(data []byte) error {
	var arr []float64
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("geometry: vector must be an array: %w", err)
	}
	if len(arr) != 2 {
		return fmt.Errorf("geometry: vector needs two components, got %d", len(arr))
	}
	v.X, v.Y = arr[0], arr[1]
	return nil
}
