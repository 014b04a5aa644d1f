package geometry

import "math"

// Aabb is an axis-aligned bounding box spanning from Mins (top left) to
// Maxs (bottom right).
type Aabb struct {
	Mins Vec2 `json:"mins"`
	Maxs Vec2 `json:"maxs"`
}

// NewAabb returns the box spanning mins to maxs.
func NewAabb(mins, maxs Vec2) Aabb { return Aabb{Mins: mins, Maxs: maxs} }

// NewInvalidAabb returns the box that acts as the identity for Merged:
// merging any box into it yields that box unchanged.
func NewInvalidAabb() Aabb {
	return Aabb{
		Mins: Vec2{math.Inf(1), math.Inf(1)},
		Maxs: Vec2{math.Inf(-1), math.Inf(-1)},
	}
}

// IsValid reports whether Mins <= Maxs on both axes. A zero-extent box is
// valid.
func (a Aabb) IsValid() bool {
	return a.Mins.X <= a.Maxs.X && a.Mins.Y <= a.Maxs.Y
}

// Merged returns the smallest box enclosing both a and other.
func (a Aabb) Merged(other Aabb) Aabb {
	return Aabb{Mins: a.Mins.Min(other.Mins), Maxs: a.Maxs.Max(other.Maxs)}
}

// ExtendedByPoint returns the smallest box enclosing both a and p.
func (a Aabb) ExtendedByPoint(p Vec2) Aabb {
	return Aabb{Mins: a.Mins.Min(p), Maxs: a.Maxs.Max(p)}
}

// Loosened returns the box grown by margin on all four sides. A negative
// margin shrinks the box and can invert it; check IsValid afterwards.
func (a Aabb) Loosened(margin float64) Aabb {
	m := Vec2{margin, margin}
	return Aabb{Mins: a.Mins.Sub(m), Maxs: a.Maxs.Add(m)}
}

// Extents returns the width and height of the box.
func (a Aabb) Extents() Vec2 { return a.Maxs.Sub(a.Mins) }

// Center returns the midpoint of the box.
func (a Aabb) Center() Vec2 { return a.Mins.Add(a.Maxs).Scale(0.5) }

// Contains reports whether other lies entirely inside a, borders included.
func (a Aabb) Contains(other Aabb) bool {
	return a.Mins.X <= other.Mins.X && a.Mins.Y <= other.Mins.Y &&
		other.Maxs.X <= a.Maxs.X && other.Maxs.Y <= a.Maxs.Y
}

// Translate returns the box shifted by offset.
func (a Aabb) Translate(offset Vec2) Aabb {
	return Aabb{Mins: a.Mins.Add(offset), Maxs: a.Maxs.Add(offset)}
}
