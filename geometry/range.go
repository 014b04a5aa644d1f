package geometry

import "cmp"

// Range is a half-open interval [Start, End).
type Range[T cmp.Ordered] struct {
	Start, End T
}

// PositiveRange orders first and second into a half-open interval with
// Start <= End. Equal endpoints give the empty range.
func PositiveRange[T cmp.Ordered](first, second T) Range[T] {
	if first < second {
		return Range[T]{Start: first, End: second}
	}
	return Range[T]{Start: second, End: first}
}

// IsEmpty reports whether the range contains no values.
func (r Range[T]) IsEmpty() bool { return !(r.Start < r.End) }

// Contains reports whether v lies in [Start, End).
func (r Range[T]) Contains(v T) bool { return r.Start <= v && v < r.End }
