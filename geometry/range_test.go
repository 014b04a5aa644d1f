package geometry

import "testing"

func TestPositiveRangeSwapsInvertedBounds(t *testing.T) {
	a := PositiveRange(5.0, 2.0)
	b := PositiveRange(2.0, 5.0)
	if a != b {
		t.Fatalf("expected both argument orders to yield the same range, got %v and %v", a, b)
	}
	if a.Start != 2 || a.End != 5 {
		t.Errorf("expected [2, 5), got [%v, %v)", a.Start, a.End)
	}
}

func TestPositiveRangeIsHalfOpen(t *testing.T) {
	r := PositiveRange(2.0, 5.0)
	if !r.Contains(2) {
		t.Error("expected the range to contain its start")
	}
	if r.Contains(5) {
		t.Error("expected the range to exclude its end")
	}
	if r.Contains(1.999) || r.Contains(5.001) {
		t.Error("expected values outside the bounds to be excluded")
	}
}

func TestPositiveRangeEqualBoundsIsEmpty(t *testing.T) {
	r := PositiveRange(3.0, 3.0)
	if !r.IsEmpty() {
		t.Errorf("expected [%v, %v) to be empty", r.Start, r.End)
	}
	if r.Contains(3) {
		t.Error("expected the empty range to contain nothing")
	}
}

func TestPositiveRangeInts(t *testing.T) {
	r := PositiveRange(7, -1)
	if r.Start != -1 || r.End != 7 {
		t.Errorf("expected [-1, 7), got [%d, %d)", r.Start, r.End)
	}
	if r.IsEmpty() {
		t.Error("expected a non-empty range")
	}
}
