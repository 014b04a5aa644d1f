package compose

import (
	"testing"

	"github.com/tunjan/rnote/geometry"
)

func TestLineBoundsNormalizes(t *testing.T) {
	l := Line{Start: geometry.V(5, 1), End: geometry.V(-2, 8)}
	want := geometry.NewAabb(geometry.V(-2, 1), geometry.V(5, 8))
	if got := l.Bounds(); got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestRectangleAppendTo(t *testing.T) {
	r := Rectangle{Rect: geometry.NewAabb(geometry.V(1, 2), geometry.V(4, 6))}
	var rb recordingBuilder
	r.AppendTo(&rb)

	wantVerbs := []string{"start", "line", "line", "line", "close"}
	if len(rb.verbs) != len(wantVerbs) {
		t.Fatalf("expected %d verbs, got %v", len(wantVerbs), rb.verbs)
	}
	for i, v := range wantVerbs {
		if rb.verbs[i] != v {
			t.Errorf("verb %d: expected %s, got %s", i, v, rb.verbs[i])
		}
	}
	if rb.pts[0] != geometry.V(1, 2) {
		t.Errorf("expected the outline to start at mins, got %v", rb.pts[0])
	}
	if rb.pts[2] != geometry.V(4, 6) {
		t.Errorf("expected the second corner at maxs, got %v", rb.pts[2])
	}
}

func TestEllipse(t *testing.T) {
	e := Ellipse{Center: geometry.V(10, 20), Radii: geometry.V(4, 2)}
	want := geometry.NewAabb(geometry.V(6, 18), geometry.V(14, 22))
	if got := e.Bounds(); got != want {
		t.Errorf("expected bounds %v, got %v", want, got)
	}

	var rb recordingBuilder
	e.AppendTo(&rb)
	wantVerbs := []string{"start", "cube", "cube", "cube", "cube", "close"}
	if len(rb.verbs) != len(wantVerbs) {
		t.Fatalf("expected %d verbs, got %v", len(wantVerbs), rb.verbs)
	}
	if rb.pts[0] != geometry.V(14, 20) {
		t.Errorf("expected the outline to start at the right apex, got %v", rb.pts[0])
	}
}

func TestShapeJsonRoundTrip(t *testing.T) {
	shapes := []Shape{
		Line{Start: geometry.V(0, 0), End: geometry.V(1, 1)},
		Rectangle{Rect: geometry.NewAabb(geometry.V(0, 0), geometry.V(2, 2))},
		Ellipse{Center: geometry.V(1, 1), Radii: geometry.V(2, 3)},
	}
	for _, in := range shapes {
		data, err := MarshalShape(in)
		if err != nil {
			t.Fatalf("marshal %T failed: %s", in, err)
		}
		out, err := UnmarshalShape(data)
		if err != nil {
			t.Fatalf("unmarshal %s failed: %s", data, err)
		}
		if out != in {
			t.Errorf("expected %v, got %v", in, out)
		}
	}
}

func TestUnmarshalShapeRejectsUnknownVariant(t *testing.T) {
	if _, err := UnmarshalShape([]byte(`{"polygon":{}}`)); err == nil {
		t.Error("expected an unknown shape variant to be rejected")
	}
}
