package strokes

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/tunjan/rnote/compose"
	"github.com/tunjan/rnote/geometry"
	"github.com/tunjan/rnote/render"
)

func sampleList() List {
	red := compose.Color{R: 1, A: 1}
	white := compose.ColorWhite
	return List{
		&BrushStroke{
			Path: compose.PenPath{
				Start: geometry.V(0, 0),
				Segments: compose.Segments{
					compose.LineTo{End: geometry.V(4, 0)},
					compose.QuadBezTo{Ctrl: geometry.V(5, 2), End: geometry.V(6, 0)},
				},
			},
			Style: compose.Style{StrokeWidth: 2, StrokeColor: &red, CapStyle: compose.CapRound},
		},
		&ShapeStroke{
			Shape: compose.Ellipse{Center: geometry.V(10, 10), Radii: geometry.V(3, 2)},
			Style: compose.Style{StrokeWidth: 1, StrokeColor: &red, FillColor: &white},
		},
		&BitmapImage{
			Image: render.Image{Data: []byte{1, 2, 3}, Format: render.ImagePNG},
			Rect:  geometry.NewAabb(geometry.V(20, 20), geometry.V(30, 30)),
		},
		&VectorImage{
			SvgData: `<rect width="1" height="1" />`,
			Rect:    geometry.NewAabb(geometry.V(40, 40), geometry.V(50, 50)),
		},
	}
}

func TestListJsonRoundTrip(t *testing.T) {
	list := sampleList()
	data, err := json.Marshal(list)
	if err != nil {
		t.Fatalf("marshal: %s", err)
	}
	var got List
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %s", err)
	}
	if !reflect.DeepEqual(got, list) {
		t.Fatalf("round trip mismatch:\ngot  %#v\nwant %#v", got, list)
	}
}

func TestListJsonRejectsUnknownVariant(t *testing.T) {
	var got List
	if err := json.Unmarshal([]byte(`[{"textstroke":{}}]`), &got); !errors.Is(err, errUnknownStroke) {
		t.Fatalf("got %v, want errUnknownStroke", err)
	}
	if err := json.Unmarshal([]byte(`[{}]`), &got); !errors.Is(err, errUnknownStroke) {
		t.Fatalf("got %v, want errUnknownStroke", err)
	}
}

func TestBrushStrokeBoundsIncludeWidth(t *testing.T) {
	red := compose.Color{R: 1, A: 1}
	b := &BrushStroke{
		Path: compose.PenPath{
			Start:    geometry.V(0, 0),
			Segments: compose.Segments{compose.LineTo{End: geometry.V(10, 0)}},
		},
		Style: compose.Style{StrokeWidth: 4, StrokeColor: &red},
	}
	want := geometry.NewAabb(geometry.V(-2, -2), geometry.V(12, 2))
	if got := b.Bounds(); got != want {
		t.Fatalf("bounds %v, want %v", got, want)
	}
}

func TestCloneIndependence(t *testing.T) {
	list := sampleList()

	brush := list[0].(*BrushStroke)
	clone := brush.Clone().(*BrushStroke)
	brush.Style.StrokeColor.R = 0
	brush.Path.Segments[0] = compose.LineTo{End: geometry.V(-1, -1)}
	if clone.Style.StrokeColor.R != 1 {
		t.Fatal("clone shares the style color")
	}
	if clone.Path.Segments[0].(compose.LineTo).End != geometry.V(4, 0) {
		t.Fatal("clone shares the segment slice")
	}

	bitmap := list[2].(*BitmapImage)
	bclone := bitmap.Clone().(*BitmapImage)
	bitmap.Image.Data[0] = 9
	if bclone.Image.Data[0] != 1 {
		t.Fatal("clone shares the image bytes")
	}
}

func TestSetToDarkestColor(t *testing.T) {
	list := sampleList()

	shape := list[1].(*ShapeStroke)
	shape.SetToDarkestColor()
	red := compose.Color{R: 1, A: 1}
	if *shape.Style.StrokeColor != red || *shape.Style.FillColor != red {
		t.Fatalf("colors not overridden: stroke %v fill %v",
			*shape.Style.StrokeColor, *shape.Style.FillColor)
	}

	bitmap := list[2].(*BitmapImage)
	before := append([]byte(nil), bitmap.Image.Data...)
	bitmap.SetToDarkestColor()
	if !reflect.DeepEqual(bitmap.Image.Data, before) {
		t.Fatal("image stroke was mutated")
	}
}

func TestImageBacked(t *testing.T) {
	list := sampleList()
	want := []bool{false, false, true, true}
	for i, s := range list {
		if got := s.ImageBacked(); got != want[i] {
			t.Errorf("stroke %d: ImageBacked() = %v, want %v", i, got, want[i])
		}
	}
}

func TestDrawToRecorder(t *testing.T) {
	list := sampleList()
	rec := &render.Recorder{}
	if err := list[0].Draw(rec, 1); err != nil {
		t.Fatalf("draw brush stroke: %s", err)
	}
	if _, ok := rec.Ops[0].(render.OpStart); !ok {
		t.Fatalf("first op is %T, want OpStart", rec.Ops[0])
	}
	if paints := rec.Paints(); len(paints) != 1 || paints[0].StrokeColor == nil {
		t.Fatalf("brush stroke did not paint its style, paints %v", paints)
	}

	rec = &render.Recorder{}
	if err := list[3].Draw(rec, 2); err != nil {
		t.Fatalf("draw vector image: %s", err)
	}
	images := rec.Images()
	if len(images) != 1 {
		t.Fatalf("got %d image ops, want 1", len(images))
	}
	if images[0].Image.Format != render.ImageSVG {
		t.Fatalf("image format %q, want svg", images[0].Image.Format)
	}
	if images[0].Scale != 2 {
		t.Fatalf("image scale %v, want 2", images[0].Scale)
	}
}
