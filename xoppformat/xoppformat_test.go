package xoppformat

import (
	"bytes"
	"encoding/xml"
	"reflect"
	"testing"

	"github.com/tunjan/rnote/geometry"
)

func TestColorAttr(t *testing.T) {
	cases := []struct {
		in   string
		want XoppColor
	}{
		{"#12345678", XoppColor{0x12, 0x34, 0x56, 0x78}},
		{"#336699", XoppColor{0x33, 0x66, 0x99, 0xff}},
		{"black", XoppColor{0x00, 0x00, 0x00, 0xff}},
		{"blue", XoppColor{0x33, 0x33, 0xcc, 0xff}},
		{"lightblue", XoppColor{0x00, 0xc0, 0xff, 0xff}},
		{"white", XoppColor{0xff, 0xff, 0xff, 0xff}},
	}
	for _, c := range cases {
		var got XoppColor
		if err := got.UnmarshalXMLAttr(xml.Attr{Value: c.in}); err != nil {
			t.Errorf("parsing %q: %s", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("color %q parsed to %v, want %v", c.in, got, c.want)
		}
	}

	for _, bad := range []string{"chartreuse", "#12", "#12345", "#zzzzzz", ""} {
		var got XoppColor
		if err := got.UnmarshalXMLAttr(xml.Attr{Value: bad}); err == nil {
			t.Errorf("color %q should be rejected", bad)
		}
	}
}

func TestColorAttrRoundTrip(t *testing.T) {
	c := XoppColor{0xab, 0xcd, 0xef, 0x80}
	attr, err := c.MarshalXMLAttr(xml.Name{Local: "color"})
	if err != nil {
		t.Fatalf("marshal: %s", err)
	}
	if attr.Value != "#abcdef80" {
		t.Fatalf("attr value %q, want #abcdef80", attr.Value)
	}
	var got XoppColor
	if err := got.UnmarshalXMLAttr(attr); err != nil {
		t.Fatalf("unmarshal: %s", err)
	}
	if got != c {
		t.Fatalf("round trip mismatch: %v != %v", got, c)
	}
}

func TestWidthsAttr(t *testing.T) {
	var w XoppWidths
	if err := w.UnmarshalXMLAttr(xml.Attr{Value: "1.41 0.5 0.6"}); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !reflect.DeepEqual(w, XoppWidths{1.41, 0.5, 0.6}) {
		t.Fatalf("widths %v", w)
	}
	if w.Nominal() != 1.41 {
		t.Fatalf("nominal width %v, want 1.41", w.Nominal())
	}

	attr, err := w.MarshalXMLAttr(xml.Name{Local: "width"})
	if err != nil {
		t.Fatalf("marshal: %s", err)
	}
	if attr.Value != "1.41 0.5 0.6" {
		t.Fatalf("attr value %q", attr.Value)
	}

	for _, bad := range []string{"", "  ", "abc", "1 x"} {
		var w XoppWidths
		if err := w.UnmarshalXMLAttr(xml.Attr{Value: bad}); err == nil {
			t.Errorf("width %q should be rejected", bad)
		}
	}
}

func TestCoords(t *testing.T) {
	coords := []geometry.Vec2{geometry.V(1.5, 2), geometry.V(-3, 4.25)}
	s := FormatCoords(coords)
	if s != "1.5 2 -3 4.25" {
		t.Fatalf("formatted coords %q", s)
	}
	got, err := ParseCoords(s)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !reflect.DeepEqual(got, coords) {
		t.Fatalf("round trip mismatch: %v != %v", got, coords)
	}

	if _, err := ParseCoords("1 2 3"); err == nil {
		t.Fatal("odd coordinate count should be rejected")
	}
	if _, err := ParseCoords("1 nope"); err == nil {
		t.Fatal("non numeric coordinate should be rejected")
	}
	if got, err := ParseCoords(" \n "); err != nil || len(got) != 0 {
		t.Fatalf("blank coords should parse empty, got %v, %v", got, err)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	file := &XoppFile{
		Creator: "rnote test",
		Version: FileVersion,
		Title:   "exported strokes",
		Pages: []XoppPage{{
			Width:  612,
			Height: 792,
			Background: XoppBackground{
				Type:  BackgroundSolid,
				Color: XoppColor{0xff, 0xff, 0xff, 0xff},
				Style: StyleGraph,
			},
			Layers: []XoppLayer{{
				Strokes: []XoppStroke{{
					Tool:   ToolPen,
					Color:  XoppColor{0x33, 0x33, 0xcc, 0xff},
					Width:  XoppWidths{1.41},
					Coords: "10 10 20 20 30 15",
				}},
				Texts: []XoppText{{
					Font: "Sans", Size: 12, X: 5, Y: 5,
					Color: XoppColor{0, 0, 0, 0xff},
					Text:  "hello",
				}},
				Images: []XoppImage{{
					Left: 40, Top: 40, Right: 60, Bottom: 60,
					Data: "aGVsbG8=",
				}},
			}},
		}},
	}

	var buf bytes.Buffer
	if err := Write(&buf, file); err != nil {
		t.Fatalf("write: %s", err)
	}
	if b := buf.Bytes(); len(b) < 2 || b[0] != 0x1f || b[1] != 0x8b {
		t.Fatal("output is not gzipped")
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("read: %s", err)
	}
	if got.Title != file.Title || got.Creator != file.Creator {
		t.Fatalf("header mismatch: %q %q", got.Title, got.Creator)
	}
	if len(got.Pages) != 1 || len(got.Pages[0].Layers) != 1 {
		t.Fatalf("page structure mismatch: %+v", got.Pages)
	}
	page := got.Pages[0]
	if page.Width != 612 || page.Height != 792 {
		t.Fatalf("page size %vx%v", page.Width, page.Height)
	}
	if page.Background.Style != StyleGraph {
		t.Fatalf("background style %q", page.Background.Style)
	}
	layer := page.Layers[0]
	if !reflect.DeepEqual(layer.Strokes, file.Pages[0].Layers[0].Strokes) {
		t.Fatalf("strokes mismatch:\ngot  %+v\nwant %+v", layer.Strokes, file.Pages[0].Layers[0].Strokes)
	}
	if len(layer.Texts) != 1 || layer.Texts[0].Text != "hello" {
		t.Fatalf("texts mismatch: %+v", layer.Texts)
	}
	if len(layer.Images) != 1 || layer.Images[0].Data != "aGVsbG8=" {
		t.Fatalf("images mismatch: %+v", layer.Images)
	}
}

func TestReadRejectsGarbage(t *testing.T) {
	if _, err := Read(bytes.NewReader([]byte("not gzip"))); err == nil {
		t.Fatal("plain text input should be rejected")
	}
}
