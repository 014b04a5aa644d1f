package render

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/tunjan/rnote/compose"
	"github.com/tunjan/rnote/geometry"
)

func fillRect(t *testing.T, ctx Context, r geometry.Aabb, c compose.Color) {
	t.Helper()
	compose.Rectangle{Rect: r}.AppendTo(ctx)
	if err := ctx.Paint(compose.Style{FillColor: &c}); err != nil {
		t.Fatalf("paint: %s", err)
	}
}

func TestNewRasterContextErrors(t *testing.T) {
	bounds := geometry.NewAabb(geometry.V(0, 0), geometry.V(10, 10))
	if _, err := NewRasterContext(geometry.NewInvalidAabb(), 1); err == nil {
		t.Fatal("invalid bounds should be rejected")
	}
	if _, err := NewRasterContext(bounds, 0); err == nil {
		t.Fatal("zero scale should be rejected")
	}
	if _, err := NewRasterContext(bounds, -2); err == nil {
		t.Fatal("negative scale should be rejected")
	}
}

func TestRasterSize(t *testing.T) {
	rc, err := NewRasterContext(geometry.NewAabb(geometry.V(0, 0), geometry.V(10, 5)), 2)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if got := rc.Image().Bounds(); got != image.Rect(0, 0, 20, 10) {
		t.Fatalf("image bounds %v, want (0,0)-(20,10)", got)
	}

	tiny, err := NewRasterContext(geometry.NewAabb(geometry.V(0, 0), geometry.V(0.1, 0.1)), 1)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if got := tiny.Image().Bounds(); got != image.Rect(0, 0, 1, 1) {
		t.Fatalf("image bounds %v, want 1x1 minimum", got)
	}
}

func TestRasterFill(t *testing.T) {
	rc, err := NewRasterContext(geometry.NewAabb(geometry.V(0, 0), geometry.V(10, 10)), 1)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	fillRect(t, rc, geometry.NewAabb(geometry.V(2, 2), geometry.V(8, 8)), compose.ColorBlack)

	if a := rc.Image().RGBAAt(5, 5).A; a == 0 {
		t.Fatal("interior pixel left transparent")
	}
	if a := rc.Image().RGBAAt(0, 0).A; a != 0 {
		t.Fatalf("pixel outside the rect was painted, alpha %d", a)
	}
	if a := rc.Image().RGBAAt(9, 9).A; a != 0 {
		t.Fatalf("pixel outside the rect was painted, alpha %d", a)
	}
}

func TestRasterFillHonorsOffsetOrigin(t *testing.T) {
	rc, err := NewRasterContext(geometry.NewAabb(geometry.V(100, 100), geometry.V(110, 110)), 1)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	fillRect(t, rc, geometry.NewAabb(geometry.V(102, 102), geometry.V(108, 108)), compose.ColorBlack)
	if a := rc.Image().RGBAAt(5, 5).A; a == 0 {
		t.Fatal("origin offset was not applied")
	}
}

func TestRasterStroke(t *testing.T) {
	rc, err := NewRasterContext(geometry.NewAabb(geometry.V(0, 0), geometry.V(10, 10)), 1)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	black := compose.ColorBlack
	rc.Start(geometry.V(1, 5))
	rc.Line(geometry.V(9, 5))
	rc.Stop(false)
	err = rc.Paint(compose.Style{
		StrokeWidth: 2,
		StrokeColor: &black,
		CapStyle:    compose.CapRound,
		JoinStyle:   compose.JoinRound,
	})
	if err != nil {
		t.Fatalf("paint: %s", err)
	}
	if a := rc.Image().RGBAAt(5, 5).A; a == 0 {
		t.Fatal("stroked line left no ink")
	}
	if a := rc.Image().RGBAAt(5, 1).A; a != 0 {
		t.Fatalf("pixel away from the line was painted, alpha %d", a)
	}
}

func TestRasterClip(t *testing.T) {
	rc, err := NewRasterContext(geometry.NewAabb(geometry.V(0, 0), geometry.V(10, 10)), 1)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	full := geometry.NewAabb(geometry.V(0, 0), geometry.V(10, 10))

	err = WithClip(rc, geometry.NewAabb(geometry.V(0, 0), geometry.V(5, 10)), func() error {
		fillRect(t, rc, full, compose.ColorBlack)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if a := rc.Image().RGBAAt(2, 5).A; a == 0 {
		t.Fatal("pixel inside the clip left transparent")
	}
	if a := rc.Image().RGBAAt(8, 5).A; a != 0 {
		t.Fatalf("pixel outside the clip was painted, alpha %d", a)
	}

	// The clip is gone after the restore.
	fillRect(t, rc, full, compose.ColorBlack)
	if a := rc.Image().RGBAAt(8, 5).A; a == 0 {
		t.Fatal("restore did not lift the clip")
	}

	if err := rc.Restore(); !errors.Is(err, errUnbalancedRestore) {
		t.Fatalf("got %v, want errUnbalancedRestore", err)
	}
}

func encodePng(t *testing.T, c color.RGBA, w, h int) []byte {
	t.Helper()
	src := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatalf("encoding test png: %s", err)
	}
	return buf.Bytes()
}

func TestRasterDrawImage(t *testing.T) {
	rc, err := NewRasterContext(geometry.NewAabb(geometry.V(0, 0), geometry.V(10, 10)), 1)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	red := encodePng(t, color.RGBA{R: 255, A: 255}, 4, 4)
	img := Image{Data: red, Format: ImagePNG}
	if err := rc.DrawImage(img, geometry.NewAabb(geometry.V(2, 2), geometry.V(6, 6)), 1); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	px := rc.Image().RGBAAt(4, 4)
	if px.A == 0 || px.R == 0 {
		t.Fatalf("image pixel not painted, got %v", px)
	}
	if a := rc.Image().RGBAAt(8, 8).A; a != 0 {
		t.Fatalf("pixel outside the image bounds was painted, alpha %d", a)
	}
}

func TestRasterDrawImageClipped(t *testing.T) {
	rc, err := NewRasterContext(geometry.NewAabb(geometry.V(0, 0), geometry.V(10, 10)), 1)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	red := encodePng(t, color.RGBA{R: 255, A: 255}, 4, 4)
	img := Image{Data: red, Format: ImagePNG}
	err = WithClip(rc, geometry.NewAabb(geometry.V(2, 2), geometry.V(4, 6)), func() error {
		return rc.DrawImage(img, geometry.NewAabb(geometry.V(2, 2), geometry.V(6, 6)), 1)
	})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if a := rc.Image().RGBAAt(3, 4).A; a == 0 {
		t.Fatal("pixel inside the clip left transparent")
	}
	if a := rc.Image().RGBAAt(5, 4).A; a != 0 {
		t.Fatalf("pixel outside the clip was painted, alpha %d", a)
	}
}

func TestRasterDrawImageFormats(t *testing.T) {
	rc, err := NewRasterContext(geometry.NewAabb(geometry.V(0, 0), geometry.V(10, 10)), 1)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	bounds := geometry.NewAabb(geometry.V(0, 0), geometry.V(4, 4))

	svgImg := Image{Data: []byte("<svg/>"), Format: ImageSVG}
	if err := rc.DrawImage(svgImg, bounds, 1); !errors.Is(err, errNoRasterPreview) {
		t.Fatalf("got %v, want errNoRasterPreview", err)
	}

	svgImg.Preview = encodePng(t, color.RGBA{B: 255, A: 255}, 2, 2)
	if err := rc.DrawImage(svgImg, bounds, 1); err != nil {
		t.Fatalf("svg image with preview should render: %s", err)
	}
	if a := rc.Image().RGBAAt(2, 2).A; a == 0 {
		t.Fatal("preview pixel not painted")
	}

	if err := rc.DrawImage(Image{Data: []byte("x"), Format: "bmp"}, bounds, 1); err == nil {
		t.Fatal("unknown format should be rejected")
	}
	if err := rc.DrawImage(Image{Data: []byte("not a png"), Format: ImagePNG}, bounds, 1); err == nil {
		t.Fatal("corrupt image data should be rejected")
	}
}
