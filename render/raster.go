package render

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"

	"github.com/tunjan/rnote/compose"
	"github.com/tunjan/rnote/geometry"
)

var (
	capToFunc = map[compose.CapStyle]rasterx.CapFunc{
		compose.CapButt:   rasterx.ButtCap,
		compose.CapRound:  rasterx.RoundCap,
		compose.CapSquare: rasterx.SquareCap,
	}
	joinToJoin = map[compose.JoinStyle]rasterx.JoinMode{
		compose.JoinMiter: rasterx.Miter,
		compose.JoinRound: rasterx.Round,
		compose.JoinBevel: rasterx.Bevel,
	}
)

// RasterContext renders drawing operations into an RGBA image. The device
// transform maps the top-left of the bounds given at construction to pixel
// (0, 0) and scales by the pixel density.
//
// Paths are accumulated in document coordinates and rasterized on Paint,
// so the clip in effect at paint time decides what is written.
type RasterContext struct {
	img    *image.RGBA
	origin geometry.Vec2
	scale  float64
	clip   image.Rectangle
	stack  []image.Rectangle
	ops    []Op
}

var _ Context = (*RasterContext)(nil)

// NewRasterContext creates a context rendering bounds into a fresh image,
// scale pixels per document unit. The pixel size is the scaled extents
// rounded up, at least 1x1.
func NewRasterContext(bounds geometry.Aabb, scale float64) (*RasterContext, error) {
	if !bounds.IsValid() {
		return nil, fmt.Errorf("render: raster bounds %v are invalid", bounds)
	}
	if scale <= 0 {
		return nil, fmt.Errorf("render: raster scale must be positive, got %v", scale)
	}
	ext := bounds.Extents()
	w := int(math.Ceil(ext.X * scale))
	h := int(math.Ceil(ext.Y * scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	return &RasterContext{
		img:    img,
		origin: bounds.Mins,
		scale:  scale,
		clip:   img.Bounds(),
	}, nil
}

// Image returns the image drawn so far.
func (rc *RasterContext) Image() *image.RGBA { return rc.img }

func (rc *RasterContext) device(p geometry.Vec2) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.Int26_6((p.X - rc.origin.X) * rc.scale * 64),
		Y: fixed.Int26_6((p.Y - rc.origin.Y) * rc.scale * 64),
	}
}

func (rc *RasterContext) deviceRect(r geometry.Aabb) image.Rectangle {
	return image.Rect(
		int(math.Floor((r.Mins.X-rc.origin.X)*rc.scale)),
		int(math.Floor((r.Mins.Y-rc.origin.Y)*rc.scale)),
		int(math.Ceil((r.Maxs.X-rc.origin.X)*rc.scale)),
		int(math.Ceil((r.Maxs.Y-rc.origin.Y)*rc.scale)),
	)
}

func (rc *RasterContext) Save() error {
	rc.stack = append(rc.stack, rc.clip)
	return nil
}

func (rc *RasterContext) Restore() error {
	if len(rc.stack) == 0 {
		return errUnbalancedRestore
	}
	rc.clip = rc.stack[len(rc.stack)-1]
	rc.stack = rc.stack[:len(rc.stack)-1]
	return nil
}

func (rc *RasterContext) ClipRect(r geometry.Aabb) {
	rc.clip = rc.clip.Intersect(rc.deviceRect(r))
}

func (rc *RasterContext) Start(p geometry.Vec2) { rc.ops = append(rc.ops, OpStart{P: p}) }
func (rc *RasterContext) Line(to geometry.Vec2) { rc.ops = append(rc.ops, OpLine{To: to}) }
func (rc *RasterContext) QuadBezier(ctrl, to geometry.Vec2) {
	rc.ops = append(rc.ops, OpQuadBezier{Ctrl: ctrl, To: to})
}
func (rc *RasterContext) CubeBezier(ctrl1, ctrl2, to geometry.Vec2) {
	rc.ops = append(rc.ops, OpCubeBezier{Ctrl1: ctrl1, Ctrl2: ctrl2, To: to})
}
func (rc *RasterContext) Stop(closeLoop bool) { rc.ops = append(rc.ops, OpStop{CloseLoop: closeLoop}) }

func (rc *RasterContext) Paint(style compose.Style) error {
	ops := rc.ops
	rc.ops = rc.ops[:0]
	if len(ops) == 0 || rc.clip.Empty() {
		return nil
	}
	size := rc.img.Bounds()

	if c := style.FillColor; c != nil {
		// ScannerGV ignores its targ argument, the clip must go through SetClip.
		scanner := rasterx.NewScannerGV(size.Dx(), size.Dy(), rc.img, size)
		scanner.SetClip(rc.clip)
		scanner.SetColor(*c)
		filler := rasterx.NewFiller(size.Dx(), size.Dy(), scanner)
		rc.replay(filler, ops)
		filler.Draw()
	}
	if c := style.StrokeColor; c != nil && style.StrokeWidth > 0 {
		scanner := rasterx.NewScannerGV(size.Dx(), size.Dy(), rc.img, size)
		scanner.SetClip(rc.clip)
		scanner.SetColor(*c)
		dasher := rasterx.NewDasher(size.Dx(), size.Dy(), scanner)
		capFn, ok := capToFunc[style.CapStyle]
		if !ok {
			capFn = rasterx.ButtCap
		}
		join, ok := joinToJoin[style.JoinStyle]
		if !ok {
			join = rasterx.Miter
		}
		dasher.SetStroke(
			fixed.Int26_6(style.StrokeWidth*rc.scale*64),
			fixed.Int26_6(4*64),
			capFn, capFn, rasterx.RoundGap, join, nil, 0)
		rc.replay(dasher, ops)
		dasher.Draw()
	}
	return nil
}

// replay feeds recorded path ops into adder in device coordinates.
func (rc *RasterContext) replay(adder rasterx.Adder, ops []Op) {
	open := false
	for _, op := range ops {
		switch o := op.(type) {
		case OpStart:
			if open {
				adder.Stop(false)
			}
			adder.Start(rc.device(o.P))
			open = true
		case OpLine:
			adder.Line(rc.device(o.To))
		case OpQuadBezier:
			adder.QuadBezier(rc.device(o.Ctrl), rc.device(o.To))
		case OpCubeBezier:
			adder.CubeBezier(rc.device(o.Ctrl1), rc.device(o.Ctrl2), rc.device(o.To))
		case OpStop:
			adder.Stop(o.CloseLoop)
			open = false
		}
	}
	if open {
		adder.Stop(false)
	}
}

func (rc *RasterContext) DrawImage(img Image, bounds geometry.Aabb, _ float64) error {
	data, format := img.Data, img.Format
	if format == ImageSVG {
		if len(img.Preview) == 0 {
			return errNoRasterPreview
		}
		data, format = img.Preview, ImagePNG
	}
	var src image.Image
	var err error
	switch format {
	case ImagePNG:
		src, err = png.Decode(bytes.NewReader(data))
	case ImageJPEG:
		src, err = jpeg.Decode(bytes.NewReader(data))
	default:
		return fmt.Errorf("render: unsupported image format %q", format)
	}
	if err != nil {
		return fmt.Errorf("render: decoding %s image: %w", format, err)
	}
	dst := rc.deviceRect(bounds)
	target := dst.Intersect(rc.clip)
	if target.Empty() {
		return nil
	}
	if target == dst {
		draw.CatmullRom.Scale(rc.img, dst, src, src.Bounds(), draw.Over, nil)
		return nil
	}
	// Resample into a scratch image, copy only the clipped part.
	tmp := image.NewRGBA(dst.Sub(dst.Min))
	draw.CatmullRom.Scale(tmp, tmp.Bounds(), src, src.Bounds(), draw.Src, nil)
	draw.Draw(rc.img, target, tmp, target.Min.Sub(dst.Min), draw.Over)
	return nil
}
