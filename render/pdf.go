package render

import (
	"bytes"
	"fmt"
	"math"

	"github.com/jung-kurt/gofpdf"

	"github.com/tunjan/rnote/compose"
	"github.com/tunjan/rnote/geometry"
)

// PdfContext renders drawing operations onto the current page of a gofpdf
// document. The transform maps origin to the page top-left corner and scales
// document units to points.
//
// gofpdf keeps a sticky internal error, surfaced by Paint, DrawImage and
// Close.
type PdfContext struct {
	pdf    *gofpdf.Fpdf
	origin geometry.Vec2
	scale  float64
	saves  []int // open clips per save scope
	clips  int   // open clips outside any scope
	images int
	ops    []Op
}

var _ Context = (*PdfContext)(nil)

// NewPdfContext wraps pdf, which must have a page started.
func NewPdfContext(pdf *gofpdf.Fpdf, origin geometry.Vec2, scale float64) *PdfContext {
	return &PdfContext{pdf: pdf, origin: origin, scale: scale}
}

func (p *PdfContext) device(pt geometry.Vec2) (float64, float64) {
	return (pt.X - p.origin.X) * p.scale, (pt.Y - p.origin.Y) * p.scale
}

func (p *PdfContext) Save() error {
	p.saves = append(p.saves, 0)
	return nil
}

func (p *PdfContext) Restore() error {
	if len(p.saves) == 0 {
		return errUnbalancedRestore
	}
	n := p.saves[len(p.saves)-1]
	p.saves = p.saves[:len(p.saves)-1]
	for ; n > 0; n-- {
		p.pdf.ClipEnd()
	}
	return p.pdf.Error()
}

func (p *PdfContext) ClipRect(r geometry.Aabb) {
	x, y := p.device(r.Mins)
	ext := r.Extents()
	p.pdf.ClipRect(x, y, ext.X*p.scale, ext.Y*p.scale, false)
	if len(p.saves) > 0 {
		p.saves[len(p.saves)-1]++
	} else {
		p.clips++
	}
}

// Close ends the clips opened outside save scopes. It must be called before
// the document is output.
func (p *PdfContext) Close() error {
	if len(p.saves) > 0 {
		return fmt.Errorf("render: closing pdf context with %d open save scopes", len(p.saves))
	}
	for ; p.clips > 0; p.clips-- {
		p.pdf.ClipEnd()
	}
	return p.pdf.Error()
}

func (p *PdfContext) Start(pt geometry.Vec2) { p.ops = append(p.ops, OpStart{P: pt}) }
func (p *PdfContext) Line(to geometry.Vec2)  { p.ops = append(p.ops, OpLine{To: to}) }
func (p *PdfContext) QuadBezier(ctrl, to geometry.Vec2) {
	p.ops = append(p.ops, OpQuadBezier{Ctrl: ctrl, To: to})
}
func (p *PdfContext) CubeBezier(ctrl1, ctrl2, to geometry.Vec2) {
	p.ops = append(p.ops, OpCubeBezier{Ctrl1: ctrl1, Ctrl2: ctrl2, To: to})
}
func (p *PdfContext) Stop(closeLoop bool) { p.ops = append(p.ops, OpStop{CloseLoop: closeLoop}) }

func (p *PdfContext) Paint(style compose.Style) error {
	ops := p.ops
	p.ops = p.ops[:0]
	if len(ops) == 0 {
		return nil
	}
	if c := style.FillColor; c != nil {
		r, g, b := rgb255(*c)
		p.pdf.SetFillColor(r, g, b)
		p.pdf.SetAlpha(c.A, "")
		p.replay(ops)
		p.pdf.DrawPath("F")
	}
	if c := style.StrokeColor; c != nil && style.StrokeWidth > 0 {
		r, g, b := rgb255(*c)
		p.pdf.SetDrawColor(r, g, b)
		p.pdf.SetAlpha(c.A, "")
		p.pdf.SetLineWidth(style.StrokeWidth * p.scale)
		capStyle := string(style.CapStyle)
		if capStyle == "" {
			capStyle = string(compose.CapButt)
		}
		joinStyle := string(style.JoinStyle)
		if joinStyle == "" {
			joinStyle = string(compose.JoinMiter)
		}
		p.pdf.SetLineCapStyle(capStyle)
		p.pdf.SetLineJoinStyle(joinStyle)
		p.replay(ops)
		p.pdf.DrawPath("D")
	}
	return p.pdf.Error()
}

func (p *PdfContext) replay(ops []Op) {
	for _, op := range ops {
		switch o := op.(type) {
		case OpStart:
			p.pdf.MoveTo(p.device(o.P))
		case OpLine:
			p.pdf.LineTo(p.device(o.To))
		case OpQuadBezier:
			cx, cy := p.device(o.Ctrl)
			x, y := p.device(o.To)
			p.pdf.CurveTo(cx, cy, x, y)
		case OpCubeBezier:
			cx0, cy0 := p.device(o.Ctrl1)
			cx1, cy1 := p.device(o.Ctrl2)
			x, y := p.device(o.To)
			p.pdf.CurveBezierCubicTo(cx0, cy0, cx1, cy1, x, y)
		case OpStop:
			if o.CloseLoop {
				p.pdf.ClosePath()
			}
		}
	}
}

func (p *PdfContext) DrawImage(img Image, bounds geometry.Aabb, _ float64) error {
	data, format := img.Data, img.Format
	if format == ImageSVG {
		if len(img.Preview) == 0 {
			return errNoRasterPreview
		}
		data, format = img.Preview, ImagePNG
	}
	var imageType string
	switch format {
	case ImagePNG:
		imageType = "PNG"
	case ImageJPEG:
		imageType = "JPEG"
	default:
		return fmt.Errorf("render: unsupported image format %q", format)
	}
	p.images++
	name := fmt.Sprintf("stroke-image-%d", p.images)
	opts := gofpdf.ImageOptions{ImageType: imageType}
	p.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	x, y := p.device(bounds.Mins)
	ext := bounds.Extents()
	p.pdf.ImageOptions(name, x, y, ext.X*p.scale, ext.Y*p.scale, false, opts, 0, "")
	return p.pdf.Error()
}

func rgb255(c compose.Color) (int, int, int) {
	conv := func(v float64) int {
		return int(math.Round(math.Min(math.Max(v, 0), 1) * 255))
	}
	return conv(c.R), conv(c.G), conv(c.B)
}
