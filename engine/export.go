package engine

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/tunjan/rnote"
	"github.com/tunjan/rnote/compose"
	"github.com/tunjan/rnote/document"
	"github.com/tunjan/rnote/geometry"
	"github.com/tunjan/rnote/render"
	"github.com/tunjan/rnote/strokes"
	"github.com/tunjan/rnote/xoppformat"
)

// DefaultDpi is the document resolution exports assume when none is
// given.
const DefaultDpi = 96.0

const pdfPointsPerInch = 72.0

// ExportSvg writes the content as a standalone SVG document. Nothing is
// written when the content has no bounds.
func (c StrokeContent) ExportSvg(w io.Writer, opts DrawOptions) error {
	svg, err := c.GenerateSvg(opts)
	if err != nil {
		return fmt.Errorf("engine: exporting svg: %w", err)
	}
	if svg == nil {
		return nil
	}
	if _, err := io.WriteString(w, svg.Document()); err != nil {
		return fmt.Errorf("engine: exporting svg: %w", err)
	}
	return nil
}

// PngExportOptions controls ExportPng.
type PngExportOptions struct {
	Draw DrawOptions
	// Scale is the pixel density in pixels per document unit. Values
	// <= 0 fall back to 1.
	Scale float64
}

// ExportPng rasterizes the content and writes it PNG encoded. Nothing
// is written when the content has no bounds.
func (c StrokeContent) ExportPng(w io.Writer, opts PngExportOptions) error {
	bounds, ok := c.EffectiveBounds()
	if !ok {
		return nil
	}
	loosened := bounds.Loosened(opts.Draw.Margin)
	if !loosened.IsValid() {
		return fmt.Errorf("engine: margin %v inverts the content bounds", opts.Draw.Margin)
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	ctx, err := render.NewRasterContext(loosened, scale)
	if err != nil {
		return fmt.Errorf("engine: exporting png: %w", err)
	}
	drawOpts := opts.Draw
	drawOpts.ImageScale = scale
	if err := c.Draw(ctx, drawOpts); err != nil {
		return fmt.Errorf("engine: exporting png: %w", err)
	}
	if err := png.Encode(w, ctx.Image()); err != nil {
		return fmt.Errorf("engine: exporting png: %w", err)
	}
	return nil
}

// PdfExportOptions controls ExportPdf.
type PdfExportOptions struct {
	Draw DrawOptions
	// Dpi is the resolution document units are interpreted at. Values
	// <= 0 fall back to DefaultDpi.
	Dpi float64
}

// ExportPdf writes the content as a single page PDF sized to the
// loosened content bounds. Nothing is written when the content has no
// bounds.
func (c StrokeContent) ExportPdf(w io.Writer, opts PdfExportOptions) error {
	bounds, ok := c.EffectiveBounds()
	if !ok {
		return nil
	}
	loosened := bounds.Loosened(opts.Draw.Margin)
	if !loosened.IsValid() {
		return fmt.Errorf("engine: margin %v inverts the content bounds", opts.Draw.Margin)
	}
	dpi := opts.Dpi
	if dpi <= 0 {
		dpi = DefaultDpi
	}
	sizePt := ConvertCoordDpi(loosened.Extents(), dpi, pdfPointsPerInch)
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: sizePt.X, Ht: sizePt.Y},
	})
	pdf.AddPage()
	ctx := render.NewPdfContext(pdf, loosened.Mins, ConvertValueDpi(1, dpi, pdfPointsPerInch))
	if err := c.Draw(ctx, opts.Draw); err != nil {
		return fmt.Errorf("engine: exporting pdf: %w", err)
	}
	if err := ctx.Close(); err != nil {
		return fmt.Errorf("engine: exporting pdf: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("engine: exporting pdf: %w", err)
	}
	return nil
}

// XoppExportOptions controls ExportXopp.
type XoppExportOptions struct {
	// Title of the exported document.
	Title string
	// Dpi is the resolution document units are interpreted at. Values
	// <= 0 fall back to DefaultDpi.
	Dpi float64
}

// xoppCurveSteps is how many line segments approximate one curved
// segment in xopp exports.
const xoppCurveSteps = 8

const xoppCreator = "rnote"

// ExportXopp writes the content as a single page Xournal++ document.
// Pen paths and shapes become flattened polylines, images are embedded
// as PNG. Vector images without a raster preview are skipped with a
// warning. Nothing is written when the content has no bounds.
func (c StrokeContent) ExportXopp(w io.Writer, opts XoppExportOptions) error {
	bounds, ok := c.EffectiveBounds()
	if !ok {
		return nil
	}
	dpi := opts.Dpi
	if dpi <= 0 {
		dpi = DefaultDpi
	}

	var layer xoppformat.XoppLayer
	for _, s := range c.Strokes {
		switch s := s.(type) {
		case *strokes.BrushStroke:
			layer.Strokes = append(layer.Strokes,
				xoppStrokes(flattenPath(s.Path), s.Style, bounds.Mins, dpi)...)
		case *strokes.ShapeStroke:
			layer.Strokes = append(layer.Strokes,
				xoppStrokes(flattenShape(s.Shape), s.Style, bounds.Mins, dpi)...)
		case *strokes.BitmapImage:
			img, err := xoppImage(s.Image.Data, s.Image.Format, s.Rect, bounds.Mins, dpi)
			if err != nil {
				return fmt.Errorf("engine: exporting xopp: %w", err)
			}
			layer.Images = append(layer.Images, img)
		case *strokes.VectorImage:
			if len(s.Preview) == 0 {
				rnote.Logger().Warn("skipping vector image without raster preview in xopp export")
				continue
			}
			img, err := xoppImage(s.Preview, render.ImagePNG, s.Rect, bounds.Mins, dpi)
			if err != nil {
				return fmt.Errorf("engine: exporting xopp: %w", err)
			}
			layer.Images = append(layer.Images, img)
		}
	}

	background := xoppformat.XoppBackground{
		Type:  xoppformat.BackgroundSolid,
		Color: xoppformat.XoppColor{Red: 0xff, Green: 0xff, Blue: 0xff, Alpha: 0xff},
		Style: xoppformat.StylePlain,
	}
	if c.Background != nil {
		background.Color = XoppColorFromColor(c.Background.Color)
		background.Style = xoppBackgroundStyle(c.Background.Pattern)
	}

	size := ConvertCoordDpi(bounds.Extents(), dpi, xoppformat.DPI)
	file := &xoppformat.XoppFile{
		Creator: xoppCreator,
		Version: xoppformat.FileVersion,
		Title:   opts.Title,
		Pages: []xoppformat.XoppPage{{
			Width:      size.X,
			Height:     size.Y,
			Background: background,
			Layers:     []xoppformat.XoppLayer{layer},
		}},
	}
	if err := xoppformat.Write(w, file); err != nil {
		return fmt.Errorf("engine: exporting xopp: %w", err)
	}
	return nil
}

// xoppStrokes converts polylines with a shared style to xopp strokes.
// The points are shifted so mins becomes the page origin.
func xoppStrokes(polylines [][]geometry.Vec2, style compose.Style, mins geometry.Vec2, dpi float64) []xoppformat.XoppStroke {
	color := style.StrokeColor
	if color == nil {
		color = style.FillColor
	}
	if color == nil {
		return nil
	}
	tool := xoppformat.ToolPen
	if color.A < 1 {
		tool = xoppformat.ToolHighlighter
	}
	width := ConvertValueDpi(style.StrokeWidth, dpi, xoppformat.DPI)
	out := make([]xoppformat.XoppStroke, 0, len(polylines))
	for _, line := range polylines {
		coords := make([]geometry.Vec2, len(line))
		for i, p := range line {
			coords[i] = ConvertCoordDpi(p.Sub(mins), dpi, xoppformat.DPI)
		}
		out = append(out, xoppformat.XoppStroke{
			Tool:   tool,
			Color:  XoppColorFromColor(*color),
			Width:  xoppformat.XoppWidths{width},
			Coords: xoppformat.FormatCoords(coords),
		})
	}
	return out
}

func flattenPath(path compose.PenPath) [][]geometry.Vec2 {
	pts := path.Flatten(xoppCurveSteps)
	if len(pts) < 2 {
		return nil
	}
	return [][]geometry.Vec2{pts}
}

func flattenShape(shape compose.Shape) [][]geometry.Vec2 {
	f := &pathFlattener{steps: xoppCurveSteps}
	shape.AppendTo(f)
	return f.Polylines()
}

func xoppImage(data []byte, format render.ImageFormat, rect geometry.Aabb, mins geometry.Vec2, dpi float64) (xoppformat.XoppImage, error) {
	switch format {
	case render.ImagePNG:
	case render.ImageJPEG:
		// xopp embeds PNG only, transcode
		src, err := jpeg.Decode(bytes.NewReader(data))
		if err != nil {
			return xoppformat.XoppImage{}, fmt.Errorf("decoding jpeg image: %w", err)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, src); err != nil {
			return xoppformat.XoppImage{}, fmt.Errorf("encoding png image: %w", err)
		}
		data = buf.Bytes()
	default:
		return xoppformat.XoppImage{}, fmt.Errorf("unsupported image format %q", format)
	}
	topLeft := ConvertCoordDpi(rect.Mins.Sub(mins), dpi, xoppformat.DPI)
	bottomRight := ConvertCoordDpi(rect.Maxs.Sub(mins), dpi, xoppformat.DPI)
	return xoppformat.XoppImage{
		Left:   topLeft.X,
		Top:    topLeft.Y,
		Right:  bottomRight.X,
		Bottom: bottomRight.Y,
		Data:   base64.StdEncoding.EncodeToString(data),
	}, nil
}

func xoppBackgroundStyle(p document.PatternStyle) string {
	switch p {
	case document.PatternLines:
		return xoppformat.StyleRuled
	case document.PatternGrid:
		return xoppformat.StyleGraph
	case document.PatternDots:
		return xoppformat.StyleDotted
	default:
		return xoppformat.StylePlain
	}
}

// pathFlattener approximates drawn paths as polylines, one per subpath.
type pathFlattener struct {
	steps int
	start geometry.Vec2
	cur   geometry.Vec2
	pts   []geometry.Vec2
	lines [][]geometry.Vec2
}

var _ compose.PathBuilder = (*pathFlattener)(nil)

func (f *pathFlattener) Start(p geometry.Vec2) {
	f.flush()
	f.start, f.cur = p, p
	f.pts = []geometry.Vec2{p}
}

func (f *pathFlattener) Line(to geometry.Vec2) {
	f.pts = append(f.pts, to)
	f.cur = to
}

func (f *pathFlattener) QuadBezier(ctrl, to geometry.Vec2) {
	for i := 1; i <= f.steps; i++ {
		t := float64(i) / float64(f.steps)
		f.pts = append(f.pts, compose.QuadBezierAt(f.cur, ctrl, to, t))
	}
	f.cur = to
}

func (f *pathFlattener) CubeBezier(ctrl1, ctrl2, to geometry.Vec2) {
	for i := 1; i <= f.steps; i++ {
		t := float64(i) / float64(f.steps)
		f.pts = append(f.pts, compose.CubicBezierAt(f.cur, ctrl1, ctrl2, to, t))
	}
	f.cur = to
}

func (f *pathFlattener) Stop(closeLoop bool) {
	if closeLoop && len(f.pts) > 0 && f.cur != f.start {
		f.pts = append(f.pts, f.start)
	}
	f.flush()
}

func (f *pathFlattener) flush() {
	if len(f.pts) > 1 {
		f.lines = append(f.lines, f.pts)
	}
	f.pts = nil
}

// Polylines returns the collected subpaths, flushing any open one.
func (f *pathFlattener) Polylines() [][]geometry.Vec2 {
	f.flush()
	return f.lines
}
