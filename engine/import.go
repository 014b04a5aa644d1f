package engine

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"

	"github.com/tunjan/rnote"
	"github.com/tunjan/rnote/compose"
	"github.com/tunjan/rnote/document"
	"github.com/tunjan/rnote/geometry"
	"github.com/tunjan/rnote/render"
	"github.com/tunjan/rnote/strokes"
	"github.com/tunjan/rnote/xoppformat"
)

// ErrorMode controls how recoverable problems during imports are
// handled.
type ErrorMode uint8

const (
	// StrictErrorMode fails the import on the first problem.
	StrictErrorMode ErrorMode = iota
	// WarnErrorMode logs each problem and skips the element.
	WarnErrorMode
	// IgnoreErrorMode silently skips problem elements.
	IgnoreErrorMode
)

// XoppImportOptions controls ImportXopp.
type XoppImportOptions struct {
	// Dpi is the resolution imported coordinates are converted to.
	// Values <= 0 fall back to DefaultDpi.
	Dpi float64
	// Errors selects how problem elements are handled.
	Errors ErrorMode
}

var errUnsupportedText = errors.New("text elements are unsupported")

// ImportXopp reads an Xournal++ document and converts it to stroke
// content. Pages are stacked vertically in reading order, the first
// page's background becomes the content background.
func ImportXopp(r io.Reader, opts XoppImportOptions) (StrokeContent, error) {
	dpi := opts.Dpi
	if dpi <= 0 {
		dpi = DefaultDpi
	}
	file, err := xoppformat.Read(r)
	if err != nil {
		return StrokeContent{}, fmt.Errorf("engine: importing xopp: %w", err)
	}

	var content StrokeContent
	yOffset := 0.0
	for _, page := range file.Pages {
		for _, layer := range page.Layers {
			for _, stroke := range layer.Strokes {
				bs, err := brushStrokeFromXopp(stroke, yOffset, dpi)
				if err != nil {
					if err := handleImportError(opts.Errors, "stroke", err); err != nil {
						return StrokeContent{}, err
					}
					continue
				}
				content.Strokes = append(content.Strokes, bs)
			}
			for range layer.Texts {
				if err := handleImportError(opts.Errors, "text", errUnsupportedText); err != nil {
					return StrokeContent{}, err
				}
			}
			for _, img := range layer.Images {
				bi, err := bitmapImageFromXopp(img, yOffset, dpi)
				if err != nil {
					if err := handleImportError(opts.Errors, "image", err); err != nil {
						return StrokeContent{}, err
					}
					continue
				}
				content.Strokes = append(content.Strokes, bi)
			}
		}
		yOffset += page.Height
	}
	if len(file.Pages) > 0 {
		content.Background = backgroundFromXopp(file.Pages[0].Background)
	}
	return content, nil
}

func brushStrokeFromXopp(stroke xoppformat.XoppStroke, yOffset, dpi float64) (*strokes.BrushStroke, error) {
	coords, err := xoppformat.ParseCoords(stroke.Coords)
	if err != nil {
		return nil, err
	}
	if len(coords) < 2 {
		return nil, fmt.Errorf("stroke has %d points, need at least 2", len(coords))
	}
	color := ColorFromXopp(stroke.Color)
	// An opaque highlighter color gets the usual translucency, a color
	// that already carries alpha keeps it.
	if stroke.Tool == xoppformat.ToolHighlighter && color.A == 1 {
		color.A *= 0.5
	}
	path := compose.PenPath{
		Start:    importCoord(coords[0], yOffset, dpi),
		Segments: make(compose.Segments, 0, len(coords)-1),
	}
	for _, c := range coords[1:] {
		path.Segments = append(path.Segments, compose.LineTo{End: importCoord(c, yOffset, dpi)})
	}
	return &strokes.BrushStroke{
		Path: path,
		Style: compose.Style{
			StrokeWidth: ConvertValueDpi(stroke.Width.Nominal(), xoppformat.DPI, dpi),
			StrokeColor: &color,
			CapStyle:    compose.CapRound,
			JoinStyle:   compose.JoinRound,
		},
	}, nil
}

func bitmapImageFromXopp(img xoppformat.XoppImage, yOffset, dpi float64) (*strokes.BitmapImage, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(img.Data))
	if err != nil {
		return nil, fmt.Errorf("decoding image data: %w", err)
	}
	_, formatName, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	var format render.ImageFormat
	switch formatName {
	case "png":
		format = render.ImagePNG
	case "jpeg":
		format = render.ImageJPEG
	default:
		return nil, fmt.Errorf("unsupported image format %q", formatName)
	}
	return &strokes.BitmapImage{
		Image: render.Image{Data: data, Format: format},
		Rect: geometry.NewAabb(
			importCoord(geometry.V(img.Left, img.Top), yOffset, dpi),
			importCoord(geometry.V(img.Right, img.Bottom), yOffset, dpi),
		),
	}, nil
}

// importCoord shifts an xopp coordinate by the running page offset and
// converts it to the target resolution.
func importCoord(c geometry.Vec2, yOffset, dpi float64) geometry.Vec2 {
	return ConvertCoordDpi(geometry.V(c.X, c.Y+yOffset), xoppformat.DPI, dpi)
}

func backgroundFromXopp(bg xoppformat.XoppBackground) *document.Background {
	b := document.DefaultBackground()
	b.Color = ColorFromXopp(bg.Color)
	switch bg.Style {
	case xoppformat.StyleLined, xoppformat.StyleRuled:
		b.Pattern = document.PatternLines
	case xoppformat.StyleGraph:
		b.Pattern = document.PatternGrid
	case xoppformat.StyleDotted:
		b.Pattern = document.PatternDots
	default:
		b.Pattern = document.PatternNone
	}
	return &b
}

func handleImportError(mode ErrorMode, what string, err error) error {
	switch mode {
	case WarnErrorMode:
		rnote.Logger().Warn("skipping xopp "+what, "err", err)
		return nil
	case IgnoreErrorMode:
		return nil
	default:
		return fmt.Errorf("engine: importing xopp %s: %w", what, err)
	}
}
