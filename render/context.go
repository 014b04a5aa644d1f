// Package render turns stroke content into output artifacts. The drawing
// model is a small Context interface with interchangeable backends: svg
// markup, an rgba raster and pdf pages, plus an operation recorder.
package render

import (
	"errors"

	"github.com/tunjan/rnote/compose"
	"github.com/tunjan/rnote/geometry"
)

// ImageFormat identifies the encoding of image bytes handed to a Context.
type ImageFormat string

const (
	ImagePNG  ImageFormat = "png"
	ImageJPEG ImageFormat = "jpeg"
	ImageSVG  ImageFormat = "svg"
)

// MediaType returns the MIME type of the format.
func (f ImageFormat) MediaType() string {
	switch f {
	case ImagePNG:
		return "image/png"
	case ImageJPEG:
		return "image/jpeg"
	case ImageSVG:
		return "image/svg+xml"
	}
	return "application/octet-stream"
}

// Image is an encoded image to be placed on a context. Preview optionally
// carries PNG bytes for backends that cannot consume the primary format;
// the raster and pdf backends fall back to it for svg images.
type Image struct {
	Data    []byte      `json:"data"`
	Format  ImageFormat `json:"format"`
	Preview []byte      `json:"preview,omitempty"`
}

var (
	errUnbalancedRestore = errors.New("render: restore without matching save")
	errNoRasterPreview   = errors.New("render: svg image carries no raster preview")
)

// Context is a drawing backend. All coordinates are document coordinates;
// backends apply their own device transform.
//
// Paths are built through the embedded compose.PathBuilder protocol and
// rendered by Paint, which also discards them. Save and Restore bracket
// clip state; ClipRect intersects the current clip with a rectangle.
type Context interface {
	compose.PathBuilder

	Save() error
	Restore() error
	ClipRect(r geometry.Aabb)

	// Paint renders the subpaths accumulated since the last Paint with
	// style, then discards them.
	Paint(style compose.Style) error

	// DrawImage places img into bounds. scale is a pixel density hint for
	// backends that resample.
	DrawImage(img Image, bounds geometry.Aabb, scale float64) error
}

// WithClip runs fn with ctx clipped to clip, restoring the previous clip
// state on every path out. fn's error takes precedence over the restore
// error.
func WithClip(ctx Context, clip geometry.Aabb, fn func() error) error {
	if err := ctx.Save(); err != nil {
		return err
	}
	ctx.ClipRect(clip)
	err := fn()
	if rerr := ctx.Restore(); err == nil {
		err = rerr
	}
	return err
}
