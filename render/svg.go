package render

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/tunjan/rnote/geometry"
)

// Svg is a rendered vector snapshot. Data holds the inner markup without
// the root <svg> node; Bounds locates it in document coordinates.
type Svg struct {
	Data   string
	Bounds geometry.Aabb
}

// GenWithContext records the draws issued by fn into an Svg covering
// bounds.
func GenWithContext(fn func(Context) error, bounds geometry.Aabb) (*Svg, error) {
	ctx := NewSvgContext()
	if err := fn(ctx); err != nil {
		return nil, err
	}
	data, err := ctx.Finish()
	if err != nil {
		return nil, err
	}
	return &Svg{Data: data, Bounds: bounds}, nil
}

// Document returns the complete SVG document: Data wrapped in a root node
// sized to Bounds.
func (s *Svg) Document() string {
	return WrapSvgRoot(s.Data, s.Bounds)
}

// WrapSvgRoot wraps inner markup in an <svg> root whose viewBox covers
// bounds and whose width and height are the bounds extents.
func WrapSvgRoot(data string, bounds geometry.Aabb) string {
	ext := bounds.Extents()
	var b strings.Builder
	b.WriteString(xml.Header)
	fmt.Fprintf(&b,
		`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="%s" height="%s" viewBox="%s %s %s %s">`+"\n",
		fnum(ext.X), fnum(ext.Y),
		fnum(bounds.Mins.X), fnum(bounds.Mins.Y), fnum(ext.X), fnum(ext.Y))
	b.WriteString(data)
	b.WriteString("</svg>\n")
	return b.String()
}

// Simplify normalizes the document origin to (0, 0): it validates the
// markup, wraps the data in a group translating Mins to the origin and
// moves Bounds accordingly. On error the Svg is left unchanged.
func (s *Svg) Simplify() error {
	if !s.Bounds.IsValid() {
		return fmt.Errorf("render: cannot simplify svg with invalid bounds %v", s.Bounds)
	}
	if err := checkWellFormed(strings.NewReader(s.Document())); err != nil {
		return fmt.Errorf("render: svg markup is not well formed: %w", err)
	}
	offset := s.Bounds.Mins.Scale(-1)
	if offset != (geometry.Vec2{}) {
		s.Data = fmt.Sprintf("<g transform=\"translate(%s %s)\">\n%s</g>\n",
			fnum(offset.X), fnum(offset.Y), s.Data)
	}
	s.Bounds = s.Bounds.Translate(offset)
	return nil
}

// checkWellFormed walks every XML token in r.
func checkWellFormed(r io.Reader) error {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel
	for {
		_, err := decoder.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// fnum formats a coordinate with the fixed precision used across the svg
// output.
func fnum(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
