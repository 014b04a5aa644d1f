package render

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	svg "github.com/ajstarks/svgo/float"

	"github.com/tunjan/rnote/compose"
	"github.com/tunjan/rnote/geometry"
)

// SvgContext renders drawing operations to SVG markup. The produced data
// is inner markup only; wrap it with WrapSvgRoot for a standalone
// document.
//
// Clips become clipPath defs referenced by nested groups, so clipping
// composes by intersection like on the other backends. A ClipRect issued
// outside any save scope stays in effect until Finish.
type SvgContext struct {
	buf        bytes.Buffer
	canvas     *svg.SVG
	path       strings.Builder
	saves      []int // groups opened per save scope
	rootGroups int
	clips      int
}

var _ Context = (*SvgContext)(nil)

// NewSvgContext returns a context emitting SVG markup in document
// coordinates.
func NewSvgContext() *SvgContext {
	s := &SvgContext{}
	s.canvas = svg.New(&s.buf)
	return s
}

func (s *SvgContext) Save() error {
	s.saves = append(s.saves, 0)
	return nil
}

func (s *SvgContext) Restore() error {
	if len(s.saves) == 0 {
		return errUnbalancedRestore
	}
	n := s.saves[len(s.saves)-1]
	s.saves = s.saves[:len(s.saves)-1]
	for ; n > 0; n-- {
		s.canvas.Gend()
	}
	return nil
}

func (s *SvgContext) ClipRect(r geometry.Aabb) {
	s.clips++
	id := fmt.Sprintf("clip%d", s.clips)
	ext := r.Extents()
	s.canvas.Def()
	s.canvas.ClipPath(fmt.Sprintf(`id="%s"`, id))
	s.canvas.Rect(r.Mins.X, r.Mins.Y, ext.X, ext.Y)
	s.canvas.ClipEnd()
	s.canvas.DefEnd()
	s.canvas.Group(fmt.Sprintf(`clip-path="url(#%s)"`, id))
	if len(s.saves) > 0 {
		s.saves[len(s.saves)-1]++
	} else {
		s.rootGroups++
	}
}

func (s *SvgContext) Start(p geometry.Vec2) {
	fmt.Fprintf(&s.path, "M%s %s ", fnum(p.X), fnum(p.Y))
}

func (s *SvgContext) Line(to geometry.Vec2) {
	fmt.Fprintf(&s.path, "L%s %s ", fnum(to.X), fnum(to.Y))
}

func (s *SvgContext) QuadBezier(ctrl, to geometry.Vec2) {
	fmt.Fprintf(&s.path, "Q%s %s %s %s ",
		fnum(ctrl.X), fnum(ctrl.Y), fnum(to.X), fnum(to.Y))
}

func (s *SvgContext) CubeBezier(ctrl1, ctrl2, to geometry.Vec2) {
	fmt.Fprintf(&s.path, "C%s %s %s %s %s %s ",
		fnum(ctrl1.X), fnum(ctrl1.Y), fnum(ctrl2.X), fnum(ctrl2.Y), fnum(to.X), fnum(to.Y))
}

func (s *SvgContext) Stop(closeLoop bool) {
	if closeLoop {
		s.path.WriteString("Z ")
	}
}

func (s *SvgContext) Paint(style compose.Style) error {
	d := strings.TrimSpace(s.path.String())
	s.path.Reset()
	if d == "" {
		return nil
	}
	s.canvas.Path(d, styleAttrs(style)...)
	return nil
}

func (s *SvgContext) DrawImage(img Image, bounds geometry.Aabb, _ float64) error {
	if len(img.Data) == 0 {
		return errors.New("render: image carries no data")
	}
	ext := bounds.Extents()
	uri := "data:" + img.Format.MediaType() + ";base64," +
		base64.StdEncoding.EncodeToString(img.Data)
	// svgo's Image truncates width and height to int, emit the element
	// ourselves to keep fractional extents.
	fmt.Fprintf(&s.buf,
		`<image x="%s" y="%s" width="%s" height="%s" preserveAspectRatio="none" xlink:href="%s" />`+"\n",
		fnum(bounds.Mins.X), fnum(bounds.Mins.Y), fnum(ext.X), fnum(ext.Y), uri)
	return nil
}

// Finish closes clip groups issued outside save scopes and returns the
// markup. Unbalanced saves or an unpainted path are errors.
func (s *SvgContext) Finish() (string, error) {
	if s.path.Len() > 0 {
		return "", errors.New("render: unpainted path at finish")
	}
	if len(s.saves) > 0 {
		return "", fmt.Errorf("render: %d save scopes left open at finish", len(s.saves))
	}
	for ; s.rootGroups > 0; s.rootGroups-- {
		s.canvas.Gend()
	}
	return s.buf.String(), nil
}

// styleAttrs converts a style to svg presentation attributes.
func styleAttrs(style compose.Style) []string {
	attrs := make([]string, 0, 8)
	if c := style.FillColor; c != nil {
		attrs = append(attrs, fmt.Sprintf(`fill="%s"`, c.RGBHex()))
		if c.A < 1 {
			attrs = append(attrs, fmt.Sprintf(`fill-opacity="%s"`, fnum(c.A)))
		}
	} else {
		attrs = append(attrs, `fill="none"`)
	}
	if c := style.StrokeColor; c != nil {
		attrs = append(attrs,
			fmt.Sprintf(`stroke="%s"`, c.RGBHex()),
			fmt.Sprintf(`stroke-width="%s"`, fnum(style.StrokeWidth)))
		if c.A < 1 {
			attrs = append(attrs, fmt.Sprintf(`stroke-opacity="%s"`, fnum(c.A)))
		}
		if style.CapStyle != "" {
			attrs = append(attrs, fmt.Sprintf(`stroke-linecap="%s"`, style.CapStyle))
		}
		if style.JoinStyle != "" {
			attrs = append(attrs, fmt.Sprintf(`stroke-linejoin="%s"`, style.JoinStyle))
		}
	}
	return attrs
}
