package xoppformat

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tunjan/rnote/geometry"
)

// XoppColor is an 8 bit RGBA color. The attribute form is "#rrggbbaa";
// reading also accepts "#rrggbb" and the named colors Xournal++ writes.
type XoppColor struct {
	Red   uint8
	Green uint8
	Blue  uint8
	Alpha uint8
}

var namedColors = map[string]XoppColor{
	"black":      {0x00, 0x00, 0x00, 0xff},
	"blue":       {0x33, 0x33, 0xcc, 0xff},
	"red":        {0xff, 0x00, 0x00, 0xff},
	"green":      {0x00, 0x80, 0x00, 0xff},
	"gray":       {0x80, 0x80, 0x80, 0xff},
	"lightblue":  {0x00, 0xc0, 0xff, 0xff},
	"lightgreen": {0x00, 0xff, 0x00, 0xff},
	"magenta":    {0xff, 0x00, 0xff, 0xff},
	"orange":     {0xff, 0x80, 0x00, 0xff},
	"yellow":     {0xff, 0xff, 0x00, 0xff},
	"white":      {0xff, 0xff, 0xff, 0xff},
}

func (c XoppColor) MarshalXMLAttr(name xml.Name) (xml.Attr, error) {
	return xml.Attr{
		Name:  name,
		Value: fmt.Sprintf("#%02x%02x%02x%02x", c.Red, c.Green, c.Blue, c.Alpha),
	}, nil
}

func (c *XoppColor) UnmarshalXMLAttr(attr xml.Attr) error {
	v := strings.TrimSpace(attr.Value)
	if !strings.HasPrefix(v, "#") {
		named, ok := namedColors[v]
		if !ok {
			return fmt.Errorf("xoppformat: unknown color %q", v)
		}
		*c = named
		return nil
	}
	hex := v[1:]
	var alpha uint64 = 0xff
	switch len(hex) {
	case 8:
		a, err := strconv.ParseUint(hex[6:8], 16, 8)
		if err != nil {
			return fmt.Errorf("xoppformat: parsing color %q: %w", v, err)
		}
		alpha = a
		hex = hex[:6]
	case 6:
	default:
		return fmt.Errorf("xoppformat: color %q has %d hex digits, want 6 or 8", v, len(hex))
	}
	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return fmt.Errorf("xoppformat: parsing color %q: %w", v, err)
	}
	*c = XoppColor{
		Red:   uint8(rgb >> 16),
		Green: uint8(rgb >> 8),
		Blue:  uint8(rgb),
		Alpha: uint8(alpha),
	}
	return nil
}

// XoppWidths is a stroke width attribute. Pressure sensitive tools
// write a space separated list; the first value is the nominal width.
type XoppWidths []float64

// Nominal returns the stroke width.
func (w XoppWidths) Nominal() float64 {
	if len(w) == 0 {
		return 0
	}
	return w[0]
}

func (w XoppWidths) MarshalXMLAttr(name xml.Name) (xml.Attr, error) {
	parts := make([]string, len(w))
	for i, v := range w {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return xml.Attr{Name: name, Value: strings.Join(parts, " ")}, nil
}

func (w *XoppWidths) UnmarshalXMLAttr(attr xml.Attr) error {
	fields := strings.Fields(attr.Value)
	if len(fields) == 0 {
		return errors.New("xoppformat: empty stroke width")
	}
	out := make(XoppWidths, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return fmt.Errorf("xoppformat: parsing stroke width %q: %w", f, err)
		}
		out = append(out, v)
	}
	*w = out
	return nil
}

// ParseCoords parses stroke element text: whitespace separated
// alternating x y values.
func ParseCoords(s string) ([]geometry.Vec2, error) {
	fields := strings.Fields(s)
	if len(fields)%2 != 0 {
		return nil, fmt.Errorf("xoppformat: stroke has %d coordinate values, want an even count", len(fields))
	}
	coords := make([]geometry.Vec2, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		x, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, fmt.Errorf("xoppformat: parsing coordinate %q: %w", fields[i], err)
		}
		y, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return nil, fmt.Errorf("xoppformat: parsing coordinate %q: %w", fields[i+1], err)
		}
		coords = append(coords, geometry.V(x, y))
	}
	return coords, nil
}

// FormatCoords renders coords as stroke element text.
func FormatCoords(coords []geometry.Vec2) string {
	var b strings.Builder
	for i, c := range coords {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatFloat(c.X, 'f', -1, 64))
		b.WriteByte(' ')
		b.WriteString(strconv.FormatFloat(c.Y, 'f', -1, 64))
	}
	return b.String()
}
