package compose

// CapStyle is a stroke line cap. The values match the svg and pdf keywords;
// the zero value means CapButt.
type CapStyle string

const (
	CapButt   CapStyle = "butt"
	CapRound  CapStyle = "round"
	CapSquare CapStyle = "square"
)

// JoinStyle is a stroke line join. The values match the svg and pdf
// keywords; the zero value means JoinMiter.
type JoinStyle string

const (
	JoinMiter JoinStyle = "miter"
	JoinRound JoinStyle = "round"
	JoinBevel JoinStyle = "bevel"
)

// Style describes how a path is painted. A nil color disables the
// corresponding paint.
type Style struct {
	StrokeWidth float64   `json:"stroke_width"`
	StrokeColor *Color    `json:"stroke_color,omitempty"`
	FillColor   *Color    `json:"fill_color,omitempty"`
	CapStyle    CapStyle  `json:"cap_style,omitempty"`
	JoinStyle   JoinStyle `json:"join_style,omitempty"`
}

// Clone returns a copy that shares no pointers with s.
func (s Style) Clone() Style {
	out := s
	if s.StrokeColor != nil {
		c := *s.StrokeColor
		out.StrokeColor = &c
	}
	if s.FillColor != nil {
		c := *s.FillColor
		out.FillColor = &c
	}
	return out
}

// DarkestColor returns the minimum-luminance color among the present
// stroke and fill colors, and false when the style has neither.
func (s Style) DarkestColor() (Color, bool) {
	var darkest Color
	found := false
	for _, c := range []*Color{s.StrokeColor, s.FillColor} {
		if c == nil {
			continue
		}
		if !found {
			darkest, found = *c, true
			continue
		}
		darkest = darkest.Darkest(*c)
	}
	return darkest, found
}

// OverrideColors replaces every present color with c.
func (s *Style) OverrideColors(c Color) {
	if s.StrokeColor != nil {
		sc := c
		s.StrokeColor = &sc
	}
	if s.FillColor != nil {
		fc := c
		s.FillColor = &fc
	}
}
