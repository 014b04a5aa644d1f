package render

import (
	"github.com/tunjan/rnote/compose"
	"github.com/tunjan/rnote/geometry"
)

// Op is one recorded context operation.
type Op interface{ isOp() }

type (
	OpSave    struct{}
	OpRestore struct{}
	// OpClipRect intersects the clip with Rect.
	OpClipRect struct{ Rect geometry.Aabb }
	OpStart    struct{ P geometry.Vec2 }
	OpLine     struct{ To geometry.Vec2 }
	OpQuadBezier struct {
		Ctrl, To geometry.Vec2
	}
	OpCubeBezier struct {
		Ctrl1, Ctrl2, To geometry.Vec2
	}
	OpStop  struct{ CloseLoop bool }
	OpPaint struct{ Style compose.Style }
	// OpDrawImage places Image into Bounds at the Scale hint.
	OpDrawImage struct {
		Image  Image
		Bounds geometry.Aabb
		Scale  float64
	}
)

func (OpSave) isOp()       {}
func (OpRestore) isOp()    {}
func (OpClipRect) isOp()   {}
func (OpStart) isOp()      {}
func (OpLine) isOp()       {}
func (OpQuadBezier) isOp() {}
func (OpCubeBezier) isOp() {}
func (OpStop) isOp()       {}
func (OpPaint) isOp()      {}
func (OpDrawImage) isOp()  {}

// Recorder is a Context that records operations instead of rendering.
// Paint snapshots the style, so later mutations of shared colors do not
// leak into the record.
type Recorder struct {
	Ops   []Op
	depth int
}

var _ Context = (*Recorder)(nil)

func (r *Recorder) Save() error {
	r.depth++
	r.Ops = append(r.Ops, OpSave{})
	return nil
}

func (r *Recorder) Restore() error {
	if r.depth == 0 {
		return errUnbalancedRestore
	}
	r.depth--
	r.Ops = append(r.Ops, OpRestore{})
	return nil
}

func (r *Recorder) ClipRect(rect geometry.Aabb) {
	r.Ops = append(r.Ops, OpClipRect{Rect: rect})
}

func (r *Recorder) Start(p geometry.Vec2) {
	r.Ops = append(r.Ops, OpStart{P: p})
}

func (r *Recorder) Line(to geometry.Vec2) {
	r.Ops = append(r.Ops, OpLine{To: to})
}

func (r *Recorder) QuadBezier(ctrl, to geometry.Vec2) {
	r.Ops = append(r.Ops, OpQuadBezier{Ctrl: ctrl, To: to})
}

func (r *Recorder) CubeBezier(ctrl1, ctrl2, to geometry.Vec2) {
	r.Ops = append(r.Ops, OpCubeBezier{Ctrl1: ctrl1, Ctrl2: ctrl2, To: to})
}

func (r *Recorder) Stop(closeLoop bool) {
	r.Ops = append(r.Ops, OpStop{CloseLoop: closeLoop})
}

func (r *Recorder) Paint(style compose.Style) error {
	r.Ops = append(r.Ops, OpPaint{Style: style.Clone()})
	return nil
}

func (r *Recorder) DrawImage(img Image, bounds geometry.Aabb, scale float64) error {
	r.Ops = append(r.Ops, OpDrawImage{Image: img, Bounds: bounds, Scale: scale})
	return nil
}

// ClipRects returns the recorded clip rectangles in order.
func (r *Recorder) ClipRects() []geometry.Aabb {
	var out []geometry.Aabb
	for _, op := range r.Ops {
		if c, ok := op.(OpClipRect); ok {
			out = append(out, c.Rect)
		}
	}
	return out
}

// Paints returns the recorded paint styles in order.
func (r *Recorder) Paints() []compose.Style {
	var out []compose.Style
	for _, op := range r.Ops {
		if p, ok := op.(OpPaint); ok {
			out = append(out, p.Style)
		}
	}
	return out
}

// Images returns the recorded image placements in order.
func (r *Recorder) Images() []OpDrawImage {
	var out []OpDrawImage
	for _, op := range r.Ops {
		if d, ok := op.(OpDrawImage); ok {
			out = append(out, d)
		}
	}
	return out
}

// SaveBalance returns the number of saves minus the number of restores.
func (r *Recorder) SaveBalance() int {
	balance := 0
	for _, op := range r.Ops {
		switch op.(type) {
		case OpSave:
			balance++
		case OpRestore:
			balance--
		}
	}
	return balance
}
