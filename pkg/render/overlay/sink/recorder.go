package sink

import (
	"fmt"
	"image/color"

	"github.com/placeviz/placeviz/pkg/gui"
	"github.com/placeviz/placeviz/pkg/placement"
)

// OpKind identifies a drawing primitive.
type OpKind string

const (
	OpLine OpKind = "line"
	OpRect OpKind = "rect"
)

// Pen is the outline style of a primitive.
type Pen struct {
	Color    color.RGBA
	Cosmetic bool
}

// Op is one recorded primitive. For lines (X1, Y1)-(X2, Y2) are the
// endpoints; for rectangles they are the lower-left and upper-right corners.
type Op struct {
	Kind   OpKind
	Pen    Pen
	Brush  color.RGBA
	X1, Y1 float64
	X2, Y2 float64
}

// Rect returns the rectangle of a rect op.
func (o Op) Rect() placement.Rect {
	return placement.Rect{Lx: o.X1, Ly: o.Y1, Ux: o.X2, Uy: o.Y2}
}

func (o Op) String() string {
	return fmt.Sprintf("%s (%g,%g)-(%g,%g) pen=%s brush=%s",
		o.Kind, o.X1, o.Y1, o.X2, o.Y2, hexColor(o.Pen.Color), hexColor(o.Brush))
}

// Recorder is a [gui.Painter] that records a display list.
type Recorder struct {
	pen   Pen
	brush color.RGBA
	ops   []Op
}

var _ gui.Painter = (*Recorder)(nil)

// NewRecorder returns an empty recorder with a black pen and no brush.
func NewRecorder() *Recorder {
	return &Recorder{pen: Pen{Color: gui.Black}}
}

func (r *Recorder) SetPen(c color.RGBA, cosmetic bool) { r.pen = Pen{Color: c, Cosmetic: cosmetic} }
func (r *Recorder) SetBrush(c color.RGBA)              { r.brush = c }

func (r *Recorder) DrawLine(x1, y1, x2, y2 float64) {
	r.ops = append(r.ops, Op{Kind: OpLine, Pen: r.pen, X1: x1, Y1: y1, X2: x2, Y2: y2})
}

func (r *Recorder) DrawRect(rect placement.Rect) {
	rect = rect.Canon()
	r.ops = append(r.ops, Op{Kind: OpRect, Pen: r.pen, Brush: r.brush, X1: rect.Lx, Y1: rect.Ly, X2: rect.Ux, Y2: rect.Uy})
}

// Ops returns the recorded display list.
func (r *Recorder) Ops() []Op { return r.ops }

// Len returns the number of recorded primitives.
func (r *Recorder) Len() int { return len(r.ops) }

// Reset drops the display list and restores the default pen and brush.
func (r *Recorder) Reset() { *r = *NewRecorder() }

// Replay draws ops onto p in order.
func Replay(ops []Op, p gui.Painter) {
	for _, o := range ops {
		p.SetPen(o.Pen.Color, o.Pen.Cosmetic)
		switch o.Kind {
		case OpLine:
			p.DrawLine(o.X1, o.Y1, o.X2, o.Y2)
		case OpRect:
			p.SetBrush(o.Brush)
			p.DrawRect(o.Rect())
		}
	}
}

// Bounds returns the extent of ops, and false if ops is empty.
func Bounds(ops []Op) (placement.Rect, bool) {
	if len(ops) == 0 {
		return placement.Rect{}, false
	}
	b := placement.Rect{Lx: ops[0].X1, Ly: ops[0].Y1, Ux: ops[0].X1, Uy: ops[0].Y1}
	for _, o := range ops {
		b = b.Union(placement.Rect{Lx: o.X1, Ly: o.Y1, Ux: o.X1, Uy: o.Y1})
		b = b.Union(placement.Rect{Lx: o.X2, Ly: o.Y2, Ux: o.X2, Uy: o.Y2})
	}
	return b, true
}

// Bounds returns the extent of everything recorded so far.
func (r *Recorder) Bounds() (placement.Rect, bool) { return Bounds(r.ops) }

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
