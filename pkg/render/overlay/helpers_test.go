package overlay

import (
	"image/color"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/placeviz/placeviz/pkg/placement"
)

type drawOp struct {
	line     bool
	pen      color.RGBA
	cosmetic bool
	brush    color.RGBA
	x1, y1   float64
	x2, y2   float64
	rect     placement.Rect
}

// recordPainter keeps every primitive with the pen and brush active at the
// time it was drawn.
type recordPainter struct {
	pen      color.RGBA
	cosmetic bool
	brush    color.RGBA
	ops      []drawOp
}

func (p *recordPainter) SetPen(c color.RGBA, cosmetic bool) { p.pen, p.cosmetic = c, cosmetic }
func (p *recordPainter) SetBrush(c color.RGBA)              { p.brush = c }

func (p *recordPainter) DrawLine(x1, y1, x2, y2 float64) {
	p.ops = append(p.ops, drawOp{line: true, pen: p.pen, cosmetic: p.cosmetic, x1: x1, y1: y1, x2: x2, y2: y2})
}

func (p *recordPainter) DrawRect(r placement.Rect) {
	p.ops = append(p.ops, drawOp{pen: p.pen, cosmetic: p.cosmetic, brush: p.brush, rect: r})
}

func (p *recordPainter) lines(pen color.RGBA) []drawOp {
	var out []drawOp
	for _, op := range p.ops {
		if op.line && op.pen == pen {
			out = append(out, op)
		}
	}
	return out
}

func (p *recordPainter) rects() []drawOp {
	var out []drawOp
	for _, op := range p.ops {
		if !op.line {
			out = append(out, op)
		}
	}
	return out
}

func vec(x, y float64) r2.Vec { return r2.Vec{X: x, Y: y} }

func mustCell(t *testing.T, d *placement.Design, c placement.Cell) placement.CellID {
	t.Helper()
	id, err := d.AddCell(c)
	if err != nil {
		t.Fatalf("AddCell(%s): %v", c.Name, err)
	}
	return id
}

func mustNet(t *testing.T, d *placement.Design, name string) placement.NetID {
	t.Helper()
	id, err := d.AddNet(name)
	if err != nil {
		t.Fatalf("AddNet(%s): %v", name, err)
	}
	return id
}

func mustPin(t *testing.T, d *placement.Design, cell placement.CellID, net placement.NetID, x, y float64) placement.PinID {
	t.Helper()
	id, err := d.AddPin(cell, net, r2.Vec{X: x, Y: y})
	if err != nil {
		t.Fatalf("AddPin: %v", err)
	}
	return id
}

func instance(name string, x, y, w, h float64) placement.Cell {
	return placement.Cell{
		Name:   name,
		Kind:   placement.KindInstance,
		Center: r2.Vec{X: x, Y: y},
		Width:  w,
		Height: h,
		Inst:   &placement.Instance{Name: name, Master: "INV_X1"},
	}
}

func filler(name string, x, y, w, h float64) placement.Cell {
	return placement.Cell{
		Name:   name,
		Kind:   placement.KindFiller,
		Center: r2.Vec{X: x, Y: y},
		Width:  w,
		Height: h,
	}
}

// singleInstanceDesign is a 100x100 region covered by one bin of density 0.6
// with a 10x10 instance in the middle.
func singleInstanceDesign(t *testing.T) *placement.Design {
	t.Helper()
	d := placement.New(&placement.Rect{Ux: 100, Uy: 100})
	d.AddBin(placement.Bin{Rect: placement.Rect{Ux: 100, Uy: 100}, Density: 0.6})
	mustCell(t, d, instance("u1", 50, 50, 10, 10))
	return d
}
