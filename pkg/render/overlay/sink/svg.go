package sink

import (
	"bytes"
	"fmt"
	"image/color"
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width, height int
	margin        float64
	lineWidth     float64
	background    color.RGBA
}

// WithSize sets the width and height attributes of the SVG (default 800x800).
func WithSize(w, h int) SVGOption { return func(r *svgRenderer) { r.width, r.height = w, h } }

// WithMargin sets the margin as a fraction of the larger extent.
func WithMargin(m float64) SVGOption { return func(r *svgRenderer) { r.margin = m } }

// WithLineWidth sets the stroke width of non-cosmetic pens in layout units.
func WithLineWidth(w float64) SVGOption { return func(r *svgRenderer) { r.lineWidth = w } }

// WithBackground sets the canvas color. A zero alpha leaves it transparent.
func WithBackground(c color.RGBA) SVGOption { return func(r *svgRenderer) { r.background = c } }

// RenderSVG renders a display list as SVG. The viewBox is fitted to the
// bounds of ops; content is drawn in layout coordinates inside a group that
// flips the y axis.
func RenderSVG(ops []Op, opts ...SVGOption) []byte {
	r := svgRenderer{width: 800, height: 800, margin: DefaultMargin, lineWidth: 1, background: color.RGBA{A: 0xff}}
	for _, opt := range opts {
		opt(&r)
	}

	f := frame(ops, r.margin)
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" width="%d" height="%d">`+"\n",
		num(f.Lx), num(-f.Uy), num(f.Dx()), num(f.Dy()), r.width, r.height)
	if r.background.A > 0 {
		fmt.Fprintf(&buf, `  <rect x="%s" y="%s" width="%s" height="%s" %s/>`+"\n",
			num(f.Lx), num(-f.Uy), num(f.Dx()), num(f.Dy()), paint("fill", r.background))
	}

	buf.WriteString(`  <g transform="scale(1,-1)">` + "\n")
	for _, o := range ops {
		switch o.Kind {
		case OpLine:
			fmt.Fprintf(&buf, `    <line x1="%s" y1="%s" x2="%s" y2="%s" %s/>`+"\n",
				num(o.X1), num(o.Y1), num(o.X2), num(o.Y2), r.stroke(o.Pen))
		case OpRect:
			fmt.Fprintf(&buf, `    <rect x="%s" y="%s" width="%s" height="%s" %s %s/>`+"\n",
				num(o.X1), num(o.Y1), num(o.X2-o.X1), num(o.Y2-o.Y1), paint("fill", o.Brush), r.stroke(o.Pen))
		}
	}
	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) stroke(p Pen) string {
	if p.Cosmetic {
		return paint("stroke", p.Color) + ` stroke-width="1" vector-effect="non-scaling-stroke"`
	}
	return paint("stroke", p.Color) + fmt.Sprintf(` stroke-width="%s"`, num(r.lineWidth))
}

// paint renders a fill or stroke attribute pair; fully transparent colors
// become "none".
func paint(attr string, c color.RGBA) string {
	if c.A == 0 {
		return attr + `="none"`
	}
	s := fmt.Sprintf(`%s="rgb(%d,%d,%d)"`, attr, c.R, c.G, c.B)
	if c.A < 0xff {
		s += fmt.Sprintf(` %s-opacity="%.3f"`, attr, float64(c.A)/255)
	}
	return s
}
