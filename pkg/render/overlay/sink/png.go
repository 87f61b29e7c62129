package sink

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/gogpu/gg"
)

// PNGOption configures native PNG rendering via [RenderPNG].
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	width, height int
	margin        float64
	lineWidth     float64
	background    color.RGBA
}

// WithPNGSize sets the image size in pixels (default 800x800).
func WithPNGSize(w, h int) PNGOption { return func(r *pngRenderer) { r.width, r.height = w, h } }

// WithPNGMargin sets the margin as a fraction of the larger extent.
func WithPNGMargin(m float64) PNGOption { return func(r *pngRenderer) { r.margin = m } }

// WithPNGLineWidth sets the stroke width of non-cosmetic pens in layout
// units. Strokes are never thinner than one pixel.
func WithPNGLineWidth(w float64) PNGOption { return func(r *pngRenderer) { r.lineWidth = w } }

// WithPNGBackground sets the canvas color.
func WithPNGBackground(c color.RGBA) PNGOption { return func(r *pngRenderer) { r.background = c } }

// RenderPNG rasterizes a display list with gogpu/gg. It needs no external
// tools; for vector-exact output convert [RenderSVG] with render.ToPNG.
func RenderPNG(ops []Op, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{width: 800, height: 800, margin: DefaultMargin, lineWidth: 1, background: color.RGBA{A: 0xff}}
	for _, opt := range opts {
		opt(&r)
	}
	if r.width <= 0 || r.height <= 0 {
		return nil, fmt.Errorf("png: invalid size %dx%d", r.width, r.height)
	}

	dc := gg.NewContext(r.width, r.height)
	defer dc.Close()
	dc.ClearWithColor(toGG(r.background))

	v := fit(frame(ops, r.margin), r.width, r.height)
	for i, o := range ops {
		if err := r.draw(dc, v, o); err != nil {
			return nil, fmt.Errorf("png: op %d (%s): %w", i, o.Kind, err)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("png: encode: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *pngRenderer) draw(dc *gg.Context, v viewport, o Op) error {
	switch o.Kind {
	case OpLine:
		x1, y1 := v.point(o.X1, o.Y1)
		x2, y2 := v.point(o.X2, o.Y2)
		r.setPen(dc, v, o.Pen)
		dc.DrawLine(x1, y1, x2, y2)
		return dc.Stroke()
	case OpRect:
		x, y := v.point(o.X1, o.Y2)
		w, h := (o.X2-o.X1)*v.scale, (o.Y2-o.Y1)*v.scale
		if o.Brush.A > 0 {
			setColor(dc, o.Brush)
			dc.DrawRectangle(x, y, w, h)
			if err := dc.Fill(); err != nil {
				return err
			}
		}
		if o.Pen.Color.A == 0 {
			return nil
		}
		r.setPen(dc, v, o.Pen)
		dc.DrawRectangle(x, y, w, h)
		return dc.Stroke()
	}
	return nil
}

func (r *pngRenderer) setPen(dc *gg.Context, v viewport, p Pen) {
	width := 1.0
	if !p.Cosmetic {
		width = math.Max(1, r.lineWidth*v.scale)
	}
	dc.SetLineWidth(width)
	setColor(dc, p.Color)
}

func setColor(dc *gg.Context, c color.RGBA) {
	dc.SetRGBA(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, float64(c.A)/255)
}

func toGG(c color.RGBA) gg.RGBA {
	return gg.RGBA{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255, A: float64(c.A) / 255}
}
