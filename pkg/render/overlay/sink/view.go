package sink

import (
	"math"
	"strconv"

	"github.com/placeviz/placeviz/pkg/placement"
)

// DefaultMargin is the frame margin as a fraction of the larger extent.
const DefaultMargin = 0.02

// frame returns the bounds of ops grown by margin on every side. An empty or
// flat display list gets a unit frame so the output is still well formed.
func frame(ops []Op, margin float64) placement.Rect {
	b, ok := Bounds(ops)
	if !ok {
		return placement.Rect{Ux: 1, Uy: 1}
	}
	ext := math.Max(b.Dx(), b.Dy())
	m := margin * ext
	if ext == 0 {
		m = 0.5
	}
	return placement.Rect{Lx: b.Lx - m, Ly: b.Ly - m, Ux: b.Ux + m, Uy: b.Uy + m}
}

// viewport maps layout coordinates into a w x h pixel canvas, preserving the
// aspect ratio and flipping y so that layout y grows upward.
type viewport struct {
	frame         placement.Rect
	scale         float64
	offX, offY    float64
	width, height int
}

func fit(f placement.Rect, w, h int) viewport {
	s := math.Min(float64(w)/f.Dx(), float64(h)/f.Dy())
	return viewport{
		frame:  f,
		scale:  s,
		offX:   (float64(w) - f.Dx()*s) / 2,
		offY:   (float64(h) - f.Dy()*s) / 2,
		width:  w,
		height: h,
	}
}

func (v viewport) point(x, y float64) (float64, float64) {
	return v.offX + (x-v.frame.Lx)*v.scale, v.offY + (v.frame.Uy-y)*v.scale
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
