package gui

import (
	"image/color"

	"github.com/placeviz/placeviz/pkg/placement"
)

// Painter is the drawing surface a host lends to a renderer for one frame.
//
// Pen settings apply to lines and rectangle outlines, the brush to rectangle
// fills. A cosmetic pen keeps a constant on-screen width regardless of zoom.
type Painter interface {
	SetPen(c color.RGBA, cosmetic bool)
	SetBrush(c color.RGBA)
	DrawLine(x1, y1, x2, y2 float64)
	DrawRect(r placement.Rect)
}

// Palette used by the overlay layers.
var (
	Black       = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff}
	White       = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	Red         = color.RGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff}
	Yellow      = color.RGBA{R: 0xff, G: 0xff, B: 0x00, A: 0xff}
	DarkBlue    = color.RGBA{R: 0x00, G: 0x00, B: 0x80, A: 0xff}
	DarkMagenta = color.RGBA{R: 0x80, G: 0x00, B: 0x80, A: 0xff}
)

// WithAlpha returns c with its alpha channel replaced.
//
// color.RGBA is alpha-premultiplied in the standard library; the overlay
// treats its channels as straight (non-premultiplied) values, the way hosts
// consume them. Sinks convert as needed.
func WithAlpha(c color.RGBA, a uint8) color.RGBA {
	c.A = a
	return c
}

// Gray returns an opaque-channel gray with the given alpha.
func Gray(v, a uint8) color.RGBA {
	return color.RGBA{R: v, G: v, B: v, A: a}
}
