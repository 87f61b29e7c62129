// Package sink turns overlay frames into files and terminal output.
//
// # Overview
//
// A [Recorder] is a [gui.Painter] that keeps every primitive it is handed,
// together with the pen and brush that were active, as a display list of
// [Op] values. The renderers in this package consume that list:
//
//   - SVG: [RenderSVG], y-up layout coordinates flipped into SVG space
//   - PNG: [RenderPNG], rasterized natively with gogpu/gg
//   - PDF: [RenderPDF], the SVG converted with rsvg-convert
//   - JSON: [RenderJSON], the display list itself
//
// [Grid] is a second painter that rasterizes straight into a rune grid for
// terminal hosts.
//
// # Usage
//
//	rec := sink.NewRecorder()
//	g.DrawObjects(rec)
//	svg := sink.RenderSVG(rec.Ops(), sink.WithSize(800, 800))
//	png, err := sink.RenderPNG(rec.Ops(), sink.WithPNGSize(1600, 1600))
//
// Cosmetic pens keep their on-screen width at any zoom: in SVG they carry
// vector-effect="non-scaling-stroke", in PNG they are one pixel wide.
package sink
