// Package render holds the drawing side of placeviz.
//
// # Overview
//
//   - [overlay]: the placer debug overlay (force vectors, picking, layers)
//   - [overlay/sink]: output formats for overlay frames (SVG, PNG, PDF, JSON, text)
//   - [netgraph]: connectivity of one cell as a Graphviz graph
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG with the external rsvg-convert tool
// (from librsvg). Both overlay and netgraph output go through them when a
// vector-exact PDF or PNG is wanted.
//
//	svg := sink.RenderSVG(rec.Ops())
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// [overlay]: github.com/placeviz/placeviz/pkg/render/overlay
// [overlay/sink]: github.com/placeviz/placeviz/pkg/render/overlay/sink
// [netgraph]: github.com/placeviz/placeviz/pkg/render/netgraph
package render
