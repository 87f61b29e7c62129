// Package netgraph renders the connectivity of one cell as a Graphviz graph.
//
// # Overview
//
// The overlay's net layer draws a line from every netted pin of the selected
// cell to every other pin of the same net. This package shows the same
// connections as an undirected node-link diagram: the selected cell in the
// middle, each neighbor it reaches through a net as a node, and one edge per
// connection (parallel edges included, so the multiplicity matches the
// overlay).
//
// # Usage
//
//	dot, err := netgraph.ToDOT(design, id, netgraph.Options{})
//	svg, err := netgraph.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := netgraph.RenderPDF(ctx, dot)
//	png, err := netgraph.RenderPNG(ctx, dot, 2.0) // 2x scale
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package netgraph
