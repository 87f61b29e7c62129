package netgraph

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/placeviz/placeviz/pkg/errors"
	"github.com/placeviz/placeviz/pkg/placement"
	"github.com/placeviz/placeviz/pkg/render"
	"github.com/placeviz/placeviz/pkg/render/overlay"
)

// Options configures graph generation.
type Options struct {
	// Detailed adds master, position and size to node labels and names the
	// net on each edge. When false, nodes show only the cell name.
	Detailed bool
}

// ToDOT returns the connectivity of cell id as Graphviz DOT source.
func ToDOT(d *placement.Design, id placement.CellID, opts Options) (string, error) {
	c := d.Cell(id)
	if c == nil {
		return "", errors.New(errors.ErrCodeNotFound, "cell #%d not in design", id)
	}
	conns := overlay.Connections(d, id)

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=lightsteelblue, fontsize=14];\n")
	buf.WriteString("  edge [color=goldenrod];\n")
	buf.WriteString("\n")

	writeNode(&buf, c, true, opts.Detailed)
	seen := map[placement.CellID]bool{id: true}
	for _, conn := range conns {
		nid := d.Pin(conn.To).Cell
		if seen[nid] {
			continue
		}
		seen[nid] = true
		writeNode(&buf, d.Cell(nid), false, opts.Detailed)
	}

	buf.WriteString("\n")
	for _, conn := range conns {
		other := d.Cell(d.Pin(conn.To).Cell)
		fmt.Fprintf(&buf, "  %q -- %q", c.Name, other.Name)
		if opts.Detailed {
			fmt.Fprintf(&buf, " [label=%q]", d.Net(conn.Net).Name)
		}
		buf.WriteString(";\n")
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

func writeNode(buf *bytes.Buffer, c *placement.Cell, selected, detailed bool) {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(c, detailed))}
	switch {
	case selected:
		attrs = append(attrs, "fillcolor=gold", "penwidth=2")
	case c.IsFiller():
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=plum")
	}
	fmt.Fprintf(buf, "  %q [%s];\n", c.Name, strings.Join(attrs, ", "))
}

func fmtLabel(c *placement.Cell, detailed bool) string {
	if !detailed {
		return c.Name
	}
	parts := []string{c.Name}
	if c.Inst != nil {
		parts = append(parts, "master: "+c.Inst.Master)
	} else {
		parts = append(parts, "filler")
	}
	parts = append(parts,
		fmt.Sprintf("at: (%g, %g)", c.Center.X, c.Center.Y),
		fmt.Sprintf("size: %gx%g", c.Width, c.Height),
		fmt.Sprintf("pins: %d", len(c.Pins)),
	)
	return strings.Join(parts, "\n")
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-sized svg header with one whose
// width and height match the viewBox, so the image scales predictably.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}

// RenderPDF renders DOT source as PDF via SVG conversion.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders DOT source as PNG via SVG conversion at the given scale.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
