package sink

import (
	"context"

	"github.com/placeviz/placeviz/pkg/render"
)

// RenderPDF renders a display list as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, ops []Op, opts ...SVGOption) ([]byte, error) {
	return render.ToPDF(ctx, RenderSVG(ops, opts...))
}
