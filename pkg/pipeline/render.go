package pipeline

import (
	"context"
	"fmt"

	"github.com/placeviz/placeviz/pkg/cache"
	"github.com/placeviz/placeviz/pkg/placement"
	"github.com/placeviz/placeviz/pkg/render/overlay/sink"
)

// FrameHash identifies what f draws: its display list, layers and selection.
func FrameHash(f *Frame) (string, error) {
	data, err := frameJSON(f)
	if err != nil {
		return "", err
	}
	return cache.Hash(data), nil
}

func frameJSON(f *Frame) ([]byte, error) {
	return sink.RenderJSON(f.Ops,
		sink.WithJSONLayers(f.Layers),
		sink.WithJSONSelected(f.Inspect))
}

// Render encodes a composed frame in every format of opts.Formats.
func Render(ctx context.Context, f *Frame, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(f.Ops, sink.WithSize(opts.Width, opts.Height))
		case FormatPNG:
			data, err = renderPNG(f, opts)
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, f.Ops, sink.WithSize(opts.Width, opts.Height))
		case FormatJSON:
			data, err = frameJSON(f)
		case FormatText:
			data = []byte(RenderText(f, opts.TextCols, opts.TextRows).String())
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func renderPNG(f *Frame, opts Options) ([]byte, error) {
	w, h := opts.RasterSize()
	scale := opts.Scale
	if scale <= 0 {
		scale = DefaultScale
	}
	return sink.RenderPNG(f.Ops,
		sink.WithPNGSize(w, h),
		sink.WithPNGLineWidth(scale))
}

// RenderText replays a frame onto a text grid. The grid shows the design
// region when one is set, otherwise the extent of the frame.
func RenderText(f *Frame, cols, rows int) *sink.Grid {
	grid := sink.NewGrid(cols, rows, TextView(f))
	sink.Replay(f.Ops, grid)
	return grid
}

// TextView returns the layout rectangle a text rendering of f shows.
func TextView(f *Frame) placement.Rect {
	if f.Region != nil {
		return *f.Region
	}
	if b, ok := sink.Bounds(f.Ops); ok {
		return b
	}
	return placement.Rect{Ux: 1, Uy: 1}
}
