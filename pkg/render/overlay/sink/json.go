package sink

import (
	"encoding/json"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	layers   []string
	selected string
}

// WithJSONLayers records the names of the layers the frame was drawn with.
func WithJSONLayers(layers []string) JSONOption { return func(r *jsonRenderer) { r.layers = layers } }

// WithJSONSelected records a description of the selection.
func WithJSONSelected(s string) JSONOption { return func(r *jsonRenderer) { r.selected = s } }

type jsonOutput struct {
	Bounds   *jsonRect `json:"bounds,omitempty"`
	Layers   []string  `json:"layers,omitempty"`
	Selected string    `json:"selected,omitempty"`
	Ops      []jsonOp  `json:"ops"`
}

type jsonRect struct {
	Lx float64 `json:"lx"`
	Ly float64 `json:"ly"`
	Ux float64 `json:"ux"`
	Uy float64 `json:"uy"`
}

type jsonOp struct {
	Kind     OpKind  `json:"kind"`
	Pen      string  `json:"pen"`
	Cosmetic bool    `json:"cosmetic,omitempty"`
	Brush    string  `json:"brush,omitempty"`
	X1       float64 `json:"x1"`
	Y1       float64 `json:"y1"`
	X2       float64 `json:"x2"`
	Y2       float64 `json:"y2"`
}

// RenderJSON renders the display list as JSON. Colors are written as
// #rrggbbaa strings.
func RenderJSON(ops []Op, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Layers:   r.layers,
		Selected: r.selected,
		Ops:      make([]jsonOp, len(ops)),
	}
	if b, ok := Bounds(ops); ok {
		out.Bounds = &jsonRect{Lx: b.Lx, Ly: b.Ly, Ux: b.Ux, Uy: b.Uy}
	}
	for i, o := range ops {
		op := jsonOp{
			Kind:     o.Kind,
			Pen:      hexColor(o.Pen.Color),
			Cosmetic: o.Pen.Cosmetic,
			X1:       o.X1,
			Y1:       o.Y1,
			X2:       o.X2,
			Y2:       o.Y2,
		}
		if o.Kind == OpRect {
			op.Brush = hexColor(o.Brush)
		}
		out.Ops[i] = op
	}
	return json.MarshalIndent(out, "", "  ")
}
