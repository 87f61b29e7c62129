package overlay

import (
	"fmt"
	"math"
	"strings"

	"github.com/placeviz/placeviz/pkg/gui"
	"github.com/placeviz/placeviz/pkg/placement"
)

// Layer names, in draw order.
const (
	LayerRegion = "region"
	LayerBins   = "bins"
	LayerCells  = "cells"
	LayerNets   = "nets"
	LayerForces = "forces"
)

// DefaultAlpha is the fill alpha of bins and cells.
const DefaultAlpha uint8 = 180

// Shade clamp bounds.
const (
	ShadeMin = 20
	ShadeMax = 255
)

// ForceLayer decides when the force vectors are drawn.
type ForceLayer int

const (
	// ForceAlways draws force vectors on every frame.
	ForceAlways ForceLayer = iota
	// ForceWithBins draws force vectors only when bin shading is enabled.
	ForceWithBins
	// ForceNever disables the force layer.
	ForceNever
)

var forceLayerNames = []string{"always", "with-bins", "never"}

func (f ForceLayer) String() string {
	if f < 0 || int(f) >= len(forceLayerNames) {
		return fmt.Sprintf("ForceLayer(%d)", int(f))
	}
	return forceLayerNames[f]
}

// ParseForceLayer parses "always", "with-bins" or "never".
func ParseForceLayer(s string) (ForceLayer, error) {
	for i, name := range forceLayerNames {
		if strings.EqualFold(s, name) {
			return ForceLayer(i), nil
		}
	}
	return 0, fmt.Errorf("unknown force layer %q (want one of %s)", s, strings.Join(forceLayerNames, ", "))
}

// ForceLayerNames lists the accepted ForceLayer spellings.
func ForceLayerNames() []string { return append([]string(nil), forceLayerNames...) }

// ShadeLevel maps a bin density to the gray level used before inversion:
// density*50+20, clamped to [ShadeMin, ShadeMax]. NaN maps to ShadeMin.
func ShadeLevel(density float64) int {
	v := density*50 + 20
	switch {
	case math.IsNaN(v) || v < ShadeMin:
		return ShadeMin
	case v > ShadeMax:
		return ShadeMax
	}
	return int(v)
}

// Shade returns the gray channel a bin of the given density is filled with.
// Denser bins are darker.
func Shade(density float64) uint8 {
	return uint8(255 - ShadeLevel(density))
}

// Connection links a pin of the selected cell to another pin on its net.
type Connection struct {
	From, To placement.PinID
	Net      placement.NetID
}

// Connections returns one connection from each netted pin of cell id to
// every pin of the same net that sits on a different cell. Connections are
// not deduplicated: a net reached through two pins of the cell appears twice.
func Connections(d *placement.Design, id placement.CellID) []Connection {
	c := d.Cell(id)
	if c == nil {
		return nil
	}
	var conns []Connection
	for _, pid := range c.Pins {
		pin := d.Pin(pid)
		if pin == nil || !pin.HasNet() {
			continue
		}
		net := d.Net(pin.Net)
		if net == nil {
			continue
		}
		for _, oid := range net.Pins {
			if other := d.Pin(oid); other == nil || other.Cell == id {
				continue
			}
			conns = append(conns, Connection{From: pid, To: oid, Net: pin.Net})
		}
	}
	return conns
}

// ConnectivityLines returns the segments of [Connections] between pin
// positions.
func ConnectivityLines(d *placement.Design, id placement.CellID) []Segment {
	conns := Connections(d, id)
	if conns == nil {
		return nil
	}
	segs := make([]Segment, len(conns))
	for i, c := range conns {
		segs[i] = Segment{From: d.Pin(c.From).Pos, To: d.Pin(c.To).Pos}
	}
	return segs
}

// Composer draws one overlay frame from a design and a selection.
type Composer struct {
	Design    *placement.Design
	Selection *Selection
	DrawBins  bool
	Forces    ForceLayer
	Alpha     uint8
}

// Layers returns the names of the layers Draw would render right now, in
// draw order.
func (c *Composer) Layers() []string {
	var layers []string
	if c.Design == nil {
		return layers
	}
	if _, ok := c.Design.Region(); ok {
		layers = append(layers, LayerRegion)
	}
	if c.DrawBins {
		layers = append(layers, LayerBins)
	}
	layers = append(layers, LayerCells)
	if c.Selection.Resolve(c.Design) != nil {
		layers = append(layers, LayerNets)
	}
	if c.drawForces() {
		layers = append(layers, LayerForces)
	}
	return layers
}

func (c *Composer) drawForces() bool {
	switch c.Forces {
	case ForceAlways:
		return true
	case ForceWithBins:
		return c.DrawBins
	default:
		return false
	}
}

// Draw renders the frame onto p and returns the number of primitives drawn.
func (c *Composer) Draw(p gui.Painter) int {
	if c.Design == nil || p == nil {
		return 0
	}
	n := c.drawRegion(p)
	if c.DrawBins {
		n += c.drawBins(p)
	}
	n += c.drawCells(p)
	n += c.drawNets(p)
	if c.drawForces() {
		n += c.drawForceField(p)
	}
	return n
}

func (c *Composer) drawRegion(p gui.Painter) int {
	r, ok := c.Design.Region()
	if !ok {
		return 0
	}
	p.SetPen(gui.Yellow, true)
	p.DrawLine(r.Lx, r.Ly, r.Ux, r.Ly)
	p.DrawLine(r.Ux, r.Ly, r.Ux, r.Uy)
	p.DrawLine(r.Ux, r.Uy, r.Lx, r.Uy)
	p.DrawLine(r.Lx, r.Uy, r.Lx, r.Ly)
	return 4
}

func (c *Composer) drawBins(p gui.Painter) int {
	bins := c.Design.Bins()
	p.SetPen(gui.White, true)
	for _, b := range bins {
		s := Shade(b.Density)
		p.SetBrush(gui.Gray(s, c.Alpha))
		p.DrawRect(b.Rect)
	}
	return len(bins)
}

func (c *Composer) drawCells(p gui.Painter) int {
	selected, hasSelection := c.Selection.Current()
	cells := c.Design.Cells()
	p.SetPen(gui.White, false)
	for i, cell := range cells {
		color := gui.DarkMagenta
		if cell.IsInstance() {
			color = gui.DarkBlue
		}
		if hasSelection && placement.CellID(i) == selected {
			color = gui.Yellow
		}
		p.SetBrush(gui.WithAlpha(color, c.Alpha))
		p.DrawRect(cell.Bounds())
	}
	return len(cells)
}

func (c *Composer) drawNets(p gui.Painter) int {
	id, ok := c.Selection.Current()
	if !ok {
		return 0
	}
	segs := ConnectivityLines(c.Design, id)
	if len(segs) == 0 {
		return 0
	}
	p.SetPen(gui.Yellow, true)
	for _, s := range segs {
		p.DrawLine(s.From.X, s.From.Y, s.To.X, s.To.Y)
	}
	return len(segs)
}

func (c *Composer) drawForceField(p gui.Painter) int {
	segs := NormalizeForces(c.Design.Bins())
	for _, s := range segs {
		p.SetPen(gui.Red, true)
		p.DrawLine(s.From.X, s.From.Y, s.To.X, s.To.Y)
	}
	return len(segs)
}
