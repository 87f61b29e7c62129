package overlay

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/placeviz/placeviz/pkg/gui"
	"github.com/placeviz/placeviz/pkg/observability"
	"github.com/placeviz/placeviz/pkg/placement"
)

// Option configures a Graphics.
type Option func(*Graphics)

// WithDrawBins enables the bin density layer.
func WithDrawBins(on bool) Option { return func(g *Graphics) { g.drawBins = on } }

// WithForceLayer sets when force vectors are drawn (default ForceAlways).
func WithForceLayer(f ForceLayer) Option { return func(g *Graphics) { g.forces = f } }

// WithAlpha sets the fill alpha of bins and cells (default DefaultAlpha).
func WithAlpha(a uint8) Option { return func(g *Graphics) { g.alpha = a } }

// WithLogger sets the logger (default log.Default()).
func WithLogger(l *log.Logger) Option { return func(g *Graphics) { g.logger = l } }

// Graphics is the overlay renderer. It implements [gui.Renderer].
//
// All host-facing methods (DrawObjects, Select, CellPlot, Status) do nothing
// when the host is nil or inactive. Graphics is not safe for concurrent use;
// the host must not draw and pick at the same time.
type Graphics struct {
	host   gui.Host
	design *placement.Design
	sel    Selection

	drawBins bool
	forces   ForceLayer
	alpha    uint8
	logger   *log.Logger
}

var _ gui.Renderer = (*Graphics)(nil)

// New creates the overlay for d and registers it as host's active renderer.
func New(host gui.Host, d *placement.Design, opts ...Option) *Graphics {
	g := &Graphics{
		host:   host,
		design: d,
		forces: ForceAlways,
		alpha:  DefaultAlpha,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.GuiActive() {
		host.RegisterRenderer(g)
	}
	return g
}

// GuiActive reports whether a host is attached and active.
func (g *Graphics) GuiActive() bool {
	return g.host != nil && g.host.Active()
}

func (g *Graphics) composer() *Composer {
	return &Composer{
		Design:    g.design,
		Selection: &g.sel,
		DrawBins:  g.drawBins,
		Forces:    g.forces,
		Alpha:     g.alpha,
	}
}

// DrawObjects draws one frame onto p. p is not retained.
func (g *Graphics) DrawObjects(p gui.Painter) {
	if !g.GuiActive() {
		return
	}
	start := time.Now()
	n := g.composer().Draw(p)
	observability.Frame().OnFrame(n, time.Since(start))
}

// Select picks the cell at p. See [Pick].
func (g *Graphics) Select(layer string, p r2.Vec) gui.Selected {
	if !g.GuiActive() {
		return gui.Selected{}
	}
	start := time.Now()
	sel := Pick(g.design, &g.sel, layer, p)
	observability.Frame().OnPick(sel.Kind.String(), time.Since(start))
	g.logger.Debug("pick", "x", p.X, "y", p.Y, "layer", layer, "result", sel)
	return sel
}

// CellPlot requests a redraw and, if pause is set, blocks until the host
// resumes.
func (g *Graphics) CellPlot(pause bool) {
	if !g.GuiActive() {
		return
	}
	g.host.Redraw()
	if pause {
		g.host.Pause()
	}
}

// Status forwards msg to the host's status display.
func (g *Graphics) Status(msg string) {
	if !g.GuiActive() {
		return
	}
	g.host.Status(msg)
}

// Design returns the design being drawn.
func (g *Graphics) Design() *placement.Design { return g.design }

// SetDesign replaces the design. The selection follows the selected cell by
// name into d and is cleared when d has no cell of that name.
func (g *Graphics) SetDesign(d *placement.Design) {
	prev := g.sel.Resolve(g.design)
	g.design = d
	g.sel.Clear()
	if prev == nil || d == nil {
		return
	}
	if id, ok := d.CellByName(prev.Name); ok {
		g.sel.Set(id)
	}
}

// ClearSelection drops the current selection.
func (g *Graphics) ClearSelection() { g.sel.Clear() }

// Layers returns the layers the next frame will draw.
func (g *Graphics) Layers() []string { return g.composer().Layers() }

// Selection describes the retained selection. Unlike the result of Select,
// it reports a filler kept by the scan as [gui.SelectedInternal].
func (g *Graphics) Selection() gui.Selected {
	c := g.sel.Resolve(g.design)
	if c == nil {
		return gui.Selected{}
	}
	id, _ := g.sel.Current()
	if c.IsInstance() {
		return gui.Selected{Kind: gui.SelectedInstance, Instance: c.Inst, Cell: id}
	}
	return gui.Selected{Kind: gui.SelectedInternal, Cell: id}
}

// Inspect returns a one-line description of the selected cell.
func (g *Graphics) Inspect() string {
	c := g.sel.Resolve(g.design)
	if c == nil {
		return "nothing selected"
	}
	desc := fmt.Sprintf("%s %s at (%g, %g) %gx%g, %d pins",
		c.Kind, c.Name, c.Center.X, c.Center.Y, c.Width, c.Height, len(c.Pins))
	if c.Inst != nil {
		desc += fmt.Sprintf(", master %s", c.Inst.Master)
	}
	return desc
}
