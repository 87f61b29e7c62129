package overlay

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/placeviz/placeviz/pkg/gui"
	"github.com/placeviz/placeviz/pkg/placement"
)

// Pick resolves p to a cell of d and records the match in sel.
//
// sel is cleared first. A non-empty layer declines the query. Otherwise cells
// are scanned in design order; each cell whose bounds contain p (edges
// included) becomes the running match, and the first containing instance
// stops the scan. The scan is linear in the number of cells.
func Pick(d *placement.Design, sel *Selection, layer string, p r2.Vec) gui.Selected {
	sel.Clear()
	if layer != "" || d == nil {
		return gui.Selected{}
	}

	for i, c := range d.Cells() {
		if !c.Bounds().Contains(p) {
			continue
		}
		id := placement.CellID(i)
		sel.Set(id)
		if c.IsInstance() {
			return gui.Selected{Kind: gui.SelectedInstance, Instance: c.Inst, Cell: id}
		}
	}

	if id, ok := sel.Current(); ok {
		return gui.Selected{Kind: gui.SelectedInternal, Cell: id}
	}
	return gui.Selected{}
}
