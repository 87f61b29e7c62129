// Package overlay draws the placer's debug overlay and answers pick queries.
//
// # Overview
//
// [Graphics] is the renderer a visualization host ([gui.Host]) drives. Each
// frame it composes five layers, in this order:
//
//  1. region: the four edges of the placement region
//  2. bins: density shading, one filled rectangle per bin (optional)
//  3. cells: instances and fillers, the selected cell highlighted
//  4. nets: lines from the selected cell's pins to every other pin on the
//     same net (only while something is selected)
//  5. forces: one segment per bin along its electrostatic force
//
// # Force Vectors
//
// [NormalizeForces] maps every bin force onto a common scale: the strongest
// force gets the length of the smallest bin half-extent, the rest are scaled
// by their ratio to it, so every segment stays inside its bin. Direction comes from atan2, so all four quadrants are
// drawn correctly. A field with no force at all yields zero-length segments.
//
// # Picking
//
// [Pick] scans cells in design order with an inclusive bounding-box test.
// Every containing cell replaces the running match; the first containing
// instance ends the scan and is reported with its handle. A scan that ends on
// a filler reports [gui.SelectedInternal]: the filler is highlighted but has
// nothing the host can resolve. Picks on a named routing layer are declined.
//
// # Usage
//
//	s := gui.NewSession(gui.WithPainterFactory(func() gui.Painter { return sink.NewRecorder() }))
//	g := overlay.New(s, design, overlay.WithDrawBins(true))
//	g.Select("", r2.Vec{X: 50, Y: 50})
//	g.CellPlot(false)
package overlay
