// Package placement models the read-only layout snapshot a global placer
// exposes to its debug overlay.
//
// # Overview
//
// A [Design] holds everything the overlay draws or picks from:
//
//   - Region: the core boundary rectangle (optional)
//   - Bins: density grid cells with a density ratio and an electrostatic force
//   - Cells: placeable objects ("gCells"), each either an instance or a filler
//   - Pins and Nets: connectivity between cells
//
// Cells are a tagged variant rather than a type hierarchy: [Kind] says whether
// the cell is a real design instance (carrying an [Instance] handle) or a
// filler used to pad free space. Fillers never carry a handle.
//
// # Identity
//
// Cells, pins and nets are addressed by dense integer ids ([CellID], [PinID],
// [NetID]) assigned in insertion order. Iteration order is insertion order and
// is part of the contract: point picking resolves ties by it.
//
// # Building
//
//	d := placement.New(&placement.Rect{Lx: 0, Ly: 0, Ux: 100, Uy: 100})
//	d.AddBin(placement.Bin{Rect: placement.Rect{Ux: 100, Uy: 100}, Density: 0.6})
//	u1, _ := d.AddCell(placement.Cell{
//	    Name: "u1", Kind: placement.KindInstance,
//	    Center: r2.Vec{X: 50, Y: 50}, Width: 10, Height: 10,
//	    Inst: &placement.Instance{Name: "u1", Master: "NAND2_X1"},
//	})
//	n1, _ := d.AddNet("n1")
//	d.AddPin(u1, n1, r2.Vec{X: 48, Y: 50})
//
// The design is owned by the placement engine. Consumers such as the overlay
// keep ids, never pointers, and must be told when a design is replaced.
package placement
