package overlay_test

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/placeviz/placeviz/pkg/gui"
	"github.com/placeviz/placeviz/pkg/placement"
	"github.com/placeviz/placeviz/pkg/render/overlay"
)

func ExampleNormalizeForces() {
	bins := []placement.Bin{
		{Rect: placement.Rect{Ux: 10, Uy: 10}, ForceX: 3, ForceY: 4},
		{Rect: placement.Rect{Lx: 10, Ux: 20, Uy: 10}, ForceX: 0, ForceY: -1},
	}
	for _, s := range overlay.NormalizeForces(bins) {
		fmt.Printf("(%.0f,%.0f) -> (%.0f,%.0f)\n", s.From.X, s.From.Y, s.To.X, s.To.Y)
	}
	// Output:
	// (5,5) -> (8,9)
	// (15,5) -> (15,4)
}

func ExampleGraphics_Select() {
	d := placement.New(&placement.Rect{Ux: 100, Uy: 100})
	d.AddCell(placement.Cell{
		Name: "u1", Kind: placement.KindInstance,
		Center: r2.Vec{X: 50, Y: 50}, Width: 10, Height: 10,
		Inst: &placement.Instance{Name: "u1", Master: "NAND2_X1"},
	})
	d.AddCell(placement.Cell{
		Name: "fill_7", Kind: placement.KindFiller,
		Center: r2.Vec{X: 70, Y: 50}, Width: 10, Height: 10,
	})

	g := overlay.New(gui.NewSession(), d)
	fmt.Println(g.Select("", r2.Vec{X: 50, Y: 50}))
	fmt.Println(g.Select("", r2.Vec{X: 72, Y: 51}))
	fmt.Println(g.Select("", r2.Vec{X: 10, Y: 10}))
	fmt.Println(g.Select("metal2", r2.Vec{X: 50, Y: 50}))
	// Output:
	// instance u1 (NAND2_X1)
	// internal cell #1
	// nothing
	// nothing
}
