package cli

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/spatial/r2"

	placeio "github.com/placeviz/placeviz/pkg/io"
	"github.com/placeviz/placeviz/pkg/placement"
)

// testDesign is a 100x100 region with one instance (u1, a NAND2 at 50,50)
// wired to a filler by net n1.
func testDesign(t *testing.T) *placement.Design {
	t.Helper()
	d := placement.New(&placement.Rect{Ux: 100, Uy: 100})
	d.SetBins([]placement.Bin{
		{Rect: placement.Rect{Ux: 50, Uy: 100}, Density: 0.5, ForceX: 1},
		{Rect: placement.Rect{Lx: 50, Ux: 100, Uy: 100}, Density: 1.2, ForceY: -2},
	})
	u1, err := d.AddCell(placement.Cell{
		Name:   "u1",
		Kind:   placement.KindInstance,
		Center: r2.Vec{X: 50, Y: 50},
		Width:  10,
		Height: 10,
		Inst:   &placement.Instance{Name: "u1", Master: "NAND2"},
	})
	if err != nil {
		t.Fatal(err)
	}
	fill, err := d.AddCell(placement.Cell{
		Name:   "fill0",
		Kind:   placement.KindFiller,
		Center: r2.Vec{X: 20, Y: 20},
		Width:  4,
		Height: 4,
	})
	if err != nil {
		t.Fatal(err)
	}
	n1, err := d.AddNet("n1")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.AddPin(u1, n1, r2.Vec{X: 52, Y: 50}); err != nil {
		t.Fatal(err)
	}
	if _, err := d.AddPin(fill, n1, r2.Vec{X: 20, Y: 20}); err != nil {
		t.Fatal(err)
	}
	return d
}

// writeSnapshot exports testDesign into dir and returns its path.
func writeSnapshot(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "iter1.json")
	if err := placeio.ExportJSON(testDesign(t), path); err != nil {
		t.Fatal(err)
	}
	return path
}

// testCLI returns a CLI writing results to the returned buffer and
// discarding logs. User config and cache directories point into a temporary
// directory.
func testCLI(t *testing.T) (*CLI, *bytes.Buffer) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, "cache"))
	var out bytes.Buffer
	c := &CLI{Logger: newLogger(io.Discard, log.InfoLevel), Out: &out}
	return c, &out
}
