package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/placeviz/placeviz/pkg/placement"
)

// WriteJSON encodes d as a snapshot and writes it to w. The output can be
// read back with [ReadJSON].
func WriteJSON(d *placement.Design, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toSnapshot(d)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes d to a snapshot file at path.
func ExportJSON(d *placement.Design, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(d, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteFrames encodes a sequence of snapshots as a JSON array.
func WriteFrames(frames []*placement.Design, w io.Writer) error {
	out := make([]snapshot, len(frames))
	for i, d := range frames {
		out[i] = toSnapshot(d)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func toSnapshot(d *placement.Design) snapshot {
	var s snapshot
	if r, ok := d.Region(); ok {
		s.Region = &rect{Lx: r.Lx, Ly: r.Ly, Ux: r.Ux, Uy: r.Uy}
	}

	s.Bins = make([]bin, d.BinCount())
	for i, b := range d.Bins() {
		s.Bins[i] = bin{
			rect:    rect{Lx: b.Lx, Ly: b.Ly, Ux: b.Ux, Uy: b.Uy},
			Density: b.Density,
			Fx:      b.ForceX,
			Fy:      b.ForceY,
		}
	}

	s.Cells = make([]cell, d.CellCount())
	for i, c := range d.Cells() {
		out := cell{
			Name:   c.Name,
			Kind:   c.Kind.String(),
			Cx:     c.Center.X,
			Cy:     c.Center.Y,
			Width:  c.Width,
			Height: c.Height,
		}
		if c.Inst != nil {
			out.Instance = &instance{Name: c.Inst.Name, Master: c.Inst.Master}
		}
		s.Cells[i] = out
	}

	s.Nets = make([]net, d.NetCount())
	for i, n := range d.Nets() {
		s.Nets[i] = net{Name: n.Name}
	}

	s.Pins = make([]pin, d.PinCount())
	for i, p := range d.Pins() {
		out := pin{Cell: d.Cell(p.Cell).Name, X: p.Pos.X, Y: p.Pos.Y}
		if n := d.Net(p.Net); n != nil {
			out.Net = n.Name
		}
		s.Pins[i] = out
	}
	return s
}
