package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/placeviz/placeviz/pkg/errors"
	"github.com/placeviz/placeviz/pkg/placement"
)

// ReadJSON decodes one placement snapshot from r.
//
// Cells must have unique names. A cell's kind defaults to "instance" when an
// instance object is present and "filler" otherwise; an instance without a
// name takes the cell's name. Pins reference cells and nets by name, and a
// pin without a net is kept but never drawn as connectivity.
//
// Errors carry the code INVALID_SNAPSHOT and name the offending record.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*placement.Design, error) {
	var data snapshot
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "decode snapshot")
	}
	return build(data)
}

// ImportJSON reads a snapshot file.
func ImportJSON(path string) (*placement.Design, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	d, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// ReadFrames decodes a JSON array of snapshots, one per placer iteration.
func ReadFrames(r io.Reader) ([]*placement.Design, error) {
	var data []snapshot
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "decode frames")
	}
	frames := make([]*placement.Design, len(data))
	for i, s := range data {
		d, err := build(s)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		frames[i] = d
	}
	return frames, nil
}

// ImportFrames reads a frames file.
func ImportFrames(path string) ([]*placement.Design, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	frames, err := ReadFrames(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return frames, nil
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	return f, nil
}

func build(s snapshot) (*placement.Design, error) {
	var region *placement.Rect
	if s.Region != nil {
		region = &placement.Rect{Lx: s.Region.Lx, Ly: s.Region.Ly, Ux: s.Region.Ux, Uy: s.Region.Uy}
	}
	d := placement.New(region)

	bins := make([]placement.Bin, len(s.Bins))
	for i, b := range s.Bins {
		bins[i] = placement.Bin{
			Rect:    placement.Rect{Lx: b.Lx, Ly: b.Ly, Ux: b.Ux, Uy: b.Uy},
			Density: b.Density,
			ForceX:  b.Fx,
			ForceY:  b.Fy,
		}
	}
	d.SetBins(bins)

	for i, c := range s.Cells {
		pc, err := toCell(c)
		if err == nil {
			_, err = d.AddCell(pc)
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "cell %d (%s)", i, c.Name)
		}
	}
	for i, n := range s.Nets {
		if _, err := d.AddNet(n.Name); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "net %d (%s)", i, n.Name)
		}
	}
	for i, p := range s.Pins {
		if err := addPin(d, p); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "pin %d", i)
		}
	}
	return d, nil
}

func toCell(c cell) (placement.Cell, error) {
	pc := placement.Cell{
		Name:   c.Name,
		Center: r2.Vec{X: c.Cx, Y: c.Cy},
		Width:  c.Width,
		Height: c.Height,
	}
	switch {
	case c.Kind != "":
		k, ok := placement.ParseKind(c.Kind)
		if !ok {
			return pc, fmt.Errorf("unknown kind %q", c.Kind)
		}
		pc.Kind = k
	case c.Instance != nil:
		pc.Kind = placement.KindInstance
	default:
		pc.Kind = placement.KindFiller
	}
	if c.Instance != nil {
		pc.Inst = &placement.Instance{Name: c.Instance.Name, Master: c.Instance.Master}
		if pc.Inst.Name == "" {
			pc.Inst.Name = c.Name
		}
	}
	return pc, nil
}

func addPin(d *placement.Design, p pin) error {
	cid, ok := d.CellByName(p.Cell)
	if !ok {
		return fmt.Errorf("%w: %s", placement.ErrUnknownCell, p.Cell)
	}
	nid := placement.NoNet
	if p.Net != "" {
		if nid, ok = d.NetByName(p.Net); !ok {
			return fmt.Errorf("%w: %s", placement.ErrUnknownNet, p.Net)
		}
	}
	_, err := d.AddPin(cid, nid, r2.Vec{X: p.X, Y: p.Y})
	return err
}
