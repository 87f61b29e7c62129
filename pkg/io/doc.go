// Package io reads and writes placement snapshots as JSON.
//
// # JSON Format
//
// A snapshot is one placer state, everything the overlay draws:
//
//	{
//	  "region": {"lx": 0, "ly": 0, "ux": 100, "uy": 100},
//	  "bins": [
//	    {"lx": 0, "ly": 0, "ux": 50, "uy": 50, "density": 0.6, "fx": 1.5, "fy": -0.2}
//	  ],
//	  "cells": [
//	    {"name": "u1", "kind": "instance", "cx": 50, "cy": 50, "width": 10, "height": 10,
//	     "instance": {"name": "u1", "master": "NAND2_X1"}},
//	    {"name": "fill_0", "kind": "filler", "cx": 20, "cy": 70, "width": 4, "height": 4}
//	  ],
//	  "nets": [{"name": "n1"}],
//	  "pins": [{"cell": "u1", "net": "n1", "x": 52, "y": 50}]
//	}
//
// region, bins, nets and pins are optional. Cell kind may be omitted: cells
// with an instance object are instances, the rest are fillers. Pins refer to
// cells and nets by name; a pin without "net" belongs to no net.
//
// A frames file is a JSON array of snapshots, one per placer iteration, read
// with [ReadFrames] or [ImportFrames].
//
// # Import
//
//	d, err := io.ImportJSON("snapshot.json")
//
// Decoding and validation failures carry the INVALID_SNAPSHOT error code and
// name the record that caused them, e.g. "cell 3 (u7): duplicate cell name: u7".
// A missing file carries FILE_NOT_FOUND.
//
// # Export
//
//	err := io.ExportJSON(d, "snapshot.json")
//
// Export writes every field explicitly (including kind), so an exported
// snapshot re-imports to an identical design.
package io
