// Package pkg provides the libraries behind placeviz, a debug overlay for
// global placement.
//
// # Overview
//
// A global placer spreads cells over the core region by treating cell
// density as charge and moving cells along the resulting electrostatic
// force. placeviz draws what the placer sees at one iteration: the core
// region, the density bins, every cell, the nets of a selected cell and the
// force field. The pkg directory is organized into these areas:
//
//  1. [placement] - The design model: region, bins, cells, pins and nets
//  2. [gui] - The host contract a renderer draws through, plus a reference
//     [gui.Session] host with a cooperative pause
//  3. [render] - The overlay itself and its output formats
//  4. [pipeline] - Orchestration (load → compose → render) and TOML config
//  5. [io] - Snapshot files written by the placer
//  6. [cache] - Rendered artifacts kept between runs
//
// # Architecture
//
// The typical data flow:
//
//	Snapshot JSON (one placer iteration)
//	         ↓
//	    [io] package (decode into a placement.Design)
//	         ↓
//	    [render/overlay] package (pick, compose layers onto a gui.Painter)
//	         ↓
//	    [render/overlay/sink] package (display list → SVG/PNG/PDF/JSON/text)
//
// # Quick Start
//
// Draw one frame through a headless session:
//
//	import (
//	    "github.com/placeviz/placeviz/pkg/gui"
//	    "github.com/placeviz/placeviz/pkg/render/overlay"
//	    "github.com/placeviz/placeviz/pkg/render/overlay/sink"
//	)
//
//	rec := sink.NewRecorder()
//	session := gui.NewSession(gui.WithPainterFactory(func() gui.Painter { return rec }))
//	g := overlay.New(session, design, overlay.WithDrawBins(true))
//	g.CellPlot(false)
//	svg := sink.RenderSVG(rec.Ops())
//
// A placer embedding the overlay calls CellPlot(true) once per iteration;
// the host shows the frame and blocks the placer until the user resumes it.
//
// # Error Handling
//
// [errors] provides structured errors with codes (INVALID_SNAPSHOT,
// FILE_NOT_FOUND, ...) that the CLI turns into user-facing messages.
//
// # Observability
//
// [observability] exposes hooks for frame, pick and pause events and for
// pipeline stages. They default to no-ops.
//
// [placement]: https://pkg.go.dev/github.com/placeviz/placeviz/pkg/placement
// [gui]: https://pkg.go.dev/github.com/placeviz/placeviz/pkg/gui
// [gui.Session]: https://pkg.go.dev/github.com/placeviz/placeviz/pkg/gui#Session
// [render]: https://pkg.go.dev/github.com/placeviz/placeviz/pkg/render
// [render/overlay]: https://pkg.go.dev/github.com/placeviz/placeviz/pkg/render/overlay
// [render/overlay/sink]: https://pkg.go.dev/github.com/placeviz/placeviz/pkg/render/overlay/sink
// [pipeline]: https://pkg.go.dev/github.com/placeviz/placeviz/pkg/pipeline
// [io]: https://pkg.go.dev/github.com/placeviz/placeviz/pkg/io
// [cache]: https://pkg.go.dev/github.com/placeviz/placeviz/pkg/cache
// [errors]: https://pkg.go.dev/github.com/placeviz/placeviz/pkg/errors
// [observability]: https://pkg.go.dev/github.com/placeviz/placeviz/pkg/observability
package pkg
