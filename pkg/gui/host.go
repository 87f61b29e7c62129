package gui

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Renderer is implemented by overlays that draw into a host.
type Renderer interface {
	// DrawObjects draws one frame. p must not be retained after return.
	DrawObjects(p Painter)
	// Select resolves a click at p. A non-empty layer names the routing
	// layer the host is filtering by; renderers may decline such queries.
	Select(layer string, p r2.Vec) Selected
}

// Host is the visualization host as seen by a renderer.
type Host interface {
	// RegisterRenderer makes r the active renderer, replacing any previous one.
	RegisterRenderer(r Renderer)
	// Redraw requests a new frame. It does not wait for user input.
	Redraw()
	// Pause blocks the caller until the host is resumed.
	Pause()
	// Status pushes a message to the host's status display.
	Status(msg string)
	// Active reports whether a host is present. When false, callers must
	// treat every other method as a no-op.
	Active() bool
}
