// Package gui defines the contract between a placement debug overlay and the
// visualization host that displays it, plus a reference host ([Session]).
//
// # Contract
//
// The host owns the drawing surface, frame scheduling and the pause/resume
// control. It talks to exactly one active [Renderer]:
//
//   - Each requested frame, the host calls [Renderer.DrawObjects] with a
//     [Painter] that is valid only for the duration of the call.
//   - On a pointer click, the host calls [Renderer.Select] and receives a
//     [Selected] result describing what (if anything) was hit.
//
// The renderer in turn drives the host through [Host]: register itself,
// request redraws, block in Pause until the user resumes, and push status
// messages.
//
// # Threading
//
// The contract is single-threaded: DrawObjects, Select and the Host methods
// are ordinary blocking calls made from one logical thread. [Session.Pause]
// is the only suspension point; it returns when [Session.Resume] or
// [Session.Close] is called, typically from a UI goroutine while the caller
// is parked.
package gui
