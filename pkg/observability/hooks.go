// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about frames, picks, pauses and pipeline runs.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Frame hooks carry no context: they are fired from inside host callbacks
// (DrawObjects, Select, Pause), which are synchronous and context-free.
// Pipeline hooks are fired from context-aware code and receive it.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetFrameHooks(&myFrameHooks{})
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	start := time.Now()
//	composer.Draw(painter)
//	observability.Frame().OnFrame(ops, time.Since(start))
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Frame Hooks
// =============================================================================

// FrameHooks receives events from the overlay renderer.
type FrameHooks interface {
	// OnFrame records a composed frame and the number of draw calls issued.
	OnFrame(drawCalls int, duration time.Duration)

	// OnPick records a point query and its outcome ("none", "instance", "internal").
	OnPick(outcome string, duration time.Duration)

	// OnPause records that the engine thread parked waiting for the user.
	OnPause()

	// OnResume records that a parked engine thread resumed.
	OnResume(waited time.Duration)
}

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the batch render pipeline.
type PipelineHooks interface {
	// OnLoad records a snapshot load.
	OnLoad(ctx context.Context, source string, cells int, duration time.Duration, err error)

	// OnRenderStart records the start of artifact rendering.
	OnRenderStart(ctx context.Context, formats []string)

	// OnRenderComplete records the end of artifact rendering.
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopFrameHooks is a no-op implementation of FrameHooks.
type NoopFrameHooks struct{}

func (NoopFrameHooks) OnFrame(int, time.Duration)   {}
func (NoopFrameHooks) OnPick(string, time.Duration) {}
func (NoopFrameHooks) OnPause()                     {}
func (NoopFrameHooks) OnResume(time.Duration)       {}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoad(context.Context, string, int, time.Duration, error)        {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	frameHooks    FrameHooks    = NoopFrameHooks{}
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	hooksMu       sync.RWMutex
)

// SetFrameHooks registers custom frame hooks.
// This should be called once at application startup before any frames are drawn.
func SetFrameHooks(h FrameHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		frameHooks = h
	}
}

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline runs.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// Frame returns the registered frame hooks.
func Frame() FrameHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return frameHooks
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	frameHooks = NoopFrameHooks{}
	pipelineHooks = NoopPipelineHooks{}
}
