package gui

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/placeviz/placeviz/pkg/observability"
)

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithPainterFactory sets the function that creates a fresh surface for each
// frame. Without a factory, Redraw is a no-op.
func WithPainterFactory(f func() Painter) SessionOption {
	return func(s *Session) { s.newPainter = f }
}

// WithFrameHandler sets the callback that receives each completed frame.
func WithFrameHandler(f func(Painter)) SessionOption {
	return func(s *Session) { s.onFrame = f }
}

// WithStatusHandler sets the status display sink. Without one, status
// messages are logged at info level.
func WithStatusHandler(f func(string)) SessionOption {
	return func(s *Session) { s.onStatus = f }
}

// WithPauseHandler sets a callback invoked, on the pausing goroutine, right
// before Pause blocks. UIs use it to switch into their "paused" state.
func WithPauseHandler(f func()) SessionOption {
	return func(s *Session) { s.onPause = f }
}

// WithSessionLogger sets the session logger (default log.Default()).
func WithSessionLogger(l *log.Logger) SessionOption {
	return func(s *Session) { s.logger = l }
}

// Session is a reference Host. It keeps one registered renderer, turns redraw
// requests into frames drawn on a fresh painter, and implements the
// cooperative pause as a channel the pausing goroutine waits on.
//
// Session methods may be called from different goroutines, but the renderer
// is only ever driven from one at a time: Click and Redraw must not be called
// concurrently with each other.
type Session struct {
	mu       sync.Mutex
	renderer Renderer
	resume   chan struct{}
	closed   bool
	frames   int

	newPainter func() Painter
	onFrame    func(Painter)
	onStatus   func(string)
	onPause    func()
	logger     *log.Logger
}

var _ Host = (*Session)(nil)

// NewSession creates an active session.
func NewSession(opts ...SessionOption) *Session {
	s := &Session{}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	return s
}

// RegisterRenderer makes r the active renderer. A later registration
// replaces the earlier one.
func (s *Session) RegisterRenderer(r Renderer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.renderer != nil && s.renderer != r {
		s.logger.Debug("replacing active renderer")
	}
	s.renderer = r
}

// Renderer returns the active renderer, or nil.
func (s *Session) Renderer() Renderer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderer
}

// Redraw draws one frame with the active renderer and hands it to the frame
// handler. It never blocks on user input.
func (s *Session) Redraw() {
	s.mu.Lock()
	r, newPainter, closed := s.renderer, s.newPainter, s.closed
	s.mu.Unlock()
	if closed || r == nil || newPainter == nil {
		return
	}

	p := newPainter()
	r.DrawObjects(p)

	s.mu.Lock()
	s.frames++
	s.mu.Unlock()

	if s.onFrame != nil {
		s.onFrame(p)
	}
}

// Click forwards a pointer click to the active renderer and redraws so the
// new selection becomes visible.
func (s *Session) Click(layer string, p r2.Vec) Selected {
	r := s.Renderer()
	if r == nil || !s.Active() {
		return Selected{}
	}
	sel := r.Select(layer, p)
	s.Redraw()
	return sel
}

// Pause blocks until Resume or Close is called. Pausing a closed session
// returns immediately.
func (s *Session) Pause() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if s.resume == nil {
		s.resume = make(chan struct{})
	}
	ch := s.resume
	s.mu.Unlock()

	observability.Frame().OnPause()
	if s.onPause != nil {
		s.onPause()
	}

	start := time.Now()
	<-ch
	observability.Frame().OnResume(time.Since(start))
}

// Resume releases every goroutine blocked in Pause. It is a no-op when
// nothing is paused.
func (s *Session) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.resume != nil {
		close(s.resume)
		s.resume = nil
	}
}

// Paused reports whether a goroutine is (about to be) blocked in Pause.
func (s *Session) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resume != nil
}

// Status forwards msg to the status handler.
func (s *Session) Status(msg string) {
	if s.onStatus != nil {
		s.onStatus(msg)
		return
	}
	s.logger.Info(msg)
}

// Active reports whether the session is open.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed
}

// Frames returns the number of frames drawn so far.
func (s *Session) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Close deactivates the session and releases any paused goroutine.
func (s *Session) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.Resume()
	return nil
}
