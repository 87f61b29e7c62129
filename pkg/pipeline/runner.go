package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/placeviz/placeviz/pkg/cache"
	"github.com/placeviz/placeviz/pkg/errors"
	"github.com/placeviz/placeviz/pkg/gui"
	placeio "github.com/placeviz/placeviz/pkg/io"
	"github.com/placeviz/placeviz/pkg/observability"
	"github.com/placeviz/placeviz/pkg/placement"
	"github.com/placeviz/placeviz/pkg/render/overlay"
	"github.com/placeviz/placeviz/pkg/render/overlay/sink"
)

// Runner encapsulates pipeline execution.
//
// The Runner is stateless except for the logger and the artifact cache - it
// doesn't store pipeline results. Multiple goroutines can safely use the same
// Runner with different designs and options.
type Runner struct {
	Logger *log.Logger

	// Cache holds rendered artifacts. Nil disables caching.
	Cache cache.Cache
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Frame is one composed overlay frame.
type Frame struct {
	Ops      []Op
	Selected gui.Selected
	Inspect  string
	Layers   []string
	Region   *placement.Rect
}

// Op aliases the display list entry so callers need not import sink.
type Op = sink.Op

// Load reads a snapshot file.
func (r *Runner) Load(ctx context.Context, path string) (*placement.Design, error) {
	start := time.Now()
	d, err := placeio.ImportJSON(path)
	cells := 0
	if d != nil {
		cells = d.CellCount()
	}
	observability.Pipeline().OnLoad(ctx, path, cells, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	r.logger().Debug("loaded snapshot",
		"path", path,
		"cells", d.CellCount(),
		"bins", d.BinCount(),
		"nets", d.NetCount())
	return d, nil
}

// Execute runs the compose → render pipeline for d.
func (r *Runner) Execute(ctx context.Context, d *placement.Design, opts Options) (*Result, error) {
	if d == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "design is required")
	}
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}
	result.Stats.Cells = d.CellCount()
	result.Stats.Bins = d.BinCount()
	result.Stats.Nets = d.NetCount()

	// Stage 1: Compose
	composeStart := time.Now()
	frame, err := r.Compose(d, opts)
	if err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}
	result.Selected = frame.Selected
	result.Inspect = frame.Inspect
	result.Layers = frame.Layers
	result.Stats.Ops = len(frame.Ops)
	result.Stats.ComposeTime = time.Since(composeStart)

	opts.Logger.Info("composed overlay",
		"ops", result.Stats.Ops,
		"layers", frame.Layers,
		"duration", result.Stats.ComposeTime)

	// Stage 2: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, hits, err := r.render(ctx, frame, opts)
	result.Stats.CacheHits = hits
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hits,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// render renders the formats the cache does not already hold and stores the
// new artifacts. It returns how many formats came from the cache.
func (r *Runner) render(ctx context.Context, f *Frame, opts Options) (map[string][]byte, int, error) {
	if r.Cache == nil {
		artifacts, err := Render(ctx, f, opts)
		return artifacts, 0, err
	}

	hash, err := FrameHash(f)
	if err != nil {
		return nil, 0, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	keys := make(map[string]string, len(opts.Formats))
	missing := opts
	missing.Formats = nil
	for _, format := range opts.Formats {
		key := cache.ArtifactKey(hash, artifactKeyOpts(opts, format))
		data, ok, err := r.Cache.Get(ctx, key)
		if err != nil {
			opts.Logger.Warn("cache read failed", "format", format, "error", err)
		}
		if ok {
			artifacts[format] = data
			continue
		}
		keys[format] = key
		missing.Formats = append(missing.Formats, format)
	}
	hits := len(artifacts)
	if len(missing.Formats) == 0 {
		return artifacts, hits, nil
	}

	rendered, err := Render(ctx, f, missing)
	if err != nil {
		return nil, hits, err
	}
	for format, data := range rendered {
		artifacts[format] = data
		if err := r.Cache.Set(ctx, keys[format], data, cache.DefaultTTL); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "error", err)
		}
	}
	return artifacts, hits, nil
}

func artifactKeyOpts(opts Options, format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG, FormatPDF:
		k.Width, k.Height = opts.Width, opts.Height
	case FormatPNG:
		k.Width, k.Height = opts.Width, opts.Height
		k.Scale = opts.Scale
	case FormatText:
		k.TextCols, k.TextRows = opts.TextCols, opts.TextRows
	}
	return k
}

// Compose draws one frame of d through a headless session. When opts.Pick is
// set the click is delivered first, so the frame shows the selection.
func (r *Runner) Compose(d *placement.Design, opts Options) (*Frame, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	var last *sink.Recorder
	session := gui.NewSession(
		gui.WithPainterFactory(func() gui.Painter {
			last = sink.NewRecorder()
			return last
		}),
		gui.WithStatusHandler(func(msg string) { opts.Logger.Debug(msg) }),
		gui.WithSessionLogger(opts.Logger),
	)
	defer session.Close()

	g := overlay.New(session, d, opts.OverlayOptions()...)

	var selected gui.Selected
	if opts.Pick != nil {
		selected = session.Click(opts.Layer, *opts.Pick)
		opts.Logger.Debug("picked", "x", opts.Pick.X, "y", opts.Pick.Y, "result", selected)
	} else {
		g.CellPlot(false)
	}
	if last == nil {
		return nil, errors.New(errors.ErrCodeInternal, "session produced no frame")
	}

	frame := &Frame{
		Ops:      last.Ops(),
		Selected: selected,
		Inspect:  g.Inspect(),
		Layers:   g.Layers(),
	}
	if region, ok := d.Region(); ok {
		frame.Region = &region
	}
	return frame, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func (r *Runner) logger() *log.Logger {
	if r.Logger == nil {
		return log.Default()
	}
	return r.Logger
}
