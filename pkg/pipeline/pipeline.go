// Package pipeline provides the load → compose → render pipeline behind the
// placeviz commands.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read a placement snapshot (see [Runner.Load])
//  2. Compose: draw the overlay once, optionally after a pick, through a
//     headless host into a display list
//  3. Render: encode the display list in every requested format (SVG, PNG,
//     PDF, JSON, text)
//
// Options is the single source of defaults for the CLI and tests; a TOML
// [Config] file can fill in the overlay and frame settings before flags are
// applied. A [Runner] with a Cache skips rendering formats whose artifact
// for the same frame and settings is already stored.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	d, err := runner.Load(ctx, "iter42.json")
//	if err != nil {
//	    return err
//	}
//	result, err := runner.Execute(ctx, d, pipeline.Options{
//	    Formats:  []string{"svg", "png"},
//	    DrawBins: true,
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/placeviz/placeviz/pkg/errors"
	"github.com/placeviz/placeviz/pkg/gui"
	"github.com/placeviz/placeviz/pkg/render/overlay"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Tests
// =============================================================================

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 800

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 800

	// DefaultScale multiplies the frame size for raster output.
	DefaultScale = 1.0

	// DefaultTextCols and DefaultTextRows size the text rendering.
	DefaultTextCols = 100
	DefaultTextRows = 50

	// MaxFrameSize bounds Width and Height after scaling.
	MaxFrameSize = 16384
)

// DefaultForceLayer is the default force layer policy.
var DefaultForceLayer = overlay.ForceAlways.String()

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatText = "txt"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatText: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Render options
	Formats []string `json:"formats,omitempty"`
	Width   int      `json:"width,omitempty"`
	Height  int      `json:"height,omitempty"`
	Scale   float64  `json:"scale,omitempty"` // raster scale for PNG output

	// Text output size in runes.
	TextCols int `json:"text_cols,omitempty"`
	TextRows int `json:"text_rows,omitempty"`

	// Overlay options
	DrawBins   bool   `json:"draw_bins,omitempty"`
	ForceLayer string `json:"force_layer,omitempty"` // always, with-bins or never
	Alpha      int    `json:"alpha,omitempty"`       // 1..255, 0 selects overlay.DefaultAlpha

	// Pick, when set, clicks at this layout point before composing so the
	// frame shows the selection. Layer is the routing layer filter.
	Pick  *r2.Vec `json:"pick,omitempty"`
	Layer string  `json:"layer,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	forceLayer overlay.ForceLayer

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Selected is the result of the pick, or the zero value without one.
	Selected gui.Selected

	// Inspect describes the retained selection.
	Inspect string

	// Layers lists the overlay layers that were drawn.
	Layers []string

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Cells       int
	Bins        int
	Nets        int
	Ops         int
	CacheHits   int
	ComposeTime time.Duration
	RenderTime  time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json, txt)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, dropping blanks and
// duplicates.
func ParseFormats(s string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}

	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "invalid frame size %dx%d", o.Width, o.Height)
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "invalid scale %g", o.Scale)
	}
	if w, h := o.RasterSize(); w > MaxFrameSize || h > MaxFrameSize {
		return errors.New(errors.ErrCodeInvalidInput, "raster size %dx%d exceeds %d", w, h, MaxFrameSize)
	}

	if o.TextCols == 0 {
		o.TextCols = DefaultTextCols
	}
	if o.TextRows == 0 {
		o.TextRows = DefaultTextRows
	}
	if o.TextCols < 0 || o.TextRows < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "invalid text size %dx%d", o.TextCols, o.TextRows)
	}

	if o.ForceLayer == "" {
		o.ForceLayer = DefaultForceLayer
	}
	fl, err := overlay.ParseForceLayer(o.ForceLayer)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "force layer")
	}
	o.forceLayer = fl

	if o.Alpha == 0 {
		o.Alpha = int(overlay.DefaultAlpha)
	}
	if o.Alpha < 1 || o.Alpha > 255 {
		return errors.New(errors.ErrCodeInvalidInput, "alpha %d out of range 1..255", o.Alpha)
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// RasterSize returns the PNG size: the frame size times Scale.
func (o *Options) RasterSize() (w, h int) {
	scale := o.Scale
	if scale == 0 {
		scale = DefaultScale
	}
	return int(float64(o.Width)*scale + 0.5), int(float64(o.Height)*scale + 0.5)
}

// HasFormat reports whether format was requested.
func (o *Options) HasFormat(format string) bool {
	for _, f := range o.Formats {
		if f == format {
			return true
		}
	}
	return false
}

// OverlayOptions converts validated options into overlay options.
func (o *Options) OverlayOptions() []overlay.Option {
	return []overlay.Option{
		overlay.WithDrawBins(o.DrawBins),
		overlay.WithForceLayer(o.forceLayer),
		overlay.WithAlpha(uint8(o.Alpha)),
		overlay.WithLogger(o.Logger),
	}
}
