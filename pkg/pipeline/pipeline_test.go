package pipeline

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/placeviz/placeviz/pkg/cache"
	"github.com/placeviz/placeviz/pkg/errors"
	"github.com/placeviz/placeviz/pkg/gui"
	"github.com/placeviz/placeviz/pkg/observability"
	"github.com/placeviz/placeviz/pkg/placement"
)

func testDesign(t *testing.T) *placement.Design {
	t.Helper()
	d := placement.New(&placement.Rect{Ux: 100, Uy: 100})
	d.SetBins([]placement.Bin{
		{Rect: placement.Rect{Ux: 50, Uy: 100}, Density: 0.5, ForceX: 1},
		{Rect: placement.Rect{Lx: 50, Ux: 100, Uy: 100}, Density: 1.2, ForceY: -2},
	})
	if _, err := d.AddCell(placement.Cell{
		Name:   "u1",
		Kind:   placement.KindInstance,
		Center: r2.Vec{X: 50, Y: 50},
		Width:  10,
		Height: 10,
		Inst:   &placement.Instance{Name: "u1", Master: "NAND2"},
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := d.AddCell(placement.Cell{
		Name:   "fill0",
		Kind:   placement.KindFiller,
		Center: r2.Vec{X: 20, Y: 20},
		Width:  4,
		Height: 4,
	}); err != nil {
		t.Fatal(err)
	}
	return d
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"txt", false},
		{"dot", true},
		{"", true},
		{"SVG", true},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			err := ValidateFormat(tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidFormat)
			}
		})
	}
}

func TestParseFormats(t *testing.T) {
	got := ParseFormats(" svg, PNG,,svg ,txt")
	want := []string{"svg", "png", "txt"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("ParseFormats = %v, want %v", got, want)
	}
	if got := ParseFormats(""); len(got) != 0 {
		t.Errorf("ParseFormats(\"\") = %v, want empty", got)
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Width != DefaultWidth || opts.Height != DefaultHeight {
		t.Errorf("size = %dx%d, want %dx%d", opts.Width, opts.Height, DefaultWidth, DefaultHeight)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %g, want %g", opts.Scale, DefaultScale)
	}
	if opts.ForceLayer != "always" {
		t.Errorf("ForceLayer = %q, want always", opts.ForceLayer)
	}
	if opts.Alpha != 180 {
		t.Errorf("Alpha = %d, want 180", opts.Alpha)
	}
	if opts.Logger == nil {
		t.Error("Logger not set")
	}

	// Idempotent: a second call must not fail or change anything.
	opts.Width = 10
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if opts.Width != 10 {
		t.Errorf("Width = %d after second call, want 10", opts.Width)
	}
}

func TestValidateAndSetDefaultsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"bad format", Options{Formats: []string{"gif"}}},
		{"negative width", Options{Width: -1}},
		{"negative scale", Options{Scale: -2}},
		{"huge raster", Options{Width: 10000, Scale: 2}},
		{"bad force layer", Options{ForceLayer: "sometimes"}},
		{"alpha too large", Options{Alpha: 256}},
		{"negative alpha", Options{Alpha: -5}},
		{"negative text", Options{TextCols: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.ValidateAndSetDefaults(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestForceLayerCaseInsensitive(t *testing.T) {
	opts := Options{ForceLayer: "With-Bins"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.forceLayer.String() != "with-bins" {
		t.Errorf("forceLayer = %v, want with-bins", opts.forceLayer)
	}
}

func TestRasterSize(t *testing.T) {
	opts := Options{Width: 100, Height: 50, Scale: 2.5}
	w, h := opts.RasterSize()
	if w != 250 || h != 125 {
		t.Errorf("RasterSize = %dx%d, want 250x125", w, h)
	}
}

func TestParseConfig(t *testing.T) {
	data := []byte(`
[overlay]
draw_bins   = true
force_layer = "never"
alpha       = 0

[frame]
width = 640
scale = 2.0
`)
	cfg, err := ParseConfig(data)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}

	opts := Options{Width: 100, Height: 200, Alpha: 90}
	cfg.Apply(&opts)
	if !opts.DrawBins {
		t.Error("DrawBins = false, want true")
	}
	if opts.ForceLayer != "never" {
		t.Errorf("ForceLayer = %q, want never", opts.ForceLayer)
	}
	if opts.Alpha != 0 {
		t.Errorf("Alpha = %d, want 0 (explicitly set)", opts.Alpha)
	}
	if opts.Width != 640 {
		t.Errorf("Width = %d, want 640", opts.Width)
	}
	if opts.Height != 200 {
		t.Errorf("Height = %d, want 200 (unset in config)", opts.Height)
	}
	if opts.Scale != 2 {
		t.Errorf("Scale = %g, want 2", opts.Scale)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "[overlay\ndraw_bins = true"},
		{"wrong type", "[overlay]\ndraw_bins = \"yes\""},
		{"unknown key", "[overlay]\ndraw_pins = true"},
		{"unknown table", "[window]\nwidth = 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "placeviz.toml")
	if err := os.WriteFile(path, []byte("[frame]\nheight = 300\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Frame.Height != 300 {
		t.Errorf("Frame.Height = %d, want 300", cfg.Frame.Height)
	}

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file code = %s, want %s", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}

func TestExecute(t *testing.T) {
	runner := NewRunner(nil)
	result, err := runner.Execute(context.Background(), testDesign(t), Options{
		Formats:  []string{FormatSVG, FormatPNG, FormatJSON, FormatText},
		Width:    64,
		Height:   64,
		DrawBins: true,
		TextCols: 20,
		TextRows: 10,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(result.Artifacts) != 4 {
		t.Errorf("artifacts = %d, want 4", len(result.Artifacts))
	}
	if svg := string(result.Artifacts[FormatSVG]); !strings.Contains(svg, "<svg") {
		t.Errorf("svg artifact does not look like SVG: %.40q", svg)
	}
	if png := result.Artifacts[FormatPNG]; !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Errorf("png artifact has no PNG signature")
	}
	if js := string(result.Artifacts[FormatJSON]); !strings.Contains(js, `"ops"`) {
		t.Errorf("json artifact missing ops: %.60q", js)
	}
	if txt := string(result.Artifacts[FormatText]); strings.Count(txt, "\n") < 9 {
		t.Errorf("txt artifact has %d lines, want 10", strings.Count(txt, "\n")+1)
	}

	if result.Stats.Cells != 2 || result.Stats.Bins != 2 {
		t.Errorf("stats = %+v, want 2 cells and 2 bins", result.Stats)
	}
	if result.Stats.Ops == 0 {
		t.Error("Stats.Ops = 0")
	}
	if !result.Selected.Empty() {
		t.Errorf("Selected = %v, want nothing", result.Selected)
	}
	if result.Inspect != "nothing selected" {
		t.Errorf("Inspect = %q", result.Inspect)
	}
	if got := strings.Join(result.Layers, ","); got != "region,bins,cells,forces" {
		t.Errorf("Layers = %s, want region,bins,cells,forces", got)
	}
}

func TestExecutePick(t *testing.T) {
	tests := []struct {
		name  string
		pick  r2.Vec
		layer string
		want  gui.SelectedKind
	}{
		{"instance", r2.Vec{X: 50, Y: 50}, "", gui.SelectedInstance},
		{"filler", r2.Vec{X: 20, Y: 20}, "", gui.SelectedInternal},
		{"empty space", r2.Vec{X: 90, Y: 90}, "", gui.SelectedNone},
		{"routing layer", r2.Vec{X: 50, Y: 50}, "metal1", gui.SelectedNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pick := tt.pick
			result, err := NewRunner(nil).Execute(context.Background(), testDesign(t), Options{
				Formats: []string{FormatJSON},
				Pick:    &pick,
				Layer:   tt.layer,
			})
			if err != nil {
				t.Fatalf("Execute: %v", err)
			}
			if result.Selected.Kind != tt.want {
				t.Errorf("Selected.Kind = %v, want %v", result.Selected.Kind, tt.want)
			}
		})
	}
}

func TestExecuteShowsSelection(t *testing.T) {
	pick := r2.Vec{X: 50, Y: 50}
	result, err := NewRunner(nil).Execute(context.Background(), testDesign(t), Options{
		Formats: []string{FormatJSON},
		Pick:    &pick,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(result.Inspect, "NAND2") {
		t.Errorf("Inspect = %q, want master NAND2", result.Inspect)
	}
	if js := string(result.Artifacts[FormatJSON]); !strings.Contains(js, "NAND2") {
		t.Errorf("json artifact does not carry the selection")
	}
	// Yellow fill marks the selected cell.
	if js := string(result.Artifacts[FormatJSON]); !strings.Contains(js, `"brush": "#ffff00b4"`) {
		t.Errorf("json artifact has no yellow cell")
	}
}

func TestExecuteErrors(t *testing.T) {
	runner := NewRunner(nil)
	if _, err := runner.Execute(context.Background(), nil, Options{}); err == nil {
		t.Error("nil design: expected error")
	}
	if _, err := runner.Execute(context.Background(), testDesign(t), Options{Formats: []string{"bmp"}}); err == nil {
		t.Error("bad format: expected error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := runner.Execute(ctx, testDesign(t), Options{})
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("canceled context error = %v, want context.Canceled", err)
	}
}

type countingHooks struct {
	observability.NoopPipelineHooks
	loads, starts, completes int
	lastErr                  error
}

func (h *countingHooks) OnLoad(_ context.Context, _ string, _ int, _ time.Duration, err error) {
	h.loads++
	h.lastErr = err
}

func (h *countingHooks) OnRenderStart(context.Context, []string) { h.starts++ }

func (h *countingHooks) OnRenderComplete(_ context.Context, _ []string, _ time.Duration, err error) {
	h.completes++
	h.lastErr = err
}

func TestPipelineHooks(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	runner := NewRunner(nil)
	if _, err := runner.Load(context.Background(), filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("Load of missing file: expected error")
	}
	if hooks.loads != 1 || hooks.lastErr == nil {
		t.Errorf("loads = %d, lastErr = %v; want 1 and an error", hooks.loads, hooks.lastErr)
	}

	if _, err := runner.Execute(context.Background(), testDesign(t), Options{}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if hooks.starts != 1 || hooks.completes != 1 {
		t.Errorf("starts = %d, completes = %d; want 1 and 1", hooks.starts, hooks.completes)
	}
	if hooks.lastErr != nil {
		t.Errorf("lastErr = %v, want nil", hooks.lastErr)
	}
}

func TestTextView(t *testing.T) {
	region := placement.Rect{Lx: 1, Ly: 2, Ux: 3, Uy: 4}
	if got := TextView(&Frame{Region: &region}); got != region {
		t.Errorf("TextView with region = %v, want %v", got, region)
	}
	f := &Frame{Ops: []Op{{Kind: "line", X1: -1, Y1: -1, X2: 5, Y2: 7}}}
	if got, want := TextView(f), (placement.Rect{Lx: -1, Ly: -1, Ux: 5, Uy: 7}); got != want {
		t.Errorf("TextView from ops = %v, want %v", got, want)
	}
	if got, want := TextView(&Frame{}), (placement.Rect{Ux: 1, Uy: 1}); got != want {
		t.Errorf("TextView empty = %v, want %v", got, want)
	}
}

func TestExecuteCache(t *testing.T) {
	store, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := &Runner{Cache: store}
	opts := Options{Formats: []string{FormatSVG, FormatText}, Width: 64, Height: 64}

	first, err := runner.Execute(context.Background(), testDesign(t), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Stats.CacheHits != 0 {
		t.Errorf("first run CacheHits = %d, want 0", first.Stats.CacheHits)
	}

	second, err := runner.Execute(context.Background(), testDesign(t), opts)
	if err != nil {
		t.Fatal(err)
	}
	if second.Stats.CacheHits != 2 {
		t.Errorf("second run CacheHits = %d, want 2", second.Stats.CacheHits)
	}
	for _, f := range opts.Formats {
		if !bytes.Equal(first.Artifacts[f], second.Artifacts[f]) {
			t.Errorf("cached %s artifact differs from the rendered one", f)
		}
	}

	opts.Pick = &r2.Vec{X: 50, Y: 50}
	picked, err := runner.Execute(context.Background(), testDesign(t), opts)
	if err != nil {
		t.Fatal(err)
	}
	if picked.Stats.CacheHits != 0 {
		t.Errorf("a new selection reused %d cached artifacts", picked.Stats.CacheHits)
	}
}

func TestFrameHash(t *testing.T) {
	runner := NewRunner(nil)
	a, err := runner.Compose(testDesign(t), Options{})
	if err != nil {
		t.Fatal(err)
	}
	b, err := runner.Compose(testDesign(t), Options{DrawBins: true})
	if err != nil {
		t.Fatal(err)
	}

	ha, _ := FrameHash(a)
	hb, _ := FrameHash(b)
	if ha == hb {
		t.Error("frames with different layers share a hash")
	}
	if again, _ := FrameHash(a); again != ha {
		t.Error("FrameHash is not deterministic")
	}
}
