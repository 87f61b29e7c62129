package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/placeviz/placeviz/pkg/pipeline"
	"github.com/placeviz/placeviz/pkg/render/overlay"
)

// configDir returns the config directory using XDG standard (~/.config/placeviz/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// loadConfig loads the explicit config file, or the user config file when
// it exists. A missing default file is not an error.
func loadConfig(logger *log.Logger, explicit string) (pipeline.Config, error) {
	if explicit != "" {
		return pipeline.LoadConfig(explicit)
	}
	dir, err := configDir()
	if err != nil {
		return pipeline.Config{}, nil
	}
	path := filepath.Join(dir, configFile)
	if _, err := os.Stat(path); err != nil {
		return pipeline.Config{}, nil
	}
	logger.Debug("using config", "path", path)
	return pipeline.LoadConfig(path)
}

// overlayFlags are the overlay settings shared by render, pick and step.
type overlayFlags struct {
	config     string
	drawBins   bool
	forceLayer string
	alpha      int
	width      int
	height     int
	scale      float64
}

// register adds the overlay and frame flags.
func (f *overlayFlags) register(cmd *cobra.Command) {
	f.registerOverlay(cmd)
	flags := cmd.Flags()
	flags.IntVar(&f.width, "width", pipeline.DefaultWidth, "frame width in pixels")
	flags.IntVar(&f.height, "height", pipeline.DefaultHeight, "frame height in pixels")
	flags.Float64Var(&f.scale, "scale", pipeline.DefaultScale, "raster scale for PNG output")
}

// registerOverlay adds the overlay flags only.
func (f *overlayFlags) registerOverlay(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.config, "config", "", "TOML config file (default ~/.config/placeviz/placeviz.toml)")
	flags.BoolVar(&f.drawBins, "draw-bins", false, "draw the density bins")
	flags.StringVar(&f.forceLayer, "force-layer", pipeline.DefaultForceLayer,
		"when to draw force vectors: "+strings.Join(overlay.ForceLayerNames(), ", "))
	flags.IntVar(&f.alpha, "alpha", int(overlay.DefaultAlpha), "fill alpha of bins and cells (1-255)")
}

// options layers the settings: defaults, then the config file, then every
// flag given explicitly on the command line.
func (f *overlayFlags) options(cmd *cobra.Command, logger *log.Logger) (pipeline.Options, error) {
	var opts pipeline.Options
	cfg, err := loadConfig(logger, f.config)
	if err != nil {
		return opts, err
	}
	cfg.Apply(&opts)

	flags := cmd.Flags()
	if flags.Changed("draw-bins") {
		opts.DrawBins = f.drawBins
	}
	if flags.Changed("force-layer") {
		opts.ForceLayer = f.forceLayer
	}
	if flags.Changed("alpha") {
		opts.Alpha = f.alpha
	}
	if flags.Changed("width") {
		opts.Width = f.width
	}
	if flags.Changed("height") {
		opts.Height = f.height
	}
	if flags.Changed("scale") {
		opts.Scale = f.scale
	}
	opts.Logger = logger
	return opts, nil
}
