package pipeline

import (
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/placeviz/placeviz/pkg/errors"
)

// Config is the on-disk overlay configuration:
//
//	[overlay]
//	draw_bins   = true
//	force_layer = "with-bins"
//	alpha       = 180
//
//	[frame]
//	width  = 1024
//	height = 1024
//	scale  = 2.0
//
// Unset keys leave the corresponding option untouched.
type Config struct {
	Overlay OverlayConfig `toml:"overlay"`
	Frame   FrameConfig   `toml:"frame"`
}

// OverlayConfig holds the [overlay] table.
type OverlayConfig struct {
	DrawBins   *bool  `toml:"draw_bins"`
	ForceLayer string `toml:"force_layer"`
	Alpha      *int   `toml:"alpha"`
}

// FrameConfig holds the [frame] table.
type FrameConfig struct {
	Width  int     `toml:"width"`
	Height int     `toml:"height"`
	Scale  float64 `toml:"scale"`
}

// LoadConfig reads a TOML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	return cfg, nil
}

// ParseConfig decodes TOML configuration data. Unknown keys are rejected so
// that typos do not silently fall back to defaults.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return cfg, nil
}

// Apply copies the settings present in c into opts.
func (c Config) Apply(opts *Options) {
	if c.Overlay.DrawBins != nil {
		opts.DrawBins = *c.Overlay.DrawBins
	}
	if c.Overlay.ForceLayer != "" {
		opts.ForceLayer = c.Overlay.ForceLayer
	}
	if c.Overlay.Alpha != nil {
		opts.Alpha = *c.Overlay.Alpha
	}
	if c.Frame.Width != 0 {
		opts.Width = c.Frame.Width
	}
	if c.Frame.Height != 0 {
		opts.Height = c.Frame.Height
	}
	if c.Frame.Scale != 0 {
		opts.Scale = c.Frame.Scale
	}
}
