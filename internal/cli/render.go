package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/placeviz/placeviz/pkg/errors"
	"github.com/placeviz/placeviz/pkg/pipeline"
)

// overlaySuffix keeps default outputs from overwriting a .json snapshot.
const overlaySuffix = "_overlay"

// renderFlags holds the command-line flags for the render command.
type renderFlags struct {
	overlayFlags
	output   string // output file (single format) or base path
	formats  string // comma-separated output formats
	pick     string // "x,y" to select before drawing
	layer    string // routing layer filter for the pick
	textCols int
	textRows int
	noCache  bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "render <snapshot.json>",
		Short: "Draw the overlay of a snapshot",
		Long: `Draw the debug overlay of a placement snapshot.

Layers are drawn in order: core region, density bins (--draw-bins), cells,
the nets of the selected cell, and the force field. Use --pick to select a
cell first, so its nets are drawn and it is highlighted.

Settings come from the config file, then from flags given explicitly.`,
		Example: `  placeviz render iter42.json
  placeviz render iter42.json -f svg,png --draw-bins
  placeviz render iter42.json -f txt -o - --pick 120.5,88`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			opts, err := f.options(cmd, logger)
			if err != nil {
				return err
			}
			opts.Formats = pipeline.ParseFormats(f.formats)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if f.pick != "" {
				x, y, err := errors.ParsePoint(f.pick)
				if err != nil {
					return err
				}
				opts.Pick = &r2.Vec{X: x, Y: y}
			}
			opts.Layer = f.layer
			opts.TextCols, opts.TextRows = f.textCols, f.textRows
			return c.runRender(cmd.Context(), args[0], opts, f.output, f.noCache)
		},
	}

	f.register(cmd)
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (single format), base path (multiple), or - for stdout")
	cmd.Flags().StringVarP(&f.formats, "format", "f", pipeline.FormatSVG, "output format(s): svg, png, pdf, json, txt (comma-separated)")
	cmd.Flags().StringVar(&f.pick, "pick", "", "select the cell at x,y before drawing")
	cmd.Flags().StringVar(&f.layer, "layer", "", "routing layer the pick is filtered by")
	cmd.Flags().IntVar(&f.textCols, "cols", pipeline.DefaultTextCols, "columns of txt output")
	cmd.Flags().IntVar(&f.textRows, "rows", pipeline.DefaultTextRows, "rows of txt output")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "render every format even if a cached artifact exists")

	return cmd
}

// runRender loads the snapshot, renders every format, and writes the outputs.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)
	runner := c.newRunner()
	runner.Cache = c.openCache(noCache)
	defer runner.Cache.Close()

	d, err := runner.Load(ctx, input)
	if err != nil {
		return err
	}

	spin := c.spin(ctx, fmt.Sprintf("Rendering %s", input))
	result, err := runner.Execute(ctx, d, opts)
	spin.stop()
	if err != nil {
		return err
	}

	paths, err := writeArtifacts(c.Out, artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		base:      basePath(input) + overlaySuffix,
		output:    output,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d output(s)", len(paths)))

	if output == stdoutPath {
		return nil
	}
	printSuccess(c.Out, "Rendered %s", input)
	printStats(c.Out,
		fmt.Sprintf("%d cells", result.Stats.Cells),
		fmt.Sprintf("%d bins", result.Stats.Bins),
		fmt.Sprintf("%d primitives", result.Stats.Ops),
		cachedStat(result.Stats.CacheHits))
	if opts.Pick != nil {
		printDetail(c.Out, "selected: %s", result.Selected)
	}
	for _, p := range paths {
		printFile(c.Out, p)
	}
	return nil
}

func cachedStat(hits int) string {
	if hits == 0 {
		return ""
	}
	return fmt.Sprintf("%d cached", hits)
}
