package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/placeviz/placeviz/pkg/errors"
	"github.com/placeviz/placeviz/pkg/pipeline"
	"github.com/placeviz/placeviz/pkg/render/netgraph"
)

const formatDOT = "dot"

var validNetFormats = map[string]bool{"dot": true, "svg": true, "png": true, "pdf": true}

// netsOpts holds the command-line flags for the nets command.
type netsOpts struct {
	output   string
	formats  []string
	detailed bool
	scale    float64
}

// netsCommand creates the nets command.
func (c *CLI) netsCommand() *cobra.Command {
	var formatsStr string
	opts := netsOpts{scale: 2.0}

	cmd := &cobra.Command{
		Use:   "nets <snapshot.json> <cell>",
		Short: "Draw the connectivity of one cell as a graph",
		Long: `Draw the cells a cell is connected to as a Graphviz graph.

Every pin of the cell that belongs to a net is joined to every other pin of
that net, so the graph has one edge per line the overlay draws for the
selected cell. Use --detailed to label edges with net names and nodes with
masters.`,
		Example: `  placeviz nets iter42.json u7
  placeviz nets iter42.json u7 -f svg,png --detailed`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseNetFormats(formatsStr)
			for _, f := range opts.formats {
				if !validNetFormats[f] {
					return errors.New(errors.ErrCodeInvalidFormat,
						"invalid format: %q (must be one of: dot, svg, png, pdf)", f)
				}
			}
			return c.runNets(cmd.Context(), args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format), base path (multiple), or - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", formatDOT, "output format(s): dot, svg, png, pdf (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label edges with nets and nodes with masters")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale")

	return cmd
}

// parseNetFormats splits the --format flag. If empty, defaults to ["dot"].
func parseNetFormats(s string) []string {
	if formats := pipeline.ParseFormats(s); len(formats) > 0 {
		return formats
	}
	return []string{formatDOT}
}

func (c *CLI) runNets(ctx context.Context, input, cellName string, opts netsOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	d, err := c.newRunner().Load(ctx, input)
	if err != nil {
		return err
	}
	id, ok := d.CellByName(cellName)
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "cell %q not found in %s", cellName, input)
	}

	dot, err := netgraph.ToDOT(d, id, netgraph.Options{Detailed: opts.detailed})
	if err != nil {
		return err
	}

	artifacts := make(map[string][]byte, len(opts.formats))
	for _, format := range opts.formats {
		var data []byte
		switch format {
		case formatDOT:
			data = []byte(dot)
		case "svg":
			data, err = netgraph.RenderSVG(ctx, dot)
		case "png":
			data, err = netgraph.RenderPNG(ctx, dot, opts.scale)
		case "pdf":
			data, err = netgraph.RenderPDF(ctx, dot)
		}
		if err != nil {
			return fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	paths, err := writeArtifacts(c.Out, artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.formats,
		base:      basePath(input) + "_" + fileSafe.Replace(cellName),
		output:    opts.output,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Drew connectivity of %s", cellName))

	if opts.output == stdoutPath {
		return nil
	}
	for _, p := range paths {
		printFile(c.Out, p)
	}
	return nil
}
