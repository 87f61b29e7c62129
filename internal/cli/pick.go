package cli

import (
	"context"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/placeviz/placeviz/pkg/errors"
	"github.com/placeviz/placeviz/pkg/gui"
	"github.com/placeviz/placeviz/pkg/pipeline"
)

// pickCommand creates the pick command.
func (c *CLI) pickCommand() *cobra.Command {
	var layer string

	cmd := &cobra.Command{
		Use:   "pick <snapshot.json> <x,y>",
		Short: "Resolve a click to a cell",
		Long: `Resolve a click at layout point x,y the way the overlay does.

Cells are scanned in snapshot order. The first instance containing the
point wins; a filler is only reported when no instance contains the point.
A pick filtered by a routing layer (--layer) never selects anything.`,
		Example: `  placeviz pick iter42.json 120.5,88
  placeviz pick iter42.json 10,10 --layer metal2`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, y, err := errors.ParsePoint(args[1])
			if err != nil {
				return err
			}
			return c.runPick(cmd.Context(), args[0], r2.Vec{X: x, Y: y}, layer)
		},
	}

	cmd.Flags().StringVar(&layer, "layer", "", "routing layer the host filters by")

	return cmd
}

func (c *CLI) runPick(ctx context.Context, input string, p r2.Vec, layer string) error {
	runner := c.newRunner()
	d, err := runner.Load(ctx, input)
	if err != nil {
		return err
	}

	frame, err := runner.Compose(d, pipeline.Options{
		Pick:   &p,
		Layer:  layer,
		Logger: loggerFromContext(ctx),
	})
	if err != nil {
		return err
	}

	c.printPick(frame.Selected, frame.Inspect)
	return nil
}

func (c *CLI) printPick(sel gui.Selected, inspect string) {
	printKeyValue(c.Out, "result", sel.Kind.String())
	switch sel.Kind {
	case gui.SelectedInstance:
		if sel.Instance != nil {
			printKeyValue(c.Out, "instance", sel.Instance.Name)
			printKeyValue(c.Out, "master", sel.Instance.Master)
		}
	case gui.SelectedInternal:
		printKeyValue(c.Out, "instance", styleDim.Render("none (internal)"))
	}
	printKeyValue(c.Out, "selection", inspect)
	printInfo(c.Out, "%s", selectedLabel(sel))
}
