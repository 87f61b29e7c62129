package cli

import (
	"context"
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/placeviz/placeviz/pkg/placement"
	"github.com/placeviz/placeviz/pkg/render/overlay"
)

// infoCommand creates the info command.
func (c *CLI) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <snapshot.json>",
		Short: "Summarize a snapshot",
		Long: `Print a table of what a snapshot contains: region, cells by kind, nets,
pins, bins, the density range, and the force scale the overlay uses to
normalize its arrows.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInfo(cmd.Context(), args[0])
		},
	}
}

func (c *CLI) runInfo(ctx context.Context, input string) error {
	d, err := c.newRunner().Load(ctx, input)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.Out, styleTitle.Render(input))
	fmt.Fprintln(c.Out, infoTable(summarize(d)).Render())
	return nil
}

// summary is what info reports about a design.
type summary struct {
	region                 string
	instances, fillers     int
	nets, pins, unattached int
	bins                   int
	minDensity, maxDensity float64
	maxForce, maxArrow     float64
}

func summarize(d *placement.Design) summary {
	s := summary{
		region: "none",
		nets:   d.NetCount(),
		pins:   d.PinCount(),
		bins:   d.BinCount(),
	}
	if r, ok := d.Region(); ok {
		s.region = fmt.Sprintf("(%g, %g) - (%g, %g)", r.Lx, r.Ly, r.Ux, r.Uy)
	}
	for _, cell := range d.Cells() {
		if cell.IsInstance() {
			s.instances++
		} else {
			s.fillers++
		}
	}
	for _, p := range d.Pins() {
		if !p.HasNet() {
			s.unattached++
		}
	}
	s.minDensity, s.maxDensity = math.Inf(1), math.Inf(-1)
	for _, b := range d.Bins() {
		s.minDensity = math.Min(s.minDensity, b.Density)
		s.maxDensity = math.Max(s.maxDensity, b.Density)
	}
	if s.bins == 0 {
		s.minDensity, s.maxDensity = 0, 0
	}
	s.maxForce, s.maxArrow = overlay.ForceScale(d.Bins())
	return s
}

// headerRow is the row index lipgloss tables pass for the header.
const headerRow = -1

func infoTable(s summary) *table.Table {
	rows := [][]string{
		{"region", s.region},
		{"cells", fmt.Sprintf("%d", s.instances+s.fillers)},
		{"  instances", fmt.Sprintf("%d", s.instances)},
		{"  fillers", fmt.Sprintf("%d", s.fillers)},
		{"nets", fmt.Sprintf("%d", s.nets)},
		{"pins", fmt.Sprintf("%d (%d without net)", s.pins, s.unattached)},
		{"bins", fmt.Sprintf("%d", s.bins)},
		{"density", fmt.Sprintf("%.3g .. %.3g", s.minDensity, s.maxDensity)},
		{"max force", fmt.Sprintf("%.4g", s.maxForce)},
		{"max arrow", fmt.Sprintf("%.4g", s.maxArrow)},
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Property", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == headerRow:
				return styleHeader
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorGray)
			default:
				return styleNumber
			}
		})
}
