package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/placeviz/placeviz/pkg/buildinfo"
	"github.com/placeviz/placeviz/pkg/errors"
	"github.com/placeviz/placeviz/pkg/gui"
	placeio "github.com/placeviz/placeviz/pkg/io"
	"github.com/placeviz/placeviz/pkg/pipeline"
	"github.com/placeviz/placeviz/pkg/placement"
	"github.com/placeviz/placeviz/pkg/render/overlay"
	"github.com/placeviz/placeviz/pkg/render/overlay/sink"
)

const (
	defaultStepCols = 80
	defaultStepRows = 32
)

// stepCommand creates the step command.
func (c *CLI) stepCommand() *cobra.Command {
	var (
		f          overlayFlags
		cols, rows int
		layer      string
	)

	cmd := &cobra.Command{
		Use:   "step <frames.json>",
		Short: "Play placer iterations in the terminal",
		Long: `Play a sequence of snapshots (a JSON array, one per placer iteration) in
the terminal. The engine draws each frame and pauses until you resume it.

While paused, move the cursor with the arrow keys and press s to pick the
cell under it; its nets are drawn and it is highlighted.

Keys: arrows/hjkl move · s pick · c clear · enter resume · q quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := f.options(cmd, loggerFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			if cols <= 0 || rows <= 0 {
				return errors.New(errors.ErrCodeInvalidInput, "invalid grid size %dx%d", cols, rows)
			}
			return c.runStep(cmd.Context(), args[0], opts, cols, rows, layer)
		},
	}

	f.registerOverlay(cmd)
	cmd.Flags().IntVar(&cols, "cols", defaultStepCols, "grid columns")
	cmd.Flags().IntVar(&rows, "rows", defaultStepRows, "grid rows")
	cmd.Flags().StringVar(&layer, "layer", "", "routing layer picks are filtered by")

	return cmd
}

func (c *CLI) runStep(ctx context.Context, input string, opts pipeline.Options, cols, rows int, layer string) error {
	logger := loggerFromContext(ctx)
	frames, err := placeio.ImportFrames(input)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "%s contains no frames", input)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	logger.Debug("loaded frames", "path", input, "frames", len(frames))

	engine := newStepEngine(frames, opts, cols, rows)

	prog := tea.NewProgram(newStepModel(engine, layer), tea.WithContext(ctx), tea.WithAltScreen())
	engine.send = prog.Send

	_, err = prog.Run()
	engine.session.Close()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// =============================================================================
// Engine - the placer side
// =============================================================================

// Messages from the engine to the UI.
type (
	frameMsg      struct{ grid *sink.Grid }
	statusMsg     string
	pausedMsg     struct{}
	engineDoneMsg struct{}
	pickedMsg     struct {
		selected gui.Selected
		inspect  string
	}
)

// stepEngine replays frames through a session the way a placer would: one
// redraw per iteration followed by a blocking pause.
type stepEngine struct {
	frames     []*placement.Design
	session    *gui.Session
	graphics   *overlay.Graphics
	cols, rows int
	send       func(tea.Msg)
}

func newStepEngine(frames []*placement.Design, opts pipeline.Options, cols, rows int) *stepEngine {
	e := &stepEngine{frames: frames, cols: cols, rows: rows, send: func(tea.Msg) {}}
	e.session = gui.NewSession(
		gui.WithPainterFactory(e.newGrid),
		gui.WithFrameHandler(func(p gui.Painter) { e.send(frameMsg{grid: p.(*sink.Grid)}) }),
		gui.WithStatusHandler(func(msg string) { e.send(statusMsg(msg)) }),
		gui.WithPauseHandler(func() { e.send(pausedMsg{}) }),
		gui.WithSessionLogger(opts.Logger),
	)
	e.graphics = overlay.New(e.session, frames[0], opts.OverlayOptions()...)
	return e
}

func (e *stepEngine) newGrid() gui.Painter {
	return sink.NewGrid(e.cols, e.rows, designView(e.graphics.Design()))
}

// run plays every frame and reports engineDoneMsg once the last one is
// resumed or the session is closed.
func (e *stepEngine) run() tea.Msg {
	for i, d := range e.frames {
		if !e.session.Active() {
			break
		}
		e.graphics.SetDesign(d)
		e.graphics.Status(fmt.Sprintf("iteration %d/%d", i+1, len(e.frames)))
		e.graphics.CellPlot(true)
	}
	return engineDoneMsg{}
}

// designView is the region of d, or the extent of its cells without one.
func designView(d *placement.Design) placement.Rect {
	if d == nil {
		return placement.Rect{Ux: 1, Uy: 1}
	}
	if r, ok := d.Region(); ok {
		return r
	}
	cells := d.Cells()
	if len(cells) == 0 {
		return placement.Rect{Ux: 1, Uy: 1}
	}
	view := cells[0].Bounds()
	for _, c := range cells[1:] {
		view = view.Union(c.Bounds())
	}
	return view
}

// =============================================================================
// Model - the UI side
// =============================================================================

type stepModel struct {
	engine   *stepEngine
	layer    string
	grid     *sink.Grid
	col, row int
	status   string
	selected gui.Selected
	inspect  string
	paused   bool
	picking  bool
	done     bool
}

func newStepModel(e *stepEngine, layer string) stepModel {
	return stepModel{
		engine: e,
		layer:  layer,
		col:    e.cols / 2,
		row:    e.rows / 2,
		status: "starting",
	}
}

func (m stepModel) Init() tea.Cmd {
	return m.engine.run
}

func (m stepModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.grid = msg.grid
	case statusMsg:
		m.status = string(msg)
	case pausedMsg:
		m.paused = true
	case pickedMsg:
		m.picking = false
		m.selected, m.inspect = msg.selected, msg.inspect
	case engineDoneMsg:
		m.done, m.paused = true, false
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m stepModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.engine.session.Close()
		return m, tea.Quit
	case "up", "k":
		m.row = max(m.row-1, 0)
	case "down", "j":
		m.row = min(m.row+1, m.engine.rows-1)
	case "left", "h":
		m.col = max(m.col-1, 0)
	case "right", "l":
		m.col = min(m.col+1, m.engine.cols-1)
	case "s":
		if m.canInteract() {
			m.picking = true
			return m, m.pick(m.cursor())
		}
	case "c":
		if m.canInteract() {
			m.picking = true
			return m, m.clear
		}
	case "enter", " ":
		if m.paused && !m.picking {
			m.paused = false
			m.engine.session.Resume()
		}
	}
	return m, nil
}

// canInteract reports whether the engine is parked in a pause, the only
// time the UI may drive the renderer.
func (m stepModel) canInteract() bool {
	return m.paused && !m.picking && m.grid != nil
}

// cursor is the layout point under the cursor.
func (m stepModel) cursor() r2.Vec {
	return m.grid.ToLayout(m.col, m.row)
}

func (m stepModel) pick(at r2.Vec) tea.Cmd {
	e, layer := m.engine, m.layer
	return func() tea.Msg {
		sel := e.session.Click(layer, at)
		return pickedMsg{selected: sel, inspect: e.graphics.Inspect()}
	}
}

func (m stepModel) clear() tea.Msg {
	m.engine.graphics.ClearSelection()
	m.engine.session.Redraw()
	return pickedMsg{inspect: m.engine.graphics.Inspect()}
}

func (m stepModel) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render(buildinfo.Short()))
	b.WriteString(styleDim.Render(" · "))
	b.WriteString(styleValue.Render(m.status))
	b.WriteString(styleDim.Render(" · "))
	b.WriteString(m.state())
	b.WriteString("\n\n")

	if m.grid == nil {
		b.WriteString(styleDim.Render("waiting for the first frame..."))
		b.WriteString("\n")
	} else {
		g := m.grid.Clone()
		g.Mark(m.col, m.row)
		b.WriteString(g.Styled())
		b.WriteString("\n\n")
		p := m.cursor()
		b.WriteString(styleDim.Render(fmt.Sprintf("cursor (%.4g, %.4g)  ", p.X, p.Y)))
		b.WriteString(selectedLabel(m.selected))
		if m.inspect != "" && !m.selected.Empty() {
			b.WriteString(styleDim.Render("  " + m.inspect))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styleDim.Render("arrows move · s pick · c clear · enter resume · q quit"))
	return b.String()
}

func (m stepModel) state() string {
	switch {
	case m.done:
		return styleDim.Render("done")
	case m.picking:
		return styleWarning.Render("picking")
	case m.paused:
		return styleWarning.Render("paused")
	default:
		return styleNumber.Render("running")
	}
}
