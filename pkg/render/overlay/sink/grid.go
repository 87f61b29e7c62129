package sink

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/placeviz/placeviz/pkg/gui"
	"github.com/placeviz/placeviz/pkg/placement"
)

// Runes used by the grid.
const (
	lineRune   = '·'
	solidRune  = '█'
	cursorRune = '+'
)

// shadeRunes ramps from light to dark; gray brushes pick one by darkness.
var shadeRunes = []rune{' ', '░', '▒', '▓', '█'}

type gridCell struct {
	r  rune
	fg color.RGBA
}

// Grid is a [gui.Painter] that rasterizes into a grid of runes, one cell per
// terminal character. The view rectangle is mapped onto the whole grid with
// layout y growing upward (row 0 is the top).
type Grid struct {
	cols, rows int
	view       placement.Rect
	cells      []gridCell

	pen   Pen
	brush color.RGBA
}

var _ gui.Painter = (*Grid)(nil)

// NewGrid returns a blank cols x rows grid showing view.
func NewGrid(cols, rows int, view placement.Rect) *Grid {
	cols, rows = max(cols, 1), max(rows, 1)
	view = view.Canon()
	if view.Dx() == 0 {
		view.Ux = view.Lx + 1
	}
	if view.Dy() == 0 {
		view.Uy = view.Ly + 1
	}
	g := &Grid{cols: cols, rows: rows, view: view, cells: make([]gridCell, cols*rows)}
	for i := range g.cells {
		g.cells[i].r = ' '
	}
	return g
}

// Size returns the grid dimensions.
func (g *Grid) Size() (cols, rows int) { return g.cols, g.rows }

// View returns the layout rectangle the grid shows.
func (g *Grid) View() placement.Rect { return g.view }

// ToLayout returns the layout point at the center of a grid cell.
func (g *Grid) ToLayout(col, row int) r2.Vec {
	cw, ch := g.view.Dx()/float64(g.cols), g.view.Dy()/float64(g.rows)
	return r2.Vec{
		X: g.view.Lx + (float64(col)+0.5)*cw,
		Y: g.view.Uy - (float64(row)+0.5)*ch,
	}
}

// ToCell returns the grid cell containing p, and false if p is outside the view.
func (g *Grid) ToCell(p r2.Vec) (col, row int, ok bool) {
	if !g.view.Contains(p) {
		return 0, 0, false
	}
	fx, fy := g.fractional(p.X, p.Y)
	return min(int(fx), g.cols-1), min(int(fy), g.rows-1), true
}

// fractional maps layout coordinates to continuous grid coordinates.
func (g *Grid) fractional(x, y float64) (float64, float64) {
	return (x - g.view.Lx) / g.view.Dx() * float64(g.cols),
		(g.view.Uy - y) / g.view.Dy() * float64(g.rows)
}

func (g *Grid) set(col, row int, r rune, fg color.RGBA) {
	if col < 0 || row < 0 || col >= g.cols || row >= g.rows {
		return
	}
	g.cells[row*g.cols+col] = gridCell{r: r, fg: fg}
}

// At returns the rune at a grid cell.
func (g *Grid) At(col, row int) rune {
	if col < 0 || row < 0 || col >= g.cols || row >= g.rows {
		return 0
	}
	return g.cells[row*g.cols+col].r
}

func (g *Grid) SetPen(c color.RGBA, cosmetic bool) { g.pen = Pen{Color: c, Cosmetic: cosmetic} }
func (g *Grid) SetBrush(c color.RGBA)              { g.brush = c }

// DrawLine plots the line with a DDA walk over grid cells.
func (g *Grid) DrawLine(x1, y1, x2, y2 float64) {
	if g.pen.Color.A == 0 {
		return
	}
	ca, ra := g.fractional(x1, y1)
	cb, rb := g.fractional(x2, y2)
	if anyNaN(ca, ra, cb, rb) {
		return
	}
	steps := math.Ceil(math.Max(math.Abs(cb-ca), math.Abs(rb-ra)))
	steps = math.Min(steps, float64(4*(g.cols+g.rows)))
	if steps == 0 {
		g.set(index(ca, g.cols), index(ra, g.rows), lineRune, g.pen.Color)
		return
	}
	dc, dr := (cb-ca)/steps, (rb-ra)/steps
	for i := 0.0; i <= steps; i++ {
		g.set(index(ca+dc*i, g.cols), index(ra+dr*i, g.rows), lineRune, g.pen.Color)
	}
}

// index maps a continuous grid coordinate to a cell index. The far edge of
// the view belongs to the last cell.
func index(f float64, n int) int {
	i := int(math.Floor(f))
	if i == n && f == float64(n) {
		return n - 1
	}
	return i
}

// DrawRect fills every cell whose center lies in r. A rectangle smaller than
// a cell still marks the cell under its center.
func (g *Grid) DrawRect(r placement.Rect) {
	if g.brush.A == 0 {
		return
	}
	r = r.Canon()
	ch := fillRune(g.brush)
	c0, r0 := g.fractional(r.Lx, r.Uy)
	c1, r1 := g.fractional(r.Ux, r.Ly)
	if anyNaN(c0, r0, c1, r1) {
		return
	}

	colLo, colHi := int(math.Ceil(c0-0.5)), int(math.Floor(c1-0.5))
	rowLo, rowHi := int(math.Ceil(r0-0.5)), int(math.Floor(r1-0.5))
	colLo, rowLo = max(colLo, 0), max(rowLo, 0)
	colHi, rowHi = min(colHi, g.cols-1), min(rowHi, g.rows-1)

	if colLo > colHi || rowLo > rowHi {
		if col, row, ok := g.ToCell(r.Center()); ok {
			g.set(col, row, ch, g.brush)
		}
		return
	}
	for row := rowLo; row <= rowHi; row++ {
		for col := colLo; col <= colHi; col++ {
			g.set(col, row, ch, g.brush)
		}
	}
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	c := *g
	c.cells = append([]gridCell(nil), g.cells...)
	return &c
}

// Mark draws the cursor at a grid cell.
func (g *Grid) Mark(col, row int) {
	g.set(col, row, cursorRune, gui.White)
}

// fillRune picks a shade rune for gray brushes and a solid block otherwise.
func fillRune(c color.RGBA) rune {
	if c.R != c.G || c.G != c.B {
		return solidRune
	}
	darkness := 255 - int(c.R)
	return shadeRunes[darkness*(len(shadeRunes)-1)/255]
}

// String returns the grid as plain text, one line per row.
func (g *Grid) String() string {
	var sb strings.Builder
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			sb.WriteRune(g.cells[row*g.cols+col].r)
		}
		if row < g.rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Styled returns the grid with each run of equally colored cells rendered
// through lipgloss in its pen or brush color.
func (g *Grid) Styled() string {
	var sb strings.Builder
	for row := 0; row < g.rows; row++ {
		line := g.cells[row*g.cols : (row+1)*g.cols]
		for start := 0; start < len(line); {
			end := start + 1
			for end < len(line) && line[end].fg == line[start].fg {
				end++
			}
			var run strings.Builder
			for _, c := range line[start:end] {
				run.WriteRune(c.r)
			}
			sb.WriteString(styleFor(line[start].fg).Render(run.String()))
			start = end
		}
		if row < g.rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func styleFor(c color.RGBA) lipgloss.Style {
	if c.A == 0 {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)))
}

func anyNaN(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}
	return false
}
