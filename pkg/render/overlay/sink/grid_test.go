package sink

import (
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/placeviz/placeviz/pkg/gui"
	"github.com/placeviz/placeviz/pkg/placement"
)

func TestGridCoordinates(t *testing.T) {
	g := NewGrid(10, 5, placement.Rect{Ux: 100, Uy: 50})

	tests := []struct {
		p        r2.Vec
		col, row int
		ok       bool
	}{
		{r2.Vec{X: 0, Y: 50}, 0, 0, true},
		{r2.Vec{X: 99, Y: 1}, 9, 4, true},
		{r2.Vec{X: 100, Y: 0}, 9, 4, true},
		{r2.Vec{X: 55, Y: 25}, 5, 2, true},
		{r2.Vec{X: 101, Y: 0}, 0, 0, false},
	}
	for _, tt := range tests {
		col, row, ok := g.ToCell(tt.p)
		if col != tt.col || row != tt.row || ok != tt.ok {
			t.Errorf("ToCell(%v) = (%d, %d, %v), want (%d, %d, %v)", tt.p, col, row, ok, tt.col, tt.row, tt.ok)
		}
	}

	if got := g.ToLayout(0, 0); got != (r2.Vec{X: 5, Y: 45}) {
		t.Errorf("ToLayout(0, 0) = %v, want (5, 45)", got)
	}
	if col, row, _ := g.ToCell(g.ToLayout(7, 3)); col != 7 || row != 3 {
		t.Errorf("ToCell(ToLayout(7, 3)) = (%d, %d)", col, row)
	}
}

func TestGridDrawRect(t *testing.T) {
	g := NewGrid(10, 10, placement.Rect{Ux: 10, Uy: 10})
	g.SetBrush(gui.WithAlpha(gui.DarkBlue, 180))
	g.DrawRect(placement.Rect{Lx: 2, Ly: 2, Ux: 4, Uy: 4})

	for row := 0; row < 10; row++ {
		for col := 0; col < 10; col++ {
			want := ' '
			if col >= 2 && col <= 3 && row >= 6 && row <= 7 {
				want = solidRune
			}
			if got := g.At(col, row); got != want {
				t.Errorf("At(%d, %d) = %q, want %q", col, row, got, want)
			}
		}
	}
}

func TestGridTinyRectMarksCenter(t *testing.T) {
	g := NewGrid(4, 4, placement.Rect{Ux: 100, Uy: 100})
	g.SetBrush(gui.WithAlpha(gui.Yellow, 180))
	g.DrawRect(placement.Rect{Lx: 60, Ly: 60, Ux: 61, Uy: 61})
	if got := g.At(2, 1); got != solidRune {
		t.Errorf("At(2, 1) = %q, want %q\n%s", got, solidRune, g)
	}
}

func TestGridDrawLine(t *testing.T) {
	g := NewGrid(5, 5, placement.Rect{Ux: 5, Uy: 5})
	g.SetPen(gui.Yellow, true)
	g.DrawLine(0, 0, 5, 0) // bottom edge of the view
	want := strings.Repeat(string(lineRune), 5)
	if got := strings.Split(g.String(), "\n")[4]; got != want {
		t.Errorf("bottom row = %q, want %q", got, want)
	}

	g.SetPen(gui.Red, true)
	g.DrawLine(2.5, 2.5, 2.5, 2.5)
	if got := g.At(2, 2); got != lineRune {
		t.Errorf("point line At(2, 2) = %q", got)
	}
}

func TestGridShades(t *testing.T) {
	tests := []struct {
		gray uint8
		want rune
	}{
		{255, ' '},
		{235, ' '},
		{128, '░'},
		{100, '▒'},
		{0, '█'},
	}
	for _, tt := range tests {
		if got := fillRune(gui.Gray(tt.gray, 180)); got != tt.want {
			t.Errorf("fillRune(gray %d) = %q, want %q", tt.gray, got, tt.want)
		}
	}
	if got := fillRune(gui.DarkMagenta); got != solidRune {
		t.Errorf("fillRune(colored) = %q, want solid", got)
	}
}

func TestGridStyledKeepsText(t *testing.T) {
	g := NewGrid(3, 2, placement.Rect{Ux: 3, Uy: 2})
	g.SetBrush(gui.Gray(0, 255))
	g.DrawRect(placement.Rect{Ux: 3, Uy: 2})
	g.Mark(1, 0)
	if got := g.String(); got != "█+█\n███" {
		t.Errorf("String() = %q", got)
	}
	if styled := g.Styled(); !strings.Contains(styled, "+") || strings.Count(styled, "\n") != 1 {
		t.Errorf("Styled() = %q", styled)
	}
}

func TestGridCloneIsIndependent(t *testing.T) {
	g := NewGrid(3, 3, placement.Rect{Ux: 3, Uy: 3})
	c := g.Clone()
	c.Mark(1, 1)
	if got := c.At(1, 1); got != cursorRune {
		t.Errorf("clone At(1, 1) = %q, want %q", got, cursorRune)
	}
	if got := g.At(1, 1); got != ' ' {
		t.Errorf("original At(1, 1) = %q after marking the clone", got)
	}
}
