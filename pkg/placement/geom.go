package placement

import "gonum.org/v1/gonum/spatial/r2"

// Rect is an axis-aligned rectangle in layout coordinates (database units).
// Lx/Ly is the lower-left corner and Ux/Uy the upper-right corner.
type Rect struct {
	Lx, Ly, Ux, Uy float64
}

// RectAround returns the rectangle of the given size centered on c.
func RectAround(c r2.Vec, width, height float64) Rect {
	hw, hh := width/2, height/2
	return Rect{Lx: c.X - hw, Ly: c.Y - hh, Ux: c.X + hw, Uy: c.Y + hh}
}

// Dx returns the width of r.
func (r Rect) Dx() float64 { return r.Ux - r.Lx }

// Dy returns the height of r.
func (r Rect) Dy() float64 { return r.Uy - r.Ly }

// Center returns the midpoint of r.
func (r Rect) Center() r2.Vec {
	return r2.Vec{X: (r.Lx + r.Ux) / 2, Y: (r.Ly + r.Uy) / 2}
}

// Contains reports whether p lies inside r. All four edges are inclusive,
// so a point on the boundary is contained.
func (r Rect) Contains(p r2.Vec) bool {
	return p.X >= r.Lx && p.X <= r.Ux && p.Y >= r.Ly && p.Y <= r.Uy
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Lx: min(r.Lx, o.Lx),
		Ly: min(r.Ly, o.Ly),
		Ux: max(r.Ux, o.Ux),
		Uy: max(r.Uy, o.Uy),
	}
}

// Canon returns r with its corners ordered so that Lx <= Ux and Ly <= Uy.
func (r Rect) Canon() Rect {
	if r.Lx > r.Ux {
		r.Lx, r.Ux = r.Ux, r.Lx
	}
	if r.Ly > r.Uy {
		r.Ly, r.Uy = r.Uy, r.Ly
	}
	return r
}
