package overlay

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/placeviz/placeviz/pkg/placement"
)

const eps = 1e-9

func bin(lx, ly, ux, uy, fx, fy float64) placement.Bin {
	return placement.Bin{Rect: placement.Rect{Lx: lx, Ly: ly, Ux: ux, Uy: uy}, ForceX: fx, ForceY: fy}
}

func near(a, b r2.Vec) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}

func TestForceScale(t *testing.T) {
	tests := []struct {
		name    string
		bins    []placement.Bin
		wantMag float64
		wantLen float64
	}{
		{"empty", nil, 0, 0},
		{"single", []placement.Bin{bin(0, 0, 10, 20, 3, 4)}, 5, 5},
		{"mixed", []placement.Bin{bin(0, 0, 10, 20, 3, 4), bin(10, 0, 30, 6, -1, 0)}, 5, 3},
		{"zero extent", []placement.Bin{bin(0, 0, 0, 20, 3, 4)}, 5, 0},
		{"inverted", []placement.Bin{bin(10, 10, 0, 0, 1, 0)}, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mag, l := ForceScale(tt.bins)
			if mag != tt.wantMag || l != tt.wantLen {
				t.Errorf("ForceScale() = (%v, %v), want (%v, %v)", mag, l, tt.wantMag, tt.wantLen)
			}
		})
	}
}

func TestNormalizeForcesLengths(t *testing.T) {
	bins := []placement.Bin{
		bin(0, 0, 10, 20, 3, 4),     // strongest
		bin(10, 0, 30, 20, -1, 0),   // 1/5
		bin(30, 0, 50, 20, 0, -2.5), // 1/2
	}
	_, maxLen := ForceScale(bins)
	segs := NormalizeForces(bins)
	if len(segs) != len(bins) {
		t.Fatalf("len = %d, want %d", len(segs), len(bins))
	}

	want := []r2.Vec{
		{X: 5 + 3, Y: 10 + 4},
		{X: 20 - 1, Y: 10},
		{X: 40, Y: 10 - 2.5},
	}
	for i, s := range segs {
		if !near(s.From, bins[i].Center()) {
			t.Errorf("seg[%d].From = %v, want bin center %v", i, s.From, bins[i].Center())
		}
		if !near(s.To, want[i]) {
			t.Errorf("seg[%d].To = %v, want %v", i, s.To, want[i])
		}
		if s.Len() > maxLen+eps {
			t.Errorf("seg[%d].Len() = %v exceeds maxLen %v", i, s.Len(), maxLen)
		}
	}
	if got := segs[0].Len(); math.Abs(got-maxLen) > eps {
		t.Errorf("strongest Len() = %v, want exactly %v", got, maxLen)
	}
}

func TestNormalizeForcesQuadrants(t *testing.T) {
	tests := []struct {
		fx, fy float64
		sx, sy float64
	}{
		{1, 1, 1, 1},
		{-1, 1, -1, 1},
		{-1, -1, -1, -1},
		{1, -1, 1, -1},
	}
	for _, tt := range tests {
		segs := NormalizeForces([]placement.Bin{bin(0, 0, 10, 10, tt.fx, tt.fy)})
		d := r2.Sub(segs[0].To, segs[0].From)
		if math.Signbit(d.X) != math.Signbit(tt.sx) || math.Signbit(d.Y) != math.Signbit(tt.sy) {
			t.Errorf("force (%v, %v): direction = %v, want signs (%v, %v)", tt.fx, tt.fy, d, tt.sx, tt.sy)
		}
	}
}

func TestNormalizeForcesZeroField(t *testing.T) {
	bins := []placement.Bin{
		bin(0, 0, 10, 10, 0, 0),
		bin(10, 0, 20, 10, 0, 0),
	}
	for i, s := range NormalizeForces(bins) {
		if s.Len() != 0 {
			t.Errorf("seg[%d].Len() = %v, want 0", i, s.Len())
		}
		if math.IsNaN(s.To.X) || math.IsNaN(s.To.Y) {
			t.Errorf("seg[%d].To = %v, contains NaN", i, s.To)
		}
	}
}

func TestNormalizeForcesDegenerateBins(t *testing.T) {
	bins := []placement.Bin{
		bin(0, 0, 10, 10, 3, 4),
		bin(10, 0, 10, 10, 1, 0), // zero width
	}
	for i, s := range NormalizeForces(bins) {
		if s.Len() != 0 {
			t.Errorf("seg[%d].Len() = %v, want 0", i, s.Len())
		}
	}
}

func TestNormalizeForcesNonFinite(t *testing.T) {
	bins := []placement.Bin{
		bin(0, 0, 10, 10, math.NaN(), 1),
		bin(10, 0, 20, 10, 0, 2),
	}
	segs := NormalizeForces(bins)
	if segs[0].Len() != 0 {
		t.Errorf("NaN force Len() = %v, want 0", segs[0].Len())
	}
	if got := segs[1].Len(); math.Abs(got-5) > eps {
		t.Errorf("finite force Len() = %v, want 5", got)
	}
}

func TestNormalizeForcesStayInBins(t *testing.T) {
	bins := []placement.Bin{
		bin(0, 0, 100, 100, 1, 0),
		bin(100, 0, 110, 20, -3, -4),
		bin(110, 0, 150, 8, 0, 2),
		bin(150, 0, 200, 50, -7, 7),
		bin(0, 100, 4, 140, 0.5, -0.1),
	}
	for i, s := range NormalizeForces(bins) {
		r := bins[i].Rect
		if s.To.X < r.Lx-eps || s.To.X > r.Ux+eps || s.To.Y < r.Ly-eps || s.To.Y > r.Uy+eps {
			t.Errorf("seg[%d].To = %v leaves bin %v", i, s.To, r)
		}
	}
}
