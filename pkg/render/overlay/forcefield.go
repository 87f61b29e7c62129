package overlay

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/placeviz/placeviz/pkg/placement"
)

// Segment is a line segment in layout coordinates.
type Segment struct {
	From, To r2.Vec
}

// Len returns the segment length.
func (s Segment) Len() float64 { return r2.Norm(r2.Sub(s.To, s.From)) }

// ForceScale returns the largest force magnitude over bins and the length
// that magnitude is drawn with: the smallest half-width or half-height of any
// bin, so no segment leaves its bin. maxLen is 0 for an empty or degenerate
// bin set.
func ForceScale(bins []placement.Bin) (maxMagnitude, maxLen float64) {
	if len(bins) == 0 {
		return 0, 0
	}
	maxLen = math.Inf(1)
	for _, b := range bins {
		if m := math.Hypot(b.ForceX, b.ForceY); m > maxMagnitude {
			maxMagnitude = m
		}
		maxLen = math.Min(maxLen, math.Min(b.Dx(), b.Dy())/2)
	}
	if math.IsInf(maxMagnitude, 0) {
		maxMagnitude = 0
	}
	if !(maxLen > 0) || math.IsInf(maxLen, 0) {
		maxLen = 0
	}
	return maxMagnitude, maxLen
}

// NormalizeForces returns one segment per bin, starting at the bin center and
// pointing along the bin's force. Lengths are proportional to the force
// magnitude, with the strongest force drawn at exactly maxLen (see
// [ForceScale]). When no bin carries force every segment has zero length.
func NormalizeForces(bins []placement.Bin) []Segment {
	maxMagnitude, maxLen := ForceScale(bins)
	segs := make([]Segment, len(bins))
	for i, b := range bins {
		c := b.Center()
		segs[i] = Segment{From: c, To: c}

		m := math.Hypot(b.ForceX, b.ForceY)
		if maxMagnitude == 0 || !(m > 0) || math.IsInf(m, 0) {
			continue
		}
		angle := math.Atan2(b.ForceY, b.ForceX)
		dir := r2.Vec{X: math.Cos(angle), Y: math.Sin(angle)}
		segs[i].To = r2.Add(c, r2.Scale(maxLen*m/maxMagnitude, dir))
	}
	return segs
}
