package gravity

import (
	"sort"

	"grass/halton"
	"grass/kahan"
	"grass/vector"
)

// DefaultSamples is the Monte Carlo sample count original_source/dyn/newton.h
// hardcodes as N_MONTE.
const DefaultSamples = 30

// haltonWarmup is the number of leading Halton terms original_source/dyn/newton.h
// discards before sampling the disk, to avoid the low-discrepancy sequence's
// early, less-well-distributed terms.
const haltonWarmup = 1234

// Evaluator computes gravitational acceleration between disks, falling back
// to Monte Carlo quadrature over a pre-sampled unit disk when two disks
// overlap. Its only state is that sample set and the Halton generator that
// Refresh draws new samples from.
type Evaluator struct {
	samples []vector.Vec2
	points  *halton.Point2D
}

// NewDefaultEvaluator returns an evaluator with DefaultSamples Monte Carlo
// samples.
func NewDefaultEvaluator() *Evaluator {
	return NewEvaluator(DefaultSamples)
}

// NewEvaluator returns an evaluator with n Monte Carlo samples, already
// populated via Refresh.
func NewEvaluator(n int) *Evaluator {
	if n <= 0 {
		panic("gravity: sample count must be positive")
	}
	e := &Evaluator{samples: make([]vector.Vec2, n), points: halton.NewPoint2D()}
	e.points.Skip(haltonWarmup)
	e.Refresh()
	return e
}

// Refresh re-populates the Monte Carlo disk by rejection sampling the
// Halton-driven unit square, then sorts the sample by real (X) coordinate
// for branch-prediction locality, laundering away the stochastic bias that
// a fixed sample set accumulates across frames.
func (e *Evaluator) Refresh() {
	for i := range e.samples {
		for {
			x, y := e.points.Next()
			p := vector.Vec2{X: 2*x - 1, Y: 2*y - 1}
			if p.Dot(p) < 1 {
				e.samples[i] = p
				break
			}
		}
	}
	sort.Slice(e.samples, func(i, j int) bool { return e.samples[i].X < e.samples[j].X })
}

// Field returns a gravitational acceleration-proportional quantity on test
// disk c0 due to source disk c1 of mass m1 (the caller multiplies by the
// universal constant G). dist, if non-negative, is treated as the
// precomputed |c1.Center - c0.Center|; pass a negative value to have it
// computed here.
func (e *Evaluator) Field(c0, c1 Disk, m1, dist float32) vector.Vec2 {
	if dist < 0 {
		dist = vector.Dist(c1.Center, c0.Center)
	}
	switch {
	case dist >= c0.Radius+c1.Radius:
		// Disjoint: treat both as point masses.
		if dist == 0 {
			return vector.Vec2{}
		}
		inv := 1 / dist
		return c1.Center.Sub(c0.Center).Scale(inv * inv * inv * m1)
	case dist <= abs32(c1.Radius-c0.Radius):
		// Engulfing: by the shell theorem the net force is zero whether the
		// test disk sits in the source's hollow or inside a solid body.
		return vector.Vec2{}
	default:
		return e.intersecting(c0, c1, m1)
	}
}

func (e *Evaluator) intersecting(c0, c1 Disk, m1 float32) vector.Vec2 {
	var b kahan.Accumulator[vector.Vec2]
	for _, p := range e.samples {
		sample := c0.Center.Add(p.Scale(c0.Radius))
		q := c1.Center.Sub(sample)
		r := q.Norm()
		if r > c1.Radius {
			inv := 1 / r
			b.Add(q.Scale(inv * inv * inv))
		}
	}
	n := float32(len(e.samples))
	return b.Sum().Scale(m1 / n)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
