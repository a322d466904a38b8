// Package halton implements the Halton low-discrepancy sequence used by the
// gravity evaluator to seed its Monte Carlo disk with evenly-spread points.
package halton

// State is a stateful Halton sequence generator for a fixed prime base.
// Construct one with New (the zero value has no base or limit); its first
// call to Next uses index 1.
type State struct {
	base  uint16
	limit uint16
	i     uint16
}

// New returns a generator for the given prime base with the given wrap
// limit: the internal counter advances modulo limit before every call to
// Next, guaranteeing it never reaches zero.
func New(base, limit uint16) *State {
	if base < 2 {
		panic("halton: base must be at least 2")
	}
	if limit == 0 {
		panic("halton: limit must be positive")
	}
	return &State{base: base, limit: limit}
}

// X01 computes the radical-inverse of i in the generator's base, producing a
// value in (0, 1).
func X01(i uint16, base uint16) float32 {
	var r, f float32 = 0, 1
	for i != 0 {
		f /= float32(base)
		r += f * float32(i%base)
		i /= base
	}
	return r
}

// Next advances the internal counter and returns the next value in (0, 1).
func (s *State) Next() float32 {
	s.i = (s.i % s.limit) + 1
	return X01(s.i, s.base)
}

// Point2D pairs two independent Halton generators (conventionally bases 2
// and 3) to produce low-discrepancy points in the unit square, the way
// original_source/dyn/newton.h seeds its Monte Carlo disk.
type Point2D struct {
	hx, hy *State
}

// DefaultLimit is the wrap limit used throughout the gravity evaluator.
const DefaultLimit = 0x1000

// NewPoint2D returns a 2D Halton point generator using bases 2 and 3.
func NewPoint2D() *Point2D {
	return &Point2D{hx: New(2, DefaultLimit), hy: New(3, DefaultLimit)}
}

// Next returns the next (x, y) pair, each in (0, 1).
func (p *Point2D) Next() (x, y float32) {
	return p.hx.Next(), p.hy.Next()
}

// Skip discards n terms from each underlying sequence, matching the 1234-term
// warm-up original_source/dyn/newton.h performs before sampling the disk.
func (p *Point2D) Skip(n int) {
	for i := 0; i < n; i++ {
		p.Next()
	}
}
