// Package kahan implements Kahan compensated summation, generalized over any
// type whose arithmetic preserves the identity t - s == 0 iff t == s (in
// floating point this requires subnormals to be enabled).
package kahan

import "golang.org/x/exp/constraints"

// Summable is anything that can be added to and subtracted from itself,
// returning a new value of the same type. vector.Vec2 satisfies this.
type Summable[T any] interface {
	Add(T) T
	Sub(T) T
}

// Accumulator maintains a running sum and its associated error term for any
// Summable vector-like type.
type Accumulator[T Summable[T]] struct {
	sum T
	err T
}

// New returns an accumulator seeded at a.
func New[T Summable[T]](a T) Accumulator[T] {
	return Accumulator[T]{sum: a}
}

// Add folds v into the running sum, updating the error term.
func (k *Accumulator[T]) Add(v T) {
	y := v.Sub(k.err)
	t := k.sum.Add(y)
	k.err = t.Sub(k.sum).Sub(y)
	k.sum = t
}

// Sum returns the accumulator's current value.
func (k *Accumulator[T]) Sum() T {
	return k.sum
}

// Scalar maintains a running sum and error term for an ordinary floating
// point type, for summation problems that have no vector structure.
type Scalar[F constraints.Float] struct {
	sum F
	err F
}

// Add folds v into the running sum, updating the error term.
func (k *Scalar[F]) Add(v F) {
	y := v - k.err
	t := k.sum + y
	k.err = (t - k.sum) - y
	k.sum = t
}

// Sum returns the accumulator's current value.
func (k *Scalar[F]) Sum() F {
	return k.sum
}
