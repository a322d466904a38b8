// Package morton computes Morton (Z-order) keys for 2D points by
// bit-interleaving their scaled coordinates.
package morton

import "math"

// Key is a 64-bit Morton code. NoKey is the sentinel returned when a point
// cannot be represented at the chosen precision.
type Key uint64

// NoKey marks a point whose scaled coordinates overflow the 32-bit range.
// It must compare equal only to itself when grouping prefixes, so tree
// construction treats it as its own equivalence class rather than silently
// dropping the particle.
const NoKey Key = math.MaxUint64

// HasKey reports whether k is a valid (non-sentinel) key.
func HasKey(k Key) bool {
	return k != NoKey
}

// DefaultPrecision is the coordinate scaling factor used when callers don't
// specify one, matching original_source/dyn/barnes_hut.h's default template
// parameter.
const DefaultPrecision = 512

// Encode computes the Morton key of (x, y) at DefaultPrecision.
func Encode(x, y float32) Key {
	return EncodeAt(x, y, DefaultPrecision)
}

// EncodeAt computes the Morton key of (x, y) scaled by precision. It returns
// NoKey if either scaled coordinate's magnitude is not representable as a
// 32-bit signed integer.
func EncodeAt(x, y float32, precision float32) Key {
	sx := float64(x) * float64(precision)
	sy := float64(y) * float64(precision)
	if math.Abs(sx) >= float64(math.MaxInt32) || math.Abs(sy) >= float64(math.MaxInt32) {
		return NoKey
	}
	ix := order32(int32(sx))
	iy := order32(int32(sy))
	return Key(interleave32(ix, iy))
}

// order32 flips the sign bit of a signed integer's bit pattern so that the
// resulting unsigned value preserves the original ordering.
func order32(i int32) uint32 {
	const sign uint32 = 1 << 31
	return uint32(i) ^ sign
}

// unorder32 is the inverse of order32.
func unorder32(u uint32) int32 {
	const sign uint32 = 1 << 31
	return int32(u ^ sign)
}

var spreadMasks = [5]struct {
	mask  uint64
	shift uint
}{
	{0x0000ffff0000ffff, 16},
	{0x00ff00ff00ff00ff, 8},
	{0x0f0f0f0f0f0f0f0f, 4},
	{0x3333333333333333, 2},
	{0x5555555555555555, 1},
}

// spread interleaves zeros between every bit of a 32-bit word.
func spread(w uint64) uint64 {
	for _, m := range spreadMasks {
		w = (w | (w << m.shift)) & m.mask
	}
	return w
}

// compact is the inverse of spread: it collapses every other bit back into a
// contiguous 32-bit word.
func compact(w uint64) uint32 {
	for i := len(spreadMasks) - 1; i >= 0; i-- {
		m := spreadMasks[i]
		w &= m.mask
		w = (w | (w >> m.shift)) & (m.mask | (m.mask << m.shift))
	}
	return uint32(w)
}

// interleave32 spreads re into even bit positions and im into odd bit
// positions, producing a 64-bit Morton code.
func interleave32(re, im uint32) uint64 {
	return spread(uint64(re)) | (spread(uint64(im)) << 1)
}

// deinterleave32 is the inverse of interleave32.
func deinterleave32(z uint64) (re, im uint32) {
	return compact(z), compact(z >> 1)
}

// DecodeAt recovers the scaled integer coordinates that produced k, at
// whatever precision k was computed with. It is the exact inverse of
// EncodeAt for finite, in-range inputs.
func DecodeAt(k Key) (x, y int32) {
	re, im := deinterleave32(uint64(k))
	return unorder32(re), unorder32(im)
}
