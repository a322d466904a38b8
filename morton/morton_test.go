package morton

import (
	"sort"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	cases := []struct{ x, y float32 }{
		{0, 0}, {1.5, -2.5}, {-12, -11}, {24, -3.23}, {100.125, -200.875},
	}
	for _, c := range cases {
		k := EncodeAt(c.x, c.y, DefaultPrecision)
		if !HasKey(k) {
			t.Fatalf("EncodeAt(%v,%v) returned NoKey unexpectedly", c.x, c.y)
		}
		wantX := int32(float64(c.x) * DefaultPrecision)
		wantY := int32(float64(c.y) * DefaultPrecision)
		gotX, gotY := DecodeAt(k)
		if gotX != wantX || gotY != wantY {
			t.Fatalf("DecodeAt(EncodeAt(%v,%v)) = (%d,%d), want (%d,%d)", c.x, c.y, gotX, gotY, wantX, wantY)
		}
	}
}

func TestOverflowSentinel(t *testing.T) {
	k := EncodeAt(1e10, 0, DefaultPrecision)
	if HasKey(k) {
		t.Fatal("expected NoKey for an out-of-range coordinate")
	}
}

// TestPrefixGroupingScenario mirrors spec.md's scenario 5: points already in
// Z-order at precision 512 stay stable under a Morton sort.
func TestPrefixGroupingScenario(t *testing.T) {
	pts := [][2]float32{{-12, -11}, {24, -3.23}, {-11, 4.8}, {1.2, 3.4}}
	sorted := append([][2]float32{}, pts...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return EncodeAt(sorted[i][0], sorted[i][1], DefaultPrecision) < EncodeAt(sorted[j][0], sorted[j][1], DefaultPrecision)
	})
	for i := range pts {
		if sorted[i] != pts[i] {
			t.Fatalf("expected already-Z-ordered sequence to stay unchanged at index %d: got %+v, want %+v", i, sorted, pts)
		}
	}

	pair := [][2]float32{{11, 3.3}, {-2, 0.2}}
	sort.SliceStable(pair, func(i, j int) bool {
		return EncodeAt(pair[i][0], pair[i][1], DefaultPrecision) < EncodeAt(pair[j][0], pair[j][1], DefaultPrecision)
	})
	if pair[0] != ([2]float32{-2, 0.2}) {
		t.Fatalf("expected sort to swap the pair, got %+v", pair)
	}
}

func TestMonotonicityIsConsistentWithSort(t *testing.T) {
	// Spot-check: sorting a handful of arbitrary points by Morton key
	// produces a permutation consistent with re-sorting by the same key
	// (i.e. the relation is a valid total preorder).
	pts := [][2]float32{{5, 5}, {-3, 2}, {0, 0}, {100, -100}, {1, 1}, {-1, -1}}
	keys := make([]Key, len(pts))
	for i, p := range pts {
		keys[i] = EncodeAt(p[0], p[1], DefaultPrecision)
	}
	idx := make([]int, len(pts))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return keys[idx[i]] < keys[idx[j]] })
	for i := 1; i < len(idx); i++ {
		if keys[idx[i-1]] > keys[idx[i]] {
			t.Fatal("sorted keys are not monotonically non-decreasing")
		}
	}
}
