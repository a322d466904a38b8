package halton

import "testing"

func TestX01Bounds(t *testing.T) {
	for base := uint16(2); base <= 5; base++ {
		for i := uint16(1); i < 200; i++ {
			x := X01(i, base)
			if x <= 0 || x >= 1 {
				t.Fatalf("X01(%d, %d) = %v, want in (0, 1)", i, base, x)
			}
		}
	}
}

func TestNextNeverZeroIndex(t *testing.T) {
	s := New(2, 8)
	seen := make(map[float32]bool)
	for i := 0; i < 100; i++ {
		v := s.Next()
		if v <= 0 || v >= 1 {
			t.Fatalf("Next() = %v, want in (0, 1)", v)
		}
		seen[v] = true
	}
	if len(seen) > 8 {
		t.Fatalf("expected at most %d distinct values modulo wrap limit, got %d", 8, len(seen))
	}
}

func TestPoint2DWraps(t *testing.T) {
	p := NewPoint2D()
	for i := 0; i < 10000; i++ {
		x, y := p.Next()
		if x <= 0 || x >= 1 || y <= 0 || y >= 1 {
			t.Fatalf("Next() = (%v, %v), want both in (0, 1)", x, y)
		}
	}
}

func TestSkipAdvances(t *testing.T) {
	p1 := NewPoint2D()
	p2 := NewPoint2D()
	p2.Skip(5)
	x1, _ := p1.Next()
	for i := 0; i < 5; i++ {
		x1, _ = p1.Next()
	}
	x2, _ := p2.Next()
	if x1 != x2 {
		t.Fatalf("Skip(5) then Next() should equal Next() called 6 times: %v != %v", x2, x1)
	}
}
