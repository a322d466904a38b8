package gravity

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"grass/vector"
)

func TestDiskMergeWeightedCentroid(t *testing.T) {
	a := Disk{Center: vector.Vec2{X: 0, Y: 0}, Radius: 1, Mass: 1}
	b := Disk{Center: vector.Vec2{X: 4, Y: 0}, Radius: 1, Mass: 1}
	m := a.Merge(b)
	if !scalar.EqualWithinAbs(float64(m.Center.X), 2, 1e-6) {
		t.Fatalf("merged center X = %v, want 2", m.Center.X)
	}
	if !scalar.EqualWithinAbs(float64(m.Mass), 2, 1e-6) {
		t.Fatalf("merged mass = %v, want 2", m.Mass)
	}
}

func TestDiskSelfMergeDoublesMass(t *testing.T) {
	a := Disk{Center: vector.Vec2{X: 1, Y: 1}, Radius: 2, Mass: 3}
	m := a.Merge(a)
	if m.Mass != 6 {
		t.Fatalf("self-merge mass = %v, want 6", m.Mass)
	}
	if m.Center != a.Center || m.Radius != a.Radius {
		t.Fatalf("self-merge should leave center/radius unchanged, got %+v", m)
	}
}

func TestNewDiskFromParticles(t *testing.T) {
	type p struct {
		xy   vector.Vec2
		mass float32
	}
	particles := []p{
		{vector.Vec2{X: -1, Y: 0}, 1},
		{vector.Vec2{X: 1, Y: 0}, 1},
	}
	d := NewDisk(particles, func(q p) vector.Vec2 { return q.xy }, func(q p) float32 { return q.mass })
	if d.Center != (vector.Vec2{}) {
		t.Fatalf("centroid of symmetric pair = %+v, want origin", d.Center)
	}
	if d.Mass != 2 {
		t.Fatalf("mass = %v, want 2", d.Mass)
	}
	if d.Radius != 1 {
		t.Fatalf("radius = %v, want 1", d.Radius)
	}
}

func TestFieldDisjointFallsOffAsInverseSquare(t *testing.T) {
	e := NewDefaultEvaluator()
	c0 := Disk{Center: vector.Vec2{}, Radius: 0.01}
	near := Disk{Center: vector.Vec2{X: 10, Y: 0}, Radius: 0.01}
	far := Disk{Center: vector.Vec2{X: 20, Y: 0}, Radius: 0.01}
	fNear := e.Field(c0, near, 1, -1)
	fFar := e.Field(c0, far, 1, -1)
	ratio := fNear.Norm() / fFar.Norm()
	if !scalar.EqualWithinAbs(float64(ratio), 4, 0.05) {
		t.Fatalf("doubling distance should quarter the field; ratio = %v, want ~4", ratio)
	}
	if fNear.Y != 0 {
		t.Fatalf("field along the X axis should have no Y component, got %v", fNear.Y)
	}
}

func TestFieldEngulfingIsZero(t *testing.T) {
	e := NewDefaultEvaluator()
	c0 := Disk{Center: vector.Vec2{X: 0.1, Y: 0}, Radius: 0.05}
	c1 := Disk{Center: vector.Vec2{}, Radius: 10}
	f := e.Field(c0, c1, 1, -1)
	if f != (vector.Vec2{}) {
		t.Fatalf("engulfing regime should return zero force, got %+v", f)
	}
}

func TestFieldIntersectingIsFiniteAndSymmetric(t *testing.T) {
	e := NewDefaultEvaluator()
	c0 := Disk{Center: vector.Vec2{X: 0.3, Y: 0}, Radius: 1}
	c1 := Disk{Center: vector.Vec2{}, Radius: 1}
	f := e.Field(c0, c1, 1, -1)
	if !f.Finite() {
		t.Fatalf("intersecting field should be finite, got %+v", f)
	}

	// By symmetry, the same overlap mirrored about the Y axis should point
	// in the opposite X direction (same samples, mirrored geometry).
	c0m := Disk{Center: vector.Vec2{X: -0.3, Y: 0}, Radius: 1}
	fm := e.Field(c0m, c1, 1, -1)
	if math.Signbit(float64(f.X)) == math.Signbit(float64(fm.X)) {
		t.Fatalf("mirrored overlap should pull in the opposite X direction: f.X=%v fm.X=%v", f.X, fm.X)
	}
}

func TestRefreshChangesSamples(t *testing.T) {
	e := NewDefaultEvaluator()
	before := append([]vector.Vec2{}, e.samples...)
	e.Refresh()
	same := true
	for i := range before {
		if before[i] != e.samples[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("expected Refresh to change the Monte Carlo sample set")
	}
}

func TestIntersectsRect(t *testing.T) {
	d := Disk{Center: vector.Vec2{X: 5, Y: 5}, Radius: 1}
	if !d.IntersectsRect(0, 0, 4.5, 10) {
		t.Fatal("disk overlapping rectangle edge should intersect")
	}
	if d.IntersectsRect(0, 0, 3, 3) {
		t.Fatal("disk far from rectangle should not intersect")
	}
}
