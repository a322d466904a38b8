package grass

import (
	"sort"

	kitlog "github.com/go-kit/kit/log"

	"grass/gravity"
	"grass/integrator"
	"grass/kahan"
	"grass/tree"
	"grass/vector"
)

// DefaultTanAngleThreshold is tan(7°), the view-angle opening criterion
// original_source/demo/Table.h pins as tan_angle_threshold.
const DefaultTanAngleThreshold = 0.12278456

// NewStepper constructs the per-particle integrator used by Table.Step.
type NewStepper func(position, velocity vector.Vec2) integrator.Stepper

// NewYoshidaStepper builds a fourth-order Yoshida stepper.
func NewYoshidaStepper(position, velocity vector.Vec2) integrator.Stepper {
	return integrator.NewYoshida(position, velocity)
}

// NewVerletStepper builds a second-order Velocity-Verlet stepper.
func NewVerletStepper(position, velocity vector.Vec2) integrator.Stepper {
	return integrator.NewVerlet(position, velocity)
}

// Table owns the particle array, the gravity evaluator, and the tunables
// that govern a step: the universal constant G and the view-angle opening
// criterion tan_threshold. It is not itself thread-safe (spec.md §5): a
// caller must not mutate the table concurrently with Step.
type Table struct {
	// G is the universal gravitational constant. Mutate freely between steps.
	G float32
	// TanAngleThreshold is the view-angle opening criterion (spec.md §4.7).
	TanAngleThreshold float32
	// Stepper selects which symplectic integrator Step uses. Defaults to
	// Yoshida (fourth order) if nil.
	Stepper NewStepper
	// RefreshEvery controls how often (in steps) the Monte Carlo disk is
	// re-sampled; spec.md §4.9 step 6 calls this "periodically." Defaults to
	// every step if zero.
	RefreshEvery int

	particles []Particle
	gr        *gravity.Evaluator
	healthy   bool
	steps     int
	logger    kitlog.Logger
}

// NewTable returns an empty, healthy table with default tunables.
func NewTable() *Table {
	return &Table{
		G:                 1.0,
		TanAngleThreshold: DefaultTanAngleThreshold,
		gr:                gravity.NewDefaultEvaluator(),
		healthy:           true,
	}
}

// SetLogger attaches a structured logger that Step uses to report health
// transitions and disk refreshes. A nil logger (the default) disables
// logging entirely.
func (t *Table) SetLogger(logger kitlog.Logger) {
	t.logger = logger
}

// Push appends a particle to the table.
func (t *Table) Push(p Particle) {
	t.particles = append(t.particles, p)
}

// RemoveIf deletes every particle for which predicate returns true.
func (t *Table) RemoveIf(predicate func(Particle) bool) {
	kept := t.particles[:0]
	for _, p := range t.particles {
		if !predicate(p) {
			kept = append(kept, p)
		}
	}
	t.particles = kept
}

// Len returns the number of particles currently in the table.
func (t *Table) Len() int {
	return len(t.particles)
}

// Particles returns the live particle array. Callers may freely mutate
// individual particles between steps, per spec.md §6.
func (t *Table) Particles() []Particle {
	return t.particles
}

// Healthy reports whether every particle's position and velocity remained
// finite through the most recent step.
func (t *Table) Healthy() bool {
	return t.healthy
}

// RefreshDisk re-samples the gravity evaluator's Monte Carlo disk.
func (t *Table) RefreshDisk() {
	t.gr.Refresh()
	if t.logger != nil {
		t.logger.Log("event", "refresh_disk", "particles", len(t.particles))
	}
}

func particleKey(p *Particle, mask uint64) (uint64, bool) {
	return uint64(p.key) & mask, p.hasKey
}

func summarizeParticles(particles []Particle, lo, hi int) gravity.Disk {
	return gravity.NewDisk(particles[lo:hi],
		func(p Particle) vector.Vec2 { return p.Position },
		func(p Particle) float32 { return p.Mass })
}

// Step advances every particle by dt: it refreshes Morton keys, stable-sorts
// by key, builds a Barnes–Hut tree over a pre-step snapshot, integrates each
// particle against that snapshot (so accelerations never see mid-step
// positions, preserving the symmetry long-term energy conservation depends
// on), periodically refreshes the Monte Carlo disk, and finally checks that
// every particle remains finite.
func (t *Table) Step(dt float32) {
	if len(t.particles) == 0 {
		t.healthy = true
		return
	}
	if t.Stepper == nil {
		t.Stepper = NewYoshidaStepper
	}

	for i := range t.particles {
		t.particles[i].refreshKey()
	}
	sort.SliceStable(t.particles, func(i, j int) bool {
		return t.particles[i].key < t.particles[j].key
	})

	snapshot := make([]Particle, len(t.particles))
	copy(snapshot, t.particles)

	bh := tree.Build(snapshot, particleKey, summarizeParticles)

	g := t.G
	tanThreshold := t.TanAngleThreshold
	for i := range snapshot {
		p := snapshot[i]
		accel := func(xy vector.Vec2) vector.Vec2 {
			var acc kahan.Accumulator[vector.Vec2]
			bh.Traverse(func(d gravity.Disk, lo, hi int32) bool {
				if hi-lo == 1 && int(lo) == i {
					return false // self: skip without descending.
				}
				dist := vector.Dist(d.Center, xy)
				if dist < d.Radius {
					return true // inside the summary disk: descend.
				}
				if d.Radius/dist > tanThreshold {
					return true // subtends too wide an angle: descend.
				}
				cp := gravity.Disk{Center: xy, Radius: p.Radius}
				acc.Add(t.gr.Field(cp, d, g*d.Mass, dist))
				return false
			})
			return acc.Sum()
		}

		step := t.Stepper(p.Position, p.Velocity)
		step.Step(dt, accel)
		t.particles[i].Position = step.Position()
		t.particles[i].Velocity = step.Velocity()
	}

	refreshEvery := t.RefreshEvery
	if refreshEvery <= 0 {
		refreshEvery = 1
	}
	t.steps++
	if t.steps%refreshEvery == 0 {
		t.RefreshDisk()
	}

	t.checkHealth()
}

func (t *Table) checkHealth() {
	healthy := true
	for i := range t.particles {
		if !t.particles[i].Healthy() {
			healthy = false
			break
		}
	}
	wasHealthy := t.healthy
	t.healthy = healthy
	if wasHealthy && !healthy && t.logger != nil {
		t.logger.Log("event", "unhealthy", "particles", len(t.particles))
	}
}
