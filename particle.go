// Package grass implements a 2D gravitational N-body simulation core: a
// Barnes–Hut hierarchical approximation tree built from a Morton (Z-order)
// space-filling curve, the gravity evaluator that queries it, and the
// symplectic integrators that advance particle state under the resulting
// forces.
package grass

import (
	"grass/gravity"
	"grass/morton"
	"grass/vector"
)

// Particle is a kinematic record: position, velocity, mass, and radius
// (interpreted as a uniform-density disk), plus a Morton key cached and
// refreshed once per simulation step (see Table.Step).
type Particle struct {
	Position, Velocity vector.Vec2
	Mass, Radius       float32

	key    morton.Key
	hasKey bool
}

// NewParticle constructs a particle, panicking if the kinematic state isn't
// finite or the mass/radius aren't positive — spec.md §7's "invalid input"
// errors are rejected at construction.
func NewParticle(position, velocity vector.Vec2, mass, radius float32) Particle {
	if !position.Finite() || !velocity.Finite() {
		panic("grass: particle position and velocity must be finite")
	}
	if mass <= 0 {
		panic("grass: particle mass must be positive")
	}
	if radius <= 0 {
		panic("grass: particle radius must be positive")
	}
	p := Particle{Position: position, Velocity: velocity, Mass: mass, Radius: radius}
	p.refreshKey()
	return p
}

// refreshKey recomputes the particle's cached Morton key from its current
// position. The cache is a pure function of position; Table.Step refreshes
// it at the top of every step rather than invalidating it lazily, matching
// spec.md §9's note that recomputing at the top of the step is "simple and
// cache-friendly."
func (p *Particle) refreshKey() {
	k := morton.EncodeAt(p.Position.X, p.Position.Y, morton.DefaultPrecision)
	p.key, p.hasKey = k, morton.HasKey(k)
}

// Healthy reports whether the particle's kinematic state is finite.
func (p *Particle) Healthy() bool {
	return p.Position.Finite() && p.Velocity.Finite()
}

// Disk returns the circular footprint the graphics collaborator would draw
// for this particle.
func (p *Particle) Disk() (center vector.Vec2, radius float32) {
	return p.Position, p.Radius
}

// IntersectsRect reports whether the particle's footprint overlaps the
// axis-aligned rectangle with the given corners, for a graphics collaborator
// deciding what to draw without reaching into the gravity package directly.
func (p *Particle) IntersectsRect(minX, minY, maxX, maxY float32) bool {
	d := gravity.Disk{Center: p.Position, Radius: p.Radius}
	return d.IntersectsRect(minX, minY, maxX, maxY)
}
