// Package gravity evaluates Newtonian gravitational acceleration between
// disk-shaped mass distributions, falling back to Monte Carlo quadrature
// when two disks overlap, per original_source/dyn/newton.h.
package gravity

import "grass/vector"

// Disk is a uniform-density circular mass distribution: a disk summary, in
// spec.md §3's terminology. It doubles as both a per-particle representation
// (center = position, radius = particle radius) and a Barnes–Hut node's
// aggregate summary (center = mass-weighted centroid, radius = bounding
// radius, mass = total descendant mass).
type Disk struct {
	Center vector.Vec2
	Radius float32
	Mass   float32
}

// NewDisk constructs the disk summary of a non-empty, contiguous run of
// particles. pos and mass extract the relevant fields; the centroid is
// accumulated in double precision to protect against dynamic-range loss at
// large coordinates before being cast back to single, per spec.md §4.5.
func NewDisk[P any](particles []P, pos func(P) vector.Vec2, mass func(P) float32) Disk {
	if len(particles) == 0 {
		panic("gravity: NewDisk requires a non-empty particle range")
	}
	var mx, my, m float64
	for _, p := range particles {
		xy := pos(p)
		pm := float64(mass(p))
		mx += pm * float64(xy.X)
		my += pm * float64(xy.Y)
		m += pm
	}
	center := vector.Vec2{X: float32(mx / m), Y: float32(my / m)}
	var radius float32
	for _, p := range particles {
		if d := vector.Dist(pos(p), center); d > radius {
			radius = d
		}
	}
	return Disk{Center: center, Radius: radius, Mass: float32(m)}
}

// Merge combines d and o into the disk summary of their union, implementing
// spec.md §4.5's binary merge operator. It is safe to call with o aliasing d
// (self-merge), which doubles the mass and leaves the center and radius
// unchanged.
func (d Disk) Merge(o Disk) Disk {
	if d == o {
		return Disk{Center: d.Center, Radius: d.Radius, Mass: d.Mass * 2}
	}
	sum := d.Mass + o.Mass
	center := d.Center.Scale(d.Mass / sum).Add(o.Center.Scale(o.Mass / sum))
	radius := d.Radius
	if r := o.Radius + vector.Dist(o.Center, center); r > radius {
		radius = r
	}
	return Disk{Center: center, Radius: radius, Mass: sum}
}

// IntersectsRect reports whether d intersects the axis-aligned rectangle
// with the given corners, the one predicate spec.md §6 requires the core to
// expose to a graphics collaborator deciding what to draw.
func (d Disk) IntersectsRect(minX, minY, maxX, maxY float32) bool {
	cx := clamp(d.Center.X, minX, maxX)
	cy := clamp(d.Center.Y, minY, maxY)
	return vector.Dist(d.Center, vector.Vec2{X: cx, Y: cy}) <= d.Radius
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
