package systems

import "github.com/pthm-cable/pour/components"

// ResolveCup keeps a particle inside the container cavity.
//
// The floor always collides. Side walls only collide below the rim band
// (cup.TopY + RimHeight*SideWallRimFactor) so the incoming stream can pass through
// the mouth without striking a wall that is not drawn there.
// Returns true if any clamp was applied.
func ResolveCup(q *components.Particle, cup *components.Cup, p *Params) bool {
	hit := false

	floorY := cup.FloorY(p.FloorInset)
	if q.Y+q.R > floorY {
		q.Y = floorY - q.R
		if q.VY > 0 {
			q.VY = 0
		}
		q.VX *= 1 - p.BoundaryFriction
		hit = true
	}

	if q.Y <= cup.SideWallStartY(p.SideWallRimFactor) {
		return hit
	}

	half := cup.InnerHalfAt(q.Y, p.InnerTaper)
	left := cup.CenterX - half
	right := cup.CenterX + half
	sideFriction := 1 - p.BoundaryFriction*p.SideFrictionFactor

	if q.X-q.R < left {
		q.X = left + q.R
		if q.VX < 0 {
			q.VX = 0
		}
		q.VY *= sideFriction
		hit = true
	}
	if q.X+q.R > right {
		q.X = right - q.R
		if q.VX > 0 {
			q.VX = 0
		}
		q.VY *= sideFriction
		hit = true
	}

	return hit
}

// ResolveAll applies ResolveCup to every particle and returns the number of contacts.
func ResolveAll(particles []components.Particle, cup *components.Cup, p *Params) int {
	contacts := 0
	for i := range particles {
		if ResolveCup(&particles[i], cup, p) {
			contacts++
		}
	}
	return contacts
}
