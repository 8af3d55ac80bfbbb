package systems

import (
	"math"

	"github.com/pthm-cable/pour/components"
)

// ApplyViscosity exchanges velocity between neighbours within h.
//
// Approaching pairs (relative normal velocity <= 0) get a symmetric drag impulse that
// damps the approach and never separates them. Every pair in range also gets a small
// cohesion impulse cohesionK*ratio^2 pulling it together, regardless of direction,
// which binds loose particles into blobs instead of letting them disperse.
func ApplyViscosity(particles []components.Particle, grid *FluidGrid, p *Params) {
	h := p.H
	hSq := h * h
	visc := p.Viscosity * 0.5

	grid.ForEachPair(particles, func(i, j int) {
		a := &particles[i]
		b := &particles[j]
		dx := b.X - a.X
		dy := b.Y - a.Y
		distSq := dx*dx + dy*dy
		if distSq <= 0 || distSq >= hSq {
			return
		}

		dist := float32(math.Sqrt(float64(distSq)))
		nx := dx / dist
		ny := dy / dist
		ratio := 1 - dist/h

		rel := (b.VX-a.VX)*nx + (b.VY-a.VY)*ny
		if rel <= 0 {
			impulse := rel * ratio * visc
			a.VX += nx * impulse
			a.VY += ny * impulse
			b.VX -= nx * impulse
			b.VY -= ny * impulse
		}

		coh := p.CohesionK * ratio * ratio
		a.VX += nx * coh
		a.VY += ny * coh
		b.VX -= nx * coh
		b.VY -= ny * coh
	})
}
