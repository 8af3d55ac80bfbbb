package systems

import (
	"math"

	"github.com/pthm-cable/pour/components"
)

// ComputeDensity accumulates density and near-density for every particle from its
// neighbours, then derives pressure and near-pressure.
//
// Kernel: ratio = 1 - dist/h. Density uses ratio^2, near-density the steeper ratio^3,
// which is what keeps particles from clumping at short range.
// Pressure is clamped at zero so under-dense regions never attract.
func ComputeDensity(particles []components.Particle, grid *FluidGrid, p *Params) {
	for i := range particles {
		particles[i].Density = 0
		particles[i].DensityNear = 0
	}

	h := p.H
	hSq := h * h
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
		ratio := 1 - dist/h
		ratio2 := ratio * ratio
		ratio3 := ratio2 * ratio

		a.Density += ratio2
		b.Density += ratio2
		a.DensityNear += ratio3
		b.DensityNear += ratio3
	})

	for i := range particles {
		q := &particles[i]
		q.Pressure = max(0, (q.Density-p.RestDensity)*p.PressureK)
		q.PressureNear = q.DensityNear * p.NearPressureK
	}
}
