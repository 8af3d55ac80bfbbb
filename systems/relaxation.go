package systems

import (
	"math"

	"github.com/pthm-cable/pour/components"
)

// zeroDistNudge separates coincident particles so a normal can be computed.
const zeroDistNudge = 0.001

// RelaxStats summarises one relaxation pass.
type RelaxStats struct {
	Pairs          int     // Pairs within the interaction radius that were corrected
	MouthSkipped   int     // Pairs skipped because both were above the mouth
	MinSepEnforced int     // Pairs pushed apart by the hard separation floor
	MaxCorrection  float32 // Largest pressure displacement applied to a single particle
}

// Relax runs one double-density relaxation pass: every pair within h is pushed apart
// along its separation by a displacement proportional to their combined pressure and
// near-pressure, then a hard separation floor of MinSeparationFactor*(rp+rq) is
// enforced on the corrected distance. Both corrections are equal and opposite, so
// the pair centroid is preserved.
//
// Pairs where both particles are still above cup.TopY + MouthOffset are skipped so
// the falling stream is not pressurised before it lands.
func Relax(particles []components.Particle, grid *FluidGrid, p *Params, cup *components.Cup, dt float32) RelaxStats {
	var stats RelaxStats

	h := p.H
	mouthY := cup.MouthY(p.MouthOffset)
	dt2 := dt * dt
	stiffness := 0.5 * p.CollisionStiffness

	grid.ForEachPair(particles, func(i, j int) {
		a := &particles[i]
		b := &particles[j]
		if a.Y < mouthY && b.Y < mouthY {
			stats.MouthSkipped++
			return
		}

		dx := b.X - a.X
		dy := b.Y - a.Y
		distSq := dx*dx + dy*dy
		coincident := distSq <= 0
		if coincident {
			dx = zeroDistNudge
			dy = 0
			distSq = dx * dx
		}

		dist := float32(math.Sqrt(float64(distSq)))
		if dist >= h {
			return
		}
		stats.Pairs++

		nx := dx / dist
		ny := dy / dist
		ratio := 1 - dist/h

		d := ((a.Pressure+b.Pressure)*ratio + (a.PressureNear+b.PressureNear)*ratio*ratio) * dt2
		corr := d * stiffness

		a.X -= nx * corr
		a.Y -= ny * corr
		b.X += nx * corr
		b.Y += ny * corr
		stats.MaxCorrection = max(stats.MaxCorrection, corr)

		// Both moved along the normal, so the corrected separation is the true
		// separation plus 2*corr. The nudge only supplies a direction.
		actual := dist
		if coincident {
			actual = 0
		}
		minDist := (a.R + b.R) * p.MinSeparationFactor
		if corrected := actual + 2*corr; corrected < minDist {
			overlap := (minDist - corrected) * 0.5
			a.X -= nx * overlap
			a.Y -= ny * overlap
			b.X += nx * overlap
			b.Y += ny * overlap
			stats.MinSepEnforced++
		}
	})

	return stats
}
