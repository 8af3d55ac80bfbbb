package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pour/systems"
	"github.com/pthm-cable/pour/ui"
)

// handleOverlayKeys checks for overlay toggle key presses.
func (g *Game) handleOverlayKeys() {
	for _, desc := range g.overlays.All() {
		if desc.Key != 0 && rl.IsKeyPressed(desc.Key) {
			g.overlays.Toggle(desc.ID)
		}
	}
}

// drawActiveOverlays renders the enabled line overlays. Particle overlays are
// handled in Draw since they replace the blob pass.
func (g *Game) drawActiveOverlays() {
	for _, id := range g.overlays.EnabledOverlays() {
		switch id {
		case ui.OverlayGrid:
			g.drawGridOverlay()
		case ui.OverlayVelocity:
			g.drawVelocityOverlay()
		case ui.OverlayBounds:
			g.drawBoundsOverlay()
		}
	}
}

// drawRawParticles draws each particle as a plain disc in its own colour.
func (g *Game) drawRawParticles() {
	for _, v := range g.views {
		rl.DrawCircleV(rl.Vector2{X: v.X, Y: v.Y}, v.R, rl.Color{R: v.Color.R, G: v.Color.G, B: v.Color.B, A: 200})
	}
}

// drawDensityParticles shades particles from blue (at or below rest density) to red
// (twice rest density).
func (g *Game) drawDensityParticles() {
	rest := g.sim.Params().RestDensity
	for _, q := range g.sim.Particles() {
		t := float32(0)
		if rest > 0 {
			t = max(0, min(1, (q.Density-rest)/rest))
		}
		c := rl.Color{R: uint8(60 + 195*t), G: 90, B: uint8(230 - 190*t), A: 220}
		rl.DrawCircleV(rl.Vector2{X: q.X, Y: q.Y}, q.R, c)
	}
}

// drawGridOverlay outlines every occupied neighbour cell.
func (g *Game) drawGridOverlay() {
	grid := g.sim.Solver().Grid()
	size := grid.CellSize()
	seen := make(map[int64]bool)
	for _, q := range g.sim.Particles() {
		cx, cy := grid.CellOf(q.X, q.Y)
		key := systems.CellKey(cx, cy)
		if seen[key] {
			continue
		}
		seen[key] = true
		rl.DrawRectangleLines(int32(float32(cx)*size), int32(float32(cy)*size), int32(size), int32(size), rl.Fade(rl.SkyBlue, 0.5))
	}
}

// drawVelocityOverlay draws a short line along each particle's velocity.
func (g *Game) drawVelocityOverlay() {
	const scale = 0.05
	for _, q := range g.sim.Particles() {
		from := rl.Vector2{X: q.X, Y: q.Y}
		to := rl.Vector2{X: q.X + q.VX*scale, Y: q.Y + q.VY*scale}
		rl.DrawLineV(from, to, rl.Yellow)
	}
}

// drawBoundsOverlay shows the collision floor, the side walls below the rim band
// and the mouth clear zone around the stream.
func (g *Game) drawBoundsOverlay() {
	cup := g.sim.Cup()
	p := g.sim.Params()

	floor := cup.FloorY(p.FloorInset)
	top := cup.SideWallStartY(p.SideWallRimFactor)
	halfTop := cup.InnerHalfAt(top, p.InnerTaper)
	halfFloor := cup.InnerHalfAt(floor, p.InnerTaper)

	wall := rl.Fade(rl.Green, 0.8)
	rl.DrawLineV(rl.Vector2{X: cup.CenterX - halfFloor, Y: floor}, rl.Vector2{X: cup.CenterX + halfFloor, Y: floor}, wall)
	rl.DrawLineV(rl.Vector2{X: cup.CenterX - halfTop, Y: top}, rl.Vector2{X: cup.CenterX - halfFloor, Y: floor}, wall)
	rl.DrawLineV(rl.Vector2{X: cup.CenterX + halfTop, Y: top}, rl.Vector2{X: cup.CenterX + halfFloor, Y: floor}, wall)

	sx := g.sim.StreamX()
	rl.DrawRectangleLines(
		int32(sx-p.MouthClearHalfWidth), 0,
		int32(2*p.MouthClearHalfWidth), int32(cup.TopY+p.MouthClearDepth),
		rl.Fade(rl.Red, 0.6),
	)
	mouth := cup.TopY + p.MouthOffset
	rl.DrawLineV(rl.Vector2{X: cup.CenterX - cup.TopHalfOuter, Y: mouth}, rl.Vector2{X: cup.CenterX + cup.TopHalfOuter, Y: mouth}, rl.Fade(rl.Orange, 0.7))
}
