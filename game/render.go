package game

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pour/ui"
)

// hudFillInterval is how often, in ticks, the HUD re-measures the fill level.
const hudFillInterval = 30

// Draw renders the game state.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	start := time.Now()
	g.background.Draw(g.sim.Pourer().SimTime())
	g.renderPerf.Record("background", time.Since(start))

	start = time.Now()
	g.views = g.sim.Snapshot(g.views)
	switch {
	case g.overlays.IsEnabled(ui.OverlayDensity):
		g.drawDensityParticles()
	case g.overlays.IsEnabled(ui.OverlayRawParticles):
		g.drawRawParticles()
	default:
		g.fluid.Draw(g.views)
	}
	g.renderPerf.Record("fluid", time.Since(start))

	start = time.Now()
	g.drawStream()
	g.glass.Draw(*g.sim.Cup())
	g.renderPerf.Record("cup", time.Since(start))

	g.drawActiveOverlays()
	g.inspector.Draw(g.sim.Particles())
	g.drawUI()

	rl.EndDrawing()

	if g.logStats && g.tick > 0 && g.tick%120 == 0 {
		g.logRenderStats()
	}
}

// drawStream renders the nozzles and, while pouring below the cap, the falling stream.
func (g *Game) drawStream() {
	for i, noz := range g.nozzles.All() {
		_, tip := g.nozzles.At(i)
		g.stream.DrawNozzle(tip, noz.Color, noz.Active)
	}

	p := g.sim.Params()
	if !g.sim.Pouring() || g.sim.Count() >= p.TargetParticles {
		return
	}
	nozzle := g.sim.Nozzle()
	g.stream.DrawStream(g.sim.StreamX(), nozzle.Y+3, g.sim.Cup().TopY+14, g.sim.Color())
}

// drawUI renders the HUD and control bar and applies clicked controls.
func (g *Game) drawUI() {
	if g.tick%hudFillInterval == 0 {
		g.lastFill = float32(g.sim.MeasureFluid().FillLevel)
	}

	g.hud.Draw(ui.HUDData{
		Particles: g.sim.Count(),
		Target:    g.sim.Params().TargetParticles,
		FillLevel: g.lastFill,
		Tick:      g.tick,
		Speed:     g.stepsPerUpdate,
		FPS:       rl.GetFPS(),
		Paused:    g.paused,
		TiltOn:    g.tilt.Enabled(),
		TiltAngle: g.tilt.Angle(),
	})

	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.perfPanel.Draw(g.perfCollector.Stats(), g.passes)
	}

	nozzles := g.nozzles.All()
	swatches := make([]ui.Swatch, len(nozzles))
	for i, n := range nozzles {
		swatches[i] = ui.Swatch{
			Name:   n.Name,
			Color:  rl.Color{R: n.Color.R, G: n.Color.G, B: n.Color.B, A: 255},
			Active: n.Active,
		}
	}
	g.applyActions(g.controls.Draw(ui.ControlState{
		Pouring:    g.sim.Pouring(),
		TiltOn:     g.tilt.Enabled(),
		TiltTarget: g.tilt.target,
		MaxTilt:    g.tilt.maxAngle,
		Swatches:   swatches,
	}))
}
