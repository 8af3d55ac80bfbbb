package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pour/components"
	"github.com/pthm-cable/pour/config"
	"github.com/pthm-cable/pour/inspector"
	"github.com/pthm-cable/pour/renderer"
	"github.com/pthm-cable/pour/server"
	"github.com/pthm-cable/pour/systems"
	"github.com/pthm-cable/pour/telemetry"
	"github.com/pthm-cable/pour/ui"
)

// Background base colour behind the cup.
const bgR, bgG, bgB = 24, 28, 36

// Options configures game behavior.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	Headless       bool
	StepsPerUpdate int
	AutoPour       bool    // Open the nozzle as soon as the game starts
	TiltAngle      float64 // Non-zero enables tilt with this target angle (degrees)
}

// Publisher receives a frame after every simulation step.
type Publisher interface {
	Publish(f *server.Frame) (bool, error)
}

// Game holds the complete game state.
type Game struct {
	cfg     *config.Config
	sim     *systems.Simulation
	nozzles *NozzleRack
	tilt    *Tilt

	// Rendering (nil in headless mode)
	background *renderer.BackgroundRenderer
	fluid      *renderer.FluidRenderer
	glass      *renderer.CupRenderer
	stream     *renderer.StreamRenderer
	controls   *ui.ControlBar
	hud        *ui.HUD
	perfPanel  *ui.PerfPanel
	overlays   *ui.OverlayRegistry
	inspector  *inspector.Inspector
	passes     *systems.PassRegistry
	renderPerf *PerfStats

	// Telemetry
	perfCollector *telemetry.PerfCollector
	collector     *telemetry.Collector
	outputManager *telemetry.OutputManager
	statsCallback func(telemetry.WindowStats)
	logStats      bool
	pendingClear  int
	lastFill      float32

	publisher Publisher
	frame     server.Frame
	views     []components.ParticleView

	// State
	tick           int32
	paused         bool
	headless       bool
	stepsPerUpdate int
	fixedDT        float32

	screenWidth, screenHeight float32
}

// NewGameWithOptions creates a game. Graphics resources are only created when
// not headless, and must then be created after the raylib window.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	stepsPerUpdate := opts.StepsPerUpdate
	if stepsPerUpdate < 1 {
		stepsPerUpdate = 1
	}
	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	g := &Game{
		cfg:            cfg,
		tilt:           NewTilt(cfg.Tilt, float32(cfg.Fluid.Gravity)),
		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		collector:      telemetry.NewCollector(statsWindow, cfg.Derived.MaxFrameDT32),
		logStats:       opts.LogStats,
		headless:       opts.Headless,
		stepsPerUpdate: stepsPerUpdate,
		fixedDT:        cfg.Derived.MaxFrameDT32,
		screenWidth:    cfg.Derived.ScreenW32,
		screenHeight:   cfg.Derived.ScreenH32,
	}

	nozzles, err := NewNozzleRack(cfg.Pour.Nozzles)
	if err != nil {
		return nil, err
	}
	g.nozzles = nozzles

	cup := components.NewCup(g.screenWidth, g.screenHeight, cfg.Cup)
	params := systems.ParamsFromConfig(cfg)
	first, _ := nozzles.At(0)
	g.sim = systems.NewSimulation(params, cup, g.screenWidth, g.screenHeight, opts.Seed, first.Color)
	g.sim.SetPhaseRecorder(g.perfCollector)
	g.layoutNozzles()

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			return nil, err
		}
		if err := om.WriteConfig(cfg); err != nil {
			om.Close()
			return nil, err
		}
		g.outputManager = om
	}

	if opts.TiltAngle != 0 {
		g.tilt.Enable()
		g.tilt.SetTarget(float32(opts.TiltAngle))
	}
	if opts.AutoPour {
		g.startPour()
	}

	if !opts.Headless {
		w, h := int32(g.screenWidth), int32(g.screenHeight)
		g.background = renderer.NewBackgroundRenderer(w, h, bgR, bgG, bgB)
		g.fluid = renderer.NewFluidRenderer(w, h)
		g.glass = renderer.NewCupRenderer()
		g.stream = renderer.NewStreamRenderer()
		g.controls = ui.NewControlBar(w, h)
		g.hud = ui.NewHUD()
		g.perfPanel = ui.NewPerfPanel(10, 110)
		g.overlays = ui.NewOverlayRegistry()
		g.inspector = inspector.NewInspector(w, h)
		g.inspector.SetScales(inspector.FluidScales(params.RestDensity, params.PressureK, params.NearPressureK))
		g.passes = systems.NewPassRegistry()
		g.renderPerf = NewPerfStats()
	}

	slog.Info("game created",
		"seed", opts.Seed,
		"width", g.screenWidth,
		"height", g.screenHeight,
		"nozzles", nozzles.Len(),
		"target_particles", params.TargetParticles,
	)
	return g, nil
}

// SetStatsCallback installs a callback invoked with every flushed stats window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// SetPublisher installs a frame publisher, e.g. a websocket hub.
func (g *Game) SetPublisher(p Publisher) {
	g.publisher = p
}

// Simulation exposes the underlying simulation.
func (g *Game) Simulation() *systems.Simulation { return g.sim }

// Tick returns the number of simulation steps taken.
func (g *Game) Tick() int32 { return g.tick }

// Update runs one graphical frame: input, then StepsPerUpdate simulation steps
// using the measured frame time.
func (g *Game) Update() {
	g.perfCollector.RecordFrame()
	g.handleInput()
	if g.paused {
		return
	}
	dt := rl.GetFrameTime()
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step(dt)
	}
	g.trackSelection()
}

// UpdateHeadless runs StepsPerUpdate fixed-length steps without touching raylib.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step(g.fixedDT)
	}
}

// step advances the simulation one frame and feeds telemetry.
func (g *Game) step(dt float32) {
	g.perfCollector.StartTick()

	g.tilt.Sample()
	stats := g.sim.Step(dt, g.tilt.Gravity())
	g.tick++

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.collector.RecordFrame(telemetry.FrameEvents{
		Spawned:        stats.Spawned,
		CapReached:     stats.CapReached,
		Culled:         stats.Culled,
		Cleared:        g.pendingClear,
		RelaxPairs:     stats.RelaxPairs,
		MinSepEnforced: stats.MinSepEnforced,
		MouthSkipped:   stats.MouthSkipped,
		WallContacts:   stats.WallContacts,
		MaxCorrection:  stats.MaxCorrection,
	})
	g.pendingClear = 0

	if stats.CapReached {
		slog.Info("pour stopped at cap", "tick", g.tick, "particles", stats.Particles)
	}

	g.flushTelemetry()
	g.publishFrame()

	g.perfCollector.EndTick()
}

// publishFrame hands the current particle state to the publisher.
func (g *Game) publishFrame() {
	if g.publisher == nil {
		return
	}
	w, h := g.sim.Size()
	g.views = g.sim.Snapshot(g.views)
	g.frame = server.Frame{
		Tick:      g.tick,
		Width:     w,
		Height:    h,
		Pouring:   g.sim.Pouring(),
		StreamX:   g.sim.StreamX(),
		Cup:       *g.sim.Cup(),
		Particles: g.views,
	}
	if _, err := g.publisher.Publish(&g.frame); err != nil {
		slog.Error("failed to publish frame", "error", err)
	}
}

// layoutNozzles places the nozzles over the current cup and moves the pour to the
// active one.
func (g *Game) layoutNozzles() {
	g.nozzles.Layout(*g.sim.Cup(), g.sim.Params().NozzleHeight)
	g.applyActiveNozzle()
}

func (g *Game) applyActiveNozzle() {
	noz, pos := g.nozzles.Active()
	g.sim.SetColor(noz.Color)
	g.sim.SetNozzle(pos)
}

// SelectNozzle makes nozzle i active: its colour and position apply to new particles.
func (g *Game) SelectNozzle(i int) bool {
	if !g.nozzles.Select(i) {
		return false
	}
	g.applyActiveNozzle()
	noz, _ := g.nozzles.Active()
	slog.Info("nozzle selected", "index", i, "name", noz.Name, "color", noz.Color.Hex())
	return true
}

func (g *Game) startPour() {
	cleared := g.sim.StartPour()
	g.pendingClear += cleared
	slog.Info("pour started", "tick", g.tick, "cleared", cleared, "stream_x", g.sim.StreamX())
}

// TogglePour starts or stops the pour. Stopping clears the airborne stream.
func (g *Game) TogglePour() bool {
	if g.sim.Pouring() {
		cleared := g.sim.StopPour(true)
		g.pendingClear += cleared
		slog.Info("pour stopped", "tick", g.tick, "cleared", cleared)
		return false
	}
	g.startPour()
	return true
}

// ToggleTilt switches gravity between straight down and the tilt source.
func (g *Game) ToggleTilt() bool {
	on := g.tilt.Toggle()
	slog.Info("tilt toggled", "enabled", on)
	return on
}

// NudgeTilt moves the tilt target as a held key would for one frame.
func (g *Game) NudgeTilt(dir float32) {
	if g.tilt.Enabled() {
		g.tilt.Nudge(dir, g.fixedDT)
	}
}

// Reset removes all particles, stops pouring without clearing and levels the tilt.
func (g *Game) Reset() {
	g.sim.Reset()
	g.tilt.Disable()
	if g.inspector != nil {
		g.inspector.Deselect()
	}
	slog.Info("reset", "tick", g.tick)
}

// Resize rebuilds the cup for a new viewport and re-lays out the nozzles.
func (g *Game) Resize(w, h float32) {
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h
	g.sim.Resize(w, h, components.NewCup(w, h, g.cfg.Cup))
	g.layoutNozzles()

	if g.background != nil {
		g.background.Resize(w, h)
	}
	if g.fluid != nil {
		g.fluid.Resize(int32(w), int32(h))
	}
	if g.controls != nil {
		g.controls.Resize(w, h)
	}
	if g.inspector != nil {
		g.inspector.Resize(int32(w), int32(h))
	}
	slog.Info("resized", "width", w, "height", h)
}

// Unload releases graphics resources and closes output files.
func (g *Game) Unload() {
	if g.background != nil {
		g.background.Unload()
	}
	if g.fluid != nil {
		g.fluid.Unload()
	}
	if g.outputManager != nil {
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
		g.outputManager = nil
	}
}
