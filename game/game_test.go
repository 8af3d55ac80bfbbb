package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/pour/config"
	"github.com/pthm-cable/pour/server"
	"github.com/pthm-cable/pour/telemetry"
)

func TestMain(m *testing.M) {
	config.MustInit("")
	os.Exit(m.Run())
}

func newHeadlessGame(t *testing.T, opts Options) *Game {
	t.Helper()
	opts.Headless = true
	if opts.Seed == 0 {
		opts.Seed = 7
	}
	g, err := NewGameWithOptions(opts)
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}
	t.Cleanup(g.Unload)
	return g
}

type recordingPublisher struct {
	frames []server.Frame
}

func (r *recordingPublisher) Publish(f *server.Frame) (bool, error) {
	cp := *f
	cp.Particles = append(cp.Particles[:0:0], f.Particles...)
	r.frames = append(r.frames, cp)
	return true, nil
}

func TestHeadlessAutoPour(t *testing.T) {
	g := newHeadlessGame(t, Options{AutoPour: true})

	for i := 0; i < 60; i++ {
		g.UpdateHeadless()
	}
	if g.Tick() != 60 {
		t.Errorf("tick = %d, want 60", g.Tick())
	}
	if n := g.Simulation().Count(); n < 20 {
		t.Errorf("count = %d after one second of pouring", n)
	}
	if !g.Simulation().Pouring() {
		t.Error("pour stopped early")
	}
}

func TestStepsPerUpdate(t *testing.T) {
	g := newHeadlessGame(t, Options{StepsPerUpdate: 4})
	g.UpdateHeadless()
	if g.Tick() != 4 {
		t.Errorf("tick = %d, want 4", g.Tick())
	}
}

func TestStatsCallback(t *testing.T) {
	g := newHeadlessGame(t, Options{AutoPour: true, StatsWindowSec: 0.5})

	var windows []telemetry.WindowStats
	g.SetStatsCallback(func(s telemetry.WindowStats) { windows = append(windows, s) })

	for i := 0; i < 90; i++ {
		g.UpdateHeadless()
	}
	if len(windows) != 3 {
		t.Fatalf("windows = %d, want 3", len(windows))
	}
	total := 0
	for _, w := range windows {
		total += w.Spawned
	}
	if total != g.Simulation().Count() {
		t.Errorf("spawned across windows = %d, particles = %d", total, g.Simulation().Count())
	}
	if windows[2].WindowEndTick != 90 {
		t.Errorf("last window end = %d, want 90", windows[2].WindowEndTick)
	}
}

func TestSelectNozzle(t *testing.T) {
	g := newHeadlessGame(t, Options{})

	if !g.SelectNozzle(1) {
		t.Fatal("SelectNozzle(1) failed")
	}
	noz, tip := g.nozzles.Active()
	if g.Simulation().Color() != noz.Color {
		t.Errorf("pour colour = %v, want %v", g.Simulation().Color(), noz.Color)
	}
	if g.Simulation().Nozzle() != tip {
		t.Errorf("pour nozzle = %+v, want %+v", g.Simulation().Nozzle(), tip)
	}
	if g.SelectNozzle(99) {
		t.Error("out-of-range nozzle selected")
	}
}

func TestTogglePourAndReset(t *testing.T) {
	g := newHeadlessGame(t, Options{})

	if !g.TogglePour() {
		t.Fatal("toggle did not start pouring")
	}
	for i := 0; i < 30; i++ {
		g.UpdateHeadless()
	}
	if g.TogglePour() {
		t.Fatal("toggle did not stop pouring")
	}

	g.ToggleTilt()
	g.Reset()
	if g.Simulation().Count() != 0 || g.Simulation().Pouring() || g.tilt.Enabled() {
		t.Errorf("after reset: count=%d pouring=%v tilt=%v",
			g.Simulation().Count(), g.Simulation().Pouring(), g.tilt.Enabled())
	}
}

func TestTiltOption(t *testing.T) {
	g := newHeadlessGame(t, Options{TiltAngle: 20})
	if !g.tilt.Enabled() {
		t.Fatal("tilt option did not enable tilt")
	}
	g.UpdateHeadless()
	if g.tilt.Gravity().X <= 0 {
		t.Errorf("gravity x = %v, want positive for a positive tilt", g.tilt.Gravity().X)
	}
}

func TestResizeRelaysNozzles(t *testing.T) {
	g := newHeadlessGame(t, Options{})
	before := g.Simulation().Nozzle()

	g.Resize(800, 1000)
	w, h := g.Simulation().Size()
	if w != 800 || h != 1000 {
		t.Errorf("size = %vx%v", w, h)
	}
	after := g.Simulation().Nozzle()
	if after == before {
		t.Error("nozzle not moved on resize")
	}
	if _, tip := g.nozzles.Active(); tip != after {
		t.Errorf("simulation nozzle %+v differs from active nozzle %+v", after, tip)
	}
}

func TestPublishFrames(t *testing.T) {
	g := newHeadlessGame(t, Options{AutoPour: true})
	pub := &recordingPublisher{}
	g.SetPublisher(pub)

	for i := 0; i < 10; i++ {
		g.UpdateHeadless()
	}
	if len(pub.frames) != 10 {
		t.Fatalf("frames = %d, want 10", len(pub.frames))
	}
	last := pub.frames[9]
	if last.Tick != 10 || !last.Pouring || len(last.Particles) != g.Simulation().Count() {
		t.Errorf("last frame tick=%d pouring=%v particles=%d", last.Tick, last.Pouring, len(last.Particles))
	}
}

func TestOutputDir(t *testing.T) {
	dir := t.TempDir()
	g := newHeadlessGame(t, Options{AutoPour: true, OutputDir: dir, StatsWindowSec: 0.25})
	for i := 0; i < 30; i++ {
		g.UpdateHeadless()
	}
	g.Unload()

	for _, name := range []string{"config.yaml", "telemetry.csv", "perf.csv"} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}
