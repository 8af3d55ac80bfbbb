package ui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestOverlayRegistry(t *testing.T) {
	reg := NewOverlayRegistry()

	if len(reg.EnabledOverlays()) != 0 {
		t.Fatal("overlays enabled by default")
	}

	if !reg.Toggle(OverlayGrid) || !reg.IsEnabled(OverlayGrid) {
		t.Error("grid not enabled after toggle")
	}
	if reg.Toggle(OverlayGrid) {
		t.Error("second toggle left grid enabled")
	}

	// Density excludes raw particles
	reg.SetEnabled(OverlayRawParticles, true)
	reg.Toggle(OverlayDensity)
	if reg.IsEnabled(OverlayRawParticles) {
		t.Error("density did not disable raw particles")
	}

	if reg.Toggle("missing") {
		t.Error("unknown overlay toggled on")
	}
}

func TestOverlayHandleKeyPress(t *testing.T) {
	tests := []struct {
		key     int32
		want    OverlayID
		matched bool
	}{
		{rl.KeyG, OverlayGrid, true},
		{rl.KeyV, OverlayVelocity, true},
		{rl.KeyB, OverlayBounds, true},
		{rl.KeyZ, "", false},
	}

	for _, tt := range tests {
		reg := NewOverlayRegistry()
		id, on, ok := reg.HandleKeyPress(tt.key)
		if ok != tt.matched || id != tt.want {
			t.Errorf("key %d: got (%q, %v), want (%q, %v)", tt.key, id, ok, tt.want, tt.matched)
		}
		if ok && !on {
			t.Errorf("key %d: overlay not enabled", tt.key)
		}
	}
}

func TestLayoutControls(t *testing.T) {
	tests := []struct {
		name          string
		width, height float32
		swatches      int
	}{
		{"phone portrait", 480, 900, 4},
		{"narrow", 300, 600, 4},
		{"single nozzle", 1280, 720, 1},
		{"no nozzles", 480, 900, 0},
	}

	inside := func(r rl.Rectangle, w, h float32) bool {
		return r.X >= 0 && r.Y >= 0 && r.X+r.Width <= w && r.Y+r.Height <= h
	}
	overlaps := func(a, b rl.Rectangle) bool {
		return a.X < b.X+b.Width && b.X < a.X+a.Width && a.Y < b.Y+b.Height && b.Y < a.Y+a.Height
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := LayoutControls(tt.width, tt.height, tt.swatches)

			if len(l.Swatches) != tt.swatches {
				t.Fatalf("swatches = %d, want %d", len(l.Swatches), tt.swatches)
			}

			all := append([]rl.Rectangle{l.Pour, l.Tilt, l.Reset, l.TiltSlider}, l.Swatches...)
			for i, a := range all {
				if !inside(a, tt.width, tt.height) {
					t.Errorf("control %d off screen: %+v", i, a)
				}
				for j := i + 1; j < len(all); j++ {
					if overlaps(a, all[j]) {
						t.Errorf("controls %d and %d overlap", i, j)
					}
				}
			}
		})
	}
}

func TestControlLayoutContains(t *testing.T) {
	l := LayoutControls(480, 900, 4)

	centre := func(r rl.Rectangle) (float32, float32) { return r.X + r.Width/2, r.Y + r.Height/2 }
	for i, r := range append([]rl.Rectangle{l.Pour, l.Reset, l.TiltSlider}, l.Swatches...) {
		x, y := centre(r)
		if !l.Contains(x, y) {
			t.Errorf("control %d centre (%v, %v) not contained", i, x, y)
		}
	}
	if l.Contains(240, 300) {
		t.Error("cup area reported as a control")
	}
}
