package renderer

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pour/components"
)

// Blob look constants.
const (
	blobScale     = 1.5  // Drawn radius as a multiple of the particle radius
	blobThreshold = 0.55 // Field alpha at the fluid surface
)

// ColorGroup is the set of particles sharing one colour.
type ColorGroup struct {
	Color components.Color
	Items []components.ParticleView
}

// GroupByColor partitions views by colour, in order of first appearance.
// The groups slice is reused; its item slices are truncated, not freed.
func GroupByColor(views []components.ParticleView, groups []ColorGroup) []ColorGroup {
	for i := range groups {
		groups[i].Items = groups[i].Items[:0]
	}
	n := 0
	for _, v := range views {
		idx := -1
		for i := 0; i < n; i++ {
			if groups[i].Color == v.Color {
				idx = i
				break
			}
		}
		if idx < 0 {
			if n == len(groups) {
				groups = append(groups, ColorGroup{})
			}
			groups[n].Color = v.Color
			idx = n
			n++
		}
		groups[idx].Items = append(groups[idx].Items, v)
	}
	return groups[:n]
}

// FluidRenderer draws each colour group as one merged blob. Particles are splatted
// as soft discs into an offscreen field, then a threshold shader turns the field
// into a tinted surface.
type FluidRenderer struct {
	shader       rl.Shader
	tintLoc      int32
	thresholdLoc int32
	field        rl.RenderTexture2D

	groups []ColorGroup

	screenW, screenH int32
	initialized      bool
	fallback         bool
}

// NewFluidRenderer creates a fluid renderer for the given screen size.
func NewFluidRenderer(screenW, screenH int32) *FluidRenderer {
	return &FluidRenderer{screenW: screenW, screenH: screenH}
}

// Init initializes the renderer (must be called after raylib window is created).
func (f *FluidRenderer) Init() {
	if f.initialized {
		return
	}
	f.initialized = true

	shader, err := loadFragmentShader("blob.fs")
	if err != nil {
		slog.Error("blob shader unavailable, drawing plain discs", "error", err)
		f.fallback = true
		return
	}
	f.shader = shader
	f.tintLoc = rl.GetShaderLocation(f.shader, "tint")
	f.thresholdLoc = rl.GetShaderLocation(f.shader, "threshold")
	rl.SetShaderValue(f.shader, f.thresholdLoc, []float32{blobThreshold}, rl.ShaderUniformFloat)

	f.field = rl.LoadRenderTexture(f.screenW, f.screenH)
}

// Resize recreates the offscreen field for a new screen size.
func (f *FluidRenderer) Resize(w, h int32) {
	if w == f.screenW && h == f.screenH {
		return
	}
	f.screenW = w
	f.screenH = h
	if f.initialized && !f.fallback {
		rl.UnloadRenderTexture(f.field)
		f.field = rl.LoadRenderTexture(w, h)
	}
}

// Draw renders the particles.
func (f *FluidRenderer) Draw(views []components.ParticleView) {
	if !f.initialized {
		f.Init()
	}

	f.groups = GroupByColor(views, f.groups)

	if f.fallback {
		for _, g := range f.groups {
			c := rl.Color{R: g.Color.R, G: g.Color.G, B: g.Color.B, A: 255}
			for _, v := range g.Items {
				rl.DrawCircleV(rl.Vector2{X: v.X, Y: v.Y}, v.R, c)
			}
		}
		return
	}

	// Render textures are stored bottom-up
	src := rl.Rectangle{X: 0, Y: 0, Width: float32(f.screenW), Height: -float32(f.screenH)}
	soft := rl.Fade(rl.White, 0)

	for _, g := range f.groups {
		rl.BeginTextureMode(f.field)
		rl.ClearBackground(rl.Blank)
		for _, v := range g.Items {
			rl.DrawCircleGradient(int32(v.X), int32(v.Y), v.R*blobScale, rl.White, soft)
		}
		rl.EndTextureMode()

		rl.SetShaderValue(f.shader, f.tintLoc, colorVec3(g.Color.R, g.Color.G, g.Color.B), rl.ShaderUniformVec3)
		rl.BeginShaderMode(f.shader)
		rl.DrawTextureRec(f.field.Texture, src, rl.Vector2{}, rl.White)
		rl.EndShaderMode()
	}
}

// Unload frees resources.
func (f *FluidRenderer) Unload() {
	if f.initialized && !f.fallback {
		rl.UnloadShader(f.shader)
		rl.UnloadRenderTexture(f.field)
	}
	f.initialized = false
}
