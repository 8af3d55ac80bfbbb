package renderer

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// BackgroundRenderer fills the screen with a soft vertical gradient behind the cup.
type BackgroundRenderer struct {
	shader        rl.Shader
	timeLoc       int32
	resolutionLoc int32
	baseColorLoc  int32

	screenW, screenH float32
	baseColor        []float32
	initialized      bool
	fallback         bool
}

// NewBackgroundRenderer creates a new background renderer.
func NewBackgroundRenderer(screenW, screenH int32, baseR, baseG, baseB uint8) *BackgroundRenderer {
	return &BackgroundRenderer{
		screenW:   float32(screenW),
		screenH:   float32(screenH),
		baseColor: colorVec3(baseR, baseG, baseB),
	}
}

// Init initializes the renderer (must be called after raylib window is created).
func (b *BackgroundRenderer) Init() {
	if b.initialized {
		return
	}
	b.initialized = true

	shader, err := loadFragmentShader("backdrop.fs")
	if err != nil {
		slog.Error("background shader unavailable", "error", err)
		b.fallback = true
		return
	}
	b.shader = shader
	b.timeLoc = rl.GetShaderLocation(b.shader, "time")
	b.resolutionLoc = rl.GetShaderLocation(b.shader, "resolution")
	b.baseColorLoc = rl.GetShaderLocation(b.shader, "baseColor")

	rl.SetShaderValue(b.shader, b.baseColorLoc, b.baseColor, rl.ShaderUniformVec3)
	b.setResolution()
}

func (b *BackgroundRenderer) setResolution() {
	rl.SetShaderValue(b.shader, b.resolutionLoc, []float32{b.screenW, b.screenH}, rl.ShaderUniformVec2)
}

// Resize updates the screen dimensions.
func (b *BackgroundRenderer) Resize(w, h float32) {
	if w == b.screenW && h == b.screenH {
		return
	}
	b.screenW = w
	b.screenH = h
	if b.initialized && !b.fallback {
		b.setResolution()
	}
}

// Draw renders the background.
func (b *BackgroundRenderer) Draw(time float32) {
	if !b.initialized {
		b.Init()
	}

	if b.fallback {
		c := rl.Color{R: uint8(b.baseColor[0] * 255), G: uint8(b.baseColor[1] * 255), B: uint8(b.baseColor[2] * 255), A: 255}
		rl.ClearBackground(c)
		return
	}

	rl.SetShaderValue(b.shader, b.timeLoc, []float32{time}, rl.ShaderUniformFloat)

	rl.BeginShaderMode(b.shader)
	rl.DrawRectangle(0, 0, int32(b.screenW), int32(b.screenH), rl.White)
	rl.EndShaderMode()
}

// Unload frees resources.
func (b *BackgroundRenderer) Unload() {
	if b.initialized && !b.fallback {
		rl.UnloadShader(b.shader)
	}
	b.initialized = false
}
