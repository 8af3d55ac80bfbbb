// Package renderer draws the fluid, cup and pour stream with raylib.
package renderer

import (
	"embed"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

//go:embed shaders/*.fs
var shaderFS embed.FS

// loadFragmentShader compiles an embedded fragment shader with raylib's default vertex shader.
func loadFragmentShader(name string) (rl.Shader, error) {
	src, err := shaderFS.ReadFile("shaders/" + name)
	if err != nil {
		return rl.Shader{}, fmt.Errorf("reading shader %s: %w", name, err)
	}
	return rl.LoadShaderFromMemory("", string(src)), nil
}

// colorVec3 converts an 8-bit colour to a shader vec3.
func colorVec3(r, g, b uint8) []float32 {
	return []float32{float32(r) / 255, float32(g) / 255, float32(b) / 255}
}
