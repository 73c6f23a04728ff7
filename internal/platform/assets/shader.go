package assets

import (
	"fmt"
	"os"
)

// ShaderSource holds the GLSL text of a vertex and fragment shader
// pair. Sources are kept as plain text; the GL layer null-terminates
// them at compile time.
type ShaderSource struct {
	Vertex   string
	Fragment string
}

// LoadShaderSource reads a vertex and fragment shader pair from disk.
func LoadShaderSource(vertPath, fragPath string) (ShaderSource, error) {
	vert, err := os.ReadFile(vertPath)
	if err != nil {
		return ShaderSource{}, fmt.Errorf("read vertex shader: %w", err)
	}
	frag, err := os.ReadFile(fragPath)
	if err != nil {
		return ShaderSource{}, fmt.Errorf("read fragment shader: %w", err)
	}
	if len(vert) == 0 || len(frag) == 0 {
		return ShaderSource{}, fmt.Errorf("empty shader source (%s, %s)", vertPath, fragPath)
	}
	return ShaderSource{Vertex: string(vert), Fragment: string(frag)}, nil
}
