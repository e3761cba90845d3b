package loaders

import (
	"fmt"
	"os"
)

// ShaderLoader reads GLSL source files.
type ShaderLoader struct{}

func (sl *ShaderLoader) Extensions() []string {
	return []string{".vert", ".frag", ".glsl"}
}

func (sl *ShaderLoader) LoadSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("shader source %q is empty", path)
	}
	return string(data), nil
}
