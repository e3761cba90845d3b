package renderer

import (
	"fmt"

	"github.com/spaghettifunk/jackal/engine/core"
)

type uniformEntry struct {
	name  string
	value UniformValue
}

// Material combines a shader, the textures it samples and its uniform
// values. The material owns its shader and textures and disposes them.
type Material struct {
	resource

	shader   *Shader
	textures []*Texture
	// uniforms keep insertion order so Bind uploads deterministically.
	uniforms []uniformEntry
	index    map[string]int
}

// NewMaterial builds a material. Texture i is bound to texture unit i.
func NewMaterial(ctx *Context, shader *Shader, textures ...*Texture) (*Material, error) {
	if shader == nil || shader.Released() {
		return nil, fmt.Errorf("material: no live shader: %w", core.ErrInvalidArgument)
	}
	if limit := ctx.Limits.MaxTextureImageUnits; limit > 0 && len(textures) > limit {
		core.LogError("material: %d textures, device has %d texture units", len(textures), limit)
		return nil, fmt.Errorf("material: %d textures exceed %d units: %w", len(textures), limit, core.ErrDeviceLimitExceeded)
	}
	for i, t := range textures {
		if t == nil || t.Released() {
			return nil, fmt.Errorf("material: texture %d is not live: %w", i, core.ErrInvalidArgument)
		}
	}
	m := &Material{
		shader:   shader,
		textures: textures,
		index:    make(map[string]int),
	}
	m.track(ctx, core.ResourceKindMaterial, shader.handle, "material "+shader.label, m)
	return m, nil
}

// SetUniform stores a value uploaded on every Bind. Names are resolved
// against the shader on the next Bind.
func (m *Material) SetUniform(name string, value UniformValue) error {
	if m.released {
		return m.releasedError("set uniform")
	}
	if name == "" || value == nil {
		return fmt.Errorf("material: uniform %q without value: %w", name, core.ErrInvalidArgument)
	}
	if i, ok := m.index[name]; ok {
		m.uniforms[i].value = value
		return nil
	}
	m.index[name] = len(m.uniforms)
	m.uniforms = append(m.uniforms, uniformEntry{name: name, value: value})
	return nil
}

func (m *Material) Uniform(name string) (UniformValue, bool) {
	i, ok := m.index[name]
	if !ok {
		return nil, false
	}
	return m.uniforms[i].value, true
}

// UniformNames returns the uniform names in insertion order.
func (m *Material) UniformNames() []string {
	names := make([]string, len(m.uniforms))
	for i, u := range m.uniforms {
		names[i] = u.name
	}
	return names
}

// Bind makes the shader current, binds the textures and uploads every uniform.
func (m *Material) Bind() error {
	if m.released {
		return m.releasedError("bind")
	}
	m.shader.Bind()
	for i, t := range m.textures {
		t.Bind(uint32(i))
	}
	for _, u := range m.uniforms {
		if err := m.shader.SetUniform(u.name, u.value); err != nil {
			core.LogError("material: %s", err)
			return err
		}
	}
	return nil
}

func (m *Material) Shader() *Shader {
	return m.shader
}

func (m *Material) Textures() []*Texture {
	return m.textures
}

// Dispose releases the material together with its shader and textures.
func (m *Material) Dispose() {
	if !m.release(m) {
		return
	}
	m.shader.Dispose()
	for _, t := range m.textures {
		t.Dispose()
	}
}
