package renderer

import (
	"fmt"

	"github.com/spaghettifunk/jackal/engine/core"
)

// SourceLoader reads shader source text.
type SourceLoader interface {
	LoadSource(path string) (string, error)
}

const fallbackVertexSource = `#version 460 core
layout(location = 0) in vec3 in_position;
uniform mat4 u_model_view_projection = mat4(1.0);
void main() {
	gl_Position = u_model_view_projection * vec4(in_position, 1.0);
}
`

const fallbackFragmentSource = `#version 460 core
out vec4 out_color;
void main() {
	out_color = vec4(1.0, 0.0, 1.0, 1.0);
}
`

// Shader is a linked vertex + fragment program.
type Shader struct {
	resource

	locations map[string]int32
	// shared shaders are owned by the context and survive Dispose.
	shared bool
}

// NewShader compiles and links a program. Compiler and linker errors carry
// the native log as a *core.ShaderError.
func NewShader(ctx *Context, vertexSource, fragmentSource string) (*Shader, error) {
	return newShader(ctx, "", vertexSource, fragmentSource)
}

func newShader(ctx *Context, label, vertexSource, fragmentSource string) (*Shader, error) {
	device := ctx.Device

	vertex, err := compileStage(device, core.ShaderStageVertex, vertexSource)
	if err != nil {
		return nil, err
	}
	defer device.DeleteShader(vertex)

	fragment, err := compileStage(device, core.ShaderStageFragment, fragmentSource)
	if err != nil {
		return nil, err
	}
	defer device.DeleteShader(fragment)

	program := device.CreateProgram()
	if program == InvalidHandle {
		return nil, &core.ResourceCreationError{Kind: core.ResourceKindShader, Reason: "program"}
	}
	device.AttachShader(program, vertex)
	device.AttachShader(program, fragment)
	log, ok := device.LinkProgram(program)
	device.DetachShader(program, vertex)
	device.DetachShader(program, fragment)
	if !ok {
		device.DeleteProgram(program)
		return nil, &core.ShaderError{Stage: core.ShaderStageProgram, Log: log}
	}

	s := &Shader{locations: make(map[string]int32)}
	if label == "" {
		label = fmt.Sprintf("program %d", program)
	}
	s.track(ctx, core.ResourceKindShader, program, label, s)
	return s, nil
}

func compileStage(device GraphicsDevice, stage core.ShaderStage, source string) (Handle, error) {
	if source == "" {
		return InvalidHandle, fmt.Errorf("%s shader: empty source: %w", stage, core.ErrInvalidArgument)
	}
	h := device.CreateShader(stage)
	if h == InvalidHandle {
		return InvalidHandle, &core.ResourceCreationError{Kind: core.ResourceKindShader, Reason: stage.String() + " stage"}
	}
	log, ok := device.CompileShader(h, source)
	if !ok {
		device.DeleteShader(h)
		return InvalidHandle, &core.ShaderError{Stage: stage, Log: log}
	}
	return h, nil
}

// ShaderFromFiles reads both stages through loader and builds the program.
func ShaderFromFiles(ctx *Context, loader SourceLoader, vertexPath, fragmentPath string) (*Shader, error) {
	vertexSource, err := loader.LoadSource(vertexPath)
	if err != nil {
		return nil, fmt.Errorf("vertex shader %q: %w", vertexPath, err)
	}
	fragmentSource, err := loader.LoadSource(fragmentPath)
	if err != nil {
		return nil, fmt.Errorf("fragment shader %q: %w", fragmentPath, err)
	}
	return newShader(ctx, vertexPath+"+"+fragmentPath, vertexSource, fragmentSource)
}

// ShaderOrFallback logs err and returns the magenta fallback shader when
// building s failed, so a broken shader shows up on screen instead of
// stopping the application.
func ShaderOrFallback(ctx *Context, s *Shader, err error) *Shader {
	if err == nil {
		return s
	}
	core.LogError("shader: %s, using fallback", err)
	fallback, ferr := ctx.FallbackShader()
	if ferr != nil {
		core.LogFatal("fallback shader failed to build: %s", ferr)
	}
	return fallback
}

// Shared reports whether the shader is the context-owned fallback.
func (s *Shader) Shared() bool {
	return s.shared
}

func (s *Shader) Bind() {
	if !s.live("bind") {
		return
	}
	s.ctx.Bindings.UseProgram(s.handle)
}

// UniformLocation resolves a uniform by name. Locations, including misses,
// are cached for the lifetime of the program.
func (s *Shader) UniformLocation(name string) (int32, error) {
	if s.released {
		return -1, s.releasedError("uniform lookup")
	}
	loc, ok := s.locations[name]
	if !ok {
		loc = s.ctx.Device.UniformLocation(s.handle, name)
		s.locations[name] = loc
	}
	if loc < 0 {
		return -1, fmt.Errorf("uniform %q in %s: %w", name, s.label, core.ErrUniformNotFound)
	}
	return loc, nil
}

// SetUniform writes value to the named uniform of this program.
func (s *Shader) SetUniform(name string, value UniformValue) error {
	loc, err := s.UniformLocation(name)
	if err != nil {
		return err
	}
	value.apply(s.ctx.Device, s.handle, loc)
	return nil
}

func (s *Shader) Dispose() {
	if s.shared || !s.release(s) {
		return
	}
	s.ctx.Bindings.ReleaseProgram(s.handle)
	s.ctx.Device.DeleteProgram(s.handle)
	s.locations = nil
}
