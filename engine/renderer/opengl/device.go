// Package opengl implements renderer.GraphicsDevice on OpenGL 4.6 core using
// direct state access.
package opengl

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/spaghettifunk/jackal/engine/core"
	"github.com/spaghettifunk/jackal/engine/renderer"
)

type Device struct {
	limits renderer.DeviceLimits
	debug  bool
}

func New() *Device {
	return &Device{}
}

// Initialize loads the GL entry points for the current context. It must be
// called after the platform made its context current.
func (d *Device) Initialize(debug bool) error {
	if err := gl.Init(); err != nil {
		core.LogError("failed to initialize OpenGL: %s", err)
		return fmt.Errorf("%w: %s", core.ErrPlatform, err)
	}
	core.LogInfo("OpenGL %s, %s", gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER)))

	d.debug = debug
	if debug {
		gl.Enable(gl.DEBUG_OUTPUT)
		gl.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS)
		gl.DebugMessageCallback(debugMessage, nil)
	}

	d.limits = renderer.DeviceLimits{
		MaxVertexAttributes:   getInt(gl.MAX_VERTEX_ATTRIBS),
		MaxTextureSize:        getInt(gl.MAX_TEXTURE_SIZE),
		Max3DTextureSize:      getInt(gl.MAX_3D_TEXTURE_SIZE),
		MaxCubeMapTextureSize: getInt(gl.MAX_CUBE_MAP_TEXTURE_SIZE),
		MaxArrayTextureLayers: getInt(gl.MAX_ARRAY_TEXTURE_LAYERS),
		MaxTextureImageUnits:  getInt(gl.MAX_COMBINED_TEXTURE_IMAGE_UNITS),
	}
	gl.GetFloatv(gl.MAX_TEXTURE_MAX_ANISOTROPY, &d.limits.MaxAnisotropy)

	gl.Enable(gl.DEPTH_TEST)
	return nil
}

func getInt(pname uint32) int {
	var v int32
	gl.GetIntegerv(pname, &v)
	return int(v)
}

func debugMessage(source, gltype, id, severity uint32, length int32, message string, userParam unsafe.Pointer) {
	message = strings.TrimSpace(message)
	switch severity {
	case gl.DEBUG_SEVERITY_HIGH:
		core.LogFatal("GL error %d: %s", id, message)
	case gl.DEBUG_SEVERITY_MEDIUM:
		core.LogWarn("GL %d: %s", id, message)
	case gl.DEBUG_SEVERITY_LOW:
		core.LogInfo("GL %d: %s", id, message)
	default:
		core.LogDebug("GL %d: %s", id, message)
	}
}

func (d *Device) Shutdown() error {
	if d.debug {
		gl.Disable(gl.DEBUG_OUTPUT)
	}
	return nil
}

func (d *Device) Limits() renderer.DeviceLimits {
	return d.limits
}

func (d *Device) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (d *Device) Clear(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (d *Device) CreateBuffer() renderer.Handle {
	var h uint32
	gl.CreateBuffers(1, &h)
	return renderer.Handle(h)
}

func (d *Device) DeleteBuffer(buffer renderer.Handle) {
	h := uint32(buffer)
	gl.DeleteBuffers(1, &h)
}

func (d *Device) BindBuffer(target renderer.BufferTarget, buffer renderer.Handle) {
	gl.BindBuffer(bufferTargets[target], uint32(buffer))
}

func (d *Device) BufferData(buffer renderer.Handle, size int, data any, usage renderer.BufferUsage) {
	gl.NamedBufferData(uint32(buffer), size, gl.Ptr(data), bufferUsages[usage])
}

func (d *Device) BufferSubData(buffer renderer.Handle, offset int, size int, data any) {
	gl.NamedBufferSubData(uint32(buffer), offset, size, gl.Ptr(data))
}

func (d *Device) CreateVertexArray() renderer.Handle {
	var h uint32
	gl.CreateVertexArrays(1, &h)
	return renderer.Handle(h)
}

func (d *Device) DeleteVertexArray(vao renderer.Handle) {
	h := uint32(vao)
	gl.DeleteVertexArrays(1, &h)
}

func (d *Device) BindVertexArray(vao renderer.Handle) {
	gl.BindVertexArray(uint32(vao))
}

func (d *Device) VertexArrayVertexBuffer(vao renderer.Handle, binding uint32, buffer renderer.Handle, offset int, stride int32) {
	gl.VertexArrayVertexBuffer(uint32(vao), binding, uint32(buffer), offset, stride)
}

func (d *Device) VertexArrayElementBuffer(vao renderer.Handle, buffer renderer.Handle) {
	gl.VertexArrayElementBuffer(uint32(vao), uint32(buffer))
}

func (d *Device) VertexArrayAttribute(vao renderer.Handle, index, binding uint32, components int32, kind renderer.AttributeType, normalized bool, offset uint32) {
	v := uint32(vao)
	gl.EnableVertexArrayAttrib(v, index)
	switch {
	case kind == renderer.AttributeDouble:
		gl.VertexArrayAttribLFormat(v, index, components, gl.DOUBLE, offset)
	case kind != renderer.AttributeFloat && kind != renderer.AttributeHalfFloat && !normalized:
		// integer attributes that are not normalized stay integers in the shader
		gl.VertexArrayAttribIFormat(v, index, components, attributeTypes[kind], offset)
	default:
		gl.VertexArrayAttribFormat(v, index, components, attributeTypes[kind], normalized, offset)
	}
	gl.VertexArrayAttribBinding(v, index, binding)
}

func (d *Device) CreateShader(stage core.ShaderStage) renderer.Handle {
	switch stage {
	case core.ShaderStageVertex:
		return renderer.Handle(gl.CreateShader(gl.VERTEX_SHADER))
	case core.ShaderStageFragment:
		return renderer.Handle(gl.CreateShader(gl.FRAGMENT_SHADER))
	}
	return renderer.InvalidHandle
}

func (d *Device) CompileShader(shader renderer.Handle, source string) (string, bool) {
	h := uint32(shader)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(h, 1, csources, nil)
	free()
	gl.CompileShader(h)

	var status int32
	gl.GetShaderiv(h, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(h, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(h, logLength, nil, gl.Str(log))
		return strings.TrimRight(log, "\x00"), false
	}
	return "", true
}

func (d *Device) DeleteShader(shader renderer.Handle) {
	gl.DeleteShader(uint32(shader))
}

func (d *Device) CreateProgram() renderer.Handle {
	return renderer.Handle(gl.CreateProgram())
}

func (d *Device) AttachShader(program, shader renderer.Handle) {
	gl.AttachShader(uint32(program), uint32(shader))
}

func (d *Device) DetachShader(program, shader renderer.Handle) {
	gl.DetachShader(uint32(program), uint32(shader))
}

func (d *Device) LinkProgram(program renderer.Handle) (string, bool) {
	h := uint32(program)
	gl.LinkProgram(h)

	var status int32
	gl.GetProgramiv(h, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(h, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(h, logLength, nil, gl.Str(log))
		return strings.TrimRight(log, "\x00"), false
	}
	return "", true
}

func (d *Device) DeleteProgram(program renderer.Handle) {
	gl.DeleteProgram(uint32(program))
}

func (d *Device) UseProgram(program renderer.Handle) {
	gl.UseProgram(uint32(program))
}

func (d *Device) UniformLocation(program renderer.Handle, name string) int32 {
	return gl.GetUniformLocation(uint32(program), gl.Str(name+"\x00"))
}

func (d *Device) SetUniformInts(program renderer.Handle, location int32, components int, values []int32) {
	p, count := uint32(program), int32(len(values)/components)
	switch components {
	case 1:
		gl.ProgramUniform1iv(p, location, count, &values[0])
	case 2:
		gl.ProgramUniform2iv(p, location, count, &values[0])
	case 3:
		gl.ProgramUniform3iv(p, location, count, &values[0])
	case 4:
		gl.ProgramUniform4iv(p, location, count, &values[0])
	}
}

func (d *Device) SetUniformUints(program renderer.Handle, location int32, components int, values []uint32) {
	p, count := uint32(program), int32(len(values)/components)
	switch components {
	case 1:
		gl.ProgramUniform1uiv(p, location, count, &values[0])
	case 2:
		gl.ProgramUniform2uiv(p, location, count, &values[0])
	case 3:
		gl.ProgramUniform3uiv(p, location, count, &values[0])
	case 4:
		gl.ProgramUniform4uiv(p, location, count, &values[0])
	}
}

func (d *Device) SetUniformFloats(program renderer.Handle, location int32, components int, values []float32) {
	p, count := uint32(program), int32(len(values)/components)
	switch components {
	case 1:
		gl.ProgramUniform1fv(p, location, count, &values[0])
	case 2:
		gl.ProgramUniform2fv(p, location, count, &values[0])
	case 3:
		gl.ProgramUniform3fv(p, location, count, &values[0])
	case 4:
		gl.ProgramUniform4fv(p, location, count, &values[0])
	}
}

// SetUniformMatrix uploads column major matrices of the given GLSL shape.
func (d *Device) SetUniformMatrix(program renderer.Handle, location int32, columns, rows int, values []float32) {
	p, count, v := uint32(program), int32(len(values)/(columns*rows)), &values[0]
	switch [2]int{columns, rows} {
	case [2]int{2, 2}:
		gl.ProgramUniformMatrix2fv(p, location, count, false, v)
	case [2]int{2, 3}:
		gl.ProgramUniformMatrix2x3fv(p, location, count, false, v)
	case [2]int{2, 4}:
		gl.ProgramUniformMatrix2x4fv(p, location, count, false, v)
	case [2]int{3, 2}:
		gl.ProgramUniformMatrix3x2fv(p, location, count, false, v)
	case [2]int{3, 3}:
		gl.ProgramUniformMatrix3fv(p, location, count, false, v)
	case [2]int{3, 4}:
		gl.ProgramUniformMatrix3x4fv(p, location, count, false, v)
	case [2]int{4, 2}:
		gl.ProgramUniformMatrix4x2fv(p, location, count, false, v)
	case [2]int{4, 3}:
		gl.ProgramUniformMatrix4x3fv(p, location, count, false, v)
	case [2]int{4, 4}:
		gl.ProgramUniformMatrix4fv(p, location, count, false, v)
	default:
		core.LogError("unsupported uniform matrix shape %dx%d", columns, rows)
	}
}

func (d *Device) CreateTexture(kind renderer.TextureType) renderer.Handle {
	var h uint32
	gl.CreateTextures(textureTargets[kind], 1, &h)
	return renderer.Handle(h)
}

func (d *Device) DeleteTexture(texture renderer.Handle) {
	h := uint32(texture)
	gl.DeleteTextures(1, &h)
}

func (d *Device) BindTextureUnit(unit uint32, texture renderer.Handle) {
	gl.BindTextureUnit(unit, uint32(texture))
}

func (d *Device) TextureStorage(texture renderer.Handle, kind renderer.TextureType, levels int32, format renderer.TextureFormat, depth renderer.BitDepth, width, height, layers int32) {
	h, internal := uint32(texture), internalFormat(format, depth)
	switch kind {
	case renderer.Texture1D:
		gl.TextureStorage1D(h, levels, internal, width)
	case renderer.Texture1DArray:
		gl.TextureStorage2D(h, levels, internal, width, layers)
	case renderer.Texture2D, renderer.TextureCubeMap:
		gl.TextureStorage2D(h, levels, internal, width, height)
	case renderer.Texture3D, renderer.Texture2DArray:
		gl.TextureStorage3D(h, levels, internal, width, height, layers)
	}
}

func (d *Device) TextureSubImage(texture renderer.Handle, kind renderer.TextureType, region renderer.TextureRegion, format renderer.TextureFormat, depth renderer.BitDepth, pixels any) {
	h, r := uint32(texture), region
	external, xtype := pixelFormats[format], pixelType(depth)
	switch kind {
	case renderer.Texture1D:
		gl.TextureSubImage1D(h, r.Level, 0, r.Width, external, xtype, gl.Ptr(pixels))
	case renderer.Texture2D:
		gl.TextureSubImage2D(h, r.Level, 0, 0, r.Width, r.Height, external, xtype, gl.Ptr(pixels))
	case renderer.Texture1DArray:
		gl.TextureSubImage2D(h, r.Level, 0, r.Layer, r.Width, 1, external, xtype, gl.Ptr(pixels))
	case renderer.Texture3D, renderer.Texture2DArray, renderer.TextureCubeMap:
		// cube map faces are addressed as layers with direct state access
		gl.TextureSubImage3D(h, r.Level, 0, 0, r.Layer, r.Width, r.Height, r.Depth, external, xtype, gl.Ptr(pixels))
	}
}

func (d *Device) TextureParameters(texture renderer.Handle, params renderer.TextureParameters) {
	h, wrap := uint32(texture), int32(wrapModes[params.Wrap])
	gl.TextureParameteri(h, gl.TEXTURE_WRAP_S, wrap)
	gl.TextureParameteri(h, gl.TEXTURE_WRAP_T, wrap)
	gl.TextureParameteri(h, gl.TEXTURE_WRAP_R, wrap)
	gl.TextureParameteri(h, gl.TEXTURE_MIN_FILTER, int32(filters[params.MinFilter]))
	gl.TextureParameteri(h, gl.TEXTURE_MAG_FILTER, int32(filters[params.MagFilter]))
	if d.limits.MaxAnisotropy >= 1 {
		gl.TextureParameterf(h, gl.TEXTURE_MAX_ANISOTROPY, float32(params.Anisotropy))
	}
}

func (d *Device) GenerateMipmap(texture renderer.Handle) {
	gl.GenerateTextureMipmap(uint32(texture))
}

func (d *Device) SetUnpackAlignment(alignment int32) {
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, alignment)
}

func (d *Device) DrawElements(primitive renderer.Primitive, count int32, kind renderer.IndexType, offset int) {
	gl.DrawElements(primitives[primitive], count, indexTypes[kind], gl.PtrOffset(offset))
}

func (d *Device) DrawArrays(primitive renderer.Primitive, first, count int32) {
	gl.DrawArrays(primitives[primitive], first, count)
}

var _ renderer.GraphicsDevice = (*Device)(nil)
