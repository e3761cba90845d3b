// Package fakes provides in-memory stand-ins for the native collaborators so
// the engine can be exercised without a window or GL context.
package fakes

import (
	"github.com/spaghettifunk/jackal/engine/core"
	"github.com/spaghettifunk/jackal/engine/renderer"
)

type BufferUpload struct {
	Buffer renderer.Handle
	Size   int
	Usage  renderer.BufferUsage
	Data   any
}

type StorageCall struct {
	Texture renderer.Handle
	Kind    renderer.TextureType
	Levels  int32
	Format  renderer.TextureFormat
	Depth   renderer.BitDepth
	Width   int32
	Height  int32
	Layers  int32
}

type UniformWrite struct {
	Program  renderer.Handle
	Location int32
	Columns  int
	Rows     int
	Ints     []int32
	Uints    []uint32
	Floats   []float32
}

type DrawCall struct {
	Primitive renderer.Primitive
	Count     int32
	First     int32
	IndexType renderer.IndexType
	Indexed   bool
}

// Device records every call made to it. Deleted handles are handed out
// again, most recently deleted first, the way GL drivers commonly do.
type Device struct {
	LimitsValue renderer.DeviceLimits

	// FailCreate makes every Create* call return InvalidHandle.
	FailCreate bool
	// CompileErrors maps a stage to the log returned when compiling it fails.
	CompileErrors map[core.ShaderStage]string
	LinkError     string
	// UniformNames maps uniform names to locations; unknown names resolve to -1.
	UniformNames map[string]int32
	InitError    error

	Calls           map[string]int
	Debug           bool
	Live            map[renderer.Handle]string
	Uploads         []BufferUpload
	SubUploads      []BufferUpload
	Storage         []StorageCall
	SubImages       []renderer.TextureRegion
	Params          map[renderer.Handle]renderer.TextureParameters
	Uniforms        []UniformWrite
	Draws           []DrawCall
	UnpackAlignment int32
	ElementBuffers  map[renderer.Handle]renderer.Handle
	VertexBuffers   map[renderer.Handle]renderer.Handle
	Attributes      map[renderer.Handle][]uint32
	ViewportSize    [2]int32

	next renderer.Handle
	free []renderer.Handle
}

func NewDevice() *Device {
	return &Device{
		LimitsValue:    DefaultLimits(),
		CompileErrors:  make(map[core.ShaderStage]string),
		UniformNames:   make(map[string]int32),
		Calls:          make(map[string]int),
		Live:           make(map[renderer.Handle]string),
		Params:         make(map[renderer.Handle]renderer.TextureParameters),
		ElementBuffers: make(map[renderer.Handle]renderer.Handle),
		VertexBuffers:  make(map[renderer.Handle]renderer.Handle),
		Attributes:     make(map[renderer.Handle][]uint32),
	}
}

// DefaultLimits are the minimums an OpenGL 4.6 implementation must expose.
func DefaultLimits() renderer.DeviceLimits {
	return renderer.DeviceLimits{
		MaxVertexAttributes:   16,
		MaxTextureSize:        16384,
		Max3DTextureSize:      2048,
		MaxCubeMapTextureSize: 16384,
		MaxArrayTextureLayers: 2048,
		MaxTextureImageUnits:  16,
		MaxAnisotropy:         16,
	}
}

func (d *Device) create(kind string) renderer.Handle {
	d.Calls["Create"+kind]++
	if d.FailCreate {
		return renderer.InvalidHandle
	}
	var h renderer.Handle
	if n := len(d.free); n > 0 {
		h = d.free[n-1]
		d.free = d.free[:n-1]
	} else {
		d.next++
		h = d.next
	}
	d.Live[h] = kind
	return h
}

func (d *Device) delete(kind string, h renderer.Handle) {
	d.Calls["Delete"+kind]++
	if _, ok := d.Live[h]; !ok {
		return
	}
	delete(d.Live, h)
	d.free = append(d.free, h)
}

// LiveCount returns the number of native objects of kind still alive.
func (d *Device) LiveCount(kind string) int {
	n := 0
	for _, k := range d.Live {
		if k == kind {
			n++
		}
	}
	return n
}

func (d *Device) Initialize(debug bool) error {
	d.Calls["Initialize"]++
	d.Debug = debug
	return d.InitError
}

func (d *Device) Shutdown() error {
	d.Calls["Shutdown"]++
	return nil
}

func (d *Device) Limits() renderer.DeviceLimits { return d.LimitsValue }

func (d *Device) Viewport(x, y, width, height int32) {
	d.Calls["Viewport"]++
	d.ViewportSize = [2]int32{width, height}
}

func (d *Device) Clear(r, g, b, a float32) { d.Calls["Clear"]++ }

func (d *Device) CreateBuffer() renderer.Handle { return d.create("Buffer") }

func (d *Device) DeleteBuffer(buffer renderer.Handle) { d.delete("Buffer", buffer) }

func (d *Device) BindBuffer(target renderer.BufferTarget, buffer renderer.Handle) {
	d.Calls["BindBuffer"]++
}

func (d *Device) BufferData(buffer renderer.Handle, size int, data any, usage renderer.BufferUsage) {
	d.Calls["BufferData"]++
	d.Uploads = append(d.Uploads, BufferUpload{Buffer: buffer, Size: size, Usage: usage, Data: data})
}

func (d *Device) BufferSubData(buffer renderer.Handle, offset int, size int, data any) {
	d.Calls["BufferSubData"]++
	d.SubUploads = append(d.SubUploads, BufferUpload{Buffer: buffer, Size: size, Data: data})
}

func (d *Device) CreateVertexArray() renderer.Handle { return d.create("VertexArray") }

func (d *Device) DeleteVertexArray(vao renderer.Handle) { d.delete("VertexArray", vao) }

func (d *Device) BindVertexArray(vao renderer.Handle) { d.Calls["BindVertexArray"]++ }

func (d *Device) VertexArrayVertexBuffer(vao renderer.Handle, binding uint32, buffer renderer.Handle, offset int, stride int32) {
	d.Calls["VertexArrayVertexBuffer"]++
	d.VertexBuffers[vao] = buffer
}

func (d *Device) VertexArrayElementBuffer(vao renderer.Handle, buffer renderer.Handle) {
	d.Calls["VertexArrayElementBuffer"]++
	d.ElementBuffers[vao] = buffer
}

func (d *Device) VertexArrayAttribute(vao renderer.Handle, index, binding uint32, components int32, kind renderer.AttributeType, normalized bool, offset uint32) {
	d.Calls["VertexArrayAttribute"]++
	d.Attributes[vao] = append(d.Attributes[vao], offset)
}

func (d *Device) CreateShader(stage core.ShaderStage) renderer.Handle {
	h := d.create("Shader")
	if h != renderer.InvalidHandle {
		d.Live[h] = "Shader:" + stage.String()
	}
	return h
}

func (d *Device) CompileShader(shader renderer.Handle, source string) (string, bool) {
	d.Calls["CompileShader"]++
	kind := d.Live[shader]
	for stage, log := range d.CompileErrors {
		if kind == "Shader:"+stage.String() {
			return log, false
		}
	}
	return "", true
}

func (d *Device) DeleteShader(shader renderer.Handle) { d.delete("Shader", shader) }

func (d *Device) CreateProgram() renderer.Handle { return d.create("Program") }

func (d *Device) AttachShader(program, shader renderer.Handle) { d.Calls["AttachShader"]++ }

func (d *Device) DetachShader(program, shader renderer.Handle) { d.Calls["DetachShader"]++ }

func (d *Device) LinkProgram(program renderer.Handle) (string, bool) {
	d.Calls["LinkProgram"]++
	if d.LinkError != "" {
		return d.LinkError, false
	}
	return "", true
}

func (d *Device) DeleteProgram(program renderer.Handle) { d.delete("Program", program) }

func (d *Device) UseProgram(program renderer.Handle) { d.Calls["UseProgram"]++ }

func (d *Device) UniformLocation(program renderer.Handle, name string) int32 {
	d.Calls["UniformLocation"]++
	if loc, ok := d.UniformNames[name]; ok {
		return loc
	}
	return -1
}

func (d *Device) SetUniformInts(program renderer.Handle, location int32, components int, values []int32) {
	d.Calls["SetUniformInts"]++
	d.Uniforms = append(d.Uniforms, UniformWrite{Program: program, Location: location, Columns: components, Rows: 1, Ints: values})
}

func (d *Device) SetUniformUints(program renderer.Handle, location int32, components int, values []uint32) {
	d.Calls["SetUniformUints"]++
	d.Uniforms = append(d.Uniforms, UniformWrite{Program: program, Location: location, Columns: components, Rows: 1, Uints: values})
}

func (d *Device) SetUniformFloats(program renderer.Handle, location int32, components int, values []float32) {
	d.Calls["SetUniformFloats"]++
	d.Uniforms = append(d.Uniforms, UniformWrite{Program: program, Location: location, Columns: components, Rows: 1, Floats: values})
}

func (d *Device) SetUniformMatrix(program renderer.Handle, location int32, columns, rows int, values []float32) {
	d.Calls["SetUniformMatrix"]++
	d.Uniforms = append(d.Uniforms, UniformWrite{Program: program, Location: location, Columns: columns, Rows: rows, Floats: values})
}

func (d *Device) CreateTexture(kind renderer.TextureType) renderer.Handle { return d.create("Texture") }

func (d *Device) DeleteTexture(texture renderer.Handle) { d.delete("Texture", texture) }

func (d *Device) BindTextureUnit(unit uint32, texture renderer.Handle) { d.Calls["BindTextureUnit"]++ }

func (d *Device) TextureStorage(texture renderer.Handle, kind renderer.TextureType, levels int32, format renderer.TextureFormat, depth renderer.BitDepth, width, height, layers int32) {
	d.Calls["TextureStorage"]++
	d.Storage = append(d.Storage, StorageCall{
		Texture: texture, Kind: kind, Levels: levels, Format: format, Depth: depth,
		Width: width, Height: height, Layers: layers,
	})
}

func (d *Device) TextureSubImage(texture renderer.Handle, kind renderer.TextureType, region renderer.TextureRegion, format renderer.TextureFormat, depth renderer.BitDepth, pixels any) {
	d.Calls["TextureSubImage"]++
	d.SubImages = append(d.SubImages, region)
}

func (d *Device) TextureParameters(texture renderer.Handle, params renderer.TextureParameters) {
	d.Calls["TextureParameters"]++
	d.Params[texture] = params
}

func (d *Device) GenerateMipmap(texture renderer.Handle) { d.Calls["GenerateMipmap"]++ }

func (d *Device) SetUnpackAlignment(alignment int32) {
	d.Calls["SetUnpackAlignment"]++
	d.UnpackAlignment = alignment
}

func (d *Device) DrawElements(primitive renderer.Primitive, count int32, kind renderer.IndexType, offset int) {
	d.Calls["DrawElements"]++
	d.Draws = append(d.Draws, DrawCall{Primitive: primitive, Count: count, IndexType: kind, Indexed: true})
}

func (d *Device) DrawArrays(primitive renderer.Primitive, first, count int32) {
	d.Calls["DrawArrays"]++
	d.Draws = append(d.Draws, DrawCall{Primitive: primitive, First: first, Count: count})
}

var _ renderer.GraphicsDevice = (*Device)(nil)
