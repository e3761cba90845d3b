package renderer

import "github.com/spaghettifunk/jackal/engine/core"

// Handle is an opaque native object name. InvalidHandle is never a live object.
type Handle uint32

const InvalidHandle Handle = 0

// GraphicsDevice is the native graphics API. Implementations are not safe
// for concurrent use and must be driven from the thread owning the GL context.
type GraphicsDevice interface {
	Initialize(debug bool) error
	Shutdown() error
	Limits() DeviceLimits

	Viewport(x, y, width, height int32)
	Clear(r, g, b, a float32)

	// buffers
	CreateBuffer() Handle
	DeleteBuffer(buffer Handle)
	BindBuffer(target BufferTarget, buffer Handle)
	BufferData(buffer Handle, size int, data any, usage BufferUsage)
	BufferSubData(buffer Handle, offset int, size int, data any)

	// vertex arrays
	CreateVertexArray() Handle
	DeleteVertexArray(vao Handle)
	BindVertexArray(vao Handle)
	VertexArrayVertexBuffer(vao Handle, binding uint32, buffer Handle, offset int, stride int32)
	VertexArrayElementBuffer(vao Handle, buffer Handle)
	VertexArrayAttribute(vao Handle, index, binding uint32, components int32, kind AttributeType, normalized bool, offset uint32)

	// shaders
	CreateShader(stage core.ShaderStage) Handle
	// CompileShader returns the compiler log and whether compilation succeeded.
	CompileShader(shader Handle, source string) (string, bool)
	DeleteShader(shader Handle)
	CreateProgram() Handle
	AttachShader(program, shader Handle)
	DetachShader(program, shader Handle)
	// LinkProgram returns the linker log and whether linking succeeded.
	LinkProgram(program Handle) (string, bool)
	DeleteProgram(program Handle)
	UseProgram(program Handle)
	// UniformLocation returns -1 for names the program does not use.
	UniformLocation(program Handle, name string) int32
	SetUniformInts(program Handle, location int32, components int, values []int32)
	SetUniformUints(program Handle, location int32, components int, values []uint32)
	SetUniformFloats(program Handle, location int32, components int, values []float32)
	SetUniformMatrix(program Handle, location int32, columns, rows int, values []float32)

	// textures
	CreateTexture(kind TextureType) Handle
	DeleteTexture(texture Handle)
	BindTextureUnit(unit uint32, texture Handle)
	TextureStorage(texture Handle, kind TextureType, levels int32, format TextureFormat, depth BitDepth, width, height, layers int32)
	TextureSubImage(texture Handle, kind TextureType, region TextureRegion, format TextureFormat, depth BitDepth, pixels any)
	TextureParameters(texture Handle, params TextureParameters)
	GenerateMipmap(texture Handle)
	SetUnpackAlignment(alignment int32)

	// drawing
	DrawElements(primitive Primitive, count int32, kind IndexType, offset int)
	DrawArrays(primitive Primitive, first, count int32)
}

// DeviceLimits are queried once after the context is created.
type DeviceLimits struct {
	MaxVertexAttributes   int
	MaxTextureSize        int
	Max3DTextureSize      int
	MaxCubeMapTextureSize int
	MaxArrayTextureLayers int
	MaxTextureImageUnits  int
	MaxAnisotropy         float32
}

type BufferTarget uint8

const (
	ArrayBuffer BufferTarget = iota
	ElementArrayBuffer
	bufferTargetCount
)

type BufferUsage uint8

const (
	// Written once, drawn many times.
	UsageStatic BufferUsage = iota
	// Rewritten often, drawn many times.
	UsageDynamic
	// Rewritten every frame, drawn a few times.
	UsageStream
)

func (u BufferUsage) String() string {
	switch u {
	case UsageStatic:
		return "static"
	case UsageDynamic:
		return "dynamic"
	case UsageStream:
		return "stream"
	}
	return "unknown"
}

type Primitive uint8

const (
	Points Primitive = iota
	Lines
	LineStrip
	LineLoop
	Triangles
	TriangleStrip
	TriangleFan
)

// IndexType is the element width of an index buffer.
type IndexType uint8

const (
	IndexUint8 IndexType = iota
	IndexUint16
	IndexUint32
)

// Size returns the element width in bytes.
func (t IndexType) Size() int {
	switch t {
	case IndexUint8:
		return 1
	case IndexUint16:
		return 2
	}
	return 4
}

func (t IndexType) String() string {
	switch t {
	case IndexUint8:
		return "uint8"
	case IndexUint16:
		return "uint16"
	}
	return "uint32"
}
