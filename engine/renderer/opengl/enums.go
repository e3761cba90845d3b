package opengl

import (
	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/spaghettifunk/jackal/engine/renderer"
)

var bufferTargets = map[renderer.BufferTarget]uint32{
	renderer.ArrayBuffer:        gl.ARRAY_BUFFER,
	renderer.ElementArrayBuffer: gl.ELEMENT_ARRAY_BUFFER,
}

var bufferUsages = map[renderer.BufferUsage]uint32{
	renderer.UsageStatic:  gl.STATIC_DRAW,
	renderer.UsageDynamic: gl.DYNAMIC_DRAW,
	renderer.UsageStream:  gl.STREAM_DRAW,
}

var attributeTypes = map[renderer.AttributeType]uint32{
	renderer.AttributeInt8:      gl.BYTE,
	renderer.AttributeUint8:     gl.UNSIGNED_BYTE,
	renderer.AttributeInt16:     gl.SHORT,
	renderer.AttributeUint16:    gl.UNSIGNED_SHORT,
	renderer.AttributeInt32:     gl.INT,
	renderer.AttributeUint32:    gl.UNSIGNED_INT,
	renderer.AttributeHalfFloat: gl.HALF_FLOAT,
	renderer.AttributeFloat:     gl.FLOAT,
	renderer.AttributeDouble:    gl.DOUBLE,
}

var primitives = map[renderer.Primitive]uint32{
	renderer.Points:        gl.POINTS,
	renderer.Lines:         gl.LINES,
	renderer.LineStrip:     gl.LINE_STRIP,
	renderer.LineLoop:      gl.LINE_LOOP,
	renderer.Triangles:     gl.TRIANGLES,
	renderer.TriangleStrip: gl.TRIANGLE_STRIP,
	renderer.TriangleFan:   gl.TRIANGLE_FAN,
}

var indexTypes = map[renderer.IndexType]uint32{
	renderer.IndexUint8:  gl.UNSIGNED_BYTE,
	renderer.IndexUint16: gl.UNSIGNED_SHORT,
	renderer.IndexUint32: gl.UNSIGNED_INT,
}

var textureTargets = map[renderer.TextureType]uint32{
	renderer.Texture1D:      gl.TEXTURE_1D,
	renderer.Texture2D:      gl.TEXTURE_2D,
	renderer.Texture3D:      gl.TEXTURE_3D,
	renderer.Texture1DArray: gl.TEXTURE_1D_ARRAY,
	renderer.Texture2DArray: gl.TEXTURE_2D_ARRAY,
	renderer.TextureCubeMap: gl.TEXTURE_CUBE_MAP,
}

var pixelFormats = map[renderer.TextureFormat]uint32{
	renderer.FormatR:    gl.RED,
	renderer.FormatRG:   gl.RG,
	renderer.FormatRGB:  gl.RGB,
	renderer.FormatBGR:  gl.BGR,
	renderer.FormatRGBA: gl.RGBA,
	renderer.FormatBGRA: gl.BGRA,
}

var wrapModes = map[renderer.TextureWrap]uint32{
	renderer.WrapRepeat:         gl.REPEAT,
	renderer.WrapMirroredRepeat: gl.MIRRORED_REPEAT,
	renderer.WrapClampToEdge:    gl.CLAMP_TO_EDGE,
}

var filters = map[renderer.TextureFilter]uint32{
	renderer.FilterNearest:           gl.NEAREST,
	renderer.FilterLinear:            gl.LINEAR,
	renderer.FilterNearestMipNearest: gl.NEAREST_MIPMAP_NEAREST,
	renderer.FilterNearestMipLinear:  gl.NEAREST_MIPMAP_LINEAR,
	renderer.FilterLinearMipNearest:  gl.LINEAR_MIPMAP_NEAREST,
	renderer.FilterLinearMipLinear:   gl.LINEAR_MIPMAP_LINEAR,
}

// internalFormat picks the sized storage format. BGR data is stored as RGB,
// the swizzle happens on upload.
func internalFormat(format renderer.TextureFormat, depth renderer.BitDepth) uint32 {
	wide := depth == renderer.Depth16
	switch format {
	case renderer.FormatR:
		if wide {
			return gl.R16
		}
		return gl.R8
	case renderer.FormatRG:
		if wide {
			return gl.RG16
		}
		return gl.RG8
	case renderer.FormatRGB, renderer.FormatBGR:
		if wide {
			return gl.RGB16
		}
		return gl.RGB8
	}
	if wide {
		return gl.RGBA16
	}
	return gl.RGBA8
}

func pixelType(depth renderer.BitDepth) uint32 {
	if depth == renderer.Depth16 {
		return gl.UNSIGNED_SHORT
	}
	return gl.UNSIGNED_BYTE
}
