package renderer

import "github.com/go-gl/mathgl/mgl32"

// UniformValue is a typed value assigned to a shader uniform. The set of
// implementations is closed.
type UniformValue interface {
	apply(device GraphicsDevice, program Handle, location int32)
}

type (
	UniformBool  bool
	UniformInt   int32
	UniformUint  uint32
	UniformFloat float32

	UniformIVec2 [2]int32
	UniformIVec3 [3]int32
	UniformIVec4 [4]int32
	UniformUVec2 [2]uint32
	UniformUVec3 [3]uint32
	UniformUVec4 [4]uint32

	UniformVec2 mgl32.Vec2
	UniformVec3 mgl32.Vec3
	UniformVec4 mgl32.Vec4

	// Matrix uniforms are named after the GLSL type (columns x rows) while
	// mgl32 names its matrices rows x columns.
	UniformMat2   mgl32.Mat2
	UniformMat2x3 mgl32.Mat3x2
	UniformMat2x4 mgl32.Mat4x2
	UniformMat3   mgl32.Mat3
	UniformMat3x2 mgl32.Mat2x3
	UniformMat3x4 mgl32.Mat4x3
	UniformMat4   mgl32.Mat4
	UniformMat4x2 mgl32.Mat2x4
	UniformMat4x3 mgl32.Mat3x4
)

func (v UniformBool) apply(d GraphicsDevice, p Handle, loc int32) {
	var i int32
	if v {
		i = 1
	}
	d.SetUniformInts(p, loc, 1, []int32{i})
}

func (v UniformInt) apply(d GraphicsDevice, p Handle, loc int32) {
	d.SetUniformInts(p, loc, 1, []int32{int32(v)})
}

func (v UniformUint) apply(d GraphicsDevice, p Handle, loc int32) {
	d.SetUniformUints(p, loc, 1, []uint32{uint32(v)})
}

func (v UniformFloat) apply(d GraphicsDevice, p Handle, loc int32) {
	d.SetUniformFloats(p, loc, 1, []float32{float32(v)})
}

func (v UniformIVec2) apply(d GraphicsDevice, p Handle, loc int32) { d.SetUniformInts(p, loc, 2, v[:]) }
func (v UniformIVec3) apply(d GraphicsDevice, p Handle, loc int32) { d.SetUniformInts(p, loc, 3, v[:]) }
func (v UniformIVec4) apply(d GraphicsDevice, p Handle, loc int32) { d.SetUniformInts(p, loc, 4, v[:]) }
func (v UniformUVec2) apply(d GraphicsDevice, p Handle, loc int32) { d.SetUniformUints(p, loc, 2, v[:]) }
func (v UniformUVec3) apply(d GraphicsDevice, p Handle, loc int32) { d.SetUniformUints(p, loc, 3, v[:]) }
func (v UniformUVec4) apply(d GraphicsDevice, p Handle, loc int32) { d.SetUniformUints(p, loc, 4, v[:]) }
func (v UniformVec2) apply(d GraphicsDevice, p Handle, loc int32)  { d.SetUniformFloats(p, loc, 2, v[:]) }
func (v UniformVec3) apply(d GraphicsDevice, p Handle, loc int32)  { d.SetUniformFloats(p, loc, 3, v[:]) }
func (v UniformVec4) apply(d GraphicsDevice, p Handle, loc int32)  { d.SetUniformFloats(p, loc, 4, v[:]) }

// mgl32 matrices are column major, matching what the device expects.
func (v UniformMat2) apply(d GraphicsDevice, p Handle, loc int32) {
	d.SetUniformMatrix(p, loc, 2, 2, v[:])
}

func (v UniformMat2x3) apply(d GraphicsDevice, p Handle, loc int32) {
	d.SetUniformMatrix(p, loc, 2, 3, v[:])
}

func (v UniformMat2x4) apply(d GraphicsDevice, p Handle, loc int32) {
	d.SetUniformMatrix(p, loc, 2, 4, v[:])
}

func (v UniformMat3) apply(d GraphicsDevice, p Handle, loc int32) {
	d.SetUniformMatrix(p, loc, 3, 3, v[:])
}

func (v UniformMat3x2) apply(d GraphicsDevice, p Handle, loc int32) {
	d.SetUniformMatrix(p, loc, 3, 2, v[:])
}

func (v UniformMat3x4) apply(d GraphicsDevice, p Handle, loc int32) {
	d.SetUniformMatrix(p, loc, 3, 4, v[:])
}

func (v UniformMat4) apply(d GraphicsDevice, p Handle, loc int32) {
	d.SetUniformMatrix(p, loc, 4, 4, v[:])
}

func (v UniformMat4x2) apply(d GraphicsDevice, p Handle, loc int32) {
	d.SetUniformMatrix(p, loc, 4, 2, v[:])
}

func (v UniformMat4x3) apply(d GraphicsDevice, p Handle, loc int32) {
	d.SetUniformMatrix(p, loc, 4, 3, v[:])
}
