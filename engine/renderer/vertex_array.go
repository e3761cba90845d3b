package renderer

import (
	"fmt"

	"github.com/spaghettifunk/jackal/engine/core"
)

// VertexSource is a vertex buffer of any vertex type.
type VertexSource interface {
	Handle() Handle
	Count() int
	Generation() uint64
}

// VertexArray records how vertex and element buffers feed the vertex shader.
// It does not own the attached buffers.
type VertexArray struct {
	resource

	vertices VertexSource
	elements *ElementBuffer
	stride   int32

	// buffer generations last given to the device; buffers reallocated by
	// Update are re-attached on the next Bind
	vertexGeneration  uint64
	elementGeneration uint64
}

func NewVertexArray(ctx *Context) (*VertexArray, error) {
	handle := ctx.Device.CreateVertexArray()
	if handle == InvalidHandle {
		return nil, &core.ResourceCreationError{Kind: core.ResourceKindVertexArray}
	}
	vao := &VertexArray{}
	vao.track(ctx, core.ResourceKindVertexArray, handle, "vertex array", vao)
	return vao, nil
}

// Attach binds vb to binding point 0 using layout and, when eb is not nil,
// sets it as the element buffer used by Draw.
func (vao *VertexArray) Attach(vb VertexSource, eb *ElementBuffer, layout *VertexLayout) error {
	if vao.released {
		return vao.releasedError("attach")
	}
	if vb == nil || vb.Handle() == InvalidHandle {
		return fmt.Errorf("vertex array attach: no vertex buffer: %w", core.ErrInvalidArgument)
	}
	if eb != nil && eb.Handle() == InvalidHandle {
		return fmt.Errorf("vertex array attach: released element buffer: %w", core.ErrInvalidArgument)
	}
	if layout == nil {
		return fmt.Errorf("vertex array attach: no layout: %w", core.ErrInvalidArgument)
	}
	if err := layout.validate(vao.ctx.Limits); err != nil {
		core.LogError("vertex array attach: %s", err)
		return err
	}
	if layout.Stride() == 0 {
		return fmt.Errorf("vertex array attach: zero stride: %w", core.ErrInvalidArgument)
	}

	device := vao.ctx.Device
	vao.stride = int32(layout.Stride())
	device.VertexArrayVertexBuffer(vao.handle, 0, vb.Handle(), 0, vao.stride)
	vao.vertexGeneration = vb.Generation()
	for i, attr := range layout.Attributes() {
		device.VertexArrayAttribute(vao.handle, uint32(i), 0, attr.Components, attr.Type, attr.Normalized, attr.Offset)
	}
	if eb != nil {
		device.VertexArrayElementBuffer(vao.handle, eb.Handle())
		vao.elementGeneration = eb.generation
		if vao.ctx.Bindings.BoundVertexArray() == vao.handle {
			vao.ctx.Bindings.buffers[ElementArrayBuffer] = eb.Handle()
		}
	}
	vao.vertices = vb
	vao.elements = eb
	return nil
}

// reattach points the vertex array at the current names of its buffers.
func (vao *VertexArray) reattach() {
	device := vao.ctx.Device
	if vb := vao.vertices; vb != nil && vb.Handle() != InvalidHandle && vb.Generation() != vao.vertexGeneration {
		core.LogDebug("vertex array %d: re-attaching vertex buffer %d", vao.handle, vb.Handle())
		device.VertexArrayVertexBuffer(vao.handle, 0, vb.Handle(), 0, vao.stride)
		vao.vertexGeneration = vb.Generation()
	}
	if eb := vao.elements; eb != nil && !eb.released && eb.generation != vao.elementGeneration {
		core.LogDebug("vertex array %d: re-attaching element buffer %d", vao.handle, eb.handle)
		device.VertexArrayElementBuffer(vao.handle, eb.handle)
		vao.elementGeneration = eb.generation
	}
}

func (vao *VertexArray) vertexCount() int32 {
	if vao.vertices == nil {
		return 0
	}
	return int32(vao.vertices.Count())
}

func (vao *VertexArray) Bind() {
	if !vao.live("bind") {
		return
	}
	vao.reattach()
	vao.ctx.Bindings.BindVertexArray(vao.handle)
	if vao.elements != nil && !vao.elements.released {
		// the vertex array restores its element buffer on bind
		vao.ctx.Bindings.buffers[ElementArrayBuffer] = vao.elements.handle
	}
}

// Draw binds the vertex array and draws every index of the attached element
// buffer, or every vertex when there is none.
func (vao *VertexArray) Draw(primitive Primitive) {
	if !vao.live("draw") {
		return
	}
	vao.Bind()
	if vao.elements == nil {
		vao.ctx.Device.DrawArrays(primitive, 0, vao.vertexCount())
		return
	}
	if !vao.elements.live("draw") {
		return
	}
	vao.ctx.Device.DrawElements(primitive, int32(vao.elements.count), vao.elements.indexType, 0)
}

func (vao *VertexArray) DrawArrays(primitive Primitive, first, count int32) {
	if !vao.live("draw arrays") {
		return
	}
	vao.Bind()
	vao.ctx.Device.DrawArrays(primitive, first, count)
}

// ElementBuffer returns the attached element buffer, if any.
func (vao *VertexArray) ElementBuffer() *ElementBuffer {
	return vao.elements
}

func (vao *VertexArray) Dispose() {
	if !vao.release(vao) {
		return
	}
	vao.ctx.Bindings.ReleaseVertexArray(vao.handle)
	vao.ctx.Device.DeleteVertexArray(vao.handle)
	vao.vertices = nil
	vao.elements = nil
}
