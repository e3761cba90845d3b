package renderer

import (
	"fmt"
	"unsafe"

	"github.com/spaghettifunk/jackal/engine/core"
)

// VertexBuffer stores vertices of type T in a GPU array buffer. T must be a
// plain value type without pointers.
type VertexBuffer[T any] struct {
	resource

	usage BufferUsage
	count int
	size  int
}

func NewVertexBuffer[T any](ctx *Context, usage BufferUsage, data []T) (*VertexBuffer[T], error) {
	if len(data) == 0 {
		core.LogError("vertex buffer: no vertex data")
		return nil, fmt.Errorf("vertex buffer: empty data: %w", core.ErrInvalidArgument)
	}
	handle := ctx.Device.CreateBuffer()
	if handle == InvalidHandle {
		return nil, &core.ResourceCreationError{Kind: core.ResourceKindVertexBuffer}
	}
	vb := &VertexBuffer[T]{}
	vb.track(ctx, core.ResourceKindVertexBuffer, handle, fmt.Sprintf("%d x %T", len(data), data[0]), vb)
	vb.upload(usage, data)
	return vb, nil
}

func (vb *VertexBuffer[T]) upload(usage BufferUsage, data []T) {
	vb.usage = usage
	vb.count = len(data)
	vb.size = len(data) * int(unsafe.Sizeof(data[0]))
	vb.ctx.Device.BufferData(vb.handle, vb.size, data, usage)
}

// Update replaces the buffer contents. When the byte size and usage are
// unchanged the data is written in place; otherwise the native buffer is
// released and a new one allocated.
func (vb *VertexBuffer[T]) Update(usage BufferUsage, data []T) error {
	if vb.released {
		return vb.releasedError("update")
	}
	if len(data) == 0 {
		return fmt.Errorf("vertex buffer update: empty data: %w", core.ErrInvalidArgument)
	}
	size := len(data) * int(unsafe.Sizeof(data[0]))
	if size == vb.size && usage == vb.usage {
		vb.ctx.Device.BufferSubData(vb.handle, 0, size, data)
		return nil
	}

	handle := vb.ctx.Device.CreateBuffer()
	if handle == InvalidHandle {
		return &core.ResourceCreationError{Kind: core.ResourceKindVertexBuffer, Reason: "reallocation"}
	}
	vb.ctx.Bindings.ReleaseBuffer(vb.handle)
	vb.ctx.Device.DeleteBuffer(vb.handle)
	vb.retarget(handle)
	vb.upload(usage, data)
	return nil
}

func (vb *VertexBuffer[T]) Bind() {
	if !vb.live("bind") {
		return
	}
	vb.ctx.Bindings.BindBuffer(ArrayBuffer, vb.handle)
}

func (vb *VertexBuffer[T]) Unbind() {
	if !vb.live("unbind") {
		return
	}
	vb.ctx.Bindings.ReleaseBuffer(vb.handle)
}

// Dispose unbinds and deletes the native buffer. Calling it again does nothing.
func (vb *VertexBuffer[T]) Dispose() {
	if !vb.release(vb) {
		return
	}
	vb.ctx.Bindings.ReleaseBuffer(vb.handle)
	vb.ctx.Device.DeleteBuffer(vb.handle)
}

func (vb *VertexBuffer[T]) Usage() BufferUsage { return vb.usage }

// Count is the number of vertices stored.
func (vb *VertexBuffer[T]) Count() int { return vb.count }

// Size is the buffer size in bytes.
func (vb *VertexBuffer[T]) Size() int { return vb.size }

// Stride is the size of one vertex in bytes.
func (vb *VertexBuffer[T]) Stride() int {
	var v T
	return int(unsafe.Sizeof(v))
}
