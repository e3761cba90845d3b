package renderer

import (
	"fmt"
	gomath "math"

	"golang.org/x/exp/constraints"

	"github.com/spaghettifunk/jackal/engine/core"
)

// Index is any unsigned integer type usable as a vertex index.
type Index interface {
	constraints.Unsigned
}

// ElementBuffer stores vertex indices using the narrowest index type able to
// represent the largest index it holds.
type ElementBuffer struct {
	resource

	usage     BufferUsage
	indexType IndexType
	count     int
	size      int
}

// packedIndices is the narrowed copy of an index slice.
type packedIndices struct {
	kind  IndexType
	count int
	data  any
}

func (p packedIndices) size() int {
	return p.count * p.kind.Size()
}

func packIndices[I Index](indices []I) (packedIndices, error) {
	var highest uint64
	for _, i := range indices {
		if uint64(i) > highest {
			highest = uint64(i)
		}
	}
	p := packedIndices{count: len(indices)}
	switch {
	case highest <= gomath.MaxUint8:
		out := make([]uint8, len(indices))
		for n, i := range indices {
			out[n] = uint8(i)
		}
		p.kind, p.data = IndexUint8, out
	case highest <= gomath.MaxUint16:
		out := make([]uint16, len(indices))
		for n, i := range indices {
			out[n] = uint16(i)
		}
		p.kind, p.data = IndexUint16, out
	case highest <= gomath.MaxUint32:
		out := make([]uint32, len(indices))
		for n, i := range indices {
			out[n] = uint32(i)
		}
		p.kind, p.data = IndexUint32, out
	default:
		return p, fmt.Errorf("element buffer: index %d does not fit in 32 bits: %w", highest, core.ErrInvalidArgument)
	}
	return p, nil
}

func NewElementBuffer[I Index](ctx *Context, usage BufferUsage, indices []I) (*ElementBuffer, error) {
	if len(indices) == 0 {
		core.LogError("element buffer: no index data")
		return nil, fmt.Errorf("element buffer: empty data: %w", core.ErrInvalidArgument)
	}
	packed, err := packIndices(indices)
	if err != nil {
		return nil, err
	}
	handle := ctx.Device.CreateBuffer()
	if handle == InvalidHandle {
		return nil, &core.ResourceCreationError{Kind: core.ResourceKindElementBuffer}
	}
	eb := &ElementBuffer{}
	eb.track(ctx, core.ResourceKindElementBuffer, handle, fmt.Sprintf("%d x %s", packed.count, packed.kind), eb)
	eb.upload(usage, packed)
	return eb, nil
}

func (eb *ElementBuffer) upload(usage BufferUsage, p packedIndices) {
	eb.usage = usage
	eb.indexType = p.kind
	eb.count = p.count
	eb.size = p.size()
	eb.ctx.Device.BufferData(eb.handle, eb.size, p.data, usage)
}

// Update replaces the indices, writing in place when the packed byte size
// and usage are unchanged and reallocating otherwise.
func (eb *ElementBuffer) Update(usage BufferUsage, indices []uint32) error {
	if eb.released {
		return eb.releasedError("update")
	}
	if len(indices) == 0 {
		return fmt.Errorf("element buffer update: empty data: %w", core.ErrInvalidArgument)
	}
	packed, err := packIndices(indices)
	if err != nil {
		return err
	}
	if packed.size() == eb.size && usage == eb.usage {
		eb.indexType = packed.kind
		eb.count = packed.count
		eb.ctx.Device.BufferSubData(eb.handle, 0, eb.size, packed.data)
		return nil
	}

	handle := eb.ctx.Device.CreateBuffer()
	if handle == InvalidHandle {
		return &core.ResourceCreationError{Kind: core.ResourceKindElementBuffer, Reason: "reallocation"}
	}
	eb.ctx.Bindings.ReleaseBuffer(eb.handle)
	eb.ctx.Device.DeleteBuffer(eb.handle)
	eb.retarget(handle)
	eb.upload(usage, packed)
	return nil
}

func (eb *ElementBuffer) Bind() {
	if !eb.live("bind") {
		return
	}
	eb.ctx.Bindings.BindBuffer(ElementArrayBuffer, eb.handle)
}

func (eb *ElementBuffer) Dispose() {
	if !eb.release(eb) {
		return
	}
	eb.ctx.Bindings.ReleaseBuffer(eb.handle)
	eb.ctx.Device.DeleteBuffer(eb.handle)
}

func (eb *ElementBuffer) IndexType() IndexType { return eb.indexType }
func (eb *ElementBuffer) Count() int            { return eb.count }
func (eb *ElementBuffer) Size() int             { return eb.size }
func (eb *ElementBuffer) Usage() BufferUsage    { return eb.usage }
