package renderer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/jackal/engine/core"
	"github.com/spaghettifunk/jackal/engine/renderer"
)

func TestVertexLayoutOffsets(t *testing.T) {
	layout := renderer.NewVertexLayout().
		Float(3, false).
		HalfFloat(2, false).
		Uint8(4, true).
		Double(1, false)
	require.NoError(t, layout.Err())

	offsets := []uint32{}
	for _, a := range layout.Attributes() {
		offsets = append(offsets, a.Offset)
	}
	assert.Equal(t, []uint32{0, 12, 16, 20}, offsets)
	assert.Equal(t, uint32(28), layout.Stride())
}

func TestVertexLayoutRejectsBadCount(t *testing.T) {
	layout := renderer.NewVertexLayout().Float(0, false).Float(3, false)
	assert.ErrorIs(t, layout.Err(), core.ErrInvalidArgument)
	assert.Empty(t, layout.Attributes())
}

func TestVertexArrayDrawsWithStoredIndexType(t *testing.T) {
	ctx, device := newTestContext(t, false)

	vb, err := renderer.NewVertexBuffer(ctx, renderer.UsageStatic, quad())
	require.NoError(t, err)
	eb, err := renderer.NewElementBuffer(ctx, renderer.UsageStatic, []uint32{0, 1, 2, 2, 3, 0})
	require.NoError(t, err)
	vao, err := renderer.NewVertexArray(ctx)
	require.NoError(t, err)

	layout := renderer.NewVertexLayout().Float(3, false).Float(2, false)
	require.NoError(t, vao.Attach(vb, eb, layout))
	assert.Equal(t, []uint32{0, 12}, device.Attributes[vao.Handle()])
	assert.Equal(t, eb.Handle(), device.ElementBuffers[vao.Handle()])

	vao.Draw(renderer.Triangles)
	vao.Draw(renderer.Triangles)
	require.Len(t, device.Draws, 2)
	assert.True(t, device.Draws[0].Indexed)
	assert.Equal(t, int32(6), device.Draws[0].Count)
	assert.Equal(t, renderer.IndexUint8, device.Draws[0].IndexType)
	assert.Equal(t, 1, device.Calls["BindVertexArray"])

	// the vertex array already holds the element buffer
	eb.Bind()
	assert.Equal(t, 0, device.Calls["BindBuffer"])

	vao.Dispose()
	eb.Dispose()
	vb.Dispose()
}

func TestVertexArrayWithoutElementsDrawsArrays(t *testing.T) {
	ctx, device := newTestContext(t, false)

	vb, err := renderer.NewVertexBuffer(ctx, renderer.UsageStatic, quad())
	require.NoError(t, err)
	vao, err := renderer.NewVertexArray(ctx)
	require.NoError(t, err)
	require.NoError(t, vao.Attach(vb, nil, renderer.NewVertexLayout().Float(3, false).Float(2, false)))

	vao.Draw(renderer.TriangleFan)
	require.Len(t, device.Draws, 1)
	assert.False(t, device.Draws[0].Indexed)
	assert.Equal(t, int32(4), device.Draws[0].Count)

	vao.Dispose()
	vb.Dispose()
}

func TestVertexArrayFollowsReallocatedBuffers(t *testing.T) {
	ctx, device := newTestContext(t, false)

	vb, err := renderer.NewVertexBuffer(ctx, renderer.UsageStatic, quad())
	require.NoError(t, err)
	eb, err := renderer.NewElementBuffer(ctx, renderer.UsageStatic, []uint32{0, 1, 2, 2, 3, 0})
	require.NoError(t, err)
	vao, err := renderer.NewVertexArray(ctx)
	require.NoError(t, err)
	require.NoError(t, vao.Attach(vb, eb, renderer.NewVertexLayout().Float(3, false).Float(2, false)))
	vao.Draw(renderer.Triangles)

	oldElements, oldVertices := eb.Handle(), vb.Handle()
	require.NoError(t, eb.Update(renderer.UsageDynamic, []uint32{0, 1, 2, 2, 3, 0, 0, 2, 3}))
	require.NoError(t, vb.Update(renderer.UsageStatic, append(quad(), quad()...)))
	require.NotEqual(t, oldElements, eb.Handle())
	require.NotEqual(t, oldVertices, vb.Handle())

	vao.Draw(renderer.Triangles)
	assert.Equal(t, eb.Handle(), device.ElementBuffers[vao.Handle()])
	assert.Equal(t, vb.Handle(), device.VertexBuffers[vao.Handle()])
	assert.Equal(t, eb.Handle(), ctx.Bindings.BoundBuffer(renderer.ElementArrayBuffer))
	require.Len(t, device.Draws, 2)
	assert.Equal(t, int32(9), device.Draws[1].Count)
	assert.Equal(t, renderer.IndexUint8, device.Draws[1].IndexType)

	// in-place writes keep the attachment
	calls := device.Calls["VertexArrayElementBuffer"]
	require.NoError(t, eb.Update(renderer.UsageDynamic, []uint32{3, 2, 0, 0, 2, 1, 1, 0, 3}))
	vao.Draw(renderer.Triangles)
	assert.Equal(t, calls, device.Calls["VertexArrayElementBuffer"])

	vao.Dispose()
	eb.Dispose()
	vb.Dispose()
}

func TestVertexArrayDrawsCurrentVertexCount(t *testing.T) {
	ctx, device := newTestContext(t, false)

	vb, err := renderer.NewVertexBuffer(ctx, renderer.UsageStatic, quad())
	require.NoError(t, err)
	vao, err := renderer.NewVertexArray(ctx)
	require.NoError(t, err)
	require.NoError(t, vao.Attach(vb, nil, renderer.NewVertexLayout().Float(3, false).Float(2, false)))

	require.NoError(t, vb.Update(renderer.UsageStatic, quad()[:3]))
	vao.Draw(renderer.Triangles)
	require.Len(t, device.Draws, 1)
	assert.Equal(t, int32(3), device.Draws[0].Count)
	assert.Equal(t, vb.Handle(), device.VertexBuffers[vao.Handle()])

	// two reallocations hand the buffer back its first name; the native
	// object behind it is still new
	calls := device.Calls["VertexArrayVertexBuffer"]
	first := vb.Handle()
	require.NoError(t, vb.Update(renderer.UsageDynamic, quad()))
	require.NoError(t, vb.Update(renderer.UsageStatic, quad()))
	require.Equal(t, first, vb.Handle())
	vao.Draw(renderer.Triangles)
	assert.Equal(t, calls+1, device.Calls["VertexArrayVertexBuffer"])
	assert.Equal(t, int32(4), device.Draws[1].Count)

	vao.Dispose()
	vb.Dispose()
}

func TestVertexArrayAttachValidation(t *testing.T) {
	ctx, device := newTestContext(t, false)
	device.LimitsValue.MaxVertexAttributes = 2
	ctx.Limits = device.LimitsValue

	vb, err := renderer.NewVertexBuffer(ctx, renderer.UsageStatic, quad())
	require.NoError(t, err)
	vao, err := renderer.NewVertexArray(ctx)
	require.NoError(t, err)

	err = vao.Attach(vb, nil, renderer.NewVertexLayout())
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	err = vao.Attach(vb, nil, renderer.NewVertexLayout().Float(1, false).Float(1, false).Float(1, false))
	assert.ErrorIs(t, err, core.ErrDeviceLimitExceeded)

	vb.Dispose()
	err = vao.Attach(vb, nil, renderer.NewVertexLayout().Float(3, false))
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	vao.Dispose()
	vao.Draw(renderer.Triangles)
	assert.Empty(t, device.Draws)
}
