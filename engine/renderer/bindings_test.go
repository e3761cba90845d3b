package renderer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/jackal/engine/renderer"
)

func TestBindSameHandleOnce(t *testing.T) {
	ctx, device := newTestContext(t, false)

	a, err := renderer.NewVertexBuffer(ctx, renderer.UsageStatic, quad())
	require.NoError(t, err)
	b, err := renderer.NewVertexBuffer(ctx, renderer.UsageStatic, quad())
	require.NoError(t, err)

	a.Bind()
	a.Bind()
	assert.Equal(t, 1, device.Calls["BindBuffer"])

	b.Bind()
	assert.Equal(t, 2, device.Calls["BindBuffer"])
	assert.Equal(t, b.Handle(), ctx.Bindings.BoundBuffer(renderer.ArrayBuffer))

	a.Dispose()
	b.Dispose()
}

func TestDisposeInvalidatesReusedHandle(t *testing.T) {
	ctx, device := newTestContext(t, false)

	first, err := renderer.NewVertexBuffer(ctx, renderer.UsageStatic, quad())
	require.NoError(t, err)
	first.Bind()
	handle := first.Handle()

	first.Dispose()
	assert.Equal(t, renderer.InvalidHandle, ctx.Bindings.BoundBuffer(renderer.ArrayBuffer))
	assert.Equal(t, 2, device.Calls["BindBuffer"], "dispose unbinds")

	second, err := renderer.NewVertexBuffer(ctx, renderer.UsageStatic, quad())
	require.NoError(t, err)
	require.Equal(t, handle, second.Handle(), "the device reuses the deleted name")

	second.Bind()
	assert.Equal(t, 3, device.Calls["BindBuffer"])
	second.Dispose()
}

func TestDisposeUnboundResourceDoesNotUnbind(t *testing.T) {
	ctx, device := newTestContext(t, false)

	a, err := renderer.NewVertexBuffer(ctx, renderer.UsageStatic, quad())
	require.NoError(t, err)
	b, err := renderer.NewVertexBuffer(ctx, renderer.UsageStatic, quad())
	require.NoError(t, err)

	b.Bind()
	a.Dispose()
	assert.Equal(t, 1, device.Calls["BindBuffer"])
	assert.Equal(t, b.Handle(), ctx.Bindings.BoundBuffer(renderer.ArrayBuffer))
	b.Dispose()
}

func TestVertexArraySwitchMarksElementBufferStale(t *testing.T) {
	ctx, device := newTestContext(t, false)

	eb, err := renderer.NewElementBuffer(ctx, renderer.UsageStatic, []uint16{0, 1, 2})
	require.NoError(t, err)
	vao, err := renderer.NewVertexArray(ctx)
	require.NoError(t, err)

	eb.Bind()
	vao.Bind()
	eb.Bind()
	assert.Equal(t, 2, device.Calls["BindBuffer"], "element binding belongs to the vertex array")

	vao.Dispose()
	eb.Dispose()
}

func TestProgramAndTextureUnitCache(t *testing.T) {
	ctx, device := newTestContext(t, false)

	b := ctx.Bindings
	assert.True(t, b.UseProgram(3))
	assert.False(t, b.UseProgram(3))
	b.ReleaseProgram(3)
	assert.Equal(t, renderer.InvalidHandle, b.BoundProgram())
	assert.Equal(t, 2, device.Calls["UseProgram"])

	assert.True(t, b.BindTexture(0, 7))
	assert.True(t, b.BindTexture(1, 7))
	assert.False(t, b.BindTexture(1, 7))
	b.ReleaseTexture(7)
	assert.Equal(t, renderer.InvalidHandle, b.BoundTexture(0))
	assert.Equal(t, renderer.InvalidHandle, b.BoundTexture(1))
	assert.Equal(t, 4, device.Calls["BindTextureUnit"])

	b.Invalidate()
	assert.True(t, b.UseProgram(renderer.InvalidHandle))
}
