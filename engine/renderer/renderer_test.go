package renderer_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spaghettifunk/jackal/engine/renderer"
)

func TestRendererViewportFollowsResize(t *testing.T) {
	ctx, device := newTestContext(t, false)
	r := renderer.NewRenderer(ctx, 320, 240)

	assert.NoError(t, r.DrawFrame(nil))
	assert.NoError(t, r.DrawFrame(nil))
	assert.Equal(t, 1, device.Calls["Viewport"])
	assert.Equal(t, 2, device.Calls["Clear"])

	r.OnResize(640, 480)
	r.OnResize(640, 480)
	assert.NoError(t, r.DrawFrame(func() error { return nil }))
	assert.Equal(t, 2, device.Calls["Viewport"])
	assert.Equal(t, [2]int32{640, 480}, device.ViewportSize)
}

func TestRendererReturnsRenderError(t *testing.T) {
	ctx, _ := newTestContext(t, false)
	r := renderer.NewRenderer(ctx, 1, 1)

	boom := errors.New("boom")
	assert.ErrorIs(t, r.DrawFrame(func() error { return boom }), boom)
}
