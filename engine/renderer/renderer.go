package renderer

import (
	"github.com/spaghettifunk/jackal/engine/core"
)

// Renderer drives the per-frame device state: the viewport follows the
// window size and the back buffer is cleared before the render callback.
type Renderer struct {
	context    *Context
	width      int32
	height     int32
	resized    bool
	clearColor [4]float32
}

func NewRenderer(ctx *Context, width, height int32) *Renderer {
	return &Renderer{
		context:    ctx,
		width:      width,
		height:     height,
		resized:    true,
		clearColor: [4]float32{0.1, 0.1, 0.12, 1.0},
	}
}

func (r *Renderer) Context() *Context {
	return r.context
}

func (r *Renderer) SetClearColor(red, green, blue, alpha float32) {
	r.clearColor = [4]float32{red, green, blue, alpha}
}

// OnResize records the new framebuffer size; the viewport is updated at the
// start of the next frame.
func (r *Renderer) OnResize(width, height int32) {
	if width == r.width && height == r.height {
		return
	}
	r.width = width
	r.height = height
	r.resized = true
}

func (r *Renderer) FramebufferSize() (int32, int32) {
	return r.width, r.height
}

func (r *Renderer) BeginFrame() {
	if r.resized {
		r.context.Device.Viewport(0, 0, r.width, r.height)
		r.resized = false
	}
	c := r.clearColor
	r.context.Device.Clear(c[0], c[1], c[2], c[3])
}

// DrawFrame clears the frame and runs render.
func (r *Renderer) DrawFrame(render func() error) error {
	r.BeginFrame()
	if render == nil {
		return nil
	}
	if err := render(); err != nil {
		core.LogError("render failed: %s", err)
		return err
	}
	return nil
}
