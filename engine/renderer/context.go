package renderer

import (
	"fmt"

	"github.com/spaghettifunk/jackal/engine/core"
)

// Context is the per-GL-context renderer state shared by every resource
// created from it: the device, its limits, the binding cache and, in debug
// mode, the live resource registry.
type Context struct {
	Device   GraphicsDevice
	Limits   DeviceLimits
	Bindings *Bindings
	// Registry is nil unless the context was created in debug mode.
	Registry *Registry

	DefaultFilter     TextureFilter
	DefaultAnisotropy Anisotropy

	debug    bool
	fallback *Shader
}

// NewContext initializes the device against the current GL context and
// queries its limits.
func NewContext(device GraphicsDevice, debug bool) (*Context, error) {
	if device == nil {
		return nil, fmt.Errorf("renderer context: nil device: %w", core.ErrInvalidArgument)
	}
	if err := device.Initialize(debug); err != nil {
		return nil, err
	}
	ctx := &Context{
		Device:            device,
		Limits:            device.Limits(),
		Bindings:          NewBindings(device),
		DefaultFilter:     FilterLinearMipLinear,
		DefaultAnisotropy: AnisotropyNone,
		debug:             debug,
	}
	if debug {
		ctx.Registry = NewRegistry()
	}
	core.LogDebug("renderer context created: %d vertex attributes, max texture %d, max anisotropy %.0f",
		ctx.Limits.MaxVertexAttributes, ctx.Limits.MaxTextureSize, ctx.Limits.MaxAnisotropy)
	return ctx, nil
}

func (c *Context) Debug() bool {
	return c.debug
}

// FallbackShader returns the shared magenta shader, compiling it on first use.
func (c *Context) FallbackShader() (*Shader, error) {
	if c.fallback != nil {
		return c.fallback, nil
	}
	s, err := newShader(c, "fallback", fallbackVertexSource, fallbackFragmentSource)
	if err != nil {
		return nil, err
	}
	s.shared = true
	c.fallback = s
	return s, nil
}

// Shutdown releases context-owned resources, reports leaks in debug mode
// and shuts the device down. It returns the number of leaked resources.
func (c *Context) Shutdown() (int, error) {
	if c.fallback != nil {
		c.fallback.shared = false
		c.fallback.Dispose()
		c.fallback = nil
	}
	leaks := 0
	if c.Registry != nil {
		leaks = c.Registry.Report()
	}
	return leaks, c.Device.Shutdown()
}
