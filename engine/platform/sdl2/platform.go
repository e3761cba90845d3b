// Package sdl2 implements the engine platform on top of SDL2.
package sdl2

import (
	"fmt"
	"runtime"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/spaghettifunk/jackal/engine/core"
	"github.com/spaghettifunk/jackal/engine/math"
	"github.com/spaghettifunk/jackal/engine/platform"
)

func init() {
	// SDL video and GL calls must run on the main OS thread
	runtime.LockOSThread()
}

type Platform struct {
	window    *sdl.Window
	context   sdl.GLContext
	mouseRect *math.Rect
}

var _ platform.Platform = (*Platform)(nil)

func New() *Platform {
	return &Platform{}
}

type glAttribute struct {
	attr  sdl.GLattr
	value int
}

func wrap(what string, err error) error {
	core.LogError("sdl: %s: %s", what, err)
	return fmt.Errorf("%w: sdl %s: %w", core.ErrPlatform, what, err)
}

func (p *Platform) Startup(window platform.WindowSettings, context platform.ContextSettings) error {
	if err := window.Validate(); err != nil {
		return err
	}
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return wrap("init", err)
	}

	attrs := []glAttribute{
		{sdl.GL_CONTEXT_MAJOR_VERSION, context.Major},
		{sdl.GL_CONTEXT_MINOR_VERSION, context.Minor},
		{sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE},
		{sdl.GL_DOUBLEBUFFER, 1},
		{sdl.GL_DEPTH_SIZE, 24},
	}
	if context.Debug {
		attrs = append(attrs, glAttribute{sdl.GL_CONTEXT_FLAGS, sdl.GL_CONTEXT_DEBUG_FLAG})
	}
	for _, a := range attrs {
		if err := sdl.GLSetAttribute(a.attr, a.value); err != nil {
			return wrap("gl attribute", err)
		}
	}

	var flags uint32 = sdl.WINDOW_OPENGL
	if window.Flags&platform.WindowResizable != 0 {
		flags |= sdl.WINDOW_RESIZABLE
	}
	if window.Flags&platform.WindowBorderless != 0 {
		flags |= sdl.WINDOW_BORDERLESS
	}
	if window.Flags&platform.WindowHidden != 0 {
		flags |= sdl.WINDOW_HIDDEN
	}

	w, err := sdl.CreateWindow(window.Title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, window.Width, window.Height, flags)
	if err != nil {
		return wrap("create window", err)
	}
	p.window = w

	ctx, err := w.GLCreateContext()
	if err != nil {
		return wrap("create gl context", err)
	}
	p.context = ctx
	if err := w.GLMakeCurrent(ctx); err != nil {
		return wrap("make context current", err)
	}

	core.LogInfo("sdl window %q created (%dx%d, GL %d.%d core)", window.Title, window.Width, window.Height, context.Major, context.Minor)
	return nil
}

func (p *Platform) Shutdown() error {
	if p.context != nil {
		sdl.GLDeleteContext(p.context)
		p.context = nil
	}
	if p.window != nil {
		if err := p.window.Destroy(); err != nil {
			return wrap("destroy window", err)
		}
		p.window = nil
	}
	sdl.Quit()
	return nil
}

func (p *Platform) PollEvent() (core.EventContext, bool) {
	for {
		event := sdl.PollEvent()
		if event == nil {
			return core.EventContext{}, false
		}
		if ctx, ok := p.translate(event); ok {
			return ctx, true
		}
	}
}

func (p *Platform) translate(event sdl.Event) (core.EventContext, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT}, true
	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_CLOSE:
			return core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT}, true
		case sdl.WINDOWEVENT_RESIZED, sdl.WINDOWEVENT_SIZE_CHANGED:
			return core.EventContext{Type: core.EVENT_CODE_RESIZED, Data: &core.WindowEvent{Width: e.Data1, Height: e.Data2}}, true
		case sdl.WINDOWEVENT_MINIMIZED:
			return core.EventContext{Type: core.EVENT_CODE_RESIZED, Data: &core.WindowEvent{}}, true
		case sdl.WINDOWEVENT_RESTORED:
			w, h := p.window.GetSize()
			return core.EventContext{Type: core.EVENT_CODE_RESIZED, Data: &core.WindowEvent{Width: w, Height: h}}, true
		case sdl.WINDOWEVENT_ENTER:
			return core.EventContext{Type: core.EVENT_CODE_MOUSE_FOCUS, Data: &core.FocusEvent{Gained: true}}, true
		case sdl.WINDOWEVENT_LEAVE:
			return core.EventContext{Type: core.EVENT_CODE_MOUSE_FOCUS, Data: &core.FocusEvent{Gained: false}}, true
		case sdl.WINDOWEVENT_FOCUS_GAINED:
			return core.EventContext{Type: core.EVENT_CODE_KEYBOARD_FOCUS, Data: &core.FocusEvent{Gained: true}}, true
		case sdl.WINDOWEVENT_FOCUS_LOST:
			return core.EventContext{Type: core.EVENT_CODE_KEYBOARD_FOCUS, Data: &core.FocusEvent{Gained: false}}, true
		}
	case *sdl.MouseWheelEvent:
		delta := e.Y
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			delta = -delta
		}
		return core.EventContext{Type: core.EVENT_CODE_MOUSE_WHEEL, Data: &core.WheelEvent{Delta: delta}}, true
	case *sdl.DisplayEvent:
		return core.EventContext{Type: core.EVENT_CODE_DISPLAY_CHANGED}, true
	}
	return core.EventContext{}, false
}

func (p *Platform) SwapWindow() {
	p.window.GLSwap()
}

func (p *Platform) SetSwapInterval(interval int) error {
	return sdl.GLSetSwapInterval(interval)
}

func (p *Platform) PerformanceCounter() uint64 {
	return sdl.GetPerformanceCounter()
}

func (p *Platform) PerformanceFrequency() uint64 {
	return sdl.GetPerformanceFrequency()
}

// SDL2 only sleeps with millisecond granularity, the runtime timer does better.
func (p *Platform) DelayNS(ns uint64) {
	time.Sleep(time.Duration(ns))
}

func (p *Platform) KeyboardState() []uint8 {
	return sdl.GetKeyboardState()
}

func (p *Platform) MouseState() (int32, int32, core.MouseButtonMask) {
	x, y, state := sdl.GetMouseState()
	if p.mouseRect != nil && !p.mouseRect.Contains(x, y) {
		// SDL2 only grabs the whole window, confinement to a sub rect happens here
		x, y = p.mouseRect.ClampPoint(x, y)
		p.window.WarpMouseInWindow(x, y)
	}
	return x, y, core.MouseButtonMask(state)
}

func (p *Platform) RelativeMouseState() (int32, int32, core.MouseButtonMask) {
	x, y, state := sdl.GetRelativeMouseState()
	return x, y, core.MouseButtonMask(state)
}

func (p *Platform) WindowSize() (int32, int32) {
	return p.window.GetSize()
}

func (p *Platform) WarpMouse(x, y int32) {
	p.window.WarpMouseInWindow(x, y)
}

func (p *Platform) SetRelativeMouseMode(enabled bool) error {
	sdl.SetRelativeMouseMode(enabled)
	if sdl.GetRelativeMouseMode() != enabled {
		return fmt.Errorf("%w: relative mouse mode not supported", core.ErrPlatform)
	}
	return nil
}

func (p *Platform) SetMouseRect(rect *math.Rect) error {
	if rect == nil {
		p.mouseRect = nil
		p.window.SetGrab(false)
		return nil
	}
	r := *rect
	p.mouseRect = &r
	p.window.SetGrab(true)
	return nil
}

func (p *Platform) ShowCursor(visible bool) error {
	toggle := sdl.DISABLE
	if visible {
		toggle = sdl.ENABLE
	}
	if _, err := sdl.ShowCursor(toggle); err != nil {
		return wrap("show cursor", err)
	}
	return nil
}

func (p *Platform) ApplyWindowSettings(window platform.WindowSettings) error {
	if err := window.Validate(); err != nil {
		return err
	}
	p.window.SetTitle(window.Title)
	p.window.SetSize(window.Width, window.Height)
	p.window.SetResizable(window.Flags&platform.WindowResizable != 0)
	p.window.SetBordered(window.Flags&platform.WindowBorderless == 0)
	return nil
}

func (p *Platform) SetWindowPosition(x, y int32) {
	p.window.SetPosition(x, y)
}

func (p *Platform) DisplayModes() ([]platform.DisplayMode, error) {
	display, err := p.window.GetDisplayIndex()
	if err != nil {
		return nil, wrap("display index", err)
	}
	count, err := sdl.GetNumDisplayModes(display)
	if err != nil {
		return nil, wrap("display mode count", err)
	}
	modes := make([]platform.DisplayMode, 0, count)
	for i := 0; i < count; i++ {
		m, err := sdl.GetDisplayMode(display, i)
		if err != nil {
			return nil, wrap("display mode", err)
		}
		modes = append(modes, platform.DisplayMode{Width: m.W, Height: m.H, RefreshRate: float32(m.RefreshRate)})
	}
	return modes, nil
}

func (p *Platform) SetFullscreen(mode platform.FullscreenMode, display *platform.DisplayMode) error {
	switch mode {
	case platform.Windowed:
		if err := p.window.SetFullscreen(0); err != nil {
			return wrap("windowed", err)
		}
	case platform.BorderlessFullscreen:
		if err := p.window.SetFullscreen(sdl.WINDOW_FULLSCREEN_DESKTOP); err != nil {
			return wrap("borderless fullscreen", err)
		}
	case platform.ExclusiveFullscreen:
		if display == nil {
			return fmt.Errorf("%w: exclusive fullscreen needs a display mode", core.ErrInvalidArgument)
		}
		index, err := p.window.GetDisplayIndex()
		if err != nil {
			return wrap("display index", err)
		}
		want := sdl.DisplayMode{W: display.Width, H: display.Height, RefreshRate: int32(display.RefreshRate)}
		var closest sdl.DisplayMode
		if _, err := sdl.GetClosestDisplayMode(index, &want, &closest); err != nil {
			return wrap("closest display mode", err)
		}
		if err := p.window.SetDisplayMode(&closest); err != nil {
			return wrap("set display mode", err)
		}
		if err := p.window.SetFullscreen(sdl.WINDOW_FULLSCREEN); err != nil {
			return wrap("exclusive fullscreen", err)
		}
	default:
		return fmt.Errorf("%w: fullscreen mode %d", core.ErrInvalidArgument, mode)
	}
	return nil
}
