// Package glfw3 implements the engine platform on top of GLFW 3.3.
package glfw3

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/spaghettifunk/jackal/engine/containers"
	"github.com/spaghettifunk/jackal/engine/core"
	emath "github.com/spaghettifunk/jackal/engine/math"
	"github.com/spaghettifunk/jackal/engine/platform"
)

const eventQueueSize = 256

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

type Platform struct {
	Window *glfw.Window

	events *containers.RingQueue[core.EventContext]
	pumped bool

	keys      []uint8
	lastX     float64
	lastY     float64
	relative  bool
	hidden    bool
	mouseRect *emath.Rect
	wheel     float64

	windowedX, windowedY int
	windowedW, windowedH int
}

var _ platform.Platform = (*Platform)(nil)

func New() *Platform {
	return &Platform{
		events: containers.NewRingQueue[core.EventContext](eventQueueSize),
		keys:   make([]uint8, core.KEYS_MAX_KEYS),
	}
}

func (p *Platform) Startup(window platform.WindowSettings, context platform.ContextSettings) error {
	if err := window.Validate(); err != nil {
		return err
	}
	if err := glfw.Init(); err != nil {
		core.LogError("failed to initialize glfw: %s", err)
		return fmt.Errorf("%w: glfw init: %w", core.ErrPlatform, err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, context.Major)
	glfw.WindowHint(glfw.ContextVersionMinor, context.Minor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLDebugContext, boolHint(context.Debug))
	glfw.WindowHint(glfw.Resizable, boolHint(window.Flags&platform.WindowResizable != 0))
	glfw.WindowHint(glfw.Decorated, boolHint(window.Flags&platform.WindowBorderless == 0))
	glfw.WindowHint(glfw.Visible, boolHint(window.Flags&platform.WindowHidden == 0))

	w, err := glfw.CreateWindow(int(window.Width), int(window.Height), window.Title, nil, nil)
	if err != nil {
		core.LogError("failed to create window: %s", err)
		return fmt.Errorf("%w: glfw create window: %w", core.ErrPlatform, err)
	}
	w.MakeContextCurrent()
	p.Window = w

	w.SetCloseCallback(p.closeCallback)
	w.SetFramebufferSizeCallback(p.framebufferSizeCallback)
	w.SetIconifyCallback(p.iconifyCallback)
	w.SetCursorEnterCallback(p.cursorEnterCallback)
	w.SetFocusCallback(p.focusCallback)
	w.SetScrollCallback(p.scrollCallback)
	glfw.SetMonitorCallback(p.monitorCallback)

	core.LogInfo("glfw window %q created (%dx%d, GL %d.%d core)", window.Title, window.Width, window.Height, context.Major, context.Minor)
	return nil
}

func boolHint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

func (p *Platform) Shutdown() error {
	if p.Window != nil {
		p.Window.Destroy()
		p.Window = nil
	}
	glfw.Terminate()
	return nil
}

func (p *Platform) push(ctx core.EventContext) {
	if err := p.events.Enqueue(ctx); err != nil {
		core.LogWarn("platform event queue full, dropping event %d", ctx.Type)
	}
}

func (p *Platform) closeCallback(w *glfw.Window) {
	// the engine decides whether the window really closes
	w.SetShouldClose(false)
	p.push(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
}

func (p *Platform) framebufferSizeCallback(w *glfw.Window, width, height int) {
	p.push(core.EventContext{Type: core.EVENT_CODE_RESIZED, Data: &core.WindowEvent{Width: int32(width), Height: int32(height)}})
}

func (p *Platform) iconifyCallback(w *glfw.Window, iconified bool) {
	if iconified {
		p.push(core.EventContext{Type: core.EVENT_CODE_RESIZED, Data: &core.WindowEvent{}})
		return
	}
	width, height := w.GetFramebufferSize()
	p.framebufferSizeCallback(w, width, height)
}

func (p *Platform) cursorEnterCallback(w *glfw.Window, entered bool) {
	p.push(core.EventContext{Type: core.EVENT_CODE_MOUSE_FOCUS, Data: &core.FocusEvent{Gained: entered}})
}

func (p *Platform) focusCallback(w *glfw.Window, focused bool) {
	p.push(core.EventContext{Type: core.EVENT_CODE_KEYBOARD_FOCUS, Data: &core.FocusEvent{Gained: focused}})
}

func (p *Platform) scrollCallback(w *glfw.Window, xoff, yoff float64) {
	// touchpads report fractions, only whole notches become events
	p.wheel += yoff
	notches := math.Trunc(p.wheel)
	if notches == 0 {
		return
	}
	p.wheel -= notches
	p.push(core.EventContext{Type: core.EVENT_CODE_MOUSE_WHEEL, Data: &core.WheelEvent{Delta: int32(notches)}})
}

func (p *Platform) monitorCallback(monitor *glfw.Monitor, event glfw.PeripheralEvent) {
	p.push(core.EventContext{Type: core.EVENT_CODE_DISPLAY_CHANGED})
}

// PollEvent pumps the OS queue once per drain, then hands out the buffered events.
func (p *Platform) PollEvent() (core.EventContext, bool) {
	if p.events.IsEmpty() && !p.pumped {
		glfw.PollEvents()
		p.pumped = true
	}
	ctx, err := p.events.Dequeue()
	if err != nil {
		p.pumped = false
		return core.EventContext{}, false
	}
	return ctx, true
}

func (p *Platform) SwapWindow() {
	p.Window.SwapBuffers()
}

func (p *Platform) SetSwapInterval(interval int) error {
	if interval < 0 && !glfw.ExtensionSupported("WGL_EXT_swap_control_tear") && !glfw.ExtensionSupported("GLX_EXT_swap_control_tear") {
		return errors.New("adaptive vsync requires swap_control_tear")
	}
	glfw.SwapInterval(interval)
	return nil
}

func (p *Platform) PerformanceCounter() uint64 {
	return glfw.GetTimerValue()
}

func (p *Platform) PerformanceFrequency() uint64 {
	return glfw.GetTimerFrequency()
}

func (p *Platform) DelayNS(ns uint64) {
	time.Sleep(time.Duration(ns))
}

func (p *Platform) KeyboardState() []uint8 {
	for k, gk := range keymap {
		if p.Window.GetKey(gk) == glfw.Press {
			p.keys[k] = 1
		} else {
			p.keys[k] = 0
		}
	}
	return p.keys
}

func (p *Platform) buttons() core.MouseButtonMask {
	var mask core.MouseButtonMask
	if p.Window.GetMouseButton(glfw.MouseButtonLeft) == glfw.Press {
		mask |= core.MouseMaskLeft
	}
	if p.Window.GetMouseButton(glfw.MouseButtonMiddle) == glfw.Press {
		mask |= core.MouseMaskMiddle
	}
	if p.Window.GetMouseButton(glfw.MouseButtonRight) == glfw.Press {
		mask |= core.MouseMaskRight
	}
	if p.Window.GetMouseButton(glfw.MouseButton4) == glfw.Press {
		mask |= core.MouseMaskX1
	}
	if p.Window.GetMouseButton(glfw.MouseButton5) == glfw.Press {
		mask |= core.MouseMaskX2
	}
	return mask
}

func (p *Platform) MouseState() (int32, int32, core.MouseButtonMask) {
	fx, fy := p.Window.GetCursorPos()
	x, y := int32(fx), int32(fy)
	if p.mouseRect != nil && !p.mouseRect.Contains(x, y) {
		x, y = p.mouseRect.ClampPoint(x, y)
		p.Window.SetCursorPos(float64(x), float64(y))
	}
	return x, y, p.buttons()
}

func (p *Platform) RelativeMouseState() (int32, int32, core.MouseButtonMask) {
	x, y := p.Window.GetCursorPos()
	dx, dy := x-p.lastX, y-p.lastY
	p.lastX, p.lastY = x, y
	return int32(dx), int32(dy), p.buttons()
}

func (p *Platform) WindowSize() (int32, int32) {
	w, h := p.Window.GetSize()
	return int32(w), int32(h)
}

func (p *Platform) WarpMouse(x, y int32) {
	p.Window.SetCursorPos(float64(x), float64(y))
}

func (p *Platform) SetRelativeMouseMode(enabled bool) error {
	p.relative = enabled
	p.applyCursorMode()
	if glfw.RawMouseMotionSupported() {
		p.Window.SetInputMode(glfw.RawMouseMotion, boolHint(enabled))
	}
	p.lastX, p.lastY = p.Window.GetCursorPos()
	return nil
}

func (p *Platform) SetMouseRect(rect *emath.Rect) error {
	if rect == nil {
		p.mouseRect = nil
		return nil
	}
	r := *rect
	p.mouseRect = &r
	return nil
}

func (p *Platform) ShowCursor(visible bool) error {
	p.hidden = !visible
	p.applyCursorMode()
	return nil
}

func (p *Platform) applyCursorMode() {
	switch {
	case p.relative:
		p.Window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	case p.hidden:
		p.Window.SetInputMode(glfw.CursorMode, glfw.CursorHidden)
	default:
		p.Window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}

func (p *Platform) ApplyWindowSettings(window platform.WindowSettings) error {
	if err := window.Validate(); err != nil {
		return err
	}
	p.Window.SetTitle(window.Title)
	p.Window.SetSize(int(window.Width), int(window.Height))
	p.Window.SetAttrib(glfw.Resizable, boolHint(window.Flags&platform.WindowResizable != 0))
	p.Window.SetAttrib(glfw.Decorated, boolHint(window.Flags&platform.WindowBorderless == 0))
	return nil
}

func (p *Platform) SetWindowPosition(x, y int32) {
	p.Window.SetPos(int(x), int(y))
}

func (p *Platform) monitor() (*glfw.Monitor, error) {
	if m := p.Window.GetMonitor(); m != nil {
		return m, nil
	}
	if m := glfw.GetPrimaryMonitor(); m != nil {
		return m, nil
	}
	return nil, fmt.Errorf("%w: no monitor connected", core.ErrPlatform)
}

func (p *Platform) DisplayModes() ([]platform.DisplayMode, error) {
	m, err := p.monitor()
	if err != nil {
		return nil, err
	}
	vms := m.GetVideoModes()
	modes := make([]platform.DisplayMode, 0, len(vms))
	for _, vm := range vms {
		modes = append(modes, platform.DisplayMode{Width: int32(vm.Width), Height: int32(vm.Height), RefreshRate: float32(vm.RefreshRate)})
	}
	return modes, nil
}

func (p *Platform) SetFullscreen(mode platform.FullscreenMode, display *platform.DisplayMode) error {
	if p.Window.GetMonitor() == nil {
		p.windowedX, p.windowedY = p.Window.GetPos()
		p.windowedW, p.windowedH = p.Window.GetSize()
	}

	switch mode {
	case platform.Windowed:
		if p.windowedW == 0 || p.windowedH == 0 {
			return nil
		}
		p.Window.SetMonitor(nil, p.windowedX, p.windowedY, p.windowedW, p.windowedH, 0)
	case platform.BorderlessFullscreen:
		m, err := p.monitor()
		if err != nil {
			return err
		}
		vm := m.GetVideoMode()
		p.Window.SetMonitor(m, 0, 0, vm.Width, vm.Height, vm.RefreshRate)
	case platform.ExclusiveFullscreen:
		if display == nil {
			return fmt.Errorf("%w: exclusive fullscreen needs a display mode", core.ErrInvalidArgument)
		}
		m, err := p.monitor()
		if err != nil {
			return err
		}
		p.Window.SetMonitor(m, 0, 0, int(display.Width), int(display.Height), int(display.RefreshRate))
	default:
		return fmt.Errorf("%w: fullscreen mode %d", core.ErrInvalidArgument, mode)
	}
	return nil
}
