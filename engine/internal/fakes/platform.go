package fakes

import (
	"github.com/spaghettifunk/jackal/engine/core"
	"github.com/spaghettifunk/jackal/engine/math"
	"github.com/spaghettifunk/jackal/engine/platform"
)

// Counter is a manually advanced performance counter ticking in nanoseconds.
type Counter struct {
	Value uint64
}

func NewCounter() *Counter {
	// non-zero so a zero mark never looks like a valid start
	return &Counter{Value: 1_000}
}

func (c *Counter) PerformanceCounter() uint64   { return c.Value }
func (c *Counter) PerformanceFrequency() uint64 { return 1_000_000_000 }

func (c *Counter) Advance(ns uint64) { c.Value += ns }

// Platform is a scripted platform. Events are delivered in the order they
// were queued and DelayNS advances the counter instead of sleeping.
type Platform struct {
	*Counter

	Window    platform.WindowSettings
	Context   platform.ContextSettings
	Started   bool
	Stopped   bool
	Events    []core.EventContext
	Swaps     int
	Delays    []uint64
	Intervals []int
	// RejectIntervals lists swap intervals SetSwapInterval refuses.
	RejectIntervals map[int]bool
	StartupError    error

	Keys          []uint8
	MouseX        int32
	MouseY        int32
	RelX          int32
	RelY          int32
	Buttons       core.MouseButtonMask
	Relative      bool
	Rect          *math.Rect
	CursorVisible bool
	Warps         [][2]int32

	Modes      []platform.DisplayMode
	Fullscreen platform.FullscreenMode
	Position   [2]int32

	// OnSwap runs on every SwapWindow, after the swap is counted.
	OnSwap func(p *Platform)
	// OnDelay runs on every DelayNS, after the counter advanced.
	OnDelay func(p *Platform)
}

func NewPlatform() *Platform {
	return &Platform{
		Counter:         NewCounter(),
		RejectIntervals: make(map[int]bool),
		Keys:            make([]uint8, core.KEYS_MAX_KEYS),
		CursorVisible:   true,
		Modes: []platform.DisplayMode{
			{Width: 1920, Height: 1080, RefreshRate: 60},
			{Width: 1280, Height: 720, RefreshRate: 60},
		},
	}
}

// Queue appends events delivered by the following PollEvent calls.
func (p *Platform) Queue(events ...core.EventContext) {
	p.Events = append(p.Events, events...)
}

func (p *Platform) Startup(window platform.WindowSettings, context platform.ContextSettings) error {
	if p.StartupError != nil {
		return p.StartupError
	}
	p.Window = window
	p.Context = context
	p.Started = true
	return nil
}

func (p *Platform) Shutdown() error {
	p.Stopped = true
	return nil
}

func (p *Platform) PollEvent() (core.EventContext, bool) {
	if len(p.Events) == 0 {
		return core.EventContext{}, false
	}
	e := p.Events[0]
	p.Events = p.Events[1:]
	return e, true
}

func (p *Platform) SwapWindow() {
	p.Swaps++
	if p.OnSwap != nil {
		p.OnSwap(p)
	}
}

func (p *Platform) DelayNS(ns uint64) {
	p.Delays = append(p.Delays, ns)
	p.Advance(ns)
	if p.OnDelay != nil {
		p.OnDelay(p)
	}
}

func (p *Platform) SetSwapInterval(interval int) error {
	if p.RejectIntervals[interval] {
		return core.ErrPlatform
	}
	p.Intervals = append(p.Intervals, interval)
	return nil
}

func (p *Platform) KeyboardState() []uint8 { return p.Keys }

func (p *Platform) MouseState() (int32, int32, core.MouseButtonMask) {
	return p.MouseX, p.MouseY, p.Buttons
}

func (p *Platform) RelativeMouseState() (int32, int32, core.MouseButtonMask) {
	x, y := p.RelX, p.RelY
	p.RelX, p.RelY = 0, 0
	return x, y, p.Buttons
}

func (p *Platform) WindowSize() (int32, int32) { return p.Window.Width, p.Window.Height }

func (p *Platform) WarpMouse(x, y int32) {
	p.Warps = append(p.Warps, [2]int32{x, y})
	p.MouseX, p.MouseY = x, y
}

func (p *Platform) SetRelativeMouseMode(enabled bool) error {
	p.Relative = enabled
	return nil
}

func (p *Platform) SetMouseRect(rect *math.Rect) error {
	p.Rect = rect
	return nil
}

func (p *Platform) ShowCursor(visible bool) error {
	p.CursorVisible = visible
	return nil
}

func (p *Platform) ApplyWindowSettings(window platform.WindowSettings) error {
	p.Window = window
	return nil
}

func (p *Platform) SetWindowPosition(x, y int32) { p.Position = [2]int32{x, y} }

func (p *Platform) DisplayModes() ([]platform.DisplayMode, error) { return p.Modes, nil }

func (p *Platform) SetFullscreen(mode platform.FullscreenMode, display *platform.DisplayMode) error {
	p.Fullscreen = mode
	if display != nil {
		p.Window.Width, p.Window.Height = display.Width, display.Height
	}
	return nil
}

var _ platform.Platform = (*Platform)(nil)
