package platform

import (
	"fmt"

	"github.com/spaghettifunk/jackal/engine/core"
)

type WindowFlags uint32

const (
	WindowResizable WindowFlags = 1 << iota
	WindowBorderless
	WindowHidden
)

// WindowSettings describes the window the platform opens and keeps in sync.
type WindowSettings struct {
	Title  string
	Width  int32
	Height int32
	Flags  WindowFlags
}

func DefaultWindowSettings() WindowSettings {
	return WindowSettings{
		Title:  "Jackal Engine",
		Width:  320,
		Height: 240,
		Flags:  WindowResizable,
	}
}

func (s WindowSettings) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", core.ErrInvalidConfiguration, s.Width, s.Height)
	}
	return nil
}

// ContextSettings selects the OpenGL context requested at startup.
type ContextSettings struct {
	Major int
	Minor int
	Debug bool
}

func DefaultContextSettings() ContextSettings {
	return ContextSettings{Major: 4, Minor: 6}
}

type DisplayMode struct {
	Width       int32
	Height      int32
	RefreshRate float32
}

func (m DisplayMode) String() string {
	return fmt.Sprintf("%dx%d@%.0fHz", m.Width, m.Height, m.RefreshRate)
}

type FullscreenMode uint8

const (
	Windowed FullscreenMode = iota
	BorderlessFullscreen
	ExclusiveFullscreen
)

// Platform owns the native window, its GL context and the OS event queue.
// Every method must be called from the goroutine that called Startup.
type Platform interface {
	core.CounterSource
	core.Sleeper
	core.SwapIntervalSetter
	core.InputSource
	core.CursorController

	Startup(window WindowSettings, context ContextSettings) error
	Shutdown() error

	// PollEvent returns the next pending event, false once the queue is drained.
	PollEvent() (core.EventContext, bool)
	SwapWindow()

	ApplyWindowSettings(window WindowSettings) error
	SetWindowPosition(x, y int32)
	DisplayModes() ([]DisplayMode, error)
	// SetFullscreen switches mode; display is only used by ExclusiveFullscreen.
	SetFullscreen(mode FullscreenMode, display *DisplayMode) error
}
