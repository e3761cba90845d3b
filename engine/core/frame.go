package core

import (
	"fmt"
	"math"
)

const DefaultFrameRateCap = 120

type VSyncMode int8

const (
	VSyncDisabled VSyncMode = 0
	VSyncEnabled  VSyncMode = 1
	// VSyncAdaptive tears instead of stalling when a frame misses the refresh.
	VSyncAdaptive VSyncMode = -1
)

func (m VSyncMode) String() string {
	switch m {
	case VSyncDisabled:
		return "disabled"
	case VSyncEnabled:
		return "enabled"
	case VSyncAdaptive:
		return "adaptive"
	}
	return "unknown"
}

// ParseVSyncMode maps a config string to a mode.
func ParseVSyncMode(s string) (VSyncMode, error) {
	switch s {
	case "disabled", "off":
		return VSyncDisabled, nil
	case "enabled", "on", "":
		return VSyncEnabled, nil
	case "adaptive":
		return VSyncAdaptive, nil
	}
	return VSyncEnabled, fmt.Errorf("%w: unknown vsync mode %q", ErrInvalidConfiguration, s)
}

type Sleeper interface {
	DelayNS(ns uint64)
}

type SwapIntervalSetter interface {
	SetSwapInterval(interval int) error
}

// RenderScheduler runs the render step once per frame and applies the frame rate cap.
type RenderScheduler struct {
	clock   *Clock
	sleeper Sleeper
	metrics *Metrics

	frameRateCap uint32
	vsync        VSyncMode
	renderStart  uint64
	frameTime    float64
	frames       uint64
}

func NewRenderScheduler(clock *Clock, sleeper Sleeper) *RenderScheduler {
	return &RenderScheduler{
		clock:        clock,
		sleeper:      sleeper,
		metrics:      NewMetrics(),
		frameRateCap: DefaultFrameRateCap,
		vsync:        VSyncEnabled,
		renderStart:  clock.Now(),
	}
}

// Process invokes render once and marks frameStart as the start of this frame.
func (r *RenderScheduler) Process(frameStart uint64, render func() error) error {
	r.renderStart = frameStart
	r.frames++
	if render == nil {
		return nil
	}
	return render()
}

// HandleFrameRateCap measures the frame and, when a cap is set, sleeps off the
// remainder of the frame budget. Call it after presenting.
func (r *RenderScheduler) HandleFrameRateCap() {
	elapsed := r.clock.Since(r.renderStart)
	r.frameTime = r.clock.Milliseconds(elapsed)

	if r.frameRateCap != 0 {
		capTime := r.clock.Frequency() / (uint64(r.frameRateCap) + 1)
		if elapsed < capTime {
			r.sleeper.DelayNS(r.clock.Nanoseconds(capTime - elapsed))
			elapsed = r.clock.Since(r.renderStart)
			r.frameTime = r.clock.Milliseconds(elapsed)
		}
	}

	r.metrics.Update(r.clock.Seconds(elapsed))
}

// FrameRateCap is the maximum frames per second, 0 when uncapped.
func (r *RenderScheduler) FrameRateCap() uint32 {
	return r.frameRateCap
}

func (r *RenderScheduler) SetFrameRateCap(hz uint32) {
	r.frameRateCap = hz
}

// FrameTime is the duration of the last frame in milliseconds.
func (r *RenderScheduler) FrameTime() float64 {
	return r.frameTime
}

func (r *RenderScheduler) FPS() int {
	if r.frameTime <= 0 {
		return 0
	}
	return int(math.Floor(1000.0 / r.frameTime))
}

func (r *RenderScheduler) Frames() uint64 {
	return r.frames
}

func (r *RenderScheduler) Metrics() *Metrics {
	return r.metrics
}

func (r *RenderScheduler) VSync() VSyncMode {
	return r.vsync
}

// SetVSync forwards mode to the swap interval. Adaptive falls back to
// Enabled when the platform rejects it.
func (r *RenderScheduler) SetVSync(mode VSyncMode, swap SwapIntervalSetter) error {
	switch mode {
	case VSyncDisabled, VSyncEnabled:
		if err := swap.SetSwapInterval(int(mode)); err != nil {
			return fmt.Errorf("%w: swap interval %d: %w", ErrPlatform, mode, err)
		}
	case VSyncAdaptive:
		if err := swap.SetSwapInterval(int(VSyncAdaptive)); err != nil {
			LogWarn("adaptive vsync unavailable (%s), using vsync", err)
			if err := swap.SetSwapInterval(int(VSyncEnabled)); err != nil {
				return fmt.Errorf("%w: swap interval %d: %w", ErrPlatform, VSyncEnabled, err)
			}
			mode = VSyncEnabled
		}
	default:
		return fmt.Errorf("%w: vsync mode %d", ErrInvalidArgument, mode)
	}
	r.vsync = mode
	return nil
}
