package engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/jackal/engine/core"
	"github.com/spaghettifunk/jackal/engine/internal/fakes"
	"github.com/spaghettifunk/jackal/engine/platform"
	"github.com/spaghettifunk/jackal/engine/renderer"
)

// one tick interval of a 60 Hz scheduler on the fake nanosecond counter, plus one
const frame60 = 1_000_000_000/60 + 1

func testConfig() *ApplicationConfig {
	config := DefaultConfig()
	config.AssetsDir = ""
	config.FrameRateCap = 0
	config.LogLevel = "error"
	return config
}

func newTestEngine(t *testing.T, g *Game) (*Engine, *fakes.Platform, *fakes.Device) {
	t.Helper()
	if g.ApplicationConfig == nil {
		g.ApplicationConfig = testConfig()
	}
	p := fakes.NewPlatform()
	d := fakes.NewDevice()
	e, err := New(g, p, d)
	require.NoError(t, err)
	return e, p, d
}

func quit() core.EventContext {
	return core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT}
}

func TestNewValidatesConfig(t *testing.T) {
	config := testConfig()
	config.TicksPerSecond = 0
	_, err := New(&Game{ApplicationConfig: config}, fakes.NewPlatform(), fakes.NewDevice())
	assert.ErrorIs(t, err, core.ErrInvalidConfiguration)

	_, err = New(&Game{}, nil, fakes.NewDevice())
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestNewFillsDefaultConfig(t *testing.T) {
	g := &Game{}
	_, err := New(g, fakes.NewPlatform(), fakes.NewDevice())
	require.NoError(t, err)
	require.NotNil(t, g.ApplicationConfig)
	assert.Equal(t, "Jackal Engine", g.ApplicationConfig.Name)
}

func TestInitialize(t *testing.T) {
	config := testConfig()
	config.Debug = true
	config.StartPosX, config.StartPosY = 10, 20
	var started bool
	var resized [2]int32
	g := &Game{
		ApplicationConfig: config,
		FnOnStart: func(e *Engine) error {
			started = true
			require.NotNil(t, e.Context())
			return nil
		},
		FnOnResize: func(w, h int32) error {
			resized = [2]int32{w, h}
			return nil
		},
	}
	e, p, d := newTestEngine(t, g)

	require.NoError(t, e.Initialize())
	assert.Equal(t, EngineStageInitialized, e.Stage())
	assert.True(t, p.Started)
	assert.True(t, p.Context.Debug)
	assert.Equal(t, "Jackal Engine", p.Window.Title)
	assert.Equal(t, [2]int32{10, 20}, p.Position)
	assert.True(t, d.Debug)
	assert.Equal(t, []int{1}, p.Intervals)
	assert.True(t, started)
	assert.Equal(t, [2]int32{320, 240}, resized)
	assert.Len(t, e.DisplayModes(), 2)
	assert.Nil(t, e.Assets())

	assert.ErrorIs(t, e.Initialize(), core.ErrInvalidArgument)
}

func TestInitializeFailures(t *testing.T) {
	t.Run("platform", func(t *testing.T) {
		e, p, _ := newTestEngine(t, &Game{})
		p.StartupError = core.ErrPlatform
		assert.ErrorIs(t, e.Initialize(), core.ErrPlatform)
	})

	t.Run("start callback", func(t *testing.T) {
		boom := errors.New("boom")
		e, _, _ := newTestEngine(t, &Game{
			FnOnStart: func(*Engine) error { return boom },
		})
		assert.ErrorIs(t, e.Initialize(), boom)
	})

	t.Run("adaptive vsync falls back", func(t *testing.T) {
		config := testConfig()
		config.VSync = "adaptive"
		e, p, _ := newTestEngine(t, &Game{ApplicationConfig: config})
		p.RejectIntervals[-1] = true
		require.NoError(t, e.Initialize())
		assert.Equal(t, core.VSyncEnabled, e.Frames().VSync())
	})
}

func TestRunTicksAndRenders(t *testing.T) {
	var ticks, renders int
	var deltas []float64
	g := &Game{
		FnOnTick: func(e *Engine, delta float64) error {
			ticks++
			deltas = append(deltas, delta)
			return nil
		},
		FnOnRender: func(e *Engine) error {
			renders++
			return nil
		},
	}
	e, p, d := newTestEngine(t, g)
	p.OnSwap = func(p *fakes.Platform) {
		p.Advance(frame60)
		if p.Swaps == 3 {
			p.Queue(quit())
		}
	}
	require.NoError(t, e.Initialize())
	require.NoError(t, e.Run())

	assert.Equal(t, 3, p.Swaps)
	assert.Equal(t, 3, renders)
	// nothing is owed on the first frame
	assert.Equal(t, 2, ticks)
	for _, delta := range deltas {
		assert.InDelta(t, 1.0/60.0, delta, 1e-9)
	}
	assert.Equal(t, 3, d.Calls["Clear"])
	assert.Equal(t, 1, d.Calls["Viewport"])
	assert.Equal(t, uint64(3), e.Frames().Frames())
	assert.False(t, e.IsRunning())
}

func TestRunAppliesFrameRateCap(t *testing.T) {
	config := testConfig()
	config.FrameRateCap = 60
	e, p, _ := newTestEngine(t, &Game{ApplicationConfig: config})
	p.OnSwap = func(p *fakes.Platform) { p.Queue(quit()) }

	require.NoError(t, e.Initialize())
	require.NoError(t, e.Run())

	require.Len(t, p.Delays, 1)
	assert.Equal(t, uint64(1_000_000_000/61), p.Delays[0])
}

func TestRunStopsOnTickError(t *testing.T) {
	boom := errors.New("boom")
	e, p, _ := newTestEngine(t, &Game{
		FnOnTick: func(*Engine, float64) error { return boom },
	})
	p.OnSwap = func(p *fakes.Platform) { p.Advance(frame60) }

	require.NoError(t, e.Initialize())
	assert.ErrorIs(t, e.Run(), boom)
	assert.Equal(t, 1, p.Swaps)
}

func TestRunStopsOnRenderError(t *testing.T) {
	boom := errors.New("boom")
	e, p, _ := newTestEngine(t, &Game{
		FnOnRender: func(*Engine) error { return boom },
	})

	require.NoError(t, e.Initialize())
	assert.ErrorIs(t, e.Run(), boom)
	assert.Equal(t, 0, p.Swaps)
}

func TestRunBeforeInitialize(t *testing.T) {
	e, _, _ := newTestEngine(t, &Game{})
	assert.ErrorIs(t, e.Run(), core.ErrInvalidArgument)
}

func TestExitRequestCanBeDeclined(t *testing.T) {
	asked := 0
	e, p, _ := newTestEngine(t, &Game{
		FnOnExitRequested: func() bool {
			asked++
			return asked > 1
		},
	})
	p.Queue(quit())
	p.OnSwap = func(p *fakes.Platform) { p.Queue(quit()) }

	require.NoError(t, e.Initialize())
	require.NoError(t, e.Run())

	assert.Equal(t, 2, asked)
	assert.Equal(t, 1, p.Swaps)
}

func TestInterruptIgnoresExitCallback(t *testing.T) {
	e, p, _ := newTestEngine(t, &Game{
		FnOnExitRequested: func() bool { return false },
	})
	p.OnSwap = func(*fakes.Platform) { e.Interrupt() }
	p.Queue(quit())

	require.NoError(t, e.Initialize())
	require.NoError(t, e.Run())
	assert.Equal(t, 1, p.Swaps)
}

func TestResizeSuspendsAndResumes(t *testing.T) {
	var sizes [][2]int32
	e, _, d := newTestEngine(t, &Game{
		FnOnResize: func(w, h int32) error {
			sizes = append(sizes, [2]int32{w, h})
			return nil
		},
	})
	require.NoError(t, e.Initialize())
	sizes = nil

	e.Events().Fire(core.EventContext{Type: core.EVENT_CODE_RESIZED, Data: &core.WindowEvent{}})
	assert.True(t, e.IsSuspended())
	assert.Empty(t, sizes)

	e.Events().Fire(core.EventContext{Type: core.EVENT_CODE_RESIZED, Data: &core.WindowEvent{Width: 800, Height: 600}})
	assert.False(t, e.IsSuspended())
	assert.Equal(t, [][2]int32{{800, 600}}, sizes)

	w, h := e.GetFramebufferSize()
	assert.Equal(t, int32(800), w)
	assert.Equal(t, int32(600), h)

	e.Renderer().BeginFrame()
	assert.Equal(t, [2]int32{800, 600}, d.ViewportSize)
}

func TestSuspendedLoopDoesNotRender(t *testing.T) {
	renders := 0
	e, p, _ := newTestEngine(t, &Game{
		FnOnRender: func(*Engine) error {
			renders++
			return nil
		},
	})
	require.NoError(t, e.Initialize())

	p.Queue(core.EventContext{Type: core.EVENT_CODE_RESIZED, Data: &core.WindowEvent{}})
	p.OnDelay = func(p *fakes.Platform) { p.Queue(quit()) }

	require.NoError(t, e.Run())
	assert.Equal(t, 0, renders)
	assert.Equal(t, 0, p.Swaps)
	assert.Equal(t, []uint64{suspendedDelayNS}, p.Delays)
}

func TestFocusAndWheelEvents(t *testing.T) {
	var mouse, keyboard []bool
	e, _, _ := newTestEngine(t, &Game{
		FnOnMouseFocusChanged:    func(gained bool) { mouse = append(mouse, gained) },
		FnOnKeyboardFocusChanged: func(gained bool) { keyboard = append(keyboard, gained) },
	})
	require.NoError(t, e.Initialize())

	e.Events().Fire(core.EventContext{Type: core.EVENT_CODE_MOUSE_FOCUS, Data: &core.FocusEvent{Gained: true}})
	e.Events().Fire(core.EventContext{Type: core.EVENT_CODE_KEYBOARD_FOCUS, Data: &core.FocusEvent{Gained: false}})
	assert.Equal(t, []bool{true}, mouse)
	assert.Equal(t, []bool{false}, keyboard)

	e.Events().Fire(core.EventContext{Type: core.EVENT_CODE_MOUSE_WHEEL, Data: &core.WheelEvent{Delta: 2}})
	e.Events().Fire(core.EventContext{Type: core.EVENT_CODE_MOUSE_WHEEL, Data: &core.WheelEvent{Delta: 1}})
	e.Input().Process()
	assert.Equal(t, int32(3), e.Input().WheelDelta())
	assert.True(t, e.Input().MouseDown(core.BUTTON_SCROLL_UP))
}

func TestDisplayModes(t *testing.T) {
	e, p, _ := newTestEngine(t, &Game{})
	require.NoError(t, e.Initialize())

	p.Modes = []platform.DisplayMode{{Width: 2560, Height: 1440, RefreshRate: 144}}
	e.Events().Fire(core.EventContext{Type: core.EVENT_CODE_DISPLAY_CHANGED})
	require.Equal(t, p.Modes, e.DisplayModes())

	err := e.SetExclusiveFullscreen(platform.DisplayMode{Width: 640, Height: 480, RefreshRate: 60})
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	require.NoError(t, e.SetExclusiveFullscreen(p.Modes[0]))
	assert.Equal(t, platform.ExclusiveFullscreen, p.Fullscreen)
	assert.Equal(t, int32(2560), p.Window.Width)

	require.NoError(t, e.SetBorderlessFullscreen())
	assert.Equal(t, platform.BorderlessFullscreen, p.Fullscreen)
	require.NoError(t, e.SetWindowed())
	assert.Equal(t, platform.Windowed, p.Fullscreen)
}

func TestSetWindowSettings(t *testing.T) {
	e, p, _ := newTestEngine(t, &Game{})
	require.NoError(t, e.Initialize())

	err := e.SetWindowSettings(platform.WindowSettings{Title: "x"})
	assert.ErrorIs(t, err, core.ErrInvalidConfiguration)

	ws := platform.WindowSettings{Title: "Workbench", Width: 640, Height: 480}
	require.NoError(t, e.SetWindowSettings(ws))
	assert.Equal(t, ws, p.Window)
	assert.Equal(t, ws, e.WindowSettings())
	w, h := e.GetFramebufferSize()
	assert.Equal(t, [2]int32{640, 480}, [2]int32{w, h})
}

func TestShutdownReportsLeaks(t *testing.T) {
	config := testConfig()
	config.Debug = true
	shutdownCalled := false
	g := &Game{
		ApplicationConfig: config,
		FnOnStart: func(e *Engine) error {
			_, err := renderer.NewElementBuffer(e.Context(), renderer.UsageStatic, []uint16{0, 1, 2})
			return err
		},
		FnOnShutdown: func() error {
			shutdownCalled = true
			return nil
		},
	}
	e, p, d := newTestEngine(t, g)
	require.NoError(t, e.Initialize())
	require.Equal(t, 1, e.Context().Registry.Len())

	require.NoError(t, e.Shutdown())
	assert.True(t, shutdownCalled)
	assert.True(t, p.Stopped)
	assert.Equal(t, 1, d.Calls["Shutdown"])
	assert.Equal(t, EngineStageShutdown, e.Stage())

	// idempotent
	require.NoError(t, e.Shutdown())
	assert.Equal(t, 1, d.Calls["Shutdown"])
}

func TestAssetChangesAreFired(t *testing.T) {
	dir := t.TempDir()
	shader := filepath.Join(dir, "basic.frag")
	require.NoError(t, os.WriteFile(shader, []byte("void main() {}"), 0o644))

	config := testConfig()
	config.AssetsDir = dir
	e, _, _ := newTestEngine(t, &Game{ApplicationConfig: config})
	require.NoError(t, e.Initialize())
	defer e.Shutdown()
	require.NotNil(t, e.Assets())

	var changed []string
	e.Events().Register(core.EVENT_CODE_ASSET_CHANGED, t, func(ctx core.EventContext) bool {
		changed = append(changed, ctx.Data.(*core.AssetEvent).Path)
		return true
	})

	require.NoError(t, os.WriteFile(shader, []byte("void main() { }"), 0o644))
	require.Eventually(t, func() bool {
		e.pollAssetChanges()
		return len(changed) > 0
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "basic.frag", changed[0])
}

func TestParseConfig(t *testing.T) {
	config, err := ParseConfig([]byte(`
name = "Workbench"
start_width = 1280
start_height = 720
ticks_per_second = 120
vsync = "adaptive"
rate_change_policy = "reset"
platform = "glfw"
`))
	require.NoError(t, err)
	assert.Equal(t, "Workbench", config.Name)
	assert.Equal(t, 120, config.TicksPerSecond)
	assert.Equal(t, PlatformGLFW, config.Platform)
	// untouched keys keep their defaults
	assert.Equal(t, uint32(core.DefaultFrameRateCap), config.FrameRateCap)
	assert.True(t, config.Resizable)

	policy, err := ParseRateChangePolicy(config.RateChangePolicy)
	require.NoError(t, err)
	assert.Equal(t, core.ResetDebt, policy)
}

func TestParseConfigRejects(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"zero rate", `ticks_per_second = 0`},
		{"negative budget", `max_ticks_per_frame = -1`},
		{"zero size", `start_width = 0`},
		{"vsync", `vsync = "sometimes"`},
		{"policy", `rate_change_policy = "forget"`},
		{"platform", `platform = "wayland"`},
		{"syntax", `name = `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.toml))
			assert.ErrorIs(t, err, core.ErrInvalidConfiguration)
		})
	}
}
