package engine

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/spaghettifunk/jackal/engine/assets"
	"github.com/spaghettifunk/jackal/engine/core"
	"github.com/spaghettifunk/jackal/engine/platform"
	"github.com/spaghettifunk/jackal/engine/renderer"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
	// Engine released the window and the GL context
	EngineStageShutdown
)

// time given back to the OS per iteration while the window is minimized
const suspendedDelayNS = 10_000_000

// Engine owns the window, the GL context and the game loop. All of its
// methods must be called from the goroutine that created it, with the OS
// thread locked.
type Engine struct {
	currentStage Stage
	gameInstance *Game
	config       *ApplicationConfig
	isRunning    bool
	isSuspended  bool
	// set from other goroutines, read by the loop
	interrupted atomic.Bool

	platform     platform.Platform
	device       renderer.GraphicsDevice
	events       *core.EventSystem
	clock        *core.Clock
	ticks        *core.TickScheduler
	frames       *core.RenderScheduler
	input        *core.InputState
	context      *renderer.Context
	renderer     *renderer.Renderer
	assetManager *assets.AssetManager

	window       platform.WindowSettings
	displayModes []platform.DisplayMode
	width        int32
	height       int32
}

func New(g *Game, p platform.Platform, device renderer.GraphicsDevice) (*Engine, error) {
	if g == nil || p == nil || device == nil {
		return nil, fmt.Errorf("%w: game, platform and device are required", core.ErrInvalidArgument)
	}
	if g.ApplicationConfig == nil {
		g.ApplicationConfig = DefaultConfig()
	}
	config := g.ApplicationConfig
	if err := config.Validate(); err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	core.SetLogLevel(core.ParseLogLevel(config.LogLevel))

	return &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		config:       config,
		platform:     p,
		device:       device,
		window:       config.WindowSettings(),
		width:        config.StartWidth,
		height:       config.StartHeight,
	}, nil
}

func (e *Engine) Initialize() error {
	if e.currentStage != EngineStageUninitialized {
		return fmt.Errorf("%w: engine already initialized", core.ErrInvalidArgument)
	}
	e.currentStage = EngineStageInitializing
	config := e.config

	e.events = core.NewEventSystem()
	e.events.Register(core.EVENT_CODE_APPLICATION_QUIT, e, e.onQuit)
	e.events.Register(core.EVENT_CODE_RESIZED, e, e.onResized)
	e.events.Register(core.EVENT_CODE_MOUSE_FOCUS, e, e.onFocus)
	e.events.Register(core.EVENT_CODE_KEYBOARD_FOCUS, e, e.onFocus)
	e.events.Register(core.EVENT_CODE_MOUSE_WHEEL, e, e.onWheel)
	e.events.Register(core.EVENT_CODE_DISPLAY_CHANGED, e, e.onDisplayChanged)

	contextSettings := platform.DefaultContextSettings()
	contextSettings.Debug = config.Debug
	if err := e.platform.Startup(e.window, contextSettings); err != nil {
		core.LogError("failed to start the platform: %s", err)
		return err
	}
	if config.StartPosX != 0 || config.StartPosY != 0 {
		e.platform.SetWindowPosition(config.StartPosX, config.StartPosY)
	}

	ctx, err := renderer.NewContext(e.device, config.Debug)
	if err != nil {
		return err
	}
	e.context = ctx
	e.renderer = renderer.NewRenderer(ctx, e.width, e.height)

	// the platform counter is only valid once the platform started
	e.clock = core.NewClock(e.platform)
	ticks, err := core.NewTickScheduler(e.clock, config.TicksPerSecond)
	if err != nil {
		return err
	}
	policy, err := ParseRateChangePolicy(config.RateChangePolicy)
	if err != nil {
		return err
	}
	ticks.SetMaxTicksPerFrame(config.MaxTicksPerFrame)
	ticks.SetRateChangePolicy(policy)
	e.ticks = ticks

	e.frames = core.NewRenderScheduler(e.clock, e.platform)
	e.frames.SetFrameRateCap(config.FrameRateCap)
	vsync, err := core.ParseVSyncMode(config.VSync)
	if err != nil {
		return err
	}
	if err := e.frames.SetVSync(vsync, e.platform); err != nil {
		core.LogError(err.Error())
		return err
	}

	e.input = core.NewInputState(e.platform, e.platform)

	if config.AssetsDir != "" {
		am, err := assets.NewAssetManager()
		if err != nil {
			return err
		}
		am.SetFlipTextures(config.FlipTextures)
		if err := am.Initialize(config.AssetsDir); err != nil {
			core.LogError("failed to index assets in %s: %s", config.AssetsDir, err)
			_ = am.Shutdown()
			return err
		}
		e.assetManager = am
	}

	e.refreshDisplayModes()

	if fn := e.gameInstance.FnOnStart; fn != nil {
		if err := fn(e); err != nil {
			core.LogError("game start failed: %s", err)
			return err
		}
	}
	if fn := e.gameInstance.FnOnResize; fn != nil {
		if err := fn(e.width, e.height); err != nil {
			return err
		}
	}

	// start-up time is not owed to the first frame
	e.ticks.Reset(e.clock.Now())
	e.currentStage = EngineStageInitialized
	return nil
}

// Run drives the loop until an exit request is accepted or a callback fails.
func (e *Engine) Run() error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("%w: engine is not initialized", core.ErrInvalidArgument)
	}
	e.currentStage = EngineStageRunning
	e.isRunning = true

	for e.isRunning {
		e.pumpEvents()
		if e.interrupted.Load() {
			core.LogInfo("interrupted, stopping the game loop")
			e.isRunning = false
		}
		if !e.isRunning {
			break
		}
		e.pollAssetChanges()

		if e.isSuspended {
			e.platform.DelayNS(suspendedDelayNS)
			continue
		}

		frameStart := e.clock.Now()
		if err := e.ticks.Process(frameStart, e.input, e.tick); err != nil {
			core.LogError("game tick failed, stopping: %s", err)
			e.isRunning = false
			return err
		}
		if err := e.frames.Process(frameStart, e.drawFrame); err != nil {
			core.LogError("game render failed, stopping: %s", err)
			e.isRunning = false
			return err
		}
		e.platform.SwapWindow()
		e.frames.HandleFrameRateCap()
	}

	core.LogInfo("game loop stopped after %d frames and %d ticks", e.frames.Frames(), e.ticks.TotalTicks())
	return nil
}

func (e *Engine) tick() error {
	if fn := e.gameInstance.FnOnTick; fn != nil {
		return fn(e, e.ticks.TickDeltaTime())
	}
	return nil
}

func (e *Engine) drawFrame() error {
	return e.renderer.DrawFrame(func() error {
		if fn := e.gameInstance.FnOnRender; fn != nil {
			return fn(e)
		}
		return nil
	})
}

func (e *Engine) pumpEvents() {
	for {
		event, ok := e.platform.PollEvent()
		if !ok {
			return
		}
		e.events.Fire(event)
	}
}

func (e *Engine) pollAssetChanges() {
	if e.assetManager == nil {
		return
	}
	for _, path := range e.assetManager.PollChanges() {
		core.LogDebug("asset changed: %s", path)
		e.events.Fire(core.EventContext{
			Type: core.EVENT_CODE_ASSET_CHANGED,
			Data: &core.AssetEvent{Path: path},
		})
	}
}

// Shutdown releases everything in reverse order of creation. It reports the
// GPU resources still alive when the context is torn down.
func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShutdown || e.currentStage == EngineStageShuttingDown {
		return nil
	}
	e.currentStage = EngineStageShuttingDown
	e.isRunning = false

	var errs []error
	if fn := e.gameInstance.FnOnShutdown; fn != nil {
		if err := fn(); err != nil {
			core.LogError("game shutdown failed: %s", err)
			errs = append(errs, err)
		}
	}
	if e.assetManager != nil {
		if err := e.assetManager.Shutdown(); err != nil {
			errs = append(errs, err)
		}
	}
	if e.context != nil {
		leaks, err := e.context.Shutdown()
		if err != nil {
			errs = append(errs, err)
		}
		if leaks > 0 {
			core.LogWarn("%d GPU resources were still alive at shutdown", leaks)
		}
	}
	if e.events != nil {
		e.events.Shutdown()
	}
	if err := e.platform.Shutdown(); err != nil {
		errs = append(errs, err)
	}

	e.currentStage = EngineStageShutdown
	return errors.Join(errs...)
}

// RequestExit asks the game whether to quit and stops the loop if it agrees.
func (e *Engine) RequestExit() bool {
	if fn := e.gameInstance.FnOnExitRequested; fn != nil && !fn() {
		core.LogDebug("exit request declined by the game")
		return false
	}
	e.isRunning = false
	return true
}

// Interrupt stops the loop at the start of the next iteration without
// consulting the game. It is the only method safe to call from another goroutine.
func (e *Engine) Interrupt() {
	e.interrupted.Store(true)
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

func (e *Engine) IsRunning() bool {
	return e.isRunning
}

func (e *Engine) IsSuspended() bool {
	return e.isSuspended
}

func (e *Engine) Config() *ApplicationConfig {
	return e.config
}

func (e *Engine) Events() *core.EventSystem {
	return e.events
}

func (e *Engine) Input() *core.InputState {
	return e.input
}

func (e *Engine) Clock() *core.Clock {
	return e.clock
}

func (e *Engine) Ticks() *core.TickScheduler {
	return e.ticks
}

func (e *Engine) Frames() *core.RenderScheduler {
	return e.frames
}

func (e *Engine) Metrics() *core.Metrics {
	return e.frames.Metrics()
}

// Context is the GPU resource context; every renderer resource is created from it.
func (e *Engine) Context() *renderer.Context {
	return e.context
}

func (e *Engine) Renderer() *renderer.Renderer {
	return e.renderer
}

// Assets is nil when no asset directory is configured.
func (e *Engine) Assets() *assets.AssetManager {
	return e.assetManager
}

// GetFramebufferSize returns the width and height (in this order)
// of the application framebuffer
func (e *Engine) GetFramebufferSize() (int32, int32) {
	return e.width, e.height
}

// SetTicksPerSecond changes the logic rate; outstanding time is handled
// according to the configured rate change policy.
func (e *Engine) SetTicksPerSecond(ticksPerSecond int) error {
	return e.ticks.SetTicksPerSecond(ticksPerSecond)
}

func (e *Engine) SetVSync(mode core.VSyncMode) error {
	return e.frames.SetVSync(mode, e.platform)
}

func (e *Engine) WindowSettings() platform.WindowSettings {
	return e.window
}

// SetWindowSettings applies new settings to the live window.
func (e *Engine) SetWindowSettings(window platform.WindowSettings) error {
	if err := window.Validate(); err != nil {
		return err
	}
	if err := e.platform.ApplyWindowSettings(window); err != nil {
		core.LogError("failed to apply window settings: %s", err)
		return err
	}
	e.window = window
	e.resize(window.Width, window.Height)
	return nil
}

// DisplayModes lists the modes of the current display, refreshed whenever
// the display configuration changes.
func (e *Engine) DisplayModes() []platform.DisplayMode {
	return e.displayModes
}

func (e *Engine) SetWindowed() error {
	return e.platform.SetFullscreen(platform.Windowed, nil)
}

func (e *Engine) SetBorderlessFullscreen() error {
	return e.platform.SetFullscreen(platform.BorderlessFullscreen, nil)
}

func (e *Engine) SetExclusiveFullscreen(mode platform.DisplayMode) error {
	for _, m := range e.displayModes {
		if m == mode {
			return e.platform.SetFullscreen(platform.ExclusiveFullscreen, &mode)
		}
	}
	return fmt.Errorf("%w: display mode %s is not available", core.ErrInvalidArgument, mode)
}

func (e *Engine) refreshDisplayModes() {
	modes, err := e.platform.DisplayModes()
	if err != nil {
		core.LogWarn("failed to query display modes: %s", err)
		return
	}
	e.displayModes = modes
}

func (e *Engine) onQuit(context core.EventContext) bool {
	core.LogInfo("EVENT_CODE_APPLICATION_QUIT received")
	e.RequestExit()
	return true
}

func (e *Engine) onResized(context core.EventContext) bool {
	we, ok := context.Data.(*core.WindowEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	e.resize(we.Width, we.Height)
	return false
}

func (e *Engine) resize(width, height int32) {
	if width == e.width && height == e.height && !e.isSuspended {
		return
	}
	e.width = width
	e.height = height
	core.LogDebug("Window resize: %d, %d", width, height)

	// Handle minimization
	if width == 0 || height == 0 {
		core.LogInfo("Window minimized, suspending application.")
		e.isSuspended = true
		return
	}
	if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
		// time spent minimized is not owed
		e.ticks.Reset(e.clock.Now())
	}
	e.window.Width = width
	e.window.Height = height
	e.renderer.OnResize(width, height)
	if fn := e.gameInstance.FnOnResize; fn != nil {
		if err := fn(width, height); err != nil {
			core.LogError(err.Error())
		}
	}
}

func (e *Engine) onFocus(context core.EventContext) bool {
	fe, ok := context.Data.(*core.FocusEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	fn := e.gameInstance.FnOnKeyboardFocusChanged
	if context.Type == core.EVENT_CODE_MOUSE_FOCUS {
		fn = e.gameInstance.FnOnMouseFocusChanged
	}
	if fn != nil {
		fn(fe.Gained)
	}
	return false
}

func (e *Engine) onWheel(context core.EventContext) bool {
	we, ok := context.Data.(*core.WheelEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	e.input.AddWheelDelta(we.Delta)
	return false
}

func (e *Engine) onDisplayChanged(context core.EventContext) bool {
	e.refreshDisplayModes()
	return false
}
