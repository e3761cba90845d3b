package engine

// Game is the callback table an application fills in. Every callback is
// optional.
type Game struct {
	ApplicationConfig *ApplicationConfig
	State             interface{}

	FnOnStart                OnStart
	FnOnTick                 OnTick
	FnOnRender               OnRender
	FnOnResize               OnResize
	FnOnMouseFocusChanged    OnFocusChanged
	FnOnKeyboardFocusChanged OnFocusChanged
	FnOnExitRequested        OnExitRequested
	FnOnShutdown             OnShutdown
}

// OnStart runs once the window and GL context exist, before the first frame.
type OnStart func(e *Engine) error

// OnTick runs once per fixed logic step of deltaTime seconds.
type OnTick func(e *Engine, deltaTime float64) error

// OnRender runs once per frame, after ticking and before the swap.
type OnRender func(e *Engine) error

type OnResize func(width, height int32) error

type OnFocusChanged func(gained bool)

// OnExitRequested decides whether a quit request closes the application.
type OnExitRequested func() bool

// OnShutdown runs before the engine releases the GPU context, so the game can
// dispose what it created.
type OnShutdown func() error
