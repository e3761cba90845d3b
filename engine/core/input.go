package core

import (
	"fmt"

	"github.com/spaghettifunk/jackal/engine/containers"
	"github.com/spaghettifunk/jackal/engine/math"
)

type MouseButton uint8

const (
	BUTTON_LEFT MouseButton = iota
	BUTTON_RIGHT
	BUTTON_MIDDLE
	BUTTON_SCROLL_UP
	BUTTON_SCROLL_DOWN
	BUTTON_MAX_BUTTONS
)

func (b MouseButton) String() string {
	switch b {
	case BUTTON_LEFT:
		return "Left Mouse"
	case BUTTON_RIGHT:
		return "Right Mouse"
	case BUTTON_MIDDLE:
		return "Middle Mouse"
	case BUTTON_SCROLL_UP:
		return "Scroll Up"
	case BUTTON_SCROLL_DOWN:
		return "Scroll Down"
	}
	return "Unknown"
}

// MouseButtonMask is the raw button state reported by the platform.
type MouseButtonMask uint32

const (
	MouseMaskLeft MouseButtonMask = 1 << iota
	MouseMaskMiddle
	MouseMaskRight
	MouseMaskX1
	MouseMaskX2
)

type MouseLockMode uint8

const (
	// The cursor moves freely and positions are absolute.
	MouseLockNone MouseLockMode = iota
	// The cursor is confined to MouseRect and positions are absolute.
	MouseLockConstrained
	// The cursor is captured and positions are relative deltas.
	MouseLockLocked
)

func (m MouseLockMode) String() string {
	switch m {
	case MouseLockNone:
		return "none"
	case MouseLockConstrained:
		return "constrained"
	case MouseLockLocked:
		return "locked"
	}
	return "unknown"
}

// InputSource snapshots the device state kept by the platform.
type InputSource interface {
	// KeyboardState returns one entry per scancode, non-zero when held.
	KeyboardState() []uint8
	MouseState() (x, y int32, buttons MouseButtonMask)
	// RelativeMouseState returns the motion since the previous call.
	RelativeMouseState() (x, y int32, buttons MouseButtonMask)
}

// CursorController performs the side effects of mouse lock transitions.
type CursorController interface {
	WindowSize() (width, height int32)
	WarpMouse(x, y int32)
	SetRelativeMouseMode(enabled bool) error
	// SetMouseRect confines the cursor to rect, nil releases it.
	SetMouseRect(rect *math.Rect) error
	ShowCursor(visible bool) error
}

type mouseState struct {
	X       int32
	Y       int32
	Buttons uint8
}

func (m mouseState) has(b MouseButton) bool {
	return m.Buttons&(1<<b) != 0
}

// InputState holds the current and previous samples for keyboard and mouse.
// It is owned by a single engine and must only be touched from the loop goroutine.
type InputState struct {
	source InputSource
	cursor CursorController

	keyboardCurrent  containers.Bitset256
	keyboardPrevious containers.Bitset256
	mouseCurrent     mouseState
	mousePrevious    mouseState
	wheelDelta       int32
	sampledWheel     int32

	lock           MouseLockMode
	mouseRect      math.Rect
	returnToCenter bool
	returnX        int32
	returnY        int32
	hidden         bool
}

func NewInputState(source InputSource, cursor CursorController) *InputState {
	return &InputState{
		source:         source,
		cursor:         cursor,
		returnToCenter: true,
	}
}

// Process samples the platform into the current state.
func (s *InputState) Process() {
	s.keyboardCurrent.Clear()
	keys := s.source.KeyboardState()
	for k := KEY_A; k < KEYS_MAX_KEYS && int(k) < len(keys); k++ {
		if reservedKey(k) {
			continue
		}
		if keys[k] != 0 {
			s.keyboardCurrent.Set(uint8(k))
		}
	}

	var x, y int32
	var mask MouseButtonMask
	if s.lock == MouseLockLocked {
		x, y, mask = s.source.RelativeMouseState()
	} else {
		x, y, mask = s.source.MouseState()
	}

	var buttons uint8
	if mask&MouseMaskLeft != 0 {
		buttons |= 1 << BUTTON_LEFT
	}
	if mask&MouseMaskRight != 0 {
		buttons |= 1 << BUTTON_RIGHT
	}
	if mask&MouseMaskMiddle != 0 {
		buttons |= 1 << BUTTON_MIDDLE
	}
	if s.wheelDelta > 0 {
		buttons |= 1 << BUTTON_SCROLL_UP
	} else if s.wheelDelta < 0 {
		buttons |= 1 << BUTTON_SCROLL_DOWN
	}
	s.mouseCurrent = mouseState{X: x, Y: y, Buttons: buttons}
	s.sampledWheel = s.wheelDelta
}

// PostProcess rolls the current sample into the previous one and clears the wheel.
func (s *InputState) PostProcess() {
	s.keyboardPrevious = s.keyboardCurrent
	s.mousePrevious = s.mouseCurrent
	s.wheelDelta = 0
}

// AddWheelDelta accumulates wheel motion reported by platform events.
func (s *InputState) AddWheelDelta(delta int32) {
	s.wheelDelta += delta
}

// keyboard input
func (s *InputState) KeyDown(key Key) bool {
	return s.keyboardCurrent.Has(uint8(key))
}

func (s *InputState) KeyUp(key Key) bool {
	return !s.keyboardCurrent.Has(uint8(key))
}

func (s *InputState) WasKeyDown(key Key) bool {
	return s.keyboardPrevious.Has(uint8(key))
}

func (s *InputState) KeyPressed(key Key) bool {
	return s.keyboardCurrent.Has(uint8(key)) && !s.keyboardPrevious.Has(uint8(key))
}

func (s *InputState) KeyReleased(key Key) bool {
	return !s.keyboardCurrent.Has(uint8(key)) && s.keyboardPrevious.Has(uint8(key))
}

// AnyKeyDown reports whether any key is held in the current sample.
func (s *InputState) AnyKeyDown() bool {
	return s.keyboardCurrent.Count() > 0
}

// mouse input
func (s *InputState) MouseDown(button MouseButton) bool {
	return s.mouseCurrent.has(button)
}

func (s *InputState) MouseUp(button MouseButton) bool {
	return !s.mouseCurrent.has(button)
}

func (s *InputState) MousePressed(button MouseButton) bool {
	return s.mouseCurrent.has(button) && !s.mousePrevious.has(button)
}

func (s *InputState) MouseReleased(button MouseButton) bool {
	return !s.mouseCurrent.has(button) && s.mousePrevious.has(button)
}

// MousePosition is absolute in window coordinates, or the motion delta when locked.
func (s *InputState) MousePosition() (int32, int32) {
	return s.mouseCurrent.X, s.mouseCurrent.Y
}

func (s *InputState) PreviousMousePosition() (int32, int32) {
	return s.mousePrevious.X, s.mousePrevious.Y
}

// WheelDelta returns the wheel motion captured by the last sample.
func (s *InputState) WheelDelta() int32 {
	return s.sampledWheel
}

func (s *InputState) MouseLock() MouseLockMode {
	return s.lock
}

func (s *InputState) MouseRect() math.Rect {
	return s.mouseRect
}

// SetMouseRect changes the confinement rectangle, applying it at once when constrained.
func (s *InputState) SetMouseRect(rect math.Rect) error {
	s.mouseRect = rect
	if s.lock == MouseLockConstrained {
		return s.applyConstraint()
	}
	return nil
}

// SetMouseReturnToCenter selects where the cursor goes when the lock is released.
func (s *InputState) SetMouseReturnToCenter(enabled bool) {
	s.returnToCenter = enabled
}

// SetMouseReturnPosition sets the release position used when return-to-center is off.
func (s *InputState) SetMouseReturnPosition(x, y int32) {
	s.returnX, s.returnY = x, y
}

func (s *InputState) MouseHidden() bool {
	return s.hidden
}

func (s *InputState) SetMouseHidden(hidden bool) error {
	if err := s.cursor.ShowCursor(!hidden); err != nil {
		return fmt.Errorf("%w: show cursor: %w", ErrPlatform, err)
	}
	s.hidden = hidden
	return nil
}

// SetMouseLock switches between free, constrained and locked cursor modes.
func (s *InputState) SetMouseLock(mode MouseLockMode) error {
	previous := s.lock
	if previous == mode {
		return nil
	}

	switch mode {
	case MouseLockNone:
		if err := s.cursor.SetMouseRect(nil); err != nil {
			return fmt.Errorf("%w: release mouse rect: %w", ErrPlatform, err)
		}
		if err := s.cursor.SetRelativeMouseMode(false); err != nil {
			return fmt.Errorf("%w: relative mouse mode: %w", ErrPlatform, err)
		}
		if s.returnToCenter {
			switch previous {
			case MouseLockLocked:
				w, h := s.cursor.WindowSize()
				s.cursor.WarpMouse(w/2, h/2)
			case MouseLockConstrained:
				s.cursor.WarpMouse(s.mouseRect.Center())
			}
		} else {
			s.cursor.WarpMouse(s.returnX, s.returnY)
		}
	case MouseLockLocked:
		if err := s.cursor.SetMouseRect(nil); err != nil {
			return fmt.Errorf("%w: release mouse rect: %w", ErrPlatform, err)
		}
		if err := s.cursor.SetRelativeMouseMode(true); err != nil {
			return fmt.Errorf("%w: relative mouse mode: %w", ErrPlatform, err)
		}
		// discard the motion accumulated while the cursor was free
		s.source.RelativeMouseState()
	case MouseLockConstrained:
		if err := s.cursor.SetRelativeMouseMode(false); err != nil {
			return fmt.Errorf("%w: relative mouse mode: %w", ErrPlatform, err)
		}
		if err := s.applyConstraint(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: mouse lock mode %d", ErrInvalidArgument, mode)
	}

	s.lock = mode
	LogDebug("mouse lock changed from %s to %s", previous, mode)
	return nil
}

func (s *InputState) applyConstraint() error {
	rect := s.mouseRect
	if err := s.cursor.SetMouseRect(&rect); err != nil {
		return fmt.Errorf("%w: set mouse rect: %w", ErrPlatform, err)
	}
	x, y, _ := s.source.MouseState()
	if !rect.Contains(x, y) {
		s.cursor.WarpMouse(rect.ClampPoint(x, y))
	}
	return nil
}
