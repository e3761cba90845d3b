package glfw3

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/spaghettifunk/jackal/engine/core"
)

// keymap translates scancode positions to GLFW key tokens.
var keymap = map[core.Key]glfw.Key{
	core.KEY_A:                glfw.KeyA,
	core.KEY_B:                glfw.KeyB,
	core.KEY_C:                glfw.KeyC,
	core.KEY_D:                glfw.KeyD,
	core.KEY_E:                glfw.KeyE,
	core.KEY_F:                glfw.KeyF,
	core.KEY_G:                glfw.KeyG,
	core.KEY_H:                glfw.KeyH,
	core.KEY_I:                glfw.KeyI,
	core.KEY_J:                glfw.KeyJ,
	core.KEY_K:                glfw.KeyK,
	core.KEY_L:                glfw.KeyL,
	core.KEY_M:                glfw.KeyM,
	core.KEY_N:                glfw.KeyN,
	core.KEY_O:                glfw.KeyO,
	core.KEY_P:                glfw.KeyP,
	core.KEY_Q:                glfw.KeyQ,
	core.KEY_R:                glfw.KeyR,
	core.KEY_S:                glfw.KeyS,
	core.KEY_T:                glfw.KeyT,
	core.KEY_U:                glfw.KeyU,
	core.KEY_V:                glfw.KeyV,
	core.KEY_W:                glfw.KeyW,
	core.KEY_X:                glfw.KeyX,
	core.KEY_Y:                glfw.KeyY,
	core.KEY_Z:                glfw.KeyZ,
	core.KEY_0:                glfw.Key0,
	core.KEY_1:                glfw.Key1,
	core.KEY_2:                glfw.Key2,
	core.KEY_3:                glfw.Key3,
	core.KEY_4:                glfw.Key4,
	core.KEY_5:                glfw.Key5,
	core.KEY_6:                glfw.Key6,
	core.KEY_7:                glfw.Key7,
	core.KEY_8:                glfw.Key8,
	core.KEY_9:                glfw.Key9,
	core.KEY_RETURN:           glfw.KeyEnter,
	core.KEY_ESCAPE:           glfw.KeyEscape,
	core.KEY_BACKSPACE:        glfw.KeyBackspace,
	core.KEY_TAB:              glfw.KeyTab,
	core.KEY_SPACE:            glfw.KeySpace,
	core.KEY_MINUS:            glfw.KeyMinus,
	core.KEY_EQUALS:           glfw.KeyEqual,
	core.KEY_LEFT_BRACKET:     glfw.KeyLeftBracket,
	core.KEY_RIGHT_BRACKET:    glfw.KeyRightBracket,
	core.KEY_BACKSLASH:        glfw.KeyBackslash,
	core.KEY_SEMICOLON:        glfw.KeySemicolon,
	core.KEY_APOSTROPHE:       glfw.KeyApostrophe,
	core.KEY_GRAVE:            glfw.KeyGraveAccent,
	core.KEY_COMMA:            glfw.KeyComma,
	core.KEY_PERIOD:           glfw.KeyPeriod,
	core.KEY_SLASH:            glfw.KeySlash,
	core.KEY_CAPS_LOCK:        glfw.KeyCapsLock,
	core.KEY_PRINT_SCREEN:     glfw.KeyPrintScreen,
	core.KEY_SCROLL_LOCK:      glfw.KeyScrollLock,
	core.KEY_PAUSE:            glfw.KeyPause,
	core.KEY_INSERT:           glfw.KeyInsert,
	core.KEY_HOME:             glfw.KeyHome,
	core.KEY_PAGE_UP:          glfw.KeyPageUp,
	core.KEY_DELETE:           glfw.KeyDelete,
	core.KEY_END:              glfw.KeyEnd,
	core.KEY_PAGE_DOWN:        glfw.KeyPageDown,
	core.KEY_RIGHT:            glfw.KeyRight,
	core.KEY_LEFT:             glfw.KeyLeft,
	core.KEY_DOWN:             glfw.KeyDown,
	core.KEY_UP:               glfw.KeyUp,
	core.KEY_NUM_LOCK:         glfw.KeyNumLock,
	core.KEY_KP_DIVIDE:        glfw.KeyKPDivide,
	core.KEY_KP_MULTIPLY:      glfw.KeyKPMultiply,
	core.KEY_KP_MINUS:         glfw.KeyKPSubtract,
	core.KEY_KP_PLUS:          glfw.KeyKPAdd,
	core.KEY_KP_ENTER:         glfw.KeyKPEnter,
	core.KEY_KP_PERIOD:        glfw.KeyKPDecimal,
	core.KEY_NON_US_BACKSLASH: glfw.KeyWorld2,
	core.KEY_APPLICATION:      glfw.KeyMenu,
	core.KEY_KP_EQUALS:        glfw.KeyKPEqual,
	core.KEY_LEFT_CONTROL:     glfw.KeyLeftControl,
	core.KEY_LEFT_SHIFT:       glfw.KeyLeftShift,
	core.KEY_LEFT_ALT:         glfw.KeyLeftAlt,
	core.KEY_LEFT_SUPER:       glfw.KeyLeftSuper,
	core.KEY_RIGHT_CONTROL:    glfw.KeyRightControl,
	core.KEY_RIGHT_SHIFT:      glfw.KeyRightShift,
	core.KEY_RIGHT_ALT:        glfw.KeyRightAlt,
	core.KEY_RIGHT_SUPER:      glfw.KeyRightSuper,
	core.KEY_F1:               glfw.KeyF1,
	core.KEY_F2:               glfw.KeyF2,
	core.KEY_F3:               glfw.KeyF3,
	core.KEY_F4:               glfw.KeyF4,
	core.KEY_F5:               glfw.KeyF5,
	core.KEY_F6:               glfw.KeyF6,
	core.KEY_F7:               glfw.KeyF7,
	core.KEY_F8:               glfw.KeyF8,
	core.KEY_F9:               glfw.KeyF9,
	core.KEY_F10:              glfw.KeyF10,
	core.KEY_F11:              glfw.KeyF11,
	core.KEY_F12:              glfw.KeyF12,
	core.KEY_F13:              glfw.KeyF13,
	core.KEY_F14:              glfw.KeyF14,
	core.KEY_F15:              glfw.KeyF15,
	core.KEY_F16:              glfw.KeyF16,
	core.KEY_F17:              glfw.KeyF17,
	core.KEY_F18:              glfw.KeyF18,
	core.KEY_F19:              glfw.KeyF19,
	core.KEY_F20:              glfw.KeyF20,
	core.KEY_F21:              glfw.KeyF21,
	core.KEY_F22:              glfw.KeyF22,
	core.KEY_F23:              glfw.KeyF23,
	core.KEY_F24:              glfw.KeyF24,
	core.KEY_KP_0:             glfw.KeyKP0,
	core.KEY_KP_1:             glfw.KeyKP1,
	core.KEY_KP_2:             glfw.KeyKP2,
	core.KEY_KP_3:             glfw.KeyKP3,
	core.KEY_KP_4:             glfw.KeyKP4,
	core.KEY_KP_5:             glfw.KeyKP5,
	core.KEY_KP_6:             glfw.KeyKP6,
	core.KEY_KP_7:             glfw.KeyKP7,
	core.KEY_KP_8:             glfw.KeyKP8,
	core.KEY_KP_9:             glfw.KeyKP9,
}
