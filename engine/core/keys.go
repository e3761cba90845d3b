package core

// Key is a physical key position, numbered like USB HID / SDL scancodes.
type Key uint8

const (
	KEY_UNKNOWN          Key = 0
	KEY_A                Key = 4
	KEY_B                Key = 5
	KEY_C                Key = 6
	KEY_D                Key = 7
	KEY_E                Key = 8
	KEY_F                Key = 9
	KEY_G                Key = 10
	KEY_H                Key = 11
	KEY_I                Key = 12
	KEY_J                Key = 13
	KEY_K                Key = 14
	KEY_L                Key = 15
	KEY_M                Key = 16
	KEY_N                Key = 17
	KEY_O                Key = 18
	KEY_P                Key = 19
	KEY_Q                Key = 20
	KEY_R                Key = 21
	KEY_S                Key = 22
	KEY_T                Key = 23
	KEY_U                Key = 24
	KEY_V                Key = 25
	KEY_W                Key = 26
	KEY_X                Key = 27
	KEY_Y                Key = 28
	KEY_Z                Key = 29
	KEY_1                Key = 30
	KEY_2                Key = 31
	KEY_3                Key = 32
	KEY_4                Key = 33
	KEY_5                Key = 34
	KEY_6                Key = 35
	KEY_7                Key = 36
	KEY_8                Key = 37
	KEY_9                Key = 38
	KEY_0                Key = 39
	KEY_RETURN           Key = 40
	KEY_ESCAPE           Key = 41
	KEY_BACKSPACE        Key = 42
	KEY_TAB              Key = 43
	KEY_SPACE            Key = 44
	KEY_MINUS            Key = 45
	KEY_EQUALS           Key = 46
	KEY_LEFT_BRACKET     Key = 47
	KEY_RIGHT_BRACKET    Key = 48
	KEY_BACKSLASH        Key = 49
	KEY_NON_US_HASH      Key = 50
	KEY_SEMICOLON        Key = 51
	KEY_APOSTROPHE       Key = 52
	KEY_GRAVE            Key = 53
	KEY_COMMA            Key = 54
	KEY_PERIOD           Key = 55
	KEY_SLASH            Key = 56
	KEY_CAPS_LOCK        Key = 57
	KEY_F1               Key = 58
	KEY_F2               Key = 59
	KEY_F3               Key = 60
	KEY_F4               Key = 61
	KEY_F5               Key = 62
	KEY_F6               Key = 63
	KEY_F7               Key = 64
	KEY_F8               Key = 65
	KEY_F9               Key = 66
	KEY_F10              Key = 67
	KEY_F11              Key = 68
	KEY_F12              Key = 69
	KEY_PRINT_SCREEN     Key = 70
	KEY_SCROLL_LOCK      Key = 71
	KEY_PAUSE            Key = 72
	KEY_INSERT           Key = 73
	KEY_HOME             Key = 74
	KEY_PAGE_UP          Key = 75
	KEY_DELETE           Key = 76
	KEY_END              Key = 77
	KEY_PAGE_DOWN        Key = 78
	KEY_RIGHT            Key = 79
	KEY_LEFT             Key = 80
	KEY_DOWN             Key = 81
	KEY_UP               Key = 82
	KEY_NUM_LOCK         Key = 83
	KEY_KP_DIVIDE        Key = 84
	KEY_KP_MULTIPLY      Key = 85
	KEY_KP_MINUS         Key = 86
	KEY_KP_PLUS          Key = 87
	KEY_KP_ENTER         Key = 88
	KEY_KP_1             Key = 89
	KEY_KP_2             Key = 90
	KEY_KP_3             Key = 91
	KEY_KP_4             Key = 92
	KEY_KP_5             Key = 93
	KEY_KP_6             Key = 94
	KEY_KP_7             Key = 95
	KEY_KP_8             Key = 96
	KEY_KP_9             Key = 97
	KEY_KP_0             Key = 98
	KEY_KP_PERIOD        Key = 99
	KEY_NON_US_BACKSLASH Key = 100
	KEY_APPLICATION      Key = 101
	KEY_POWER            Key = 102
	KEY_KP_EQUALS        Key = 103
	KEY_F13              Key = 104
	KEY_F14              Key = 105
	KEY_F15              Key = 106
	KEY_F16              Key = 107
	KEY_F17              Key = 108
	KEY_F18              Key = 109
	KEY_F19              Key = 110
	KEY_F20              Key = 111
	KEY_F21              Key = 112
	KEY_F22              Key = 113
	KEY_F23              Key = 114
	KEY_F24              Key = 115
	KEY_LEFT_CONTROL     Key = 224
	KEY_LEFT_SHIFT       Key = 225
	KEY_LEFT_ALT         Key = 226
	KEY_LEFT_SUPER       Key = 227
	KEY_RIGHT_CONTROL    Key = 228
	KEY_RIGHT_SHIFT      Key = 229
	KEY_RIGHT_ALT        Key = 230
	KEY_RIGHT_SUPER      Key = 231

	KEYS_MAX_KEYS = KEY_RIGHT_SUPER + 1
)

var keyNames = map[Key]string{
	KEY_UNKNOWN:          "Unknown",
	KEY_A:                "A",
	KEY_B:                "B",
	KEY_C:                "C",
	KEY_D:                "D",
	KEY_E:                "E",
	KEY_F:                "F",
	KEY_G:                "G",
	KEY_H:                "H",
	KEY_I:                "I",
	KEY_J:                "J",
	KEY_K:                "K",
	KEY_L:                "L",
	KEY_M:                "M",
	KEY_N:                "N",
	KEY_O:                "O",
	KEY_P:                "P",
	KEY_Q:                "Q",
	KEY_R:                "R",
	KEY_S:                "S",
	KEY_T:                "T",
	KEY_U:                "U",
	KEY_V:                "V",
	KEY_W:                "W",
	KEY_X:                "X",
	KEY_Y:                "Y",
	KEY_Z:                "Z",
	KEY_1:                "1",
	KEY_2:                "2",
	KEY_3:                "3",
	KEY_4:                "4",
	KEY_5:                "5",
	KEY_6:                "6",
	KEY_7:                "7",
	KEY_8:                "8",
	KEY_9:                "9",
	KEY_0:                "0",
	KEY_RETURN:           "Return",
	KEY_ESCAPE:           "Escape",
	KEY_BACKSPACE:        "Backspace",
	KEY_TAB:              "Tab",
	KEY_SPACE:            "Space",
	KEY_MINUS:            "-",
	KEY_EQUALS:           "=",
	KEY_LEFT_BRACKET:     "[",
	KEY_RIGHT_BRACKET:    "]",
	KEY_BACKSLASH:        "\\",
	KEY_NON_US_HASH:      "#",
	KEY_SEMICOLON:        ";",
	KEY_APOSTROPHE:       "'",
	KEY_GRAVE:            "`",
	KEY_COMMA:            ",",
	KEY_PERIOD:           ".",
	KEY_SLASH:            "/",
	KEY_CAPS_LOCK:        "Caps Lock",
	KEY_F1:               "F1",
	KEY_F2:               "F2",
	KEY_F3:               "F3",
	KEY_F4:               "F4",
	KEY_F5:               "F5",
	KEY_F6:               "F6",
	KEY_F7:               "F7",
	KEY_F8:               "F8",
	KEY_F9:               "F9",
	KEY_F10:              "F10",
	KEY_F11:              "F11",
	KEY_F12:              "F12",
	KEY_PRINT_SCREEN:     "Print Screen",
	KEY_SCROLL_LOCK:      "Scroll Lock",
	KEY_PAUSE:            "Pause",
	KEY_INSERT:           "Insert",
	KEY_HOME:             "Home",
	KEY_PAGE_UP:          "Page Up",
	KEY_DELETE:           "Delete",
	KEY_END:              "End",
	KEY_PAGE_DOWN:        "Page Down",
	KEY_RIGHT:            "Right",
	KEY_LEFT:             "Left",
	KEY_DOWN:             "Down",
	KEY_UP:               "Up",
	KEY_NUM_LOCK:         "Num Lock",
	KEY_KP_DIVIDE:        "Keypad /",
	KEY_KP_MULTIPLY:      "Keypad *",
	KEY_KP_MINUS:         "Keypad -",
	KEY_KP_PLUS:          "Keypad +",
	KEY_KP_ENTER:         "Keypad Enter",
	KEY_KP_1:             "Keypad 1",
	KEY_KP_2:             "Keypad 2",
	KEY_KP_3:             "Keypad 3",
	KEY_KP_4:             "Keypad 4",
	KEY_KP_5:             "Keypad 5",
	KEY_KP_6:             "Keypad 6",
	KEY_KP_7:             "Keypad 7",
	KEY_KP_8:             "Keypad 8",
	KEY_KP_9:             "Keypad 9",
	KEY_KP_0:             "Keypad 0",
	KEY_KP_PERIOD:        "Keypad .",
	KEY_NON_US_BACKSLASH: "Non-US \\",
	KEY_APPLICATION:      "Application",
	KEY_POWER:            "Power",
	KEY_KP_EQUALS:        "Keypad =",
	KEY_F13:              "F13",
	KEY_F14:              "F14",
	KEY_F15:              "F15",
	KEY_F16:              "F16",
	KEY_F17:              "F17",
	KEY_F18:              "F18",
	KEY_F19:              "F19",
	KEY_F20:              "F20",
	KEY_F21:              "F21",
	KEY_F22:              "F22",
	KEY_F23:              "F23",
	KEY_F24:              "F24",
	KEY_LEFT_CONTROL:     "Left Ctrl",
	KEY_LEFT_SHIFT:       "Left Shift",
	KEY_LEFT_ALT:         "Left Alt",
	KEY_LEFT_SUPER:       "Left Super",
	KEY_RIGHT_CONTROL:    "Right Ctrl",
	KEY_RIGHT_SHIFT:      "Right Shift",
	KEY_RIGHT_ALT:        "Right Alt",
	KEY_RIGHT_SUPER:      "Right Super",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "Unknown"
}

// reservedKey reports scancodes that are skipped when sampling: they have
// no key on common keyboards and some drivers report garbage for them.
func reservedKey(k Key) bool {
	switch {
	case k >= KEY_POWER && k <= KEY_KP_EQUALS:
		return true
	case k >= 116 && k <= 223:
		return true
	}
	return false
}
