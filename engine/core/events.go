package core

// EventCode identifies a kind of event. Applications should use codes beyond MAX_EVENT_CODE.
type EventCode uint16

const (
	// Window close or application quit requested by the OS.
	EVENT_CODE_APPLICATION_QUIT EventCode = 0x01
	// Window resized; Data is *WindowEvent.
	EVENT_CODE_RESIZED EventCode = 0x02
	// Mouse entered or left the window; Data is *FocusEvent.
	EVENT_CODE_MOUSE_FOCUS EventCode = 0x03
	// Window gained or lost keyboard focus; Data is *FocusEvent.
	EVENT_CODE_KEYBOARD_FOCUS EventCode = 0x04
	// Mouse wheel moved; Data is *WheelEvent.
	EVENT_CODE_MOUSE_WHEEL EventCode = 0x05
	// Display configuration changed (connected, removed, moved).
	EVENT_CODE_DISPLAY_CHANGED EventCode = 0x06
	// A watched asset changed on disk; Data is *AssetEvent.
	EVENT_CODE_ASSET_CHANGED EventCode = 0x07

	MAX_EVENT_CODE EventCode = 0xFF
)

type EventContext struct {
	Type EventCode
	Data interface{}
}

type WindowEvent struct {
	Width  int32
	Height int32
}

type FocusEvent struct {
	Gained bool
}

type WheelEvent struct {
	Delta int32
}

type AssetEvent struct {
	Path string
}

// Should return true if handled.
type FnOnEvent func(context EventContext) bool

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

// EventSystem dispatches events to listeners registered per code.
type EventSystem struct {
	registered map[EventCode][]registeredEvent
}

func NewEventSystem() *EventSystem {
	return &EventSystem{
		registered: make(map[EventCode][]registeredEvent),
	}
}

/**
 * Register to listen for when events are sent with the provided code. A listener
 * can only be registered once per code.
 * @param code The event code to listen for.
 * @param listener A comparable listener identity, used for unregistering. Can be nil.
 * @param onEvent The callback invoked when the event code is fired.
 * @returns true if the event is successfully registered; otherwise false.
 */
func (es *EventSystem) Register(code EventCode, listener interface{}, onEvent FnOnEvent) bool {
	if onEvent == nil {
		return false
	}
	for _, e := range es.registered[code] {
		if e.listener == listener {
			LogWarn("listener already registered for event code %d", code)
			return false
		}
	}
	es.registered[code] = append(es.registered[code], registeredEvent{
		listener: listener,
		callback: onEvent,
	})
	return true
}

/**
 * Unregister a listener from the provided code.
 * @returns true if the listener was found and removed.
 */
func (es *EventSystem) Unregister(code EventCode, listener interface{}) bool {
	events := es.registered[code]
	for i, e := range events {
		if e.listener == listener {
			es.registered[code] = append(events[:i], events[i+1:]...)
			return true
		}
	}
	return false
}

/**
 * Fires an event to listeners of the given code. If a handler returns
 * true, the event is considered handled and is not passed on to any more listeners.
 * @returns true if handled, otherwise false.
 */
func (es *EventSystem) Fire(context EventContext) bool {
	for _, e := range es.registered[context.Type] {
		if e.callback(context) {
			return true
		}
	}
	return false
}

// Shutdown drops every registration.
func (es *EventSystem) Shutdown() {
	es.registered = make(map[EventCode][]registeredEvent)
}
