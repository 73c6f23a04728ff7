package input

import "time"

// Event is a single input occurrence flowing through the router. Only the
// fields relevant to Kind are meaningful: Key for key presses and
// releases, Rune for text input, Button and X/Y for mouse buttons, X/Y
// for motion, WheelX/WheelY for wheel deltas.
//
// Priority is assigned by the router from the fixed classification table
// when the event is processed; values set by the producer are overwritten.
// Context is an optional routing tag matched against handler contexts.
type Event struct {
	Kind      Kind
	Key       Key
	Rune      rune
	Button    Button
	X         float64
	Y         float64
	WheelX    float64
	WheelY    float64
	Mods      Modifiers
	Priority  Priority
	Context   string
	Timestamp time.Time
	Consumed  bool
}

// NewKeyPress builds a key press event.
func NewKeyPress(key Key, mods Modifiers) *Event {
	return &Event{Kind: KindKeyPress, Key: key, Mods: mods, Timestamp: time.Now()}
}

// NewKeyRelease builds a key release event.
func NewKeyRelease(key Key, mods Modifiers) *Event {
	return &Event{Kind: KindKeyRelease, Key: key, Mods: mods, Timestamp: time.Now()}
}

// NewTextInput builds a translated text input event for one rune.
func NewTextInput(r rune) *Event {
	return &Event{Kind: KindTextInput, Rune: r, Timestamp: time.Now()}
}

// NewMouseMove builds a cursor motion event at the given position.
func NewMouseMove(x, y float64) *Event {
	return &Event{Kind: KindMouseMove, X: x, Y: y, Timestamp: time.Now()}
}

// NewMouseButtonPress builds a button press event at the given position.
func NewMouseButtonPress(btn Button, x, y float64, mods Modifiers) *Event {
	return &Event{Kind: KindMouseButtonPress, Button: btn, X: x, Y: y, Mods: mods, Timestamp: time.Now()}
}

// NewMouseButtonRelease builds a button release event at the given position.
func NewMouseButtonRelease(btn Button, x, y float64, mods Modifiers) *Event {
	return &Event{Kind: KindMouseButtonRelease, Button: btn, X: x, Y: y, Mods: mods, Timestamp: time.Now()}
}

// NewMouseWheel builds a wheel event. Wheel events carry no position of
// their own; the router resolves the cursor through its position hook.
func NewMouseWheel(dx, dy float64) *Event {
	return &Event{Kind: KindMouseWheel, WheelX: dx, WheelY: dy, Timestamp: time.Now()}
}

// WithContext tags the event with a routing context and returns it.
func (e *Event) WithContext(ctx string) *Event {
	e.Context = ctx
	return e
}
