package input

// Kind identifies the shape of an input event's payload.
type Kind uint8

const (
	KindNone Kind = iota
	KindKeyPress
	KindKeyRelease
	KindMouseMove
	KindMouseButtonPress
	KindMouseButtonRelease
	KindMouseWheel
	KindTextInput
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindKeyPress:
		return "key_press"
	case KindKeyRelease:
		return "key_release"
	case KindMouseMove:
		return "mouse_move"
	case KindMouseButtonPress:
		return "mouse_button_press"
	case KindMouseButtonRelease:
		return "mouse_button_release"
	case KindMouseWheel:
		return "mouse_wheel"
	case KindTextInput:
		return "text_input"
	default:
		return "unknown"
	}
}

// IsMouse reports whether the kind carries a cursor position.
func (k Kind) IsMouse() bool {
	switch k {
	case KindMouseMove, KindMouseButtonPress, KindMouseButtonRelease, KindMouseWheel:
		return true
	default:
		return false
	}
}

// IsKeyboard reports whether the kind originates from the keyboard,
// including translated text input.
func (k Kind) IsKeyboard() bool {
	switch k {
	case KindKeyPress, KindKeyRelease, KindTextInput:
		return true
	default:
		return false
	}
}

// Priority orders handler dispatch. Lower values run first, so
// PriorityCritical is the most urgent tier and PriorityLowest the least.
// A handler only receives events whose computed priority is at or above
// its own tier, which lets high-tier handlers opt out of motion spam.
type Priority uint8

const (
	PriorityCritical Priority = iota
	PriorityHigh
	PriorityNormal
	PriorityLow
	PriorityLowest
)

// String returns a human-readable priority name.
func (p Priority) String() string {
	switch p {
	case PriorityCritical:
		return "critical"
	case PriorityHigh:
		return "high"
	case PriorityNormal:
		return "normal"
	case PriorityLow:
		return "low"
	case PriorityLowest:
		return "lowest"
	default:
		return "unknown"
	}
}

// classify assigns the fixed priority tier for a raw event kind.
// Discrete actions must never be dropped, so presses, releases, and text
// go out as PriorityHigh. Continuous motion and wheel deltas are
// PriorityNormal and may be skipped by handlers registered above that.
func classify(k Kind) Priority {
	switch k {
	case KindKeyPress, KindKeyRelease, KindMouseButtonPress, KindMouseButtonRelease, KindTextInput:
		return PriorityHigh
	default:
		return PriorityNormal
	}
}

// Button identifies a mouse button.
type Button uint8

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
	ButtonX1
	ButtonX2
)

// String returns a human-readable button name.
func (b Button) String() string {
	switch b {
	case ButtonNone:
		return "none"
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	case ButtonX1:
		return "x1"
	case ButtonX2:
		return "x2"
	default:
		return "unknown"
	}
}

// Modifiers is a bitmask of modifier keys held during an event.
type Modifiers uint8

const (
	ModCtrl Modifiers = 1 << iota
	ModShift
	ModAlt
	ModSuper
)

func (m Modifiers) HasCtrl() bool  { return m&ModCtrl != 0 }
func (m Modifiers) HasShift() bool { return m&ModShift != 0 }
func (m Modifiers) HasAlt() bool   { return m&ModAlt != 0 }
func (m Modifiers) HasSuper() bool { return m&ModSuper != 0 }

// String returns the held modifiers joined with "+", or "none".
func (m Modifiers) String() string {
	if m == 0 {
		return "none"
	}
	s := ""
	if m.HasCtrl() {
		s += "ctrl+"
	}
	if m.HasShift() {
		s += "shift+"
	}
	if m.HasAlt() {
		s += "alt+"
	}
	if m.HasSuper() {
		s += "super+"
	}
	return s[:len(s)-1]
}

// Rect is an axis-aligned screen rectangle in pixels.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Contains reports whether the point lies inside the rectangle.
// The left and top edges are inclusive, the right and bottom exclusive.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}
