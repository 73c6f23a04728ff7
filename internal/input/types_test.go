package input

import "testing"

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindNone, "none"},
		{KindKeyPress, "key_press"},
		{KindKeyRelease, "key_release"},
		{KindMouseMove, "mouse_move"},
		{KindMouseButtonPress, "mouse_button_press"},
		{KindMouseButtonRelease, "mouse_button_release"},
		{KindMouseWheel, "mouse_wheel"},
		{KindTextInput, "text_input"},
		{Kind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestKind_Classes(t *testing.T) {
	mouse := []Kind{KindMouseMove, KindMouseButtonPress, KindMouseButtonRelease, KindMouseWheel}
	for _, k := range mouse {
		if !k.IsMouse() {
			t.Errorf("%s: IsMouse() = false, want true", k)
		}
		if k.IsKeyboard() {
			t.Errorf("%s: IsKeyboard() = true, want false", k)
		}
	}

	keyboard := []Kind{KindKeyPress, KindKeyRelease, KindTextInput}
	for _, k := range keyboard {
		if !k.IsKeyboard() {
			t.Errorf("%s: IsKeyboard() = false, want true", k)
		}
		if k.IsMouse() {
			t.Errorf("%s: IsMouse() = true, want false", k)
		}
	}

	if KindNone.IsMouse() || KindNone.IsKeyboard() {
		t.Error("KindNone should be neither mouse nor keyboard")
	}
}

func TestPriority_Ordering(t *testing.T) {
	if !(PriorityCritical < PriorityHigh && PriorityHigh < PriorityNormal &&
		PriorityNormal < PriorityLow && PriorityLow < PriorityLowest) {
		t.Error("priority values must order critical < high < normal < low < lowest")
	}
}

func TestPriority_String(t *testing.T) {
	tests := []struct {
		prio Priority
		want string
	}{
		{PriorityCritical, "critical"},
		{PriorityHigh, "high"},
		{PriorityNormal, "normal"},
		{PriorityLow, "low"},
		{PriorityLowest, "lowest"},
		{Priority(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.prio.String(); got != tt.want {
			t.Errorf("Priority(%d).String() = %q, want %q", tt.prio, got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	high := []Kind{KindKeyPress, KindKeyRelease, KindMouseButtonPress, KindMouseButtonRelease, KindTextInput}
	for _, k := range high {
		if got := classify(k); got != PriorityHigh {
			t.Errorf("classify(%s) = %s, want high", k, got)
		}
	}

	normal := []Kind{KindMouseMove, KindMouseWheel, KindNone}
	for _, k := range normal {
		if got := classify(k); got != PriorityNormal {
			t.Errorf("classify(%s) = %s, want normal", k, got)
		}
	}
}

func TestModifiers(t *testing.T) {
	m := ModCtrl | ModShift
	if !m.HasCtrl() || !m.HasShift() {
		t.Error("ctrl+shift mask should report both modifiers")
	}
	if m.HasAlt() || m.HasSuper() {
		t.Error("ctrl+shift mask should not report alt or super")
	}
	if got := m.String(); got != "ctrl+shift" {
		t.Errorf("String() = %q, want %q", got, "ctrl+shift")
	}
	if got := Modifiers(0).String(); got != "none" {
		t.Errorf("zero modifiers String() = %q, want %q", got, "none")
	}
}

func TestRect_Contains(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 100, H: 50}

	tests := []struct {
		x, y float64
		want bool
	}{
		{10, 20, true},    // top-left corner inclusive
		{50, 40, true},    // interior
		{109.9, 69.9, true},
		{110, 40, false}, // right edge exclusive
		{50, 70, false},  // bottom edge exclusive
		{9, 40, false},
		{50, 19, false},
		{-5, -5, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %t, want %t", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestKeyByName(t *testing.T) {
	tests := []struct {
		name string
		want Key
		ok   bool
	}{
		{"a", KeyA, true},
		{"z", KeyZ, true},
		{"escape", KeyEscape, true},
		{"f2", KeyF2, true},
		{"9", Key9, true},
		{"pagedown", KeyPageDown, true},
		{"bogus", KeyNone, false},
		{"", KeyNone, false},
	}
	for _, tt := range tests {
		got, ok := KeyByName(tt.name)
		if ok != tt.ok || got != tt.want {
			t.Errorf("KeyByName(%q) = (%v, %t), want (%v, %t)", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestKey_String(t *testing.T) {
	if got := KeyEscape.String(); got != "escape" {
		t.Errorf("KeyEscape.String() = %q, want %q", got, "escape")
	}
	if got := KeyNone.String(); got != "none" {
		t.Errorf("KeyNone.String() = %q, want %q", got, "none")
	}
	if got := Key(-1).String(); got != "unknown" {
		t.Errorf("Key(-1).String() = %q, want %q", got, "unknown")
	}
}
