package input

// Key identifies a keyboard key independent of the windowing backend.
// The platform layer translates native key codes into these values.
type Key int

const (
	KeyNone Key = iota
	KeyTab
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyInsert
	KeyDelete
	KeyBackspace
	KeySpace
	KeyEnter
	KeyEscape
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyCount
)

// keyNames maps keys to their canonical lower-case names. The same names
// are accepted by the bindings chord parser.
var keyNames = map[Key]string{
	KeyTab:       "tab",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyPageUp:    "pageup",
	KeyPageDown:  "pagedown",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyInsert:    "insert",
	KeyDelete:    "delete",
	KeyBackspace: "backspace",
	KeySpace:     "space",
	KeyEnter:     "enter",
	KeyEscape:    "escape",
	KeyA:         "a",
	KeyB:         "b",
	KeyC:         "c",
	KeyD:         "d",
	KeyE:         "e",
	KeyF:         "f",
	KeyG:         "g",
	KeyH:         "h",
	KeyI:         "i",
	KeyJ:         "j",
	KeyK:         "k",
	KeyL:         "l",
	KeyM:         "m",
	KeyN:         "n",
	KeyO:         "o",
	KeyP:         "p",
	KeyQ:         "q",
	KeyR:         "r",
	KeyS:         "s",
	KeyT:         "t",
	KeyU:         "u",
	KeyV:         "v",
	KeyW:         "w",
	KeyX:         "x",
	KeyY:         "y",
	KeyZ:         "z",
	Key0:         "0",
	Key1:         "1",
	Key2:         "2",
	Key3:         "3",
	Key4:         "4",
	Key5:         "5",
	Key6:         "6",
	Key7:         "7",
	Key8:         "8",
	Key9:         "9",
	KeyF1:        "f1",
	KeyF2:        "f2",
	KeyF3:        "f3",
	KeyF4:        "f4",
	KeyF5:        "f5",
	KeyF6:        "f6",
	KeyF7:        "f7",
	KeyF8:        "f8",
	KeyF9:        "f9",
	KeyF10:       "f10",
	KeyF11:       "f11",
	KeyF12:       "f12",
}

// keyByName is the reverse of keyNames, built once at init.
var keyByName = func() map[string]Key {
	m := make(map[string]Key, len(keyNames))
	for k, name := range keyNames {
		m[name] = k
	}
	return m
}()

// String returns the canonical key name, or "none"/"unknown".
func (k Key) String() string {
	if k == KeyNone {
		return "none"
	}
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

// KeyByName resolves a canonical key name to its Key value.
// Lookup is exact; callers lower-case and trim before calling.
func KeyByName(name string) (Key, bool) {
	k, ok := keyByName[name]
	return k, ok
}
