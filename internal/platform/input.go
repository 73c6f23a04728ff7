package platform

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/scrimkit/scrim/internal/input"
)

// BindInput installs GLFW callbacks on the window that translate native
// input into router events. The router's live cursor hook is pointed at
// the window so focus decisions read the real cursor position rather
// than the last motion event.
//
// Keys with no portable mapping are dropped before they reach the
// router. Mouse button callbacks carry no position in GLFW, so the
// press location is read from the window at callback time.
func BindInput(w *Window, r *input.Router) {
	r.SetCursorPositionFunc(w.CursorPosition)

	win := w.Handle()
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		k := translateKey(key)
		if k == input.KeyNone {
			return
		}
		m := translateMods(mods)
		switch action {
		case glfw.Press, glfw.Repeat:
			r.ProcessEvent(input.NewKeyPress(k, m))
		case glfw.Release:
			r.ProcessEvent(input.NewKeyRelease(k, m))
		}
	})
	win.SetCharCallback(func(_ *glfw.Window, char rune) {
		r.ProcessEvent(input.NewTextInput(char))
	})
	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		r.ProcessEvent(input.NewMouseMove(x, y))
	})
	win.SetMouseButtonCallback(func(gw *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		b := translateButton(button)
		if b == input.ButtonNone {
			return
		}
		x, y := gw.GetCursorPos()
		m := translateMods(mods)
		switch action {
		case glfw.Press:
			r.ProcessEvent(input.NewMouseButtonPress(b, x, y, m))
		case glfw.Release:
			r.ProcessEvent(input.NewMouseButtonRelease(b, x, y, m))
		}
	})
	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		r.ProcessEvent(input.NewMouseWheel(xoff, yoff))
	})
}

// translateKey maps a GLFW key to the portable key set. Letter, digit
// and function key blocks are contiguous in both enums, so those map
// arithmetically; everything else goes through the switch. Unmapped
// keys come back as KeyNone.
func translateKey(key glfw.Key) input.Key {
	switch {
	case key >= glfw.KeyA && key <= glfw.KeyZ:
		return input.KeyA + input.Key(key-glfw.KeyA)
	case key >= glfw.Key0 && key <= glfw.Key9:
		return input.Key0 + input.Key(key-glfw.Key0)
	case key >= glfw.KeyF1 && key <= glfw.KeyF12:
		return input.KeyF1 + input.Key(key-glfw.KeyF1)
	}
	switch key {
	case glfw.KeyTab:
		return input.KeyTab
	case glfw.KeyLeft:
		return input.KeyLeft
	case glfw.KeyRight:
		return input.KeyRight
	case glfw.KeyUp:
		return input.KeyUp
	case glfw.KeyDown:
		return input.KeyDown
	case glfw.KeyPageUp:
		return input.KeyPageUp
	case glfw.KeyPageDown:
		return input.KeyPageDown
	case glfw.KeyHome:
		return input.KeyHome
	case glfw.KeyEnd:
		return input.KeyEnd
	case glfw.KeyInsert:
		return input.KeyInsert
	case glfw.KeyDelete:
		return input.KeyDelete
	case glfw.KeyBackspace:
		return input.KeyBackspace
	case glfw.KeySpace:
		return input.KeySpace
	case glfw.KeyEnter, glfw.KeyKPEnter:
		return input.KeyEnter
	case glfw.KeyEscape:
		return input.KeyEscape
	default:
		return input.KeyNone
	}
}

// translateButton maps a GLFW mouse button to the portable set.
func translateButton(button glfw.MouseButton) input.Button {
	switch button {
	case glfw.MouseButtonLeft:
		return input.ButtonLeft
	case glfw.MouseButtonRight:
		return input.ButtonRight
	case glfw.MouseButtonMiddle:
		return input.ButtonMiddle
	case glfw.MouseButton4:
		return input.ButtonX1
	case glfw.MouseButton5:
		return input.ButtonX2
	default:
		return input.ButtonNone
	}
}

// translateMods converts the GLFW modifier bitmask.
func translateMods(m glfw.ModifierKey) input.Modifiers {
	var out input.Modifiers
	if m&glfw.ModShift != 0 {
		out |= input.ModShift
	}
	if m&glfw.ModControl != 0 {
		out |= input.ModCtrl
	}
	if m&glfw.ModAlt != 0 {
		out |= input.ModAlt
	}
	if m&glfw.ModSuper != 0 {
		out |= input.ModSuper
	}
	return out
}
