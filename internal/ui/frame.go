// Package ui defines the immediate-mode drawing surface the overlay
// screens render against. The embedding game supplies the toolkit that
// implements it; tests drive screens with a scripted fake.
package ui

import "github.com/scrimkit/scrim/internal/input"

// RowState reports what the pointer did to a row or selectable during
// the current frame.
type RowState struct {
	Hovered       bool
	Clicked       bool
	DoubleClicked bool
}

// Frame is one frame of an immediate-mode GUI. Widget calls both draw
// and report interaction; key and mouse queries expose the ambient
// input state for the frame being built.
//
// Widget ids must be stable across frames; labels are display text and
// may change freely.
type Frame interface {
	// BeginWindow opens a window. A false return means the window is
	// collapsed or clipped and its contents should be skipped;
	// EndWindow must be called either way.
	BeginWindow(id, title string, bounds input.Rect) bool
	EndWindow()

	Text(text string)
	TextColored(text string, color uint32)
	Button(label string) bool
	Selectable(id, label string, selected bool) RowState
	InputText(id string, text *string) bool
	Tooltip(text string)

	// BeginTable opens a table with one header per column. A false
	// return skips the body; EndTable must be called either way.
	BeginTable(id string, columns []string) bool
	TableRow(id string, cells []string, selected bool) RowState
	EndTable()

	// TabBar draws a row of tabs and returns the selected index, which
	// is the active index unchanged unless the user picked another tab
	// this frame.
	TabBar(id string, labels []string, active int) int

	// KeyPressed reports whether the key went down this frame.
	KeyPressed(k input.Key) bool
	Modifiers() input.Modifiers
	MousePos() (x, y float64)
	WheelDelta() (dx, dy float64)
}

// Colors used by the stock screens, packed RGBA.
const (
	ColorText      = 0xE8E8E8FF
	ColorTextDim   = 0x9A9A9AFF
	ColorHighlight = 0xFFD24DFF
	ColorDanger    = 0xE5484DFF
	ColorGood      = 0x46A758FF
)
