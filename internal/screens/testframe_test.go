package screens

import (
	"github.com/scrimkit/scrim/internal/input"
	"github.com/scrimkit/scrim/internal/ui"
)

// fakeFrame is a scripted ui.Frame: tests preload interactions by
// widget id and inspect what got drawn afterwards.
type fakeFrame struct {
	rowStates map[string]ui.RowState
	edits     map[string]string
	tabPicks  map[string]int
	pressed   map[input.Key]bool
	buttons   map[string]bool
	collapsed map[string]bool
	mods      input.Modifiers
	wheelX    float64
	wheelY    float64

	windows     []string
	endWindows  int
	texts       []string
	colored     []string
	tables      []string
	endTables   int
	rows        []recordedRow
	selectables []string
	tooltips    []string
	inputs      []string
}

type recordedRow struct {
	id       string
	cells    []string
	selected bool
}

func newFakeFrame() *fakeFrame {
	return &fakeFrame{
		rowStates: make(map[string]ui.RowState),
		edits:     make(map[string]string),
		tabPicks:  make(map[string]int),
		pressed:   make(map[input.Key]bool),
		buttons:   make(map[string]bool),
		collapsed: make(map[string]bool),
	}
}

func (f *fakeFrame) BeginWindow(id, title string, bounds input.Rect) bool {
	f.windows = append(f.windows, id)
	return !f.collapsed[id]
}

func (f *fakeFrame) EndWindow() { f.endWindows++ }

func (f *fakeFrame) Text(text string) { f.texts = append(f.texts, text) }

func (f *fakeFrame) TextColored(text string, color uint32) {
	f.colored = append(f.colored, text)
}

func (f *fakeFrame) Button(label string) bool { return f.buttons[label] }

func (f *fakeFrame) Selectable(id, label string, selected bool) ui.RowState {
	f.selectables = append(f.selectables, id)
	return f.rowStates[id]
}

func (f *fakeFrame) InputText(id string, text *string) bool {
	f.inputs = append(f.inputs, id)
	if edit, ok := f.edits[id]; ok {
		*text = edit
		return true
	}
	return false
}

func (f *fakeFrame) Tooltip(text string) { f.tooltips = append(f.tooltips, text) }

func (f *fakeFrame) BeginTable(id string, columns []string) bool {
	f.tables = append(f.tables, id)
	return true
}

func (f *fakeFrame) TableRow(id string, cells []string, selected bool) ui.RowState {
	f.rows = append(f.rows, recordedRow{id: id, cells: cells, selected: selected})
	return f.rowStates[id]
}

func (f *fakeFrame) EndTable() { f.endTables++ }

func (f *fakeFrame) TabBar(id string, labels []string, active int) int {
	if pick, ok := f.tabPicks[id]; ok {
		return pick
	}
	return active
}

func (f *fakeFrame) KeyPressed(k input.Key) bool { return f.pressed[k] }

func (f *fakeFrame) Modifiers() input.Modifiers { return f.mods }

func (f *fakeFrame) MousePos() (float64, float64) { return 0, 0 }

func (f *fakeFrame) WheelDelta() (float64, float64) { return f.wheelX, f.wheelY }

func (f *fakeFrame) rowIDs() []string {
	ids := make([]string, len(f.rows))
	for i, r := range f.rows {
		ids[i] = r.id
	}
	return ids
}

func recordedClick(double bool) ui.RowState {
	return ui.RowState{Hovered: true, Clicked: !double, DoubleClicked: double}
}

func hoveredRow() ui.RowState {
	return ui.RowState{Hovered: true}
}
