package screens

import (
	"strconv"
	"strings"
	"sync"

	"github.com/scrimkit/scrim/internal/event"
	"github.com/scrimkit/scrim/internal/input"
	"github.com/scrimkit/scrim/internal/ui"
)

// Inventory renders the item list with a type-to-filter box. Row clicks
// become item_selected events; filter edits become filter_applied.
type Inventory struct {
	adapter *event.Adapter

	mu            sync.Mutex
	snap          InventorySnapshot
	bounds        input.Rect
	filter        string
	caseSensitive bool
}

// NewInventory builds the inventory screen with an empty snapshot.
func NewInventory(adapter *event.Adapter) *Inventory {
	return &Inventory{
		adapter: adapter,
		snap:    InventorySnapshot{Title: "Inventory"},
		bounds:  input.Rect{X: 48, Y: 48, W: 420, H: 480},
	}
}

func (s *Inventory) ID() string { return ScreenInventory }

func (s *Inventory) Title() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Title
}

// SetBounds moves or resizes the window.
func (s *Inventory) SetBounds(r input.Rect) {
	s.mu.Lock()
	s.bounds = r
	s.mu.Unlock()
}

// SetSnapshot swaps in a new host-supplied snapshot.
func (s *Inventory) SetSnapshot(snap InventorySnapshot) {
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
}

// Filter returns the current filter text.
func (s *Inventory) Filter() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// SetCaseSensitive toggles filter case sensitivity.
func (s *Inventory) SetCaseSensitive(cs bool) {
	s.mu.Lock()
	s.caseSensitive = cs
	s.mu.Unlock()
}

// HandleInput: the inventory has no event-time behavior of its own; the
// filter box edits at draw time through the toolkit.
func (s *Inventory) HandleInput(ev *input.Event) bool {
	return false
}

// Draw renders the filter box and the item table from the current
// snapshot. The snapshot itself is never written.
func (s *Inventory) Draw(f ui.Frame) {
	s.mu.Lock()
	snap := s.snap
	filter := s.filter
	cs := s.caseSensitive
	bounds := s.bounds
	s.mu.Unlock()

	if !f.BeginWindow(ScreenInventory, snap.Title, bounds) {
		f.EndWindow()
		return
	}

	text := filter
	if f.InputText("inventory.filter", &text) {
		s.mu.Lock()
		s.filter = text
		s.mu.Unlock()
		s.adapter.PublishFilterApplied(text, ScreenInventory, cs)
		filter = text
	}

	if f.BeginTable("inventory.items", snap.Columns) {
		for i := range snap.Rows {
			row := &snap.Rows[i]
			if !matchesFilter(row.Name, filter, cs) {
				continue
			}
			st := f.TableRow(rowKey(row.SlotID), rowCells(row), row.Selected || row.Highlighted)
			if st.Hovered && row.Tooltip != "" {
				f.Tooltip(row.Tooltip)
			}
			if st.Clicked || st.DoubleClicked {
				s.adapter.PublishItemSelected(row.ItemID, ScreenInventory, st.DoubleClicked, row.Count)
			}
		}
	}
	f.EndTable()
	f.EndWindow()
}

func rowKey(slot int) string {
	return "inventory.row." + strconv.Itoa(slot)
}

func rowCells(row *InventoryRow) []string {
	if len(row.Cells) > 0 {
		return row.Cells
	}
	return []string{row.Name, strconv.Itoa(row.Count)}
}

func matchesFilter(name, filter string, caseSensitive bool) bool {
	if filter == "" {
		return true
	}
	if caseSensitive {
		return strings.Contains(name, filter)
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(filter))
}
