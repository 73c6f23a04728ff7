package screens

import (
	"sync"

	"github.com/scrimkit/scrim/internal/event"
	"github.com/scrimkit/scrim/internal/input"
	"github.com/scrimkit/scrim/internal/ui"
)

// Character renders the tabbed character sheet. Tab switches, whether by
// click or by the tab key, become tab_selected events; F2 asks the host
// to start a rename.
type Character struct {
	adapter *event.Adapter

	mu        sync.Mutex
	snap      CharacterSnapshot
	bounds    input.Rect
	activeTab int
}

// NewCharacter builds the character sheet screen with an empty snapshot.
func NewCharacter(adapter *event.Adapter) *Character {
	return &Character{
		adapter: adapter,
		snap:    CharacterSnapshot{Title: "Character"},
		bounds:  input.Rect{X: 500, Y: 48, W: 380, H: 480},
	}
}

func (s *Character) ID() string { return ScreenCharacter }

func (s *Character) Title() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Title
}

// SetBounds moves or resizes the window.
func (s *Character) SetBounds(r input.Rect) {
	s.mu.Lock()
	s.bounds = r
	s.mu.Unlock()
}

// SetSnapshot swaps in a new host-supplied snapshot and clamps the
// active tab into range.
func (s *Character) SetSnapshot(snap CharacterSnapshot) {
	s.mu.Lock()
	s.snap = snap
	if s.activeTab >= len(snap.Tabs) {
		s.activeTab = 0
	}
	s.mu.Unlock()
}

// ActiveTab returns the index of the tab currently shown.
func (s *Character) ActiveTab() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeTab
}

// HandleInput: the character sheet is driven entirely by draw-time key
// state.
func (s *Character) HandleInput(ev *input.Event) bool {
	return false
}

// Draw renders the name, the tab bar, and the active tab's entries.
func (s *Character) Draw(f ui.Frame) {
	s.mu.Lock()
	snap := s.snap
	active := s.activeTab
	bounds := s.bounds
	s.mu.Unlock()

	if !f.BeginWindow(ScreenCharacter, snap.Title, bounds) {
		f.EndWindow()
		return
	}

	if snap.Name != "" {
		f.TextColored(snap.Name, ui.ColorHighlight)
	}
	if f.KeyPressed(input.KeyF2) {
		s.adapter.PublishCommandInvoked("rename", ScreenCharacter)
	}

	if len(snap.Tabs) > 0 {
		labels := make([]string, len(snap.Tabs))
		for i, tab := range snap.Tabs {
			labels[i] = tab.Title
		}

		next := f.TabBar("character.tabs", labels, active)
		if f.KeyPressed(input.KeyTab) {
			next = nextCyclableTab(snap.Tabs, next)
		}
		if next != active && next >= 0 && next < len(snap.Tabs) {
			active = next
			s.mu.Lock()
			s.activeTab = active
			s.mu.Unlock()
			s.adapter.PublishTabSelected(ScreenCharacter, snap.Tabs[active].ID)
		}

		tab := snap.Tabs[active]
		if f.BeginTable("character.stats", []string{"stat", "value"}) {
			for i := range tab.Entries {
				entry := &tab.Entries[i]
				st := f.TableRow("character.stat."+entry.Label, []string{entry.Label, entry.Value}, entry.Highlighted)
				if st.Hovered && entry.Tooltip != "" {
					f.Tooltip(entry.Tooltip)
				}
			}
		}
		f.EndTable()
	}

	f.EndWindow()
}

// nextCyclableTab advances from the given tab to the next non-fixed one,
// wrapping around. With no cyclable tabs it stays put.
func nextCyclableTab(tabs []CharacterTab, from int) int {
	if len(tabs) == 0 {
		return from
	}
	for step := 1; step <= len(tabs); step++ {
		idx := (from + step) % len(tabs)
		if !tabs[idx].Fixed {
			return idx
		}
	}
	return from
}
