// Package screens implements the overlay's widget layer: inventory,
// character sheet, and world map, each drawn from a host-supplied state
// snapshot. Drawing never mutates a snapshot; user intent leaves as
// domain events through the event adapter.
package screens

import (
	"sync"

	"github.com/scrimkit/scrim/internal/event"
	"github.com/scrimkit/scrim/internal/input"
	"github.com/scrimkit/scrim/internal/logging"
	"github.com/scrimkit/scrim/internal/ui"
)

// Screen ids, also used as the component tag on emitted events.
const (
	ScreenInventory = "inventory"
	ScreenCharacter = "character"
	ScreenWorldMap  = "worldmap"
)

// CommandClose is emitted when the player asks the front screen to go
// away; the host reacts by toggling visibility, the screen never hides
// itself.
const CommandClose = "close"

// Screen is one overlay window managed by the Manager.
type Screen interface {
	ID() string
	Title() string

	// HandleInput processes one routed event, returning true when the
	// screen consumed it.
	HandleInput(ev *input.Event) bool

	// Draw renders the screen onto the frame.
	Draw(f ui.Frame)
}

// Manager owns the screen set, their visibility, and which screen is in
// front. It is the widget-layer event sink and the visibility observer
// the lifecycle coordinator talks to.
type Manager struct {
	adapter *event.Adapter
	log     *logging.Logger

	mu      sync.Mutex
	screens map[string]Screen
	order   []string
	visible map[string]bool
	front   string
}

// NewManager builds an empty manager publishing through the adapter.
func NewManager(adapter *event.Adapter, logger *logging.Logger) *Manager {
	if logger == nil {
		logger = logging.Discard
	}
	return &Manager{
		adapter: adapter,
		log:     logger.WithComponent("screens.manager"),
		screens: make(map[string]Screen),
		visible: make(map[string]bool),
	}
}

// Register adds a screen, hidden. Registering an id twice replaces the
// screen but keeps its position and visibility.
func (m *Manager) Register(s Screen) {
	if s == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	id := s.ID()
	if _, exists := m.screens[id]; !exists {
		m.order = append(m.order, id)
		m.visible[id] = false
	}
	m.screens[id] = s
}

// Screen looks up a registered screen by id.
func (m *Manager) Screen(id string) (Screen, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.screens[id]
	return s, ok
}

// SetScreenVisible shows or hides a screen. Showing brings it to the
// front. Unknown ids are ignored.
func (m *Manager) SetScreenVisible(id string, visible bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.screens[id]; !ok {
		m.log.Debug("visibility change for unknown screen %q", id)
		return
	}
	m.visible[id] = visible
	if visible {
		m.front = id
	} else if m.front == id {
		m.front = m.lastVisibleLocked()
	}
}

func (m *Manager) lastVisibleLocked() string {
	for i := len(m.order) - 1; i >= 0; i-- {
		if m.visible[m.order[i]] {
			return m.order[i]
		}
	}
	return ""
}

// ScreenVisible reports whether the screen is currently shown.
func (m *Manager) ScreenVisible(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.visible[id]
}

// VisibleScreens returns the shown screen ids in registration order.
func (m *Manager) VisibleScreens() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.order))
	for _, id := range m.order {
		if m.visible[id] {
			out = append(out, id)
		}
	}
	return out
}

// Front returns the id of the screen keyboard input goes to, or "".
func (m *Manager) Front() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.front
}

// HandleInput is the widget layer's event processor. Escape asks the
// host to close the front screen; everything else goes to the front
// screen itself.
func (m *Manager) HandleInput(ev *input.Event) bool {
	if ev == nil {
		return false
	}

	m.mu.Lock()
	front := m.front
	var target Screen
	if front != "" && m.visible[front] {
		target = m.screens[front]
	}
	m.mu.Unlock()

	if target == nil {
		return false
	}

	if ev.Kind == input.KindKeyPress && ev.Key == input.KeyEscape {
		m.adapter.PublishCommandInvoked(CommandClose, front)
		return true
	}
	return target.HandleInput(ev)
}

// Draw renders every visible screen in registration order.
func (m *Manager) Draw(f ui.Frame) {
	m.mu.Lock()
	toDraw := make([]Screen, 0, len(m.order))
	for _, id := range m.order {
		if m.visible[id] {
			toDraw = append(toDraw, m.screens[id])
		}
	}
	m.mu.Unlock()

	for _, s := range toDraw {
		s.Draw(f)
	}
}
