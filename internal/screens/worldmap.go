package screens

import (
	"fmt"
	"sync"

	"github.com/scrimkit/scrim/internal/event"
	"github.com/scrimkit/scrim/internal/input"
	"github.com/scrimkit/scrim/internal/ui"
)

const (
	minZoom  = 0.5
	maxZoom  = 4.0
	zoomStep = 0.25
)

// WorldMap renders the sparse tile map. Tile clicks become tile_clicked
// events; the mouse wheel adjusts the zoom factor, which is the only
// widget-local state the screen keeps.
type WorldMap struct {
	adapter *event.Adapter

	mu     sync.Mutex
	snap   MapSnapshot
	bounds input.Rect
	zoom   float64
}

// NewWorldMap builds the map screen at 1x zoom.
func NewWorldMap(adapter *event.Adapter) *WorldMap {
	return &WorldMap{
		adapter: adapter,
		snap:    MapSnapshot{Title: "World Map"},
		bounds:  input.Rect{X: 120, Y: 80, W: 640, H: 520},
		zoom:    1.0,
	}
}

func (s *WorldMap) ID() string { return ScreenWorldMap }

func (s *WorldMap) Title() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Title
}

// SetBounds moves or resizes the window.
func (s *WorldMap) SetBounds(r input.Rect) {
	s.mu.Lock()
	s.bounds = r
	s.mu.Unlock()
}

// SetSnapshot swaps in a new host-supplied snapshot.
func (s *WorldMap) SetSnapshot(snap MapSnapshot) {
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
}

// Zoom returns the current zoom factor.
func (s *WorldMap) Zoom() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.zoom
}

// HandleInput consumes wheel events to zoom the map.
func (s *WorldMap) HandleInput(ev *input.Event) bool {
	if ev == nil || ev.Kind != input.KindMouseWheel {
		return false
	}
	s.mu.Lock()
	s.zoom += ev.WheelY * zoomStep
	if s.zoom < minZoom {
		s.zoom = minZoom
	}
	if s.zoom > maxZoom {
		s.zoom = maxZoom
	}
	s.mu.Unlock()
	return true
}

// Draw renders the zoom readout, the player marker, and the snapshot's
// tiles.
func (s *WorldMap) Draw(f ui.Frame) {
	s.mu.Lock()
	snap := s.snap
	bounds := s.bounds
	zoom := s.zoom
	s.mu.Unlock()

	if !f.BeginWindow(ScreenWorldMap, snap.Title, bounds) {
		f.EndWindow()
		return
	}

	f.Text(fmt.Sprintf("%dx%d  zoom %.2fx", snap.Width, snap.Height, zoom))
	f.TextColored(fmt.Sprintf("@ (%d, %d)", snap.PlayerX, snap.PlayerY), ui.ColorGood)

	for i := range snap.Tiles {
		tile := &snap.Tiles[i]
		st := f.Selectable(tileKey(tile.X, tile.Y), tile.Glyph, tile.Highlighted)
		if st.Hovered && tile.Tooltip != "" {
			f.Tooltip(tile.Tooltip)
		}
		if st.Clicked || st.DoubleClicked {
			s.adapter.PublishTileClicked(tile.X, tile.Y)
		}
	}

	f.EndWindow()
}

func tileKey(x, y int) string {
	return fmt.Sprintf("worldmap.tile.%d.%d", x, y)
}
