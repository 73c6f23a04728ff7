package screens

import (
	"testing"

	"github.com/scrimkit/scrim/internal/event"
	"github.com/scrimkit/scrim/internal/input"
)

func worldMapFixture(t *testing.T) (*event.Bus, *WorldMap) {
	t.Helper()
	bus := event.NewBus()
	adapter := event.NewAdapter(bus, ScreenWorldMap, nil)
	return bus, NewWorldMap(adapter)
}

func sampleMap() MapSnapshot {
	return MapSnapshot{
		Title:   "World Map",
		Width:   8,
		Height:  8,
		PlayerX: 3,
		PlayerY: 4,
		Tiles: []MapTile{
			{X: 1, Y: 2, Glyph: "^", Tooltip: "Mountains"},
			{X: 5, Y: 5, Glyph: "#", Highlighted: true},
		},
	}
}

func TestWorldMap_WheelZooms(t *testing.T) {
	_, wm := worldMapFixture(t)

	if !wm.HandleInput(input.NewMouseWheel(0, 2)) {
		t.Fatal("wheel event not consumed")
	}
	if got := wm.Zoom(); got != 1.5 {
		t.Errorf("Zoom = %v after +2 wheel, want 1.5", got)
	}

	// Zoom clamps at both ends.
	wm.HandleInput(input.NewMouseWheel(0, 100))
	if got := wm.Zoom(); got != maxZoom {
		t.Errorf("Zoom = %v, want clamped to %v", got, maxZoom)
	}
	wm.HandleInput(input.NewMouseWheel(0, -100))
	if got := wm.Zoom(); got != minZoom {
		t.Errorf("Zoom = %v, want clamped to %v", got, minZoom)
	}

	if wm.HandleInput(input.NewKeyPress(input.KeyM, 0)) {
		t.Error("key event consumed by the map")
	}
	if wm.HandleInput(nil) {
		t.Error("nil event consumed")
	}
}

func TestWorldMap_TileClickEmitsTileClicked(t *testing.T) {
	bus, wm := worldMapFixture(t)
	wm.SetSnapshot(sampleMap())

	var clicks []event.TileClicked
	event.Subscribe(bus, func(ev event.TileClicked) { clicks = append(clicks, ev) })

	f := newFakeFrame()
	f.rowStates["worldmap.tile.5.5"] = recordedClick(false)
	wm.Draw(f)

	if len(clicks) != 1 {
		t.Fatalf("tile events = %d, want 1", len(clicks))
	}
	if clicks[0].X != 5 || clicks[0].Y != 5 {
		t.Errorf("tile event = (%d, %d), want (5, 5)", clicks[0].X, clicks[0].Y)
	}
}

func TestWorldMap_DrawShowsStatusAndTiles(t *testing.T) {
	_, wm := worldMapFixture(t)
	wm.SetSnapshot(sampleMap())

	f := newFakeFrame()
	wm.Draw(f)

	if len(f.texts) != 1 || f.texts[0] != "8x8  zoom 1.00x" {
		t.Errorf("texts = %v, want the size and zoom readout", f.texts)
	}
	if len(f.colored) != 1 || f.colored[0] != "@ (3, 4)" {
		t.Errorf("colored = %v, want the player marker", f.colored)
	}
	if len(f.selectables) != 2 {
		t.Errorf("selectables = %v, want both tiles", f.selectables)
	}
}

func TestWorldMap_TileTooltip(t *testing.T) {
	_, wm := worldMapFixture(t)
	wm.SetSnapshot(sampleMap())

	f := newFakeFrame()
	f.rowStates["worldmap.tile.1.2"] = hoveredRow()
	f.rowStates["worldmap.tile.5.5"] = hoveredRow() // no tooltip
	wm.Draw(f)

	if len(f.tooltips) != 1 || f.tooltips[0] != "Mountains" {
		t.Errorf("tooltips = %v, want [Mountains]", f.tooltips)
	}
}
