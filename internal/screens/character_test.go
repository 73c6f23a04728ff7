package screens

import (
	"reflect"
	"testing"

	"github.com/scrimkit/scrim/internal/event"
	"github.com/scrimkit/scrim/internal/input"
)

func characterFixture(t *testing.T) (*event.Bus, *Character) {
	t.Helper()
	bus := event.NewBus()
	adapter := event.NewAdapter(bus, ScreenCharacter, nil)
	return bus, NewCharacter(adapter)
}

func sampleCharacter() CharacterSnapshot {
	return CharacterSnapshot{
		Title: "Character",
		Name:  "Vann",
		Tabs: []CharacterTab{
			{ID: "stats", Title: "Stats", Entries: []StatEntry{
				{Label: "Strength", Value: "14"},
				{Label: "Agility", Value: "11", Highlighted: true, Tooltip: "Buffed by Cat's Grace"},
			}},
			{ID: "skills", Title: "Skills", Entries: []StatEntry{
				{Label: "Lockpicking", Value: "3"},
			}},
			{ID: "bio", Title: "Bio", Fixed: true, Entries: []StatEntry{
				{Label: "Origin", Value: "Harbor Town"},
			}},
		},
	}
}

func TestCharacter_DrawActiveTabEntries(t *testing.T) {
	_, ch := characterFixture(t)
	ch.SetSnapshot(sampleCharacter())

	f := newFakeFrame()
	ch.Draw(f)

	if len(f.colored) == 0 || f.colored[0] != "Vann" {
		t.Errorf("colored texts = %v, want the name first", f.colored)
	}
	wantIDs := []string{"character.stat.Strength", "character.stat.Agility"}
	if got := f.rowIDs(); !reflect.DeepEqual(got, wantIDs) {
		t.Errorf("row ids = %v, want %v", got, wantIDs)
	}
	if !f.rows[1].selected {
		t.Error("highlighted entry not drawn as selected")
	}
}

func TestCharacter_TabClickEmitsTabSelected(t *testing.T) {
	bus, ch := characterFixture(t)
	ch.SetSnapshot(sampleCharacter())

	var picks []event.TabSelected
	event.Subscribe(bus, func(ev event.TabSelected) { picks = append(picks, ev) })

	f := newFakeFrame()
	f.tabPicks["character.tabs"] = 1
	ch.Draw(f)

	if len(picks) != 1 {
		t.Fatalf("tab events = %d, want 1", len(picks))
	}
	if picks[0].Component != ScreenCharacter || picks[0].TabID != "skills" {
		t.Errorf("tab event = %+v, want character/skills", picks[0])
	}
	if ch.ActiveTab() != 1 {
		t.Errorf("ActiveTab = %d, want 1", ch.ActiveTab())
	}

	// The newly active tab's entries are what got drawn.
	if got := f.rowIDs(); !reflect.DeepEqual(got, []string{"character.stat.Lockpicking"}) {
		t.Errorf("row ids = %v, want the skills entries", got)
	}
}

func TestCharacter_TabKeyCyclesSkippingFixed(t *testing.T) {
	bus, ch := characterFixture(t)
	ch.SetSnapshot(sampleCharacter())

	var picks []event.TabSelected
	event.Subscribe(bus, func(ev event.TabSelected) { picks = append(picks, ev) })

	f := newFakeFrame()
	f.pressed[input.KeyTab] = true
	ch.Draw(f)
	if ch.ActiveTab() != 1 {
		t.Fatalf("ActiveTab = %d after first cycle, want 1", ch.ActiveTab())
	}

	// Cycling again skips the fixed bio tab and wraps to stats.
	f = newFakeFrame()
	f.pressed[input.KeyTab] = true
	ch.Draw(f)
	if ch.ActiveTab() != 0 {
		t.Fatalf("ActiveTab = %d after wrap, want 0", ch.ActiveTab())
	}

	if len(picks) != 2 || picks[0].TabID != "skills" || picks[1].TabID != "stats" {
		t.Errorf("tab events = %+v, want skills then stats", picks)
	}
}

func TestCharacter_RenameCommand(t *testing.T) {
	bus, ch := characterFixture(t)
	ch.SetSnapshot(sampleCharacter())

	var commands []event.CommandInvoked
	event.Subscribe(bus, func(ev event.CommandInvoked) { commands = append(commands, ev) })

	f := newFakeFrame()
	f.pressed[input.KeyF2] = true
	ch.Draw(f)

	if len(commands) != 1 {
		t.Fatalf("command events = %d, want 1", len(commands))
	}
	if commands[0].Command != "rename" || commands[0].Target != ScreenCharacter {
		t.Errorf("command event = %+v, want rename/character", commands[0])
	}
}

func TestCharacter_SnapshotSwapClampsActiveTab(t *testing.T) {
	_, ch := characterFixture(t)
	ch.SetSnapshot(sampleCharacter())

	f := newFakeFrame()
	f.tabPicks["character.tabs"] = 1
	ch.Draw(f)
	if ch.ActiveTab() != 1 {
		t.Fatalf("ActiveTab = %d, want 1", ch.ActiveTab())
	}

	ch.SetSnapshot(CharacterSnapshot{Title: "Character", Tabs: []CharacterTab{{ID: "stats", Title: "Stats"}}})
	if ch.ActiveTab() != 0 {
		t.Errorf("ActiveTab = %d after smaller snapshot, want 0", ch.ActiveTab())
	}
}

func TestCharacter_EntryTooltip(t *testing.T) {
	_, ch := characterFixture(t)
	ch.SetSnapshot(sampleCharacter())

	f := newFakeFrame()
	f.rowStates["character.stat.Agility"] = hoveredRow()
	ch.Draw(f)

	if len(f.tooltips) != 1 || f.tooltips[0] != "Buffed by Cat's Grace" {
		t.Errorf("tooltips = %v, want the agility tooltip", f.tooltips)
	}
}

func TestCharacter_NoTabsDrawsNothing(t *testing.T) {
	_, ch := characterFixture(t)
	ch.SetSnapshot(CharacterSnapshot{Title: "Character"})

	f := newFakeFrame()
	f.pressed[input.KeyTab] = true
	ch.Draw(f)

	if len(f.tables) != 0 {
		t.Error("tab-less snapshot still drew a stats table")
	}
	if f.endWindows != 1 {
		t.Errorf("EndWindow calls = %d, want 1", f.endWindows)
	}
}
