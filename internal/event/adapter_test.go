package event

import (
	"testing"
)

func TestAdapter_PublishOverlayOpen(t *testing.T) {
	bus := NewBus()
	adapter := NewAdapter(bus, "test-overlay", nil)

	var got OverlayOpened
	Subscribe(bus, func(ev OverlayOpened) { got = ev })

	adapter.PublishOverlayOpen("inv-1", true)

	if got.OverlayID != "inv-1" {
		t.Errorf("expected overlay id 'inv-1', got '%s'", got.OverlayID)
	}
	if !got.Modal {
		t.Error("expected modal flag set")
	}
	if got.Meta.EventID == "" {
		t.Error("expected a stamped event id")
	}
	if got.Meta.Source != "test-overlay" {
		t.Errorf("expected source 'test-overlay', got '%s'", got.Meta.Source)
	}
	if got.Meta.At == 0 {
		t.Error("expected a millisecond timestamp")
	}
}

func TestAdapter_PublishVocabulary(t *testing.T) {
	bus := NewBus()
	adapter := NewAdapter(bus, "test", nil)

	var closeEv OverlayClosed
	var filterEv FilterApplied
	var selectEv ItemSelected
	var bindEv BindingUpdated
	var tabEv TabSelected
	var cmdEv CommandInvoked
	var tileEv TileClicked
	Subscribe(bus, func(ev OverlayClosed) { closeEv = ev })
	Subscribe(bus, func(ev FilterApplied) { filterEv = ev })
	Subscribe(bus, func(ev ItemSelected) { selectEv = ev })
	Subscribe(bus, func(ev BindingUpdated) { bindEv = ev })
	Subscribe(bus, func(ev TabSelected) { tabEv = ev })
	Subscribe(bus, func(ev CommandInvoked) { cmdEv = ev })
	Subscribe(bus, func(ev TileClicked) { tileEv = ev })

	adapter.PublishOverlayClose("inv-1", true)
	adapter.PublishFilterApplied("sword", "inventory", false)
	adapter.PublishItemSelected("item-9", "inventory", true, 3)
	adapter.PublishBindingUpdate("inventory.visibility", "lifecycle", true)
	adapter.PublishTabSelected("character", "skills")
	adapter.PublishCommandInvoked("confirm", "inventory")
	adapter.PublishTileClicked(4, 11)

	if !closeEv.Cancelled || closeEv.OverlayID != "inv-1" {
		t.Errorf("unexpected close payload: %+v", closeEv)
	}
	if filterEv.Text != "sword" || filterEv.Target != "inventory" || filterEv.CaseSensitive {
		t.Errorf("unexpected filter payload: %+v", filterEv)
	}
	if selectEv.ItemID != "item-9" || !selectEv.DoubleClick || selectEv.Count != 3 {
		t.Errorf("unexpected selection payload: %+v", selectEv)
	}
	if bindEv.BindingID != "inventory.visibility" || !bindEv.Forced {
		t.Errorf("unexpected binding payload: %+v", bindEv)
	}
	if tabEv.Component != "character" || tabEv.TabID != "skills" {
		t.Errorf("unexpected tab payload: %+v", tabEv)
	}
	if cmdEv.Command != "confirm" || cmdEv.Target != "inventory" {
		t.Errorf("unexpected command payload: %+v", cmdEv)
	}
	if tileEv.X != 4 || tileEv.Y != 11 {
		t.Errorf("unexpected tile payload: %+v", tileEv)
	}
}

func TestAdapter_Counters(t *testing.T) {
	bus := NewBus()
	adapter := NewAdapter(bus, "test", nil)

	adapter.PublishOverlayOpen("a", false)
	adapter.PublishOverlayOpen("b", false)
	adapter.PublishItemSelected("x", "inventory", false, 1)

	stats := adapter.Stats()
	if stats["events_published"] != 3 {
		t.Errorf("expected 3 published, got %d", stats["events_published"])
	}
	if stats["published.overlay_open"] != 2 {
		t.Errorf("expected 2 overlay_open, got %d", stats["published.overlay_open"])
	}
	if stats["published.item_selected"] != 1 {
		t.Errorf("expected 1 item_selected, got %d", stats["published.item_selected"])
	}
}

func TestAdapter_SubscribeHelpers(t *testing.T) {
	bus := NewBus()
	adapter := NewAdapter(bus, "test", nil)

	var notices []Notice
	adapter.OnNotice(func(ev Notice) {
		notices = append(notices, ev)
	})
	var statuses []StatusChanged
	adapter.OnStatusChange(func(ev StatusChanged) {
		statuses = append(statuses, ev)
	})

	Publish(bus, Notice{Text: "quest complete", Severity: SeverityInfo})
	Publish(bus, StatusChanged{Attribute: "health", Value: 40, Max: 100})

	if len(notices) != 1 || notices[0].Text != "quest complete" {
		t.Errorf("unexpected notices: %+v", notices)
	}
	if len(statuses) != 1 || statuses[0].Attribute != "health" {
		t.Errorf("unexpected statuses: %+v", statuses)
	}

	stats := adapter.Stats()
	if stats["events_received"] != 2 {
		t.Errorf("expected 2 received, got %d", stats["events_received"])
	}
	if stats["received.notice"] != 1 {
		t.Errorf("expected 1 received notice, got %d", stats["received.notice"])
	}
}

func TestAdapter_CloseReleasesSubscriptions(t *testing.T) {
	bus := NewBus()
	adapter := NewAdapter(bus, "test", nil)

	var calls int
	adapter.OnInventoryChange(func(InventoryChanged) { calls++ })

	Publish(bus, InventoryChanged{ItemID: "a"})
	if calls != 1 {
		t.Fatalf("expected 1 call before close, got %d", calls)
	}

	adapter.Close()
	adapter.Close() // idempotent

	Publish(bus, InventoryChanged{ItemID: "b"})
	if calls != 1 {
		t.Errorf("expected no calls after close, got %d", calls)
	}

	before := adapter.Stats()["events_received"]
	Publish(bus, InventoryChanged{ItemID: "c"})
	if after := adapter.Stats()["events_received"]; after != before {
		t.Errorf("expected counters frozen after close: before=%d after=%d", before, after)
	}

	// Publish helpers become no-ops.
	var opens int
	Subscribe(bus, func(OverlayOpened) { opens++ })
	adapter.PublishOverlayOpen("x", false)
	if opens != 0 {
		t.Errorf("expected no publish after close, got %d", opens)
	}

	// Subscribe helpers become no-ops too.
	adapter.OnNotice(func(Notice) { calls++ })
	Publish(bus, Notice{Text: "late"})
	if calls != 1 {
		t.Errorf("expected no late subscription, calls=%d", calls)
	}
}

func TestAdapter_StatsSnapshot(t *testing.T) {
	bus := NewBus()
	adapter := NewAdapter(bus, "test", nil)

	adapter.PublishOverlayOpen("a", false)

	stats := adapter.Stats()
	stats["events_published"] = 999

	if adapter.Stats()["events_published"] != 1 {
		t.Error("mutating the snapshot must not affect adapter state")
	}
}

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		severity Severity
		expected string
	}{
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{Severity(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.severity.String(); got != tt.expected {
			t.Errorf("Severity(%d).String() = '%s', expected '%s'", tt.severity, got, tt.expected)
		}
	}
}
