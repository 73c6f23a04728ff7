package script

import (
	"runtime/debug"

	lua "github.com/yuin/gopher-lua"

	"github.com/scrimkit/scrim/internal/event"
)

// moduleName is what scripts require to talk to the overlay.
const moduleName = "scrim"

// loadModule builds the scrim module table for require("scrim").
func (e *Engine) loadModule(L *lua.LState) int {
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"on":      e.luaOn,
		"publish": e.luaPublish,
		"log":     e.luaLog,
	})
	L.Push(mod)
	return 1
}

// luaOn implements scrim.on(name, fn).
func (e *Engine) luaOn(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return 0
	}
	e.handlers[name] = append(e.handlers[name], fn)
	return 0
}

// luaPublish implements scrim.publish(name, payload). Only the outbound
// vocabulary can be published from scripts; overlay lifecycle announcements
// stay with the coordinator.
func (e *Engine) luaPublish(L *lua.LState) int {
	name := L.CheckString(1)
	payload := L.OptTable(2, L.NewTable())

	e.mu.Lock()
	a := e.adapter
	e.mu.Unlock()
	if a == nil {
		L.RaiseError("scrim.publish: no event adapter attached")
		return 0
	}

	switch name {
	case event.NameFilterApplied:
		a.PublishFilterApplied(
			tableString(payload, "text"),
			tableString(payload, "target"),
			tableBool(payload, "case_sensitive"))
	case event.NameItemSelected:
		a.PublishItemSelected(
			tableString(payload, "item_id"),
			tableString(payload, "component"),
			tableBool(payload, "double_click"),
			tableInt(payload, "count", 1))
	case event.NameBindingUpdate:
		a.PublishBindingUpdate(
			tableString(payload, "binding_id"),
			tableString(payload, "data_source"),
			tableBool(payload, "forced"))
	case event.NameTabSelected:
		a.PublishTabSelected(
			tableString(payload, "component"),
			tableString(payload, "tab_id"))
	case event.NameCommandInvoked:
		a.PublishCommandInvoked(
			tableString(payload, "command"),
			tableString(payload, "target"))
	case event.NameTileClicked:
		a.PublishTileClicked(
			tableInt(payload, "x", 0),
			tableInt(payload, "y", 0))
	default:
		L.RaiseError("scrim.publish: unknown event %q", name)
	}
	return 0
}

// luaLog implements scrim.log(value).
func (e *Engine) luaLog(L *lua.LState) int {
	msg := L.CheckAny(1).String()
	e.log.Info("%s", msg)
	return 0
}

// dispatch runs the handlers registered for an event name. Handler errors
// are logged and never stop the remaining handlers or reach the publisher.
func (e *Engine) dispatch(name string, payload any) {
	e.mu.Lock()
	if e.closed || len(e.handlers[name]) == 0 {
		e.mu.Unlock()
		return
	}
	fns := make([]*lua.LFunction, len(e.handlers[name]))
	copy(fns, e.handlers[name])
	e.mu.Unlock()

	tbl := e.eventTable(payload)
	for _, fn := range fns {
		e.call(name, fn, tbl)
	}
}

func (e *Engine) call(name string, fn *lua.LFunction, tbl *lua.LTable) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("script handler for %s panicked: %v\n%s", name, r, debug.Stack())
		}
	}()
	e.L.Push(fn)
	e.L.Push(tbl)
	if err := e.L.PCall(1, 0, nil); err != nil {
		e.log.Error("script handler for %s failed: %v", name, err)
	}
}

// eventTable converts a domain event into the table handed to handlers.
// Keys are snake_case to match the wire names.
func (e *Engine) eventTable(payload any) *lua.LTable {
	t := e.L.NewTable()
	switch ev := payload.(type) {
	case event.StatusChanged:
		t.RawSetString("attribute", lua.LString(ev.Attribute))
		t.RawSetString("value", lua.LNumber(ev.Value))
		t.RawSetString("max", lua.LNumber(ev.Max))
		t.RawSetString("meta", e.metaTable(ev.Meta))
	case event.InventoryChanged:
		t.RawSetString("slot_id", lua.LString(ev.SlotID))
		t.RawSetString("item_id", lua.LString(ev.ItemID))
		t.RawSetString("count", lua.LNumber(ev.Count))
		t.RawSetString("removed", lua.LBool(ev.Removed))
		t.RawSetString("meta", e.metaTable(ev.Meta))
	case event.Notice:
		t.RawSetString("text", lua.LString(ev.Text))
		t.RawSetString("severity", lua.LString(ev.Severity.String()))
		t.RawSetString("meta", e.metaTable(ev.Meta))
	case event.BindingUpdated:
		t.RawSetString("binding_id", lua.LString(ev.BindingID))
		t.RawSetString("data_source", lua.LString(ev.DataSource))
		t.RawSetString("forced", lua.LBool(ev.Forced))
		t.RawSetString("meta", e.metaTable(ev.Meta))
	case event.OverlayOpened:
		t.RawSetString("overlay_id", lua.LString(ev.OverlayID))
		t.RawSetString("modal", lua.LBool(ev.Modal))
		t.RawSetString("meta", e.metaTable(ev.Meta))
	case event.OverlayClosed:
		t.RawSetString("overlay_id", lua.LString(ev.OverlayID))
		t.RawSetString("cancelled", lua.LBool(ev.Cancelled))
		t.RawSetString("meta", e.metaTable(ev.Meta))
	}
	return t
}

func (e *Engine) metaTable(m event.Meta) *lua.LTable {
	t := e.L.NewTable()
	t.RawSetString("event_id", lua.LString(m.EventID))
	t.RawSetString("source", lua.LString(m.Source))
	t.RawSetString("at", lua.LNumber(m.At))
	return t
}

func tableString(t *lua.LTable, key string) string {
	if s, ok := t.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

func tableBool(t *lua.LTable, key string) bool {
	if b, ok := t.RawGetString(key).(lua.LBool); ok {
		return bool(b)
	}
	return false
}

func tableInt(t *lua.LTable, key string, def int) int {
	if n, ok := t.RawGetString(key).(lua.LNumber); ok {
		return int(n)
	}
	return def
}
