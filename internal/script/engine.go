// Package script hosts user Lua scripts for the overlay runtime. An Engine
// wraps a single sandboxed gopher-lua state: scripts register handlers for
// domain events through the preloaded scrim module, and the engine feeds
// events into them as Lua tables.
package script

import (
	"errors"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/scrimkit/scrim/internal/event"
	"github.com/scrimkit/scrim/internal/logging"
)

// ErrEngineClosed is returned when operating on a closed engine.
var ErrEngineClosed = errors.New("script engine is closed")

// Engine owns one Lua state.
//
// gopher-lua's LState is not goroutine-safe. LoadFile, DoString, and the
// event dispatch triggered by Attach must all run on the thread that drives
// the overlay; inbound events published from other goroutines need external
// synchronization. The internal mutex protects the handler registry and the
// closed flag, not Lua execution.
type Engine struct {
	log *logging.Logger

	mu       sync.Mutex
	L        *lua.LState
	adapter  *event.Adapter
	handlers map[string][]*lua.LFunction
	closed   bool
}

// New creates a sandboxed engine. Scripts see the pure parts of the Lua
// standard library (base, table, string, math) plus the scrim module;
// dofile, loadfile, load, and disk-backed require are removed.
func New(log *logging.Logger) *Engine {
	if log == nil {
		log = logging.Discard
	}
	e := &Engine{
		log:      log.WithComponent("script"),
		handlers: make(map[string][]*lua.LFunction),
	}
	e.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	e.openSafeLibraries()
	e.L.PreloadModule(moduleName, e.loadModule)
	e.installSandbox()
	return e
}

// openSafeLibraries opens the side-effect-free Lua standard libraries. The
// package library is needed for require and preload; its disk loaders are
// disabled by the sandbox.
func (e *Engine) openSafeLibraries() {
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.LoadLibName, lua.OpenPackage},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		e.L.Push(e.L.NewFunction(lib.open))
		e.L.Push(lua.LString(lib.name))
		e.L.Call(1, 0)
	}
}

// installSandbox removes the escape hatches from the freshly opened state:
// the chunk loaders, the module search path, and every require target
// except the whitelisted built-ins and the scrim module.
func (e *Engine) installSandbox() {
	L := e.L

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}

	if pkg, ok := L.GetGlobal("package").(*lua.LTable); ok {
		L.SetField(pkg, "path", lua.LString(""))
		L.SetField(pkg, "cpath", lua.LString(""))
	}

	allowed := map[string]bool{
		"string":   true,
		"table":    true,
		"math":     true,
		moduleName: true,
	}
	original := L.GetGlobal("require")
	L.SetGlobal("require", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		if !allowed[name] {
			L.RaiseError("module %q is not available", name)
			return 0
		}
		L.Push(original)
		L.Push(lua.LString(name))
		L.Call(1, 1)
		return 1
	}))
}

// Attach wires the engine to the event fabric: inbound gameplay events and
// overlay lifecycle announcements are dispatched into registered handlers,
// and scrim.publish emits through the adapter. Attach is one-shot; further
// calls are ignored.
func (e *Engine) Attach(a *event.Adapter) {
	e.mu.Lock()
	if a == nil || e.closed || e.adapter != nil {
		e.mu.Unlock()
		return
	}
	e.adapter = a
	e.mu.Unlock()

	a.OnStatusChange(func(ev event.StatusChanged) { e.dispatch(event.NameStatusChange, ev) })
	a.OnInventoryChange(func(ev event.InventoryChanged) { e.dispatch(event.NameInventoryChange, ev) })
	a.OnNotice(func(ev event.Notice) { e.dispatch(event.NameNotice, ev) })
	a.OnBindingUpdate(func(ev event.BindingUpdated) { e.dispatch(event.NameBindingUpdate, ev) })
	a.OnOverlayOpen(func(ev event.OverlayOpened) { e.dispatch(event.NameOverlayOpen, ev) })
	a.OnOverlayClose(func(ev event.OverlayClosed) { e.dispatch(event.NameOverlayClose, ev) })
}

// LoadFile runs a script file. Handlers the script registers stay live
// until Close.
func (e *Engine) LoadFile(path string) error {
	if err := e.ensureOpen(); err != nil {
		return err
	}
	e.log.Debug("loading script %s", path)
	return e.protect(func() error { return e.L.DoFile(path) })
}

// DoString runs a chunk of Lua source.
func (e *Engine) DoString(code string) error {
	if err := e.ensureOpen(); err != nil {
		return err
	}
	return e.protect(func() error { return e.L.DoString(code) })
}

// HandlerCount reports how many handlers are registered for an event name.
func (e *Engine) HandlerCount(name string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.handlers[name])
}

// Close releases the Lua state. Events arriving afterwards are dropped.
// Idempotent.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.handlers = nil
	e.mu.Unlock()

	e.L.Close()
	e.log.Debug("script engine closed")
}

func (e *Engine) ensureOpen() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrEngineClosed
	}
	return nil
}

// protect converts a Lua runtime panic into an error.
func (e *Engine) protect(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}
