package input

import (
	"runtime/debug"
)

// FocusState says who currently owns input: nobody, the overlay, the
// game, or both at once. Exactly one state is active at a time.
type FocusState int32

const (
	// FocusNone routes nothing to the overlay. Every event is the
	// game's to handle.
	FocusNone FocusState = iota

	// FocusGUI routes events to the overlay first. Unclaimed events
	// may still fall through to the game unless the settings make GUI
	// focus exclusive.
	FocusGUI

	// FocusGame routes events to the game, with a carve-out for mouse
	// events over the GUI area and, when pass-through is disabled,
	// claimed non-mouse events.
	FocusGame

	// FocusShared dispatches every gated event to the overlay and lets
	// the consumed flag decide what the game sees.
	FocusShared
)

// String returns a human-readable focus state name.
func (f FocusState) String() string {
	switch f {
	case FocusNone:
		return "none"
	case FocusGUI:
		return "gui"
	case FocusGame:
		return "game"
	case FocusShared:
		return "shared"
	default:
		return "unknown"
	}
}

// FocusListener observes focus transitions. Listeners run synchronously
// on the goroutine that changed focus, in registration order.
type FocusListener func(previous, current FocusState)

type focusListener struct {
	id uint64
	fn FocusListener
}

// FocusState returns the current focus state.
func (r *Router) FocusState() FocusState {
	return FocusState(r.focus.Load())
}

// SetFocusState switches focus and notifies listeners. Setting the state
// it already has is a no-op: no counter bump, no notifications. The
// reason string only feeds the log.
func (r *Router) SetFocusState(next FocusState, reason string) {
	prev := FocusState(r.focus.Swap(int32(next)))
	if prev == next {
		return
	}
	r.stats.focusChanges.Add(1)
	r.log.Debug("focus %s -> %s (%s)", prev, next, reason)
	r.notifyFocus(prev, next)
}

// AddFocusListener registers a focus transition listener and returns its
// id. A nil listener returns 0.
func (r *Router) AddFocusListener(fn FocusListener) uint64 {
	if fn == nil {
		return 0
	}
	r.listenerMu.Lock()
	defer r.listenerMu.Unlock()
	r.nextListenerID++
	r.listeners = append(r.listeners, focusListener{id: r.nextListenerID, fn: fn})
	return r.nextListenerID
}

// RemoveFocusListener drops a listener by id. It reports whether the id
// was registered.
func (r *Router) RemoveFocusListener(id uint64) bool {
	r.listenerMu.Lock()
	defer r.listenerMu.Unlock()
	for i, l := range r.listeners {
		if l.id == id {
			r.listeners = append(r.listeners[:i], r.listeners[i+1:]...)
			return true
		}
	}
	return false
}

func (r *Router) notifyFocus(prev, next FocusState) {
	r.listenerMu.Lock()
	snapshot := make([]focusListener, len(r.listeners))
	copy(snapshot, r.listeners)
	r.listenerMu.Unlock()

	for _, l := range snapshot {
		r.callFocusListener(l, prev, next)
	}
}

func (r *Router) callFocusListener(l focusListener, prev, next FocusState) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("focus listener %d panicked: %v\n%s", l.id, rec, debug.Stack())
		}
	}()
	l.fn(prev, next)
}
