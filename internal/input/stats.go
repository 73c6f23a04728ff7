package input

import "sync/atomic"

// Stats is a point-in-time snapshot of router counters.
type Stats struct {
	EventsProcessed     uint64
	EventsConsumed      uint64
	EventsPassedThrough uint64
	HandlersInvoked     uint64
	FocusChanges        uint64
	ActiveHandlers      int
}

// statCounters holds the live atomic counters behind Stats.
type statCounters struct {
	processed       atomic.Uint64
	consumed        atomic.Uint64
	passedThrough   atomic.Uint64
	handlersInvoked atomic.Uint64
	focusChanges    atomic.Uint64
}

func (c *statCounters) reset() {
	c.processed.Store(0)
	c.consumed.Store(0)
	c.passedThrough.Store(0)
	c.handlersInvoked.Store(0)
	c.focusChanges.Store(0)
}
