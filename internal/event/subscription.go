package event

import (
	"reflect"
	"sync/atomic"
)

// Subscription is the handle returned by Subscribe. It deactivates itself on
// Unsubscribe and is pruned from the bus registry on the next publish of its
// payload type.
type Subscription struct {
	id     uint64
	typ    reflect.Type
	fn     func(any)
	active atomic.Bool
}

// ID returns the subscription's unique identifier.
func (s *Subscription) ID() uint64 {
	return s.id
}

// Type returns the payload type this subscription receives.
func (s *Subscription) Type() reflect.Type {
	return s.typ
}

// Active reports whether the subscription still receives events.
func (s *Subscription) Active() bool {
	return s.active.Load()
}

// Unsubscribe deactivates the subscription. It is idempotent and safe to
// call from inside the subscriber callback or after the bus has been closed.
func (s *Subscription) Unsubscribe() {
	s.active.Store(false)
}
