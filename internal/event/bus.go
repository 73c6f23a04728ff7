package event

import (
	"reflect"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/scrimkit/scrim/internal/logging"
)

// Bus is a synchronous, type-indexed publish/subscribe hub. The zero value
// is not usable; construct with NewBus.
type Bus struct {
	mu   sync.Mutex
	subs map[reflect.Type][]*Subscription

	nextID atomic.Uint64
	closed atomic.Bool
	logger *logging.Logger
}

// BusOption configures a Bus.
type BusOption func(*Bus)

// WithLogger sets the logger used for subscriber panic reports.
func WithLogger(l *logging.Logger) BusOption {
	return func(b *Bus) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewBus creates an empty bus.
func NewBus(opts ...BusOption) *Bus {
	b := &Bus{
		subs:   make(map[reflect.Type][]*Subscription),
		logger: logging.Discard,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Close deactivates every subscription and rejects further publishes.
// Idempotent.
func (b *Bus) Close() {
	if b.closed.Swap(true) {
		return
	}
	b.mu.Lock()
	for _, list := range b.subs {
		for _, sub := range list {
			sub.active.Store(false)
		}
	}
	b.subs = make(map[reflect.Type][]*Subscription)
	b.mu.Unlock()
}

// Closed reports whether Close has been called.
func (b *Bus) Closed() bool {
	return b.closed.Load()
}

// Subscribe registers fn for payloads of type T and returns its handle.
// Subscribing to a closed bus (or with a nil callback) returns an inert
// handle that never fires.
func Subscribe[T any](b *Bus, fn func(T)) *Subscription {
	sub := &Subscription{
		id:  b.nextID.Add(1),
		typ: typeOf[T](),
	}
	if fn == nil || b.closed.Load() {
		return sub
	}
	sub.fn = func(v any) { fn(v.(T)) }
	sub.active.Store(true)

	b.mu.Lock()
	b.subs[sub.typ] = append(b.subs[sub.typ], sub)
	b.mu.Unlock()
	return sub
}

// Publish synchronously delivers ev to every active subscriber of type T in
// registration order. Callbacks run outside the bus lock, so re-entrant
// subscribe/unsubscribe is safe. A subscription deactivated while the
// delivery is in flight is skipped for the remainder of it. Publishing with
// no subscribers is a no-op.
func Publish[T any](b *Bus, ev T) {
	if b.closed.Load() {
		return
	}
	snapshot := b.snapshot(typeOf[T]())
	for _, sub := range snapshot {
		if !sub.active.Load() {
			continue
		}
		b.deliver(sub, ev)
	}
}

// ActiveSubscribers returns how many live subscriptions exist for type T.
func ActiveSubscribers[T any](b *Bus) int {
	typ := typeOf[T]()
	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for _, sub := range b.subs[typ] {
		if sub.active.Load() {
			n++
		}
	}
	return n
}

// snapshot copies the active subscriber list for typ, lazily pruning
// deactivated entries from the registry while the lock is held.
func (b *Bus) snapshot(typ reflect.Type) []*Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	list := b.subs[typ]
	if len(list) == 0 {
		return nil
	}

	stale := false
	for _, sub := range list {
		if !sub.active.Load() {
			stale = true
			break
		}
	}
	if stale {
		kept := make([]*Subscription, 0, len(list))
		for _, sub := range list {
			if sub.active.Load() {
				kept = append(kept, sub)
			}
		}
		if len(kept) == 0 {
			delete(b.subs, typ)
			return nil
		}
		b.subs[typ] = kept
		list = kept
	}

	snapshot := make([]*Subscription, len(list))
	copy(snapshot, list)
	return snapshot
}

// deliver invokes one subscriber with panic isolation. A panicking
// subscriber is logged and the delivery loop continues.
func (b *Bus) deliver(sub *Subscription, ev any) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("subscriber %d panicked on %s: %v\n%s",
				sub.id, sub.typ, r, debug.Stack())
		}
	}()
	sub.fn(ev)
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
