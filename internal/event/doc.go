// Package event provides the overlay's publish/subscribe backbone.
//
// The bus is type-indexed: a subscription is keyed by the static Go type of
// the payload it wants, and a publish delivers to exactly the subscribers of
// that type. There are no topic strings and no wildcard matching; the closed
// set of payload types in this package is the vocabulary.
//
// # Delivery
//
// Publish is synchronous: it returns only after every active subscriber for
// the payload type has run, in registration order. The internal lock is held
// only while snapshotting the subscriber list, so a subscriber may subscribe
// or unsubscribe (itself included) during delivery without deadlocking.
//
//	bus := event.NewBus()
//	sub := event.Subscribe(bus, func(ev event.ItemSelected) {
//	    fmt.Println("selected", ev.ItemID)
//	})
//	event.Publish(bus, event.ItemSelected{ItemID: "sword-03"})
//	sub.Unsubscribe()
//
// Unsubscribe is idempotent and safe from inside the callback; the handle
// deactivates immediately and is pruned from the registry on the next publish
// of the same type.
//
// # Adapter
//
// Adapter wraps a Bus with named helpers for the overlay's fixed event
// vocabulary (overlay open/close, filter, selection, data binding, commands)
// and stamps every outbound payload with a source tag, a UUID event id and a
// millisecond timestamp. It owns the subscriptions it creates and releases
// them all on Close.
package event
