package event

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/scrimkit/scrim/internal/logging"
)

// Adapter is the typed façade subsystems use instead of talking to the bus
// directly. It publishes the overlay's fixed vocabulary with stamped
// metadata, counts everything that passes through it, and owns the
// subscriptions it creates so Close can release them all at once.
type Adapter struct {
	bus    *Bus
	source string
	logger *logging.Logger
	closed atomic.Bool

	mu   sync.Mutex
	subs []*Subscription

	published atomic.Uint64
	received  atomic.Uint64

	countsMu sync.Mutex
	counts   map[string]uint64
}

// NewAdapter creates an adapter publishing with the given source tag.
// A nil logger falls back to the discard logger.
func NewAdapter(bus *Bus, source string, logger *logging.Logger) *Adapter {
	if logger == nil {
		logger = logging.Discard
	}
	return &Adapter{
		bus:    bus,
		source: source,
		logger: logger.WithComponent("event.adapter"),
		counts: make(map[string]uint64),
	}
}

// Source returns the adapter's source tag.
func (a *Adapter) Source() string {
	return a.source
}

// Bus returns the underlying bus.
func (a *Adapter) Bus() *Bus {
	return a.bus
}

// Close unsubscribes everything the adapter registered and stops counting.
// Idempotent and safe to call concurrently with deliveries in flight.
func (a *Adapter) Close() {
	if a.closed.Swap(true) {
		return
	}
	a.mu.Lock()
	subs := a.subs
	a.subs = nil
	a.mu.Unlock()

	for _, sub := range subs {
		sub.Unsubscribe()
	}
	a.logger.Debug("adapter closed, released %d subscriptions", len(subs))
}

// Closed reports whether Close has been called.
func (a *Adapter) Closed() bool {
	return a.closed.Load()
}

// Stats returns a snapshot of the adapter's counters: the running totals
// plus one entry per event name seen, keyed "published.<name>" and
// "received.<name>".
func (a *Adapter) Stats() map[string]uint64 {
	out := map[string]uint64{
		"events_published": a.published.Load(),
		"events_received":  a.received.Load(),
	}
	a.countsMu.Lock()
	for k, v := range a.counts {
		out[k] = v
	}
	a.countsMu.Unlock()
	return out
}

func (a *Adapter) stamp() Meta {
	return Meta{
		EventID: uuid.NewString(),
		Source:  a.source,
		At:      time.Now().UnixMilli(),
	}
}

func (a *Adapter) countPublished(name string) {
	a.published.Add(1)
	a.countsMu.Lock()
	a.counts["published."+name]++
	a.countsMu.Unlock()
}

func (a *Adapter) countReceived(name string) {
	a.received.Add(1)
	a.countsMu.Lock()
	a.counts["received."+name]++
	a.countsMu.Unlock()
}

// PublishOverlayOpen announces an overlay activation.
func (a *Adapter) PublishOverlayOpen(overlayID string, modal bool) {
	if a.closed.Load() {
		return
	}
	Publish(a.bus, OverlayOpened{OverlayID: overlayID, Modal: modal, Meta: a.stamp()})
	a.countPublished(NameOverlayOpen)
}

// PublishOverlayClose announces an overlay dismissal.
func (a *Adapter) PublishOverlayClose(overlayID string, cancelled bool) {
	if a.closed.Load() {
		return
	}
	Publish(a.bus, OverlayClosed{OverlayID: overlayID, Cancelled: cancelled, Meta: a.stamp()})
	a.countPublished(NameOverlayClose)
}

// PublishFilterApplied announces a filter-box edit for target.
func (a *Adapter) PublishFilterApplied(text, target string, caseSensitive bool) {
	if a.closed.Load() {
		return
	}
	Publish(a.bus, FilterApplied{Text: text, Target: target, CaseSensitive: caseSensitive, Meta: a.stamp()})
	a.countPublished(NameFilterApplied)
}

// PublishItemSelected announces a row activation in component.
func (a *Adapter) PublishItemSelected(itemID, component string, doubleClick bool, count int) {
	if a.closed.Load() {
		return
	}
	Publish(a.bus, ItemSelected{ItemID: itemID, Component: component, DoubleClick: doubleClick, Count: count, Meta: a.stamp()})
	a.countPublished(NameItemSelected)
}

// PublishBindingUpdate asks views bound to bindingID to refresh.
func (a *Adapter) PublishBindingUpdate(bindingID, dataSource string, forced bool) {
	if a.closed.Load() {
		return
	}
	Publish(a.bus, BindingUpdated{BindingID: bindingID, DataSource: dataSource, Forced: forced, Meta: a.stamp()})
	a.countPublished(NameBindingUpdate)
}

// PublishTabSelected announces a tab switch inside component.
func (a *Adapter) PublishTabSelected(component, tabID string) {
	if a.closed.Load() {
		return
	}
	Publish(a.bus, TabSelected{Component: component, TabID: tabID, Meta: a.stamp()})
	a.countPublished(NameTabSelected)
}

// PublishCommandInvoked announces a keyboard or binding command.
func (a *Adapter) PublishCommandInvoked(command, target string) {
	if a.closed.Load() {
		return
	}
	Publish(a.bus, CommandInvoked{Command: command, Target: target, Meta: a.stamp()})
	a.countPublished(NameCommandInvoked)
}

// PublishTileClicked announces a map tile activation.
func (a *Adapter) PublishTileClicked(x, y int) {
	if a.closed.Load() {
		return
	}
	Publish(a.bus, TileClicked{X: x, Y: y, Meta: a.stamp()})
	a.countPublished(NameTileClicked)
}

// OnStatusChange registers fn for inbound gameplay status notifications.
func (a *Adapter) OnStatusChange(fn func(StatusChanged)) {
	subscribeVia(a, NameStatusChange, fn)
}

// OnInventoryChange registers fn for inbound inventory mutations.
func (a *Adapter) OnInventoryChange(fn func(InventoryChanged)) {
	subscribeVia(a, NameInventoryChange, fn)
}

// OnNotice registers fn for inbound player notices.
func (a *Adapter) OnNotice(fn func(Notice)) {
	subscribeVia(a, NameNotice, fn)
}

// OnOverlayOpen registers fn for overlay activations.
func (a *Adapter) OnOverlayOpen(fn func(OverlayOpened)) {
	subscribeVia(a, NameOverlayOpen, fn)
}

// OnOverlayClose registers fn for overlay dismissals.
func (a *Adapter) OnOverlayClose(fn func(OverlayClosed)) {
	subscribeVia(a, NameOverlayClose, fn)
}

// OnFilterApplied registers fn for filter edits.
func (a *Adapter) OnFilterApplied(fn func(FilterApplied)) {
	subscribeVia(a, NameFilterApplied, fn)
}

// OnItemSelected registers fn for row activations.
func (a *Adapter) OnItemSelected(fn func(ItemSelected)) {
	subscribeVia(a, NameItemSelected, fn)
}

// OnBindingUpdate registers fn for data-binding refresh requests.
func (a *Adapter) OnBindingUpdate(fn func(BindingUpdated)) {
	subscribeVia(a, NameBindingUpdate, fn)
}

// OnTabSelected registers fn for tab switches.
func (a *Adapter) OnTabSelected(fn func(TabSelected)) {
	subscribeVia(a, NameTabSelected, fn)
}

// OnCommandInvoked registers fn for command events.
func (a *Adapter) OnCommandInvoked(fn func(CommandInvoked)) {
	subscribeVia(a, NameCommandInvoked, fn)
}

// OnTileClicked registers fn for map tile activations.
func (a *Adapter) OnTileClicked(fn func(TileClicked)) {
	subscribeVia(a, NameTileClicked, fn)
}

// subscribeVia registers a counted, adapter-owned subscription. Methods
// cannot carry type parameters, so the helpers above funnel through here.
func subscribeVia[T any](a *Adapter, name string, fn func(T)) {
	if fn == nil || a.closed.Load() {
		return
	}
	sub := Subscribe(a.bus, func(ev T) {
		if a.closed.Load() {
			return
		}
		a.countReceived(name)
		fn(ev)
	})
	a.mu.Lock()
	a.subs = append(a.subs, sub)
	a.mu.Unlock()
}
