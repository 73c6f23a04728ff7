package input

import (
	"runtime/debug"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/scrimkit/scrim/internal/logging"
)

// Handler reacts to one input event. Returning true consumes the event
// and stops dispatch; returning false passes it to the next handler.
type Handler func(*Event) bool

// registration is one entry in the router's handler table. The id is
// unique for the lifetime of the table and never reused.
type registration struct {
	id       uint64
	kind     Kind
	priority Priority
	context  string
	enabled  bool
	fn       Handler
}

// CursorPositionFunc resolves the live cursor position. Wheel events do
// not carry a position of their own, so the router queries this hook
// before testing them against the GUI area.
type CursorPositionFunc func() (x, y float64)

// Router owns the handler table, focus state, mouse tracking, and the
// routing decision for every input event.
type Router struct {
	log *logging.Logger

	initialized atomic.Bool
	enabled     atomic.Bool
	focus       atomic.Int32

	mu        sync.RWMutex
	handlers  map[Kind][]*registration
	byID      map[uint64]*registration
	nextID    uint64
	area      Rect
	areaSet   bool
	mouseX    float64
	mouseY    float64
	prevX     float64
	prevY     float64
	cursorPos CursorPositionFunc
	settings  Settings
	lastErr   string

	listenerMu     sync.Mutex
	listeners      []focusListener
	nextListenerID uint64

	stats statCounters
}

// Option configures a Router at construction.
type Option func(*Router)

// WithLogger sets the router's logger. Without it the router is silent.
func WithLogger(l *logging.Logger) Option {
	return func(r *Router) {
		if l != nil {
			r.log = l
		}
	}
}

// WithSettings overrides the initial settings bundle.
func WithSettings(s Settings) Option {
	return func(r *Router) {
		r.settings = s
	}
}

// NewRouter builds a router with an empty handler table, FocusNone, and
// default settings. Call Initialize before processing events.
func NewRouter(opts ...Option) *Router {
	r := &Router{
		log:      logging.Discard,
		handlers: make(map[Kind][]*registration),
		byID:     make(map[uint64]*registration),
		settings: DefaultSettings(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.WithComponent("input.router")
	return r
}

// Initialize arms the router. It is idempotent; a second call reports
// success without side effects.
func (r *Router) Initialize() bool {
	if r.initialized.Swap(true) {
		return true
	}
	r.enabled.Store(true)
	r.log.Info("router initialized")
	return true
}

// Initialized reports whether Initialize has run.
func (r *Router) Initialized() bool {
	return r.initialized.Load()
}

// Shutdown disarms the router and clears the handler table and focus
// listeners. Registration ids are not reused after a later Initialize.
// Shutdown of an uninitialized router is a no-op.
func (r *Router) Shutdown() {
	if !r.initialized.Swap(false) {
		return
	}
	r.enabled.Store(false)

	r.mu.Lock()
	r.handlers = make(map[Kind][]*registration)
	r.byID = make(map[uint64]*registration)
	r.lastErr = ""
	r.mu.Unlock()

	r.listenerMu.Lock()
	r.listeners = nil
	r.listenerMu.Unlock()

	r.log.Info("router shut down")
}

// SetEnabled toggles event processing without touching the handler
// table. A disabled router rejects every event.
func (r *Router) SetEnabled(enabled bool) {
	r.enabled.Store(enabled)
}

// Enabled reports whether the router is processing events.
func (r *Router) Enabled() bool {
	return r.enabled.Load()
}

// LastError returns the most recent error description, or "".
func (r *Router) LastError() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastErr
}

func (r *Router) setErr(msg string) {
	r.mu.Lock()
	r.lastErr = msg
	r.mu.Unlock()
	r.log.Warn("%s", msg)
}

// RegisterHandler adds a handler for one event kind and returns its id.
// Ids are strictly increasing and never reused. Context "" matches every
// event of the kind. A nil callback is rejected with id 0.
func (r *Router) RegisterHandler(kind Kind, fn Handler, priority Priority, context string) uint64 {
	if fn == nil {
		r.setErr("register handler: nil callback")
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	reg := &registration{
		id:       r.nextID,
		kind:     kind,
		priority: priority,
		context:  context,
		enabled:  true,
		fn:       fn,
	}
	r.handlers[kind] = append(r.handlers[kind], reg)
	r.byID[reg.id] = reg
	return reg.id
}

// RegisterHandlerDefault registers a handler at the settings bundle's
// default priority with no context.
func (r *Router) RegisterHandlerDefault(kind Kind, fn Handler) uint64 {
	r.mu.RLock()
	prio := r.settings.DefaultPriority
	r.mu.RUnlock()
	return r.RegisterHandler(kind, fn, prio, "")
}

// UnregisterHandler removes a handler by id. It reports whether the id
// was present.
func (r *Router) UnregisterHandler(id uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg, ok := r.byID[id]
	if !ok {
		return false
	}
	delete(r.byID, id)
	list := r.handlers[reg.kind]
	for i, cand := range list {
		if cand.id == id {
			r.handlers[reg.kind] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(r.handlers[reg.kind]) == 0 {
		delete(r.handlers, reg.kind)
	}
	return true
}

// SetHandlerEnabled toggles a handler without removing it. Disabled
// handlers neither claim nor receive events. It reports whether the id
// was present.
func (r *Router) SetHandlerEnabled(id uint64, enabled bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg, ok := r.byID[id]
	if !ok {
		return false
	}
	reg.enabled = enabled
	return true
}

// HandlerCount returns the number of registered handlers, enabled or not.
func (r *Router) HandlerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// SetGUIAreaBounds defines the screen rectangle the overlay occupies.
// Mouse events only reach handlers while the relevant position is inside
// this rectangle.
func (r *Router) SetGUIAreaBounds(x, y, w, h float64) {
	r.mu.Lock()
	r.area = Rect{X: x, Y: y, W: w, H: h}
	r.areaSet = true
	r.mu.Unlock()
}

// ClearGUIAreaBounds removes the GUI area. With no area defined, no
// point counts as inside and mouse events never claim.
func (r *Router) ClearGUIAreaBounds() {
	r.mu.Lock()
	r.areaSet = false
	r.area = Rect{}
	r.mu.Unlock()
}

// GUIAreaBounds returns the current area and whether one is defined.
func (r *Router) GUIAreaBounds() (Rect, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.area, r.areaSet
}

// SetCursorPositionFunc installs the live cursor hook used when routing
// wheel events.
func (r *Router) SetCursorPositionFunc(fn CursorPositionFunc) {
	r.mu.Lock()
	r.cursorPos = fn
	r.mu.Unlock()
}

// MousePosition returns the last tracked cursor position.
func (r *Router) MousePosition() (x, y float64) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.mouseX, r.mouseY
}

// MouseDelta returns the offset between the previous and current tracked
// positions.
func (r *Router) MouseDelta() (dx, dy float64) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.mouseX - r.prevX, r.mouseY - r.prevY
}

// UpdateSettings replaces the whole settings bundle.
func (r *Router) UpdateSettings(s Settings) {
	r.mu.Lock()
	r.settings = s
	r.mu.Unlock()
	r.log.Debug("settings updated: mouse=%t keyboard=%t passthrough=%t exclusive=%t",
		s.MouseEnabled, s.KeyboardEnabled, s.PassThrough, s.PreventGameInputWhenFocused)
}

// Settings returns a copy of the current settings bundle.
func (r *Router) Settings() Settings {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.settings
}

// Statistics returns a snapshot of the router counters. ActiveHandlers
// counts enabled registrations only.
func (r *Router) Statistics() Stats {
	r.mu.RLock()
	active := 0
	for _, list := range r.handlers {
		for _, reg := range list {
			if reg.enabled {
				active++
			}
		}
	}
	r.mu.RUnlock()

	return Stats{
		EventsProcessed:     r.stats.processed.Load(),
		EventsConsumed:      r.stats.consumed.Load(),
		EventsPassedThrough: r.stats.passedThrough.Load(),
		HandlersInvoked:     r.stats.handlersInvoked.Load(),
		FocusChanges:        r.stats.focusChanges.Load(),
		ActiveHandlers:      active,
	}
}

// ResetStatistics zeroes every counter. The handler table is untouched.
func (r *Router) ResetStatistics() {
	r.stats.reset()
}

// ProcessEvent runs one event through classification, mouse tracking,
// and focus routing. It returns true when the overlay consumed the event
// and the game should not see it. Events are rejected outright while the
// router is uninitialized or disabled.
func (r *Router) ProcessEvent(ev *Event) bool {
	if ev == nil {
		return false
	}
	if !r.initialized.Load() || !r.enabled.Load() {
		return false
	}

	ev.Priority = classify(ev.Kind)
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}

	r.trackMouse(ev)

	consumed := r.route(ev)
	ev.Consumed = consumed

	r.stats.processed.Add(1)
	if consumed {
		r.stats.consumed.Add(1)
	} else {
		r.mu.RLock()
		pass := r.settings.PassThrough
		r.mu.RUnlock()
		if pass && r.FocusState() != FocusGUI {
			r.stats.passedThrough.Add(1)
		}
	}
	return consumed
}

// trackMouse updates the sampled cursor positions. Motion shifts the
// previous position before overwriting the current one; button events
// overwrite only the current position, which keeps MouseDelta spanning
// the last two motions. Wheel events query the live cursor hook.
func (r *Router) trackMouse(ev *Event) {
	switch ev.Kind {
	case KindMouseMove:
		r.mu.Lock()
		r.prevX, r.prevY = r.mouseX, r.mouseY
		r.mouseX, r.mouseY = ev.X, ev.Y
		r.mu.Unlock()
	case KindMouseButtonPress, KindMouseButtonRelease:
		r.mu.Lock()
		r.mouseX, r.mouseY = ev.X, ev.Y
		r.mu.Unlock()
	case KindMouseWheel:
		r.mu.RLock()
		hook := r.cursorPos
		r.mu.RUnlock()
		if hook == nil {
			return
		}
		x, y := hook()
		r.mu.Lock()
		r.mouseX, r.mouseY = x, y
		r.mu.Unlock()
	}
}

// route applies the settings gates and the focus-state decision table.
func (r *Router) route(ev *Event) bool {
	r.mu.RLock()
	s := r.settings
	r.mu.RUnlock()

	if ev.Kind.IsMouse() && !s.MouseEnabled {
		return false
	}
	if ev.Kind.IsKeyboard() && !s.KeyboardEnabled {
		return false
	}

	switch r.FocusState() {
	case FocusGUI:
		// Unless GUI focus is exclusive, events nobody claims fall
		// through to the game immediately.
		if !s.PreventGameInputWhenFocused && !r.claims(ev) {
			return false
		}
		return r.dispatch(ev)

	case FocusGame:
		if ev.Kind.IsMouse() {
			if r.claims(ev) {
				return r.dispatch(ev)
			}
			return false
		}
		if !s.PassThrough && r.claims(ev) {
			return r.dispatch(ev)
		}
		return false

	case FocusShared:
		return r.dispatch(ev)

	default:
		return false
	}
}

// claims reports whether any enabled handler would accept the event. For
// mouse kinds the relevant position must also lie inside the GUI area:
// the event's own position for motion and buttons, the tracked position
// for wheel events. With no area defined, mouse events never claim.
func (r *Router) claims(ev *Event) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if ev.Kind.IsMouse() {
		x, y := ev.X, ev.Y
		if ev.Kind == KindMouseWheel {
			x, y = r.mouseX, r.mouseY
		}
		if !r.areaSet || !r.area.Contains(x, y) {
			return false
		}
	}

	for _, reg := range r.handlers[ev.Kind] {
		if reg.matches(ev) {
			return true
		}
	}
	return false
}

// matches is the per-handler half of the claim test: enabled, kind is
// implied by the table bucket, priority at or above the event's tier,
// and context wildcard or exact.
func (reg *registration) matches(ev *Event) bool {
	if !reg.enabled {
		return false
	}
	if reg.priority < ev.Priority {
		return false
	}
	return reg.context == "" || reg.context == ev.Context
}

// dispatch snapshots the matching handlers, orders them most urgent
// first with ties in registration order, and invokes until one consumes.
// The snapshot is taken before any callback runs, so handlers may
// register, unregister, or toggle handlers without affecting the current
// event.
func (r *Router) dispatch(ev *Event) bool {
	r.mu.RLock()
	matched := make([]*registration, 0, len(r.handlers[ev.Kind]))
	for _, reg := range r.handlers[ev.Kind] {
		if reg.matches(ev) {
			matched = append(matched, reg)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].priority < matched[j].priority
	})

	for _, reg := range matched {
		r.stats.handlersInvoked.Add(1)
		if r.invoke(reg, ev) {
			return true
		}
	}
	return false
}

// invoke runs one handler with panic isolation. A panicking handler is
// logged and treated as not consuming the event.
func (r *Router) invoke(reg *registration, ev *Event) (consumed bool) {
	defer func() {
		if rec := recover(); rec != nil {
			consumed = false
			r.log.Error("handler %d panicked on %s: %v\n%s", reg.id, ev.Kind, rec, debug.Stack())
		}
	}()
	return reg.fn(ev)
}
