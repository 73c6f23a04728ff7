// Package overlay coordinates the overlay's lifecycle against the input
// router: who has focus, whether the game keeps receiving input, and
// which domain events announce the overlay opening and closing.
package overlay

import (
	"sync"

	"github.com/scrimkit/scrim/internal/event"
	"github.com/scrimkit/scrim/internal/input"
	"github.com/scrimkit/scrim/internal/logging"
)

// EventSink consumes input events forwarded by the coordinator. Both the
// rendering toolkit and the widget layer implement this.
type EventSink interface {
	HandleInput(ev *input.Event) bool
}

// VisibilityObserver is told when a screen's visibility toggle changes.
type VisibilityObserver interface {
	SetScreenVisible(screen string, visible bool)
}

// State is a snapshot of the lifecycle booleans.
type State struct {
	Active        bool
	FocusEligible bool
	PassThrough   bool
	Minimized     bool
}

// Config wires a Coordinator to its collaborators. Router and Adapter
// are required; the sinks and observer may be nil.
type Config struct {
	// OverlayID tags published open/close events. Defaults to "overlay".
	OverlayID string

	Router     *input.Router
	Adapter    *event.Adapter
	Toolkit    EventSink
	Widgets    EventSink
	Visibility VisibilityObserver
	Logger     *logging.Logger
}

// Coordinator derives the router's focus state from the overlay
// lifecycle. While the overlay is entitled to focus it pushes GUI or
// Shared into the router, stashing whatever focus the host was using so
// it can be restored when the overlay goes away.
type Coordinator struct {
	router     *input.Router
	adapter    *event.Adapter
	toolkit    EventSink
	widgets    EventSink
	visibility VisibilityObserver
	log        *logging.Logger
	overlayID  string

	mu            sync.Mutex
	initialized   bool
	active        bool
	focusEligible bool
	passThrough   bool
	minimized     bool
	stashed       bool
	stashedFocus  input.FocusState
	lastErr       string
}

// NewCoordinator builds a coordinator from the config. Call Initialize
// before use.
func NewCoordinator(cfg Config) *Coordinator {
	id := cfg.OverlayID
	if id == "" {
		id = "overlay"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard
	}
	return &Coordinator{
		router:     cfg.Router,
		adapter:    cfg.Adapter,
		toolkit:    cfg.Toolkit,
		widgets:    cfg.Widgets,
		visibility: cfg.Visibility,
		log:        logger.WithComponent("overlay.coordinator"),
		overlayID:  id,
	}
}

// Initialize arms the coordinator with the overlay inactive, focus
// eligible, and the given pass-through policy. It fails with a readable
// LastError when a required collaborator is missing. Repeated calls are
// no-ops that report success.
func (c *Coordinator) Initialize(passThrough bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return true
	}
	if c.router == nil {
		c.setErrLocked("initialize: input router not configured")
		return false
	}
	if c.adapter == nil {
		c.setErrLocked("initialize: event adapter not configured")
		return false
	}

	c.initialized = true
	c.active = false
	c.focusEligible = true
	c.passThrough = passThrough
	c.minimized = false
	c.stashed = false
	c.lastErr = ""
	c.log.Info("coordinator initialized (pass-through=%t)", passThrough)
	return true
}

// Initialized reports whether Initialize has succeeded.
func (c *Coordinator) Initialized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialized
}

// Shutdown releases any redirected focus and disarms the coordinator.
// Safe to call repeatedly.
func (c *Coordinator) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	c.active = false
	c.minimized = false
	c.updateFocusLocked()
	c.initialized = false
	c.log.Info("coordinator shut down")
}

// LastError returns the most recent error description, or "".
func (c *Coordinator) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *Coordinator) setErrLocked(msg string) {
	c.lastErr = msg
	c.log.Warn("%s", msg)
}

// State returns a snapshot of the lifecycle booleans.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Active:        c.active,
		FocusEligible: c.focusEligible,
		PassThrough:   c.passThrough,
		Minimized:     c.minimized,
	}
}

// SetOverlayActive marks the overlay shown or hidden and re-derives the
// router's focus.
func (c *Coordinator) SetOverlayActive(active bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == active {
		return
	}
	c.active = active
	c.updateFocusLocked()
}

// SetFocusEligible controls whether the overlay may take focus at all.
func (c *Coordinator) SetFocusEligible(eligible bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.focusEligible == eligible {
		return
	}
	c.focusEligible = eligible
	c.updateFocusLocked()
}

// SetPassThroughEnabled switches between shared and exclusive focus
// while the overlay is up.
func (c *Coordinator) SetPassThroughEnabled(passThrough bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.passThrough == passThrough {
		return
	}
	c.passThrough = passThrough
	c.updateFocusLocked()
}

// updateFocusLocked re-derives the router focus from the lifecycle
// booleans. The first time the overlay becomes entitled to focus the
// router's current state is stashed; losing entitlement restores it.
func (c *Coordinator) updateFocusLocked() {
	if c.router == nil {
		return
	}

	entitled := c.active && c.focusEligible && !c.minimized
	if !entitled {
		if c.stashed {
			c.router.SetFocusState(c.stashedFocus, "overlay released focus")
			c.stashed = false
		}
		return
	}

	desired := input.FocusGUI
	reason := "overlay took focus"
	if c.passThrough {
		desired = input.FocusShared
		reason = "overlay took focus (pass-through)"
	}
	if !c.stashed {
		c.stashedFocus = c.router.FocusState()
		c.stashed = true
	}
	c.router.SetFocusState(desired, reason)
}

// OnOverlayOpened activates the overlay and announces it on the bus with
// a modal flag. Opening an already-open overlay is a no-op.
func (c *Coordinator) OnOverlayOpened() {
	c.mu.Lock()
	if !c.initialized || c.active {
		c.mu.Unlock()
		return
	}
	c.active = true
	c.updateFocusLocked()
	modal := !c.passThrough && c.active
	adapter := c.adapter
	id := c.overlayID
	c.mu.Unlock()

	if adapter != nil {
		adapter.PublishOverlayOpen(id, modal)
	}
}

// OnOverlayClosed deactivates the overlay, restores the stashed focus,
// and announces the close with the cancelled flag. Closing an
// already-closed overlay is a no-op.
func (c *Coordinator) OnOverlayClosed(cancelled bool) {
	c.mu.Lock()
	if !c.initialized || !c.active {
		c.mu.Unlock()
		return
	}
	c.active = false
	c.updateFocusLocked()
	adapter := c.adapter
	id := c.overlayID
	c.mu.Unlock()

	if adapter != nil {
		adapter.PublishOverlayClose(id, cancelled)
	}
}

// OnOverlayMinimized suspends or resumes the overlay's claim to focus
// without closing it.
func (c *Coordinator) OnOverlayMinimized(minimized bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized || c.minimized == minimized {
		return
	}
	c.minimized = minimized
	c.updateFocusLocked()
}

// OnInventoryVisibilityChanged toggles the inventory screen and pushes a
// binding refresh for anything bound to it.
func (c *Coordinator) OnInventoryVisibilityChanged(visible bool) {
	c.screenVisibilityChanged("inventory", visible)
}

// OnCharacterVisibilityChanged toggles the character sheet screen.
func (c *Coordinator) OnCharacterVisibilityChanged(visible bool) {
	c.screenVisibilityChanged("character", visible)
}

func (c *Coordinator) screenVisibilityChanged(screen string, visible bool) {
	c.mu.Lock()
	observer := c.visibility
	adapter := c.adapter
	c.mu.Unlock()

	if observer != nil {
		observer.SetScreenVisible(screen, visible)
	}
	if adapter != nil {
		adapter.PublishBindingUpdate("visibility."+screen, c.overlayID, false)
	}
	c.log.Debug("screen %s visible=%t", screen, visible)
}

// HandleEvent forwards an event to the toolkit and the widget layer and
// reports whether either consumed it. Both sinks always run so each can
// track state even when the other claims the event. Events are dropped
// while the overlay is uninitialized, inactive, ineligible, or
// minimized.
func (c *Coordinator) HandleEvent(ev *input.Event) bool {
	if ev == nil {
		return false
	}

	c.mu.Lock()
	gate := c.initialized && c.active && c.focusEligible && !c.minimized
	toolkit := c.toolkit
	widgets := c.widgets
	c.mu.Unlock()

	if !gate {
		return false
	}

	consumed := false
	if toolkit != nil && toolkit.HandleInput(ev) {
		consumed = true
	}
	if widgets != nil && widgets.HandleInput(ev) {
		consumed = true
	}
	return consumed
}
