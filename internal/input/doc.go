// Package input routes platform input events between an in-process GUI
// overlay and the host game.
//
// The Router is the single decision point: the host feeds every raw event
// through ProcessEvent, and the boolean result tells the host whether the
// overlay consumed it or the game should handle it. Routing depends on the
// current focus state, the registered handler table, the GUI area bounds,
// and the runtime settings bundle.
//
// Handlers are registered per event kind with a priority and an optional
// context tag. Dispatch walks matching handlers from most urgent to least
// and stops at the first one that reports the event as handled. A handler
// panic is recovered, logged, and treated as "not consumed" so one broken
// widget cannot take down the host's input loop.
//
// All Router methods are safe for concurrent use, though events themselves
// are expected to arrive from a single platform thread.
package input
