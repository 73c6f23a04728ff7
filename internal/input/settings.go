package input

// Settings is the router's runtime configuration bundle. The host swaps
// the whole bundle atomically through UpdateSettings; there are no
// per-field setters.
type Settings struct {
	// MouseEnabled gates all mouse kinds. Disabled mouse events are
	// still counted as processed but never dispatched or consumed.
	MouseEnabled bool

	// KeyboardEnabled gates key presses, releases, and text input the
	// same way.
	KeyboardEnabled bool

	// PassThrough lets unconsumed events reach the game while the
	// overlay is open. With it disabled, game-focused non-mouse events
	// may still be captured by matching handlers.
	PassThrough bool

	// PreventGameInputWhenFocused makes GUI focus exclusive: every
	// gated event is dispatched to the overlay even when no handler
	// claims it, so nothing leaks to the game by the carve-out rule.
	PreventGameInputWhenFocused bool

	// DefaultPriority is used by RegisterHandlerDefault.
	DefaultPriority Priority
}

// DefaultSettings returns the settings a fresh router starts with.
func DefaultSettings() Settings {
	return Settings{
		MouseEnabled:                true,
		KeyboardEnabled:             true,
		PassThrough:                 true,
		PreventGameInputWhenFocused: false,
		DefaultPriority:             PriorityNormal,
	}
}
