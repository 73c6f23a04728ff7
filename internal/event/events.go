package event

// Wire names for the overlay vocabulary. These are the identifiers used in
// adapter statistics, script bindings, and logs.
const (
	NameOverlayOpen     = "overlay_open"
	NameOverlayClose    = "overlay_close"
	NameFilterApplied   = "filter_applied"
	NameItemSelected    = "item_selected"
	NameBindingUpdate   = "data_binding_update"
	NameTabSelected     = "tab_selected"
	NameCommandInvoked  = "command_invoked"
	NameTileClicked     = "tile_clicked"
	NameStatusChange    = "status_change"
	NameInventoryChange = "inventory_change"
	NameNotice          = "notice"
)

// Meta is stamped onto every domain event by the adapter: a UUID event id,
// the publishing subsystem's source tag, and a Unix-millisecond timestamp.
type Meta struct {
	EventID string
	Source  string
	At      int64
}

// Severity classifies inbound notices.
type Severity uint8

const (
	// SeverityInfo is a routine notification.
	SeverityInfo Severity = iota
	// SeverityWarning is a notification the player should see.
	SeverityWarning
	// SeverityError is a failure notification.
	SeverityError
)

// String returns the severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// OverlayOpened announces that an overlay became active. Modal means
// pass-through is disabled and the overlay owns input exclusively.
type OverlayOpened struct {
	OverlayID string
	Modal     bool
	Meta      Meta
}

// EventName returns the wire name.
func (OverlayOpened) EventName() string { return NameOverlayOpen }

// OverlayClosed announces that an overlay was dismissed.
type OverlayClosed struct {
	OverlayID string
	Cancelled bool
	Meta      Meta
}

// EventName returns the wire name.
func (OverlayClosed) EventName() string { return NameOverlayClose }

// FilterApplied carries a filter-box edit for a component's list contents.
type FilterApplied struct {
	Text          string
	Target        string
	CaseSensitive bool
	Meta          Meta
}

// EventName returns the wire name.
func (FilterApplied) EventName() string { return NameFilterApplied }

// ItemSelected carries a row activation from a component.
type ItemSelected struct {
	ItemID      string
	Component   string
	DoubleClick bool
	Count       int
	Meta        Meta
}

// EventName returns the wire name.
func (ItemSelected) EventName() string { return NameItemSelected }

// BindingUpdated asks data-bound views to refresh from their source.
type BindingUpdated struct {
	BindingID  string
	DataSource string
	Forced     bool
	Meta       Meta
}

// EventName returns the wire name.
func (BindingUpdated) EventName() string { return NameBindingUpdate }

// TabSelected carries a tab switch inside a component.
type TabSelected struct {
	Component string
	TabID     string
	Meta      Meta
}

// EventName returns the wire name.
func (TabSelected) EventName() string { return NameTabSelected }

// CommandInvoked carries a keyboard or binding command aimed at a component
// (empty Target means "whichever screen has focus").
type CommandInvoked struct {
	Command string
	Target  string
	Meta    Meta
}

// EventName returns the wire name.
func (CommandInvoked) EventName() string { return NameCommandInvoked }

// TileClicked carries a map tile activation in tile coordinates.
type TileClicked struct {
	X    int
	Y    int
	Meta Meta
}

// EventName returns the wire name.
func (TileClicked) EventName() string { return NameTileClicked }

// StatusChanged is an inbound gameplay notification about a character
// attribute (health, stamina, and so on).
type StatusChanged struct {
	Attribute string
	Value     float64
	Max       float64
	Meta      Meta
}

// EventName returns the wire name.
func (StatusChanged) EventName() string { return NameStatusChange }

// InventoryChanged is an inbound gameplay notification about an inventory
// slot mutation.
type InventoryChanged struct {
	SlotID  string
	ItemID  string
	Count   int
	Removed bool
	Meta    Meta
}

// EventName returns the wire name.
func (InventoryChanged) EventName() string { return NameInventoryChange }

// Notice is an inbound free-text notification for the player.
type Notice struct {
	Text     string
	Severity Severity
	Meta     Meta
}

// EventName returns the wire name.
func (Notice) EventName() string { return NameNotice }
