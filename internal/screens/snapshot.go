package screens

// Snapshot types are plain data the host hands to each screen every time
// game state changes. Screens read them during Draw and never write
// them; everything the player does comes back out as domain events.

// InventoryRow is one item line. Cells is the display text per column;
// when empty the screen derives it from Name and Count.
type InventoryRow struct {
	SlotID      int
	ItemID      string
	Name        string
	Count       int
	Cells       []string
	Selected    bool
	Highlighted bool
	Tooltip     string
}

// InventorySnapshot drives the inventory screen.
type InventorySnapshot struct {
	Title   string
	Columns []string
	Rows    []InventoryRow
}

// StatEntry is one attribute or skill line on the character sheet.
type StatEntry struct {
	Label       string
	Value       string
	Highlighted bool
	Tooltip     string
}

// CharacterTab is one tab of the character sheet. Fixed tabs are shown
// but skipped by keyboard tab cycling.
type CharacterTab struct {
	ID      string
	Title   string
	Fixed   bool
	Entries []StatEntry
}

// CharacterSnapshot drives the character sheet screen.
type CharacterSnapshot struct {
	Title string
	Name  string
	Tabs  []CharacterTab
}

// MapTile is one interesting tile on the world map. The snapshot is
// sparse; unlisted tiles are empty ground.
type MapTile struct {
	X           int
	Y           int
	Glyph       string
	Highlighted bool
	Tooltip     string
}

// MapSnapshot drives the world map screen.
type MapSnapshot struct {
	Title   string
	Width   int
	Height  int
	Tiles   []MapTile
	PlayerX int
	PlayerY int
}
