// Package main is the entry point for the scrim overlay demo. It wires
// the full stack together: settings with live reload, the event bus and
// adapter, the input router, the overlay coordinator, the widget
// screens with sample game state, key bindings, the resource cache, an
// optional Lua script, audio cues, and a GLFW window feeding the
// router.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/scrimkit/scrim/internal/audio"
	"github.com/scrimkit/scrim/internal/bindings"
	"github.com/scrimkit/scrim/internal/event"
	"github.com/scrimkit/scrim/internal/input"
	"github.com/scrimkit/scrim/internal/logging"
	"github.com/scrimkit/scrim/internal/overlay"
	"github.com/scrimkit/scrim/internal/platform"
	"github.com/scrimkit/scrim/internal/rescache"
	"github.com/scrimkit/scrim/internal/screens"
	"github.com/scrimkit/scrim/internal/script"
	"github.com/scrimkit/scrim/internal/settings"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath   string
	bindingsPath string
	scriptPath   string
	logLevel     string
	mute         bool
	title        string
	width        int
	height       int
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	log := logging.New(logging.Config{
		Level:  logging.ParseLevel(opts.logLevel),
		Output: os.Stderr,
		Prefix: "scrim",
	})

	// Settings document.
	settingsPath := opts.configPath
	if settingsPath == "" {
		p, err := settings.DefaultPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		settingsPath = p
	}
	doc, err := settings.Load(settingsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	log.Info("settings loaded from %s", settingsPath)

	// Event plumbing.
	bus := event.NewBus(event.WithLogger(log))
	defer bus.Close()
	adapter := event.NewAdapter(bus, "scrim-demo", log)
	defer adapter.Close()

	// Input routing.
	router := input.NewRouter(input.WithLogger(log))
	if !router.Initialize() {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize router: %s\n", router.LastError())
		return 1
	}
	defer router.Shutdown()

	// Widget screens with sample game state.
	manager := screens.NewManager(adapter, log)
	inventory := screens.NewInventory(adapter)
	inventory.SetSnapshot(sampleInventory())
	character := screens.NewCharacter(adapter)
	character.SetSnapshot(sampleCharacter())
	worldMap := screens.NewWorldMap(adapter)
	worldMap.SetSnapshot(sampleMap())
	manager.Register(inventory)
	manager.Register(character)
	manager.Register(worldMap)
	for id, visible := range doc.Visibility {
		manager.SetScreenVisible(id, visible)
	}

	// Lifecycle coordination between the overlay and the router.
	coordinator := overlay.NewCoordinator(overlay.Config{
		OverlayID:  "demo",
		Router:     router,
		Adapter:    adapter,
		Widgets:    manager,
		Visibility: manager,
		Logger:     log,
	})
	if !coordinator.Initialize(true) {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize coordinator: %s\n", coordinator.LastError())
		return 1
	}
	defer coordinator.Shutdown()
	forwardInput(router, coordinator)

	// Key bindings.
	bindingsPath := opts.bindingsPath
	if bindingsPath == "" {
		p, err := bindings.DefaultPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		bindingsPath = p
	}
	set, err := bindings.Load(bindingsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	var quitRequested bool
	applied := set.Apply(router, func(command string) {
		switch command {
		case "overlay.toggle":
			if coordinator.State().Active {
				coordinator.OnOverlayClosed(false)
			} else {
				coordinator.OnOverlayOpened()
			}
		case "inventory.toggle":
			coordinator.OnInventoryVisibilityChanged(!manager.ScreenVisible(screens.ScreenInventory))
		case "character.toggle":
			coordinator.OnCharacterVisibilityChanged(!manager.ScreenVisible(screens.ScreenCharacter))
		case "worldmap.toggle":
			manager.SetScreenVisible(screens.ScreenWorldMap, !manager.ScreenVisible(screens.ScreenWorldMap))
		case "quit":
			quitRequested = true
		default:
			adapter.PublishCommandInvoked(command, "")
		}
	})
	log.Info("%d key bindings active from %s", len(applied), bindingsPath)

	// Resource cache; textures, fonts and shaders load once the GL
	// context exists.
	cache := rescache.New(rescache.DefaultConfig())
	defer cache.Close()

	// Optional Lua script.
	if opts.scriptPath != "" {
		engine := script.New(log)
		defer engine.Close()
		engine.Attach(adapter)
		if err := engine.LoadFile(opts.scriptPath); err != nil {
			log.Error("script %s: %v", opts.scriptPath, err)
		}
	}

	// Audio cues.
	cues := audio.NewCues(log)
	defer cues.Close()
	cues.SetEnabled(doc.Audio.Enabled && !opts.mute)
	cues.SetVolume(doc.Audio.Volume)
	if !opts.mute {
		cues.Init()
	}
	cues.Attach(adapter)

	// Live settings reload.
	watcher := settings.NewWatcher(settingsPath, settings.WithWatcherLogger(log))
	watcher.OnReload(func(doc settings.Document) {
		cues.SetEnabled(doc.Audio.Enabled && !opts.mute)
		cues.SetVolume(doc.Audio.Volume)
		for id, visible := range doc.Visibility {
			manager.SetScreenVisible(id, visible)
		}
	})
	if err := watcher.Start(); err != nil {
		log.Warn("settings watcher disabled: %v", err)
	}
	defer watcher.Stop()

	// Native window and input feed.
	win, err := platform.NewWindow(platform.Config{
		Title:  opts.title,
		Width:  opts.width,
		Height: opts.height,
		VSync:  true,
	}, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create window: %v\n", err)
		return 1
	}
	defer win.Close()
	platform.BindInput(win, router)
	layoutScreens(win, router, inventory, character, worldMap)

	// Demo assets are optional; the creators are wired either way.
	if _, err := cache.GetTexture("panel.png", platform.TextureCreator("assets")); err != nil {
		log.Debug("demo texture unavailable: %v", err)
	}
	if _, err := cache.GetFont("overlay.ttf", platform.FontCreator("assets", float64(doc.Appearance.FontSize))); err != nil {
		log.Debug("demo font unavailable: %v", err)
	}
	if _, err := cache.GetShader("panel", platform.ShaderCreator("assets")); err != nil {
		log.Debug("demo shader unavailable: %v", err)
	}

	// Handle signals for graceful shutdown.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		win.SetShouldClose(true)
	}()

	log.Info("entering frame loop")
	for !win.ShouldClose() && !quitRequested {
		win.Poll()
		win.Clear(0.07, 0.08, 0.10, 1)
		win.Swap()
	}

	dumpStats(log, router, adapter, cache, cues)
	return 0
}

// forwardInput registers one handler per event kind that hands routed
// events to the coordinator, which fans them into the widget layer.
func forwardInput(router *input.Router, coordinator *overlay.Coordinator) {
	kinds := []input.Kind{
		input.KindKeyPress,
		input.KindKeyRelease,
		input.KindTextInput,
		input.KindMouseMove,
		input.KindMouseButtonPress,
		input.KindMouseButtonRelease,
		input.KindMouseWheel,
	}
	for _, k := range kinds {
		router.RegisterHandler(k, coordinator.HandleEvent, input.PriorityNormal, "")
	}
}

// layoutScreens carves the window into panel regions: inventory and
// character side by side on top, the map across the bottom. The GUI
// area handed to the router is the union.
func layoutScreens(win *platform.Window, router *input.Router, inv *screens.Inventory, char *screens.Character, wm *screens.WorldMap) {
	w, h := win.Size()
	const margin = 32.0
	area := input.Rect{
		X: margin,
		Y: margin,
		W: float64(w) - 2*margin,
		H: float64(h) - 2*margin,
	}
	router.SetGUIAreaBounds(area.X, area.Y, area.W, area.H)

	half := (area.W - margin) / 2
	upper := area.H * 0.6
	inv.SetBounds(input.Rect{X: area.X, Y: area.Y, W: half, H: upper})
	char.SetBounds(input.Rect{X: area.X + half + margin, Y: area.Y, W: half, H: upper})
	wm.SetBounds(input.Rect{X: area.X, Y: area.Y + upper + margin, W: area.W, H: area.H - upper - margin})
}

func dumpStats(log *logging.Logger, router *input.Router, adapter *event.Adapter, cache *rescache.Cache, cues *audio.Cues) {
	rs := router.Statistics()
	log.Info("router: processed=%d consumed=%d passed=%d handlers_invoked=%d focus_changes=%d",
		rs.EventsProcessed, rs.EventsConsumed, rs.EventsPassedThrough, rs.HandlersInvoked, rs.FocusChanges)
	cs := cache.Stats()
	log.Info("cache: allocated=%d freed=%d pool_hits=%d pool_misses=%d bytes=%d",
		cs.Allocated, cs.Freed, cs.PoolHits, cs.PoolMisses, cs.BytesInUse)
	for name, count := range adapter.Stats() {
		log.Debug("events: %s=%d", name, count)
	}
	for name, count := range cues.Stats() {
		log.Debug("audio: %s=%d", name, count)
	}
}

func sampleInventory() screens.InventorySnapshot {
	return screens.InventorySnapshot{
		Title:   "Inventory",
		Columns: []string{"Item", "Qty", "Weight"},
		Rows: []screens.InventoryRow{
			{SlotID: 0, ItemID: "potion.health", Name: "Health Potion", Count: 5,
				Cells: []string{"Health Potion", "5", "0.5"}, Tooltip: "Restores 50 health"},
			{SlotID: 1, ItemID: "sword.iron", Name: "Iron Sword", Count: 1,
				Cells: []string{"Iron Sword", "1", "6.0"}, Tooltip: "A dependable blade"},
			{SlotID: 2, ItemID: "shield.oak", Name: "Oak Shield", Count: 1,
				Cells: []string{"Oak Shield", "1", "4.2"}},
			{SlotID: 3, ItemID: "scroll.recall", Name: "Scroll of Recall", Count: 2,
				Cells: []string{"Scroll of Recall", "2", "0.1"}, Tooltip: "Returns you to the last waypoint"},
			{SlotID: 4, ItemID: "gem.ruby", Name: "Ruby", Count: 3,
				Cells: []string{"Ruby", "3", "0.2"}},
		},
	}
}

func sampleCharacter() screens.CharacterSnapshot {
	return screens.CharacterSnapshot{
		Title: "Character",
		Name:  "Wanderer",
		Tabs: []screens.CharacterTab{
			{ID: "stats", Title: "Stats", Entries: []screens.StatEntry{
				{Label: "Strength", Value: "14"},
				{Label: "Agility", Value: "11"},
				{Label: "Vitality", Value: "12", Tooltip: "Raises maximum health"},
			}},
			{ID: "skills", Title: "Skills", Entries: []screens.StatEntry{
				{Label: "Swords", Value: "23"},
				{Label: "Alchemy", Value: "8"},
			}},
			{ID: "effects", Title: "Effects", Fixed: true, Entries: []screens.StatEntry{
				{Label: "Well Rested", Value: "+10% XP"},
			}},
		},
	}
}

func sampleMap() screens.MapSnapshot {
	return screens.MapSnapshot{
		Title:  "World Map",
		Width:  32,
		Height: 18,
		Tiles: []screens.MapTile{
			{X: 4, Y: 3, Glyph: "⌂", Tooltip: "Village of Thornwall"},
			{X: 12, Y: 9, Glyph: "♦", Highlighted: true, Tooltip: "Quest: The Sunken Crypt"},
			{X: 21, Y: 5, Glyph: "▲", Tooltip: "Mount Greyspire"},
			{X: 27, Y: 14, Glyph: "≈", Tooltip: "Ferry crossing"},
		},
		PlayerX: 9,
		PlayerY: 7,
	}
}

func parseFlags() options {
	var opts options
	var size string
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "", "Path to settings file")
	flag.StringVar(&opts.bindingsPath, "bindings", "", "Path to key bindings file")
	flag.StringVar(&opts.scriptPath, "script", "", "Lua script to load at startup")
	flag.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&opts.mute, "mute", false, "Disable audio cues")
	flag.StringVar(&opts.title, "title", "scrim overlay demo", "Window title")
	flag.StringVar(&size, "size", "1280x720", "Window size as WIDTHxHEIGHT")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "scrim-demo - in-process game overlay demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: scrim-demo [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  scrim-demo                         Run with defaults\n")
		fmt.Fprintf(os.Stderr, "  scrim-demo -size 1920x1080         Larger window\n")
		fmt.Fprintf(os.Stderr, "  scrim-demo -script overlay.lua     Load a script\n")
		fmt.Fprintf(os.Stderr, "  scrim-demo -mute -log-level debug  Silent and verbose\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("scrim-demo %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	// Validate log level
	switch opts.logLevel {
	case "debug", "info", "warn", "error":
		// Valid
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
		os.Exit(1)
	}

	w, h, err := parseSize(size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	opts.width, opts.height = w, h

	return opts
}

func parseSize(s string) (int, int, error) {
	wStr, hStr, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q (want WIDTHxHEIGHT)", s)
	}
	w, err := strconv.Atoi(strings.TrimSpace(wStr))
	if err != nil || w <= 0 {
		return 0, 0, fmt.Errorf("invalid width in %q", s)
	}
	h, err := strconv.Atoi(strings.TrimSpace(hStr))
	if err != nil || h <= 0 {
		return 0, 0, fmt.Errorf("invalid height in %q", s)
	}
	return w, h, nil
}
