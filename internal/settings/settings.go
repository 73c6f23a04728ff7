// Package settings persists the overlay's user-facing configuration:
// GUI appearance, per-component visibility toggles, and audio cues. The
// document lives as JSON in the platform config directory and can be
// reloaded live through a file watcher.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const currentVersion = 1

// Appearance holds the GUI rendering knobs.
type Appearance struct {
	Scale    float64 `json:"scale"`
	Opacity  float64 `json:"opacity"`
	Theme    string  `json:"theme"`
	FontSize int     `json:"font_size"`
}

// Audio holds the cue playback knobs.
type Audio struct {
	Enabled bool    `json:"enabled"`
	Volume  float64 `json:"volume"`
}

// Document is the persisted settings file.
type Document struct {
	Version    int             `json:"version"`
	Appearance Appearance      `json:"appearance"`
	Visibility map[string]bool `json:"visibility"`
	Audio      Audio           `json:"audio"`
}

// Default returns the settings used when no file exists yet.
func Default() Document {
	return Document{
		Version: currentVersion,
		Appearance: Appearance{
			Scale:    1.0,
			Opacity:  0.95,
			Theme:    "dark",
			FontSize: 14,
		},
		Visibility: map[string]bool{
			"inventory": false,
			"character": false,
			"worldmap":  false,
		},
		Audio: Audio{
			Enabled: true,
			Volume:  0.8,
		},
	}
}

// normalize clamps loaded values into their usable ranges and fills
// holes left by hand-edited files.
func (d *Document) normalize() {
	if d.Version == 0 {
		d.Version = currentVersion
	}
	if d.Appearance.Scale < 0.5 {
		d.Appearance.Scale = 0.5
	} else if d.Appearance.Scale > 3.0 {
		d.Appearance.Scale = 3.0
	}
	if d.Appearance.Opacity < 0 {
		d.Appearance.Opacity = 0
	} else if d.Appearance.Opacity > 1 {
		d.Appearance.Opacity = 1
	}
	if d.Appearance.Theme == "" {
		d.Appearance.Theme = "dark"
	}
	if d.Appearance.FontSize < 6 {
		d.Appearance.FontSize = 6
	}
	if d.Visibility == nil {
		d.Visibility = Default().Visibility
	}
	if d.Audio.Volume < 0 {
		d.Audio.Volume = 0
	} else if d.Audio.Volume > 1 {
		d.Audio.Volume = 1
	}
}

// Load reads a settings document. A missing file is not an error, it
// returns the defaults.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Document{}, fmt.Errorf("read settings %s: %w", path, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("parse settings %s: %w", path, err)
	}
	if doc.Version > currentVersion {
		return Document{}, fmt.Errorf("settings %s: unsupported version %d (max %d)",
			path, doc.Version, currentVersion)
	}
	doc.normalize()
	return doc, nil
}

// Save writes the document atomically using a temp file and rename.
func Save(doc Document, path string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return fmt.Errorf("write settings temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("rename settings temp file: %w", err)
	}
	return nil
}

// DefaultPath returns the per-user settings location, such as
// ~/.config/scrim/settings.json on Unix-like systems.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config directory: %w", err)
	}
	return filepath.Join(configDir, "scrim", "settings.json"), nil
}
