// Package bindings maps command names to key chords. The set is loaded
// from a TOML file and applied to the input router as high-priority
// key-press handlers, so bound chords win over widget handlers.
package bindings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/scrimkit/scrim/internal/input"
)

// Parse errors.
var (
	ErrEmptyChord   = errors.New("empty key chord")
	ErrInvalidChord = errors.New("invalid key chord")
)

// Chord is one parsed key combination: a key plus the exact modifier
// set that must be held.
type Chord struct {
	Key  input.Key
	Mods input.Modifiers
}

// ParseChord parses a chord spec like "ctrl+shift+i", "escape", or
// "f2". Specs are case-insensitive and '+'-separated; every part but
// the last must be a modifier (ctrl, shift, alt, super).
func ParseChord(spec string) (Chord, error) {
	trimmed := strings.TrimSpace(spec)
	if trimmed == "" {
		return Chord{}, ErrEmptyChord
	}

	parts := strings.Split(trimmed, "+")
	var mods input.Modifiers
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "ctrl", "control":
			mods |= input.ModCtrl
		case "shift":
			mods |= input.ModShift
		case "alt":
			mods |= input.ModAlt
		case "super", "meta", "cmd":
			mods |= input.ModSuper
		default:
			return Chord{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidChord, p, spec)
		}
	}

	name := strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))
	key, ok := input.KeyByName(name)
	if !ok {
		return Chord{}, fmt.Errorf("%w: unknown key %q in %q", ErrInvalidChord, name, spec)
	}
	return Chord{Key: key, Mods: mods}, nil
}

// String returns the canonical spec, parseable by ParseChord.
func (c Chord) String() string {
	if c.Mods == 0 {
		return c.Key.String()
	}
	return c.Mods.String() + "+" + c.Key.String()
}

// Matches reports whether a key press triggers the chord. The modifier
// match is exact: ctrl+i does not fire on ctrl+shift+i.
func (c Chord) Matches(ev *input.Event) bool {
	if ev == nil || ev.Kind != input.KindKeyPress {
		return false
	}
	return ev.Key == c.Key && ev.Mods == c.Mods
}

// Binding pairs a command name with its chord.
type Binding struct {
	Command string
	Chord   Chord
}

// Set holds the bindings sorted by command name.
type Set struct {
	bindings []Binding
}

// NewSet builds a set from command-to-spec pairs.
func NewSet(specs map[string]string) (*Set, error) {
	s := &Set{bindings: make([]Binding, 0, len(specs))}
	for command, spec := range specs {
		chord, err := ParseChord(spec)
		if err != nil {
			return nil, fmt.Errorf("binding %q: %w", command, err)
		}
		s.bindings = append(s.bindings, Binding{Command: command, Chord: chord})
	}
	sort.Slice(s.bindings, func(i, j int) bool {
		return s.bindings[i].Command < s.bindings[j].Command
	})
	return s, nil
}

// Default returns the stock bindings.
func Default() *Set {
	s, err := NewSet(map[string]string{
		"overlay.toggle":   "ctrl+shift+o",
		"inventory.toggle": "i",
		"character.toggle": "c",
		"worldmap.toggle":  "m",
	})
	if err != nil {
		panic("invalid default binding: " + err.Error())
	}
	return s
}

// Len returns the number of bindings.
func (s *Set) Len() int { return len(s.bindings) }

// Bindings returns a copy of the bindings in command order.
func (s *Set) Bindings() []Binding {
	out := make([]Binding, len(s.bindings))
	copy(out, s.bindings)
	return out
}

// Chord looks up the chord bound to a command.
func (s *Set) Chord(command string) (Chord, bool) {
	for _, b := range s.bindings {
		if b.Command == command {
			return b.Chord, true
		}
	}
	return Chord{}, false
}

// fileDoc is the on-disk TOML shape:
//
//	[bindings]
//	"overlay.toggle" = "ctrl+shift+o"
type fileDoc struct {
	Bindings map[string]string `toml:"bindings"`
}

// Load reads a bindings file. A missing file is not an error, it
// returns the defaults.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read bindings %s: %w", path, err)
	}

	var doc fileDoc
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse bindings %s: %w", path, err)
	}

	set, err := NewSet(doc.Bindings)
	if err != nil {
		return nil, fmt.Errorf("bindings %s: %w", path, err)
	}
	return set, nil
}

// DefaultPath returns the per-user bindings location, such as
// ~/.config/scrim/bindings.toml on Unix-like systems.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config directory: %w", err)
	}
	return filepath.Join(configDir, "scrim", "bindings.toml"), nil
}

// Apply registers one high-priority key-press handler per binding. A
// firing chord consumes its event and hands the command name to emit.
// The returned handler ids let the host unregister the set again.
func (s *Set) Apply(router *input.Router, emit func(command string)) []uint64 {
	ids := make([]uint64, 0, len(s.bindings))
	for _, b := range s.bindings {
		b := b
		id := router.RegisterHandler(input.KindKeyPress, func(ev *input.Event) bool {
			if !b.Chord.Matches(ev) {
				return false
			}
			if emit != nil {
				emit(b.Command)
			}
			return true
		}, input.PriorityHigh, "")
		if id != 0 {
			ids = append(ids, id)
		}
	}
	return ids
}
