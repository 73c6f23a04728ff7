package settings

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefault(t *testing.T) {
	doc := Default()

	if doc.Version != currentVersion {
		t.Errorf("Version = %d, want %d", doc.Version, currentVersion)
	}
	if doc.Appearance.Scale != 1.0 {
		t.Errorf("Scale = %v, want 1.0", doc.Appearance.Scale)
	}
	for _, screen := range []string{"inventory", "character", "worldmap"} {
		if _, ok := doc.Visibility[screen]; !ok {
			t.Errorf("default visibility missing %q", screen)
		}
	}
	if !doc.Audio.Enabled {
		t.Error("audio should default to enabled")
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	doc, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("Load on a missing file: %v", err)
	}
	if !reflect.DeepEqual(doc, Default()) {
		t.Errorf("Load on a missing file = %+v, want defaults", doc)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "settings.json")

	doc := Default()
	doc.Appearance.Scale = 1.5
	doc.Appearance.Theme = "light"
	doc.Visibility["inventory"] = true
	doc.Audio.Volume = 0.3

	if err := Save(doc, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(loaded, doc) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, doc)
	}
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")

	if err := Save(Default(), path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "settings.json" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory contents = %v, want only settings.json", names)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load on invalid JSON succeeded")
	}
}

func TestLoadUnsupportedVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"version": 99}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load on a future version succeeded")
	}
}

func TestLoadNormalizesValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	raw := `{
		"version": 1,
		"appearance": {"scale": 99, "opacity": 7, "theme": "", "font_size": 2},
		"audio": {"enabled": true, "volume": -3}
	}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Appearance.Scale != 3.0 {
		t.Errorf("Scale = %v, want clamped 3.0", doc.Appearance.Scale)
	}
	if doc.Appearance.Opacity != 1.0 {
		t.Errorf("Opacity = %v, want clamped 1.0", doc.Appearance.Opacity)
	}
	if doc.Appearance.Theme != "dark" {
		t.Errorf("Theme = %q, want the default dark", doc.Appearance.Theme)
	}
	if doc.Appearance.FontSize != 6 {
		t.Errorf("FontSize = %d, want clamped 6", doc.Appearance.FontSize)
	}
	if doc.Audio.Volume != 0 {
		t.Errorf("Volume = %v, want clamped 0", doc.Audio.Volume)
	}
	if doc.Visibility == nil {
		t.Error("missing visibility map not filled in")
	}
}
