package assets

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func writeTempPNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 16), G: uint8(y * 16), B: 200, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "img.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create temp png: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return path
}

func TestLoadImagePNG(t *testing.T) {
	path := writeTempPNG(t, 8, 4)

	rgba, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if got := rgba.Bounds(); got.Dx() != 8 || got.Dy() != 4 {
		t.Fatalf("bounds = %v, want 8x4", got)
	}
	r, g, b, a := rgba.At(2, 1).RGBA()
	if r>>8 != 32 || g>>8 != 16 || b>>8 != 200 || a>>8 != 255 {
		t.Errorf("pixel (2,1) = %d,%d,%d,%d, want 32,16,200,255", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestLoadImageMissing(t *testing.T) {
	if _, err := LoadImage(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Fatal("LoadImage of missing file succeeded")
	}
}

func TestLoadImageBadData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write junk: %v", err)
	}
	if _, err := LoadImage(path); err == nil {
		t.Fatal("LoadImage of junk data succeeded")
	}
}

func writeTempFont(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "regular.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o644); err != nil {
		t.Fatalf("write font: %v", err)
	}
	return path
}

func TestLoadFontFaceMissing(t *testing.T) {
	if _, err := LoadFontFace(filepath.Join(t.TempDir(), "nope.ttf"), 14); err == nil {
		t.Fatal("LoadFontFace of missing file succeeded")
	}
}

func TestBuildAtlas(t *testing.T) {
	face, err := LoadFontFace(writeTempFont(t), 14)
	if err != nil {
		t.Fatalf("LoadFontFace: %v", err)
	}
	defer face.Close()

	atlas, err := BuildAtlas(face, 14)
	if err != nil {
		t.Fatalf("BuildAtlas: %v", err)
	}

	if len(atlas.Glyphs) < 90 {
		t.Errorf("glyph count = %d, want at least 90 printable ASCII", len(atlas.Glyphs))
	}
	if atlas.Ascent <= 0 {
		t.Errorf("Ascent = %f, want > 0", atlas.Ascent)
	}
	if atlas.W < 256 || atlas.W != atlas.H {
		t.Errorf("atlas dims = %dx%d, want square of at least 256", atlas.W, atlas.H)
	}
	if got := atlas.Image.Bounds(); got.Dx() != atlas.W || got.Dy() != atlas.H {
		t.Errorf("image bounds %v do not match dims %dx%d", got, atlas.W, atlas.H)
	}

	a, ok := atlas.Glyphs['A']
	if !ok {
		t.Fatal("atlas is missing glyph 'A'")
	}
	if a.W <= 0 || a.H <= 0 || a.Advance <= 0 {
		t.Errorf("glyph 'A' = %+v, want positive size and advance", a)
	}
	if a.U1 <= a.U0 || a.V1 <= a.V0 {
		t.Errorf("glyph 'A' UVs not ordered: %+v", a)
	}
	if a.U0 < 0 || a.U1 > 1 || a.V0 < 0 || a.V1 > 1 {
		t.Errorf("glyph 'A' UVs out of range: %+v", a)
	}

	space, ok := atlas.Glyphs[' ']
	if !ok {
		t.Fatal("atlas is missing the space glyph")
	}
	if space.W != 0 || space.H != 0 {
		t.Errorf("space glyph size = %dx%d, want 0x0", space.W, space.H)
	}
	if space.Advance <= 0 {
		t.Errorf("space advance = %f, want > 0", space.Advance)
	}

	// The sheet must actually contain rendered coverage.
	covered := false
	for i := 3; i < len(atlas.Image.Pix); i += 4 {
		if atlas.Image.Pix[i] > 0 {
			covered = true
			break
		}
	}
	if !covered {
		t.Error("atlas image has no coverage anywhere")
	}
}

func TestLoadShaderSource(t *testing.T) {
	dir := t.TempDir()
	vert := filepath.Join(dir, "panel.vert")
	frag := filepath.Join(dir, "panel.frag")
	if err := os.WriteFile(vert, []byte("#version 330 core\nvoid main() {}\n"), 0o644); err != nil {
		t.Fatalf("write vert: %v", err)
	}
	if err := os.WriteFile(frag, []byte("#version 330 core\nvoid main() {}\n"), 0o644); err != nil {
		t.Fatalf("write frag: %v", err)
	}

	src, err := LoadShaderSource(vert, frag)
	if err != nil {
		t.Fatalf("LoadShaderSource: %v", err)
	}
	if src.Vertex == "" || src.Fragment == "" {
		t.Fatal("shader sources came back empty")
	}

	if _, err := LoadShaderSource(vert, filepath.Join(dir, "missing.frag")); err == nil {
		t.Fatal("missing fragment shader did not error")
	}

	empty := filepath.Join(dir, "empty.vert")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatalf("write empty: %v", err)
	}
	if _, err := LoadShaderSource(empty, frag); err == nil {
		t.Fatal("empty vertex shader did not error")
	}
}
