package assets

import (
	"fmt"
	"image"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Glyph describes one rasterized rune in an atlas. Bearings and advance
// are in pixels; UVs are normalized atlas coordinates.
type Glyph struct {
	Rune     rune
	Advance  float32
	BearingX float32
	BearingY float32 // baseline to glyph top
	W, H     int
	U0, V0   float32
	U1, V1   float32
}

// Atlas is a CPU-side glyph sheet: white glyphs with alpha coverage on
// a transparent background, ready for upload as an RGBA texture.
type Atlas struct {
	SizePx  float64
	Ascent  float32
	Descent float32
	LineGap float32
	Glyphs  map[rune]Glyph
	Image   *image.RGBA
	W, H    int
}

// LoadFontFace reads the TTF or OTF at path and opens a face at the
// given pixel size. The caller owns the face and should close it once
// any atlases have been built.
func LoadFontFace(path string, sizePx float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	ft, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("open face: %w", err)
	}
	return face, nil
}

// BuildAtlas rasterizes printable ASCII (32..126) from the face into a
// shelf-packed square atlas. The atlas starts small and doubles until
// every glyph fits.
func BuildAtlas(face font.Face, sizePx float64) (*Atlas, error) {
	m := face.Metrics()
	ascent := float32(m.Ascent.Round())
	descent := float32(-m.Descent.Round())
	lineGap := float32(m.Height.Round()) - ascent + descent

	type measured struct {
		r      rune
		w, h   int
		adv    float32
		bx, by float32
	}
	var marks []measured
	for r := rune(32); r <= rune(126); r++ {
		bounds, adv, ok := face.GlyphBounds(r)
		if !ok {
			continue
		}
		marks = append(marks, measured{
			r:   r,
			w:   (bounds.Max.X - bounds.Min.X).Round(),
			h:   (bounds.Max.Y - bounds.Min.Y).Round(),
			adv: float32(adv.Round()),
			bx:  float32(bounds.Min.X.Round()),
			by:  float32(-bounds.Min.Y.Round()),
		})
	}
	if len(marks) == 0 {
		return nil, fmt.Errorf("face has no printable ASCII glyphs")
	}

	// Shelf packing: rows of glyphs, left to right. Grow the atlas and
	// repack when a row overflows the bottom edge.
	const padding = 2
	const maxAtlas = 2048
	atlasSize := 256
	var pos map[rune]image.Point
	for {
		x, y, rowH := padding, padding, 0
		fits := true
		pos = make(map[rune]image.Point, len(marks))
		for _, g := range marks {
			if g.w == 0 || g.h == 0 {
				continue
			}
			if x+g.w+padding > atlasSize {
				x = padding
				y += rowH + padding
				rowH = 0
			}
			if y+g.h+padding > atlasSize {
				fits = false
				break
			}
			pos[g.r] = image.Pt(x, y)
			x += g.w + padding
			if g.h > rowH {
				rowH = g.h
			}
		}
		if fits {
			break
		}
		atlasSize *= 2
		if atlasSize > maxAtlas {
			return nil, fmt.Errorf("font atlas exceeds %dpx at size %.1f", maxAtlas, sizePx)
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, atlasSize, atlasSize))
	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.White,
		Face: face,
	}

	glyphs := make(map[rune]Glyph, len(marks))
	for _, g := range marks {
		entry := Glyph{
			Rune:     g.r,
			Advance:  g.adv,
			BearingX: g.bx,
			BearingY: g.by,
			W:        g.w,
			H:        g.h,
		}
		if g.w > 0 && g.h > 0 {
			p := pos[g.r]
			// The drawer's dot sits on the baseline; shift left by the
			// bearing so the glyph lands at the packed origin.
			drawer.Dot = fixed.P(p.X-int(g.bx), p.Y+int(g.by))
			drawer.DrawString(string(g.r))

			entry.U0 = float32(p.X) / float32(atlasSize)
			entry.V0 = float32(p.Y) / float32(atlasSize)
			entry.U1 = float32(p.X+g.w) / float32(atlasSize)
			entry.V1 = float32(p.Y+g.h) / float32(atlasSize)
		}
		glyphs[g.r] = entry
	}

	return &Atlas{
		SizePx:  sizePx,
		Ascent:  ascent,
		Descent: descent,
		LineGap: lineGap,
		Glyphs:  glyphs,
		Image:   dst,
		W:       atlasSize,
		H:       atlasSize,
	}, nil
}
