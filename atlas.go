package luminal

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Atlas defaults: a 512×512 bitmap holding printable ASCII.
const (
	DefaultAtlasWidth  = 512
	DefaultAtlasHeight = 512
	DefaultFirstChar   = 32
	DefaultCharCount   = 96
)

// AtlasConfig controls how a font is baked.
type AtlasConfig struct {
	Width, Height int
	First         rune // First baked code point
	Count         int  // Number of consecutive code points
	Size          float32
}

// DefaultAtlasConfig returns the default configuration for a pixel size.
func DefaultAtlasConfig(size float32) AtlasConfig {
	return AtlasConfig{
		Width:  DefaultAtlasWidth,
		Height: DefaultAtlasHeight,
		First:  DefaultFirstChar,
		Count:  DefaultCharCount,
		Size:   size,
	}
}

// Glyph is one baked glyph: its rectangle in the atlas bitmap, the offset of
// that rectangle's top-left corner from the pen (on the baseline, Y down)
// and the horizontal pen advance.
type Glyph struct {
	X0, Y0, X1, Y1 int
	XOff, YOff     float32
	Advance        float32
}

// GlyphQuad is a glyph placed on screen: screen rectangle and atlas UVs.
type GlyphQuad struct {
	// Screen coordinates (top-left and bottom-right)
	X0, Y0 float32
	X1, Y1 float32

	// Texture coordinates (top-left and bottom-right)
	U0, V0 float32
	U1, V1 float32
}

// GlyphAtlas is a baked single-channel glyph bitmap and its metrics table.
// It is immutable once baked.
type GlyphAtlas struct {
	Width, Height int
	Pixels        []byte // Width*Height coverage values, row-major
	First         rune
	Glyphs        []Glyph

	Ascent     float32
	Descent    float32
	LineHeight float32
}

// BakeAtlas rasterizes cfg.Count glyphs starting at cfg.First from the
// TrueType/OpenType bytes into a new atlas. Glyphs are packed in rows with
// one pixel of padding. It fails with ErrAtlasBake if they do not fit.
func BakeAtlas(ttf []byte, cfg AtlasConfig) (*GlyphAtlas, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Count <= 0 || cfg.Size <= 0 {
		return nil, fmt.Errorf("%w: invalid config %dx%d, %d glyphs at %gpx",
			ErrAtlasBake, cfg.Width, cfg.Height, cfg.Count, cfg.Size)
	}

	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(cfg.Size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}
	defer face.Close()

	img := image.NewAlpha(image.Rect(0, 0, cfg.Width, cfg.Height))
	metrics := face.Metrics()
	atlas := &GlyphAtlas{
		Width:      cfg.Width,
		Height:     cfg.Height,
		First:      cfg.First,
		Glyphs:     make([]Glyph, cfg.Count),
		Ascent:     fixedToFloat(metrics.Ascent),
		Descent:    fixedToFloat(metrics.Descent),
		LineHeight: fixedToFloat(metrics.Height),
	}

	x, y, bottom := 1, 1, 1
	for i := 0; i < cfg.Count; i++ {
		r := cfg.First + rune(i)
		dr, mask, maskp, advance, ok := face.Glyph(fixed.Point26_6{}, r)
		if !ok {
			// Missing glyph: keep an empty entry so indexing stays dense.
			continue
		}
		gw, gh := dr.Dx(), dr.Dy()

		if x+gw+1 >= cfg.Width {
			x, y = 1, bottom
		}
		if y+gh+1 >= cfg.Height || x+gw+1 >= cfg.Width {
			return nil, fmt.Errorf("%w: glyph %q does not fit %dx%d at %gpx",
				ErrAtlasBake, r, cfg.Width, cfg.Height, cfg.Size)
		}

		if gw > 0 && gh > 0 && mask != nil {
			draw.Draw(img, image.Rect(x, y, x+gw, y+gh), mask, maskp, draw.Src)
		}
		atlas.Glyphs[i] = Glyph{
			X0: x, Y0: y, X1: x + gw, Y1: y + gh,
			XOff:    float32(dr.Min.X),
			YOff:    float32(dr.Min.Y),
			Advance: fixedToFloat(advance),
		}

		x += gw + 1
		if y+gh+1 > bottom {
			bottom = y + gh + 1
		}
	}

	atlas.Pixels = img.Pix
	return atlas, nil
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

// Contains returns true if r was baked into the atlas.
func (a *GlyphAtlas) Contains(r rune) bool {
	return r >= a.First && int(r-a.First) < len(a.Glyphs)
}

// Quad places the glyph for r at the pen and advances the pen. Runes
// outside the baked range return false and leave the pen where it was.
func (a *GlyphAtlas) Quad(r rune, pen *Vec2) (GlyphQuad, bool) {
	if !a.Contains(r) {
		return GlyphQuad{}, false
	}
	g := a.Glyphs[r-a.First]
	rx := float32(math.Floor(float64(pen.X + g.XOff + 0.5)))
	ry := float32(math.Floor(float64(pen.Y + g.YOff + 0.5)))
	iw, ih := 1/float32(a.Width), 1/float32(a.Height)

	q := GlyphQuad{
		X0: rx,
		Y0: ry,
		X1: rx + float32(g.X1-g.X0),
		Y1: ry + float32(g.Y1-g.Y0),
		U0: float32(g.X0) * iw,
		V0: float32(g.Y0) * ih,
		U1: float32(g.X1) * iw,
		V1: float32(g.Y1) * ih,
	}
	pen.X += g.Advance
	return q, true
}

// Quads lays out text with the pen starting at (x, y) on the baseline.
func (a *GlyphAtlas) Quads(text string, x, y float32) []GlyphQuad {
	pen := Vec2{X: x, Y: y}
	quads := make([]GlyphQuad, 0, len(text))
	for _, r := range text {
		if q, ok := a.Quad(r, &pen); ok {
			quads = append(quads, q)
		}
	}
	return quads
}

// Measure returns the total advance of text and the tallest glyph height.
// Runes outside the baked range contribute nothing.
func (a *GlyphAtlas) Measure(text string) (width, height float32) {
	var pen Vec2
	for _, r := range text {
		q, ok := a.Quad(r, &pen)
		if !ok {
			continue
		}
		if h := q.Y1 - q.Y0; h > height {
			height = h
		}
	}
	return pen.X, height
}

// WritePNG encodes the atlas bitmap as a grayscale PNG.
func (a *GlyphAtlas) WritePNG(w io.Writer) error {
	img := &image.Gray{
		Pix:    a.Pixels,
		Stride: a.Width,
		Rect:   image.Rect(0, 0, a.Width, a.Height),
	}
	return png.Encode(w, img)
}
