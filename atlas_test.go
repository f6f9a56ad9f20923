package luminal_test

import (
	"bytes"
	"errors"
	"image/png"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/go-theft-auto/luminal"
)

func bakeDefault(t *testing.T) *luminal.GlyphAtlas {
	t.Helper()
	atlas, err := luminal.BakeAtlas(goregular.TTF, luminal.DefaultAtlasConfig(28))
	if err != nil {
		t.Fatalf("BakeAtlas() error = %v", err)
	}
	return atlas
}

func TestBakeAtlasDefault(t *testing.T) {
	atlas := bakeDefault(t)

	if atlas.Width != 512 || atlas.Height != 512 {
		t.Errorf("atlas size = %dx%d, want 512x512", atlas.Width, atlas.Height)
	}
	if len(atlas.Pixels) != 512*512 {
		t.Errorf("len(Pixels) = %d, want %d", len(atlas.Pixels), 512*512)
	}
	if len(atlas.Glyphs) != luminal.DefaultCharCount {
		t.Errorf("len(Glyphs) = %d, want %d", len(atlas.Glyphs), luminal.DefaultCharCount)
	}
	if atlas.LineHeight <= 0 || atlas.Ascent <= 0 {
		t.Errorf("metrics = line %v ascent %v, want positive", atlas.LineHeight, atlas.Ascent)
	}

	var inked int
	for _, p := range atlas.Pixels {
		if p != 0 {
			inked++
		}
	}
	if inked == 0 {
		t.Error("atlas bitmap is blank")
	}

	for i, g := range atlas.Glyphs {
		if g.X1 < g.X0 || g.Y1 < g.Y0 {
			t.Errorf("glyph %d has inverted rect %+v", i, g)
		}
		if g.X1 > atlas.Width || g.Y1 > atlas.Height {
			t.Errorf("glyph %d rect %+v outside atlas", i, g)
		}
	}
}

func TestBakeAtlasRangeBoundaries(t *testing.T) {
	atlas := bakeDefault(t)

	tests := []struct {
		r    rune
		want bool
	}{
		{31, false},
		{' ', true},
		{'A', true},
		{'~', true},
		{127, true},
		{128, false},
		{'é', false},
	}
	for _, tt := range tests {
		if got := atlas.Contains(tt.r); got != tt.want {
			t.Errorf("Contains(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestBakeAtlasTooSmall(t *testing.T) {
	cfg := luminal.DefaultAtlasConfig(28)
	cfg.Width, cfg.Height = 32, 32

	_, err := luminal.BakeAtlas(goregular.TTF, cfg)
	if !errors.Is(err, luminal.ErrAtlasBake) {
		t.Errorf("BakeAtlas() error = %v, want ErrAtlasBake", err)
	}
}

func TestBakeAtlasInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  luminal.AtlasConfig
	}{
		{"zero size", luminal.AtlasConfig{Count: 96, Size: 28}},
		{"no glyphs", luminal.AtlasConfig{Width: 64, Height: 64, Size: 28}},
		{"zero pixel size", luminal.AtlasConfig{Width: 64, Height: 64, Count: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := luminal.BakeAtlas(goregular.TTF, tt.cfg); !errors.Is(err, luminal.ErrAtlasBake) {
				t.Errorf("BakeAtlas() error = %v, want ErrAtlasBake", err)
			}
		})
	}
}

func TestBakeAtlasBadFont(t *testing.T) {
	_, err := luminal.BakeAtlas([]byte("not a font"), luminal.DefaultAtlasConfig(28))
	if err == nil {
		t.Fatal("BakeAtlas() with garbage returned no error")
	}
	if errors.Is(err, luminal.ErrAtlasBake) {
		t.Errorf("parse failure reported as ErrAtlasBake: %v", err)
	}
}

func TestAtlasMeasure(t *testing.T) {
	atlas := bakeDefault(t)

	w, h := atlas.Measure("")
	if w != 0 || h != 0 {
		t.Errorf("Measure(\"\") = %v, %v, want 0, 0", w, h)
	}

	hiW, hiH := atlas.Measure("Hi")
	g := atlas.Glyphs['H'-atlas.First]
	i := atlas.Glyphs['i'-atlas.First]
	if want := g.Advance + i.Advance; hiW != want {
		t.Errorf("Measure(\"Hi\") width = %v, want sum of advances %v", hiW, want)
	}
	if want := float32(g.Y1 - g.Y0); hiH < want {
		t.Errorf("Measure(\"Hi\") height = %v, want at least %v", hiH, want)
	}

	// Runes outside the range contribute nothing.
	if w, _ := atlas.Measure("Héi"); w != hiW {
		t.Errorf("Measure with unbaked rune = %v, want %v", w, hiW)
	}
}

func TestAtlasQuadRounding(t *testing.T) {
	atlas := bakeDefault(t)
	g := atlas.Glyphs['H'-atlas.First]

	pen := luminal.Vec2{X: 10.4, Y: 100}
	q, ok := atlas.Quad('H', &pen)
	if !ok {
		t.Fatal("Quad('H') not found")
	}
	if want := 10 + g.XOff; q.X0 != want {
		t.Errorf("X0 at pen 10.4 = %v, want %v", q.X0, want)
	}
	if want := 100 + g.YOff; q.Y0 != want {
		t.Errorf("Y0 = %v, want %v", q.Y0, want)
	}
	if q.X1-q.X0 != float32(g.X1-g.X0) || q.Y1-q.Y0 != float32(g.Y1-g.Y0) {
		t.Errorf("quad size = %vx%v, want glyph size", q.X1-q.X0, q.Y1-q.Y0)
	}
	if want := 10.4 + g.Advance; pen.X != want {
		t.Errorf("pen after Quad = %v, want %v", pen.X, want)
	}

	pen = luminal.Vec2{X: 10.6, Y: 100}
	q, _ = atlas.Quad('H', &pen)
	if want := 11 + g.XOff; q.X0 != want {
		t.Errorf("X0 at pen 10.6 = %v, want %v", q.X0, want)
	}

	if q.U0 != float32(g.X0)/512 || q.V1 != float32(g.Y1)/512 {
		t.Errorf("uv = %v,%v, want glyph rect over atlas size", q.U0, q.V1)
	}
}

func TestAtlasQuadOutOfRange(t *testing.T) {
	atlas := bakeDefault(t)
	pen := luminal.Vec2{X: 5, Y: 5}
	if _, ok := atlas.Quad('中', &pen); ok {
		t.Error("Quad() for unbaked rune reported ok")
	}
	if pen.X != 5 || pen.Y != 5 {
		t.Errorf("pen moved to %+v for unbaked rune", pen)
	}
}

func TestAtlasQuads(t *testing.T) {
	atlas := bakeDefault(t)
	quads := atlas.Quads("aéb", 0, 0)
	if len(quads) != 2 {
		t.Fatalf("len(Quads) = %d, want 2", len(quads))
	}
	if quads[1].X0 <= quads[0].X0 {
		t.Errorf("second quad at %v is not right of first at %v", quads[1].X0, quads[0].X0)
	}
}

func TestAtlasWritePNG(t *testing.T) {
	atlas := bakeDefault(t)

	var buf bytes.Buffer
	if err := atlas.WritePNG(&buf); err != nil {
		t.Fatalf("WritePNG() error = %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 512 || b.Dy() != 512 {
		t.Errorf("decoded size = %dx%d, want 512x512", b.Dx(), b.Dy())
	}
}
