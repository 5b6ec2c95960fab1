package text

import (
	"errors"
	"testing"

	ui "github.com/gogpu/ui"
)

func rasterFixture(t *testing.T) (*Rasterizer, *Resolver, FontID) {
	t.Helper()
	r := newTestResolver(t)
	id, err := r.FontID(Font{Family: DefaultFamily, Weight: WeightNormal})
	if err != nil {
		t.Fatalf("FontID: %v", err)
	}
	return NewRasterizer(r, DefaultSubpixelConfig()), r, id
}

func glyphFor(t *testing.T, r *Resolver, id FontID, ch rune) GlyphID {
	t.Helper()
	loaded, err := r.Font(id)
	if err != nil {
		t.Fatalf("Font: %v", err)
	}
	gid, ok := loaded.Face().NominalGlyph(ch)
	if !ok {
		t.Fatalf("no glyph for %q", ch)
	}
	return GlyphID(gid)
}

func TestGlyphRasterBoundsCoverGlyph(t *testing.T) {
	ras, r, id := rasterFixture(t)
	params := RenderGlyphParams{
		Font:        id,
		Glyph:       glyphFor(t, r, id, 'm'),
		FontSize:    16,
		ScaleFactor: 1,
	}
	bounds, err := ras.GlyphRasterBounds(params)
	if err != nil {
		t.Fatalf("GlyphRasterBounds: %v", err)
	}
	if bounds.IsEmpty() {
		t.Fatal("bounds for 'm' are empty")
	}
	if bounds.Size.Width > 64 || bounds.Size.Height > 64 {
		t.Errorf("bounds %+v implausibly large for 16px glyph", bounds)
	}
}

func TestGlyphRasterBoundsScaleFactor(t *testing.T) {
	ras, r, id := rasterFixture(t)
	params := RenderGlyphParams{
		Font:        id,
		Glyph:       glyphFor(t, r, id, 'm'),
		FontSize:    16,
		ScaleFactor: 1,
	}
	one, err := ras.GlyphRasterBounds(params)
	if err != nil {
		t.Fatalf("GlyphRasterBounds: %v", err)
	}
	params.ScaleFactor = 2
	two, err := ras.GlyphRasterBounds(params)
	if err != nil {
		t.Fatalf("GlyphRasterBounds at 2x: %v", err)
	}
	if two.Size.Width < one.Size.Width*2-2 || two.Size.Height < one.Size.Height*2-2 {
		t.Errorf("2x bounds %+v not roughly double of %+v", two, one)
	}
}

func TestRasterizeGlyphCoverage(t *testing.T) {
	ras, r, id := rasterFixture(t)
	params := RenderGlyphParams{
		Font:        id,
		Glyph:       glyphFor(t, r, id, 'm'),
		FontSize:    16,
		ScaleFactor: 1,
	}
	bounds, err := ras.GlyphRasterBounds(params)
	if err != nil {
		t.Fatalf("GlyphRasterBounds: %v", err)
	}
	size, data, err := ras.RasterizeGlyph(params, bounds)
	if err != nil {
		t.Fatalf("RasterizeGlyph: %v", err)
	}
	if len(data) != size.Area() {
		t.Fatalf("buffer is %d bytes for %dx%d alpha bitmap", len(data), size.Width, size.Height)
	}
	var nonzero int
	for _, a := range data {
		if a != 0 {
			nonzero++
		}
	}
	if nonzero == 0 {
		t.Error("coverage bitmap is entirely blank")
	}
}

func TestRasterizeGlyphSubpixelExpansion(t *testing.T) {
	ras, r, id := rasterFixture(t)
	params := RenderGlyphParams{
		Font:        id,
		Glyph:       glyphFor(t, r, id, 'o'),
		FontSize:    16,
		ScaleFactor: 1,
	}
	bounds, err := ras.GlyphRasterBounds(params)
	if err != nil {
		t.Fatalf("GlyphRasterBounds: %v", err)
	}

	params.Subpixel = SubpixelVariant{X: 2}
	size, data, err := ras.RasterizeGlyph(params, bounds)
	if err != nil {
		t.Fatalf("RasterizeGlyph: %v", err)
	}
	if size.Width != bounds.Size.Width+1 {
		t.Errorf("width = %d, want %d (one pixel of subpixel headroom)", size.Width, bounds.Size.Width+1)
	}
	if size.Height != bounds.Size.Height {
		t.Errorf("height = %d, want %d (no vertical phase)", size.Height, bounds.Size.Height)
	}
	if len(data) != size.Area() {
		t.Errorf("buffer is %d bytes for %dx%d bitmap", len(data), size.Width, size.Height)
	}
}

func TestRasterizeSpaceGlyph(t *testing.T) {
	ras, r, id := rasterFixture(t)
	params := RenderGlyphParams{
		Font:        id,
		Glyph:       glyphFor(t, r, id, ' '),
		FontSize:    16,
		ScaleFactor: 1,
	}
	bounds, err := ras.GlyphRasterBounds(params)
	if err != nil {
		t.Fatalf("GlyphRasterBounds: %v", err)
	}
	if !bounds.IsEmpty() {
		t.Fatalf("space glyph bounds %+v, want empty", bounds)
	}
	size, data, err := ras.RasterizeGlyph(params, bounds)
	if err != nil {
		t.Fatalf("RasterizeGlyph for contourless glyph must not error, got %v", err)
	}
	if len(data) != size.Area() {
		t.Errorf("buffer is %d bytes for %dx%d bitmap", len(data), size.Width, size.Height)
	}
	for i, a := range data {
		if a != 0 {
			t.Fatalf("byte %d = %d, want all-zero buffer", i, a)
		}
	}
}

func TestRasterizeUnknownFont(t *testing.T) {
	ras, _, _ := rasterFixture(t)
	params := RenderGlyphParams{Font: FontID(99), Glyph: 1, FontSize: 16, ScaleFactor: 1}

	if _, err := ras.GlyphRasterBounds(params); !errors.Is(err, ErrUnknownFont) {
		t.Errorf("GlyphRasterBounds = %v, want ErrUnknownFont", err)
	}
	if _, _, err := ras.RasterizeGlyph(params, ui.DeviceBounds{}); !errors.Is(err, ErrUnknownFont) {
		t.Errorf("RasterizeGlyph = %v, want ErrUnknownFont", err)
	}
}
