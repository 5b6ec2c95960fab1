package text

import (
	"github.com/go-text/typesetting/font"

	ui "github.com/gogpu/ui"
)

// FontMetrics holds a font's design-space vertical metrics. All
// values are in font units; scale by size / UnitsPerEm for pixels.
type FontMetrics struct {
	UnitsPerEm uint16
	Ascent     float32
	Descent    float32
	LineGap    float32
}

// FontMetrics returns the design metrics of a loaded font.
func (s *TextSystem) FontMetrics(id FontID) (FontMetrics, error) {
	loaded, err := s.resolver.Font(id)
	if err != nil {
		return FontMetrics{}, err
	}
	face := loaded.Face()
	m := FontMetrics{UnitsPerEm: face.Upem()}
	if ext, ok := face.FontHExtents(); ok {
		m.Ascent = ext.Ascender
		m.Descent = -ext.Descender
		m.LineGap = ext.LineGap
	}
	return m, nil
}

// TypographicBounds returns a glyph's extents in font units, y-down.
func (s *TextSystem) TypographicBounds(id FontID, glyph GlyphID) (ui.Bounds, error) {
	loaded, err := s.resolver.Font(id)
	if err != nil {
		return ui.Bounds{}, err
	}
	face := loaded.Face()
	ext, ok := face.GlyphExtents(font.GID(glyph))
	if !ok {
		return ui.Bounds{}, nil
	}
	return ui.Rect(
		ext.XBearing,
		-ext.YBearing,
		ext.XBearing+ext.Width,
		-(ext.YBearing + ext.Height),
	), nil
}

// Advance returns a glyph's horizontal advance in font units.
func (s *TextSystem) Advance(id FontID, glyph GlyphID) (float32, error) {
	loaded, err := s.resolver.Font(id)
	if err != nil {
		return 0, err
	}
	return loaded.Face().HorizontalAdvance(font.GID(glyph)), nil
}

// GlyphForRune returns the glyph index for a rune, false when the
// font has no mapping for it.
func (s *TextSystem) GlyphForRune(id FontID, r rune) (GlyphID, bool) {
	loaded, err := s.resolver.Font(id)
	if err != nil {
		return 0, false
	}
	gid, ok := loaded.Face().NominalGlyph(r)
	if !ok {
		return 0, false
	}
	return GlyphID(gid), true
}
