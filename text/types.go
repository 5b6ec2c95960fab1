package text

import (
	ui "github.com/gogpu/ui"
)

// Weight is a numeric font weight on the standard 100-900 scale.
type Weight uint16

// Common font weights.
const (
	WeightThin       Weight = 100
	WeightExtraLight Weight = 200
	WeightLight      Weight = 300
	WeightNormal     Weight = 400
	WeightMedium     Weight = 500
	WeightSemiBold   Weight = 600
	WeightBold       Weight = 700
	WeightExtraBold  Weight = 800
	WeightBlack      Weight = 900
)

// Style selects between upright and slanted variants of a family.
type Style uint8

const (
	StyleNormal Style = iota
	StyleItalic
	StyleOblique
)

// String returns the style name.
func (s Style) String() string {
	switch s {
	case StyleNormal:
		return "Normal"
	case StyleItalic:
		return "Italic"
	case StyleOblique:
		return "Oblique"
	}
	return "Unknown"
}

// Font identifies a requested typeface by family, weight, and style.
// It is an immutable value and is used as a cache key by the resolver.
type Font struct {
	Family string
	Weight Weight
	Style  Style
}

// FontID is an opaque handle into the resolver's table of loaded fonts.
// IDs are allocated once per distinct resolved Font and never reused;
// the table only grows for the lifetime of the text system.
type FontID int

// GlyphID is a face-relative glyph index, not a Unicode code point.
// It is meaningful only paired with the FontID it was shaped against.
type GlyphID uint16

// FontRun describes one contiguous span of input text rendered with a
/// single font: a byte length and the font to use for it. Style
// boundaries (bold sub-ranges and the like) come from the caller.
type FontRun struct {
	Len  int
	Font FontID
}

// ShapedGlyph is one positioned glyph in a shaped line.
type ShapedGlyph struct {
	// ID is the glyph index within the run's font.
	ID GlyphID

	// Position is the pen position in layout-local pixels.
	Position ui.Point

	// Index is the byte offset of the glyph's source cluster in the
	// original text.
	Index int

	// IsEmoji is true when the glyph comes from a color font.
	IsEmoji bool
}

// ShapedRun is an ordered sequence of glyphs sharing one font.
// Adjacent runs in a LineLayout never share a FontID.
type ShapedRun struct {
	Font   FontID
	Glyphs []ShapedGlyph
}

// LineLayout is the shaping result for one line of text.
type LineLayout struct {
	// FontSize is the requested font size in pixels.
	FontSize float32

	// Width is the total advance width of the line.
	Width float32

	// Ascent and Descent are the maximum font-native vertical extents
	// across all runs, scaled to FontSize.
	Ascent  float32
	Descent float32

	Runs []ShapedRun

	// Len is the byte length of the source text, including zero for
	// empty input.
	Len int
}
