package text

import "errors"

// Text system errors.
var (
	// ErrNoFontMatch indicates no loaded face matched the requested
	// family, weight, and style.
	ErrNoFontMatch = errors.New("text: no matching font")

	// ErrMissingGlyphCoverage indicates a resolved face failed the
	// basic Latin coverage sanity check.
	ErrMissingGlyphCoverage = errors.New("text: font lacks basic glyph coverage")

	// ErrUnknownFont indicates a FontID outside the loaded font table.
	ErrUnknownFont = errors.New("text: unknown font id")

	// ErrNoGlyphData indicates a glyph has neither an outline nor an
	// embedded bitmap in its font.
	ErrNoGlyphData = errors.New("text: glyph has no renderable data")
)
