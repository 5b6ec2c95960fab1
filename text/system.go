package text

import (
	"math"
	"strconv"
	"strings"

	ui "github.com/gogpu/ui"
	"github.com/gogpu/ui/cache"
	"github.com/gogpu/ui/text/emoji"
)

// defaultLineCacheCapacity bounds the shaped line cache. Shaping is
// the most expensive step in the text pipeline and UI text repeats
// heavily frame to frame.
const defaultLineCacheCapacity = 1024

// TextSystem bundles the font resolver, shaper, and rasterizer into
// the surface scene construction consumes, with a shaped-line cache
// in front of the shaper.
//
// All methods are safe for concurrent use; shaping calls serialize on
// the shaper's internal lock.
type TextSystem struct {
	resolver   *Resolver
	shaper     *Shaper
	rasterizer *Rasterizer
	lines      *cache.LRU[string, LineLayout]
}

// NewTextSystem creates a TextSystem with the embedded default font
// available as the universal fallback.
func NewTextSystem(cfg ResolverConfig) (*TextSystem, error) {
	resolver, err := NewResolver(cfg)
	if err != nil {
		return nil, err
	}
	return &TextSystem{
		resolver:   resolver,
		shaper:     NewShaper(resolver),
		rasterizer: NewRasterizer(resolver, DefaultSubpixelConfig()),
		lines:      cache.NewLRU[string, LineLayout](defaultLineCacheCapacity, cache.StringHasher),
	}, nil
}

// FontID resolves a font descriptor, loading the face on first use.
func (s *TextSystem) FontID(f Font) (FontID, error) {
	return s.resolver.FontID(f)
}

// AddFonts registers raw font file bytes for family queries.
func (s *TextSystem) AddFonts(data [][]byte) error {
	return s.resolver.AddFonts(data)
}

// AllFontNames returns the distinct family names of loaded fonts.
func (s *TextSystem) AllFontNames() []string {
	return s.resolver.AllFontNames()
}

// LayoutLine shapes one line of text, serving repeated layouts from
// the line cache.
func (s *TextSystem) LayoutLine(text string, fontSize float32, runs []FontRun) LineLayout {
	key := lineKey(text, fontSize, runs)
	return s.lines.GetOrCreate(key, func() LineLayout {
		return s.shaper.LayoutLine(text, fontSize, runs)
	})
}

// GlyphRasterBounds returns the device-pixel bounds for rasterizing
// one glyph variant.
func (s *TextSystem) GlyphRasterBounds(params RenderGlyphParams) (ui.DeviceBounds, error) {
	return s.rasterizer.GlyphRasterBounds(params)
}

// RasterizeGlyph renders one glyph variant into a fresh bitmap.
func (s *TextSystem) RasterizeGlyph(params RenderGlyphParams, bounds ui.DeviceBounds) (ui.DeviceSize, []byte, error) {
	return s.rasterizer.RasterizeGlyph(params, bounds)
}

// SegmentEmoji splits text into emoji and non-emoji byte ranges, for
// callers assembling FontRuns with a dedicated emoji font.
func (s *TextSystem) SegmentEmoji(text string) []emoji.Run {
	return emoji.Segment(text)
}

// lineKey builds the shaped-line cache key. Two layout requests with
// the same text, size, and run assignment always shape identically.
func lineKey(text string, fontSize float32, runs []FontRun) string {
	var b strings.Builder
	b.Grow(len(text) + 16 + len(runs)*8)
	b.WriteString(strconv.FormatUint(uint64(math.Float32bits(fontSize)), 16))
	for _, r := range runs {
		b.WriteByte('|')
		b.WriteString(strconv.Itoa(r.Len))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(int(r.Font)))
	}
	b.WriteByte('>')
	b.WriteString(text)
	return b.String()
}
