package text

import (
	"math"
	"sync"
	"unicode/utf8"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"

	ui "github.com/gogpu/ui"
)

// Shaper turns one line of styled text into positioned glyphs using
// HarfBuzz shaping via go-text/typesetting. It handles kerning,
// ligatures, right-to-left text, and per-rune font fallback.
//
// LayoutLine takes exclusive access to the shared shaping state: the
// HarfbuzzShaper buffer and the bidi paragraph are not safe for
// concurrent use, so all shaping calls are serialized per Shaper.
type Shaper struct {
	mu       sync.Mutex
	resolver *Resolver
	hb       shaping.HarfbuzzShaper
	bidi     bidi.Paragraph
}

// NewShaper creates a Shaper resolving fonts through resolver.
func NewShaper(resolver *Resolver) *Shaper {
	return &Shaper{resolver: resolver}
}

// shapedPiece is one shaping engine output attributed back to a
// loaded font.
type shapedPiece struct {
	out  shaping.Output
	font FontID
}

// LayoutLine shapes text into a LineLayout. fontRuns assigns byte
// spans of text to resolved fonts; spans past the end of text are
// clamped. Empty text or an empty run list yields a zero-glyph
// layout carrying the byte length.
func (s *Shaper) LayoutLine(text string, fontSize float32, fontRuns []FontRun) LineLayout {
	layout := LineLayout{FontSize: fontSize, Len: len(text)}
	if text == "" || len(fontRuns) == 0 {
		return layout
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	runes := []rune(text)

	// byteAt maps a rune index to its byte offset in text.
	byteAt := make([]int, len(runes)+1)
	off := 0
	for i, r := range runes {
		byteAt[i] = off
		off += utf8.RuneLen(r)
	}
	byteAt[len(runes)] = off

	var pieces []shapedPiece

	byteStart, runeStart := 0, 0
	for i, fr := range fontRuns {
		byteEnd := byteStart + fr.Len
		if byteEnd > len(text) {
			byteEnd = len(text)
		}
		runeEnd := runeStart
		for runeEnd < len(runes) && byteAt[runeEnd] < byteEnd {
			runeEnd++
		}
		if runeEnd == runeStart {
			byteStart = byteEnd
			continue
		}

		loaded, err := s.resolver.Font(fr.Font)
		if err != nil {
			byteStart, runeStart = byteEnd, runeEnd
			continue
		}

		// Alternate the size by one ULP between consecutive runs.
		// HarfBuzz merges adjacent runs of identical style into one
		// shaping cluster, which can form a ligature across the run
		// boundary; the smallest representable size difference
		// defeats the merge without any visible change.
		size := fontSize
		if i%2 == 1 {
			size = math.Nextafter32(fontSize, float32(math.Inf(1)))
		}

		// Vertical metrics come from the requested run's font, not
		// from whichever fallback face shaping substitutes, so the
		// line height is stable across fallback decisions.
		face := loaded.Face()
		if ext, ok := face.FontHExtents(); ok {
			scale := fontSize / float32(face.Upem())
			if a := ext.Ascender * scale; a > layout.Ascent {
				layout.Ascent = a
			}
			if d := -ext.Descender * scale; d > layout.Descent {
				layout.Descent = d
			}
		}

		input := shaping.Input{
			Text:      runes,
			RunStart:  runeStart,
			RunEnd:    runeEnd,
			Direction: di.DirectionLTR,
			Face:      face,
			Size:      fixed.Int26_6(size * 64),
			Language:  language.DefaultLanguage(),
		}
		fm := s.resolver.shapingFontmap(loaded.Family, loaded.aspect)
		for _, inp := range s.splitBidi(input) {
			for _, sub := range shaping.SplitByFace(inp, fm) {
				sub.Script = detectScript(runes[sub.RunStart:sub.RunEnd])
				out := s.hb.Shape(sub)

				// Shaping may have substituted a fallback face.
				// Recover its FontID by matching the reported font
				// against the loaded table; a face the resolver
				// never loaded is attributed to the first run's font.
				id := fr.Font
				if out.Face != nil {
					if got, ok := s.resolver.idForFont(out.Face.Font); ok {
						id = got
					} else {
						id = fontRuns[0].Font
					}
				}
				pieces = append(pieces, shapedPiece{out: out, font: id})
			}
		}

		byteStart, runeStart = byteEnd, runeEnd
	}

	s.assemble(&layout, pieces, byteAt)
	return layout
}

// assemble walks shaped pieces in text order, accumulating the pen
// position from glyph advances and merging adjacent pieces that share
// a font into one run.
func (s *Shaper) assemble(layout *LineLayout, pieces []shapedPiece, byteAt []int) {
	var (
		penX float32
		cur  *ShapedRun
	)
	for _, p := range pieces {
		if len(p.out.Glyphs) == 0 {
			continue
		}
		isEmoji := false
		if lf, err := s.resolver.Font(p.font); err == nil {
			isEmoji = lf.IsEmoji
		}
		if cur == nil || cur.Font != p.font {
			layout.Runs = append(layout.Runs, ShapedRun{Font: p.font})
			cur = &layout.Runs[len(layout.Runs)-1]
		}
		for _, g := range p.out.Glyphs {
			idx := 0
			if g.ClusterIndex >= 0 && g.ClusterIndex < len(byteAt) {
				idx = byteAt[g.ClusterIndex]
			}
			cur.Glyphs = append(cur.Glyphs, ShapedGlyph{
				ID:       GlyphID(g.GlyphID),
				Position: ui.Pt(penX+fixedToFloat(g.XOffset), -fixedToFloat(g.YOffset)),
				Index:    idx,
				IsEmoji:  isEmoji,
			})
			penX += fixedToFloat(g.XAdvance)
		}
	}
	layout.Width = penX
}

// splitBidi breaks an input on direction boundaries so RTL segments
// shape with the right progression.
func (s *Shaper) splitBidi(input shaping.Input) []shaping.Input {
	if input.RunStart >= input.RunEnd {
		return []shaping.Input{input}
	}
	base := input.RunStart
	s.bidi.SetString(string(input.Text[input.RunStart:input.RunEnd]), bidi.DefaultDirection(bidi.LeftToRight))
	order, err := s.bidi.Order()
	if err != nil {
		return []shaping.Input{input}
	}
	var split []shaping.Input
	for i := 0; i < order.NumRuns(); i++ {
		run := order.Run(i)
		_, end := run.Pos()
		current := input
		current.RunEnd = base + end + 1
		if run.Direction() == bidi.RightToLeft {
			current.Direction = di.DirectionRTL
		} else {
			current.Direction = di.DirectionLTR
		}
		split = append(split, current)
		input.RunStart = current.RunEnd
	}
	if len(split) == 0 {
		return []shaping.Input{input}
	}
	return split
}

// detectScript returns the script of the first non-space rune. Inputs
// are already split on font and direction boundaries, which tracks
// script boundaries closely enough for one line.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// fixedToFloat converts 26.6 fixed point to float32 pixels.
func fixedToFloat(i fixed.Int26_6) float32 {
	return float32(i) / 64.0
}
