// Package emoji classifies emoji code points and decodes the embedded
// color bitmaps that emoji fonts carry.
package emoji

import "unicode/utf8"

// IsEmoji returns true if the rune renders as emoji, either by default
// presentation or as part of an emoji sequence.
func IsEmoji(r rune) bool {
	return IsEmojiPresentation(r) || IsModifier(r) || IsRegionalIndicator(r)
}

// IsEmojiPresentation returns true if the rune defaults to emoji
// presentation without requiring U+FE0F.
func IsEmojiPresentation(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1F5FF: // Misc symbols and pictographs
		return true
	case r >= 0x1F600 && r <= 0x1F64F: // Emoticons
		return true
	case r >= 0x1F680 && r <= 0x1F6FF: // Transport and map
		return true
	case r >= 0x1F900 && r <= 0x1F9FF: // Supplemental symbols
		return true
	case r >= 0x1FA70 && r <= 0x1FAFF: // Extended-A
		return true
	case r >= 0x2600 && r <= 0x26FF: // Misc symbols
		return true
	case r >= 0x2700 && r <= 0x27BF: // Dingbats
		return true
	case r >= 0x1F1E6 && r <= 0x1F1FF: // Regional indicators
		return true
	}
	return false
}

// IsModifier returns true for Fitzpatrick skin tone modifiers.
func IsModifier(r rune) bool {
	return r >= 0x1F3FB && r <= 0x1F3FF
}

// IsZWJ returns true for Zero-Width Joiner, which glues emoji into
// composite sequences.
func IsZWJ(r rune) bool {
	return r == 0x200D
}

// IsRegionalIndicator returns true for the regional indicator letters;
// two of them form a flag.
func IsRegionalIndicator(r rune) bool {
	return r >= 0x1F1E6 && r <= 0x1F1FF
}

// IsVariationSelector returns true for the presentation selectors
// U+FE0E (text) and U+FE0F (emoji).
func IsVariationSelector(r rune) bool {
	return r == 0xFE0E || r == 0xFE0F
}

// Run is a contiguous span of text with uniform emoji status.
type Run struct {
	// Start and End are byte offsets into the original string,
	// End exclusive.
	Start int
	End   int

	IsEmoji bool
}

// Segment splits text into emoji and non-emoji runs. Multi-codepoint
// sequences (flags, ZWJ joins, skin tone modifiers, presentation
// selectors) stay inside one emoji run.
func Segment(text string) []Run {
	if text == "" {
		return nil
	}

	runes := []rune(text)
	offsets := make([]int, len(runes)+1)
	off := 0
	for i, r := range runes {
		offsets[i] = off
		off += utf8.RuneLen(r)
	}
	offsets[len(runes)] = off

	var runs []Run
	i := 0
	for i < len(runes) {
		n := sequenceLen(runes[i:])
		isEmoji := n > 0
		if n == 0 {
			n = 1
		}
		start, end := offsets[i], offsets[i+n]
		if len(runs) > 0 && runs[len(runs)-1].IsEmoji == isEmoji {
			runs[len(runs)-1].End = end
		} else {
			runs = append(runs, Run{Start: start, End: end, IsEmoji: isEmoji})
		}
		i += n
	}
	return runs
}

// sequenceLen returns how many runes the emoji sequence starting at
// runes[0] spans, or 0 if it is not an emoji.
func sequenceLen(runes []rune) int {
	r := runes[0]

	// Flag: two regional indicators.
	if IsRegionalIndicator(r) {
		if len(runes) >= 2 && IsRegionalIndicator(runes[1]) {
			return 2
		}
		return 1
	}

	if !IsEmojiPresentation(r) {
		// A text-presentation character promoted by U+FE0F.
		if len(runes) >= 2 && runes[1] == 0xFE0F {
			return 2
		}
		return 0
	}

	// Extend with modifiers, selectors, and ZWJ joins.
	i := 1
	for i < len(runes) {
		switch {
		case IsModifier(runes[i]) || IsVariationSelector(runes[i]):
			i++
		case IsZWJ(runes[i]) && i+1 < len(runes) &&
			(IsEmojiPresentation(runes[i+1]) || isZWJContinuation(runes[i+1])):
			i += 2
		default:
			return i
		}
	}
	return i
}

// isZWJContinuation covers the handful of text-presentation runes that
// appear after ZWJ in common sequences (gender signs, arrows).
func isZWJContinuation(r rune) bool {
	return r == 0x2640 || r == 0x2642 || r == 0x2695 || r == 0x2696 || r == 0x27A1
}
