package text

import (
	"unicode/utf8"
)

// WrapLine computes greedy line breaks for text rendered with one
// font at the given size, fitting each line into width pixels.
// Breaks happen at space boundaries only; a single word wider than
// the line is left unbroken. The returned offsets are byte positions
// where each new line starts.
func (s *TextSystem) WrapLine(text string, id FontID, size float32, width float32) ([]int, error) {
	loaded, err := s.resolver.Font(id)
	if err != nil {
		return nil, err
	}
	face := loaded.Face()
	scale := size / float32(face.Upem())

	var (
		breaks    []int
		lineWidth float32
		wordWidth float32
		boundary  = -1
		lastBreak int
	)
	for i, r := range text {
		var adv float32
		if gid, ok := face.NominalGlyph(r); ok {
			adv = face.HorizontalAdvance(gid) * scale
		}
		if r == ' ' || r == '\t' {
			boundary = i + utf8.RuneLen(r)
			wordWidth = 0
		} else {
			wordWidth += adv
		}
		lineWidth += adv
		if lineWidth > width && boundary > lastBreak {
			breaks = append(breaks, boundary)
			lastBreak = boundary
			lineWidth = wordWidth
		}
	}
	return breaks, nil
}
