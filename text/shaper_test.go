package text

import (
	"testing"
)

func layoutFixture(t *testing.T) (*Shaper, FontID) {
	t.Helper()
	r := newTestResolver(t)
	id, err := r.FontID(Font{Family: DefaultFamily, Weight: WeightNormal})
	if err != nil {
		t.Fatalf("FontID: %v", err)
	}
	return NewShaper(r), id
}

func TestLayoutLineEmpty(t *testing.T) {
	s, _ := layoutFixture(t)

	layout := s.LayoutLine("", 16, nil)
	if layout.Width != 0 || layout.Len != 0 || len(layout.Runs) != 0 {
		t.Errorf("empty layout = %+v, want zero width, zero len, no runs", layout)
	}
	if layout.FontSize != 16 {
		t.Errorf("FontSize = %g, want 16", layout.FontSize)
	}
}

func TestLayoutLineNoRuns(t *testing.T) {
	s, _ := layoutFixture(t)

	layout := s.LayoutLine("hello", 16, nil)
	if layout.Len != 5 {
		t.Errorf("Len = %d, want 5", layout.Len)
	}
	if len(layout.Runs) != 0 {
		t.Errorf("got %d runs without font runs, want 0", len(layout.Runs))
	}
}

func TestLayoutLineByteLength(t *testing.T) {
	s, id := layoutFixture(t)

	cases := []string{"hello", "héllo", "a", "naïve café"}
	for _, text := range cases {
		t.Run(text, func(t *testing.T) {
			layout := s.LayoutLine(text, 16, []FontRun{{Len: len(text), Font: id}})
			if layout.Len != len(text) {
				t.Errorf("Len = %d, want %d", layout.Len, len(text))
			}
		})
	}
}

func TestLayoutLineGlyphs(t *testing.T) {
	s, id := layoutFixture(t)

	layout := s.LayoutLine("hello", 16, []FontRun{{Len: 5, Font: id}})
	if len(layout.Runs) == 0 {
		t.Fatal("no runs shaped")
	}
	var glyphs int
	for _, run := range layout.Runs {
		glyphs += len(run.Glyphs)
	}
	if glyphs == 0 {
		t.Fatal("no glyphs shaped")
	}
	if layout.Width <= 0 {
		t.Errorf("Width = %g, want > 0", layout.Width)
	}
	if layout.Ascent <= 0 || layout.Descent <= 0 {
		t.Errorf("Ascent/Descent = %g/%g, want both > 0", layout.Ascent, layout.Descent)
	}
}

func TestLayoutLinePenAdvances(t *testing.T) {
	s, id := layoutFixture(t)

	layout := s.LayoutLine("abc", 16, []FontRun{{Len: 3, Font: id}})
	var prev float32 = -1
	for _, run := range layout.Runs {
		for _, g := range run.Glyphs {
			if g.Position.X < prev {
				t.Fatalf("pen position went backwards: %g after %g", g.Position.X, prev)
			}
			prev = g.Position.X
		}
	}
	if layout.Width < prev {
		t.Errorf("Width %g is less than the last pen position %g", layout.Width, prev)
	}
}

func TestLayoutLineMergesAdjacentRuns(t *testing.T) {
	s, id := layoutFixture(t)

	// Two input runs with the same resolved font must come back merged.
	layout := s.LayoutLine("hello world", 16, []FontRun{
		{Len: 6, Font: id},
		{Len: 5, Font: id},
	})
	for i := 1; i < len(layout.Runs); i++ {
		if layout.Runs[i].Font == layout.Runs[i-1].Font {
			t.Fatalf("consecutive runs %d and %d share font %d", i-1, i, layout.Runs[i].Font)
		}
	}
	if len(layout.Runs) != 1 {
		t.Errorf("got %d runs, want 1 merged run", len(layout.Runs))
	}
}

func TestLayoutLineClampsOverlongRun(t *testing.T) {
	s, id := layoutFixture(t)

	layout := s.LayoutLine("hi", 16, []FontRun{{Len: 100, Font: id}})
	if layout.Len != 2 {
		t.Errorf("Len = %d, want 2", layout.Len)
	}
	var glyphs int
	for _, run := range layout.Runs {
		glyphs += len(run.Glyphs)
	}
	if glyphs == 0 {
		t.Error("no glyphs shaped for clamped run")
	}
}

func TestLayoutLineClusterOffsets(t *testing.T) {
	s, id := layoutFixture(t)

	text := "héllo"
	layout := s.LayoutLine(text, 16, []FontRun{{Len: len(text), Font: id}})
	for _, run := range layout.Runs {
		for _, g := range run.Glyphs {
			if g.Index < 0 || g.Index >= len(text) {
				t.Fatalf("glyph cluster offset %d outside [0, %d)", g.Index, len(text))
			}
		}
	}
}
