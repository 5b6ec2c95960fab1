package text

import (
	"testing"

	ui "github.com/gogpu/ui"
)

func TestQuantize(t *testing.T) {
	cases := []struct {
		pos     float32
		mode    SubpixelMode
		wantInt int32
		wantSub uint8
	}{
		{10.0, Subpixel4, 10, 0},
		{10.25, Subpixel4, 10, 1},
		{10.5, Subpixel4, 10, 2},
		{10.75, Subpixel4, 10, 3},
		{10.99, Subpixel4, 10, 3},
		{-0.25, Subpixel4, -1, 3},
		{10.6, SubpixelNone, 11, 0},
		{10.4, SubpixelNone, 10, 0},
	}
	for _, tc := range cases {
		ip, sub := Quantize(tc.pos, tc.mode)
		if ip != tc.wantInt || sub != tc.wantSub {
			t.Errorf("Quantize(%g, %d) = (%d, %d), want (%d, %d)",
				tc.pos, tc.mode, ip, sub, tc.wantInt, tc.wantSub)
		}
	}
}

func TestQuantizePoint(t *testing.T) {
	cfg := DefaultSubpixelConfig()

	dp, v := QuantizePoint(ui.Pt(3.3, 7.8), cfg)
	if dp.X != 3 || v.X != 1 {
		t.Errorf("x quantized to (%d, %d), want (3, 1)", dp.X, v.X)
	}
	// Vertical snapping rounds to nearest with no phase.
	if dp.Y != 8 || v.Y != 0 {
		t.Errorf("y quantized to (%d, %d), want (8, 0)", dp.Y, v.Y)
	}
}

func TestOffsetsRoundTrip(t *testing.T) {
	cfg := DefaultSubpixelConfig()
	for sub := uint8(0); sub < 4; sub++ {
		x, y := Offsets(SubpixelVariant{X: sub}, cfg)
		if want := float32(sub) / 4; x != want {
			t.Errorf("Offsets x for phase %d = %g, want %g", sub, x, want)
		}
		if y != 0 {
			t.Errorf("Offsets y = %g, want 0 with vertical disabled", y)
		}
	}
}

func TestSubpixelVariantIsZero(t *testing.T) {
	if !(SubpixelVariant{}).IsZero() {
		t.Error("zero variant reported non-zero")
	}
	if (SubpixelVariant{X: 1}).IsZero() {
		t.Error("phase 1 variant reported zero")
	}
}
