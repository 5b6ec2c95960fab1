package text

import (
	ui "github.com/gogpu/ui"
)

// SubpixelMode controls subpixel glyph positioning. Rasterizing a
// glyph at several fractional pixel phases and caching each phase
// separately keeps small text crisp as it moves by sub-pixel amounts.
type SubpixelMode int

const (
	// SubpixelNone snaps glyphs to whole pixels.
	SubpixelNone SubpixelMode = 0

	// Subpixel4 uses 4 phases (0.0, 0.25, 0.5, 0.75).
	Subpixel4 SubpixelMode = 4
)

// Divisions returns the number of subpixel phases, 1 when disabled.
func (m SubpixelMode) Divisions() int {
	if m <= 0 {
		return 1
	}
	return int(m)
}

// SubpixelConfig selects the phase count per axis.
type SubpixelConfig struct {
	Mode       SubpixelMode
	Horizontal bool
	Vertical   bool
}

// DefaultSubpixelConfig uses 4 horizontal phases and whole-pixel
// vertical snapping, the usual tradeoff for horizontal text.
func DefaultSubpixelConfig() SubpixelConfig {
	return SubpixelConfig{Mode: Subpixel4, Horizontal: true}
}

// SubpixelVariant is a quantized subpixel phase. It is part of the
// glyph raster cache key, so each phase gets its own atlas tile.
type SubpixelVariant struct {
	X uint8
	Y uint8
}

// IsZero reports whether the variant is the whole-pixel phase.
func (v SubpixelVariant) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Quantize splits a fractional position into an integer pixel and a
// quantized phase index in [0, mode). Disabled modes round to the
// nearest whole pixel with a zero phase.
func Quantize(pos float32, mode SubpixelMode) (int32, uint8) {
	if mode.Divisions() == 1 {
		return int32(floorf(pos + 0.5)), 0
	}
	ip := floorf(pos)
	frac := pos - ip
	sub := int(frac * float32(mode.Divisions()))
	if sub >= mode.Divisions() {
		sub = mode.Divisions() - 1
	}
	if sub < 0 {
		sub = 0
	}
	return int32(ip), uint8(sub)
}

// QuantizePoint quantizes a layout position to a device pixel and the
// subpixel variant to rasterize at.
func QuantizePoint(p ui.Point, cfg SubpixelConfig) (ui.DevicePoint, SubpixelVariant) {
	var (
		dp ui.DevicePoint
		v  SubpixelVariant
	)
	if cfg.Horizontal {
		x, sub := Quantize(p.X, cfg.Mode)
		dp.X, v.X = ui.DevicePixels(x), sub
	} else {
		x, _ := Quantize(p.X, SubpixelNone)
		dp.X = ui.DevicePixels(x)
	}
	if cfg.Vertical {
		y, sub := Quantize(p.Y, cfg.Mode)
		dp.Y, v.Y = ui.DevicePixels(y), sub
	} else {
		y, _ := Quantize(p.Y, SubpixelNone)
		dp.Y = ui.DevicePixels(y)
	}
	return dp, v
}

// Offset returns the fractional rendering offset for a phase index.
func Offset(sub uint8, mode SubpixelMode) float32 {
	if mode.Divisions() == 1 {
		return 0
	}
	return float32(sub) / float32(mode.Divisions())
}

// Offsets returns the x and y rendering offsets for a variant.
func Offsets(v SubpixelVariant, cfg SubpixelConfig) (float32, float32) {
	var x, y float32
	if cfg.Horizontal {
		x = Offset(v.X, cfg.Mode)
	}
	if cfg.Vertical {
		y = Offset(v.Y, cfg.Mode)
	}
	return x, y
}

func floorf(v float32) float32 {
	i := float32(int32(v))
	if v < 0 && v != i {
		i--
	}
	return i
}
