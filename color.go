package ui

// Hsla is a color in hue/saturation/lightness/alpha space.
// All components are in [0, 1]; Hue is a fraction of a full turn.
// Scene primitives carry Hsla directly; conversion to RGB happens in
// the shaders so that CPU-side instance data stays compact.
type Hsla struct {
	H float32
	S float32
	L float32
	A float32
}

// Black returns opaque black.
func Black() Hsla {
	return Hsla{A: 1}
}

// White returns opaque white.
func White() Hsla {
	return Hsla{L: 1, A: 1}
}

// Transparent returns fully transparent black.
func Transparent() Hsla {
	return Hsla{}
}

// IsTransparent returns true if the color has zero alpha.
func (c Hsla) IsTransparent() bool {
	return c.A <= 0
}

// ToRgba converts the color to straight-alpha RGBA.
func (c Hsla) ToRgba() Rgba {
	h := c.H * 6
	chroma := (1 - absf(2*c.L-1)) * c.S
	x := chroma * (1 - absf(modf(h, 2)-1))
	m := c.L - chroma/2

	var r, g, b float32
	switch {
	case h < 1:
		r, g, b = chroma, x, 0
	case h < 2:
		r, g, b = x, chroma, 0
	case h < 3:
		r, g, b = 0, chroma, x
	case h < 4:
		r, g, b = 0, x, chroma
	case h < 5:
		r, g, b = x, 0, chroma
	default:
		r, g, b = chroma, 0, x
	}
	return Rgba{R: r + m, G: g + m, B: b + m, A: c.A}
}

// Rgba is a straight-alpha RGBA color with components in [0, 1].
type Rgba struct {
	R float32
	G float32
	B float32
	A float32
}

// Premultiplied returns the color with RGB channels scaled by alpha,
// matching the renderer's blend equation.
func (c Rgba) Premultiplied() Rgba {
	return Rgba{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func modf(v, m float32) float32 {
	for v >= m {
		v -= m
	}
	for v < 0 {
		v += m
	}
	return v
}
