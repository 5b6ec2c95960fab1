package scene

import (
	"github.com/gogpu/ui"
	"github.com/gogpu/ui/atlas"
)

// ContentMask is the clip rectangle a primitive is constrained to, in
// scaled pixel space. The GPU pipelines apply it per fragment; the CPU
// never pre-clips geometry.
type ContentMask struct {
	Bounds ui.Bounds
}

// Quad is a filled, optionally bordered and rounded rectangle.
type Quad struct {
	Order        uint32
	Bounds       ui.Bounds
	ContentMask  ContentMask
	Background   ui.Hsla
	BorderColor  ui.Hsla
	CornerRadii  ui.Corners
	BorderWidths ui.Edges
}

// Shadow is a blurred rounded-rectangle drop shadow.
type Shadow struct {
	Order       uint32
	Bounds      ui.Bounds
	ContentMask ContentMask
	Color       ui.Hsla
	CornerRadii ui.Corners
	BlurRadius  float32
}

// Underline is a straight or wavy line under a run of text.
type Underline struct {
	Order       uint32
	Bounds      ui.Bounds
	ContentMask ContentMask
	Color       ui.Hsla
	Thickness   float32
	Wavy        bool
}

// MonochromeSprite draws an alpha-coverage atlas tile tinted with a
// single color. Used for outline glyphs.
type MonochromeSprite struct {
	Order       uint32
	Bounds      ui.Bounds
	ContentMask ContentMask
	Color       ui.Hsla
	Tile        atlas.Tile
}

// PolychromeSprite draws a full-color atlas tile at its native colors.
// Used for emoji glyphs and images.
type PolychromeSprite struct {
	Order        uint32
	Bounds       ui.Bounds
	ContentMask  ContentMask
	Tile         atlas.Tile
	Grayscale    bool
	CornerRadii  ui.Corners
}

// Surface is a placeholder for a platform-native surface (for example
// a video frame) composited by the platform layer.
type Surface struct {
	Order       uint32
	Bounds      ui.Bounds
	ContentMask ContentMask
	SurfaceID   uint64
}
