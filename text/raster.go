// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package text

import (
	"errors"
	"fmt"
	"image"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"golang.org/x/image/vector"

	ui "github.com/gogpu/ui"
	"github.com/gogpu/ui/text/emoji"
)

// ErrZeroRasterBounds indicates a rasterization request with
// degenerate bounds for a glyph that does have renderable content.
var ErrZeroRasterBounds = errors.New("text: zero-area raster bounds")

// RenderGlyphParams identifies one rasterized glyph variant. It is
// the raster cache key: the same params always yield the same bitmap.
type RenderGlyphParams struct {
	Font        FontID
	Glyph       GlyphID
	FontSize    float32
	ScaleFactor float32
	Subpixel    SubpixelVariant
	IsEmoji     bool
}

// Rasterizer renders single glyphs to bitmaps: 8-bit alpha coverage
// for outline glyphs, straight-alpha BGRA for color (emoji) glyphs.
//
// Rasterization is stateless per call and safe to run concurrently;
// it only reads the shared font table.
type Rasterizer struct {
	resolver *Resolver
	subpixel SubpixelConfig
}

// NewRasterizer creates a Rasterizer reading fonts from resolver.
func NewRasterizer(resolver *Resolver, subpixel SubpixelConfig) *Rasterizer {
	return &Rasterizer{resolver: resolver, subpixel: subpixel}
}

// GlyphRasterBounds returns the integer device-pixel bounds of a
// glyph at the requested size and scale, rounded outward so the
// bitmap fully covers the outline. A glyph with no contours yields
// empty-but-valid bounds and no error.
func (r *Rasterizer) GlyphRasterBounds(params RenderGlyphParams) (ui.DeviceBounds, error) {
	loaded, err := r.resolver.Font(params.Font)
	if err != nil {
		return ui.DeviceBounds{}, err
	}
	face := loaded.Face()
	ext, ok := face.GlyphExtents(font.GID(params.Glyph))
	if !ok {
		return ui.DeviceBounds{}, nil
	}
	scale := params.FontSize * params.ScaleFactor / float32(face.Upem())

	// Font-space y grows upward, device-space y grows downward.
	minX := ext.XBearing * scale
	minY := -ext.YBearing * scale
	maxX := (ext.XBearing + ext.Width) * scale
	maxY := -(ext.YBearing + ext.Height) * scale
	if maxX <= minX || maxY <= minY {
		return ui.DeviceBounds{}, nil
	}
	return ui.OuterDeviceBounds(minX, minY, maxX, maxY), nil
}

// RasterizeGlyph renders the glyph into a fresh bitmap sized to
// bounds, expanded by one pixel per axis with a non-zero subpixel
// phase to leave room for the phase-shifted filter. Monochrome output
// is w*h alpha bytes; emoji output is w*h*4 straight-alpha BGRA.
//
// A glyph with no renderable outline or bitmap yields a correctly
// sized all-zero buffer, not an error: absent glyphs must not break
// layout.
func (r *Rasterizer) RasterizeGlyph(params RenderGlyphParams, bounds ui.DeviceBounds) (ui.DeviceSize, []byte, error) {
	loaded, err := r.resolver.Font(params.Font)
	if err != nil {
		return ui.DeviceSize{}, nil, err
	}
	face := loaded.Face()
	gid := font.GID(params.Glyph)

	if bounds.IsEmpty() {
		if _, ok := face.GlyphExtents(gid); ok {
			if gb, err := r.GlyphRasterBounds(params); err == nil && !gb.IsEmpty() {
				return ui.DeviceSize{}, nil, fmt.Errorf("%w: glyph %d", ErrZeroRasterBounds, params.Glyph)
			}
		}
		return ui.DeviceSize{}, []byte{}, nil
	}

	size := bounds.Size
	if params.Subpixel.X != 0 {
		size.Width++
	}
	if params.Subpixel.Y != 0 {
		size.Height++
	}

	if params.IsEmoji {
		data, err := r.rasterizeColor(face, gid, size)
		return size, data, err
	}
	data := r.rasterizeOutline(face, gid, params, bounds, size)
	return size, data, nil
}

// rasterizeOutline fills the glyph outline as 8-bit alpha coverage.
func (r *Rasterizer) rasterizeOutline(face *font.Face, gid font.GID, params RenderGlyphParams, bounds ui.DeviceBounds, size ui.DeviceSize) []byte {
	w, h := int(size.Width), int(size.Height)

	outline, ok := face.GlyphData(gid).(font.GlyphOutline)
	if !ok || len(outline.Segments) == 0 {
		return make([]byte, w*h)
	}

	scale := params.FontSize * params.ScaleFactor / float32(face.Upem())
	offX, offY := Offsets(params.Subpixel, r.subpixel)
	dx := -float32(bounds.Origin.X) + offX
	dy := -float32(bounds.Origin.Y) + offY

	tx := func(p font.SegmentPoint) (float32, float32) {
		return p.X*scale + dx, -p.Y*scale + dy
	}

	ras := vector.NewRasterizer(w, h)
	for _, seg := range outline.Segments {
		switch seg.Op {
		case ot.SegmentOpMoveTo:
			x, y := tx(seg.Args[0])
			ras.MoveTo(x, y)
		case ot.SegmentOpLineTo:
			x, y := tx(seg.Args[0])
			ras.LineTo(x, y)
		case ot.SegmentOpQuadTo:
			bx, by := tx(seg.Args[0])
			cx, cy := tx(seg.Args[1])
			ras.QuadTo(bx, by, cx, cy)
		case ot.SegmentOpCubeTo:
			bx, by := tx(seg.Args[0])
			cx, cy := tx(seg.Args[1])
			ex, ey := tx(seg.Args[2])
			ras.CubeTo(bx, by, cx, cy, ex, ey)
		}
	}
	ras.ClosePath()

	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	ras.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst.Pix
}

// rasterizeColor decodes the glyph's embedded bitmap and converts it
// into straight-alpha BGRA at the target size. The conversion applies
// to emoji only; monochrome coverage passes through untouched.
func (r *Rasterizer) rasterizeColor(face *font.Face, gid font.GID, size ui.DeviceSize) ([]byte, error) {
	w, h := int(size.Width), int(size.Height)

	bm, ok := face.GlyphData(gid).(font.GlyphBitmap)
	if !ok {
		return make([]byte, w*h*4), nil
	}
	if bm.Format != font.PNG {
		return nil, emoji.ErrUnsupportedFormat
	}
	img, err := emoji.DecodePNG(bm.Data)
	if err != nil {
		return nil, fmt.Errorf("text: decode emoji bitmap: %w", err)
	}
	premul := emoji.Rescale(img, w, h)
	return emoji.ToStraightBGRA(premul.Pix), nil
}
