// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package render turns scene primitive batches into GPU draw calls.
//
// Primitives are uploaded as storage-buffer instance arrays and drawn
// with instanced unit quads; paths take a two-pass route through an
// intermediate texture. All pipelines blend premultiplied alpha.
package render

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/ui"
	"github.com/gogpu/ui/scene"
)

// Byte strides of the GPU instance structs. Each must match the
// corresponding struct layout in shaders/.
const (
	globalsStride    = 16 // Globals
	quadStride       = 96 // quad.wgsl: Quad
	shadowStride     = 80 // shadow.wgsl: Shadow
	underlineStride  = 64 // underline.wgsl: Underline
	pathVertexStride = 48 // path_rasterization.wgsl: PathVertex
	pathSpriteStride = 16 // path_composite.wgsl: PathSprite
	monoSpriteStride = 64 // sprite_mono.wgsl: MonoSprite
	polySpriteStride = 80 // sprite_poly.wgsl: PolySprite
)

func appendF32(b []byte, vs ...float32) []byte {
	for _, v := range vs {
		var scratch [4]byte
		binary.LittleEndian.PutUint32(scratch[:], math.Float32bits(v))
		b = append(b, scratch[:]...)
	}
	return b
}

func appendU32(b []byte, v uint32) []byte {
	var scratch [4]byte
	binary.LittleEndian.PutUint32(scratch[:], v)
	return append(b, scratch[:]...)
}

func appendBounds(b []byte, bounds ui.Bounds) []byte {
	return appendF32(b, float32(bounds.Origin.X), float32(bounds.Origin.Y),
		float32(bounds.Size.Width), float32(bounds.Size.Height))
}

func appendHsla(b []byte, c ui.Hsla) []byte {
	return appendF32(b, c.H, c.S, c.L, c.A)
}

func appendCorners(b []byte, c ui.Corners) []byte {
	return appendF32(b, c.TopLeft, c.TopRight, c.BottomRight, c.BottomLeft)
}

func appendTileBounds(b []byte, bounds ui.DeviceBounds) []byte {
	return appendF32(b, float32(bounds.Origin.X), float32(bounds.Origin.Y),
		float32(bounds.Size.Width), float32(bounds.Size.Height))
}

func encodeGlobals(viewport ui.DeviceSize) []byte {
	b := make([]byte, 0, globalsStride)
	return appendF32(b, float32(viewport.Width), float32(viewport.Height), 0, 0)
}

func encodeQuads(quads []scene.Quad) []byte {
	b := make([]byte, 0, len(quads)*quadStride)
	for i := range quads {
		q := &quads[i]
		b = appendBounds(b, q.Bounds)
		b = appendBounds(b, q.ContentMask.Bounds)
		b = appendHsla(b, q.Background)
		b = appendHsla(b, q.BorderColor)
		b = appendCorners(b, q.CornerRadii)
		b = appendF32(b, q.BorderWidths.Top, q.BorderWidths.Right, q.BorderWidths.Bottom, q.BorderWidths.Left)
	}
	return b
}

func encodeShadows(shadows []scene.Shadow) []byte {
	b := make([]byte, 0, len(shadows)*shadowStride)
	for i := range shadows {
		s := &shadows[i]
		b = appendF32(b, s.BlurRadius, 0)
		b = appendBounds(b, s.Bounds)
		b = appendF32(b, 0, 0)
		b = appendCorners(b, s.CornerRadii)
		b = appendBounds(b, s.ContentMask.Bounds)
		b = appendHsla(b, s.Color)
	}
	return b
}

func encodeUnderlines(underlines []scene.Underline) []byte {
	b := make([]byte, 0, len(underlines)*underlineStride)
	for i := range underlines {
		u := &underlines[i]
		b = appendBounds(b, u.Bounds)
		b = appendBounds(b, u.ContentMask.Bounds)
		b = appendHsla(b, u.Color)
		b = appendF32(b, u.Thickness)
		var wavy uint32
		if u.Wavy {
			wavy = 1
		}
		b = appendU32(b, wavy)
		b = appendF32(b, 0, 0)
	}
	return b
}

// encodePathVertices flattens every path's triangles into one vertex
// array for the rasterization pass. Returns the encoded buffer and the
// total vertex count.
func encodePathVertices(paths []*scene.Path) ([]byte, int) {
	total := 0
	for _, p := range paths {
		total += len(p.Vertices)
	}
	b := make([]byte, 0, total*pathVertexStride)
	for _, p := range paths {
		clipped := clippedPathBounds(p)
		for i := range p.Vertices {
			v := &p.Vertices[i]
			b = appendF32(b, float32(v.Position.X), float32(v.Position.Y),
				float32(v.ST.X), float32(v.ST.Y))
			b = appendHsla(b, p.Color)
			b = appendBounds(b, clipped)
		}
	}
	return b, total
}

func encodePathSprites(bounds []ui.Bounds) []byte {
	b := make([]byte, 0, len(bounds)*pathSpriteStride)
	for _, bd := range bounds {
		b = appendBounds(b, bd)
	}
	return b
}

func encodeMonoSprites(sprites []scene.MonochromeSprite) []byte {
	b := make([]byte, 0, len(sprites)*monoSpriteStride)
	for i := range sprites {
		s := &sprites[i]
		b = appendBounds(b, s.Bounds)
		b = appendBounds(b, s.ContentMask.Bounds)
		b = appendHsla(b, s.Color)
		b = appendTileBounds(b, s.Tile.Bounds)
	}
	return b
}

func encodePolySprites(sprites []scene.PolychromeSprite) []byte {
	b := make([]byte, 0, len(sprites)*polySpriteStride)
	for i := range sprites {
		s := &sprites[i]
		b = appendBounds(b, s.Bounds)
		b = appendBounds(b, s.ContentMask.Bounds)
		b = appendTileBounds(b, s.Tile.Bounds)
		b = appendCorners(b, s.CornerRadii)
		var grayscale uint32
		if s.Grayscale {
			grayscale = 1
		}
		b = appendU32(b, grayscale)
		b = appendF32(b, 0, 0, 0)
	}
	return b
}

func clippedPathBounds(p *scene.Path) ui.Bounds {
	return p.Bounds.Intersect(p.ContentMask.Bounds)
}
