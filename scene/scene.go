// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package scene holds the per-frame list of drawing primitives and
// groups them into ordered, type-homogeneous batches for the renderer.
package scene

import (
	"math"
	"sort"

	"github.com/gogpu/ui/atlas"
)

// BatchKind tags the primitive type of a Batch. The set is closed:
// each kind maps to exactly one render pipeline.
type BatchKind uint8

const (
	BatchQuads BatchKind = iota
	BatchShadows
	BatchUnderlines
	BatchPaths
	BatchMonochromeSprites
	BatchPolychromeSprites
	BatchSurfaces

	batchKindCount
)

func (k BatchKind) String() string {
	switch k {
	case BatchQuads:
		return "quads"
	case BatchShadows:
		return "shadows"
	case BatchUnderlines:
		return "underlines"
	case BatchPaths:
		return "paths"
	case BatchMonochromeSprites:
		return "monochrome sprites"
	case BatchPolychromeSprites:
		return "polychrome sprites"
	case BatchSurfaces:
		return "surfaces"
	default:
		return "unknown"
	}
}

// Batch is a contiguous run of same-type primitives in paint order.
// Exactly one of the slices is populated, selected by Kind. Sprite
// batches additionally carry the atlas texture all their tiles share.
type Batch struct {
	Kind BatchKind

	Quads             []Quad
	Shadows           []Shadow
	Underlines        []Underline
	Paths             []*Path
	MonochromeSprites []MonochromeSprite
	PolychromeSprites []PolychromeSprite
	Surfaces          []Surface

	Texture atlas.TextureID
}

// Len returns the number of primitives in the batch.
func (b Batch) Len() int {
	switch b.Kind {
	case BatchQuads:
		return len(b.Quads)
	case BatchShadows:
		return len(b.Shadows)
	case BatchUnderlines:
		return len(b.Underlines)
	case BatchPaths:
		return len(b.Paths)
	case BatchMonochromeSprites:
		return len(b.MonochromeSprites)
	case BatchPolychromeSprites:
		return len(b.PolychromeSprites)
	case BatchSurfaces:
		return len(b.Surfaces)
	default:
		return 0
	}
}

// Scene collects the primitives painted during one frame. It is
// rebuilt from scratch every frame; Clear recycles the backing arrays.
//
// Paint order is the Order field on each primitive. Callers either set
// it from their own stacking contexts or take successive values from
// NextOrder. Scene is not safe for concurrent use.
type Scene struct {
	orderCounter uint32
	finished     bool

	quads             []Quad
	shadows           []Shadow
	underlines        []Underline
	paths             []*Path
	monochromeSprites []MonochromeSprite
	polychromeSprites []PolychromeSprite
	surfaces          []Surface
}

// NewScene returns an empty scene.
func NewScene() *Scene {
	return &Scene{}
}

// NextOrder returns a fresh paint order greater than any handed out
// before on this scene.
func (s *Scene) NextOrder() uint32 {
	s.orderCounter++
	return s.orderCounter
}

// Clear empties the scene for the next frame, keeping capacity.
func (s *Scene) Clear() {
	s.orderCounter = 0
	s.finished = false
	s.quads = s.quads[:0]
	s.shadows = s.shadows[:0]
	s.underlines = s.underlines[:0]
	s.paths = s.paths[:0]
	s.monochromeSprites = s.monochromeSprites[:0]
	s.polychromeSprites = s.polychromeSprites[:0]
	s.surfaces = s.surfaces[:0]
}

// InsertQuad adds a quad. The caller has set its Order.
func (s *Scene) InsertQuad(q Quad) {
	s.quads = append(s.quads, q)
}

// InsertShadow adds a drop shadow.
func (s *Scene) InsertShadow(sh Shadow) {
	s.shadows = append(s.shadows, sh)
}

// InsertUnderline adds an underline.
func (s *Scene) InsertUnderline(u Underline) {
	s.underlines = append(s.underlines, u)
}

// InsertPath adds a filled path. Empty paths are dropped.
func (s *Scene) InsertPath(p *Path) {
	if p == nil || p.IsEmpty() {
		return
	}
	s.paths = append(s.paths, p)
}

// InsertMonochromeSprite adds a tinted alpha-coverage sprite.
func (s *Scene) InsertMonochromeSprite(sp MonochromeSprite) {
	s.monochromeSprites = append(s.monochromeSprites, sp)
}

// InsertPolychromeSprite adds a full-color sprite.
func (s *Scene) InsertPolychromeSprite(sp PolychromeSprite) {
	s.polychromeSprites = append(s.polychromeSprites, sp)
}

// InsertSurface adds a native surface placeholder.
func (s *Scene) InsertSurface(sf Surface) {
	s.surfaces = append(s.surfaces, sf)
}

// Finish sorts every primitive list by paint order, preparing the
// scene for batching. Sprites additionally group by atlas texture so
// one batch never spans a texture switch.
func (s *Scene) Finish() {
	sort.SliceStable(s.quads, func(i, j int) bool { return s.quads[i].Order < s.quads[j].Order })
	sort.SliceStable(s.shadows, func(i, j int) bool { return s.shadows[i].Order < s.shadows[j].Order })
	sort.SliceStable(s.underlines, func(i, j int) bool { return s.underlines[i].Order < s.underlines[j].Order })
	sort.SliceStable(s.paths, func(i, j int) bool { return s.paths[i].Order < s.paths[j].Order })
	sort.SliceStable(s.monochromeSprites, func(i, j int) bool {
		a, b := s.monochromeSprites[i], s.monochromeSprites[j]
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return spriteTextureLess(a.Tile.Texture, b.Tile.Texture)
	})
	sort.SliceStable(s.polychromeSprites, func(i, j int) bool {
		a, b := s.polychromeSprites[i], s.polychromeSprites[j]
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return spriteTextureLess(a.Tile.Texture, b.Tile.Texture)
	})
	sort.SliceStable(s.surfaces, func(i, j int) bool { return s.surfaces[i].Order < s.surfaces[j].Order })
	s.finished = true
}

func spriteTextureLess(a, b atlas.TextureID) bool {
	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}
	return a.Index < b.Index
}

// Batches splits the scene into type-homogeneous batches that, played
// back in sequence, reproduce the original paint order. At each step
// the primitive kind with the lowest pending order starts a batch, and
// the batch extends while that kind's orders stay at or below every
// other kind's next order. Sprite batches also break when the atlas
// texture changes.
//
// Finish must have been called first.
func (s *Scene) Batches() []Batch {
	if !s.finished {
		s.Finish()
	}

	var batches []Batch
	var idx [batchKindCount]int

	for {
		kind := BatchKind(0)
		minOrder := uint32(math.MaxUint32)
		found := false
		for k := BatchKind(0); k < batchKindCount; k++ {
			if o, ok := s.orderAt(k, idx[k]); ok && o < minOrder {
				minOrder = o
				kind = k
				found = true
			}
		}
		if !found {
			return batches
		}

		// The batch may run until another kind's next order intervenes.
		limit := uint32(math.MaxUint32)
		for k := BatchKind(0); k < batchKindCount; k++ {
			if k == kind {
				continue
			}
			if o, ok := s.orderAt(k, idx[k]); ok && o < limit {
				limit = o
			}
		}

		start := idx[kind]
		end := start
		for {
			o, ok := s.orderAt(kind, end)
			if !ok || o > limit {
				break
			}
			if isSpriteKind(kind) && end > start && s.spriteTexture(kind, end) != s.spriteTexture(kind, start) {
				break
			}
			end++
		}
		idx[kind] = end
		batches = append(batches, s.sliceBatch(kind, start, end))
	}
}

func isSpriteKind(k BatchKind) bool {
	return k == BatchMonochromeSprites || k == BatchPolychromeSprites
}

func (s *Scene) spriteTexture(k BatchKind, i int) atlas.TextureID {
	if k == BatchMonochromeSprites {
		return s.monochromeSprites[i].Tile.Texture
	}
	return s.polychromeSprites[i].Tile.Texture
}

func (s *Scene) orderAt(k BatchKind, i int) (uint32, bool) {
	switch k {
	case BatchQuads:
		if i < len(s.quads) {
			return s.quads[i].Order, true
		}
	case BatchShadows:
		if i < len(s.shadows) {
			return s.shadows[i].Order, true
		}
	case BatchUnderlines:
		if i < len(s.underlines) {
			return s.underlines[i].Order, true
		}
	case BatchPaths:
		if i < len(s.paths) {
			return s.paths[i].Order, true
		}
	case BatchMonochromeSprites:
		if i < len(s.monochromeSprites) {
			return s.monochromeSprites[i].Order, true
		}
	case BatchPolychromeSprites:
		if i < len(s.polychromeSprites) {
			return s.polychromeSprites[i].Order, true
		}
	case BatchSurfaces:
		if i < len(s.surfaces) {
			return s.surfaces[i].Order, true
		}
	}
	return 0, false
}

func (s *Scene) sliceBatch(k BatchKind, start, end int) Batch {
	b := Batch{Kind: k}
	switch k {
	case BatchQuads:
		b.Quads = s.quads[start:end]
	case BatchShadows:
		b.Shadows = s.shadows[start:end]
	case BatchUnderlines:
		b.Underlines = s.underlines[start:end]
	case BatchPaths:
		b.Paths = s.paths[start:end]
	case BatchMonochromeSprites:
		b.MonochromeSprites = s.monochromeSprites[start:end]
		b.Texture = s.monochromeSprites[start].Tile.Texture
	case BatchPolychromeSprites:
		b.PolychromeSprites = s.polychromeSprites[start:end]
		b.Texture = s.polychromeSprites[start].Tile.Texture
	case BatchSurfaces:
		b.Surfaces = s.surfaces[start:end]
	}
	return b
}
