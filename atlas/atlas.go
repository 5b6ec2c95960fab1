// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package atlas bin-packs rasterized glyph and image tiles into shared
// GPU textures and hands out stable tile handles for sprite rendering.
package atlas

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/ui"
)

// Atlas errors.
var (
	// ErrTileTooLarge is returned when a bitmap exceeds the atlas texture size.
	ErrTileTooLarge = errors.New("atlas: tile larger than atlas texture")
)

// Default atlas texture dimensions.
const (
	DefaultTextureSize = 1024

	// tilePadding keeps one transparent pixel between tiles so linear
	// sampling at tile edges never bleeds into a neighbor.
	tilePadding = 1
)

// TextureKind selects the pixel format family of an atlas texture.
type TextureKind uint8

const (
	// TextureKindMonochrome holds 8-bit alpha coverage tiles (outline glyphs).
	TextureKindMonochrome TextureKind = iota
	// TextureKindPolychrome holds 4-channel BGRA tiles (emoji, images).
	TextureKindPolychrome

	textureKindCount
)

// BytesPerPixel returns the pixel stride for bitmaps of this kind.
func (k TextureKind) BytesPerPixel() int {
	if k == TextureKindPolychrome {
		return 4
	}
	return 1
}

func (k TextureKind) String() string {
	switch k {
	case TextureKindMonochrome:
		return "monochrome"
	case TextureKindPolychrome:
		return "polychrome"
	default:
		return fmt.Sprintf("TextureKind(%d)", uint8(k))
	}
}

// TextureID identifies one texture within the atlas.
type TextureID struct {
	Kind  TextureKind
	Index uint32
}

// TileID is an opaque allocation id from the packing algorithm,
// unique within one texture.
type TileID uint32

// Tile is a placement of a rasterized bitmap inside an atlas texture.
// Bounds covers the bitmap pixels only; the padding the packer leaves
// between tiles is outside it.
type Tile struct {
	Texture TextureID
	ID      TileID
	Bounds  ui.DeviceBounds
}

// TextureStore abstracts the GPU operations the atlas needs. The
// renderer's device satisfies it; tests substitute an in-memory fake.
type TextureStore interface {
	CreateAtlasTexture(kind TextureKind, width, height int) (uint64, error)
	WriteAtlasTexture(handle uint64, x, y, width, height int, data []byte) error
	DestroyAtlasTexture(handle uint64)
}

// Bitmap is the raw output of a tile build: tightly packed pixels at
// the kind's stride.
type Bitmap struct {
	Size ui.DeviceSize
	Data []byte
}

// Atlas packs bitmaps keyed by K into GPU textures. Lookups take a
// read lock; only first-time inserts take the write lock. The build
// callback runs outside any lock, so two goroutines racing on the same
// uncached key may both rasterize; the insert path then keeps the
// first tile and discards the duplicate, which is safe because builds
// for one key are deterministic.
type Atlas[K comparable] struct {
	store       TextureStore
	textureSize int

	mu         sync.RWMutex
	textures   [textureKindCount][]*atlasTexture
	tiles      map[K]*tileEntry
	generation uint64
}

type atlasTexture struct {
	id     TextureID
	handle uint64
	packer *shelfPacker
}

// tileEntry pairs a tile with its last-used generation stamp. The
// stamp is atomic because hit paths refresh it under the read lock,
// where two lookups of the same key may run concurrently.
type tileEntry struct {
	tile     Tile
	lastUsed atomic.Uint64
}

// Config configures a new Atlas. Zero values select defaults.
type Config struct {
	// TextureSize is the width and height of each atlas texture.
	TextureSize int
}

// New creates an atlas backed by the given texture store.
func New[K comparable](store TextureStore, cfg Config) *Atlas[K] {
	size := cfg.TextureSize
	if size <= 0 {
		size = DefaultTextureSize
	}
	return &Atlas[K]{
		store:       store,
		textureSize: size,
		tiles:       make(map[K]*tileEntry),
	}
}

// GetOrInsertWith returns the tile for key, building and packing the
// bitmap on first use. If build returns a nil-data bitmap (for example
// a whitespace glyph with nothing to draw), nothing is cached and ok
// is false. Build errors are propagated and cache nothing.
func (a *Atlas[K]) GetOrInsertWith(key K, kind TextureKind, build func() (Bitmap, error)) (Tile, bool, error) {
	a.mu.RLock()
	if e, hit := a.tiles[key]; hit {
		e.lastUsed.Store(a.generation)
		tile := e.tile
		a.mu.RUnlock()
		return tile, true, nil
	}
	a.mu.RUnlock()

	// Rasterization happens unlocked.
	bm, err := build()
	if err != nil {
		return Tile{}, false, err
	}
	if len(bm.Data) == 0 || bm.Size.IsEmpty() {
		return Tile{}, false, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	// Lost the race to another builder; its tile is equivalent.
	if e, hit := a.tiles[key]; hit {
		e.lastUsed.Store(a.generation)
		return e.tile, true, nil
	}

	tile, err := a.packLocked(kind, bm)
	if err != nil {
		return Tile{}, false, err
	}
	e := &tileEntry{tile: tile}
	e.lastUsed.Store(a.generation)
	a.tiles[key] = e
	return tile, true, nil
}

// Get returns the tile for key without building.
func (a *Atlas[K]) Get(key K) (Tile, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	e, hit := a.tiles[key]
	if !hit {
		return Tile{}, false
	}
	e.lastUsed.Store(a.generation)
	return e.tile, true
}

// Remove drops the mapping for key. The texture space is not
// reclaimed; the next request for key rebuilds into a fresh slot.
func (a *Atlas[K]) Remove(key K) {
	a.mu.Lock()
	delete(a.tiles, key)
	a.mu.Unlock()
}

// AdvanceGeneration marks the start of a new frame for staleness
// tracking and returns the new generation.
func (a *Atlas[K]) AdvanceGeneration() uint64 {
	a.mu.Lock()
	a.generation++
	g := a.generation
	a.mu.Unlock()
	return g
}

// EvictStale removes every tile not used since generation before.
// It returns the number of evicted tiles.
func (a *Atlas[K]) EvictStale(before uint64) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for k, e := range a.tiles {
		if e.lastUsed.Load() < before {
			delete(a.tiles, k)
			n++
		}
	}
	return n
}

// Clear drops every cached tile and resets packing on the existing
// textures. Their GPU storage is kept and reused by subsequent
// inserts, unlike Release, which destroys it.
func (a *Atlas[K]) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for kind := range a.textures {
		for _, t := range a.textures[kind] {
			t.packer.reset()
		}
	}
	a.tiles = make(map[K]*tileEntry)
}

// TextureHandle returns the store handle for an atlas texture, for
// binding during sprite draws.
func (a *Atlas[K]) TextureHandle(id TextureID) (uint64, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	list := a.textures[id.Kind]
	if int(id.Index) >= len(list) {
		return 0, false
	}
	return list[id.Index].handle, true
}

// Len returns the number of cached tiles.
func (a *Atlas[K]) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.tiles)
}

// Release destroys all atlas textures.
func (a *Atlas[K]) Release() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for kind := range a.textures {
		for _, t := range a.textures[kind] {
			a.store.DestroyAtlasTexture(t.handle)
		}
		a.textures[kind] = nil
	}
	a.tiles = make(map[K]*tileEntry)
}

func (a *Atlas[K]) packLocked(kind TextureKind, bm Bitmap) (Tile, error) {
	w := int(bm.Size.Width)
	h := int(bm.Size.Height)
	if w+tilePadding > a.textureSize || h+tilePadding > a.textureSize {
		return Tile{}, fmt.Errorf("%w: %dx%d into %dx%d", ErrTileTooLarge, w, h, a.textureSize, a.textureSize)
	}

	list := a.textures[kind]
	for _, t := range list {
		if tile, ok := a.tryPack(t, bm, w, h); ok {
			return tile, nil
		}
	}

	handle, err := a.store.CreateAtlasTexture(kind, a.textureSize, a.textureSize)
	if err != nil {
		return Tile{}, fmt.Errorf("atlas: creating %s texture: %w", kind, err)
	}
	t := &atlasTexture{
		id:     TextureID{Kind: kind, Index: uint32(len(list))},
		handle: handle,
		packer: newShelfPacker(a.textureSize, a.textureSize, tilePadding),
	}
	a.textures[kind] = append(list, t)

	tile, ok := a.tryPack(t, bm, w, h)
	if !ok {
		return Tile{}, fmt.Errorf("%w: %dx%d", ErrTileTooLarge, w, h)
	}
	return tile, nil
}

func (a *Atlas[K]) tryPack(t *atlasTexture, bm Bitmap, w, h int) (Tile, bool) {
	x, y, id, ok := t.packer.allocate(w, h)
	if !ok {
		return Tile{}, false
	}
	if err := a.store.WriteAtlasTexture(t.handle, x, y, w, h, bm.Data); err != nil {
		// The slot stays allocated but unmapped; the caller sees the
		// error and no tile is recorded for the key.
		return Tile{}, false
	}
	return Tile{
		Texture: t.id,
		ID:      id,
		Bounds: ui.DeviceBounds{
			Origin: ui.DevicePoint{X: ui.DevicePixels(x), Y: ui.DevicePixels(y)},
			Size:   bm.Size,
		},
	}, true
}
