package atlas

import (
	"errors"
	"sync"
	"testing"

	"github.com/gogpu/ui"
)

// fakeStore records texture operations without a GPU.
type fakeStore struct {
	nextHandle uint64
	created    []TextureKind
	writes     int
	destroyed  []uint64
}

func (s *fakeStore) CreateAtlasTexture(kind TextureKind, width, height int) (uint64, error) {
	s.nextHandle++
	s.created = append(s.created, kind)
	return s.nextHandle, nil
}

func (s *fakeStore) WriteAtlasTexture(handle uint64, x, y, width, height int, data []byte) error {
	s.writes++
	return nil
}

func (s *fakeStore) DestroyAtlasTexture(handle uint64) {
	s.destroyed = append(s.destroyed, handle)
}

type glyphKey struct {
	font  int
	glyph uint16
}

func grayBitmap(w, h int) Bitmap {
	return Bitmap{
		Size: ui.DeviceSize{Width: ui.DevicePixels(w), Height: ui.DevicePixels(h)},
		Data: make([]byte, w*h),
	}
}

func TestGetOrInsertCachesTile(t *testing.T) {
	store := &fakeStore{}
	a := New[glyphKey](store, Config{TextureSize: 256})

	key := glyphKey{font: 1, glyph: 42}
	builds := 0
	build := func() (Bitmap, error) {
		builds++
		return grayBitmap(10, 12), nil
	}

	first, ok, err := a.GetOrInsertWith(key, TextureKindMonochrome, build)
	if err != nil || !ok {
		t.Fatalf("first insert: ok=%v err=%v", ok, err)
	}
	second, ok, err := a.GetOrInsertWith(key, TextureKindMonochrome, build)
	if err != nil || !ok {
		t.Fatalf("second lookup: ok=%v err=%v", ok, err)
	}

	if builds != 1 {
		t.Errorf("build called %d times, want 1", builds)
	}
	if first != second {
		t.Errorf("cached tile differs: %+v vs %+v", first, second)
	}
	if first.Bounds.Size.Width != 10 || first.Bounds.Size.Height != 12 {
		t.Errorf("tile bounds = %+v, want 10x12", first.Bounds)
	}
	if store.writes != 1 {
		t.Errorf("texture writes = %d, want 1", store.writes)
	}
}

func TestEmptyBuildCachesNothing(t *testing.T) {
	a := New[glyphKey](&fakeStore{}, Config{})

	key := glyphKey{glyph: 32} // whitespace: nothing to draw
	builds := 0
	build := func() (Bitmap, error) {
		builds++
		return Bitmap{}, nil
	}

	for i := 0; i < 2; i++ {
		_, ok, err := a.GetOrInsertWith(key, TextureKindMonochrome, build)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Fatal("empty bitmap should not produce a tile")
		}
	}
	if builds != 2 {
		t.Errorf("build called %d times, want 2 (nothing cached)", builds)
	}
	if a.Len() != 0 {
		t.Errorf("Len = %d, want 0", a.Len())
	}
}

func TestBuildErrorPropagates(t *testing.T) {
	a := New[glyphKey](&fakeStore{}, Config{})
	wantErr := errors.New("corrupt font data")

	_, ok, err := a.GetOrInsertWith(glyphKey{glyph: 7}, TextureKindMonochrome, func() (Bitmap, error) {
		return Bitmap{}, wantErr
	})
	if ok {
		t.Error("tile returned despite build error")
	}
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
}

func TestRemoveRetriggersBuild(t *testing.T) {
	a := New[glyphKey](&fakeStore{}, Config{TextureSize: 256})
	key := glyphKey{glyph: 9}

	builds := 0
	build := func() (Bitmap, error) {
		builds++
		return grayBitmap(4, 4), nil
	}

	a.GetOrInsertWith(key, TextureKindMonochrome, build)
	a.Remove(key)
	if _, ok := a.Get(key); ok {
		t.Fatal("removed key still present")
	}
	a.GetOrInsertWith(key, TextureKindMonochrome, build)
	if builds != 2 {
		t.Errorf("build called %d times, want 2 after Remove", builds)
	}
}

func TestKindsUseSeparateTextures(t *testing.T) {
	store := &fakeStore{}
	a := New[glyphKey](store, Config{TextureSize: 256})

	mono, _, _ := a.GetOrInsertWith(glyphKey{glyph: 1}, TextureKindMonochrome, func() (Bitmap, error) {
		return grayBitmap(8, 8), nil
	})
	poly, _, _ := a.GetOrInsertWith(glyphKey{glyph: 2}, TextureKindPolychrome, func() (Bitmap, error) {
		bm := grayBitmap(8, 8)
		bm.Data = make([]byte, 8*8*4)
		return bm, nil
	})

	if mono.Texture.Kind != TextureKindMonochrome || poly.Texture.Kind != TextureKindPolychrome {
		t.Errorf("texture kinds = %v, %v", mono.Texture.Kind, poly.Texture.Kind)
	}
	if len(store.created) != 2 {
		t.Errorf("created %d textures, want 2", len(store.created))
	}
}

func TestGrowsToNewTextureWhenFull(t *testing.T) {
	store := &fakeStore{}
	a := New[int](store, Config{TextureSize: 64})

	// Each 60x60 tile (plus padding) fills one 64x64 texture.
	for i := 0; i < 3; i++ {
		tile, ok, err := a.GetOrInsertWith(i, TextureKindMonochrome, func() (Bitmap, error) {
			return grayBitmap(60, 60), nil
		})
		if err != nil || !ok {
			t.Fatalf("tile %d: ok=%v err=%v", i, ok, err)
		}
		if got := tile.Texture.Index; got != uint32(i) {
			t.Errorf("tile %d on texture %d, want %d", i, got, i)
		}
	}
	if len(store.created) != 3 {
		t.Errorf("created %d textures, want 3", len(store.created))
	}
}

func TestTileTooLarge(t *testing.T) {
	a := New[int](&fakeStore{}, Config{TextureSize: 64})
	_, _, err := a.GetOrInsertWith(0, TextureKindMonochrome, func() (Bitmap, error) {
		return grayBitmap(100, 100), nil
	})
	if !errors.Is(err, ErrTileTooLarge) {
		t.Errorf("err = %v, want ErrTileTooLarge", err)
	}
}

func TestConcurrentLookupsOfOneTile(t *testing.T) {
	a := New[int](&fakeStore{}, Config{TextureSize: 256})

	want, ok, err := a.GetOrInsertWith(1, TextureKindMonochrome, func() (Bitmap, error) {
		return grayBitmap(4, 4), nil
	})
	if err != nil || !ok {
		t.Fatalf("insert: ok=%v err=%v", ok, err)
	}

	noRebuild := func() (Bitmap, error) {
		return Bitmap{}, errors.New("cached key rebuilt")
	}

	// Hits refresh the tile's last-used stamp under the read lock, so
	// parallel lookups of one key must not race on it.
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				tile, hit := a.Get(1)
				if !hit || tile != want {
					t.Errorf("Get = %+v hit=%v, want %+v", tile, hit, want)
					return
				}
				if _, _, err := a.GetOrInsertWith(1, TextureKindMonochrome, noRebuild); err != nil {
					t.Errorf("hit lookup: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestClearReusesTextures(t *testing.T) {
	store := &fakeStore{}
	a := New[int](store, Config{TextureSize: 256})

	build := func() (Bitmap, error) { return grayBitmap(8, 8), nil }
	first, _, err := a.GetOrInsertWith(1, TextureKindMonochrome, build)
	if err != nil {
		t.Fatal(err)
	}

	a.Clear()
	if a.Len() != 0 {
		t.Fatalf("Len = %d after Clear, want 0", a.Len())
	}
	if len(store.destroyed) != 0 {
		t.Fatalf("Clear destroyed %d textures, want 0", len(store.destroyed))
	}

	second, _, err := a.GetOrInsertWith(2, TextureKindMonochrome, build)
	if err != nil {
		t.Fatal(err)
	}
	if len(store.created) != 1 {
		t.Errorf("created %d textures, want 1 (reused after Clear)", len(store.created))
	}
	if second.Bounds.Origin != first.Bounds.Origin {
		t.Errorf("tile after Clear at %+v, want reset slot %+v", second.Bounds.Origin, first.Bounds.Origin)
	}
}

func TestEvictStale(t *testing.T) {
	a := New[int](&fakeStore{}, Config{TextureSize: 256})

	build := func() (Bitmap, error) { return grayBitmap(4, 4), nil }
	a.GetOrInsertWith(1, TextureKindMonochrome, build)

	gen := a.AdvanceGeneration()
	a.GetOrInsertWith(2, TextureKindMonochrome, build)

	if n := a.EvictStale(gen); n != 1 {
		t.Fatalf("evicted %d tiles, want 1", n)
	}
	if _, ok := a.Get(1); ok {
		t.Error("stale tile survived eviction")
	}
	if _, ok := a.Get(2); !ok {
		t.Error("fresh tile was evicted")
	}
}
