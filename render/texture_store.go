package render

import (
	"fmt"

	"github.com/gogpu/ui/atlas"
	"github.com/gogpu/ui/internal/gpu"
)

// TextureStore backs the glyph atlas with device textures. Monochrome
// atlas textures are single-channel coverage, polychrome ones BGRA.
// The handles it returns are device texture ids, which is what lets
// the renderer bind atlas textures directly when drawing sprites.
type TextureStore struct {
	dev gpu.Device
}

// NewTextureStore creates a store on dev.
func NewTextureStore(dev gpu.Device) *TextureStore {
	return &TextureStore{dev: dev}
}

func (s *TextureStore) CreateAtlasTexture(kind atlas.TextureKind, width, height int) (uint64, error) {
	format := gpu.TextureFormatR8Unorm
	if kind == atlas.TextureKindPolychrome {
		format = gpu.TextureFormatBGRA8Unorm
	}
	id, err := s.dev.CreateTexture(&gpu.TextureDesc{
		Label:  "atlas_" + kind.String(),
		Width:  width,
		Height: height,
		Format: format,
		Usage:  gpu.TextureUsageCopyDst | gpu.TextureUsageTextureBinding,
	})
	if err != nil {
		return 0, fmt.Errorf("render: create %s atlas texture: %w", kind, err)
	}
	return uint64(id), nil
}

func (s *TextureStore) WriteAtlasTexture(handle uint64, x, y, width, height int, data []byte) error {
	s.dev.WriteTexture(gpu.TextureID(handle), x, y, width, height, data)
	return nil
}

func (s *TextureStore) DestroyAtlasTexture(handle uint64) {
	s.dev.DestroyTexture(gpu.TextureID(handle))
}

var _ atlas.TextureStore = (*TextureStore)(nil)
