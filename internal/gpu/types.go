// Package gpu abstracts the GPU device operations the renderer needs
// behind opaque resource handles, so rendering logic is testable
// without a live device.
package gpu

// Resource IDs
//
// These opaque IDs represent GPU resources. Each device implementation
// maintains a mapping between IDs and actual backend resources.

// BufferID is an opaque handle to a GPU buffer.
type BufferID uint64

// TextureID is an opaque handle to a GPU texture.
type TextureID uint64

// ShaderModuleID is an opaque handle to a compiled shader module.
type ShaderModuleID uint64

// RenderPipelineID is an opaque handle to a render pipeline.
type RenderPipelineID uint64

// BindGroupLayoutID is an opaque handle to a bind group layout.
type BindGroupLayoutID uint64

// BindGroupID is an opaque handle to a bind group.
type BindGroupID uint64

// PipelineLayoutID is an opaque handle to a pipeline layout.
type PipelineLayoutID uint64

// SamplerID is an opaque handle to a texture sampler.
type SamplerID uint64

// InvalidID is the zero value, representing an invalid/null resource.
const InvalidID = 0

// BufferUsage is a bitmask specifying how a buffer will be used.
type BufferUsage uint32

// Buffer usage flags.
const (
	BufferUsageCopySrc BufferUsage = 1 << 0
	BufferUsageCopyDst BufferUsage = 1 << 1
	BufferUsageVertex  BufferUsage = 1 << 2
	BufferUsageUniform BufferUsage = 1 << 3
	BufferUsageStorage BufferUsage = 1 << 4
)

// TextureFormat specifies the format of texture data.
type TextureFormat uint32

// Texture formats.
const (
	// TextureFormatBGRA8Unorm is 8-bit BGRA, the surface and atlas
	// polychrome format.
	TextureFormatBGRA8Unorm TextureFormat = iota + 1

	// TextureFormatR8Unorm is 8-bit single channel, the monochrome
	// glyph coverage format.
	TextureFormatR8Unorm

	// TextureFormatRGBA16Float is 16-bit float RGBA, used for the
	// intermediate path texture.
	TextureFormatRGBA16Float

	// TextureFormatRGBA8Unorm is 8-bit RGBA, offered by some surface
	// backends instead of BGRA.
	TextureFormatRGBA8Unorm
)

// BytesPerPixel returns the pixel stride of the format.
func (f TextureFormat) BytesPerPixel() int {
	switch f {
	case TextureFormatR8Unorm:
		return 1
	case TextureFormatRGBA16Float:
		return 8
	default:
		return 4
	}
}

// TextureUsage is a bitmask specifying how a texture will be used.
type TextureUsage uint32

// Texture usage flags.
const (
	TextureUsageCopySrc          TextureUsage = 1 << 0
	TextureUsageCopyDst          TextureUsage = 1 << 1
	TextureUsageTextureBinding   TextureUsage = 1 << 2
	TextureUsageRenderAttachment TextureUsage = 1 << 3
)

// BindingType specifies the type of a shader binding.
type BindingType uint32

// Binding types.
const (
	BindingTypeUniformBuffer BindingType = iota + 1
	BindingTypeReadOnlyStorageBuffer
	BindingTypeSampledTexture
	BindingTypeSampler
)

// LoadOp selects what happens to a render target's existing contents
// when a pass begins.
type LoadOp uint32

const (
	// LoadOpClear discards prior contents and clears to a constant.
	LoadOpClear LoadOp = iota
	// LoadOpLoad preserves prior contents, required when a frame's
	// main pass is reopened after a path pass.
	LoadOpLoad
)

// Color is a clear color with float channels.
type Color struct {
	R, G, B, A float64
}

// TextureDesc describes a texture allocation.
type TextureDesc struct {
	Label  string
	Width  int
	Height int
	Format TextureFormat
	Usage  TextureUsage
}

// BindGroupLayoutEntry describes a single binding in a bind group layout.
type BindGroupLayoutEntry struct {
	Binding uint32
	Type    BindingType

	// MinBindingSize is the minimum buffer size for buffer bindings.
	// Zero for non-buffer bindings.
	MinBindingSize uint64
}

// BindGroupLayoutDesc describes a bind group layout.
type BindGroupLayoutDesc struct {
	Label   string
	Entries []BindGroupLayoutEntry
}

// BindGroupEntry binds one resource at a binding index. Exactly one
// of Buffer, Texture, or Sampler is set, matching the layout's type
// for that index.
type BindGroupEntry struct {
	Binding uint32
	Buffer  BufferID
	Offset  uint64
	Size    uint64
	Texture TextureID
	Sampler SamplerID
}

// RenderPipelineDesc describes a render pipeline. All pipelines built
// from it blend with the premultiplied-alpha equation
// src·1 + dst·(1−src_alpha) on both color and alpha.
type RenderPipelineDesc struct {
	Label         string
	Layout        PipelineLayoutID
	ShaderModule  ShaderModuleID
	VertexEntry   string
	FragmentEntry string
	TargetFormat  TextureFormat
}

// RenderPassDesc describes one render pass.
type RenderPassDesc struct {
	Label  string
	Target TextureID
	Load   LoadOp
	Clear  Color
}
