package render

import (
	"fmt"

	"github.com/gogpu/ui"
	"github.com/gogpu/ui/atlas"
	"github.com/gogpu/ui/internal/gpu"
	"github.com/gogpu/ui/scene"
)

// AtlasTextures resolves atlas texture ids to device texture handles.
// The glyph atlas satisfies it when backed by a TextureStore from
// NewTextureStore, whose handles are device texture ids.
type AtlasTextures interface {
	TextureHandle(id atlas.TextureID) (uint64, bool)
}

// Config configures a SceneRenderer.
type Config struct {
	// SurfaceFormat is the color format of the render target. The
	// zero value selects BGRA8.
	SurfaceFormat gpu.TextureFormat

	// Atlas resolves sprite batch texture references. May be nil when
	// scenes carry no sprites; sprite batches are then skipped with a
	// warning.
	Atlas AtlasTextures
}

// SceneRenderer draws scenes onto a render target.
//
// Quads, shadows, underlines, and sprites are instanced: each batch
// uploads one storage buffer and issues a single six-vertex draw.
// Paths break the main render pass and take two passes of their own,
// rasterizing curve triangles into an intermediate texture and then
// compositing the covered rectangles back onto the target.
//
// Not safe for concurrent use.
type SceneRenderer struct {
	dev       gpu.Device
	pipelines *pipelines
	format    gpu.TextureFormat
	atlas     AtlasTextures

	globals gpu.BufferID
	sampler gpu.SamplerID

	// Intermediate path texture, recreated when the viewport changes.
	pathTexture gpu.TextureID
	pathSize    ui.DeviceSize

	// Per-frame resources, released after submit.
	frameBuffers []gpu.BufferID
	frameGroups  []gpu.BindGroupID
}

// NewSceneRenderer creates a renderer on dev. The device is owned by
// the caller and must outlive the renderer.
func NewSceneRenderer(dev gpu.Device, cfg Config) (*SceneRenderer, error) {
	format := cfg.SurfaceFormat
	if format == 0 {
		format = gpu.TextureFormatBGRA8Unorm
	}
	p, err := newPipelines(dev, format)
	if err != nil {
		return nil, err
	}
	globals, err := dev.CreateBuffer(globalsStride, gpu.BufferUsageUniform|gpu.BufferUsageCopyDst)
	if err != nil {
		p.release(dev)
		return nil, fmt.Errorf("render: create globals buffer: %w", err)
	}
	sampler, err := dev.CreateSampler("atlas_sampler")
	if err != nil {
		dev.DestroyBuffer(globals)
		p.release(dev)
		return nil, fmt.Errorf("render: create sampler: %w", err)
	}
	return &SceneRenderer{
		dev:       dev,
		pipelines: p,
		format:    format,
		atlas:     cfg.Atlas,
		globals:   globals,
		sampler:   sampler,
	}, nil
}

// Release destroys all GPU resources held by the renderer.
func (r *SceneRenderer) Release() {
	r.releaseFrameResources()
	if r.pathTexture != gpu.InvalidID {
		r.dev.DestroyTexture(r.pathTexture)
		r.pathTexture = gpu.InvalidID
	}
	r.dev.DestroySampler(r.sampler)
	r.dev.DestroyBuffer(r.globals)
	r.pipelines.release(r.dev)
}

// Draw renders one frame of sc onto target. The first pass of the
// frame clears the target; path batches split the frame into multiple
// passes that load the previous contents.
func (r *SceneRenderer) Draw(sc *scene.Scene, target gpu.TextureID, viewport ui.DeviceSize) error {
	if viewport.IsEmpty() {
		return nil
	}
	r.dev.WriteBuffer(r.globals, 0, encodeGlobals(viewport))

	batches := sc.Batches()
	firstPass := true
	idx := 0
	var err error
	for idx < len(batches) {
		// Start or resume the main render pass, then consume batches
		// until a path batch forces a pass break.
		load := gpu.LoadOpLoad
		if firstPass {
			load = gpu.LoadOpClear
			firstPass = false
		}
		pass := r.dev.BeginRenderPass(&gpu.RenderPassDesc{
			Label:  "scene",
			Target: target,
			Load:   load,
		})
		for idx < len(batches) {
			batch := &batches[idx]
			if batch.Kind == scene.BatchPaths {
				break
			}
			if err = r.drawBatch(pass, batch); err != nil {
				break
			}
			idx++
		}
		pass.End()
		if err != nil {
			break
		}

		if idx < len(batches) && batches[idx].Kind == scene.BatchPaths {
			if err = r.drawPaths(batches[idx].Paths, target, viewport); err != nil {
				break
			}
			idx++
		}
	}

	r.dev.Submit()
	r.releaseFrameResources()
	return err
}

func (r *SceneRenderer) drawBatch(pass gpu.RenderPassEncoder, batch *scene.Batch) error {
	switch batch.Kind {
	case scene.BatchQuads:
		return r.drawInstanced(pass, r.pipelines.quad, encodeQuads(batch.Quads), len(batch.Quads))
	case scene.BatchShadows:
		return r.drawInstanced(pass, r.pipelines.shadow, encodeShadows(batch.Shadows), len(batch.Shadows))
	case scene.BatchUnderlines:
		return r.drawInstanced(pass, r.pipelines.underline, encodeUnderlines(batch.Underlines), len(batch.Underlines))
	case scene.BatchMonochromeSprites:
		return r.drawSprites(pass, r.pipelines.monoSprite,
			encodeMonoSprites(batch.MonochromeSprites), len(batch.MonochromeSprites), batch.Texture)
	case scene.BatchPolychromeSprites:
		return r.drawSprites(pass, r.pipelines.polySprite,
			encodePolySprites(batch.PolychromeSprites), len(batch.PolychromeSprites), batch.Texture)
	case scene.BatchSurfaces:
		// Composited by the platform layer, nothing to draw here.
		return nil
	default:
		return fmt.Errorf("render: unknown batch kind %d", batch.Kind)
	}
}

// drawInstanced uploads one storage buffer of instances and draws them
// as instanced unit quads.
func (r *SceneRenderer) drawInstanced(pass gpu.RenderPassEncoder, pipeline gpu.RenderPipelineID, instances []byte, count int) error {
	if count == 0 {
		return nil
	}
	buf, err := r.frameBuffer(instances, gpu.BufferUsageStorage|gpu.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	group, err := r.frameBindGroup(r.pipelines.primitiveLayout, []gpu.BindGroupEntry{
		{Binding: 0, Buffer: r.globals, Size: globalsStride},
		{Binding: 1, Buffer: buf, Size: uint64(len(instances))},
	})
	if err != nil {
		return err
	}
	pass.SetPipeline(pipeline)
	pass.SetBindGroup(0, group)
	pass.Draw(6, uint32(count), 0, 0)
	return nil
}

func (r *SceneRenderer) drawSprites(pass gpu.RenderPassEncoder, pipeline gpu.RenderPipelineID, instances []byte, count int, texture atlas.TextureID) error {
	if count == 0 {
		return nil
	}
	handle, ok := r.resolveAtlasTexture(texture)
	if !ok {
		ui.Logger().Warn("render: skipping sprite batch, atlas texture unavailable",
			"kind", texture.Kind.String(), "index", texture.Index)
		return nil
	}
	buf, err := r.frameBuffer(instances, gpu.BufferUsageStorage|gpu.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	group, err := r.frameBindGroup(r.pipelines.textureLayout, []gpu.BindGroupEntry{
		{Binding: 0, Buffer: r.globals, Size: globalsStride},
		{Binding: 1, Buffer: buf, Size: uint64(len(instances))},
		{Binding: 2, Texture: handle},
		{Binding: 3, Sampler: r.sampler},
	})
	if err != nil {
		return err
	}
	pass.SetPipeline(pipeline)
	pass.SetBindGroup(0, group)
	pass.Draw(6, uint32(count), 0, 0)
	return nil
}

// drawPaths renders one path batch in two passes: rasterize curve
// triangles into the intermediate texture, then composite the covered
// rectangles onto the target. When paths in the batch have different
// paint orders, a single union rectangle is composited instead of one
// per path, so overlapping regions are not blended twice.
func (r *SceneRenderer) drawPaths(paths []*scene.Path, target gpu.TextureID, viewport ui.DeviceSize) error {
	vertices, count := encodePathVertices(paths)
	if count == 0 {
		return nil
	}
	if err := r.ensurePathTexture(viewport); err != nil {
		return err
	}

	vbuf, err := r.frameBuffer(vertices, gpu.BufferUsageStorage|gpu.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	rasterGroup, err := r.frameBindGroup(r.pipelines.primitiveLayout, []gpu.BindGroupEntry{
		{Binding: 0, Buffer: r.globals, Size: globalsStride},
		{Binding: 1, Buffer: vbuf, Size: uint64(len(vertices))},
	})
	if err != nil {
		return err
	}
	rasterPass := r.dev.BeginRenderPass(&gpu.RenderPassDesc{
		Label:  "path_rasterization",
		Target: r.pathTexture,
		Load:   gpu.LoadOpClear,
	})
	rasterPass.SetPipeline(r.pipelines.pathRasterization)
	rasterPass.SetBindGroup(0, rasterGroup)
	rasterPass.Draw(uint32(count), 1, 0, 0)
	rasterPass.End()

	var spriteBounds []ui.Bounds
	if sameOrder(paths) {
		spriteBounds = make([]ui.Bounds, len(paths))
		for i, p := range paths {
			spriteBounds[i] = clippedPathBounds(p)
		}
	} else {
		union := clippedPathBounds(paths[0])
		for _, p := range paths[1:] {
			union = union.Union(clippedPathBounds(p))
		}
		spriteBounds = []ui.Bounds{union}
	}
	sprites := encodePathSprites(spriteBounds)
	sbuf, err := r.frameBuffer(sprites, gpu.BufferUsageStorage|gpu.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	compositeGroup, err := r.frameBindGroup(r.pipelines.textureLayout, []gpu.BindGroupEntry{
		{Binding: 0, Buffer: r.globals, Size: globalsStride},
		{Binding: 1, Buffer: sbuf, Size: uint64(len(sprites))},
		{Binding: 2, Texture: r.pathTexture},
		{Binding: 3, Sampler: r.sampler},
	})
	if err != nil {
		return err
	}
	compositePass := r.dev.BeginRenderPass(&gpu.RenderPassDesc{
		Label:  "path_composite",
		Target: target,
		Load:   gpu.LoadOpLoad,
	})
	compositePass.SetPipeline(r.pipelines.pathComposite)
	compositePass.SetBindGroup(0, compositeGroup)
	compositePass.Draw(6, uint32(len(spriteBounds)), 0, 0)
	compositePass.End()
	return nil
}

func sameOrder(paths []*scene.Path) bool {
	for _, p := range paths[1:] {
		if p.Order != paths[0].Order {
			return false
		}
	}
	return true
}

// ensurePathTexture keeps the intermediate texture sized to the viewport.
func (r *SceneRenderer) ensurePathTexture(viewport ui.DeviceSize) error {
	if r.pathTexture != gpu.InvalidID && r.pathSize == viewport {
		return nil
	}
	if r.pathTexture != gpu.InvalidID {
		r.dev.DestroyTexture(r.pathTexture)
		r.pathTexture = gpu.InvalidID
	}
	tex, err := r.dev.CreateTexture(&gpu.TextureDesc{
		Label:  "path_intermediate",
		Width:  int(viewport.Width),
		Height: int(viewport.Height),
		Format: gpu.TextureFormatRGBA16Float,
		Usage:  gpu.TextureUsageRenderAttachment | gpu.TextureUsageTextureBinding,
	})
	if err != nil {
		return fmt.Errorf("render: create path texture: %w", err)
	}
	r.pathTexture = tex
	r.pathSize = viewport
	return nil
}

func (r *SceneRenderer) resolveAtlasTexture(id atlas.TextureID) (gpu.TextureID, bool) {
	if r.atlas == nil {
		return gpu.InvalidID, false
	}
	handle, ok := r.atlas.TextureHandle(id)
	if !ok {
		return gpu.InvalidID, false
	}
	return gpu.TextureID(handle), true
}

func (r *SceneRenderer) frameBuffer(data []byte, usage gpu.BufferUsage) (gpu.BufferID, error) {
	buf, err := r.dev.CreateBuffer(len(data), usage)
	if err != nil {
		return gpu.InvalidID, fmt.Errorf("render: create instance buffer: %w", err)
	}
	r.frameBuffers = append(r.frameBuffers, buf)
	r.dev.WriteBuffer(buf, 0, data)
	return buf, nil
}

func (r *SceneRenderer) frameBindGroup(layout gpu.BindGroupLayoutID, entries []gpu.BindGroupEntry) (gpu.BindGroupID, error) {
	group, err := r.dev.CreateBindGroup(layout, entries)
	if err != nil {
		return gpu.InvalidID, fmt.Errorf("render: create bind group: %w", err)
	}
	r.frameGroups = append(r.frameGroups, group)
	return group, nil
}

// releaseFrameResources frees the instance buffers and bind groups of
// the submitted frame.
func (r *SceneRenderer) releaseFrameResources() {
	for _, g := range r.frameGroups {
		r.dev.DestroyBindGroup(g)
	}
	r.frameGroups = r.frameGroups[:0]
	for _, b := range r.frameBuffers {
		r.dev.DestroyBuffer(b)
	}
	r.frameBuffers = r.frameBuffers[:0]
}
