package gpu

import (
	"fmt"
	"log"
	"sync"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/core"
	"github.com/gogpu/wgpu/hal"
)

// CompileWGSL compiles WGSL shader source to SPIR-V words via naga.
func CompileWGSL(src string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("gpu: failed to compile shader: %w", err)
	}
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// WgpuDevice implements Device over the wgpu HAL. Shader modules go
// through the HAL directly; buffer, texture, and render-pass commands
// keep local bookkeeping and will switch to the core command API as
// wgpu exposes it (the render-side core surface is still settling, so
// those call sites carry the intended invocation in comments, the same
// staging the compute path went through).
type WgpuDevice struct {
	mu sync.Mutex

	device core.DeviceID
	queue  core.QueueID

	halDevice hal.Device
	halQueue  hal.Queue

	nextID        uint64
	shaderModules map[ShaderModuleID]hal.ShaderModule
	buffers       map[BufferID]int
	textures      map[TextureID]*TextureDesc

	passOpen bool
}

// NewWgpuDevice wraps an existing wgpu device and queue. The device is
// received from the host platform layer, never created here.
func NewWgpuDevice(device core.DeviceID, queue core.QueueID, halDevice hal.Device, halQueue hal.Queue) (*WgpuDevice, error) {
	if halDevice == nil || halQueue == nil {
		return nil, fmt.Errorf("gpu: device and queue are required")
	}
	return &WgpuDevice{
		device:        device,
		queue:         queue,
		halDevice:     halDevice,
		halQueue:      halQueue,
		shaderModules: make(map[ShaderModuleID]hal.ShaderModule),
		buffers:       make(map[BufferID]int),
		textures:      make(map[TextureID]*TextureDesc),
	}, nil
}

func (d *WgpuDevice) allocID() uint64 {
	d.nextID++
	return d.nextID
}

// CreateShaderModule creates a shader module from SPIR-V words.
func (d *WgpuDevice) CreateShaderModule(spirv []uint32, label string) (ShaderModuleID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	module, err := d.halDevice.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: label,
		Source: hal.ShaderSource{
			SPIRV: spirv,
		},
	})
	if err != nil {
		return InvalidID, fmt.Errorf("gpu: failed to create shader module %q: %w", label, err)
	}
	id := ShaderModuleID(d.allocID())
	d.shaderModules[id] = module
	return id, nil
}

// DestroyShaderModule releases a shader module.
func (d *WgpuDevice) DestroyShaderModule(id ShaderModuleID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.shaderModules, id)
}

// CreateBuffer creates a GPU buffer.
func (d *WgpuDevice) CreateBuffer(size int, usage BufferUsage) (BufferID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if size <= 0 {
		return InvalidID, fmt.Errorf("gpu: invalid buffer size %d", size)
	}

	// TODO(wgpu): when core exposes buffer creation:
	// bufferID, err := core.CreateBuffer(d.device, &gputypes.BufferDescriptor{
	//     Size:  uint64(size),
	//     Usage: toCoreBufferUsage(usage),
	// })
	_ = usage

	id := BufferID(d.allocID())
	d.buffers[id] = size
	return id, nil
}

// DestroyBuffer releases a GPU buffer.
func (d *WgpuDevice) DestroyBuffer(id BufferID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	// TODO(wgpu): core.BufferDrop(bufferID)
	delete(d.buffers, id)
}

// WriteBuffer writes data into a buffer at offset.
func (d *WgpuDevice) WriteBuffer(id BufferID, offset uint64, data []byte) {
	d.mu.Lock()
	size, ok := d.buffers[id]
	d.mu.Unlock()
	if !ok {
		log.Printf("gpu: WriteBuffer on unknown buffer %d", id)
		return
	}
	if int(offset)+len(data) > size {
		log.Printf("gpu: WriteBuffer overflow: %d+%d > %d", offset, len(data), size)
		return
	}

	// TODO(wgpu): core.QueueWriteBuffer(d.queue, bufferID, offset, data)
}

// CreateTexture creates a GPU texture.
func (d *WgpuDevice) CreateTexture(desc *TextureDesc) (TextureID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if desc.Width <= 0 || desc.Height <= 0 {
		return InvalidID, fmt.Errorf("gpu: invalid texture size %dx%d", desc.Width, desc.Height)
	}

	// TODO(wgpu): when core exposes texture creation:
	// textureID, err := core.CreateTexture(d.device, &gputypes.TextureDescriptor{
	//     Size:   gputypes.Extent3D{Width: uint32(desc.Width), Height: uint32(desc.Height), DepthOrArrayLayers: 1},
	//     Format: toCoreFormat(desc.Format),
	//     Usage:  toCoreTextureUsage(desc.Usage),
	// })

	id := TextureID(d.allocID())
	copied := *desc
	d.textures[id] = &copied
	return id, nil
}

// DestroyTexture releases a GPU texture.
func (d *WgpuDevice) DestroyTexture(id TextureID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	// TODO(wgpu): core.TextureDrop(textureID)
	delete(d.textures, id)
}

// WriteTexture copies pixels into a texture sub-region.
func (d *WgpuDevice) WriteTexture(id TextureID, x, y, width, height int, data []byte) {
	d.mu.Lock()
	desc, ok := d.textures[id]
	d.mu.Unlock()
	if !ok {
		log.Printf("gpu: WriteTexture on unknown texture %d", id)
		return
	}
	bpp := desc.Format.BytesPerPixel()
	if len(data) != width*height*bpp {
		log.Printf("gpu: WriteTexture size mismatch: %d bytes for %dx%d at %d bpp", len(data), width, height, bpp)
		return
	}

	// TODO(wgpu): core.QueueWriteTexture(d.queue,
	//     &gputypes.ImageCopyTexture{Texture: textureID, Origin: gputypes.Origin3D{X: uint32(x), Y: uint32(y)}},
	//     data,
	//     &gputypes.TextureDataLayout{BytesPerRow: uint32(width * bpp), RowsPerImage: uint32(height)},
	//     &gputypes.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1})
	_ = x
	_ = y
}

// CreateSampler creates a linear-filtering texture sampler.
func (d *WgpuDevice) CreateSampler(label string) (SamplerID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	// TODO(wgpu): core.CreateSampler(d.device, &gputypes.SamplerDescriptor{
	//     Label:     label,
	//     MagFilter: gputypes.FilterModeLinear,
	//     MinFilter: gputypes.FilterModeLinear,
	// })
	_ = label
	return SamplerID(d.allocID()), nil
}

// DestroySampler releases a sampler.
func (d *WgpuDevice) DestroySampler(id SamplerID) {
	// TODO(wgpu): core.SamplerDrop(samplerID)
	_ = id
}

// CreateBindGroupLayout creates a bind group layout.
func (d *WgpuDevice) CreateBindGroupLayout(desc *BindGroupLayoutDesc) (BindGroupLayoutID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	// TODO(wgpu): when the render-visibility layout surface lands,
	// route through halDevice.CreateBindGroupLayout with per-entry
	// types.BufferBindingLayout / texture / sampler layouts, the way
	// the compute path already does.
	_ = desc
	return BindGroupLayoutID(d.allocID()), nil
}

// DestroyBindGroupLayout releases a bind group layout.
func (d *WgpuDevice) DestroyBindGroupLayout(id BindGroupLayoutID) {
	_ = id
}

// CreatePipelineLayout creates a pipeline layout from bind group layouts.
func (d *WgpuDevice) CreatePipelineLayout(layouts []BindGroupLayoutID) (PipelineLayoutID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	// TODO(wgpu): halDevice.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{...})
	_ = layouts
	return PipelineLayoutID(d.allocID()), nil
}

// DestroyPipelineLayout releases a pipeline layout.
func (d *WgpuDevice) DestroyPipelineLayout(id PipelineLayoutID) {
	_ = id
}

// CreateRenderPipeline creates a render pipeline with premultiplied-
// alpha blending.
func (d *WgpuDevice) CreateRenderPipeline(desc *RenderPipelineDesc) (RenderPipelineID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.shaderModules[desc.ShaderModule]; !ok {
		return InvalidID, fmt.Errorf("gpu: render pipeline %q references unknown shader module", desc.Label)
	}

	// TODO(wgpu): when hal exposes render pipelines:
	// pipeline, err := d.halDevice.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
	//     Label:  desc.Label,
	//     Module: module,
	//     VertexEntry:   desc.VertexEntry,
	//     FragmentEntry: desc.FragmentEntry,
	//     Blend: premultiplied src*1 + dst*(1-src_alpha),
	// })
	return RenderPipelineID(d.allocID()), nil
}

// DestroyRenderPipeline releases a render pipeline.
func (d *WgpuDevice) DestroyRenderPipeline(id RenderPipelineID) {
	// TODO(wgpu): core.RenderPipelineDrop(pipelineID)
	_ = id
}

// CreateBindGroup creates a bind group.
func (d *WgpuDevice) CreateBindGroup(layout BindGroupLayoutID, entries []BindGroupEntry) (BindGroupID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	// TODO(wgpu): core.CreateBindGroup(d.device, layout, entries)
	_ = layout
	_ = entries
	return BindGroupID(d.allocID()), nil
}

// DestroyBindGroup releases a bind group.
func (d *WgpuDevice) DestroyBindGroup(id BindGroupID) {
	_ = id
}

// BeginRenderPass opens a render pass. Only one pass may be open at
// a time; a second Begin before End returns a no-op encoder.
func (d *WgpuDevice) BeginRenderPass(desc *RenderPassDesc) RenderPassEncoder {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.passOpen {
		log.Printf("gpu: BeginRenderPass while a pass is open")
		return &wgpuRenderPass{device: d, dead: true}
	}
	d.passOpen = true

	// TODO(wgpu): when core exposes render passes:
	// loadOp := gputypes.LoadOpLoad
	// if desc.Load == LoadOpClear {
	//     loadOp = gputypes.LoadOpClear
	// }
	// pass, _ := core.BeginRenderPass(d.encoder, &gputypes.RenderPassDescriptor{
	//     ColorAttachments: []gputypes.RenderPassColorAttachment{{
	//         View:       view,
	//         LoadOp:     loadOp,
	//         StoreOp:    gputypes.StoreOpStore,
	//         ClearValue: gputypes.Color{R: desc.Clear.R, G: desc.Clear.G, B: desc.Clear.B, A: desc.Clear.A},
	//     }},
	// })
	_ = desc

	return &wgpuRenderPass{device: d}
}

// Submit submits all recorded passes.
func (d *WgpuDevice) Submit() {
	// TODO(wgpu): buffer := core.FinishCommandEncoder(d.encoder)
	//             core.QueueSubmit(d.queue, []core.CommandBufferID{buffer})
}

// WaitIdle blocks until the GPU finishes submitted work.
func (d *WgpuDevice) WaitIdle() {
	// TODO(wgpu): core.DevicePoll(d.device, true)
}

// wgpuRenderPass records draw commands for one pass.
type wgpuRenderPass struct {
	device        *WgpuDevice
	dead          bool
	pipelineBound bool
}

func (p *wgpuRenderPass) SetPipeline(pipeline RenderPipelineID) {
	if p.dead {
		return
	}
	// TODO(wgpu): core.SetRenderPipeline(p.pass, pipeline)
	_ = pipeline
	p.pipelineBound = true
}

func (p *wgpuRenderPass) SetBindGroup(index uint32, group BindGroupID) {
	if p.dead {
		return
	}
	// TODO(wgpu): core.SetBindGroup(p.pass, index, group)
	_ = index
	_ = group
}

func (p *wgpuRenderPass) SetVertexBuffer(slot uint32, buffer BufferID) {
	if p.dead {
		return
	}
	// TODO(wgpu): core.SetVertexBuffer(p.pass, slot, buffer)
	_ = slot
	_ = buffer
}

func (p *wgpuRenderPass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	if p.dead || !p.pipelineBound {
		return
	}
	// TODO(wgpu): core.Draw(p.pass, vertexCount, instanceCount, firstVertex, firstInstance)
	_ = vertexCount
	_ = instanceCount
	_ = firstVertex
	_ = firstInstance
}

func (p *wgpuRenderPass) End() {
	if p.dead {
		return
	}
	// TODO(wgpu): core.EndRenderPass(p.pass)
	p.device.mu.Lock()
	p.device.passOpen = false
	p.device.mu.Unlock()
	p.dead = true
}

var _ Device = (*WgpuDevice)(nil)
