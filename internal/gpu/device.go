package gpu

// Device abstracts the GPU operations the renderer records during a
// frame. Implementations maintain the mapping between opaque IDs and
// backend resources.
//
// Resource lifecycle:
//   - Resources are created via Create* methods
//   - Resources must be explicitly destroyed via Destroy* methods
//   - IDs become invalid after destruction and must not be reused
//
// Frame discipline: one encoder per frame. Passes are recorded via
// BeginRenderPass/End, then Submit executes everything recorded since
// the previous Submit.
type Device interface {
	// CreateShaderModule creates a shader module from SPIR-V bytecode.
	// The SPIR-V is produced by naga from WGSL before being passed here.
	CreateShaderModule(spirv []uint32, label string) (ShaderModuleID, error)
	DestroyShaderModule(id ShaderModuleID)

	// CreateBuffer creates a GPU buffer of size bytes.
	CreateBuffer(size int, usage BufferUsage) (BufferID, error)
	DestroyBuffer(id BufferID)

	// WriteBuffer copies data into a buffer at offset.
	WriteBuffer(id BufferID, offset uint64, data []byte)

	CreateTexture(desc *TextureDesc) (TextureID, error)
	DestroyTexture(id TextureID)

	// WriteTexture copies tightly packed pixels into a sub-region of
	// a texture. len(data) must be width*height*BytesPerPixel.
	WriteTexture(id TextureID, x, y, width, height int, data []byte)

	CreateSampler(label string) (SamplerID, error)
	DestroySampler(id SamplerID)

	CreateBindGroupLayout(desc *BindGroupLayoutDesc) (BindGroupLayoutID, error)
	DestroyBindGroupLayout(id BindGroupLayoutID)

	CreatePipelineLayout(layouts []BindGroupLayoutID) (PipelineLayoutID, error)
	DestroyPipelineLayout(id PipelineLayoutID)

	CreateRenderPipeline(desc *RenderPipelineDesc) (RenderPipelineID, error)
	DestroyRenderPipeline(id RenderPipelineID)

	CreateBindGroup(layout BindGroupLayoutID, entries []BindGroupEntry) (BindGroupID, error)
	DestroyBindGroup(id BindGroupID)

	// BeginRenderPass opens a render pass targeting desc.Target.
	// Only one pass may be open at a time.
	BeginRenderPass(desc *RenderPassDesc) RenderPassEncoder

	// Submit executes all passes recorded since the last Submit.
	Submit()

	// WaitIdle blocks until submitted work completes. Use sparingly.
	WaitIdle()
}

// RenderPassEncoder records draw commands for one render pass.
// Single-use: no commands may be recorded after End.
type RenderPassEncoder interface {
	SetPipeline(pipeline RenderPipelineID)
	SetBindGroup(index uint32, group BindGroupID)
	SetVertexBuffer(slot uint32, buffer BufferID)

	// Draw issues an instanced draw of vertexCount vertices.
	Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32)

	End()
}
