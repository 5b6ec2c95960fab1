package gpu

import "fmt"

// RecordingDevice implements Device entirely in memory, recording
// every pass and draw call. The renderer tests assert against the
// recorded command stream instead of a live GPU.
//
// Not safe for concurrent use; rendering records single-threaded.
type RecordingDevice struct {
	nextID uint64

	Buffers   map[BufferID]*RecordedBuffer
	Textures  map[TextureID]*RecordedTexture
	Pipelines map[RenderPipelineID]RenderPipelineDesc

	Passes  []*RecordedPass
	Submits int

	current *RecordedPass
}

// RecordedBuffer tracks one buffer's allocation and last write.
type RecordedBuffer struct {
	Size   int
	Usage  BufferUsage
	Data   []byte
	Writes int
}

// RecordedTexture tracks one texture's allocation and uploads.
type RecordedTexture struct {
	Desc      TextureDesc
	Writes    int
	Destroyed bool
}

// RecordedPass is one render pass with its draws in order.
type RecordedPass struct {
	Desc  RenderPassDesc
	Draws []RecordedDraw
	Ended bool
}

// RecordedDraw is one draw call with the pipeline bound at the time.
type RecordedDraw struct {
	Pipeline      string
	VertexCount   uint32
	InstanceCount uint32
	FirstVertex   uint32
	FirstInstance uint32
}

// NewRecordingDevice returns an empty recording device.
func NewRecordingDevice() *RecordingDevice {
	return &RecordingDevice{
		Buffers:   make(map[BufferID]*RecordedBuffer),
		Textures:  make(map[TextureID]*RecordedTexture),
		Pipelines: make(map[RenderPipelineID]RenderPipelineDesc),
	}
}

func (d *RecordingDevice) allocID() uint64 {
	d.nextID++
	return d.nextID
}

func (d *RecordingDevice) CreateShaderModule(spirv []uint32, label string) (ShaderModuleID, error) {
	return ShaderModuleID(d.allocID()), nil
}

func (d *RecordingDevice) DestroyShaderModule(id ShaderModuleID) {}

func (d *RecordingDevice) CreateBuffer(size int, usage BufferUsage) (BufferID, error) {
	if size <= 0 {
		return InvalidID, fmt.Errorf("gpu: invalid buffer size %d", size)
	}
	id := BufferID(d.allocID())
	d.Buffers[id] = &RecordedBuffer{Size: size, Usage: usage, Data: make([]byte, size)}
	return id, nil
}

func (d *RecordingDevice) DestroyBuffer(id BufferID) {
	delete(d.Buffers, id)
}

func (d *RecordingDevice) WriteBuffer(id BufferID, offset uint64, data []byte) {
	b, ok := d.Buffers[id]
	if !ok || int(offset)+len(data) > b.Size {
		return
	}
	copy(b.Data[offset:], data)
	b.Writes++
}

func (d *RecordingDevice) CreateTexture(desc *TextureDesc) (TextureID, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return InvalidID, fmt.Errorf("gpu: invalid texture size %dx%d", desc.Width, desc.Height)
	}
	id := TextureID(d.allocID())
	d.Textures[id] = &RecordedTexture{Desc: *desc}
	return id, nil
}

func (d *RecordingDevice) DestroyTexture(id TextureID) {
	if t, ok := d.Textures[id]; ok {
		t.Destroyed = true
	}
}

func (d *RecordingDevice) WriteTexture(id TextureID, x, y, width, height int, data []byte) {
	if t, ok := d.Textures[id]; ok && !t.Destroyed {
		t.Writes++
	}
}

func (d *RecordingDevice) CreateSampler(label string) (SamplerID, error) {
	return SamplerID(d.allocID()), nil
}

func (d *RecordingDevice) DestroySampler(id SamplerID) {}

func (d *RecordingDevice) CreateBindGroupLayout(desc *BindGroupLayoutDesc) (BindGroupLayoutID, error) {
	return BindGroupLayoutID(d.allocID()), nil
}

func (d *RecordingDevice) DestroyBindGroupLayout(id BindGroupLayoutID) {}

func (d *RecordingDevice) CreatePipelineLayout(layouts []BindGroupLayoutID) (PipelineLayoutID, error) {
	return PipelineLayoutID(d.allocID()), nil
}

func (d *RecordingDevice) DestroyPipelineLayout(id PipelineLayoutID) {}

func (d *RecordingDevice) CreateRenderPipeline(desc *RenderPipelineDesc) (RenderPipelineID, error) {
	id := RenderPipelineID(d.allocID())
	d.Pipelines[id] = *desc
	return id, nil
}

func (d *RecordingDevice) DestroyRenderPipeline(id RenderPipelineID) {
	delete(d.Pipelines, id)
}

func (d *RecordingDevice) CreateBindGroup(layout BindGroupLayoutID, entries []BindGroupEntry) (BindGroupID, error) {
	return BindGroupID(d.allocID()), nil
}

func (d *RecordingDevice) DestroyBindGroup(id BindGroupID) {}

func (d *RecordingDevice) BeginRenderPass(desc *RenderPassDesc) RenderPassEncoder {
	pass := &RecordedPass{Desc: *desc}
	d.Passes = append(d.Passes, pass)
	d.current = pass
	return &recordingPass{device: d, pass: pass}
}

func (d *RecordingDevice) Submit() {
	d.Submits++
}

func (d *RecordingDevice) WaitIdle() {}

// AllDraws returns every recorded draw across passes, in order.
func (d *RecordingDevice) AllDraws() []RecordedDraw {
	var draws []RecordedDraw
	for _, p := range d.Passes {
		draws = append(draws, p.Draws...)
	}
	return draws
}

type recordingPass struct {
	device   *RecordingDevice
	pass     *RecordedPass
	pipeline string
}

func (p *recordingPass) SetPipeline(pipeline RenderPipelineID) {
	p.pipeline = p.device.Pipelines[pipeline].Label
}

func (p *recordingPass) SetBindGroup(index uint32, group BindGroupID) {}

func (p *recordingPass) SetVertexBuffer(slot uint32, buffer BufferID) {}

func (p *recordingPass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	if p.pass.Ended {
		return
	}
	p.pass.Draws = append(p.pass.Draws, RecordedDraw{
		Pipeline:      p.pipeline,
		VertexCount:   vertexCount,
		InstanceCount: instanceCount,
		FirstVertex:   firstVertex,
		FirstInstance: firstInstance,
	})
}

func (p *recordingPass) End() {
	p.pass.Ended = true
}

var _ Device = (*RecordingDevice)(nil)
