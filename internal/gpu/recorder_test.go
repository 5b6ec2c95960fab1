package gpu

import "testing"

func TestRecordingDeviceCapturesDraws(t *testing.T) {
	d := NewRecordingDevice()

	module, err := d.CreateShaderModule(nil, "test")
	if err != nil {
		t.Fatalf("CreateShaderModule: %v", err)
	}
	pipeline, err := d.CreateRenderPipeline(&RenderPipelineDesc{Label: "quads", ShaderModule: module})
	if err != nil {
		t.Fatalf("CreateRenderPipeline: %v", err)
	}
	target, err := d.CreateTexture(&TextureDesc{Width: 64, Height: 64, Format: TextureFormatBGRA8Unorm})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}

	pass := d.BeginRenderPass(&RenderPassDesc{Target: target, Load: LoadOpClear})
	pass.SetPipeline(pipeline)
	pass.Draw(6, 3, 0, 0)
	pass.End()
	d.Submit()

	if len(d.Passes) != 1 {
		t.Fatalf("recorded %d passes, want 1", len(d.Passes))
	}
	draws := d.Passes[0].Draws
	if len(draws) != 1 {
		t.Fatalf("recorded %d draws, want 1", len(draws))
	}
	if draws[0].Pipeline != "quads" || draws[0].InstanceCount != 3 || draws[0].VertexCount != 6 {
		t.Errorf("draw = %+v, want quads pipeline, 6 vertices, 3 instances", draws[0])
	}
	if d.Submits != 1 {
		t.Errorf("submits = %d, want 1", d.Submits)
	}
}

func TestRecordingDeviceBufferWrites(t *testing.T) {
	d := NewRecordingDevice()
	buf, err := d.CreateBuffer(16, BufferUsageUniform|BufferUsageCopyDst)
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}

	d.WriteBuffer(buf, 4, []byte{1, 2, 3, 4})
	b := d.Buffers[buf]
	if b.Writes != 1 {
		t.Errorf("writes = %d, want 1", b.Writes)
	}
	if b.Data[4] != 1 || b.Data[7] != 4 {
		t.Errorf("buffer contents not written: %v", b.Data)
	}

	// Overflowing writes are dropped.
	d.WriteBuffer(buf, 14, []byte{1, 2, 3, 4})
	if b.Writes != 1 {
		t.Errorf("overflowing write should be ignored")
	}
}
