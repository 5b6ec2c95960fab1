package render

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/ui/internal/gpu"
)

//go:embed shaders/quad.wgsl
var quadWGSL string

//go:embed shaders/shadow.wgsl
var shadowWGSL string

//go:embed shaders/underline.wgsl
var underlineWGSL string

//go:embed shaders/path_rasterization.wgsl
var pathRasterizationWGSL string

//go:embed shaders/path_composite.wgsl
var pathCompositeWGSL string

//go:embed shaders/sprite_mono.wgsl
var spriteMonoWGSL string

//go:embed shaders/sprite_poly.wgsl
var spritePolyWGSL string

// pipelines holds the render pipelines and the bind group layouts they
// were built against.
type pipelines struct {
	quad              gpu.RenderPipelineID
	shadow            gpu.RenderPipelineID
	underline         gpu.RenderPipelineID
	pathRasterization gpu.RenderPipelineID
	pathComposite     gpu.RenderPipelineID
	monoSprite        gpu.RenderPipelineID
	polySprite        gpu.RenderPipelineID

	// primitiveLayout is shared by quads, shadows, underlines, and
	// path rasterization: binding 0 is the globals uniform, binding 1
	// the instance (or vertex) storage buffer.
	primitiveLayout gpu.BindGroupLayoutID

	// textureLayout extends primitiveLayout with a sampled texture at
	// binding 2 and a sampler at binding 3. Used by path compositing
	// and both sprite pipelines.
	textureLayout gpu.BindGroupLayoutID
}

func newPipelines(dev gpu.Device, surfaceFormat gpu.TextureFormat) (*pipelines, error) {
	p := &pipelines{}

	var err error
	p.primitiveLayout, err = dev.CreateBindGroupLayout(&gpu.BindGroupLayoutDesc{
		Label: "primitive_bind_group_layout",
		Entries: []gpu.BindGroupLayoutEntry{
			{Binding: 0, Type: gpu.BindingTypeUniformBuffer, MinBindingSize: globalsStride},
			{Binding: 1, Type: gpu.BindingTypeReadOnlyStorageBuffer},
		},
	})
	if err != nil {
		return nil, err
	}
	p.textureLayout, err = dev.CreateBindGroupLayout(&gpu.BindGroupLayoutDesc{
		Label: "texture_bind_group_layout",
		Entries: []gpu.BindGroupLayoutEntry{
			{Binding: 0, Type: gpu.BindingTypeUniformBuffer, MinBindingSize: globalsStride},
			{Binding: 1, Type: gpu.BindingTypeReadOnlyStorageBuffer},
			{Binding: 2, Type: gpu.BindingTypeSampledTexture},
			{Binding: 3, Type: gpu.BindingTypeSampler},
		},
	})
	if err != nil {
		return nil, err
	}

	build := func(label, source string, layout gpu.BindGroupLayoutID, format gpu.TextureFormat) (gpu.RenderPipelineID, error) {
		words, err := gpu.CompileWGSL(source)
		if err != nil {
			return gpu.InvalidID, fmt.Errorf("render: compile %s shader: %w", label, err)
		}
		module, err := dev.CreateShaderModule(words, label+"_shader")
		if err != nil {
			return gpu.InvalidID, fmt.Errorf("render: create %s shader module: %w", label, err)
		}
		pipelineLayout, err := dev.CreatePipelineLayout([]gpu.BindGroupLayoutID{layout})
		if err != nil {
			return gpu.InvalidID, err
		}
		return dev.CreateRenderPipeline(&gpu.RenderPipelineDesc{
			Label:         label,
			Layout:        pipelineLayout,
			ShaderModule:  module,
			VertexEntry:   "vs_main",
			FragmentEntry: "fs_main",
			TargetFormat:  format,
		})
	}

	if p.quad, err = build("quad", quadWGSL, p.primitiveLayout, surfaceFormat); err != nil {
		return nil, err
	}
	if p.shadow, err = build("shadow", shadowWGSL, p.primitiveLayout, surfaceFormat); err != nil {
		return nil, err
	}
	if p.underline, err = build("underline", underlineWGSL, p.primitiveLayout, surfaceFormat); err != nil {
		return nil, err
	}
	if p.pathRasterization, err = build("path_rasterization", pathRasterizationWGSL, p.primitiveLayout, gpu.TextureFormatRGBA16Float); err != nil {
		return nil, err
	}
	if p.pathComposite, err = build("path_composite", pathCompositeWGSL, p.textureLayout, surfaceFormat); err != nil {
		return nil, err
	}
	if p.monoSprite, err = build("monochrome_sprite", spriteMonoWGSL, p.textureLayout, surfaceFormat); err != nil {
		return nil, err
	}
	if p.polySprite, err = build("polychrome_sprite", spritePolyWGSL, p.textureLayout, surfaceFormat); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *pipelines) release(dev gpu.Device) {
	for _, id := range []gpu.RenderPipelineID{
		p.quad, p.shadow, p.underline,
		p.pathRasterization, p.pathComposite,
		p.monoSprite, p.polySprite,
	} {
		if id != gpu.InvalidID {
			dev.DestroyRenderPipeline(id)
		}
	}
	if p.primitiveLayout != gpu.InvalidID {
		dev.DestroyBindGroupLayout(p.primitiveLayout)
	}
	if p.textureLayout != gpu.InvalidID {
		dev.DestroyBindGroupLayout(p.textureLayout)
	}
}
