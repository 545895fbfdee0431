package pipeline

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/mkualquiera/webengine"
	"github.com/mkualquiera/webengine/shader"
)

// RenderSystem owns the engine's render pipeline and everything a frame
// needs: shader module, bind group layouts, uniform bindings, the unit
// square geometry, and an offscreen color target sized to the surface.
//
// The pipeline is fixed-function by design: triangle lists, CCW front
// faces with back-face culling, no blending (output replaces the target),
// no depth/stencil, one sample.
type RenderSystem struct {
	dev *Device
	cfg config

	shader          hal.ShaderModule
	transformLayout hal.BindGroupLayout
	colorLayout     hal.BindGroupLayout
	pipeLayout      hal.PipelineLayout
	pipeline        hal.RenderPipeline

	transform *TransformBinding
	color     *ColorBinding

	square *GeometryBuffers

	target     hal.Texture
	targetView hal.TextureView

	width, height uint32
}

// NewRenderSystem creates the full pipeline against the given device and
// an offscreen render target of the given size.
func NewRenderSystem(dev *Device, width, height uint32, opts ...Option) (*RenderSystem, error) {
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("create render system: size %dx%d is empty", width, height)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	rs := &RenderSystem{dev: dev, cfg: cfg}
	if err := rs.createPipeline(); err != nil {
		rs.Destroy()
		return nil, err
	}
	if err := rs.createResources(); err != nil {
		rs.Destroy()
		return nil, err
	}
	if err := rs.createTarget(width, height); err != nil {
		rs.Destroy()
		return nil, err
	}

	// Uniform defaults: pixel-space orthographic transform, white tint.
	rs.transform.Write(dev.Queue, rs.Ortho())
	rs.color.Write(dev.Queue, webengine.White)

	webengine.Logger().Debug("render system created",
		"size", fmt.Sprintf("%dx%d", width, height), "label", cfg.label)
	return rs, nil
}

func (rs *RenderSystem) createPipeline() error {
	device := rs.dev.Device

	src, err := shader.Source()
	if err != nil {
		return err
	}
	if err := ValidateContract(src); err != nil {
		return err
	}

	module, err := shader.NewModule(device, rs.cfg.label+"_shader")
	if err != nil {
		return err
	}
	rs.shader = module

	transformLayout, err := device.CreateBindGroupLayout(TransformLayoutDesc(rs.cfg.label))
	if err != nil {
		return fmt.Errorf("create transform layout: %w", err)
	}
	rs.transformLayout = transformLayout

	colorLayout, err := device.CreateBindGroupLayout(ColorLayoutDesc(rs.cfg.label))
	if err != nil {
		return fmt.Errorf("create color layout: %w", err)
	}
	rs.colorLayout = colorLayout

	// Slice order is group order: transform at 0, color at 1.
	pipeLayout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            rs.cfg.label + "_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{rs.transformLayout, rs.colorLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	rs.pipeLayout = pipeLayout

	pipeline, err := device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  rs.cfg.label + "_pipeline",
		Layout: rs.pipeLayout,
		Vertex: hal.VertexState{
			Module:     rs.shader,
			EntryPoint: shader.VertexEntryPoint,
			Buffers:    VertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     rs.shader,
			EntryPoint: shader.FragmentEntryPoint,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    rs.cfg.format,
					Blend:     nil, // no blending: fragment output replaces the target
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology:  gputypes.PrimitiveTopologyTriangleList,
			FrontFace: gputypes.FrontFaceCCW,
			CullMode:  gputypes.CullModeBack,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create render pipeline: %w", err)
	}
	rs.pipeline = pipeline
	return nil
}

func (rs *RenderSystem) createResources() error {
	device, queue := rs.dev.Device, rs.dev.Queue

	transform, err := NewTransformBinding(device, rs.transformLayout, rs.cfg.label)
	if err != nil {
		return err
	}
	rs.transform = transform

	color, err := NewColorBinding(device, rs.colorLayout, rs.cfg.label)
	if err != nil {
		return err
	}
	rs.color = color

	square, err := UploadMesh(device, queue, rs.cfg.label+"_square", webengine.UnitSquare())
	if err != nil {
		return err
	}
	rs.square = square
	return nil
}

func (rs *RenderSystem) createTarget(width, height uint32) error {
	device := rs.dev.Device

	target, err := device.CreateTexture(&hal.TextureDescriptor{
		Label: rs.cfg.label + "_target",
		Size: hal.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        rs.cfg.format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create render target: %w", err)
	}
	rs.target = target

	view, err := device.CreateTextureView(target, &hal.TextureViewDescriptor{
		Label: rs.cfg.label + "_target_view",
	})
	if err != nil {
		return fmt.Errorf("create render target view: %w", err)
	}
	rs.targetView = view

	rs.width = width
	rs.height = height
	return nil
}

// Resize replaces the offscreen render target. A no-op when the size is
// unchanged.
func (rs *RenderSystem) Resize(width, height uint32) error {
	if width == 0 || height == 0 {
		return fmt.Errorf("resize render target: size %dx%d is empty", width, height)
	}
	if width == rs.width && height == rs.height {
		return nil
	}
	rs.destroyTarget()
	return rs.createTarget(width, height)
}

// Size returns the render target dimensions.
func (rs *RenderSystem) Size() (uint32, uint32) {
	return rs.width, rs.height
}

// Ortho returns the pixel-space orthographic transform for the current
// target size. It is the default transform of Drawer.Draw.
func (rs *RenderSystem) Ortho() webengine.Transform {
	return webengine.Orthographic(float32(rs.width), float32(rs.height))
}

// Square returns the prebaked unit square geometry buffers.
func (rs *RenderSystem) Square() *GeometryBuffers {
	return rs.square
}

func (rs *RenderSystem) destroyTarget() {
	device := rs.dev.Device
	if rs.targetView != nil {
		device.DestroyTextureView(rs.targetView)
		rs.targetView = nil
	}
	if rs.target != nil {
		device.DestroyTexture(rs.target)
		rs.target = nil
	}
}

// Destroy releases all GPU resources in reverse creation order. Safe to
// call multiple times or on a partially constructed system.
func (rs *RenderSystem) Destroy() {
	device := rs.dev.Device
	if device == nil {
		return
	}
	rs.destroyTarget()
	if rs.square != nil {
		rs.square.Destroy(device)
		rs.square = nil
	}
	if rs.color != nil {
		rs.color.Destroy(device)
		rs.color = nil
	}
	if rs.transform != nil {
		rs.transform.Destroy(device)
		rs.transform = nil
	}
	if rs.pipeline != nil {
		device.DestroyRenderPipeline(rs.pipeline)
		rs.pipeline = nil
	}
	if rs.pipeLayout != nil {
		device.DestroyPipelineLayout(rs.pipeLayout)
		rs.pipeLayout = nil
	}
	if rs.colorLayout != nil {
		device.DestroyBindGroupLayout(rs.colorLayout)
		rs.colorLayout = nil
	}
	if rs.transformLayout != nil {
		device.DestroyBindGroupLayout(rs.transformLayout)
		rs.transformLayout = nil
	}
	if rs.shader != nil {
		device.DestroyShaderModule(rs.shader)
		rs.shader = nil
	}
}
