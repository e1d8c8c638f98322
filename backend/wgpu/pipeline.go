// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/effects/render"
)

// quadVertexStride is the byte stride per vertex of a textured quad.
// Layout per vertex:
//
//	position (vec2<f32>) = 8 bytes (location 0, clip space)
//	uv       (vec2<f32>) = 8 bytes (location 1)
const quadVertexStride = 16

// quadVertexCount is the vertex count of a quad drawn as two triangles.
const quadVertexCount = 6

// targetFormat is the format of frame render textures and uploaded
// textures. It matches the byte order of *image.RGBA.
const targetFormat = gputypes.TextureFormatRGBA8Unorm

// pipeline holds the GPU objects of one shader program.
//
// blend draws source-over with premultiplied alpha; replace writes the
// shaded pixel as is and is used inside opaque regions.
type pipeline struct {
	device hal.Device

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	blend      hal.RenderPipeline
	replace    hal.RenderPipeline
}

// newPipeline creates the pipeline objects for p. source selects between
// the program's WGSL text and its compiled SPIR-V.
func newPipeline(device hal.Device, p *render.Program, source hal.ShaderSource) (*pipeline, error) {
	pl := &pipeline{device: device}
	if err := pl.create(p.Name, source); err != nil {
		pl.destroy()
		return nil, err
	}
	return pl, nil
}

func (pl *pipeline) create(name string, source hal.ShaderSource) error {
	if source.WGSL == "" && len(source.SPIRV) == 0 {
		return fmt.Errorf("%s shader source is empty", name)
	}

	shader, err := pl.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  name + "_shader",
		Source: source,
	})
	if err != nil {
		return fmt.Errorf("compile %s shader: %w", name, err)
	}
	pl.shader = shader

	bindLayout, err := pl.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: name + "_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create %s bind group layout: %w", name, err)
	}
	pl.bindLayout = bindLayout

	pipeLayout, err := pl.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            name + "_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{pl.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create %s pipeline layout: %w", name, err)
	}
	pl.pipeLayout = pipeLayout

	premulBlend := gputypes.BlendStatePremultiplied()
	if pl.blend, err = pl.createRenderPipeline(name+"_blend", &premulBlend); err != nil {
		return fmt.Errorf("create %s pipeline: %w", name, err)
	}
	if pl.replace, err = pl.createRenderPipeline(name+"_replace", nil); err != nil {
		return fmt.Errorf("create %s replace pipeline: %w", name, err)
	}
	return nil
}

func (pl *pipeline) createRenderPipeline(label string, blend *gputypes.BlendState) (hal.RenderPipeline, error) {
	return pl.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  label,
		Layout: pl.pipeLayout,
		Vertex: hal.VertexState{
			Module:     pl.shader,
			EntryPoint: "vs_main",
			Buffers:    quadVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     pl.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    targetFormat,
					Blend:     blend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
}

// destroy releases all pipeline resources in reverse creation order.
func (pl *pipeline) destroy() {
	if pl.device == nil {
		return
	}
	if pl.replace != nil {
		pl.device.DestroyRenderPipeline(pl.replace)
		pl.replace = nil
	}
	if pl.blend != nil {
		pl.device.DestroyRenderPipeline(pl.blend)
		pl.blend = nil
	}
	if pl.pipeLayout != nil {
		pl.device.DestroyPipelineLayout(pl.pipeLayout)
		pl.pipeLayout = nil
	}
	if pl.bindLayout != nil {
		pl.device.DestroyBindGroupLayout(pl.bindLayout)
		pl.bindLayout = nil
	}
	if pl.shader != nil {
		pl.device.DestroyShaderModule(pl.shader)
		pl.shader = nil
	}
}

// shaderSource picks the module source of p for a HAL backend. Backends
// that consume SPIR-V get the compiled program when available.
func shaderSource(p *render.Program, variant gputypes.Backend) hal.ShaderSource {
	switch variant {
	case gputypes.BackendVulkan, gputypes.BackendDX12, gputypes.BackendEmpty:
		if p.Compiled() {
			return hal.ShaderSource{SPIRV: p.SPIRV}
		}
	}
	return hal.ShaderSource{WGSL: p.Source}
}

// quadVertexLayout returns the vertex buffer layout of a textured quad.
func quadVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: quadVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1}, // uv
			},
		},
	}
}

// quad holds the corners of a textured quad: clip-space position and
// texture coordinates, top-left and bottom-right.
type quad struct {
	x0, y0, x1, y1 float32
	u0, v0, u1, v1 float32
}

// vertices returns the two triangles of q in quadVertexLayout.
func (q quad) vertices() []byte {
	buf := make([]byte, quadVertexCount*quadVertexStride)
	corners := [quadVertexCount][4]float32{
		{q.x0, q.y0, q.u0, q.v0},
		{q.x1, q.y0, q.u1, q.v0},
		{q.x0, q.y1, q.u0, q.v1},
		{q.x0, q.y1, q.u0, q.v1},
		{q.x1, q.y0, q.u1, q.v0},
		{q.x1, q.y1, q.u1, q.v1},
	}
	for i, c := range corners {
		writeQuadVertex(buf[i*quadVertexStride:], c)
	}
	return buf
}

// writeQuadVertex writes a single vertex: position then uv.
func writeQuadVertex(buf []byte, v [4]float32) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(v[3]))
}
