// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	"fmt"
	"image"
	"math"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/effects/geom"
	"github.com/gogpu/effects/render"
	"github.com/gogpu/effects/shaders"
)

// copyPitchAlignment is the required row pitch alignment of texture to
// buffer copies.
const copyPitchAlignment = 256

// Frame is a wgpu render.Frame.
//
// Draws are recorded into one command encoder and submitted by Finish.
// Frame is NOT thread-safe.
type Frame struct {
	renderer *Renderer
	target   *render.PixmapTarget
	finished bool

	texture   *Texture
	encoder   hal.CommandEncoder
	resources []drawResources
}

// drawResources holds the per-draw GPU objects, released on Finish.
type drawResources struct {
	vertBuf    hal.Buffer
	uniformBuf hal.Buffer
	bindGroup  hal.BindGroup
}

func (r *drawResources) destroy(device hal.Device) {
	if r.bindGroup != nil {
		device.DestroyBindGroup(r.bindGroup)
	}
	if r.uniformBuf != nil {
		device.DestroyBuffer(r.uniformBuf)
	}
	if r.vertBuf != nil {
		device.DestroyBuffer(r.vertBuf)
	}
}

// begin uploads the target into a render texture and opens the encoder.
func (f *Frame) begin() error {
	r := f.renderer
	w, h := f.target.Width(), f.target.Height()
	t, err := r.createTexture("effects_target", w, h,
		gputypes.TextureUsageRenderAttachment|gputypes.TextureUsageCopySrc|gputypes.TextureUsageCopyDst)
	if err != nil {
		return err
	}
	f.texture = t
	if err := r.writeTexture(t, packRows(f.target.Image())); err != nil {
		return err
	}

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "effects_frame_encoder",
	})
	if err != nil {
		return fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("effects_frame"); err != nil {
		return fmt.Errorf("wgpu: begin encoding: %w", err)
	}
	f.encoder = encoder
	return nil
}

// ContextID implements render.Frame.
func (f *Frame) ContextID() render.ContextID {
	return f.renderer.contextID
}

// Programs implements render.Frame.
func (f *Frame) Programs() *render.Programs {
	return f.renderer.programs
}

func (f *Frame) fail(op string, err error) error {
	return &render.BackendError{Backend: Name, Op: op, Err: err}
}

// RenderTextureFromTo implements render.Frame.
//
// The draw is a quad over dst sampling src bilinearly, scissored to the
// damaged pixels. Without a program the quad runs the BlurFinish program
// as a plain blit. Inside opaque regions the shaded pixel replaces the
// target pixel; elsewhere it is blended source-over.
func (f *Frame) RenderTextureFromTo(
	tex render.Texture,
	src geom.BufferRect,
	dst geom.PhysicalRect,
	damage, opaque []geom.PhysicalRect,
	transform geom.Transform,
	alpha float32,
	program *render.Program,
	uniforms []render.Uniform,
) error {
	const op = "render_texture"

	if f.finished {
		return f.fail(op, render.ErrFrameFinished)
	}

	t, ok := tex.(*Texture)
	if !ok || t.owner != f.renderer.contextID || t.view == nil {
		return f.fail(op, render.ErrUnsupportedTexture)
	}
	if transform != geom.Normal {
		return f.fail(op, render.ErrUnsupportedTransform)
	}

	prog, params, err := f.resolveProgram(program, uniforms, dst, alpha)
	if err != nil {
		return f.fail(op, err)
	}

	replace, blend := f.drawRects(t, src, dst, damage, opaque)
	if len(replace) == 0 && len(blend) == 0 {
		return nil
	}

	pl, err := f.renderer.ensurePipeline(prog)
	if err != nil {
		return f.fail("pipeline", err)
	}
	res, err := f.prepare(pl, t, f.quadFor(t, src, dst), params)
	if err != nil {
		return f.fail(op, err)
	}

	rp := f.encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "effects_render_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:    f.texture.view,
				LoadOp:  gputypes.LoadOpLoad,
				StoreOp: gputypes.StoreOpStore,
			},
		},
	})
	rp.SetBindGroup(0, res.bindGroup, nil)
	rp.SetVertexBuffer(0, res.vertBuf, 0)
	if len(replace) > 0 {
		rp.SetPipeline(pl.replace)
		drawScissored(rp, replace)
	}
	if len(blend) > 0 {
		rp.SetPipeline(pl.blend)
		drawScissored(rp, blend)
	}
	rp.End()
	return nil
}

// resolveProgram checks the draw's program and uniforms and returns the
// program to run with its uniform values. The frame alpha multiplies the
// program alpha.
func (f *Frame) resolveProgram(
	program *render.Program,
	uniforms []render.Uniform,
	dst geom.PhysicalRect,
	alpha float32,
) (*render.Program, shaders.BlurFinishUniforms, error) {
	if err := shaders.CheckUniforms(program, uniforms); err != nil {
		return nil, shaders.BlurFinishUniforms{}, err
	}
	if program == nil {
		p := f.renderer.programs.Get(shaders.BlurFinish)
		if p == nil {
			return nil, shaders.BlurFinishUniforms{}, fmt.Errorf("%w: %s", render.ErrUnknownProgram, shaders.BlurFinish)
		}
		return p, shaders.PlainUniforms(dst, alpha), nil
	}
	if program.Name != shaders.BlurFinish {
		return nil, shaders.BlurFinishUniforms{}, fmt.Errorf("%w: %s", render.ErrUnknownProgram, program.Name)
	}
	params, err := shaders.ParseBlurFinish(uniforms, dst)
	if err != nil {
		return nil, params, err
	}
	params.Alpha *= alpha
	return program, params, nil
}

// drawRects returns the disjoint target rectangles to draw, split into
// those inside opaque regions and the rest. damage and opaque are relative
// to dst. Pixels whose sample point falls outside t are left untouched.
func (f *Frame) drawRects(
	t *Texture,
	src geom.BufferRect,
	dst geom.PhysicalRect,
	damage, opaque []geom.PhysicalRect,
) (replace, blend []geom.PhysicalRect) {
	area := dst.Intersect(geom.PhysicalRectFromSize(f.target.Size()))
	area = area.Intersect(sampledArea(src, dst, t.width, t.height))
	if area.IsEmpty() || len(damage) == 0 {
		return nil, nil
	}

	origin := dst.Loc()
	clip := func(rects []geom.PhysicalRect) []geom.PhysicalRect {
		out := make([]geom.PhysicalRect, 0, len(rects))
		for _, r := range rects {
			if r = r.Translate(origin).Intersect(area); !r.IsEmpty() {
				out = append(out, r)
			}
		}
		return disjoint(out)
	}
	damaged := clip(damage)
	opaqueAbs := clip(opaque)

	for _, d := range damaged {
		for _, o := range opaqueAbs {
			if in := d.Intersect(o); !in.IsEmpty() {
				replace = append(replace, in)
			}
		}
		blend = append(blend, subtractAll([]geom.PhysicalRect{d}, opaqueAbs)...)
	}
	return replace, blend
}

// quadFor returns the clip-space quad over dst with the texture coordinates
// of src.
func (f *Frame) quadFor(t *Texture, src geom.BufferRect, dst geom.PhysicalRect) quad {
	tw, th := float32(f.target.Width()), float32(f.target.Height())
	return quad{
		x0: float32(dst.X)/tw*2 - 1,
		y0: 1 - float32(dst.Y)/th*2,
		x1: float32(dst.X+dst.W)/tw*2 - 1,
		y1: 1 - float32(dst.Y+dst.H)/th*2,
		u0: float32(src.X / float64(t.width)),
		v0: float32(src.Y / float64(t.height)),
		u1: float32((src.X + src.W) / float64(t.width)),
		v1: float32((src.Y + src.H) / float64(t.height)),
	}
}

// prepare uploads the vertex and uniform data of a draw and binds t.
func (f *Frame) prepare(pl *pipeline, t *Texture, q quad, params shaders.BlurFinishUniforms) (*drawResources, error) {
	r := f.renderer
	f.resources = append(f.resources, drawResources{})
	res := &f.resources[len(f.resources)-1]

	var err error
	res.vertBuf, err = r.createAndUploadBuffer("effects_vertices", q.vertices(), gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}
	res.uniformBuf, err = r.createAndUploadBuffer("effects_uniforms", params.Bytes(), gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}
	res.bindGroup, err = r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "effects_bind_group",
		Layout: pl.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: res.uniformBuf.NativeHandle(),
				Offset: 0,
				Size:   shaders.BlurFinishUniformSize,
			}},
			{Binding: 1, Resource: gputypes.TextureViewBinding{TextureView: t.view.NativeHandle()}},
			{Binding: 2, Resource: gputypes.SamplerBinding{Sampler: r.sampler.NativeHandle()}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create bind group: %w", err)
	}
	return res, nil
}

// createAndUploadBuffer creates a GPU buffer and uploads data.
func (r *Renderer) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	if err := r.queue.WriteBuffer(buf, 0, data); err != nil {
		r.device.DestroyBuffer(buf)
		return nil, fmt.Errorf("write %s: %w", label, err)
	}
	return buf, nil
}

func drawScissored(rp hal.RenderPassEncoder, rects []geom.PhysicalRect) {
	for _, r := range rects {
		rp.SetScissorRect(uint32(r.X), uint32(r.Y), uint32(r.W), uint32(r.H))
		rp.Draw(quadVertexCount, 1, 0, 0)
	}
}

// Finish implements render.Frame. It submits the recorded draws, waits for
// the device and copies the render texture into the target.
func (f *Frame) Finish() error {
	const op = "finish"

	if f.finished {
		return f.fail(op, render.ErrFrameFinished)
	}
	f.finished = true
	if f.encoder == nil {
		return nil
	}
	defer f.release()

	if err := f.readback(); err != nil {
		return f.fail(op, err)
	}
	return nil
}

// readback copies the render texture to a staging buffer, submits the
// frame and reads the pixels into the target.
func (f *Frame) readback() error {
	r := f.renderer
	w, h := f.texture.width, f.texture.height
	bytesPerRow := alignUp(w*4, copyPitchAlignment)
	size := uint64(bytesPerRow) * uint64(h)

	encoder := f.encoder
	f.encoder = nil

	stagingBuf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "effects_staging",
		Size:  size,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("create staging buffer: %w", err)
	}
	defer r.device.DestroyBuffer(stagingBuf)

	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: f.texture.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})
	encoder.CopyTextureToBuffer(f.texture.tex, stagingBuf, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: uint32(bytesPerRow), RowsPerImage: uint32(h)},
		TextureBase:  hal.ImageCopyTexture{Texture: f.texture.tex, MipLevel: 0, Aspect: gputypes.TextureAspectAll},
		Size:         hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	if _, err := r.queue.Submit([]hal.CommandBuffer{cmdBuf}); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	if err := r.device.WaitIdle(); err != nil {
		return fmt.Errorf("wait for GPU: %w", err)
	}

	mapping, err := r.device.MapBuffer(stagingBuf, 0, size)
	if err != nil {
		return fmt.Errorf("map staging buffer: %w", err)
	}
	data := unsafe.Slice((*byte)(mapping.Ptr), size) //nolint:gosec // mapping covers size bytes
	unpackRows(f.target.Image(), data, bytesPerRow)
	if err := r.device.UnmapBuffer(stagingBuf); err != nil {
		return fmt.Errorf("unmap staging buffer: %w", err)
	}
	return nil
}

// release frees the frame's GPU objects.
func (f *Frame) release() {
	device := f.renderer.device
	if f.encoder != nil {
		f.encoder.DiscardEncoding()
		f.encoder = nil
	}
	for i := range f.resources {
		f.resources[i].destroy(device)
	}
	f.resources = nil
	if f.texture != nil {
		f.texture.Destroy()
		f.texture = nil
	}
}

// sampledArea returns the pixels of dst whose sample point maps inside a
// w x h texture when src is stretched over dst.
func sampledArea(src geom.BufferRect, dst geom.PhysicalRect, w, h int) geom.PhysicalRect {
	if src.IsEmpty() || dst.IsEmpty() {
		return geom.PhysicalRect{}
	}
	sx := float64(dst.W) / src.W
	sy := float64(dst.H) / src.H
	// Pixel x is sampled at x+0.5, which must lie in [edge0, edge1).
	x0 := int(math.Ceil(float64(dst.X) - src.X*sx - 0.5))
	x1 := int(math.Ceil(float64(dst.X) + (float64(w)-src.X)*sx - 0.5))
	y0 := int(math.Ceil(float64(dst.Y) - src.Y*sy - 0.5))
	y1 := int(math.Ceil(float64(dst.Y) + (float64(h)-src.Y)*sy - 0.5))
	if x1 <= x0 || y1 <= y0 {
		return geom.PhysicalRect{}
	}
	return dst.Intersect(geom.PhysicalRect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0})
}

// disjoint returns rectangles covering the same pixels as rects with no
// two overlapping.
func disjoint(rects []geom.PhysicalRect) []geom.PhysicalRect {
	var out []geom.PhysicalRect
	for _, r := range rects {
		out = append(out, subtractAll([]geom.PhysicalRect{r}, out)...)
	}
	return out
}

// subtractAll removes every rectangle of cut from parts.
func subtractAll(parts, cut []geom.PhysicalRect) []geom.PhysicalRect {
	for _, c := range cut {
		next := make([]geom.PhysicalRect, 0, len(parts))
		for _, p := range parts {
			next = append(next, p.Subtract(c)...)
		}
		parts = next
	}
	return parts
}

// packRows returns the pixels of img as tightly packed RGBA rows.
func packRows(img *image.RGBA) []byte {
	b := img.Bounds()
	rowLen := b.Dx() * 4
	if img.Stride == rowLen && img.PixOffset(b.Min.X, b.Min.Y) == 0 {
		return img.Pix[:rowLen*b.Dy()]
	}
	out := make([]byte, rowLen*b.Dy())
	for y := 0; y < b.Dy(); y++ {
		off := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(out[y*rowLen:], img.Pix[off:off+rowLen])
	}
	return out
}

// unpackRows copies rows of bytesPerRow pitch from data into img.
func unpackRows(img *image.RGBA, data []byte, bytesPerRow int) {
	b := img.Bounds()
	rowLen := b.Dx() * 4
	for y := 0; y < b.Dy(); y++ {
		off := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(img.Pix[off:off+rowLen], data[y*bytesPerRow:y*bytesPerRow+rowLen])
	}
}

func alignUp(n, align int) int {
	return (n + align - 1) / align * align
}
