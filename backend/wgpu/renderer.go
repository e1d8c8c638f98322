// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"golang.org/x/image/draw"

	"github.com/gogpu/effects"
	"github.com/gogpu/effects/backend"
	"github.com/gogpu/effects/render"
	"github.com/gogpu/effects/shaders"
)

// Name is the registry name of the wgpu backend.
const Name = "wgpu"

var (
	// ErrNilTarget is returned by BeginFrame for a nil target.
	ErrNilTarget = errors.New("wgpu: nil target")

	// ErrEmptyImage is returned by Upload for an image with no pixels.
	ErrEmptyImage = errors.New("wgpu: empty image")

	// ErrDestroyed is returned by a renderer after Destroy.
	ErrDestroyed = errors.New("wgpu: renderer destroyed")
)

func init() {
	backend.Register(Name, func() backend.Renderer {
		d, err := openFirst()
		if err != nil {
			effects.Logger().Debug("wgpu: no GPU device", slog.Any("error", err))
			return nil
		}
		r, err := NewRenderer(d, withOwnedDevice(d))
		if err != nil {
			d.Close()
			effects.Logger().Warn("wgpu: renderer setup failed", slog.Any("error", err))
			return nil
		}
		return r
	})
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithVariant sets the HAL backend of the device. It selects the shader
// module source. By default the variant is read from the device handle if
// it reports one, and WGSL is used otherwise.
func WithVariant(v gputypes.Backend) Option {
	return func(r *Renderer) {
		r.variant = v
		r.variantSet = true
	}
}

// withOwnedDevice makes the renderer close d on Destroy.
func withOwnedDevice(d *Device) Option {
	return func(r *Renderer) {
		r.owned = d
	}
}

// Renderer is the wgpu backend renderer.
//
// A Renderer owns one GPU context on a host device: textures it creates can
// only be drawn by frames it begins. Renderer is NOT thread-safe.
type Renderer struct {
	contextID  render.ContextID
	handle     render.DeviceHandle
	device     hal.Device
	queue      hal.Queue
	variant    gputypes.Backend
	variantSet bool
	owned      *Device

	programs  *render.Programs
	sampler   hal.Sampler
	pipelines map[string]*pipeline
	destroyed bool
}

// NewRenderer creates a renderer drawing with the HAL device of d.
// The effect shader programs are installed and compiled to SPIR-V; if
// compilation fails the programs are used as WGSL.
func NewRenderer(d render.DeviceHandle, opts ...Option) (*Renderer, error) {
	device, queue, err := halFrom(d)
	if err != nil {
		return nil, err
	}
	r := &Renderer{
		contextID: render.NewContextID(),
		handle:    d,
		device:    device,
		queue:     queue,
		programs:  render.NewPrograms(),
		pipelines: make(map[string]*pipeline),
	}
	if vp, ok := d.(variantProvider); ok {
		r.variant = vp.Variant()
		r.variantSet = true
	}
	for _, opt := range opts {
		opt(r)
	}

	shaders.Install(r.programs)
	if err := shaders.CompileAll(r.programs); err != nil {
		effects.Logger().Warn("wgpu: shader compilation failed, using WGSL",
			slog.Any("error", err))
	}

	sampler, err := r.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "effects_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create sampler: %w", err)
	}
	r.sampler = sampler
	return r, nil
}

// Name implements backend.Renderer.
func (r *Renderer) Name() string {
	return Name
}

// Device implements backend.Renderer.
func (r *Renderer) Device() render.DeviceHandle {
	return r.handle
}

// ContextID implements render.Renderer.
func (r *Renderer) ContextID() render.ContextID {
	return r.contextID
}

// Programs returns the renderer's shader programs.
func (r *Renderer) Programs() *render.Programs {
	return r.programs
}

// Destroy releases the renderer's GPU objects. A device opened by the
// backend registry is closed as well. Safe to call multiple times.
func (r *Renderer) Destroy() {
	if r.destroyed {
		return
	}
	r.destroyed = true
	for name, pl := range r.pipelines {
		pl.destroy()
		delete(r.pipelines, name)
	}
	if r.sampler != nil {
		r.device.DestroySampler(r.sampler)
		r.sampler = nil
	}
	if r.owned != nil {
		r.owned.Close()
		r.owned = nil
	}
}

// ensurePipeline returns the pipeline of p, creating it on first use.
func (r *Renderer) ensurePipeline(p *render.Program) (*pipeline, error) {
	if pl, ok := r.pipelines[p.Name]; ok {
		return pl, nil
	}
	source := hal.ShaderSource{WGSL: p.Source}
	if r.variantSet {
		source = shaderSource(p, r.variant)
	}
	pl, err := newPipeline(r.device, p, source)
	if err != nil {
		return nil, err
	}
	r.pipelines[p.Name] = pl
	return pl, nil
}

// NewTexture uploads img into a texture owned by this renderer.
func (r *Renderer) NewTexture(img image.Image) (*Texture, error) {
	if r.destroyed {
		return nil, ErrDestroyed
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, ErrEmptyImage
	}
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Rect.Min != (image.Point{}) || rgba.Stride != b.Dx()*4 {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}

	t, err := r.createTexture("effects_texture", b.Dx(), b.Dy(),
		gputypes.TextureUsageTextureBinding|gputypes.TextureUsageCopyDst)
	if err != nil {
		return nil, err
	}
	if err := r.writeTexture(t, rgba.Pix); err != nil {
		t.Destroy()
		return nil, err
	}
	return t, nil
}

// Upload implements backend.TextureUploader.
func (r *Renderer) Upload(img image.Image) (render.Texture, error) {
	t, err := r.NewTexture(img)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *Renderer) createTexture(label string, w, h int, usage gputypes.TextureUsage) (*Texture, error) {
	tex, err := r.device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        targetFormat,
		Usage:         usage,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create %s: %w", label, err)
	}
	view, err := r.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        targetFormat,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		r.device.DestroyTexture(tex)
		return nil, fmt.Errorf("wgpu: create %s view: %w", label, err)
	}
	return &Texture{
		device: r.device,
		tex:    tex,
		view:   view,
		width:  w,
		height: h,
		owner:  r.contextID,
	}, nil
}

// writeTexture uploads tightly packed RGBA rows into t.
func (r *Renderer) writeTexture(t *Texture, pix []byte) error {
	err := r.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: t.tex, MipLevel: 0, Aspect: gputypes.TextureAspectAll},
		pix,
		&hal.ImageDataLayout{Offset: 0, BytesPerRow: uint32(t.width * 4), RowsPerImage: uint32(t.height)},
		&hal.Extent3D{Width: uint32(t.width), Height: uint32(t.height), DepthOrArrayLayers: 1},
	)
	if err != nil {
		return fmt.Errorf("wgpu: write texture: %w", err)
	}
	return nil
}

// BeginFrame starts a frame drawing into target.
//
// The target pixels are uploaded into a render texture; Finish reads the
// texture back into target.
func (r *Renderer) BeginFrame(target *render.PixmapTarget) (render.Frame, error) {
	if target == nil {
		return nil, ErrNilTarget
	}
	if r.destroyed {
		return nil, ErrDestroyed
	}
	f := &Frame{renderer: r, target: target}
	if target.Width() == 0 || target.Height() == 0 {
		return f, nil
	}
	if err := f.begin(); err != nil {
		f.release()
		return nil, err
	}
	return f, nil
}

var (
	_ backend.Renderer        = (*Renderer)(nil)
	_ backend.TextureUploader = (*Renderer)(nil)
)

// Texture is an RGBA8 GPU texture owned by a wgpu Renderer.
type Texture struct {
	device hal.Device
	tex    hal.Texture
	view   hal.TextureView
	width  int
	height int
	owner  render.ContextID
}

// Width implements render.Texture.
func (t *Texture) Width() int {
	return t.width
}

// Height implements render.Texture.
func (t *Texture) Height() int {
	return t.height
}

// Destroy releases the GPU texture. Safe to call multiple times.
func (t *Texture) Destroy() {
	if t.view != nil {
		t.device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.tex != nil {
		t.device.DestroyTexture(t.tex)
		t.tex = nil
	}
}

var _ render.Texture = (*Texture)(nil)
