// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"errors"
	"image"

	"github.com/furui/fastnoiselite-go"
	"golang.org/x/image/draw"

	"github.com/gogpu/effects/backend"
	"github.com/gogpu/effects/render"
	"github.com/gogpu/effects/shaders"
)

// Name is the registry name of the software backend.
const Name = "software"

// ErrNilTarget is returned by BeginFrame for a nil target.
var ErrNilTarget = errors.New("software: nil target")

func init() {
	backend.Register(Name, func() backend.Renderer {
		return NewRenderer()
	})
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithNoiseSeed selects the dithering noise pattern. Renderers with the same
// seed produce identical output. Only the low 32 bits are used.
func WithNoiseSeed(seed int64) Option {
	return func(r *Renderer) {
		r.noiseSeed = seed
	}
}

// WithDevice sets the device reported by the renderer. The software backend
// draws on the CPU and only uses it for identification; the default is
// render.NullDeviceHandle.
func WithDevice(d render.DeviceHandle) Option {
	return func(r *Renderer) {
		r.device = d
	}
}

// Renderer is the software backend renderer.
//
// A Renderer owns one software context: textures it creates can only be
// drawn by frames it begins.
type Renderer struct {
	contextID render.ContextID
	device    render.DeviceHandle
	programs  *render.Programs
	noise     *fastnoiselite.FastNoiseLite
	noiseSeed int64
}

// NewRenderer creates a software renderer with the effect shader programs
// installed.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		contextID: render.NewContextID(),
		device:    render.NullDeviceHandle{},
		programs:  render.NewPrograms(),
	}
	for _, opt := range opts {
		opt(r)
	}

	// Value noise sampled at unit frequency returns the raw lattice hash at
	// integer coordinates, so neighbouring pixels are independent.
	r.noise = fastnoiselite.NewNoise()
	r.noise.SetNoiseType(fastnoiselite.NoiseTypeValue)
	r.noise.Frequency = 1
	r.noise.Seed = int32(r.noiseSeed)

	shaders.Install(r.programs)
	return r
}

// Name implements backend.Renderer.
func (r *Renderer) Name() string {
	return Name
}

// Device implements backend.Renderer.
func (r *Renderer) Device() render.DeviceHandle {
	return r.device
}

// ContextID implements render.Renderer.
func (r *Renderer) ContextID() render.ContextID {
	return r.contextID
}

// Programs returns the renderer's shader programs.
func (r *Renderer) Programs() *render.Programs {
	return r.programs
}

// NewTexture uploads img into a texture owned by this renderer.
// The image is copied; later changes to img are not visible.
func (r *Renderer) NewTexture(img image.Image) *Texture {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return &Texture{img: rgba, owner: r.contextID}
}

// Upload implements backend.TextureUploader.
func (r *Renderer) Upload(img image.Image) (render.Texture, error) {
	return r.NewTexture(img), nil
}

// BeginFrame starts a frame drawing into target.
func (r *Renderer) BeginFrame(target *render.PixmapTarget) (render.Frame, error) {
	if target == nil {
		return nil, ErrNilTarget
	}
	return &Frame{renderer: r, target: target}, nil
}

// noiseAt returns the dithering noise in [-1, 1] at a target pixel.
func (r *Renderer) noiseAt(x, y int) float32 {
	return float32(r.noise.GetNoise2D(fastnoiselite.FNLfloat(x), fastnoiselite.FNLfloat(y)))
}

var (
	_ backend.Renderer        = (*Renderer)(nil)
	_ backend.TextureUploader = (*Renderer)(nil)
)

// Texture is an RGBA texture owned by a software Renderer.
type Texture struct {
	img   *image.RGBA
	owner render.ContextID
}

// Width implements render.Texture.
func (t *Texture) Width() int {
	return t.img.Bounds().Dx()
}

// Height implements render.Texture.
func (t *Texture) Height() int {
	return t.img.Bounds().Dy()
}

// Image returns the texture pixels. The image shares memory with the texture.
func (t *Texture) Image() *image.RGBA {
	return t.img
}

var _ render.Texture = (*Texture)(nil)
