// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/effects/backend"
	"github.com/gogpu/effects/geom"
	"github.com/gogpu/effects/render"
	"github.com/gogpu/effects/shaders"
)

var (
	red         = color.RGBA{R: 255, A: 255}
	blue        = color.RGBA{B: 255, A: 255}
	transparent = color.RGBA{}
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, c)
		}
	}
	return img
}

func near(a, b color.RGBA) bool {
	d := func(x, y uint8) int {
		if x > y {
			return int(x - y)
		}
		return int(y - x)
	}
	return d(a.R, b.R) <= 1 && d(a.G, b.G) <= 1 && d(a.B, b.B) <= 1 && d(a.A, b.A) <= 1
}

func full(r geom.PhysicalRect) []geom.PhysicalRect {
	return []geom.PhysicalRect{{W: r.W, H: r.H}}
}

type foreignTexture struct{}

func (foreignTexture) Width() int  { return 1 }
func (foreignTexture) Height() int { return 1 }

func TestRegistered(t *testing.T) {
	r := backend.Get(Name)
	if r == nil {
		t.Fatal("software backend should be registered")
	}
	if r.Name() != Name {
		t.Errorf("Name() = %q, want %q", r.Name(), Name)
	}
}

func TestNewRendererInstallsPrograms(t *testing.T) {
	r := NewRenderer()
	if !r.Programs().Has(shaders.BlurFinish) {
		t.Error("renderer should install the blur finish program")
	}
	if r.ContextID().IsZero() {
		t.Error("ContextID() should not be zero")
	}
	if NewRenderer().ContextID() == r.ContextID() {
		t.Error("renderers should have distinct contexts")
	}
}

func TestBeginFrameNilTarget(t *testing.T) {
	if _, err := NewRenderer().BeginFrame(nil); !errors.Is(err, ErrNilTarget) {
		t.Errorf("BeginFrame(nil) error = %v, want ErrNilTarget", err)
	}
}

func TestNewTextureCopies(t *testing.T) {
	src := solid(3, 2, red)
	src.Rect = image.Rect(5, 5, 8, 7)
	tex := NewRenderer().NewTexture(src)

	if tex.Width() != 3 || tex.Height() != 2 {
		t.Fatalf("texture size = %dx%d, want 3x2", tex.Width(), tex.Height())
	}

	plain := solid(2, 2, red)
	tex = NewRenderer().NewTexture(plain)
	plain.Set(0, 0, blue)
	if got := tex.Image().RGBAAt(0, 0); !near(got, red) {
		t.Errorf("texture pixel = %v, want red (copy)", got)
	}
}

func TestRenderTextureErrors(t *testing.T) {
	r := NewRenderer()
	tex := r.NewTexture(solid(4, 4, red))
	blurFinish := r.Programs().Get(shaders.BlurFinish)
	dst := geom.PhysicalRect{W: 4, H: 4}

	tests := []struct {
		name      string
		tex       render.Texture
		transform geom.Transform
		program   *render.Program
		uniforms  []render.Uniform
		want      error
	}{
		{
			name: "foreign texture type",
			tex:  foreignTexture{},
			want: render.ErrUnsupportedTexture,
		},
		{
			name: "texture of another renderer",
			tex:  NewRenderer().NewTexture(solid(1, 1, red)),
			want: render.ErrUnsupportedTexture,
		},
		{
			name:      "rotated",
			tex:       tex,
			transform: geom.Rotate90,
			want:      render.ErrUnsupportedTransform,
		},
		{
			name:     "uniforms without program",
			tex:      tex,
			uniforms: []render.Uniform{render.NewUniform("alpha", render.Float1(1))},
			want:     render.ErrUnknownUniform,
		},
		{
			name:     "undeclared uniform",
			tex:      tex,
			program:  blurFinish,
			uniforms: []render.Uniform{render.NewUniform("tint", render.Float1(1))},
			want:     render.ErrUnknownUniform,
		},
		{
			name:     "wrong uniform type",
			tex:      tex,
			program:  blurFinish,
			uniforms: []render.Uniform{render.NewUniform(shaders.UniformGeo, render.Float1(1))},
			want:     render.ErrUnknownUniform,
		},
		{
			name:    "unknown program",
			tex:     tex,
			program: &render.Program{Name: "sepia"},
			want:    render.ErrUnknownProgram,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, err := r.BeginFrame(render.NewPixmapTarget(4, 4))
			if err != nil {
				t.Fatalf("BeginFrame() error = %v", err)
			}

			err = frame.RenderTextureFromTo(tt.tex, geom.BufferRect{W: 4, H: 4}, dst, full(dst), nil,
				tt.transform, 1, tt.program, tt.uniforms)

			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			var be *render.BackendError
			if !errors.As(err, &be) {
				t.Fatalf("error %T is not a *render.BackendError", err)
			}
			if be.Backend != Name || be.Op != "render_texture" {
				t.Errorf("BackendError = %s/%s, want %s/render_texture", be.Backend, be.Op, Name)
			}
		})
	}
}

func TestFrameFinished(t *testing.T) {
	r := NewRenderer()
	tex := r.NewTexture(solid(1, 1, red))
	frame, err := r.BeginFrame(render.NewPixmapTarget(1, 1))
	if err != nil {
		t.Fatalf("BeginFrame() error = %v", err)
	}

	if err := frame.Finish(); err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	if err := frame.Finish(); !errors.Is(err, render.ErrFrameFinished) {
		t.Errorf("second Finish() error = %v, want ErrFrameFinished", err)
	}

	dst := geom.PhysicalRect{W: 1, H: 1}
	err = frame.RenderTextureFromTo(tex, geom.BufferRect{W: 1, H: 1}, dst, full(dst), nil, geom.Normal, 1, nil, nil)
	if !errors.Is(err, render.ErrFrameFinished) {
		t.Errorf("draw after Finish() error = %v, want ErrFrameFinished", err)
	}
}

// drawOnto draws tex into a fresh 8x8 target cleared to bg.
func drawOnto(t *testing.T, r *Renderer, bg color.Color, tex *Texture, src geom.BufferRect, dst geom.PhysicalRect,
	damage, opaque []geom.PhysicalRect, alpha float32, program *render.Program, uniforms []render.Uniform,
) *image.RGBA {
	t.Helper()
	target := render.NewPixmapTarget(8, 8)
	target.Clear(bg)

	frame, err := r.BeginFrame(target)
	if err != nil {
		t.Fatalf("BeginFrame() error = %v", err)
	}
	if err := frame.RenderTextureFromTo(tex, src, dst, damage, opaque, geom.Normal, alpha, program, uniforms); err != nil {
		t.Fatalf("RenderTextureFromTo() error = %v", err)
	}
	if err := frame.Finish(); err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	return target.Image()
}

func TestPlainBlit(t *testing.T) {
	r := NewRenderer()
	tex := r.NewTexture(solid(4, 4, red))
	src := geom.BufferRect{W: 4, H: 4}
	dst := geom.PhysicalRect{X: 2, Y: 2, W: 4, H: 4}

	tests := []struct {
		name   string
		damage []geom.PhysicalRect
		opaque []geom.PhysicalRect
		alpha  float32
		bg     color.RGBA
		pixels map[image.Point]color.RGBA
	}{
		{
			name:   "full damage",
			damage: full(dst),
			alpha:  1,
			bg:     transparent,
			pixels: map[image.Point]color.RGBA{
				{3, 3}: red,
				{5, 5}: red,
				{1, 1}: transparent,
				{6, 6}: transparent,
			},
		},
		{
			name:   "partial damage",
			damage: []geom.PhysicalRect{{W: 2, H: 2}},
			alpha:  1,
			bg:     transparent,
			pixels: map[image.Point]color.RGBA{
				{2, 2}: red,
				{3, 3}: red,
				{4, 4}: transparent,
				{5, 5}: transparent,
			},
		},
		{
			name:   "no damage",
			damage: nil,
			alpha:  1,
			bg:     blue,
			pixels: map[image.Point]color.RGBA{
				{3, 3}: blue,
			},
		},
		{
			name:   "half alpha over",
			damage: full(dst),
			alpha:  0.5,
			bg:     blue,
			pixels: map[image.Point]color.RGBA{
				{3, 3}: {R: 128, B: 128, A: 255},
				{0, 0}: blue,
			},
		},
		{
			name:   "overlapping damage blends once",
			damage: []geom.PhysicalRect{{W: 4, H: 4}, {W: 4, H: 4}, {X: 1, Y: 1, W: 2, H: 2}},
			alpha:  0.5,
			bg:     blue,
			pixels: map[image.Point]color.RGBA{
				{3, 3}: {R: 128, B: 128, A: 255},
			},
		},
		{
			name:   "opaque region replaces",
			damage: full(dst),
			opaque: []geom.PhysicalRect{{W: 2, H: 2}},
			alpha:  0.5,
			bg:     blue,
			pixels: map[image.Point]color.RGBA{
				{2, 2}: {R: 128, A: 128},
				{5, 5}: {R: 128, B: 128, A: 255},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := drawOnto(t, r, tt.bg, tex, src, dst, tt.damage, tt.opaque, tt.alpha, nil, nil)
			for p, want := range tt.pixels {
				if got := img.RGBAAt(p.X, p.Y); !near(got, want) {
					t.Errorf("pixel %v = %v, want %v", p, got, want)
				}
			}
		})
	}
}

func TestBlitClipsToTarget(t *testing.T) {
	r := NewRenderer()
	tex := r.NewTexture(solid(4, 4, red))
	dst := geom.PhysicalRect{X: 6, Y: 6, W: 4, H: 4}

	img := drawOnto(t, r, transparent, tex, geom.BufferRect{W: 4, H: 4}, dst, full(dst), nil, 1, nil, nil)
	if got := img.RGBAAt(7, 7); !near(got, red) {
		t.Errorf("pixel (7,7) = %v, want red", got)
	}
}

func TestBlitScalesSource(t *testing.T) {
	r := NewRenderer()
	tex := r.NewTexture(solid(2, 2, red))
	dst := geom.PhysicalRect{W: 8, H: 8}

	img := drawOnto(t, r, transparent, tex, geom.BufferRect{W: 2, H: 2}, dst, full(dst), nil, 1, nil, nil)
	for _, p := range []image.Point{{0, 0}, {4, 4}, {7, 7}} {
		if got := img.RGBAAt(p.X, p.Y); !near(got, red) {
			t.Errorf("pixel %v = %v, want red", p, got)
		}
	}
}

func ramp() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 1))
	for x, v := range []uint8{0, 80, 160, 240} {
		img.SetRGBA(x, 0, color.RGBA{R: v, A: 255})
	}
	return img
}

func TestBlitSamplesSourceRegion(t *testing.T) {
	tests := []struct {
		name string
		src  geom.BufferRect
		dstW int
		want []color.RGBA
	}{
		{
			name: "identity",
			src:  geom.BufferRect{W: 4, H: 1},
			dstW: 4,
			want: []color.RGBA{{0, 0, 0, 255}, {80, 0, 0, 255}, {160, 0, 0, 255}, {240, 0, 0, 255}},
		},
		{
			name: "half outside texture",
			src:  geom.BufferRect{X: 2, W: 4, H: 1},
			dstW: 4,
			want: []color.RGBA{{160, 0, 0, 255}, {240, 0, 0, 255}, transparent, transparent},
		},
		{
			name: "before texture start",
			src:  geom.BufferRect{X: -2, W: 4, H: 1},
			dstW: 4,
			want: []color.RGBA{transparent, transparent, {0, 0, 0, 255}, {80, 0, 0, 255}},
		},
		{
			name: "fractional offset",
			src:  geom.BufferRect{X: 0.5, W: 2, H: 1},
			dstW: 2,
			want: []color.RGBA{{40, 0, 0, 255}, {120, 0, 0, 255}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRenderer()
			tex := r.NewTexture(ramp())
			dst := geom.PhysicalRect{W: tt.dstW, H: 1}

			img := drawOnto(t, r, transparent, tex, tt.src, dst, full(dst), nil, 1, nil, nil)
			for x, want := range tt.want {
				if got := img.RGBAAt(x, 0); !near(got, want) {
					t.Errorf("pixel %d = %v, want %v", x, got, want)
				}
			}
		})
	}
}

func blurFinishUniformList(dst geom.PhysicalRect, noise, radius float32) []render.Uniform {
	return []render.Uniform{
		render.NewUniform(shaders.UniformGeo, render.Float4{float32(dst.X), float32(dst.Y), float32(dst.W), float32(dst.H)}),
		render.NewUniform(shaders.UniformAlpha, render.Float1(1)),
		render.NewUniform(shaders.UniformNoise, render.Float1(noise)),
		render.NewUniform(shaders.UniformCornerRadius, render.Float1(radius)),
	}
}

func TestBlurFinishRoundsCorners(t *testing.T) {
	r := NewRenderer()
	white := color.RGBA{255, 255, 255, 255}
	tex := r.NewTexture(solid(8, 8, white))
	dst := geom.PhysicalRect{W: 8, H: 8}
	program := r.Programs().Get(shaders.BlurFinish)

	img := drawOnto(t, r, transparent, tex, geom.BufferRect{W: 8, H: 8}, dst, full(dst), nil, 1,
		program, blurFinishUniformList(dst, 0, 3))

	for _, p := range []image.Point{{0, 0}, {7, 0}, {0, 7}, {7, 7}} {
		if got := img.RGBAAt(p.X, p.Y); got.A != 0 {
			t.Errorf("corner pixel %v = %v, want transparent", p, got)
		}
	}
	for _, p := range []image.Point{{4, 4}, {4, 0}, {0, 4}} {
		if got := img.RGBAAt(p.X, p.Y); !near(got, white) {
			t.Errorf("pixel %v = %v, want white", p, got)
		}
	}
}

func TestBlurFinishNoise(t *testing.T) {
	gray := color.RGBA{128, 128, 128, 255}
	dst := geom.PhysicalRect{W: 8, H: 8}

	render8 := func(seed int64, noise float32) *image.RGBA {
		r := NewRenderer(WithNoiseSeed(seed))
		tex := r.NewTexture(solid(8, 8, gray))
		program := r.Programs().Get(shaders.BlurFinish)
		return drawOnto(t, r, transparent, tex, geom.BufferRect{W: 8, H: 8}, dst, full(dst), nil, 1,
			program, blurFinishUniformList(dst, noise, 0))
	}

	quiet := render8(1, 0)
	for y := range 8 {
		for x := range 8 {
			if got := quiet.RGBAAt(x, y); !near(got, gray) {
				t.Fatalf("noise 0: pixel (%d,%d) = %v, want %v", x, y, got, gray)
			}
		}
	}

	a := render8(1, 1)
	b := render8(1, 1)
	if !equalImages(a, b) {
		t.Error("same seed should produce identical output")
	}
	if equalImages(a, quiet) {
		t.Error("noise 1 should perturb the image")
	}
	if equalImages(a, render8(2, 1)) {
		t.Error("different seeds should produce different output")
	}
}

func TestNoiseVariesPerPixel(t *testing.T) {
	tests := []struct {
		name string
		seed int64
	}{
		{"default seed", 0},
		{"seed 7", 7},
		{"large seed", 1 << 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRenderer(WithNoiseSeed(tt.seed))
			const n = 64
			jumps := 0
			for x := range n {
				a, b := r.noiseAt(x, 5), r.noiseAt(x+1, 5)
				if a < -1 || a > 1 {
					t.Fatalf("noiseAt(%d, 5) = %v, want within [-1, 1]", x, a)
				}
				if d := a - b; d > 0.1 || d < -0.1 {
					jumps++
				}
			}
			if jumps < n/2 {
				t.Errorf("%d of %d neighbouring pixels differ by more than 0.1, want at least %d", jumps, n, n/2)
			}
		})
	}
}

func TestNoiseSeedSelectsPattern(t *testing.T) {
	a := NewRenderer(WithNoiseSeed(1))
	b := NewRenderer(WithNoiseSeed(1))
	c := NewRenderer(WithNoiseSeed(2))

	if a.noise.Seed != 1 || c.noise.Seed != 2 {
		t.Fatalf("noise seeds = %d, %d, want 1, 2", a.noise.Seed, c.noise.Seed)
	}
	differ := false
	for x := range 16 {
		if a.noiseAt(x, 3) != b.noiseAt(x, 3) {
			t.Fatalf("same seed: noiseAt(%d, 3) differs", x)
		}
		if a.noiseAt(x, 3) != c.noiseAt(x, 3) {
			differ = true
		}
	}
	if !differ {
		t.Error("different seeds should produce different noise")
	}
}

func equalImages(a, b *image.RGBA) bool {
	if a.Bounds() != b.Bounds() {
		return false
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			return false
		}
	}
	return true
}

func TestRoundingAlpha(t *testing.T) {
	tests := []struct {
		name string
		x, y float32
		want float32
	}{
		{"center", 50, 50, 1},
		{"edge middle", 0.5, 50, 1},
		{"outside corner", 0.5, 0.5, 0},
		{"inside corner arc", 10, 10, 1},
		{"on the arc", 10 - 10/1.41421356, 10 - 10/1.41421356, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := roundingAlpha(tt.x, tt.y, 100, 100, 10)
			if d := got - tt.want; d > 0.01 || d < -0.01 {
				t.Errorf("roundingAlpha(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestUpload(t *testing.T) {
	r := NewRenderer()
	tex, err := r.Upload(solid(3, 5, red))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	st, ok := tex.(*Texture)
	if !ok {
		t.Fatalf("Upload() returned %T, want *Texture", tex)
	}
	if st.Width() != 3 || st.Height() != 5 {
		t.Errorf("texture size = %dx%d, want 3x5", st.Width(), st.Height())
	}
}

type namedDevice struct {
	render.NullDeviceHandle
}

func (namedDevice) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "llvmpipe", Type: gpucontext.AdapterTypeSoftware}
}

func TestDevice(t *testing.T) {
	if got := NewRenderer().Device().AdapterInfo().Name; got != "null" {
		t.Errorf("default adapter = %q, want null", got)
	}
	r := NewRenderer(WithDevice(namedDevice{}))
	if got := r.Device().AdapterInfo().Name; got != "llvmpipe" {
		t.Errorf("adapter = %q, want llvmpipe", got)
	}
}
