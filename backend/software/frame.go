// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/gogpu/effects/geom"
	"github.com/gogpu/effects/render"
)

// Frame is a software render.Frame.
//
// Frame is NOT thread-safe.
type Frame struct {
	renderer *Renderer
	target   *render.PixmapTarget
	finished bool
}

// ContextID implements render.Frame.
func (f *Frame) ContextID() render.ContextID {
	return f.renderer.contextID
}

// Programs implements render.Frame.
func (f *Frame) Programs() *render.Programs {
	return f.renderer.programs
}

// Finish implements render.Frame. Draws are synchronous, so Finish only
// closes the frame.
func (f *Frame) Finish() error {
	if f.finished {
		return f.fail("finish", render.ErrFrameFinished)
	}
	f.finished = true
	return nil
}

func (f *Frame) fail(op string, err error) error {
	return &render.BackendError{Backend: Name, Op: op, Err: err}
}

// RenderTextureFromTo implements render.Frame.
//
// The src region of tex is scaled bilinearly to the size of dst. Pixels in
// dst covered by damage are shaded, by program if given, and blended
// source-over onto the target; inside opaque regions the shaded pixel
// replaces the target pixel.
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
	if !ok || t.owner != f.renderer.contextID {
		return f.fail(op, render.ErrUnsupportedTexture)
	}
	if transform != geom.Normal {
		return f.fail(op, render.ErrUnsupportedTransform)
	}

	frag, err := f.resolveFragment(program, uniforms, dst, alpha)
	if err != nil {
		return f.fail(op, err)
	}

	area := dst.Intersect(geom.PhysicalRectFromSize(f.target.Size()))
	if area.IsEmpty() || len(damage) == 0 {
		return nil
	}

	// Damage and opaque regions arrive relative to dst.
	origin := dst.Loc()
	damaged := make([]geom.PhysicalRect, 0, len(damage))
	var bounds geom.PhysicalRect
	for _, d := range damage {
		d = d.Translate(origin).Intersect(area)
		if d.IsEmpty() {
			continue
		}
		damaged = append(damaged, d)
		bounds = bounds.Union(d)
	}
	if len(damaged) == 0 {
		return nil
	}
	opaqueAbs := make([]geom.PhysicalRect, 0, len(opaque))
	for _, o := range opaque {
		opaqueAbs = append(opaqueAbs, o.Translate(origin))
	}

	sampled := sample(t.img, src, dst.W, dst.H)
	out := f.target.Image()

	for y := bounds.Y; y < bounds.Y+bounds.H; y++ {
		for x := bounds.X; x < bounds.X+bounds.W; x++ {
			if !containsAny(damaged, x, y) {
				continue
			}
			px := fromRGBA(sampled.RGBAAt(x-dst.X, y-dst.Y))
			px = frag(px, x, y)
			if containsAny(opaqueAbs, x, y) {
				out.SetRGBA(x, y, px.toRGBA())
				continue
			}
			out.SetRGBA(x, y, px.over(fromRGBA(out.RGBAAt(x, y))).toRGBA())
		}
	}
	return nil
}

// sample maps the src region of img onto a w x h image.
//
// The mapping is affine in float coordinates: fractional src offsets are
// kept, and parts of src outside img stay transparent.
func sample(img *image.RGBA, src geom.BufferRect, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if src.W <= 0 || src.H <= 0 {
		return dst
	}
	sx := float64(w) / src.W
	sy := float64(h) / src.H
	s2d := f64.Aff3{
		sx, 0, -src.X * sx,
		0, sy, -src.Y * sy,
	}
	draw.BiLinear.Transform(dst, s2d, img, img.Bounds(), draw.Src, nil)
	return dst
}

func containsAny(rects []geom.PhysicalRect, x, y int) bool {
	for _, r := range rects {
		if r.Contains(x, y) {
			return true
		}
	}
	return false
}
