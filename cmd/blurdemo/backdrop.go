// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/effects/geom"
	"github.com/gogpu/effects/render"
)

// backdropImage paints the synthetic scene behind the blur element: a
// vertical gradient crossed by diagonal stripes and a few discs.
func backdropImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		t := float64(y) / float64(max(h-1, 1))
		for x := range w {
			r := 0.1 + t*0.4
			g := 0.2 + t*0.3
			b := 0.4 + t*0.2
			if (x+y)/24%2 == 0 {
				r, g, b = r+0.25, g+0.15, b
			}
			for i := range 3 {
				cx := float64(w) * (0.25 + 0.25*float64(i))
				cy := float64(h) * 0.5
				if math.Hypot(float64(x)-cx, float64(y)-cy) < float64(min(w, h))/8 {
					r, g, b = 1-r, 1-g, 1-b
				}
			}
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(min(r, 1) * 255),
				G: uint8(min(g, 1) * 255),
				B: uint8(min(b, 1) * 255),
				A: 255,
			})
		}
	}
	return img
}

// backdrop is an opaque element covering the whole output with a texture.
type backdrop struct {
	id   render.ID
	tex  render.Texture
	size geom.PhysicalSize
}

func newBackdrop(tex render.Texture, size geom.PhysicalSize) *backdrop {
	return &backdrop{id: render.NewID(), tex: tex, size: size}
}

func (b *backdrop) ID() render.ID                       { return b.id }
func (b *backdrop) CurrentCommit() render.CommitCounter { return 0 }
func (b *backdrop) Transform() geom.Transform           { return geom.Normal }
func (b *backdrop) Alpha() float32                      { return 1 }
func (b *backdrop) Kind() render.Kind                   { return render.KindUnspecified }

func (b *backdrop) Src() geom.BufferRect {
	return geom.BufferRect{W: float64(b.tex.Width()), H: float64(b.tex.Height())}
}

func (b *backdrop) Geometry(geom.Scale) geom.PhysicalRect {
	return geom.PhysicalRectFromSize(b.size)
}

func (b *backdrop) Location(geom.Scale) geom.PhysicalPoint {
	return geom.PhysicalPoint{}
}

func (b *backdrop) Draw(frame render.Frame, src geom.BufferRect, dst geom.PhysicalRect, damage, _ []geom.PhysicalRect) error {
	opaque := []geom.PhysicalRect{{W: dst.W, H: dst.H}}
	return frame.RenderTextureFromTo(b.tex, src, dst, damage, opaque, geom.Normal, 1, nil, nil)
}

func (b *backdrop) UnderlyingStorage(render.Renderer) render.UnderlyingStorage {
	return b
}

// Texture implements render.UnderlyingStorage.
func (b *backdrop) Texture() render.Texture {
	return b.tex
}

var _ render.RenderElement[render.Frame] = (*backdrop)(nil)
