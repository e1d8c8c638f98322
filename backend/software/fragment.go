// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"fmt"
	"image/color"
	"math"

	"github.com/gogpu/effects/geom"
	"github.com/gogpu/effects/render"
	"github.com/gogpu/effects/shaders"
)

// pixel is a premultiplied RGBA color with components in [0, 1].
type pixel struct {
	r, g, b, a float32
}

func fromRGBA(c color.RGBA) pixel {
	return pixel{
		r: float32(c.R) / 255,
		g: float32(c.G) / 255,
		b: float32(c.B) / 255,
		a: float32(c.A) / 255,
	}
}

func (p pixel) toRGBA() color.RGBA {
	a := clamp01(p.a)
	return color.RGBA{
		R: to8(min(clamp01(p.r), a)),
		G: to8(min(clamp01(p.g), a)),
		B: to8(min(clamp01(p.b), a)),
		A: to8(a),
	}
}

func (p pixel) scale(k float32) pixel {
	return pixel{p.r * k, p.g * k, p.b * k, p.a * k}
}

// over composites p source-over onto d.
func (p pixel) over(d pixel) pixel {
	k := 1 - p.a
	return pixel{p.r + d.r*k, p.g + d.g*k, p.b + d.b*k, p.a + d.a*k}
}

func clamp01(v float32) float32 {
	return max(0, min(1, v))
}

func to8(v float32) uint8 {
	return uint8(v*255 + 0.5)
}

// fragmentFunc shades the sampled pixel at target coordinates x, y.
type fragmentFunc func(p pixel, x, y int) pixel

// resolveFragment validates a draw's program and uniforms and returns the
// fragment stage to run. A nil program is a plain blit scaled by alpha.
func (f *Frame) resolveFragment(program *render.Program, uniforms []render.Uniform, dst geom.PhysicalRect, alpha float32) (fragmentFunc, error) {
	if err := shaders.CheckUniforms(program, uniforms); err != nil {
		return nil, err
	}
	if program == nil {
		return func(p pixel, _, _ int) pixel { return p.scale(alpha) }, nil
	}

	switch program.Name {
	case shaders.BlurFinish:
		params, err := shaders.ParseBlurFinish(uniforms, dst)
		if err != nil {
			return nil, err
		}
		params.Alpha *= alpha
		return f.blurFinish(params), nil
	default:
		return nil, fmt.Errorf("%w: %s", render.ErrUnknownProgram, program.Name)
	}
}

// blurFinish is the fragment stage of shaders.BlurFinish.
func (f *Frame) blurFinish(u shaders.BlurFinishUniforms) fragmentFunc {
	return func(p pixel, x, y int) pixel {
		if u.Noise != 0 {
			d := f.renderer.noiseAt(x, y) * 0.5 * u.Noise
			p.r += d
			p.g += d
			p.b += d
		}

		// Sample at the pixel center, as the GPU does.
		cx := float32(x) + 0.5 - u.Geo[0]
		cy := float32(y) + 0.5 - u.Geo[1]
		coverage := roundingAlpha(cx, cy, u.Geo[2], u.Geo[3], u.CornerRadius)

		return p.scale(coverage * u.Alpha)
	}
}

// roundingAlpha returns the coverage of the point (x, y) inside a w x h
// rectangle with corners rounded by radius, with a one-pixel smooth edge.
func roundingAlpha(x, y, w, h, radius float32) float32 {
	var cx, cy float32
	switch {
	case x < radius && y < radius:
		cx, cy = radius, radius
	case x > w-radius && y < radius:
		cx, cy = w-radius, radius
	case x > w-radius && y > h-radius:
		cx, cy = w-radius, h-radius
	case x < radius && y > h-radius:
		cx, cy = radius, h-radius
	default:
		return 1
	}
	dist := float32(math.Hypot(float64(x-cx), float64(y-cy)))
	return 1 - smoothstep(radius-0.5, radius+0.5, dist)
}

func smoothstep(edge0, edge1, x float32) float32 {
	t := clamp01((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}
