// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package blur

import (
	"log/slog"

	"github.com/gogpu/effects"
	"github.com/gogpu/effects/backend/composite"
	"github.com/gogpu/effects/geom"
	"github.com/gogpu/effects/render"
	"github.com/gogpu/effects/shaders"
)

// Draw implements render.RenderElement for direct frames.
//
// An unbound element, or one whose output has no blurred framebuffer yet,
// draws nothing and returns nil. Otherwise exactly one textured quad is
// drawn; with a non-zero corner radius it goes through the blur-finish
// program. Frame errors are returned unchanged.
func (e *Element) Draw(frame render.Frame, src geom.BufferRect, dst geom.PhysicalRect, damage, opaque []geom.PhysicalRect) error {
	s := &e.state
	if s.Output.IsZero() {
		return nil
	}

	tex, ok := e.source.BlurTexture(s.Output)
	if !ok {
		effects.Logger().Debug("blur: no framebuffer for output",
			slog.String("element", e.id.String()),
			slog.String("output", s.Output.String()))
		return nil
	}

	alpha := e.Alpha()
	program, uniforms := e.finishPass(frame, dst, alpha)

	return frame.RenderTextureFromTo(
		tex,
		src,
		dst,
		damage,
		opaque,
		geom.Normal,
		alpha,
		program,
		uniforms,
	)
}

// finishPass selects the program and uniforms for the draw. A zero corner
// radius is a plain blit.
func (e *Element) finishPass(frame render.Frame, dst geom.PhysicalRect, alpha float32) (*render.Program, []render.Uniform) {
	s := &e.state
	if s.CornerRadius == 0 {
		return nil, nil
	}

	program := shaders.FromFrame(frame).BlurFinish
	if program == nil {
		effects.Logger().Warn("blur: blur finish program unavailable, drawing without rounding",
			slog.String("element", e.id.String()))
		return nil, nil
	}

	return program, []render.Uniform{
		render.NewUniform(shaders.UniformGeo, render.Float4{
			float32(dst.X),
			float32(dst.Y),
			float32(dst.W),
			float32(dst.H),
		}),
		render.NewUniform(shaders.UniformAlpha, render.Float1(alpha)),
		render.NewUniform(shaders.UniformNoise, render.Float1(s.Noise)),
		render.NewUniform(shaders.UniformCornerRadius, render.Float1(s.CornerRadius)),
	}
}

// UnderlyingStorage implements render.RenderElement. The element is always
// drawn through the shader path.
func (e *Element) UnderlyingStorage(render.Renderer) render.UnderlyingStorage {
	return nil
}

// Composite returns the element adapted to composite frames.
func (e *Element) Composite() *composite.Element {
	return composite.Adapt(e)
}

// Ensure Element implements render.RenderElement for direct frames, and
// its adapter for composite frames.
var (
	_ render.RenderElement[render.Frame]     = (*Element)(nil)
	_ render.RenderElement[*composite.Frame] = (*composite.Element)(nil)
)
