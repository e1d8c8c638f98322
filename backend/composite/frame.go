// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package composite

import (
	"errors"
	"fmt"

	"golang.org/x/image/draw"

	"github.com/gogpu/effects/render"
)

// ErrNilTarget is returned by BeginFrame for a nil target.
var ErrNilTarget = errors.New("composite: nil target")

// DirectRenderer is a backend that produces direct frames for a target.
type DirectRenderer interface {
	render.Renderer

	// BeginFrame starts a direct frame drawing into target.
	BeginFrame(target *render.PixmapTarget) (render.Frame, error)
}

// Renderer produces composite frames on top of a direct renderer.
type Renderer struct {
	direct DirectRenderer
}

// NewRenderer creates a composite renderer drawing through direct.
func NewRenderer(direct DirectRenderer) *Renderer {
	return &Renderer{direct: direct}
}

// ContextID implements render.Renderer. The composite renderer shares the
// GPU context of its direct renderer.
func (r *Renderer) ContextID() render.ContextID {
	return r.direct.ContextID()
}

// Direct returns the underlying direct renderer.
func (r *Renderer) Direct() DirectRenderer {
	return r.direct
}

// BeginFrame starts a composite frame for target. Drawing goes to an
// intermediate buffer of the same size, composited onto target by Finish.
func (r *Renderer) BeginFrame(target *render.PixmapTarget) (*Frame, error) {
	if target == nil {
		return nil, ErrNilTarget
	}
	intermediate := render.NewPixmapTarget(target.Width(), target.Height())

	direct, err := r.direct.BeginFrame(intermediate)
	if err != nil {
		return nil, fmt.Errorf("composite: begin frame: %w", err)
	}

	return &Frame{
		direct:       direct,
		intermediate: intermediate,
		target:       target,
	}, nil
}

// Frame is a composite frame wrapping a direct frame.
type Frame struct {
	direct       render.Frame
	intermediate *render.PixmapTarget
	target       *render.PixmapTarget
	finished     bool
}

// WrapFrame wraps an existing direct frame. The wrapped frame draws straight
// into whatever the direct frame targets; Finish only finishes it.
func WrapFrame(direct render.Frame) *Frame {
	return &Frame{direct: direct}
}

// AsDirectFrame returns the underlying direct frame.
func (f *Frame) AsDirectFrame() render.Frame {
	return f.direct
}

// ContextID returns the context identity of the direct frame.
func (f *Frame) ContextID() render.ContextID {
	return f.direct.ContextID()
}

// Finish finishes the direct frame and composites the intermediate buffer,
// if any, onto the target. Errors from the direct frame are returned as is.
func (f *Frame) Finish() error {
	if f.finished {
		return &render.BackendError{Backend: "composite", Op: "finish", Err: render.ErrFrameFinished}
	}
	f.finished = true

	if err := f.direct.Finish(); err != nil {
		return err
	}

	if f.intermediate == nil || f.target == nil {
		return nil
	}

	dst := f.target.Image()
	src := f.intermediate.Image()
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Over)
	return nil
}
