// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/gogpu/effects/geom"

// Renderer is the owner of a GPU context.
//
// Elements only need a renderer's context identity: they record it when
// bound and treat a change as a reason to redraw.
type Renderer interface {
	// ContextID returns the identity of the renderer's current GPU context.
	ContextID() ContextID
}

// Frame is a direct GPU-context frame.
//
// A frame is obtained from a backend at the start of rendering an output and
// is finished once all elements have drawn. Frames are NOT thread-safe.
type Frame interface {
	// ContextID returns the identity of the GPU context backing the frame.
	ContextID() ContextID

	// Programs returns the shader programs available to this frame.
	Programs() *Programs

	// RenderTextureFromTo draws the src region of tex into dst.
	//
	// damage and opaque are relative to dst. Only pixels inside damage are
	// touched. program may be nil for a plain textured blit, in which case
	// uniforms must be empty.
	//
	// Errors are reported as *BackendError.
	RenderTextureFromTo(
		tex Texture,
		src geom.BufferRect,
		dst geom.PhysicalRect,
		damage, opaque []geom.PhysicalRect,
		transform geom.Transform,
		alpha float32,
		program *Program,
		uniforms []Uniform,
	) error

	// Finish submits the frame. The frame must not be used afterwards.
	Finish() error
}
