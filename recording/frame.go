// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package recording

import (
	"slices"

	"github.com/gogpu/effects/geom"
	"github.com/gogpu/effects/render"
)

// DrawCall is one recorded RenderTextureFromTo call.
type DrawCall struct {
	Texture   render.Texture
	Src       geom.BufferRect
	Dst       geom.PhysicalRect
	Damage    []geom.PhysicalRect
	Opaque    []geom.PhysicalRect
	Transform geom.Transform
	Alpha     float32
	Program   *render.Program
	Uniforms  []render.Uniform
}

// Uniform returns the value of the uniform called name.
func (c DrawCall) Uniform(name string) (render.UniformValue, bool) {
	return render.LookupUniform(c.Uniforms, name)
}

// Option configures a Frame.
type Option func(*Frame)

// WithPrograms sets the program registry reported by the frame.
func WithPrograms(ps *render.Programs) Option {
	return func(f *Frame) {
		f.programs = ps
	}
}

// WithContextID sets the context identity reported by the frame.
func WithContextID(id render.ContextID) Option {
	return func(f *Frame) {
		f.contextID = id
	}
}

// WithError makes every draw return err after being recorded.
func WithError(err error) Option {
	return func(f *Frame) {
		f.err = err
	}
}

// Frame is a render.Frame that records draw calls.
type Frame struct {
	contextID render.ContextID
	programs  *render.Programs
	err       error
	calls     []DrawCall
	finishes  int
}

// NewFrame creates a recording frame. Without options it reports a fresh
// context ID and an empty program registry.
func NewFrame(opts ...Option) *Frame {
	f := &Frame{
		contextID: render.NewContextID(),
		programs:  render.NewPrograms(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// ContextID implements render.Frame.
func (f *Frame) ContextID() render.ContextID {
	return f.contextID
}

// Programs implements render.Frame.
func (f *Frame) Programs() *render.Programs {
	return f.programs
}

// RenderTextureFromTo implements render.Frame by recording the call.
// Slices are copied so later mutation by the caller does not alter the record.
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
	f.calls = append(f.calls, DrawCall{
		Texture:   tex,
		Src:       src,
		Dst:       dst,
		Damage:    slices.Clone(damage),
		Opaque:    slices.Clone(opaque),
		Transform: transform,
		Alpha:     alpha,
		Program:   program,
		Uniforms:  slices.Clone(uniforms),
	})
	return f.err
}

// Finish implements render.Frame.
func (f *Frame) Finish() error {
	f.finishes++
	return nil
}

// Calls returns the recorded draw calls in order.
func (f *Frame) Calls() []DrawCall {
	return f.calls
}

// Finishes returns how many times Finish was called.
func (f *Frame) Finishes() int {
	return f.finishes
}

// Reset forgets the recorded calls. Slices returned by Calls before the
// reset are left unchanged.
func (f *Frame) Reset() {
	f.calls = nil
	f.finishes = 0
}

// Ensure Frame implements render.Frame.
var _ render.Frame = (*Frame)(nil)
