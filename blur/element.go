// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package blur

import (
	"github.com/gogpu/effects/framebuffers"
	"github.com/gogpu/effects/geom"
	"github.com/gogpu/effects/output"
	"github.com/gogpu/effects/render"
)

// State is the data an Element draws from.
//
// States are compared with ==, so every field takes part in change
// detection, floats included, with exact equality.
type State struct {
	// Location is the logical top-left of the effect region.
	Location geom.Point

	// Size is the logical extent of the effect region.
	Size geom.Size

	// Scale maps logical coordinates to buffer coordinates.
	Scale float64

	// Noise is the dithering amplitude in [0, 1].
	Noise float32

	// Output is the output the element is bound to. The zero ID means
	// unbound, in which case the element draws nothing.
	Output output.ID

	// ContextID is the GPU context of the renderer the element was bound with.
	ContextID render.ContextID

	// CornerRadius is the rounding radius in physical pixels.
	CornerRadius float32
}

// Element is the blur render element.
//
// Element is NOT thread-safe: it is updated and drawn from the render
// goroutine.
type Element struct {
	id     render.ID
	state  State
	dirty  bool
	commit render.CommitCounter
	source framebuffers.Source
}

// New creates an unbound element with a zero-size region at scale 1.
//
// source resolves the blurred texture of the bound output at draw time; nil
// selects framebuffers.Default(). A new element reports Dirty until its first
// update.
func New(source framebuffers.Source, opts ...Option) *Element {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if source == nil {
		source = framebuffers.Default()
	}
	return &Element{
		id:    render.NewID(),
		dirty: true,
		state: State{
			Scale:        1,
			CornerRadius: o.cornerRadius,
		},
		source: source,
	}
}

// Resize sets the region size and scale.
//
// The commit counter advances on every call, whether or not anything
// changed; Dirty reports whether it did.
func (e *Element) Resize(size geom.Size, scale float64) {
	next := e.state
	next.Size = size
	next.Scale = scale

	e.dirty = next != e.state
	e.state = next
	e.commit.Increment()
}

// Bind places the element and attaches it to an output, recording the
// renderer's context identity. A zero out unbinds the element.
//
// Bind marks the element dirty if the state changed but never clears the
// flag, and does not touch the commit counter: it completes the frame
// update started by Resize.
func (e *Element) Bind(r render.Renderer, location geom.Point, noise float32, out output.ID) *Element {
	next := e.state
	next.Location = location
	next.Noise = noise
	next.Output = out
	next.ContextID = r.ContextID()

	if next != e.state {
		e.dirty = true
	}
	e.state = next
	return e
}

// SetCornerRadius changes the corner radius, with the same change tracking
// rules as Bind.
func (e *Element) SetCornerRadius(radius float32) *Element {
	next := e.state
	next.CornerRadius = radius

	if next != e.state {
		e.dirty = true
	}
	e.state = next
	return e
}

// Dirty reports whether the most recent update changed the state.
func (e *Element) Dirty() bool {
	return e.dirty
}

// State returns a copy of the current state.
func (e *Element) State() State {
	return e.state
}

// ID implements render.Element.
func (e *Element) ID() render.ID {
	return e.id
}

// CurrentCommit implements render.Element.
func (e *Element) CurrentCommit() render.CommitCounter {
	return e.commit
}

// Src implements render.Element: the logical region projected through the
// element scale, without rotation.
func (e *Element) Src() geom.BufferRect {
	s := e.state
	return geom.NewRect(s.Location, s.Size).ToBuffer(s.Scale, geom.Normal, s.Size)
}

// Geometry implements render.Element.
//
// Location and size are rounded to physical pixels independently and the
// result is then expanded to the enclosing integer rectangle. Rounding the
// far edge instead would snap differently at fractional scales.
func (e *Element) Geometry(scale geom.Scale) geom.PhysicalRect {
	return geom.PhysicalRectF{
		Loc:  e.state.Location.ToPhysicalRound(scale),
		Size: e.state.Size.ToPhysicalRound(scale),
	}.ToIntUp()
}

// Location implements render.Element.
func (e *Element) Location(scale geom.Scale) geom.PhysicalPoint {
	return e.Geometry(scale).Loc()
}

// Transform implements render.Element. Blurred content is never rotated.
func (e *Element) Transform() geom.Transform {
	return geom.Normal
}

// Alpha implements render.Element. The blur layer is always opaque;
// rounding and noise are applied by the finishing shader.
func (e *Element) Alpha() float32 {
	return 1.0
}

// Kind implements render.Element.
func (e *Element) Kind() render.Kind {
	return render.KindUnspecified
}
