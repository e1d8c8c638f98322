// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package output describes compositor outputs (monitors) as seen by
// render elements.
//
// Elements refer to outputs only through an [ID]: they never keep an
// [Output] alive, and per-output state (such as effect framebuffers) is
// looked up by ID in registries owned elsewhere.
package output

import (
	"github.com/rs/xid"

	"github.com/gogpu/effects/geom"
)

// ID identifies an output. The zero value means "no output".
type ID struct {
	id xid.ID
}

// NewID returns a new unique output ID.
func NewID() ID {
	return ID{id: xid.New()}
}

// IsZero reports whether id is the zero value.
func (id ID) IsZero() bool {
	return id.id.IsNil()
}

// String returns the textual form of id.
func (id ID) String() string {
	if id.IsZero() {
		return "none"
	}
	return id.id.String()
}

// Output is a compositor output.
type Output struct {
	// ID is the output identity.
	ID ID

	// Name is the connector name (e.g., "DP-1").
	Name string

	// Mode is the current mode size in physical pixels.
	Mode geom.PhysicalSize

	// Scale is the logical-to-physical scale factor.
	Scale float64

	// Transform is the output transform.
	Transform geom.Transform
}

// New creates an output with a fresh ID and the Normal transform.
func New(name string, mode geom.PhysicalSize, scale float64) *Output {
	return &Output{
		ID:    NewID(),
		Name:  name,
		Mode:  mode,
		Scale: scale,
	}
}

// GeomScale returns the output scale as a geom.Scale.
func (o *Output) GeomScale() geom.Scale {
	return geom.UniformScale(o.Scale)
}

// LogicalSize returns the output size in logical space.
func (o *Output) LogicalSize() geom.Size {
	w, h := float64(o.Mode.W), float64(o.Mode.H)
	if o.Transform.SwapsAxes() {
		w, h = h, w
	}
	return geom.Size{W: w / o.Scale, H: h / o.Scale}
}
