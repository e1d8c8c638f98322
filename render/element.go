// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/gogpu/effects/geom"

// Kind classifies an element for backend fast paths.
type Kind uint8

const (
	// KindUnspecified takes no part in plane assignment fast paths.
	KindUnspecified Kind = iota
	// KindCursor marks cursor content.
	KindCursor
	// KindScanoutCandidate marks content a backend may put on an overlay plane.
	KindScanoutCandidate
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindUnspecified:
		return "Unspecified"
	case KindCursor:
		return "Cursor"
	case KindScanoutCandidate:
		return "ScanoutCandidate"
	default:
		return "Unknown"
	}
}

// Element is the identity and geometry contract consumed by render loops.
type Element interface {
	// ID returns the element identity, stable across frames.
	ID() ID

	// CurrentCommit returns the element's content version. The render loop
	// diffs it against the value observed last frame for the same ID.
	CurrentCommit() CommitCounter

	// Src returns the sampling rectangle in buffer space.
	Src() geom.BufferRect

	// Geometry returns the destination rectangle in physical pixels.
	Geometry(scale geom.Scale) geom.PhysicalRect

	// Location returns the top-left corner of Geometry.
	Location(scale geom.Scale) geom.PhysicalPoint

	// Transform returns the content orientation.
	Transform() geom.Transform

	// Alpha returns the element opacity in [0, 1].
	Alpha() float32

	// Kind returns the element classification.
	Kind() Kind
}

// UnderlyingStorage exposes the raw texture behind an element so a backend
// can bypass the shader path. A nil UnderlyingStorage means none is exposed.
type UnderlyingStorage interface {
	Texture() Texture
}

// RenderElement is an Element that can draw into frames of type F.
//
// F is the backend frame type: Frame for direct rendering, or a backend
// specific wrapper frame. Implementations for wrapper frames should delegate
// to the direct implementation instead of duplicating draw logic.
type RenderElement[F any] interface {
	Element

	// Draw renders the element. src is in buffer space, dst in physical
	// output space; damage and opaque regions are relative to dst.
	Draw(frame F, src geom.BufferRect, dst geom.PhysicalRect, damage, opaque []geom.PhysicalRect) error

	// UnderlyingStorage returns the storage a backend may scan out directly,
	// or nil.
	UnderlyingStorage(r Renderer) UnderlyingStorage
}
