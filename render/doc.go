// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render defines the render element and backend contracts.
//
// A render loop composes an output from an ordered list of elements. Each
// element reports a stable [ID], a [CommitCounter] that advances whenever its
// content may have changed, and its geometry for a given output scale. The
// loop compares those values with what it saw last frame to find damage, and
// then asks the affected elements to draw themselves into a [Frame].
//
// # Key Principle
//
// Elements RECEIVE GPU resources, they do NOT own them. Textures, shader
// programs and frames are borrowed from the host renderer for the duration of
// a draw call, so dropping an element never has to release anything.
//
// # Core Interfaces
//
//   - Element: identity, commit counter and geometry queries
//   - RenderElement[F]: an Element that can draw into frames of type F
//   - Frame: a direct GPU-context frame executing textured-quad draws
//   - Renderer: the owner of a GPU context, identified by a ContextID
//
// # Backends
//
// Frames come from backends (see backend/software and backend/composite).
// A backend that renders through an intermediate frame exposes the direct
// frame it wraps, and elements are adapted to it by delegation rather than
// by reimplementing their draw logic.
//
// # Thread Safety
//
// Frames and elements are NOT thread-safe. Each frame should be used from a
// single goroutine. [Programs] is safe for concurrent use.
package render
