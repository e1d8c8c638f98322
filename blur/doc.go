// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package blur provides the blur render element.
//
// A blur Element draws a region of an output's blurred framebuffer (held in
// a framebuffers.Source) at a given location, optionally rounding its corners
// and adding dithering noise through the blur-finish shader program.
//
// # Frame Updates
//
// The scene builder updates an element once per frame, in two steps:
//
//	elem.Resize(size, scale)                  // intrinsic geometry
//	elem.Bind(renderer, location, noise, out) // placement and output
//
// Resize always advances the commit counter, so the render loop can tell the
// element was revisited; Dirty reports whether the full state actually
// changed.
//
// # Backends
//
// Element implements render.RenderElement[render.Frame] for direct frames.
// Composite returns an adapter for backend/composite frames, which forwards
// to the direct implementation through the frame's underlying direct frame.
package blur
