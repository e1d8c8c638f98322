// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package effects provides compositor render elements for post-processing
// effects sampled from per-output effect framebuffers.
//
// # Overview
//
// The library is built around the render element contract of the render
// package: an element is an identifiable unit of drawable content with a
// commit counter, so that a damage-tracking render loop can skip regions that
// did not change between frames. The blur package provides the blur element,
// which draws a region of an output's pre-blurred framebuffer with optional
// corner rounding and dithering noise.
//
// # Quick Start
//
//	store := framebuffers.NewStore()
//	store.SetBlur(out.ID, renderer.NewTexture(blurred))
//
//	elem := blur.New(store, blur.WithCornerRadius(12))
//	elem.Resize(geom.Sz(400, 300), out.Scale)
//	elem.Bind(renderer, geom.Pt(40, 40), 0.05, out.ID)
//
//	frame, _ := renderer.BeginFrame(target)
//	damage.Render(tracker, frame, []render.RenderElement[render.Frame]{elem})
//	frame.Finish()
//
// # Architecture
//
//   - geom: logical, buffer and physical coordinate types
//   - render: element contract, frame/renderer contract, programs, uniforms
//   - framebuffers: per-output effect framebuffer store (blurred textures)
//   - shaders: the blur-finish program and registry lookup
//   - blur: the blur render element
//   - backend/software: CPU frame executing textured-quad draws
//   - backend/composite: intermediate frame delegating to a direct frame
//   - damage: output damage tracking driven by commit counters
//   - recording: draw call recording frame
//   - backend: backend registry
//
// # Thread Safety
//
// Elements, frames and damage trackers belong to the render goroutine.
// The framebuffer store, program registries and the logger are safe for
// concurrent use.
package effects

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0-alpha.1"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0

	// VersionPrerelease is the prerelease identifier
	VersionPrerelease = "alpha.1"
)
