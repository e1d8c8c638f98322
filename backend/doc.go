// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package backend provides a pluggable rendering backend registry.
//
// Render elements draw into frames produced by a backend Renderer. Each
// backend implementation lives in its own sub-package and registers itself
// on import:
//
//	import _ "github.com/gogpu/effects/backend/software"
//
// # Backend Selection
//
// Use Default() to get the best available backend, or Get() to request
// a specific backend by name:
//
//	// Get the default (best available) backend
//	r := backend.Default()
//
//	// Or request a specific backend
//	r := backend.Get("software")
//
// # Available Backends
//
//   - "wgpu": GPU renderer over gogpu/wgpu HAL (needs a linked HAL backend
//     and a device to open)
//   - "software": CPU rasterizer over *image.RGBA (always available)
//
// Default() prefers "wgpu" and falls back to "software" when no GPU device
// can be opened.
//
// The composite sub-package wraps any Renderer in an intermediate-frame
// backend; it is not registered by name.
package backend
