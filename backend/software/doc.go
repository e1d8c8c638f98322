// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package software implements a CPU rendering backend.
//
// The software backend executes textured-quad draws on *image.RGBA targets.
// Shader programs are interpreted by name: each program known to the backend
// has a Go fragment function equivalent to its WGSL fragment stage.
//
// Example:
//
//	r := software.NewRenderer()
//	tex := r.NewTexture(blurred)
//	target := render.NewPixmapTarget(1920, 1080)
//
//	frame, err := r.BeginFrame(target)
//	if err != nil {
//		return err
//	}
//	// ... draw elements ...
//	err = frame.Finish()
//
// The backend registers itself as "software" in the backend registry.
package software
