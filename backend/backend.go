// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"errors"
	"image"

	"github.com/gogpu/effects/render"
)

// ErrBackendNotAvailable is returned when a requested backend is not available.
var ErrBackendNotAvailable = errors.New("backend: not available")

// Renderer is a direct rendering backend.
//
// A Renderer owns one GPU (or CPU) context and produces direct frames for
// targets. Backends are registered via Register() and selected via Get() or
// Default().
type Renderer interface {
	render.Renderer

	// Name returns the backend identifier (e.g., "software").
	Name() string

	// Device returns the device the renderer draws with.
	Device() render.DeviceHandle

	// BeginFrame starts a direct frame drawing into target.
	BeginFrame(target *render.PixmapTarget) (render.Frame, error)
}

// TextureUploader is implemented by renderers that can create textures from
// CPU images.
type TextureUploader interface {
	// Upload copies img into a new texture owned by the renderer.
	Upload(img image.Image) (render.Texture, error)
}
