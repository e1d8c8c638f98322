// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package wgpu implements a GPU rendering backend over gogpu/wgpu HAL.
//
// Draws run the effect shader programs on the device's queue. A frame
// uploads the target pixmap into a render texture, records one render
// pass per draw and reads the texture back into the pixmap on Finish.
//
// The device comes from the host through a render.DeviceHandle that also
// exposes HalDevice() and HalQueue():
//
//	r, err := wgpu.NewRenderer(provider)
//	if err != nil {
//		return err
//	}
//	defer r.Destroy()
//
// Open creates a headless device on a registered HAL backend. HAL backends
// register themselves on import:
//
//	import _ "github.com/gogpu/wgpu/hal/vulkan"
//
// The backend registers itself as "wgpu" in the backend registry. The
// registry factory opens the first available GPU backend and reports the
// backend as unavailable when none can be opened.
package wgpu
