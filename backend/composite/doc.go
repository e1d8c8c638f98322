// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package composite implements an intermediate rendering backend.
//
// A composite Frame wraps a direct render.Frame. Elements draw into the
// direct frame, which targets an intermediate buffer; Finish composites the
// intermediate onto the real target with source-over blending.
//
// Elements that already implement render.RenderElement[render.Frame] gain
// composite support through Adapt, which forwards every draw to the frame's
// direct frame unchanged:
//
//	r := composite.NewRenderer(software.NewRenderer())
//	frame, err := r.BeginFrame(target)
//	if err != nil {
//		return err
//	}
//	err = composite.Adapt(elem).Draw(frame, src, dst, damage, nil)
package composite
