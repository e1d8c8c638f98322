// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package composite

import (
	"github.com/gogpu/effects/geom"
	"github.com/gogpu/effects/render"
)

// Element adapts a direct render element to composite frames.
//
// The identity and geometry contract is the direct element's own; Draw is a
// pure pass-through to the frame's direct frame.
type Element struct {
	render.Element
	direct render.RenderElement[render.Frame]
}

// Adapt wraps a direct render element for composite frames.
func Adapt(e render.RenderElement[render.Frame]) *Element {
	return &Element{Element: e, direct: e}
}

// Direct returns the adapted element.
func (e *Element) Direct() render.RenderElement[render.Frame] {
	return e.direct
}

// Draw implements render.RenderElement for composite frames.
func (e *Element) Draw(frame *Frame, src geom.BufferRect, dst geom.PhysicalRect, damage, opaque []geom.PhysicalRect) error {
	return e.direct.Draw(frame.AsDirectFrame(), src, dst, damage, opaque)
}

// UnderlyingStorage implements render.RenderElement.
func (e *Element) UnderlyingStorage(r render.Renderer) render.UnderlyingStorage {
	return e.direct.UnderlyingStorage(r)
}
