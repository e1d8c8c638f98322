// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package damage

import (
	"fmt"
	"log/slog"

	"github.com/samber/lo"

	"github.com/gogpu/effects"
	"github.com/gogpu/effects/geom"
	"github.com/gogpu/effects/render"
)

// Result describes a rendered frame.
type Result struct {
	// Damage is the output damage of the frame.
	Damage []geom.PhysicalRect

	// Drawn is the number of elements that were drawn.
	Drawn int
}

// Render computes the frame damage and draws, back to front, every element
// whose geometry meets it. Each element receives only the damage inside its
// geometry, relative to its own origin.
//
// A draw error aborts the frame. The returned error wraps it, so errors.As
// reaches the backend error.
func Render[F any](t *Tracker, frame F, elements []render.RenderElement[F]) (Result, error) {
	dmg := t.Damage(lo.Map(elements, func(e render.RenderElement[F], _ int) render.Element {
		return e
	}))
	res := Result{Damage: dmg}

	for _, e := range elements {
		geo := e.Geometry(t.scale)
		local := elementDamage(dmg, geo)
		if len(local) == 0 {
			continue
		}
		if err := e.Draw(frame, e.Src(), geo, local, nil); err != nil {
			return res, fmt.Errorf("damage: draw element %s: %w", e.ID(), err)
		}
		res.Drawn++
	}

	effects.Logger().Debug("damage: frame rendered",
		slog.Int("rects", len(dmg)),
		slog.Int("elements", len(elements)),
		slog.Int("drawn", res.Drawn))
	return res, nil
}

// elementDamage returns the parts of dmg inside geo, relative to geo.
func elementDamage(dmg []geom.PhysicalRect, geo geom.PhysicalRect) []geom.PhysicalRect {
	origin := geom.PhysicalPoint{X: -geo.X, Y: -geo.Y}
	inside := lo.Filter(
		lo.Map(dmg, func(d geom.PhysicalRect, _ int) geom.PhysicalRect { return d.Intersect(geo) }),
		func(d geom.PhysicalRect, _ int) bool { return !d.IsEmpty() },
	)
	return lo.Map(inside, func(d geom.PhysicalRect, _ int) geom.PhysicalRect {
		return d.Translate(origin)
	})
}
