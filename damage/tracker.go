// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package damage

import (
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/samber/lo"

	"github.com/gogpu/effects/geom"
	"github.com/gogpu/effects/render"
)

// ErrInvalidMaxRects is returned by NewTracker for a non-positive rectangle budget.
var ErrInvalidMaxRects = errors.New("damage: max rects must be positive")

// snapshot is what the tracker remembers of an element between frames.
type snapshot struct {
	commit   render.CommitCounter
	geometry geom.PhysicalRect
}

// Tracker computes damage for one output.
//
// Tracker is NOT thread-safe: use one tracker per output, from the render
// goroutine.
type Tracker struct {
	size     geom.PhysicalSize
	scale    geom.Scale
	maxRects int
	seen     *lru.Cache[render.ID, snapshot]
	forgot   []geom.PhysicalRect
	full     bool
}

// NewTracker creates a tracker for an output of the given physical size and
// scale. The first frame is fully damaged.
func NewTracker(size geom.PhysicalSize, scale geom.Scale, opts ...Option) (*Tracker, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxRects <= 0 {
		return nil, ErrInvalidMaxRects
	}

	t := &Tracker{
		size:     size,
		scale:    scale,
		maxRects: o.maxRects,
		full:     true,
	}

	seen, err := lru.NewWithEvict[render.ID, snapshot](o.capacity, t.onForget)
	if err != nil {
		return nil, fmt.Errorf("damage: create element cache: %w", err)
	}
	t.seen = seen
	return t, nil
}

// onForget keeps the last geometry of an element that leaves the cache, so
// the area it covered is repainted.
func (t *Tracker) onForget(_ render.ID, s snapshot) {
	t.forgot = append(t.forgot, s.geometry)
}

// Size returns the output size.
func (t *Tracker) Size() geom.PhysicalSize {
	return t.size
}

// Scale returns the output scale.
func (t *Tracker) Scale() geom.Scale {
	return t.scale
}

// Resize changes the output size and scale. The next frame is fully damaged.
func (t *Tracker) Resize(size geom.PhysicalSize, scale geom.Scale) {
	t.size = size
	t.scale = scale
	t.full = true
}

// Reset forgets all elements. The next frame is fully damaged.
func (t *Tracker) Reset() {
	t.seen.Purge()
	t.forgot = t.forgot[:0]
	t.full = true
}

// Damage returns the damaged regions of the output for a frame showing
// elements, and records the elements' state for the next frame.
//
// Regions are clipped to the output and deduplicated. The whole output is
// returned on the first frame, after Resize or Reset, and whenever more
// than the configured number of rectangles would be returned.
func (t *Tracker) Damage(elements []render.Element) []geom.PhysicalRect {
	bounds := geom.PhysicalRectFromSize(t.size)

	var rects []geom.PhysicalRect
	present := make(map[render.ID]struct{}, len(elements))

	for _, e := range elements {
		id := e.ID()
		cur := snapshot{commit: e.CurrentCommit(), geometry: e.Geometry(t.scale)}
		present[id] = struct{}{}

		prev, ok := t.seen.Peek(id)
		switch {
		case !ok:
			rects = append(rects, cur.geometry)
		case prev != cur:
			rects = append(rects, prev.geometry, cur.geometry)
		}
		t.seen.Add(id, cur)
	}

	for _, id := range t.seen.Keys() {
		if _, ok := present[id]; ok {
			continue
		}
		if prev, ok := t.seen.Peek(id); ok {
			rects = append(rects, prev.geometry)
		}
		t.seen.Remove(id)
	}

	rects = append(rects, t.forgot...)
	t.forgot = t.forgot[:0]

	if t.full {
		t.full = false
		return []geom.PhysicalRect{bounds}
	}

	clipped := lo.Map(rects, func(r geom.PhysicalRect, _ int) geom.PhysicalRect {
		return r.Intersect(bounds)
	})
	rects = lo.Uniq(lo.Filter(clipped, func(r geom.PhysicalRect, _ int) bool {
		return !r.IsEmpty()
	}))

	if len(rects) > t.maxRects {
		return []geom.PhysicalRect{bounds}
	}
	return rects
}
