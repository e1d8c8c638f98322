// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package damage computes per-frame damage for an output and renders the
// render elements it touches.
//
// A Tracker remembers the commit counter and geometry each element had in
// the previous frame. Comparing them with the current frame yields the
// damaged regions: an element that appeared, moved, changed content or
// disappeared damages both where it was and where it is.
//
//	tracker, err := damage.NewTracker(out.Mode, out.GeomScale())
//	if err != nil {
//		return err
//	}
//	for each frame {
//		res, err := damage.Render(tracker, frame, elements)
//		...
//	}
package damage
