// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package geom provides the coordinate types used by render elements.
//
// Three coordinate spaces are distinguished by type:
//
//   - Logical: compositor layout space, float64 ([Point], [Size], [Rect]).
//     Independent of output scale.
//   - Buffer: texture sampling space, float64 ([BufferRect]).
//   - Physical: output pixel space, integer ([PhysicalPoint], [PhysicalSize],
//     [PhysicalRect]), with [PhysicalRectF] as the float intermediate used
//     while snapping to pixels.
//
// Conversions between spaces go through a [Scale] and, for buffer space,
// a [Transform].
package geom
