// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geom

// Transform is one of the eight output transforms (rotation and flip).
type Transform uint8

const (
	// Normal is the identity transform.
	Normal Transform = iota
	// Rotate90 rotates content by 90 degrees counter-clockwise.
	Rotate90
	// Rotate180 rotates content by 180 degrees.
	Rotate180
	// Rotate270 rotates content by 270 degrees counter-clockwise.
	Rotate270
	// Flipped mirrors content around the vertical axis.
	Flipped
	// Flipped90 mirrors, then rotates by 90 degrees.
	Flipped90
	// Flipped180 mirrors, then rotates by 180 degrees.
	Flipped180
	// Flipped270 mirrors, then rotates by 270 degrees.
	Flipped270
)

// String returns the transform name.
func (t Transform) String() string {
	switch t {
	case Normal:
		return "Normal"
	case Rotate90:
		return "Rotate90"
	case Rotate180:
		return "Rotate180"
	case Rotate270:
		return "Rotate270"
	case Flipped:
		return "Flipped"
	case Flipped90:
		return "Flipped90"
	case Flipped180:
		return "Flipped180"
	case Flipped270:
		return "Flipped270"
	default:
		return "Unknown"
	}
}

// SwapsAxes reports whether the transform exchanges width and height.
func (t Transform) SwapsAxes() bool {
	switch t {
	case Rotate90, Rotate270, Flipped90, Flipped270:
		return true
	default:
		return false
	}
}

// transformRect maps r, located inside an area of the given size, through t.
func (t Transform) transformRect(r BufferRect, area Size) BufferRect {
	switch t {
	case Rotate90:
		return BufferRect{X: area.H - r.Y - r.H, Y: r.X, W: r.H, H: r.W}
	case Rotate180:
		return BufferRect{X: area.W - r.X - r.W, Y: area.H - r.Y - r.H, W: r.W, H: r.H}
	case Rotate270:
		return BufferRect{X: r.Y, Y: area.W - r.X - r.W, W: r.H, H: r.W}
	case Flipped:
		return BufferRect{X: area.W - r.X - r.W, Y: r.Y, W: r.W, H: r.H}
	case Flipped90:
		return BufferRect{X: r.Y, Y: r.X, W: r.H, H: r.W}
	case Flipped180:
		return BufferRect{X: r.X, Y: area.H - r.Y - r.H, W: r.W, H: r.H}
	case Flipped270:
		return BufferRect{X: area.H - r.Y - r.H, Y: area.W - r.X - r.W, W: r.H, H: r.W}
	default:
		return r
	}
}
