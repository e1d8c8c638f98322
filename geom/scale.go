// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geom

// Scale maps logical coordinates to physical or buffer coordinates.
// X and Y are kept separate so fractional non-uniform scales round per axis.
type Scale struct {
	X, Y float64
}

// UniformScale returns a Scale with the same factor on both axes.
func UniformScale(s float64) Scale {
	return Scale{X: s, Y: s}
}

// IsUniform reports whether both axes use the same factor.
func (s Scale) IsUniform() bool {
	return s.X == s.Y
}
