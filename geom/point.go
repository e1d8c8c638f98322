// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geom

import "math"

// Point is a position in logical space.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// ToPhysicalRound projects p through s and rounds each coordinate to the
// nearest physical pixel. The result stays in float form so that it can be
// combined with a separately rounded size before snapping.
func (p Point) ToPhysicalRound(s Scale) PhysicalPointF {
	return PhysicalPointF{
		X: math.Round(p.X * s.X),
		Y: math.Round(p.Y * s.Y),
	}
}

// Size is an extent in logical space.
type Size struct {
	W, H float64
}

// Sz is a convenience function to create a Size.
func Sz(w, h float64) Size {
	return Size{W: w, H: h}
}

// IsEmpty reports whether the size has no area.
func (s Size) IsEmpty() bool {
	return s.W <= 0 || s.H <= 0
}

// ToPhysicalRound projects s through sc and rounds each dimension to the
// nearest physical extent.
func (s Size) ToPhysicalRound(sc Scale) PhysicalSizeF {
	return PhysicalSizeF{
		W: math.Round(s.W * sc.X),
		H: math.Round(s.H * sc.Y),
	}
}

// PhysicalPoint is a pixel position on an output.
type PhysicalPoint struct {
	X, Y int
}

// Add returns the sum of two points.
func (p PhysicalPoint) Add(q PhysicalPoint) PhysicalPoint {
	return PhysicalPoint{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points.
func (p PhysicalPoint) Sub(q PhysicalPoint) PhysicalPoint {
	return PhysicalPoint{X: p.X - q.X, Y: p.Y - q.Y}
}

// PhysicalSize is a pixel extent on an output.
type PhysicalSize struct {
	W, H int
}

// IsEmpty reports whether the size has no area.
func (s PhysicalSize) IsEmpty() bool {
	return s.W <= 0 || s.H <= 0
}

// PhysicalPointF is a physical position before pixel snapping.
type PhysicalPointF struct {
	X, Y float64
}

// PhysicalSizeF is a physical extent before pixel snapping.
type PhysicalSizeF struct {
	W, H float64
}
