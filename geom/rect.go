// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geom

import "math"

// Rect is a rectangle in logical space.
type Rect struct {
	Loc  Point
	Size Size
}

// NewRect creates a logical rectangle from a location and a size.
func NewRect(loc Point, size Size) Rect {
	return Rect{Loc: loc, Size: size}
}

// ToBuffer converts r to buffer space: coordinates are multiplied by scale
// and the result is mapped through t inside area (the logical extent of the
// buffer). Normal leaves orientation unchanged.
func (r Rect) ToBuffer(scale float64, t Transform, area Size) BufferRect {
	scaled := BufferRect{
		X: r.Loc.X * scale,
		Y: r.Loc.Y * scale,
		W: r.Size.W * scale,
		H: r.Size.H * scale,
	}
	return t.transformRect(scaled, Size{W: area.W * scale, H: area.H * scale})
}

// BufferRect is a sampling rectangle in buffer space.
type BufferRect struct {
	X, Y, W, H float64
}

// IsEmpty reports whether the rectangle has no area.
func (r BufferRect) IsEmpty() bool {
	return r.W <= 0 || r.H <= 0
}

// PhysicalRectF is a physical rectangle before pixel snapping.
type PhysicalRectF struct {
	Loc  PhysicalPointF
	Size PhysicalSizeF
}

// ToIntUp returns the smallest integer rectangle enclosing r: the origin is
// floored and the far edge is ceiled.
func (r PhysicalRectF) ToIntUp() PhysicalRect {
	x0 := math.Floor(r.Loc.X)
	y0 := math.Floor(r.Loc.Y)
	x1 := math.Ceil(r.Loc.X + r.Size.W)
	y1 := math.Ceil(r.Loc.Y + r.Size.H)
	return PhysicalRect{
		X: int(x0),
		Y: int(y0),
		W: int(x1 - x0),
		H: int(y1 - y0),
	}
}

// PhysicalRect is a pixel rectangle on an output.
type PhysicalRect struct {
	X, Y, W, H int
}

// PhysicalRectFromSize returns the rectangle at the origin covering size.
func PhysicalRectFromSize(size PhysicalSize) PhysicalRect {
	return PhysicalRect{W: size.W, H: size.H}
}

// Loc returns the top-left corner.
func (r PhysicalRect) Loc() PhysicalPoint {
	return PhysicalPoint{X: r.X, Y: r.Y}
}

// Size returns the rectangle extent.
func (r PhysicalRect) Size() PhysicalSize {
	return PhysicalSize{W: r.W, H: r.H}
}

// IsEmpty reports whether the rectangle has no area.
func (r PhysicalRect) IsEmpty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether the pixel (x, y) lies inside r.
func (r PhysicalRect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Overlaps reports whether r and o share at least one pixel.
func (r PhysicalRect) Overlaps(o PhysicalRect) bool {
	return !r.Intersect(o).IsEmpty()
}

// Intersect returns the common area of r and o.
// The result is empty (zero value) when they do not overlap.
func (r PhysicalRect) Intersect(o PhysicalRect) PhysicalRect {
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.X+r.W, o.X+o.W)
	y1 := min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return PhysicalRect{}
	}
	return PhysicalRect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Union returns the smallest rectangle containing both r and o.
// Empty rectangles are ignored.
func (r PhysicalRect) Union(o PhysicalRect) PhysicalRect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	x0 := min(r.X, o.X)
	y0 := min(r.Y, o.Y)
	x1 := max(r.X+r.W, o.X+o.W)
	y1 := max(r.Y+r.H, o.Y+o.H)
	return PhysicalRect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Translate returns r moved by d.
func (r PhysicalRect) Translate(d PhysicalPoint) PhysicalRect {
	return PhysicalRect{X: r.X + d.X, Y: r.Y + d.Y, W: r.W, H: r.H}
}

// Subtract returns the parts of r not covered by o as up to four disjoint
// rectangles: full-width bands above and below o, then the pieces left and
// right of it.
func (r PhysicalRect) Subtract(o PhysicalRect) []PhysicalRect {
	in := r.Intersect(o)
	if in.IsEmpty() {
		if r.IsEmpty() {
			return nil
		}
		return []PhysicalRect{r}
	}
	var out []PhysicalRect
	if in.Y > r.Y {
		out = append(out, PhysicalRect{X: r.X, Y: r.Y, W: r.W, H: in.Y - r.Y})
	}
	if end := in.Y + in.H; end < r.Y+r.H {
		out = append(out, PhysicalRect{X: r.X, Y: end, W: r.W, H: r.Y + r.H - end})
	}
	if in.X > r.X {
		out = append(out, PhysicalRect{X: r.X, Y: in.Y, W: in.X - r.X, H: in.H})
	}
	if end := in.X + in.W; end < r.X+r.W {
		out = append(out, PhysicalRect{X: end, Y: in.Y, W: r.X + r.W - end, H: in.H})
	}
	return out
}
