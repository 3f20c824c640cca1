// Package geometry provides basic geometric types used throughout the application.
package geometry

import (
	"image"
)

// PointInt represents a 2D point with integer coordinates.
type PointInt struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NewPointInt creates a new PointInt.
func NewPointInt(x, y int) PointInt {
	return PointInt{X: x, Y: y}
}

// RectInt represents a rectangle with integer coordinates. X and Y are the
// top-left corner; the right and bottom edges are exclusive.
type RectInt struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewRectInt creates a new RectInt.
func NewRectInt(x, y, width, height int) RectInt {
	return RectInt{X: x, Y: y, Width: width, Height: height}
}

// FromImageRect converts a standard library image.Rectangle.
func FromImageRect(r image.Rectangle) RectInt {
	return RectInt{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// ToImageRect converts to a standard library image.Rectangle.
func (r RectInt) ToImageRect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Right returns the exclusive right edge.
func (r RectInt) Right() int {
	return r.X + r.Width
}

// Bottom returns the exclusive bottom edge.
func (r RectInt) Bottom() int {
	return r.Y + r.Height
}

// Empty returns true if the rectangle has no area.
func (r RectInt) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains returns true if the point is inside the rectangle.
func (r RectInt) Contains(p PointInt) bool {
	return p.X >= r.X && p.X < r.Right() &&
		p.Y >= r.Y && p.Y < r.Bottom()
}

// Expand returns the rectangle grown by margin on all four sides.
// A negative margin shrinks it.
func (r RectInt) Expand(margin int) RectInt {
	return RectInt{
		X:      r.X - margin,
		Y:      r.Y - margin,
		Width:  r.Width + 2*margin,
		Height: r.Height + 2*margin,
	}
}

// Intersect returns the overlap of two rectangles. The result is empty if
// they do not overlap.
func (r RectInt) Intersect(other RectInt) RectInt {
	x := max(r.X, other.X)
	y := max(r.Y, other.Y)
	x2 := min(r.Right(), other.Right())
	y2 := min(r.Bottom(), other.Bottom())
	if x2 < x {
		x2 = x
	}
	if y2 < y {
		y2 = y
	}
	return RectInt{X: x, Y: y, Width: x2 - x, Height: y2 - y}
}
