// Package simplekit is a small frame-driven UI toolkit runtime. A host
// windowing system feeds it raw input once per frame; a bank of translators
// turns that input into semantic events (click, dblclick, drag, keypress),
// which are dispatched before the animation and draw callbacks run.
package simplekit

import "math"

// Rect represents a rectangular area of cells
type Rect struct {
	X, Y int // Top-left position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the specified bounds
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the X coordinate of the right edge (exclusive)
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the Y coordinate of the bottom edge (exclusive)
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Center returns a w x h rectangle centered within this rectangle
func (r Rect) Center(w, h int) Rect {
	return NewRect(r.X+(r.W-w)/2, r.Y+(r.H-h)/2, w, h)
}

// Contains checks if a point is within this rectangle
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// ContainsPoint is Contains for event coordinates, which may be fractional
func (r Rect) ContainsPoint(x, y float64) bool {
	return r.Contains(int(math.Floor(x)), int(math.Floor(y)))
}

// Intersect returns the intersection of this rectangle with another
func (r Rect) Intersect(other Rect) Rect {
	x1 := max(r.X, other.X)
	y1 := max(r.Y, other.Y)
	x2 := min(r.Right(), other.Right())
	y2 := min(r.Bottom(), other.Bottom())

	if x1 >= x2 || y1 >= y2 {
		return Rect{}
	}
	return NewRect(x1, y1, x2-x1, y2-y1)
}

// Move returns a new rectangle offset by the specified amount
func (r Rect) Move(dx, dy int) Rect {
	return NewRect(r.X+dx, r.Y+dy, r.W, r.H)
}

// Clamp returns r moved so it lies inside bounds where possible
func (r Rect) Clamp(bounds Rect) Rect {
	r.X = min(max(r.X, bounds.X), bounds.Right()-r.W)
	r.Y = min(max(r.Y, bounds.Y), bounds.Bottom()-r.H)
	r.X = max(r.X, bounds.X)
	r.Y = max(r.Y, bounds.Y)
	return r
}

// IsEmpty returns true if the rectangle has zero area
func (r Rect) IsEmpty() bool {
	return r.W <= 0 || r.H <= 0
}
