// Package core provides fundamental types and utilities shared by the game,
// the collision subsystem and the terminal front end.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Vec2 is a 2D vector in world units.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{X: x, Y: y}.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Neg returns -v.
func (v Vec2) Neg() Vec2 {
	return Vec2{-v.X, -v.Y}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Len returns the length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns v scaled to unit length.
// The zero vector is returned unchanged.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vec2{v.X / l, v.Y / l}
}

// Perp returns v rotated 90 degrees counter-clockwise in screen space: (-y, x).
func (v Vec2) Perp() Vec2 {
	return Vec2{-v.Y, v.X}
}

// Rotate returns v rotated by deg degrees around the origin.
// Positive angles turn clockwise on screen (y grows downward).
func (v Vec2) Rotate(deg float64) Vec2 {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Vec2{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

// Heading returns the unit vector a ship rotated by deg degrees points at.
// Zero degrees points up.
func Heading(deg float64) Vec2 {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Vec2{s, -c}
}

// Bounds is an axis-aligned rectangle in world units.
type Bounds struct {
	Left, Top     float64
	Width, Height float64
}

// Right returns the x-coordinate of the right edge.
func (b Bounds) Right() float64 {
	return b.Left + b.Width
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Bounds) Bottom() float64 {
	return b.Top + b.Height
}

// Center returns the centre point of the rectangle.
func (b Bounds) Center() Vec2 {
	return Vec2{b.Left + b.Width/2, b.Top + b.Height/2}
}

// Intersects reports whether b and o overlap with a non-empty area.
// Rectangles that only touch along an edge do not intersect.
func (b Bounds) Intersects(o Bounds) bool {
	if b.Left >= o.Right() || o.Left >= b.Right() {
		return false
	}
	if b.Top >= o.Bottom() || o.Top >= b.Bottom() {
		return false
	}
	return true
}

// Touches reports whether b and o overlap or share an edge or corner.
func (b Bounds) Touches(o Bounds) bool {
	return b.Left <= o.Right() && o.Left <= b.Right() &&
		b.Top <= o.Bottom() && o.Top <= b.Bottom()
}

// Union returns the smallest Bounds enclosing both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	left := math.Min(b.Left, o.Left)
	top := math.Min(b.Top, o.Top)
	return Bounds{
		Left:   left,
		Top:    top,
		Width:  math.Max(b.Right(), o.Right()) - left,
		Height: math.Max(b.Bottom(), o.Bottom()) - top,
	}
}

// Expand grows b by m on every side.
func (b Bounds) Expand(m float64) Bounds {
	return Bounds{Left: b.Left - m, Top: b.Top - m, Width: b.Width + 2*m, Height: b.Height + 2*m}
}

// Contains reports whether p lies inside b (right and bottom edges exclusive).
func (b Bounds) Contains(p Vec2) bool {
	return p.X >= b.Left && p.X < b.Right() && p.Y >= b.Top && p.Y < b.Bottom()
}

// BoundsOf returns the smallest Bounds enclosing all points.
// An empty slice yields the zero Bounds.
func BoundsOf(points []Vec2) Bounds {
	if len(points) == 0 {
		return Bounds{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Bounds{Left: minX, Top: minY, Width: maxX - minX, Height: maxY - minY}
}

// Rect is an integer rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
