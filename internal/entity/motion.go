package entity

import (
	"math"

	"github.com/vovakirdan/tui-asteroids/internal/core"
)

// Field is the rectangular play area, with the origin at the top-left corner.
type Field struct {
	Width, Height float64
}

// Center returns the middle of the field.
func (f Field) Center() core.Vec2 {
	return core.V(f.Width/2, f.Height/2)
}

// Bounds returns the field as a rectangle.
func (f Field) Bounds() core.Bounds {
	return core.Bounds{Width: f.Width, Height: f.Height}
}

// Wrap teleports the entity to the opposite edge once its shape has left
// the field entirely. It reports whether the entity moved.
func (e *Entity) Wrap(f Field) bool {
	b := e.bounds
	var shift core.Vec2

	switch {
	case b.Right() < 0:
		shift = core.V(f.Width+b.Width, 0)
	case b.Left >= f.Width:
		shift = core.V(-f.Width-b.Width, 0)
	case b.Bottom() < 0:
		shift = core.V(0, f.Height+b.Height)
	case b.Top >= f.Height:
		shift = core.V(0, -f.Height-b.Height)
	default:
		return false
	}

	e.SetPosition(e.pos.Add(shift))
	return true
}

// OutsideField reports whether the shape lies completely outside f.
func (e *Entity) OutsideField(f Field) bool {
	b := e.bounds
	return b.Right() < 0 || b.Left >= f.Width || b.Bottom() < 0 || b.Top >= f.Height
}

// Thrust accelerates the entity along its heading. The new velocity is
// only applied while both components stay below maxSpeed in magnitude.
func (e *Entity) Thrust(accel, maxSpeed float64) bool {
	v := e.vel.Add(core.Heading(e.rotation).Scale(accel))
	if math.Abs(v.X) >= maxSpeed || math.Abs(v.Y) >= maxSpeed {
		return false
	}
	e.SetVelocity(v)
	return true
}
