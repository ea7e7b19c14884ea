// Package entity holds the game objects that take part in collision
// detection: the player ship, asteroids and bullets.
//
// Every entity is a convex wireframe polygon defined in local space and
// placed in the world by a position and a rotation. Update advances the
// position by the velocity and caches both the current world polygon and
// the polygon predicted for the next frame.
package entity

import (
	"github.com/vovakirdan/tui-asteroids/internal/core"
	"github.com/vovakirdan/tui-asteroids/internal/spatial"
)

// Kind identifies what an entity is for collision classification.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindAsteroid
	KindBullet
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindAsteroid:
		return "asteroid"
	case KindBullet:
		return "bullet"
	default:
		return "unknown"
	}
}

// Size is the size class of an asteroid. Larger sizes split into the next one.
type Size uint8

const (
	SizeLarge Size = iota
	SizeMedium
	SizeSmall
)

// String returns a human-readable name for the size.
func (s Size) String() string {
	switch s {
	case SizeLarge:
		return "large"
	case SizeMedium:
		return "medium"
	case SizeSmall:
		return "small"
	default:
		return "unknown"
	}
}

// Entity is a moving convex polygon.
type Entity struct {
	id       uint64
	kind     Kind
	size     Size
	pos      core.Vec2
	vel      core.Vec2
	rotation float64 // degrees, clockwise, 0 = pointing up
	spin     float64 // degrees added to rotation every update

	local     []core.Vec2
	world     []core.Vec2
	predicted []core.Vec2
	bounds    core.Bounds
	swept     core.Bounds

	color    core.Color
	disabled bool
	split    bool
	touching bool

	membership spatial.Membership[*Entity]
}

// New creates an entity from a local-space polygon and places it at pos.
// The polygon must be convex and wound consistently.
func New(id uint64, kind Kind, local []core.Vec2, pos, vel core.Vec2) *Entity {
	e := &Entity{
		id:        id,
		kind:      kind,
		pos:       pos,
		vel:       vel,
		local:     local,
		world:     make([]core.Vec2, len(local)),
		predicted: make([]core.Vec2, len(local)),
		color:     core.ColorWhite,
	}
	e.refresh()
	return e
}

// ID returns the entity's unique identifier.
func (e *Entity) ID() uint64 { return e.id }

// Kind returns the entity kind.
func (e *Entity) Kind() Kind { return e.kind }

// Size returns the asteroid size class. Meaningless for other kinds.
func (e *Entity) Size() Size { return e.size }

// Position returns the world position of the polygon origin.
func (e *Entity) Position() core.Vec2 { return e.pos }

// Velocity returns the per-frame displacement.
func (e *Entity) Velocity() core.Vec2 { return e.vel }

// Rotation returns the rotation in degrees.
func (e *Entity) Rotation() float64 { return e.rotation }

// Points returns the current world-space polygon.
func (e *Entity) Points() []core.Vec2 { return e.world }

// PredictedPoints returns the world-space polygon one frame ahead.
func (e *Entity) PredictedPoints() []core.Vec2 { return e.predicted }

// Bounds returns the axis-aligned bounding rectangle of the current polygon.
func (e *Entity) Bounds() core.Bounds { return e.bounds }

// SweptBounds encloses the current and predicted polygons.
func (e *Entity) SweptBounds() core.Bounds { return e.swept }

// Membership returns the spatial index back-reference.
func (e *Entity) Membership() *spatial.Membership[*Entity] { return &e.membership }

// Color returns the outline colour.
func (e *Entity) Color() core.Color { return e.color }

// SetColor changes the outline colour.
func (e *Entity) SetColor(c core.Color) { e.color = c }

// SetPosition moves the entity and refreshes its cached geometry.
func (e *Entity) SetPosition(p core.Vec2) {
	e.pos = p
	e.refresh()
}

// SetVelocity changes the per-frame displacement.
func (e *Entity) SetVelocity(v core.Vec2) {
	e.vel = v
	e.refresh()
}

// Rotate turns the polygon by deg degrees.
func (e *Entity) Rotate(deg float64) {
	e.rotation = normalizeDegrees(e.rotation + deg)
	e.refresh()
}

// Update advances the entity by one frame.
func (e *Entity) Update() {
	if e.spin != 0 {
		e.rotation = normalizeDegrees(e.rotation + e.spin)
	}
	e.pos = e.pos.Add(e.vel)
	e.refresh()
}

// Disable flags a bullet as spent. The owner removes it after the collision pass.
func (e *Entity) Disable() { e.disabled = true }

// Disabled reports whether the entity has been disabled.
func (e *Entity) Disabled() bool { return e.disabled }

// MarkForSplit flags an asteroid to be split after the collision pass.
func (e *Entity) MarkForSplit() { e.split = true }

// MarkedForSplit reports whether the entity is waiting to be split.
func (e *Entity) MarkedForSplit() bool { return e.split }

// SetTouching records whether an asteroid touched another asteroid this frame.
func (e *Entity) SetTouching(v bool) { e.touching = v }

// Touching reports whether the asteroid touched another asteroid this frame.
func (e *Entity) Touching() bool { return e.touching }

// refresh recomputes world points, predicted points and both boxes.
func (e *Entity) refresh() {
	for i, p := range e.local {
		w := p.Rotate(e.rotation).Add(e.pos)
		e.world[i] = w
		e.predicted[i] = w.Add(e.vel)
	}
	e.bounds = core.BoundsOf(e.world)
	e.swept = e.bounds.Union(core.BoundsOf(e.predicted))
}

func normalizeDegrees(d float64) float64 {
	for d >= 360 {
		d -= 360
	}
	for d < 0 {
		d += 360
	}
	return d
}
