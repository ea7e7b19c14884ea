package entity

import (
	"math"
	"math/rand"
	"sort"

	"github.com/vovakirdan/tui-asteroids/internal/core"
)

// Params holds the shape and motion constants used when spawning entities.
type Params struct {
	Field Field

	PlayerScale float64
	BulletScale float64
	BulletSpeed float64

	AsteroidRadii    [3]float64 // indexed by Size
	AsteroidVertices int
	AsteroidSpin     float64
	AsteroidSpeed    float64
	SplitFactor      float64
}

// DefaultParams returns the classic constants for a 1024x768 field.
func DefaultParams() Params {
	return Params{
		Field:            Field{Width: 1024, Height: 768},
		PlayerScale:      25,
		BulletScale:      10,
		BulletSpeed:      5,
		AsteroidRadii:    [3]float64{55, 32, 12},
		AsteroidVertices: 11,
		AsteroidSpin:     1,
		AsteroidSpeed:    2,
		SplitFactor:      2,
	}
}

// Spawner creates entities with unique, deterministic IDs.
type Spawner struct {
	params Params
	rng    *rand.Rand
	nextID uint64
}

// NewSpawner creates a spawner seeded for reproducible shapes and positions.
func NewSpawner(p Params, seed int64) *Spawner {
	return &Spawner{
		params: p,
		rng:    rand.New(rand.NewSource(seed)),
		nextID: 1,
	}
}

// Params returns the spawner's constants.
func (s *Spawner) Params() Params {
	return s.params
}

// SetAsteroidSpeed changes the launch speed of newly spawned asteroids.
func (s *Spawner) SetAsteroidSpeed(v float64) {
	s.params.AsteroidSpeed = v
}

func (s *Spawner) id() uint64 {
	id := s.nextID
	s.nextID++
	return id
}

// triangle returns an isosceles ship-like triangle pointing up.
func triangle(scale float64) []core.Vec2 {
	return []core.Vec2{
		core.V(0, -scale),
		core.V(-scale/2, scale/2),
		core.V(scale/2, scale/2),
	}
}

// Player creates the ship at the centre of the field, at rest.
func (s *Spawner) Player() *Entity {
	e := New(s.id(), KindPlayer, triangle(s.params.PlayerScale), s.params.Field.Center(), core.Vec2{})
	e.color = core.ColorCyan
	return e
}

// Bullet creates a bullet leaving the shooter's position along its heading.
func (s *Spawner) Bullet(shooter *Entity) *Entity {
	vel := core.Heading(shooter.rotation).Scale(s.params.BulletSpeed)
	e := New(s.id(), KindBullet, triangle(s.params.BulletScale), shooter.pos, vel)
	e.rotation = shooter.rotation
	e.refresh()
	e.color = core.ColorBrightYellow
	return e
}

// Asteroid creates a large asteroid at a random position outside the middle
// third of the field, moving in a random direction.
func (s *Spawner) Asteroid() *Entity {
	f := s.params.Field
	x := s.avoidMiddleThird(f.Width)
	y := s.avoidMiddleThird(f.Height)
	angle := s.rng.Float64() * 2 * math.Pi
	sin, cos := math.Sincos(angle)
	vel := core.V(sin, cos).Scale(s.params.AsteroidSpeed)
	return s.AsteroidAt(SizeLarge, core.V(x, y), vel)
}

// AsteroidAt creates an asteroid of the given size with a fresh random outline.
func (s *Spawner) AsteroidAt(size Size, pos, vel core.Vec2) *Entity {
	e := New(s.id(), KindAsteroid, s.outline(s.params.AsteroidRadii[size]), pos, vel)
	e.size = size
	e.spin = s.params.AsteroidSpin
	e.color = core.ColorWhite
	return e
}

// Split returns the fragments of an asteroid: two of the next size moving
// in opposite directions at SplitFactor times the parent's velocity.
// Small asteroids leave no fragments.
func (s *Spawner) Split(parent *Entity) []*Entity {
	if parent.kind != KindAsteroid || parent.size >= SizeSmall {
		return nil
	}
	vel := parent.vel.Scale(s.params.SplitFactor)
	next := parent.size + 1
	return []*Entity{
		s.AsteroidAt(next, parent.pos, vel),
		s.AsteroidAt(next, parent.pos, vel.Neg()),
	}
}

// outline places AsteroidVertices points at sorted random angles on a
// circle, which always yields a convex polygon.
func (s *Spawner) outline(radius float64) []core.Vec2 {
	n := max(s.params.AsteroidVertices, 3)
	angles := make([]float64, n)
	for i := range angles {
		angles[i] = s.rng.Float64() * 2 * math.Pi
	}
	sort.Float64s(angles)

	pts := make([]core.Vec2, n)
	for i, a := range angles {
		sin, cos := math.Sincos(a)
		pts[i] = core.V(radius*sin, radius*cos)
	}
	return pts
}

// avoidMiddleThird draws a coordinate in [1, extent] outside (extent/3, 2*extent/3).
func (s *Spawner) avoidMiddleThird(extent float64) float64 {
	third := extent / 3
	for {
		v := 1 + s.rng.Float64()*(extent-1)
		if v <= third || v >= 2*third {
			return v
		}
	}
}
