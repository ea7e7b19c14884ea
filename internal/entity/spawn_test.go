package entity

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-asteroids/internal/core"
)

func TestSpawnerIDsUnique(t *testing.T) {
	s := NewSpawner(DefaultParams(), 7)
	seen := make(map[uint64]bool)

	all := []*Entity{s.Player(), s.Asteroid(), s.Asteroid()}
	all = append(all, s.Bullet(all[0]))
	all = append(all, s.Split(all[1])...)

	for _, e := range all {
		if seen[e.ID()] {
			t.Fatalf("duplicate ID %d", e.ID())
		}
		seen[e.ID()] = true
	}
}

func TestSpawnerDeterministic(t *testing.T) {
	a := NewSpawner(DefaultParams(), 42).Asteroid()
	b := NewSpawner(DefaultParams(), 42).Asteroid()

	if a.Position() != b.Position() || a.Velocity() != b.Velocity() {
		t.Errorf("same seed produced different asteroids: %v/%v vs %v/%v",
			a.Position(), a.Velocity(), b.Position(), b.Velocity())
	}
	for i := range a.Points() {
		if a.Points()[i] != b.Points()[i] {
			t.Fatalf("outline point %d differs", i)
		}
	}
}

func TestAsteroidSpawnAvoidsCentre(t *testing.T) {
	p := DefaultParams()
	s := NewSpawner(p, 3)

	for range 200 {
		pos := s.Asteroid().Position()
		inX := pos.X > p.Field.Width/3 && pos.X < 2*p.Field.Width/3
		inY := pos.Y > p.Field.Height/3 && pos.Y < 2*p.Field.Height/3
		if inX || inY {
			t.Fatalf("asteroid spawned in the middle band at %v", pos)
		}
	}
}

func TestAsteroidOutline(t *testing.T) {
	p := DefaultParams()
	s := NewSpawner(p, 11)

	for size := SizeLarge; size <= SizeSmall; size++ {
		a := s.AsteroidAt(size, core.Vec2{}, core.Vec2{})
		if len(a.Points()) != p.AsteroidVertices {
			t.Errorf("%s asteroid has %d points, expected %d", size, len(a.Points()), p.AsteroidVertices)
		}
		for _, pt := range a.Points() {
			if r := pt.Len(); math.Abs(r-p.AsteroidRadii[size]) > 1e-9 {
				t.Errorf("%s asteroid point at radius %v, expected %v", size, r, p.AsteroidRadii[size])
			}
		}
	}
}

func TestSplit(t *testing.T) {
	s := NewSpawner(DefaultParams(), 5)

	tests := []struct {
		name      string
		size      Size
		fragments int
		next      Size
	}{
		{"large", SizeLarge, 2, SizeMedium},
		{"medium", SizeMedium, 2, SizeSmall},
		{"small", SizeSmall, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			parent := s.AsteroidAt(tc.size, core.V(50, 60), core.V(1, 0.5))
			frags := s.Split(parent)

			if len(frags) != tc.fragments {
				t.Fatalf("Split() returned %d fragments, expected %d", len(frags), tc.fragments)
			}
			if tc.fragments == 0 {
				return
			}

			if frags[0].Velocity() != core.V(2, 1) || frags[1].Velocity() != core.V(-2, -1) {
				t.Errorf("fragment velocities = %v, %v, expected (2,1), (-2,-1)",
					frags[0].Velocity(), frags[1].Velocity())
			}
			for _, f := range frags {
				if f.Size() != tc.next {
					t.Errorf("fragment size = %s, expected %s", f.Size(), tc.next)
				}
				if f.Position() != parent.Position() {
					t.Errorf("fragment position = %v, expected %v", f.Position(), parent.Position())
				}
			}
		})
	}
}

func TestBulletFollowsShooterHeading(t *testing.T) {
	s := NewSpawner(DefaultParams(), 1)
	p := s.Player()
	p.Rotate(90)

	b := s.Bullet(p)
	if !near(b.Velocity(), core.V(5, 0)) {
		t.Errorf("bullet velocity = %v, expected (5, 0)", b.Velocity())
	}
	if b.Position() != p.Position() {
		t.Errorf("bullet position = %v, expected %v", b.Position(), p.Position())
	}
	if b.Kind() != KindBullet {
		t.Errorf("bullet kind = %s", b.Kind())
	}
}
