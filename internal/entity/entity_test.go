package entity

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-asteroids/internal/core"
)

func square(half float64) []core.Vec2 {
	return []core.Vec2{
		core.V(-half, -half),
		core.V(half, -half),
		core.V(half, half),
		core.V(-half, half),
	}
}

func near(a, b core.Vec2) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestUpdatePredictsNextFrame(t *testing.T) {
	e := New(1, KindAsteroid, square(1), core.V(10, 10), core.V(2, -1))
	e.Update()

	if e.Position() != core.V(12, 9) {
		t.Errorf("Position() = %v, expected (12, 9)", e.Position())
	}

	for i, p := range e.Points() {
		want := p.Add(core.V(2, -1))
		if !near(e.PredictedPoints()[i], want) {
			t.Errorf("PredictedPoints()[%d] = %v, expected %v", i, e.PredictedPoints()[i], want)
		}
	}

	b := e.Bounds()
	if b.Left != 11 || b.Top != 8 || b.Width != 2 || b.Height != 2 {
		t.Errorf("Bounds() = %+v, expected {11 8 2 2}", b)
	}
}

func TestSweptBoundsCoverPrediction(t *testing.T) {
	e := New(1, KindBullet, square(2), core.V(300, 300), core.V(5, 0))

	want := core.Bounds{Left: 298, Top: 298, Width: 9, Height: 4}
	if got := e.SweptBounds(); got != want {
		t.Errorf("SweptBounds() = %+v, expected %+v", got, want)
	}

	e.SetVelocity(core.V(0, -3))
	want = core.Bounds{Left: 298, Top: 295, Width: 4, Height: 7}
	if got := e.SweptBounds(); got != want {
		t.Errorf("SweptBounds() after SetVelocity = %+v, expected %+v", got, want)
	}
}

func TestRotateMovesPoints(t *testing.T) {
	e := New(1, KindPlayer, triangle(10), core.Vec2{}, core.Vec2{})
	e.Rotate(90)

	// The nose points right after a quarter turn
	if !near(e.Points()[0], core.V(10, 0)) {
		t.Errorf("nose = %v, expected (10, 0)", e.Points()[0])
	}

	e.Rotate(-450)
	if e.Rotation() != 0 {
		t.Errorf("Rotation() = %v, expected 0 after normalising", e.Rotation())
	}
}

func TestSpinAppliesEachUpdate(t *testing.T) {
	s := NewSpawner(DefaultParams(), 1)
	a := s.AsteroidAt(SizeLarge, core.V(100, 100), core.Vec2{})
	a.Update()
	a.Update()

	if a.Rotation() != 2 {
		t.Errorf("Rotation() = %v, expected 2", a.Rotation())
	}
}

func TestWrap(t *testing.T) {
	f := Field{Width: 100, Height: 100}

	tests := []struct {
		name    string
		pos     core.Vec2
		wrapped bool
		want    core.Vec2
	}{
		{"inside", core.V(50, 50), false, core.V(50, 50)},
		{"off left", core.V(-3, 50), true, core.V(-3+102, 50)},
		{"off right", core.V(102, 50), true, core.V(102-102, 50)},
		{"off top", core.V(50, -3), true, core.V(50, -3+102)},
		{"off bottom", core.V(50, 102), true, core.V(50, 102-102)},
		{"partly out", core.V(0, 50), false, core.V(0, 50)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := New(1, KindAsteroid, square(1), tc.pos, core.Vec2{})
			if got := e.Wrap(f); got != tc.wrapped {
				t.Errorf("Wrap() = %v, expected %v", got, tc.wrapped)
			}
			if !near(e.Position(), tc.want) {
				t.Errorf("Position() = %v, expected %v", e.Position(), tc.want)
			}
		})
	}
}

func TestOutsideField(t *testing.T) {
	f := Field{Width: 100, Height: 100}

	in := New(1, KindBullet, square(1), core.V(99, 99), core.Vec2{})
	if in.OutsideField(f) {
		t.Error("entity overlapping the corner should be inside")
	}

	out := New(2, KindBullet, square(1), core.V(105, 50), core.Vec2{})
	if !out.OutsideField(f) {
		t.Error("entity past the right edge should be outside")
	}
}

func TestThrustRespectsMaxSpeed(t *testing.T) {
	e := New(1, KindPlayer, triangle(25), core.Vec2{}, core.Vec2{})

	applied := 0
	for range 100 {
		if e.Thrust(0.2, 5) {
			applied++
		}
	}

	if applied != 24 {
		t.Errorf("Thrust applied %d times, expected 24", applied)
	}
	if v := e.Velocity(); math.Abs(v.Y) >= 5 || v.Y >= 0 {
		t.Errorf("Velocity() = %v, expected upward speed below 5", v)
	}
}

func TestFlags(t *testing.T) {
	e := New(1, KindAsteroid, square(1), core.Vec2{}, core.Vec2{})

	if e.Disabled() || e.MarkedForSplit() || e.Touching() {
		t.Fatal("new entity should have no flags set")
	}

	e.Disable()
	e.MarkForSplit()
	e.SetTouching(true)

	if !e.Disabled() || !e.MarkedForSplit() || !e.Touching() {
		t.Error("flags should be set")
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindPlayer, "player"},
		{KindAsteroid, "asteroid"},
		{KindBullet, "bullet"},
		{Kind(99), "unknown"},
	}

	for _, tc := range tests {
		if got := tc.kind.String(); got != tc.expected {
			t.Errorf("Kind(%d).String() = %q, expected %q", tc.kind, got, tc.expected)
		}
	}
}
