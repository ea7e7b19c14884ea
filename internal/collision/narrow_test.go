package collision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-asteroids/internal/core"
	"github.com/vovakirdan/tui-asteroids/internal/entity"
)

var nextTestID uint64

// square returns a stationary axis-aligned square with the given half extent.
func square(kind entity.Kind, x, y, half float64) *entity.Entity {
	nextTestID++
	local := []core.Vec2{
		core.V(-half, -half),
		core.V(half, -half),
		core.V(half, half),
		core.V(-half, half),
	}
	return entity.New(nextTestID, kind, local, core.V(x, y), core.Vec2{})
}

func TestShapesOverlap(t *testing.T) {
	tests := []struct {
		name     string
		dx, dy   float64
		expected bool
	}{
		{"same position", 0, 0, true},
		{"partial overlap", 1.5, 0, true},
		{"touching edges", 2, 0, true},
		{"separated on x", 3, 0, false},
		{"separated on y", 0, -2.5, false},
		{"diagonal overlap", 1.5, 1.5, true},
		{"diagonal gap", 2.5, 2.5, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := square(entity.KindAsteroid, 0, 0, 1)
			b := square(entity.KindAsteroid, tc.dx, tc.dy, 1)

			assert.Equal(t, tc.expected, ShapesOverlap(a, b))
			assert.Equal(t, tc.expected, ShapesOverlap(b, a), "SAT must be symmetric")
		})
	}
}

func TestShapesOverlapUsesPredictedPoints(t *testing.T) {
	a := square(entity.KindAsteroid, 0, 0, 1)
	b := square(entity.KindBullet, 3, 0, 1)
	require.False(t, ShapesOverlap(a, b))

	// Moving towards each other: apart now, overlapping next frame.
	b.SetVelocity(core.V(-1.5, 0))
	assert.True(t, ShapesOverlap(a, b))
	assert.False(t, BoundsOverlap(a, b), "AABB tests the current frame")
}

func TestSATRejectsBoundingBoxFalsePositive(t *testing.T) {
	// Two triangles whose boxes overlap but whose hypotenuses face apart.
	p := []core.Vec2{core.V(0, 0), core.V(2, 0), core.V(0, 2)}
	q := []core.Vec2{core.V(2, 2), core.V(2, 0.5), core.V(0.5, 2)}

	assert.True(t, core.BoundsOf(p).Intersects(core.BoundsOf(q)))
	assert.False(t, PolygonsOverlap(p, q))
	assert.False(t, PolygonsOverlap(q, p))
}

func TestPolygonsOverlapEmpty(t *testing.T) {
	sq := []core.Vec2{core.V(0, 0), core.V(1, 0), core.V(1, 1), core.V(0, 1)}
	assert.False(t, PolygonsOverlap(nil, sq))
	assert.False(t, PolygonsOverlap(sq, nil))
}

func TestBoundsOverlap(t *testing.T) {
	tests := []struct {
		name     string
		dx       float64
		expected bool
	}{
		{"overlap", 1, true},
		{"touching is not overlap", 2, false},
		{"apart", 5, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := square(entity.KindAsteroid, 0, 0, 1)
			b := square(entity.KindAsteroid, tc.dx, 0, 1)

			assert.Equal(t, tc.expected, BoundsOverlap(a, b))
			assert.Equal(t, BoundsOverlap(a, b), BoundsOverlap(b, a))
		})
	}
}

func TestTestFor(t *testing.T) {
	for _, m := range NarrowPhases() {
		test, err := TestFor(m)
		require.NoError(t, err, m.String())
		require.NotNil(t, test)
	}

	_, err := TestFor(NarrowPhase(42))
	assert.ErrorIs(t, err, ErrUnknownNarrowPhase)
}

func TestParseModes(t *testing.T) {
	for _, m := range BroadPhases() {
		got, err := ParseBroadPhase(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	for _, m := range NarrowPhases() {
		got, err := ParseNarrowPhase(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}

	got, err := ParseBroadPhase("QuadTree")
	require.NoError(t, err)
	assert.Equal(t, QuadTree, got)

	_, err = ParseBroadPhase("octree")
	assert.ErrorIs(t, err, ErrUnknownBroadPhase)
	_, err = ParseNarrowPhase("gjk")
	assert.ErrorIs(t, err, ErrUnknownNarrowPhase)

	assert.False(t, BroadPhase(-1).Valid())
	assert.False(t, NarrowPhase(2).Valid())
}
