package collision

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-asteroids/internal/core"
)

// Shape is the read-only geometry the narrow-phase tests need.
type Shape interface {
	Bounds() core.Bounds
	PredictedPoints() []core.Vec2
}

// Test is a narrow-phase predicate over two shapes.
type Test func(a, b Shape) bool

// BoundsOverlap reports whether the bounding rectangles of a and b overlap.
func BoundsOverlap(a, b Shape) bool {
	return a.Bounds().Intersects(b.Bounds())
}

// ShapesOverlap runs the separating axis test on the next-frame polygons
// of a and b.
func ShapesOverlap(a, b Shape) bool {
	return PolygonsOverlap(a.PredictedPoints(), b.PredictedPoints())
}

// PolygonsOverlap runs the separating axis test on two convex polygons.
// Every edge normal of both polygons is tried as an axis; the polygons
// overlap unless one axis separates their projections. Touching counts
// as overlap.
func PolygonsOverlap(p, q []core.Vec2) bool {
	if len(p) == 0 || len(q) == 0 {
		return false
	}
	return !hasSeparatingAxis(p, q) && !hasSeparatingAxis(q, p)
}

func hasSeparatingAxis(edges, other []core.Vec2) bool {
	for i, a := range edges {
		b := edges[(i+1)%len(edges)]
		axis := b.Sub(a).Perp()
		if axis.X == 0 && axis.Y == 0 {
			continue // repeated vertex
		}
		axis = axis.Normalize()

		min1, max1 := project(edges, axis)
		min2, max2 := project(other, axis)
		if !(max2 >= min1 && max1 >= min2) {
			return true
		}
	}
	return false
}

func project(points []core.Vec2, axis core.Vec2) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, p := range points {
		d := p.Dot(axis)
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return lo, hi
}

// bypass accepts every pair. The quadtree query has already filtered
// candidates by bounding rectangle, so AABB mode needs no further test.
func bypass(Shape, Shape) bool {
	return true
}

// TestFor returns the narrow-phase predicate for m.
func TestFor(m NarrowPhase) (Test, error) {
	switch m {
	case AABB:
		return BoundsOverlap, nil
	case SAT:
		return ShapesOverlap, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownNarrowPhase, int(m))
	}
}
