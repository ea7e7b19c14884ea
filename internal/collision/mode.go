// Package collision detects overlapping entities every frame.
//
// A Handler pairs one broad-phase strategy (brute force, uniform grid or
// quadtree) with one narrow-phase test (AABB or SAT), classifies the pairs
// that overlap, and records the resulting gameplay effects for the caller
// to apply once the pass is over.
package collision

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownBroadPhase is returned for an unrecognised broad-phase mode.
	ErrUnknownBroadPhase = errors.New("collision: unknown broad phase mode")
	// ErrUnknownNarrowPhase is returned for an unrecognised narrow-phase mode.
	ErrUnknownNarrowPhase = errors.New("collision: unknown narrow phase mode")
)

// BroadPhase selects how candidate pairs are generated.
type BroadPhase int

const (
	BruteForce BroadPhase = iota
	UniformGrid
	QuadTree
)

// BroadPhases lists every supported broad-phase mode.
func BroadPhases() []BroadPhase {
	return []BroadPhase{BruteForce, UniformGrid, QuadTree}
}

// String returns the console name of the mode.
func (m BroadPhase) String() string {
	switch m {
	case BruteForce:
		return "bruteforce"
	case UniformGrid:
		return "uniformgrid"
	case QuadTree:
		return "quadtree"
	default:
		return fmt.Sprintf("BroadPhase(%d)", int(m))
	}
}

// Valid reports whether m is a supported mode.
func (m BroadPhase) Valid() bool {
	return m >= BruteForce && m <= QuadTree
}

// ParseBroadPhase converts a console name into a BroadPhase.
func ParseBroadPhase(s string) (BroadPhase, error) {
	for _, m := range BroadPhases() {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownBroadPhase, s)
}

// NarrowPhase selects the exact overlap test.
type NarrowPhase int

const (
	AABB NarrowPhase = iota
	SAT
)

// NarrowPhases lists every supported narrow-phase mode.
func NarrowPhases() []NarrowPhase {
	return []NarrowPhase{AABB, SAT}
}

// String returns the console name of the mode.
func (m NarrowPhase) String() string {
	switch m {
	case AABB:
		return "aabb"
	case SAT:
		return "sat"
	default:
		return fmt.Sprintf("NarrowPhase(%d)", int(m))
	}
}

// Valid reports whether m is a supported mode.
func (m NarrowPhase) Valid() bool {
	return m == AABB || m == SAT
}

// ParseNarrowPhase converts a console name into a NarrowPhase.
func ParseNarrowPhase(s string) (NarrowPhase, error) {
	for _, m := range NarrowPhases() {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownNarrowPhase, s)
}
