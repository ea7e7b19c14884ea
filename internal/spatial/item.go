// Package spatial provides the broad-phase indexes used by collision
// detection: a fixed uniform grid and an adaptive quadtree.
//
// Neither index owns the items it stores. Items carry a Membership value
// that the indexes use as a back-reference to the cell or nodes holding them.
package spatial

import (
	"errors"

	"github.com/vovakirdan/tui-asteroids/internal/core"
)

// NoSlot is the slot index reported for an item that is not in any grid cell.
const NoSlot = -1

var (
	// ErrNotInGrid is returned when removing an item that has no owner cell.
	ErrNotInGrid = errors.New("spatial: item is not in the grid")
	// ErrAlreadyInGrid is returned when inserting an item that already has an owner cell.
	ErrAlreadyInGrid = errors.New("spatial: item is already in the grid")
	// ErrNotInTree is returned when removing an item that has no owner node.
	ErrNotInTree = errors.New("spatial: item is not in the quadtree")
)

// Item is the geometry and bookkeeping contract an indexed object exposes.
// T is the item type itself, usually a pointer to a struct.
type Item[T any] interface {
	comparable
	// Position is the reference point used for grid bucketing.
	Position() core.Vec2
	// Bounds is the axis-aligned rectangle of the current shape.
	Bounds() core.Bounds
	// PredictedPoints is the polygon as it will be after the next update.
	PredictedPoints() []core.Vec2
	// SweptBounds encloses both Bounds and the predicted polygon.
	SweptBounds() core.Bounds
	// Membership returns the item's partition back-reference.
	Membership() *Membership[T]
}

// Membership records where an item currently lives in the indexes.
// The zero value is unowned. It grants no ownership to either side.
type Membership[T any] struct {
	cell  *Cell[T]
	slot  int
	nodes []*QuadNode[T]
}

// Cell returns the grid cell holding the item, or nil.
func (m *Membership[T]) Cell() *Cell[T] {
	return m.cell
}

// Slot returns the item's index inside its cell, or NoSlot.
func (m *Membership[T]) Slot() int {
	if m.cell == nil {
		return NoSlot
	}
	return m.slot
}

// InGrid reports whether the item is registered in a grid cell.
func (m *Membership[T]) InGrid() bool {
	return m.cell != nil
}

// Nodes returns the quadtree nodes holding the item directly.
func (m *Membership[T]) Nodes() []*QuadNode[T] {
	return m.nodes
}

// InTree reports whether the item is held by at least one quadtree node.
func (m *Membership[T]) InTree() bool {
	return len(m.nodes) > 0
}

func (m *Membership[T]) setCell(c *Cell[T], slot int) {
	m.cell = c
	m.slot = slot
}

func (m *Membership[T]) clearCell() {
	m.cell = nil
	m.slot = NoSlot
}

func (m *Membership[T]) addNode(n *QuadNode[T]) {
	m.nodes = append(m.nodes, n)
}

func (m *Membership[T]) clearNodes() {
	clear(m.nodes)
	m.nodes = m.nodes[:0]
}
