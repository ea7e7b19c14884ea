package spatial

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-asteroids/internal/core"
)

// DefaultCellSize is the edge length of a grid cell in world units.
//
// Narrow-phase tests look at predicted shapes, which sit one velocity step
// away from the position used for bucketing. The cell size must therefore
// be at least twice the largest radius plus speed of any shape: then every
// predicted point lies within half a cell of its entity's position on each
// axis, and any two shapes that can touch next frame are bucketed in the
// same or adjacent cells. Clamping outside positions to border cells only
// brings cells closer. The default covers radius 55 at speed 5.
const DefaultCellSize = 120

// Cell is one bucket of the uniform grid.
// Each item's Membership slot always equals its index in the cell.
type Cell[T any] struct {
	col, row int
	items    []T
}

// Col returns the cell's column.
func (c *Cell[T]) Col() int {
	return c.col
}

// Row returns the cell's row.
func (c *Cell[T]) Row() int {
	return c.row
}

// Items returns the items held by the cell.
// The slice is owned by the cell and must not be modified.
func (c *Cell[T]) Items() []T {
	return c.items
}

// Len returns the number of items in the cell.
func (c *Cell[T]) Len() int {
	return len(c.items)
}

// Grid is a fixed row-major array of cells covering a rectangular field.
// Dimensions never change after construction.
type Grid[T Item[T]] struct {
	width    float64
	height   float64
	cellSize float64
	cols     int
	rows     int
	cells    []Cell[T]
}

// NewGrid creates a grid of ceil(width/cellSize) x ceil(height/cellSize) cells.
func NewGrid[T Item[T]](width, height, cellSize float64) *Grid[T] {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	cols := max(int(math.Ceil(width/cellSize)), 1)
	rows := max(int(math.Ceil(height/cellSize)), 1)

	g := &Grid[T]{
		width:    width,
		height:   height,
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    make([]Cell[T], cols*rows),
	}
	for i := range g.cells {
		g.cells[i].col = i % cols
		g.cells[i].row = i / cols
	}
	return g
}

// Cols returns the number of columns.
func (g *Grid[T]) Cols() int {
	return g.cols
}

// Rows returns the number of rows.
func (g *Grid[T]) Rows() int {
	return g.rows
}

// CellSize returns the cell edge length in world units.
func (g *Grid[T]) CellSize() float64 {
	return g.cellSize
}

// CellAt returns the cell at the given coordinates, clamped into
// [0, Cols()-1] x [0, Rows()-1].
func (g *Grid[T]) CellAt(col, row int) *Cell[T] {
	col = core.Clamp(col, 0, g.cols-1)
	row = core.Clamp(row, 0, g.rows-1)
	return &g.cells[row*g.cols+col]
}

// Lookup returns the cell at the given coordinates, or nil when they are
// outside the grid.
func (g *Grid[T]) Lookup(col, row int) *Cell[T] {
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		return nil
	}
	return &g.cells[row*g.cols+col]
}

// CellFor returns the cell covering a world position.
// Positions outside the field map to the nearest border cell.
func (g *Grid[T]) CellFor(pos core.Vec2) *Cell[T] {
	col := int(math.Floor(pos.X / g.cellSize))
	row := int(math.Floor(pos.Y / g.cellSize))
	return g.CellAt(col, row)
}

// Insert appends item to the cell covering its position.
func (g *Grid[T]) Insert(item T) error {
	return g.InsertInto(item, g.CellFor(item.Position()))
}

// InsertInto appends item to the given cell and records the cell and slot
// on the item. A nil cell means the cell covering the item's position.
func (g *Grid[T]) InsertInto(item T, cell *Cell[T]) error {
	m := item.Membership()
	if m.InGrid() {
		return ErrAlreadyInGrid
	}
	if cell == nil {
		cell = g.CellFor(item.Position())
	}
	cell.items = append(cell.items, item)
	m.setCell(cell, len(cell.items)-1)
	return nil
}

// Remove swap-deletes item from its owner cell and clears its membership.
// The item that was last in the cell takes over the freed slot.
func (g *Grid[T]) Remove(item T) error {
	m := item.Membership()
	cell := m.Cell()
	if cell == nil {
		return ErrNotInGrid
	}

	slot := m.slot
	last := len(cell.items) - 1
	if slot < 0 || slot > last || cell.items[slot] != item {
		return fmt.Errorf("spatial: stale slot %d in cell (%d,%d): %w", slot, cell.col, cell.row, ErrNotInGrid)
	}

	moved := cell.items[last]
	cell.items[slot] = moved
	var zero T
	cell.items[last] = zero
	cell.items = cell.items[:last]
	if slot < last {
		moved.Membership().slot = slot
	}

	m.clearCell()
	return nil
}

// Rebucket moves item to the cell covering its current position if that
// differs from its owner cell. It reports whether the item moved.
func (g *Grid[T]) Rebucket(item T) (bool, error) {
	target := g.CellFor(item.Position())
	if item.Membership().Cell() == target {
		return false, nil
	}
	if err := g.Remove(item); err != nil {
		return false, err
	}
	if err := g.InsertInto(item, target); err != nil {
		return false, err
	}
	return true, nil
}

// Reset empties every cell and clears the membership of every item it held.
func (g *Grid[T]) Reset() {
	for i := range g.cells {
		c := &g.cells[i]
		for _, item := range c.items {
			item.Membership().clearCell()
		}
		clear(c.items)
		c.items = c.items[:0]
	}
}

// Len returns the number of items in the grid.
func (g *Grid[T]) Len() int {
	n := 0
	for i := range g.cells {
		n += len(g.cells[i].items)
	}
	return n
}
