package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-asteroids/internal/core"
)

// box is a square test item centred on pos, moving by vel each frame.
type box struct {
	name string
	pos  core.Vec2
	vel  core.Vec2
	half float64
	m    Membership[*box]
}

func newBox(name string, x, y, half float64) *box {
	return &box{name: name, pos: core.V(x, y), half: half}
}

func (b *box) Position() core.Vec2 { return b.pos }

func (b *box) Bounds() core.Bounds {
	return core.Bounds{Left: b.pos.X - b.half, Top: b.pos.Y - b.half, Width: 2 * b.half, Height: 2 * b.half}
}

func (b *box) PredictedPoints() []core.Vec2 {
	next := b.pos.Add(b.vel)
	return []core.Vec2{
		next.Add(core.V(-b.half, -b.half)),
		next.Add(core.V(b.half, -b.half)),
		next.Add(core.V(b.half, b.half)),
		next.Add(core.V(-b.half, b.half)),
	}
}

func (b *box) SweptBounds() core.Bounds {
	return b.Bounds().Union(core.BoundsOf(b.PredictedPoints()))
}

func (b *box) Membership() *Membership[*box] { return &b.m }

func TestNewGridDimensions(t *testing.T) {
	tests := []struct {
		name       string
		w, h, size float64
		cols, rows int
	}{
		{"exact fit", 220, 110, 110, 2, 1},
		{"ceil partial cells", 1024, 768, 110, 10, 7},
		{"smaller than a cell", 50, 50, 110, 1, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := NewGrid[*box](tc.w, tc.h, tc.size)
			assert.Equal(t, tc.cols, g.Cols())
			assert.Equal(t, tc.rows, g.Rows())
		})
	}
}

func TestGridCellAtClamps(t *testing.T) {
	g := NewGrid[*box](1024, 768, 110)

	tests := []struct {
		name             string
		col, row         int
		wantCol, wantRow int
	}{
		{"inside", 3, 4, 3, 4},
		{"negative", -5, -1, 0, 0},
		{"past last column", 10, 2, 9, 2},
		{"far past both", 99, 99, 9, 6},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := g.CellAt(tc.col, tc.row)
			require.NotNil(t, c)
			assert.Equal(t, tc.wantCol, c.Col())
			assert.Equal(t, tc.wantRow, c.Row())
		})
	}
}

func TestGridCellForDeterministic(t *testing.T) {
	g := NewGrid[*box](1024, 768, 110)

	for x := 0.0; x < 1024; x += 37 {
		for y := 0.0; y < 768; y += 41 {
			p := core.V(x, y)
			first := g.CellFor(p)
			for range 3 {
				assert.Same(t, first, g.CellFor(p), "CellFor(%v) changed between calls", p)
			}
		}
	}
}

func TestGridCellForBoundary(t *testing.T) {
	g := NewGrid[*box](1024, 768, 110)

	left := g.CellFor(core.V(109.999, 50))
	right := g.CellFor(core.V(110, 50))
	assert.Equal(t, 0, left.Col())
	assert.Equal(t, 1, right.Col())
	assert.Equal(t, left.Row(), right.Row())

	above := g.CellFor(core.V(50, 219.5))
	below := g.CellFor(core.V(50, 220))
	assert.Equal(t, 1, above.Row())
	assert.Equal(t, 2, below.Row())

	// Outside the field maps to the nearest border cell
	assert.Same(t, g.CellAt(9, 6), g.CellFor(core.V(5000, 5000)))
	assert.Same(t, g.CellAt(0, 0), g.CellFor(core.V(-20, -20)))
}

func TestGridInsertRecordsMembership(t *testing.T) {
	g := NewGrid[*box](440, 440, 110)
	a := newBox("a", 120, 10, 5)
	b := newBox("b", 130, 20, 5)

	require.NoError(t, g.Insert(a))
	require.NoError(t, g.Insert(b))

	cell := g.CellAt(1, 0)
	assert.Same(t, cell, a.Membership().Cell())
	assert.Equal(t, 0, a.Membership().Slot())
	assert.Equal(t, 1, b.Membership().Slot())
	assert.Equal(t, []*box{a, b}, cell.Items())

	assert.ErrorIs(t, g.Insert(a), ErrAlreadyInGrid)
}

func TestGridRemoveSwapDelete(t *testing.T) {
	g := NewGrid[*box](440, 440, 110)
	items := []*box{
		newBox("a", 10, 10, 1),
		newBox("b", 20, 10, 1),
		newBox("c", 30, 10, 1),
		newBox("d", 40, 10, 1),
	}
	for _, it := range items {
		require.NoError(t, g.Insert(it))
	}
	cell := g.CellAt(0, 0)

	// Removing from the middle moves the last item into the hole
	require.NoError(t, g.Remove(items[1]))
	assert.Equal(t, []*box{items[0], items[3], items[2]}, cell.Items())
	assert.Equal(t, 1, items[3].Membership().Slot())
	assert.Nil(t, items[1].Membership().Cell())
	assert.Equal(t, NoSlot, items[1].Membership().Slot())

	// Removing the last item leaves the others untouched
	require.NoError(t, g.Remove(items[2]))
	assert.Equal(t, []*box{items[0], items[3]}, cell.Items())

	for i, it := range cell.Items() {
		assert.Equal(t, i, it.Membership().Slot(), "slot of %s", it.name)
	}

	require.NoError(t, g.Remove(items[0]))
	require.NoError(t, g.Remove(items[3]))
	assert.Equal(t, 0, g.Len())
}

func TestGridRemoveUnowned(t *testing.T) {
	g := NewGrid[*box](440, 440, 110)
	a := newBox("a", 10, 10, 1)

	assert.ErrorIs(t, g.Remove(a), ErrNotInGrid)

	require.NoError(t, g.Insert(a))
	require.NoError(t, g.Remove(a))
	assert.ErrorIs(t, g.Remove(a), ErrNotInGrid, "double remove must be reported")
}

func TestGridRemoveLeavesNoReference(t *testing.T) {
	g := NewGrid[*box](440, 440, 110)
	var all []*box
	for i := range 20 {
		b := newBox("x", float64(i*21), float64(i*17), 2)
		all = append(all, b)
		require.NoError(t, g.Insert(b))
	}

	for i := 0; i < len(all); i += 2 {
		require.NoError(t, g.Remove(all[i]))
	}

	for col := range g.Cols() {
		for row := range g.Rows() {
			c := g.Lookup(col, row)
			for slot, it := range c.Items() {
				for i := 0; i < len(all); i += 2 {
					assert.NotSame(t, all[i], it, "removed item still in cell (%d,%d)", col, row)
				}
				assert.Equal(t, slot, it.Membership().Slot())
				assert.Same(t, c, it.Membership().Cell())
			}
		}
	}
	assert.Equal(t, 10, g.Len())
}

func TestGridRebucket(t *testing.T) {
	g := NewGrid[*box](440, 440, 110)
	a := newBox("a", 10, 10, 1)
	require.NoError(t, g.Insert(a))

	moved, err := g.Rebucket(a)
	require.NoError(t, err)
	assert.False(t, moved)

	a.pos = core.V(300, 300)
	moved, err = g.Rebucket(a)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Same(t, g.CellAt(2, 2), a.Membership().Cell())
	assert.Equal(t, 0, g.CellAt(0, 0).Len())
}

func TestGridReset(t *testing.T) {
	g := NewGrid[*box](440, 440, 110)
	a := newBox("a", 10, 10, 1)
	b := newBox("b", 300, 10, 1)
	require.NoError(t, g.Insert(a))
	require.NoError(t, g.Insert(b))

	g.Reset()

	assert.Equal(t, 0, g.Len())
	assert.False(t, a.Membership().InGrid())
	assert.False(t, b.Membership().InGrid())
	require.NoError(t, g.Insert(a), "reset items can be inserted again")
}

func TestGridLookupOutside(t *testing.T) {
	g := NewGrid[*box](440, 440, 110)
	assert.Nil(t, g.Lookup(-1, 0))
	assert.Nil(t, g.Lookup(0, 4))
	assert.NotNil(t, g.Lookup(3, 3))
}
