package spatial

import (
	"github.com/vovakirdan/tui-asteroids/internal/core"
)

// DefaultCapacity is the number of items a node holds before subdividing.
const DefaultCapacity = 5

// MaxDepth bounds subdivision. Nodes at this depth accept items past capacity.
const MaxDepth = 12

// Quadrant indexes the children of a divided node.
type Quadrant int

const (
	NorthWest Quadrant = iota
	NorthEast
	SouthWest
	SouthEast
)

// Region is a rectangle stored as a centre and half extents.
type Region struct {
	Center core.Vec2
	Half   core.Vec2
}

// RegionOf returns the Region covering b.
func RegionOf(b core.Bounds) Region {
	return Region{
		Center: b.Center(),
		Half:   core.V(b.Width/2, b.Height/2),
	}
}

// Contains reports whether p lies inside the region. The left and top edges
// are inclusive, the right and bottom edges exclusive, so the four quadrants
// of a region tile it without gaps or overlap.
func (r Region) Contains(p core.Vec2) bool {
	return p.X >= r.Center.X-r.Half.X &&
		p.X < r.Center.X+r.Half.X &&
		p.Y >= r.Center.Y-r.Half.Y &&
		p.Y < r.Center.Y+r.Half.Y
}

// Bounds returns the region as a top-left/size rectangle.
func (r Region) Bounds() core.Bounds {
	return core.Bounds{
		Left:   r.Center.X - r.Half.X,
		Top:    r.Center.Y - r.Half.Y,
		Width:  r.Half.X * 2,
		Height: r.Half.Y * 2,
	}
}

// Quadrant returns the sub-region for q.
func (r Region) Quadrant(q Quadrant) Region {
	h := r.Half.Scale(0.5)
	c := r.Center
	switch q {
	case NorthWest:
		c = c.Add(core.V(-h.X, -h.Y))
	case NorthEast:
		c = c.Add(core.V(h.X, -h.Y))
	case SouthWest:
		c = c.Add(core.V(-h.X, h.Y))
	case SouthEast:
		c = c.Add(core.V(h.X, h.Y))
	}
	return Region{Center: c, Half: h}
}

// QuadNode is one node of a QuadTree.
//
// reach encloses the swept bounds of every item inserted into the node or
// its descendants since the last Clear. Items are placed by their predicted
// points, so their shapes may stick out of the node region; queries prune
// on reach instead of region.
type QuadNode[T any] struct {
	region   Region
	depth    int
	items    []T
	children [4]*QuadNode[T]
	divided  bool
	reach    core.Bounds
	reached  bool
}

// Region returns the node boundary.
func (n *QuadNode[T]) Region() Region {
	return n.region
}

// Depth returns the node's distance from the root.
func (n *QuadNode[T]) Depth() int {
	return n.depth
}

// Items returns the items held directly by this node.
func (n *QuadNode[T]) Items() []T {
	return n.items
}

// Reach returns the area covered by the swept bounds of the items in this
// subtree. ok is false when nothing has been inserted below the node.
func (n *QuadNode[T]) Reach() (b core.Bounds, ok bool) {
	return n.reach, n.reached
}

func (n *QuadNode[T]) extend(b core.Bounds) {
	if n.reached {
		n.reach = n.reach.Union(b)
		return
	}
	n.reach = b
	n.reached = true
}

// Divided reports whether the node has children.
func (n *QuadNode[T]) Divided() bool {
	return n.divided
}

// Child returns the child for q, or nil when the node is not divided.
func (n *QuadNode[T]) Child(q Quadrant) *QuadNode[T] {
	return n.children[q]
}

// Walk calls fn for n and every descendant, parents first.
func (n *QuadNode[T]) Walk(fn func(*QuadNode[T])) {
	fn(n)
	if !n.divided {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// subdivide creates the four quadrant children. Dividing is one-way until
// the tree is cleared.
func (n *QuadNode[T]) subdivide() {
	for q := NorthWest; q <= SouthEast; q++ {
		n.children[q] = &QuadNode[T]{
			region: n.region.Quadrant(q),
			depth:  n.depth + 1,
		}
	}
	n.divided = true
}

func (n *QuadNode[T]) containsAny(points []core.Vec2) bool {
	for _, p := range points {
		if n.region.Contains(p) {
			return true
		}
	}
	return false
}

// QuadTree is an adaptive index rebuilt every frame with Clear and Insert.
//
// An item enters a node when any of its predicted polygon points lies
// inside the node boundary. A full node forwards new items to every child
// that contains one of those points, so a shape straddling quadrant edges
// is held by each quadrant it reaches. Remove drops the item from all of
// those nodes, and Query may return it once per node.
type QuadTree[T Item[T]] struct {
	root     *QuadNode[T]
	capacity int
	visited  int // nodes scanned by the last query
}

// NewQuadTree creates an empty tree covering boundary.
func NewQuadTree[T Item[T]](boundary Region, capacity int) *QuadTree[T] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &QuadTree[T]{
		root:     &QuadNode[T]{region: boundary},
		capacity: capacity,
	}
}

// Root returns the root node.
func (t *QuadTree[T]) Root() *QuadNode[T] {
	return t.root
}

// Capacity returns the per-node capacity.
func (t *QuadTree[T]) Capacity() int {
	return t.capacity
}

// Contains reports whether p lies inside the root boundary.
func (t *QuadTree[T]) Contains(p core.Vec2) bool {
	return t.root.region.Contains(p)
}

// Insert adds item to every node that accepts it and reports whether any did.
// Items with no predicted point inside the root boundary are ignored.
func (t *QuadTree[T]) Insert(item T) bool {
	return t.insert(t.root, item, item.PredictedPoints())
}

func (t *QuadTree[T]) insert(n *QuadNode[T], item T, points []core.Vec2) bool {
	if !n.containsAny(points) {
		return false
	}

	if len(n.items) < t.capacity || n.depth >= MaxDepth {
		n.items = append(n.items, item)
		item.Membership().addNode(n)
		n.extend(item.SweptBounds())
		return true
	}

	if !n.divided {
		n.subdivide()
	}

	inserted := false
	for _, c := range n.children {
		if t.insert(c, item, points) {
			inserted = true
		}
	}
	if inserted {
		n.extend(item.SweptBounds())
	}
	return inserted
}

// Remove erases item from every node holding it and clears its membership.
// Node reach is not shrunk, which keeps it a safe over-approximation.
func (t *QuadTree[T]) Remove(item T) error {
	m := item.Membership()
	if !m.InTree() {
		return ErrNotInTree
	}
	t.remove(t.root, item, m)
	m.clearNodes()
	return nil
}

// remove walks the tree, erasing item from nodes recorded as owners.
func (t *QuadTree[T]) remove(n *QuadNode[T], item T, m *Membership[T]) {
	if owns(m, n) {
		for i, it := range n.items {
			if it == item {
				n.items = append(n.items[:i], n.items[i+1:]...)
				break
			}
		}
	}
	if !n.divided {
		return
	}
	for _, c := range n.children {
		t.remove(c, item, m)
	}
}

func owns[T any](m *Membership[T], n *QuadNode[T]) bool {
	for _, o := range m.nodes {
		if o == n {
			return true
		}
	}
	return false
}

// Query appends to dst every item whose bounds intersect rng and returns
// the extended slice. An item held by several nodes appears once per node.
func (t *QuadTree[T]) Query(rng core.Bounds, dst []T) []T {
	t.visited = 0
	return t.query(t.root, rng, dst, false)
}

// QuerySwept appends to dst every item whose swept bounds touch rng,
// edges included. It finds every item whose predicted polygon can touch a
// shape whose swept bounds are rng.
func (t *QuadTree[T]) QuerySwept(rng core.Bounds, dst []T) []T {
	t.visited = 0
	return t.query(t.root, rng, dst, true)
}

// Visited returns the number of nodes the last query scanned.
func (t *QuadTree[T]) Visited() int {
	return t.visited
}

func (t *QuadTree[T]) query(n *QuadNode[T], rng core.Bounds, dst []T, swept bool) []T {
	if !n.reached || !n.reach.Touches(rng) {
		return dst
	}
	t.visited++
	for _, item := range n.items {
		var hit bool
		if swept {
			hit = item.SweptBounds().Touches(rng)
		} else {
			hit = item.Bounds().Intersects(rng)
		}
		if hit {
			dst = append(dst, item)
		}
	}
	if !n.divided {
		return dst
	}
	for _, c := range n.children {
		dst = t.query(c, rng, dst, swept)
	}
	return dst
}

// Clear drops every item and child node, leaving an undivided root.
// Memberships of the dropped items are cleared.
func (t *QuadTree[T]) Clear() {
	t.root.Walk(func(n *QuadNode[T]) {
		for _, item := range n.items {
			item.Membership().clearNodes()
		}
	})
	t.root.items = nil
	t.root.children = [4]*QuadNode[T]{}
	t.root.divided = false
	t.root.reach = core.Bounds{}
	t.root.reached = false
}

// Nodes returns the number of nodes in the tree.
func (t *QuadTree[T]) Nodes() int {
	n := 0
	t.root.Walk(func(*QuadNode[T]) { n++ })
	return n
}

// Len returns the number of stored references, counting duplicates.
func (t *QuadTree[T]) Len() int {
	n := 0
	t.root.Walk(func(node *QuadNode[T]) {
		n += len(node.items)
	})
	return n
}
