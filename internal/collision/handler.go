package collision

import (
	"fmt"

	"github.com/vovakirdan/tui-asteroids/internal/entity"
	"github.com/vovakirdan/tui-asteroids/internal/spatial"
)

// Scene exposes the live entities to the handler. The handler only reads
// the slices; it never adds or removes entities.
type Scene interface {
	Player() *entity.Entity // nil when there is no ship
	Asteroids() []*entity.Entity
	Bullets() []*entity.Entity
}

// PhaseData is the result of one collision pass.
type PhaseData struct {
	Collisions      int  // narrow-phase tests that reported an overlap
	Tests           int  // narrow-phase tests performed
	PlayerColliding bool // the ship overlaps an asteroid
}

// ContactFunc observes every overlapping pair found by a pass.
type ContactFunc func(a, b *entity.Entity)

// Handler drives one broad-phase strategy and one narrow-phase test per frame.
//
// The grid and quadtree are maintained by the owner of the entities; the
// handler only reads them. Grid mode expects every entity to be bucketed,
// quadtree mode expects the tree to have been rebuilt for this frame.
type Handler struct {
	scene Scene
	grid  *spatial.Grid[*entity.Entity]
	tree  *spatial.QuadTree[*entity.Entity]

	broad  BroadPhase
	narrow NarrowPhase

	collidePlayer    bool
	collideAsteroids bool
	collideBullets   bool

	data    PhaseData
	effects Effects
	contact ContactFunc

	candidates []*entity.Entity
	seen       map[*entity.Entity]struct{}
}

// NewHandler creates a handler in uniform grid + SAT mode with every
// collision category enabled.
func NewHandler(scene Scene, grid *spatial.Grid[*entity.Entity], tree *spatial.QuadTree[*entity.Entity]) *Handler {
	return &Handler{
		scene:            scene,
		grid:             grid,
		tree:             tree,
		broad:            UniformGrid,
		narrow:           SAT,
		collidePlayer:    true,
		collideAsteroids: true,
		collideBullets:   true,
		seen:             make(map[*entity.Entity]struct{}),
	}
}

// BroadPhase returns the active broad-phase mode.
func (h *Handler) BroadPhase() BroadPhase { return h.broad }

// SetBroadPhase selects the broad-phase mode. Validity is checked when the
// next pass runs.
func (h *Handler) SetBroadPhase(m BroadPhase) { h.broad = m }

// NarrowPhase returns the active narrow-phase mode.
func (h *Handler) NarrowPhase() NarrowPhase { return h.narrow }

// SetNarrowPhase selects the narrow-phase mode.
func (h *Handler) SetNarrowPhase(m NarrowPhase) { h.narrow = m }

// PlayerCollision reports whether ship/asteroid contacts are classified.
func (h *Handler) PlayerCollision() bool { return h.collidePlayer }

// SetPlayerCollision enables or disables ship/asteroid contacts.
func (h *Handler) SetPlayerCollision(v bool) { h.collidePlayer = v }

// AsteroidCollision reports whether asteroid/asteroid contacts are classified.
func (h *Handler) AsteroidCollision() bool { return h.collideAsteroids }

// SetAsteroidCollision enables or disables asteroid/asteroid contacts.
func (h *Handler) SetAsteroidCollision(v bool) { h.collideAsteroids = v }

// BulletCollision reports whether bullet/asteroid contacts are classified.
func (h *Handler) BulletCollision() bool { return h.collideBullets }

// SetBulletCollision enables or disables bullet/asteroid contacts.
func (h *Handler) SetBulletCollision(v bool) { h.collideBullets = v }

// OnContact registers fn to observe every overlapping pair. Pass nil to remove it.
func (h *Handler) OnContact(fn ContactFunc) { h.contact = fn }

// Effects returns the requests produced by the most recent pass.
// They stay valid until the next call to HandleCollision.
func (h *Handler) Effects() *Effects { return &h.effects }

// HandleCollision runs one full pass. Statistics and effects from the
// previous pass are discarded first. An unknown mode aborts the pass before
// any test runs.
func (h *Handler) HandleCollision() (PhaseData, error) {
	h.data = PhaseData{}
	h.effects.Reset()

	test, err := TestFor(h.narrow)
	if err != nil {
		return PhaseData{}, err
	}

	switch h.broad {
	case BruteForce:
		h.bruteForce(test)
	case UniformGrid:
		if h.grid == nil {
			return PhaseData{}, fmt.Errorf("collision: %s mode without a grid", h.broad)
		}
		h.uniformGrid(test)
	case QuadTree:
		if h.tree == nil {
			return PhaseData{}, fmt.Errorf("collision: %s mode without a quadtree", h.broad)
		}
		// AABB candidates already passed the same box test inside the
		// tree; every other test needs the predicted shapes covered.
		swept := true
		if h.narrow == AABB {
			test = bypass
			swept = false
		}
		h.quadTree(test, swept)
	default:
		return PhaseData{}, fmt.Errorf("%w: %d", ErrUnknownBroadPhase, int(h.broad))
	}

	return h.data, nil
}

// bruteForce tests every asteroid against the ship, every bullet and every
// later asteroid. Only pairs with a classification are tested at all.
func (h *Handler) bruteForce(test Test) {
	player := h.scene.Player()
	asteroids := h.scene.Asteroids()
	bullets := h.scene.Bullets()

	for i, a := range asteroids {
		if h.collidePlayer && player != nil {
			h.check(test, player, a)
		}
		if h.collideBullets {
			for _, b := range bullets {
				h.check(test, b, a)
			}
		}
		if h.collideAsteroids {
			for _, other := range asteroids[i+1:] {
				h.check(test, a, other)
			}
		}
	}
}

// uniformGrid tests each entity against the rest of its cell and against the
// left, top-left, bottom-left and top neighbours. Cells are visited in
// row-major order, so every unordered pair of adjacent cells meets once.
func (h *Handler) uniformGrid(test Test) {
	g := h.grid
	for row := range g.Rows() {
		for col := range g.Cols() {
			cell := g.Lookup(col, row)
			items := cell.Items()
			for j, e := range items {
				h.checkAll(test, e, items[j+1:])
				h.checkCell(test, e, g.Lookup(col-1, row))
				h.checkCell(test, e, g.Lookup(col-1, row-1))
				h.checkCell(test, e, g.Lookup(col-1, row+1))
				h.checkCell(test, e, g.Lookup(col, row-1))
			}
		}
	}
}

// quadTree queries the tree around each entity and tests the candidates.
// With swept set the query covers current and predicted shapes on both
// sides, otherwise only current bounds. Candidates held by several nodes
// are tested once per query. Every overlapping pair is found from both sides.
func (h *Handler) quadTree(test Test, swept bool) {
	if p := h.scene.Player(); p != nil {
		h.queryAndCheck(test, p, swept)
	}
	for _, a := range h.scene.Asteroids() {
		h.queryAndCheck(test, a, swept)
	}
	for _, b := range h.scene.Bullets() {
		h.queryAndCheck(test, b, swept)
	}
}

func (h *Handler) queryAndCheck(test Test, e *entity.Entity, swept bool) {
	if swept {
		h.candidates = h.tree.QuerySwept(e.SweptBounds(), h.candidates[:0])
	} else {
		h.candidates = h.tree.Query(e.Bounds(), h.candidates[:0])
	}
	clear(h.seen)
	for _, c := range h.candidates {
		if _, dup := h.seen[c]; dup {
			continue
		}
		h.seen[c] = struct{}{}
		if c != e {
			h.check(test, e, c)
		}
	}
}

func (h *Handler) checkCell(test Test, e *entity.Entity, cell *spatial.Cell[*entity.Entity]) {
	if cell == nil {
		return
	}
	h.checkAll(test, e, cell.Items())
}

func (h *Handler) checkAll(test Test, e *entity.Entity, others []*entity.Entity) {
	for _, o := range others {
		if o != e {
			h.check(test, e, o)
		}
	}
}

// check runs one narrow-phase test and classifies a hit.
func (h *Handler) check(test Test, a, b *entity.Entity) {
	h.data.Tests++
	if !test(a, b) {
		return
	}
	h.data.Collisions++
	if h.contact != nil {
		h.contact(a, b)
	}
	h.classify(a, b)
}

// classify applies the gameplay rule for an overlapping pair. Asymmetric
// kinds are matched in both orders.
func (h *Handler) classify(a, b *entity.Entity) {
	ka, kb := a.Kind(), b.Kind()

	switch {
	case ka == entity.KindAsteroid && kb == entity.KindAsteroid:
		if h.collideAsteroids {
			h.effects.recolor(a)
			h.effects.recolor(b)
		}
	case ka == entity.KindAsteroid:
		h.classifyAgainstAsteroid(b, a)
	case kb == entity.KindAsteroid:
		h.classifyAgainstAsteroid(a, b)
	}
}

func (h *Handler) classifyAgainstAsteroid(other, asteroid *entity.Entity) {
	switch other.Kind() {
	case entity.KindPlayer:
		if h.collidePlayer {
			h.data.PlayerColliding = true
		}
	case entity.KindBullet:
		if h.collideBullets {
			h.effects.disable(other)
			h.effects.split(asteroid)
		}
	}
}
