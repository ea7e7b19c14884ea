package asteroids

import (
	"github.com/cespare/xxhash/v2"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/tui-asteroids/internal/entity"
)

// EntitySnapshot is the observable state of one entity.
type EntitySnapshot struct {
	ID       uint64  `msgpack:"id"`
	Kind     string  `msgpack:"kind"`
	Size     string  `msgpack:"size,omitempty"`
	X        float64 `msgpack:"x"`
	Y        float64 `msgpack:"y"`
	VX       float64 `msgpack:"vx"`
	VY       float64 `msgpack:"vy"`
	Rotation float64 `msgpack:"rot"`
}

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick       uint64           `msgpack:"tick"`
	Score      int              `msgpack:"score"`
	Wave       int              `msgpack:"wave"`
	Broad      string           `msgpack:"broad"`
	Narrow     string           `msgpack:"narrow"`
	Player     EntitySnapshot   `msgpack:"player"`
	Asteroids  []EntitySnapshot `msgpack:"asteroids"`
	Bullets    []EntitySnapshot `msgpack:"bullets"`
	Tests      int              `msgpack:"tests"`
	Collisions int              `msgpack:"collisions"`
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:       g.tick,
		Score:      g.score,
		Wave:       g.wave,
		Broad:      g.handler.BroadPhase().String(),
		Narrow:     g.handler.NarrowPhase().String(),
		Tests:      g.stats.TotalTests,
		Collisions: g.stats.TotalCollisions,
		Asteroids:  make([]EntitySnapshot, 0, len(g.asteroids)),
		Bullets:    make([]EntitySnapshot, 0, len(g.bullets)),
	}
	if g.player != nil {
		s.Player = snapshotOf(g.player)
	}
	for _, a := range g.asteroids {
		s.Asteroids = append(s.Asteroids, snapshotOf(a))
	}
	for _, b := range g.bullets {
		s.Bullets = append(s.Bullets, snapshotOf(b))
	}
	return s
}

func snapshotOf(e *entity.Entity) EntitySnapshot {
	s := EntitySnapshot{
		ID:       e.ID(),
		Kind:     e.Kind().String(),
		X:        e.Position().X,
		Y:        e.Position().Y,
		VX:       e.Velocity().X,
		VY:       e.Velocity().Y,
		Rotation: e.Rotation(),
	}
	if e.Kind() == entity.KindAsteroid {
		s.Size = e.Size().String()
	}
	return s
}

// Encode returns the msgpack form of the snapshot. Equal snapshots encode
// to equal bytes.
func (s Snapshot) Encode() ([]byte, error) {
	return msgpack.Marshal(s)
}

// DecodeSnapshot parses a snapshot produced by Encode.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	err := msgpack.Unmarshal(data, &s)
	return s, err
}

// Hash returns a 64-bit digest of the encoded snapshot.
func (s Snapshot) Hash() (uint64, error) {
	data, err := s.Encode()
	if err != nil {
		return 0, err
	}
	return xxhash.Sum64(data), nil
}
