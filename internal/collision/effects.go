package collision

import "github.com/vovakirdan/tui-asteroids/internal/entity"

// SplitRequest asks the owner to replace an asteroid with its fragments.
type SplitRequest struct {
	Asteroid *entity.Entity
}

// DisableRequest asks the owner to remove a spent bullet.
type DisableRequest struct {
	Bullet *entity.Entity
}

// Effects are the gameplay consequences of one collision pass.
// The pass only flags entities and appends requests; nothing is removed
// or spawned until the owner applies them after the pass.
// Each entity appears at most once per list.
type Effects struct {
	Splits   []SplitRequest
	Disables []DisableRequest
	Recolors []*entity.Entity
}

// Reset empties every list, keeping capacity.
func (e *Effects) Reset() {
	clear(e.Splits)
	clear(e.Disables)
	clear(e.Recolors)
	e.Splits = e.Splits[:0]
	e.Disables = e.Disables[:0]
	e.Recolors = e.Recolors[:0]
}

// Empty reports whether the pass produced no effects.
func (e *Effects) Empty() bool {
	return len(e.Splits) == 0 && len(e.Disables) == 0 && len(e.Recolors) == 0
}

func (e *Effects) split(a *entity.Entity) {
	if a.MarkedForSplit() {
		return
	}
	a.MarkForSplit()
	e.Splits = append(e.Splits, SplitRequest{Asteroid: a})
}

func (e *Effects) disable(b *entity.Entity) {
	if b.Disabled() {
		return
	}
	b.Disable()
	e.Disables = append(e.Disables, DisableRequest{Bullet: b})
}

func (e *Effects) recolor(a *entity.Entity) {
	if a.Touching() {
		return
	}
	a.SetTouching(true)
	e.Recolors = append(e.Recolors, a)
}
