package config

import "github.com/vovakirdan/tui-asteroids/internal/core"

// Progression types accepted in difficulty.progression.type.
const (
	ProgressionScore = "score"
	ProgressionTime  = "time"
	ProgressionNone  = "none"
)

// DifficultyManager turns score or elapsed ticks into a difficulty level
// and scales each new wave of asteroids by it.
type DifficultyManager struct {
	cfg   DifficultyConfig
	floor float64 // level at zero progress
}

// NewDifficultyManager creates a manager starting at cfg.InitialLevel.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:   cfg,
		floor: core.ClampF(cfg.InitialLevel, 0, 1),
	}
}

// SetInitialLevel overrides the starting level, clamped to [0, 1].
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.floor = core.ClampF(level, 0, 1)
}

// SetEnabled turns progression on or off.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled reports whether the level grows with play.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != ProgressionNone
}

// Level returns the difficulty in [floor, 1]. It rises linearly from the
// initial level to 1 as score or ticks approach progression.max_at.
func (d *DifficultyManager) Level(score int, ticks int) float64 {
	if !d.IsEnabled() {
		return d.floor
	}

	var done float64
	switch d.cfg.Progression.Type {
	case ProgressionScore:
		done = float64(score)
	case ProgressionTime:
		done = float64(ticks)
	default:
		return d.floor
	}

	maxAt := float64(max(d.cfg.Progression.MaxAt, 1))
	p := core.ClampF(done/maxAt, 0, 1)
	return d.floor + p*(1-d.floor)
}

// Speed returns the launch speed of a new wave: base at level 0 up to
// base * (1 + speed_multiplier) at level 1.
func (d *DifficultyManager) Speed(baseSpeed float64, score int, ticks int) float64 {
	return baseSpeed * (1 + d.Level(score, ticks)*d.cfg.Scaling.SpeedMultiplier)
}

// WaveSize returns how many large asteroids the next wave starts with.
// A wave always has at least one asteroid.
func (d *DifficultyManager) WaveSize(baseCount int, score int, ticks int) int {
	extra := int(d.Level(score, ticks) * float64(d.cfg.Scaling.ExtraAsteroids))
	return max(baseCount+extra, 1)
}
