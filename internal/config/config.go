// Package config provides YAML-based game configuration loading and
// difficulty management for the asteroids game.
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/tui-asteroids/internal/collision"
)

// ErrInvalidConfig is returned by Validate for unusable values.
var ErrInvalidConfig = errors.New("config: invalid value")

// AsteroidsConfig contains all configuration for the asteroids game.
type AsteroidsConfig struct {
	World      AsteroidsWorld     `yaml:"world"`
	Player     AsteroidsPlayer    `yaml:"player"`
	Bullet     AsteroidsBullet    `yaml:"bullet"`
	Asteroids  AsteroidsField     `yaml:"asteroids"`
	Collision  AsteroidsCollision `yaml:"collision"`
	Difficulty DifficultyConfig   `yaml:"difficulty"`
}

// AsteroidsWorld defines the logical play field and its spatial indexes.
type AsteroidsWorld struct {
	Width            float64 `yaml:"width"`
	Height           float64 `yaml:"height"`
	CellSize         float64 `yaml:"cell_size"`         // Uniform grid cell edge, see MinCellSize
	QuadtreeCapacity int     `yaml:"quadtree_capacity"` // Items per node before it subdivides
}

// AsteroidsPlayer defines the ship.
type AsteroidsPlayer struct {
	Scale         float64 `yaml:"scale"`
	Rotation      float64 `yaml:"rotation"`       // Degrees per tick while turning
	Acceleration  float64 `yaml:"acceleration"`   // Velocity added per tick of thrust
	MaxVelocity   float64 `yaml:"max_velocity"`   // Per-component speed limit
	ShootInterval float64 `yaml:"shoot_interval"` // Seconds between shots
}

// AsteroidsBullet defines projectiles.
type AsteroidsBullet struct {
	Scale float64 `yaml:"scale"`
	Speed float64 `yaml:"speed"`
}

// AsteroidsField defines asteroid shapes, waves and scoring.
type AsteroidsField struct {
	Radii        [3]float64 `yaml:"radii"` // large, medium, small
	Vertices     int        `yaml:"vertices"`
	Rotation     float64    `yaml:"rotation"`
	SpawnSpeed   float64    `yaml:"spawn_speed"`
	InitialCount int        `yaml:"initial_count"`
	SplitFactor  float64    `yaml:"split_factor"`
	Points       [3]int     `yaml:"points"` // Score per destroyed asteroid, by size
}

// AsteroidsCollision selects the initial collision modes and toggles.
type AsteroidsCollision struct {
	Broad    string `yaml:"broad"`
	Narrow   string `yaml:"narrow"`
	Player   bool   `yaml:"player"`
	Asteroid bool   `yaml:"asteroid"`
	Bullet   bool   `yaml:"bullet"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to spawn speed at max difficulty
	ExtraAsteroids  int     `yaml:"extra_asteroids"`  // Asteroids added to a wave at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ParseDifficultyPreset converts a preset name. The empty string is accepted
// and means no preset.
func ParseDifficultyPreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("%w: difficulty %q", ErrInvalidConfig, s)
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// MinCellSize returns the smallest grid cell that keeps every pair able to
// touch in the next frame within adjacent cells. Predicted points lie at
// most radius + speed from an entity's position on each axis, so two
// touching shapes are at most twice the largest such reach apart.
//
// Asteroid speed is bounded by the spawn speed at full difficulty and
// grows by split_factor with each split.
func (c AsteroidsConfig) MinCellSize() float64 {
	reach := max(c.Player.Scale+c.Player.MaxVelocity, c.Bullet.Scale+c.Bullet.Speed)

	speed := c.Asteroids.SpawnSpeed * (1 + max(c.Difficulty.Scaling.SpeedMultiplier, 0))
	for _, r := range c.Asteroids.Radii {
		reach = max(reach, r+math.Abs(speed))
		speed *= math.Abs(c.Asteroids.SplitFactor)
	}
	return 2 * reach
}

// Validate reports the first unusable value in the config.
func (c AsteroidsConfig) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"world.width", c.World.Width},
		{"world.height", c.World.Height},
		{"world.cell_size", c.World.CellSize},
		{"player.scale", c.Player.Scale},
		{"player.max_velocity", c.Player.MaxVelocity},
		{"bullet.scale", c.Bullet.Scale},
		{"bullet.speed", c.Bullet.Speed},
		{"asteroids.radii[0]", c.Asteroids.Radii[0]},
		{"asteroids.radii[1]", c.Asteroids.Radii[1]},
		{"asteroids.radii[2]", c.Asteroids.Radii[2]},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, p.name, p.v)
		}
	}

	if c.World.QuadtreeCapacity <= 0 {
		return fmt.Errorf("%w: world.quadtree_capacity must be positive, got %d", ErrInvalidConfig, c.World.QuadtreeCapacity)
	}
	if c.Asteroids.Vertices < 3 {
		return fmt.Errorf("%w: asteroids.vertices must be at least 3, got %d", ErrInvalidConfig, c.Asteroids.Vertices)
	}
	if c.Asteroids.InitialCount < 0 {
		return fmt.Errorf("%w: asteroids.initial_count must not be negative", ErrInvalidConfig)
	}
	if minCell := c.MinCellSize(); c.World.CellSize < minCell {
		return fmt.Errorf("%w: world.cell_size %v is below %v, twice the largest shape radius plus speed",
			ErrInvalidConfig, c.World.CellSize, minCell)
	}

	if _, err := collision.ParseBroadPhase(c.Collision.Broad); err != nil {
		return fmt.Errorf("collision.broad: %w", err)
	}
	if _, err := collision.ParseNarrowPhase(c.Collision.Narrow); err != nil {
		return fmt.Errorf("collision.narrow: %w", err)
	}
	return nil
}
