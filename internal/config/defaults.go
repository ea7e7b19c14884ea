package config

import (
	_ "embed"
)

//go:embed defaults/asteroids.yaml
var defaultAsteroidsYAML []byte

// DefaultAsteroidsConfig returns the default asteroids configuration.
func DefaultAsteroidsConfig() AsteroidsConfig {
	return AsteroidsConfig{
		World: AsteroidsWorld{
			Width:            1024,
			Height:           768,
			CellSize:         120,
			QuadtreeCapacity: 5,
		},
		Player: AsteroidsPlayer{
			Scale:         25,
			Rotation:      4,
			Acceleration:  0.2,
			MaxVelocity:   5,
			ShootInterval: 0.2,
		},
		Bullet: AsteroidsBullet{
			Scale: 10,
			Speed: 5,
		},
		Asteroids: AsteroidsField{
			Radii:        [3]float64{55, 32, 12},
			Vertices:     11,
			Rotation:     1,
			SpawnSpeed:   2,
			InitialCount: 10,
			SplitFactor:  2,
			Points:       [3]int{20, 50, 100},
		},
		Collision: AsteroidsCollision{
			Broad:    "uniformgrid",
			Narrow:   "sat",
			Player:   true,
			Asteroid: true,
			Bullet:   true,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 10000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
				ExtraAsteroids:  6,
			},
		},
	}
}
