package config

import (
	_ "embed"
	"math"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the built-in configuration.
// defaults/flappy.yaml carries the same values.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Physics: FlappyPhysics{
			Gravity:         1200,
			JumpForce:       -400,
			RotationDivisor: 600,
			MaxRotation:     math.Pi / 4,
		},
		Bird: FlappyBird{
			Width:        40,
			Height:       30,
			AnimInterval: 0.2,
			Frames:       3,
			SpawnXRatio:  1.0 / 3.0,
			SpawnYRatio:  0.5,
		},
		Pipes: FlappyPipes{
			Width:          60,
			Gap:            160,
			SpawnInterval:  1.5,
			Speed:          180,
			MinGapY:        80,
			BottomMargin:   80,
			SpecialNumbers: []int{3, 5, 7, 9, 12, 15},
		},
		World: FlappyWorld{
			Width:        450,
			Height:       640,
			GroundHeight: 50,
		},
		Loop: FlappyLoop{
			MaxDelta:  0.05,
			TargetFPS: 60,
		},
		Effects: FlappyEffects{
			CollisionDuration: 0.3,
			ScoreAnimDuration: 0.5,
			ScoreAnimScale:    1.5,
		},
		Terminal: FlappyTerminal{
			CellWidth:  8,
			CellHeight: 16,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultFlappyYAML
}
