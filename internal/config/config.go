// Package config provides YAML-based configuration for the game: physics
// constants, obstacle layout, loop limits and frontend scaling.
package config

import (
	"errors"
	"fmt"
)

// FlappyConfig contains all configuration for the game.
type FlappyConfig struct {
	Physics  FlappyPhysics  `yaml:"physics"`
	Bird     FlappyBird     `yaml:"bird"`
	Pipes    FlappyPipes    `yaml:"pipes"`
	World    FlappyWorld    `yaml:"world"`
	Loop     FlappyLoop     `yaml:"loop"`
	Effects  FlappyEffects  `yaml:"effects"`
	Terminal FlappyTerminal `yaml:"terminal"`
}

// FlappyPhysics defines bird physics in world units and seconds.
type FlappyPhysics struct {
	Gravity         float64 `yaml:"gravity"`          // Downward acceleration, units/s²
	JumpForce       float64 `yaml:"jump_force"`       // Velocity set by a jump (negative = up)
	RotationDivisor float64 `yaml:"rotation_divisor"` // rotation = velocity / divisor
	MaxRotation     float64 `yaml:"max_rotation"`     // Clamp for |rotation|, radians
}

// FlappyBird defines the player character.
type FlappyBird struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	AnimInterval float64 `yaml:"anim_interval"` // Seconds per animation frame
	Frames       int     `yaml:"frames"`
	SpawnXRatio  float64 `yaml:"spawn_x_ratio"` // Spawn x as a fraction of world width
	SpawnYRatio  float64 `yaml:"spawn_y_ratio"` // Spawn y as a fraction of world height
}

// FlappyPipes defines obstacle spawning and movement.
type FlappyPipes struct {
	Width          float64 `yaml:"width"`
	Gap            float64 `yaml:"gap"`
	SpawnInterval  float64 `yaml:"spawn_interval"` // Seconds between spawns
	Speed          float64 `yaml:"speed"`          // Units/s to the left
	MinGapY        float64 `yaml:"min_gap_y"`
	BottomMargin   float64 `yaml:"bottom_margin"`   // Space kept between gap bottom and ground
	SpecialNumbers []int   `yaml:"special_numbers"` // Spawn numbers that carry a banner
}

// FlappyWorld defines the default world size and the ground strip.
type FlappyWorld struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	GroundHeight float64 `yaml:"ground_height"`
}

// FlappyLoop defines frame-loop limits.
type FlappyLoop struct {
	MaxDelta  float64 `yaml:"max_delta"` // Longest simulated step, seconds
	TargetFPS int     `yaml:"target_fps"`
}

// FlappyEffects defines visual effect timings.
type FlappyEffects struct {
	CollisionDuration float64 `yaml:"collision_duration"`
	ScoreAnimDuration float64 `yaml:"score_anim_duration"`
	ScoreAnimScale    float64 `yaml:"score_anim_scale"`
}

// FlappyTerminal maps world units onto terminal cells.
type FlappyTerminal struct {
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
}

// Validate reports every setting that would break the simulation.
func (c FlappyConfig) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("physics.gravity", c.Physics.Gravity)
	positive("physics.rotation_divisor", c.Physics.RotationDivisor)
	positive("physics.max_rotation", c.Physics.MaxRotation)
	if c.Physics.JumpForce >= 0 {
		errs = append(errs, fmt.Errorf("physics.jump_force must be negative, got %v", c.Physics.JumpForce))
	}
	positive("bird.width", c.Bird.Width)
	positive("bird.height", c.Bird.Height)
	positive("pipes.width", c.Pipes.Width)
	positive("pipes.gap", c.Pipes.Gap)
	positive("pipes.spawn_interval", c.Pipes.SpawnInterval)
	positive("pipes.speed", c.Pipes.Speed)
	positive("world.width", c.World.Width)
	positive("world.height", c.World.Height)
	positive("loop.max_delta", c.Loop.MaxDelta)
	positive("terminal.cell_width", c.Terminal.CellWidth)
	positive("terminal.cell_height", c.Terminal.CellHeight)
	if c.World.GroundHeight < 0 {
		errs = append(errs, fmt.Errorf("world.ground_height must not be negative, got %v", c.World.GroundHeight))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid flappy config: %w", errors.Join(errs...))
	}
	return nil
}

// IsSpecial reports whether the pipe with the given spawn number carries a banner.
func (p FlappyPipes) IsSpecial(number int) bool {
	for _, n := range p.SpecialNumbers {
		if n == number {
			return true
		}
	}
	return false
}
