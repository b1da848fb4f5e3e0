package config

import (
	_ "embed"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

// DefaultPlatformerConfig returns the built-in configuration.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		Physics: PhysicsConfig{
			Gravity:       0.4,
			Drag:          0.005,
			IterationCap:  20,
			SnapThreshold: 0.05,
			EdgeEpsilon:   2.0,
		},
		Player: PlayerConfig{
			Mass:           5,
			Elasticity:     0.5,
			JumpImpulse:    23,
			GroundAccel:    2,
			AirAccel:       0.2,
			GroundFriction: 0.85,
			SlideFriction:  0.99999,
			SlideBoost:     1.5,
			Health:         3,
			HurtCooldown:   60,
		},
		Camera: CameraConfig{
			TrackBoundsX: 200,
			TrackBoundsY: 100,
			Decay:        0.995,
			DefaultZoom:  0.001,
			ZoomStep:     1.1,
			CellAspect:   2,
		},
		Enemies: EnemyConfig{
			PatrolSpeed: 6,
			PatrolLeft:  500,
			PatrolRight: 1000,
			StompSpeed:  0.1,
			StompScore:  100,
		},
		Crates: CratesConfig{
			SpawnCooldown: 30,
			MaxCrates:     60,
			CrateSize:     64,
			ArenaWidth:    1024,
			ArenaHeight:   768,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 1000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:   1.0,
				CooldownReduction: 20,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultPlatformerYAML
}
