// Package config provides YAML-based game configuration loading and
// difficulty management for the platformer.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-platformer/internal/physics"
	"github.com/vovakirdan/tui-platformer/internal/sim"
)

// PlatformerConfig contains all tunables shared by the platformer games.
type PlatformerConfig struct {
	Physics    PhysicsConfig    `yaml:"physics"`
	Player     PlayerConfig     `yaml:"player"`
	Camera     CameraConfig     `yaml:"camera"`
	Enemies    EnemyConfig      `yaml:"enemies"`
	Crates     CratesConfig     `yaml:"crates"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PhysicsConfig defines the global forces and collision sweep parameters.
type PhysicsConfig struct {
	Gravity       float64 `yaml:"gravity"`        // added to Y velocity every step
	Drag          float64 `yaml:"drag"`           // fraction of velocity removed every step
	IterationCap  int     `yaml:"iteration_cap"`  // per-axis resolution loop bound
	SnapThreshold float64 `yaml:"snap_threshold"` // smaller velocity components become zero
	EdgeEpsilon   float64 `yaml:"edge_epsilon"`   // thinner contacts are ignored
}

// Settings converts to engine settings.
func (p PhysicsConfig) Settings() physics.Settings {
	return physics.Settings{
		IterationCap:  p.IterationCap,
		SnapThreshold: p.SnapThreshold,
		EdgeEpsilon:   p.EdgeEpsilon,
	}
}

// Forces converts to simulation forces.
func (p PhysicsConfig) Forces() sim.Forces {
	return sim.Forces{Gravity: p.Gravity, Drag: p.Drag}
}

// PlayerConfig defines the penguin's body and controls.
type PlayerConfig struct {
	Mass           float64 `yaml:"mass"`
	Elasticity     float64 `yaml:"elasticity"`
	JumpImpulse    float64 `yaml:"jump_impulse"`    // upward speed set on jump
	GroundAccel    float64 `yaml:"ground_accel"`    // per-tick push while attached or reversing
	AirAccel       float64 `yaml:"air_accel"`       // per-tick push while airborne
	GroundFriction float64 `yaml:"ground_friction"` // friction while standing
	SlideFriction  float64 `yaml:"slide_friction"`  // friction while ducking
	SlideBoost     float64 `yaml:"slide_boost"`     // X velocity multiplier when a slide starts
	Health         int     `yaml:"health"`
	HurtCooldown   int     `yaml:"hurt_cooldown"` // ticks of invulnerability after a hit
}

// CameraConfig defines camera tracking and zoom.
type CameraConfig struct {
	TrackBoundsX float64 `yaml:"track_bounds_x"`
	TrackBoundsY float64 `yaml:"track_bounds_y"`
	Decay        float64 `yaml:"decay"`        // track offset multiplier per tick
	DefaultZoom  float64 `yaml:"default_zoom"` // 2/zoom world units fit across the screen
	ZoomStep     float64 `yaml:"zoom_step"`    // zoom multiplier per key press
	CellAspect   float64 `yaml:"cell_aspect"`  // terminal cell height divided by width
}

// EnemyConfig defines spider patrol behavior.
type EnemyConfig struct {
	PatrolSpeed float64 `yaml:"patrol_speed"`
	PatrolLeft  float64 `yaml:"patrol_left"`  // distance left of the spawn point
	PatrolRight float64 `yaml:"patrol_right"` // distance right of the spawn point
	StompSpeed  float64 `yaml:"stomp_speed"`  // minimum downward speed that kills
	StompScore  int     `yaml:"stomp_score"`
}

// CratesConfig defines the stacking sandbox.
type CratesConfig struct {
	SpawnCooldown int     `yaml:"spawn_cooldown"` // ticks between spawns
	MaxCrates     int     `yaml:"max_crates"`
	CrateSize     float64 `yaml:"crate_size"`
	ArenaWidth    float64 `yaml:"arena_width"`
	ArenaHeight   float64 `yaml:"arena_height"`
}

// Validate reports settings the engine cannot run with.
func (c PlatformerConfig) Validate() error {
	var errs []error
	if c.Physics.IterationCap < 2 {
		errs = append(errs, fmt.Errorf("physics.iteration_cap must be at least 2, got %d", c.Physics.IterationCap))
	}
	if c.Physics.SnapThreshold < 0 {
		errs = append(errs, fmt.Errorf("physics.snap_threshold must not be negative"))
	}
	if c.Physics.EdgeEpsilon < 0 {
		errs = append(errs, fmt.Errorf("physics.edge_epsilon must not be negative"))
	}
	if c.Physics.Drag < 0 || c.Physics.Drag >= 1 {
		errs = append(errs, fmt.Errorf("physics.drag must be in [0, 1), got %v", c.Physics.Drag))
	}
	if c.Camera.DefaultZoom <= 0 || c.Camera.ZoomStep <= 1 {
		errs = append(errs, fmt.Errorf("camera.default_zoom must be positive and camera.zoom_step above 1"))
	}
	if c.Crates.CrateSize <= 0 || c.Crates.ArenaWidth < c.Crates.CrateSize {
		errs = append(errs, fmt.Errorf("crates.arena_width must fit at least one crate"))
	}
	return errors.Join(errs...)
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
	SpeedMultiplier   float64 `yaml:"speed_multiplier"`   // added to enemy patrol speed at max difficulty
	CooldownReduction int     `yaml:"cooldown_reduction"` // crate spawn cooldown reduction at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

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

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *PlatformerConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}
