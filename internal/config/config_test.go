package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchBuiltin(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) error: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultPlatformerConfig()) {
		t.Errorf("embedded YAML differs from DefaultPlatformerConfig():\n%+v\n%+v", cfg, DefaultPlatformerConfig())
	}
}

func TestParsePartialOverride(t *testing.T) {
	cfg, err := Parse([]byte("physics:\n  gravity: 0.8\nplayer:\n  health: 5\n"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if cfg.Physics.Gravity != 0.8 {
		t.Errorf("Gravity = %v, expected 0.8", cfg.Physics.Gravity)
	}
	if cfg.Player.Health != 5 {
		t.Errorf("Health = %v, expected 5", cfg.Player.Health)
	}
	if cfg.Physics.IterationCap != 20 {
		t.Errorf("IterationCap = %v, expected default 20", cfg.Physics.IterationCap)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad yaml", "physics: [", "parse"},
		{"iteration cap", "physics:\n  iteration_cap: 1\n", "iteration_cap"},
		{"drag", "physics:\n  drag: 1.5\n", "drag"},
		{"zoom step", "camera:\n  zoom_step: 1\n", "zoom_step"},
		{"arena", "crates:\n  arena_width: 10\n", "arena_width"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			if err == nil {
				t.Fatal("Parse() expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q should mention %q", err, tc.want)
			}
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("enemies:\n  patrol_speed: 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Enemies.PatrolSpeed != 9 {
		t.Errorf("PatrolSpeed = %v, expected 9", cfg.Enemies.PatrolSpeed)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of a missing custom path should fail")
	}
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultPlatformerConfig()) {
		t.Error("Load() without files should return the defaults")
	}
}

func TestPhysicsConversions(t *testing.T) {
	p := DefaultPlatformerConfig().Physics

	s := p.Settings()
	if s.IterationCap != 20 || s.SnapThreshold != 0.05 || s.EdgeEpsilon != 2 {
		t.Errorf("Settings() = %+v", s)
	}
	f := p.Forces()
	if f.Gravity != 0.4 || f.Drag != 0.005 {
		t.Errorf("Forces() = %+v", f)
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		in      string
		preset  DifficultyPreset
		enabled bool
		level   float64
	}{
		{"", DifficultyNormal, true, 0.3},
		{"easy", DifficultyEasy, true, 0.0},
		{"hard", DifficultyHard, true, 0.7},
		{"fixed", DifficultyFixed, false, 0.0},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			preset, err := ParsePreset(tc.in)
			if err != nil {
				t.Fatalf("ParsePreset(%q) error: %v", tc.in, err)
			}
			if preset != tc.preset {
				t.Errorf("ParsePreset(%q) = %v, expected %v", tc.in, preset, tc.preset)
			}
			cfg := DefaultPlatformerConfig()
			ApplyPreset(&cfg, preset)
			if cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.enabled)
			}
			if tc.enabled && cfg.Difficulty.InitialLevel != tc.level {
				t.Errorf("InitialLevel = %v, expected %v", cfg.Difficulty.InitialLevel, tc.level)
			}
		})
	}

	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("ParsePreset should reject unknown presets")
	}
}
