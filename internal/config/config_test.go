package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/nestmaze/internal/core"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	cfg, err := decode(defaultMazeYAML)
	if err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}

	def := DefaultMazeConfig()
	if cfg.Growth != def.Growth || cfg.Geometry != def.Geometry || cfg.Physics != def.Physics {
		t.Errorf("embedded YAML drifted from DefaultMazeConfig:\n%+v\n%+v", cfg, def)
	}
	if cfg.Stack != def.Stack || cfg.Screen != def.Screen || cfg.Camera != def.Camera {
		t.Errorf("embedded YAML drifted from DefaultMazeConfig:\n%+v\n%+v", cfg, def)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("embedded default is invalid: %v", err)
	}
}

func TestLoadMazeCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.yaml")
	data := "growth:\n  base_size: 4\nstack:\n  gated_descent: false\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadMaze(path)
	if err != nil {
		t.Fatalf("LoadMaze() failed: %v", err)
	}
	if cfg.Growth.BaseSize != 4 {
		t.Errorf("base_size = %d, expected 4", cfg.Growth.BaseSize)
	}
	if cfg.Stack.GatedDescent {
		t.Error("gated_descent should be overridden")
	}

	// Keys absent from the file keep their defaults
	if cfg.Growth.Step != 2 || cfg.Geometry.WallLength != 22 {
		t.Errorf("partial file should keep defaults, got %+v", cfg)
	}
}

func TestLoadMazeErrors(t *testing.T) {
	if _, err := LoadMaze(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom file should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("growth: [unterminated"), 0o644)
	if _, err := LoadMaze(path); err == nil {
		t.Error("malformed YAML should fail")
	}
}

func TestLoadMazeFallback(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadMaze("")
	if err != nil {
		t.Fatalf("LoadMaze() failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("fallback config is invalid: %v", err)
	}
}

func TestApplyMazePreset(t *testing.T) {
	tests := []struct {
		preset   DifficultyPreset
		base     int
		enabled  bool
		maxDepth int
	}{
		{DifficultyEasy, 5, true, 12},
		{DifficultyNormal, 10, true, 30},
		{DifficultyHard, 14, true, 50},
		{DifficultyFixed, 10, false, 30},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultMazeConfig()
			ApplyMazePreset(&cfg, tc.preset)
			if cfg.Growth.BaseSize != tc.base || cfg.Growth.Enabled != tc.enabled || cfg.Growth.MaxSize != tc.maxDepth {
				t.Errorf("growth = %+v", cfg.Growth)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset produced invalid config: %v", err)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, ok := ParsePreset("hard"); !ok || p != DifficultyHard {
		t.Errorf("ParsePreset(hard) = %q, %v", p, ok)
	}
	if _, ok := ParsePreset(""); !ok {
		t.Error("empty preset should be accepted")
	}
	if _, ok := ParsePreset("nightmare"); ok {
		t.Error("unknown preset should be rejected")
	}
}

func TestValidateReportsAll(t *testing.T) {
	cfg := DefaultMazeConfig()
	cfg.Growth.BaseSize = 0
	cfg.Collision.Strategy = "raycast"
	cfg.Stack.Present = "middle"
	cfg.Palette = append(cfg.Palette, "ultraviolet")

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() should fail")
	}

	msg := err.Error()
	for _, want := range []string{"base_size", "collision.strategy", "stack.present", "ultraviolet"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q should mention %s", msg, want)
		}
	}
}

func TestValidateMarginLeavesCorridor(t *testing.T) {
	cfg := DefaultMazeConfig()
	cfg.Physics.Margin = 10
	if err := cfg.Validate(); err == nil {
		t.Error("margin wider than half a corridor should be rejected")
	}
}

func TestValidateDragStepConverges(t *testing.T) {
	tests := []struct {
		name  string
		drag  float64
		delta float64
		ok    bool
	}{
		{"defaults", 10, 0.1, true},
		{"overshoot", 30, 0.1, false},
		{"small step", 30, 0.02, true},
		{"no drag", 0, 0.1, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultMazeConfig()
			cfg.Physics.Drag = tc.drag
			cfg.Physics.MaxFrameDelta = tc.delta
			err := cfg.Validate()
			if (err == nil) != tc.ok {
				t.Errorf("Validate() = %v, expected ok=%v", err, tc.ok)
			}
			if err != nil && !strings.Contains(err.Error(), "physics.drag") {
				t.Errorf("error %q should mention physics.drag", err)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()

	good := DefaultMazeConfig()
	good.Growth = GrowthConfig{Enabled: true, BaseSize: 4, Step: 1, MaxSize: 9}
	goodPath := writeConfig(t, dir, "good.yaml", good)

	cfg, err := Resolve(goodPath, "")
	if err != nil || cfg.Growth.BaseSize != 4 {
		t.Errorf("Resolve(good) = %+v, %v", cfg.Growth, err)
	}

	cfg, err = Resolve(goodPath, DifficultyFixed)
	if err != nil || cfg.Growth.Enabled {
		t.Errorf("fixed preset should disable growth, got %+v, %v", cfg.Growth, err)
	}

	bad := DefaultMazeConfig()
	bad.Physics.Drag = 30
	badPath := writeConfig(t, dir, "bad.yaml", bad)

	cfg, err = Resolve(badPath, "")
	if err == nil {
		t.Fatal("Resolve(bad) should report the fallback")
	}
	if cfg.Physics.Drag != DefaultMazeConfig().Physics.Drag {
		t.Errorf("invalid config should fall back to defaults, got drag %v", cfg.Physics.Drag)
	}

	if _, err := Resolve(filepath.Join(dir, "missing.yaml"), ""); err == nil {
		t.Error("missing custom path should be reported")
	}
}

func writeConfig(t *testing.T, dir, name string, cfg MazeConfig) string {
	t.Helper()
	data, err := Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestColors(t *testing.T) {
	cfg := DefaultMazeConfig()
	colors := cfg.Colors()
	if len(colors) != len(core.ColorBlindPalette) || colors[0] != core.ColorOrange {
		t.Errorf("Colors() = %v", colors)
	}

	cfg.Palette = []string{"nope"}
	if got := cfg.Colors(); len(got) != len(core.ColorBlindPalette) {
		t.Error("unusable palette should fall back to the color-blind palette")
	}

	cfg.Palette = []string{"red", "nope", "blue"}
	if got := cfg.Colors(); len(got) != 2 || got[1] != core.ColorBlue {
		t.Errorf("Colors() = %v", got)
	}
}

func TestGrowthManager(t *testing.T) {
	tests := []struct {
		name     string
		cfg      GrowthConfig
		depth    int
		expected int
	}{
		{"root", GrowthConfig{Enabled: true, BaseSize: 10, Step: 2, MaxSize: 30}, 0, 10},
		{"grown", GrowthConfig{Enabled: true, BaseSize: 10, Step: 2, MaxSize: 30}, 4, 18},
		{"capped", GrowthConfig{Enabled: true, BaseSize: 10, Step: 2, MaxSize: 30}, 40, 30},
		{"uncapped", GrowthConfig{Enabled: true, BaseSize: 10, Step: 2}, 40, 90},
		{"disabled", GrowthConfig{Enabled: false, BaseSize: 10, Step: 2}, 5, 10},
		{"floor", GrowthConfig{Enabled: true, BaseSize: 0}, 0, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NewGrowthManager(tc.cfg).SizeAt(tc.depth); got != tc.expected {
				t.Errorf("SizeAt(%d) = %d, expected %d", tc.depth, got, tc.expected)
			}
		})
	}
}

func TestGrowthLevelAndCap(t *testing.T) {
	g := NewGrowthManager(GrowthConfig{Enabled: true, BaseSize: 10, Step: 2, MaxSize: 30})

	if g.Level(0) != 0 || g.Level(5) != 0.5 || g.Level(100) != 1 {
		t.Errorf("Level = %v, %v, %v", g.Level(0), g.Level(5), g.Level(100))
	}
	if g.CapDepth() != 10 {
		t.Errorf("CapDepth() = %d, expected 10", g.CapDepth())
	}

	g = NewGrowthManager(GrowthConfig{Enabled: false, BaseSize: 10, Step: 2, MaxSize: 30})
	if g.IsEnabled() || g.CapDepth() != -1 || g.Level(5) != 0 {
		t.Error("disabled growth should report no progression")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(DefaultMazeConfig())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(data), "gated_descent: true") {
		t.Errorf("marshaled config missing keys:\n%s", data)
	}
}
