// Package config provides YAML-based configuration loading and maze growth
// management for nestmaze.
package config

import "github.com/vovakirdan/nestmaze/internal/core"

// MazeConfig contains all tunable parameters of a session.
type MazeConfig struct {
	Growth    GrowthConfig    `yaml:"growth"`
	Geometry  GeometryConfig  `yaml:"geometry"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Collision CollisionConfig `yaml:"collision"`
	Screen    ScreenConfig    `yaml:"screen"`
	Camera    CameraConfig    `yaml:"camera"`
	Stack     StackConfig     `yaml:"stack"`
	Palette   []string        `yaml:"palette"` // Wall colors cycled by depth
}

// GrowthConfig defines how maze size scales with depth.
type GrowthConfig struct {
	Enabled  bool `yaml:"enabled"`
	BaseSize int  `yaml:"base_size"` // Edge length in cells at depth 0
	Step     int  `yaml:"step"`      // Cells added per level
	MaxSize  int  `yaml:"max_size"`  // 0 = uncapped
}

// GeometryConfig defines wall dimensions in world units.
type GeometryConfig struct {
	WallLength float64 `yaml:"wall_length"`
	WallHeight float64 `yaml:"wall_height"`
	WallWidth  float64 `yaml:"wall_width"`
}

// PhysicsConfig defines avatar movement parameters.
type PhysicsConfig struct {
	Drag          float64 `yaml:"drag"`
	Impulse       float64 `yaml:"impulse"`
	Margin        float64 `yaml:"margin"`
	EyeHeight     float64 `yaml:"eye_height"`
	MaxFrameDelta float64 `yaml:"max_frame_delta"` // Seconds
}

// CollisionConfig selects the collision resolver.
type CollisionConfig struct {
	Strategy string `yaml:"strategy"` // "aabb" or "segment"
}

// ScreenConfig defines the nested screen placed in every level.
type ScreenConfig struct {
	Size            float64 `yaml:"size"`
	ProximityRadius float64 `yaml:"proximity_radius"`
	TargetWidth     int     `yaml:"target_width"`
	TargetHeight    int     `yaml:"target_height"`
}

// CameraConfig defines projection and look speeds.
type CameraConfig struct {
	FOV       float64 `yaml:"fov"` // Degrees
	Near      float64 `yaml:"near"`
	Far       float64 `yaml:"far"`
	TurnRate  float64 `yaml:"turn_rate"`  // Radians per second
	PitchRate float64 `yaml:"pitch_rate"` // Radians per second
}

// StackConfig defines level stack policy.
type StackConfig struct {
	GatedDescent bool   `yaml:"gated_descent"` // Require standing near the screen to descend
	Lookahead    int    `yaml:"lookahead"`     // Spare levels kept below the cursor
	Present      string `yaml:"present"`       // "root" or "current"
}

// Colors resolves the palette names. Unknown names are skipped; an empty
// result falls back to the color-blind palette.
func (c MazeConfig) Colors() []core.Color {
	out := make([]core.Color, 0, len(c.Palette))
	for _, name := range c.Palette {
		if col, ok := core.ParseColor(name); ok {
			out = append(out, col)
		}
	}
	if len(out) == 0 {
		return core.ColorBlindPalette
	}
	return out
}

// DifficultyPreset represents a named growth profile.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means no preset.
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
	}
}
