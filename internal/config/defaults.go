package config

import (
	_ "embed"
)

//go:embed defaults/maze.yaml
var defaultMazeYAML []byte

// DefaultMazeConfig returns the hardcoded configuration used when no YAML
// source can be read.
func DefaultMazeConfig() MazeConfig {
	return MazeConfig{
		Growth: GrowthConfig{
			Enabled:  true,
			BaseSize: 10,
			Step:     2,
			MaxSize:  30,
		},
		Geometry: GeometryConfig{
			WallLength: 22,
			WallHeight: 20,
			WallWidth:  2,
		},
		Physics: PhysicsConfig{
			Drag:          10,
			Impulse:       400,
			Margin:        3,
			EyeHeight:     10,
			MaxFrameDelta: 0.1,
		},
		Collision: CollisionConfig{
			Strategy: "aabb",
		},
		Screen: ScreenConfig{
			Size:            15,
			ProximityRadius: 15,
			TargetWidth:     64,
			TargetHeight:    24,
		},
		Camera: CameraConfig{
			FOV:       75,
			Near:      1,
			Far:       1000,
			TurnRate:  2.5,
			PitchRate: 1.5,
		},
		Stack: StackConfig{
			GatedDescent: true,
			Lookahead:    1,
			Present:      "root",
		},
		Palette: []string{
			"orange",
			"bright_cyan",
			"green",
			"bright_yellow",
			"blue",
			"red",
			"magenta",
		},
	}
}
