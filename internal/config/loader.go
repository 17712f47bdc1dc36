package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name searched for in config directories.
const ConfigFile = "maze.yaml"

// LoadMaze loads the session configuration.
// Search order: customPath -> ~/.nestmaze/configs/maze.yaml -> ./configs/maze.yaml -> embedded default
//
// Files are decoded over the hardcoded defaults, so a partial file only
// overrides the keys it names.
func LoadMaze(customPath string) (MazeConfig, error) {
	cfg := DefaultMazeConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(ConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if parsed, err := decode(data); err == nil {
				return parsed, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", ConfigFile)); err == nil {
		if parsed, err := decode(data); err == nil {
			return parsed, nil
		}
	}

	// Use embedded default YAML
	parsed, err := decode(defaultMazeYAML)
	if err != nil {
		return DefaultMazeConfig(), nil // Fallback to hardcoded if embed fails
	}
	return parsed, nil
}

func decode(data []byte) (MazeConfig, error) {
	cfg := DefaultMazeConfig()
	err := yaml.Unmarshal(data, &cfg)
	return cfg, err
}

// HomeDir returns the per-user nestmaze directory, or empty if home is
// unavailable.
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".nestmaze")
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := HomeDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}

// ApplyMazePreset modifies the config based on a difficulty preset.
// Presets only touch maze growth; an empty preset leaves cfg alone.
func ApplyMazePreset(cfg *MazeConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Growth = GrowthConfig{Enabled: true, BaseSize: 5, Step: 1, MaxSize: 12}
	case DifficultyNormal:
		cfg.Growth = GrowthConfig{Enabled: true, BaseSize: 10, Step: 2, MaxSize: 30}
	case DifficultyHard:
		cfg.Growth = GrowthConfig{Enabled: true, BaseSize: 14, Step: 4, MaxSize: 50}
	case DifficultyFixed:
		cfg.Growth.Enabled = false
	}
}

// Resolve returns the configuration a session runs with: the loaded file
// with preset applied, or the defaults with preset applied when the file
// cannot be loaded or fails validation. A non-nil error explains why the defaults were used.
func Resolve(customPath string, preset DifficultyPreset) (MazeConfig, error) {
	fallback := DefaultMazeConfig()
	ApplyMazePreset(&fallback, preset)

	cfg, err := LoadMaze(customPath)
	if err != nil {
		return fallback, err
	}
	ApplyMazePreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return fallback, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Marshal renders cfg as YAML, for the config dump command.
func Marshal(cfg MazeConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}
