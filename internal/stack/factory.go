package stack

import (
	"github.com/vovakirdan/nestmaze/internal/core"
	"github.com/vovakirdan/nestmaze/internal/level"
	"github.com/vovakirdan/nestmaze/internal/scene"
)

// Sizer maps a depth to a square maze edge length in cells.
type Sizer interface {
	SizeAt(depth int) int
}

// LinearSizer grows the maze by Step cells per level, capped at Max.
// A Max of zero disables the cap.
type LinearSizer struct {
	Base int
	Step int
	Max  int
}

// SizeAt implements Sizer.
func (g LinearSizer) SizeAt(depth int) int {
	size := g.Base + g.Step*depth
	if g.Max > 0 && size > g.Max {
		size = g.Max
	}
	return max(size, 1)
}

// levelSeedStride spreads per-level seeds apart.
const levelSeedStride = 1_000_003

// LevelSeed derives the maze seed for a depth from the session seed.
func LevelSeed(seed int64, depth int) int64 {
	return seed + int64(depth)*levelSeedStride
}

// LevelFactory returns a Factory that builds levels from tmpl, sizing them
// with sizer and coloring them from palette by depth.
func LevelFactory(backend scene.Backend, sizer Sizer, palette []core.Color, tmpl level.Params, seed int64) Factory {
	return func(depth int) (*level.Level, error) {
		p := tmpl
		p.Depth = depth
		size := sizer.SizeAt(depth)
		p.Width, p.Height = size, size
		p.Color = core.PaletteColor(palette, depth)
		p.Seed = LevelSeed(seed, depth)
		return level.New(backend, p)
	}
}
