package config

import "math"

// GrowthManager maps a level depth to its maze size.
type GrowthManager struct {
	cfg GrowthConfig
}

// NewGrowthManager creates a new growth manager.
func NewGrowthManager(cfg GrowthConfig) *GrowthManager {
	return &GrowthManager{cfg: cfg}
}

// IsEnabled returns whether mazes grow with depth.
func (g *GrowthManager) IsEnabled() bool {
	return g.cfg.Enabled && g.cfg.Step != 0
}

// SizeAt returns the maze edge length for a depth.
// It never returns less than one cell.
func (g *GrowthManager) SizeAt(depth int) int {
	size := g.cfg.BaseSize
	if g.IsEnabled() && depth > 0 {
		size += g.cfg.Step * depth
	}
	if g.cfg.MaxSize > 0 && size > g.cfg.MaxSize {
		size = g.cfg.MaxSize
	}
	return max(size, 1)
}

// Level returns how far a depth is along the growth curve (0.0 to 1.0).
// Uncapped or disabled growth reports 0.
func (g *GrowthManager) Level(depth int) float64 {
	if !g.IsEnabled() || g.cfg.MaxSize <= g.cfg.BaseSize {
		return 0
	}
	span := float64(g.cfg.MaxSize - g.cfg.BaseSize)
	return clampF(float64(g.SizeAt(depth)-g.cfg.BaseSize)/span, 0.0, 1.0)
}

// CapDepth returns the first depth at which the size cap is reached, or -1
// when sizes never stop growing or never grow.
func (g *GrowthManager) CapDepth() int {
	if !g.IsEnabled() || g.cfg.MaxSize <= 0 || g.cfg.Step < 0 {
		return -1
	}
	if g.cfg.BaseSize >= g.cfg.MaxSize {
		return 0
	}
	return int(math.Ceil(float64(g.cfg.MaxSize-g.cfg.BaseSize) / float64(g.cfg.Step)))
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
