// Package collision keeps a moving point out of wall obstacles using a
// one-step axis-sliding response.
//
// Obstacles are inflated by a margin before testing so the avatar's radius is
// absorbed without modeling it. Resolution is discrete: it is only correct when
// per-tick displacement is small relative to the margin, which the fixed tick
// guarantees.
package collision

import (
	"strings"

	"github.com/vovakirdan/nestmaze/internal/core"
)

// DefaultMargin is the inflation applied to each obstacle on all sides.
const DefaultMargin = 3.0

// Result is the outcome of one resolution.
type Result struct {
	Position core.Vec2 // Committed position

	// BlockX and BlockZ tell the caller which velocity components to zero.
	BlockX bool
	BlockZ bool
}

// Collided reports whether the proposed move was altered.
func (r Result) Collided() bool {
	return r.BlockX || r.BlockZ
}

// Resolver adjusts a proposed move so it cannot penetrate an obstacle.
type Resolver interface {
	Resolve(before, after core.Vec2) Result
}

// Strategy names a resolver implementation.
type Strategy string

const (
	StrategyAABB    Strategy = "aabb"
	StrategySegment Strategy = "segment"
)

// ParseStrategy resolves a config name. Unknown names fall back to AABB.
func ParseStrategy(name string) Strategy {
	switch Strategy(strings.ToLower(strings.TrimSpace(name))) {
	case StrategySegment:
		return StrategySegment
	default:
		return StrategyAABB
	}
}

// New builds a resolver for the given strategy.
func New(s Strategy, obstacles []core.Box, margin float64) Resolver {
	if s == StrategySegment {
		return NewSegment(obstacles, margin)
	}
	return NewAABB(obstacles, margin)
}

// slide applies the sliding policy shared by every strategy.
// blocked reports whether moving from before to p hits an obstacle.
func slide(before, after core.Vec2, blocked func(p core.Vec2) bool) Result {
	if !blocked(after) {
		return Result{Position: after}
	}

	// Slide along Z: keep old X, take new Z
	zOnly := core.Vec2{X: before.X, Z: after.Z}
	if !blocked(zOnly) {
		return Result{Position: zOnly, BlockX: true}
	}

	// Slide along X: take new X, keep old Z
	xOnly := core.Vec2{X: after.X, Z: before.Z}
	if !blocked(xOnly) {
		return Result{Position: xOnly, BlockZ: true}
	}

	return Result{Position: before, BlockX: true, BlockZ: true}
}

func inflateAll(obstacles []core.Box, margin float64) []core.Box {
	out := make([]core.Box, len(obstacles))
	for i, b := range obstacles {
		out[i] = b.Inflate(margin)
	}
	return out
}
