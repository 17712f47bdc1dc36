package collision

import "github.com/vovakirdan/nestmaze/internal/core"

// AABB tests candidate positions for containment in inflated obstacle boxes.
type AABB struct {
	boxes []core.Box // Already inflated
}

// NewAABB prepares a resolver over obstacles inflated by margin.
// The obstacle slice is copied; later changes to it are not observed.
func NewAABB(obstacles []core.Box, margin float64) *AABB {
	return &AABB{boxes: inflateAll(obstacles, margin)}
}

// Resolve implements Resolver.
func (a *AABB) Resolve(before, after core.Vec2) Result {
	if len(a.boxes) == 0 {
		return Result{Position: after}
	}
	return slide(before, after, a.Blocked)
}

// Blocked reports whether p lies inside any inflated obstacle.
func (a *AABB) Blocked(p core.Vec2) bool {
	for _, b := range a.boxes {
		if b.ContainsXZ(p) {
			return true
		}
	}
	return false
}
