package collision

import "github.com/vovakirdan/nestmaze/internal/core"

type edge struct {
	a, b core.Vec2
}

// Segment tests the movement segment against the edges of every inflated
// obstacle. A move is blocked when it crosses or touches an edge.
type Segment struct {
	edges []edge
}

// NewSegment prepares a resolver over the four XZ edges of each obstacle
// inflated by margin.
func NewSegment(obstacles []core.Box, margin float64) *Segment {
	boxes := inflateAll(obstacles, margin)
	s := &Segment{edges: make([]edge, 0, 4*len(boxes))}
	for _, b := range boxes {
		c0 := core.V2(b.Min.X, b.Min.Z)
		c1 := core.V2(b.Max.X, b.Min.Z)
		c2 := core.V2(b.Max.X, b.Max.Z)
		c3 := core.V2(b.Min.X, b.Max.Z)
		s.edges = append(s.edges, edge{c0, c1}, edge{c1, c2}, edge{c2, c3}, edge{c3, c0})
	}
	return s
}

// Resolve implements Resolver.
func (s *Segment) Resolve(before, after core.Vec2) Result {
	if len(s.edges) == 0 {
		return Result{Position: after}
	}
	return slide(before, after, func(p core.Vec2) bool {
		for _, e := range s.edges {
			if SegmentsIntersect(before, p, e.a, e.b) {
				return true
			}
		}
		return false
	})
}

func cross(a, b core.Vec2) float64 {
	return a.X*b.Z - a.Z*b.X
}

// SegmentsIntersect reports whether segments p1-p2 and p3-p4 share a point.
// Parallel or degenerate segments, including any NaN in the inputs, never
// intersect.
func SegmentsIntersect(p1, p2, p3, p4 core.Vec2) bool {
	r := p2.Sub(p1)
	s := p4.Sub(p3)
	denom := cross(r, s)
	if denom == 0 || denom != denom {
		return false
	}

	qp := p3.Sub(p1)
	t := cross(qp, s) / denom
	u := cross(qp, r) / denom

	// NaN fails every comparison below
	return t >= 0 && t <= 1 && u >= 0 && u <= 1
}
