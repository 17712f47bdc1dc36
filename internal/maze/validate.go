package maze

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotSpanningTree is returned by Validate when passages contain a cycle or
// leave a cell unreachable.
var ErrNotSpanningTree = errors.New("maze: passages do not form a spanning tree")

// unionFind is a disjoint-set forest with path halving and union by size.
type unionFind struct {
	parent []int
	size   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n), size: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
		uf.size[i] = 1
	}
	return uf
}

func (u *unionFind) find(i int) int {
	for u.parent[i] != i {
		u.parent[i] = u.parent[u.parent[i]]
		i = u.parent[i]
	}
	return i
}

// union merges the sets of a and b. It returns false when they were already
// joined, i.e. the edge closes a cycle.
func (u *unionFind) union(a, b int) bool {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return false
	}
	if u.size[ra] < u.size[rb] {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
	u.size[ra] += u.size[rb]
	return true
}

// Validate checks the spanning-tree invariant: Width*Height-1 open passages,
// no cycles, every cell connected.
func (g *Grid) Validate() error {
	cells := g.Width * g.Height
	uf := newUnionFind(cells)
	index := func(x, z int) int { return z*g.Width + x }

	joined := 0
	for x, col := range g.Horiz {
		for z, open := range col {
			if !open {
				continue
			}
			if !uf.union(index(x, z), index(x, z+1)) {
				return fmt.Errorf("%w: cycle through (%d,%d)-(%d,%d)", ErrNotSpanningTree, x, z, x, z+1)
			}
			joined++
		}
	}
	for z, row := range g.Verti {
		for x, open := range row {
			if !open {
				continue
			}
			if !uf.union(index(x, z), index(x+1, z)) {
				return fmt.Errorf("%w: cycle through (%d,%d)-(%d,%d)", ErrNotSpanningTree, x, z, x+1, z)
			}
			joined++
		}
	}

	if joined != cells-1 {
		return fmt.Errorf("%w: %d passages for %d cells", ErrNotSpanningTree, joined, cells)
	}
	return nil
}

// Solve returns the unique path between two cells, both ends included.
// It returns nil when either cell is out of bounds or no path exists.
func (g *Grid) Solve(from, to Cell) []Cell {
	if !g.InBounds(from) || !g.InBounds(to) {
		return nil
	}

	prev := make(map[Cell]Cell, g.Width*g.Height)
	prev[from] = from
	queue := []Cell{from}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		if curr == to {
			break
		}
		for _, n := range g.Neighbors(curr) {
			if _, seen := prev[n]; !seen {
				prev[n] = curr
				queue = append(queue, n)
			}
		}
	}

	if _, ok := prev[to]; !ok {
		return nil
	}

	var path []Cell
	for c := to; ; c = prev[c] {
		path = append(path, c)
		if c == from {
			break
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// String renders the maze as ASCII art with X across and Z down.
func (g *Grid) String() string {
	return g.Render(nil)
}

// Render draws the maze, marking the given cells with '*'.
func (g *Grid) Render(marked []Cell) string {
	mark := make(map[Cell]bool, len(marked))
	for _, c := range marked {
		mark[c] = true
	}

	var sb strings.Builder
	sb.WriteString("+" + strings.Repeat("--+", g.Width) + "\n")

	for z := 0; z < g.Height; z++ {
		// Cell row with vertical walls
		sb.WriteByte('|')
		for x := 0; x < g.Width; x++ {
			if mark[Cell{X: x, Z: z}] {
				sb.WriteString("**")
			} else {
				sb.WriteString("  ")
			}
			if x < g.Width-1 && g.Verti[z][x] {
				sb.WriteByte(' ')
			} else {
				sb.WriteByte('|')
			}
		}
		sb.WriteByte('\n')

		// Boundary row below
		sb.WriteByte('+')
		for x := 0; x < g.Width; x++ {
			if z < g.Height-1 && g.Horiz[x][z] {
				sb.WriteString("  +")
			} else {
				sb.WriteString("--+")
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
