// Package maze generates perfect mazes: passage graphs that form a spanning
// tree over a rectangular grid of cells.
package maze

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// ErrInvalidDimension is returned when a maze extent is smaller than one cell.
var ErrInvalidDimension = errors.New("maze: invalid dimension")

// Cell addresses one maze cell. X runs across columns, Z across rows.
type Cell struct {
	X, Z int
}

// Grid is a passage grid for a Width x Height layout.
//
// Horiz[x][z] is true when the boundary between (x, z) and (x, z+1) is open.
// Verti[z][x] is true when the boundary between (x, z) and (x+1, z) is open.
type Grid struct {
	Width  int
	Height int
	Horiz  [][]bool // [Width][Height-1]
	Verti  [][]bool // [Height][Width-1]
}

// NewGrid allocates a grid with every boundary closed.
func NewGrid(width, height int) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, width, height)
	}

	g := &Grid{
		Width:  width,
		Height: height,
		Horiz:  make([][]bool, width),
		Verti:  make([][]bool, height),
	}
	for x := range g.Horiz {
		g.Horiz[x] = make([]bool, height-1)
	}
	for z := range g.Verti {
		g.Verti[z] = make([]bool, width-1)
	}
	return g, nil
}

// Generate carves a perfect maze with a randomized depth-first backtracker.
// The result is fully determined by rng; a nil rng is seeded from the clock.
func Generate(width, height int, rng *rand.Rand) (*Grid, error) {
	g, err := NewGrid(width, height)
	if err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	visited := make([]bool, width*height)
	index := func(c Cell) int { return c.Z*width + c.X }

	start := Cell{X: rng.Intn(width), Z: rng.Intn(height)}
	visited[index(start)] = true
	stack := []Cell{start}

	candidates := make([]Cell, 0, 4)
	for len(stack) > 0 {
		curr := stack[len(stack)-1]

		candidates = candidates[:0]
		for _, n := range g.adjacent(curr) {
			if !visited[index(n)] {
				candidates = append(candidates, n)
			}
		}

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		next := candidates[rng.Intn(len(candidates))]
		g.Open(curr, next)
		visited[index(next)] = true
		stack = append(stack, next)
	}

	return g, nil
}

// adjacent returns the in-bounds orthogonal neighbors of c, walls ignored.
func (g *Grid) adjacent(c Cell) []Cell {
	out := make([]Cell, 0, 4)
	if c.X > 0 {
		out = append(out, Cell{X: c.X - 1, Z: c.Z})
	}
	if c.X < g.Width-1 {
		out = append(out, Cell{X: c.X + 1, Z: c.Z})
	}
	if c.Z > 0 {
		out = append(out, Cell{X: c.X, Z: c.Z - 1})
	}
	if c.Z < g.Height-1 {
		out = append(out, Cell{X: c.X, Z: c.Z + 1})
	}
	return out
}

// Open removes the wall between two orthogonally adjacent cells.
// Non-adjacent pairs are ignored.
func (g *Grid) Open(a, b Cell) {
	g.setPassage(a, b, true)
}

// IsOpen reports whether there is a passage between two adjacent cells.
func (g *Grid) IsOpen(a, b Cell) bool {
	switch {
	case a.X == b.X && b.Z == a.Z+1:
		return g.Horiz[a.X][a.Z]
	case a.X == b.X && a.Z == b.Z+1:
		return g.Horiz[b.X][b.Z]
	case a.Z == b.Z && b.X == a.X+1:
		return g.Verti[a.Z][a.X]
	case a.Z == b.Z && a.X == b.X+1:
		return g.Verti[b.Z][b.X]
	}
	return false
}

func (g *Grid) setPassage(a, b Cell, open bool) {
	if !g.InBounds(a) || !g.InBounds(b) {
		return
	}
	switch {
	case a.X == b.X && b.Z == a.Z+1:
		g.Horiz[a.X][a.Z] = open
	case a.X == b.X && a.Z == b.Z+1:
		g.Horiz[b.X][b.Z] = open
	case a.Z == b.Z && b.X == a.X+1:
		g.Verti[a.Z][a.X] = open
	case a.Z == b.Z && a.X == b.X+1:
		g.Verti[b.Z][b.X] = open
	}
}

// InBounds reports whether c lies inside the grid.
func (g *Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.Width && c.Z >= 0 && c.Z < g.Height
}

// Neighbors returns the cells reachable from c through an open passage.
func (g *Grid) Neighbors(c Cell) []Cell {
	var out []Cell
	for _, n := range g.adjacent(c) {
		if g.IsOpen(c, n) {
			out = append(out, n)
		}
	}
	return out
}

// OpenPassages counts open boundaries.
func (g *Grid) OpenPassages() int {
	n := 0
	for _, col := range g.Horiz {
		for _, open := range col {
			if open {
				n++
			}
		}
	}
	for _, row := range g.Verti {
		for _, open := range row {
			if open {
				n++
			}
		}
	}
	return n
}
