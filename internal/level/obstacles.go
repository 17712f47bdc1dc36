package level

import (
	"math"

	"github.com/vovakirdan/nestmaze/internal/core"
	"github.com/vovakirdan/nestmaze/internal/maze"
)

// Geometry holds the world dimensions of maze walls.
type Geometry struct {
	WallLength float64 // Cell pitch along X and Z
	WallHeight float64
	WallWidth  float64 // Wall thickness
}

// DefaultGeometry matches the classic layout: 22-unit cells, 20-unit walls.
var DefaultGeometry = Geometry{
	WallLength: 22,
	WallHeight: 20,
	WallWidth:  2,
}

// CellCenter returns the world position of a cell's center at height y.
func (g Geometry) CellCenter(c maze.Cell, y float64) core.Vec3 {
	return core.V3(
		(float64(c.X)+0.5)*g.WallLength,
		y,
		(float64(c.Z)+0.5)*g.WallLength,
	)
}

// CellAt returns the cell containing a world position. The result may lie
// outside the grid.
func (g Geometry) CellAt(p core.Vec2) maze.Cell {
	return maze.Cell{
		X: floorDiv(p.X, g.WallLength),
		Z: floorDiv(p.Z, g.WallLength),
	}
}

func floorDiv(v, step float64) int {
	if step <= 0 {
		return 0
	}
	return int(math.Floor(v / step))
}

// wallAlongX spans cells [x0, x1) on the boundary line z = zLine (in cells).
func (g Geometry) wallAlongX(x0, x1, zLine int) core.Box {
	half := g.WallWidth / 2
	return core.Box{
		Min: core.V3(float64(x0)*g.WallLength-half, 0, float64(zLine)*g.WallLength-half),
		Max: core.V3(float64(x1)*g.WallLength+half, g.WallHeight, float64(zLine)*g.WallLength+half),
	}
}

// wallAlongZ spans cells [z0, z1) on the boundary line x = xLine (in cells).
func (g Geometry) wallAlongZ(xLine, z0, z1 int) core.Box {
	half := g.WallWidth / 2
	return core.Box{
		Min: core.V3(float64(xLine)*g.WallLength-half, 0, float64(z0)*g.WallLength-half),
		Max: core.V3(float64(xLine)*g.WallLength+half, g.WallHeight, float64(z1)*g.WallLength+half),
	}
}

// BuildObstacles synthesizes one wall box per closed inner boundary plus the
// perimeter ring. Each wall extends half its thickness past both ends so
// that walls meeting at a corner overlap.
func BuildObstacles(grid *maze.Grid, g Geometry) []core.Box {
	walls := make([]core.Box, 0, 2*(grid.Width+grid.Height)+grid.Width*grid.Height)

	// Perimeter ring
	for x := 0; x < grid.Width; x++ {
		walls = append(walls, g.wallAlongX(x, x+1, 0))
		walls = append(walls, g.wallAlongX(x, x+1, grid.Height))
	}
	for z := 0; z < grid.Height; z++ {
		walls = append(walls, g.wallAlongZ(0, z, z+1))
		walls = append(walls, g.wallAlongZ(grid.Width, z, z+1))
	}

	// Closed boundaries between (x, z) and (x, z+1)
	for x, col := range grid.Horiz {
		for z, open := range col {
			if !open {
				walls = append(walls, g.wallAlongX(x, x+1, z+1))
			}
		}
	}

	// Closed boundaries between (x, z) and (x+1, z)
	for z, row := range grid.Verti {
		for x, open := range row {
			if !open {
				walls = append(walls, g.wallAlongZ(x+1, z, z+1))
			}
		}
	}

	return walls
}
