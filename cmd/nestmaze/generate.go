package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/nestmaze/internal/config"
	"github.com/vovakirdan/nestmaze/internal/maze"
	"github.com/vovakirdan/nestmaze/internal/stack"
)

var (
	flagGenDepth  int
	flagGenWidth  int
	flagGenHeight int
	flagGenSolve  bool
	flagGenFormat string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print a maze and its solution",
	Long: `Generate the maze a session would build at the given depth and print it.

Without --width/--height the size follows the growth settings of the active
config and difficulty. The maze is checked to be a spanning tree, and the
path from the spawn cell to the screen cell is marked with '*'.

Examples:
  nestmaze generate --seed 42
  nestmaze generate --seed 42 --depth 3
  nestmaze generate --width 20 --height 8 --solve=false
  nestmaze generate --format yaml > maze.yaml`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().IntVar(&flagGenDepth, "depth", 0, "Level depth whose maze to build")
	generateCmd.Flags().IntVar(&flagGenWidth, "width", 0, "Maze width in cells (0 = from growth config)")
	generateCmd.Flags().IntVar(&flagGenHeight, "height", 0, "Maze height in cells (0 = same as width)")
	generateCmd.Flags().BoolVar(&flagGenSolve, "solve", true, "Mark the path from spawn to screen")
	generateCmd.Flags().StringVar(&flagGenFormat, "format", "text", "Output format: text or yaml")
}

// mazeDoc is the YAML form of a generated maze.
type mazeDoc struct {
	Seed     int64    `yaml:"seed"`
	Depth    int      `yaml:"depth"`
	Width    int      `yaml:"width"`
	Height   int      `yaml:"height"`
	Passages int      `yaml:"passages"`
	Horiz    [][]bool `yaml:"horiz,flow"`
	Verti    [][]bool `yaml:"verti,flow"`
	Solution [][2]int `yaml:"solution,omitempty,flow"`
}

func runGenerate(_ *cobra.Command, _ []string) error {
	if flagGenDepth < 0 {
		return fmt.Errorf("--depth must not be negative, got %d", flagGenDepth)
	}

	// Same resolution as a session, so the printed maze is the one the game builds
	preset, _ := config.ParsePreset(flagDifficulty)
	cfg, err := config.Resolve(flagConfig, preset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; using defaults\n", err)
	}
	growth := config.NewGrowthManager(cfg.Growth)

	width, height := flagGenWidth, flagGenHeight
	if width == 0 {
		width = growth.SizeAt(flagGenDepth)
	}
	if height == 0 {
		height = width
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	levelSeed := stack.LevelSeed(seed, flagGenDepth)

	grid, err := maze.Generate(width, height, rand.New(rand.NewSource(levelSeed)))
	if err != nil {
		return err
	}
	if err := grid.Validate(); err != nil {
		return err
	}

	var path []maze.Cell
	if flagGenSolve {
		path = grid.Solve(maze.Cell{}, maze.Cell{X: width - 1, Z: height - 1})
	}

	switch flagGenFormat {
	case "yaml":
		doc := mazeDoc{
			Seed:     seed,
			Depth:    flagGenDepth,
			Width:    width,
			Height:   height,
			Passages: grid.OpenPassages(),
			Horiz:    grid.Horiz,
			Verti:    grid.Verti,
		}
		for _, c := range path {
			doc.Solution = append(doc.Solution, [2]int{c.X, c.Z})
		}
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()

	case "text":
		fmt.Printf("Maze %dx%d  depth %d  seed %d\n", width, height, flagGenDepth, seed)
		fmt.Print(grid.Render(path))
		fmt.Printf("%d passages, spanning tree OK", grid.OpenPassages())
		if path != nil {
			fmt.Printf(", spawn to screen in %d steps", len(path)-1)
		}
		fmt.Println()
		if capDepth := growth.CapDepth(); flagGenWidth == 0 && capDepth >= 0 {
			fmt.Printf("Maze size stops growing at depth %d\n", capDepth)
		}
		return nil

	default:
		return fmt.Errorf("unknown format %q (expected text or yaml)", flagGenFormat)
	}
}
