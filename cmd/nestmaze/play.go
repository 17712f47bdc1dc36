package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/nestmaze/internal/game"
	"github.com/vovakirdan/nestmaze/internal/platform/tui"
	"github.com/vovakirdan/nestmaze/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the specified variant (default: nestmaze).

Controls:
  W/S, Up/Down   - Move forward/back
  A/D            - Strafe
  Left/Right     - Turn
  PgUp/PgDown    - Look up/down
  E/Enter        - Step into the screen
  Q/Backspace    - Step back out
  P/Space        - Pause
  Ctrl+S         - Screenshot to ~/.nestmaze/screenshots
  Esc/Ctrl+C     - Quit

Difficulty options (how fast deeper mazes grow):
  easy   - Small mazes, slow growth
  normal - Default growth
  hard   - Large mazes, fast growth
  fixed  - Every level has the base size

Examples:
  nestmaze play
  nestmaze play nestmaze_free
  nestmaze play --difficulty hard --seed 42
  nestmaze play --config ./my-maze.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	variant := game.VariantGated
	if len(args) > 0 {
		variant = args[0]
	}

	if !registry.Exists(variant) {
		return fmt.Errorf("unknown variant %q, run 'nestmaze list' to see available variants", variant)
	}

	logger, closer := openSessionLog()
	defer closer.Close()

	g, err := registry.Create(variant)
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(g, store, runtimeConfig(), tui.WithLogger(logger)); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
