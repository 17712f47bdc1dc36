// nestmaze is a first-person maze in the terminal where every maze hides a
// screen showing the next maze down.
//
// Usage:
//
//	nestmaze list               - List available variants
//	nestmaze play [variant]     - Play a variant (default: nestmaze)
//	nestmaze menu               - Start menu to pick variants interactively
//	nestmaze serve              - Start SSH server for remote play
//	nestmaze records [variant]  - Show the best recorded runs
//	nestmaze generate           - Print a maze with its solution
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 30)
//	--seed <value>       - Set RNG seed for reproducible mazes
//	--db <path>          - Set database path (default: ~/.nestmaze/runs.db)
//	--config <path>      - Custom maze config YAML
//	--difficulty <name>  - Growth preset: easy, normal, hard, fixed
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import the controller to register its variants
	_ "github.com/vovakirdan/nestmaze/internal/game"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "nestmaze",
	Short: "Nestmaze - a maze inside a maze inside a maze",
	Long: `Nestmaze is a first-person maze rendered in your terminal.

Somewhere in every maze stands a screen showing another maze. Step inside
and you are in it; step out and you are back where you were.

Available commands:
  list      - Show all variants
  play      - Play a variant directly
  menu      - Interactive variant picker
  serve     - Start SSH server for remote play
  records   - View the best recorded runs
  generate  - Print a maze and its solution

Examples:
  nestmaze play
  nestmaze play nestmaze_free --difficulty hard
  nestmaze menu
  nestmaze serve --ssh :2222
  nestmaze generate --width 8 --height 5 --seed 42`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return applyGlobalFlags()
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.nestmaze/runs.db", "Path to the run log database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom maze config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Growth preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(generateCmd)
}
