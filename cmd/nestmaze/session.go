package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/nestmaze/internal/config"
	"github.com/vovakirdan/nestmaze/internal/core"
	"github.com/vovakirdan/nestmaze/internal/game"
	"github.com/vovakirdan/nestmaze/internal/logging"
	"github.com/vovakirdan/nestmaze/internal/storage"
)

// applyGlobalFlags validates the persistent flags and hands the config
// settings to the controller package.
func applyGlobalFlags() error {
	if flagFPS <= 0 || flagFPS > 240 {
		return fmt.Errorf("--fps must be between 1 and 240, got %d", flagFPS)
	}
	if flagDifficulty != "" {
		if _, ok := config.ParsePreset(flagDifficulty); !ok {
			return fmt.Errorf("unknown difficulty %q (expected easy, normal, hard or fixed)", flagDifficulty)
		}
	}
	if _, err := logging.ParseLevel(flagLogLevel); err != nil {
		return err
	}

	game.SetConfigPath(flagConfig)
	game.SetDifficultyPreset(flagDifficulty)
	return nil
}

// runtimeConfig sizes the session to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openSessionLog routes game logs to a file while the alt screen owns the
// terminal. Logging is disabled if the file cannot be opened.
func openSessionLog() (*log.Logger, io.Closer) {
	lvl, _ := logging.ParseLevel(flagLogLevel)
	logger, closer, err := logging.OpenFile(config.HomeDir(), "nestmaze", lvl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return logging.Discard(), io.NopCloser(nil)
	}
	game.SetLogger(logger)
	return logger, closer
}

// openStore opens the run log; the game still works without one.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run log: %v\n", err)
		return nil
	}
	return store
}
