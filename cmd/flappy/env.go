package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// newLogger builds the process logger. While a full-screen frontend owns
// the terminal, logs go to ~/.flappy/flappy.log instead of stderr.
func newLogger(toFile bool) (*log.Logger, func()) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using info\n", err)
		level = log.InfoLevel
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	if toFile {
		if f, openErr := openLogFile(); openErr == nil {
			w = f
			closeFn = func() { f.Close() }
		} else {
			w = io.Discard
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "flappy",
		Level:           level,
	})
	return logger, closeFn
}

func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(home, ".flappy")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "flappy.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// loadGameConfig loads the config and installs it for new games. An
// unreadable custom file is fatal; a file that fails validation falls
// back to the defaults with a warning.
func loadGameConfig(path string, logger *log.Logger) config.FlappyConfig {
	cfg, err := config.LoadFlappy(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if flagFPS > 0 {
		cfg.Loop.TargetFPS = flagFPS
	}
	if err := cfg.Validate(); err != nil {
		logger.Warn("invalid config, using defaults", "error", err)
		cfg = config.DefaultFlappyConfig()
	}
	flappy.SetConfig(cfg)
	return cfg
}

// openStore opens the scores database. The game runs without history
// when it cannot be opened.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
