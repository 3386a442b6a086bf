//go:build ebiten

package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/pflag"

	"rdcore/internal/app"
	_ "rdcore/internal/sims/grayscott"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(pflag.CommandLine)
	debug := pflag.Bool("debug", false, "log at debug level")
	pflag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	engine, update, err := app.Open(cfg.Engine, cfg.EngineOptions(), cfg.File)
	if err != nil {
		logger.Error("cannot open pattern", "engine", cfg.Engine, "file", cfg.File, "err", err)
		os.Exit(1)
	}
	title := "rd-view - " + engine.RuleName()
	if update {
		title += " (update recommended)"
	}

	game := app.New(engine, cfg, logger)
	size := engine.Size()

	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(60)
	ebiten.SetWindowSize(size.W*cfg.Scale+cfg.HUDWidth, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("viewer stopped", "err", err)
		os.Exit(1)
	}
	if engine.IsModified() {
		logger.Warn("exiting with unsaved changes", "file", cfg.File)
	}
}
