// Command window runs the game in an Ebitengine window. Built with
// GOOS=js GOARCH=wasm it runs in the browser page served by cmd/web.
package main

import (
	"errors"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/katchnrun/internal/audio"
	"github.com/tomz197/katchnrun/internal/config"
	"github.com/tomz197/katchnrun/internal/game"
	"github.com/tomz197/katchnrun/internal/logging"
	"github.com/tomz197/katchnrun/internal/save"
	"github.com/tomz197/katchnrun/internal/screen"
)

const appName = "katchnrun"

func main() {
	// .env first so it can set the log level.
	envErr := config.LoadDotEnv()
	logger := logging.New(os.Stderr, config.GetEnv("KATCH_LOG_LEVEL", "info"), "window")
	if envErr != nil {
		logger.Warn("env not loaded", "err", envErr)
	}

	tuning, err := config.Load(config.GetEnv("KATCH_TUNING", ""))
	if err != nil {
		logger.Fatal("invalid tuning", "err", err)
	}

	sound := audio.NewSoundManager(float64(config.GetEnvInt("KATCH_VOLUME", 60))/100, logger)
	if err := sound.Initialize(); err != nil {
		logger.Warn("audio disabled", "err", err)
	}
	defer sound.Close()

	store := save.Open(appName, logger)
	if best, ok := store.Best(); ok {
		logger.Info("best so far", "score", best.TopScore(), "playedAt", best.PlayedAt.Format(time.DateOnly))
	}

	s, err := screen.New(screen.Options{
		Tuning:    tuning,
		Sink:      sound,
		Logger:    logger,
		SpriteDir: config.GetEnv("KATCH_SPRITES", ""),
		OnGameOver: func(o game.Outcome) {
			if err := store.Record(save.FromOutcome(o, time.Now())); err != nil {
				logger.Error("save match", "err", err)
			}
		},
	})
	if err != nil {
		logger.Fatal("game setup failed", "err", err)
	}

	ebiten.SetWindowSize(
		config.GetEnvInt("KATCH_WINDOW_WIDTH", int(tuning.World.Width)),
		config.GetEnvInt("KATCH_WINDOW_HEIGHT", int(tuning.World.Height)),
	)
	ebiten.SetWindowTitle("Katch N' Run")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetRunnableOnUnfocused(true)

	if err := ebiten.RunGame(s); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal("game error", "err", err)
	}
	logger.Info("session ended", "declined", s.Declined())
}
