package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/tomz197/katchnrun/internal/audio"
	"github.com/tomz197/katchnrun/internal/config"
	"github.com/tomz197/katchnrun/internal/game"
	"github.com/tomz197/katchnrun/internal/logging"
	"github.com/tomz197/katchnrun/internal/loop"
	"github.com/tomz197/katchnrun/internal/save"
)

const appName = "katchnrun"

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "env: %v\n", err)
		os.Exit(1)
	}

	// stdout is the game screen, so logs only go to a file.
	logger, closeLog, err := logging.OpenFile(
		config.GetEnv("KATCH_LOG_FILE", ""),
		config.GetEnv("KATCH_LOG_LEVEL", "info"),
		"game",
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	tuning, err := config.Load(config.GetEnv("KATCH_TUNING", ""))
	if err != nil {
		fmt.Fprintf(os.Stderr, "tuning: %v\n", err)
		os.Exit(1)
	}

	sound := audio.NewSoundManager(float64(config.GetEnvInt("KATCH_VOLUME", 60))/100, logger)
	if err := sound.Initialize(); err != nil {
		logger.Warn("audio disabled", "err", err)
	}
	defer sound.Close()

	store := save.Open(appName, logger)

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := loop.NewClient(bufio.NewReader(os.Stdin), os.Stdout, loop.ClientOptions{
		Tuning: tuning,
		Sink:   sound,
		Logger: logger,
		OnGameOver: func(o game.Outcome) {
			if err := store.Record(save.FromOutcome(o, time.Now())); err != nil {
				logger.Error("save match", "err", err)
			}
		},
	})
	if err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
	if err := c.Run(ctx); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
	sound.StopMusic()

	if best, ok := store.Best(); ok && !c.Declined() {
		_ = term.Restore(fd, oldState)
		fmt.Printf("Best score so far: %d (%s)\n", best.TopScore(), best.PlayedAt.Format(time.DateOnly))
	}
}
