package main

import (
	"bufio"
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/tomz197/savetheearth/internal/asset"
	"github.com/tomz197/savetheearth/internal/audio"
	"github.com/tomz197/savetheearth/internal/config"
	"github.com/tomz197/savetheearth/internal/draw"
	"github.com/tomz197/savetheearth/internal/input"
	"github.com/tomz197/savetheearth/internal/logging"
	"github.com/tomz197/savetheearth/internal/loop"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger, closeLog, err := logging.OpenFile(config.GetEnv(config.LogFileEnv, ""), "game")
	if err != nil {
		return err
	}
	defer closeLog()

	seed := config.GetEnvInt64(config.SeedEnv, time.Now().UnixNano())

	pool, err := asset.Open(config.GetEnv(config.AssetsEnv, ""), seed)
	if err != nil {
		return err
	}

	var player audio.Player = audio.Silent{}
	if config.GetEnvBool(config.AudioEnv, true) {
		sp := audio.NewSpeaker(pool, volume(), logger)
		if err := sp.Init(); err != nil {
			logger.Warn("audio disabled", "err", err)
		} else {
			defer sp.Close()
			player = sp
		}
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	surface := draw.NewTerminal(os.Stdout, draw.DefaultTermSizeFunc)
	if err := surface.Open(); err != nil {
		return err
	}
	defer surface.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	game := loop.New(loop.Options{
		Surface: surface,
		Input:   input.StartStream(bufio.NewReader(os.Stdin)),
		Audio:   player,
		Sizes:   pool,
		Rand:    rand.New(rand.NewSource(seed)),
		Logger:  logger,
	})
	return game.Run(ctx)
}

// volume reads the effects volume as a fraction of full scale.
func volume() float64 {
	return float64(config.GetEnvInt64(config.VolumeEnv, 100)) / 100
}
