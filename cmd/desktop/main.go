package main

import (
	"errors"
	"math/rand"
	"os"
	"time"

	_ "github.com/ebitengine/hideconsole"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/savetheearth/internal/asset"
	"github.com/tomz197/savetheearth/internal/audio"
	"github.com/tomz197/savetheearth/internal/config"
	drawebiten "github.com/tomz197/savetheearth/internal/draw/ebiten"
	"github.com/tomz197/savetheearth/internal/logging"
	"github.com/tomz197/savetheearth/internal/loop"
)

func main() {
	logger := logging.New(os.Stderr, "desktop")
	seed := config.GetEnvInt64(config.SeedEnv, time.Now().UnixNano())

	pool, err := asset.Open(config.GetEnv(config.AssetsEnv, ""), seed)
	if err != nil {
		logger.Fatal("cannot load assets", "err", err)
	}

	var player audio.Player = audio.Silent{}
	if config.GetEnvBool(config.AudioEnv, true) {
		volume := float64(config.GetEnvInt64(config.VolumeEnv, 100)) / 100
		sp := audio.NewSpeaker(pool, volume, logger)
		if err := sp.Init(); err != nil {
			logger.Warn("audio disabled", "err", err)
		} else {
			defer sp.Close()
			player = sp
		}
	}

	surface := drawebiten.NewSurface(pool)
	game := loop.New(loop.Options{
		Surface: surface,
		Input:   drawebiten.NewInput(),
		Audio:   player,
		Sizes:   pool,
		Rand:    rand.New(rand.NewSource(seed)),
		Logger:  logger,
	})

	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(config.TargetFPS)

	if err := ebiten.RunGame(drawebiten.NewGame(game, surface)); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("game error", "err", err)
		os.Exit(1)
	}
}
