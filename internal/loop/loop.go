// Package loop provides the game's state machine and frame loop.
package loop

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/savetheearth/internal/asset"
	"github.com/tomz197/savetheearth/internal/audio"
	"github.com/tomz197/savetheearth/internal/config"
	"github.com/tomz197/savetheearth/internal/draw"
	"github.com/tomz197/savetheearth/internal/input"
	"github.com/tomz197/savetheearth/internal/logging"
	"github.com/tomz197/savetheearth/internal/object"
)

// Options wires a game to its frontend.
type Options struct {
	Surface draw.Surface
	Input   input.Source
	Audio   audio.Player // Defaults to audio.Silent
	Sizes   object.Sizer
	Rand    object.Rand   // Defaults to a time-seeded source
	Logger  *log.Logger   // Defaults to a discarding logger
	Idle    time.Duration // Quit after this long without input; zero disables

	// Shutdown, when closed, switches the game to the shutdown notice.
	Shutdown <-chan struct{}
}

// Game is one player's game. It is not safe for concurrent use; a single
// goroutine calls Step or Run.
type Game struct {
	surface  draw.Surface
	input    input.Source
	audio    audio.Player
	sizes    object.Sizer
	rng      object.Rand
	log      *log.Logger
	shutdown <-chan struct{}

	state State
	menu  *Menu
	score Score

	fighter  *object.Fighter
	missiles []*object.Missile
	rocks    []*object.Rock
	spawner  *object.RockSpawner

	pauseFrames  int // Frames left in the game-over pause or shutdown notice
	idleFrames   int
	idleLimit    int
	shuttingDown bool
}

// New creates a game on the title screen.
func New(opts Options) *Game {
	g := &Game{
		surface:  opts.Surface,
		input:    opts.Input,
		audio:    opts.Audio,
		sizes:    opts.Sizes,
		rng:      opts.Rand,
		log:      opts.Logger,
		shutdown: opts.Shutdown,
		state:    StateMenu,
		menu:     NewMenu(),
	}
	if g.audio == nil {
		g.audio = audio.Silent{}
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if g.log == nil {
		g.log = logging.Discard()
	}
	if opts.Idle > 0 {
		g.idleLimit = int(opts.Idle / config.TargetFrameTime)
	}
	g.spawner = object.NewRockSpawner(g.rng, g.sizes)
	return g
}

// State returns the current phase.
func (g *Game) State() State { return g.state }

// Score returns the counters of the current or last play-through.
func (g *Game) Score() Score { return g.score }

// Step runs one frame: it polls input once and advances the current state.
// Stepping a game in StateQuit does nothing.
func (g *Game) Step() error {
	if g.state == StateQuit {
		return nil
	}
	events := g.input.Poll()
	g.trackIdle(events)
	g.checkShutdown()

	switch g.state {
	case StateMenu:
		next, err := g.menu.Step(g.surface, events)
		if err != nil {
			return fmt.Errorf("menu: %w", err)
		}
		if next == StatePlaying {
			g.start()
		} else {
			g.setState(next)
		}
	case StatePlaying:
		if err := g.stepPlaying(events); err != nil {
			return fmt.Errorf("playing: %w", err)
		}
	case StateGameOver:
		g.pauseFrames--
		if hasQuit(events) {
			g.setState(StateQuit)
		} else if g.pauseFrames <= 0 {
			g.setState(StateMenu)
		}
	case StateShutdown:
		if err := drawShutdown(g.surface); err != nil {
			return fmt.Errorf("shutdown notice: %w", err)
		}
		g.pauseFrames--
		if g.pauseFrames <= 0 || hasQuit(events) {
			g.setState(StateQuit)
		}
	}
	return nil
}

// Run steps the game at the target frame rate until it quits or ctx is
// cancelled.
func (g *Game) Run(ctx context.Context) error {
	for g.state != StateQuit {
		frameStart := time.Now()

		if err := g.Step(); err != nil {
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed >= config.TargetFrameTime {
			if ctx.Err() != nil {
				return nil
			}
			continue
		}
		select {
		case <-ctx.Done():
			g.log.Debug("game cancelled", "state", g.state)
			return nil
		case <-time.After(config.TargetFrameTime - elapsed):
		}
	}
	return nil
}

// start resets the play field and enters Playing.
func (g *Game) start() {
	if r, ok := g.input.(interface{ Reset() }); ok {
		r.Reset()
	}
	g.score = Score{}
	g.fighter = object.NewFighter(g.sizes)
	g.missiles = g.missiles[:0]
	g.rocks = g.rocks[:0]
	g.audio.PlayMusic(asset.Music)
	g.setState(StatePlaying)
}

func (g *Game) setState(next State) {
	if next == g.state {
		return
	}
	g.log.Debug("state change", "from", g.state, "to", next)
	g.state = next
}

// trackIdle quits the game after the idle limit passes without input.
func (g *Game) trackIdle(events []input.Event) {
	if g.idleLimit == 0 {
		return
	}
	if len(events) > 0 {
		g.idleFrames = 0
		return
	}
	g.idleFrames++
	if g.idleFrames >= g.idleLimit {
		g.log.Info("idle timeout", "state", g.state)
		g.audio.StopMusic()
		g.setState(StateQuit)
	}
}

// checkShutdown enters the shutdown notice once the host asks for it.
func (g *Game) checkShutdown() {
	if g.shutdown == nil || g.shuttingDown || g.state == StateQuit {
		return
	}
	select {
	case <-g.shutdown:
		g.shuttingDown = true
		g.audio.StopMusic()
		g.pauseFrames = config.ShutdownNoticeFrames
		g.setState(StateShutdown)
	default:
	}
}

func hasQuit(events []input.Event) bool {
	for _, ev := range events {
		if ev.Type == input.EventQuit {
			return true
		}
	}
	return false
}
