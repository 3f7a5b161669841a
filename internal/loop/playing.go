package loop

import (
	"fmt"

	"github.com/tomz197/savetheearth/internal/asset"
	"github.com/tomz197/savetheearth/internal/config"
	"github.com/tomz197/savetheearth/internal/input"
	"github.com/tomz197/savetheearth/internal/object"
)

// stepPlaying runs one gameplay frame.
func (g *Game) stepPlaying(events []input.Event) error {
	if quit := g.applyEvents(events); quit {
		g.audio.StopMusic()
		g.setState(StateQuit)
		return nil
	}

	g.surface.Blit(asset.Background, window)
	g.drawHUD()

	g.rocks = append(g.rocks, g.spawner.Update(g.score.Hits)...)
	g.resolveHits()
	g.removeMissed()

	for _, r := range g.rocks {
		r.Update()
		r.Draw(g.surface)
	}
	g.missiles = object.FilterRemoved(g.missiles)
	for _, m := range g.missiles {
		m.Draw(g.surface)
	}
	g.fighter.Update()
	g.fighter.Draw(g.surface)

	if err := g.surface.Present(); err != nil {
		return err
	}

	if g.fighter.Collide(g.rocks) != nil || g.score.Missed >= config.MaxMissed {
		return g.gameOver()
	}
	return nil
}

// applyEvents steers the fighter and fires missiles. Reports whether a
// quit was requested.
func (g *Game) applyEvents(events []input.Event) bool {
	for _, ev := range events {
		switch ev.Type {
		case input.EventQuit:
			return true
		case input.EventKeyDown:
			switch ev.Key {
			case input.KeyLeft:
				g.fighter.DX -= config.FighterStep
			case input.KeyRight:
				g.fighter.DX += config.FighterStep
			case input.KeySpace:
				g.missiles = append(g.missiles, g.fighter.Fire(g.sizes))
				g.audio.Play(asset.SoundMissile)
			}
		case input.EventKeyUp:
			switch ev.Key {
			case input.KeyLeft, input.KeyRight:
				g.fighter.Stop(true)
			case input.KeyUp, input.KeyDown:
				g.fighter.Stop(false)
			}
		}
	}
	return false
}

func (g *Game) drawHUD() {
	object.Text{
		X: config.HitsLabelX, Y: config.HUDLabelY, Size: config.HUDFontSize,
		Value: fmt.Sprintf("Destroyed rocks: %d", g.score.Hits), Color: config.Yellow,
	}.Draw(g.surface)
	object.Text{
		X: config.MissedLabelX, Y: config.HUDLabelY, Size: config.HUDFontSize,
		Value: fmt.Sprintf("Missed rocks: %d", g.score.Missed), Color: config.Red,
	}.Draw(g.surface)
}

// resolveHits removes every missile that hit a rock along with the first
// rock it hit.
func (g *Game) resolveHits() {
	kept := g.missiles[:0]
	for _, m := range g.missiles {
		i := object.Collide(m.Rect, g.rocks)
		if i < 0 {
			kept = append(kept, m)
			continue
		}
		rock := g.rocks[i]
		g.rocks = append(g.rocks[:i], g.rocks[i+1:]...)
		object.DrawExplosion(g.surface, g.sizes, rock.X, rock.Y)
		g.audio.Play(asset.ExplosionSound(1 + g.rng.Intn(asset.ExplosionSounds)))
		g.score.Hits++
	}
	clear(g.missiles[len(kept):])
	g.missiles = kept
}

// removeMissed drops rocks that fell past the bottom edge.
func (g *Game) removeMissed() {
	kept := g.rocks[:0]
	for _, r := range g.rocks {
		if r.OutOfScreen() {
			g.score.Missed++
			continue
		}
		kept = append(kept, r)
	}
	clear(g.rocks[len(kept):])
	g.rocks = kept
}

// gameOver shows the wreck for one frame and starts the pause before the
// menu.
func (g *Game) gameOver() error {
	g.audio.StopMusic()
	object.DrawExplosion(g.surface, g.sizes, g.fighter.X, g.fighter.Y)
	if err := g.surface.Present(); err != nil {
		return err
	}
	g.audio.Play(asset.SoundGameOver)
	g.log.Info("game over", "hits", g.score.Hits, "missed", g.score.Missed)
	g.pauseFrames = config.GameOverPauseFrames
	g.setState(StateGameOver)
	return nil
}
