package loop

import (
	"context"
	"errors"
	"image/color"
	"testing"
	"time"

	"github.com/tomz197/savetheearth/internal/asset"
	"github.com/tomz197/savetheearth/internal/config"
	"github.com/tomz197/savetheearth/internal/input"
	"github.com/tomz197/savetheearth/internal/object"
	"github.com/tomz197/savetheearth/internal/physics"
)

type testSizer struct{}

func (testSizer) Size(name string) (int, int) {
	switch name {
	case asset.Fighter:
		return 40, 50
	case asset.Missile:
		return 6, 18
	case asset.Explosion:
		return 48, 48
	default:
		return 30, 30
	}
}

// constRand always returns v modulo n. v=1 never wins a spawn roll.
type constRand struct{ v int }

func (r constRand) Intn(n int) int { return r.v % n }

type blit struct {
	sprite string
	rect   physics.Rect
}

type fakeSurface struct {
	blits    []blit
	texts    []string
	presents int
	err      error
}

func (s *fakeSurface) Blit(sprite string, r physics.Rect) {
	s.blits = append(s.blits, blit{sprite, r})
}

func (s *fakeSurface) Text(v string, _ int, _, _ int, _ color.Color) {
	s.texts = append(s.texts, v)
}

func (s *fakeSurface) Present() error {
	s.presents++
	return s.err
}

func (s *fakeSurface) reset() {
	s.blits, s.texts, s.presents = nil, nil, 0
}

func (s *fakeSurface) blitted(sprite string) []physics.Rect {
	var out []physics.Rect
	for _, b := range s.blits {
		if b.sprite == sprite {
			out = append(out, b.rect)
		}
	}
	return out
}

type fakeAudio struct {
	played []string
	music  []string
	stops  int
}

func (a *fakeAudio) Play(name string)      { a.played = append(a.played, name) }
func (a *fakeAudio) PlayMusic(name string) { a.music = append(a.music, name) }
func (a *fakeAudio) StopMusic()            { a.stops++ }

type harness struct {
	game    *Game
	surface *fakeSurface
	queue   *input.Queue
	audio   *fakeAudio
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	h := &harness{surface: &fakeSurface{}, queue: &input.Queue{}, audio: &fakeAudio{}}
	opts.Surface = h.surface
	opts.Input = h.queue
	opts.Audio = h.audio
	opts.Sizes = testSizer{}
	if opts.Rand == nil {
		opts.Rand = constRand{v: 1}
	}
	h.game = New(opts)
	return h
}

func (h *harness) step(t *testing.T, events ...input.Event) {
	t.Helper()
	h.queue.Push(events...)
	if err := h.game.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
}

// playing returns a harness already past the menu.
func playing(t *testing.T) *harness {
	t.Helper()
	h := newHarness(t, Options{})
	h.step(t, input.Down(input.KeyEnter))
	if h.game.State() != StatePlaying {
		t.Fatalf("state = %v after Enter, want playing", h.game.State())
	}
	h.surface.reset()
	return h
}

func TestMenu_DrawsTitleAndWaits(t *testing.T) {
	h := newHarness(t, Options{})
	h.step(t, input.Down(input.KeySpace), input.Up(input.KeyEnter))

	if h.game.State() != StateMenu {
		t.Fatalf("state = %v, want menu", h.game.State())
	}
	want := []string{config.WindowTitle, "Press Enter", "Start the Game"}
	if len(h.surface.texts) != len(want) {
		t.Fatalf("menu texts = %v", h.surface.texts)
	}
	for i := range want {
		if h.surface.texts[i] != want[i] {
			t.Errorf("text %d = %q, want %q", i, h.surface.texts[i], want[i])
		}
	}
	if h.surface.presents != 1 || h.surface.blits[0].sprite != asset.Background {
		t.Errorf("menu frame: %d presents, first blit %q", h.surface.presents, h.surface.blits[0].sprite)
	}
}

func TestMenu_EnterStartsGame(t *testing.T) {
	h := playing(t)
	if len(h.audio.music) != 1 || h.audio.music[0] != asset.Music {
		t.Fatalf("music = %v, want background music", h.audio.music)
	}
	f := h.game.fighter
	if f.X != config.WindowWidth/2 || f.Bottom() != config.WindowHeight {
		t.Errorf("fighter starts at %+v", f.Rect)
	}
	if s := h.game.Score(); s != (Score{}) {
		t.Errorf("score not reset: %+v", s)
	}
}

func TestMenu_Quit(t *testing.T) {
	h := newHarness(t, Options{})
	h.step(t, input.Quit())
	if h.game.State() != StateQuit {
		t.Fatalf("state = %v, want quit", h.game.State())
	}
	// A quit game ignores further steps.
	h.surface.reset()
	h.step(t, input.Down(input.KeyEnter))
	if h.surface.presents != 0 || h.game.State() != StateQuit {
		t.Fatal("quit game kept running")
	}
}

func TestPlaying_FrameLayout(t *testing.T) {
	h := playing(t)
	h.step(t)

	if h.surface.blits[0].sprite != asset.Background {
		t.Errorf("first blit = %q, want background", h.surface.blits[0].sprite)
	}
	want := []string{"Destroyed rocks: 0", "Missed rocks: 0"}
	if len(h.surface.texts) != 2 || h.surface.texts[0] != want[0] || h.surface.texts[1] != want[1] {
		t.Errorf("HUD = %v, want %v", h.surface.texts, want)
	}
	last := h.surface.blits[len(h.surface.blits)-1]
	if last.sprite != asset.Fighter {
		t.Errorf("last blit = %q, want the fighter on top", last.sprite)
	}
	if h.surface.presents != 1 {
		t.Errorf("presents = %d, want 1", h.surface.presents)
	}
}

func TestPlaying_FireWithNoRocks(t *testing.T) {
	h := playing(t)
	f := h.game.fighter
	cx, top := f.CenterX(), f.Top()

	h.step(t, input.Down(input.KeySpace))

	if len(h.game.missiles) != 1 {
		t.Fatalf("missiles = %d, want 1", len(h.game.missiles))
	}
	m := h.game.missiles[0]
	// The missile moves once in the frame it is fired.
	if m.X != cx || m.Y != top-config.MissileSpeed || m.Speed != config.MissileSpeed {
		t.Errorf("missile at (%d,%d) speed %d, want (%d,%d) speed %d", m.X, m.Y, m.Speed, cx, top-config.MissileSpeed, config.MissileSpeed)
	}
	if len(h.game.rocks) != 0 {
		t.Errorf("rocks changed: %d", len(h.game.rocks))
	}
	if len(h.audio.played) != 1 || h.audio.played[0] != asset.SoundMissile {
		t.Errorf("sounds = %v, want missile", h.audio.played)
	}
}

func TestPlaying_MissileDestroysOnlyFirstRock(t *testing.T) {
	h := playing(t)
	first := &object.Rock{Rect: physics.NewRect(100, 100, 30, 30), Speed: 1, Variant: 1}
	second := &object.Rock{Rect: physics.NewRect(105, 105, 30, 30), Speed: 1, Variant: 2}
	h.game.rocks = []*object.Rock{first, second}
	h.game.missiles = []*object.Missile{{Rect: physics.NewRect(110, 110, 6, 18), Speed: 10}}

	h.step(t)

	if got := h.game.Score().Hits; got != 1 {
		t.Fatalf("hits = %d, want 1", got)
	}
	if len(h.game.rocks) != 1 || h.game.rocks[0] != second {
		t.Fatalf("remaining rocks = %v, want only the second", h.game.rocks)
	}
	if len(h.game.missiles) != 0 {
		t.Errorf("missile survived the hit")
	}
	if ex := h.surface.blitted(asset.Explosion); len(ex) != 1 || ex[0].X != 100 || ex[0].Y != 100 {
		t.Errorf("explosions = %v, want one at the first rock", ex)
	}
	if len(h.audio.played) != 1 || h.audio.played[0] != asset.ExplosionSound(2) {
		t.Errorf("sounds = %v", h.audio.played)
	}
}

func TestPlaying_ThreeMissesEndGame(t *testing.T) {
	h := playing(t)
	for i := 0; i < config.MaxMissed; i++ {
		h.game.rocks = append(h.game.rocks, &object.Rock{Rect: physics.NewRect(i*40, config.WindowHeight+1, 30, 30), Speed: 1})
	}

	h.step(t)

	if h.game.Score().Missed != config.MaxMissed {
		t.Fatalf("missed = %d", h.game.Score().Missed)
	}
	if h.game.State() != StateGameOver {
		t.Fatalf("state = %v, want gameover", h.game.State())
	}
	if h.surface.presents != 2 {
		t.Errorf("presents = %d, want the frame and the wreck", h.surface.presents)
	}
	f := h.game.fighter
	if ex := h.surface.blitted(asset.Explosion); len(ex) != 1 || ex[0].X != f.X || ex[0].Y != f.Y {
		t.Errorf("explosions = %v, want one at the fighter", ex)
	}
	if h.audio.stops != 1 || h.audio.played[len(h.audio.played)-1] != asset.SoundGameOver {
		t.Errorf("audio: stops=%d played=%v", h.audio.stops, h.audio.played)
	}
}

func TestPlaying_TwoMissesContinue(t *testing.T) {
	h := playing(t)
	h.game.rocks = []*object.Rock{
		{Rect: physics.NewRect(0, config.WindowHeight+1, 30, 30), Speed: 1},
		{Rect: physics.NewRect(0, config.WindowHeight, 30, 30), Speed: 1},
	}
	h.step(t)
	if h.game.State() != StatePlaying || h.game.Score().Missed != 1 {
		t.Fatalf("state %v missed %d", h.game.State(), h.game.Score().Missed)
	}
	h.step(t)
	if h.game.State() != StatePlaying || h.game.Score().Missed != 2 {
		t.Fatalf("state %v missed %d", h.game.State(), h.game.Score().Missed)
	}
}

func TestPlaying_FighterHitEndsGame(t *testing.T) {
	h := playing(t)
	f := h.game.fighter
	h.game.rocks = []*object.Rock{{Rect: physics.NewRect(f.X, f.Y-10, 30, 30), Speed: 5}}
	h.step(t)
	if h.game.State() != StateGameOver {
		t.Fatalf("state = %v, want gameover", h.game.State())
	}
}

func TestPlaying_Steering(t *testing.T) {
	h := playing(t)
	x0 := h.game.fighter.X

	h.step(t, input.Down(input.KeyLeft))
	if h.game.fighter.X != x0-config.FighterStep {
		t.Fatalf("x = %d after left, want %d", h.game.fighter.X, x0-config.FighterStep)
	}
	h.step(t)
	if h.game.fighter.X != x0-2*config.FighterStep {
		t.Fatalf("held left should keep moving, x = %d", h.game.fighter.X)
	}
	h.step(t, input.Up(input.KeyLeft), input.Down(input.KeyRight))
	if h.game.fighter.DX != config.FighterStep {
		t.Fatalf("dx = %d, want %d", h.game.fighter.DX, config.FighterStep)
	}

	h.game.fighter.DY = -3
	h.step(t, input.Up(input.KeyDown))
	if h.game.fighter.DY != 0 {
		t.Fatalf("down release should reset dy, got %d", h.game.fighter.DY)
	}
	h.step(t, input.Down(input.KeyUp), input.Down(input.KeyDown))
	if h.game.fighter.DY != 0 {
		t.Fatalf("up/down presses should not move vertically, dy = %d", h.game.fighter.DY)
	}
}

func TestPlaying_Quit(t *testing.T) {
	h := playing(t)
	h.step(t, input.Down(input.KeySpace), input.Quit())
	if h.game.State() != StateQuit {
		t.Fatalf("state = %v, want quit", h.game.State())
	}
	if h.audio.stops != 1 {
		t.Errorf("music not stopped on quit")
	}
}

func TestGameOver_ReturnsToMenuAfterPause(t *testing.T) {
	h := playing(t)
	h.game.score.Missed = config.MaxMissed
	h.step(t)
	if h.game.State() != StateGameOver {
		t.Fatalf("state = %v, want gameover", h.game.State())
	}

	h.surface.reset()
	for i := 1; i < config.GameOverPauseFrames; i++ {
		h.step(t, input.Down(input.KeyEnter))
		if h.game.State() != StateGameOver {
			t.Fatalf("left the pause after %d frames", i)
		}
	}
	if h.surface.presents != 0 {
		t.Errorf("the pause should keep the last frame, got %d presents", h.surface.presents)
	}
	h.step(t)
	if h.game.State() != StateMenu {
		t.Fatalf("state = %v after the pause, want menu", h.game.State())
	}

	h.step(t, input.Down(input.KeyEnter))
	if h.game.State() != StatePlaying || h.game.Score() != (Score{}) {
		t.Fatalf("restart: state %v score %+v", h.game.State(), h.game.Score())
	}
}

func TestGameOver_Quit(t *testing.T) {
	h := playing(t)
	h.game.score.Missed = config.MaxMissed
	h.step(t)
	h.step(t, input.Quit())
	if h.game.State() != StateQuit {
		t.Fatalf("state = %v, want quit", h.game.State())
	}
}

func TestIdleTimeout(t *testing.T) {
	h := newHarness(t, Options{Idle: 3 * config.TargetFrameTime})
	h.step(t)
	h.step(t, input.Down(input.KeySpace))
	h.step(t)
	h.step(t)
	if h.game.State() != StateMenu {
		t.Fatalf("input should reset the idle counter, state = %v", h.game.State())
	}
	h.step(t)
	if h.game.State() != StateQuit {
		t.Fatalf("state = %v after idling, want quit", h.game.State())
	}
}

func TestShutdownNotice(t *testing.T) {
	shutdown := make(chan struct{})
	h := newHarness(t, Options{Shutdown: shutdown})
	h.step(t, input.Down(input.KeyEnter))
	close(shutdown)

	h.surface.reset()
	h.step(t)
	if h.game.State() != StateShutdown {
		t.Fatalf("state = %v, want shutdown", h.game.State())
	}
	if len(h.surface.texts) == 0 || h.surface.texts[0] != "Server shutting down" {
		t.Fatalf("notice texts = %v", h.surface.texts)
	}
	for i := 1; i < config.ShutdownNoticeFrames; i++ {
		h.step(t)
	}
	if h.game.State() != StateQuit {
		t.Fatalf("state = %v after the notice, want quit", h.game.State())
	}
}

func TestStep_PresentError(t *testing.T) {
	h := newHarness(t, Options{})
	want := errors.New("session closed")
	h.surface.err = want
	h.queue.Push(input.Down(input.KeyEnter))
	if err := h.game.Step(); !errors.Is(err, want) {
		t.Fatalf("Step err = %v, want %v", err, want)
	}
}

func TestRun_StopsOnQuit(t *testing.T) {
	h := newHarness(t, Options{})
	h.queue.Push(input.Quit())
	done := make(chan error, 1)
	go func() { done <- h.game.Run(context.Background()) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after quit")
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	h := newHarness(t, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.game.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestStateString(t *testing.T) {
	for s, want := range map[State]string{
		StateMenu: "menu", StatePlaying: "playing", StateGameOver: "gameover",
		StateShutdown: "shutdown", StateQuit: "quit", State(42): "unknown",
	} {
		if s.String() != want {
			t.Errorf("State(%d).String() = %q, want %q", int(s), s.String(), want)
		}
	}
}
