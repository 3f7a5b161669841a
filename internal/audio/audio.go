// Package audio plays the game's sound effects and background music.
package audio

import (
	"io"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/savetheearth/internal/asset"
)

// Player starts sounds by name. Implementations never block the caller and
// ignore names they cannot play.
type Player interface {
	Play(name string)
	PlayMusic(name string)
	StopMusic()
}

// Library looks up decoded sounds. *asset.Pool implements it.
type Library interface {
	Sound(name string) (*beep.Buffer, bool)
}

const (
	speakerBuffer = 100 * time.Millisecond
	// musicGain keeps the music under the effects.
	musicGain = 0.5
)

// Speaker plays sounds through the local audio device. Every sound is mixed
// into one stream so effects overlap freely with the music.
type Speaker struct {
	mu          sync.Mutex
	lib         Library
	log         *log.Logger
	mixer       *beep.Mixer
	music       *beep.Ctrl
	volume      float64
	initialized bool

	lock   func()
	unlock func()
}

// NewSpeaker creates a speaker player. volume is a linear gain in (0, 1];
// anything else plays at full volume. Call Init before playing.
func NewSpeaker(lib Library, volume float64, logger *log.Logger) *Speaker {
	if volume <= 0 || volume > 1 {
		volume = 1
	}
	return &Speaker{
		lib:    lib,
		log:    logger,
		mixer:  &beep.Mixer{},
		volume: volume,
		lock:   speaker.Lock,
		unlock: speaker.Unlock,
	}
}

// Init opens the audio device. A speaker that failed to initialize stays
// silent.
func (s *Speaker) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	sr := asset.Format.SampleRate
	if err := speaker.Init(sr, sr.N(speakerBuffer)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Close stops all sounds and releases the audio device.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	s.lock()
	s.mixer.Clear()
	s.unlock()
	s.music = nil
	s.initialized = false
	speaker.Close()
}

// Play starts a one-shot sound.
func (s *Speaker) Play(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	buf, ok := s.lib.Sound(name)
	if !ok {
		s.log.Debug("unknown sound", "name", name)
		return
	}
	s.add(withGain(buf.Streamer(0, buf.Len()), s.volume))
}

// PlayMusic loops a sound until StopMusic, replacing any music already
// playing.
func (s *Speaker) PlayMusic(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	buf, ok := s.lib.Sound(name)
	if !ok {
		s.log.Debug("unknown music", "name", name)
		return
	}
	s.stopMusicLocked()

	ctrl := &beep.Ctrl{Streamer: beep.Loop(-1, buf.Streamer(0, buf.Len()))}
	s.music = ctrl
	s.add(withGain(ctrl, s.volume*musicGain))
}

// StopMusic stops the looping music, if any.
func (s *Speaker) StopMusic() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopMusicLocked()
}

func (s *Speaker) stopMusicLocked() {
	if s.music == nil {
		return
	}
	s.lock()
	// A nil streamer makes Ctrl report drained, so the mixer drops it.
	s.music.Streamer = nil
	s.unlock()
	s.music = nil
}

func (s *Speaker) add(st beep.Streamer) {
	s.lock()
	s.mixer.Add(st)
	s.unlock()
}

// withGain scales st by a linear gain.
func withGain(st beep.Streamer, gain float64) beep.Streamer {
	if gain >= 1 {
		return st
	}
	return &effects.Volume{Streamer: st, Base: 2, Volume: math.Log2(gain)}
}

// Bell rings the terminal bell for explosions and game over. It is the
// only sound a remote terminal can make.
type Bell struct {
	mu sync.Mutex
	w  io.Writer
}

// NewBell creates a bell player writing to w.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

// Play rings the bell for every sound except missile launches.
func (b *Bell) Play(name string) {
	if name == asset.SoundMissile {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.w.Write([]byte{'\a'})
}

// PlayMusic is a no-op; a bell cannot play music.
func (b *Bell) PlayMusic(string) {}

// StopMusic is a no-op.
func (b *Bell) StopMusic() {}

// Silent discards every sound.
type Silent struct{}

func (Silent) Play(string)      {}
func (Silent) PlayMusic(string) {}
func (Silent) StopMusic()       {}

var (
	_ Player = (*Speaker)(nil)
	_ Player = (*Bell)(nil)
	_ Player = Silent{}
)
