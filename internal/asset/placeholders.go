package asset

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/tomz197/savetheearth/internal/config"
)

// Placeholder sprite sizes.
const (
	FighterWidth   = 40
	FighterHeight  = 48
	MissileWidth   = 6
	MissileHeight  = 18
	ExplosionSize  = 48
	minRockSize    = 24
	rockSizeSpread = 22
)

// Colors used by the generated sprites.
var placeholderPalette = struct {
	Space     color.RGBA
	Star      color.RGBA
	Hull      color.RGBA
	Cockpit   color.RGBA
	Flame     color.RGBA
	Missile   color.RGBA
	RockLight color.RGBA
	RockDark  color.RGBA
	Blast     color.RGBA
	BlastCore color.RGBA
}{
	Space:     color.RGBA{8, 10, 28, 255},
	Star:      color.RGBA{200, 200, 220, 255},
	Hull:      color.RGBA{80, 220, 255, 255},
	Cockpit:   color.RGBA{250, 250, 50, 255},
	Flame:     color.RGBA{255, 150, 30, 255},
	Missile:   color.RGBA{250, 250, 50, 255},
	RockLight: color.RGBA{150, 145, 140, 255},
	RockDark:  color.RGBA{150, 105, 60, 255},
	Blast:     color.RGBA{255, 150, 30, 255},
	BlastCore: color.RGBA{250, 50, 50, 255},
}

// RockSize returns the generated size of a rock variant. Sizes repeat every
// few variants so the field mixes small and large rocks.
func RockSize(variant int) int {
	return minRockSize + (variant*7)%rockSizeSpread
}

// Placeholders builds a complete pool of generated sprites and sounds, so
// the game can run without an asset directory.
func Placeholders(seed int64) *Pool {
	rng := rand.New(rand.NewSource(seed))
	p := NewPool()

	p.images[Background] = backgroundImage(rng)
	p.images[Fighter] = fighterImage()
	p.images[Missile] = solidImage(MissileWidth, MissileHeight, placeholderPalette.Missile)
	p.images[Explosion] = explosionImage()
	for v := 1; v <= config.RockVariants; v++ {
		p.images[RockSprite(v)] = rockImage(v, rng)
	}

	sr := Format.SampleRate
	p.sounds[SoundMissile] = bufferOf(sweep(sr, 120*time.Millisecond, 1400, 500, 0.25))
	for n := 1; n <= ExplosionSounds; n++ {
		length := time.Duration(250+n*80) * time.Millisecond
		p.sounds[ExplosionSound(n)] = bufferOf(noiseBurst(sr, length, rng, 0.5))
	}
	p.sounds[SoundGameOver] = bufferOf(beep.Seq(
		sweep(sr, 250*time.Millisecond, 440, 392, 0.3),
		sweep(sr, 250*time.Millisecond, 392, 330, 0.3),
		sweep(sr, 600*time.Millisecond, 330, 220, 0.3),
	))
	p.sounds[Music] = bufferOf(arpeggio(sr, []float64{220, 277, 330, 440, 330, 277}, 250*time.Millisecond, 0.15))
	return p
}

// WriteDir writes every asset in the pool to dir as PNG and WAV files.
func WriteDir(dir string, p *Pool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create asset dir: %w", err)
	}
	for name, img := range p.images {
		if err := writePNG(filepath.Join(dir, ImageFile(name)), img); err != nil {
			return err
		}
	}
	for name, buf := range p.sounds {
		if err := writeWAV(filepath.Join(dir, SoundFile(name)), buf); err != nil {
			return err
		}
	}
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func writeWAV(path string, buf *beep.Buffer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	// wav.Encode seeks back to patch the header and leaves the file open.
	if err := wav.Encode(f, buf.Streamer(0, buf.Len()), buf.Format()); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func solidImage(w, h int, col color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{col}, image.Point{}, draw.Src)
	return img
}

func backgroundImage(rng *rand.Rand) *image.RGBA {
	img := solidImage(config.WindowWidth, config.WindowHeight, placeholderPalette.Space)
	for i := 0; i < 160; i++ {
		img.Set(rng.Intn(config.WindowWidth), rng.Intn(config.WindowHeight), placeholderPalette.Star)
	}
	return img
}

// fighterImage draws an upward-pointing ship: a triangular hull with a
// cockpit and engine flame.
func fighterImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, FighterWidth, FighterHeight))
	hullBottom := FighterHeight - 8
	for y := 0; y < hullBottom; y++ {
		half := float64(y) / float64(hullBottom) * FighterWidth / 2
		cx := FighterWidth / 2
		for x := cx - int(half); x <= cx+int(half); x++ {
			img.Set(x, y, placeholderPalette.Hull)
		}
	}
	for y := hullBottom / 3; y < hullBottom/3+8; y++ {
		for x := FighterWidth/2 - 2; x <= FighterWidth/2+2; x++ {
			img.Set(x, y, placeholderPalette.Cockpit)
		}
	}
	for y := hullBottom; y < FighterHeight; y++ {
		for x := FighterWidth/2 - 4; x <= FighterWidth/2+4; x++ {
			img.Set(x, y, placeholderPalette.Flame)
		}
	}
	return img
}

// rockImage draws an irregular filled blob sized by variant.
func rockImage(variant int, rng *rand.Rand) *image.RGBA {
	size := RockSize(variant)
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	col := placeholderPalette.RockLight
	if variant%2 == 0 {
		col = placeholderPalette.RockDark
	}

	const lobes = 9
	var radii [lobes]float64
	for i := range radii {
		radii[i] = 0.75 + rng.Float64()*0.25
	}

	c := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := float64(x)+0.5-c, float64(y)+0.5-c
			angle := math.Atan2(dy, dx) + math.Pi
			lobe := int(angle/(2*math.Pi)*lobes) % lobes
			if math.Hypot(dx, dy) <= c*radii[lobe] {
				img.Set(x, y, col)
			}
		}
	}
	return img
}

func explosionImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, ExplosionSize, ExplosionSize))
	c := float64(ExplosionSize) / 2
	for y := 0; y < ExplosionSize; y++ {
		for x := 0; x < ExplosionSize; x++ {
			dx, dy := float64(x)+0.5-c, float64(y)+0.5-c
			dist := math.Hypot(dx, dy)
			spike := 0.6 + 0.4*math.Abs(math.Cos(4*math.Atan2(dy, dx)))
			switch {
			case dist <= c*0.35:
				img.Set(x, y, placeholderPalette.BlastCore)
			case dist <= c*spike:
				img.Set(x, y, placeholderPalette.Blast)
			}
		}
	}
	return img
}

func bufferOf(s beep.Streamer) *beep.Buffer {
	buf := beep.NewBuffer(Format)
	buf.Append(s)
	return buf
}

// samples streams n samples of fn(i), the same value on both channels.
func samples(n int, fn func(i int) float64) beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(out [][2]float64) (int, bool) {
		if pos >= n {
			return 0, false
		}
		i := 0
		for ; i < len(out) && pos < n; i++ {
			v := fn(pos)
			out[i][0], out[i][1] = v, v
			pos++
		}
		return i, true
	})
}

// sweep is a square wave gliding from one frequency to another with a
// linear fade-out.
func sweep(sr beep.SampleRate, d time.Duration, from, to, volume float64) beep.Streamer {
	n := sr.N(d)
	phase := 0.0
	return samples(n, func(i int) float64 {
		progress := float64(i) / float64(n)
		freq := from + (to-from)*progress
		phase += freq / float64(sr)
		phase -= math.Floor(phase)
		v := 1.0
		if phase >= 0.5 {
			v = -1.0
		}
		return v * volume * (1 - progress)
	})
}

// noiseBurst is white noise with an exponential decay.
func noiseBurst(sr beep.SampleRate, d time.Duration, rng *rand.Rand, volume float64) beep.Streamer {
	n := sr.N(d)
	return samples(n, func(i int) float64 {
		decay := math.Exp(-5 * float64(i) / float64(n))
		return (rng.Float64()*2 - 1) * volume * decay
	})
}

// arpeggio plays sine notes in sequence with a short attack and release.
func arpeggio(sr beep.SampleRate, notes []float64, noteLen time.Duration, volume float64) beep.Streamer {
	perNote := sr.N(noteLen)
	ramp := perNote / 10
	return samples(perNote*len(notes), func(i int) float64 {
		note := notes[i/perNote]
		within := i % perNote
		env := 1.0
		if within < ramp {
			env = float64(within) / float64(ramp)
		} else if within > perNote-ramp {
			env = float64(perNote-within) / float64(ramp)
		}
		t := float64(i) / float64(sr)
		return math.Sin(2*math.Pi*note*t) * volume * env
	})
}
