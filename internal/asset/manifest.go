// Package asset names, loads and caches the game's images and sounds.
// Everything is loaded once at startup; a missing file is fatal.
package asset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tomz197/savetheearth/internal/config"
)

// Sprite names.
const (
	Background = "background"
	Fighter    = "fighter"
	Missile    = "missile"
	Explosion  = "explosion"
	rockPrefix = "rock"
)

// Sound names.
const (
	SoundMissile    = "missile"
	SoundGameOver   = "gameover"
	Music           = "music"
	explosionPrefix = "explosion"
)

// ExplosionSounds is the number of interchangeable explosion sounds.
const ExplosionSounds = 4

// RockSprite returns the sprite name for a rock variant in 1..RockVariants.
func RockSprite(variant int) string {
	return fmt.Sprintf("%s%02d", rockPrefix, variant)
}

// RockVariant reports the variant number encoded in a rock sprite name.
func RockVariant(name string) (int, bool) {
	digits, ok := strings.CutPrefix(name, rockPrefix)
	if !ok || len(digits) != 2 {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 || n > config.RockVariants {
		return 0, false
	}
	return n, true
}

// ExplosionSound returns the name of explosion sound n in 1..ExplosionSounds.
func ExplosionSound(n int) string {
	return fmt.Sprintf("%s%02d", explosionPrefix, n)
}

// Images lists every sprite the game needs.
func Images() []string {
	names := []string{Background, Fighter, Missile, Explosion}
	for v := 1; v <= config.RockVariants; v++ {
		names = append(names, RockSprite(v))
	}
	return names
}

// Sounds lists every sound the game needs.
func Sounds() []string {
	names := []string{SoundMissile, SoundGameOver, Music}
	for n := 1; n <= ExplosionSounds; n++ {
		names = append(names, ExplosionSound(n))
	}
	return names
}

// ImageFile is the file name holding a sprite.
func ImageFile(name string) string { return name + ".png" }

// SoundFile is the file name holding a sound.
func SoundFile(name string) string { return name + ".wav" }
