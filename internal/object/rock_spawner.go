package object

import "github.com/tomz197/savetheearth/internal/config"

// RockSpawner drops new rocks at random. More hits mean more and faster
// rocks.
type RockSpawner struct {
	rng   Rand
	sizes Sizer
}

// NewRockSpawner creates a spawner drawing from rng.
func NewRockSpawner(rng Rand, sizes Sizer) *RockSpawner {
	return &RockSpawner{rng: rng, sizes: sizes}
}

// SpeedRange returns the inclusive range new rock speeds are drawn from.
func SpeedRange(hits int) (lo, hi int) {
	return 1 + hits/config.RockMinSpeedDivide, 1 + hits/config.RockMaxSpeedDivide
}

// SpawnCount returns how many rocks a successful spawn roll drops.
func SpawnCount(hits int) int {
	return 1 + hits/config.RockCountDivisor
}

// Update rolls the spawn odds once and returns the new rocks, if any.
func (s *RockSpawner) Update(hits int) []*Rock {
	if s.rng.Intn(config.RockSpawnOdds) != 0 {
		return nil
	}
	return s.Spawn(hits)
}

// Spawn unconditionally creates SpawnCount(hits) rocks.
func (s *RockSpawner) Spawn(hits int) []*Rock {
	n := SpawnCount(hits)
	lo, hi := SpeedRange(hits)
	rocks := make([]*Rock, 0, n)
	for range n {
		x := s.rng.Intn(config.WindowWidth - config.RockSpawnMargin + 1)
		variant := 1 + s.rng.Intn(config.RockVariants)
		speed := lo + s.rng.Intn(hi-lo+1)
		rocks = append(rocks, NewRock(x, variant, speed, s.sizes))
	}
	return rocks
}
