package object

import (
	"github.com/tomz197/savetheearth/internal/asset"
	"github.com/tomz197/savetheearth/internal/config"
	"github.com/tomz197/savetheearth/internal/draw"
	"github.com/tomz197/savetheearth/internal/physics"
)

// Rock falls straight down at a fixed speed.
type Rock struct {
	physics.Rect
	Speed   int
	Variant int // 1..config.RockVariants
}

// NewRock creates a rock of the given variant at the top of the window.
func NewRock(x, variant, speed int, sizes Sizer) *Rock {
	w, h := sizes.Size(asset.RockSprite(variant))
	return &Rock{
		Rect:    physics.NewRect(x, 0, w, h),
		Speed:   speed,
		Variant: variant,
	}
}

// Update moves the rock down. Rocks leave through OutOfScreen, never
// through Update.
func (r *Rock) Update() bool {
	r.Y += r.Speed
	return false
}

// Draw blits the rock's variant sprite.
func (r *Rock) Draw(s draw.Surface) {
	s.Blit(asset.RockSprite(r.Variant), r.Rect)
}

// Bounds returns the rock's bounding box.
func (r *Rock) Bounds() physics.Rect { return r.Rect }

// OutOfScreen reports whether the rock's top edge is below the window.
func (r *Rock) OutOfScreen() bool {
	return r.Y > config.WindowHeight
}
