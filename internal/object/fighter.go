package object

import (
	"github.com/tomz197/savetheearth/internal/asset"
	"github.com/tomz197/savetheearth/internal/config"
	"github.com/tomz197/savetheearth/internal/draw"
	"github.com/tomz197/savetheearth/internal/physics"
)

// Fighter is the player's ship. It moves by DX/DY pixels per frame and
// never leaves the window.
type Fighter struct {
	physics.Rect
	DX, DY int
}

// NewFighter places the fighter at the bottom of the window with its left
// edge on the horizontal centre.
func NewFighter(sizes Sizer) *Fighter {
	w, h := sizes.Size(asset.Fighter)
	return &Fighter{
		Rect: physics.NewRect(config.WindowWidth/2, config.WindowHeight-h, w, h),
	}
}

// Update moves the fighter. Each axis is reverted on its own if the move
// would cross a window edge.
func (f *Fighter) Update() bool {
	f.X += f.DX
	if f.Left() < 0 || f.Right() > config.WindowWidth {
		f.X -= f.DX
	}
	f.Y += f.DY
	if f.Top() < 0 || f.Bottom() > config.WindowHeight {
		f.Y -= f.DY
	}
	return false
}

// Draw blits the fighter sprite.
func (f *Fighter) Draw(s draw.Surface) {
	s.Blit(asset.Fighter, f.Rect)
}

// Bounds returns the fighter's bounding box.
func (f *Fighter) Bounds() physics.Rect { return f.Rect }

// Collide returns the first rock touching the fighter, or nil.
func (f *Fighter) Collide(rocks []*Rock) *Rock {
	if i := Collide(f.Rect, rocks); i >= 0 {
		return rocks[i]
	}
	return nil
}

// Fire returns a missile launched from the fighter's nose.
func (f *Fighter) Fire(sizes Sizer) *Missile {
	return NewMissile(f.CenterX(), f.Top(), sizes)
}

// Stop clears the horizontal or vertical velocity.
func (f *Fighter) Stop(horizontal bool) {
	if horizontal {
		f.DX = 0
	} else {
		f.DY = 0
	}
}
