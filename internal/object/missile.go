package object

import (
	"github.com/tomz197/savetheearth/internal/asset"
	"github.com/tomz197/savetheearth/internal/config"
	"github.com/tomz197/savetheearth/internal/draw"
	"github.com/tomz197/savetheearth/internal/physics"
)

// Missile flies straight up at a fixed speed.
type Missile struct {
	physics.Rect
	Speed int
}

// NewMissile creates a missile with its top-left corner at (x, y).
func NewMissile(x, y int, sizes Sizer) *Missile {
	w, h := sizes.Size(asset.Missile)
	return &Missile{
		Rect:  physics.NewRect(x, y, w, h),
		Speed: config.MissileSpeed,
	}
}

// Update moves the missile up and reports removal once it is fully above
// the window.
func (m *Missile) Update() bool {
	m.Y -= m.Speed
	return m.Bottom() < 0
}

// Draw blits the missile sprite.
func (m *Missile) Draw(s draw.Surface) {
	s.Blit(asset.Missile, m.Rect)
}

// Bounds returns the missile's bounding box.
func (m *Missile) Bounds() physics.Rect { return m.Rect }

// Collide returns the first rock the missile hits, or nil.
func (m *Missile) Collide(rocks []*Rock) *Rock {
	if i := Collide(m.Rect, rocks); i >= 0 {
		return rocks[i]
	}
	return nil
}
