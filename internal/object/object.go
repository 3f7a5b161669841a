// Package object holds the game's entities: the fighter, its missiles and
// the falling rocks, plus the collision and spawning rules between them.
package object

import (
	"github.com/tomz197/savetheearth/internal/asset"
	"github.com/tomz197/savetheearth/internal/draw"
	"github.com/tomz197/savetheearth/internal/physics"
)

// Entity is a drawable and updatable game entity.
type Entity interface {
	// Update advances the entity by one frame. Returns true if the entity
	// should be removed.
	Update() (remove bool)

	// Draw blits the entity onto the surface.
	Draw(s draw.Surface)

	// Bounds returns the entity's bounding box in window pixels.
	Bounds() physics.Rect
}

// Sizer reports sprite dimensions. *asset.Pool implements it.
type Sizer interface {
	Size(name string) (width, height int)
}

// Rand is the subset of *rand.Rand used for spawning.
type Rand interface {
	Intn(n int) int
}

// Collide returns the index of the first rock whose bounds intersect r, or
// -1 if none does.
func Collide(r physics.Rect, rocks []*Rock) int {
	for i, rock := range rocks {
		if r.Intersects(rock.Rect) {
			return i
		}
	}
	return -1
}

// DrawExplosion blits the explosion sprite with its top-left corner at
// (x, y).
func DrawExplosion(s draw.Surface, sizes Sizer, x, y int) {
	w, h := sizes.Size(asset.Explosion)
	s.Blit(asset.Explosion, physics.NewRect(x, y, w, h))
}

// FilterRemoved updates every entity in order and returns the ones that
// stay, reusing the backing array.
func FilterRemoved[E Entity](entities []E) []E {
	kept := entities[:0]
	for _, e := range entities {
		if !e.Update() {
			kept = append(kept, e)
		}
	}
	clear(entities[len(kept):])
	return kept
}
