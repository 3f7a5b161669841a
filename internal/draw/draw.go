// Package draw defines the render surface the game draws onto and the
// terminal implementation of it.
package draw

import (
	"image/color"

	"github.com/tomz197/savetheearth/internal/physics"
)

// Surface receives one composed frame at a time. Blit and Text place
// content in logical window pixels; Present shows the composed frame.
type Surface interface {
	// Blit draws the named sprite into r. Drawing the background sprite
	// covers everything drawn before it in the frame.
	Blit(sprite string, r physics.Rect)
	// Text draws s centred on (cx, cy) at the given point size.
	Text(s string, size int, cx, cy int, c color.Color)
	// Present displays the composed frame.
	Present() error
}

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
