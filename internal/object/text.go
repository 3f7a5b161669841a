package object

import (
	"image/color"

	"github.com/tomz197/savetheearth/internal/draw"
)

// Text is a line of text centred on (X, Y).
type Text struct {
	X, Y  int
	Size  int
	Value string
	Color color.Color
}

// Draw renders the text. Empty text draws nothing.
func (t Text) Draw(s draw.Surface) {
	if t.Value == "" {
		return
	}
	s.Text(t.Value, t.Size, t.X, t.Y, t.Color)
}
