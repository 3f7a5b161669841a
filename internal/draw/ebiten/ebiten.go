// Package ebiten runs the game in a desktop window using Ebitengine.
package ebiten

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/tomz197/savetheearth/internal/asset"
	"github.com/tomz197/savetheearth/internal/config"
	"github.com/tomz197/savetheearth/internal/draw"
	"github.com/tomz197/savetheearth/internal/loop"
	"github.com/tomz197/savetheearth/internal/physics"
)

// baseFontSize is the pixel height of the bitmap face before scaling.
const baseFontSize = 13

// op is one recorded draw call.
type op struct {
	sprite string
	rect   physics.Rect

	text  string
	size  int
	color color.Color
}

// Surface records the frame the game composes during Update and replays
// the last presented frame in Draw. Ebitengine asks for a redraw every
// frame, so frames that present nothing keep showing the previous one.
type Surface struct {
	pool    *asset.Pool
	images  map[string]*ebiten.Image
	face    *text.GoXFace
	pending []op
	shown   []op
}

// NewSurface creates a window surface drawing sprites from pool.
func NewSurface(pool *asset.Pool) *Surface {
	return &Surface{
		pool:   pool,
		images: make(map[string]*ebiten.Image),
		face:   text.NewGoXFace(basicfont.Face7x13),
	}
}

// Blit queues a sprite for the frame being composed.
func (s *Surface) Blit(sprite string, r physics.Rect) {
	if sprite == asset.Background {
		s.pending = s.pending[:0]
	}
	s.pending = append(s.pending, op{sprite: sprite, rect: r})
}

// Text queues centred text for the frame being composed.
func (s *Surface) Text(str string, size int, cx, cy int, c color.Color) {
	s.pending = append(s.pending, op{
		text:  str,
		size:  size,
		rect:  physics.NewRect(cx, cy, 0, 0),
		color: c,
	})
}

// Present makes the composed frame the one Draw shows. The composed frame
// is kept so later blits draw over it until the next background.
func (s *Surface) Present() error {
	s.shown = append(s.shown[:0], s.pending...)
	return nil
}

// Draw renders the last presented frame.
func (s *Surface) Draw(screen *ebiten.Image) {
	screen.Fill(config.Black)
	for _, o := range s.shown {
		if o.text != "" {
			s.drawText(screen, o)
			continue
		}
		s.drawSprite(screen, o)
	}
}

func (s *Surface) drawSprite(screen *ebiten.Image, o op) {
	img := s.image(o.sprite)
	r := o.rect
	if img == nil {
		vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 1, config.White, false)
		return
	}
	b := img.Bounds()
	opts := &ebiten.DrawImageOptions{}
	if b.Dx() != r.W || b.Dy() != r.H {
		opts.GeoM.Scale(float64(r.W)/float64(b.Dx()), float64(r.H)/float64(b.Dy()))
	}
	opts.GeoM.Translate(float64(r.X), float64(r.Y))
	screen.DrawImage(img, opts)
}

func (s *Surface) drawText(screen *ebiten.Image, o op) {
	scale := float64(o.size) / baseFontSize
	opts := &text.DrawOptions{}
	opts.PrimaryAlign = text.AlignCenter
	opts.SecondaryAlign = text.AlignCenter
	opts.GeoM.Scale(scale, scale)
	opts.GeoM.Translate(float64(o.rect.X), float64(o.rect.Y))
	opts.ColorScale.ScaleWithColor(o.color)
	text.Draw(screen, o.text, s.face, opts)
}

// image converts pool sprites to GPU images on first use.
func (s *Surface) image(name string) *ebiten.Image {
	if img, ok := s.images[name]; ok {
		return img
	}
	src, ok := s.pool.Image(name)
	if !ok {
		s.images[name] = nil
		return nil
	}
	img := ebiten.NewImageFromImage(src)
	s.images[name] = img
	return img
}

// Game adapts a loop.Game to ebiten.Game. Ebitengine calls Update at the
// game's frame rate, so every Update is one game frame.
type Game struct {
	game    *loop.Game
	surface *Surface
}

// NewGame wraps game, which must draw onto surface.
func NewGame(game *loop.Game, surface *Surface) *Game {
	return &Game{game: game, surface: surface}
}

// Update advances the game by one frame.
func (g *Game) Update() error {
	if err := g.game.Step(); err != nil {
		return err
	}
	if g.game.State() == loop.StateQuit {
		return ebiten.Termination
	}
	return nil
}

// Draw shows the last presented frame.
func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.Draw(screen)
}

// Layout keeps the logical window size regardless of the outside size.
func (g *Game) Layout(_, _ int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}

var (
	_ draw.Surface = (*Surface)(nil)
	_ ebiten.Game  = (*Game)(nil)
)
