package draw

import (
	"math"

	"github.com/tomz197/savetheearth/internal/asset"
	"github.com/tomz197/savetheearth/internal/physics"
)

// rockVertices is the number of corners on a terminal rock outline.
const rockVertices = 8

// drawSprite renders a named sprite into r as canvas shapes. Unknown
// sprites are drawn as an outline so missing art stays visible.
func drawSprite(c *Canvas, sprite string, r physics.Rect) {
	if r.Empty() && sprite != asset.Background {
		return
	}
	x, y := float64(r.X), float64(r.Y)
	w, h := float64(r.W), float64(r.H)

	switch sprite {
	case asset.Background:
		c.Clear()
	case asset.Fighter:
		drawFighter(c, x, y, w, h)
	case asset.Missile:
		c.FillRect(x, y, w, h, PaintYellow)
	case asset.Explosion:
		drawExplosion(c, x, y, w, h)
	default:
		if v, ok := asset.RockVariant(sprite); ok {
			drawRock(c, v, x, y, w, h)
			return
		}
		pts := c.BorrowPoints(4)
		pts[0] = Point{x, y}
		pts[1] = Point{x + w - 1, y}
		pts[2] = Point{x + w - 1, y + h - 1}
		pts[3] = Point{x, y + h - 1}
		c.DrawPolygon(pts, false, PaintWhite)
	}
}

func drawFighter(c *Canvas, x, y, w, h float64) {
	pts := c.BorrowPoints(3)
	pts[0] = Point{x + w/2, y}
	pts[1] = Point{x + w, y + h*0.85}
	pts[2] = Point{x, y + h*0.85}
	c.DrawPolygon(pts, true, PaintCyan)
	c.FillRect(x+w*0.4, y+h*0.85, w*0.2, h*0.15, PaintOrange)
}

func drawExplosion(c *Canvas, x, y, w, h float64) {
	const spikes = 6
	cx, cy := x+w/2, y+h/2
	pts := c.BorrowPoints(spikes * 2)
	for i := range pts {
		angle := float64(i) * math.Pi / spikes
		rx, ry := w/2, h/2
		if i%2 == 1 {
			rx, ry = w/4, h/4
		}
		pts[i] = Point{cx + rx*math.Cos(angle), cy + ry*math.Sin(angle)}
	}
	c.DrawPolygon(pts, true, PaintOrange)
	c.FillRect(cx-w/8, cy-h/8, w/4, h/4, PaintRed)
}

// drawRock draws an irregular polygon. The outline is a pure function of
// the variant so a rock keeps its shape while falling.
func drawRock(c *Canvas, variant int, x, y, w, h float64) {
	paint := PaintGray
	if variant%2 == 0 {
		paint = PaintBrown
	}
	cx, cy := x+w/2, y+h/2
	pts := c.BorrowPoints(rockVertices)
	for i := range pts {
		jitter := 0.75 + float64((variant*31+i*17)%6)*0.05
		angle := float64(i) * 2 * math.Pi / rockVertices
		pts[i] = Point{
			X: cx + w/2*jitter*math.Cos(angle),
			Y: cy + h/2*jitter*math.Sin(angle),
		}
	}
	c.DrawPolygon(pts, true, paint)
}
