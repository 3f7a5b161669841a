// Package physics provides axis-aligned rectangle geometry and collision tests.
package physics

// Rect is an axis-aligned bounding box in window pixels.
// X and Y are the top-left corner.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a rectangle at (x, y) with the given size.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Left returns the x coordinate of the left edge.
func (r Rect) Left() int { return r.X }

// Right returns the x coordinate just past the right edge.
func (r Rect) Right() int { return r.X + r.W }

// Top returns the y coordinate of the top edge.
func (r Rect) Top() int { return r.Y }

// Bottom returns the y coordinate just past the bottom edge.
func (r Rect) Bottom() int { return r.Y + r.H }

// CenterX returns the horizontal centre, rounded down.
func (r Rect) CenterX() int { return r.X + r.W/2 }

// CenterY returns the vertical centre, rounded down.
func (r Rect) CenterY() int { return r.Y + r.H/2 }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Translate returns the rectangle moved by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Intersects reports whether two rectangles overlap.
// Rectangles that only share an edge do not overlap, and empty rectangles
// never overlap anything. The test is symmetric.
func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.X+o.W && o.X < r.X+r.W &&
		r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Within reports whether r lies entirely inside a width x height area
// anchored at the origin.
func (r Rect) Within(width, height int) bool {
	return r.X >= 0 && r.Right() <= width && r.Y >= 0 && r.Bottom() <= height
}
