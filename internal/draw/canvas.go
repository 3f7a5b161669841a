package draw

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"sort"
	"strings"
	"unicode/utf8"
)

// Paint is a palette index for canvas pixels. PaintNone leaves a pixel unset.
type Paint uint8

const (
	PaintNone Paint = iota
	PaintWhite
	PaintYellow
	PaintRed
	PaintOrange
	PaintGray
	PaintBrown
	PaintCyan
	paintCount
)

var palette = [paintCount]color.RGBA{
	PaintWhite:  {255, 255, 255, 255},
	PaintYellow: {250, 250, 50, 255},
	PaintRed:    {250, 50, 50, 255},
	PaintOrange: {255, 150, 30, 255},
	PaintGray:   {150, 145, 140, 255},
	PaintBrown:  {150, 105, 60, 255},
	PaintCyan:   {80, 220, 255, 255},
}

// cell is one composed terminal character.
type cell struct {
	ch    rune
	fg    color.RGBA
	bg    color.RGBA
	hasBg bool
}

// label is a text overlay in 0-based canvas cell coordinates.
type label struct {
	col, row int
	text     string
	fg       color.RGBA
}

// Canvas is a drawing buffer with 2x vertical resolution using half-block
// characters. Game objects draw in logical window pixels; the canvas scales
// them to terminal cells. Render only writes cells that changed since the
// previous frame.
type Canvas struct {
	termWidth      int     // Render area columns
	termHeight     int     // Render area rows
	subPixelHeight int     // termHeight * 2
	pixels         []Paint // Flat slice: [y * termWidth + x]

	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// 0-based terminal offsets for centring the render area.
	offsetCol int
	offsetRow int

	cells  []cell
	prev   []cell
	labels []label
	redraw bool

	// Reusable buffers to reduce per-frame allocations
	scaledBuf       []Point
	intersectionBuf []float64
	polygonBuf      []Point
}

// NewCanvas creates a canvas of termWidth x termHeight cells showing a
// logicalWidth x logicalHeight coordinate space.
func NewCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new render dimensions while keeping the
// logical size. The next Render repaints every cell.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth < 1 {
		termWidth = 1
	}
	if termHeight < 1 {
		termHeight = 1
	}
	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]Paint, c.subPixelHeight*termWidth)
		c.cells = make([]cell, termWidth*termHeight)
		c.prev = make([]cell, termWidth*termHeight)
		c.redraw = true
	}
	c.scaleX = float64(c.termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// SetOffset sets the 0-based column and row where the render area starts.
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.redraw = true
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centring.
func (c *Canvas) OffsetCol() int { return c.offsetCol }

// OffsetRow returns the row offset used for centring.
func (c *Canvas) OffsetRow() int { return c.offsetRow }

// TerminalWidth returns the render area column count.
func (c *Canvas) TerminalWidth() int { return c.termWidth }

// TerminalHeight returns the render area row count.
func (c *Canvas) TerminalHeight() int { return c.termHeight }

// ForceRedraw makes the next Render repaint every cell and the border.
func (c *Canvas) ForceRedraw() {
	c.redraw = true
}

// Clear resets all pixels and text overlays.
func (c *Canvas) Clear() {
	clear(c.pixels)
	c.labels = c.labels[:0]
}

// setPixel sets a pixel at render coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, p Paint) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = p
	}
}

// Set sets the pixel under a logical coordinate.
func (c *Canvas) Set(x, y float64, p Paint) {
	c.setPixel(int(math.Floor(x*c.scaleX)), int(math.Floor(y*c.scaleY)), p)
}

// FillRect fills a logical rectangle. Anything with positive size covers at
// least one pixel so small sprites stay visible after scaling.
func (c *Canvas) FillRect(x, y, w, h float64, p Paint) {
	if w <= 0 || h <= 0 {
		return
	}
	x0 := int(math.Floor(x * c.scaleX))
	y0 := int(math.Floor(y * c.scaleY))
	x1 := int(math.Ceil((x+w)*c.scaleX)) - 1
	y1 := int(math.Ceil((y+h)*c.scaleY)) - 1
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			c.setPixel(px, py, p)
		}
	}
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 Point, p Paint) {
	x1 := int(math.Floor(p1.X * c.scaleX))
	y1 := int(math.Floor(p1.Y * c.scaleY))
	x2 := int(math.Floor(p2.X * c.scaleX))
	y2 := int(math.Floor(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1, p)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawPolygon draws a polygon on the canvas.
// If filled is true, the interior is filled using a scanline algorithm.
func (c *Canvas) DrawPolygon(points []Point, filled bool, p Paint) {
	if len(points) < 3 {
		return
	}

	if filled {
		c.fillPolygon(points, p)
	}

	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n], p)
	}
}

// fillPolygon fills a polygon using a scanline algorithm in pixel space.
func (c *Canvas) fillPolygon(points []Point, p Paint) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]

	for i, pt := range points {
		scaled[i] = Point{X: pt.X * c.scaleX, Y: pt.Y * c.scaleY}
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, pt := range scaled {
		if pt.Y < minY {
			minY = pt.Y
		}
		if pt.Y > maxY {
			maxY = pt.Y
		}
	}

	yStart := int(math.Floor(minY))
	yEnd := int(math.Ceil(maxY))

	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5

		intersections := c.intersectionBuf[:0]
		n := len(scaled)
		for i := 0; i < n; i++ {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]

			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				intersections = append(intersections, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = intersections

		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := int(math.Ceil(intersections[i]))
			xEnd := int(math.Floor(intersections[i+1]))
			for x := xStart; x <= xEnd; x++ {
				c.setPixel(x, y, p)
			}
		}
	}
}

// Label places text centred on a logical coordinate. Labels are drawn over
// pixels and cleared with them.
func (c *Canvas) Label(x, y float64, text string, fg color.Color) {
	col, row := c.cellAt(x, y)
	col -= utf8.RuneCountInString(text) / 2
	c.labels = append(c.labels, label{
		col:  col,
		row:  row,
		text: text,
		fg:   color.RGBAModel.Convert(fg).(color.RGBA),
	})
}

// cellAt converts logical coordinates to a 0-based cell in the render area.
func (c *Canvas) cellAt(x, y float64) (col, row int) {
	px := int(math.Floor(x * c.scaleX))
	py := int(math.Floor(y * c.scaleY))
	return px, py / 2
}

// BorrowPoints returns a reusable slice of Points with the given length.
// The returned slice is only valid until the next call to BorrowPoints.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}

// compose converts pixels and labels into terminal cells.
func (c *Canvas) compose() {
	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col]
			bottom := c.pixels[bottomOffset+col]

			var cl cell
			switch {
			case top != PaintNone && bottom == top:
				cl = cell{ch: BlockFull, fg: palette[top]}
			case top != PaintNone && bottom != PaintNone:
				cl = cell{ch: BlockUpperHalf, fg: palette[top], bg: palette[bottom], hasBg: true}
			case top != PaintNone:
				cl = cell{ch: BlockUpperHalf, fg: palette[top]}
			case bottom != PaintNone:
				cl = cell{ch: BlockLowerHalf, fg: palette[bottom]}
			default:
				cl = cell{ch: BlockEmpty}
			}
			c.cells[row*c.termWidth+col] = cl
		}
	}

	for _, l := range c.labels {
		if l.row < 0 || l.row >= c.termHeight {
			continue
		}
		col := l.col
		for _, r := range l.text {
			if col >= 0 && col < c.termWidth {
				c.cells[l.row*c.termWidth+col] = cell{ch: r, fg: l.fg}
			}
			col++
		}
	}
}

// Render writes the cells that changed since the previous Render.
func (c *Canvas) Render(w io.Writer) {
	c.compose()

	if c.redraw {
		c.renderBorder(w)
	}

	var style cell
	styled := false
	last := -2

	for row := 0; row < c.termHeight; row++ {
		for col := 0; col < c.termWidth; col++ {
			i := row*c.termWidth + col
			cl := c.cells[i]
			if !c.redraw && cl == c.prev[i] {
				continue
			}

			if i != last+1 || col == 0 {
				fmt.Fprintf(w, "\033[%d;%dH", row+1+c.offsetRow, col+1+c.offsetCol)
			}

			if !styled || cl.fg != style.fg || cl.bg != style.bg || cl.hasBg != style.hasBg {
				writeStyle(w, cl)
				style = cl
				styled = true
			}

			io.WriteString(w, string(cl.ch))
			last = i
		}
	}

	if styled {
		io.WriteString(w, "\033[0m")
	}

	copy(c.prev, c.cells)
	c.redraw = false
}

func writeStyle(w io.Writer, cl cell) {
	fmt.Fprintf(w, "\033[0;38;2;%d;%d;%dm", cl.fg.R, cl.fg.G, cl.fg.B)
	if cl.hasBg {
		fmt.Fprintf(w, "\033[48;2;%d;%d;%dm", cl.bg.R, cl.bg.G, cl.bg.B)
	}
}

// renderBorder draws a box around the render area when the terminal has
// room for it on either axis.
func (c *Canvas) renderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	// 1-based terminal coordinates
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	line := strings.Repeat("─", c.termWidth)

	if hasV {
		if hasH {
			fmt.Fprintf(&buf, "\033[%d;%dH┌%s┐", top, left, line)
			fmt.Fprintf(&buf, "\033[%d;%dH└%s┘", bottom, left, line)
		} else {
			fmt.Fprintf(&buf, "\033[%d;%dH%s", top, c.offsetCol+1, line)
			fmt.Fprintf(&buf, "\033[%d;%dH%s", bottom, c.offsetCol+1, line)
		}
	}

	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			fmt.Fprintf(&buf, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}

	io.WriteString(w, buf.String())
}
