package draw

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/tomz197/savetheearth/internal/config"
	"github.com/tomz197/savetheearth/internal/physics"
)

// maxChunkSize caps single writes so a full repaint does not stall a slow
// SSH channel.
const maxChunkSize = 4096

// ChunkWriter accumulates a frame of terminal output and writes it in
// chunks on Flush.
type ChunkWriter struct {
	buf  strings.Builder
	bufw *bufio.Writer
}

// NewChunkWriter creates a ChunkWriter that writes to w.
func NewChunkWriter(w io.Writer) *ChunkWriter {
	return &ChunkWriter{bufw: bufio.NewWriterSize(w, 8192)}
}

// Write implements io.Writer.
func (cw *ChunkWriter) Write(p []byte) (n int, err error) {
	return cw.buf.Write(p)
}

// WriteString appends a string to the buffer.
func (cw *ChunkWriter) WriteString(s string) (int, error) {
	return cw.buf.WriteString(s)
}

// Len returns the number of buffered bytes.
func (cw *ChunkWriter) Len() int { return cw.buf.Len() }

// Flush writes the accumulated buffer to the underlying writer in chunks,
// then resets the buffer.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf.String()
	cw.buf.Reset()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := cw.bufw.WriteString(chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return cw.bufw.Flush()
}

// TermSizeFunc returns the terminal dimensions in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns the terminal size of os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ClearScreen clears the terminal and moves the cursor to the top left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}

// fitTermSize picks the largest render area inside a termWidth x termHeight
// terminal that keeps the window aspect ratio, leaving room for a border.
// Terminal cells are about twice as tall as wide and the canvas packs two
// pixels per cell vertically, so one column covers as much logical width
// as half a row covers height.
func fitTermSize(termWidth, termHeight int) (width, height int) {
	availW := min(termWidth-2, config.MaxTermWidth)
	availH := min(termHeight-2, config.MaxTermHeight)
	if availW < 1 {
		availW = max(termWidth, 1)
	}
	if availH < 1 {
		availH = max(termHeight, 1)
	}

	// cols / (2 * rows) == WindowWidth / WindowHeight
	height = availH
	width = height * 2 * config.WindowWidth / config.WindowHeight
	if width > availW {
		width = availW
		height = width * config.WindowHeight / (2 * config.WindowWidth)
	}
	return max(width, 1), max(height, 1)
}

// Terminal is a Surface that renders frames as coloured half-block
// characters. It follows terminal resizes between frames.
type Terminal struct {
	out    *ChunkWriter
	size   TermSizeFunc
	canvas *Canvas

	termWidth  int
	termHeight int
}

// NewTerminal creates a terminal surface writing to w. size is queried once
// per frame.
func NewTerminal(w io.Writer, size TermSizeFunc) *Terminal {
	return &Terminal{
		out:    NewChunkWriter(w),
		size:   size,
		canvas: NewCanvas(1, 1, config.WindowWidth, config.WindowHeight),
	}
}

// Canvas exposes the underlying canvas.
func (t *Terminal) Canvas() *Canvas { return t.canvas }

// Blit draws a sprite as a coloured shape.
func (t *Terminal) Blit(sprite string, r physics.Rect) {
	drawSprite(t.canvas, sprite, r)
}

// Text draws s centred on (cx, cy). Terminal text has a single size.
func (t *Terminal) Text(s string, _ int, cx, cy int, c color.Color) {
	t.canvas.Label(float64(cx), float64(cy), s, c)
}

// Present writes the cells that changed since the last frame.
func (t *Terminal) Present() error {
	if err := t.fit(); err != nil {
		return err
	}
	t.canvas.Render(t.out)
	return t.out.Flush()
}

// fit resizes the canvas when the terminal size changed.
func (t *Terminal) fit() error {
	w, h, err := t.size()
	if err != nil {
		return fmt.Errorf("terminal size: %w", err)
	}
	if w == t.termWidth && h == t.termHeight {
		return nil
	}
	t.termWidth, t.termHeight = w, h

	cols, rows := fitTermSize(w, h)
	t.canvas.Resize(cols, rows)
	t.canvas.SetOffset((w-cols)/2, (h-rows)/2)
	t.canvas.ForceRedraw()
	ClearScreen(t.out)
	return nil
}

// Close restores the cursor and clears the game from the screen.
func (t *Terminal) Close() error {
	io.WriteString(t.out, "\033[0m")
	ClearScreen(t.out)
	ShowCursor(t.out)
	return t.out.Flush()
}

// Open hides the cursor and clears the screen before the first frame.
func (t *Terminal) Open() error {
	HideCursor(t.out)
	ClearScreen(t.out)
	return t.out.Flush()
}
