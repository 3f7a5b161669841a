package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tomz197/savetheearth/internal/input"
)

// Input reads the window's keyboard. Window closing is reported as a quit
// once SetWindowClosingHandled(true) has been called.
type Input struct {
	keys   []ebiten.Key
	events []input.Event
}

// NewInput creates a keyboard source for the game window.
func NewInput() *Input {
	return &Input{}
}

// Poll returns the key transitions of the current tick.
func (in *Input) Poll() []input.Event {
	in.events = in.events[:0]
	if ebiten.IsWindowBeingClosed() {
		in.events = append(in.events, input.Event{Type: input.EventQuit})
	}

	in.keys = inpututil.AppendJustPressedKeys(in.keys[:0])
	for _, k := range in.keys {
		in.events = appendKey(in.events, k, input.EventKeyDown)
	}
	in.keys = inpututil.AppendJustReleasedKeys(in.keys[:0])
	for _, k := range in.keys {
		in.events = appendKey(in.events, k, input.EventKeyUp)
	}
	return in.events
}

// appendKey maps k to a game event. Escape and Q quit on press.
func appendKey(events []input.Event, k ebiten.Key, typ input.EventType) []input.Event {
	if isQuitKey(k) {
		if typ == input.EventKeyDown {
			events = append(events, input.Event{Type: input.EventQuit})
		}
		return events
	}
	if key, ok := mapKey(k); ok {
		events = append(events, input.Event{Type: typ, Key: key})
	}
	return events
}

func isQuitKey(k ebiten.Key) bool {
	return k == ebiten.KeyEscape || k == ebiten.KeyQ
}

func mapKey(k ebiten.Key) (input.Key, bool) {
	switch k {
	case ebiten.KeyArrowLeft, ebiten.KeyA:
		return input.KeyLeft, true
	case ebiten.KeyArrowRight, ebiten.KeyD:
		return input.KeyRight, true
	case ebiten.KeyArrowUp, ebiten.KeyW:
		return input.KeyUp, true
	case ebiten.KeyArrowDown, ebiten.KeyS:
		return input.KeyDown, true
	case ebiten.KeySpace:
		return input.KeySpace, true
	case ebiten.KeyEnter, ebiten.KeyNumpadEnter:
		return input.KeyEnter, true
	}
	return 0, false
}

var _ input.Source = (*Input)(nil)
