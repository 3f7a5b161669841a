package input

import (
	"io"
	"time"
)

// Terminals report presses only, never releases. A movement key counts as
// held until no repeat byte has arrived for its hold window; the first
// window is longer to bridge the keyboard's auto-repeat delay.
const (
	firstHoldDuration  = 500 * time.Millisecond
	repeatHoldDuration = 120 * time.Millisecond
)

// tapKeys produce a down/up pair for every byte received instead of being
// held, so each auto-repeat of space fires again.
var tapKeys = [keyCount]bool{KeySpace: true, KeyEnter: true}

// Stream delivers terminal input bytes via a channel and converts them into
// key events.
type Stream struct {
	ch       chan byte
	releases [keyCount]time.Time // zero when the key is not held
	now      func() time.Time
	closed   bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r io.ByteReader) *Stream {
	s := newStream(make(chan byte, 128), time.Now)
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

func newStream(ch chan byte, now func() time.Time) *Stream {
	return &Stream{ch: ch, now: now}
}

// Poll drains all available bytes (non-blocking) and returns the resulting
// events in arrival order, followed by releases of keys whose hold window
// has expired. A closed input produces a single quit event.
func (s *Stream) Poll() []Event {
	if s.closed {
		return nil
	}

	var buf []byte
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	now := s.now()
	var events []Event
	var pressed [keyCount]bool

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			if key := arrowKey(buf[i+2]); key != KeyNone {
				events = s.press(events, key, now)
				pressed[key] = true
				i += 2
				continue
			}
		}

		switch key := byteKey(b); {
		case key != KeyNone:
			events = s.press(events, key, now)
			pressed[key] = true
		case isQuitByte(b):
			events = append(events, Quit())
		}
	}

	for key := KeyNone + 1; key < keyCount; key++ {
		if pressed[key] || s.releases[key].IsZero() {
			continue
		}
		if !now.Before(s.releases[key]) {
			s.releases[key] = time.Time{}
			events = append(events, Up(key))
		}
	}

	if s.closed {
		events = append(events, Quit())
	}
	return events
}

// press records a key byte and appends the events it produces.
func (s *Stream) press(events []Event, key Key, now time.Time) []Event {
	if tapKeys[key] {
		return append(events, Down(key), Up(key))
	}
	if s.releases[key].IsZero() {
		s.releases[key] = now.Add(firstHoldDuration)
		return append(events, Down(key))
	}
	s.releases[key] = now.Add(repeatHoldDuration)
	return events
}

// Reset forgets held keys without emitting releases.
func (s *Stream) Reset() {
	s.releases = [keyCount]time.Time{}
}

func arrowKey(code byte) Key {
	switch code {
	case 'A':
		return KeyUp
	case 'B':
		return KeyDown
	case 'C':
		return KeyRight
	case 'D':
		return KeyLeft
	}
	return KeyNone
}

func byteKey(b byte) Key {
	switch b {
	case 'a', 'A', 'h', 'H':
		return KeyLeft
	case 'd', 'D', 'l', 'L':
		return KeyRight
	case 'w', 'W', 'k', 'K':
		return KeyUp
	case 's', 'S', 'j', 'J':
		return KeyDown
	case ' ':
		return KeySpace
	case '\n', '\r':
		return KeyEnter
	}
	return KeyNone
}

// isQuitByte matches q, Ctrl+C and Ctrl+D.
func isQuitByte(b byte) bool {
	return b == 'q' || b == 'Q' || b == 0x03 || b == 0x04
}

// Ensure Stream satisfies Source.
var _ Source = (*Stream)(nil)
