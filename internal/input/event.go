// Package input turns raw key activity into a per-frame queue of discrete
// events: key down, key up and quit.
package input

// Key identifies a game key.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeySpace
	KeyEnter
	keyCount
)

var keyNames = [keyCount]string{"none", "left", "right", "up", "down", "space", "enter"}

func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return "unknown"
	}
	return keyNames[k]
}

// EventType distinguishes presses, releases and the quit request.
type EventType int

const (
	EventKeyDown EventType = iota
	EventKeyUp
	EventQuit
)

// Event is a single input occurrence. Key is KeyNone for EventQuit.
type Event struct {
	Type EventType
	Key  Key
}

// Down returns a key-down event.
func Down(k Key) Event { return Event{Type: EventKeyDown, Key: k} }

// Up returns a key-up event.
func Up(k Key) Event { return Event{Type: EventKeyUp, Key: k} }

// Quit returns a quit request.
func Quit() Event { return Event{Type: EventQuit} }

// Source delivers the events that arrived since the previous call.
// Poll never blocks.
type Source interface {
	Poll() []Event
}

// Queue is a Source fed explicitly with Push. The zero value is ready to use.
type Queue struct {
	pending []Event
}

// Push appends events to be returned by the next Poll.
func (q *Queue) Push(events ...Event) {
	q.pending = append(q.pending, events...)
}

// Poll returns and clears the queued events.
func (q *Queue) Poll() []Event {
	if len(q.pending) == 0 {
		return nil
	}
	out := q.pending
	q.pending = nil
	return out
}

// Ensure Queue satisfies Source.
var _ Source = (*Queue)(nil)
