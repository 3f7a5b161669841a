package input

import (
	"bufio"
	"reflect"
	"strings"
	"testing"
	"time"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStream() (*Stream, chan byte, *fakeClock) {
	ch := make(chan byte, 64)
	clock := &fakeClock{t: time.Unix(1000, 0)}
	return newStream(ch, clock.now), ch, clock
}

func send(ch chan byte, s string) {
	for i := 0; i < len(s); i++ {
		ch <- s[i]
	}
}

func TestPoll_NoInput(t *testing.T) {
	s, _, _ := newTestStream()
	if events := s.Poll(); len(events) != 0 {
		t.Fatalf("expected no events, got %v", events)
	}
}

func TestPoll_ArrowKeys(t *testing.T) {
	s, ch, _ := newTestStream()
	send(ch, "\x1b[D\x1b[C")

	got := s.Poll()
	want := []Event{Down(KeyLeft), Down(KeyRight)}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Poll() = %v, want %v", got, want)
	}
}

func TestPoll_HeldKeyReleasesAfterWindow(t *testing.T) {
	s, ch, clock := newTestStream()
	send(ch, "a")
	if got := s.Poll(); !reflect.DeepEqual(got, []Event{Down(KeyLeft)}) {
		t.Fatalf("first poll = %v", got)
	}

	// Auto-repeat bytes extend the hold without new key-down events.
	clock.advance(400 * time.Millisecond)
	send(ch, "a")
	if got := s.Poll(); len(got) != 0 {
		t.Fatalf("repeat byte should not emit events, got %v", got)
	}

	clock.advance(repeatHoldDuration - time.Millisecond)
	if got := s.Poll(); len(got) != 0 {
		t.Fatalf("key released too early: %v", got)
	}

	clock.advance(time.Millisecond)
	if got := s.Poll(); !reflect.DeepEqual(got, []Event{Up(KeyLeft)}) {
		t.Fatalf("expected release, got %v", got)
	}
}

func TestPoll_FirstHoldBridgesRepeatDelay(t *testing.T) {
	s, ch, clock := newTestStream()
	send(ch, "d")
	s.Poll()

	clock.advance(firstHoldDuration - time.Millisecond)
	if got := s.Poll(); len(got) != 0 {
		t.Fatalf("key released inside the first hold window: %v", got)
	}
	clock.advance(time.Millisecond)
	if got := s.Poll(); !reflect.DeepEqual(got, []Event{Up(KeyRight)}) {
		t.Fatalf("expected right release, got %v", got)
	}
}

func TestPoll_SpaceIsTapped(t *testing.T) {
	s, ch, _ := newTestStream()
	send(ch, "  ")

	got := s.Poll()
	want := []Event{Down(KeySpace), Up(KeySpace), Down(KeySpace), Up(KeySpace)}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Poll() = %v, want %v", got, want)
	}
}

func TestPoll_QuitBytes(t *testing.T) {
	for _, b := range []string{"q", "Q", "\x03", "\x04"} {
		s, ch, _ := newTestStream()
		send(ch, b)
		got := s.Poll()
		if !reflect.DeepEqual(got, []Event{Quit()}) {
			t.Errorf("byte %q: Poll() = %v, want quit", b, got)
		}
	}
}

func TestPoll_ClosedInputQuitsOnce(t *testing.T) {
	s, ch, _ := newTestStream()
	send(ch, "\r")
	close(ch)

	got := s.Poll()
	want := []Event{Down(KeyEnter), Up(KeyEnter), Quit()}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Poll() = %v, want %v", got, want)
	}
	if again := s.Poll(); len(again) != 0 {
		t.Fatalf("closed stream should stay silent, got %v", again)
	}
}

func TestStartStream_ReadsReader(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("w")))

	deadline := time.Now().Add(time.Second)
	var got []Event
	for time.Now().Before(deadline) {
		got = append(got, s.Poll()...)
		if len(got) >= 2 {
			break
		}
		time.Sleep(time.Millisecond)
	}
	if len(got) < 2 || got[0] != Down(KeyUp) || got[len(got)-1] != Quit() {
		t.Fatalf("expected up-arrow press then quit on EOF, got %v", got)
	}
}

func TestReset(t *testing.T) {
	s, ch, clock := newTestStream()
	send(ch, "a")
	s.Poll()
	s.Reset()
	clock.advance(time.Second)
	if got := s.Poll(); len(got) != 0 {
		t.Fatalf("reset stream should not release keys, got %v", got)
	}
}

func TestQueue(t *testing.T) {
	var q Queue
	if q.Poll() != nil {
		t.Fatal("empty queue should poll nil")
	}
	q.Push(Down(KeySpace), Quit())
	got := q.Poll()
	if !reflect.DeepEqual(got, []Event{Down(KeySpace), Quit()}) {
		t.Fatalf("Poll() = %v", got)
	}
	if q.Poll() != nil {
		t.Fatal("queue should be empty after poll")
	}
}

func TestKeyString(t *testing.T) {
	if KeyLeft.String() != "left" || KeyEnter.String() != "enter" || Key(99).String() != "unknown" {
		t.Fatal("unexpected key names")
	}
}
