package loop

// State is the game phase.
type State int

const (
	StateMenu     State = iota // Title screen
	StatePlaying               // Active gameplay
	StateGameOver              // Short pause after losing
	StateShutdown              // Host is shutting down, notice on screen
	StateQuit                  // Terminal; the frontend exits
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "gameover"
	case StateShutdown:
		return "shutdown"
	case StateQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Score holds the counters of one play-through.
type Score struct {
	Hits   int // Rocks destroyed by missiles
	Missed int // Rocks that fell past the bottom edge
}
