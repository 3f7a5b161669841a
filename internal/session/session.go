// Package session tracks the games running for connected SSH users so the
// server can shut them all down gracefully.
package session

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// pollInterval is how often Shutdown checks for remaining sessions.
const pollInterval = 200 * time.Millisecond

// Session is one connected player.
type Session struct {
	ID      int
	User    string
	Started time.Time

	shutdown chan struct{}
	once     sync.Once
}

// Shutdown is closed when the server asks the session to wind down.
func (s *Session) Shutdown() <-chan struct{} { return s.shutdown }

func (s *Session) notify() {
	s.once.Do(func() { close(s.shutdown) })
}

// Registry holds the active sessions.
type Registry struct {
	mu       sync.RWMutex
	sessions map[int]*Session
	nextID   int
	closing  bool
	log      *log.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *log.Logger) *Registry {
	return &Registry{
		sessions: make(map[int]*Session),
		nextID:   1,
		log:      logger,
	}
}

// Register adds a session for user. Sessions registered after Shutdown
// started are notified immediately.
func (r *Registry) Register(user string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := &Session{
		ID:       r.nextID,
		User:     user,
		Started:  time.Now(),
		shutdown: make(chan struct{}),
	}
	r.nextID++
	r.sessions[s.ID] = s
	if r.closing {
		s.notify()
	}
	r.log.Info("session started", "id", s.ID, "user", user, "active", len(r.sessions))
	return s
}

// Unregister removes a session. Unknown IDs are ignored.
func (r *Registry) Unregister(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return
	}
	delete(r.sessions, id)
	r.log.Info("session ended", "id", id, "user", s.User,
		"duration", time.Since(s.Started).Round(time.Second), "active", len(r.sessions))
}

// Len returns the number of active sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Shutdown notifies every session and waits until they have all
// unregistered or the timeout passes. It returns the number of sessions
// still active.
func (r *Registry) Shutdown(timeout time.Duration) int {
	r.mu.Lock()
	r.closing = true
	for _, s := range r.sessions {
		s.notify()
	}
	r.mu.Unlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		if remaining := r.Len(); remaining == 0 {
			return 0
		}
		select {
		case <-deadline:
			remaining := r.Len()
			r.log.Warn("sessions still active after shutdown grace", "remaining", remaining)
			return remaining
		case <-ticker.C:
		}
	}
}
