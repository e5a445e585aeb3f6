// Package session tracks whether the surrounding multiplexer session is
// currently attached to a client or detached, running in the background.
// spec.md's design note models this as a single value shared by readers
// across the render loop and the adapters that decide whether to even
// bother producing output; a RWMutex-guarded struct is the idiomatic fit.
package session

import "sync"

// Status is the attachment state of a session.
type Status int

const (
	// Detached means no client is currently reading rendered frames;
	// the tab coordinator still processes events but adapters may skip
	// expensive render/flush work.
	Detached Status = iota
	// Attached means a client is actively reading rendered output.
	Attached
)

func (s Status) String() string {
	if s == Attached {
		return "attached"
	}
	return "detached"
}

// State is a process-wide, concurrency-safe attachment flag.
type State struct {
	mu     sync.RWMutex
	status Status
}

// New returns a State starting in the given status.
func New(initial Status) *State {
	return &State{status: initial}
}

// Status returns the current attachment status.
func (s *State) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Attach marks the session attached. Returns true if this changed the
// status.
func (s *State) Attach() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == Attached {
		return false
	}
	s.status = Attached
	return true
}

// Detach marks the session detached. Returns true if this changed the
// status.
func (s *State) Detach() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == Detached {
		return false
	}
	s.status = Detached
	return true
}

// IsAttached reports whether the session is currently attached.
func (s *State) IsAttached() bool {
	return s.Status() == Attached
}
