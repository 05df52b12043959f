// Package session keeps the conversation history for the current document.
package session

import (
	"sync"

	"github.com/prakathesh/PDF-AIchatbot/internal/domain"
)

// Session is an append-only log of turns, cleared when a new document
// replaces the current one. Access is serialized; the service layer already
// processes one question at a time, the mutex just keeps the type safe on
// its own.
type Session struct {
	mu    sync.Mutex
	turns []domain.Turn
}

// New creates an empty session.
func New() *Session { return &Session{} }

// Append records a completed turn.
func (s *Session) Append(turn domain.Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, turn)
}

// History returns a copy of all recorded turns in order.
func (s *Session) History() []domain.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Len returns the number of recorded turns.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.turns)
}

// Clear drops all turns.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = nil
}
