// Package inmemory provides a concurrency-safe in-process memory
// Store. Useful for tests and single-process deployments; contents are
// lost on restart.
package inmemory

import (
	"context"
	"fmt"
	"sync"

	"github.com/pushap-crossml/toolagent/memory"
)

// Store keeps remembered turns per user behind an RWMutex.
type Store struct {
	mu    sync.RWMutex
	turns map[string][]memory.Turn
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		turns: make(map[string][]memory.Turn),
	}
}

var _ memory.Store = (*Store)(nil)

// Recall returns one line per remembered turn for the user, oldest
// first.
func (s *Store) Recall(_ context.Context, userID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns := s.turns[userID]
	lines := make([]string, 0, len(turns))
	for _, turn := range turns {
		lines = append(lines, fmt.Sprintf("User asked: %s | Answer: %s", turn.UserInput, turn.Answer))
	}
	return lines, nil
}

// Persist appends a turn to the user's history.
func (s *Store) Persist(_ context.Context, userID string, turn memory.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.turns[userID] = append(s.turns[userID], turn)
	return nil
}

// Count returns the number of turns remembered for the user.
func (s *Store) Count(userID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.turns[userID])
}
