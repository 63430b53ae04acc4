// Package memory defines the long-term memory collaborator used by
// conversation sessions, plus an in-memory implementation.
//
// Memory is optional: a session with a nil Store simply proceeds
// without long-term context.
package memory

import "context"

// Turn is one completed exchange worth remembering.
type Turn struct {
	UserInput string
	Answer    string
}

// Store persists conversation turns per user and recalls them as
// context for later sessions. Implementations must be safe for
// concurrent use.
type Store interface {
	// Recall returns remembered context lines for the user, oldest
	// first. An unknown user yields an empty slice, not an error.
	Recall(ctx context.Context, userID string) ([]string, error)

	// Persist records a completed turn for the user.
	Persist(ctx context.Context, userID string, turn Turn) error
}
