// Package session wraps the agent loop for interactive multi-turn use:
// per-user turn bookkeeping, command short-circuiting, and optional
// long-term memory recall and persistence.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pushap-crossml/toolagent"
	"github.com/pushap-crossml/toolagent/memory"
)

// exitCommands end the session without consulting the model.
var exitCommands = map[string]bool{
	"exit": true,
	"quit": true,
	"bye":  true,
	"q":    true,
}

// Reply is the session's response to one line of user input.
type Reply struct {
	// Text is shown to the user.
	Text string

	// Command reports that the input was handled locally (an exit or
	// history command, or an empty line) without consulting the model.
	Command bool

	// Ended reports that the session is over. Further Handle calls
	// still work, but callers should stop their read loop.
	Ended bool
}

// Session drives a conversation for one user. It is not safe for
// concurrent use; one session serves one interactive stream.
type Session struct {
	loop   *toolagent.Loop
	store  memory.Store // nil disables recall and persistence
	userID string
	prompt string
	clock  func() time.Time
	logger *slog.Logger

	turns []memory.Turn
}

// Option configures a Session.
type Option func(*Session)

// WithMemory attaches a long-term store keyed by userID. Without it
// the session still works; turns are simply not remembered across
// sessions.
func WithMemory(store memory.Store, userID string) Option {
	return func(s *Session) {
		s.store = store
		s.userID = userID
	}
}

// WithSystemPrompt overrides the default system instructions.
func WithSystemPrompt(prompt string) Option {
	return func(s *Session) { s.prompt = prompt }
}

// WithClock overrides the time source used for the date-aware default
// prompt. Nil means time.Now.
func WithClock(clock func() time.Time) Option {
	return func(s *Session) { s.clock = clock }
}

// WithLogger sets the session's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// New creates a session over the given loop.
func New(loop *toolagent.Loop, opts ...Option) *Session {
	s := &Session{
		loop:   loop,
		clock:  time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	return s
}

// Turns returns the number of completed conversation turns.
func (s *Session) Turns() int {
	return len(s.turns)
}

// Handle processes one line of user input: commands short-circuit
// locally, everything else becomes a loop run. An aborted run is
// returned as an error; the session remains usable afterwards.
func (s *Session) Handle(ctx context.Context, input string) (Reply, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Reply{Text: "Please enter a message.", Command: true}, nil
	}

	switch lowered := strings.ToLower(input); {
	case exitCommands[lowered]:
		s.logger.Info("session ended by user", "turns", len(s.turns))
		return Reply{
			Text:    "Thanks for chatting! Your conversation has been saved to memory.",
			Command: true,
			Ended:   true,
		}, nil
	case lowered == "history":
		return Reply{Text: s.renderHistory(), Command: true}, nil
	}

	seed := s.seedConversation(ctx, input)

	s.logger.Info("handling turn", "turn", len(s.turns)+1, "user", s.userID)
	outcome := s.loop.Run(ctx, seed)
	if outcome.Aborted {
		return Reply{}, fmt.Errorf("turn aborted (%s): %w", outcome.Reason, outcome.Err)
	}

	turn := memory.Turn{UserInput: input, Answer: outcome.Answer}
	s.turns = append(s.turns, turn)
	s.persist(ctx, turn)

	return Reply{Text: outcome.Answer}, nil
}

// seedConversation builds the loop's starting transcript: system
// instructions, any recalled long-term memory as extra system context,
// then the user's input.
func (s *Session) seedConversation(ctx context.Context, input string) toolagent.Conversation {
	prompt := s.prompt
	if prompt == "" {
		prompt = DefaultSystemPrompt(s.clock())
	}

	conversation := toolagent.Conversation{
		{Role: toolagent.RoleSystem, Content: prompt},
	}

	if recalled := s.recall(ctx); len(recalled) > 0 {
		conversation = conversation.Append(toolagent.Message{
			Role: toolagent.RoleSystem,
			Content: "Relevant context from previous conversations:\n" +
				strings.Join(recalled, "\n"),
		})
	}

	return conversation.Append(toolagent.Message{
		Role:    toolagent.RoleUser,
		Content: input,
	})
}

// recall fetches long-term memory. Failures degrade to an empty recall
// so a broken store never blocks the conversation.
func (s *Session) recall(ctx context.Context) []string {
	if s.store == nil {
		return nil
	}
	lines, err := s.store.Recall(ctx, s.userID)
	if err != nil {
		s.logger.Warn("memory recall failed", "user", s.userID, "error", err)
		return nil
	}
	return lines
}

func (s *Session) persist(ctx context.Context, turn memory.Turn) {
	if s.store == nil {
		return
	}
	if err := s.store.Persist(ctx, s.userID, turn); err != nil {
		s.logger.Warn("memory persist failed", "user", s.userID, "error", err)
	}
}

func (s *Session) renderHistory() string {
	if len(s.turns) == 0 {
		return "No conversation turns yet in this session."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "You've had %d conversation turns in this session:\n", len(s.turns))
	for i, turn := range s.turns {
		fmt.Fprintf(&b, "%d. You: %s\n   Agent: %s\n", i+1, turn.UserInput, turn.Answer)
	}
	return strings.TrimRight(b.String(), "\n")
}
