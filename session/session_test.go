package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pushap-crossml/toolagent"
	"github.com/pushap-crossml/toolagent/internal/tt"
	"github.com/pushap-crossml/toolagent/memory"
	"github.com/pushap-crossml/toolagent/memory/inmemory"
)

func newSession(t *testing.T, model *tt.MockModel, opts ...Option) *Session {
	t.Helper()
	loop := toolagent.NewLoop(model, toolagent.NewRegistry(), toolagent.DefaultLoopConfig())
	return New(loop, opts...)
}

func TestSession_ExitCommands(t *testing.T) {
	testCases := []string{"exit", "quit", "bye", "q", "EXIT", "  Quit  "}

	for _, input := range testCases {
		t.Run(input, func(t *testing.T) {
			model := tt.NewMockModel()
			s := newSession(t, model)

			reply, err := s.Handle(context.Background(), input)

			require.NoError(t, err)
			assert.True(t, reply.Ended)
			assert.True(t, reply.Command)
			assert.Zero(t, model.Calls(), "exit must not consult the model")
		})
	}
}

func TestSession_EmptyInput(t *testing.T) {
	model := tt.NewMockModel()
	s := newSession(t, model)

	reply, err := s.Handle(context.Background(), "   ")

	require.NoError(t, err)
	assert.True(t, reply.Command)
	assert.False(t, reply.Ended)
	assert.Zero(t, model.Calls())
}

func TestSession_TurnSeedsSystemAndUserMessages(t *testing.T) {
	model := tt.NewMockModel().AddAnswer("It is 42.")
	fixed := func() time.Time { return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC) }
	s := newSession(t, model, WithClock(fixed))

	reply, err := s.Handle(context.Background(), "what is six times seven?")

	require.NoError(t, err)
	assert.Equal(t, "It is 42.", reply.Text)
	assert.False(t, reply.Command)
	assert.Equal(t, 1, s.Turns())

	require.Len(t, model.CapturedConversations, 1)
	seed := model.CapturedConversations[0]
	require.Len(t, seed, 2)
	assert.Equal(t, toolagent.RoleSystem, seed[0].Role)
	assert.Contains(t, seed[0].Content, "2024-03-15")
	assert.Equal(t, toolagent.RoleUser, seed[1].Role)
	assert.Equal(t, "what is six times seven?", seed[1].Content)
}

func TestSession_MemoryRecallAndPersist(t *testing.T) {
	store := inmemory.New()
	ctx := context.Background()
	require.NoError(t, store.Persist(ctx, "alice", memory.Turn{
		UserInput: "my favourite city is Pune", Answer: "Noted!",
	}))

	model := tt.NewMockModel().AddAnswer("Pune, as you told me.")
	s := newSession(t, model, WithMemory(store, "alice"))

	reply, err := s.Handle(ctx, "which city do I like?")

	require.NoError(t, err)
	assert.Equal(t, "Pune, as you told me.", reply.Text)

	seed := model.CapturedConversations[0]
	require.Len(t, seed, 3, "system prompt, recalled context, user input")
	assert.Equal(t, toolagent.RoleSystem, seed[1].Role)
	assert.Contains(t, seed[1].Content, "my favourite city is Pune")

	assert.Equal(t, 2, store.Count("alice"), "the new turn is persisted")
}

type failingStore struct{}

func (failingStore) Recall(context.Context, string) ([]string, error) {
	return nil, errors.New("store down")
}

func (failingStore) Persist(context.Context, string, memory.Turn) error {
	return errors.New("store down")
}

func TestSession_DegradesWithoutMemory(t *testing.T) {
	t.Run("nil store", func(t *testing.T) {
		model := tt.NewMockModel().AddAnswer("fine")
		s := newSession(t, model)

		reply, err := s.Handle(context.Background(), "hello")

		require.NoError(t, err)
		assert.Equal(t, "fine", reply.Text)
	})

	t.Run("failing store", func(t *testing.T) {
		model := tt.NewMockModel().AddAnswer("fine")
		s := newSession(t, model, WithMemory(failingStore{}, "bob"))

		reply, err := s.Handle(context.Background(), "hello")

		require.NoError(t, err, "store failures must not break the turn")
		assert.Equal(t, "fine", reply.Text)
	})
}

func TestSession_HistoryCommand(t *testing.T) {
	model := tt.NewMockModel().AddAnswer("4").AddAnswer("8")
	s := newSession(t, model)
	ctx := context.Background()

	reply, err := s.Handle(ctx, "history")
	require.NoError(t, err)
	assert.True(t, reply.Command)
	assert.Contains(t, reply.Text, "No conversation turns yet")

	_, err = s.Handle(ctx, "2+2?")
	require.NoError(t, err)
	_, err = s.Handle(ctx, "double it")
	require.NoError(t, err)

	reply, err = s.Handle(ctx, "history")
	require.NoError(t, err)
	assert.True(t, reply.Command)
	assert.Contains(t, reply.Text, "2 conversation turns")
	assert.Contains(t, reply.Text, "2+2?")
	assert.Contains(t, reply.Text, "double it")
	assert.Equal(t, 2, model.Calls(), "history must not consult the model")
}

func TestSession_AbortedRunIsAnErrorAndSessionSurvives(t *testing.T) {
	model := tt.NewMockModel().
		AddError(errors.New("provider 500")).
		AddAnswer("recovered")
	s := newSession(t, model)
	ctx := context.Background()

	_, err := s.Handle(ctx, "first try")
	require.Error(t, err)
	assert.ErrorIs(t, err, toolagent.ErrModelFailure)
	assert.Zero(t, s.Turns(), "aborted turns are not recorded")

	reply, err := s.Handle(ctx, "second try")
	require.NoError(t, err)
	assert.Equal(t, "recovered", reply.Text)
	assert.Equal(t, 1, s.Turns())
}

func TestSession_CustomSystemPrompt(t *testing.T) {
	model := tt.NewMockModel().AddAnswer("ok")
	s := newSession(t, model, WithSystemPrompt("Answer in one word."))

	_, err := s.Handle(context.Background(), "hi")

	require.NoError(t, err)
	assert.Equal(t, "Answer in one word.", model.CapturedConversations[0][0].Content)
}
