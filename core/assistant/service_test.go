package assistant_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myousuf-code/StudyWiseAI/core"
	"github.com/myousuf-code/StudyWiseAI/core/assistant"
	"github.com/myousuf-code/StudyWiseAI/core/user"
	aisvc "github.com/myousuf-code/StudyWiseAI/services/ai"
	logsvc "github.com/myousuf-code/StudyWiseAI/services/logger"
	inmemdb "github.com/myousuf-code/StudyWiseAI/storage/database/inmem"
)

func newService() (*assistant.Service, assistant.Repository, *aisvc.MockProvider) {
	ai := aisvc.NewMockProvider(nil)
	repo := inmemdb.NewChatRepository(inmemdb.Open())
	return assistant.NewService(repo, ai, logsvc.NewNopLogger(), core.NewTestConfig()), repo, ai
}

func TestService_Chat(t *testing.T) {
	svc, repo, ai := newService()
	ctx := context.Background()
	usr := user.User{ID: 1}

	res, err := svc.Chat(ctx, usr, assistant.ChatRequest{Message: "What is an integral?", Context: map[string]interface{}{"current_topic": "Calculus"}})
	require.NoError(t, err)
	assert.Equal(t, "This is a mock answer to: Currently studying: Calculus", res.Response)
	assert.Equal(t, assistant.MessageTypeStudyHelp, res.MessageType)

	msgs, err := repo.QueryMessages(ctx, usr.ID, 10)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.JSONEq(t, `{"current_topic":"Calculus"}`, string(msgs[0].ContextData))
	assert.NotEmpty(t, msgs[0].SessionID.String())
	assert.Equal(t, 0.8, msgs[0].ConfidenceScore)
	assert.Equal(t, res.Timestamp, msgs[0].Timestamp)

	t.Run("no context stays null", func(t *testing.T) {
		_, err := svc.Chat(ctx, usr, assistant.ChatRequest{Message: "Why?"})
		require.NoError(t, err)
		msgs, err := repo.QueryMessages(ctx, usr.ID, 1)
		require.NoError(t, err)
		assert.Nil(t, msgs[0].ContextData)
	})

	t.Run("failure stores nothing", func(t *testing.T) {
		ai.SetFunc(func(context.Context, core.CompletionRequest) (string, error) { return "", errors.New("model offline") })
		_, err := svc.Chat(ctx, usr, assistant.ChatRequest{Message: "Hello?"})
		var upErr *core.UpstreamError
		require.True(t, errors.As(err, &upErr))
		assert.Equal(t, "AI service error: model offline", upErr.Message)

		msgs, err := repo.QueryMessages(ctx, usr.ID, 10)
		require.NoError(t, err)
		assert.Len(t, msgs, 2)
	})
}

func TestService_History(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	for _, q := range []string{"first", "second", "third"} {
		_, err := svc.Chat(ctx, user.User{ID: 1}, assistant.ChatRequest{Message: q})
		require.NoError(t, err)
	}
	_, err := svc.Chat(ctx, user.User{ID: 2}, assistant.ChatRequest{Message: "other"})
	require.NoError(t, err)

	tests := []struct {
		limit int
		want  []string
	}{
		{limit: 0, want: []string{"third", "second", "first"}},
		{limit: 2, want: []string{"third", "second"}},
		{limit: 1000, want: []string{"third", "second", "first"}},
	}
	for _, tt := range tests {
		history, err := svc.History(ctx, 1, tt.limit)
		require.NoError(t, err)
		got := make([]string, 0, len(history))
		for _, h := range history {
			got = append(got, h.Message)
			assert.Equal(t, "This is a mock answer to: Student Question: "+h.Message, h.Response)
		}
		assert.Equal(t, tt.want, got, "limit %d", tt.limit)
	}
}

func TestService_GenerateQuiz(t *testing.T) {
	svc, _, ai := newService()
	ctx := context.Background()
	quizText := "Question 1: Unit of force?\nA) Newton\nB) Joule\nAnswer: A\nExplanation: SI unit."
	ai.SetFunc(func(context.Context, core.CompletionRequest) (string, error) { return quizText, nil })

	quiz, err := svc.GenerateQuiz(ctx, assistant.QuizRequest{Topic: "Physics", Difficulty: "beginner"})
	require.NoError(t, err)
	assert.Equal(t, quizText, quiz.Questions)
	assert.Equal(t, assistant.DefaultQuestionCount, quiz.QuestionCount)
	assert.Equal(t, "Physics", quiz.Topic)
	require.Len(t, quiz.Parsed, 1)
	assert.Equal(t, "A", quiz.Parsed[0].Answer)

	calls := ai.Calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Prompt, "Generate 5 beginner level quiz questions about Physics.")

	t.Run("failure", func(t *testing.T) {
		ai.SetFunc(func(context.Context, core.CompletionRequest) (string, error) { return " ", nil })
		_, err := svc.GenerateQuiz(ctx, assistant.QuizRequest{Topic: "Physics", Difficulty: "beginner", QuestionCount: 3})
		var upErr *core.UpstreamError
		require.True(t, errors.As(err, &upErr))
		assert.Equal(t, "Failed to generate quiz", upErr.Message)
	})
}
