package assistant

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/myousuf-code/StudyWiseAI/core"
	"github.com/myousuf-code/StudyWiseAI/core/user"
)

const (
	DefaultHistoryLimit  = 20
	DefaultQuestionCount = 5
	maxHistoryLimit      = 100

	// local models do not report one
	defaultConfidence = 0.8
)

var nowFunc = time.Now // mockable

type (
	Repository interface {
		CreateMessage(ctx context.Context, msg ChatMessage) (ChatMessage, error)
		// QueryMessages returns the user's latest messages, newest first.
		QueryMessages(ctx context.Context, userID, limit int) ([]ChatMessage, error)
	}

	Service struct {
		repo   Repository
		ai     core.AIProvider
		logger core.Logger
		aiConf core.AIConfig
	}
)

func NewService(repo Repository, ai core.AIProvider, logger core.Logger, conf *core.Config) *Service {
	vala.BeginValidation().Validate(
		vala.IsNotNil(repo, "repo"),
		vala.IsNotNil(ai, "ai"),
		vala.IsNotNil(logger, "logger"),
		vala.IsNotNil(conf, "conf"),
	).CheckAndPanic()

	return &Service{
		repo:   repo,
		ai:     ai,
		logger: logger,
		aiConf: conf.AI,
	}
}

// Chat answers a study question and stores the exchange. cr is expected to be cleaned and validated.
func (svc *Service) Chat(ctx context.Context, usr user.User, cr ChatRequest) (ChatResponse, error) {
	text, err := core.CompleteText(ctx, svc.ai, svc.aiConf, studyHelpSystemPrompt, studyHelpPrompt(usr, cr.Message, cr.Context))
	if err != nil {
		return ChatResponse{}, core.NewUpstreamError("AI service error: "+err.Error(), errors.Wrap(err, "getting study help"))
	}

	var ctxData json.RawMessage
	if cr.Context != nil {
		if ctxData, err = json.Marshal(cr.Context); err != nil {
			return ChatResponse{}, errors.Wrap(err, "marshalling chat context")
		}
	}

	now := nowFunc().UTC()
	msg := ChatMessage{
		UserID:          usr.ID,
		SessionID:       uuid.New(),
		Message:         cr.Message,
		Response:        text,
		MessageType:     MessageTypeStudyHelp,
		ContextData:     ctxData,
		ConfidenceScore: defaultConfidence,
		Timestamp:       now,
	}
	if _, err := svc.repo.CreateMessage(ctx, msg); err != nil {
		return ChatResponse{}, errors.Wrap(err, "saving chat message")
	}
	return ChatResponse{Response: text, Timestamp: now, MessageType: MessageTypeStudyHelp}, nil
}

// History returns the user's latest exchanges, newest first.
func (svc *Service) History(ctx context.Context, userID, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	msgs, err := svc.repo.QueryMessages(ctx, userID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "querying chat messages")
	}

	history := make([]HistoryEntry, 0, len(msgs))
	for _, m := range msgs {
		history = append(history, HistoryEntry{
			Message:     m.Message,
			Response:    m.Response,
			Timestamp:   m.Timestamp,
			MessageType: m.MessageType,
		})
	}
	return history, nil
}

// GenerateQuiz asks the language model for multiple choice questions. qr is expected to be cleaned and validated.
func (svc *Service) GenerateQuiz(ctx context.Context, qr QuizRequest) (Quiz, error) {
	if qr.QuestionCount <= 0 {
		qr.QuestionCount = DefaultQuestionCount
	}
	text, err := core.CompleteText(ctx, svc.ai, svc.aiConf, quizSystemPrompt, quizPrompt(qr))
	if err != nil {
		return Quiz{}, core.NewUpstreamError("Failed to generate quiz", errors.Wrap(err, "generating quiz"))
	}
	return Quiz{
		Questions:     text,
		Parsed:        ParseQuiz(text),
		Topic:         qr.Topic,
		Difficulty:    qr.Difficulty,
		QuestionCount: qr.QuestionCount,
	}, nil
}
