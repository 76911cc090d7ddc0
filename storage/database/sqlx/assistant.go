package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/myousuf-code/StudyWiseAI/core/assistant"
)

type chatRow struct {
	ID              int          `db:"id"`
	UserID          int          `db:"user_id"`
	SessionID       uuid.UUID    `db:"session_id"`
	Message         string       `db:"message"`
	Response        string       `db:"response"`
	MessageType     string       `db:"message_type"`
	ContextData     null.JSON    `db:"context_data"`
	ConfidenceScore null.Float64 `db:"confidence_score"`
	Timestamp       time.Time    `db:"timestamp"`
}

type chatRepository struct {
	db *sqlx.DB
}

var _ assistant.Repository = (*chatRepository)(nil) // interface compliance check

func NewChatRepository(db *sqlx.DB) *chatRepository {
	return &chatRepository{db: db}
}

func (repo chatRepository) CreateMessage(ctx context.Context, msg assistant.ChatMessage) (assistant.ChatMessage, error) {
	row := chatRow{
		UserID:          msg.UserID,
		SessionID:       msg.SessionID,
		Message:         msg.Message,
		Response:        msg.Response,
		MessageType:     msg.MessageType,
		ContextData:     jsonFrom(msg.ContextData),
		ConfidenceScore: null.Float64From(msg.ConfidenceScore),
		Timestamp:       msg.Timestamp.UTC(),
	}
	id, err := insert(ctx, repo.db, `
		INSERT INTO chat_messages (user_id, session_id, message, response, message_type, context_data,
			confidence_score, timestamp)
		VALUES (:user_id, :session_id, :message, :response, :message_type, :context_data,
			:confidence_score, :timestamp)
		RETURNING id`, row)
	if err != nil {
		return assistant.ChatMessage{}, errors.Wrap(err, "inserting chat message")
	}
	msg.ID = id
	return msg, nil
}

func (repo chatRepository) QueryMessages(ctx context.Context, userID, limit int) ([]assistant.ChatMessage, error) {
	var rows []chatRow
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT id, user_id, session_id, message, response, message_type, context_data, confidence_score, timestamp
		FROM chat_messages WHERE user_id = $1
		ORDER BY timestamp DESC, id DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "querying chat messages")
	}

	msgs := make([]assistant.ChatMessage, 0, len(rows))
	for _, row := range rows {
		msgs = append(msgs, assistant.ChatMessage{
			ID:              row.ID,
			UserID:          row.UserID,
			SessionID:       row.SessionID,
			Message:         row.Message,
			Response:        row.Response,
			MessageType:     row.MessageType,
			ContextData:     rawFrom(row.ContextData),
			ConfidenceScore: row.ConfidenceScore.Float64,
			Timestamp:       row.Timestamp.UTC(),
		})
	}
	return msgs, nil
}
