package inmemdb

import (
	"context"
	"sort"

	"github.com/myousuf-code/StudyWiseAI/core/assistant"
)

type chatRepository struct {
	db *table[assistant.ChatMessage]
}

var _ assistant.Repository = (*chatRepository)(nil)

func NewChatRepository(db *DB) *chatRepository {
	return &chatRepository{db: db.chat}
}

func (repo *chatRepository) CreateMessage(_ context.Context, msg assistant.ChatMessage) (assistant.ChatMessage, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	msg.ID = repo.db.nextPK()
	repo.db.rows[msg.ID] = &msg
	return msg, nil
}

func (repo *chatRepository) QueryMessages(_ context.Context, userID, limit int) ([]assistant.ChatMessage, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	msgs := repo.db.filter(func(m *assistant.ChatMessage) bool { return m.UserID == userID })
	// latest first, ties broken by insertion order
	sort.SliceStable(msgs, func(i, j int) bool {
		if msgs[i].Timestamp.Equal(msgs[j].Timestamp) {
			return msgs[i].ID > msgs[j].ID
		}
		return msgs[i].Timestamp.After(msgs[j].Timestamp)
	})
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[:limit]
	}
	return msgs, nil
}
