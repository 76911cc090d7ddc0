package inmemdb

import (
	"context"
	"sort"

	"github.com/myousuf-code/StudyWiseAI/core/career"
)

type careerRepository struct {
	db *table[career.Session]
}

var _ career.Repository = (*careerRepository)(nil)

func NewCareerRepository(db *DB) *careerRepository {
	return &careerRepository{db: db.counselor}
}

func (repo *careerRepository) CreateSession(_ context.Context, sess career.Session) (career.Session, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	sess.ID = repo.db.nextPK()
	repo.db.rows[sess.ID] = &sess
	return sess, nil
}

func (repo *careerRepository) GetSession(_ context.Context, userID, id int) (career.Session, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if sess, ok := repo.db.rows[id]; ok && sess.UserID == userID {
		return *sess, nil
	}
	return career.Session{}, career.ErrNotFound
}

func (repo *careerRepository) UpdateSession(_ context.Context, sess career.Session) (career.Session, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.rows[sess.ID]; !ok {
		return career.Session{}, career.ErrNotFound
	}
	repo.db.rows[sess.ID] = &sess
	return sess, nil
}

func (repo *careerRepository) QuerySessions(_ context.Context, userID int) ([]career.Session, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	sessions := repo.db.filter(func(s *career.Session) bool { return s.UserID == userID })
	sort.SliceStable(sessions, func(i, j int) bool {
		if sessions[i].CreatedAt.Equal(sessions[j].CreatedAt) {
			return sessions[i].ID > sessions[j].ID
		}
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})
	return sessions, nil
}
