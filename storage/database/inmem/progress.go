package inmemdb

import (
	"context"
	"sort"
	"time"

	"github.com/myousuf-code/StudyWiseAI/core/progress"
)

type progressRepository struct {
	db *table[progress.Record]
}

var _ progress.Repository = (*progressRepository)(nil)

func NewProgressRepository(db *DB) *progressRepository {
	return &progressRepository{db: db.record}
}

func (repo *progressRepository) CreateRecord(_ context.Context, rec progress.Record) (progress.Record, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	rec.ID = repo.db.nextPK()
	repo.db.rows[rec.ID] = &rec
	return rec, nil
}

func (repo *progressRepository) QueryRecords(_ context.Context, userID int, filter progress.QueryFilter) ([]progress.Record, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	records := repo.db.filter(func(r *progress.Record) bool {
		return r.UserID == userID &&
			(filter.Subject == "" || r.Subject == filter.Subject) &&
			(filter.Since.IsZero() || !r.Date.Before(filter.Since))
	})
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Date.Equal(records[j].Date) {
			return records[i].ID > records[j].ID
		}
		return records[i].Date.After(records[j].Date)
	})
	if filter.Limit > 0 && len(records) > filter.Limit {
		records = records[:filter.Limit]
	}
	return records, nil
}

func (repo *progressRepository) QueryStudyDays(_ context.Context, userID int) ([]time.Time, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	seen := make(map[time.Time]struct{})
	days := make([]time.Time, 0)
	for _, r := range repo.db.rows {
		if r.UserID != userID {
			continue
		}
		d := r.Date.UTC()
		day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		if _, ok := seen[day]; !ok {
			seen[day] = struct{}{}
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })
	return days, nil
}
