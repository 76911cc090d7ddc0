package inmemdb

import (
	"context"
	"sort"
	"time"

	"github.com/myousuf-code/StudyWiseAI/core/reminder"
)

type reminderRepository struct {
	db *table[reminder.Reminder]
}

var _ reminder.Repository = (*reminderRepository)(nil)

func NewReminderRepository(db *DB) *reminderRepository {
	return &reminderRepository{db: db.reminder}
}

func (repo *reminderRepository) CreateReminder(_ context.Context, r reminder.Reminder) (reminder.Reminder, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	r.ID = repo.db.nextPK()
	repo.db.rows[r.ID] = &r
	return r, nil
}

func (repo *reminderRepository) GetReminder(_ context.Context, userID, id int) (reminder.Reminder, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if r, ok := repo.db.rows[id]; ok && r.UserID == userID {
		return *r, nil
	}
	return reminder.Reminder{}, reminder.ErrNotFound
}

func (repo *reminderRepository) QueryReminders(_ context.Context, userID int, filter reminder.QueryFilter) ([]reminder.Reminder, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	reminders := repo.db.filter(func(r *reminder.Reminder) bool {
		return r.UserID == userID &&
			(filter.After.IsZero() || r.ScheduledTime.After(filter.After)) &&
			(filter.Before.IsZero() || !r.ScheduledTime.After(filter.Before)) &&
			(!filter.UnsentOnly || !r.IsSent)
	})
	sortBySchedule(reminders)
	return reminders, nil
}

func (repo *reminderRepository) UpdateReminder(_ context.Context, r reminder.Reminder) (reminder.Reminder, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.rows[r.ID]; !ok {
		return reminder.Reminder{}, reminder.ErrNotFound
	}
	repo.db.rows[r.ID] = &r
	return r, nil
}

func (repo *reminderRepository) DeleteReminder(_ context.Context, userID, id int) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if r, ok := repo.db.rows[id]; !ok || r.UserID != userID {
		return reminder.ErrNotFound
	}
	delete(repo.db.rows, id)
	return nil
}

func (repo *reminderRepository) QueryDueReminders(_ context.Context, now time.Time, limit int) ([]reminder.Reminder, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	reminders := repo.db.filter(func(r *reminder.Reminder) bool {
		return !r.IsSent && !r.ScheduledTime.After(now)
	})
	sortBySchedule(reminders)
	if limit > 0 && len(reminders) > limit {
		reminders = reminders[:limit]
	}
	return reminders, nil
}

func (repo *reminderRepository) MarkSent(_ context.Context, id int) (bool, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	r, ok := repo.db.rows[id]
	if !ok {
		return false, reminder.ErrNotFound
	}
	if r.IsSent {
		return false, nil
	}
	r.IsSent = true
	return true, nil
}

func sortBySchedule(reminders []reminder.Reminder) {
	sort.SliceStable(reminders, func(i, j int) bool {
		return reminders[i].ScheduledTime.Before(reminders[j].ScheduledTime)
	})
}
