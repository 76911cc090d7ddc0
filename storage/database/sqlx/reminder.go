package sqlxrepos

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/myousuf-code/StudyWiseAI/core/reminder"
)

const reminderColumns = `id, user_id, title, message, reminder_type, scheduled_time, is_sent, is_recurring,
	recurrence_pattern, created_at`

type reminderRow struct {
	ID                int         `db:"id"`
	UserID            int         `db:"user_id"`
	Title             string      `db:"title"`
	Message           string      `db:"message"`
	ReminderType      string      `db:"reminder_type"`
	ScheduledTime     time.Time   `db:"scheduled_time"`
	IsSent            bool        `db:"is_sent"`
	IsRecurring       bool        `db:"is_recurring"`
	RecurrencePattern null.String `db:"recurrence_pattern"`
	CreatedAt         time.Time   `db:"created_at"`
}

type reminderRepository struct {
	db *sqlx.DB
}

var _ reminder.Repository = (*reminderRepository)(nil) // interface compliance check

func NewReminderRepository(db *sqlx.DB) *reminderRepository {
	return &reminderRepository{db: db}
}

func reminderToRow(r reminder.Reminder) reminderRow {
	return reminderRow{
		ID:                r.ID,
		UserID:            r.UserID,
		Title:             r.Title,
		Message:           r.Message,
		ReminderType:      r.ReminderType,
		ScheduledTime:     r.ScheduledTime.UTC(),
		IsSent:            r.IsSent,
		IsRecurring:       r.IsRecurring,
		RecurrencePattern: null.NewString(r.RecurrencePattern, r.RecurrencePattern != ""),
		CreatedAt:         r.CreatedAt.UTC(),
	}
}

func reminderFromRow(row reminderRow) reminder.Reminder {
	return reminder.Reminder{
		ID:                row.ID,
		UserID:            row.UserID,
		Title:             row.Title,
		Message:           row.Message,
		ReminderType:      row.ReminderType,
		ScheduledTime:     row.ScheduledTime.UTC(),
		IsSent:            row.IsSent,
		IsRecurring:       row.IsRecurring,
		RecurrencePattern: row.RecurrencePattern.String,
		CreatedAt:         row.CreatedAt.UTC(),
	}
}

func remindersFromRows(rows []reminderRow) []reminder.Reminder {
	reminders := make([]reminder.Reminder, 0, len(rows))
	for _, row := range rows {
		reminders = append(reminders, reminderFromRow(row))
	}
	return reminders
}

func (repo reminderRepository) CreateReminder(ctx context.Context, r reminder.Reminder) (reminder.Reminder, error) {
	id, err := insert(ctx, repo.db, `
		INSERT INTO reminders (user_id, title, message, reminder_type, scheduled_time, is_sent, is_recurring,
			recurrence_pattern, created_at)
		VALUES (:user_id, :title, :message, :reminder_type, :scheduled_time, :is_sent, :is_recurring,
			:recurrence_pattern, :created_at)
		RETURNING id`, reminderToRow(r))
	if err != nil {
		return reminder.Reminder{}, errors.Wrap(err, "inserting reminder")
	}
	r.ID = id
	return r, nil
}

func (repo reminderRepository) GetReminder(ctx context.Context, userID, id int) (reminder.Reminder, error) {
	var row reminderRow
	err := repo.db.GetContext(ctx, &row,
		`SELECT `+reminderColumns+` FROM reminders WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return reminder.Reminder{}, trapNoRowsErr(err, reminder.ErrNotFound, "finding reminder")
	}
	return reminderFromRow(row), nil
}

func (repo reminderRepository) QueryReminders(ctx context.Context, userID int, filter reminder.QueryFilter) ([]reminder.Reminder, error) {
	where := []string{"user_id = $1"}
	args := []interface{}{userID}
	if !filter.After.IsZero() {
		args = append(args, filter.After.UTC())
		where = append(where, fmt.Sprintf("scheduled_time > $%d", len(args)))
	}
	if !filter.Before.IsZero() {
		args = append(args, filter.Before.UTC())
		where = append(where, fmt.Sprintf("scheduled_time <= $%d", len(args)))
	}
	if filter.UnsentOnly {
		where = append(where, "NOT is_sent")
	}

	var rows []reminderRow
	q := `SELECT ` + reminderColumns + ` FROM reminders WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY scheduled_time, id`
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying reminders")
	}
	return remindersFromRows(rows), nil
}

func (repo reminderRepository) UpdateReminder(ctx context.Context, r reminder.Reminder) (reminder.Reminder, error) {
	err := update(ctx, repo.db, `
		UPDATE reminders SET title = :title, message = :message, scheduled_time = :scheduled_time,
			is_sent = :is_sent, is_recurring = :is_recurring, recurrence_pattern = :recurrence_pattern
		WHERE id = :id AND user_id = :user_id`, reminderToRow(r), reminder.ErrNotFound)
	if err != nil {
		return reminder.Reminder{}, errors.Wrap(err, "updating reminder")
	}
	return r, nil
}

func (repo reminderRepository) DeleteReminder(ctx context.Context, userID, id int) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM reminders WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return errors.Wrap(err, "deleting reminder")
	}
	if n, err := res.RowsAffected(); err != nil {
		return errors.Wrap(err, "deleting reminder")
	} else if n == 0 {
		return reminder.ErrNotFound
	}
	return nil
}

func (repo reminderRepository) QueryDueReminders(ctx context.Context, now time.Time, limit int) ([]reminder.Reminder, error) {
	var rows []reminderRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT `+reminderColumns+` FROM reminders WHERE NOT is_sent AND scheduled_time <= $1
		ORDER BY scheduled_time, id LIMIT $2`, now.UTC(), limit)
	if err != nil {
		return nil, errors.Wrap(err, "querying due reminders")
	}
	return remindersFromRows(rows), nil
}

func (repo reminderRepository) MarkSent(ctx context.Context, id int) (bool, error) {
	res, err := repo.db.ExecContext(ctx, `UPDATE reminders SET is_sent = TRUE WHERE id = $1 AND NOT is_sent`, id)
	if err != nil {
		return false, errors.Wrap(err, "marking reminder sent")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "marking reminder sent")
	}
	return n > 0, nil
}
