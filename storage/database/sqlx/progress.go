package sqlxrepos

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/myousuf-code/StudyWiseAI/core/progress"
)

const recordColumns = `id, user_id, date, subject, topic, time_spent, sessions_completed, accuracy_score,
	retention_score, difficulty_level, learning_patterns, recommendations`

type recordRow struct {
	ID                int          `db:"id"`
	UserID            int          `db:"user_id"`
	Date              time.Time    `db:"date"`
	Subject           string       `db:"subject"`
	Topic             string       `db:"topic"`
	TimeSpent         int          `db:"time_spent"`
	SessionsCompleted int          `db:"sessions_completed"`
	AccuracyScore     null.Float64 `db:"accuracy_score"`
	RetentionScore    null.Float64 `db:"retention_score"`
	DifficultyLevel   null.String  `db:"difficulty_level"`
	LearningPatterns  null.JSON    `db:"learning_patterns"`
	Recommendations   null.JSON    `db:"recommendations"`
}

type progressRepository struct {
	db *sqlx.DB
}

var _ progress.Repository = (*progressRepository)(nil) // interface compliance check

func NewProgressRepository(db *sqlx.DB) *progressRepository {
	return &progressRepository{db: db}
}

func recordToRow(rec progress.Record) recordRow {
	return recordRow{
		ID:                rec.ID,
		UserID:            rec.UserID,
		Date:              rec.Date.UTC(),
		Subject:           rec.Subject,
		Topic:             rec.Topic,
		TimeSpent:         rec.TimeSpent,
		SessionsCompleted: rec.SessionsCompleted,
		AccuracyScore:     null.Float64FromPtr(rec.AccuracyScore),
		RetentionScore:    null.Float64FromPtr(rec.RetentionScore),
		DifficultyLevel:   null.NewString(rec.DifficultyLevel, rec.DifficultyLevel != ""),
		LearningPatterns:  jsonFrom(rec.LearningPatterns),
		Recommendations:   jsonFrom(rec.Recommendations),
	}
}

func recordFromRow(row recordRow) progress.Record {
	return progress.Record{
		ID:                row.ID,
		UserID:            row.UserID,
		Date:              row.Date.UTC(),
		Subject:           row.Subject,
		Topic:             row.Topic,
		TimeSpent:         row.TimeSpent,
		SessionsCompleted: row.SessionsCompleted,
		AccuracyScore:     row.AccuracyScore.Ptr(),
		RetentionScore:    row.RetentionScore.Ptr(),
		DifficultyLevel:   row.DifficultyLevel.String,
		LearningPatterns:  rawFrom(row.LearningPatterns),
		Recommendations:   rawFrom(row.Recommendations),
	}
}

func (repo progressRepository) CreateRecord(ctx context.Context, rec progress.Record) (progress.Record, error) {
	id, err := insert(ctx, repo.db, `
		INSERT INTO progress_records (user_id, date, subject, topic, time_spent, sessions_completed,
			accuracy_score, retention_score, difficulty_level, learning_patterns, recommendations)
		VALUES (:user_id, :date, :subject, :topic, :time_spent, :sessions_completed,
			:accuracy_score, :retention_score, :difficulty_level, :learning_patterns, :recommendations)
		RETURNING id`, recordToRow(rec))
	if err != nil {
		return progress.Record{}, errors.Wrap(err, "inserting progress record")
	}
	rec.ID = id
	return rec, nil
}

func (repo progressRepository) QueryRecords(ctx context.Context, userID int, filter progress.QueryFilter) ([]progress.Record, error) {
	where := []string{"user_id = $1"}
	args := []interface{}{userID}
	if filter.Subject != "" {
		args = append(args, filter.Subject)
		where = append(where, fmt.Sprintf("subject = $%d", len(args)))
	}
	if !filter.Since.IsZero() {
		args = append(args, filter.Since.UTC())
		where = append(where, fmt.Sprintf("date >= $%d", len(args)))
	}
	q := `SELECT ` + recordColumns + ` FROM progress_records WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY date DESC, id DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	var rows []recordRow
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying progress records")
	}
	records := make([]progress.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, recordFromRow(row))
	}
	return records, nil
}

func (repo progressRepository) QueryStudyDays(ctx context.Context, userID int) ([]time.Time, error) {
	var days []time.Time
	err := repo.db.SelectContext(ctx, &days, `
		SELECT DISTINCT (date AT TIME ZONE 'UTC')::date AS day
		FROM progress_records WHERE user_id = $1
		ORDER BY day DESC`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "querying study days")
	}
	for i, d := range days {
		days[i] = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	}
	return days, nil
}
