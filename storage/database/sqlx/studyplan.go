package sqlxrepos

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/myousuf-code/StudyWiseAI/core"
	"github.com/myousuf-code/StudyWiseAI/core/studyplan"
)

const (
	planColumns = `id, user_id, title, description, subject, difficulty_level, estimated_duration, is_active,
	study_materials, schedule, milestones, created_at, updated_at`
	sessionColumns = `id, user_id, study_plan_id, title, duration, actual_duration, start_time, end_time, status,
	focus_score, completion_rate, notes, topics_covered`
)

// json field -> column
var planOrderings = map[string]string{
	"title":              "title",
	"subject":            "subject",
	"created_at":         "created_at",
	"updated_at":         "updated_at",
	"estimated_duration": "estimated_duration",
}

type (
	planRow struct {
		ID                int         `db:"id"`
		UserID            int         `db:"user_id"`
		Title             string      `db:"title"`
		Description       null.String `db:"description"`
		Subject           string      `db:"subject"`
		DifficultyLevel   null.String `db:"difficulty_level"`
		EstimatedDuration int         `db:"estimated_duration"`
		IsActive          bool        `db:"is_active"`
		StudyMaterials    null.JSON   `db:"study_materials"`
		Schedule          null.JSON   `db:"schedule"`
		Milestones        null.JSON   `db:"milestones"`
		CreatedAt         time.Time   `db:"created_at"`
		UpdatedAt         time.Time   `db:"updated_at"`
	}

	sessionRow struct {
		ID             int          `db:"id"`
		UserID         int          `db:"user_id"`
		StudyPlanID    null.Int     `db:"study_plan_id"`
		Title          string       `db:"title"`
		Duration       int          `db:"duration"`
		ActualDuration null.Int     `db:"actual_duration"`
		StartTime      time.Time    `db:"start_time"`
		EndTime        null.Time    `db:"end_time"`
		Status         string       `db:"status"`
		FocusScore     null.Float64 `db:"focus_score"`
		CompletionRate null.Float64 `db:"completion_rate"`
		Notes          null.String  `db:"notes"`
		TopicsCovered  null.JSON    `db:"topics_covered"`
	}
)

type studyPlanRepository struct {
	db *sqlx.DB
}

var _ studyplan.Repository = (*studyPlanRepository)(nil) // interface compliance check

func NewStudyPlanRepository(db *sqlx.DB) *studyPlanRepository {
	return &studyPlanRepository{db: db}
}

func planToRow(plan studyplan.StudyPlan) planRow {
	return planRow{
		ID:                plan.ID,
		UserID:            plan.UserID,
		Title:             plan.Title,
		Description:       null.NewString(plan.Description, plan.Description != ""),
		Subject:           plan.Subject,
		DifficultyLevel:   null.NewString(plan.DifficultyLevel, plan.DifficultyLevel != ""),
		EstimatedDuration: plan.EstimatedDuration,
		IsActive:          plan.IsActive,
		StudyMaterials:    jsonFrom(plan.StudyMaterials),
		Schedule:          jsonFrom(plan.Schedule),
		Milestones:        jsonFrom(plan.Milestones),
		CreatedAt:         plan.CreatedAt.UTC(),
		UpdatedAt:         plan.UpdatedAt.UTC(),
	}
}

func planFromRow(row planRow) studyplan.StudyPlan {
	return studyplan.StudyPlan{
		ID:                row.ID,
		UserID:            row.UserID,
		Title:             row.Title,
		Description:       row.Description.String,
		Subject:           row.Subject,
		DifficultyLevel:   row.DifficultyLevel.String,
		EstimatedDuration: row.EstimatedDuration,
		IsActive:          row.IsActive,
		StudyMaterials:    rawFrom(row.StudyMaterials),
		Schedule:          rawFrom(row.Schedule),
		Milestones:        rawFrom(row.Milestones),
		CreatedAt:         row.CreatedAt.UTC(),
		UpdatedAt:         row.UpdatedAt.UTC(),
	}
}

func sessionToRow(sess studyplan.Session) (sessionRow, error) {
	row := sessionRow{
		ID:             sess.ID,
		UserID:         sess.UserID,
		StudyPlanID:    nullIntFrom(sess.StudyPlanID),
		Title:          sess.Title,
		Duration:       sess.Duration,
		ActualDuration: nullIntFrom(sess.ActualDuration),
		StartTime:      sess.StartTime.UTC(),
		EndTime:        null.TimeFromPtr(sess.EndTime),
		Status:         sess.Status,
		FocusScore:     null.Float64FromPtr(sess.FocusScore),
		CompletionRate: null.Float64FromPtr(sess.CompletionRate),
		Notes:          null.NewString(sess.Notes, sess.Notes != ""),
	}
	if sess.TopicsCovered != nil {
		b, err := json.Marshal(sess.TopicsCovered)
		if err != nil {
			return sessionRow{}, errors.Wrap(err, "marshalling topics")
		}
		row.TopicsCovered = null.JSONFrom(b)
	}
	return row, nil
}

func sessionFromRow(row sessionRow) (studyplan.Session, error) {
	sess := studyplan.Session{
		ID:             row.ID,
		UserID:         row.UserID,
		StudyPlanID:    intPtr(row.StudyPlanID),
		Title:          row.Title,
		Duration:       row.Duration,
		ActualDuration: intPtr(row.ActualDuration),
		StartTime:      row.StartTime.UTC(),
		Status:         row.Status,
		FocusScore:     row.FocusScore.Ptr(),
		CompletionRate: row.CompletionRate.Ptr(),
		Notes:          row.Notes.String,
	}
	if row.EndTime.Valid {
		end := row.EndTime.Time.UTC()
		sess.EndTime = &end
	}
	if row.TopicsCovered.Valid {
		if err := json.Unmarshal(row.TopicsCovered.JSON, &sess.TopicsCovered); err != nil {
			return studyplan.Session{}, errors.Wrap(err, "unmarshalling topics")
		}
	}
	return sess, nil
}

func (repo studyPlanRepository) CreatePlan(ctx context.Context, plan studyplan.StudyPlan) (studyplan.StudyPlan, error) {
	id, err := insert(ctx, repo.db, `
		INSERT INTO study_plans (user_id, title, description, subject, difficulty_level, estimated_duration,
			is_active, study_materials, schedule, milestones, created_at, updated_at)
		VALUES (:user_id, :title, :description, :subject, :difficulty_level, :estimated_duration,
			:is_active, :study_materials, :schedule, :milestones, :created_at, :updated_at)
		RETURNING id`, planToRow(plan))
	if err != nil {
		return studyplan.StudyPlan{}, errors.Wrap(err, "inserting study plan")
	}
	plan.ID = id
	return plan, nil
}

func (repo studyPlanRepository) GetPlan(ctx context.Context, userID, id int) (studyplan.StudyPlan, error) {
	var row planRow
	err := repo.db.GetContext(ctx, &row,
		`SELECT `+planColumns+` FROM study_plans WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return studyplan.StudyPlan{}, trapNoRowsErr(err, studyplan.ErrNotFound, "finding study plan")
	}
	return planFromRow(row), nil
}

func (repo studyPlanRepository) QueryPlans(ctx context.Context, userID int, activeOnly bool, ordering []core.DBOrdering) ([]studyplan.StudyPlan, error) {
	q := `SELECT ` + planColumns + ` FROM study_plans WHERE user_id = $1`
	if activeOnly {
		q += ` AND is_active`
	}
	q += ` ORDER BY ` + core.OrderByClause(ordering, planOrderings, "created_at DESC") + `, id DESC`

	var rows []planRow
	if err := repo.db.SelectContext(ctx, &rows, q, userID); err != nil {
		return nil, errors.Wrap(err, "querying study plans")
	}
	plans := make([]studyplan.StudyPlan, 0, len(rows))
	for _, row := range rows {
		plans = append(plans, planFromRow(row))
	}
	return plans, nil
}

func (repo studyPlanRepository) UpdatePlan(ctx context.Context, plan studyplan.StudyPlan) (studyplan.StudyPlan, error) {
	err := update(ctx, repo.db, `
		UPDATE study_plans SET title = :title, description = :description, subject = :subject,
			difficulty_level = :difficulty_level, estimated_duration = :estimated_duration, is_active = :is_active,
			study_materials = :study_materials, schedule = :schedule, milestones = :milestones,
			updated_at = :updated_at
		WHERE id = :id AND user_id = :user_id`, planToRow(plan), studyplan.ErrNotFound)
	if err != nil {
		return studyplan.StudyPlan{}, errors.Wrap(err, "updating study plan")
	}
	return plan, nil
}

func (repo studyPlanRepository) CreateSession(ctx context.Context, sess studyplan.Session) (studyplan.Session, error) {
	row, err := sessionToRow(sess)
	if err != nil {
		return studyplan.Session{}, err
	}
	id, err := insert(ctx, repo.db, `
		INSERT INTO study_sessions (user_id, study_plan_id, title, duration, actual_duration, start_time, end_time,
			status, focus_score, completion_rate, notes, topics_covered)
		VALUES (:user_id, :study_plan_id, :title, :duration, :actual_duration, :start_time, :end_time,
			:status, :focus_score, :completion_rate, :notes, :topics_covered)
		RETURNING id`, row)
	if err != nil {
		return studyplan.Session{}, errors.Wrap(err, "inserting study session")
	}
	sess.ID = id
	return sess, nil
}

func (repo studyPlanRepository) GetSession(ctx context.Context, userID, id int) (studyplan.Session, error) {
	var row sessionRow
	err := repo.db.GetContext(ctx, &row,
		`SELECT `+sessionColumns+` FROM study_sessions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return studyplan.Session{}, trapNoRowsErr(err, studyplan.ErrSessionNotFound, "finding study session")
	}
	return sessionFromRow(row)
}

func (repo studyPlanRepository) QuerySessions(ctx context.Context, planID int) ([]studyplan.Session, error) {
	var rows []sessionRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT `+sessionColumns+` FROM study_sessions WHERE study_plan_id = $1 ORDER BY start_time DESC, id`, planID)
	if err != nil {
		return nil, errors.Wrap(err, "querying study sessions")
	}
	sessions := make([]studyplan.Session, 0, len(rows))
	for _, row := range rows {
		sess, err := sessionFromRow(row)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, nil
}

func (repo studyPlanRepository) UpdateSession(ctx context.Context, sess studyplan.Session) (studyplan.Session, error) {
	row, err := sessionToRow(sess)
	if err != nil {
		return studyplan.Session{}, err
	}
	err = update(ctx, repo.db, `
		UPDATE study_sessions SET title = :title, duration = :duration, actual_duration = :actual_duration,
			end_time = :end_time, status = :status, focus_score = :focus_score,
			completion_rate = :completion_rate, notes = :notes, topics_covered = :topics_covered
		WHERE id = :id AND user_id = :user_id`, row, studyplan.ErrSessionNotFound)
	if err != nil {
		return studyplan.Session{}, errors.Wrap(err, "updating study session")
	}
	return sess, nil
}
