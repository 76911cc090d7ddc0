package sqlxrepos

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/myousuf-code/StudyWiseAI/core/career"
)

const careerColumns = `id, user_id, target_profession, initial_questions, user_responses, action_plan, plan_source,
	created_at, updated_at`

type careerRow struct {
	ID               int       `db:"id"`
	UserID           int       `db:"user_id"`
	TargetProfession string    `db:"target_profession"`
	InitialQuestions string    `db:"initial_questions"`
	UserResponses    null.JSON `db:"user_responses"`
	ActionPlan       string    `db:"action_plan"`
	PlanSource       string    `db:"plan_source"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

type careerRepository struct {
	db *sqlx.DB
}

var _ career.Repository = (*careerRepository)(nil) // interface compliance check

func NewCareerRepository(db *sqlx.DB) *careerRepository {
	return &careerRepository{db: db}
}

func careerToRow(sess career.Session) (careerRow, error) {
	row := careerRow{
		ID:               sess.ID,
		UserID:           sess.UserID,
		TargetProfession: sess.TargetProfession,
		InitialQuestions: sess.InitialQuestions,
		ActionPlan:       sess.ActionPlan,
		PlanSource:       sess.PlanSource,
		CreatedAt:        sess.CreatedAt.UTC(),
		UpdatedAt:        sess.UpdatedAt.UTC(),
	}
	if sess.UserResponses != nil {
		b, err := json.Marshal(sess.UserResponses)
		if err != nil {
			return careerRow{}, errors.Wrap(err, "marshalling user responses")
		}
		row.UserResponses = null.JSONFrom(b)
	}
	return row, nil
}

func careerFromRow(row careerRow) (career.Session, error) {
	sess := career.Session{
		ID:               row.ID,
		UserID:           row.UserID,
		TargetProfession: row.TargetProfession,
		InitialQuestions: row.InitialQuestions,
		UserResponses:    []string{},
		ActionPlan:       row.ActionPlan,
		PlanSource:       row.PlanSource,
		CreatedAt:        row.CreatedAt.UTC(),
		UpdatedAt:        row.UpdatedAt.UTC(),
	}
	if row.UserResponses.Valid {
		if err := json.Unmarshal(row.UserResponses.JSON, &sess.UserResponses); err != nil {
			return career.Session{}, errors.Wrap(err, "unmarshalling user responses")
		}
	}
	return sess, nil
}

func (repo careerRepository) CreateSession(ctx context.Context, sess career.Session) (career.Session, error) {
	row, err := careerToRow(sess)
	if err != nil {
		return career.Session{}, err
	}
	id, err := insert(ctx, repo.db, `
		INSERT INTO career_counseling_sessions (user_id, target_profession, initial_questions, user_responses,
			action_plan, plan_source, created_at, updated_at)
		VALUES (:user_id, :target_profession, :initial_questions, :user_responses,
			:action_plan, :plan_source, :created_at, :updated_at)
		RETURNING id`, row)
	if err != nil {
		return career.Session{}, errors.Wrap(err, "inserting career session")
	}
	sess.ID = id
	return sess, nil
}

func (repo careerRepository) GetSession(ctx context.Context, userID, id int) (career.Session, error) {
	var row careerRow
	err := repo.db.GetContext(ctx, &row,
		`SELECT `+careerColumns+` FROM career_counseling_sessions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return career.Session{}, trapNoRowsErr(err, career.ErrNotFound, "finding career session")
	}
	return careerFromRow(row)
}

func (repo careerRepository) UpdateSession(ctx context.Context, sess career.Session) (career.Session, error) {
	row, err := careerToRow(sess)
	if err != nil {
		return career.Session{}, err
	}
	err = update(ctx, repo.db, `
		UPDATE career_counseling_sessions SET user_responses = :user_responses, action_plan = :action_plan,
			plan_source = :plan_source, updated_at = :updated_at
		WHERE id = :id AND user_id = :user_id`, row, career.ErrNotFound)
	if err != nil {
		return career.Session{}, errors.Wrap(err, "updating career session")
	}
	return sess, nil
}

func (repo careerRepository) QuerySessions(ctx context.Context, userID int) ([]career.Session, error) {
	var rows []careerRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT `+careerColumns+` FROM career_counseling_sessions WHERE user_id = $1 ORDER BY created_at DESC, id DESC`,
		userID)
	if err != nil {
		return nil, errors.Wrap(err, "querying career sessions")
	}
	sessions := make([]career.Session, 0, len(rows))
	for _, row := range rows {
		sess, err := careerFromRow(row)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, nil
}
