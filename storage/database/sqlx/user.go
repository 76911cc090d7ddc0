package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/myousuf-code/StudyWiseAI/core/user"
)

const userColumns = `id, email, username, full_name, is_active, learning_style, study_goals, timezone,
	password_hash, created_at, updated_at, last_login`

type userRow struct {
	ID            int         `db:"id"`
	Email         string      `db:"email"`
	Username      string      `db:"username"`
	FullName      string      `db:"full_name"`
	IsActive      bool        `db:"is_active"`
	LearningStyle null.String `db:"learning_style"`
	StudyGoals    null.String `db:"study_goals"`
	Timezone      string      `db:"timezone"`
	PasswordHash  []byte      `db:"password_hash"`
	CreatedAt     time.Time   `db:"created_at"`
	UpdatedAt     time.Time   `db:"updated_at"`
	LastLogin     null.Time   `db:"last_login"`
}

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *sqlx.DB) *userRepository {
	return &userRepository{db: db}
}

func (repo userRepository) toRow(usr user.User) userRow {
	return userRow{
		ID:            usr.ID,
		Email:         usr.Email,
		Username:      usr.Username,
		FullName:      usr.FullName,
		IsActive:      usr.IsActive,
		LearningStyle: null.NewString(usr.LearningStyle, usr.LearningStyle != ""),
		StudyGoals:    null.NewString(usr.StudyGoals, usr.StudyGoals != ""),
		Timezone:      usr.Timezone,
		PasswordHash:  usr.PasswordHash,
		CreatedAt:     usr.CreatedAt.UTC(),
		UpdatedAt:     usr.UpdatedAt.UTC(),
		LastLogin:     null.NewTime(usr.LastLogin.UTC(), !usr.LastLogin.IsZero()),
	}
}

func (repo userRepository) fromRow(row userRow) user.User {
	usr := user.User{
		ID:            row.ID,
		Email:         row.Email,
		Username:      row.Username,
		FullName:      row.FullName,
		IsActive:      row.IsActive,
		LearningStyle: row.LearningStyle.String,
		StudyGoals:    row.StudyGoals.String,
		Timezone:      row.Timezone,
		PasswordHash:  row.PasswordHash,
		CreatedAt:     row.CreatedAt.UTC(),
		UpdatedAt:     row.UpdatedAt.UTC(),
	}
	if row.LastLogin.Valid {
		usr.LastLogin = row.LastLogin.Time.UTC()
	}
	return usr
}

func (repo userRepository) CheckUniqueness(ctx context.Context, username, email string, excludedID int) error {
	var rows []userRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT `+userColumns+` FROM users WHERE (username = $1 OR email = $2) AND id <> $3 LIMIT 2`,
		username, email, excludedID,
	)
	if err != nil {
		return errors.Wrap(err, "checking user uniqueness")
	}
	for _, row := range rows {
		if row.Username == username {
			return user.ErrUsernameExists
		}
	}
	if len(rows) > 0 {
		return user.ErrEmailExists
	}
	return nil
}

func (repo userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	row := repo.toRow(usr)
	id, err := insert(ctx, repo.db, `
		INSERT INTO users (email, username, full_name, is_active, learning_style, study_goals, timezone,
			password_hash, created_at, updated_at, last_login)
		VALUES (:email, :username, :full_name, :is_active, :learning_style, :study_goals, :timezone,
			:password_hash, :created_at, :updated_at, :last_login)
		RETURNING id`, row)
	if err != nil {
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	usr.ID = id
	return usr, nil
}

func (repo userRepository) GetUserByID(ctx context.Context, id int) (user.User, error) {
	var row userRow
	if err := repo.db.GetContext(ctx, &row, `SELECT `+userColumns+` FROM users WHERE id = $1`, id); err != nil {
		return user.User{}, trapNoRowsErr(err, user.ErrNotFound, "finding user by ID")
	}
	return repo.fromRow(row), nil
}

func (repo userRepository) GetUserByUsernameOrEmail(ctx context.Context, username string) (user.User, error) {
	var row userRow
	err := repo.db.GetContext(ctx, &row,
		`SELECT `+userColumns+` FROM users WHERE username = $1 OR email = $1 LIMIT 1`, username)
	if err != nil {
		return user.User{}, trapNoRowsErr(err, user.ErrNotFound, "finding user by username or email")
	}
	return repo.fromRow(row), nil
}

func (repo userRepository) UpdateUser(ctx context.Context, usr user.User) (user.User, error) {
	err := update(ctx, repo.db, `
		UPDATE users SET email = :email, username = :username, full_name = :full_name, is_active = :is_active,
			learning_style = :learning_style, study_goals = :study_goals, timezone = :timezone,
			password_hash = :password_hash, updated_at = :updated_at, last_login = :last_login
		WHERE id = :id`, repo.toRow(usr), user.ErrNotFound)
	if err != nil {
		return user.User{}, errors.Wrap(err, "updating user")
	}
	return usr, nil
}
