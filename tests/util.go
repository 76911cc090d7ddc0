package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/myousuf-code/StudyWiseAI/core/progress"
	"github.com/myousuf-code/StudyWiseAI/core/user"
)

// CreateUser stores an active user. An empty pwd leaves the password unset.
func CreateUser(t *testing.T, repo user.Repository, fullName, uname, email, pwd string, createdAt ...time.Time) user.User {
	t.Helper()
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		FullName:  fullName,
		Username:  uname,
		Email:     email,
		IsActive:  true,
		Timezone:  user.DefaultTimezone,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

// CreateRecord stores a progress record dated `date`.
func CreateRecord(t *testing.T, repo progress.Repository, userID int, subject string, minutes int, date time.Time, accuracy ...float64) progress.Record {
	t.Helper()
	rec := progress.Record{
		UserID:            userID,
		Date:              date.UTC(),
		Subject:           subject,
		Topic:             subject + " basics",
		TimeSpent:         minutes,
		SessionsCompleted: 1,
		DifficultyLevel:   "beginner",
	}
	if len(accuracy) > 0 {
		rec.AccuracyScore = &accuracy[0]
	}
	rec, err := repo.CreateRecord(context.Background(), rec)
	if err != nil {
		t.Fatalf("CreateRecord() failed: %v", err)
	}
	return rec
}
