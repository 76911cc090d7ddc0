package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myousuf-code/StudyWiseAI/core/progress"
)

func Test_formatTimeUntil(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{d: -time.Minute, want: "0:00:00"},
		{d: 1500 * time.Millisecond, want: "0:00:01"},
		{d: 2*time.Hour + 3*time.Minute + 4*time.Second, want: "2:03:04"},
		{d: 26*time.Hour + 3*time.Minute + 4*time.Second, want: "1 day, 2:03:04"},
		{d: 72 * time.Hour, want: "3 days, 0:00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, formatTimeUntil(tt.d))
		})
	}
}

func TestReminder_Next(t *testing.T) {
	at := time.Date(2024, 1, 31, 9, 0, 0, 0, time.UTC)
	base := Reminder{ID: 3, UserID: 1, Title: "Read", ReminderType: TypeReview, ScheduledTime: at, IsSent: true, IsRecurring: true}

	tests := []struct {
		name      string
		pattern   string
		recurring bool
		now       time.Time
		want      time.Time
		wantOK    bool
	}{
		{name: "daily", pattern: PatternDaily, recurring: true, now: at, want: at.AddDate(0, 0, 1), wantOK: true},
		{name: "weekly", pattern: PatternWeekly, recurring: true, now: at, want: time.Date(2024, 2, 7, 9, 0, 0, 0, time.UTC), wantOK: true},
		{name: "monthly", pattern: PatternMonthly, recurring: true, now: at, want: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), wantOK: true},
		{name: "daily overdue", pattern: PatternDaily, recurring: true, now: at.AddDate(0, 0, 5).Add(time.Minute), want: at.AddDate(0, 0, 6), wantOK: true},
		{name: "weekly due exactly now", pattern: PatternWeekly, recurring: true, now: at.AddDate(0, 0, 7), want: at.AddDate(0, 0, 14), wantOK: true},
		{name: "monthly overdue", pattern: PatternMonthly, recurring: true, now: at.AddDate(0, 0, 45), want: at.AddDate(0, 0, 60), wantOK: true},
		{name: "unknown pattern", pattern: "hourly", recurring: true, now: at},
		{name: "not recurring", pattern: PatternDaily, now: at},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := base
			r.RecurrencePattern, r.IsRecurring = tt.pattern, tt.recurring
			next, ok := r.Next(tt.now)
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, Reminder{
				UserID:            1,
				Title:             "Read",
				ReminderType:      TypeReview,
				ScheduledTime:     tt.want,
				IsRecurring:       true,
				RecurrencePattern: tt.pattern,
			}, next)
		})
	}
}

func Test_recommend(t *testing.T) {
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)
	at := func(daysAgo, hour int) time.Time {
		return time.Date(2024, 5, 15-daysAgo, hour, 30, 0, 0, time.UTC)
	}
	records := []progress.Record{
		{Subject: "Math", Date: at(0, 19)},
		{Subject: "Math", Date: at(6, 19)},
		{Subject: "History", Date: at(5, 8)},
		{Subject: "Chemistry", Date: at(9, 8)},
		{Subject: "Physics", Date: at(2, 21)},
	}

	recs := recommend(records, now)
	require.Len(t, recs, 3)

	assert.Equal(t, Reminder{
		Title:             "Daily Study Time",
		Message:           "Time for your daily study session! You're most productive at 8:00.",
		ScheduledTime:     time.Date(2024, 5, 16, 8, 0, 0, 0, time.UTC),
		IsRecurring:       true,
		RecurrencePattern: PatternDaily,
	}, recs[0], "ties go to the earliest hour")

	assert.Equal(t, "Review Chemistry", recs[1].Title)
	assert.Equal(t, "It's been 9 days since you studied Chemistry. Time for a review session!", recs[1].Message)
	assert.Equal(t, now.Add(2*time.Hour), recs[1].ScheduledTime)
	assert.Equal(t, "Review History", recs[2].Title)
	assert.Contains(t, recs[2].Message, "It's been 5 days")
}
