package echoapi

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myousuf-code/StudyWiseAI/core/reminder"
	"github.com/myousuf-code/StudyWiseAI/tests"
)

func createReminder(t *testing.T, app testApp, token, title string, at time.Time) reminder.Reminder {
	t.Helper()
	rec := app.do(t, http.MethodPost, "/api/reminders", token, reminder.NewReminder{
		Title:         title,
		Message:       "Open your notes",
		ReminderType:  reminder.TypeReview,
		ScheduledTime: at,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var r reminder.Reminder
	unmarshal(t, rec, &r)
	return r
}

func Test_reminderApi_crud(t *testing.T) {
	app := setup(t)
	_, token := app.createUser(t, "paul")
	_, otherToken := app.createUser(t, "quinn")

	now := time.Now().UTC()
	later := createReminder(t, app, token, "Later", now.Add(48*time.Hour))
	soon := createReminder(t, app, token, "Soon", now.Add(2*time.Hour))
	assert.False(t, soon.IsSent)
	assert.Equal(t, reminder.TypeReview, soon.ReminderType)
	detail := fmt.Sprintf("/api/reminders/%d", soon.ID)

	tests := []httpTest{
		{
			name:     "past time",
			method:   http.MethodPost,
			path:     "/api/reminders",
			body:     marchallObj(t, reminder.NewReminder{Title: "Past", ReminderType: "custom", ScheduledTime: now.Add(-time.Hour)}),
			token:    token,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "Scheduled time must be in the future"}),
		},
		{
			name:     "recurring without pattern",
			method:   http.MethodPost,
			path:     "/api/reminders",
			body:     marchallObj(t, reminder.NewReminder{Title: "Daily", ReminderType: "custom", ScheduledTime: now.Add(time.Hour), IsRecurring: true}),
			token:    token,
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"recurrence_pattern":"Recurring reminders need a recurrence pattern"}`),
		},
		{
			name:     "unknown type",
			method:   http.MethodPost,
			path:     "/api/reminders",
			body:     marchallObj(t, reminder.NewReminder{Title: "Odd", ReminderType: "nap", ScheduledTime: now.Add(time.Hour)}),
			token:    token,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "list soonest first",
			method:   http.MethodGet,
			path:     "/api/reminders",
			token:    token,
			wantCode: http.StatusOK,
			wantData: marchallObj(t, []reminder.Reminder{soon, later}),
		},
		{
			name:     "other user",
			method:   http.MethodGet,
			path:     detail,
			token:    otherToken,
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "Reminder not found"}),
		},
		{
			name:     "retrieve",
			method:   http.MethodGet,
			path:     detail,
			token:    token,
			wantCode: http.StatusOK,
			wantData: marchallObj(t, soon),
		},
	}
	runHttpTests(t, app, tests)

	t.Run("upcoming", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/api/reminders/upcoming", token)
		require.Equal(t, http.StatusOK, rec.Code)
		var upcoming []reminder.Upcoming
		unmarshal(t, rec, &upcoming)
		require.Len(t, upcoming, 1)
		assert.Equal(t, soon.ID, upcoming[0].ID)
		assert.Regexp(t, `^1:59:\d\d$`, upcoming[0].TimeUntil)

		rec = app.do(t, http.MethodGet, "/api/reminders/upcoming?hours=72", token)
		require.Equal(t, http.StatusOK, rec.Code)
		unmarshal(t, rec, &upcoming)
		require.Len(t, upcoming, 2)
		assert.Regexp(t, `^1 day, 23:59:\d\d$`, upcoming[1].TimeUntil)
	})

	t.Run("update", func(t *testing.T) {
		rec := app.do(t, http.MethodPut, detail, token, map[string]interface{}{
			"title":              "Sooner",
			"is_recurring":       true,
			"recurrence_pattern": "weekly",
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var got reminder.Reminder
		unmarshal(t, rec, &got)
		assert.Equal(t, "Sooner", got.Title)
		assert.True(t, got.IsRecurring)
		assert.Equal(t, reminder.PatternWeekly, got.RecurrencePattern)

		rec = app.do(t, http.MethodPut, detail, token, map[string]interface{}{"recurrence_pattern": "hourly"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("delete", func(t *testing.T) {
		rec := app.do(t, http.MethodDelete, detail, otherToken)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = app.do(t, http.MethodDelete, detail, token)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"Reminder deleted successfully"}`, rec.Body.String())

		rec = app.do(t, http.MethodGet, detail, token)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func Test_reminderApi_shortcuts(t *testing.T) {
	app := setup(t)
	_, token := app.createUser(t, "rita")

	t.Run("study session", func(t *testing.T) {
		start := time.Now().UTC().Add(time.Hour).Truncate(time.Second)
		rec := app.do(t, http.MethodPost, "/api/reminders/study-session", token, reminder.StudySessionReminder{
			Title:           "Organic chemistry",
			DurationMinutes: 50,
			StartTime:       start,
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var res struct {
			Message      string    `json:"message"`
			ReminderID   int       `json:"reminder_id"`
			ReminderTime time.Time `json:"reminder_time"`
		}
		unmarshal(t, rec, &res)
		assert.Equal(t, "Study session reminder created", res.Message)
		assert.True(t, start.Add(-10*time.Minute).Equal(res.ReminderTime))

		rec = app.do(t, http.MethodGet, fmt.Sprintf("/api/reminders/%d", res.ReminderID), token)
		require.Equal(t, http.StatusOK, rec.Code)
		var r reminder.Reminder
		unmarshal(t, rec, &r)
		assert.Equal(t, "Study Session: Organic chemistry", r.Title)
		assert.Equal(t, reminder.TypeStudySession, r.ReminderType)
		assert.Equal(t, "Your 50-minute study session 'Organic chemistry' starts in 10 minutes!", r.Message)

		rec = app.do(t, http.MethodPost, "/api/reminders/study-session", token, reminder.StudySessionReminder{
			Title:           "Too late",
			DurationMinutes: 50,
			StartTime:       time.Now().UTC().Add(-time.Minute),
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("break", func(t *testing.T) {
		before := time.Now().UTC()
		rec := app.do(t, http.MethodPost, "/api/reminders/break-reminder", token, reminder.BreakReminder{StudyDuration: 25})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var res struct {
			Message   string    `json:"message"`
			BreakTime time.Time `json:"break_time"`
		}
		unmarshal(t, rec, &res)
		assert.Equal(t, "Break reminder created", res.Message)
		assert.WithinDuration(t, before.Add(25*time.Minute), res.BreakTime, 5*time.Second)

		rec = app.do(t, http.MethodPost, "/api/reminders/break-reminder", token, map[string]int{"study_duration": 0})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func Test_reminderApi_smartRecommendations(t *testing.T) {
	app := setup(t)
	usr, token := app.createUser(t, "sam")

	rec := app.do(t, http.MethodPost, "/api/reminders/smart-recommendations", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"No study history available for smart recommendations","reminders":[]}`, rec.Body.String())

	now := time.Now().UTC()
	testutil.CreateRecord(t, app.progRepo, usr.ID, "History", 30, now.AddDate(0, 0, -5))
	testutil.CreateRecord(t, app.progRepo, usr.ID, "History", 30, now.AddDate(0, 0, -6))

	rec = app.do(t, http.MethodPost, "/api/reminders/smart-recommendations", token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res reminder.Recommendations
	unmarshal(t, rec, &res)
	assert.Equal(t, "Created 2 smart reminders", res.Message)
	require.Len(t, res.Reminders, 2)

	daily := res.Reminders[0]
	assert.Equal(t, "Daily Study Time", daily.Title)
	assert.True(t, daily.IsRecurring)
	assert.Equal(t, reminder.PatternDaily, daily.RecurrencePattern)
	assert.Equal(t, now.Hour(), daily.ScheduledTime.Hour())
	assert.Equal(t, usr.ID, daily.UserID)

	review := res.Reminders[1]
	assert.Equal(t, "Review History", review.Title)
	assert.Equal(t, "It's been 5 days since you studied History. Time for a review session!", review.Message)
}
