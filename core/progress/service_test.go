package progress_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myousuf-code/StudyWiseAI/core"
	"github.com/myousuf-code/StudyWiseAI/core/progress"
	"github.com/myousuf-code/StudyWiseAI/core/studyplan"
	"github.com/myousuf-code/StudyWiseAI/core/user"
	aisvc "github.com/myousuf-code/StudyWiseAI/services/ai"
	logsvc "github.com/myousuf-code/StudyWiseAI/services/logger"
	inmemdb "github.com/myousuf-code/StudyWiseAI/storage/database/inmem"
	testutil "github.com/myousuf-code/StudyWiseAI/tests"
)

type fixture struct {
	svc   *progress.Service
	plans *studyplan.Service
	repo  progress.Repository
	ai    *aisvc.MockProvider
}

func setup() fixture {
	conf := core.NewTestConfig()
	logger := logsvc.NewNopLogger()
	db := inmemdb.Open()
	ai := aisvc.NewMockProvider(nil)
	repo := inmemdb.NewProgressRepository(db)
	plans := studyplan.NewService(inmemdb.NewStudyPlanRepository(db), ai, logger, conf)
	return fixture{
		svc:   progress.NewService(repo, plans, ai, logger, conf),
		plans: plans,
		repo:  repo,
		ai:    ai,
	}
}

func today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

// seed logs Math today and yesterday, Physics three days ago and Biology 40 days ago.
func (f fixture) seed(t *testing.T, userID int) {
	t.Helper()
	d := today()
	testutil.CreateRecord(t, f.repo, userID, "Math", 60, d, 80)
	testutil.CreateRecord(t, f.repo, userID, "Math", 30, d.AddDate(0, 0, -1), 60)
	testutil.CreateRecord(t, f.repo, userID, "Physics", 30, d.AddDate(0, 0, -3))
	testutil.CreateRecord(t, f.repo, userID, "Biology", 45, d.AddDate(0, 0, -40), 100)
}

func TestService_Create(t *testing.T) {
	f := setup()
	accuracy := 92.5
	rec, err := f.svc.Create(context.Background(), 1, progress.NewRecord{
		Subject: "Math", Topic: "Limits", TimeSpent: 25, SessionsCompleted: 1,
		AccuracyScore: &accuracy, DifficultyLevel: "advanced",
	})
	require.NoError(t, err)
	assert.NotZero(t, rec.ID)
	assert.Equal(t, time.UTC, rec.Date.Location())
	assert.JSONEq(t, `{"type":"basic"}`, string(rec.Recommendations))
	assert.Contains(t, string(rec.LearningPatterns), "recorded_at")

	records, err := f.svc.List(context.Background(), 1, "", 0)
	require.NoError(t, err)
	assert.Equal(t, []progress.Record{rec}, records)
}

func TestService_List(t *testing.T) {
	f := setup()
	ctx := context.Background()
	f.seed(t, 1)
	testutil.CreateRecord(t, f.repo, 2, "Math", 10, today())

	tests := []struct {
		name     string
		subject  string
		days     int
		wantMins []int
	}{
		{name: "default window", wantMins: []int{60, 30, 30}},
		{name: "two days", days: 2, wantMins: []int{60, 30}},
		{name: "subject", subject: " Physics ", days: 7, wantMins: []int{30}},
		{name: "whole history", days: 365, wantMins: []int{60, 30, 30, 45}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := f.svc.List(ctx, 1, tt.subject, tt.days)
			require.NoError(t, err)
			mins := make([]int, 0, len(records))
			for _, r := range records {
				mins = append(mins, r.TimeSpent)
			}
			assert.Equal(t, tt.wantMins, mins)
		})
	}
}

func TestService_Summary(t *testing.T) {
	f := setup()
	ctx := context.Background()

	t.Run("no data", func(t *testing.T) {
		summary, err := f.svc.Summary(ctx, 1, 30)
		require.NoError(t, err)
		assert.Equal(t, progress.Summary{SubjectsStudied: []string{}, WeeklyProgress: []progress.WeekProgress{}}, summary)
	})

	f.seed(t, 1)
	summary, err := f.svc.Summary(ctx, 1, 30)
	require.NoError(t, err)
	assert.Equal(t, 120, summary.TotalStudyTime)
	assert.Equal(t, 3, summary.TotalSessions)
	assert.Equal(t, []string{"Math", "Physics"}, summary.SubjectsStudied)
	assert.InDelta(t, 140.0/3, summary.AverageAccuracy, 1e-9)
	assert.Equal(t, 2, summary.CurrentStreak)

	var weekly int
	for _, w := range summary.WeeklyProgress {
		weekly += w.TimeSpent
	}
	assert.Equal(t, 120, weekly)

	require.NotNil(t, summary.LearningTrends)
	assert.Equal(t, progress.Trends{
		MostStudiedSubjects:  []progress.SubjectTime{{Subject: "Math", TimeSpent: 90}, {Subject: "Physics", TimeSpent: 30}},
		StudyConsistency:     75,
		AverageSessionLength: 40,
		TotalSubjects:        2,
	}, *summary.LearningTrends)
}

func TestService_Analytics(t *testing.T) {
	f := setup()
	ctx := context.Background()
	f.seed(t, 1)
	d := today()

	got, err := f.svc.Analytics(ctx, 1, "week")
	require.NoError(t, err)
	assert.Equal(t, progress.Analytics{
		DailyTime: []progress.DailyTime{
			{Date: d.AddDate(0, 0, -3).Format("2006-01-02"), Minutes: 30},
			{Date: d.AddDate(0, 0, -1).Format("2006-01-02"), Minutes: 30},
			{Date: d.Format("2006-01-02"), Minutes: 60},
		},
		SubjectDistribution: []progress.SubjectShare{
			{Subject: "Math", TimeSpent: 90, Sessions: 2},
			{Subject: "Physics", TimeSpent: 30, Sessions: 1},
		},
		AccuracyTrends: []progress.DailyAccuracy{
			{Date: d.AddDate(0, 0, -1).Format("2006-01-02"), Accuracy: 60},
			{Date: d.Format("2006-01-02"), Accuracy: 80},
		},
		Period: "week",
	}, got)

	tests := []struct {
		period     string
		wantPeriod string
		wantDays   int
	}{
		{period: "", wantPeriod: "month", wantDays: 3},
		{period: "year", wantPeriod: "year", wantDays: 4},
		{period: "decade", wantPeriod: "decade", wantDays: 3},
	}
	for _, tt := range tests {
		t.Run(tt.wantPeriod, func(t *testing.T) {
			got, err := f.svc.Analytics(ctx, 1, tt.period)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPeriod, got.Period)
			assert.Len(t, got.DailyTime, tt.wantDays)
		})
	}
}

func TestService_Insights(t *testing.T) {
	f := setup()
	ctx := context.Background()
	usr := user.User{ID: 1}

	got, err := f.svc.Insights(ctx, usr)
	require.NoError(t, err)
	assert.Equal(t, "No progress data available yet. Start studying to see insights!", got.Insights)
	assert.Zero(t, got.TotalSessions)
	assert.Empty(t, f.ai.Calls())

	f.seed(t, 1)
	f.ai.SetFunc(func(context.Context, core.CompletionRequest) (string, error) { return "Keep going!", nil })
	got, err = f.svc.Insights(ctx, usr)
	require.NoError(t, err)
	assert.Equal(t, "Keep going!", got.Insights)
	assert.Equal(t, 4, got.TotalSessions)

	calls := f.ai.Calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Prompt, "Total study time: 165 minutes")
	assert.Contains(t, calls[0].Prompt, "Subjects studied: Biology, Math, Physics")
	assert.Contains(t, calls[0].Prompt, "Learning style: Not specified")

	t.Run("failure", func(t *testing.T) {
		f.ai.SetFunc(func(context.Context, core.CompletionRequest) (string, error) {
			return "", errors.New("model offline")
		})
		_, err := f.svc.Insights(ctx, usr)
		var upErr *core.UpstreamError
		require.True(t, errors.As(err, &upErr))
		assert.Equal(t, "Failed to analyze progress", upErr.Message)
	})
}

func TestService_CompleteSession(t *testing.T) {
	f := setup()
	ctx := context.Background()
	plan, err := f.plans.Create(ctx, 1, studyplan.NewStudyPlan{Title: "Algebra", Subject: "Math", DifficultyLevel: "beginner"})
	require.NoError(t, err)

	newSession := func(t *testing.T) studyplan.Session {
		t.Helper()
		sess, err := f.plans.CreateSession(ctx, 1, plan.ID, studyplan.NewSession{Title: "Quadratics", Duration: 60})
		require.NoError(t, err)
		return sess
	}
	end := time.Now()
	actual, zero, rate := 45, 0, 90.0

	tests := []struct {
		name       string
		us         studyplan.UpdateSession
		wantRecord bool
	}{
		{name: "not completed", us: studyplan.UpdateSession{ActualDuration: &actual}},
		{name: "no actual duration", us: studyplan.UpdateSession{EndTime: &end}},
		{name: "zero actual duration", us: studyplan.UpdateSession{EndTime: &end, ActualDuration: &zero}},
		{name: "completed", us: studyplan.UpdateSession{EndTime: &end, ActualDuration: &actual, CompletionRate: &rate}, wantRecord: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := newSession(t)
			got, err := f.svc.CompleteSession(ctx, 1, sess.ID, tt.us)
			require.NoError(t, err)
			assert.Equal(t, sess.ID, got.Session.ID)
			if !tt.wantRecord {
				assert.Nil(t, got.Record)
				return
			}
			assert.Equal(t, studyplan.StatusCompleted, got.Session.Status)
			require.NotNil(t, got.Record)
			assert.Equal(t, "Math", got.Record.Subject)
			assert.Equal(t, "Quadratics", got.Record.Topic)
			assert.Equal(t, 45, got.Record.TimeSpent)
			assert.Equal(t, 1, got.Record.SessionsCompleted)
			assert.Equal(t, "intermediate", got.Record.DifficultyLevel)
			require.NotNil(t, got.Record.AccuracyScore)
			assert.Equal(t, rate, *got.Record.AccuracyScore)
		})
	}

	t.Run("other user", func(t *testing.T) {
		sess := newSession(t)
		_, err := f.svc.CompleteSession(ctx, 2, sess.ID, studyplan.UpdateSession{EndTime: &end})
		assert.True(t, core.IsNotFound(err))
	})
}
