package progress

import (
	"context"
	"encoding/json"
	"math"
	"sort"
	"time"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/myousuf-code/StudyWiseAI/core"
	"github.com/myousuf-code/StudyWiseAI/core/studyplan"
	"github.com/myousuf-code/StudyWiseAI/core/user"
)

const (
	DefaultDays     = 30
	DefaultPeriod   = "month"
	insightsRecords = 20
	dateLayout      = "2006-01-02"
	defaultSubject  = "General"
	day             = 24 * time.Hour
)

var (
	nowFunc = time.Now // mockable

	periodDays = map[string]int{"week": 7, "month": 30, "year": 365}
)

type (
	Repository interface {
		CreateRecord(ctx context.Context, rec Record) (Record, error)
		// QueryRecords returns the user's records matching filter, newest first.
		QueryRecords(ctx context.Context, userID int, filter QueryFilter) ([]Record, error)
		// QueryStudyDays returns the distinct UTC dates (at midnight) the user logged progress on, latest first.
		QueryStudyDays(ctx context.Context, userID int) ([]time.Time, error)
	}

	// SessionStore is the study plan side of session completion.
	SessionStore interface {
		Get(ctx context.Context, userID, id int) (studyplan.StudyPlan, error)
		UpdateSession(ctx context.Context, userID, id int, us studyplan.UpdateSession) (studyplan.Session, error)
	}

	Service struct {
		repo     Repository
		sessions SessionStore
		ai       core.AIProvider
		logger   core.Logger
		aiConf   core.AIConfig
	}
)

func NewService(repo Repository, sessions SessionStore, ai core.AIProvider, logger core.Logger, conf *core.Config) *Service {
	vala.BeginValidation().Validate(
		vala.IsNotNil(repo, "repo"),
		vala.IsNotNil(sessions, "sessions"),
		vala.IsNotNil(ai, "ai"),
		vala.IsNotNil(logger, "logger"),
		vala.IsNotNil(conf, "conf"),
	).CheckAndPanic()

	return &Service{
		repo:     repo,
		sessions: sessions,
		ai:       ai,
		logger:   logger,
		aiConf:   conf.AI,
	}
}

// Create logs progress dated now. nr is expected to be cleaned and validated.
func (svc *Service) Create(ctx context.Context, userID int, nr NewRecord) (Record, error) {
	now := nowFunc().UTC()
	rec := Record{
		UserID:            userID,
		Date:              now,
		Subject:           nr.Subject,
		Topic:             nr.Topic,
		TimeSpent:         nr.TimeSpent,
		SessionsCompleted: nr.SessionsCompleted,
		AccuracyScore:     nr.AccuracyScore,
		DifficultyLevel:   nr.DifficultyLevel,
	}
	if err := setDefaultAnnotations(&rec, now); err != nil {
		return Record{}, err
	}
	rec, err := svc.repo.CreateRecord(ctx, rec)
	return rec, errors.Wrap(err, "creating progress record")
}

// List returns the records of the last `days` days, newest first, optionally for one subject.
func (svc *Service) List(ctx context.Context, userID int, subject string, days int) ([]Record, error) {
	if days <= 0 {
		days = DefaultDays
	}
	records, err := svc.repo.QueryRecords(ctx, userID, QueryFilter{
		Subject: core.CleanString(subject),
		Since:   nowFunc().UTC().Add(-time.Duration(days) * day),
	})
	return records, errors.Wrap(err, "querying progress records")
}

// Summary aggregates the records of the last `days` days.
func (svc *Service) Summary(ctx context.Context, userID, days int) (Summary, error) {
	records, err := svc.List(ctx, userID, "", days)
	if err != nil {
		return Summary{}, err
	}
	summary := Summary{
		SubjectsStudied: []string{},
		WeeklyProgress:  []WeekProgress{},
	}
	if len(records) == 0 {
		return summary, nil
	}

	subjects := make(map[string]struct{})
	var accuracySum float64
	for _, r := range records {
		summary.TotalStudyTime += r.TimeSpent
		summary.TotalSessions += r.SessionsCompleted
		subjects[r.Subject] = struct{}{}
		if r.AccuracyScore != nil {
			accuracySum += *r.AccuracyScore
		}
	}
	summary.SubjectsStudied = sortedKeys(subjects)
	summary.AverageAccuracy = accuracySum / float64(len(records))

	studyDays, err := svc.repo.QueryStudyDays(ctx, userID)
	if err != nil {
		return Summary{}, errors.Wrap(err, "querying study days")
	}
	summary.CurrentStreak = currentStreak(studyDays, nowFunc().UTC())
	summary.WeeklyProgress = weeklyProgress(records)
	summary.LearningTrends = learningTrends(records)
	return summary, nil
}

// Analytics returns chart data for period (week, month or year, default month). Unknown periods span DefaultDays.
func (svc *Service) Analytics(ctx context.Context, userID int, period string) (Analytics, error) {
	if period == "" {
		period = DefaultPeriod
	}
	days, ok := periodDays[period]
	if !ok {
		days = DefaultDays
	}
	records, err := svc.List(ctx, userID, "", days)
	if err != nil {
		return Analytics{}, err
	}

	type accuracyAcc struct {
		sum   float64
		count int
	}
	dailyTime := make(map[string]int)
	shares := make(map[string]*SubjectShare)
	accuracy := make(map[string]*accuracyAcc)
	for _, r := range records {
		date := r.Date.UTC().Format(dateLayout)
		dailyTime[date] += r.TimeSpent

		share, ok := shares[r.Subject]
		if !ok {
			share = &SubjectShare{Subject: r.Subject}
			shares[r.Subject] = share
		}
		share.TimeSpent += r.TimeSpent
		share.Sessions++

		if r.AccuracyScore != nil {
			acc, ok := accuracy[date]
			if !ok {
				acc = new(accuracyAcc)
				accuracy[date] = acc
			}
			acc.sum += *r.AccuracyScore
			acc.count++
		}
	}

	res := Analytics{
		DailyTime:           make([]DailyTime, 0, len(dailyTime)),
		SubjectDistribution: make([]SubjectShare, 0, len(shares)),
		AccuracyTrends:      make([]DailyAccuracy, 0, len(accuracy)),
		Period:              period,
	}
	for date, minutes := range dailyTime {
		res.DailyTime = append(res.DailyTime, DailyTime{Date: date, Minutes: minutes})
	}
	sort.Slice(res.DailyTime, func(i, j int) bool { return res.DailyTime[i].Date < res.DailyTime[j].Date })

	for _, share := range shares {
		res.SubjectDistribution = append(res.SubjectDistribution, *share)
	}
	sort.Slice(res.SubjectDistribution, func(i, j int) bool {
		return res.SubjectDistribution[i].Subject < res.SubjectDistribution[j].Subject
	})

	for date, acc := range accuracy {
		res.AccuracyTrends = append(res.AccuracyTrends, DailyAccuracy{Date: date, Accuracy: acc.sum / float64(acc.count)})
	}
	sort.Slice(res.AccuracyTrends, func(i, j int) bool { return res.AccuracyTrends[i].Date < res.AccuracyTrends[j].Date })
	return res, nil
}

// Insights asks the language model to analyze the user's latest records.
func (svc *Service) Insights(ctx context.Context, usr user.User) (Insights, error) {
	records, err := svc.repo.QueryRecords(ctx, usr.ID, QueryFilter{Limit: insightsRecords})
	if err != nil {
		return Insights{}, errors.Wrap(err, "querying progress records")
	}

	res := Insights{
		Insights:      noDataInsights,
		TotalSessions: len(records),
		AnalysisDate:  nowFunc().UTC(),
	}
	if len(records) == 0 {
		return res, nil
	}

	text, err := core.CompleteText(ctx, svc.ai, svc.aiConf, insightsSystemPrompt, insightsPrompt(usr, records))
	if err != nil {
		return Insights{}, core.NewUpstreamError("Failed to analyze progress", errors.Wrap(err, "analyzing progress"))
	}
	res.Insights = text
	return res, nil
}

// CompleteSession updates a study session. A completed session with an actual duration is logged as progress.
func (svc *Service) CompleteSession(ctx context.Context, userID, sessionID int, us studyplan.UpdateSession) (SessionCompletion, error) {
	sess, err := svc.sessions.UpdateSession(ctx, userID, sessionID, us)
	if err != nil {
		return SessionCompletion{}, err
	}
	res := SessionCompletion{Session: sess}
	if sess.Status != studyplan.StatusCompleted || sess.ActualDuration == nil || *sess.ActualDuration == 0 {
		return res, nil
	}

	subject := defaultSubject
	if sess.StudyPlanID != nil {
		plan, err := svc.sessions.Get(ctx, userID, *sess.StudyPlanID)
		switch {
		case err == nil:
			subject = plan.Subject
		case !core.IsNotFound(err):
			return SessionCompletion{}, err
		}
	}

	now := nowFunc().UTC()
	rec := Record{
		UserID:            userID,
		Date:              now,
		Subject:           subject,
		Topic:             sess.Title,
		TimeSpent:         *sess.ActualDuration,
		SessionsCompleted: 1,
		AccuracyScore:     us.CompletionRate,
		DifficultyLevel:   "intermediate",
	}
	if err := setDefaultAnnotations(&rec, now); err != nil {
		return SessionCompletion{}, err
	}
	rec, err = svc.repo.CreateRecord(ctx, rec)
	if err != nil {
		return SessionCompletion{}, errors.Wrap(err, "creating progress record")
	}
	res.Record = &rec
	return res, nil
}

func setDefaultAnnotations(rec *Record, now time.Time) error {
	var err error
	rec.LearningPatterns, err = json.Marshal(map[string]string{"recorded_at": now.Format(time.RFC3339)})
	if err != nil {
		return errors.Wrap(err, "marshalling learning patterns")
	}
	rec.Recommendations, err = json.Marshal(map[string]string{"type": "basic"})
	return errors.Wrap(err, "marshalling recommendations")
}

// currentStreak counts consecutive study days ending today. days must be sorted latest first.
func currentStreak(days []time.Time, now time.Time) int {
	expected := truncateDay(now)
	streak := 0
	for _, d := range days {
		d = truncateDay(d)
		if d.After(expected) {
			continue
		}
		if !d.Equal(expected) {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}
	return streak
}

// weeklyProgress groups records by week, weeks starting on Monday, oldest week first.
func weeklyProgress(records []Record) []WeekProgress {
	type weekAcc struct {
		WeekProgress
		subjects map[string]struct{}
	}
	weeks := make(map[string]*weekAcc)
	for _, r := range records {
		date := truncateDay(r.Date)
		start := date.AddDate(0, 0, -((int(date.Weekday()) + 6) % 7)).Format(dateLayout)
		acc, ok := weeks[start]
		if !ok {
			acc = &weekAcc{WeekProgress: WeekProgress{WeekStart: start}, subjects: make(map[string]struct{})}
			weeks[start] = acc
		}
		acc.TimeSpent += r.TimeSpent
		acc.Sessions += r.SessionsCompleted
		acc.subjects[r.Subject] = struct{}{}
	}

	progress := make([]WeekProgress, 0, len(weeks))
	for _, acc := range weeks {
		acc.SubjectsCount = len(acc.subjects)
		progress = append(progress, acc.WeekProgress)
	}
	sort.Slice(progress, func(i, j int) bool { return progress[i].WeekStart < progress[j].WeekStart })
	return progress
}

func learningTrends(records []Record) *Trends {
	if len(records) == 0 {
		return nil
	}

	subjectTime := make(map[string]int)
	studyDays := make(map[time.Time]struct{})
	first, last := truncateDay(records[0].Date), truncateDay(records[0].Date)
	var total int
	for _, r := range records {
		subjectTime[r.Subject] += r.TimeSpent
		total += r.TimeSpent
		d := truncateDay(r.Date)
		studyDays[d] = struct{}{}
		if d.Before(first) {
			first = d
		}
		if d.After(last) {
			last = d
		}
	}

	mostStudied := make([]SubjectTime, 0, len(subjectTime))
	for s, t := range subjectTime {
		mostStudied = append(mostStudied, SubjectTime{Subject: s, TimeSpent: t})
	}
	sort.Slice(mostStudied, func(i, j int) bool {
		if mostStudied[i].TimeSpent != mostStudied[j].TimeSpent {
			return mostStudied[i].TimeSpent > mostStudied[j].TimeSpent
		}
		return mostStudied[i].Subject < mostStudied[j].Subject
	})
	if len(mostStudied) > 3 {
		mostStudied = mostStudied[:3]
	}

	totalDays := int(last.Sub(first)/day) + 1
	consistency := float64(len(studyDays)) / float64(totalDays) * 100

	return &Trends{
		MostStudiedSubjects:  mostStudied,
		StudyConsistency:     math.Round(consistency*10) / 10,
		AverageSessionLength: float64(total) / float64(len(records)),
		TotalSubjects:        len(subjectTime),
	}
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
