package reminder

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/myousuf-code/StudyWiseAI/core"
	"github.com/myousuf-code/StudyWiseAI/core/progress"
)

const (
	DefaultUpcomingHours = 24

	sessionLeadTime      = 10 * time.Minute
	reviewDelay          = 2 * time.Hour
	reviewAfterDays      = 3
	recommendationSample = 10

	noHistoryMessage = "No study history available for smart recommendations"
)

var (
	nowFunc = time.Now // mockable

	// errors
	ErrNotFound           = core.NewNotFoundError("Reminder")
	ErrScheduledInPast    = errors.New("Scheduled time must be in the future")
	ErrStartInPast        = errors.New("Start time must be in the future")
	ErrPatternRequired    = errors.New("Recurring reminders need a recurrence pattern")
	errRecurrenceRequired = core.FieldError{Field: "recurrence_pattern", Error: ErrPatternRequired.Error()}
)

type (
	Repository interface {
		CreateReminder(ctx context.Context, r Reminder) (Reminder, error)
		// GetReminder returns ErrNotFound when the reminder does not exist or belongs to another user.
		GetReminder(ctx context.Context, userID, id int) (Reminder, error)
		// QueryReminders returns the user's reminders matching filter, soonest first.
		QueryReminders(ctx context.Context, userID int, filter QueryFilter) ([]Reminder, error)
		UpdateReminder(ctx context.Context, r Reminder) (Reminder, error)
		DeleteReminder(ctx context.Context, userID, id int) error

		// QueryDueReminders returns up to limit unsent reminders scheduled at or before now, oldest first.
		QueryDueReminders(ctx context.Context, now time.Time, limit int) ([]Reminder, error)
		// MarkSent flags the reminder as sent. It reports false when another worker already did.
		MarkSent(ctx context.Context, id int) (bool, error)
	}

	// ProgressSource reads the study log the recommendations are based on.
	ProgressSource interface {
		QueryRecords(ctx context.Context, userID int, filter progress.QueryFilter) ([]progress.Record, error)
	}

	Service struct {
		repo     Repository
		progress ProgressSource
	}
)

func NewService(repo Repository, progress ProgressSource) *Service {
	vala.BeginValidation().Validate(
		vala.IsNotNil(repo, "repo"),
		vala.IsNotNil(progress, "progress"),
	).CheckAndPanic()

	return &Service{repo: repo, progress: progress}
}

// Create schedules a reminder. nr is expected to be cleaned and validated.
func (svc *Service) Create(ctx context.Context, userID int, nr NewReminder) (Reminder, error) {
	now := nowFunc().UTC()
	if !nr.ScheduledTime.After(now) {
		return Reminder{}, core.NewValidationError(ErrScheduledInPast)
	}
	if nr.IsRecurring && nr.RecurrencePattern == "" {
		return Reminder{}, core.NewValidationError(ErrPatternRequired, errRecurrenceRequired)
	}

	r := Reminder{
		UserID:            userID,
		Title:             nr.Title,
		Message:           nr.Message,
		ReminderType:      nr.ReminderType,
		ScheduledTime:     nr.ScheduledTime.UTC(),
		IsRecurring:       nr.IsRecurring,
		RecurrencePattern: nr.RecurrencePattern,
		CreatedAt:         now,
	}
	if !r.IsRecurring {
		r.RecurrencePattern = ""
	}
	r, err := svc.repo.CreateReminder(ctx, r)
	return r, errors.Wrap(err, "creating reminder")
}

func (svc *Service) Get(ctx context.Context, userID, id int) (Reminder, error) {
	r, err := svc.repo.GetReminder(ctx, userID, id)
	return r, errors.Wrap(err, "getting reminder")
}

// List returns the user's reminders, soonest first. upcomingOnly drops the ones already due.
func (svc *Service) List(ctx context.Context, userID int, upcomingOnly bool) ([]Reminder, error) {
	var filter QueryFilter
	if upcomingOnly {
		filter.After = nowFunc().UTC()
	}
	reminders, err := svc.repo.QueryReminders(ctx, userID, filter)
	return reminders, errors.Wrap(err, "querying reminders")
}

// Update applies the non-nil fields of ur. Rescheduling a reminder makes it pending again.
func (svc *Service) Update(ctx context.Context, userID, id int, ur UpdateReminder) (Reminder, error) {
	r, err := svc.repo.GetReminder(ctx, userID, id)
	if err != nil {
		return Reminder{}, errors.Wrap(err, "getting reminder")
	}

	if ur.Title != nil {
		r.Title = core.CleanString(*ur.Title)
	}
	if ur.Message != nil {
		r.Message = core.CleanString(*ur.Message)
	}
	if ur.ScheduledTime != nil {
		r.ScheduledTime = ur.ScheduledTime.UTC()
		if r.ScheduledTime.After(nowFunc().UTC()) {
			r.IsSent = false
		}
	}
	if ur.IsRecurring != nil {
		r.IsRecurring = *ur.IsRecurring
	}
	if ur.RecurrencePattern != nil {
		r.RecurrencePattern = core.CleanString(*ur.RecurrencePattern, true)
	}
	if r.IsRecurring && r.RecurrencePattern == "" {
		return Reminder{}, core.NewValidationError(ErrPatternRequired, errRecurrenceRequired)
	}

	r, err = svc.repo.UpdateReminder(ctx, r)
	return r, errors.Wrap(err, "updating reminder")
}

func (svc *Service) Delete(ctx context.Context, userID, id int) error {
	return errors.Wrap(svc.repo.DeleteReminder(ctx, userID, id), "deleting reminder")
}

// Upcoming returns the unsent reminders due within the next `hours` hours.
func (svc *Service) Upcoming(ctx context.Context, userID, hours int) ([]Upcoming, error) {
	if hours <= 0 {
		hours = DefaultUpcomingHours
	}
	now := nowFunc().UTC()
	reminders, err := svc.repo.QueryReminders(ctx, userID, QueryFilter{
		After:      now,
		Before:     now.Add(time.Duration(hours) * time.Hour),
		UnsentOnly: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "querying reminders")
	}

	upcoming := make([]Upcoming, 0, len(reminders))
	for _, r := range reminders {
		upcoming = append(upcoming, Upcoming{
			ID:            r.ID,
			Title:         r.Title,
			Message:       r.Message,
			ScheduledTime: r.ScheduledTime,
			TimeUntil:     formatTimeUntil(r.ScheduledTime.Sub(now)),
		})
	}
	return upcoming, nil
}

// ScheduleStudySession creates a reminder firing shortly before a study session starts.
func (svc *Service) ScheduleStudySession(ctx context.Context, userID int, ssr StudySessionReminder) (Reminder, error) {
	now := nowFunc().UTC()
	start := ssr.StartTime.UTC()
	if !start.After(now) {
		return Reminder{}, core.NewValidationError(ErrStartInPast)
	}
	title := core.CleanString(ssr.Title)

	r, err := svc.repo.CreateReminder(ctx, Reminder{
		UserID:        userID,
		Title:         "Study Session: " + title,
		Message:       fmt.Sprintf("Your %d-minute study session '%s' starts in 10 minutes!", ssr.DurationMinutes, title),
		ReminderType:  TypeStudySession,
		ScheduledTime: start.Add(-sessionLeadTime),
		CreatedAt:     now,
	})
	return r, errors.Wrap(err, "creating study session reminder")
}

// ScheduleBreak creates a reminder to take a break once the current study stretch is over.
func (svc *Service) ScheduleBreak(ctx context.Context, userID int, br BreakReminder) (Reminder, error) {
	now := nowFunc().UTC()
	r, err := svc.repo.CreateReminder(ctx, Reminder{
		UserID:        userID,
		Title:         "Take a Break!",
		Message:       fmt.Sprintf("You've been studying for %d minutes. Time for a 5-10 minute break!", br.StudyDuration),
		ReminderType:  TypeBreak,
		ScheduledTime: now.Add(time.Duration(br.StudyDuration) * time.Minute),
		CreatedAt:     now,
	})
	return r, errors.Wrap(err, "creating break reminder")
}

// SmartRecommendations schedules reminders derived from the user's latest study log:
// a daily reminder at their most common study hour and a review for every subject left aside for a while.
func (svc *Service) SmartRecommendations(ctx context.Context, userID int) (Recommendations, error) {
	records, err := svc.progress.QueryRecords(ctx, userID, progress.QueryFilter{Limit: recommendationSample})
	if err != nil {
		return Recommendations{}, errors.Wrap(err, "querying progress records")
	}
	if len(records) == 0 {
		return Recommendations{Message: noHistoryMessage, Reminders: []Reminder{}}, nil
	}

	now := nowFunc().UTC()
	created := make([]Reminder, 0)
	for _, rec := range recommend(records, now) {
		rec.UserID = userID
		rec.ReminderType = TypeCustom
		rec.CreatedAt = now
		r, err := svc.repo.CreateReminder(ctx, rec)
		if err != nil {
			return Recommendations{}, errors.Wrap(err, "creating smart reminder")
		}
		created = append(created, r)
	}
	return Recommendations{
		Message:   fmt.Sprintf("Created %d smart reminders", len(created)),
		Reminders: created,
	}, nil
}

func recommend(records []progress.Record, now time.Time) []Reminder {
	hourCounts := make(map[int]int)
	lastStudied := make(map[string]time.Time)
	for _, rec := range records {
		date := rec.Date.UTC()
		hourCounts[date.Hour()]++
		if last, ok := lastStudied[rec.Subject]; !ok || date.After(last) {
			lastStudied[rec.Subject] = date
		}
	}

	bestHour, bestCount := 0, 0
	for hour := 0; hour < 24; hour++ {
		if hourCounts[hour] > bestCount {
			bestHour, bestCount = hour, hourCounts[hour]
		}
	}
	tomorrow := time.Date(now.Year(), now.Month(), now.Day(), bestHour, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	recs := []Reminder{{
		Title:             "Daily Study Time",
		Message:           fmt.Sprintf("Time for your daily study session! You're most productive at %d:00.", bestHour),
		ScheduledTime:     tomorrow,
		IsRecurring:       true,
		RecurrencePattern: PatternDaily,
	}}

	subjects := make([]string, 0, len(lastStudied))
	for s := range lastStudied {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)
	for _, subject := range subjects {
		daysAgo := int(now.Sub(lastStudied[subject]) / (24 * time.Hour))
		if daysAgo <= reviewAfterDays {
			continue
		}
		recs = append(recs, Reminder{
			Title:         "Review " + subject,
			Message:       fmt.Sprintf("It's been %d days since you studied %s. Time for a review session!", daysAgo, subject),
			ScheduledTime: now.Add(reviewDelay),
		})
	}
	return recs
}

// formatTimeUntil renders d like "2:03:04" or "1 day, 2:03:04", dropping fractions of a second.
func formatTimeUntil(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	days := secs / 86400
	secs %= 86400
	clock := fmt.Sprintf("%d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
	switch days {
	case 0:
		return clock
	case 1:
		return "1 day, " + clock
	default:
		return fmt.Sprintf("%d days, %s", days, clock)
	}
}
