package reminder

import (
	"time"

	"github.com/myousuf-code/StudyWiseAI/core"
)

// Reminder types
const (
	TypeStudySession = "study_session"
	TypeBreak        = "break"
	TypeReview       = "review"
	TypeCustom       = "custom"
)

// Recurrence patterns
const (
	PatternDaily   = "daily"
	PatternWeekly  = "weekly"
	PatternMonthly = "monthly"
)

type Reminder struct {
	ID                int       `json:"id"`
	UserID            int       `json:"user_id"`
	Title             string    `json:"title"`
	Message           string    `json:"message"`
	ReminderType      string    `json:"reminder_type"`
	ScheduledTime     time.Time `json:"scheduled_time"` // UTC
	IsSent            bool      `json:"is_sent"`
	IsRecurring       bool      `json:"is_recurring"`
	RecurrencePattern string    `json:"recurrence_pattern"`
	CreatedAt         time.Time `json:"created_at"` // UTC
}

// Next returns the first occurrence of a recurring reminder after now, skipping any missed periods,
// or false when it does not recur.
func (r Reminder) Next(now time.Time) (Reminder, bool) {
	if !r.IsRecurring {
		return Reminder{}, false
	}
	var days int
	switch r.RecurrencePattern {
	case PatternDaily:
		days = 1
	case PatternWeekly:
		days = 7
	case PatternMonthly:
		days = 30
	default:
		return Reminder{}, false
	}
	next := r.ScheduledTime.AddDate(0, 0, days)
	if !next.After(now) {
		period := time.Duration(days) * 24 * time.Hour
		next = next.Add(now.Sub(next).Truncate(period) + period)
	}
	return Reminder{
		UserID:            r.UserID,
		Title:             r.Title,
		Message:           r.Message,
		ReminderType:      r.ReminderType,
		ScheduledTime:     next,
		IsRecurring:       true,
		RecurrencePattern: r.RecurrencePattern,
	}, true
}

// NewReminder contains information needed to schedule a Reminder.
type NewReminder struct {
	Title             string    `json:"title" validate:"required,notblank,max=200"`
	Message           string    `json:"message" validate:"max=2000"`
	ReminderType      string    `json:"reminder_type" validate:"required,oneof=study_session break review custom"`
	ScheduledTime     time.Time `json:"scheduled_time" validate:"required"`
	IsRecurring       bool      `json:"is_recurring"`
	RecurrencePattern string    `json:"recurrence_pattern" validate:"omitempty,oneof=daily weekly monthly"`
}

func (nr *NewReminder) Clean() {
	nr.Title = core.CleanString(nr.Title)
	nr.Message = core.CleanString(nr.Message)
	nr.ReminderType = core.CleanString(nr.ReminderType, true)
	nr.RecurrencePattern = core.CleanString(nr.RecurrencePattern, true)
	nr.ScheduledTime = nr.ScheduledTime.UTC()
}

// UpdateReminder holds the fields to change. Nil fields are left untouched.
type UpdateReminder struct {
	Title             *string    `json:"title" validate:"omitempty,notblank,max=200"`
	Message           *string    `json:"message" validate:"omitempty,max=2000"`
	ScheduledTime     *time.Time `json:"scheduled_time"`
	IsRecurring       *bool      `json:"is_recurring"`
	RecurrencePattern *string    `json:"recurrence_pattern" validate:"omitempty,oneof=daily weekly monthly"`
}

type StudySessionReminder struct {
	Title           string    `json:"title" validate:"required,notblank,max=180"`
	DurationMinutes int       `json:"duration_minutes" validate:"required,min=1,max=1440"`
	StartTime       time.Time `json:"start_time" validate:"required"`
}

type BreakReminder struct {
	StudyDuration int `json:"study_duration" validate:"required,min=1,max=1440"` // minutes
}

type QueryFilter struct {
	After      time.Time // exclusive, zero means unbounded
	Before     time.Time // inclusive, zero means unbounded
	UnsentOnly bool
}

// Upcoming is a due-soon reminder with a human readable countdown.
type Upcoming struct {
	ID            int       `json:"id"`
	Title         string    `json:"title"`
	Message       string    `json:"message"`
	ScheduledTime time.Time `json:"scheduled_time"`
	TimeUntil     string    `json:"time_until"` // e.g. "1 day, 2:03:04"
}

type Recommendations struct {
	Message   string     `json:"message"`
	Reminders []Reminder `json:"reminders"`
}
