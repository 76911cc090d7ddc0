package progress

import (
	"encoding/json"
	"time"

	"github.com/myousuf-code/StudyWiseAI/core"
	"github.com/myousuf-code/StudyWiseAI/core/studyplan"
)

// Record is one entry of the user's study log.
type Record struct {
	ID                int             `json:"id"`
	UserID            int             `json:"user_id"`
	Date              time.Time       `json:"date"` // UTC
	Subject           string          `json:"subject"`
	Topic             string          `json:"topic"`
	TimeSpent         int             `json:"time_spent"` // minutes
	SessionsCompleted int             `json:"sessions_completed"`
	AccuracyScore     *float64        `json:"accuracy_score"`
	RetentionScore    *float64        `json:"retention_score"`
	DifficultyLevel   string          `json:"difficulty_level"`
	LearningPatterns  json.RawMessage `json:"learning_patterns"`
	Recommendations   json.RawMessage `json:"recommendations"`
}

// NewRecord contains information needed to log progress.
type NewRecord struct {
	Subject           string   `json:"subject" validate:"required,notblank,max=200"`
	Topic             string   `json:"topic" validate:"required,notblank,max=200"`
	TimeSpent         int      `json:"time_spent" validate:"min=0,max=1440"`
	SessionsCompleted int      `json:"sessions_completed" validate:"min=0"`
	AccuracyScore     *float64 `json:"accuracy_score" validate:"omitempty,min=0,max=100"`
	DifficultyLevel   string   `json:"difficulty_level" validate:"required,difficulty"`
}

func (nr *NewRecord) Clean() {
	nr.Subject = core.CleanString(nr.Subject)
	nr.Topic = core.CleanString(nr.Topic)
	nr.DifficultyLevel = core.CleanString(nr.DifficultyLevel, true)
}

type QueryFilter struct {
	Subject string
	Since   time.Time
	Limit   int // 0 means no limit
}

type (
	Summary struct {
		TotalStudyTime  int            `json:"total_study_time"` // minutes
		TotalSessions   int            `json:"total_sessions"`
		SubjectsStudied []string       `json:"subjects_studied"`
		AverageAccuracy float64        `json:"average_accuracy"`
		CurrentStreak   int            `json:"current_streak"` // days
		WeeklyProgress  []WeekProgress `json:"weekly_progress"`
		LearningTrends  *Trends        `json:"learning_trends"`
	}

	WeekProgress struct {
		WeekStart     string `json:"week_start"` // YYYY-MM-DD, a Monday
		TimeSpent     int    `json:"time_spent"`
		Sessions      int    `json:"sessions"`
		SubjectsCount int    `json:"subjects_count"`
	}

	Trends struct {
		MostStudiedSubjects  []SubjectTime `json:"most_studied_subjects"`
		StudyConsistency     float64       `json:"study_consistency"` // percent of days studied
		AverageSessionLength float64       `json:"average_session_length"`
		TotalSubjects        int           `json:"total_subjects"`
	}

	SubjectTime struct {
		Subject   string `json:"subject"`
		TimeSpent int    `json:"time_spent"`
	}
)

type (
	Analytics struct {
		DailyTime           []DailyTime     `json:"daily_time"`
		SubjectDistribution []SubjectShare  `json:"subject_distribution"`
		AccuracyTrends      []DailyAccuracy `json:"accuracy_trends"`
		Period              string          `json:"period"`
	}

	DailyTime struct {
		Date    string `json:"date"`
		Minutes int    `json:"minutes"`
	}

	SubjectShare struct {
		Subject   string `json:"subject"`
		TimeSpent int    `json:"time_spent"`
		Sessions  int    `json:"sessions"`
	}

	DailyAccuracy struct {
		Date     string  `json:"date"`
		Accuracy float64 `json:"accuracy"`
	}
)

type Insights struct {
	Insights      string    `json:"insights"`
	TotalSessions int       `json:"total_sessions"`
	AnalysisDate  time.Time `json:"analysis_date"`
}

// SessionCompletion is the result of updating a study session.
type SessionCompletion struct {
	Session studyplan.Session `json:"session"`
	Record  *Record           `json:"progress_record,omitempty"`
}
