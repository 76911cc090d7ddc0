package studyplan

import (
	"encoding/json"
	"time"

	"github.com/myousuf-code/StudyWiseAI/core"
)

// MaxTitleLen bounds plan titles, matching the study_plans.title column.
const MaxTitleLen = 200

// Session statuses
const (
	StatusPlanned   = "planned"
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusPaused    = "paused"
)

var SessionStatuses = []string{StatusPlanned, StatusActive, StatusCompleted, StatusPaused}

type StudyPlan struct {
	ID                int             `json:"id"`
	UserID            int             `json:"user_id"`
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	Subject           string          `json:"subject"`
	DifficultyLevel   string          `json:"difficulty_level"`
	EstimatedDuration int             `json:"estimated_duration"` // minutes
	IsActive          bool            `json:"is_active"`
	StudyMaterials    json.RawMessage `json:"study_materials"`
	Schedule          json.RawMessage `json:"schedule"`
	Milestones        json.RawMessage `json:"milestones"`
	CreatedAt         time.Time       `json:"created_at"` // UTC
	UpdatedAt         time.Time       `json:"updated_at"` // UTC
}

// NewStudyPlan contains information needed to create a StudyPlan.
type NewStudyPlan struct {
	Title             string                 `json:"title" validate:"required,notblank,max=200"`
	Description       string                 `json:"description" validate:"max=2000"`
	Subject           string                 `json:"subject" validate:"required,notblank,max=200"`
	DifficultyLevel   string                 `json:"difficulty_level" validate:"required,difficulty"`
	EstimatedDuration int                    `json:"estimated_duration" validate:"min=0"`
	StudyMaterials    map[string]interface{} `json:"study_materials"`
	Schedule          map[string]interface{} `json:"schedule"`
	Milestones        map[string]interface{} `json:"milestones"`
}

func (np *NewStudyPlan) Clean() {
	np.Title = core.CleanString(np.Title)
	np.Description = core.CleanString(np.Description)
	np.Subject = core.CleanString(np.Subject)
	np.DifficultyLevel = core.CleanString(np.DifficultyLevel, true)
}

// UpdateStudyPlan holds the fields to change. Nil fields are left untouched.
type UpdateStudyPlan struct {
	Title             *string                `json:"title" validate:"omitempty,notblank,max=200"`
	Description       *string                `json:"description" validate:"omitempty,max=2000"`
	Subject           *string                `json:"subject" validate:"omitempty,notblank,max=200"`
	DifficultyLevel   *string                `json:"difficulty_level" validate:"omitempty,difficulty"`
	EstimatedDuration *int                   `json:"estimated_duration" validate:"omitempty,min=0"`
	StudyMaterials    map[string]interface{} `json:"study_materials"`
	Schedule          map[string]interface{} `json:"schedule"`
	Milestones        map[string]interface{} `json:"milestones"`
}

func (up *UpdateStudyPlan) Clean() {
	for _, s := range []*string{up.Title, up.Description, up.Subject} {
		if s != nil {
			*s = core.CleanString(*s)
		}
	}
	if up.DifficultyLevel != nil {
		*up.DifficultyLevel = core.CleanString(*up.DifficultyLevel, true)
	}
}

// GeneratePlan asks the language model for a plan.
type GeneratePlan struct {
	Subject         string `json:"subject" validate:"required,notblank,max=200"`
	DurationWeeks   int    `json:"duration_weeks" validate:"required,min=1,max=52"`
	DifficultyLevel string `json:"difficulty_level" validate:"required,difficulty"`
}

func (gp *GeneratePlan) Clean() {
	gp.Subject = core.CleanString(gp.Subject)
	gp.DifficultyLevel = core.CleanString(gp.DifficultyLevel, true)
}

// Session is a single sitting, usually attached to a StudyPlan.
type Session struct {
	ID             int        `json:"id"`
	UserID         int        `json:"user_id"`
	StudyPlanID    *int       `json:"study_plan_id"`
	Title          string     `json:"title"`
	Duration       int        `json:"duration"`        // planned, minutes
	ActualDuration *int       `json:"actual_duration"` // minutes
	StartTime      time.Time  `json:"start_time"`      // UTC
	EndTime        *time.Time `json:"end_time"`        // UTC
	Status         string     `json:"status"`
	FocusScore     *float64   `json:"focus_score"`
	CompletionRate *float64   `json:"completion_rate"`
	Notes          string     `json:"notes"`
	TopicsCovered  []string   `json:"topics_covered"`
}

type NewSession struct {
	Title         string   `json:"title" validate:"required,notblank,max=200"`
	Duration      int      `json:"duration" validate:"required,min=1,max=1440"`
	TopicsCovered []string `json:"topics_covered" validate:"omitempty,max=50,dive,max=200"`
}

func (ns *NewSession) Clean() {
	ns.Title = core.CleanString(ns.Title)
	topics := make([]string, 0, len(ns.TopicsCovered))
	for _, t := range ns.TopicsCovered {
		if t = core.CleanString(t); t != "" {
			topics = append(topics, t)
		}
	}
	ns.TopicsCovered = topics
}

// UpdateSession records completion data. Setting EndTime completes the session.
type UpdateSession struct {
	ActualDuration *int       `json:"actual_duration" validate:"omitempty,min=0"`
	EndTime        *time.Time `json:"end_time"`
	FocusScore     *float64   `json:"focus_score" validate:"omitempty,min=0,max=100"`
	CompletionRate *float64   `json:"completion_rate" validate:"omitempty,min=0,max=100"`
	Notes          *string    `json:"notes" validate:"omitempty,max=2000"`
}
