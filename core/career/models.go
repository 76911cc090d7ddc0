package career

import (
	"time"

	"github.com/myousuf-code/StudyWiseAI/core"
)

const (
	PlanSourceAI       = "ai"
	PlanSourceTemplate = "template"
)

// Session is a career counseling conversation: questions, the user's answers and the resulting plan.
type Session struct {
	ID               int       `json:"id"`
	UserID           int       `json:"user_id"`
	TargetProfession string    `json:"target_profession"`
	InitialQuestions string    `json:"initial_questions"`
	UserResponses    []string  `json:"user_responses"`
	ActionPlan       string    `json:"action_plan"`
	PlanSource       string    `json:"plan_source"`
	CreatedAt        time.Time `json:"created_at"` // UTC
	UpdatedAt        time.Time `json:"updated_at"` // UTC
}

// StartSession contains information needed to start a counseling Session.
type StartSession struct {
	TargetProfession string `json:"target_profession" validate:"required,notblank,max=200"`
}

func (ss *StartSession) Clean() {
	ss.TargetProfession = core.CleanString(ss.TargetProfession)
}

type GeneratePlan struct {
	SessionID int      `json:"session_id" validate:"required,min=1"`
	Responses []string `json:"responses" validate:"omitempty,max=10,dive,max=2000"`
}

type ConvertToStudyPlan struct {
	SessionID int    `json:"session_id" validate:"required,min=1"`
	PlanTitle string `json:"plan_title" validate:"max=200"`
}

func (c *ConvertToStudyPlan) Clean() {
	c.PlanTitle = core.CleanString(c.PlanTitle)
}

type ConversionResult struct {
	StudyPlanID  int `json:"study_plan_id"`
	TasksCreated int `json:"tasks_created"`
}
