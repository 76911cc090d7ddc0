package studyplan

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/myousuf-code/StudyWiseAI/core"
	"github.com/myousuf-code/StudyWiseAI/core/career"
	"github.com/myousuf-code/StudyWiseAI/core/user"
)

var (
	nowFunc = time.Now // mockable

	// errors
	ErrNotFound        = core.NewNotFoundError("Study plan")
	ErrSessionNotFound = core.NewNotFoundError("Study session")
)

const careerTaskMinutes = 5 * 60

type (
	Repository interface {
		CreatePlan(ctx context.Context, plan StudyPlan) (StudyPlan, error)
		// GetPlan returns ErrNotFound when the plan does not exist or belongs to another user.
		GetPlan(ctx context.Context, userID, id int) (StudyPlan, error)
		QueryPlans(ctx context.Context, userID int, activeOnly bool, ordering []core.DBOrdering) ([]StudyPlan, error)
		UpdatePlan(ctx context.Context, plan StudyPlan) (StudyPlan, error)

		CreateSession(ctx context.Context, sess Session) (Session, error)
		// GetSession returns ErrSessionNotFound when the session does not exist or belongs to another user.
		GetSession(ctx context.Context, userID, id int) (Session, error)
		// QuerySessions returns the sessions of a plan, latest start first.
		QuerySessions(ctx context.Context, planID int) ([]Session, error)
		UpdateSession(ctx context.Context, sess Session) (Session, error)
	}

	Service struct {
		repo   Repository
		ai     core.AIProvider
		logger core.Logger
		aiConf core.AIConfig
	}
)

var _ career.StudyPlanStore = (*Service)(nil)

func NewService(repo Repository, ai core.AIProvider, logger core.Logger, conf *core.Config) *Service {
	vala.BeginValidation().Validate(
		vala.IsNotNil(repo, "repo"),
		vala.IsNotNil(ai, "ai"),
		vala.IsNotNil(logger, "logger"),
		vala.IsNotNil(conf, "conf"),
	).CheckAndPanic()

	return &Service{
		repo:   repo,
		ai:     ai,
		logger: logger,
		aiConf: conf.AI,
	}
}

// Create persists an active plan. np is expected to be cleaned and validated.
func (svc *Service) Create(ctx context.Context, userID int, np NewStudyPlan) (StudyPlan, error) {
	now := nowFunc().UTC()
	plan := StudyPlan{
		UserID:            userID,
		Title:             np.Title,
		Description:       np.Description,
		Subject:           np.Subject,
		DifficultyLevel:   np.DifficultyLevel,
		EstimatedDuration: np.EstimatedDuration,
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	var err error
	if plan.StudyMaterials, err = marshalObject(np.StudyMaterials); err != nil {
		return StudyPlan{}, err
	}
	if plan.Schedule, err = marshalObject(np.Schedule); err != nil {
		return StudyPlan{}, err
	}
	if plan.Milestones, err = marshalObject(np.Milestones); err != nil {
		return StudyPlan{}, err
	}

	plan, err = svc.repo.CreatePlan(ctx, plan)
	return plan, errors.Wrap(err, "creating study plan")
}

func (svc *Service) Get(ctx context.Context, userID, id int) (StudyPlan, error) {
	plan, err := svc.repo.GetPlan(ctx, userID, id)
	return plan, errors.Wrap(err, "getting study plan")
}

// List returns the user's plans, newest first unless ordering says otherwise.
func (svc *Service) List(ctx context.Context, userID int, activeOnly bool, ordering []core.DBOrdering) ([]StudyPlan, error) {
	plans, err := svc.repo.QueryPlans(ctx, userID, activeOnly, ordering)
	return plans, errors.Wrap(err, "querying study plans")
}

// Update applies the non-nil fields of up. up is expected to be cleaned and validated.
func (svc *Service) Update(ctx context.Context, userID, id int, up UpdateStudyPlan) (StudyPlan, error) {
	plan, err := svc.repo.GetPlan(ctx, userID, id)
	if err != nil {
		return StudyPlan{}, errors.Wrap(err, "getting study plan")
	}

	if up.Title != nil {
		plan.Title = *up.Title
	}
	if up.Description != nil {
		plan.Description = *up.Description
	}
	if up.Subject != nil {
		plan.Subject = *up.Subject
	}
	if up.DifficultyLevel != nil {
		plan.DifficultyLevel = *up.DifficultyLevel
	}
	if up.EstimatedDuration != nil {
		plan.EstimatedDuration = *up.EstimatedDuration
	}
	if up.StudyMaterials != nil {
		if plan.StudyMaterials, err = marshalObject(up.StudyMaterials); err != nil {
			return StudyPlan{}, err
		}
	}
	if up.Schedule != nil {
		if plan.Schedule, err = marshalObject(up.Schedule); err != nil {
			return StudyPlan{}, err
		}
	}
	if up.Milestones != nil {
		if plan.Milestones, err = marshalObject(up.Milestones); err != nil {
			return StudyPlan{}, err
		}
	}

	plan.UpdatedAt = nowFunc().UTC()
	plan, err = svc.repo.UpdatePlan(ctx, plan)
	return plan, errors.Wrap(err, "updating study plan")
}

// Deactivate hides the plan from the default listing. Plans are never hard deleted.
func (svc *Service) Deactivate(ctx context.Context, userID, id int) error {
	plan, err := svc.repo.GetPlan(ctx, userID, id)
	if err != nil {
		return errors.Wrap(err, "getting study plan")
	}
	plan.IsActive = false
	plan.UpdatedAt = nowFunc().UTC()
	_, err = svc.repo.UpdatePlan(ctx, plan)
	return errors.Wrap(err, "deactivating study plan")
}

// CreateSession adds a planned session to one of the user's plans. ns is expected to be cleaned and validated.
func (svc *Service) CreateSession(ctx context.Context, userID, planID int, ns NewSession) (Session, error) {
	plan, err := svc.repo.GetPlan(ctx, userID, planID)
	if err != nil {
		return Session{}, errors.Wrap(err, "getting study plan")
	}

	sess := Session{
		UserID:        userID,
		StudyPlanID:   &plan.ID,
		Title:         ns.Title,
		Duration:      ns.Duration,
		StartTime:     nowFunc().UTC(),
		Status:        StatusPlanned,
		TopicsCovered: ns.TopicsCovered,
	}
	sess, err = svc.repo.CreateSession(ctx, sess)
	return sess, errors.Wrap(err, "creating study session")
}

func (svc *Service) ListSessions(ctx context.Context, userID, planID int) ([]Session, error) {
	if _, err := svc.repo.GetPlan(ctx, userID, planID); err != nil {
		return nil, errors.Wrap(err, "getting study plan")
	}
	sessions, err := svc.repo.QuerySessions(ctx, planID)
	return sessions, errors.Wrap(err, "querying study sessions")
}

// UpdateSession applies the non-nil fields of us. A session given an end time is completed.
func (svc *Service) UpdateSession(ctx context.Context, userID, id int, us UpdateSession) (Session, error) {
	sess, err := svc.repo.GetSession(ctx, userID, id)
	if err != nil {
		return Session{}, errors.Wrap(err, "getting study session")
	}

	if us.ActualDuration != nil {
		sess.ActualDuration = us.ActualDuration
	}
	if us.FocusScore != nil {
		sess.FocusScore = us.FocusScore
	}
	if us.CompletionRate != nil {
		sess.CompletionRate = us.CompletionRate
	}
	if us.Notes != nil {
		sess.Notes = core.CleanString(*us.Notes)
	}
	if us.EndTime != nil {
		end := us.EndTime.UTC()
		sess.EndTime = &end
		sess.Status = StatusCompleted
	}

	sess, err = svc.repo.UpdateSession(ctx, sess)
	return sess, errors.Wrap(err, "updating study session")
}

// GeneratePlanText asks the language model for a plan tailored to usr without persisting anything.
func (svc *Service) GeneratePlanText(ctx context.Context, usr user.User, gp GeneratePlan) (string, error) {
	text, err := core.CompleteText(ctx, svc.ai, svc.aiConf, planSystemPrompt, planPrompt(usr, gp))
	if err != nil {
		return "", errors.Wrap(err, "generating study plan")
	}
	return text, nil
}

// GenerateWithAI generates a plan with the language model and persists it. It returns the plan and the raw model text.
func (svc *Service) GenerateWithAI(ctx context.Context, usr user.User, gp GeneratePlan) (StudyPlan, string, error) {
	text, err := svc.GeneratePlanText(ctx, usr, gp)
	if err != nil {
		return StudyPlan{}, "", core.NewUpstreamError("Failed to generate AI study plan", err)
	}

	generated := map[string]interface{}{"ai_generated": true}
	now := nowFunc().UTC()
	plan := StudyPlan{
		UserID:            usr.ID,
		Title:             core.Truncate("AI Study Plan: "+gp.Subject, MaxTitleLen),
		Description:       fmt.Sprintf("AI-generated %d-week study plan for %s", gp.DurationWeeks, gp.Subject),
		Subject:           gp.Subject,
		DifficultyLevel:   gp.DifficultyLevel,
		EstimatedDuration: gp.DurationWeeks * 7 * 60,
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if plan.StudyMaterials, err = marshalObject(generated); err != nil {
		return StudyPlan{}, "", err
	}
	if plan.Milestones, err = marshalObject(generated); err != nil {
		return StudyPlan{}, "", err
	}
	if plan.Schedule, err = marshalObject(map[string]interface{}{"plan": text}); err != nil {
		return StudyPlan{}, "", err
	}

	plan, err = svc.repo.CreatePlan(ctx, plan)
	if err != nil {
		return StudyPlan{}, "", errors.Wrap(err, "creating study plan")
	}
	return plan, text, nil
}

// CreateFromCareerDraft persists a plan built from a converted career action plan.
func (svc *Service) CreateFromCareerDraft(ctx context.Context, userID int, title, profession string, draft career.ParsedStudyPlanDraft) (int, error) {
	schedule := map[string]interface{}{
		"weekly_tasks":     draft.Schedule.WeeklyTasks,
		"daily_activities": draft.Schedule.DailyActivities,
		"tasks":            draft.Tasks,
	}

	now := nowFunc().UTC()
	plan := StudyPlan{
		UserID:            userID,
		Title:             core.Truncate(title, MaxTitleLen),
		Description:       "Study plan generated from career counseling for " + profession,
		Subject:           profession,
		DifficultyLevel:   "beginner",
		EstimatedDuration: len(draft.Tasks) * careerTaskMinutes,
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	var err error
	if plan.StudyMaterials, err = json.Marshal(draft.StudyMaterials); err != nil {
		return 0, errors.Wrap(err, "marshalling study materials")
	}
	if plan.Schedule, err = json.Marshal(schedule); err != nil {
		return 0, errors.Wrap(err, "marshalling schedule")
	}
	if plan.Milestones, err = json.Marshal(draft.Milestones); err != nil {
		return 0, errors.Wrap(err, "marshalling milestones")
	}

	plan, err = svc.repo.CreatePlan(ctx, plan)
	if err != nil {
		return 0, errors.Wrap(err, "creating study plan")
	}
	return plan.ID, nil
}

// marshalObject encodes obj, keeping nil as a SQL/JSON null.
func marshalObject(obj map[string]interface{}) (json.RawMessage, error) {
	if obj == nil {
		return nil, nil
	}
	b, err := json.Marshal(obj)
	if err != nil {
		return nil, errors.Wrap(err, "marshalling json column")
	}
	return b, nil
}
