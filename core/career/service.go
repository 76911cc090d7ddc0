package career

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/myousuf-code/StudyWiseAI/core"
)

var (
	ErrNotFound = core.NewNotFoundError("Career session")

	nowFunc = time.Now // mockable
)

type (
	Repository interface {
		CreateSession(ctx context.Context, sess Session) (Session, error)
		GetSession(ctx context.Context, userID, id int) (Session, error)
		UpdateSession(ctx context.Context, sess Session) (Session, error)
		QuerySessions(ctx context.Context, userID int) ([]Session, error)
	}

	// StudyPlanStore persists a converted plan and returns the new study plan ID.
	StudyPlanStore interface {
		CreateFromCareerDraft(ctx context.Context, userID int, title, profession string, draft ParsedStudyPlanDraft) (int, error)
	}

	Service struct {
		repo   Repository
		plans  StudyPlanStore
		ai     core.AIProvider
		logger core.Logger
		aiConf core.AIConfig
	}
)

func NewService(repo Repository, plans StudyPlanStore, ai core.AIProvider, logger core.Logger, conf *core.Config) *Service {
	vala.BeginValidation().Validate(
		vala.IsNotNil(repo, "repo"),
		vala.IsNotNil(plans, "plans"),
		vala.IsNotNil(ai, "ai"),
		vala.IsNotNil(logger, "logger"),
		vala.IsNotNil(conf, "conf"),
	).CheckAndPanic()

	return &Service{
		repo:   repo,
		plans:  plans,
		ai:     ai,
		logger: logger,
		aiConf: conf.AI,
	}
}

// Start opens a counseling session and returns it with its initial questions.
func (svc *Service) Start(ctx context.Context, userID int, ss StartSession) (Session, error) {
	ss.Clean()
	now := nowFunc().UTC()
	sess := Session{
		UserID:           userID,
		TargetProfession: ss.TargetProfession,
		InitialQuestions: RenderQuestions(ss.TargetProfession),
		UserResponses:    []string{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	sess, err := svc.repo.CreateSession(ctx, sess)
	return sess, errors.Wrap(err, "creating career session")
}

func (svc *Service) Get(ctx context.Context, userID, id int) (Session, error) {
	sess, err := svc.repo.GetSession(ctx, userID, id)
	return sess, errors.Wrap(err, "getting career session")
}

func (svc *Service) History(ctx context.Context, userID int) ([]Session, error) {
	sessions, err := svc.repo.QuerySessions(ctx, userID)
	return sessions, errors.Wrap(err, "querying career sessions")
}

// GeneratePlan produces the action plan of a session. The language model is given CareerPlanTimeout;
// on error, timeout or an empty answer the template plan is used instead.
func (svc *Service) GeneratePlan(ctx context.Context, userID int, gp GeneratePlan) (Session, error) {
	sess, err := svc.repo.GetSession(ctx, userID, gp.SessionID)
	if err != nil {
		return Session{}, errors.Wrap(err, "getting career session")
	}
	if gp.Responses != nil {
		sess.UserResponses = cleanResponses(gp.Responses)
	}

	plan, err := svc.completePlan(ctx, sess)
	if err != nil {
		svc.logger.Warn(
			fmt.Sprintf("career plan falling back to template for %q", sess.TargetProfession),
			errors.Wrap(err, "generating career plan with AI"),
		)
		sess.ActionPlan = RenderActionPlan(sess.TargetProfession)
		sess.PlanSource = PlanSourceTemplate
	} else {
		sess.ActionPlan = plan
		sess.PlanSource = PlanSourceAI
	}

	sess.UpdatedAt = nowFunc().UTC()
	sess, err = svc.repo.UpdateSession(ctx, sess)
	return sess, errors.Wrap(err, "updating career session")
}

func (svc *Service) completePlan(ctx context.Context, sess Session) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, svc.aiConf.CareerPlanTimeout)
	defer cancel()

	req := core.CompletionRequest{
		System: careerSystemPrompt,
		Prompt: careerPlanPrompt(sess),
	}.WithDefaults(svc.aiConf)

	res, err := svc.ai.Complete(ctx, req)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(res.Text)
	if text == "" {
		return "", core.ErrEmptyCompletion
	}
	return text, nil
}

// ConvertToStudyPlan turns the session's action plan into a persisted study plan.
// A session without a plan yet is converted from the template plan.
func (svc *Service) ConvertToStudyPlan(ctx context.Context, userID int, c ConvertToStudyPlan) (ConversionResult, error) {
	c.Clean()
	sess, err := svc.repo.GetSession(ctx, userID, c.SessionID)
	if err != nil {
		return ConversionResult{}, errors.Wrap(err, "getting career session")
	}

	text := sess.ActionPlan
	if strings.TrimSpace(text) == "" {
		text = RenderActionPlan(sess.TargetProfession)
	}
	draft := Convert(text, sess.TargetProfession)

	title := c.PlanTitle
	if title == "" {
		title = fmt.Sprintf("Career Path: %s", sess.TargetProfession)
	}
	planID, err := svc.plans.CreateFromCareerDraft(ctx, userID, title, sess.TargetProfession, draft)
	if err != nil {
		return ConversionResult{}, errors.Wrap(err, "creating study plan from career draft")
	}
	return ConversionResult{StudyPlanID: planID, TasksCreated: len(draft.Tasks)}, nil
}

func cleanResponses(responses []string) []string {
	cleaned := make([]string, 0, len(responses))
	for _, r := range responses {
		cleaned = append(cleaned, core.CleanString(r))
	}
	return cleaned
}
