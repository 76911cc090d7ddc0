package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/myousuf-code/StudyWiseAI/core/career"
)

type careerApi struct {
	svc *career.Service
	binder
}

func registerCareerAPI(g *echo.Group, jwt, usr echo.MiddlewareFunc, b binder, svc *career.Service) {
	api := careerApi{svc: svc, binder: b}

	cg := g.Group("/ai/career-counseling", jwt, usr)
	cg.POST("/start", api.start)
	cg.POST("/generate-plan", api.generatePlan)
	cg.POST("/convert-to-study-plan", api.convert)
	cg.GET("/sessions", api.sessions)
}

// Handlers

func (api *careerApi) start(ctx echo.Context) error {
	usr, err := contextUser(ctx)
	if err != nil {
		return err
	}
	var data career.StartSession
	if err := api.bind(ctx, &data, "StartSession"); err != nil {
		return err
	}

	sess, err := api.svc.Start(ctx.Request().Context(), usr.ID, data)
	if err != nil {
		return errors.Wrap(err, "starting career session")
	}
	return ctx.JSON(http.StatusCreated, CareerStartResponse{
		SessionID:        sess.ID,
		TargetProfession: sess.TargetProfession,
		Questions:        sess.InitialQuestions,
	})
}

func (api *careerApi) generatePlan(ctx echo.Context) error {
	usr, err := contextUser(ctx)
	if err != nil {
		return err
	}
	var data career.GeneratePlan
	if err := api.bind(ctx, &data, "GeneratePlan"); err != nil {
		return err
	}

	sess, err := api.svc.GeneratePlan(ctx.Request().Context(), usr.ID, data)
	if err != nil {
		return errors.Wrap(err, "generating career plan")
	}
	return ctx.JSON(http.StatusOK, CareerPlanResponse{
		SessionID:        sess.ID,
		TargetProfession: sess.TargetProfession,
		ActionPlan:       sess.ActionPlan,
		Source:           sess.PlanSource,
	})
}

func (api *careerApi) convert(ctx echo.Context) error {
	usr, err := contextUser(ctx)
	if err != nil {
		return err
	}
	var data career.ConvertToStudyPlan
	if err := api.bind(ctx, &data, "ConvertToStudyPlan"); err != nil {
		return err
	}

	res, err := api.svc.ConvertToStudyPlan(ctx.Request().Context(), usr.ID, data)
	if err != nil {
		return errors.Wrap(err, "converting career plan")
	}
	return ctx.JSON(http.StatusCreated, res)
}

func (api *careerApi) sessions(ctx echo.Context) error {
	usr, err := contextUser(ctx)
	if err != nil {
		return err
	}

	sessions, err := api.svc.History(ctx.Request().Context(), usr.ID)
	if err != nil {
		return errors.Wrap(err, "querying career sessions")
	}
	if sessions == nil {
		sessions = []career.Session{}
	}
	return ctx.JSON(http.StatusOK, sessions)
}

type (
	CareerStartResponse struct {
		SessionID        int    `json:"session_id"`
		TargetProfession string `json:"target_profession"`
		Questions        string `json:"questions"`
	}

	CareerPlanResponse struct {
		SessionID        int    `json:"session_id"`
		TargetProfession string `json:"target_profession"`
		ActionPlan       string `json:"action_plan"`
		Source           string `json:"source"`
	}
)
