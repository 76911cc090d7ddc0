package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/myousuf-code/StudyWiseAI/core/studyplan"
)

type studyPlanApi struct {
	svc *studyplan.Service
	binder
}

func registerStudyPlanAPI(g *echo.Group, jwt, usr echo.MiddlewareFunc, b binder, svc *studyplan.Service) {
	api := studyPlanApi{svc: svc, binder: b}

	pg := g.Group("/study-plans", jwt, usr)
	pg.POST("", api.create)
	pg.GET("", api.query)
	pg.POST("/ai-generate", api.generate)

	// detail endpoints
	pg.GET("/:id", api.retrieve)
	pg.PUT("/:id", api.update)
	pg.DELETE("/:id", api.destroy)
	pg.POST("/:id/sessions", api.createSession)
	pg.GET("/:id/sessions", api.querySessions)
}

// Handlers

func (api *studyPlanApi) create(ctx echo.Context) error {
	usr, err := contextUser(ctx)
	if err != nil {
		return err
	}
	var data studyplan.NewStudyPlan
	if err := api.bind(ctx, &data, "NewStudyPlan"); err != nil {
		return err
	}

	plan, err := api.svc.Create(ctx.Request().Context(), usr.ID, data)
	if err != nil {
		return errors.Wrap(err, "creating study plan")
	}
	return ctx.JSON(http.StatusCreated, plan)
}

func (api *studyPlanApi) query(ctx echo.Context) error {
	usr, err := contextUser(ctx)
	if err != nil {
		return err
	}
	ordering := new(Ordering)
	ordering.Bind(ctx)

	plans, err := api.svc.List(ctx.Request().Context(), usr.ID, true /* activeOnly */, ordering.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying study plans")
	}
	if plans == nil {
		plans = []studyplan.StudyPlan{}
	}
	return ctx.JSON(http.StatusOK, plans)
}

func (api *studyPlanApi) retrieve(ctx echo.Context) error {
	usr, err := contextUser(ctx)
	if err != nil {
		return err
	}
	id, err := idParam(ctx, "id")
	if err != nil {
		return err
	}

	plan, err := api.svc.Get(ctx.Request().Context(), usr.ID, id)
	if err != nil {
		return errors.Wrap(err, "getting study plan")
	}
	return ctx.JSON(http.StatusOK, plan)
}

func (api *studyPlanApi) update(ctx echo.Context) error {
	usr, err := contextUser(ctx)
	if err != nil {
		return err
	}
	id, err := idParam(ctx, "id")
	if err != nil {
		return err
	}
	var data studyplan.UpdateStudyPlan
	if err := api.bind(ctx, &data, "UpdateStudyPlan"); err != nil {
		return err
	}

	plan, err := api.svc.Update(ctx.Request().Context(), usr.ID, id, data)
	if err != nil {
		return errors.Wrap(err, "updating study plan")
	}
	return ctx.JSON(http.StatusOK, plan)
}

func (api *studyPlanApi) destroy(ctx echo.Context) error {
	usr, err := contextUser(ctx)
	if err != nil {
		return err
	}
	id, err := idParam(ctx, "id")
	if err != nil {
		return err
	}

	if err := api.svc.Deactivate(ctx.Request().Context(), usr.ID, id); err != nil {
		return errors.Wrap(err, "deactivating study plan")
	}
	return ctx.JSON(http.StatusOK, MessageResponse{Message: "Study plan deactivated successfully"})
}

func (api *studyPlanApi) createSession(ctx echo.Context) error {
	usr, err := contextUser(ctx)
	if err != nil {
		return err
	}
	id, err := idParam(ctx, "id")
	if err != nil {
		return err
	}
	var data studyplan.NewSession
	if err := api.bind(ctx, &data, "NewSession"); err != nil {
		return err
	}

	sess, err := api.svc.CreateSession(ctx.Request().Context(), usr.ID, id, data)
	if err != nil {
		return errors.Wrap(err, "creating study session")
	}
	return ctx.JSON(http.StatusCreated, sess)
}

func (api *studyPlanApi) querySessions(ctx echo.Context) error {
	usr, err := contextUser(ctx)
	if err != nil {
		return err
	}
	id, err := idParam(ctx, "id")
	if err != nil {
		return err
	}

	sessions, err := api.svc.ListSessions(ctx.Request().Context(), usr.ID, id)
	if err != nil {
		return errors.Wrap(err, "querying study sessions")
	}
	if sessions == nil {
		sessions = []studyplan.Session{}
	}
	return ctx.JSON(http.StatusOK, sessions)
}

func (api *studyPlanApi) generate(ctx echo.Context) error {
	usr, err := contextUser(ctx)
	if err != nil {
		return err
	}
	var data studyplan.GeneratePlan
	if err := api.bind(ctx, &data, "GeneratePlan"); err != nil {
		return err
	}

	plan, text, err := api.svc.GenerateWithAI(ctx.Request().Context(), usr, data)
	if err != nil {
		return errors.Wrap(err, "generating study plan")
	}
	return ctx.JSON(http.StatusCreated, GeneratedPlanResponse{Plan: plan, AIContent: text})
}

type GeneratedPlanResponse struct {
	Plan      studyplan.StudyPlan `json:"plan"`
	AIContent string              `json:"ai_content"`
}
