package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/myousuf-code/StudyWiseAI/core/progress"
	"github.com/myousuf-code/StudyWiseAI/core/studyplan"
)

type progressApi struct {
	svc *progress.Service
	binder
}

func registerProgressAPI(g *echo.Group, jwt, usr echo.MiddlewareFunc, b binder, svc *progress.Service) {
	api := progressApi{svc: svc, binder: b}

	pg := g.Group("/progress", jwt, usr)
	pg.POST("", api.create)
	pg.GET("", api.query)
	pg.GET("/summary", api.summary)
	pg.GET("/analytics", api.analytics)
	pg.PUT("/sessions/:id", api.updateSession)
}

// Handlers

func (api *progressApi) create(ctx echo.Context) error {
	usr, err := contextUser(ctx)
	if err != nil {
		return err
	}
	var data progress.NewRecord
	if err := api.bind(ctx, &data, "NewRecord"); err != nil {
		return err
	}

	rec, err := api.svc.Create(ctx.Request().Context(), usr.ID, data)
	if err != nil {
		return errors.Wrap(err, "creating progress record")
	}
	return ctx.JSON(http.StatusCreated, rec)
}

func (api *progressApi) query(ctx echo.Context) error {
	usr, err := contextUser(ctx)
	if err != nil {
		return err
	}
	days, err := intQuery(ctx, "days", progress.DefaultDays)
	if err != nil {
		return err
	}

	records, err := api.svc.List(ctx.Request().Context(), usr.ID, ctx.QueryParam("subject"), days)
	if err != nil {
		return errors.Wrap(err, "querying progress records")
	}
	if records == nil {
		records = []progress.Record{}
	}
	return ctx.JSON(http.StatusOK, records)
}

func (api *progressApi) summary(ctx echo.Context) error {
	usr, err := contextUser(ctx)
	if err != nil {
		return err
	}
	days, err := intQuery(ctx, "days", progress.DefaultDays)
	if err != nil {
		return err
	}

	summary, err := api.svc.Summary(ctx.Request().Context(), usr.ID, days)
	if err != nil {
		return errors.Wrap(err, "summarizing progress")
	}
	return ctx.JSON(http.StatusOK, summary)
}

func (api *progressApi) analytics(ctx echo.Context) error {
	usr, err := contextUser(ctx)
	if err != nil {
		return err
	}

	res, err := api.svc.Analytics(ctx.Request().Context(), usr.ID, ctx.QueryParam("period"))
	if err != nil {
		return errors.Wrap(err, "computing analytics")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *progressApi) updateSession(ctx echo.Context) error {
	usr, err := contextUser(ctx)
	if err != nil {
		return err
	}
	id, err := idParam(ctx, "id")
	if err != nil {
		return err
	}
	var data studyplan.UpdateSession
	if err := api.bind(ctx, &data, "UpdateSession"); err != nil {
		return err
	}

	res, err := api.svc.CompleteSession(ctx.Request().Context(), usr.ID, id, data)
	if err != nil {
		return errors.Wrap(err, "updating study session")
	}
	return ctx.JSON(http.StatusOK, SessionUpdateResponse{
		Message:        "Session updated successfully",
		Session:        res.Session,
		ProgressRecord: res.Record,
	})
}

type SessionUpdateResponse struct {
	Message        string            `json:"message"`
	Session        studyplan.Session `json:"session"`
	ProgressRecord *progress.Record  `json:"progress_record,omitempty"`
}
