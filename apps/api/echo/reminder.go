package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/myousuf-code/StudyWiseAI/core/reminder"
)

type reminderApi struct {
	svc *reminder.Service
	binder
}

func registerReminderAPI(g *echo.Group, jwt, usr echo.MiddlewareFunc, b binder, svc *reminder.Service) {
	api := reminderApi{svc: svc, binder: b}

	rg := g.Group("/reminders", jwt, usr)
	rg.POST("", api.create)
	rg.GET("", api.query)
	rg.GET("/upcoming", api.upcoming)
	rg.POST("/study-session", api.studySession)
	rg.POST("/break-reminder", api.breakReminder)
	rg.POST("/smart-recommendations", api.smartRecommendations)

	// detail endpoints
	rg.GET("/:id", api.retrieve)
	rg.PUT("/:id", api.update)
	rg.DELETE("/:id", api.destroy)
}

// Handlers

func (api *reminderApi) create(ctx echo.Context) error {
	usr, err := contextUser(ctx)
	if err != nil {
		return err
	}
	var data reminder.NewReminder
	if err := api.bind(ctx, &data, "NewReminder"); err != nil {
		return err
	}

	r, err := api.svc.Create(ctx.Request().Context(), usr.ID, data)
	if err != nil {
		return errors.Wrap(err, "creating reminder")
	}
	return ctx.JSON(http.StatusCreated, r)
}

func (api *reminderApi) query(ctx echo.Context) error {
	usr, err := contextUser(ctx)
	if err != nil {
		return err
	}
	upcomingOnly, _ := strconv.ParseBool(ctx.QueryParam("upcoming_only"))

	reminders, err := api.svc.List(ctx.Request().Context(), usr.ID, upcomingOnly)
	if err != nil {
		return errors.Wrap(err, "querying reminders")
	}
	if reminders == nil {
		reminders = []reminder.Reminder{}
	}
	return ctx.JSON(http.StatusOK, reminders)
}

func (api *reminderApi) upcoming(ctx echo.Context) error {
	usr, err := contextUser(ctx)
	if err != nil {
		return err
	}
	hours, err := intQuery(ctx, "hours", reminder.DefaultUpcomingHours)
	if err != nil {
		return err
	}

	upcoming, err := api.svc.Upcoming(ctx.Request().Context(), usr.ID, hours)
	if err != nil {
		return errors.Wrap(err, "querying upcoming reminders")
	}
	if upcoming == nil {
		upcoming = []reminder.Upcoming{}
	}
	return ctx.JSON(http.StatusOK, upcoming)
}

func (api *reminderApi) retrieve(ctx echo.Context) error {
	usr, err := contextUser(ctx)
	if err != nil {
		return err
	}
	id, err := idParam(ctx, "id")
	if err != nil {
		return err
	}

	r, err := api.svc.Get(ctx.Request().Context(), usr.ID, id)
	if err != nil {
		return errors.Wrap(err, "getting reminder")
	}
	return ctx.JSON(http.StatusOK, r)
}

func (api *reminderApi) update(ctx echo.Context) error {
	usr, err := contextUser(ctx)
	if err != nil {
		return err
	}
	id, err := idParam(ctx, "id")
	if err != nil {
		return err
	}
	var data reminder.UpdateReminder
	if err := api.bind(ctx, &data, "UpdateReminder"); err != nil {
		return err
	}

	r, err := api.svc.Update(ctx.Request().Context(), usr.ID, id, data)
	if err != nil {
		return errors.Wrap(err, "updating reminder")
	}
	return ctx.JSON(http.StatusOK, r)
}

func (api *reminderApi) destroy(ctx echo.Context) error {
	usr, err := contextUser(ctx)
	if err != nil {
		return err
	}
	id, err := idParam(ctx, "id")
	if err != nil {
		return err
	}

	if err := api.svc.Delete(ctx.Request().Context(), usr.ID, id); err != nil {
		return errors.Wrap(err, "deleting reminder")
	}
	return ctx.JSON(http.StatusOK, MessageResponse{Message: "Reminder deleted successfully"})
}

func (api *reminderApi) studySession(ctx echo.Context) error {
	usr, err := contextUser(ctx)
	if err != nil {
		return err
	}
	var data reminder.StudySessionReminder
	if err := api.bind(ctx, &data, "StudySessionReminder"); err != nil {
		return err
	}

	r, err := api.svc.ScheduleStudySession(ctx.Request().Context(), usr.ID, data)
	if err != nil {
		return errors.Wrap(err, "scheduling study session reminder")
	}
	return ctx.JSON(http.StatusCreated, echo.Map{
		"message":       "Study session reminder created",
		"reminder_id":   r.ID,
		"reminder_time": r.ScheduledTime,
	})
}

func (api *reminderApi) breakReminder(ctx echo.Context) error {
	usr, err := contextUser(ctx)
	if err != nil {
		return err
	}
	var data reminder.BreakReminder
	if err := api.bind(ctx, &data, "BreakReminder"); err != nil {
		return err
	}

	r, err := api.svc.ScheduleBreak(ctx.Request().Context(), usr.ID, data)
	if err != nil {
		return errors.Wrap(err, "scheduling break reminder")
	}
	return ctx.JSON(http.StatusCreated, echo.Map{
		"message":     "Break reminder created",
		"reminder_id": r.ID,
		"break_time":  r.ScheduledTime,
	})
}

func (api *reminderApi) smartRecommendations(ctx echo.Context) error {
	usr, err := contextUser(ctx)
	if err != nil {
		return err
	}

	res, err := api.svc.SmartRecommendations(ctx.Request().Context(), usr.ID)
	if err != nil {
		return errors.Wrap(err, "creating smart reminders")
	}
	return ctx.JSON(http.StatusOK, res)
}
