package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/myousuf-code/StudyWiseAI/core"
	"github.com/myousuf-code/StudyWiseAI/core/assistant"
	"github.com/myousuf-code/StudyWiseAI/core/progress"
	"github.com/myousuf-code/StudyWiseAI/core/studyplan"
)

type assistantApi struct {
	svc      *assistant.Service
	plans    *studyplan.Service
	progress *progress.Service
	binder
}

func registerAssistantAPI(
	g *echo.Group,
	jwt, usr echo.MiddlewareFunc,
	b binder,
	svc *assistant.Service,
	plans *studyplan.Service,
	prog *progress.Service,
) {
	api := assistantApi{svc: svc, plans: plans, progress: prog, binder: b}

	ag := g.Group("/ai", jwt, usr)
	ag.POST("/chat", api.chat)
	ag.GET("/chat-history", api.history)
	ag.POST("/generate-study-plan", api.generateStudyPlan)
	ag.GET("/progress-insights", api.progressInsights)
	ag.POST("/generate-quiz", api.generateQuiz)
}

// Handlers

func (api *assistantApi) chat(ctx echo.Context) error {
	usr, err := contextUser(ctx)
	if err != nil {
		return err
	}
	var data assistant.ChatRequest
	if err := api.bind(ctx, &data, "ChatRequest"); err != nil {
		return err
	}

	res, err := api.svc.Chat(ctx.Request().Context(), usr, data)
	if err != nil {
		return errors.Wrap(err, "chatting")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *assistantApi) history(ctx echo.Context) error {
	usr, err := contextUser(ctx)
	if err != nil {
		return err
	}
	limit, err := intQuery(ctx, "limit", assistant.DefaultHistoryLimit)
	if err != nil {
		return err
	}

	history, err := api.svc.History(ctx.Request().Context(), usr.ID, limit)
	if err != nil {
		return errors.Wrap(err, "querying chat history")
	}
	return ctx.JSON(http.StatusOK, history)
}

func (api *assistantApi) generateStudyPlan(ctx echo.Context) error {
	usr, err := contextUser(ctx)
	if err != nil {
		return err
	}
	var data studyplan.GeneratePlan
	if err := api.bind(ctx, &data, "GeneratePlan"); err != nil {
		return err
	}

	text, err := api.plans.GeneratePlanText(ctx.Request().Context(), usr, data)
	if err != nil {
		return core.NewUpstreamError("Failed to generate study plan", err)
	}
	return ctx.JSON(http.StatusOK, GeneratedTextPlan{
		Plan:            text,
		Subject:         data.Subject,
		DurationWeeks:   data.DurationWeeks,
		DifficultyLevel: data.DifficultyLevel,
	})
}

func (api *assistantApi) progressInsights(ctx echo.Context) error {
	usr, err := contextUser(ctx)
	if err != nil {
		return err
	}

	res, err := api.progress.Insights(ctx.Request().Context(), usr)
	if err != nil {
		return errors.Wrap(err, "analyzing progress")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *assistantApi) generateQuiz(ctx echo.Context) error {
	var data assistant.QuizRequest
	if err := api.bind(ctx, &data, "QuizRequest"); err != nil {
		return err
	}

	quiz, err := api.svc.GenerateQuiz(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "generating quiz")
	}
	return ctx.JSON(http.StatusOK, quiz)
}

type GeneratedTextPlan struct {
	Plan            string `json:"plan"`
	Subject         string `json:"subject"`
	DurationWeeks   int    `json:"duration_weeks"`
	DifficultyLevel string `json:"difficulty_level"`
}
