package echoapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myousuf-code/StudyWiseAI/core"
	"github.com/myousuf-code/StudyWiseAI/core/career"
	"github.com/myousuf-code/StudyWiseAI/core/studyplan"
)

const sampleCareerPlan = `## Key Subjects to Focus On
- Statistics and probability
- Python programming

### Milestones
Short-term:
- Finish an online statistics course
- Build 2 portfolio projects

Medium-term:
- Get a junior analyst job

Long-term:
- Lead a data team`

func startCareerSession(t *testing.T, app testApp, token, profession string) CareerStartResponse {
	t.Helper()
	rec := app.do(t, http.MethodPost, "/api/ai/career-counseling/start", token, career.StartSession{TargetProfession: profession})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var res CareerStartResponse
	unmarshal(t, rec, &res)
	return res
}

func Test_careerApi_startAndPlan(t *testing.T) {
	app := setup(t)
	_, token := app.createUser(t, "victor")
	_, otherToken := app.createUser(t, "wendy")

	started := startCareerSession(t, app, token, " Software Engineer ")
	assert.Equal(t, "Software Engineer", started.TargetProfession)
	assert.Equal(t, career.RenderQuestions("Software Engineer"), started.Questions)
	assert.Contains(t, started.Questions, "Software Engineer")
	assert.Empty(t, app.ai.Calls(), "questions are rendered without the model")

	t.Run("blank profession", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, "/api/ai/career-counseling/start", token, career.StartSession{TargetProfession: "  "})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("ai plan", func(t *testing.T) {
		app.ai.SetFunc(func(context.Context, core.CompletionRequest) (string, error) { return sampleCareerPlan, nil })
		rec := app.do(t, http.MethodPost, "/api/ai/career-counseling/generate-plan", token, career.GeneratePlan{
			SessionID: started.SessionID,
			Responses: []string{" Beginner, some Python ", "10 hours a week"},
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var res CareerPlanResponse
		unmarshal(t, rec, &res)
		assert.Equal(t, career.PlanSourceAI, res.Source)
		assert.Equal(t, sampleCareerPlan, res.ActionPlan)

		calls := app.ai.Calls()
		require.NotEmpty(t, calls)
		assert.Contains(t, calls[len(calls)-1].Prompt, "Beginner, some Python")
		assert.NotContains(t, calls[len(calls)-1].Prompt, " Beginner, some Python ")
	})

	t.Run("template fallback", func(t *testing.T) {
		app.ai.SetFunc(failingAI)
		rec := app.do(t, http.MethodPost, "/api/ai/career-counseling/generate-plan", token, career.GeneratePlan{SessionID: started.SessionID})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var res CareerPlanResponse
		unmarshal(t, rec, &res)
		assert.Equal(t, career.PlanSourceTemplate, res.Source)
		assert.Equal(t, career.RenderActionPlan("Software Engineer"), res.ActionPlan)
	})

	tests := []httpTest{
		{
			name:     "other user's session",
			method:   http.MethodPost,
			path:     "/api/ai/career-counseling/generate-plan",
			body:     marchallObj(t, career.GeneratePlan{SessionID: started.SessionID}),
			token:    otherToken,
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "Career session not found"}),
		},
		{
			name:     "missing session id",
			method:   http.MethodPost,
			path:     "/api/ai/career-counseling/generate-plan",
			body:     []byte(`{"responses":["yes"]}`),
			token:    token,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "other user has no sessions",
			method:   http.MethodGet,
			path:     "/api/ai/career-counseling/sessions",
			token:    otherToken,
			wantCode: http.StatusOK,
			wantData: []byte(`[]`),
		},
	}
	runHttpTests(t, app, tests)

	t.Run("sessions", func(t *testing.T) {
		second := startCareerSession(t, app, token, "Nurse")

		rec := app.do(t, http.MethodGet, "/api/ai/career-counseling/sessions", token)
		require.Equal(t, http.StatusOK, rec.Code)
		var sessions []career.Session
		unmarshal(t, rec, &sessions)
		require.Len(t, sessions, 2)
		assert.Equal(t, second.SessionID, sessions[0].ID)
		assert.Equal(t, started.SessionID, sessions[1].ID)
		assert.Equal(t, career.PlanSourceTemplate, sessions[1].PlanSource)
		assert.Equal(t, []string{}, sessions[0].UserResponses)
	})
}

func Test_careerApi_convert(t *testing.T) {
	app := setup(t)
	usr, token := app.createUser(t, "xavier")
	_, otherToken := app.createUser(t, "yara")

	started := startCareerSession(t, app, token, "Data Scientist")
	app.ai.SetFunc(func(context.Context, core.CompletionRequest) (string, error) { return sampleCareerPlan, nil })
	rec := app.do(t, http.MethodPost, "/api/ai/career-counseling/generate-plan", token, career.GeneratePlan{SessionID: started.SessionID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	t.Run("convert", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, "/api/ai/career-counseling/convert-to-study-plan", token, career.ConvertToStudyPlan{
			SessionID: started.SessionID,
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var res career.ConversionResult
		unmarshal(t, rec, &res)
		assert.Equal(t, 3, res.TasksCreated)

		rec = app.do(t, http.MethodGet, fmt.Sprintf("/api/study-plans/%d", res.StudyPlanID), token)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var plan studyplan.StudyPlan
		unmarshal(t, rec, &plan)
		assert.Equal(t, usr.ID, plan.UserID)
		assert.Equal(t, "Career Path: Data Scientist", plan.Title)
		assert.Equal(t, "Data Scientist", plan.Subject)
		assert.Equal(t, "beginner", plan.DifficultyLevel)
		assert.Equal(t, res.TasksCreated*5*60, plan.EstimatedDuration)
		assert.True(t, plan.IsActive)

		var schedule map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(plan.Schedule, &schedule))
		assert.Contains(t, schedule, "weekly_tasks")
		assert.Contains(t, schedule, "daily_activities")
		var tasks []career.Task
		require.NoError(t, json.Unmarshal(schedule["tasks"], &tasks))
		assert.Len(t, tasks, res.TasksCreated)
	})

	t.Run("custom title", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, "/api/ai/career-counseling/convert-to-study-plan", token, career.ConvertToStudyPlan{
			SessionID: started.SessionID,
			PlanTitle: " My data path ",
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var res career.ConversionResult
		unmarshal(t, rec, &res)

		rec = app.do(t, http.MethodGet, fmt.Sprintf("/api/study-plans/%d", res.StudyPlanID), token)
		require.Equal(t, http.StatusOK, rec.Code)
		var plan studyplan.StudyPlan
		unmarshal(t, rec, &plan)
		assert.Equal(t, "My data path", plan.Title)
	})

	t.Run("session without plan uses the template", func(t *testing.T) {
		fresh := startCareerSession(t, app, token, "Teacher")
		rec := app.do(t, http.MethodPost, "/api/ai/career-counseling/convert-to-study-plan", token, career.ConvertToStudyPlan{
			SessionID: fresh.SessionID,
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var res career.ConversionResult
		unmarshal(t, rec, &res)
		assert.Greater(t, res.TasksCreated, 0)
	})

	tests := []httpTest{
		{
			name:     "unknown session",
			method:   http.MethodPost,
			path:     "/api/ai/career-counseling/convert-to-study-plan",
			body:     []byte(`{"session_id":9999}`),
			token:    token,
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "Career session not found"}),
		},
		{
			name:     "other user's session",
			method:   http.MethodPost,
			path:     "/api/ai/career-counseling/convert-to-study-plan",
			body:     marchallObj(t, career.ConvertToStudyPlan{SessionID: started.SessionID}),
			token:    otherToken,
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "Career session not found"}),
		},
	}
	runHttpTests(t, app, tests)
}
