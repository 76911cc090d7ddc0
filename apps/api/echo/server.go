package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/kat-co/vala"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/myousuf-code/StudyWiseAI/core"
	"github.com/myousuf-code/StudyWiseAI/core/assistant"
	"github.com/myousuf-code/StudyWiseAI/core/career"
	"github.com/myousuf-code/StudyWiseAI/core/progress"
	"github.com/myousuf-code/StudyWiseAI/core/reminder"
	"github.com/myousuf-code/StudyWiseAI/core/studyplan"
	"github.com/myousuf-code/StudyWiseAI/core/user"
)

type (
	ServerDeps struct {
		Conf           *core.Config
		Logger         core.Logger
		UserSvc        *user.Service
		StudyPlanSvc   *studyplan.Service
		ProgressSvc    *progress.Service
		ReminderSvc    *reminder.Service
		AssistantSvc   *assistant.Service
		CareerSvc      *career.Service
		Validate       *validator.Validate
		Translator     ut.Translator
		DisableReqLogs bool
	}

	Server struct {
		deps     ServerDeps
		app      *echo.Echo
		auth     *tokenAuth
		errors   chan error
		shutdown chan os.Signal
	}
)

func NewServer(deps ServerDeps) *Server {
	vala.BeginValidation().Validate(
		vala.IsNotNil(deps.Conf, "Conf"),
		vala.IsNotNil(deps.Logger, "Logger"),
		vala.IsNotNil(deps.UserSvc, "UserSvc"),
		vala.IsNotNil(deps.StudyPlanSvc, "StudyPlanSvc"),
		vala.IsNotNil(deps.ProgressSvc, "ProgressSvc"),
		vala.IsNotNil(deps.ReminderSvc, "ReminderSvc"),
		vala.IsNotNil(deps.AssistantSvc, "AssistantSvc"),
		vala.IsNotNil(deps.CareerSvc, "CareerSvc"),
		vala.IsNotNil(deps.Validate, "Validate"),
		vala.IsNotNil(deps.Translator, "Translator"),
	).CheckAndPanic()

	s := &Server{
		deps:     deps,
		app:      echo.New(),
		auth:     newTokenAuth(deps.Conf),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.deps.Conf

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.deps.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{conf.FrontendBaseURL},
		AllowCredentials: true,
	}))

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.auth, s.signalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", s.home)
	s.app.GET("/health", health)

	g := s.app.Group("/api")
	jwt := middleware.JWTWithConfig(s.auth.config)
	usr := activeUserMiddleware(s.auth, s.deps.UserSvc)
	v := binder{validate: s.deps.Validate}

	registerUserAPI(g, jwt, usr, v, s.auth, s.deps.UserSvc)
	registerStudyPlanAPI(g, jwt, usr, v, s.deps.StudyPlanSvc)
	registerProgressAPI(g, jwt, usr, v, s.deps.ProgressSvc)
	registerReminderAPI(g, jwt, usr, v, s.deps.ReminderSvc)
	registerAssistantAPI(g, jwt, usr, v, s.deps.AssistantSvc, s.deps.StudyPlanSvc, s.deps.ProgressSvc)
	registerCareerAPI(g, jwt, usr, v, s.deps.CareerSvc)
}

// Start listens until the server is shut down. Listening errors are sent to Errors().
func (s *Server) Start() {
	if err := s.app.Start(s.deps.Conf.Address()); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *Server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default: // already signaled
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *Server) home(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{
		"message": "Welcome to " + s.deps.Conf.AppName + " API",
		"version": s.deps.Conf.Build,
	})
}

func health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{"status": "healthy"})
}
