package main

import (
	"context"
	"expvar"
	"fmt"
	"net/http"
	_ "net/http/pprof" // /debug/pprof
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	echoapi "github.com/myousuf-code/StudyWiseAI/apps/api/echo"
	"github.com/myousuf-code/StudyWiseAI/core"
	"github.com/myousuf-code/StudyWiseAI/core/assistant"
	"github.com/myousuf-code/StudyWiseAI/core/career"
	"github.com/myousuf-code/StudyWiseAI/core/progress"
	"github.com/myousuf-code/StudyWiseAI/core/reminder"
	"github.com/myousuf-code/StudyWiseAI/core/studyplan"
	"github.com/myousuf-code/StudyWiseAI/core/user"
	appfs "github.com/myousuf-code/StudyWiseAI/fs"
	aisvc "github.com/myousuf-code/StudyWiseAI/services/ai"
	emailsvc "github.com/myousuf-code/StudyWiseAI/services/email"
	logsvc "github.com/myousuf-code/StudyWiseAI/services/logger"
	"github.com/myousuf-code/StudyWiseAI/storage/database"
	sqlxrepos "github.com/myousuf-code/StudyWiseAI/storage/database/sqlx"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	zl, err := logsvc.NewZap("api", conf.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "setting up logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = zl.Sync() }()

	logger := logsvc.NewRollbarLogger(logsvc.NewZapLogger(zl), conf)
	logger.Enable(!conf.Debug)

	dbLogger := logsvc.NewRollbarLogger(logsvc.NewZapLogger(zl.Named("db")), conf)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// set up DB
	db, err := setUpDB(ctx, conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			dbLogger.Error("Failed to close", err)
		}
	}()

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf, logger)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	ai, closeAI, err := aisvc.New(ctx, conf, logger)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up AI provider: %v", err), err)
	}
	defer func() { _ = closeAI() }()

	usrRepo := sqlxrepos.NewUserRepository(db)
	progRepo := sqlxrepos.NewProgressRepository(db)
	remRepo := sqlxrepos.NewReminderRepository(db)

	usrSvc := user.NewService(usrRepo)
	planSvc := studyplan.NewService(sqlxrepos.NewStudyPlanRepository(db), ai, logger, conf)
	progSvc := progress.NewService(progRepo, planSvc, ai, logger, conf)
	remSvc := reminder.NewService(remRepo, progRepo)
	asstSvc := assistant.NewService(sqlxrepos.NewChatRepository(db), ai, logger, conf)
	careerSvc := career.NewService(sqlxrepos.NewCareerRepository(db), planSvc, ai, logger, conf)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	core.ParseEmailTemplates(appfs.FS, conf, logger)

	user.LoadCommonPasswords(appfs.FS, logger)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)
	expvar.NewString("ai_provider").Set(conf.AI.Provider)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start Reminder Dispatcher

	dispatcher := reminder.NewDispatcher(remRepo, usrRepo, mailSvc, logger, conf)
	go dispatcher.Run(ctx)

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:         conf,
			Logger:       logger,
			UserSvc:      usrSvc,
			StudyPlanSvc: planSvc,
			ProgressSvc:  progSvc,
			ReminderSvc:  remSvc,
			AssistantSvc: asstSvc,
			CareerSvc:    careerSvc,
			Validate:     validate,
			Translator:   translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))
		cancel() // stops the dispatcher

		// give outstanding requests a deadline for completion
		sctx, scancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer scancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(sctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpDB(ctx context.Context, conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(ctx, conf); err != nil {
		return nil, err
	}

	db, err := database.OpenSqlx(ctx, conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(ctx, db.DB); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
