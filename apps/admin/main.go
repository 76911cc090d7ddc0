package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/myousuf-code/StudyWiseAI/core"
	"github.com/myousuf-code/StudyWiseAI/core/reminder"
	"github.com/myousuf-code/StudyWiseAI/core/user"
	appfs "github.com/myousuf-code/StudyWiseAI/fs"
	emailsvc "github.com/myousuf-code/StudyWiseAI/services/email"
	logsvc "github.com/myousuf-code/StudyWiseAI/services/logger"
	"github.com/myousuf-code/StudyWiseAI/storage/database"
	sqlxrepos "github.com/myousuf-code/StudyWiseAI/storage/database/sqlx"
)

func main() {
	conf := core.NewConfig()

	zl, err := logsvc.NewZap("admin", conf.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "setting up logger: %v\n", err)
		os.Exit(1)
	}
	logger := logsvc.NewZapLogger(zl)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cli := &commandLine{
		conf:    conf,
		logger:  logger,
		connect: connect,
	}
	err = cli.run(ctx, os.Args)

	stop()
	if cli.db != nil {
		_ = cli.db.Close()
	}
	_ = zl.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// connect sets up the database and the services built on it.
func connect(ctx context.Context, cli *commandLine) error {
	if err := database.CreateIfNotExist(ctx, cli.conf); err != nil {
		return err
	}
	db, err := database.OpenSqlx(ctx, cli.conf)
	if err != nil {
		return err
	}
	cli.db = db

	var mailSvc core.EmailService
	if cli.conf.Debug {
		mailSvc = emailsvc.NewConsoleService(cli.conf, cli.logger)
	} else {
		mailSvc = emailsvc.NewSendgridService(cli.conf, cli.logger)
	}
	core.ParseEmailTemplates(appfs.FS, cli.conf, cli.logger)
	cli.mail = mailSvc

	usrRepo := sqlxrepos.NewUserRepository(db)
	cli.usrSvc = user.NewService(usrRepo)
	cli.dispatcher = reminder.NewDispatcher(sqlxrepos.NewReminderRepository(db), usrRepo, mailSvc, cli.logger, cli.conf)
	return nil
}
