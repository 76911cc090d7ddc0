package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/myousuf-code/StudyWiseAI/core"
	"github.com/myousuf-code/StudyWiseAI/core/reminder"
	"github.com/myousuf-code/StudyWiseAI/core/user"
)

// commands annotated with needsDB connect before running
const needsDB = "needs-db"

var (
	readPasswordFunc = term.ReadPassword // mockable

	errEmptyPassword = errors.New("password cannot be empty")
)

type commandLine struct {
	conf   *core.Config
	logger core.Logger
	out    io.Writer // defaults to stdout

	db         *sqlx.DB
	mail       core.EmailService
	usrSvc     *user.Service
	dispatcher *reminder.Dispatcher

	// connect opens the database and wires the services above. Left nil when they are set directly.
	connect func(ctx context.Context, cli *commandLine) error
}

func (cli *commandLine) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "StudyWise administration tasks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[needsDB] == "" || cli.connect == nil {
				return nil
			}
			connect := cli.connect
			cli.connect = nil
			return connect(cmd.Context(), cli)
		},
	}
	root.AddCommand(
		cli.migrateCmd(),
		cli.addUserCmd(),
		cli.resetPasswordCmd(),
		cli.careerPlanCmd(),
		cli.remindersCmd(),
	)
	return root
}

// run executes args (program name included).
func (cli *commandLine) run(ctx context.Context, args []string) error {
	root := cli.rootCmd()
	if len(args) > 0 {
		args = args[1:]
	}
	root.SetArgs(args)
	if cli.out != nil {
		root.SetOut(cli.out)
	}
	return root.ExecuteContext(ctx)
}

func (cli *commandLine) sqlDB() *sql.DB {
	if cli.db == nil {
		return nil
	}
	return cli.db.DB
}

func dbCommand(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = make(map[string]string)
	}
	cmd.Annotations[needsDB] = "true"
	return cmd
}

// promptPassword reads a password from the terminal without echoing it.
func promptPassword(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), "Enter password:")
	pwd, err := readPasswordFunc(int(os.Stdin.Fd()))
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", errors.Wrap(err, "reading password")
	}
	if len(pwd) == 0 {
		return "", errEmptyPassword
	}
	return string(pwd), nil
}
