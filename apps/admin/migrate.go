package main

import (
	"github.com/spf13/cobra"

	"github.com/myousuf-code/StudyWiseAI/storage/database"
)

var gooseRunFunc = database.RunMigrations // mockable

func (cli *commandLine) migrateCmd() *cobra.Command {
	return dbCommand(&cobra.Command{
		Use:   "migrate COMMAND [ARGS...]",
		Short: "Run a goose command over the embedded migrations",
		Long: `Run a goose command over the embedded migrations.

Commands: up, up-by-one, up-to VERSION, down, down-to VERSION, redo, reset, status, version, fix.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return gooseRunFunc(cmd.Context(), cli.sqlDB(), args[0], args[1:]...)
		},
	})
}
