package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (cli *commandLine) addUserCmd() *cobra.Command {
	var uname, email, name string
	cmd := &cobra.Command{
		Use:   "adduser",
		Short: "Create an active user, or update and reactivate an existing one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pwd, err := promptPassword(cmd)
			if err != nil {
				return err
			}
			usr, err := cli.usrSvc.AddUser(cmd.Context(), uname, email, name, pwd)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User %q saved (id %d)\n", usr.Username, usr.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&uname, "username", "", "the user's username")
	cmd.Flags().StringVar(&email, "email", "", "the user's email")
	cmd.Flags().StringVar(&name, "name", "", "the user's full name")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	return dbCommand(cmd)
}
