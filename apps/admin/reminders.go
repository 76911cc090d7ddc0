package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (cli *commandLine) remindersCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "reminders",
		Short: "Manage reminder delivery",
	}
	root.AddCommand(dbCommand(&cobra.Command{
		Use:   "dispatch",
		Short: "Email every due reminder once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sent, err := cli.dispatcher.DispatchDue(cmd.Context())
			// emails may still be in flight
			if w, ok := cli.mail.(interface{ Wait() }); ok {
				w.Wait()
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sent %d reminders\n", sent)
			return nil
		},
	}))
	return root
}
