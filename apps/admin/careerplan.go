package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/myousuf-code/StudyWiseAI/core/career"
)

// careerPlanCmd previews the offline career counseling output. It needs neither the database nor a model.
func (cli *commandLine) careerPlanCmd() *cobra.Command {
	var profession string
	root := &cobra.Command{
		Use:   "careerplan",
		Short: "Render career counseling templates",
	}
	root.PersistentFlags().StringVar(&profession, "profession", "", "the target profession")
	_ = root.MarkPersistentFlagRequired("profession")

	questions := &cobra.Command{
		Use:   "questions",
		Short: "Print the initial counseling questions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), career.RenderQuestions(profession))
			return nil
		},
	}

	render := &cobra.Command{
		Use:   "render",
		Short: "Print the template action plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), career.RenderActionPlan(profession))
			return nil
		},
	}

	var file string
	convert := &cobra.Command{
		Use:   "convert",
		Short: "Print the study plan draft of an action plan as JSON",
		Long: `Print the study plan draft of an action plan as JSON.

The action plan is read from --file, or rendered from the template when no file is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			text := career.RenderActionPlan(profession)
			if file != "" {
				b, err := os.ReadFile(file)
				if err != nil {
					return errors.Wrap(err, "reading action plan")
				}
				text = string(b)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(career.Convert(text, profession))
		},
	}
	convert.Flags().StringVarP(&file, "file", "f", "", "action plan file")

	root.AddCommand(questions, render, convert)
	return root
}
