package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/schema"
	"github.com/goliatone/go-formstate/pkg/session"
)

var (
	fillForm        string
	fillOutput      string
	fillMaxAttempts int
	fillNoConfirm   bool
)

var fillCmd = &cobra.Command{
	Use:   "fill <path>",
	Short: "Fill a form interactively and print the submitted values",
	Args:  cobra.ExactArgs(1),
	RunE:  runFill,
}

func init() {
	fillCmd.Flags().StringVar(&fillForm, "form", "", "form to fill")
	fillCmd.Flags().StringVarP(&fillOutput, "output", "o", "", "write the values to a file instead of stdout")
	fillCmd.Flags().IntVar(&fillMaxAttempts, "max-attempts", session.DefaultMaxAttempts, "prompts per invalid field before giving up")
	fillCmd.Flags().BoolVar(&fillNoConfirm, "yes", false, "submit without asking for confirmation")
}

func runFill(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer syncLogger(cfg.Logger)

	set, err := loadDefinitions(args[0])
	if err != nil {
		return err
	}
	def, err := pickForm(set, fillForm)
	if err != nil {
		return err
	}

	submit := func(_ context.Context, args ...any) (any, error) {
		out := cmd.OutOrStdout()
		if fillOutput != "" {
			file, err := os.Create(fillOutput)
			if err != nil {
				return nil, err
			}
			defer file.Close()
			out = file
		}
		return nil, writeJSON(out, args[0])
	}

	built, err := schema.Build(def, cfg, form.WithSubmit(submit))
	if err != nil {
		return err
	}

	s := session.New(def, built,
		session.WithPromptDriver(session.NewSurveyDriver(cmd.ErrOrStderr())),
		session.WithMaxAttempts(fillMaxAttempts),
		session.WithConfirm(!fillNoConfirm),
		session.WithLogger(cfg.Logger),
	)
	_, err = s.Run(cmd.Context())
	return err
}
