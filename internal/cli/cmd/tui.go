package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"vidgrab/internal/api"
	"vidgrab/internal/config"
	"vidgrab/internal/pipeline"
	"vidgrab/internal/progress"
	"vidgrab/internal/save"
	"vidgrab/internal/ui"
)

func newTuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "tui [url]",
		Short:         "Start the interactive interface",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := ""
			if len(args) == 1 {
				url = args[0]
			}
			return runTUI(cmd, url)
		},
	}
}

// runTUI starts the program. Logs go to a file so they never tear the screen.
func runTUI(cmd *cobra.Command, initialURL string) error {
	in := inputsFrom(cmd)
	logFile, err := config.OpenLogFile()
	if err != nil {
		return &ExitError{Code: ExitLocalError, Err: fmt.Errorf("open log file: %w", err)}
	}
	defer logFile.Close()
	logger := config.NewLogger(logFile, in.Options.Verbose)

	themes, err := config.DefaultThemeStore()
	if err != nil {
		return &ExitError{Code: ExitLocalError, Err: err}
	}

	client := api.NewClient(in.Options.Server, api.WithLogger(logger))
	saver := save.NewSaver(in.Options.OutDir)
	err = ui.Run(cmd.Context(), ui.Deps{
		Service: func(rp progress.Reporter) *pipeline.Service {
			return pipeline.NewService(
				pipeline.WithClient(client),
				pipeline.WithSaver(saver),
				pipeline.WithReporter(rp),
				pipeline.WithLogger(logger),
			)
		},
		Themes:     themes,
		Logger:     logger,
		Options:    in.Options,
		InitialURL: initialURL,
	})
	if err != nil {
		return &ExitError{Code: ExitCLIError, Err: err}
	}
	return nil
}
