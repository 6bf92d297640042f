package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"vidgrab/internal/api"
	"vidgrab/internal/config"
	"vidgrab/internal/model"
	"vidgrab/internal/pipeline"
)

const (
	ExitOK             = 0
	ExitCLIError       = 1
	ExitLocalError     = 2
	ExitServerError    = 3
	ExitTransportError = 4
)

// ExitError wraps an error with a process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// exitFor classifies an orchestrator error into an exit code.
func exitFor(err error) error {
	if err == nil {
		return nil
	}
	var ee *ExitError
	switch {
	case errors.As(err, &ee):
		return ee
	case pipeline.IsValidation(err):
		return &ExitError{Code: ExitCLIError, Err: err}
	case api.IsServer(err):
		return &ExitError{Code: ExitServerError, Err: err}
	case api.IsTransport(err):
		return &ExitError{Code: ExitTransportError, Err: err}
	default:
		return &ExitError{Code: ExitLocalError, Err: err}
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "vidgrab [url]",
		Short: "Terminal client for a video-download server",
		Long: "vidgrab talks to a video-download backend: fetch video info, pick a quality, " +
			"and save full videos, trimmed segments or thumbnails. All media processing happens on the server.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		Args:              cobra.MaximumNArgs(1),
		PersistentPreRunE: runPreRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := inputsFrom(cmd)
			if in.Options.NoUI || !isTerminal() {
				if len(args) == 0 {
					return cmd.Help()
				}
				return runInfo(cmd, args[0])
			}
			url := ""
			if len(args) == 1 {
				url = args[0]
			}
			return runTUI(cmd, url)
		},
	}

	// Accept --out_dir as well as --out-dir, matching the config file keys
	root.SetGlobalNormalizationFunc(normalizeFlagName)

	// Persistent flags available to all subcommands
	root.PersistentFlags().String("server", "", "Backend origin (default "+api.DefaultBaseURL+")")
	root.PersistentFlags().StringP("out-dir", "o", "", "Output directory (default ~/Downloads)")
	root.PersistentFlags().BoolP("verbose", "v", false, "Debug logging")
	root.PersistentFlags().Bool("no-ui", false, "Never start the interactive TUI")

	// Subcommands
	root.AddCommand(newInfoCmd())
	root.AddCommand(newDownloadCmd())
	root.AddCommand(newThumbnailCmd())
	root.AddCommand(newSegmentCmd())
	root.AddCommand(newTuiCmd())
	root.AddCommand(newThemeCmd())
	root.AddCommand(newDoctorCmd())
	root.AddCommand(newCompletionCmd())

	return root
}

// Execute runs the CLI with the provided context.
func Execute(ctx context.Context) error {
	root := newRootCmd()
	return root.ExecuteContext(ctx)
}

type ctxKey string

const runInputsKey ctxKey = "runInputs"

type runInputs struct {
	Options model.CLIOptions
	Logger  *slog.Logger
}

// runPreRun resolves flags, env and config once for every subcommand.
func runPreRun(cmd *cobra.Command, _ []string) error {
	if err := config.Init(cmd.Root()); err != nil {
		return &ExitError{Code: ExitCLIError, Err: err}
	}
	opts := config.Options()
	logger := config.NewLogger(cmd.ErrOrStderr(), opts.Verbose)
	logger.Debug("options resolved", "server", opts.Server, "out_dir", opts.OutDir)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, runInputsKey, runInputs{Options: opts, Logger: logger}))
	return nil
}

func inputsFrom(cmd *cobra.Command) runInputs {
	if v, ok := cmd.Context().Value(runInputsKey).(runInputs); ok {
		return v
	}
	return runInputs{Options: config.Options(), Logger: slog.Default()}
}

func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
