package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"vidgrab/internal/config"
	"vidgrab/internal/model"
)

func newThemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "theme [toggle|light|dark]",
		Short:         "Show or change the persisted colour theme",
		SilenceUsage:  true,
		SilenceErrors: true,
		ValidArgs:     []string{"toggle", "light", "dark"},
		Args:          cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := config.DefaultThemeStore()
			if err != nil {
				return &ExitError{Code: ExitLocalError, Err: err}
			}
			current := store.Load()
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), current)
				return nil
			}
			next := current.Toggle()
			if args[0] != "toggle" {
				next = model.Theme(args[0])
			}
			if err := store.Save(next); err != nil {
				return &ExitError{Code: ExitLocalError, Err: err}
			}
			fmt.Fprintln(cmd.OutOrStdout(), next)
			return nil
		},
	}
}
