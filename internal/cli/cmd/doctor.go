package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"vidgrab/internal/api"
	"vidgrab/internal/config"
	"vidgrab/internal/dirs"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "doctor",
		Short:         "Check backend reachability and show resolved paths",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := inputsFrom(cmd)
			out := cmd.OutOrStdout()
			cfgFile := viper.ConfigFileUsed()
			if cfgFile == "" {
				cfgFile = "(none)"
			}
			fmt.Fprintf(out, "Config:    %s\n", cfgFile)
			if themes, err := config.DefaultThemeStore(); err == nil {
				fmt.Fprintf(out, "State:     %s\n", themes.Path())
			}
			if logPath, err := dirs.LogFile(); err == nil {
				fmt.Fprintf(out, "Log:       %s\n", logPath)
			}
			fmt.Fprintf(out, "Output:    %s\n", in.Options.OutDir)

			client := api.NewClient(in.Options.Server, api.WithLogger(in.Logger))
			status, err := client.Ping(cmd.Context())
			if err != nil {
				fmt.Fprintf(out, "Server:    %s (unreachable)\n", client.BaseURL())
				return exitFor(err)
			}
			fmt.Fprintf(out, "Server:    %s (HTTP %d)\n", client.BaseURL(), status)
			return nil
		},
	}
}
