package cmd

import (
	"github.com/spf13/cobra"
)

func newThumbnailCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "thumbnail <url>",
		Short:         "Download the HD thumbnail of a video",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := newService(cmd)
			sess, err := svc.FetchInfo(cmd.Context(), args[0])
			if err != nil {
				return exitFor(err)
			}
			saved, err := svc.DownloadThumbnail(cmd.Context(), &sess)
			if err != nil {
				return exitFor(err)
			}
			printSaved(cmd.OutOrStdout(), saved)
			return nil
		},
	}
}
