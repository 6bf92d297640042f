package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"vidgrab/internal/model"
	"vidgrab/internal/timefmt"
	"vidgrab/internal/util/format"
)

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "info <url>",
		Short:         "Show video metadata and the formats the server offers",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				sess, err := newService(cmd).FetchInfo(cmd.Context(), args[0])
				if err != nil {
					return exitFor(err)
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(sess)
			}
			return runInfo(cmd, args[0])
		},
	}
	cmd.Flags().Bool("json", false, "Print the session as JSON")
	return cmd
}

func runInfo(cmd *cobra.Command, rawURL string) error {
	sess, err := newService(cmd).FetchInfo(cmd.Context(), rawURL)
	if err != nil {
		return exitFor(err)
	}
	printInfo(cmd.OutOrStdout(), sess)
	return nil
}

// printInfo renders a session the way the info panel shows it.
func printInfo(w io.Writer, sess model.SessionState) {
	m := sess.Meta
	fmt.Fprintf(w, "Title:     %s\n", m.Title)
	fmt.Fprintf(w, "Channel:   %s\n", m.Channel)
	fmt.Fprintf(w, "Duration:  %s\n", timefmt.FormatDuration(m.DurationSec))
	fmt.Fprintf(w, "Views:     %s\n", format.Views(m.Views))
	if thumb := sess.ThumbnailURL(); thumb != "" {
		fmt.Fprintf(w, "Thumbnail: %s\n", thumb)
	}
	printFormats(w, "Video formats", sess.VideoFormats)
	printFormats(w, "Audio formats", sess.AudioFormats)
}

func printFormats(w io.Writer, title string, fs []model.MediaFormat) {
	fmt.Fprintf(w, "\n%s:\n", title)
	if len(fs) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	for _, f := range fs {
		fmt.Fprintf(w, "  %-12s %-6s %-16s %s\n", f.FormatID, f.Ext, f.Quality, format.Filesize(f.FilesizeBytes))
	}
}
