package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"vidgrab/internal/model"
	"vidgrab/internal/pipeline"
)

func newDownloadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download <url>",
		Short: "Download a video and/or audio format",
		Long: "Fetches info for the URL, then downloads the chosen format ids (see 'vidgrab info'). " +
			"When both are given the server merges the best audio into the video.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			videoID, _ := cmd.Flags().GetString("video-format")
			audioID, _ := cmd.Flags().GetString("audio-format")
			if videoID == "" && audioID == "" {
				return exitFor(&pipeline.ValidationError{Msg: pipeline.MsgNoSelection})
			}

			svc := newService(cmd)
			sess, err := svc.FetchInfo(cmd.Context(), args[0])
			if err != nil {
				return exitFor(err)
			}
			sel, err := selectFormats(sess, videoID, audioID)
			if err != nil {
				return exitFor(err)
			}
			saved, err := svc.DownloadMedia(cmd.Context(), &sess, sel)
			if err != nil {
				return exitFor(err)
			}
			printSaved(cmd.OutOrStdout(), saved)
			return nil
		},
	}
	cmd.Flags().String("video-format", "", "Video format id to download")
	cmd.Flags().String("audio-format", "", "Audio format id to download")
	return cmd
}

// selectFormats resolves format ids against the session's lists.
// Empty ids leave that side unselected.
func selectFormats(sess model.SessionState, videoID, audioID string) (model.DownloadSelection, error) {
	var sel model.DownloadSelection
	if videoID != "" {
		f, ok := findFormat(sess.VideoFormats, videoID)
		if !ok {
			return sel, &pipeline.ValidationError{Msg: fmt.Sprintf("Unknown video format %q.", videoID)}
		}
		sel.Video = &f
	}
	if audioID != "" {
		f, ok := findFormat(sess.AudioFormats, audioID)
		if !ok {
			return sel, &pipeline.ValidationError{Msg: fmt.Sprintf("Unknown audio format %q.", audioID)}
		}
		sel.Audio = &f
	}
	return sel, nil
}

func findFormat(fs []model.MediaFormat, id string) (model.MediaFormat, bool) {
	for _, f := range fs {
		if f.FormatID == id {
			return f, true
		}
	}
	return model.MediaFormat{}, false
}
