package cmd

import (
	"github.com/spf13/cobra"

	"vidgrab/internal/pipeline"
	"vidgrab/internal/timefmt"
)

func newSegmentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "segment <url>",
		Short: "Download a trimmed segment of a video",
		Long: "Times accept HH:MM:SS or plain seconds. Omitted times default to the first ten minutes " +
			"(or the whole video when shorter). An end past the video's duration is clamped.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, _ := cmd.Flags().GetString("start")
			end, _ := cmd.Flags().GetString("end")
			if err := checkTimes(cmd, start, end); err != nil {
				return exitFor(err)
			}

			svc := newService(cmd)
			sess, err := svc.FetchInfo(cmd.Context(), args[0])
			if err != nil {
				return exitFor(err)
			}
			fields := sess.DefaultRange()
			if cmd.Flags().Changed("start") {
				fields.Start = start
			}
			if cmd.Flags().Changed("end") {
				fields.End = end
			}
			saved, err := svc.DownloadSegment(cmd.Context(), &sess, fields)
			if err != nil {
				return exitFor(err)
			}
			printSaved(cmd.OutOrStdout(), saved)
			return nil
		},
	}
	cmd.Flags().String("start", "", "Segment start (HH:MM:SS or seconds)")
	cmd.Flags().String("end", "", "Segment end (HH:MM:SS or seconds)")
	return cmd
}

// checkTimes rejects malformed or inverted time flags before any request.
// Clamping needs the duration and is left to the orchestrator.
func checkTimes(cmd *cobra.Command, start, end string) error {
	hasStart, hasEnd := cmd.Flags().Changed("start"), cmd.Flags().Changed("end")
	if hasStart && hasEnd {
		_, err := pipeline.PlanSegment(timefmt.Fields{Start: start, End: end}, 0)
		return err
	}
	for _, f := range []struct {
		set  bool
		text string
	}{{hasStart, start}, {hasEnd, end}} {
		if !f.set {
			continue
		}
		if _, err := timefmt.ClockToSeconds(f.text); err != nil {
			return &pipeline.ValidationError{Msg: pipeline.MsgInvalidTime}
		}
	}
	return nil
}
