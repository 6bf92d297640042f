package pipeline

import (
	"errors"
	"strings"

	"vidgrab/internal/model"
	"vidgrab/internal/progress"
	"vidgrab/internal/timefmt"
	"vidgrab/internal/util"
)

// User-facing validation messages.
const (
	MsgEmptyURL       = "Please enter a YouTube video URL."
	MsgInvalidURL     = "Please enter a valid YouTube URL (e.g., youtube.com/watch?v=...)."
	MsgNoSelection    = "Please select either a video or an audio quality to download."
	MsgNoThumbnail    = "No HD thumbnail available or video info not fetched."
	MsgInvalidTime    = "Invalid time format. Use HH:MM:SS (e.g., 00:01:30) or seconds (e.g., 90)."
	MsgEndBeforeStart = "End time must be after start time."
	MsgStartPastEnd   = "Start time is beyond the end of the video."
	MsgNoSession      = "Please get video info first."
)

// Informational notices raised while a request is prepared.
const (
	NoticeVideoAndAudio = "Downloading video with selected quality. Audio will be merged automatically by server. (This might take a while)"
	NoticeVideoOnly     = "Downloading selected video quality. Audio will be merged automatically by server. (This might take a while)"
	NoticeAudioOnly     = "Downloading selected audio quality. (This might take a while)"
	NoticeEndClamped    = "End time adjusted to video duration."
)

// ValidationError is returned before any network call is made.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalid(msg string) error { return &ValidationError{Msg: msg} }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ValidateURL checks raw against the accepted YouTube URL shapes.
func ValidateURL(raw string) (string, error) {
	u := strings.TrimSpace(raw)
	if _, err := util.YouTubeVideoID(u); err != nil {
		if errors.Is(err, util.ErrEmptyURL) {
			return "", invalid(MsgEmptyURL)
		}
		return "", invalid(MsgInvalidURL)
	}
	return u, nil
}

// MediaPlan is the single format a media download will request.
type MediaPlan struct {
	FormatID string
	Ext      string
	Notice   string
}

// PlanSelection picks the format id to send. When both a video and an audio
// format are selected the video one wins and the server merges audio.
func PlanSelection(sel model.DownloadSelection) (MediaPlan, error) {
	switch {
	case sel.Video != nil && sel.Audio != nil:
		return MediaPlan{FormatID: sel.Video.FormatID, Ext: sel.Video.Ext, Notice: NoticeVideoAndAudio}, nil
	case sel.Video != nil:
		return MediaPlan{FormatID: sel.Video.FormatID, Ext: sel.Video.Ext, Notice: NoticeVideoOnly}, nil
	case sel.Audio != nil:
		return MediaPlan{FormatID: sel.Audio.FormatID, Ext: sel.Audio.Ext, Notice: NoticeAudioOnly}, nil
	default:
		return MediaPlan{}, invalid(MsgNoSelection)
	}
}

// SegmentPlan is a validated range plus any notices raised on the way.
type SegmentPlan struct {
	Range   model.TimeRange
	Notices []progress.Notice
}

// PlanSegment parses and validates the range fields. An end past a known
// duration is clamped to the duration with a notice.
func PlanSegment(f timefmt.Fields, durationSec int) (SegmentPlan, error) {
	start, err := timefmt.ClockToSeconds(f.Start)
	if err != nil {
		return SegmentPlan{}, invalid(MsgInvalidTime)
	}
	end, err := timefmt.ClockToSeconds(f.End)
	if err != nil {
		return SegmentPlan{}, invalid(MsgInvalidTime)
	}
	if end <= start {
		return SegmentPlan{}, invalid(MsgEndBeforeStart)
	}

	var plan SegmentPlan
	if durationSec > 0 && end > durationSec {
		end = durationSec
		if end <= start {
			return SegmentPlan{}, invalid(MsgStartPastEnd)
		}
		plan.Notices = append(plan.Notices, progress.Notice{Level: progress.LevelInfo, Text: NoticeEndClamped})
	}
	plan.Range = model.TimeRange{Start: start, End: end}
	return plan, nil
}
