// Package view derives which controls are usable from the current phase.
package view

import "vidgrab/internal/model"

// Phase is the coarse state of the interface.
type Phase int

const (
	NoInfo Phase = iota
	InfoLoaded
	Busy
)

func (p Phase) String() string {
	switch p {
	case InfoLoaded:
		return "info-loaded"
	case Busy:
		return "busy"
	default:
		return "no-info"
	}
}

// Controls lists the enabled state of every trigger and input.
type Controls struct {
	URLInput     bool
	GetInfo      bool
	VideoQuality bool
	AudioQuality bool
	Download     bool
	Thumbnail    bool
	StartTime    bool
	EndTime      bool
	FormatToggle bool
	Segment      bool

	ShowBusy bool
	ShowInfo bool
}

// Compute returns the control availability for phase. It has no side
// effects; a nil session is treated as "no info yet".
func Compute(phase Phase, sess *model.SessionState, sel model.DownloadSelection) Controls {
	switch phase {
	case Busy:
		return Controls{ShowBusy: true, ShowInfo: sess != nil}
	case InfoLoaded:
		if sess == nil {
			break
		}
		return Controls{
			URLInput:     true,
			GetInfo:      true,
			VideoQuality: len(sess.VideoFormats) > 0,
			AudioQuality: len(sess.AudioFormats) > 0,
			Download:     !sel.Empty(),
			Thumbnail:    sess.ThumbnailURL() != "",
			StartTime:    true,
			EndTime:      true,
			FormatToggle: true,
			Segment:      true,
			ShowInfo:     true,
		}
	}
	return Controls{URLInput: true, GetInfo: true}
}
