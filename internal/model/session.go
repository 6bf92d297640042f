package model

import "vidgrab/internal/timefmt"

// SessionState is everything learned from one successful info request.
// It is replaced wholesale by the next one and never mutated in place.
type SessionState struct {
	URL          string
	Meta         VideoMetadata
	VideoFormats []MediaFormat
	AudioFormats []MediaFormat
}

// ThumbnailURL is the thumbnail the thumbnail download will request.
func (s *SessionState) ThumbnailURL() string {
	if s == nil {
		return ""
	}
	return s.Meta.BestThumbnail()
}

// DurationSec returns the known duration, or 0 without a session.
func (s *SessionState) DurationSec() int {
	if s == nil {
		return 0
	}
	return s.Meta.DurationSec
}

// DefaultRange is the clock-encoded range shown right after info loads:
// the first ten minutes, or the whole video when it is shorter.
func (s *SessionState) DefaultRange() timefmt.Fields {
	d := s.DurationSec()
	if d <= 0 {
		return timefmt.Fields{Start: "00:00:00", End: "00:00:10"}
	}
	return timefmt.Fields{
		Start: timefmt.SecondsToClock(0),
		End:   timefmt.SecondsToClock(timefmt.DefaultEnd(d)),
	}
}
