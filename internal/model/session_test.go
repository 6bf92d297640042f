package model

import (
	"testing"

	"vidgrab/internal/timefmt"
)

func TestSessionState_DefaultRange(t *testing.T) {
	tests := []struct {
		name     string
		duration int
		want     timefmt.Fields
	}{
		{name: "long video caps at ten minutes", duration: 3600, want: timefmt.Fields{Start: "00:00:00", End: "00:10:00"}},
		{name: "short video uses duration", duration: 95, want: timefmt.Fields{Start: "00:00:00", End: "00:01:35"}},
		{name: "unknown duration", duration: 0, want: timefmt.Fields{Start: "00:00:00", End: "00:00:10"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &SessionState{Meta: VideoMetadata{DurationSec: tt.duration}}
			if got := s.DefaultRange(); got != tt.want {
				t.Errorf("DefaultRange() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSessionState_ThumbnailURL(t *testing.T) {
	var nilSession *SessionState
	if got := nilSession.ThumbnailURL(); got != "" {
		t.Errorf("nil session ThumbnailURL() = %q, want empty", got)
	}

	s := &SessionState{Meta: VideoMetadata{ThumbnailURL: "https://i.ytimg.com/sd.jpg"}}
	if got := s.ThumbnailURL(); got != "https://i.ytimg.com/sd.jpg" {
		t.Errorf("ThumbnailURL() = %q, want standard fallback", got)
	}

	s.Meta.HDThumbnailURL = "https://i.ytimg.com/maxres.jpg"
	if got := s.ThumbnailURL(); got != "https://i.ytimg.com/maxres.jpg" {
		t.Errorf("ThumbnailURL() = %q, want HD", got)
	}
}

func TestParseTheme(t *testing.T) {
	tests := map[string]Theme{
		"dark":   ThemeDark,
		"light":  ThemeLight,
		"":       ThemeLight,
		"purple": ThemeLight,
	}
	for in, want := range tests {
		if got := ParseTheme(in); got != want {
			t.Errorf("ParseTheme(%q) = %q, want %q", in, got, want)
		}
	}
	if ThemeDark.Toggle() != ThemeLight || ThemeLight.Toggle() != ThemeDark {
		t.Error("Toggle() should flip between dark and light")
	}
}

func TestDownloadSelection_Empty(t *testing.T) {
	if !(DownloadSelection{}).Empty() {
		t.Error("zero selection should be empty")
	}
	if (DownloadSelection{Audio: &MediaFormat{FormatID: "140"}}).Empty() {
		t.Error("audio-only selection should not be empty")
	}
}
