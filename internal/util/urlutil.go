package util

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrEmptyURL is returned for blank input.
	ErrEmptyURL = errors.New("empty URL")
	// ErrNotYouTube is returned when the URL does not carry an 11-character
	// YouTube video id.
	ErrNotYouTube = errors.New("not a YouTube video URL")
)

var youtubeRe = regexp.MustCompile(`^(?:https?://)?(?:www\.)?(?:m\.)?(?:youtube\.com|youtu\.be)/(?:watch\?v=|embed/|v/|)([\w-]{11})(?:\S+)?$`)

// YouTubeVideoID validates raw as a YouTube video URL and returns its id.
// Accepted shapes: youtube.com/watch?v=ID, youtube.com/embed/ID,
// youtube.com/v/ID and youtu.be/ID, with optional scheme, www. or m.
func YouTubeVideoID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyURL
	}
	m := youtubeRe.FindStringSubmatch(raw)
	if m == nil {
		return "", ErrNotYouTube
	}
	return m[1], nil
}
