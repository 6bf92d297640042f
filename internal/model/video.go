package model

// VideoMetadata describes a video as reported by the backend.
type VideoMetadata struct {
	Title          string
	Channel        string
	DurationSec    int // 0 if unknown
	Views          int64
	ThumbnailURL   string
	HDThumbnailURL string // optional; empty means use ThumbnailURL
}

// BestThumbnail returns the HD thumbnail URL, or the standard one when the
// backend did not supply an HD variant.
func (m VideoMetadata) BestThumbnail() string {
	if m.HDThumbnailURL != "" {
		return m.HDThumbnailURL
	}
	return m.ThumbnailURL
}

// MediaFormat is one server-enumerated downloadable encoding.
type MediaFormat struct {
	FormatID      string // opaque, server-assigned
	Ext           string
	Quality       string // human-readable label
	FilesizeBytes *int64 // nil when the server does not know
}

// DownloadSelection is the user's pick of formats for a combined download.
type DownloadSelection struct {
	Video *MediaFormat
	Audio *MediaFormat
}

// Empty reports whether neither a video nor an audio format is selected.
func (s DownloadSelection) Empty() bool {
	return s.Video == nil && s.Audio == nil
}

// TimeRange is a validated segment in whole seconds; End > Start.
type TimeRange struct {
	Start int
	End   int
}
