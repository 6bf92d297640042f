package media

import (
	"fmt"
	"strings"

	"vidgrab/internal/model"
)

// Fallback names used when the server does not name the attachment.
const (
	ThumbnailFallback = "thumbnail.jpg"
	SegmentFallback   = "download_segment.mp4"
)

// MediaFallback builds "{title}.{ext}" for a full download, defaulting to
// "video" and "mp4".
func MediaFallback(title, ext string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		title = "video"
	}
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if ext == "" {
		ext = "mp4"
	}
	return title + "." + ext
}

// FormatLabel renders a format the way quality selectors list it:
// "720p MP4 (12.3 MB)", or just the quality when the size is unknown.
func FormatLabel(f model.MediaFormat, humanize func(int64) string) string {
	if f.FilesizeBytes == nil || *f.FilesizeBytes <= 0 {
		return f.Quality
	}
	return fmt.Sprintf("%s (%s)", f.Quality, humanize(*f.FilesizeBytes))
}
