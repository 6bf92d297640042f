package api

// Format mirrors one entry of video_formats / audio_formats.
type Format struct {
	FormatID string `json:"format_id"`
	Ext      string `json:"ext"`
	Quality  string `json:"quality"`
	Filesize *int64 `json:"filesize,omitempty"`
}

// VideoInfo is the success body of /get_video_info.
type VideoInfo struct {
	Title        string   `json:"title"`
	Channel      string   `json:"channel"`
	Duration     float64  `json:"duration"`
	Views        int64    `json:"views"`
	Thumbnail    string   `json:"thumbnail"`
	HDThumbnail  string   `json:"hd_thumbnail,omitempty"`
	VideoFormats []Format `json:"video_formats"`
	AudioFormats []Format `json:"audio_formats"`
}

// InfoRequest is the body of /get_video_info.
type InfoRequest struct {
	URL string `json:"url"`
}

// VideoRequest is the body of /download_video.
type VideoRequest struct {
	URL      string `json:"url"`
	FormatID string `json:"format_id"`
	Ext      string `json:"ext"`
	Title    string `json:"title"`
}

// ThumbnailRequest is the body of /download_thumbnail.
type ThumbnailRequest struct {
	ThumbnailURL string `json:"thumbnail_url"`
	VideoTitle   string `json:"video_title"`
}

// SegmentRequest is the body of /download_timestamped_video.
// Times are always whole seconds.
type SegmentRequest struct {
	URL       string `json:"url"`
	StartTime int    `json:"start_time"`
	EndTime   int    `json:"end_time"`
	Title     string `json:"title"`
}

// errorBody is the failure body shared by all endpoints.
type errorBody struct {
	Error string `json:"error"`
}
