// Package api is the HTTP client for the video-download backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// DefaultBaseURL is the backend origin used when none is configured.
const DefaultBaseURL = "http://127.0.0.1:5000"

// Endpoint paths.
const (
	PathInfo      = "/get_video_info"
	PathVideo     = "/download_video"
	PathThumbnail = "/download_thumbnail"
	PathSegment   = "/download_timestamped_video"
)

// Fallback messages used when a failure body carries no "error" field.
const (
	FallbackInfo      = "Failed to get video info."
	FallbackVideo     = "Failed to start download."
	FallbackThumbnail = "Failed to download thumbnail."
	FallbackSegment   = "Failed to download segment."
)

// Version is sent in the User-Agent header.
var Version = "dev"

// Client talks to one backend origin.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithLogger attaches a logger for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient returns a Client for baseURL. The default http.Client has no
// timeout; requests end when the server answers or ctx is cancelled.
func NewClient(baseURL string, opts ...Option) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
	for _, o := range opts {
		o(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

// BaseURL returns the configured origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Download is a successful binary response. The caller must close Body.
type Download struct {
	Header        http.Header
	Body          io.ReadCloser
	ContentLength int64 // -1 if unknown
}

// GetVideoInfo calls /get_video_info.
func (c *Client) GetVideoInfo(ctx context.Context, videoURL string) (VideoInfo, error) {
	resp, err := c.post(ctx, PathInfo, InfoRequest{URL: videoURL})
	if err != nil {
		return VideoInfo{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return VideoInfo{}, serverError(resp, FallbackInfo)
	}
	var info VideoInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return VideoInfo{}, &TransportError{Op: "decode video info", Err: err}
	}
	return info, nil
}

// DownloadVideo calls /download_video.
func (c *Client) DownloadVideo(ctx context.Context, req VideoRequest) (*Download, error) {
	return c.download(ctx, PathVideo, req, FallbackVideo)
}

// DownloadThumbnail calls /download_thumbnail.
func (c *Client) DownloadThumbnail(ctx context.Context, req ThumbnailRequest) (*Download, error) {
	return c.download(ctx, PathThumbnail, req, FallbackThumbnail)
}

// DownloadSegment calls /download_timestamped_video.
func (c *Client) DownloadSegment(ctx context.Context, req SegmentRequest) (*Download, error) {
	return c.download(ctx, PathSegment, req, FallbackSegment)
}

// Ping checks that the backend origin answers HTTP at all.
func (c *Client) Ping(ctx context.Context) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return 0, &TransportError{Op: "build request", Err: err}
	}
	c.decorate(req)
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, &TransportError{Op: "GET /", Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

func (c *Client) download(ctx context.Context, path string, body any, fallback string) (*Download, error) {
	resp, err := c.post(ctx, path, body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, serverError(resp, fallback)
	}
	return &Download{
		Header:        resp.Header,
		Body:          resp.Body,
		ContentLength: resp.ContentLength,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, body any) (*http.Response, error) {
	buf, err := json.Marshal(body)
	if err != nil {
		return nil, &TransportError{Op: "encode request", Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return nil, &TransportError{Op: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	reqID := c.decorate(req)

	c.logger.Debug("request", "path", path, "request_id", reqID)
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed", "path", path, "request_id", reqID, "err", err)
		return nil, &TransportError{Op: "POST " + path, Err: err}
	}
	c.logger.Debug("response", "path", path, "request_id", reqID, "status", resp.StatusCode)
	return resp, nil
}

func (c *Client) decorate(req *http.Request) string {
	id := uuid.NewString()
	req.Header.Set("X-Request-ID", id)
	req.Header.Set("User-Agent", "vidgrab/"+Version)
	return id
}

func serverError(resp *http.Response, fallback string) error {
	var eb errorBody
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err == nil {
		_ = json.Unmarshal(data, &eb)
	}
	msg := strings.TrimSpace(eb.Error)
	if msg == "" {
		msg = fallback
	}
	return &ServerError{Status: resp.StatusCode, Message: msg}
}

// IsTransport reports whether err is a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsServer reports whether err is a ServerError.
func IsServer(err error) bool {
	var se *ServerError
	return errors.As(err, &se)
}
