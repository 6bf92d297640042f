// Package pipeline validates user input, calls the backend and hands
// successful download bodies to the saver.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"vidgrab/internal/api"
	"vidgrab/internal/model"
	"vidgrab/internal/progress"
	"vidgrab/internal/save"
	"vidgrab/internal/timefmt"
	"vidgrab/internal/util/format"
	"vidgrab/internal/util/media"
)

// Status lines shown while a request is in flight.
const (
	StatusFetchingInfo = "Fetching video information..."
	StatusInfoLoaded   = "Video information retrieved successfully!"
	StatusMedia        = "Initiating download..."
	StatusThumbnail    = "Downloading thumbnail..."
	StatusSegment      = "Initiating segment download... (This might take a while)"
)

// Service runs the four backend operations. It holds no session state;
// callers pass the SessionState returned by FetchInfo to the others.
type Service struct {
	client   *api.Client
	saver    *save.Saver
	reporter progress.Reporter
	logger   *slog.Logger
	tick     time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithClient sets the backend client.
func WithClient(c *api.Client) Option {
	return func(s *Service) {
		s.client = c
	}
}

// WithSaver sets where downloads are written.
func WithSaver(sv *save.Saver) Option {
	return func(s *Service) {
		s.saver = sv
	}
}

// WithReporter attaches a progress reporter (used by TUI and CLI).
func WithReporter(rp progress.Reporter) Option {
	return func(s *Service) {
		s.reporter = rp
	}
}

// WithLogger attaches a structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// WithTicker overrides the simulated progress interval.
func WithTicker(d time.Duration) Option {
	return func(s *Service) {
		s.tick = d
	}
}

// NewService constructs a Service, defaulting to the local backend, the
// current directory and a discarding reporter.
func NewService(opts ...Option) *Service {
	s := &Service{}
	for _, o := range opts {
		o(s)
	}
	if s.client == nil {
		s.client = api.NewClient(api.DefaultBaseURL)
	}
	if s.saver == nil {
		s.saver = save.NewSaver(".")
	}
	if s.reporter == nil {
		s.reporter = progress.Discard{}
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.tick <= 0 {
		s.tick = progress.DefaultTick
	}
	return s
}

// FetchInfo validates rawURL and loads its metadata into a new session.
func (s *Service) FetchInfo(ctx context.Context, rawURL string) (model.SessionState, error) {
	u, err := ValidateURL(rawURL)
	if err != nil {
		return model.SessionState{}, s.fail(ctx, err)
	}

	s.update(ctx, progress.StageRequesting, -1, StatusFetchingInfo)
	info, err := s.client.GetVideoInfo(ctx, u)
	if err != nil {
		return model.SessionState{}, s.fail(ctx, err)
	}

	sess := sessionFromInfo(u, info)
	s.logger.Info("video info loaded", "title", sess.Meta.Title, "duration", sess.Meta.DurationSec,
		"video_formats", len(sess.VideoFormats), "audio_formats", len(sess.AudioFormats))
	s.update(ctx, progress.StageCompleted, -1, StatusInfoLoaded)
	return sess, nil
}

// DownloadMedia requests the selected format and saves the response.
func (s *Service) DownloadMedia(ctx context.Context, sess *model.SessionState, sel model.DownloadSelection) (save.Saved, error) {
	plan, err := PlanSelection(sel)
	if err != nil {
		return save.Saved{}, s.fail(ctx, err)
	}
	if sess == nil || sess.URL == "" {
		return save.Saved{}, s.fail(ctx, invalid(MsgNoSession))
	}
	s.notice(ctx, progress.LevelInfo, plan.Notice)

	req := api.VideoRequest{
		URL:      sess.URL,
		FormatID: plan.FormatID,
		Ext:      plan.Ext,
		Title:    sess.Meta.Title,
	}
	s.logger.Debug("download media", "format_id", req.FormatID, "ext", req.Ext)
	return s.fetchAndSave(ctx, StatusMedia, true, media.MediaFallback(sess.Meta.Title, plan.Ext),
		func(ctx context.Context) (*api.Download, error) {
			return s.client.DownloadVideo(ctx, req)
		})
}

// DownloadThumbnail saves the session's best thumbnail.
func (s *Service) DownloadThumbnail(ctx context.Context, sess *model.SessionState) (save.Saved, error) {
	thumb := sess.ThumbnailURL()
	if thumb == "" {
		return save.Saved{}, s.fail(ctx, invalid(MsgNoThumbnail))
	}
	req := api.ThumbnailRequest{ThumbnailURL: thumb, VideoTitle: sess.Meta.Title}
	return s.fetchAndSave(ctx, StatusThumbnail, false, media.ThumbnailFallback,
		func(ctx context.Context) (*api.Download, error) {
			return s.client.DownloadThumbnail(ctx, req)
		})
}

// DownloadSegment validates the range fields and saves the trimmed clip.
func (s *Service) DownloadSegment(ctx context.Context, sess *model.SessionState, fields timefmt.Fields) (save.Saved, error) {
	plan, err := PlanSegment(fields, sess.DurationSec())
	if err != nil {
		return save.Saved{}, s.fail(ctx, err)
	}
	if sess == nil || sess.URL == "" {
		return save.Saved{}, s.fail(ctx, invalid(MsgNoSession))
	}
	for _, n := range plan.Notices {
		s.notice(ctx, n.Level, n.Text)
	}

	req := api.SegmentRequest{
		URL:       sess.URL,
		StartTime: plan.Range.Start,
		EndTime:   plan.Range.End,
		Title:     sess.Meta.Title,
	}
	s.logger.Debug("download segment", "start", req.StartTime, "end", req.EndTime)
	return s.fetchAndSave(ctx, StatusSegment, true, media.SegmentFallback,
		func(ctx context.Context) (*api.Download, error) {
			return s.client.DownloadSegment(ctx, req)
		})
}

// fetchAndSave performs one download call and streams the body to disk.
// When simulate is set a cosmetic progress bar runs until the response
// arrives and completes once the body is saved.
func (s *Service) fetchAndSave(ctx context.Context, status string, simulate bool, fallback string,
	call func(context.Context) (*api.Download, error)) (save.Saved, error) {
	taskID := TaskID(ctx)

	var sim *progress.Simulator
	if simulate {
		sim = progress.NewSimulator(taskID, s.reporter, status)
		sim.Tick = s.tick
		sim.Start(ctx)
		defer sim.Stop()
	} else {
		s.update(ctx, progress.StageRequesting, -1, status)
	}

	dl, err := call(ctx)
	if sim != nil {
		sim.Stop()
	}
	if err != nil {
		return save.Saved{}, s.fail(ctx, err)
	}
	defer dl.Body.Close()

	name := save.DeriveFilename(dl.Header, fallback)
	pct := -1.0
	if sim != nil {
		pct = sim.Percent()
	}
	s.update(ctx, progress.StageSaving, pct, "Saving "+name)

	saved, err := s.saver.Save(name, dl.Body)
	if err != nil {
		return save.Saved{}, s.fail(ctx, fmt.Errorf("save %s: %w", name, err))
	}
	if sim != nil {
		sim.Complete()
	}

	s.logger.Info("saved", "path", saved.Path, "bytes", saved.Bytes)
	s.update(ctx, progress.StageCompleted, 100, fmt.Sprintf("Saved: %s (%s)", saved.Name, format.Size(saved.Bytes)))
	s.reporter.Result(progress.Result{TaskID: taskID, OutputPath: saved.Path, Bytes: saved.Bytes})
	return saved, nil
}

func (s *Service) update(ctx context.Context, stage progress.Stage, pct float64, msg string) {
	s.reporter.Update(progress.Update{TaskID: TaskID(ctx), Stage: stage, Percent: pct, Message: msg})
}

func (s *Service) notice(ctx context.Context, lvl progress.Level, text string) {
	s.reporter.Notice(progress.Notice{TaskID: TaskID(ctx), Level: lvl, Text: text})
}

// fail reports err as the task's outcome and returns it unchanged.
func (s *Service) fail(ctx context.Context, err error) error {
	if IsValidation(err) {
		s.logger.Debug("rejected input", "err", err)
	} else {
		attrs := []any{"err", err}
		var te *api.TransportError
		if errors.As(err, &te) {
			attrs = append(attrs, "detail", te.Detail())
		}
		s.logger.Warn("request failed", attrs...)
	}
	s.update(ctx, progress.StageError, -1, err.Error())
	s.reporter.Result(progress.Result{TaskID: TaskID(ctx), Err: err})
	return err
}

func sessionFromInfo(u string, info api.VideoInfo) model.SessionState {
	return model.SessionState{
		URL: u,
		Meta: model.VideoMetadata{
			Title:          info.Title,
			Channel:        info.Channel,
			DurationSec:    max(int(info.Duration), 0),
			Views:          max(info.Views, 0),
			ThumbnailURL:   info.Thumbnail,
			HDThumbnailURL: info.HDThumbnail,
		},
		VideoFormats: convertFormats(info.VideoFormats),
		AudioFormats: convertFormats(info.AudioFormats),
	}
}

func convertFormats(in []api.Format) []model.MediaFormat {
	out := make([]model.MediaFormat, 0, len(in))
	for _, f := range in {
		out = append(out, model.MediaFormat{
			FormatID:      f.FormatID,
			Ext:           f.Ext,
			Quality:       f.Quality,
			FilesizeBytes: f.Filesize,
		})
	}
	return out
}
