package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"vidgrab/internal/api"
	"vidgrab/internal/model"
	"vidgrab/internal/progress"
	"vidgrab/internal/save"
	"vidgrab/internal/timefmt"
)

type recordingReporter struct {
	mu      sync.Mutex
	updates []progress.Update
	notices []progress.Notice
	results []progress.Result
}

func (r *recordingReporter) Update(u progress.Update) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, u)
}
func (r *recordingReporter) Notice(n progress.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}
func (r *recordingReporter) Result(res progress.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, res)
}

func (r *recordingReporter) noticeTexts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, n := range r.notices {
		out = append(out, n.Text)
	}
	return out
}

// fakeBackend records every request and answers downloads with a fixed body.
type fakeBackend struct {
	mu       sync.Mutex
	requests []recorded
	status   int
	body     string
	header   string
}

type recorded struct {
	path string
	body map[string]any
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)
	b.mu.Lock()
	b.requests = append(b.requests, recorded{path: r.URL.Path, body: body})
	status, payload, header := b.status, b.body, b.header
	b.mu.Unlock()

	if r.URL.Path == api.PathInfo && status == 0 {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"title": "Demo Clip", "channel": "Chan", "duration": 120.7, "views": 42,
			"thumbnail": "https://i.ytimg.com/vi/x/sddefault.jpg",
			"video_formats": [{"format_id": "22", "ext": "mp4", "quality": "720p"}],
			"audio_formats": [{"format_id": "140", "ext": "m4a", "quality": "Audio Only M4A", "filesize": 2048}]
		}`)
		return
	}
	if header != "" {
		w.Header().Set("Content-Disposition", header)
	}
	if status != 0 {
		w.WriteHeader(status)
	}
	_, _ = io.WriteString(w, payload)
}

func (b *fakeBackend) calls() []recorded {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]recorded(nil), b.requests...)
}

func newTestService(t *testing.T, b *fakeBackend) (*Service, *recordingReporter, string) {
	t.Helper()
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)
	dir := t.TempDir()
	rep := &recordingReporter{}
	svc := NewService(
		WithClient(api.NewClient(srv.URL)),
		WithSaver(save.NewSaver(dir)),
		WithReporter(rep),
		WithTicker(time.Millisecond),
	)
	return svc, rep, dir
}

func testSession(duration int) *model.SessionState {
	return &model.SessionState{
		URL:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		Meta: model.VideoMetadata{Title: "Demo Clip", DurationSec: duration, ThumbnailURL: "https://i.ytimg.com/vi/x/sddefault.jpg"},
	}
}

func TestFetchInfo(t *testing.T) {
	b := &fakeBackend{}
	svc, _, _ := newTestService(t, b)

	sess, err := svc.FetchInfo(context.Background(), "  https://youtu.be/dQw4w9WgXcQ  ")
	if err != nil {
		t.Fatalf("FetchInfo() error: %v", err)
	}
	if sess.URL != "https://youtu.be/dQw4w9WgXcQ" {
		t.Errorf("URL = %q, want trimmed input", sess.URL)
	}
	if sess.Meta.DurationSec != 120 {
		t.Errorf("DurationSec = %d, want 120", sess.Meta.DurationSec)
	}
	if len(sess.VideoFormats) != 1 || sess.VideoFormats[0].FilesizeBytes != nil {
		t.Errorf("VideoFormats = %+v", sess.VideoFormats)
	}
	if len(sess.AudioFormats) != 1 || *sess.AudioFormats[0].FilesizeBytes != 2048 {
		t.Errorf("AudioFormats = %+v", sess.AudioFormats)
	}
	if got := sess.DefaultRange(); got != (timefmt.Fields{Start: "00:00:00", End: "00:02:00"}) {
		t.Errorf("DefaultRange() = %+v", got)
	}
}

func TestFetchInfo_RejectsBadURLWithoutNetwork(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "empty", url: "   ", want: MsgEmptyURL},
		{name: "not youtube", url: "https://vimeo.com/123", want: MsgInvalidURL},
		{name: "short id", url: "https://youtu.be/abc", want: MsgInvalidURL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &fakeBackend{}
			svc, _, _ := newTestService(t, b)
			_, err := svc.FetchInfo(context.Background(), tt.url)
			if !IsValidation(err) || err.Error() != tt.want {
				t.Errorf("FetchInfo(%q) error = %v, want %q", tt.url, err, tt.want)
			}
			if n := len(b.calls()); n != 0 {
				t.Errorf("made %d requests, want 0", n)
			}
		})
	}
}

func TestFetchInfo_ServerError(t *testing.T) {
	b := &fakeBackend{status: http.StatusBadRequest, body: `{"error": "Video unavailable"}`}
	svc, rep, _ := newTestService(t, b)
	_, err := svc.FetchInfo(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if !api.IsServer(err) || err.Error() != "Video unavailable" {
		t.Fatalf("error = %v, want server error", err)
	}
	if len(rep.results) != 1 || rep.results[0].Err == nil {
		t.Errorf("results = %+v, want one failed result", rep.results)
	}
}

func TestDownloadSegment_EndNotAfterStart(t *testing.T) {
	b := &fakeBackend{}
	svc, _, _ := newTestService(t, b)
	_, err := svc.DownloadSegment(context.Background(), testSession(300), timefmt.Fields{Start: "00:01:00", End: "60"})
	if !IsValidation(err) || err.Error() != MsgEndBeforeStart {
		t.Fatalf("error = %v, want %q", err, MsgEndBeforeStart)
	}
	if n := len(b.calls()); n != 0 {
		t.Errorf("made %d requests, want 0", n)
	}
}

func TestDownloadSegment_ClampsToDuration(t *testing.T) {
	b := &fakeBackend{body: "SEGMENT"}
	svc, rep, dir := newTestService(t, b)

	saved, err := svc.DownloadSegment(context.Background(), testSession(120), timefmt.Fields{Start: "0", End: "00:10:00"})
	if err != nil {
		t.Fatalf("DownloadSegment() error: %v", err)
	}
	calls := b.calls()
	if len(calls) != 1 || calls[0].path != api.PathSegment {
		t.Fatalf("calls = %+v", calls)
	}
	if got := calls[0].body["end_time"]; got != float64(120) {
		t.Errorf("end_time = %v, want 120", got)
	}
	if got := calls[0].body["start_time"]; got != float64(0) {
		t.Errorf("start_time = %v, want 0", got)
	}
	texts := rep.noticeTexts()
	if len(texts) != 1 || texts[0] != NoticeEndClamped {
		t.Errorf("notices = %q, want [%q]", texts, NoticeEndClamped)
	}
	if saved.Name != "download_segment.mp4" {
		t.Errorf("saved name = %q, want fallback", saved.Name)
	}
	data, err := os.ReadFile(filepath.Join(dir, saved.Name))
	if err != nil || string(data) != "SEGMENT" {
		t.Errorf("saved file = %q, %v", data, err)
	}
	last := rep.updates[len(rep.updates)-1]
	if last.Stage != progress.StageCompleted || last.Percent != 100 {
		t.Errorf("last update = %+v, want completed at 100%%", last)
	}
}

func TestDownloadSegment_InvalidAndMissingSession(t *testing.T) {
	tests := []struct {
		name   string
		sess   *model.SessionState
		fields timefmt.Fields
		want   string
	}{
		{name: "letters", sess: testSession(100), fields: timefmt.Fields{Start: "abc", End: "10"}, want: MsgInvalidTime},
		{name: "empty end", sess: testSession(100), fields: timefmt.Fields{Start: "0", End: ""}, want: MsgInvalidTime},
		{name: "start past clamped end", sess: testSession(100), fields: timefmt.Fields{Start: "150", End: "200"}, want: MsgStartPastEnd},
		{name: "no session", sess: nil, fields: timefmt.Fields{Start: "0", End: "10"}, want: MsgNoSession},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &fakeBackend{}
			svc, _, _ := newTestService(t, b)
			_, err := svc.DownloadSegment(context.Background(), tt.sess, tt.fields)
			if !IsValidation(err) || err.Error() != tt.want {
				t.Errorf("error = %v, want %q", err, tt.want)
			}
			if n := len(b.calls()); n != 0 {
				t.Errorf("made %d requests, want 0", n)
			}
		})
	}
}

func TestDownloadMedia_Selection(t *testing.T) {
	video := &model.MediaFormat{FormatID: "22", Ext: "mp4", Quality: "720p"}
	audio := &model.MediaFormat{FormatID: "140", Ext: "m4a", Quality: "Audio Only M4A"}

	tests := []struct {
		name       string
		sel        model.DownloadSelection
		wantID     string
		wantExt    string
		wantNotice string
		wantName   string
	}{
		{name: "audio only", sel: model.DownloadSelection{Audio: audio}, wantID: "140", wantExt: "m4a", wantNotice: NoticeAudioOnly, wantName: "Demo Clip.m4a"},
		{name: "video only", sel: model.DownloadSelection{Video: video}, wantID: "22", wantExt: "mp4", wantNotice: NoticeVideoOnly, wantName: "Demo Clip.mp4"},
		{name: "both prefers video", sel: model.DownloadSelection{Video: video, Audio: audio}, wantID: "22", wantExt: "mp4", wantNotice: NoticeVideoAndAudio, wantName: "Demo Clip.mp4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &fakeBackend{body: "MEDIA"}
			svc, rep, _ := newTestService(t, b)
			saved, err := svc.DownloadMedia(context.Background(), testSession(60), tt.sel)
			if err != nil {
				t.Fatalf("DownloadMedia() error: %v", err)
			}
			calls := b.calls()
			if len(calls) != 1 {
				t.Fatalf("made %d requests, want 1", len(calls))
			}
			if got := calls[0].body["format_id"]; got != tt.wantID {
				t.Errorf("format_id = %v, want %s", got, tt.wantID)
			}
			if got := calls[0].body["ext"]; got != tt.wantExt {
				t.Errorf("ext = %v, want %s", got, tt.wantExt)
			}
			if texts := rep.noticeTexts(); len(texts) != 1 || texts[0] != tt.wantNotice {
				t.Errorf("notices = %q, want [%q]", texts, tt.wantNotice)
			}
			if saved.Name != tt.wantName {
				t.Errorf("saved name = %q, want %q", saved.Name, tt.wantName)
			}
		})
	}
}

func TestDownloadMedia_EmptySelection(t *testing.T) {
	b := &fakeBackend{}
	svc, _, _ := newTestService(t, b)
	_, err := svc.DownloadMedia(context.Background(), testSession(60), model.DownloadSelection{})
	if !IsValidation(err) || err.Error() != MsgNoSelection {
		t.Fatalf("error = %v, want %q", err, MsgNoSelection)
	}
	if n := len(b.calls()); n != 0 {
		t.Errorf("made %d requests, want 0", n)
	}
}

func TestDownloadMedia_UsesServerFilename(t *testing.T) {
	b := &fakeBackend{body: "MEDIA", header: `attachment; filename="My%20Song.m4a"`}
	svc, _, dir := newTestService(t, b)
	sel := model.DownloadSelection{Audio: &model.MediaFormat{FormatID: "140", Ext: "m4a"}}
	saved, err := svc.DownloadMedia(context.Background(), testSession(60), sel)
	if err != nil {
		t.Fatalf("DownloadMedia() error: %v", err)
	}
	if saved.Path != filepath.Join(dir, "My Song.m4a") {
		t.Errorf("Path = %q", saved.Path)
	}
}

func TestDownloadMedia_ServerErrorFallback(t *testing.T) {
	b := &fakeBackend{status: http.StatusInternalServerError, body: `{}`}
	svc, rep, dir := newTestService(t, b)
	sel := model.DownloadSelection{Video: &model.MediaFormat{FormatID: "22", Ext: "mp4"}}
	_, err := svc.DownloadMedia(context.Background(), testSession(60), sel)
	if !api.IsServer(err) || err.Error() != api.FallbackVideo {
		t.Fatalf("error = %v, want %q", err, api.FallbackVideo)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("output dir has %d entries after failure", len(entries))
	}
	last := rep.updates[len(rep.updates)-1]
	if last.Stage != progress.StageError {
		t.Errorf("last stage = %s, want error", last.Stage)
	}
}

func TestDownloadThumbnail(t *testing.T) {
	b := &fakeBackend{body: "JPEG"}
	svc, _, _ := newTestService(t, b)

	sess := testSession(60)
	sess.Meta.HDThumbnailURL = "https://i.ytimg.com/vi/x/maxresdefault.jpg"
	saved, err := svc.DownloadThumbnail(context.Background(), sess)
	if err != nil {
		t.Fatalf("DownloadThumbnail() error: %v", err)
	}
	calls := b.calls()
	if len(calls) != 1 || calls[0].path != api.PathThumbnail {
		t.Fatalf("calls = %+v", calls)
	}
	if got := calls[0].body["thumbnail_url"]; got != sess.Meta.HDThumbnailURL {
		t.Errorf("thumbnail_url = %v, want HD url", got)
	}
	if got := calls[0].body["video_title"]; got != "Demo Clip" {
		t.Errorf("video_title = %v", got)
	}
	if saved.Name != "thumbnail.jpg" {
		t.Errorf("saved name = %q", saved.Name)
	}

	_, err = svc.DownloadThumbnail(context.Background(), nil)
	if !IsValidation(err) || err.Error() != MsgNoThumbnail {
		t.Errorf("nil session error = %v, want %q", err, MsgNoThumbnail)
	}
}

func TestGo_CancelEndsRequest(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(block)
		srv.Close()
	})
	svc := NewService(WithClient(api.NewClient(srv.URL)), WithSaver(save.NewSaver(t.TempDir())), WithTicker(time.Millisecond))

	task := Go(context.Background(), func(ctx context.Context) (save.Saved, error) {
		if TaskID(ctx) == "" {
			t.Error("task id missing from context")
		}
		return svc.DownloadSegment(ctx, testSession(100), timefmt.Fields{Start: "0", End: "10"})
	})
	if task.ID == "" {
		t.Fatal("task has no id")
	}
	task.Cancel()

	select {
	case <-task.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("task did not finish after Cancel")
	}
	if _, err := task.Wait(); !api.IsTransport(err) {
		t.Errorf("Wait() error = %v, want transport error", err)
	}
}
