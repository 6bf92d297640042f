package ui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"vidgrab/internal/config"
	"vidgrab/internal/model"
	"vidgrab/internal/pipeline"
	"vidgrab/internal/progress"
	"vidgrab/internal/save"
	"vidgrab/internal/timefmt"
	"vidgrab/internal/view"
)

type focus int

const (
	focusURL focus = iota
	focusVideo
	focusAudio
	focusDownload
	focusThumbnail
	focusStart
	focusEnd
	focusToggle
	focusSegment
	focusCount
)

func (f focus) enabled(c view.Controls) bool {
	switch f {
	case focusURL:
		return c.URLInput
	case focusVideo:
		return c.VideoQuality
	case focusAudio:
		return c.AudioQuality
	case focusDownload:
		return c.Download
	case focusThumbnail:
		return c.Thumbnail
	case focusStart:
		return c.StartTime
	case focusEnd:
		return c.EndTime
	case focusToggle:
		return c.FormatToggle
	case focusSegment:
		return c.Segment
	}
	return false
}

type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusError
)

// Deps are the collaborators the TUI is built from.
type Deps struct {
	Service    func(progress.Reporter) *pipeline.Service
	Themes     *config.ThemeStore
	Logger     *slog.Logger
	Options    model.CLIOptions
	InitialURL string
}

type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	svc    *pipeline.Service
	themes *config.ThemeStore
	logger *slog.Logger
	opts   model.CLIOptions

	// Session
	session  *model.SessionState
	videoIdx int // -1 means none selected
	audioIdx int
	mode     timefmt.Mode
	task     *jobState

	// Inputs
	url   textinput.Model
	start textinput.Model
	end   textinput.Model
	focus focus

	status     string
	statusKind statusKind
	notice     string
	lastSaved  string

	// UI
	width  int
	theme  model.Theme
	styles Styles
	keys   keyMap
	help   help.Model

	fetchOnStart bool

	// Internal event channel used by reporter to feed tea messages
	eventCh chan tea.Msg
}

func NewModel(ctx context.Context, d Deps) Model {
	c, cancel := context.WithCancel(ctx)
	eventCh := make(chan tea.Msg, 256)

	theme := model.DefaultTheme
	if d.Themes != nil {
		theme = d.Themes.Load()
	}
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	url := textinput.New()
	url.Placeholder = "https://www.youtube.com/watch?v=..."
	url.Prompt = ""
	url.CharLimit = 2048
	url.Width = 60
	url.SetValue(d.InitialURL)
	url.Focus()

	start := newTimeInput("start")
	end := newTimeInput("end")

	rep := teaReporter{ch: eventCh, done: c.Done()}
	newService := d.Service
	if newService == nil {
		newService = func(r progress.Reporter) *pipeline.Service {
			return pipeline.NewService(pipeline.WithReporter(r), pipeline.WithLogger(logger))
		}
	}
	m := Model{
		ctx:          c,
		cancel:       cancel,
		svc:          newService(rep),
		themes:       d.Themes,
		logger:       logger,
		opts:         d.Options,
		videoIdx:     -1,
		audioIdx:     -1,
		mode:         timefmt.ModeClock,
		url:          url,
		start:        start,
		end:          end,
		focus:        focusURL,
		theme:        theme,
		styles:       stylesFor(theme),
		keys:         defaultKeys(),
		help:         help.New(),
		fetchOnStart: d.InitialURL != "",
		eventCh:      eventCh,
	}
	return m
}

func newTimeInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.CharLimit = 16
	ti.Width = 10
	return ti
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.listenEventsCmd()}
	if m.fetchOnStart {
		cmds = append(cmds, func() tea.Msg { return fetchRequestedMsg{} })
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		if m.task != nil {
			m.task.bar.Width = barWidth(msg.Width)
		}

	case fetchRequestedMsg:
		return m.getInfo()

	case taskUpdateMsg:
		if m.task != nil && msg.U.TaskID == m.task.id {
			m.task.apply(msg.U)
		}
		return m, m.listenEventsCmd()

	case taskNoticeMsg:
		if m.task != nil && msg.N.TaskID == m.task.id {
			m.notice = msg.N.Text
		}
		return m, m.listenEventsCmd()

	case infoDoneMsg:
		return m.onInfoDone(msg), nil

	case savedMsg:
		return m.onSaved(msg), nil

	case themeSavedMsg:
		if msg.Err != nil {
			m.logger.Warn("persist theme", "err", msg.Err)
			m.setStatus("Could not save theme: "+msg.Err.Error(), statusError)
		}

	case ctxDoneMsg:
		m.shutdown()
		return m, tea.Quit

	case spinner.TickMsg:
		if m.task != nil {
			var cmd tea.Cmd
			m.task.spinner, cmd = m.task.spinner.Update(msg)
			return m, cmd
		}
	}

	return m.updateFocusedInput(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.shutdown()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Theme):
		return m.toggleTheme()
	case key.Matches(msg, m.keys.Mode):
		return m.toggleMode()
	case key.Matches(msg, m.keys.Next):
		return m.moveFocus(1), nil
	case key.Matches(msg, m.keys.Prev):
		return m.moveFocus(-1), nil
	case key.Matches(msg, m.keys.Activate):
		return m.activate()
	case key.Matches(msg, m.keys.Left) && m.onSelector():
		return m.cycle(-1), nil
	case key.Matches(msg, m.keys.Right) && m.onSelector():
		return m.cycle(1), nil
	}
	return m.updateFocusedInput(msg)
}

func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	c := m.controls()
	if !m.focus.enabled(c) {
		return m, nil
	}
	var cmd tea.Cmd
	switch m.focus {
	case focusURL:
		m.url, cmd = m.url.Update(msg)
	case focusStart:
		m.start, cmd = m.start.Update(msg)
	case focusEnd:
		m.end, cmd = m.end.Update(msg)
	}
	return m, cmd
}

func (m Model) phase() view.Phase {
	switch {
	case m.task != nil:
		return view.Busy
	case m.session != nil:
		return view.InfoLoaded
	default:
		return view.NoInfo
	}
}

func (m Model) controls() view.Controls {
	return view.Compute(m.phase(), m.session, m.selection())
}

func (m Model) selection() model.DownloadSelection {
	var sel model.DownloadSelection
	if m.session == nil {
		return sel
	}
	if m.videoIdx >= 0 && m.videoIdx < len(m.session.VideoFormats) {
		f := m.session.VideoFormats[m.videoIdx]
		sel.Video = &f
	}
	if m.audioIdx >= 0 && m.audioIdx < len(m.session.AudioFormats) {
		f := m.session.AudioFormats[m.audioIdx]
		sel.Audio = &f
	}
	return sel
}

func (m Model) onSelector() bool {
	return m.focus == focusVideo || m.focus == focusAudio || m.focus == focusToggle
}

// moveFocus steps to the next enabled control in direction dir.
func (m Model) moveFocus(dir int) Model {
	c := m.controls()
	next := m.focus
	for i := 0; i < int(focusCount); i++ {
		next = focus((int(next) + dir + int(focusCount)) % int(focusCount))
		if next.enabled(c) {
			return m.setFocus(next)
		}
	}
	return m
}

func (m Model) setFocus(f focus) Model {
	m.focus = f
	m.url.Blur()
	m.start.Blur()
	m.end.Blur()
	switch f {
	case focusURL:
		m.url.Focus()
	case focusStart:
		m.start.Focus()
	case focusEnd:
		m.end.Focus()
	}
	return m
}

// cycle moves the focused selector through "none" and every format.
func (m Model) cycle(dir int) Model {
	c := m.controls()
	switch m.focus {
	case focusVideo:
		if c.VideoQuality {
			m.videoIdx = step(m.videoIdx, dir, len(m.session.VideoFormats))
		}
	case focusAudio:
		if c.AudioQuality {
			m.audioIdx = step(m.audioIdx, dir, len(m.session.AudioFormats))
		}
	case focusToggle:
		if c.FormatToggle {
			m.applyMode(m.mode.Other())
		}
	}
	return m
}

func step(idx, dir, n int) int {
	// positions: -1 (none), 0..n-1
	pos := (idx + 1 + dir + n + 1) % (n + 1)
	return pos - 1
}

func (m Model) activate() (tea.Model, tea.Cmd) {
	switch m.focus {
	case focusURL:
		return m.getInfo()
	case focusDownload:
		return m.download()
	case focusThumbnail:
		return m.thumbnail()
	case focusSegment:
		return m.segment()
	case focusToggle:
		return m.toggleMode()
	case focusStart, focusEnd:
		return m.segment()
	}
	return m, nil
}

func (m *Model) setStatus(s string, k statusKind) {
	m.status = s
	m.statusKind = k
}

func (m *Model) beginTask(id string, kind taskKind, cancel func(), status string) tea.Cmd {
	m.task = newJobState(id, kind, cancel, status, m.styles, m.width)
	m.notice = ""
	m.setStatus("", statusInfo)
	return m.task.spinner.Tick
}

// getInfo is the Get Info trigger. Invalid URLs are reported without
// entering the busy phase.
func (m Model) getInfo() (tea.Model, tea.Cmd) {
	if !m.controls().GetInfo {
		return m, nil
	}
	raw := m.url.Value()
	if _, err := pipeline.ValidateURL(raw); err != nil {
		m.setStatus(err.Error(), statusError)
		return m, nil
	}

	m.session = nil
	m.videoIdx, m.audioIdx = -1, -1
	m.start.SetValue("")
	m.end.SetValue("")

	svc := m.svc
	task := pipeline.Go(m.ctx, func(ctx context.Context) (model.SessionState, error) {
		return svc.FetchInfo(ctx, raw)
	})
	tick := m.beginTask(task.ID, kindInfo, task.Cancel, pipeline.StatusFetchingInfo)
	return m, tea.Batch(tick, func() tea.Msg {
		sess, err := task.Wait()
		return infoDoneMsg{TaskID: task.ID, Session: sess, Err: err}
	})
}

func (m Model) download() (tea.Model, tea.Cmd) {
	if !m.controls().Download {
		return m, nil
	}
	svc, sess, sel := m.svc, m.session, m.selection()
	return m.startSave(kindMedia, pipeline.StatusMedia, func(ctx context.Context) (save.Saved, error) {
		return svc.DownloadMedia(ctx, sess, sel)
	})
}

func (m Model) thumbnail() (tea.Model, tea.Cmd) {
	if !m.controls().Thumbnail {
		return m, nil
	}
	svc, sess := m.svc, m.session
	return m.startSave(kindThumbnail, pipeline.StatusThumbnail, func(ctx context.Context) (save.Saved, error) {
		return svc.DownloadThumbnail(ctx, sess)
	})
}

func (m Model) segment() (tea.Model, tea.Cmd) {
	if !m.controls().Segment {
		return m, nil
	}
	svc, sess := m.svc, m.session
	fields := timefmt.Fields{Start: m.start.Value(), End: m.end.Value()}
	return m.startSave(kindSegment, pipeline.StatusSegment, func(ctx context.Context) (save.Saved, error) {
		return svc.DownloadSegment(ctx, sess, fields)
	})
}

func (m Model) startSave(kind taskKind, status string, fn func(context.Context) (save.Saved, error)) (tea.Model, tea.Cmd) {
	task := pipeline.Go(m.ctx, fn)
	tick := m.beginTask(task.ID, kind, task.Cancel, status)
	return m, tea.Batch(tick, func() tea.Msg {
		saved, err := task.Wait()
		return savedMsg{TaskID: task.ID, Kind: kind, Saved: saved, Err: err}
	})
}

func (m Model) toggleMode() (tea.Model, tea.Cmd) {
	if !m.controls().FormatToggle {
		return m, nil
	}
	m.applyMode(m.mode.Other())
	return m, nil
}

func (m *Model) applyMode(mode timefmt.Mode) {
	f := timefmt.ApplyMode(timefmt.Fields{Start: m.start.Value(), End: m.end.Value()}, mode, m.session.DurationSec())
	m.start.SetValue(f.Start)
	m.end.SetValue(f.End)
	m.mode = mode
}

func (m Model) toggleTheme() (tea.Model, tea.Cmd) {
	m.theme = m.theme.Toggle()
	m.styles = stylesFor(m.theme)
	if m.task != nil {
		m.task.spinner.Style = m.styles.Spinner
	}
	store, theme := m.themes, m.theme
	if store == nil {
		return m, nil
	}
	return m, func() tea.Msg {
		return themeSavedMsg{Err: store.Save(theme)}
	}
}

func (m Model) onInfoDone(msg infoDoneMsg) Model {
	if m.task == nil || m.task.id != msg.TaskID {
		return m
	}
	m.task = nil
	if msg.Err != nil {
		m.setStatus(msg.Err.Error(), statusError)
		return m
	}
	sess := msg.Session
	m.session = &sess
	r := sess.DefaultRange()
	m.start.SetValue(r.Start)
	m.end.SetValue(r.End)
	m.mode = timefmt.ModeClock
	m.setStatus(pipeline.StatusInfoLoaded, statusSuccess)
	if !m.focus.enabled(m.controls()) {
		m = m.setFocus(focusURL)
	}
	return m
}

func (m Model) onSaved(msg savedMsg) Model {
	if m.task == nil || m.task.id != msg.TaskID {
		return m
	}
	m.task = nil
	if msg.Err != nil {
		m.setStatus(msg.Err.Error(), statusError)
		return m
	}
	m.lastSaved = msg.Saved.Path
	m.setStatus("Saved: "+msg.Saved.Path, statusSuccess)
	switch msg.Kind {
	case kindMedia:
		m.videoIdx, m.audioIdx = -1, -1
	case kindSegment:
		m.start.SetValue("")
		m.end.SetValue("")
	}
	if !m.focus.enabled(m.controls()) {
		m = m.setFocus(focusURL)
	}
	return m
}

// shutdown cancels the in-flight request and the program context.
func (m Model) shutdown() {
	if m.task != nil && m.task.cancel != nil {
		m.task.cancel()
	}
	m.cancel()
}

func (m Model) listenEventsCmd() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
			return ctxDoneMsg{}
		case msg := <-m.eventCh:
			return msg
		}
	}
}

type teaReporter struct {
	ch   chan tea.Msg
	done <-chan struct{}
}

func (r teaReporter) Update(u progress.Update) {
	// Block on terminal stages so the final state is never dropped.
	if u.Stage == progress.StageCompleted || u.Stage == progress.StageError {
		select {
		case r.ch <- taskUpdateMsg{U: u}:
		case <-r.done:
		}
		return
	}
	select {
	case r.ch <- taskUpdateMsg{U: u}:
	default:
	}
}

func (r teaReporter) Notice(n progress.Notice) {
	select {
	case r.ch <- taskNoticeMsg{N: n}:
	case <-r.done:
	}
}

// Result is delivered through the task future instead.
func (r teaReporter) Result(progress.Result) {}
