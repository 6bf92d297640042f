package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"vidgrab/internal/model"
	"vidgrab/internal/timefmt"
	"vidgrab/internal/util/format"
	"vidgrab/internal/util/media"
)

func (m Model) View() string {
	c := m.controls()
	sections := []string{m.viewHeader()}
	sections = append(sections, m.viewURL())
	if c.ShowInfo {
		sections = append(sections, m.viewInfo())
	}
	if m.session != nil {
		sections = append(sections, m.viewDownloads(), m.viewSegment())
	}
	if c.ShowBusy && m.task != nil {
		sections = append(sections, m.viewTask())
	}
	if s := m.viewStatus(); s != "" {
		sections = append(sections, s)
	}
	sections = append(sections, m.help.View(m.keys))
	return strings.Join(sections, "\n\n")
}

func (m Model) viewHeader() string {
	title := m.styles.Title.Render("vidgrab")
	themeLabel := "Night Mode"
	if m.theme == model.ThemeDark {
		themeLabel = "Day Mode"
	}
	sub := m.styles.Subtitle.Render(fmt.Sprintf("Server: %s • ctrl+t: %s", m.opts.Server, themeLabel))
	return title + "\n" + sub
}

func (m Model) viewURL() string {
	c := m.controls()
	return lipgloss.JoinHorizontal(lipgloss.Center,
		m.styles.Label.Render("URL "),
		m.input(m.url.View(), focusURL, c.URLInput),
		" ",
		m.button("Get Info", focusURL, c.GetInfo),
	)
}

func (m Model) viewInfo() string {
	meta := m.session.Meta
	rows := []string{
		m.styles.Label.Render(truncate(meta.Title, 72)),
		m.row("Channel", meta.Channel),
		m.row("Duration", timefmt.FormatDuration(meta.DurationSec)),
		m.row("Views", format.Views(meta.Views)),
	}
	if thumb := m.session.ThumbnailURL(); thumb != "" {
		rows = append(rows, m.row("Thumbnail", truncate(thumb, 64)))
	}
	return m.styles.Panel.Render(strings.Join(rows, "\n"))
}

func (m Model) viewDownloads() string {
	c := m.controls()
	video := m.selectorLabel(m.session.VideoFormats, m.videoIdx, "-- Select Video --")
	audio := m.selectorLabel(m.session.AudioFormats, m.audioIdx, "-- Select Audio --")
	return strings.Join([]string{
		m.styles.Label.Render("Video  ") + m.button("‹ "+video+" ›", focusVideo, c.VideoQuality),
		m.styles.Label.Render("Audio  ") + m.button("‹ "+audio+" ›", focusAudio, c.AudioQuality),
		m.button("Download", focusDownload, c.Download) + " " + m.button("HD Thumbnail", focusThumbnail, c.Thumbnail),
	}, "\n")
}

func (m Model) viewSegment() string {
	c := m.controls()
	mode := "HH:MM:SS"
	if m.mode == timefmt.ModeSeconds {
		mode = "Seconds"
	}
	return lipgloss.JoinHorizontal(lipgloss.Center,
		m.styles.Label.Render("Start "),
		m.input(m.start.View(), focusStart, c.StartTime),
		m.styles.Label.Render("  End "),
		m.input(m.end.View(), focusEnd, c.EndTime),
		" ",
		m.button("‹ "+mode+" ›", focusToggle, c.FormatToggle),
		" ",
		m.button("Download Segment", focusSegment, c.Segment),
	)
}

func (m Model) viewTask() string {
	t := m.task
	line := m.styles.Spinner.Render(t.spinner.View()) + " " + m.styles.Value.Render(t.status)
	if t.percent >= 0 && t.percent <= 100 {
		line += "\n" + fmt.Sprintf("%s %5.1f%%", t.bar.ViewAs(t.percent/100.0), t.percent)
	}
	return line
}

func (m Model) viewStatus() string {
	var lines []string
	if m.notice != "" {
		lines = append(lines, m.styles.Info.Render(m.notice))
	}
	if m.status != "" {
		switch m.statusKind {
		case statusError:
			lines = append(lines, m.styles.Error.Render("✗ "+m.status))
		case statusSuccess:
			lines = append(lines, m.styles.Success.Render("✓ "+m.status))
		default:
			lines = append(lines, m.styles.Info.Render(m.status))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) row(label, value string) string {
	return m.styles.Faint.Render(fmt.Sprintf("%-10s", label)) + m.styles.Value.Render(value)
}

func (m Model) button(label string, f focus, enabled bool) string {
	switch {
	case !enabled:
		return m.styles.Disabled.Render(label)
	case m.focus == f:
		return m.styles.Focused.Render(label)
	default:
		return m.styles.Button.Render(label)
	}
}

func (m Model) input(rendered string, f focus, enabled bool) string {
	if !enabled {
		return m.styles.Disabled.Render(rendered)
	}
	if m.focus == f {
		return m.styles.Label.Render("›") + rendered
	}
	return " " + rendered
}

func (m Model) selectorLabel(formats []model.MediaFormat, idx int, none string) string {
	if idx < 0 || idx >= len(formats) {
		return none
	}
	return media.FormatLabel(formats[idx], format.Size)
}

func truncate(s string, n int) string {
	if n <= 0 || len([]rune(s)) <= n {
		return s
	}
	rs := []rune(s)
	return string(rs[:n-1]) + "…"
}
