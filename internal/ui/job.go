package ui

import (
	bubblesprogress "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"

	"vidgrab/internal/progress"
)

type taskKind int

const (
	kindInfo taskKind = iota
	kindMedia
	kindThumbnail
	kindSegment
)

// jobState is the single request currently in flight.
type jobState struct {
	id     string
	kind   taskKind
	cancel func()

	stage   progress.Stage
	status  string
	percent float64 // -1 means unknown

	spinner spinner.Model
	bar     bubblesprogress.Model
}

func newJobState(id string, kind taskKind, cancel func(), status string, styles Styles, width int) *jobState {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner
	bar := bubblesprogress.New(
		bubblesprogress.WithDefaultGradient(),
		bubblesprogress.WithWidth(barWidth(width)),
	)
	return &jobState{
		id:      id,
		kind:    kind,
		cancel:  cancel,
		stage:   progress.StageRequesting,
		status:  status,
		percent: -1,
		spinner: sp,
		bar:     bar,
	}
}

func (j *jobState) apply(u progress.Update) {
	j.stage = u.Stage
	if u.Message != "" {
		j.status = u.Message
	}
	if u.Percent >= 0 {
		j.percent = u.Percent
	}
}

func barWidth(termWidth int) int {
	if termWidth <= 0 {
		return 40
	}
	return max(10, min(60, termWidth-12))
}
