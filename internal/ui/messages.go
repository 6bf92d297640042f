package ui

import (
	"vidgrab/internal/model"
	"vidgrab/internal/progress"
	"vidgrab/internal/save"
)

type infoDoneMsg struct {
	TaskID  string
	Session model.SessionState
	Err     error
}

type savedMsg struct {
	TaskID string
	Kind   taskKind
	Saved  save.Saved
	Err    error
}

type taskUpdateMsg struct {
	U progress.Update
}

type taskNoticeMsg struct {
	N progress.Notice
}

type themeSavedMsg struct {
	Err error
}

// fetchRequestedMsg starts an info request for a URL given on the command line.
type fetchRequestedMsg struct{}

type ctxDoneMsg struct{}
