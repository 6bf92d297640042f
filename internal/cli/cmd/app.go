package cmd

import (
	"fmt"
	"io"
	"sync"

	"github.com/spf13/cobra"

	"vidgrab/internal/api"
	"vidgrab/internal/pipeline"
	"vidgrab/internal/progress"
	"vidgrab/internal/save"
)

// newService wires the orchestrator for a non-interactive command.
func newService(cmd *cobra.Command) *pipeline.Service {
	in := inputsFrom(cmd)
	return pipeline.NewService(
		pipeline.WithClient(api.NewClient(in.Options.Server, api.WithLogger(in.Logger))),
		pipeline.WithSaver(save.NewSaver(in.Options.OutDir)),
		pipeline.WithReporter(newLineReporter(cmd.ErrOrStderr())),
		pipeline.WithLogger(in.Logger),
	)
}

// lineReporter prints stage changes and notices as plain lines.
// Simulated progress ticks repeat the same message and are collapsed.
type lineReporter struct {
	mu   sync.Mutex
	w    io.Writer
	last string
}

func newLineReporter(w io.Writer) *lineReporter {
	return &lineReporter{w: w}
}

func (r *lineReporter) Update(u progress.Update) {
	if u.Message == "" || u.Stage == progress.StageError {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.Message == r.last {
		return
	}
	r.last = u.Message
	fmt.Fprintln(r.w, u.Message)
}

func (r *lineReporter) Notice(n progress.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	prefix := "note:"
	if n.Level == progress.LevelWarn {
		prefix = "warning:"
	}
	fmt.Fprintln(r.w, prefix, n.Text)
}

func (r *lineReporter) Result(progress.Result) {}

func printSaved(w io.Writer, s save.Saved) {
	fmt.Fprintln(w, s.Path)
}
