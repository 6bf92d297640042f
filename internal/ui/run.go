package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

// Run launches the TUI and blocks until the user quits.
func Run(ctx context.Context, d Deps) error {
	m := NewModel(ctx, d)
	prog := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	final, err := prog.Run()
	if fm, ok := final.(Model); ok {
		fm.shutdown()
	} else {
		m.shutdown()
	}
	if err != nil && !(errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil) {
		return err
	}
	if fm, ok := final.(Model); ok && fm.lastSaved != "" {
		fm.logger.Info("last saved file", "path", fm.lastSaved)
	}
	return nil
}
