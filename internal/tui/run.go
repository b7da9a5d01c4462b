package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/confwiz/internal/wizard"
)

// Run shows the wizard until it finishes, is closed or aborted. Cancelling
// ctx counts as an abort.
func Run(ctx context.Context, w *wizard.Wizard, out io.Writer, opts Options) (Outcome, error) {
	app := NewApp(w, opts)

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if out != nil {
		progOpts = append(progOpts, tea.WithOutput(out))
	}
	p := tea.NewProgram(app, progOpts...)

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled) {
			return OutcomeAborted, nil
		}
		return app.Outcome(), fmt.Errorf("wizard failed: %w", err)
	}
	if app.Outcome() == OutcomePending {
		return OutcomeAborted, nil
	}
	return app.Outcome(), nil
}
