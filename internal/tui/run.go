package tui

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"todotour/internal/guide"
)

// Run mounts the walkthrough and runs the terminal UI until the user
// quits or ctx is cancelled. in and out default to the terminal when nil.
func Run(ctx context.Context, ctrl *guide.Controller, opts Options, in io.Reader, out io.Writer) error {
	ctrl.Mount()

	popts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if in != nil {
		popts = append(popts, tea.WithInput(in))
	}
	if out != nil {
		popts = append(popts, tea.WithOutput(out))
	}
	p := tea.NewProgram(New(ctx, ctrl, opts), popts...)

	// Idle timers change the view outside the event loop. Send from a
	// fresh goroutine: notifications raised inside Update would otherwise
	// block on the loop that is running them.
	ctrl.Subscribe(func(guide.View) {
		go p.Send(refreshMsg{})
	})

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
