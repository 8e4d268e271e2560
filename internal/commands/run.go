package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todotour/internal/config"
	"todotour/internal/exitcode"
	"todotour/internal/export"
	"todotour/internal/guide"
	"todotour/internal/logging"
	"todotour/internal/output"
	"todotour/internal/service"
	"todotour/internal/tasklist"
	"todotour/internal/tui"
)

func init() {
	RegisterDefault(&RunCmd{})
}

// RunCmd opens the task list with the walkthrough in the terminal.
type RunCmd struct {
	exportList string

	// Input replaces the terminal input (for testing).
	Input io.Reader
}

func (c *RunCmd) Name() string      { return "run" }
func (c *RunCmd) Aliases() []string { return nil }
func (c *RunCmd) Synopsis() string  { return "Open the task list with the walkthrough" }
func (c *RunCmd) Usage() string     { return "todotour run [--export-list <name>]" }

func (c *RunCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.exportList, "export-list", export.DefaultListName, "")
}

func (c *RunCmd) Run(ctx context.Context, cfg *config.Config, svcs service.Provider, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	// The terminal belongs to the UI, so records go to the log file only.
	log, err := logging.New(logging.Options{Debug: cfg.Debug, File: cfg.LogPath})
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	defer log.Close()

	ctrl := guide.New(guide.Options{
		IdlePeriod: cfg.IdlePeriod,
		Logger:     log.Logger,
	})
	defer ctrl.Close()

	log.Info("session started", "idle", cfg.IdlePeriod)
	err = tui.Run(ctx, ctrl, tui.Options{
		Exporter:   export.New(svcs, log.With("component", "export")),
		ExportList: c.exportList,
		Logger:     log.With("component", "tui"),
	}, c.Input, out)
	if err != nil {
		log.Error("terminal ui failed", "error", err)
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}

	tasks := ctrl.Tasks()
	log.Info("session ended", "tasks", len(tasks), "phase", ctrl.View().Phase)
	if !cfg.Quiet {
		printSummary(out, tasks)
	}
	return exitcode.Success
}

// printSummary lists the session's tasks once the UI has left the screen.
func printSummary(w io.Writer, tasks []tasklist.Task) {
	if len(tasks) == 0 {
		return
	}
	output.FormatHeader(w, "Tasks")
	for i, t := range tasks {
		output.FormatTask(w, i+1, t)
	}
}
