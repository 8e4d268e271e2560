package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todotour/internal/config"
	"todotour/internal/exitcode"
	"todotour/internal/output"
	"todotour/internal/service"
	"todotour/internal/tour"
)

func init() {
	Register(&StepsCmd{})
}

// StepsCmd prints the walkthrough steps.
type StepsCmd struct{}

func (c *StepsCmd) Name() string      { return "steps" }
func (c *StepsCmd) Aliases() []string { return nil }
func (c *StepsCmd) Synopsis() string  { return "Print the walkthrough steps" }
func (c *StepsCmd) Usage() string     { return "todotour steps" }

func (c *StepsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StepsCmd) Run(ctx context.Context, cfg *config.Config, svcs service.Provider, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	steps := tour.DefaultSteps()
	if !cfg.Quiet {
		output.FormatHeader(out, "Walkthrough")
	}
	for i, step := range steps {
		output.FormatStep(out, i+1, step)
	}
	return exitcode.Success
}
