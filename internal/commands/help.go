package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todotour/internal/config"
	"todotour/internal/exitcode"
	"todotour/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "todotour help" }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svcs service.Provider, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  todotour                                           Open the task list with the walkthrough
  todotour run [common flags] [--export-list <name>] Same as above
  todotour serve [common flags] [--addr <host:port>] [--origin <url>]
                                                     Serve the task list over HTTP
  todotour steps [common flags]                      Print the walkthrough steps
  todotour login [common flags]                      Authenticate with Google for export
  todotour logout [common flags]
  todotour help
  todotour version

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Log at debug level
  --idle <dur>     Typing pause that completes an input step (default 2s)

Environment:
  TODOTOUR_IDLE    Default for --idle
`
