package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"sync"

	"todotour/internal/commands"
	"todotour/internal/config"
	"todotour/internal/exitcode"
	"todotour/internal/service"
)

// ServiceFactory creates a Service from config.
// Used to inject the export backend during dispatch.
type ServiceFactory func(ctx context.Context, cfg *config.Config) (service.Service, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ServiceFactory
}

// NewDispatcher creates a new dispatcher with the given registry and service factory.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		cmd, ok := d.registry.Default()
		if !ok {
			fmt.Fprintln(errOut, "error: no command given")
			return exitcode.UserError
		}
		return d.dispatchCommand(ctx, cmd, nil, out, errOut)
	}

	cmdName := args[0]

	// Flags require a command
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatch(ctx, cmdName, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var (
		configDir string
		quiet     bool
		debug     bool
		idle      string
	)
	fs.StringVar(&configDir, "config", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")
	fs.StringVar(&idle, "idle", "", "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", flagError(err))
		return exitcode.UserError
	}

	// A leftover leading dash means a flag after a positional argument
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	cfg, err := config.New(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug
	if idle != "" {
		cfg.IdlePeriod, err = config.ParseIdle(idle)
		if err != nil {
			fmt.Fprintf(errOut, "error: %s\n", err)
			return exitcode.UserError
		}
	}

	return cmd.Run(ctx, cfg, d.provider(cfg), positionalArgs, out, errOut)
}

// provider defers building the backend until a command first needs it.
// A built backend is reused and outlives the first caller's context;
// a failure is retried on the next call, e.g. after a login.
func (d *Dispatcher) provider(cfg *config.Config) service.Provider {
	var (
		mu  sync.Mutex
		svc service.Service
	)
	return func(ctx context.Context) (service.Service, error) {
		mu.Lock()
		defer mu.Unlock()
		if svc != nil {
			return svc, nil
		}
		s, err := d.open(context.WithoutCancel(ctx), cfg)
		if err != nil {
			return nil, err
		}
		svc = s
		return svc, nil
	}
}

func (d *Dispatcher) open(ctx context.Context, cfg *config.Config) (service.Service, error) {
	if d.factory != nil {
		return d.factory(ctx, cfg)
	}
	// No factory: report missing credentials without touching the network
	if !cfg.HasOAuthClient() {
		return nil, fmt.Errorf("%w in %s", service.ErrNoOAuthClient, cfg.Dir)
	}
	if !cfg.HasToken() {
		return nil, service.ErrNotLoggedIn
	}
	return nil, fmt.Errorf("no task backend configured")
}

// flagError rewrites flag package errors into the CLI's wording.
func flagError(err error) string {
	errStr := err.Error()

	if strings.Contains(errStr, "needs a value") || strings.Contains(errStr, "flag needs an argument") {
		parts := strings.Split(errStr, ":")
		flagPart := strings.TrimSpace(parts[len(parts)-1])
		if strings.HasPrefix(parts[0], "flag needs an argument") {
			return "flag needs an argument: " + flagPart
		}
		return errStr
	}

	if strings.HasPrefix(errStr, "flag provided but not defined:") {
		return "unknown flag: " + strings.TrimPrefix(errStr, "flag provided but not defined: ")
	}

	return errStr
}
