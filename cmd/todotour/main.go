// Package main is the entry point for the todotour CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"todotour/internal/backend/googletasks"
	"todotour/internal/cli"
	"todotour/internal/commands"
	"todotour/internal/config"
	"todotour/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Export is the only consumer of the Google Tasks backend
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		client, err := googletasks.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return client, nil
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
