package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"todotour/internal/config"
	"todotour/internal/exitcode"
	"todotour/internal/export"
	"todotour/internal/guide"
	"todotour/internal/httpapi"
	"todotour/internal/logging"
	"todotour/internal/service"
)

const (
	// DefaultAddr is the listen address for serve.
	DefaultAddr = "localhost:8080"

	shutdownTimeout = 5 * time.Second
)

func init() {
	Register(&ServeCmd{})
}

// ServeCmd serves the guided task list over HTTP until interrupted.
type ServeCmd struct {
	addr       string
	origins    string
	exportList string
}

func (c *ServeCmd) Name() string      { return "serve" }
func (c *ServeCmd) Aliases() []string { return nil }
func (c *ServeCmd) Synopsis() string  { return "Serve the task list over HTTP" }
func (c *ServeCmd) Usage() string {
	return "todotour serve [--addr <host:port>] [--origin <url>[,<url>...]] [--export-list <name>]"
}

func (c *ServeCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.addr, "addr", DefaultAddr, "")
	fs.StringVar(&c.origins, "origin", "", "")
	fs.StringVar(&c.exportList, "export-list", export.DefaultListName, "")
}

func (c *ServeCmd) Run(ctx context.Context, cfg *config.Config, svcs service.Provider, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	opts := logging.Options{Debug: cfg.Debug, File: cfg.LogPath, Journal: true}
	if !cfg.Quiet {
		opts.Stderr = errOut
	}
	log, err := logging.New(opts)
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
	ctrl.Mount()

	api := httpapi.New(ctrl, httpapi.Options{
		AllowedOrigins: splitOrigins(c.origins),
		Exporter:       export.New(svcs, log.With("component", "export")),
		ExportList:     c.exportList,
		Logger:         log.With("component", "http"),
	})

	listener, err := net.Listen("tcp", c.addr)
	if err != nil {
		fmt.Fprintf(errOut, "error: listen %s: %v\n", c.addr, err)
		return exitcode.UserError
	}

	server := &http.Server{
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(listener)
	}()

	addr := listener.Addr().String()
	log.Info("server started", "addr", addr)
	if !cfg.Quiet {
		fmt.Fprintf(out, "listening on http://%s\n", addr)
	}

	select {
	case err := <-errCh:
		log.Error("server failed", "error", err)
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", "error", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server stopped", "error", err)
	}
	log.Info("server stopped")
	return exitcode.Success
}

func splitOrigins(v string) []string {
	var origins []string
	for _, o := range strings.Split(v, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
