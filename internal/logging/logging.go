// Package logging builds the process logger.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

// Options selects the log sinks.
type Options struct {
	// Debug lowers the level to debug.
	Debug bool

	// Stderr receives human-readable logs when non-nil.
	Stderr io.Writer

	// File is a JSON log file path. Empty disables it.
	File string

	// Journal adds a systemd journal sink when running as a service.
	Journal bool
}

// Logger is the logger plus the resources it holds open.
type Logger struct {
	*slog.Logger
	closers []io.Closer
}

// Close releases open log files.
func (l *Logger) Close() error {
	var first error
	for _, c := range l.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// New fans records out to every configured sink.
// With no sinks the logger discards everything.
func New(opts Options) (*Logger, error) {
	level := new(slog.LevelVar)
	if opts.Debug {
		level.Set(slog.LevelDebug)
	}

	var (
		handlers []slog.Handler
		closers  []io.Closer
	)

	if opts.Stderr != nil {
		handlers = append(handlers, slog.NewTextHandler(opts.Stderr, &slog.HandlerOptions{
			Level: level,
		}))
	}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0700); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		closers = append(closers, f)
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: level,
		}))
	}

	if opts.Journal && isSystemdService() {
		journal, err := slogjournal.NewHandler(&slogjournal.Options{
			Level: level,
			ReplaceGroup: func(key string) string {
				return toJournalKey(key)
			},
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a.Key = toJournalKey(a.Key)
				return a
			},
		})
		if err != nil {
			if len(handlers) > 0 {
				record := slog.NewRecord(time.Now(), slog.LevelWarn, "new systemd journal handler", 0)
				record.Add("error", err)
				_ = handlers[0].Handle(context.Background(), record)
			}
		} else {
			handlers = append(handlers, journal)
		}
	}

	if len(handlers) == 0 {
		return &Logger{Logger: slog.New(slog.DiscardHandler)}, nil
	}
	return &Logger{
		Logger:  slog.New(slogmulti.Fanout(handlers...)),
		closers: closers,
	}, nil
}

// toJournalKey maps attribute keys to journal field names.
func toJournalKey(str string) string {
	str = strings.ToUpper(str)
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' ||
			r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, str)
}

func isSystemdService() bool {
	content, err := os.ReadFile("/proc/self/cgroup")
	if err != nil {
		return false
	}
	parts := strings.Split(strings.TrimSpace(string(content)), ":")
	if len(parts) < 3 {
		return false
	}
	return strings.HasSuffix(path.Dir(parts[2]), ".service")
}
