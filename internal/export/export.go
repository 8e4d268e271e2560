// Package export copies the in-memory task list into a backend list.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"todotour/internal/service"
	"todotour/internal/tasklist"
)

// DefaultListName is the backend list used when none is given.
const DefaultListName = "todotour"

// ErrListNameRequired is returned for an empty list name.
var ErrListNameRequired = errors.New("list name required")

// Result summarizes one export.
type Result struct {
	List      string `json:"list"`
	Created   int    `json:"created"`
	Completed int    `json:"completed"`
}

// Exporter pushes snapshots of the task list to a backend.
type Exporter struct {
	services service.Provider
	log      *slog.Logger
}

// New creates an Exporter. A nil logger discards output.
func New(services service.Provider, log *slog.Logger) *Exporter {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Exporter{services: services, log: log}
}

// Export appends every task to the named list, creating the list when it
// does not exist, and completes the tasks that are checked.
// On error, tasks created before the failure stay in the backend.
func (e *Exporter) Export(ctx context.Context, listName string, tasks []tasklist.Task) (Result, error) {
	listName = strings.TrimSpace(listName)
	if listName == "" {
		return Result{}, ErrListNameRequired
	}

	svc, err := e.services(ctx)
	if err != nil {
		return Result{}, err
	}

	list, err := svc.ResolveList(ctx, listName)
	if errors.Is(err, service.ErrNotFound) {
		list, err = svc.CreateList(ctx, listName)
		if err == nil {
			e.log.Info("export list created", "list", listName, "list_id", list.ID)
		}
	}
	if err != nil {
		return Result{}, err
	}

	res := Result{List: list.Title}
	for _, t := range tasks {
		created, err := svc.CreateTask(ctx, list.ID, t.Text)
		if err != nil {
			return res, fmt.Errorf("export task %s: %w", t.ID, err)
		}
		res.Created++

		if !t.Completed {
			continue
		}
		if err := svc.CompleteTask(ctx, list.ID, created.ID); err != nil {
			return res, fmt.Errorf("complete task %s: %w", t.ID, err)
		}
		res.Completed++
	}

	e.log.Info("export finished", "list", res.List, "created", res.Created, "completed", res.Completed)
	return res, nil
}
