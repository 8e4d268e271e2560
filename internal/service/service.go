package service

import "context"

// Service defines the backend operations used by export.
// Commands and surfaces never import the Google SDK directly.
type Service interface {
	// ListLists returns all task lists in API order.
	ListLists(ctx context.Context) ([]TaskList, error)

	// ResolveList finds a list by name (case-insensitive, trimmed).
	// Returns ErrNotFound or ErrAmbiguous.
	ResolveList(ctx context.Context, name string) (TaskList, error)

	// CreateList creates a new task list.
	CreateList(ctx context.Context, name string) (TaskList, error)

	// CreateTask creates a new task in the specified list.
	CreateTask(ctx context.Context, listID, title string) (Task, error)

	// CompleteTask marks a task as completed.
	CompleteTask(ctx context.Context, listID, taskID string) error
}

// Provider builds a Service on first use, so commands that never export
// never need credentials.
type Provider func(ctx context.Context) (Service, error)
