// Package service defines the backend-agnostic interface for exporting tasks.
package service

import "errors"

// Task represents a task stored in the backend.
type Task struct {
	ID     string
	Title  string
	Status string // "needsAction" or "completed"
}

// TaskList represents a backend task list.
type TaskList struct {
	ID    string
	Title string
}

// Task statuses.
const (
	StatusNeedsAction = "needsAction"
	StatusCompleted   = "completed"
)

var (
	// ErrNotFound is returned when a list or task does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAmbiguous is returned when a list name matches more than one list.
	ErrAmbiguous = errors.New("ambiguous list name")

	// ErrNoOAuthClient is returned when oauth_client.json is missing.
	ErrNoOAuthClient = errors.New("oauth_client.json not found")

	// ErrNotLoggedIn is returned when no token is stored.
	ErrNotLoggedIn = errors.New("not logged in (run: todotour login)")

	// ErrTokenRevoked is returned when the backend rejects the stored token.
	ErrTokenRevoked = errors.New("token expired or revoked (run: todotour login)")
)
