// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, bad flags, unusable address).
	UserError = 1

	// AuthError indicates missing or rejected export credentials.
	AuthError = 2

	// BackendError indicates a terminal, server or export backend failure.
	BackendError = 3
)
