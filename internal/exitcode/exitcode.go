// Package exitcode defines exit codes for the CLI.
package exitcode

// Task notices (added, not found, invalid id, unknown command) all exit with
// Success; only failures the user cannot recover from by retyping the command
// use a non-zero code.
const (
	// Success indicates the command ran, whatever notice it printed.
	Success = 0

	// UserError indicates a bad common flag.
	UserError = 1

	// ConfigError indicates an unreadable or malformed settings file.
	ConfigError = 2

	// StoreError indicates the task file could not be written.
	StoreError = 3
)
