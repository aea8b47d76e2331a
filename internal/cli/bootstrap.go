// Package cli contains the cobra commands for the frontdesk binary.
package cli

import "context"

// NewContext creates the base context for CLI commands. Commands should use
// this instead of context.Background() directly so a future deadline or
// request-scoped value has one place to go.
func NewContext() context.Context {
	return context.Background()
}
