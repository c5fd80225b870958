// Package emoji provides symbol constants for CLI output.
package emoji

// Symbols shared by command output.
const (
	// Success marks a published output.
	Success = "✓"

	// Error marks a failed operation.
	Error = "✗"

	// Warning marks a merged key whose sources disagreed.
	Warning = "!"
)
