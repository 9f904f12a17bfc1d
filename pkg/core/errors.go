package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	// ErrNotFound signals a delete or lookup targeting an annotation that does
	// not exist. It is informational, not a failure: callers typically report
	// it and move on.
	ErrNotFound = errors.New("annotation not found")

	// ErrEmptyText rejects input that is empty after trimming.
	ErrEmptyText = errors.New("annotation text is empty")

	// ErrTextTooLong rejects input longer than MaxTextLen runes.
	ErrTextTooLong = fmt.Errorf("annotation text exceeds %d characters", MaxTextLen)
)

// ValidationError describes malformed annotation input with enough detail
// to tell the user what to fix.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
