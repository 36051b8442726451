package games

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a game id does not exist.
var ErrNotFound = errors.New("game not found")

// ValidationError reports missing or malformed game fields.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 0 {
		return "Validation error"
	}
	return "Validation error: " + strings.Join(e.Problems, "; ")
}

// NewValidationError builds a ValidationError from one or more problems.
func NewValidationError(problems ...string) *ValidationError {
	return &ValidationError{Problems: problems}
}

// AsValidationError attempts to unwrap an error into a ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}
