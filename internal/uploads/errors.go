package uploads

import "errors"

var (
	// ErrMissingFile is returned when a create request carries no image part.
	ErrMissingFile = errors.New("game image is required")
	// ErrNotImage is returned for files that are not jpeg, png, gif or webp.
	ErrNotImage = errors.New("only image files are allowed")
	// ErrTooLarge is returned for files over the configured limit.
	ErrTooLarge = errors.New("file too large")
)
