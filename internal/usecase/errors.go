package usecase

import "errors"

// Sentinels callers match with errors.Is. The HTTP layer maps each to a
// status code.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrJobLocked means another replica holds the job's lock.
	ErrJobLocked = errors.New("job is already running")
)
