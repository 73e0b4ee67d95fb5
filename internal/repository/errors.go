package repository

import "github.com/kcwei/breaktrack/internal/repository/repoerr"

// The sentinels are defined in the leaf package repoerr and re-exported
// here, so repository.ErrNotFound and repoerr.ErrNotFound are the same
// value and errors.Is matches through either name.
var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = repoerr.ErrNotFound

	// ErrConflict is returned when the ongoing-session uniqueness
	// constraint rejects an insert
	ErrConflict = repoerr.ErrConflict

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = repoerr.ErrInvalidInput
)
