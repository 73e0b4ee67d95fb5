package ledger

import "errors"

var (
	// ErrInvalidType indicates an unregistered activity type id.
	ErrInvalidType = errors.New("invalid activity type")
	// ErrSessionConflict indicates the identity already has an ongoing session.
	ErrSessionConflict = errors.New("session already in progress")
	// ErrInvalidInput indicates missing identity or session fields.
	ErrInvalidInput = errors.New("invalid session input")
)
