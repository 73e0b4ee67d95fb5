// Package repoerr holds the shared repository sentinel errors in a leaf
// package so that domain packages can match them without importing
// repository, whose interfaces import the domain packages.
package repoerr

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when the ongoing-session uniqueness
	// constraint rejects an insert
	ErrConflict = errors.New("conflict: ongoing session already exists")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)
