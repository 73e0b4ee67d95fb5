package stats

import "errors"

var (
	// ErrInvalidInput indicates a missing chat or user id.
	ErrInvalidInput = errors.New("invalid statistics input")
	// ErrUnknownPeriod indicates an unrecognized period name.
	ErrUnknownPeriod = errors.New("unknown period")
)
