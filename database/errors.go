package database

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("database: not found")
	// ErrInUse is returned when a record cannot be deleted because other
	// records still reference it.
	ErrInUse = errors.New("database: still referenced")
)
