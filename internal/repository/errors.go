package repository

import "errors"

// Errors shared by every repository implementation.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicateEntry indicates an insert or update violated a unique constraint.
	ErrDuplicateEntry = errors.New("repository: duplicate entry")
)

// Per-resource aliases so callers can stay expressive.
var (
	ErrUserNotFound = ErrNotFound
	ErrTodoNotFound = ErrNotFound
)
