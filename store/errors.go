package store

import "errors"

var (
	// ErrNotFound is returned when the requested document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a mutation would violate a lifecycle
	// invariant, e.g. archiving or deleting the primary form.
	ErrConflict = errors.New("conflict")
)
