package library

import "errors"

// Sentinel errors for catalog lookups and writes. Store methods
// translate the driver's SQLite error codes into these so callers can
// branch with errors.Is.
var (
	// ErrNotFound indicates the entry, video or enrichment row doesn't exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate indicates a hash collision with an existing row.
	ErrDuplicate = errors.New("duplicate entry")

	// ErrConstraint indicates a foreign key or check constraint violation,
	// usually a video or subtitle pointing at a missing parent.
	ErrConstraint = errors.New("constraint violation")
)
