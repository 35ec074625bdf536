package docstore

import "errors"

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrAlreadyExists is returned by create operations when the document
	// is already present. Batches fail as a whole.
	ErrAlreadyExists = errors.New("document already exists")

	// ErrPermissionDenied is returned when the caller may not access a path.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrWriteRejected covers every other refused write (transport failure,
	// invalid payload, server error). Optimistic entries are rolled back.
	ErrWriteRejected = errors.New("write rejected")

	// ErrInvalidPath is returned for malformed document or collection paths.
	ErrInvalidPath = errors.New("invalid path")
)
