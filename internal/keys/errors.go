package keys

import "errors"

var (
	// ErrKeyUnavailable means the trip key is not ready for this user yet:
	// the sharer has no key, a member has no master key, or the wrapped
	// record is still pending. Callers show "try again in a moment".
	ErrKeyUnavailable = errors.New("trip key is not available yet")

	// ErrNotMember is returned when the user is not a member of the trip.
	ErrNotMember = errors.New("user is not a member of the trip")

	// ErrInvalidMasterKey is returned when a stored master key is not a
	// 256-bit base64 value.
	ErrInvalidMasterKey = errors.New("invalid master key record")
)
