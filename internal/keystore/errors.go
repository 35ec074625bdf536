package keystore

import "errors"

var (
	// ErrKeyNotFound is returned when no key is stored for (scope, owner).
	ErrKeyNotFound = errors.New("key not found")

	// ErrCorruptedKey is returned when a stored value cannot be decoded.
	ErrCorruptedKey = errors.New("stored key is corrupted")

	// ErrEmptyKey is returned by Set for an empty key or owner.
	ErrEmptyKey = errors.New("empty key or owner")
)
