package crypto

import "errors"

var (
	// ErrDecryption covers every way a blob can fail to open: bad
	// encoding, truncation, wrong key length or a failed tag check.
	// Callers recover from it per field.
	ErrDecryption = errors.New("decryption failed")

	// ErrInvalidKeyLength is returned by encrypting operations when the key
	// is not a 256-bit key.
	ErrInvalidKeyLength = errors.New("invalid key length: expected 32 bytes")
)
